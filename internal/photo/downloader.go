package photo

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"sjsage522/dirscraper/helpers"
	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
	"sjsage522/dirscraper/services/worker"
)

// DefaultConcurrency is the batch limit used when the caller passes none
const DefaultConcurrency = 5

const defaultExtension = ".jpg"

// Ledger remembers completed downloads across runs
type Ledger interface {
	Lookup(pageURL string) (path string, found bool, err error)
	Record(pageURL, path string) error
}

// Downloader fetches the og:image of an employee page and stores it on disk
type Downloader struct {
	client   *resty.Client
	dir      string
	ledger   Ledger
	failures helpers.FailureRecorder
	log      *logger.Logger
}

// NewDownloader creates a downloader writing into dir. A zero timeout
// leaves requests unbounded.
func NewDownloader(dir string, timeout time.Duration, userAgent string) *Downloader {
	if userAgent == "" {
		userAgent = helpers.DefaultUserAgent
	}
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	return &Downloader{
		client: client,
		dir:    dir,
		log:    logger.ForDownloader(),
	}
}

// WithLedger enables skipping photos recorded by an earlier run
func (d *Downloader) WithLedger(l Ledger) *Downloader {
	d.ledger = l
	return d
}

// WithFailureRecorder sends every failed download to r
func (d *Downloader) WithFailureRecorder(r helpers.FailureRecorder) *Downloader {
	d.failures = r
	return d
}

// WithLogger replaces the downloader's logger
func (d *Downloader) WithLogger(log *logger.Logger) *Downloader {
	d.log = log
	return d
}

// ImageURL fetches pageURL and returns the absolute URL of its og:image
func (d *Downloader) ImageURL(ctx context.Context, pageURL string) (string, error) {
	res, err := d.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", apperrors.NewNetwork(pageURL, "failed to fetch employee page", err)
	}
	if res.IsError() {
		return "", apperrors.NewNetwork(pageURL, "failed to fetch employee page", fmt.Errorf("unexpected status code: %d", res.StatusCode()))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", apperrors.NewParsing(pageURL, "failed to parse employee page", err)
	}

	var content string
	for _, property := range []string{"og:image:url", "og:image"} {
		if v, ok := doc.Find("meta[property='" + property + "']").First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			content = strings.TrimSpace(v)
			break
		}
	}
	if content == "" {
		return "", apperrors.NewExtraction("og:image", "no image meta tag on "+pageURL)
	}

	ref, err := url.Parse(content)
	if err != nil {
		return "", apperrors.NewParsing(pageURL, "invalid image URL", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return content, nil
	}
	return base.ResolveReference(ref).String(), nil
}

// FileName builds the output file name. name defaults to the employee's
// full name; the image extension is appended unless a caller-supplied name
// already has one.
func FileName(e directory.Employee, name, imageURL string) string {
	sanitize := strings.NewReplacer("/", "_", "\\", "_")
	if name == "" {
		return sanitize.Replace(e.FullName()) + extension(imageURL)
	}
	name = sanitize.Replace(name)
	if isExtension(filepath.Ext(name)) {
		return name
	}
	return name + extension(imageURL)
}

func isExtension(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, c := range ext[1:] {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

func extension(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return defaultExtension
	}
	ext := path.Ext(u.Path)
	if !isExtension(ext) {
		return defaultExtension
	}
	return strings.ToLower(ext)
}

// Download stores the employee's photo and returns the written path
func (d *Downloader) Download(ctx context.Context, e directory.Employee, name string) (string, error) {
	if e.PageURL == "" {
		return "", apperrors.NewValidation(e.FullName(), "employee has no page URL")
	}

	imageURL, err := d.ImageURL(ctx, e.PageURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", apperrors.NewStorage(d.dir, "failed to create photo directory", err)
	}
	target := filepath.Join(d.dir, FileName(e, name, imageURL))

	res, err := d.client.R().
		SetContext(ctx).
		SetOutput(target).
		Get(imageURL)
	if err != nil {
		_ = os.Remove(target)
		return "", apperrors.NewDownload(imageURL, "image request failed", err)
	}
	if res.IsError() {
		_ = os.Remove(target)
		return "", apperrors.NewDownload(imageURL, "image request failed", fmt.Errorf("unexpected status code: %d", res.StatusCode()))
	}

	d.log.Debug().Str("employee", e.FullName()).Str("path", target).Msg("Photo saved")
	return target, nil
}

// DownloadAll downloads every employee's photo with at most limit
// downloads in flight. One failure never affects the others.
func (d *Downloader) DownloadAll(ctx context.Context, employees []directory.Employee, limit int) worker.Report {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	names := batchNames(employees)
	tasks := make([]worker.Task, len(employees))
	for i, e := range employees {
		tasks[i] = worker.Task{
			Name: e.FullName(),
			Run: func(ctx context.Context) error {
				return d.downloadOnce(ctx, e, names[i])
			},
		}
	}

	start := time.Now()
	report := worker.Run(ctx, tasks, limit)
	d.log.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("Photo batch finished")
	return report
}

// batchNames gives repeated full names a " (2)", " (3)" suffix so that
// namesakes in one batch never share a file. The first occurrence keeps
// the default name.
func batchNames(employees []directory.Employee) []string {
	names := make([]string, len(employees))
	seen := make(map[string]bool, len(employees))
	for i, e := range employees {
		full := e.FullName()
		if !seen[strings.ToLower(full)] {
			seen[strings.ToLower(full)] = true
			continue
		}
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s (%d)", full, n)
			if !seen[strings.ToLower(candidate)] {
				seen[strings.ToLower(candidate)] = true
				names[i] = candidate
				break
			}
		}
	}
	return names
}

func (d *Downloader) downloadOnce(ctx context.Context, e directory.Employee, name string) error {
	if d.ledger != nil {
		if p, found, err := d.ledger.Lookup(e.PageURL); err != nil {
			d.log.Warn().Err(err).Str("employee", e.FullName()).Msg("Photo ledger lookup failed")
		} else if found && fileExists(p) {
			d.log.Debug().Str("employee", e.FullName()).Str("path", p).Msg("Photo already downloaded")
			return nil
		}
	}

	target, err := d.Download(ctx, e, name)
	if err != nil {
		d.log.Error().Err(err).Str("employee", e.FullName()).Msg("Photo download failed")
		if d.failures != nil {
			if rerr := d.failures.RecordFailure(e.FullName(), err); rerr != nil {
				d.log.Warn().Err(rerr).Msg("Failed to record download failure")
			}
		}
		return err
	}

	if d.ledger != nil {
		if err := d.ledger.Record(e.PageURL, target); err != nil {
			d.log.Warn().Err(err).Str("employee", e.FullName()).Msg("Photo ledger record failed")
		}
	}
	return nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
