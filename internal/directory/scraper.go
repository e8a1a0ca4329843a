package directory

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

// DefaultContainer is the entry selector used by the Brightspot directories
const DefaultContainer = "div.ListVerticalImage-items-item"

// Fetcher retrieves a page as UTF-8 HTML
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (io.Reader, error)
}

// ContainerSelector accepts either a CSS selector or a bare class name
// ("ListVerticalImage-items-item") and returns a selector.
func ContainerSelector(container string) string {
	if container == "" {
		return DefaultContainer
	}
	if strings.ContainsAny(container, ".#[ >:") {
		return container
	}
	return "." + container
}

// Fragments parses a directory document and yields every entry matching
// container, in document order. Iteration is lazy.
func Fragments(r io.Reader, container string) (iter.Seq2[int, *goquery.Selection], error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, apperrors.NewParsing("directory", "failed to parse HTML", err)
	}
	return doc.Find(ContainerSelector(container)).EachIter(), nil
}

// Scraper turns a directory page into employee records
type Scraper struct {
	fetcher     Fetcher
	profile     Profile
	skipInvalid bool
	log         *logger.Logger
}

// NewScraper creates a scraper for one profile. With skipInvalid set,
// entries missing a required field are logged and dropped instead of
// failing the whole scrape.
func NewScraper(fetcher Fetcher, profile Profile, skipInvalid bool) *Scraper {
	return &Scraper{
		fetcher:     fetcher,
		profile:     profile,
		skipInvalid: skipInvalid,
		log:         logger.ForScraper(profile.Name),
	}
}

// WithLogger replaces the scraper's logger
func (s *Scraper) WithLogger(log *logger.Logger) *Scraper {
	s.log = log
	return s
}

// Profile returns the profile the scraper was built with
func (s *Scraper) Profile() Profile {
	return s.profile
}

// FetchDirectory fetches pageURL and returns its entries
func (s *Scraper) FetchDirectory(ctx context.Context, pageURL, container string) (iter.Seq2[int, *goquery.Selection], error) {
	body, err := s.fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, apperrors.NewNetwork(s.profile.Name, "failed to fetch directory", err)
	}
	return Fragments(body, container)
}

// Scrape fetches the profile's directory URL
func (s *Scraper) Scrape(ctx context.Context) ([]Employee, error) {
	return s.ScrapeURL(ctx, s.profile.URL)
}

// ScrapeURL fetches pageURL and extracts every entry. Relative page links
// are resolved against pageURL.
func (s *Scraper) ScrapeURL(ctx context.Context, pageURL string) ([]Employee, error) {
	if pageURL == "" {
		return nil, apperrors.NewValidation(s.profile.Name, "directory URL is empty")
	}

	fragments, err := s.FetchDirectory(ctx, pageURL, s.profile.Container)
	if err != nil {
		return nil, err
	}

	var (
		employees []Employee
		skipped   int
	)
	for i, fragment := range fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		employee, err := s.profile.FromFragment(fragment)
		if err != nil {
			if !s.skipInvalid {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			skipped++
			s.log.Warn().Err(err).Int("entry", i).Msg("Skipping directory entry")
			continue
		}

		employee.PageURL = resolveURL(pageURL, employee.PageURL)
		employees = append(employees, employee)
	}

	s.log.Info().
		Int("employees", len(employees)).
		Int("skipped", skipped).
		Str("url", pageURL).
		Msg("Directory scraped")

	return employees, nil
}

// resolveURL returns href as an absolute URL relative to base
func resolveURL(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
