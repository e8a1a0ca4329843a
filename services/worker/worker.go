package worker

import (
	"context"
	"encoding/json"
	"sync"

	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
	"sjsage522/dirscraper/services/publisher"
)

// Scraper is the part of directory.Scraper the worker needs
type Scraper interface {
	Scrape(ctx context.Context) ([]directory.Employee, error)
	Profile() directory.Profile
}

var _ Scraper = (*directory.Scraper)(nil)

// Worker scrapes several directories in parallel and optionally publishes
// every record
type Worker struct {
	scrapers  []Scraper
	publisher publisher.Publisher
	log       *logger.Logger
	limit     int
}

// NewWorker creates a worker. pub may be nil, in which case records are
// only collected.
func NewWorker(scrapers []Scraper, pub publisher.Publisher, limit int) *Worker {
	return &Worker{
		scrapers:  scrapers,
		publisher: pub,
		log:       logger.ForWorker(),
		limit:     limit,
	}
}

// WithLogger replaces the worker's logger
func (w *Worker) WithLogger(log *logger.Logger) *Worker {
	w.log = log
	return w
}

// Run scrapes every directory and returns the records per profile name.
// A failing directory is logged and reported; the others still complete.
func (w *Worker) Run(ctx context.Context) (map[string][]directory.Employee, Report) {
	var mu sync.Mutex
	collected := make(map[string][]directory.Employee, len(w.scrapers))

	tasks := make([]Task, 0, len(w.scrapers))
	for _, s := range w.scrapers {
		name := s.Profile().Name
		tasks = append(tasks, Task{
			Name: name,
			Run: func(ctx context.Context) error {
				employees, err := w.scrapeAndPublish(ctx, s)
				if err != nil {
					return err
				}
				mu.Lock()
				collected[name] = employees
				mu.Unlock()
				return nil
			},
		})
	}

	report := Run(ctx, tasks, w.limit)
	for _, failure := range report.Failures() {
		w.log.Error().Err(failure.Err).Str("directory", failure.Name).Msg("Directory scrape failed")
	}

	if w.publisher != nil {
		if err := w.publisher.TrimStreams(ctx); err != nil {
			w.log.Error().Err(err).Msg("Stream trimming failed")
		}
	}

	return collected, report
}

func (w *Worker) scrapeAndPublish(ctx context.Context, s Scraper) ([]directory.Employee, error) {
	employees, err := s.Scrape(ctx)
	if err != nil {
		return nil, err
	}
	if w.publisher == nil {
		return employees, nil
	}

	name := s.Profile().Name
	published := 0
	for _, employee := range employees {
		data, err := json.Marshal(employee)
		if err == nil {
			err = w.publisher.Publish(ctx, name, data)
		}
		if err != nil {
			w.log.Warn().Err(err).Str("directory", name).Str("employee", employee.FullName()).Msg("Record not published")
			continue
		}
		published++
	}

	w.log.Debug().Str("directory", name).Int("published", published).Int("scraped", len(employees)).Msg("Records published")
	return employees, nil
}
