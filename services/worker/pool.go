package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of work for Run
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result records the outcome of one task
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Report summarizes a Run. Results keep the order of the submitted tasks.
type Report struct {
	Results   []Result
	Succeeded int
	Failed    int
}

// Failures returns the results that carry an error
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins every task error, or returns nil when all tasks succeeded
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failures() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
	}
	return errors.Join(errs...)
}

// Run executes tasks with at most limit running at once (limit <= 0 means
// no bound). A failing task never stops the others. Tasks not yet started
// when ctx is cancelled are reported with ctx's error.
func Run(ctx context.Context, tasks []Task, limit int) Report {
	results := make([]Result, len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = runTask(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results}
	for _, res := range results {
		if res.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}
	return report
}

func runTask(ctx context.Context, task Task) (res Result) {
	res.Name = task.Name
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	res.Err = task.Run(ctx)
	return res
}
