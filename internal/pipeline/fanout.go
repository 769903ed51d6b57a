package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// ProgressReporter receives stage progress. The CLI plugs in a progress bar;
// everything else uses NopReporter.
type ProgressReporter interface {
	Start(total int, description string)
	Advance()
	Finish()
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) Start(int, string) {}
func (NopReporter) Advance()          {}
func (NopReporter) Finish()           {}

// RunParallel applies fn to every file with at most workers goroutines in
// flight. All files are attempted; the returned slice holds one error per
// failed file, annotated with the file name. Cancellation stops scheduling
// new files but lets running ones finish.
func RunParallel(ctx context.Context, files []string, workers int, reporter ProgressReporter, description string, fn func(ctx context.Context, file string) error) []error {
	if workers < 1 {
		workers = 1
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	reporter.Start(len(files), description)
	defer reporter.Finish()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	sem := make(chan struct{}, workers)

	for _, file := range files {
		if ctx.Err() != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", file, ctx.Err()))
			mu.Unlock()
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(file string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := fn(ctx, file); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", file, err))
				mu.Unlock()
			}
			reporter.Advance()
		}(file)
	}

	wg.Wait()
	return errs
}
