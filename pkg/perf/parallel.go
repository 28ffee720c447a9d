// Package perf provides bounded-concurrency helpers.
package perf

import (
	"context"
	"fmt"
	"sync"
)

// Result carries the outcome of one task in a Map call.
type Result[R any] struct {
	Value R
	Err   error
}

// Map runs fn over items with at most concurrency calls in flight and
// returns one result per item, in input order.
//
// Errors are per-item: one failing task never cancels its siblings, so a
// batch reports every outcome. Cancelling ctx stops tasks that have not
// started; tasks already running see the cancelled context through their
// own ctx parameter. Panics in fn are captured as errors rather than
// taking down the process.
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), concurrency int) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}
			if ctx.Err() != nil {
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			defer func() {
				if r := recover(); r != nil {
					results[idx] = Result[R]{Err: fmt.Errorf("task panic: %v", r)}
				}
			}()
			value, err := fn(ctx, it)
			results[idx] = Result[R]{Value: value, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}

// FirstError returns the first non-nil error in results, or nil.
func FirstError[R any](results []Result[R]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
