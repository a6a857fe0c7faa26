// SPDX-License-Identifier: MIT

// Package bench provides the outer-level parallelism of spec.md §5: a
// bounded worker pool that runs engine.Run over many independent graphs
// concurrently. This is explicitly outside the core's own concurrency
// model — each individual Run is still single-threaded.
package bench

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/engine"
)

// Job is one graph to run with its own settings.
type Job struct {
	Name     string
	Graph    *core.Graph
	Settings engine.Settings
}

// Result pairs a Job's outcome back with its name, since results arrive out
// of submission order.
type Result struct {
	Name    string
	Tree    *community.Tree
	Summary engine.RunSummary
	Err     error
}

// Pool runs Jobs with at most Concurrency running at once, via a
// golang.org/x/sync/semaphore weighted semaphore (the library's own
// concurrency primitive takes no goroutines to acquire/release, consistent
// with spec.md §5's "no suspension points" inside the core itself).
type Pool struct {
	Concurrency int64
}

// NewPool returns a Pool bounded to concurrency simultaneous Runs.
func NewPool(concurrency int64) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{Concurrency: concurrency}
}

// Run executes every job, returning one Result per job in the same order
// jobs were given (not necessarily the order they completed). ctx is
// forwarded to every engine.Run call and to the semaphore acquire, so
// canceling ctx also stops jobs still queued for a worker slot.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	sem := semaphore.NewWeighted(p.Concurrency)
	results := make([]Result, len(jobs))
	errCh := make(chan error, len(jobs))

	for i, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return results, fmt.Errorf("bench: Pool.Run: %w", err)
		}

		go func(i int, job Job) {
			defer sem.Release(1)
			tree, summary, err := engine.Run(ctx, job.Graph, job.Settings)
			results[i] = Result{Name: job.Name, Tree: tree, Summary: summary, Err: err}
			errCh <- err
		}(i, job)
	}

	for range jobs {
		<-errCh
	}

	return results, nil
}
