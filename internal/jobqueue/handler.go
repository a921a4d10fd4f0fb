// Package jobqueue implements the bounded worker pool shared by the
// massive-ingest and synchronization paths: a fixed number of workers drain
// a shared task queue and push results to a channel supplied by the caller,
// while per-task failures are captured and re-raised as a single aggregated
// error once every worker has drained.
package jobqueue

import (
	"context"
	"errors"
	"sync"

	"github.com/hepsw/rfm/internal/rfmerr"
)

// Task is an independent unit of work; tasks may run in any order relative
// to one another.
type Task[T any] func(ctx context.Context) (T, error)

// Result is pushed to the caller-supplied results channel as each task
// completes.
type Result[T any] struct {
	Value T
	Err   error
}

// WorkerError aggregates one or more task failures collected by Process
// once every worker has drained its queue.
type WorkerError = rfmerr.WorkerError

// ErrHandlerReused is returned by Process when called on a handler that has
// already run to completion; a Handler is not reusable after a failure (or
// after a successful run).
var ErrHandlerReused = errors.New("rfm: job handler already processed")

// Handler is a bounded worker pool fixed at construction to N workers.
type Handler[T any] struct {
	workers int
	results chan<- Result[T]

	mu      sync.Mutex
	pending []Task[T]
	done    bool
}

// NewHandler builds a handler with the given worker count (clamped to at
// least 1) delivering results to results as tasks complete. The caller
// drains results after Process returns.
func NewHandler[T any](workers int, results chan<- Result[T]) *Handler[T] {
	if workers < 1 {
		workers = 1
	}
	return &Handler[T]{workers: workers, results: results}
}

// Submit enqueues a task. Tasks submitted before Process is called are all
// dispatched to the worker pool; Submit after Process has started is not
// supported.
func (h *Handler[T]) Submit(task Task[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, task)
}

// Process blocks until every submitted task has completed, then returns.
// Ordering across workers is unspecified; the shared queue is drained FIFO.
// If any task failed, Process returns a *rfmerr.WorkerError aggregating
// every failure only after all workers have drained their queue; in-flight
// tasks are never cancelled.
func (h *Handler[T]) Process(ctx context.Context) error {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return ErrHandlerReused
	}
	h.done = true
	tasks := h.pending
	h.pending = nil
	h.mu.Unlock()

	if len(tasks) == 0 {
		return nil
	}

	queue := make(chan Task[T], h.workers)
	var wg sync.WaitGroup

	var failMu sync.Mutex
	var failures []error

	for i := 0; i < h.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				value, err := task(ctx)
				if err != nil {
					failMu.Lock()
					failures = append(failures, err)
					failMu.Unlock()
				}
				h.results <- Result[T]{Value: value, Err: err}
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	wg.Wait()

	if len(failures) > 0 {
		return &rfmerr.WorkerError{Failures: failures}
	}
	return nil
}
