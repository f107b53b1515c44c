// Package batchprocessor runs independent tasks under a fixed concurrency ceiling.
package batchprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrNotStarted marks tasks that were never admitted before the context ended
	ErrNotStarted = errors.New("task not started")
	// ErrAbandoned marks tasks still running when the context ended
	ErrAbandoned = errors.New("task abandoned")
	// ErrTaskPanic marks tasks that panicked
	ErrTaskPanic = errors.New("task panicked")
)

// BatchProcessorConfig holds configuration for batch processing
type BatchProcessorConfig struct {
	MaxConcurrent int           // Max tasks in flight (default: 3)
	TaskTimeout   time.Duration // Timeout per task, zero disables (default: 45 seconds)
}

// DefaultBatchProcessorConfig returns default configuration
func DefaultBatchProcessorConfig() BatchProcessorConfig {
	return BatchProcessorConfig{
		MaxConcurrent: 3,
		TaskTimeout:   45 * time.Second,
	}
}

// Task is one unit of work. It must honour ctx to be abandoned cleanly.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the outcome of the task submitted at Index
type Result[T any] struct {
	Index    int
	Value    T
	Err      error
	Duration time.Duration
}

// BatchProcessor bounds how many tasks run at once
type BatchProcessor struct {
	config BatchProcessorConfig
	logger zerolog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(config BatchProcessorConfig, logger zerolog.Logger) *BatchProcessor {
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	return &BatchProcessor{
		config: config,
		logger: logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// MaxConcurrent returns the concurrency ceiling
func (bp *BatchProcessor) MaxConcurrent() int {
	return bp.config.MaxConcurrent
}

// Process runs every task at most once and returns exactly one Result per task,
// in submission order. When ctx ends, tasks not yet admitted report
// ErrNotStarted and tasks still in flight report ErrAbandoned; Process then
// returns without waiting for them.
func Process[T any](ctx context.Context, bp *BatchProcessor, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	sem := semaphore.NewWeighted(int64(bp.config.MaxConcurrent))
	completed := make(chan Result[T], len(tasks))
	started := 0

	bp.logger.Debug().
		Int("task_count", len(tasks)).
		Int("max_concurrent", bp.config.MaxConcurrent).
		Msg("Starting batch processing")

	for i, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		started++

		go func(index int, task Task[T]) {
			defer sem.Release(1)
			completed <- runTask(ctx, bp, index, task)
		}(i, task)
	}

	filled := make([]bool, len(tasks))
	received := 0

collect:
	for received < started {
		select {
		case r := <-completed:
			results[r.Index] = r
			filled[r.Index] = true
			received++
		case <-ctx.Done():
			break collect
		}
	}

	// results that arrived together with the deadline still count
drain:
	for received < started {
		select {
		case r := <-completed:
			results[r.Index] = r
			filled[r.Index] = true
			received++
		default:
			break drain
		}
	}

	abandoned, notStarted := 0, 0
	for i := range results {
		if filled[i] {
			continue
		}
		results[i].Index = i
		if i < started {
			results[i].Err = fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err())
			abandoned++
		} else {
			results[i].Err = fmt.Errorf("%w: %w", ErrNotStarted, ctx.Err())
			notStarted++
		}
	}

	if abandoned > 0 || notStarted > 0 {
		bp.logger.Warn().
			Err(ctx.Err()).
			Int("completed", received).
			Int("abandoned", abandoned).
			Int("not_started", notStarted).
			Msg("Batch processing interrupted by context cancellation")
	} else {
		bp.logger.Debug().Int("completed", received).Msg("Batch processing completed")
	}

	return results
}

// runTask executes one task under its own timeout and converts panics into errors
func runTask[T any](ctx context.Context, bp *BatchProcessor, index int, task Task[T]) (result Result[T]) {
	start := time.Now()
	result.Index = index

	taskCtx := ctx
	if bp.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, bp.config.TaskTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
			bp.logger.Error().
				Int("task_index", index).
				Interface("panic", r).
				Msg("Task panicked")
		}
		result.Duration = time.Since(start)
	}()

	result.Value, result.Err = task(taskCtx)
	return result
}
