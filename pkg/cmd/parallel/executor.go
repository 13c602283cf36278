package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxWorkers is the worker limit used when none is configured.
	DefaultMaxWorkers = 8
	// MaxWorkersCap caps the worker limit to avoid overwhelming the docker daemon and registries.
	MaxWorkersCap = 32
)

// Stack is a LIFO of jobs shared by several workers. Each job is popped at most once.
type Stack[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewStack returns a stack holding a copy of items; the last item is popped first.
func NewStack[T any](items []T) *Stack[T] {
	return &Stack[T]{items: append([]T(nil), items...)}
}

// Pop removes and returns the top job. It reports false once the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	if len(s.items) == 0 {
		return zero, false
	}

	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]

	return item, true
}

// Len returns the number of jobs left.
func (s *Stack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Workers returns the pool size for the given number of jobs: at least one, at most
// limit, and never more than there are jobs. A non-positive limit means DefaultMaxWorkers.
func Workers(jobs, limit int) int {
	if limit <= 0 {
		limit = DefaultMaxWorkers
	}

	return max(1, min(jobs, limit, MaxWorkersCap))
}

// Drain starts workers goroutines that pop jobs from stack and run fn on each until the
// stack is empty. The first error cancels the context handed to the other workers,
// which stop before their next job, and is returned once every worker has exited.
func Drain[T any](
	ctx context.Context,
	stack *Stack[T],
	workers int,
	fn func(ctx context.Context, job T) error,
) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for range max(1, workers) {
		group.Go(func() error {
			for {
				if err := groupCtx.Err(); err != nil {
					return fmt.Errorf("worker stopped: %w", err)
				}

				job, ok := stack.Pop()
				if !ok {
					return nil
				}

				if err := fn(groupCtx, job); err != nil {
					return err
				}
			}
		})
	}

	return group.Wait()
}

// SyncWriter is a thread-safe writer that serializes writes from multiple goroutines.
type SyncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewSyncWriter creates a new synchronized writer wrapping the given writer.
func NewSyncWriter(writer io.Writer) *SyncWriter {
	return &SyncWriter{writer: writer}
}

// Write writes data to the underlying writer with synchronization.
func (syncWriter *SyncWriter) Write(data []byte) (int, error) {
	syncWriter.mu.Lock()
	defer syncWriter.mu.Unlock()

	written, writeErr := syncWriter.writer.Write(data)
	if writeErr != nil {
		return written, fmt.Errorf("sync write: %w", writeErr)
	}

	return written, nil
}
