package commands

import (
	"context"
	"fmt"
)

// Task is a single unit of background work. Its result is delivered once;
// Wait may be called any number of times and from any goroutine.
type Task[T any] struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}

	// written once before done is closed
	result T
	err    error
}

// Start runs fn on a new goroutine with a context derived from parent.
// Cancelling the task or parent cancels that context.
func Start[T any](parent context.Context, name string, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(parent)
	t := &Task[T]{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				var zero T
				t.result = zero
				t.err = fmt.Errorf("task %s panicked: %v", name, r)
			}
		}()

		t.result, t.err = fn(ctx)
	}()

	return t
}

// Name returns the task name.
func (t *Task[T]) Name() string {
	return t.name
}

// Done is closed when the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Cancel asks the task to stop. It does not wait for it.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Wait blocks until the task finishes and returns its result.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}

