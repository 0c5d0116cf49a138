// Package shutdownqueue holds a process-wide LIFO queue of cleanup
// tasks, drained once at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx)
//
// Tasks run in reverse registration order. Panics are recovered and
// reported; Shutdown is idempotent and aggregates errors via
// errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it can't finish (or ctx is canceled).
type Task func(ctx context.Context) error

type queue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
}

var q = &queue{}

// Add registers a task to run on Shutdown, in LIFO order. Safe from any
// goroutine. Nil tasks and tasks added after shutdown started are
// ignored.
func Add(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, t)
}

// Shutdown drains all registered tasks in LIFO order. After the first
// call, later calls are no-ops.
//
// If ctx ends mid-drain, Shutdown stops before the next task and the
// returned error includes the context error alongside any task errors.
func Shutdown(ctx context.Context) error {
	q.mu.Lock()

	tasks := q.tasks
	q.tasks = nil
	q.closed = true

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, tasks[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// runTask executes one task, converting a panic into an error so the
// rest of the queue still drains.
func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
