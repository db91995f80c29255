package kinesisdemo

import (
	"context"
)

// Task is a handle on a poll running in its own goroutine.
type Task struct {
	done    chan struct{}
	cancel  context.CancelFunc
	summary *Summary
	err     error
}

func startTask(ctx context.Context, fn func(context.Context) (*Summary, error)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.summary, t.err = fn(ctx)
	}()
	return t
}

// Wait blocks until the poll finishes.
func (t *Task) Wait() (*Summary, error) {
	<-t.done
	return t.summary, t.err
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stop cancels the poll. Call Wait to observe the result.
func (t *Task) Stop() {
	t.cancel()
}
