package infermedica

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Future is the pending result of a call started with [Go].
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on a new goroutine and returns immediately.
//
// It turns any client method into a non-blocking call:
//
//	symptoms := infermedica.Go(func() (json.RawMessage, error) {
//	    return client.Symptoms(ctx, "")
//	})
//	conditions := infermedica.Go(func() (json.RawMessage, error) {
//	    return client.Conditions(ctx, "")
//	})
//
//	s, err := symptoms.Await(ctx)
//	...
//	c, err := conditions.Await(ctx)
//
// A panic in fn is reported as the Future's error.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("panic in call: %v\n%s", r, debug.Stack())
			}
			close(f.done)
		}()
		f.value, f.err = fn()
	}()
	return f
}

// Done returns a channel that is closed when the call has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call finishes or ctx is done.
//
// Cancelling ctx stops the wait only. The call itself keeps running
// until its own context (the one passed to the client method) ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
