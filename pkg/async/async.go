package async

import (
	"context"
	"time"
)

// Future holds the eventual result of a function started with Async.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the function finishes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout is Await with an upper bound on how long to block.
// On timeout it returns ErrTimeout; the underlying function keeps running
// and a later Await still observes its result.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// Async runs fn in its own goroutine and returns a Future for its result.
// The notification dispatcher uses this to fan a message out to every
// channel without letting one slow provider block the others.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// A pre-canceled context skips the work entirely.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}
