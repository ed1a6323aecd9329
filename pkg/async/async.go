package async

import (
	"context"
	"time"
)

// Future represents the eventual result of an asynchronous computation.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Result pairs one settled outcome with its error, mirroring the
// "allSettled" shape: a batch of Results always has one entry per input.
type Result[T any] struct {
	Value T
	Err   error
}

// Go executes fn on its own goroutine and returns a Future for its result.
// If ctx is already cancelled the function is not invoked and the Future
// settles with the context error.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation completes and returns its outcome.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout blocks until completion or the timeout, whichever comes
// first. On timeout it returns ErrTimeout; the computation keeps running
// and can still be awaited later.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports completion without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Settle awaits every future and returns all outcomes in input order.
// Unlike a fail-fast wait, a failed future neither short-circuits the wait
// nor affects its siblings.
func Settle[T any](futures ...*Future[T]) []Result[T] {
	results := make([]Result[T], len(futures))
	for i, f := range futures {
		value, err := f.Await()
		results[i] = Result[T]{Value: value, Err: err}
	}
	return results
}
