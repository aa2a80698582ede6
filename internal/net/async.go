package net

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Future is the deferred result of TrainAsync. It completes exactly once,
// with a Result or with a *TrainingFailedError.
type Future struct {
	g    errgroup.Group
	done chan struct{}
	res  Result
}

// TrainAsync runs the same training loop as TrainContext on its own
// goroutine and returns immediately. Every error, validation errors
// included, is delivered through the Future wrapped in a
// *TrainingFailedError. The network stays locked until the run ends.
func (n *Network) TrainAsync(ctx context.Context, data []Sample, opts Options) *Future {
	f := &Future{done: make(chan struct{})}
	f.g.Go(func() (err error) {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				err = trainingFailed(errors.Errorf("panic: %v", r))
			}
		}()

		f.res, err = n.TrainContext(ctx, data, opts)
		return trainingFailed(err)
	})
	return f
}

// Done is closed once the run has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the run completes and returns its outcome.
func (f *Future) Wait() (Result, error) {
	err := f.g.Wait()
	return f.res, err
}

// Then calls fn with the outcome on a new goroutine once the run completes.
func (f *Future) Then(fn func(Result, error)) {
	go func() {
		fn(f.Wait())
	}()
}
