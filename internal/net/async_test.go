package net

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// TestTrainAsyncMatchesTrain tests that both execution modes compute the
// same trajectory from identical initial weights.
func TestTrainAsyncMatchesTrain(t *testing.T) {
	syncNet := newTestNetwork(t, Config{Seed: 7})
	asyncNet := newTestNetwork(t, Config{Seed: 7})
	opts := Options{"errorThresh": 0.05, "learningRate": 0.4}

	want, err := syncNet.Train(orData(), opts)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	got, err := asyncNet.TrainAsync(context.Background(), orData(), opts).Wait()
	if err != nil {
		t.Fatalf("TrainAsync() error = %v", err)
	}

	if got != want {
		t.Errorf("TrainAsync() = %+v, want %+v", got, want)
	}
	if wp, gp := syncNet.Params(), asyncNet.Params(); !floats.Equal(wp, gp) {
		t.Errorf("async params = %v, want %v", gp, wp)
	}
}

// TestTrainAsyncErrorThresh tests convergence through the async path.
func TestTrainAsyncErrorThresh(t *testing.T) {
	n := newTestNetwork(t, Config{})

	res, err := n.TrainAsync(context.Background(), orData(), Options{"errorThresh": 0.2}).Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if res.Error >= 0.2 {
		t.Errorf("Error = %v, want < 0.2", res.Error)
	}
}

// TestTrainAsyncIterations tests the iteration cap through the async path.
func TestTrainAsyncIterations(t *testing.T) {
	n := newTestNetwork(t, Config{})

	res, err := n.TrainAsync(context.Background(), orData(), Options{"iterations": 25}).Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if res.Iterations != 25 {
		t.Errorf("Iterations = %d, want 25", res.Iterations)
	}
}

// TestTrainAsyncCallbackOrder tests that epochs are reported in order with
// no gaps or duplicates.
func TestTrainAsyncCallbackOrder(t *testing.T) {
	n := newTestNetwork(t, Config{})
	var seen []int

	_, err := n.TrainAsync(context.Background(), orData(), Options{
		"iterations":     100,
		"errorThresh":    1e-9,
		"callbackPeriod": 1,
		"callback":       func(s Status) { seen = append(seen, s.Iterations) },
	}).Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(seen) != 100 {
		t.Fatalf("callback called %d times, want 100", len(seen))
	}
	for i, it := range seen {
		if it != i+1 {
			t.Fatalf("call %d at iteration %d, want %d", i, it, i+1)
		}
	}
}

// TestTrainAsyncDoesNotBlock tests that TrainAsync returns while the loop runs.
func TestTrainAsyncDoesNotBlock(t *testing.T) {
	n := newTestNetwork(t, Config{})
	release := make(chan struct{})

	f := n.TrainAsync(context.Background(), orData(), Options{
		"iterations":     1,
		"callbackPeriod": 1,
		"callback":       func(Status) { <-release },
	})

	select {
	case <-f.Done():
		t.Fatal("Done() closed while the callback is blocked")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	if _, err := f.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	select {
	case <-f.Done():
	default:
		t.Error("Done() not closed after Wait() returned")
	}
}

// TestTrainAsyncInvalidOption tests that validation errors surface through
// the future as training failures.
func TestTrainAsyncInvalidOption(t *testing.T) {
	n := newTestNetwork(t, Config{})

	_, err := n.TrainAsync(context.Background(), orData(), Options{"iterations": "many"}).Wait()
	if !errors.Is(err, ErrTrainingFailed) {
		t.Fatalf("Wait() error = %v, want ErrTrainingFailed", err)
	}
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Wait() error = %v, want cause ErrInvalidOption", err)
	}
}

// TestTrainAsyncInvalidShape tests shape errors through the future.
func TestTrainAsyncInvalidShape(t *testing.T) {
	n := newTestNetwork(t, Config{Sizes: []int{3, 2, 1}})

	_, err := n.TrainAsync(context.Background(), orData(), nil).Wait()
	if !errors.Is(err, ErrTrainingFailed) || !errors.Is(err, ErrInvalidInputShape) {
		t.Errorf("Wait() error = %v, want training failure caused by ErrInvalidInputShape", err)
	}
}

// TestTrainAsyncPanic tests that a panicking callback fails the future.
func TestTrainAsyncPanic(t *testing.T) {
	n := newTestNetwork(t, Config{})

	_, err := n.TrainAsync(context.Background(), orData(), Options{
		"callbackPeriod": 1,
		"callback":       func(Status) { panic("boom") },
	}).Wait()
	if !errors.Is(err, ErrTrainingFailed) {
		t.Errorf("Wait() error = %v, want ErrTrainingFailed", err)
	}
}

// TestTrainAsyncCancel tests cancelling a running future.
func TestTrainAsyncCancel(t *testing.T) {
	n := newTestNetwork(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{}, 1)

	f := n.TrainAsync(ctx, contradictoryData(), Options{
		"errorThresh":    0.01,
		"iterations":     1e9,
		"callbackPeriod": 1,
		"callback": func(Status) {
			select {
			case started <- struct{}{}:
			default:
			}
		},
	})
	<-started
	cancel()

	res, err := f.Wait()
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
	if res.State != Cancelled {
		t.Errorf("State = %v, want %v", res.State, Cancelled)
	}
}

// TestFutureThen tests the completion continuation.
func TestFutureThen(t *testing.T) {
	n := newTestNetwork(t, Config{})
	got := make(chan Result, 1)

	n.TrainAsync(context.Background(), orData(), Options{"iterations": 5}).Then(func(res Result, err error) {
		if err != nil {
			t.Errorf("Then() error = %v", err)
		}
		got <- res
	})

	select {
	case res := <-got:
		if res.Iterations != 5 {
			t.Errorf("Iterations = %d, want 5", res.Iterations)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Then() callback never ran")
	}
}

// TestTrainAsyncConcurrentNetworks tests independent networks training in parallel.
func TestTrainAsyncConcurrentNetworks(t *testing.T) {
	nets := make([]*Network, 4)
	futures := make([]*Future, len(nets))
	for i := range nets {
		nets[i] = newTestNetwork(t, Config{Seed: 11})
		futures[i] = nets[i].TrainAsync(context.Background(), orData(), Options{"iterations": 200})
	}

	var first Result
	for i, f := range futures {
		res, err := f.Wait()
		if err != nil {
			t.Fatalf("future %d error = %v", i, err)
		}
		if i == 0 {
			first = res
		} else if res != first {
			t.Errorf("future %d = %+v, want %+v", i, res, first)
		}
	}
}
