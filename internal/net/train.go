package net

import (
	"context"
	"time"

	"github.com/FlavioCFOliveira/GoBrain/internal/opt"
	"gonum.org/v1/gonum/floats"
)

// State is the state of a training run. A finished run reports one of the
// terminal states: Converged, MaxIterationsReached, TimedOut or Cancelled.
type State int

const (
	// Idle is the zero State; no run has started.
	Idle State = iota
	// Running is the state between epochs while no stopping criterion holds.
	Running
	// Converged means the epoch error reached errorThresh.
	Converged
	// MaxIterationsReached means the iteration cap was hit first.
	MaxIterationsReached
	// TimedOut means the wall-clock timeout elapsed first.
	TimedOut
	// Cancelled means the context was done before an epoch started.
	Cancelled
)

// String returns the lower-case name of s, as used in log lines.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result is the snapshot produced when training stops.
type Result struct {
	// Error is the mean sample error of the last epoch, or 1 if no epoch ran.
	Error      float64
	Iterations int
	State      State
}

// Train runs online gradient descent over data until the error threshold,
// the iteration cap or the timeout is reached, and returns the result.
//
// Options are validated and every sample is checked against the layer
// sizes before the first epoch. A network without sizes is initialized
// from the first sample.
func (n *Network) Train(data []Sample, opts Options) (Result, error) {
	return n.TrainContext(context.Background(), data, opts)
}

// TrainContext is Train with a context checked between epochs. A cancelled
// run returns its last result with State Cancelled and a
// *TrainingFailedError wrapping ctx.Err().
func (n *Network) TrainContext(ctx context.Context, data []Sample, opts Options) (Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	o, err := n.updateTrainingOptions(opts)
	if err != nil {
		return Result{}, err
	}
	sizes := n.sizes
	if n.layers == nil {
		if sizes, err = n.inferSizes(data); err != nil {
			return Result{}, err
		}
	}
	if err := checkData(data, sizes); err != nil {
		return Result{}, err
	}
	if n.layers == nil {
		if err := n.initialize(sizes); err != nil {
			return Result{}, err
		}
	}
	return n.trainLoop(ctx, data, o)
}

// trainLoop drives epochs until a terminal state. n.mu must be held.
func (n *Network) trainLoop(ctx context.Context, data []Sample, o TrainOptions) (Result, error) {
	optimizer := opt.Momentum{LearningRate: o.LearningRate, Momentum: o.Momentum}
	errs := make([]float64, len(data))
	res := Result{Error: 1, State: Running}
	start := time.Now()

	for res.State == Running {
		if err := ctx.Err(); err != nil {
			res.State = Cancelled
			return res, trainingFailed(err)
		}

		for i := range data {
			errs[i] = n.trainSample(&data[i], optimizer)
		}
		res.Error = floats.Sum(errs) / float64(len(data))
		res.Iterations++

		status := Status{Iterations: res.Iterations, Error: res.Error}
		if o.Callback != nil && res.Iterations%o.CallbackPeriod == 0 {
			o.Callback(status)
		}
		if o.Log != nil && res.Iterations%o.LogPeriod == 0 {
			o.Log(status)
		}

		res.State = nextState(res, o, time.Since(start))
	}
	return res, nil
}

// nextState evaluates the stopping criteria in order: error threshold,
// iteration cap, timeout.
func nextState(res Result, o TrainOptions, elapsed time.Duration) State {
	switch {
	case res.Error <= o.ErrorThresh:
		return Converged
	case res.Iterations >= o.Iterations:
		return MaxIterationsReached
	case o.Timeout > 0 && elapsed >= o.Timeout:
		return TimedOut
	}
	return Running
}
