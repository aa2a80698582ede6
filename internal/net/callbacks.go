package net

import (
	"context"
	"log"
	"math"
	"sync"
)

// Status is a read-only progress snapshot handed to callbacks and loggers.
type Status struct {
	Iterations int
	Error      float64
}

// Callback is invoked every CallbackPeriod epochs, synchronously with the
// training loop. It must not call back into the network being trained.
type Callback func(Status)

// LogFunc receives a progress snapshot every LogPeriod epochs.
type LogFunc func(Status)

// loggerSink logs progress lines through l.
func loggerSink(l *log.Logger) LogFunc {
	return func(s Status) {
		l.Printf("iterations: %d, training error: %f", s.Iterations, s.Error)
	}
}

// EarlyStopping cancels a training run once the error has stopped improving.
// Use Callback as the "callback" option and train with the context returned
// by NewEarlyStopping.
type EarlyStopping struct {
	Patience int
	MinDelta float64

	mu           sync.Mutex
	bestError    float64
	numBadChecks int
	stopped      bool
	cancel       context.CancelFunc
}

// NewEarlyStopping derives a cancellable context from parent. The run is
// cancelled after patience consecutive callbacks whose error did not drop
// by more than minDelta below the best error seen.
func NewEarlyStopping(parent context.Context, patience int, minDelta float64) (*EarlyStopping, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	return &EarlyStopping{
		Patience:  patience,
		MinDelta:  minDelta,
		bestError: math.Inf(1),
		cancel:    cancel,
	}, ctx
}

// Callback records s and cancels the run when patience is exhausted.
func (c *EarlyStopping) Callback(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Error < c.bestError-c.MinDelta {
		c.bestError = s.Error
		c.numBadChecks = 0
		return
	}

	c.numBadChecks++
	if c.numBadChecks >= c.Patience && !c.stopped {
		c.stopped = true
		c.cancel()
	}
}

// Stopped reports whether the run was cancelled by this callback.
func (c *EarlyStopping) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Release frees the context resources once training has returned.
func (c *EarlyStopping) Release() {
	c.cancel()
}
