package gobrain

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

// TestFacadeTrainAndRun tests the public surface end to end.
func TestFacadeTrainAndRun(t *testing.T) {
	n, err := New(Config{Seed: 5})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data := []Sample{
		{Input: []float64{0, 0}, Output: []float64{0}},
		{Input: []float64{0, 1}, Output: []float64{1}},
		{Input: []float64{1, 0}, Output: []float64{1}},
		{Input: []float64{1, 1}, Output: []float64{1}},
	}

	res, err := n.TrainAsync(context.Background(), data, Options{"errorThresh": 0.1}).Wait()
	if err != nil {
		t.Fatalf("TrainAsync() error = %v", err)
	}
	if res.State != Converged {
		t.Errorf("State = %v, want %v", res.State, Converged)
	}

	if _, err := n.Run([]float64{1}); !errors.Is(err, ErrInvalidInputShape) {
		t.Errorf("Run() error = %v, want ErrInvalidInputShape", err)
	}
}
