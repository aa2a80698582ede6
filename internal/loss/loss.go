// Package loss provides the error metric reported by training.
package loss

import "gonum.org/v1/gonum/floats"

// Loss reduces the output error of one sample to a scalar.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Reduce computes the loss from already computed output errors
	// (yTrue - yPred), as left by the backward pass.
	Reduce(errs []float64) float64
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}

	diff := make([]float64, n)
	floats.SubTo(diff, yTrue, yPred)
	return m.Reduce(diff)
}

// Reduce computes (1/n) * sum(e^2)
func (m MSE) Reduce(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	return floats.Dot(errs, errs) / float64(len(errs))
}
