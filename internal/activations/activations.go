// Package activations provides the activation function used by every layer.
package activations

import "math"

// Activation is an activation function whose derivative is expressed
// through its own output, so backpropagation never needs the
// pre-activation value.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x)
	Derivative(y float64) float64
}

// Sigmoid is the logistic function 1/(1+e^-x).
type Sigmoid struct{}

// Activate computes 1/(1+e^-x)
func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative computes y * (1 - y)
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// ActivateInPlace applies act to every element of data.
func ActivateInPlace(act Activation, data []float64) {
	for i, x := range data {
		data[i] = act.Activate(x)
	}
}
