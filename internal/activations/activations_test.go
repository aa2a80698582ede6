// Package activations provides unit tests for activation functions.
package activations

import (
	"math"
	"testing"
)

// TestSigmoid tests Sigmoid activation.
func TestSigmoid(t *testing.T) {
	sigmoid := Sigmoid{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.5},
		{1.0, 0.7310585786300049},
		{-1.0, 0.2689414213699951},
		{10.0, 0.9999546021312976},
		{-10.0, 4.5397868702434395e-05},
	}

	for _, tt := range tests {
		output := sigmoid.Activate(tt.input)
		if math.Abs(output-tt.expected) > 1e-12 {
			t.Errorf("Sigmoid(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

// TestSigmoidBounds tests that sigmoid saturates without leaving [0, 1].
func TestSigmoidBounds(t *testing.T) {
	sigmoid := Sigmoid{}

	for _, x := range []float64{-1000, -50, 50, 1000} {
		y := sigmoid.Activate(x)
		if y < 0 || y > 1 || math.IsNaN(y) {
			t.Errorf("Sigmoid(%v) = %v, want value in [0, 1]", x, y)
		}
	}
}

// TestSigmoidDerivative tests the output-based derivative against a
// central finite difference.
func TestSigmoidDerivative(t *testing.T) {
	sigmoid := Sigmoid{}
	const h = 1e-6

	for _, x := range []float64{-3, -0.5, 0, 0.25, 2} {
		y := sigmoid.Activate(x)
		got := sigmoid.Derivative(y)
		want := (sigmoid.Activate(x+h) - sigmoid.Activate(x-h)) / (2 * h)
		if math.Abs(got-want) > 1e-8 {
			t.Errorf("Sigmoid.Derivative(%v) = %v, want %v", y, got, want)
		}
	}

	if got := sigmoid.Derivative(0.5); got != 0.25 {
		t.Errorf("Sigmoid.Derivative(0.5) = %v, want 0.25", got)
	}
}

// TestActivateInPlace tests element-wise activation.
func TestActivateInPlace(t *testing.T) {
	data := []float64{-1, 0, 1}
	ActivateInPlace(Sigmoid{}, data)

	want := []float64{0.2689414213699951, 0.5, 0.7310585786300049}
	for i := range data {
		if math.Abs(data[i]-want[i]) > 1e-12 {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}
