// Package opt provides the weight update rule.
package opt

import "gonum.org/v1/gonum/mat"

// Optimizer updates a layer's parameters in-place from its deltas.
type Optimizer interface {
	// Step updates the weight matrix w given the downstream deltas and the
	// upstream activations, keeping its state in changes.
	Step(w, changes *mat.Dense, delta, input mat.Vector)

	// StepVec updates the bias vector b; the upstream activation of a bias
	// is implicitly 1.
	StepVec(b, changes *mat.VecDense, delta mat.Vector)
}

// Momentum is online gradient descent with a momentum term:
//
//	change = LearningRate * delta_i * input_j + Momentum * previous_change_ij
//	w_ij += change
//
// The change is stored back into the changes buffer for the next step.
type Momentum struct {
	LearningRate float64
	Momentum     float64
}

// Step applies the update rule to w and records the change.
func (m Momentum) Step(w, changes *mat.Dense, delta, input mat.Vector) {
	changes.Scale(m.Momentum, changes)
	changes.RankOne(changes, m.LearningRate, delta, input)
	w.Add(w, changes)
}

// StepVec applies the update rule to b and records the change.
func (m Momentum) StepVec(b, changes *mat.VecDense, delta mat.Vector) {
	changes.ScaleVec(m.Momentum, changes)
	changes.AddScaledVec(changes, m.LearningRate, delta)
	b.AddVec(b, changes)
}
