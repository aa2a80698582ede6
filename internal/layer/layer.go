// Package layer provides the fully connected layer that holds the network state.
package layer

import (
	"math/rand"

	"github.com/FlavioCFOliveira/GoBrain/internal/activations"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// InitRange bounds the uniform distribution new weights and biases are drawn from.
const InitRange = 0.2

// Dense is a fully connected layer between an upstream layer of inSize
// neurons and a downstream layer of outSize neurons.
//
// Weights are stored as an outSize x inSize matrix: row i holds the weights
// feeding downstream neuron i. The activation, error and delta vectors are
// overwritten by every Forward/Backward call. The changes buffers keep the
// previous update for the momentum term and survive across training calls.
type Dense struct {
	weights *mat.Dense
	biases  *mat.VecDense
	act     activations.Activation
	outSize int
	inSize  int

	// Upstream activation seen by the last Forward call
	input  *mat.VecDense
	output *mat.VecDense
	errors *mat.VecDense
	delta  *mat.VecDense

	changes     *mat.Dense
	biasChanges *mat.VecDense
}

// NewDense creates a layer with weights and biases drawn uniformly from
// [-InitRange, InitRange) and zeroed changes buffers.
func NewDense(in, out int, act activations.Activation, rnd *rand.Rand) *Dense {
	if in <= 0 || out <= 0 {
		panic("layer: dense sizes must be positive")
	}

	d := &Dense{
		weights:     mat.NewDense(out, in, nil),
		biases:      mat.NewVecDense(out, nil),
		act:         act,
		outSize:     out,
		inSize:      in,
		input:       mat.NewVecDense(in, nil),
		output:      mat.NewVecDense(out, nil),
		errors:      mat.NewVecDense(out, nil),
		delta:       mat.NewVecDense(out, nil),
		changes:     mat.NewDense(out, in, nil),
		biasChanges: mat.NewVecDense(out, nil),
	}
	d.Randomize(rnd)
	return d
}

// Randomize redraws every weight and bias and zeroes the changes buffers.
func (d *Dense) Randomize(rnd *rand.Rand) {
	randomFill(rnd, d.weights.RawMatrix().Data)
	randomFill(rnd, d.biases.RawVector().Data)
	d.changes.Zero()
	d.biasChanges.Zero()
}

func randomFill(rnd *rand.Rand, data []float64) {
	for i := range data {
		data[i] = rnd.Float64()*2*InitRange - InitRange
	}
}

// Forward computes act(W·x + b) and returns the layer's activation vector.
// The returned vector is owned by the layer and overwritten by the next call.
func (d *Dense) Forward(x mat.Vector) *mat.VecDense {
	d.input.CopyVec(x)
	d.output.MulVec(d.weights, d.input)
	d.output.AddVec(d.output, d.biases)
	activations.ActivateInPlace(d.act, d.output.RawVector().Data)
	return d.output
}

// BackwardOutput computes the output-layer error (target - output) and
// delta from the activations of the last Forward call.
func (d *Dense) BackwardOutput(target []float64) {
	floats.SubTo(d.errors.RawVector().Data, target, d.output.RawVector().Data)
	d.computeDelta()
}

// BackwardHidden propagates the delta of the downstream layer next into
// this layer: error = next.W^T · next.delta.
func (d *Dense) BackwardHidden(next *Dense) {
	d.errors.MulVec(next.weights.T(), next.delta)
	d.computeDelta()
}

func (d *Dense) computeDelta() {
	e := d.errors.RawVector().Data
	a := d.output.RawVector().Data
	delta := d.delta.RawVector().Data
	for i := range delta {
		delta[i] = e[i] * d.act.Derivative(a[i])
	}
}

// Clone returns a deep copy of the layer, changes buffers included.
func (d *Dense) Clone() *Dense {
	return &Dense{
		weights:     mat.DenseCopyOf(d.weights),
		biases:      mat.VecDenseCopyOf(d.biases),
		act:         d.act,
		outSize:     d.outSize,
		inSize:      d.inSize,
		input:       mat.VecDenseCopyOf(d.input),
		output:      mat.VecDenseCopyOf(d.output),
		errors:      mat.VecDenseCopyOf(d.errors),
		delta:       mat.VecDenseCopyOf(d.delta),
		changes:     mat.DenseCopyOf(d.changes),
		biasChanges: mat.VecDenseCopyOf(d.biasChanges),
	}
}

// Params returns all dense layer parameters flattened (copy).
// Weights come first in row-major order, then biases.
func (d *Dense) Params() []float64 {
	total := d.outSize*d.inSize + d.outSize
	params := make([]float64, 0, total)
	params = append(params, d.weights.RawMatrix().Data...)
	params = append(params, d.biases.RawVector().Data...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	n := d.outSize * d.inSize
	copy(d.weights.RawMatrix().Data, params[:n])
	copy(d.biases.RawVector().Data, params[n:])
}

// Weights returns the weight matrix.
func (d *Dense) Weights() *mat.Dense {
	return d.weights
}

// Biases returns the bias vector.
func (d *Dense) Biases() *mat.VecDense {
	return d.biases
}

// Changes returns the previous weight update, used by the momentum term.
func (d *Dense) Changes() *mat.Dense {
	return d.changes
}

// BiasChanges returns the previous bias update.
func (d *Dense) BiasChanges() *mat.VecDense {
	return d.biasChanges
}

// Input returns the upstream activation seen by the last Forward call.
func (d *Dense) Input() *mat.VecDense {
	return d.input
}

// Output returns the activation vector of the last Forward call.
func (d *Dense) Output() *mat.VecDense {
	return d.output
}

// Errors returns the error vector of the last backward call.
func (d *Dense) Errors() *mat.VecDense {
	return d.errors
}

// Delta returns the delta vector of the last backward call.
func (d *Dense) Delta() *mat.VecDense {
	return d.delta
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights.Set(row, col, val)
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases.SetVec(idx, val)
}

// Weight gets a single weight at (row, col).
func (d *Dense) Weight(row, col int) float64 {
	return d.weights.At(row, col)
}

// Bias gets a single bias.
func (d *Dense) Bias(idx int) float64 {
	return d.biases.AtVec(idx)
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
