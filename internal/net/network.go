// Package net provides the feedforward network and its training engine.
package net

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/FlavioCFOliveira/GoBrain/internal/activations"
	"github.com/FlavioCFOliveira/GoBrain/internal/layer"
	"github.com/FlavioCFOliveira/GoBrain/internal/loss"
	"github.com/FlavioCFOliveira/GoBrain/internal/opt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sample is one labeled training pair.
type Sample struct {
	Input  []float64 `json:"input"`
	Output []float64 `json:"output"`
}

// Config holds the construction options of a Network. Zero values select
// the defaults.
type Config struct {
	// Sizes lists every layer size, input first and output last. When empty
	// the sizes are inferred from the first training set.
	Sizes []int
	// HiddenLayers is used with inferred sizes. Defaults to a single hidden
	// layer of max(3, inputs/2) neurons.
	HiddenLayers []int
	// LearningRate and Momentum are the defaults for the matching training
	// options.
	LearningRate float64
	Momentum     float64
	// Seed seeds weight initialization. 0 seeds from the clock.
	Seed int64
	// Logger receives option warnings and "log": true output.
	// Defaults to log.Default().
	Logger *log.Logger
}

// Network is a fully connected feedforward network with sigmoid
// activations. Training and inference on one Network are serialized; use
// Clone to train copies concurrently.
type Network struct {
	mu sync.Mutex

	sizes  []int
	hidden []int
	layers []*layer.Dense
	loss   loss.Loss
	rnd    *rand.Rand
	logger *log.Logger

	learningRate float64
	momentum     float64

	invalidTrainOptsShouldThrow bool
}

// New creates a network. When cfg.Sizes is set the layers are allocated and
// randomized immediately.
func New(cfg Config) (*Network, error) {
	n := &Network{
		hidden:                      append([]int(nil), cfg.HiddenLayers...),
		loss:                        loss.MSE{},
		logger:                      cfg.Logger,
		learningRate:                DefaultLearningRate,
		momentum:                    DefaultMomentum,
		invalidTrainOptsShouldThrow: true,
	}
	if n.logger == nil {
		n.logger = log.Default()
	}

	if cfg.LearningRate != 0 {
		lr, err := openUnitInterval(cfg.LearningRate)
		if err != nil {
			return nil, &InvalidOptionError{Name: "learningRate", Value: cfg.LearningRate, Reason: err.Error()}
		}
		n.learningRate = lr
	}
	if cfg.Momentum != 0 {
		m, err := openUnitInterval(cfg.Momentum)
		if err != nil {
			return nil, &InvalidOptionError{Name: "momentum", Value: cfg.Momentum, Reason: err.Error()}
		}
		n.momentum = m
	}
	for _, h := range n.hidden {
		if h <= 0 {
			return nil, &InvalidOptionError{Name: "hiddenLayers", Value: cfg.HiddenLayers, Reason: "sizes must be greater than 0"}
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	n.rnd = rand.New(rand.NewSource(seed))

	if len(cfg.Sizes) > 0 {
		if err := n.initialize(cfg.Sizes); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// initialize allocates the layers for sizes and randomizes them.
func (n *Network) initialize(sizes []int) error {
	if len(sizes) < 2 {
		return &InvalidOptionError{Name: "sizes", Value: sizes, Reason: "need at least an input and an output layer"}
	}
	for _, s := range sizes {
		if s <= 0 {
			return &InvalidOptionError{Name: "sizes", Value: sizes, Reason: "sizes must be greater than 0"}
		}
	}

	n.sizes = append([]int(nil), sizes...)
	n.layers = make([]*layer.Dense, len(sizes)-1)
	for i := range n.layers {
		n.layers[i] = layer.NewDense(sizes[i], sizes[i+1], activations.Sigmoid{}, n.rnd)
	}
	return nil
}

// inferSizes derives the layer sizes from the shape of the first sample.
// Nothing is allocated until the data has been checked against them.
func (n *Network) inferSizes(data []Sample) ([]int, error) {
	if len(data) == 0 {
		return nil, &InvalidInputShapeError{Reason: "training set is empty"}
	}
	inputs, outputs := len(data[0].Input), len(data[0].Output)
	if inputs == 0 || outputs == 0 {
		return nil, &InvalidInputShapeError{Index: 0, Field: "input/output", Reason: "sample 0 has an empty input or output"}
	}

	hidden := n.hidden
	if len(hidden) == 0 {
		hidden = []int{max(3, inputs/2)}
	}
	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, inputs)
	sizes = append(sizes, hidden...)
	sizes = append(sizes, outputs)
	return sizes, nil
}

// checkData verifies every sample against sizes.
func checkData(data []Sample, sizes []int) error {
	if len(data) == 0 {
		return &InvalidInputShapeError{Reason: "training set is empty"}
	}
	inputs, outputs := sizes[0], sizes[len(sizes)-1]
	for i := range data {
		if got := len(data[i].Input); got != inputs {
			return &InvalidInputShapeError{Index: i, Field: "input", Want: inputs, Got: got}
		}
		if got := len(data[i].Output); got != outputs {
			return &InvalidInputShapeError{Index: i, Field: "output", Want: outputs, Got: got}
		}
	}
	return nil
}

// forward runs the forward pass and returns the output activation, owned
// by the last layer.
func (n *Network) forward(input []float64) *mat.VecDense {
	var curr mat.Vector = mat.NewVecDense(len(input), input)
	var out *mat.VecDense
	for _, l := range n.layers {
		out = l.Forward(curr)
		curr = out
	}
	return out
}

// backward computes errors and deltas for target from the activations of
// the preceding forward pass and returns the sample error.
func (n *Network) backward(target []float64) float64 {
	last := len(n.layers) - 1
	n.layers[last].BackwardOutput(target)
	for i := last - 1; i >= 0; i-- {
		n.layers[i].BackwardHidden(n.layers[i+1])
	}
	return n.loss.Reduce(n.layers[last].Errors().RawVector().Data)
}

// step applies one weight update to every layer.
func (n *Network) step(o opt.Optimizer) {
	for _, l := range n.layers {
		o.Step(l.Weights(), l.Changes(), l.Delta(), l.Input())
		o.StepVec(l.Biases(), l.BiasChanges(), l.Delta())
	}
}

// trainSample runs forward, backward and update for one sample and returns
// its error.
func (n *Network) trainSample(s *Sample, o opt.Optimizer) float64 {
	n.forward(s.Input)
	e := n.backward(s.Output)
	n.step(o)
	return e
}

// Run computes the network output for input. The returned slice is a copy.
func (n *Network) Run(input []float64) ([]float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.layers == nil {
		return nil, &InvalidInputShapeError{Index: -1, Reason: "network has no layer sizes; train it or set Config.Sizes"}
	}
	if len(input) != n.sizes[0] {
		return nil, &InvalidInputShapeError{Index: -1, Field: "input", Want: n.sizes[0], Got: len(input)}
	}

	out := n.forward(input)
	return append([]float64(nil), out.RawVector().Data...), nil
}

// Test returns the mean error of the network over data without updating
// any weight.
func (n *Network) Test(data []Sample) (float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.layers == nil {
		return 0, &InvalidInputShapeError{Index: -1, Reason: "network has no layer sizes; train it or set Config.Sizes"}
	}
	if err := checkData(data, n.sizes); err != nil {
		return 0, err
	}

	var sum float64
	for i := range data {
		out := n.forward(data[i].Input)
		sum += n.loss.Forward(out.RawVector().Data, data[i].Output)
	}
	return sum / float64(len(data)), nil
}

// Clone returns a deep copy of the network state, including the changes
// buffers. The clone gets its own random source seeded from n's.
func (n *Network) Clone() *Network {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := &Network{
		sizes:                       append([]int(nil), n.sizes...),
		hidden:                      append([]int(nil), n.hidden...),
		loss:                        n.loss,
		rnd:                         rand.New(rand.NewSource(n.rnd.Int63())),
		logger:                      n.logger,
		learningRate:                n.learningRate,
		momentum:                    n.momentum,
		invalidTrainOptsShouldThrow: n.invalidTrainOptsShouldThrow,
	}
	if n.layers != nil {
		c.layers = make([]*layer.Dense, len(n.layers))
		for i, l := range n.layers {
			c.layers[i] = l.Clone()
		}
	}
	return c
}

// Reset redraws every weight and bias and zeroes the changes buffers.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, l := range n.layers {
		l.Randomize(n.rnd)
	}
}

// Sizes returns the layer sizes, or nil before the network is initialized.
func (n *Network) Sizes() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int(nil), n.sizes...)
}

// Layers returns a copy of the layers slice. The layers themselves are
// shared; do not touch them while the network trains.
func (n *Network) Layers() []*layer.Dense {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*layer.Dense(nil), n.layers...)
}

// Params returns all network parameters flattened (copy).
func (n *Network) Params() []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams replaces all network parameters from a flattened slice.
func (n *Network) SetParams(params []float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	total := 0
	for _, l := range n.layers {
		total += l.OutSize()*l.InSize() + l.OutSize()
	}
	if len(params) != total {
		return errors.Errorf("net: got %d params, want %d", len(params), total)
	}
	offset := 0
	for _, l := range n.layers {
		size := l.OutSize()*l.InSize() + l.OutSize()
		l.SetParams(params[offset : offset+size])
		offset += size
	}
	return nil
}

// LearningRate returns the network's default learning rate.
func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// Momentum returns the network's default momentum.
func (n *Network) Momentum() float64 {
	return n.momentum
}

// InvalidTrainOptsShouldThrow reports whether invalid training options fail
// (true, the default) or are replaced by their defaults with a warning.
func (n *Network) InvalidTrainOptsShouldThrow() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.invalidTrainOptsShouldThrow
}

// SetInvalidTrainOptsShouldThrow sets the option leniency.
func (n *Network) SetInvalidTrainOptsShouldThrow(v bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invalidTrainOptsShouldThrow = v
}

// SetLogger replaces the logger used for warnings and "log": true.
func (n *Network) SetLogger(l *log.Logger) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logger = l
}
