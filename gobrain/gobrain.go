// Package gobrain is the public entry point to the feedforward network and
// its training engine.
package gobrain

import (
	"io"

	"github.com/FlavioCFOliveira/GoBrain/internal/net"
)

// Re-export common types for easier access
type (
	Network      = net.Network
	Config       = net.Config
	Sample       = net.Sample
	Options      = net.Options
	TrainOptions = net.TrainOptions
	Result       = net.Result
	State        = net.State
	Status       = net.Status
	Callback     = net.Callback
	LogFunc      = net.LogFunc
	Future       = net.Future

	EarlyStopping = net.EarlyStopping
	CSVLogger     = net.CSVLogger

	InvalidOptionError     = net.InvalidOptionError
	InvalidInputShapeError = net.InvalidInputShapeError
	TrainingFailedError    = net.TrainingFailedError
)

// Terminal states
const (
	Converged            = net.Converged
	MaxIterationsReached = net.MaxIterationsReached
	TimedOut             = net.TimedOut
	Cancelled            = net.Cancelled
)

// Error sentinels, for use with errors.Is
var (
	ErrInvalidOption     = net.ErrInvalidOption
	ErrInvalidInputShape = net.ErrInvalidInputShape
	ErrTrainingFailed    = net.ErrTrainingFailed
)

// New creates a network.
func New(cfg Config) (*Network, error) {
	return net.New(cfg)
}

// DefaultTrainOptions returns the default training options.
func DefaultTrainOptions() TrainOptions {
	return net.DefaultTrainOptions()
}

// NewEarlyStopping is net.NewEarlyStopping.
var NewEarlyStopping = net.NewEarlyStopping

// NewCSVLogger writes training progress as CSV to w.
func NewCSVLogger(w io.Writer) *CSVLogger {
	return net.NewCSVLogger(w)
}

// Data loading
func LoadCSV(r io.Reader, labelCols []int, hasHeader bool) ([]Sample, error) {
	return net.LoadCSV(r, labelCols, hasHeader)
}

func LoadJSON(r io.Reader) ([]Sample, error) {
	return net.LoadJSON(r)
}

func Normalize(data []Sample) {
	net.Normalize(data)
}

func Split(data []Sample, ratio float64) (train, test []Sample) {
	return net.Split(data, ratio)
}
