package net

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidOption matches every *InvalidOptionError.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidInputShape matches every *InvalidInputShapeError.
	ErrInvalidInputShape = errors.New("invalid input shape")
	// ErrTrainingFailed matches every *TrainingFailedError.
	ErrTrainingFailed = errors.New("training failed")
)

// InvalidOptionError reports a training or construction option whose value
// violates its type or range constraint.
type InvalidOptionError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q: %s (got %T %v)", e.Name, e.Reason, e.Value, describeValue(e.Value))
}

// Is reports whether target is ErrInvalidOption.
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// InvalidInputShapeError reports a vector whose length does not match the
// network's layer sizes. Index is the sample index, or -1 for a single
// vector passed to Run.
type InvalidInputShapeError struct {
	Index  int
	Field  string
	Want   int
	Got    int
	Reason string
}

func (e *InvalidInputShapeError) Error() string {
	if e.Reason != "" {
		return "invalid input shape: " + e.Reason
	}
	if e.Index < 0 {
		return fmt.Sprintf("invalid input shape: %s has length %d, want %d", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("invalid input shape: sample %d %s has length %d, want %d", e.Index, e.Field, e.Got, e.Want)
}

// Is reports whether target is ErrInvalidInputShape.
func (e *InvalidInputShapeError) Is(target error) bool {
	return target == ErrInvalidInputShape
}

// TrainingFailedError wraps the cause of a training run that did not reach
// a terminal state normally.
type TrainingFailedError struct {
	Err error
}

func (e *TrainingFailedError) Error() string {
	return "training failed: " + e.Err.Error()
}

// Is reports whether target is ErrTrainingFailed.
func (e *TrainingFailedError) Is(target error) bool {
	return target == ErrTrainingFailed
}

// Unwrap returns the cause.
func (e *TrainingFailedError) Unwrap() error {
	return e.Err
}

// Cause returns the cause, for github.com/pkg/errors.Cause.
func (e *TrainingFailedError) Cause() error {
	return e.Err
}

// trainingFailed wraps err unless it already is a training failure.
func trainingFailed(err error) error {
	if err == nil || errors.Is(err, ErrTrainingFailed) {
		return err
	}
	return &TrainingFailedError{Err: err}
}

func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	}
	if isFunc(v) {
		return "func"
	}
	return fmt.Sprint(v)
}
