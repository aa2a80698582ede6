package net

import (
	"encoding/json"
	"log"
	"math"
	"reflect"
	"time"
)

// Options is a partial set of training options keyed by name, as it comes
// from a caller or a decoded configuration file. Unknown keys are ignored.
//
//	iterations      integer > 0          epoch cap
//	errorThresh     number in (0, 1)     convergence target
//	log             bool, LogFunc, func(Status), func() or *log.Logger
//	logPeriod       integer > 0          epochs between log emissions
//	learningRate    number in (0, 1)
//	momentum        number in (0, 1)
//	callback        Callback, func(Status), func() or nil
//	callbackPeriod  integer > 0          epochs between callback invocations
//	timeout         time.Duration, milliseconds > 0, or +Inf
type Options map[string]any

// TrainOptions is the validated, fully populated set of training options.
type TrainOptions struct {
	Iterations     int
	ErrorThresh    float64
	Log            LogFunc // nil disables logging
	LogPeriod      int
	LearningRate   float64
	Momentum       float64
	Callback       Callback // nil disables the callback
	CallbackPeriod int
	Timeout        time.Duration // 0 means no timeout
}

// Defaults applied to options the caller leaves out. LearningRate and
// Momentum are overridden by the network's Config.
const (
	DefaultIterations     = 20000
	DefaultErrorThresh    = 0.005
	DefaultLogPeriod      = 10
	DefaultLearningRate   = 0.3
	DefaultMomentum       = 0.1
	DefaultCallbackPeriod = 10
)

// DefaultTrainOptions returns the documented defaults.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Iterations:     DefaultIterations,
		ErrorThresh:    DefaultErrorThresh,
		LogPeriod:      DefaultLogPeriod,
		LearningRate:   DefaultLearningRate,
		Momentum:       DefaultMomentum,
		CallbackPeriod: DefaultCallbackPeriod,
	}
}

// optionRule validates and assigns one named option. A rule that fails
// leaves the field untouched, so it keeps its default.
type optionRule struct {
	name  string
	apply func(n *Network, o *TrainOptions, v any) error
}

// field builds a rule from a coercion and the field it assigns.
func field[T any](name string, coerce func(v any) (T, error), ptr func(o *TrainOptions) *T) optionRule {
	return optionRule{
		name: name,
		apply: func(_ *Network, o *TrainOptions, v any) error {
			x, err := coerce(v)
			if err != nil {
				return err
			}
			*ptr(o) = x
			return nil
		},
	}
}

var trainOptionRules = []optionRule{
	field("iterations", positiveInt, func(o *TrainOptions) *int { return &o.Iterations }),
	field("errorThresh", openUnitInterval, func(o *TrainOptions) *float64 { return &o.ErrorThresh }),
	{name: "log", apply: func(n *Network, o *TrainOptions, v any) error {
		fn, err := n.logSink(v)
		if err != nil {
			return err
		}
		o.Log = fn
		return nil
	}},
	field("logPeriod", positiveInt, func(o *TrainOptions) *int { return &o.LogPeriod }),
	field("learningRate", openUnitInterval, func(o *TrainOptions) *float64 { return &o.LearningRate }),
	field("momentum", openUnitInterval, func(o *TrainOptions) *float64 { return &o.Momentum }),
	field("callback", callback, func(o *TrainOptions) *Callback { return &o.Callback }),
	field("callbackPeriod", positiveInt, func(o *TrainOptions) *int { return &o.CallbackPeriod }),
	field("timeout", timeout, func(o *TrainOptions) *time.Duration { return &o.Timeout }),
}

// UpdateTrainingOptions merges opts over the defaults of n and validates
// every recognized option.
//
// An invalid value fails with *InvalidOptionError, unless the network was
// told not to throw on invalid options; in that case a warning is logged
// and the default is kept.
func (n *Network) UpdateTrainingOptions(opts Options) (TrainOptions, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.updateTrainingOptions(opts)
}

// updateTrainingOptions is UpdateTrainingOptions with n.mu held.
func (n *Network) updateTrainingOptions(opts Options) (TrainOptions, error) {
	o := DefaultTrainOptions()
	o.LearningRate = n.learningRate
	o.Momentum = n.momentum

	for _, rule := range trainOptionRules {
		v, ok := opts[rule.name]
		if !ok {
			continue
		}
		if err := rule.apply(n, &o, v); err != nil {
			optErr := &InvalidOptionError{Name: rule.name, Value: v, Reason: err.Error()}
			if n.invalidTrainOptsShouldThrow {
				return TrainOptions{}, optErr
			}
			n.logger.Printf("warning: %v; using default", optErr)
		}
	}
	return o, nil
}

type reason string

func (r reason) Error() string { return string(r) }

const (
	errNotNumber   = reason("must be a number")
	errNotInteger  = reason("must be an integer")
	errNotPositive = reason("must be greater than 0")
	errNotInUnit   = reason("must be between 0 and 1 (exclusive)")
	errNotCallable = reason("must be a function or nil")
	errNotLogSink  = reason("must be a boolean, a function or a *log.Logger")
)

// number coerces any Go numeric kind or json.Number. Booleans, strings and
// functions are not numbers.
func number(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, errNotNumber
		}
		return f, nil
	}
	return 0, errNotNumber
}

func positiveInt(v any) (int, error) {
	f, err := number(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f <= 0 {
		return 0, errNotPositive
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(f), nil
}

func openUnitInterval(v any) (float64, error) {
	f, err := number(v)
	if err != nil {
		return 0, err
	}
	if !(f > 0 && f < 1) {
		return 0, errNotInUnit
	}
	return f, nil
}

func callback(v any) (Callback, error) {
	switch fn := v.(type) {
	case nil:
		return nil, nil
	case Callback:
		return fn, nil
	case LogFunc:
		return Callback(fn), nil
	case func(Status):
		return fn, nil
	case func():
		return func(Status) { fn() }, nil
	}
	return nil, errNotCallable
}

// timeout accepts a time.Duration or a number of milliseconds. +Inf means
// no timeout and is returned as 0.
func timeout(v any) (time.Duration, error) {
	if d, ok := v.(time.Duration); ok {
		if d <= 0 {
			return 0, errNotPositive
		}
		return d, nil
	}
	ms, err := number(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(ms) || ms <= 0 {
		return 0, errNotPositive
	}
	ns := ms * float64(time.Millisecond)
	if math.IsInf(ms, 1) || ns >= math.MaxInt64 {
		return 0, nil
	}
	// 0 means no timeout, so the shortest positive timeout is 1ns.
	return max(time.Duration(ns), time.Nanosecond), nil
}

// logSink resolves the log option. true logs through the network's logger.
func (n *Network) logSink(v any) (LogFunc, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !x {
			return nil, nil
		}
		return loggerSink(n.logger), nil
	case LogFunc:
		return x, nil
	case Callback:
		return LogFunc(x), nil
	case func(Status):
		return x, nil
	case func():
		return func(Status) { x() }, nil
	case *log.Logger:
		if x == nil {
			return nil, errNotLogSink
		}
		return loggerSink(x), nil
	}
	return nil, errNotLogSink
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
