package net

import (
	"bytes"
	"context"
	"log"
	"testing"
)

// TestEarlyStoppingPatience tests that only stalled checks count.
func TestEarlyStoppingPatience(t *testing.T) {
	es, ctx := NewEarlyStopping(context.Background(), 2, 0.01)
	defer es.Release()

	es.Callback(Status{Iterations: 10, Error: 0.5})
	es.Callback(Status{Iterations: 20, Error: 0.4})
	es.Callback(Status{Iterations: 30, Error: 0.395})
	if es.Stopped() || ctx.Err() != nil {
		t.Fatal("stopped after a single stalled check")
	}

	es.Callback(Status{Iterations: 40, Error: 0.2})
	es.Callback(Status{Iterations: 50, Error: 0.199})
	if es.Stopped() {
		t.Fatal("improvement did not reset the patience counter")
	}

	es.Callback(Status{Iterations: 60, Error: 0.198})
	if !es.Stopped() || ctx.Err() == nil {
		t.Error("not stopped after patience was exhausted")
	}
}

// TestLoggerSinkFormat tests the default progress line.
func TestLoggerSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	loggerSink(log.New(&buf, "", 0))(Status{Iterations: 20, Error: 0.125})

	if got, want := buf.String(), "iterations: 20, training error: 0.125000\n"; got != want {
		t.Errorf("logged %q, want %q", got, want)
	}
}
