package net

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"
	"time"
)

// CSVLogger writes training progress as CSV rows of
// iterations, error and elapsed seconds. Use Log as the "log" or
// "callback" option.
type CSVLogger struct {
	mu     sync.Mutex
	writer *csv.Writer
	start  time.Time
	err    error
}

// NewCSVLogger writes the header to w and starts the clock.
func NewCSVLogger(w io.Writer) *CSVLogger {
	c := &CSVLogger{
		writer: csv.NewWriter(w),
		start:  time.Now(),
	}
	c.write([]string{"iterations", "error", "elapsed_seconds"})
	return c
}

// Log appends one row for s.
func (c *CSVLogger) Log(s Status) {
	c.write([]string{
		strconv.Itoa(s.Iterations),
		strconv.FormatFloat(s.Error, 'f', 6, 64),
		strconv.FormatFloat(time.Since(c.start).Seconds(), 'f', 2, 64),
	})
}

func (c *CSVLogger) write(record []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return
	}
	if err := c.writer.Write(record); err != nil {
		c.err = err
		return
	}
	c.writer.Flush()
	c.err = c.writer.Error()
}

// Err returns the first write error, if any. Rows after a failure are dropped.
func (c *CSVLogger) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
