package technicals

import (
	"github.com/raykavin/technicals/pkg/core"
	"github.com/raykavin/technicals/pkg/logger"
)

// Option is a functional option for configuring a Calculator instance
type Option func(*Calculator)

// WithLogger replaces DefaultLog for this calculator
func WithLogger(log logger.Logger) Option {
	return func(c *Calculator) {
		c.logger = log
	}
}

// WithStorage sets the storage used by ComputeAndStore
func WithStorage(storage core.ColumnStorage) Option {
	return func(c *Calculator) {
		c.storage = storage
	}
}

// WithProgress registers a callback invoked after each finished job.
// Calls are serialized.
func WithProgress(progress func(done, total int)) Option {
	return func(c *Calculator) {
		c.progress = progress
	}
}
