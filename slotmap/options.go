package slotmap

import "log/slog"

// Options configures an Allocator. A nil *Options means an unbounded
// allocator storing zero values and logging through the package logger.
type Options[T any] struct {
	// MaxCapacity bounds the number of live objects. A positive value always
	// applies; zero applies only when Bounded is set.
	MaxCapacity int

	// Bounded enforces MaxCapacity even when it is zero, in which case every
	// Create and Insert fails with ErrCapacityExceeded.
	Bounded bool

	// New constructs the value stored by Create. Nil stores the zero T.
	New func() T

	// Logger receives allocation events. Nil uses the process-wide logger,
	// which is silent unless SLOTKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}
