package emotion

import "errors"

var (
	// ErrInvalidThreshold is returned when the firing threshold is not positive.
	ErrInvalidThreshold = errors.New("emotion: threshold must be positive")

	// ErrInvalidDecay is returned when the decay step is not positive.
	ErrInvalidDecay = errors.New("emotion: decay step must be positive")

	// ErrEmptySet is returned when the frustration set has no labels.
	ErrEmptySet = errors.New("emotion: frustration set is empty")

	// ErrInvalidLabel is returned when Observe receives a label outside the
	// recognized set. This is a classifier-integration bug, not a runtime
	// condition to be ignored.
	ErrInvalidLabel = errors.New("emotion: label not recognized")
)
