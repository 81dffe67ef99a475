package tube

import "errors"

var (
	// ErrInvalidConfiguration is returned when tube settings or start parameters
	// cannot produce a valid tube. The session stays idle.
	ErrInvalidConfiguration = errors.New("invalid tube configuration")

	// ErrIndexOutOfRange is returned by ClearAt for an index that names no
	// completed run. No state is mutated.
	ErrIndexOutOfRange = errors.New("tube run index out of range")
)
