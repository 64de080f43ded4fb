package orbit

import "errors"

// Domain errors for body construction and lookup.
var (
	// ErrInvalidMass rejects a body with zero or negative mass.
	ErrInvalidMass = errors.New("orbit: mass must be positive")

	// ErrUnknownBody indicates a handle that is not in the active set.
	ErrUnknownBody = errors.New("orbit: unknown body")

	// ErrDegenerateGeometry indicates a satellite placed on top of its
	// reference body, where no orbital velocity is defined.
	ErrDegenerateGeometry = errors.New("orbit: satellite coincides with reference")
)
