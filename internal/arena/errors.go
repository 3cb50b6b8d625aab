package arena

import "errors"

// Domain errors for arena operations.
var (
	// ErrInvalidBody indicates a body with a non-positive radius or mass, or a NaN/Inf component.
	ErrInvalidBody = errors.New("arena: invalid body")

	// ErrCoincident indicates a colliding pair whose centers coincide, so the collision normal is undefined.
	ErrCoincident = errors.New("arena: coincident centers")

	// ErrUnknownStrategy indicates a collision strategy outside {Push, Bounce}.
	ErrUnknownStrategy = errors.New("arena: unknown collision strategy")

	// ErrInvalidConfig indicates a step configuration that cannot drive a frame.
	ErrInvalidConfig = errors.New("arena: invalid config")
)
