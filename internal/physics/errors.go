package physics

import "errors"

var (
	// ErrInvalidRestLength is returned when a constraint's rest length is not positive.
	ErrInvalidRestLength = errors.New("physics: rest length must be positive")
	// ErrInvalidCompliance is returned when compliance is outside (0, 1].
	ErrInvalidCompliance = errors.New("physics: compliance must be in (0, 1]")
	// ErrSameEndpoint is returned when a constraint joins a particle to itself.
	ErrSameEndpoint = errors.New("physics: constraint endpoints must differ")
	// ErrUnknownParticle is returned for a particle id outside the store.
	ErrUnknownParticle = errors.New("physics: unknown particle")
	// ErrUnknownConstraint is returned for a constraint id outside the store.
	ErrUnknownConstraint = errors.New("physics: unknown constraint")
)
