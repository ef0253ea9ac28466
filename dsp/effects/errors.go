package effects

import "errors"

var (
	// ErrNotImplemented is returned by effects that only carry a descriptor.
	ErrNotImplemented = errors.New("effects: processing not implemented")
	// ErrUnknownEffect is returned when a registry has no factory for a name.
	ErrUnknownEffect = errors.New("effects: unknown effect")
	// ErrUnknownFunction is returned by Function for an unrecognized name.
	ErrUnknownFunction = errors.New("effects: unknown function")
	// ErrNoRand is returned by stochastic effects called without a random source.
	ErrNoRand = errors.New("effects: random source required")

	errDuplicateEffect = errors.New("duplicate effect name")
)
