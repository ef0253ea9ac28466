package knob

import "errors"

var (
	// ErrDimension reports a knob vector whose length does not match the number of knobs.
	ErrDimension = errors.New("knob: dimension mismatch")
	// ErrIndexRange reports a grid index outside [0, GridSize).
	ErrIndexRange = errors.New("knob: grid index out of range")
)
