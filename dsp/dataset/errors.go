package dataset

import "errors"

var (
	// ErrChunkSize is returned when a chunk or window size does not fit the
	// signal it is applied to.
	ErrChunkSize = errors.New("dataset: invalid chunk size")
	// ErrFilePairing is returned when input_* and target_* files do not
	// pair up one to one.
	ErrFilePairing = errors.New("dataset: input and target files do not pair")
	// ErrIndexRange is returned for item indices outside [0, Len()).
	ErrIndexRange = errors.New("dataset: index out of range")
)
