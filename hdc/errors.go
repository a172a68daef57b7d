package hdc

import "errors"

var (
	// ErrInvalidDimension is returned for a non-positive vector count or dimension.
	ErrInvalidDimension = errors.New("hdc: invalid dimension")
	// ErrDimensionMismatch is returned when vectors that must share a dimension do not.
	ErrDimensionMismatch = errors.New("hdc: dimension mismatch")
	// ErrInvalidNGram is returned for an n-gram length below 1 or a position
	// table whose size differs from it.
	ErrInvalidNGram = errors.New("hdc: invalid n-gram length")
	// ErrInvalidSequenceLength is returned when a sequence is shorter than the n-gram length.
	ErrInvalidSequenceLength = errors.New("hdc: sequence shorter than n-gram length")
	// ErrUnknownSymbol is returned when a sequence holds a value with no value vector.
	ErrUnknownSymbol = errors.New("hdc: unknown symbol")
)
