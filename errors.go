package qnotebook

import "errors"

var (
	// ErrInvalidArgument marks out-of-contract input: a vector length that is
	// not a power of two, a visibility outside [0,1], a non-unit norm, a
	// qubit index outside the register.
	ErrInvalidArgument = errors.New("qnotebook: invalid argument")

	// ErrDimensionMismatch is returned when operand shapes do not line up.
	ErrDimensionMismatch = errors.New("qnotebook: dimension mismatch")
)
