package spatialmath

import "errors"

var (
	// ErrSingularTransform is returned when a transformation matrix cannot be
	// inverted because its rotation block is degenerate.
	ErrSingularTransform = errors.New("transformation matrix is singular")

	// ErrZeroScale is returned when the homogeneous scale component of a
	// transformed point is zero, so the perspective division is undefined.
	ErrZeroScale = errors.New("zero homogeneous scale component")
)
