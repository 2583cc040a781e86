package region

import "errors"

// Sentinel errors shared by all region implementations. Implementations wrap
// them with context; callers match with errors.Is.
var (
	// ErrIllegalValue is returned for negative or NaN radii and semi-axis
	// lengths, and for empty centers.
	ErrIllegalValue = errors.New("region: illegal value")

	// ErrOutOfBounds is returned when an axis index is outside the stored
	// count, or a replacement center is shorter than the current one.
	ErrOutOfBounds = errors.New("region: index out of bounds")

	// ErrUnsupported marks a mutation the shape does not allow.
	ErrUnsupported = errors.New("region: unsupported operation")

	// ErrDimensionMismatch is returned when two inputs that must agree in
	// dimensionality do not.
	ErrDimensionMismatch = errors.New("region: dimension mismatch")
)
