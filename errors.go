package rleimage

import "errors"

// Sentinel errors for the rleimage package.
var (
	// ErrGeometryViolation is returned when the buffered region does not
	// span the full axis-0 extent. Raised by Allocate and by any
	// per-pixel accessor.
	ErrGeometryViolation = errors.New("rleimage: buffered region must contain complete run-length lines")

	// ErrCounterOverflow is returned when the axis-0 extent exceeds the
	// counter type's maximum value. Raised by Allocate.
	ErrCounterOverflow = errors.New("rleimage: counter type cannot represent axis-0 extent")

	// ErrOutOfLineWalk is returned when a walk of a line's segment list
	// reaches the end without finding the requested axis-0 coordinate.
	// This indicates the line's segment counts no longer sum to the
	// buffered axis-0 extent - a corrupted Line - and is not recoverable.
	ErrOutOfLineWalk = errors.New("rleimage: reached past the end of run-length line")

	// ErrDimensionMismatch is returned when a Region's dimension does
	// not match the volume it is applied to. Go generics fix a
	// Volume's pixel and counter types at compile time but cannot fix
	// its dimension the same way, so this case is caught at runtime
	// instead.
	ErrDimensionMismatch = errors.New("rleimage: region dimension does not match volume dimension")
)
