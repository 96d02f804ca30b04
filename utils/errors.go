package utils

import "errors"

// The three failure conditions of the basis engine. Operations wrap these with
// context using fmt.Errorf("...: %w", ErrX); test with errors.Is.
var (
	// ErrDegenerateNodeSet is returned at construction when two nodes of a
	// 1D node set coincide exactly.
	ErrDegenerateNodeSet = errors.New("degenerate node set")

	// ErrSingularMapping is returned when the Jacobian determinant of a
	// geometric map is zero, or indistinguishable from zero, at a point.
	ErrSingularMapping = errors.New("singular mapping")

	// ErrDimensionMismatch is returned when a caller supplied array does not
	// have the length required by the element.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
