package transform

import "fmt"

// InsufficientDataError is returned when fewer than two reference points are given.
type InsufficientDataError struct {
	Got int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("at least 2 reference points are required, got %d", e.Got)
}

// DegenerateInputError is returned when every reference point shares the same
// longitude (axis "x") or latitude (axis "z").
type DegenerateInputError struct {
	Axis        string
	Denominator float64
}

func (e *DegenerateInputError) Error() string {
	source := "longitude"
	if e.Axis == AxisZ {
		source = "latitude"
	}
	return fmt.Sprintf("cannot fit %s axis: all reference points share the same %s (denominator %g)",
		e.Axis, source, e.Denominator)
}

// NonInvertibleTransformError is returned when a scale is zero or not finite.
type NonInvertibleTransformError struct {
	ScaleX float64
	ScaleZ float64
}

func (e *NonInvertibleTransformError) Error() string {
	return fmt.Sprintf("transform is not invertible: scale_x=%g scale_z=%g", e.ScaleX, e.ScaleZ)
}
