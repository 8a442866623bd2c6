package fuellog

import "errors"

var (
	// ErrInvalidTimeRange is returned when a window start is not before its end.
	ErrInvalidTimeRange = errors.New("fuellog: window start must be before end")
	// ErrInvalidWindowStart is returned when a window boundary is zero.
	ErrInvalidWindowStart = errors.New("fuellog: invalid window boundary")
)
