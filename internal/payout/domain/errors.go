package payout

import "errors"

var (
	// ErrInvalidRateSchedule is returned when a rate is negative or the
	// share table does not sum to one.
	ErrInvalidRateSchedule = errors.New("payout: invalid rate schedule")
	// ErrEmptyShareTable is returned when no stakeholders are configured.
	ErrEmptyShareTable = errors.New("payout: empty share table")
)
