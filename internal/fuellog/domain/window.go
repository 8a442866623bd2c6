package fuellog

import "time"

// Window is a half-open interval [Start, End) over which a report runs.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates and builds a report window.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, ErrInvalidWindowStart
	}
	if !start.Before(end) {
		return Window{}, ErrInvalidTimeRange
	}
	return Window{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the window. The start is
// inclusive, the end exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// TimeKey returns the storage-friendly key for the window.
func (w Window) TimeKey() string {
	return w.Start.UTC().Format("20060102T150405") + "-" + w.End.UTC().Format("20060102T150405")
}
