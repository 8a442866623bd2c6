package fuellog

import (
	"fmt"
	"time"
)

// Reading is one operator-submitted stock report extracted from a chat
// message: the tank level before and after the operator's action, with an
// optional trip number. Readings are immutable once created; only the
// delivery events derived from them are persisted.
type Reading struct {
	Author      string
	LoggedAt    time.Time
	StockBefore float64
	StockAfter  float64
	TripNumber  *int
}

// HasTrip reports whether the reading carries a trip number.
func (r Reading) HasTrip() bool { return r.TripNumber != nil }

// DedupeKey identifies a reading across replays. A message observed twice
// (once live, once during a re-scan) produces the same key.
func (r Reading) DedupeKey() string {
	return fmt.Sprintf("%s|%d|%g|%g", r.Author, r.LoggedAt.UnixNano(), r.StockBefore, r.StockAfter)
}
