package fuellog

import "sort"

// DeliveryEvent is an inferred fuel movement between two temporally-adjacent
// readings: the gap between one reading's "after" level and the next
// reading's "before" level is volume taken from the tank between the two
// logged actions. From and To point into the reconciled reading sequence.
type DeliveryEvent struct {
	From        *Reading
	To          *Reading
	VolumeTaken float64
}

// Reconcile derives delivery events from a reading sequence.
//
// Policy: readings are stable-sorted by timestamp (same-timestamp readings
// keep submission order), deduplicated on (author, timestamp, before, after),
// and each adjacent pair contributes delta = earlier.StockAfter -
// later.StockBefore. Only a positive delta is a real taken event; zero or
// negative deltas are refills or noise and produce nothing. Matching by trip
// number or restricting pairs to distinct authors would be a different
// physical model and is deliberately not supported here.
func Reconcile(readings []Reading) []DeliveryEvent {
	if len(readings) < 2 {
		return nil
	}

	chain := Dedupe(readings)
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].LoggedAt.Before(chain[j].LoggedAt)
	})

	var events []DeliveryEvent
	for i := 0; i+1 < len(chain); i++ {
		delta := chain[i].StockAfter - chain[i+1].StockBefore
		if delta <= 0 {
			continue
		}
		events = append(events, DeliveryEvent{
			From:        &chain[i],
			To:          &chain[i+1],
			VolumeTaken: delta,
		})
	}
	return events
}

// Dedupe drops repeated readings, keeping first-seen order. The same
// message observed twice (live and during a re-scan) survives only once.
func Dedupe(readings []Reading) []Reading {
	result := make([]Reading, 0, len(readings))
	seen := make(map[string]struct{}, len(readings))
	for _, reading := range readings {
		key := reading.DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, reading)
	}
	return result
}

// TotalVolume sums volume taken over a set of delivery events.
func TotalVolume(events []DeliveryEvent) float64 {
	var total float64
	for _, event := range events {
		total += event.VolumeTaken
	}
	return total
}
