package fuellog

// TripTally maps an author to the count of in-window readings carrying a
// trip number. Readings that merely mention trips in free text do not count.
type TripTally map[string]int

// Total returns the trip count across all authors.
func (t TripTally) Total() int {
	var total int
	for _, count := range t {
		total += count
	}
	return total
}

// SummaryReport is the aggregate over one window.
type SummaryReport struct {
	Window           Window
	ReadingCount     int
	EventCount       int
	TotalVolumeTaken float64
	Trips            TripTally
	VolumeByAuthor   map[string]float64
	Events           []DeliveryEvent
}

// Aggregate filters readings to the window, reconciles them and folds the
// result into a SummaryReport. It is a pure function: the same readings and
// window always produce the same report, and no state survives between
// calls. Volume is attributed to the author of the later reading in each
// pair, the operator whose "before" level revealed the take.
func Aggregate(readings []Reading, window Window) SummaryReport {
	var inWindow []Reading
	for _, reading := range Dedupe(readings) {
		if window.Contains(reading.LoggedAt) {
			inWindow = append(inWindow, reading)
		}
	}

	events := Reconcile(inWindow)

	trips := make(TripTally)
	for _, reading := range inWindow {
		if reading.HasTrip() {
			trips[reading.Author]++
		}
	}

	volumeByAuthor := make(map[string]float64)
	for _, event := range events {
		volumeByAuthor[event.To.Author] += event.VolumeTaken
	}

	return SummaryReport{
		Window:           window,
		ReadingCount:     len(inWindow),
		EventCount:       len(events),
		TotalVolumeTaken: TotalVolume(events),
		Trips:            trips,
		VolumeByAuthor:   volumeByAuthor,
		Events:           events,
	}
}
