package fuellog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	beforePattern = regexp.MustCompile(`(?i)(?:oil\s*stock\s*)?before\s*[:\-]?\s*(\d[\d,]*)`)
	afterPattern  = regexp.MustCompile(`(?i)(?:oil\s*stock\s*)?after\s*[:\-]?\s*(\d[\d,]*)`)
	tripPattern   = regexp.MustCompile(`(?i)\btrip(?:\s*(?:no|number|#))?\s*[:\-]?\s*(\d+)`)
)

// ParseReading extracts a Reading from one raw chat message. The boolean
// result is false when the text carries no before/after pair; ordinary chat
// messages take this path and it is not an error. A matched number that does
// not parse also yields false: malformed logs are skipped, never surfaced.
func ParseReading(author string, loggedAt time.Time, text string) (Reading, bool) {
	beforeMatch := beforePattern.FindStringSubmatch(text)
	afterMatch := afterPattern.FindStringSubmatch(text)
	if beforeMatch == nil || afterMatch == nil {
		return Reading{}, false
	}

	before, err := parseQuantity(beforeMatch[1])
	if err != nil {
		return Reading{}, false
	}
	after, err := parseQuantity(afterMatch[1])
	if err != nil {
		return Reading{}, false
	}

	reading := Reading{
		Author:      author,
		LoggedAt:    loggedAt,
		StockBefore: before,
		StockAfter:  after,
	}
	if tripMatch := tripPattern.FindStringSubmatch(text); tripMatch != nil {
		if trip, err := strconv.Atoi(tripMatch[1]); err == nil && trip > 0 {
			reading.TripNumber = &trip
		}
	}
	return reading, true
}

func parseQuantity(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
}
