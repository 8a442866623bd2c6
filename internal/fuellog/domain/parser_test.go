package fuellog

import (
	"testing"
	"time"
)

var parseTime = time.Date(2025, 4, 19, 8, 30, 0, 0, time.UTC)

func TestParseReading_BothFields(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"plain", "before: 100 after: 80"},
		{"reversed", "after: 80, before: 100"},
		{"upper", "BEFORE: 100 AFTER: 80"},
		{"extra whitespace", "before   :   100    after -  80"},
		{"surrounding text", "morning delivery done, oil stock before 100 and oil stock after 80, all good"},
		{"dashes", "before-100 after-80"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reading, ok := ParseReading("ravi", parseTime, tc.text)
			if !ok {
				t.Fatalf("expected a reading from %q", tc.text)
			}
			if reading.StockBefore != 100 || reading.StockAfter != 80 {
				t.Fatalf("got before=%g after=%g", reading.StockBefore, reading.StockAfter)
			}
			if reading.Author != "ravi" || !reading.LoggedAt.Equal(parseTime) {
				t.Fatalf("author/timestamp not carried: %+v", reading)
			}
		})
	}
}

func TestParseReading_GroupingPunctuation(t *testing.T) {
	reading, ok := ParseReading("ravi", parseTime, "before: 12,500 after: 9,200")
	if !ok {
		t.Fatal("expected a reading")
	}
	if reading.StockBefore != 12500 || reading.StockAfter != 9200 {
		t.Fatalf("commas not stripped: before=%g after=%g", reading.StockBefore, reading.StockAfter)
	}
}

func TestParseReading_MissingField(t *testing.T) {
	if _, ok := ParseReading("ravi", parseTime, "before: 100"); ok {
		t.Fatal("before-only text must not parse")
	}
	if _, ok := ParseReading("ravi", parseTime, "after: 80"); ok {
		t.Fatal("after-only text must not parse")
	}
	if _, ok := ParseReading("ravi", parseTime, "good morning all"); ok {
		t.Fatal("ordinary chat must not parse")
	}
}

func TestParseReading_TripNumber(t *testing.T) {
	reading, ok := ParseReading("ravi", parseTime, "trip no 7, before: 100 after: 80")
	if !ok {
		t.Fatal("expected a reading")
	}
	if !reading.HasTrip() || *reading.TripNumber != 7 {
		t.Fatalf("expected trip 7, got %+v", reading.TripNumber)
	}

	reading, ok = ParseReading("ravi", parseTime, "before: 100 after: 80")
	if !ok {
		t.Fatal("expected a reading")
	}
	if reading.HasTrip() {
		t.Fatal("trip must be optional")
	}
}

func TestParseReading_TripWithoutStocks(t *testing.T) {
	if _, ok := ParseReading("ravi", parseTime, "trip 3 done"); ok {
		t.Fatal("trip alone must not produce a reading")
	}
}
