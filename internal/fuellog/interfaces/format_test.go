package interfaces

import (
	"strings"
	"testing"
	"time"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
	payout "fuelwatch-cloud/internal/payout/domain"
)

func sampleReport(t *testing.T) fuellog.SummaryReport {
	t.Helper()
	window, err := fuellog.NewWindow(
		time.Date(2025, 4, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	from := fuellog.Reading{Author: "ravi", LoggedAt: time.Date(2025, 4, 19, 8, 0, 0, 0, time.UTC), StockBefore: 1000, StockAfter: 900}
	to := fuellog.Reading{Author: "suresh", LoggedAt: time.Date(2025, 4, 19, 9, 0, 0, 0, time.UTC), StockBefore: 850, StockAfter: 800}
	return fuellog.SummaryReport{
		Window:           window,
		ReadingCount:     2,
		EventCount:       1,
		TotalVolumeTaken: 50,
		Trips:            fuellog.TripTally{"ravi": 2},
		VolumeByAuthor:   map[string]float64{"suresh": 50},
		Events:           []fuellog.DeliveryEvent{{From: &from, To: &to, VolumeTaken: 50}},
	}
}

func TestFormatSummaryText(t *testing.T) {
	text := FormatSummaryText(sampleReport(t))

	for _, want := range []string{
		"OIL SUMMARY from 2025-04-19 00:00 to 2025-04-20 00:00",
		"suresh: Taken = 50L (from 900 -> 850) at 2025-04-19 09:00:00",
		"Logs Found: 1",
		"Total Oil Taken: 50L",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatSummaryText_Empty(t *testing.T) {
	report := sampleReport(t)
	report.Events = nil
	report.EventCount = 0

	text := FormatSummaryText(report)
	if !strings.Contains(text, "No valid fuel logs found in that time frame.") {
		t.Fatalf("missing empty message:\n%s", text)
	}
}

func TestFormatTripText(t *testing.T) {
	text := FormatTripText(sampleReport(t))
	if !strings.Contains(text, "ravi: 2 trips") {
		t.Fatalf("missing tally line:\n%s", text)
	}
	if !strings.Contains(text, "Total Trips: 2") {
		t.Fatalf("missing total line:\n%s", text)
	}

	empty := sampleReport(t)
	empty.Trips = nil
	if text := FormatTripText(empty); !strings.Contains(text, "No trips logged in that time frame.") {
		t.Fatalf("missing empty message:\n%s", text)
	}
}

func TestFormatPayoutText_TwoDecimalCurrency(t *testing.T) {
	breakdown := payout.Breakdown{
		TripRevenue:     1280000,
		VolumeRevenue:   8000,
		GrossTotal:      1288000,
		BonusDeductions: map[string]float64{"ravi": 576000},
		NetTotal:        712000,
		Shares:          map[string]float64{"A": 427200, "B": 284800},
	}
	text := FormatPayoutText(sampleReport(t), breakdown)

	for _, want := range []string{
		"Trip Revenue: 1280000.00",
		"Volume Revenue: 8000.00",
		"Gross Total: 1288000.00",
		"Bonus ravi: -576000.00",
		"Net Total: 712000.00",
		"Share A: 427200.00",
		"Share B: 284800.00",
		"Total Oil Taken: 50L",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatal("trailing newline")
	}
}

func TestFormatBonusText(t *testing.T) {
	breakdown := payout.Breakdown{BonusDeductions: map[string]float64{"ravi": 576000}}
	text := FormatBonusText(sampleReport(t), breakdown)
	if !strings.Contains(text, "ravi: 576000.00 (2 trips)") {
		t.Fatalf("missing bonus line:\n%s", text)
	}
	if !strings.Contains(text, "Total Bonus Pool: 576000.00") {
		t.Fatalf("missing pool line:\n%s", text)
	}
}
