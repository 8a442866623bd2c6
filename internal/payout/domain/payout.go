package payout

import (
	fuellog "fuelwatch-cloud/internal/fuellog/domain"
)

// Breakdown is the monetary result derived from one summary report.
type Breakdown struct {
	TripRevenue     float64
	VolumeRevenue   float64
	GrossTotal      float64
	BonusDeductions map[string]float64
	NetTotal        float64
	Shares          map[string]float64
}

// Compute derives the payout for a summary report under a rate schedule.
//
// In order: trip revenue = total trips * rate per trip; volume revenue =
// (total volume taken / block size) * rate per block; gross = trip + volume;
// each author's trip count deducts bonus per trip from the pool; net = gross
// minus deductions; each stakeholder receives net * share fraction.
func Compute(report fuellog.SummaryReport, rates RateSchedule) (Breakdown, error) {
	if err := rates.Validate(); err != nil {
		return Breakdown{}, err
	}

	breakdown := Breakdown{
		TripRevenue:     float64(report.Trips.Total()) * rates.RatePerTrip,
		VolumeRevenue:   report.TotalVolumeTaken / rates.VolumeBlockLitres * rates.RatePerVolumeBlock,
		BonusDeductions: make(map[string]float64, len(report.Trips)),
		Shares:          make(map[string]float64, len(rates.Shares)),
	}
	breakdown.GrossTotal = breakdown.TripRevenue + breakdown.VolumeRevenue

	var deducted float64
	for author, trips := range report.Trips {
		bonus := float64(trips) * rates.BonusPerTrip
		breakdown.BonusDeductions[author] = bonus
		deducted += bonus
	}
	breakdown.NetTotal = breakdown.GrossTotal - deducted

	for name, fraction := range rates.Shares {
		breakdown.Shares[name] = breakdown.NetTotal * fraction
	}
	return breakdown, nil
}
