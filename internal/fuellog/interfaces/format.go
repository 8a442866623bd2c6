package interfaces

import (
	"fmt"
	"sort"
	"strings"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
	payout "fuelwatch-cloud/internal/payout/domain"
)

const windowFormat = "2006-01-02 15:04"

// FormatSummaryText renders a summary report as chat-friendly text.
// Litres and counts are integers; the per-delivery log body mirrors the
// operator echo lines of the bot.
func FormatSummaryText(report fuellog.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OIL SUMMARY from %s to %s\n",
		report.Window.Start.Format(windowFormat), report.Window.End.Format(windowFormat))

	if report.EventCount == 0 {
		b.WriteString("No valid fuel logs found in that time frame.")
		return b.String()
	}

	for _, event := range report.Events {
		fmt.Fprintf(&b, "%s: Taken = %.0fL (from %.0f -> %.0f) at %s\n",
			event.To.Author, event.VolumeTaken,
			event.From.StockAfter, event.To.StockBefore,
			event.To.LoggedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "Logs Found: %d\n", report.EventCount)
	fmt.Fprintf(&b, "Total Oil Taken: %.0fL", report.TotalVolumeTaken)
	return b.String()
}

// FormatTripText renders the per-author trip tally.
func FormatTripText(report fuellog.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TRIP SUMMARY from %s to %s\n",
		report.Window.Start.Format(windowFormat), report.Window.End.Format(windowFormat))
	if len(report.Trips) == 0 {
		b.WriteString("No trips logged in that time frame.")
		return b.String()
	}
	for _, author := range sortedKeys(report.Trips) {
		fmt.Fprintf(&b, "%s: %d trips\n", author, report.Trips[author])
	}
	fmt.Fprintf(&b, "Total Trips: %d", report.Trips.Total())
	return b.String()
}

// FormatBonusText renders the per-author bonus deductions.
func FormatBonusText(report fuellog.SummaryReport, breakdown payout.Breakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BONUS SUMMARY from %s to %s\n",
		report.Window.Start.Format(windowFormat), report.Window.End.Format(windowFormat))
	if len(breakdown.BonusDeductions) == 0 {
		b.WriteString("No trip bonuses in that time frame.")
		return b.String()
	}
	var total float64
	for _, author := range sortedKeys(breakdown.BonusDeductions) {
		bonus := breakdown.BonusDeductions[author]
		fmt.Fprintf(&b, "%s: %.2f (%d trips)\n", author, bonus, report.Trips[author])
		total += bonus
	}
	fmt.Fprintf(&b, "Total Bonus Pool: %.2f", total)
	return b.String()
}

// FormatPayoutText renders the full payout breakdown. Currency is fixed at
// two decimals.
func FormatPayoutText(report fuellog.SummaryReport, breakdown payout.Breakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FINAL CALC from %s to %s\n",
		report.Window.Start.Format(windowFormat), report.Window.End.Format(windowFormat))
	fmt.Fprintf(&b, "Trips: %d\n", report.Trips.Total())
	fmt.Fprintf(&b, "Total Oil Taken: %.0fL\n", report.TotalVolumeTaken)
	fmt.Fprintf(&b, "Trip Revenue: %.2f\n", breakdown.TripRevenue)
	fmt.Fprintf(&b, "Volume Revenue: %.2f\n", breakdown.VolumeRevenue)
	fmt.Fprintf(&b, "Gross Total: %.2f\n", breakdown.GrossTotal)
	for _, author := range sortedKeys(breakdown.BonusDeductions) {
		fmt.Fprintf(&b, "Bonus %s: -%.2f\n", author, breakdown.BonusDeductions[author])
	}
	fmt.Fprintf(&b, "Net Total: %.2f\n", breakdown.NetTotal)
	for _, name := range sortedKeys(breakdown.Shares) {
		fmt.Fprintf(&b, "Share %s: %.2f\n", name, breakdown.Shares[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys[V any, M ~map[string]V](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
