package payout

import (
	"errors"
	"math"
	"os"
	"testing"
	"time"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
)

func validSchedule() RateSchedule {
	return RateSchedule{
		RatePerTrip:        640000,
		RatePerVolumeBlock: 480000,
		VolumeBlockLitres:  3000,
		BonusPerTrip:       288000,
		Shares:             map[string]float64{"A": 0.4, "B": 0.3, "C": 0.2, "D": 0.1},
	}
}

func TestCompute_FullScenario(t *testing.T) {
	window, err := fuellog.NewWindow(
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	report := fuellog.SummaryReport{
		Window:           window,
		TotalVolumeTaken: 3000,
		Trips:            fuellog.TripTally{"ravi": 10},
	}

	breakdown, err := Compute(report, validSchedule())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if breakdown.TripRevenue != 6400000 {
		t.Fatalf("trip revenue: got %g want 6400000", breakdown.TripRevenue)
	}
	if breakdown.VolumeRevenue != 480000 {
		t.Fatalf("volume revenue: got %g want 480000", breakdown.VolumeRevenue)
	}
	if breakdown.GrossTotal != 6880000 {
		t.Fatalf("gross: got %g want 6880000", breakdown.GrossTotal)
	}
	if breakdown.BonusDeductions["ravi"] != 2880000 {
		t.Fatalf("bonus: got %g want 2880000", breakdown.BonusDeductions["ravi"])
	}
	if breakdown.NetTotal != 4000000 {
		t.Fatalf("net: got %g want 4000000", breakdown.NetTotal)
	}

	wantShares := map[string]float64{"A": 1600000, "B": 1200000, "C": 800000, "D": 400000}
	for name, want := range wantShares {
		if got := breakdown.Shares[name]; math.Abs(got-want) > 1e-6 {
			t.Fatalf("share %s: got %g want %g", name, got, want)
		}
	}
}

func TestCompute_SharesSumToNetTotal(t *testing.T) {
	report := fuellog.SummaryReport{
		TotalVolumeTaken: 7500,
		Trips:            fuellog.TripTally{"a": 3, "b": 4},
	}
	breakdown, err := Compute(report, validSchedule())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	var sum float64
	for _, share := range breakdown.Shares {
		sum += share
	}
	if math.Abs(sum-breakdown.NetTotal) > 1e-6 {
		t.Fatalf("shares sum %g != net %g", sum, breakdown.NetTotal)
	}
}

func TestValidate_ShareSumTolerance(t *testing.T) {
	schedule := validSchedule()
	schedule.Shares = map[string]float64{"A": 0.5, "B": 0.45}
	if err := schedule.Validate(); !errors.Is(err, ErrInvalidRateSchedule) {
		t.Fatalf("0.95 share sum must fail, got %v", err)
	}

	schedule.Shares = map[string]float64{"A": 0.5, "B": 0.5}
	if err := schedule.Validate(); err != nil {
		t.Fatalf("valid shares rejected: %v", err)
	}
}

func TestValidate_NegativeRate(t *testing.T) {
	schedule := validSchedule()
	schedule.RatePerTrip = -1
	if err := schedule.Validate(); !errors.Is(err, ErrInvalidRateSchedule) {
		t.Fatalf("negative rate must fail, got %v", err)
	}
}

func TestValidate_EmptyShares(t *testing.T) {
	schedule := validSchedule()
	schedule.Shares = nil
	if err := schedule.Validate(); !errors.Is(err, ErrEmptyShareTable) {
		t.Fatalf("empty shares must fail, got %v", err)
	}
}

func TestCompute_RejectsInvalidSchedule(t *testing.T) {
	schedule := validSchedule()
	schedule.Shares = map[string]float64{"A": 0.9}
	if _, err := Compute(fuellog.SummaryReport{}, schedule); !errors.Is(err, ErrInvalidRateSchedule) {
		t.Fatalf("compute must reject invalid schedule, got %v", err)
	}
}

func TestLoadSchedule_FromYAML(t *testing.T) {
	path := t.TempDir() + "/rates.yaml"
	data := []byte(`
rate_per_trip: 640000
rate_per_volume_block: 480000
volume_block_litres: 3000
bonus_per_trip: 288000
shares:
  A: 0.4
  B: 0.3
  C: 0.2
  D: 0.1
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envConfigPath, path)

	schedule, err := LoadSchedule()
	if err != nil {
		t.Fatalf("load schedule: %v", err)
	}
	if schedule.RatePerTrip != 640000 || schedule.Shares["A"] != 0.4 {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}
}

func TestLoadSchedule_InvalidSharesFailFast(t *testing.T) {
	path := t.TempDir() + "/rates.yaml"
	data := []byte(`
rate_per_trip: 1
rate_per_volume_block: 1
shares:
  A: 0.5
  B: 0.45
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envConfigPath, path)

	if _, err := LoadSchedule(); !errors.Is(err, ErrInvalidRateSchedule) {
		t.Fatalf("expected ErrInvalidRateSchedule, got %v", err)
	}
}
