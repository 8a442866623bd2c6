package payout

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	shareTolerance   = 1e-6
	defaultBlockSize = 3000

	envConfigPath    = "PAYOUT_CONFIG"
	envRatePerTrip   = "PAYOUT_RATE_PER_TRIP"
	envRatePerVolume = "PAYOUT_RATE_PER_VOLUME_BLOCK"
	envVolumeBlock   = "PAYOUT_VOLUME_BLOCK_LITRES"
	envBonusPerTrip  = "PAYOUT_BONUS_PER_TRIP"
)

// RateSchedule is the configured revenue schedule: currency per trip,
// currency per fixed volume block, a per-trip bonus pool, and the
// stakeholder share table. A schedule is validated at load time; an invalid
// one never reaches a payout computation.
type RateSchedule struct {
	RatePerTrip        float64            `yaml:"rate_per_trip"`
	RatePerVolumeBlock float64            `yaml:"rate_per_volume_block"`
	VolumeBlockLitres  float64            `yaml:"volume_block_litres"`
	BonusPerTrip       float64            `yaml:"bonus_per_trip"`
	Shares             map[string]float64 `yaml:"shares"`
}

// Validate checks the schedule invariants: no negative rate, a positive
// block size, and share fractions summing to 1 within tolerance.
func (s RateSchedule) Validate() error {
	if s.RatePerTrip < 0 || s.RatePerVolumeBlock < 0 || s.BonusPerTrip < 0 {
		return fmt.Errorf("%w: negative rate", ErrInvalidRateSchedule)
	}
	if s.VolumeBlockLitres <= 0 {
		return fmt.Errorf("%w: volume block must be positive", ErrInvalidRateSchedule)
	}
	if len(s.Shares) == 0 {
		return ErrEmptyShareTable
	}
	var sum float64
	for name, fraction := range s.Shares {
		if fraction < 0 {
			return fmt.Errorf("%w: negative share for %s", ErrInvalidRateSchedule, name)
		}
		sum += fraction
	}
	if math.Abs(sum-1) > shareTolerance {
		return fmt.Errorf("%w: shares sum to %g", ErrInvalidRateSchedule, sum)
	}
	return nil
}

// LoadSchedule loads the rate schedule from the YAML file named by
// PAYOUT_CONFIG, with env-var fallbacks for the scalar rates. It fails fast
// on an invalid schedule so a misconfigured deployment never computes a
// payout.
func LoadSchedule() (RateSchedule, error) {
	schedule := RateSchedule{
		RatePerTrip:        getenvFloatDefault(envRatePerTrip, 0),
		RatePerVolumeBlock: getenvFloatDefault(envRatePerVolume, 0),
		VolumeBlockLitres:  getenvFloatDefault(envVolumeBlock, defaultBlockSize),
		BonusPerTrip:       getenvFloatDefault(envBonusPerTrip, 0),
	}

	if path := os.Getenv(envConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return schedule, err
		}
		if err := yaml.Unmarshal(data, &schedule); err != nil {
			return schedule, err
		}
	}
	if schedule.VolumeBlockLitres == 0 {
		schedule.VolumeBlockLitres = defaultBlockSize
	}

	if err := schedule.Validate(); err != nil {
		return schedule, err
	}
	return schedule, nil
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
