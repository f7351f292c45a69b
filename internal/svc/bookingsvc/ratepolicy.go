package bookingsvc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateTier is one band of the catalog seeding policy: rooms falling into the
// tier's share of the catalog get its type and nightly rate.
type RateTier struct {
	Type  string  `yaml:"type"`
	Rate  float64 `yaml:"rate"`
	Share float64 `yaml:"share"`
}

// RatePolicy maps room types to nightly rates and drives the tiered
// type assignment when a catalog is seeded from scratch. Tiers are ordered;
// shares are fractions of the catalog and the last tier absorbs any
// remainder.
type RatePolicy struct {
	Tiers []RateTier `yaml:"tiers"`
}

// DefaultRatePolicy returns the built-in tier table: the first 40% of rooms
// are Standard, the next 30% Deluxe, the rest Suite.
func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		Tiers: []RateTier{
			{Type: "Standard", Rate: 1500, Share: 0.4},
			{Type: "Deluxe", Rate: 2000, Share: 0.3},
			{Type: "Suite", Rate: 3000, Share: 0.3},
		},
	}
}

// LoadRatePolicy reads a tier table from a YAML file.
func LoadRatePolicy(path string) (RatePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RatePolicy{}, fmt.Errorf("read rate policy: %w", err)
	}

	var policy RatePolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return RatePolicy{}, fmt.Errorf("unmarshal rate policy: %w", err)
	}

	if len(policy.Tiers) == 0 {
		return RatePolicy{}, fmt.Errorf("unmarshal rate policy: %w", errEmptyPolicy)
	}

	return policy, nil
}

// TierFor selects the tier for room index (0-based) in a catalog of total
// rooms, by cumulative share.
func (p RatePolicy) TierFor(index, total int) RateTier {
	cumulative := 0.0

	for _, tier := range p.Tiers {
		cumulative += tier.Share
		if float64(index) < cumulative*float64(total) {
			return tier
		}
	}

	return p.Tiers[len(p.Tiers)-1]
}

// RateFor looks up the nightly rate for a room type. Returns false for
// types the policy does not know.
func (p RatePolicy) RateFor(roomType string) (float64, bool) {
	for _, tier := range p.Tiers {
		if tier.Type == roomType {
			return tier.Rate, true
		}
	}

	return 0, false
}
