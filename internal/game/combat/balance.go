package combat

import (
	"errors"
	"fmt"
)

// Balance holds the tunable game-balance coefficients behind hit, flee and scaling
// math. The values are balance parameters, not contracts.
type Balance struct {
	HitBase     float64 `yaml:"hit_base"`
	HitPerPoint float64 `yaml:"hit_per_point"`
	HitFloor    float64 `yaml:"hit_floor"`
	HitCeiling  float64 `yaml:"hit_ceiling"`

	FleeBase      float64 `yaml:"flee_base"`
	FleePerDexMod float64 `yaml:"flee_per_dex_mod"`
	FleePerLevel  float64 `yaml:"flee_per_level"`
	FleeFloor     float64 `yaml:"flee_floor"`
	FleeCeiling   float64 `yaml:"flee_ceiling"`

	// HealthPerLevel and DamagePerLevel are the fractional growth per level the
	// character is above the monster's base level.
	HealthPerLevel float64 `yaml:"health_per_level"`
	DamagePerLevel float64 `yaml:"damage_per_level"`
	// LevelsPerArmor is how many levels of gap add one point of armor.
	LevelsPerArmor int `yaml:"levels_per_armor"`
	// RewardPerLevel is the fractional reward growth per monster level above 1.
	RewardPerLevel float64 `yaml:"reward_per_level"`

	Tiers TierTable `yaml:"tiers"`
}

// DefaultBalance returns the shipped coefficients.
func DefaultBalance() Balance {
	return Balance{
		HitBase:        0.6,
		HitPerPoint:    0.03,
		HitFloor:       0.05,
		HitCeiling:     0.95,
		FleeBase:       0.5,
		FleePerDexMod:  0.05,
		FleePerLevel:   0.1,
		FleeFloor:      0.05,
		FleeCeiling:    0.95,
		HealthPerLevel: 0.1,
		DamagePerLevel: 0.05,
		LevelsPerArmor: 3,
		RewardPerLevel: 0.1,
		Tiers:          DefaultTiers(),
	}
}

// Validate checks that the coefficients preserve the monotonic, clamped shape of the
// probability curves and that every tier has multipliers.
//
// Postcondition: Returns nil iff the balance is usable; otherwise all violations joined.
func (b Balance) Validate() error {
	var errs []error
	if b.HitPerPoint <= 0 {
		errs = append(errs, fmt.Errorf("hit_per_point must be > 0, got %v", b.HitPerPoint))
	}
	if b.FleePerDexMod <= 0 || b.FleePerLevel <= 0 {
		errs = append(errs, errors.New("flee_per_dex_mod and flee_per_level must be > 0"))
	}
	for name, band := range map[string][2]float64{
		"hit":  {b.HitFloor, b.HitCeiling},
		"flee": {b.FleeFloor, b.FleeCeiling},
	} {
		if band[0] < 0 || band[1] > 1 || band[0] >= band[1] {
			errs = append(errs, fmt.Errorf("%s band [%v, %v] must satisfy 0 <= floor < ceiling <= 1", name, band[0], band[1]))
		}
	}
	if b.LevelsPerArmor < 1 {
		errs = append(errs, fmt.Errorf("levels_per_armor must be >= 1, got %d", b.LevelsPerArmor))
	}
	if b.HealthPerLevel < 0 || b.DamagePerLevel < 0 || b.RewardPerLevel < 0 {
		errs = append(errs, errors.New("per-level growth coefficients must be >= 0"))
	}
	for _, t := range Tiers() {
		if _, ok := b.Tiers[t]; !ok {
			errs = append(errs, fmt.Errorf("tier %q has no multipliers", t))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("combat: invalid balance: %w", errors.Join(errs...))
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
