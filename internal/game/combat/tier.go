package combat

import (
	"fmt"
	"math"
	"strings"
)

// Tier is a coarse monster-strength classification.
type Tier string

const (
	TierCommon    Tier = "common"
	TierElite     Tier = "elite"
	TierBoss      Tier = "boss"
	TierLegendary Tier = "legendary"
)

// Tiers returns every tier, weakest first.
func Tiers() []Tier {
	return []Tier{TierCommon, TierElite, TierBoss, TierLegendary}
}

// ParseTier resolves a case-insensitive tier name. An empty string means common.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return TierCommon, nil
	}
	for _, known := range Tiers() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("combat: unknown tier %q", s)
}

// TierMultipliers scales each monster stat and reward for one tier.
type TierMultipliers struct {
	Health float64 `yaml:"health"`
	Damage float64 `yaml:"damage"`
	Armor  float64 `yaml:"armor"`
	XP     float64 `yaml:"xp"`
	Gold   float64 `yaml:"gold"`
}

// TierTable is the single lookup every scaling call goes through.
type TierTable map[Tier]TierMultipliers

// DefaultTiers returns the shipped tier multipliers.
func DefaultTiers() TierTable {
	return TierTable{
		TierCommon:    {Health: 1.0, Damage: 1.0, Armor: 1.0, XP: 1.0, Gold: 1.0},
		TierElite:     {Health: 1.5, Damage: 1.3, Armor: 1.2, XP: 1.5, Gold: 1.5},
		TierBoss:      {Health: 2.5, Damage: 1.5, Armor: 1.5, XP: 2.5, Gold: 2.0},
		TierLegendary: {Health: 4.0, Damage: 2.0, Armor: 1.8, XP: 4.0, Gold: 3.0},
	}
}

// For returns the multipliers for t, falling back to common for unknown tiers.
func (tt TierTable) For(t Tier) TierMultipliers {
	if m, ok := tt[t]; ok {
		return m
	}
	if m, ok := tt[TierCommon]; ok {
		return m
	}
	return TierMultipliers{Health: 1, Damage: 1, Armor: 1, XP: 1, Gold: 1}
}

// ScaledStats is the level- and tier-adjusted monster stat block.
type ScaledStats struct {
	Health int
	Damage int
	Armor  int
	Level  int
}

// ScaleMonster adjusts base stats for the level gap between the character and the
// monster's base level, then applies the tier multipliers. Monsters never scale down.
//
// Precondition: base values must be >= 0; levels >= 1.
// Postcondition: Health >= 1, Damage >= 1, Armor >= 0, Level == max(monsterBaseLevel, characterLevel).
func (b Balance) ScaleMonster(baseHealth, baseDamage, baseArmor, monsterBaseLevel, characterLevel int, tier Tier) ScaledStats {
	m := b.Tiers.For(tier)
	gap := max(0, characterLevel-monsterBaseLevel)
	per := max(1, b.LevelsPerArmor)

	health := float64(baseHealth) * (1 + b.HealthPerLevel*float64(gap)) * m.Health
	damage := float64(baseDamage) * (1 + b.DamagePerLevel*float64(gap)) * m.Damage
	armor := float64(baseArmor+gap/per) * m.Armor

	return ScaledStats{
		Health: max(1, int(math.Round(health))),
		Damage: max(1, int(math.Round(damage))),
		Armor:  max(0, int(math.Round(armor))),
		Level:  max(monsterBaseLevel, characterLevel),
	}
}

// ScaleRewards scales base XP and gold by monster level and tier.
//
// Postcondition: both results are >= 0.
func (b Balance) ScaleRewards(baseXP, baseGold, monsterLevel int, tier Tier) (xp, gold int) {
	m := b.Tiers.For(tier)
	levelFactor := 1 + b.RewardPerLevel*float64(max(0, monsterLevel-1))
	xp = int(math.Round(float64(max(0, baseXP)) * levelFactor * m.XP))
	gold = int(math.Round(float64(max(0, baseGold)) * levelFactor * m.Gold))
	return xp, gold
}
