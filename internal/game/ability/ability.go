// Package ability defines the ability shape shared by class and monster abilities,
// the per-class kits, use tracking and timed effects.
package ability

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// Unlimited is the MaxUses sentinel for abilities that never run out.
const Unlimited = 999

// Category classifies what an ability does.
type Category string

const (
	CategoryAttack  Category = "attack"
	CategorySpell   Category = "spell"
	CategoryBuff    Category = "buff"
	CategoryDebuff  Category = "debuff"
	CategoryHeal    Category = "heal"
	CategorySpecial Category = "special"
)

func (c Category) valid() bool {
	switch c {
	case CategoryAttack, CategorySpell, CategoryBuff, CategoryDebuff, CategoryHeal, CategorySpecial:
		return true
	}
	return false
}

// EffectType tags a non-damage effect.
type EffectType string

const (
	// EffectDamageBonus adds Magnitude plus a roll of Dice to each attack that hits.
	EffectDamageBonus EffectType = "damage_bonus"
	// EffectResistance halves incoming damage.
	EffectResistance EffectType = "resistance"
	// EffectRage is resistance plus a flat Magnitude damage bonus.
	EffectRage EffectType = "rage"
	// EffectShield absorbs up to Magnitude incoming damage.
	EffectShield EffectType = "shield"
	// EffectArmorDown lowers the target's armor class by Magnitude.
	EffectArmorDown EffectType = "armor_down"
	// EffectRider adds a roll of Dice to the next attack that hits.
	EffectRider EffectType = "rider"
	// EffectExtraAction re-opens the action slot this round.
	EffectExtraAction EffectType = "extra_action"
)

func (t EffectType) valid() bool {
	switch t {
	case EffectDamageBonus, EffectResistance, EffectRage, EffectShield,
		EffectArmorDown, EffectRider, EffectExtraAction:
		return true
	}
	return false
}

// TargetsSelf reports whether the effect lands on the user rather than the opponent.
func (t EffectType) TargetsSelf() bool { return t != EffectArmorDown }

// Effect is an optional non-damage consequence of an ability.
type Effect struct {
	Type      EffectType `yaml:"type" json:"type"`
	Duration  int        `yaml:"duration" json:"duration"`
	Magnitude int        `yaml:"magnitude" json:"magnitude"`
	Dice      string     `yaml:"dice,omitempty" json:"dice,omitempty"`
}

// Ability is the shape shared by class abilities and monster abilities.
//
// UseChance, MinHealth, MaxHealth and Condition apply only to monsters; BonusAction,
// Free and MaxUses apply only to class abilities.
type Ability struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Category    Category            `yaml:"category"`
	Cooldown    int                 `yaml:"cooldown"`
	UseChance   float64             `yaml:"use_chance"`
	Damage      *combat.DamageSpec  `yaml:"damage,omitempty"`
	Healing     *combat.HealingSpec `yaml:"healing,omitempty"`
	Effect      *Effect             `yaml:"effect,omitempty"`
	MinHealth   *float64            `yaml:"min_health,omitempty"`
	MaxHealth   *float64            `yaml:"max_health,omitempty"`
	BonusAction bool                `yaml:"bonus_action"`
	Free        bool                `yaml:"free"`
	MaxUses     int                 `yaml:"max_uses"`
	// Condition names a script hook that must return true for a monster to pick this ability.
	Condition string `yaml:"condition,omitempty"`
}

// Slot returns the action-economy slot the ability spends.
func (a *Ability) Slot() combat.Slot {
	switch {
	case a.Free:
		return combat.SlotFree
	case a.BonusAction:
		return combat.SlotBonusAction
	default:
		return combat.SlotAction
	}
}

// Unlimited reports whether the ability never runs out of uses.
func (a *Ability) Unlimited() bool { return a.MaxUses == Unlimited }

// InHealthWindow reports whether fraction lies within [MinHealth, MaxHealth]. Unset
// bounds are open.
func (a *Ability) InHealthWindow(fraction float64) bool {
	if a.MinHealth != nil && fraction < *a.MinHealth {
		return false
	}
	if a.MaxHealth != nil && fraction > *a.MaxHealth {
		return false
	}
	return true
}

// RollsToHit reports whether the ability's damage must pass an attack roll. Other
// damaging abilities always land.
func (a *Ability) RollsToHit() bool { return a.Category == CategoryAttack }

// Validate checks the ability definition.
//
// Postcondition: Returns nil iff the ability is usable; otherwise all violations joined.
func (a *Ability) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if !a.Category.valid() {
		errs = append(errs, fmt.Errorf("category %q is invalid", a.Category))
	}
	if a.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must be >= 0, got %d", a.Cooldown))
	}
	if a.UseChance < 0 || a.UseChance > 1 {
		errs = append(errs, fmt.Errorf("use_chance must be in [0, 1], got %v", a.UseChance))
	}
	if a.Damage != nil && a.Healing != nil {
		errs = append(errs, errors.New("damage and healing are mutually exclusive"))
	}
	for label, notation := range a.notations() {
		if _, err := dice.Parse(notation); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
	}
	if a.Effect != nil && !a.Effect.Type.valid() {
		errs = append(errs, fmt.Errorf("effect type %q is invalid", a.Effect.Type))
	}
	if a.MinHealth != nil && a.MaxHealth != nil && *a.MinHealth > *a.MaxHealth {
		errs = append(errs, fmt.Errorf("min_health %v exceeds max_health %v", *a.MinHealth, *a.MaxHealth))
	}
	if a.Free && a.BonusAction {
		errs = append(errs, errors.New("an ability cannot be both free and a bonus action"))
	}
	if a.MaxUses < 0 {
		errs = append(errs, fmt.Errorf("max_uses must be >= 0, got %d", a.MaxUses))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ability %q: %w", a.ID, errors.Join(errs...))
	}
	return nil
}

func (a *Ability) notations() map[string]string {
	out := map[string]string{}
	if a.Damage != nil {
		out["damage"] = a.Damage.Dice
	}
	if a.Healing != nil {
		out["healing"] = a.Healing.Dice
	}
	if a.Effect != nil && a.Effect.Dice != "" {
		out["effect"] = a.Effect.Dice
	}
	return out
}

// Float returns a pointer to v, for building health windows in code.
func Float(v float64) *float64 { return &v }
