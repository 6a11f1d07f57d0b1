package ability

import (
	"slices"

	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// Active is a timed effect on a combatant.
type Active struct {
	Source    string     `json:"source"`
	Type      EffectType `json:"type"`
	Remaining int        `json:"remaining"`
	Magnitude int        `json:"magnitude"`
	Dice      string     `json:"dice,omitempty"`
}

// Effects is the set of timed effects on one combatant. Re-applying an effect from
// the same source refreshes it instead of stacking.
type Effects struct {
	active []Active
}

// RestoreEffects rebuilds a tracker from a snapshot list.
func RestoreEffects(list []Active) *Effects {
	return &Effects{active: slices.Clone(list)}
}

// Apply adds or refreshes the effect from source. Effects with a non-positive
// duration last one round.
func (e *Effects) Apply(source string, eff Effect) {
	a := Active{
		Source:    source,
		Type:      eff.Type,
		Remaining: max(1, eff.Duration),
		Magnitude: eff.Magnitude,
		Dice:      eff.Dice,
	}
	for i := range e.active {
		if e.active[i].Source == source && e.active[i].Type == eff.Type {
			e.active[i] = a
			return
		}
	}
	e.active = append(e.active, a)
}

// Tick decrements every duration and drops expired effects, returning the sources
// that expired.
func (e *Effects) Tick() []string {
	var expired []string
	kept := e.active[:0]
	for _, a := range e.active {
		a.Remaining--
		if a.Remaining <= 0 {
			expired = append(expired, a.Source)
			continue
		}
		kept = append(kept, a)
	}
	e.active = kept
	return expired
}

// Has reports whether any effect of type t is active.
func (e *Effects) Has(t EffectType) bool {
	return slices.ContainsFunc(e.active, func(a Active) bool { return a.Type == t })
}

// Resistant reports whether incoming damage is halved.
func (e *Effects) Resistant() bool {
	return e.Has(EffectResistance) || e.Has(EffectRage)
}

// DamageBonus totals the flat and rolled bonus damage from damage_bonus and rage effects.
func (e *Effects) DamageBonus(r *dice.Roller) int {
	total := 0
	for _, a := range e.active {
		if a.Type != EffectDamageBonus && a.Type != EffectRage {
			continue
		}
		total += a.Magnitude
		if a.Dice != "" {
			total += r.Amount(a.Dice)
		}
	}
	return total
}

// ArmorPenalty totals active armor_down magnitudes.
func (e *Effects) ArmorPenalty() int {
	total := 0
	for _, a := range e.active {
		if a.Type == EffectArmorDown {
			total += a.Magnitude
		}
	}
	return total
}

// Absorb routes dmg through active shields, depleting them first, and returns the
// damage left over. Depleted shields are removed.
//
// Postcondition: 0 <= return value <= dmg.
func (e *Effects) Absorb(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	kept := e.active[:0]
	for _, a := range e.active {
		if a.Type == EffectShield && dmg > 0 {
			soaked := min(a.Magnitude, dmg)
			a.Magnitude -= soaked
			dmg -= soaked
			if a.Magnitude <= 0 {
				continue
			}
		}
		kept = append(kept, a)
	}
	e.active = kept
	return dmg
}

// List returns a copy of the active effects.
func (e *Effects) List() []Active {
	return slices.Clone(e.active)
}

// Rider is bonus damage armed by a free ability and spent by the next attack.
type Rider struct {
	Source string `json:"source"`
	Dice   string `json:"dice"`
}
