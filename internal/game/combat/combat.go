// Package combat implements the rules math and action-economy state machine for
// one-on-one geoquest encounters.
package combat

import "fmt"

// Outcome is the terminal state of an encounter.
type Outcome string

const (
	OutcomeNone    Outcome = "none"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// Terminal reports whether o ends the encounter.
func (o Outcome) Terminal() bool {
	return o == OutcomeVictory || o == OutcomeDefeat || o == OutcomeFled
}

// String returns the outcome label.
func (o Outcome) String() string {
	if o == "" {
		return string(OutcomeNone)
	}
	return string(o)
}

// Vitals is a clamped health or mana pool.
//
// Invariant: 0 <= Current <= Max after every mutation.
type Vitals struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// NewVitals returns a pool with current clamped into [0, max].
func NewVitals(current, max int) Vitals {
	v := Vitals{Current: current, Max: max}
	v.clamp()
	return v
}

func (v *Vitals) clamp() {
	if v.Max < 0 {
		v.Max = 0
	}
	if v.Current > v.Max {
		v.Current = v.Max
	}
	if v.Current < 0 {
		v.Current = 0
	}
}

// ApplyDamage reduces Current by amount, flooring at zero, and returns the amount
// actually removed.
//
// Precondition: amount must be >= 0; negative amounts are treated as 0.
// Postcondition: Current >= 0.
func (v *Vitals) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := v.Current
	v.Current -= amount
	v.clamp()
	return before - v.Current
}

// Restore raises Current by amount, capping at Max, and returns the amount actually
// restored.
//
// Postcondition: Current <= Max.
func (v *Vitals) Restore(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := v.Current
	v.Current += amount
	v.clamp()
	return v.Current - before
}

// Depleted reports whether the pool is empty.
func (v Vitals) Depleted() bool { return v.Current <= 0 }

// Fraction returns Current/Max, or 0 for an empty pool.
func (v Vitals) Fraction() float64 {
	if v.Max <= 0 {
		return 0
	}
	return float64(v.Current) / float64(v.Max)
}

// String renders the pool as "cur/max".
func (v Vitals) String() string {
	return fmt.Sprintf("%d/%d", v.Current, v.Max)
}

// ApplyResistance halves incoming damage for a resisting target. Any positive damage
// still deals at least 1.
//
// Postcondition: returns 0 iff dmg <= 0.
func ApplyResistance(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	return max(1, dmg/2)
}

// Reward is the experience and gold granted on victory plus the level-up result.
type Reward struct {
	Experience int  `json:"experience"`
	Gold       int  `json:"gold"`
	LeveledUp  bool `json:"leveled_up"`
	NewLevel   int  `json:"new_level"`
}

// DamageSpec is a dice-notation damage roll with a cosmetic damage type.
type DamageSpec struct {
	Dice string `yaml:"dice" json:"dice"`
	Type string `yaml:"type" json:"type"`
}

// HealingSpec is a dice-notation healing roll.
type HealingSpec struct {
	Dice string `yaml:"dice" json:"dice"`
}
