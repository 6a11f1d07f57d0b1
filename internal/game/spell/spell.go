// Package spell models spell definitions, caster eligibility and per-session slot
// consumption.
package spell

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// School is the cosmetic school of magic used by presentation layers to pick effects.
type School string

const (
	Abjuration    School = "abjuration"
	Conjuration   School = "conjuration"
	Divination    School = "divination"
	Enchantment   School = "enchantment"
	Evocation     School = "evocation"
	Illusion      School = "illusion"
	Necromancy    School = "necromancy"
	Transmutation School = "transmutation"
)

// MaxLevel is the highest spell level.
const MaxLevel = 9

// Spell is a static spell definition.
//
// Invariant: at most one of Damage and Healing is set.
type Spell struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	Level    int                 `yaml:"level"`
	School   School              `yaml:"school"`
	Classes  []character.Class   `yaml:"classes"`
	Damage   *combat.DamageSpec  `yaml:"damage,omitempty"`
	Healing  *combat.HealingSpec `yaml:"healing,omitempty"`
	ManaCost int                 `yaml:"mana_cost,omitempty"`
}

// Cantrip reports whether s is a level-0 spell.
func (s *Spell) Cantrip() bool { return s.Level == 0 }

// HasClass reports whether c may cast s.
func (s *Spell) HasClass(c character.Class) bool {
	return slices.Contains(s.Classes, c)
}

// Validate checks the spell definition.
//
// Postcondition: Returns nil iff the spell is usable; otherwise all violations joined.
func (s *Spell) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Level < 0 || s.Level > MaxLevel {
		errs = append(errs, fmt.Errorf("level must be in [0, %d], got %d", MaxLevel, s.Level))
	}
	if len(s.Classes) == 0 {
		errs = append(errs, errors.New("classes must not be empty"))
	}
	for _, c := range s.Classes {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("class %q is not a playable class", c))
		}
	}
	if s.Damage != nil && s.Healing != nil {
		errs = append(errs, errors.New("damage and healing are mutually exclusive"))
	}
	if s.Damage != nil {
		if _, err := dice.Parse(s.Damage.Dice); err != nil {
			errs = append(errs, fmt.Errorf("damage: %w", err))
		}
	}
	if s.Healing != nil {
		if _, err := dice.Parse(s.Healing.Dice); err != nil {
			errs = append(errs, fmt.Errorf("healing: %w", err))
		}
	}
	if s.ManaCost < 0 {
		errs = append(errs, fmt.Errorf("mana_cost must be >= 0, got %d", s.ManaCost))
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell %q: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

// MaxCastableLevel returns the highest spell level a character of the given level
// may cast: ceil(level / 2).
func MaxCastableLevel(characterLevel int) int {
	return (characterLevel + 1) / 2
}

// Eligible reports whether a caster of class and level who knows the listed spells
// may cast s: the class matches, the spell is a cantrip or known, and its level is
// within ceil(level / 2).
func (s *Spell) Eligible(class character.Class, level int, known []string) bool {
	if !s.HasClass(class) {
		return false
	}
	if !s.Cantrip() && !slices.Contains(known, s.ID) {
		return false
	}
	return s.Level <= MaxCastableLevel(level)
}
