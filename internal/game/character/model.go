// Package character defines the character-side combat snapshot and pure creation logic.
package character

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// Class is one of the twelve playable character classes.
type Class string

const (
	Barbarian Class = "barbarian"
	Bard      Class = "bard"
	Cleric    Class = "cleric"
	Druid     Class = "druid"
	Fighter   Class = "fighter"
	Monk      Class = "monk"
	Paladin   Class = "paladin"
	Ranger    Class = "ranger"
	Rogue     Class = "rogue"
	Sorcerer  Class = "sorcerer"
	Warlock   Class = "warlock"
	Wizard    Class = "wizard"
)

var allClasses = []Class{
	Barbarian, Bard, Cleric, Druid, Fighter, Monk,
	Paladin, Ranger, Rogue, Sorcerer, Warlock, Wizard,
}

// Classes returns every playable class in a stable order.
func Classes() []Class {
	return slices.Clone(allClasses)
}

// Valid reports whether c is one of the twelve classes.
func (c Class) Valid() bool {
	return slices.Contains(allClasses, c)
}

// ParseClass resolves a case-insensitive class name.
//
// Postcondition: returns a valid Class or a non-nil error.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("character: unknown class %q", s)
	}
	return c, nil
}

// AbilityScores holds the six attribute values for a character. Each is in [1, 30].
type AbilityScores struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// Modifier returns the ability modifier for a given score: floor((score - 10) / 2).
func (a AbilityScores) Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

func (a AbilityScores) named() map[string]int {
	return map[string]int{
		"strength":     a.Strength,
		"dexterity":    a.Dexterity,
		"constitution": a.Constitution,
		"intelligence": a.Intelligence,
		"wisdom":       a.Wisdom,
		"charisma":     a.Charisma,
	}
}

// CombatantStats is the character snapshot a combat session owns for its lifetime.
//
// The authoritative copy of health and mana lives with the caller, who reconciles it
// from each resolution.
type CombatantStats struct {
	Name       string        `json:"name"`
	Class      Class         `json:"class"`
	Level      int           `json:"level"`
	Experience int           `json:"experience"`
	Abilities  AbilityScores `json:"abilities"`

	CurrentHealth int `json:"current_health"`
	MaxHealth     int `json:"max_health"`
	CurrentMana   int `json:"current_mana"`
	MaxMana       int `json:"max_mana"`
	ArmorClass    int `json:"armor_class"`

	// WeaponDice is the damage notation of the equipped weapon, resolved upstream.
	WeaponDice string `json:"weapon_dice"`

	KnownSpells []string `json:"known_spells"`
	// ConsumedSlots maps spell level to slots used this session.
	ConsumedSlots map[int]int `json:"consumed_slots"`
}

// MaxLevel is the highest character level.
const MaxLevel = 20

// DefaultWeaponDice is used when a snapshot carries no weapon notation.
const DefaultWeaponDice = "1d6"

// Knows reports whether spellID is in the known-spell list.
func (c *CombatantStats) Knows(spellID string) bool {
	return slices.Contains(c.KnownSpells, spellID)
}

// Clone returns a deep copy so the session never aliases caller-owned slices or maps.
func (c CombatantStats) Clone() CombatantStats {
	out := c
	out.KnownSpells = slices.Clone(c.KnownSpells)
	out.ConsumedSlots = make(map[int]int, len(c.ConsumedSlots))
	for k, v := range c.ConsumedSlots {
		out.ConsumedSlots[k] = v
	}
	return out
}

// Validate reports every violation of the snapshot invariants.
//
// Postcondition: returns nil iff the snapshot may seed a combat session.
func (c *CombatantStats) Validate() error {
	var errs []error
	if !c.Class.Valid() {
		errs = append(errs, fmt.Errorf("class %q is not a playable class", c.Class))
	}
	if c.Level < 1 || c.Level > MaxLevel {
		errs = append(errs, fmt.Errorf("level must be in [1, %d], got %d", MaxLevel, c.Level))
	}
	if c.WeaponDice != "" {
		if _, err := dice.Parse(c.WeaponDice); err != nil {
			errs = append(errs, fmt.Errorf("weapon_dice: %w", err))
		}
	}
	for name, v := range c.Abilities.named() {
		if v < 1 || v > 30 {
			errs = append(errs, fmt.Errorf("%s must be in [1, 30], got %d", name, v))
		}
	}
	if c.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max_health must be >= 1, got %d", c.MaxHealth))
	}
	if c.CurrentHealth < 0 || c.CurrentHealth > c.MaxHealth {
		errs = append(errs, fmt.Errorf("current_health must be in [0, %d], got %d", c.MaxHealth, c.CurrentHealth))
	}
	if c.MaxMana < 0 || c.CurrentMana < 0 || c.CurrentMana > c.MaxMana {
		errs = append(errs, fmt.Errorf("mana %d/%d out of range", c.CurrentMana, c.MaxMana))
	}
	for lvl, used := range c.ConsumedSlots {
		if lvl < 1 || used < 0 {
			errs = append(errs, fmt.Errorf("consumed slots entry %d=%d is invalid", lvl, used))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("character: invalid snapshot: %w", errors.Join(errs...))
	}
	return nil
}
