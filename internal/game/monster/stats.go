// Package monster provides monster snapshots, YAML templates, ability rosters and
// the turn decision policy.
package monster

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
)

// DefaultDexterity is used when a snapshot carries no dexterity.
const DefaultDexterity = 10

// Stats is the monster snapshot a combat session owns for its lifetime.
type Stats struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Tier      combat.Tier `json:"tier"`
	Level     int         `json:"level"`
	Health    int         `json:"health"`
	MaxHealth int         `json:"max_health"`
	Damage    int         `json:"damage"`
	Armor     int         `json:"armor"`
	Dexterity int         `json:"dexterity"`
	// Experience and Gold are base rewards before level and tier scaling.
	Experience int `json:"experience"`
	Gold       int `json:"gold"`
}

// WithDefaults fills in dexterity, tier and base rewards when they are zero.
//
// Postcondition: Dexterity >= 1; Tier is set; Experience and Gold are positive when Level >= 1.
func (s Stats) WithDefaults() Stats {
	if s.Dexterity == 0 {
		s.Dexterity = DefaultDexterity
	}
	if s.Tier == "" {
		s.Tier = combat.TierCommon
	}
	if s.Experience == 0 {
		s.Experience = 25 * max(1, s.Level)
	}
	if s.Gold == 0 {
		s.Gold = 5 * max(1, s.Level)
	}
	return s
}

// Validate reports every violation of the snapshot invariants.
func (s *Stats) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := combat.ParseTier(string(s.Tier)); err != nil {
		errs = append(errs, err)
	}
	if s.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", s.Level))
	}
	if s.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max_health must be >= 1, got %d", s.MaxHealth))
	}
	if s.Health < 0 || s.Health > s.MaxHealth {
		errs = append(errs, fmt.Errorf("health must be in [0, %d], got %d", s.MaxHealth, s.Health))
	}
	if s.Damage < 0 || s.Armor < 0 || s.Dexterity < 0 {
		errs = append(errs, errors.New("damage, armor and dexterity must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("monster: invalid snapshot: %w", errors.Join(errs...))
	}
	return nil
}
