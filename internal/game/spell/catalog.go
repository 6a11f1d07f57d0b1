package spell

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// Catalog is the read-only spell table injected at session creation.
type Catalog struct {
	byID  map[string]*Spell
	order []string
}

// NewCatalog validates spells and indexes them by ID, preserving input order.
//
// Postcondition: Returns a Catalog or an error naming the first invalid or duplicate spell.
func NewCatalog(spells []*Spell) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Spell, len(spells))}
	for _, s := range spells {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("spell: %w", err)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("spell: duplicate id %q", s.ID)
		}
		c.byID[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c, nil
}

// Get returns the spell with id.
func (c *Catalog) Get(id string) (*Spell, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// All returns every spell in catalog order.
func (c *Catalog) All() []*Spell {
	out := make([]*Spell, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of spells.
func (c *Catalog) Len() int { return len(c.order) }

// EligibleSpells returns the spells a caster may use this encounter, in catalog order.
func (c *Catalog) EligibleSpells(class character.Class, level int, known []string) []*Spell {
	var out []*Spell
	for _, id := range c.order {
		if s := c.byID[id]; s.Eligible(class, level, known) {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the spell with id or an UnknownAbilityOrSpell error.
func (c *Catalog) Lookup(id string) (*Spell, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, combaterr.New(combaterr.KindUnknownAbilityOrSpell, "no spell %q", id)
	}
	return s, nil
}

// CheckEligible returns a SpellUnavailable error when the caster may not cast s.
func CheckEligible(s *Spell, class character.Class, level int, known []string) error {
	switch {
	case !s.HasClass(class):
		return combaterr.New(combaterr.KindSpellUnavailable, "%s cannot cast %s", class, s.ID)
	case !s.Cantrip() && !slices.Contains(known, s.ID):
		return combaterr.New(combaterr.KindSpellUnavailable, "%s is not a known spell", s.ID)
	case s.Level > MaxCastableLevel(level):
		return combaterr.New(combaterr.KindSpellUnavailable,
			"%s is level %d, above the level-%d limit of %d", s.ID, s.Level, level, MaxCastableLevel(level))
	}
	return nil
}
