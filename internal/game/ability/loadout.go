package ability

import (
	"fmt"
	"maps"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// Loadout tracks the remaining uses of a character's abilities for one session.
//
// Invariant: a limited ability's remaining uses never go below zero, and each
// successful Use lowers them by exactly one.
type Loadout struct {
	order []*Ability
	byID  map[string]*Ability
	uses  map[string]int
}

// NewLoadout starts every ability at its MaxUses.
func NewLoadout(abilities []*Ability) *Loadout {
	return RestoreLoadout(abilities, nil)
}

// RestoreLoadout builds a loadout with remaining uses taken from uses where present.
func RestoreLoadout(abilities []*Ability, uses map[string]int) *Loadout {
	l := &Loadout{
		order: abilities,
		byID:  make(map[string]*Ability, len(abilities)),
		uses:  make(map[string]int, len(abilities)),
	}
	for _, a := range abilities {
		l.byID[a.ID] = a
		l.uses[a.ID] = a.MaxUses
		if n, ok := uses[a.ID]; ok && !a.Unlimited() {
			l.uses[a.ID] = min(max(0, n), a.MaxUses)
		}
	}
	return l
}

// Abilities returns the abilities in kit order.
func (l *Loadout) Abilities() []*Ability { return l.order }

// Get returns the ability with id.
func (l *Loadout) Get(id string) (*Ability, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// Remaining returns the uses left for id; Unlimited abilities always report Unlimited.
func (l *Loadout) Remaining(id string) int { return l.uses[id] }

// Check returns the ability or an UnknownAbilityOrSpell or AbilityExhausted error,
// without changing state.
func (l *Loadout) Check(id string) (*Ability, error) {
	a, ok := l.byID[id]
	if !ok {
		return nil, combaterr.New(combaterr.KindUnknownAbilityOrSpell, "no ability %q", id)
	}
	if !a.Unlimited() && l.uses[id] <= 0 {
		return nil, combaterr.New(combaterr.KindAbilityExhausted, "%s has no uses left", a.Name).
			WithMeta("max_uses", a.MaxUses)
	}
	return a, nil
}

// Use spends one use of id. Unlimited abilities are unaffected.
//
// Postcondition: on error the loadout is unchanged.
func (l *Loadout) Use(id string) error {
	a, err := l.Check(id)
	if err != nil {
		return err
	}
	if !a.Unlimited() {
		l.uses[id]--
	}
	return nil
}

// BonusAvailable reports whether any bonus-action ability still has uses.
func (l *Loadout) BonusAvailable() bool {
	for _, a := range l.order {
		if a.BonusAction && (a.Unlimited() || l.uses[a.ID] > 0) {
			return true
		}
	}
	return false
}

// Uses returns a copy of the remaining-use counters.
func (l *Loadout) Uses() map[string]int {
	out := make(map[string]int, len(l.uses))
	maps.Copy(out, l.uses)
	return out
}

// String renders the loadout for logs.
func (l *Loadout) String() string {
	s := ""
	for i, a := range l.order {
		if i > 0 {
			s += ", "
		}
		if a.Unlimited() {
			s += fmt.Sprintf("%s(∞)", a.ID)
		} else {
			s += fmt.Sprintf("%s(%d/%d)", a.ID, l.uses[a.ID], a.MaxUses)
		}
	}
	return s
}
