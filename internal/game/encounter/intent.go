// Package encounter runs one-on-one combat sessions: it accepts one player intent at
// a time, applies the rules subsystems and folds the monster's reply into the same
// resolution.
package encounter

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// IntentKind identifies what the player wants to do.
type IntentKind string

const (
	IntentAttack     IntentKind = "attack"
	IntentCastSpell  IntentKind = "cast_spell"
	IntentUseAbility IntentKind = "use_ability"
	IntentFlee       IntentKind = "flee"
	IntentEndTurn    IntentKind = "end_turn"
)

// Intent is one player submission. ID names the spell or ability for CastSpell and
// UseAbility and is ignored otherwise.
type Intent struct {
	Kind IntentKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// Attack returns a weapon attack intent.
func Attack() Intent { return Intent{Kind: IntentAttack} }

// CastSpell returns an intent to cast the spell with id.
func CastSpell(id string) Intent { return Intent{Kind: IntentCastSpell, ID: id} }

// UseAbility returns an intent to use the class ability with id.
func UseAbility(id string) Intent { return Intent{Kind: IntentUseAbility, ID: id} }

// Flee returns a flee intent.
func Flee() Intent { return Intent{Kind: IntentFlee} }

// EndTurn returns an intent that hands the round to the monster.
func EndTurn() Intent { return Intent{Kind: IntentEndTurn} }

// ParseIntent builds an intent from its wire name.
//
// Postcondition: returns an InvalidIntent error for unknown kinds or a missing ID.
func ParseIntent(kind, id string) (Intent, error) {
	in := Intent{Kind: IntentKind(strings.ToLower(strings.TrimSpace(kind))), ID: strings.TrimSpace(id)}
	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}

// Validate checks the intent shape.
func (i Intent) Validate() error {
	switch i.Kind {
	case IntentAttack, IntentFlee, IntentEndTurn:
		return nil
	case IntentCastSpell, IntentUseAbility:
		if i.ID == "" {
			return combaterr.New(combaterr.KindInvalidIntent, "%s requires an id", i.Kind)
		}
		return nil
	}
	return combaterr.New(combaterr.KindInvalidIntent, "unknown intent %q", string(i.Kind))
}

// String renders the intent for logs.
func (i Intent) String() string {
	if i.ID == "" {
		return string(i.Kind)
	}
	return fmt.Sprintf("%s(%s)", i.Kind, i.ID)
}
