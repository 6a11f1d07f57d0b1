// Package combaterr defines the typed rejection kinds returned by the combat engine.
//
// Every rejected intent carries exactly one Kind. Callers branch on the kind with
// errors.Is against the package sentinels or with KindOf.
package combaterr

import (
	"errors"
	"fmt"
)

// Kind categorizes a rejected intent or failed rules operation.
type Kind string

const (
	// KindNone is returned by KindOf for nil or foreign errors.
	KindNone Kind = ""

	KindActionAlreadyUsed      Kind = "action_already_used"
	KindBonusActionAlreadyUsed Kind = "bonus_action_already_used"
	KindAbilityExhausted       Kind = "ability_exhausted"
	KindNoSpellSlots           Kind = "no_spell_slots"
	KindUnknownAbilityOrSpell  Kind = "unknown_ability_or_spell"
	KindInvalidDiceNotation    Kind = "invalid_dice_notation"
	KindSessionBusy            Kind = "session_busy"
	KindSessionTerminated      Kind = "session_terminated"

	// KindSpellUnavailable means the spell exists but this caster cannot cast it
	// (wrong class, unknown to the caster, or above the caster's level band).
	KindSpellUnavailable Kind = "spell_unavailable"
	// KindInsufficientMana means the spell's mana cost exceeds current mana.
	KindInsufficientMana Kind = "insufficient_mana"
	// KindNotPlayerTurn means a player transition was attempted outside PlayerTurn.
	KindNotPlayerTurn Kind = "not_player_turn"
	// KindInvalidIntent means the intent itself is malformed.
	KindInvalidIntent Kind = "invalid_intent"
	// KindInvalidSnapshot means a snapshot could not be restored.
	KindInvalidSnapshot Kind = "invalid_snapshot"
)

// Sentinels for errors.Is comparisons. Matching is by Kind only.
var (
	ErrActionAlreadyUsed      = &Error{Kind: KindActionAlreadyUsed}
	ErrBonusActionAlreadyUsed = &Error{Kind: KindBonusActionAlreadyUsed}
	ErrAbilityExhausted       = &Error{Kind: KindAbilityExhausted}
	ErrNoSpellSlots           = &Error{Kind: KindNoSpellSlots}
	ErrUnknownAbilityOrSpell  = &Error{Kind: KindUnknownAbilityOrSpell}
	ErrInvalidDiceNotation    = &Error{Kind: KindInvalidDiceNotation}
	ErrSessionBusy            = &Error{Kind: KindSessionBusy}
	ErrSessionTerminated      = &Error{Kind: KindSessionTerminated}
	ErrSpellUnavailable       = &Error{Kind: KindSpellUnavailable}
	ErrInsufficientMana       = &Error{Kind: KindInsufficientMana}
	ErrNotPlayerTurn          = &Error{Kind: KindNotPlayerTurn}
	ErrInvalidIntent          = &Error{Kind: KindInvalidIntent}
	ErrInvalidSnapshot        = &Error{Kind: KindInvalidSnapshot}
)

// Error is a rules rejection with a kind, a human-readable message and optional metadata.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Meta    map[string]any
}

// Error returns the message prefixed with the kind.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	} else {
		msg = string(e.Kind) + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMeta attaches a metadata value and returns e.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an Error of kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of kind that wraps cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindNone.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
