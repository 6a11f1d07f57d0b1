package combat

import (
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// Phase is the action-economy state.
type Phase string

const (
	PhasePlayerTurn  Phase = "player_turn"
	PhaseMonsterTurn Phase = "monster_turn"
	PhaseEnded       Phase = "ended"
)

// EconomyView is the externally visible action-economy state.
type EconomyView struct {
	Phase           Phase   `json:"phase"`
	ActionUsed      bool    `json:"action_used"`
	BonusActionUsed bool    `json:"bonus_action_used"`
	Outcome         Outcome `json:"outcome"`
}

// Economy is the per-round action and bonus-action state machine.
//
// States: PlayerTurn(actionUsed, bonusActionUsed), MonsterTurn, Ended(outcome).
// A rejected transition never changes state.
type Economy struct {
	phase      Phase
	actionUsed bool
	bonusUsed  bool
	outcome    Outcome
}

// NewEconomy returns an economy in PlayerTurn(false, false).
func NewEconomy() *Economy {
	return &Economy{phase: PhasePlayerTurn, outcome: OutcomeNone}
}

// RestoreEconomy rebuilds an economy from a view.
func RestoreEconomy(v EconomyView) *Economy {
	e := &Economy{phase: v.Phase, actionUsed: v.ActionUsed, bonusUsed: v.BonusActionUsed, outcome: v.Outcome}
	if e.phase == "" {
		e.phase = PhasePlayerTurn
	}
	if e.outcome == "" {
		e.outcome = OutcomeNone
	}
	return e
}

// View returns the current state.
func (e *Economy) View() EconomyView {
	return EconomyView{Phase: e.phase, ActionUsed: e.actionUsed, BonusActionUsed: e.bonusUsed, Outcome: e.outcome}
}

// Phase returns the current phase.
func (e *Economy) Phase() Phase { return e.phase }

// ActionUsed reports whether the action slot is spent this round.
func (e *Economy) ActionUsed() bool { return e.actionUsed }

// BonusActionUsed reports whether the bonus-action slot is spent this round.
func (e *Economy) BonusActionUsed() bool { return e.bonusUsed }

// Outcome returns the terminal outcome, or OutcomeNone while the encounter runs.
func (e *Economy) Outcome() Outcome { return e.outcome }

// Check reports whether an intent spending slot may be submitted now, without
// changing state.
//
// Postcondition: returns nil, or an error of kind SessionTerminated, NotPlayerTurn,
// ActionAlreadyUsed or BonusActionAlreadyUsed.
func (e *Economy) Check(slot Slot) error {
	switch e.phase {
	case PhaseEnded:
		return combaterr.New(combaterr.KindSessionTerminated, "encounter ended with %s", e.outcome)
	case PhaseMonsterTurn:
		return combaterr.New(combaterr.KindNotPlayerTurn, "monster turn in progress")
	}
	switch slot {
	case SlotAction:
		if e.actionUsed {
			return combaterr.New(combaterr.KindActionAlreadyUsed, "action already used this round")
		}
	case SlotBonusAction:
		if e.bonusUsed {
			return combaterr.New(combaterr.KindBonusActionAlreadyUsed, "bonus action already used this round")
		}
	}
	return nil
}

// Spend consumes slot and advances to MonsterTurn when the round is over.
// bonusAvailable reports whether the player still holds an eligible, usable bonus
// action; it only matters after spending the action slot.
//
// Postcondition: on error the state is unchanged. After an action the phase is
// MonsterTurn unless the bonus slot is open and bonusAvailable. After a bonus action
// the phase is MonsterTurn iff the action slot is spent. SlotFree never advances.
func (e *Economy) Spend(slot Slot, bonusAvailable bool) error {
	if err := e.Check(slot); err != nil {
		return err
	}
	switch slot {
	case SlotAction:
		e.actionUsed = true
		if e.bonusUsed || !bonusAvailable {
			e.phase = PhaseMonsterTurn
		}
	case SlotBonusAction:
		e.bonusUsed = true
		if e.actionUsed {
			e.phase = PhaseMonsterTurn
		}
	}
	return nil
}

// ReopenAction clears the action slot within the current round. This is the only
// transition that un-spends a slot.
//
// Postcondition: ActionUsed() == false and the phase stays PlayerTurn.
func (e *Economy) ReopenAction() error {
	if e.phase != PhasePlayerTurn {
		return e.Check(SlotFree)
	}
	e.actionUsed = false
	return nil
}

// EndTurn forces the transition from PlayerTurn to MonsterTurn.
func (e *Economy) EndTurn() error {
	if err := e.Check(SlotFree); err != nil {
		return err
	}
	e.phase = PhaseMonsterTurn
	return nil
}

// BeginPlayerTurn resets both slots after the monster has acted.
//
// Precondition: the phase is MonsterTurn.
// Postcondition: PlayerTurn(false, false).
func (e *Economy) BeginPlayerTurn() error {
	switch e.phase {
	case PhaseEnded:
		return combaterr.New(combaterr.KindSessionTerminated, "encounter ended with %s", e.outcome)
	case PhasePlayerTurn:
		return combaterr.New(combaterr.KindInvalidIntent, "player turn already in progress")
	}
	e.phase = PhasePlayerTurn
	e.actionUsed = false
	e.bonusUsed = false
	return nil
}

// End moves to Ended(outcome) from any phase.
//
// Precondition: outcome.Terminal().
func (e *Economy) End(outcome Outcome) {
	e.phase = PhaseEnded
	e.outcome = outcome
}
