package encounter

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
)

// Snapshot is the full state of a session, suitable for JSON encoding.
type Snapshot struct {
	ID             string                   `json:"id"`
	Round          int                      `json:"round"`
	Character      character.CombatantStats `json:"character"`
	Monster        monster.Stats            `json:"monster"`
	Economy        combat.EconomyView       `json:"economy"`
	AbilityUses    map[string]int           `json:"ability_uses"`
	Cooldowns      map[string]int           `json:"cooldowns"`
	PlayerEffects  []ability.Active         `json:"player_effects"`
	MonsterEffects []ability.Active         `json:"monster_effects"`
	Riders         []ability.Rider          `json:"riders"`
}

// Snapshot captures the session state. It waits for an in-flight submission.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	char := s.char.Clone()
	char.CurrentHealth = s.hp.Current
	char.CurrentMana = s.mana.Current
	char.ConsumedSlots = s.slots.Consumed()
	mon := s.mon
	mon.Health = s.monHP.Current

	return Snapshot{
		ID:             s.id,
		Round:          s.round,
		Character:      char,
		Monster:        mon,
		Economy:        s.economy.View(),
		AbilityUses:    s.loadout.Uses(),
		Cooldowns:      s.policy.Cooldowns(),
		PlayerEffects:  s.charFx.List(),
		MonsterEffects: s.monFx.List(),
		Riders:         slices.Clone(s.riders),
	}
}

// Restore rebuilds a session from a snapshot. Ability kits and monster rosters are
// resolved again from tables; counters are taken from the snapshot. An ID set through
// WithID overrides the snapshot's.
//
// Postcondition: Returns a session whose Snapshot equals snap, or an InvalidSnapshot error.
func Restore(snap Snapshot, tables Tables, opts ...Option) (*Session, error) {
	if snap.ID != "" {
		opts = append([]Option{WithID(snap.ID)}, opts...)
	}
	st := newSettings(opts)

	char := snap.Character.Clone()
	mon := snap.Monster.WithDefaults()
	if err := validateSnapshots(&char, &mon); err != nil {
		return nil, err
	}
	if snap.Round < 1 {
		return nil, combaterr.New(combaterr.KindInvalidSnapshot, "round must be >= 1, got %d", snap.Round)
	}
	switch snap.Economy.Phase {
	case combat.PhasePlayerTurn, combat.PhaseEnded:
	default:
		return nil, combaterr.New(combaterr.KindInvalidSnapshot, "cannot restore a session in phase %q", snap.Economy.Phase)
	}

	s := build(st, tables, char, mon)
	s.round = snap.Round
	s.economy = combat.RestoreEconomy(snap.Economy)
	s.loadout = ability.RestoreLoadout(tables.kit(char.Class, char.Level), snap.AbilityUses)
	s.policy = monster.RestorePolicy(tables.roster(mon), snap.Cooldowns, st.scripts)
	s.charFx = ability.RestoreEffects(snap.PlayerEffects)
	s.monFx = ability.RestoreEffects(snap.MonsterEffects)
	s.riders = slices.Clone(snap.Riders)

	s.logger.Info("encounter restored", zap.Int("round", s.round))
	return s, nil
}
