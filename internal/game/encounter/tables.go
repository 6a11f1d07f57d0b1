package encounter

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

// RosterSource resolves a monster's ability roster by name, then type.
type RosterSource interface {
	Roster(name, monsterType string) []*ability.Ability
}

// Tables is the read-only game data injected at session creation.
type Tables struct {
	Spells      *spell.Catalog
	Slots       spell.SlotTable
	Balance     combat.Balance
	Progression combat.Progression
	Rosters     RosterSource
	// Kits builds class abilities; nil means ability.Kit.
	Kits func(character.Class, int) []*ability.Ability
}

// DefaultTables returns tables with the shipped balance, progression and slot table
// and no spells or monster rosters.
func DefaultTables() Tables {
	return Tables{
		Slots:       spell.DefaultSlotTable(),
		Balance:     combat.DefaultBalance(),
		Progression: combat.DefaultProgression(),
	}
}

func (t Tables) kit(c character.Class, level int) []*ability.Ability {
	if t.Kits != nil {
		return t.Kits(c, level)
	}
	return ability.Kit(c, level)
}

func (t Tables) roster(m monster.Stats) []*ability.Ability {
	if t.Rosters == nil {
		return nil
	}
	return t.Rosters.Roster(m.Name, m.Type)
}

type settings struct {
	id      string
	src     dice.Source
	logger  *zap.Logger
	scripts monster.ScriptCaller
	clock   func() time.Time
}

// Option configures a session.
type Option func(*settings)

// WithSource injects the randomness source. Tests pass a dice.Fixed source;
// simulations pass a seeded one.
func WithSource(src dice.Source) Option {
	return func(s *settings) { s.src = src }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithScripts sets the caller used for monster ability conditions.
func WithScripts(c monster.ScriptCaller) Option {
	return func(s *settings) { s.scripts = c }
}

// WithID sets the session ID.
func WithID(id string) Option {
	return func(s *settings) { s.id = id }
}

// WithClock sets the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.clock = now }
}

func newSettings(opts []Option) settings {
	s := settings{}
	for _, o := range opts {
		o(&s)
	}
	if s.src == nil {
		s.src = dice.NewCryptoSource()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}
