package encounter

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

// Session is one live encounter between a character and a monster.
//
// A Session accepts one intent at a time; a submission that arrives while another is
// in flight is rejected with SessionBusy instead of waiting. All state is private to
// the session.
type Session struct {
	mu sync.Mutex

	id     string
	tables Tables
	src    dice.Source
	roller *dice.Roller
	logger *zap.Logger
	clock  func() time.Time
	// lastActive is unix nanoseconds of the last accepted submission.
	lastActive atomic.Int64

	char    character.CombatantStats
	mon     monster.Stats
	hp      combat.Vitals
	mana    combat.Vitals
	monHP   combat.Vitals
	economy *combat.Economy
	slots   *spell.SlotTracker
	loadout *ability.Loadout
	policy  *monster.Policy
	charFx  *ability.Effects
	monFx   *ability.Effects
	riders  []ability.Rider
	round   int
}

// New starts an encounter from snapshots captured by value.
//
// Precondition: char and mon describe living combatants.
// Postcondition: Returns a session in PlayerTurn(false, false) at round 1, or an
// InvalidSnapshot error.
func New(char character.CombatantStats, mon monster.Stats, tables Tables, opts ...Option) (*Session, error) {
	st := newSettings(opts)
	char = char.Clone()
	if char.WeaponDice == "" {
		char.WeaponDice = character.DefaultWeaponDice
	}
	mon = mon.WithDefaults()
	if err := validateSnapshots(&char, &mon); err != nil {
		return nil, err
	}
	if char.CurrentHealth == 0 || mon.Health == 0 {
		return nil, combaterr.New(combaterr.KindInvalidSnapshot, "both combatants must be alive to start")
	}

	s := build(st, tables, char, mon)
	s.economy = combat.NewEconomy()
	s.loadout = ability.NewLoadout(tables.kit(char.Class, char.Level))
	s.policy = monster.NewPolicy(tables.roster(mon), st.scripts)
	s.charFx = &ability.Effects{}
	s.monFx = &ability.Effects{}
	s.round = 1

	s.logger.Info("encounter started",
		zap.String("character", char.Name),
		zap.String("class", string(char.Class)),
		zap.Int("character_level", char.Level),
		zap.String("monster", mon.Name),
		zap.String("tier", string(mon.Tier)),
		zap.Int("monster_level", mon.Level),
	)
	return s, nil
}

func validateSnapshots(char *character.CombatantStats, mon *monster.Stats) error {
	if err := char.Validate(); err != nil {
		return combaterr.Wrap(combaterr.KindInvalidSnapshot, err, "character snapshot rejected")
	}
	if err := mon.Validate(); err != nil {
		return combaterr.Wrap(combaterr.KindInvalidSnapshot, err, "monster snapshot rejected")
	}
	return nil
}

func build(st settings, tables Tables, char character.CombatantStats, mon monster.Stats) *Session {
	s := &Session{
		id:     st.id,
		tables: tables,
		src:    st.src,
		roller: dice.NewLoggedRoller(st.src, st.logger),
		clock:  st.clock,
		char:   char,
		mon:    mon,
		hp:     combat.NewVitals(char.CurrentHealth, char.MaxHealth),
		mana:   combat.NewVitals(char.CurrentMana, char.MaxMana),
		monHP:  combat.NewVitals(mon.Health, mon.MaxHealth),
		slots:  spell.NewSlotTracker(tables.Slots, char.Level, char.ConsumedSlots),
	}
	s.logger = st.logger.With(zap.String("session_id", st.id))
	s.touch()
	return s
}

// ID returns the session identifier, empty when none was assigned.
func (s *Session) ID() string { return s.id }

// LastActive returns the time of the last accepted submission, or creation.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(s.clock().UnixNano())
}

// Outcome returns the current outcome.
func (s *Session) Outcome() combat.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.Outcome()
}

// Submit processes exactly one intent to completion.
//
// When the intent hands the round to the monster, the monster's turn runs inside the
// same call and its result is folded into the returned Resolution.
//
// Postcondition: on error the session state is unchanged and the error carries one
// combaterr kind; SessionBusy when another submission is in flight and
// SessionTerminated after a terminal outcome.
func (s *Session) Submit(in Intent) (*Resolution, error) {
	if !s.mu.TryLock() {
		return nil, combaterr.New(combaterr.KindSessionBusy, "another intent is in flight")
	}
	defer s.mu.Unlock()

	if s.economy.Phase() == combat.PhaseEnded {
		return nil, combaterr.New(combaterr.KindSessionTerminated, "encounter ended with %s", s.economy.Outcome())
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &Resolution{Round: s.round}
	var err error
	switch in.Kind {
	case IntentAttack:
		err = s.playerAttack(res)
	case IntentCastSpell:
		err = s.castSpell(in.ID, res)
	case IntentUseAbility:
		err = s.useAbility(in.ID, res)
	case IntentFlee:
		err = s.flee(res)
	case IntentEndTurn:
		err = s.endTurn(res)
	}
	if err != nil {
		s.logger.Debug("intent rejected",
			zap.Stringer("intent", in),
			zap.String("kind", string(combaterr.KindOf(err))),
		)
		return nil, err
	}
	s.touch()
	res.Log = append([]string{res.Player.Message}, res.Log...)

	s.settle(res)
	s.fill(res)

	s.logger.Debug("intent resolved",
		zap.Stringer("intent", in),
		zap.Int("round", res.Round),
		zap.Stringer("player_health", res.PlayerHealth),
		zap.Stringer("monster_health", res.MonsterHealth),
		zap.String("outcome", res.Outcome.String()),
	)
	if res.Outcome.Terminal() {
		s.logger.Info("encounter ended",
			zap.String("outcome", res.Outcome.String()),
			zap.Int("round", s.round),
		)
	}
	return res, nil
}

// settle detects terminal health, then runs the monster turn if the round passed to it.
func (s *Session) settle(res *Resolution) {
	if s.checkTerminal(res) {
		return
	}
	if s.economy.Phase() != combat.PhaseMonsterTurn {
		return
	}
	mr := s.monsterTurn()
	res.Monster = &mr
	res.Log = append(res.Log, mr.Message)
	if s.checkTerminal(res) {
		return
	}
	s.beginRound(res)
}

// checkTerminal ends the encounter when either side is down or the player fled.
func (s *Session) checkTerminal(res *Resolution) bool {
	switch {
	case s.economy.Phase() == combat.PhaseEnded:
		return true
	case s.monHP.Depleted():
		s.economy.End(combat.OutcomeVictory)
		reward := s.tables.Balance.Award(s.tables.Progression,
			s.mon.Experience, s.mon.Gold, s.mon.Level, s.mon.Tier, s.char.Level, s.char.Experience)
		res.Reward = &reward
		res.Log = append(res.Log, fmt.Sprintf("%s is defeated. %d XP, %d gold.", s.mon.Name, reward.Experience, reward.Gold))
		if reward.LeveledUp {
			res.Log = append(res.Log, fmt.Sprintf("%s reaches level %d!", s.char.Name, reward.NewLevel))
		}
		return true
	case s.hp.Depleted():
		s.economy.End(combat.OutcomeDefeat)
		res.Log = append(res.Log, fmt.Sprintf("%s falls.", s.char.Name))
		return true
	}
	return false
}

// beginRound resets the economy and drains timed effects and unspent riders.
func (s *Session) beginRound(res *Resolution) {
	if err := s.economy.BeginPlayerTurn(); err != nil {
		s.logger.Error("begin player turn", zap.Error(err))
		return
	}
	s.round++
	s.riders = nil
	for _, src := range s.charFx.Tick() {
		res.Log = append(res.Log, fmt.Sprintf("%s wears off.", src))
	}
	for _, src := range s.monFx.Tick() {
		res.Log = append(res.Log, fmt.Sprintf("%s's %s wears off.", s.mon.Name, src))
	}
}

func (s *Session) fill(res *Resolution) {
	s.char.CurrentHealth = s.hp.Current
	s.char.CurrentMana = s.mana.Current
	s.char.ConsumedSlots = s.slots.Consumed()
	s.mon.Health = s.monHP.Current

	res.PlayerHealth = s.hp
	res.PlayerMana = s.mana
	res.MonsterHealth = s.monHP
	res.Economy = s.economy.View()
	res.Outcome = s.economy.Outcome()
}

// bonusAvailable reports whether the player still holds a usable bonus action.
func (s *Session) bonusAvailable() bool {
	return s.loadout.BonusAvailable()
}

// damageMonster routes damage through the monster's shields and resistance.
func (s *Session) damageMonster(dmg int) int {
	return s.monHP.ApplyDamage(mitigate(s.monFx, dmg))
}

// damageCharacter routes damage through the character's shields and resistance.
func (s *Session) damageCharacter(dmg int) int {
	return s.hp.ApplyDamage(mitigate(s.charFx, dmg))
}

func mitigate(fx *ability.Effects, dmg int) int {
	if fx.Resistant() {
		dmg = combat.ApplyResistance(dmg)
	}
	return fx.Absorb(dmg)
}

// attackRoll makes a d20 attack with the hit chance for dex against armor.
func (s *Session) attackRoll(dex, armor int) (combat.AttackRoll, bool) {
	roll := combat.ResolveAttackRoll(s.src)
	chance := s.tables.Balance.HitChance(dex, armor)
	return roll, combat.ResolveHit(roll, chance, s.src)
}
