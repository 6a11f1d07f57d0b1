// Package simulate plays batches of automated encounters to measure balance.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
	"github.com/cory-johannsen/geoquest/internal/game/gamedata"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

// DefaultMaxSubmissions caps one simulated encounter.
const DefaultMaxSubmissions = 5000

// HealThreshold is the health fraction below which the player reaches for healing.
const HealThreshold = 0.4

// BaseScores are the ability scores every simulated character starts from.
var BaseScores = character.AbilityScores{
	Strength: 14, Dexterity: 14, Constitution: 14,
	Intelligence: 12, Wisdom: 12, Charisma: 10,
}

// Config describes one batch.
type Config struct {
	Class   character.Class
	Level   int
	Monster string
	// Tier overrides the template's tier when set.
	Tier       combat.Tier
	Encounters int
	// Seed makes the batch reproducible; encounter i uses Seed+i.
	Seed           uint64
	Workers        int
	MaxSubmissions int
}

// Report aggregates a batch.
type Report struct {
	Config     Config
	Encounters int
	Victories  int
	Defeats    int
	Fled       int
	// Stalled counts encounters that hit MaxSubmissions without a terminal outcome.
	Stalled    int
	AvgRounds  float64
	AvgHealth  float64
	Experience int
	Gold       int
}

// WinRate returns the fraction of encounters won.
func (r Report) WinRate() float64 {
	if r.Encounters == 0 {
		return 0
	}
	return float64(r.Victories) / float64(r.Encounters)
}

type result struct {
	outcome combat.Outcome
	rounds  int
	health  float64
	reward  combat.Reward
}

// Run plays cfg.Encounters encounters of cfg.Class against cfg.Monster.
//
// Precondition: data must be loaded; scripts may be nil.
// Postcondition: Results depend only on cfg and data.
func Run(ctx context.Context, data *gamedata.Data, scripts monster.ScriptCaller, cfg Config, logger *zap.Logger) (Report, error) {
	if cfg.Encounters < 1 {
		return Report{}, fmt.Errorf("simulate: encounters must be >= 1, got %d", cfg.Encounters)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxSubmissions < 1 {
		cfg.MaxSubmissions = DefaultMaxSubmissions
	}
	char, err := character.Build("Simulant", cfg.Class, cfg.Level, BaseScores)
	if err != nil {
		return Report{}, fmt.Errorf("simulate: %w", err)
	}
	char.KnownSpells = knownSpells(data.Spells, cfg.Class, cfg.Level)
	mon, err := data.Spawn(cfg.Monster, cfg.Level, cfg.Tier)
	if err != nil {
		return Report{}, fmt.Errorf("simulate: %w", err)
	}
	plan := newPlan(data.Spells, *char)

	results := make([]result, cfg.Encounters)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Encounters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts := []encounter.Option{
				encounter.WithSource(dice.NewSeededSource(cfg.Seed + uint64(i))),
				encounter.WithLogger(logger),
			}
			if scripts != nil {
				opts = append(opts, encounter.WithScripts(scripts))
			}
			s, err := encounter.New(char.Clone(), mon, data.Tables(), opts...)
			if err != nil {
				return err
			}
			res, err := play(s, plan, cfg.MaxSubmissions)
			if err != nil {
				return fmt.Errorf("encounter %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("simulate: %w", err)
	}

	rep := Report{Config: cfg, Encounters: cfg.Encounters}
	var rounds, health float64
	for _, r := range results {
		switch r.outcome {
		case combat.OutcomeVictory:
			rep.Victories++
		case combat.OutcomeDefeat:
			rep.Defeats++
		case combat.OutcomeFled:
			rep.Fled++
		default:
			rep.Stalled++
		}
		rounds += float64(r.rounds)
		health += r.health
		rep.Experience += r.reward.Experience
		rep.Gold += r.reward.Gold
	}
	rep.AvgRounds = rounds / float64(len(results))
	rep.AvgHealth = health / float64(len(results))
	logger.Info("simulation finished",
		zap.String("class", string(cfg.Class)),
		zap.String("monster", cfg.Monster),
		zap.Int("encounters", rep.Encounters),
		zap.Float64("win_rate", rep.WinRate()),
	)
	return rep, nil
}

// knownSpells returns every spell of class castable at level.
func knownSpells(cat *spell.Catalog, class character.Class, level int) []string {
	var out []string
	for _, s := range cat.All() {
		if s.HasClass(class) && s.Level <= spell.MaxCastableLevel(level) {
			out = append(out, s.ID)
		}
	}
	return out
}

// plan is the fixed priority list of intents the simulated player tries.
type plan struct {
	heals   []encounter.Intent
	attacks []encounter.Intent
}

func newPlan(cat *spell.Catalog, char character.CombatantStats) plan {
	var p plan
	for _, a := range ability.Kit(char.Class, char.Level) {
		if a.Category == ability.CategoryHeal {
			p.heals = append(p.heals, encounter.UseAbility(a.ID))
		}
	}

	spells := cat.EligibleSpells(char.Class, char.Level, char.KnownSpells)
	sort.SliceStable(spells, func(i, j int) bool { return spells[i].Level > spells[j].Level })
	for _, s := range spells {
		switch {
		case s.Damage != nil:
			p.attacks = append(p.attacks, encounter.CastSpell(s.ID))
		case s.Healing != nil:
			p.heals = append(p.heals, encounter.CastSpell(s.ID))
		}
	}
	p.attacks = append(p.attacks, encounter.Attack())
	return p
}

func (p plan) candidates(healthFraction float64) []encounter.Intent {
	var out []encounter.Intent
	if healthFraction < HealThreshold {
		out = append(out, p.heals...)
	}
	out = append(out, p.attacks...)
	return append(out, encounter.EndTurn())
}

// play submits the first accepted candidate until the session ends.
func play(s *encounter.Session, p plan, maxSubmissions int) (result, error) {
	health := 1.0
	rounds := 1
	for range maxSubmissions {
		var res *encounter.Resolution
		for _, in := range p.candidates(health) {
			r, err := s.Submit(in)
			if err == nil {
				res = r
				break
			}
			if !rejected(err) {
				return result{}, err
			}
		}
		if res == nil {
			return result{}, errors.New("every candidate intent was rejected")
		}
		health = res.PlayerHealth.Fraction()
		rounds = res.Round
		if res.Outcome.Terminal() {
			out := result{outcome: res.Outcome, rounds: rounds, health: health}
			if res.Reward != nil {
				out.reward = *res.Reward
			}
			return out, nil
		}
	}
	return result{outcome: combat.OutcomeNone, rounds: rounds, health: health}, nil
}

// rejected reports whether err is a rules rejection that leaves the session unchanged.
func rejected(err error) bool {
	return !slices.Contains([]combaterr.Kind{
		combaterr.KindNone, combaterr.KindSessionBusy, combaterr.KindSessionTerminated,
	}, combaterr.KindOf(err))
}
