package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/storage/postgres"
	"github.com/cory-johannsen/geoquest/internal/testutil"
)

func sampleRecord(name string, outcome combat.Outcome, rounds int) postgres.OutcomeRecord {
	return postgres.OutcomeRecord{
		EncounterID:    uuid.NewString(),
		CharacterName:  name,
		CharacterClass: "fighter",
		CharacterLevel: 3,
		MonsterName:    "goblin",
		MonsterType:    "humanoid",
		MonsterTier:    "common",
		MonsterLevel:   3,
		Outcome:        outcome,
		Rounds:         rounds,
		PlayerHealth:   11,
	}
}

func TestNewOutcomeRecord_Victory(t *testing.T) {
	snap := encounter.Snapshot{
		ID:        "enc-1",
		Character: character.CombatantStats{Name: "Aria", Class: character.Wizard, Level: 4},
		Monster:   monster.Stats{Name: "ghoul", Type: "undead", Tier: combat.TierElite, Level: 5},
	}
	res := &encounter.Resolution{
		Round:        6,
		Outcome:      combat.OutcomeVictory,
		PlayerHealth: combat.Vitals{Current: 9, Max: 22},
		Reward:       &combat.Reward{Experience: 240, Gold: 31, LeveledUp: true, NewLevel: 5},
	}

	rec := postgres.NewOutcomeRecord(snap, res)
	assert.Equal(t, "enc-1", rec.EncounterID)
	assert.Equal(t, "Aria", rec.CharacterName)
	assert.Equal(t, "wizard", rec.CharacterClass)
	assert.Equal(t, "undead", rec.MonsterType)
	assert.Equal(t, "elite", rec.MonsterTier)
	assert.Equal(t, 6, rec.Rounds)
	assert.Equal(t, 9, rec.PlayerHealth)
	assert.Equal(t, 240, rec.Experience)
	assert.Equal(t, 31, rec.Gold)
	assert.True(t, rec.LeveledUp)
	assert.Equal(t, 5, rec.NewLevel)
}

func TestNewOutcomeRecord_DefeatHasNoReward(t *testing.T) {
	rec := postgres.NewOutcomeRecord(encounter.Snapshot{ID: "enc-2"}, &encounter.Resolution{
		Round:   3,
		Outcome: combat.OutcomeDefeat,
	})
	assert.Equal(t, combat.OutcomeDefeat, rec.Outcome)
	assert.Zero(t, rec.Experience)
	assert.Zero(t, rec.Gold)
	assert.False(t, rec.LeveledUp)
}

func TestOutcomeRepository_RecordRejectsNonTerminal(t *testing.T) {
	repo := postgres.NewOutcomeRepository(nil)
	_, err := repo.Record(context.Background(), sampleRecord("Aria", combat.OutcomeNone, 1))
	assert.ErrorContains(t, err, "not terminal")
}

// Property: WinRate is in [0, 1] and zero with no encounters.
func TestPropertyWinRate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		wins := rapid.IntRange(0, 500).Draw(t, "wins")
		losses := rapid.IntRange(0, 500).Draw(t, "losses")
		s := postgres.OutcomeSummary{Encounters: wins + losses, Victories: wins, Defeats: losses}
		rate := s.WinRate()
		if rate < 0 || rate > 1 {
			t.Fatalf("WinRate = %v out of range", rate)
		}
		if wins+losses == 0 && rate != 0 {
			t.Fatalf("WinRate with no encounters = %v", rate)
		}
	})
}

type OutcomeRepositorySuite struct {
	suite.Suite
	pc   *testutil.PostgresContainer
	repo *postgres.OutcomeRepository
}

func TestOutcomeRepositorySuite(t *testing.T) {
	suite.Run(t, new(OutcomeRepositorySuite))
}

func (s *OutcomeRepositorySuite) SetupSuite() {
	s.pc = testutil.NewPostgresContainer(s.T())
	s.pc.ApplyMigrations(s.T())
	s.repo = postgres.NewOutcomeRepository(s.pc.RawPool)
}

func (s *OutcomeRepositorySuite) SetupTest() {
	_, err := s.pc.RawPool.Exec(context.Background(), `TRUNCATE encounter_outcomes`)
	s.Require().NoError(err)
}

func (s *OutcomeRepositorySuite) TestRecordAndGet() {
	ctx := context.Background()
	rec := sampleRecord("Aria", combat.OutcomeVictory, 4)
	rec.Experience, rec.Gold = 90, 12

	stored, err := s.repo.Record(ctx, rec)
	s.Require().NoError(err)
	s.Positive(stored.ID)
	s.False(stored.RecordedAt.IsZero())
	s.Equal(rec.EncounterID, stored.EncounterID)

	got, err := s.repo.Get(ctx, rec.EncounterID)
	s.Require().NoError(err)
	s.Equal(stored, got)
}

func (s *OutcomeRepositorySuite) TestRecordDuplicate() {
	ctx := context.Background()
	rec := sampleRecord("Aria", combat.OutcomeFled, 2)
	_, err := s.repo.Record(ctx, rec)
	s.Require().NoError(err)

	_, err = s.repo.Record(ctx, rec)
	s.ErrorIs(err, postgres.ErrOutcomeExists)
}

func (s *OutcomeRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), uuid.NewString())
	s.ErrorIs(err, postgres.ErrOutcomeNotFound)
}

func (s *OutcomeRepositorySuite) TestListByCharacter() {
	ctx := context.Background()
	var ids []string
	for i := range 3 {
		rec := sampleRecord("Bryn", combat.OutcomeVictory, i+1)
		_, err := s.repo.Record(ctx, rec)
		s.Require().NoError(err)
		ids = append(ids, rec.EncounterID)
	}
	_, err := s.repo.Record(ctx, sampleRecord("Other", combat.OutcomeDefeat, 1))
	s.Require().NoError(err)

	got, err := s.repo.ListByCharacter(ctx, "Bryn", 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(ids[2], got[0].EncounterID)
	s.Equal(ids[1], got[1].EncounterID)
}

func (s *OutcomeRepositorySuite) TestSummarize() {
	ctx := context.Background()
	for _, r := range []struct {
		outcome combat.Outcome
		rounds  int
	}{
		{combat.OutcomeVictory, 2},
		{combat.OutcomeVictory, 4},
		{combat.OutcomeDefeat, 6},
		{combat.OutcomeFled, 4},
	} {
		_, err := s.repo.Record(ctx, sampleRecord("Cai", r.outcome, r.rounds))
		s.Require().NoError(err)
	}

	sum, err := s.repo.Summarize(ctx, "goblin")
	s.Require().NoError(err)
	s.Equal(4, sum.Encounters)
	s.Equal(2, sum.Victories)
	s.Equal(1, sum.Defeats)
	s.Equal(1, sum.Fled)
	s.InDelta(4.0, sum.AvgRounds, 1e-9)
	s.InDelta(0.5, sum.WinRate(), 1e-9)

	empty, err := s.repo.Summarize(ctx, "tarrasque")
	s.Require().NoError(err)
	s.Zero(empty.Encounters)
}

func TestOutcomeRepository_CheckConstraint(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewOutcomeRepository(pc.RawPool)

	rec := sampleRecord("Dov", combat.OutcomeVictory, 0)
	_, err := repo.Record(context.Background(), rec)
	require.Error(t, err)
	assert.NotErrorIs(t, err, postgres.ErrOutcomeExists)
}
