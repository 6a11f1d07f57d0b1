package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
)

// ErrOutcomeExists is returned when an encounter's outcome was already recorded.
var ErrOutcomeExists = errors.New("outcome already recorded")

// ErrOutcomeNotFound is returned when no outcome exists for an encounter.
var ErrOutcomeNotFound = errors.New("outcome not found")

// OutcomeRecord is one finished encounter in the outcome ledger.
type OutcomeRecord struct {
	ID             int64
	EncounterID    string
	CharacterName  string
	CharacterClass string
	CharacterLevel int
	MonsterName    string
	MonsterType    string
	MonsterTier    string
	MonsterLevel   int
	Outcome        combat.Outcome
	Rounds         int
	PlayerHealth   int
	Experience     int
	Gold           int
	LeveledUp      bool
	NewLevel       int
	RecordedAt     time.Time
}

// NewOutcomeRecord builds the ledger row for a terminal resolution.
//
// Precondition: res.Outcome must be terminal; snap is the session state after res.
// Postcondition: Reward fields are zero unless res carries a reward.
func NewOutcomeRecord(snap encounter.Snapshot, res *encounter.Resolution) OutcomeRecord {
	rec := OutcomeRecord{
		EncounterID:    snap.ID,
		CharacterName:  snap.Character.Name,
		CharacterClass: string(snap.Character.Class),
		CharacterLevel: snap.Character.Level,
		MonsterName:    snap.Monster.Name,
		MonsterType:    snap.Monster.Type,
		MonsterTier:    string(snap.Monster.Tier),
		MonsterLevel:   snap.Monster.Level,
		Outcome:        res.Outcome,
		Rounds:         res.Round,
		PlayerHealth:   res.PlayerHealth.Current,
	}
	if r := res.Reward; r != nil {
		rec.Experience = r.Experience
		rec.Gold = r.Gold
		rec.LeveledUp = r.LeveledUp
		rec.NewLevel = r.NewLevel
	}
	return rec
}

// OutcomeSummary aggregates recorded outcomes against one monster.
type OutcomeSummary struct {
	MonsterName string
	Encounters  int
	Victories   int
	Defeats     int
	Fled        int
	AvgRounds   float64
}

// WinRate returns the fraction of encounters the player won, or 0 with no encounters.
func (s OutcomeSummary) WinRate() float64 {
	if s.Encounters == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.Encounters)
}

// OutcomeRepository persists terminal encounter outcomes.
type OutcomeRepository struct {
	db *pgxpool.Pool
}

// NewOutcomeRepository creates an OutcomeRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewOutcomeRepository(db *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

const outcomeColumns = `id, encounter_id, character_name, character_class, character_level,
	monster_name, monster_type, monster_tier, monster_level, outcome, rounds,
	player_health, experience, gold, leveled_up, new_level, recorded_at`

// Record inserts rec.
//
// Precondition: rec.EncounterID must be non-empty; rec.Outcome must be terminal.
// Postcondition: Returns the stored record with ID and RecordedAt set, or
// ErrOutcomeExists if the encounter was already recorded.
func (r *OutcomeRepository) Record(ctx context.Context, rec OutcomeRecord) (OutcomeRecord, error) {
	if !rec.Outcome.Terminal() {
		return OutcomeRecord{}, fmt.Errorf("recording outcome %q: not terminal", rec.Outcome)
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO encounter_outcomes (encounter_id, character_name, character_class,
			character_level, monster_name, monster_type, monster_tier, monster_level,
			outcome, rounds, player_health, experience, gold, leveled_up, new_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+outcomeColumns,
		rec.EncounterID, rec.CharacterName, rec.CharacterClass, rec.CharacterLevel,
		rec.MonsterName, rec.MonsterType, rec.MonsterTier, rec.MonsterLevel,
		string(rec.Outcome), rec.Rounds, rec.PlayerHealth, rec.Experience, rec.Gold,
		rec.LeveledUp, rec.NewLevel,
	)
	out, err := scanOutcome(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return OutcomeRecord{}, ErrOutcomeExists
		}
		return OutcomeRecord{}, fmt.Errorf("inserting outcome: %w", err)
	}
	return out, nil
}

// Get returns the outcome recorded for encounterID.
//
// Postcondition: Returns the record or ErrOutcomeNotFound.
func (r *OutcomeRepository) Get(ctx context.Context, encounterID string) (OutcomeRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+outcomeColumns+` FROM encounter_outcomes WHERE encounter_id = $1`,
		encounterID,
	)
	out, err := scanOutcome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OutcomeRecord{}, ErrOutcomeNotFound
		}
		return OutcomeRecord{}, fmt.Errorf("querying outcome: %w", err)
	}
	return out, nil
}

// ListByCharacter returns up to limit outcomes for name, newest first.
//
// Precondition: limit > 0.
func (r *OutcomeRepository) ListByCharacter(ctx context.Context, name string, limit int) ([]OutcomeRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+outcomeColumns+` FROM encounter_outcomes
		 WHERE character_name = $1
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT $2`,
		name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes: %w", err)
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		rec, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return out, nil
}

// Summarize aggregates every recorded outcome against monsterName.
//
// Postcondition: An unknown monster yields a zero summary, not an error.
func (r *OutcomeRepository) Summarize(ctx context.Context, monsterName string) (OutcomeSummary, error) {
	sum := OutcomeSummary{MonsterName: monsterName}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE outcome = 'victory'),
			COUNT(*) FILTER (WHERE outcome = 'defeat'),
			COUNT(*) FILTER (WHERE outcome = 'fled'),
			COALESCE(AVG(rounds), 0)::float8
		 FROM encounter_outcomes WHERE monster_name = $1`,
		monsterName,
	).Scan(&sum.Encounters, &sum.Victories, &sum.Defeats, &sum.Fled, &sum.AvgRounds)
	if err != nil {
		return OutcomeSummary{}, fmt.Errorf("summarizing outcomes: %w", err)
	}
	return sum, nil
}

func scanOutcome(row pgx.Row) (OutcomeRecord, error) {
	var rec OutcomeRecord
	var outcome string
	err := row.Scan(
		&rec.ID, &rec.EncounterID, &rec.CharacterName, &rec.CharacterClass, &rec.CharacterLevel,
		&rec.MonsterName, &rec.MonsterType, &rec.MonsterTier, &rec.MonsterLevel, &outcome, &rec.Rounds,
		&rec.PlayerHealth, &rec.Experience, &rec.Gold, &rec.LeveledUp, &rec.NewLevel, &rec.RecordedAt,
	)
	rec.Outcome = combat.Outcome(outcome)
	return rec, err
}
