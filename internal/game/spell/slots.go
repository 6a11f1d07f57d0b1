package spell

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// Unlimited is returned by MaxSlots for cantrips.
const Unlimited = math.MaxInt32

// SlotTable maps character level and spell level to the number of slots per session.
//
// Rows[charLevel-1][spellLevel-1] is the slot count; missing entries mean zero.
type SlotTable struct {
	Rows [][]int `yaml:"rows"`
}

// DefaultSlotTable returns the full-caster slot progression.
func DefaultSlotTable() SlotTable {
	return SlotTable{Rows: [][]int{
		{2},
		{3},
		{4, 2},
		{4, 3},
		{4, 3, 2},
		{4, 3, 3},
		{4, 3, 3, 1},
		{4, 3, 3, 2},
		{4, 3, 3, 3, 1},
		{4, 3, 3, 3, 2},
		{4, 3, 3, 3, 2, 1},
		{4, 3, 3, 3, 2, 1},
		{4, 3, 3, 3, 2, 1, 1},
		{4, 3, 3, 3, 2, 1, 1},
		{4, 3, 3, 3, 2, 1, 1, 1},
		{4, 3, 3, 3, 2, 1, 1, 1},
		{4, 3, 3, 3, 2, 1, 1, 1, 1},
		{4, 3, 3, 3, 3, 1, 1, 1, 1},
		{4, 3, 3, 3, 3, 2, 1, 1, 1},
		{4, 3, 3, 3, 3, 2, 2, 1, 1},
	}}
}

// MaxSlots returns the slot count for spellLevel at characterLevel. Cantrips are
// Unlimited. Character levels beyond the table use the last row.
//
// Postcondition: returns >= 0.
func (t SlotTable) MaxSlots(characterLevel, spellLevel int) int {
	if spellLevel == 0 {
		return Unlimited
	}
	if characterLevel < 1 || spellLevel < 0 || len(t.Rows) == 0 {
		return 0
	}
	row := t.Rows[min(characterLevel, len(t.Rows))-1]
	if spellLevel > len(row) {
		return 0
	}
	return row[spellLevel-1]
}

// Validate checks that the table has at least one row and no negative counts.
func (t SlotTable) Validate() error {
	if len(t.Rows) == 0 {
		return errors.New("spell: slot table has no rows")
	}
	for i, row := range t.Rows {
		if len(row) > MaxLevel {
			return fmt.Errorf("spell: slot table row %d has %d levels, max %d", i+1, len(row), MaxLevel)
		}
		for j, n := range row {
			if n < 0 {
				return fmt.Errorf("spell: slot table row %d level %d is negative", i+1, j+1)
			}
		}
	}
	return nil
}

// SlotTracker counts the slots consumed during one session.
//
// Invariant: counters only increase, and Consumed(level) <= MaxSlots(level) for every
// slot consumed through Consume.
type SlotTracker struct {
	table    SlotTable
	level    int
	consumed map[int]int
}

// NewSlotTracker returns a tracker seeded with already-consumed counts. The map is copied.
func NewSlotTracker(table SlotTable, characterLevel int, consumed map[int]int) *SlotTracker {
	c := make(map[int]int, len(consumed))
	maps.Copy(c, consumed)
	return &SlotTracker{table: table, level: characterLevel, consumed: c}
}

// Max returns the slot cap for spellLevel.
func (t *SlotTracker) Max(spellLevel int) int {
	return t.table.MaxSlots(t.level, spellLevel)
}

// Remaining returns the slots left at spellLevel, or Unlimited for cantrips.
func (t *SlotTracker) Remaining(spellLevel int) int {
	if spellLevel == 0 {
		return Unlimited
	}
	return max(0, t.Max(spellLevel)-t.consumed[spellLevel])
}

// Check returns a NoSpellSlots error when no slot is available at spellLevel.
func (t *SlotTracker) Check(spellLevel int) error {
	if spellLevel == 0 {
		return nil
	}
	if t.consumed[spellLevel] >= t.Max(spellLevel) {
		return combaterr.New(combaterr.KindNoSpellSlots,
			"no level-%d slots left (%d of %d used)", spellLevel, t.consumed[spellLevel], t.Max(spellLevel))
	}
	return nil
}

// Consume spends one slot at spellLevel. Cantrips consume nothing.
//
// Postcondition: on error the counters are unchanged.
func (t *SlotTracker) Consume(spellLevel int) error {
	if err := t.Check(spellLevel); err != nil {
		return err
	}
	if spellLevel > 0 {
		t.consumed[spellLevel]++
	}
	return nil
}

// Consumed returns a copy of the consumed counters keyed by spell level.
func (t *SlotTracker) Consumed() map[int]int {
	out := make(map[int]int, len(t.consumed))
	maps.Copy(out, t.consumed)
	return out
}
