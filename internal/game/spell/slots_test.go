package spell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

func TestMaxSlots(t *testing.T) {
	table := spell.DefaultSlotTable()
	assert.Equal(t, 2, table.MaxSlots(1, 1))
	assert.Equal(t, 0, table.MaxSlots(1, 2))
	assert.Equal(t, 2, table.MaxSlots(3, 2))
	assert.Equal(t, 1, table.MaxSlots(20, 9))
	assert.Equal(t, spell.Unlimited, table.MaxSlots(1, 0))
	assert.Equal(t, 1, table.MaxSlots(30, 9), "levels past the table use the last row")
	assert.Equal(t, 0, table.MaxSlots(0, 1))
	require.NoError(t, table.Validate())
}

func TestSlotTracker_ConsumeUntilEmpty(t *testing.T) {
	tr := spell.NewSlotTracker(spell.DefaultSlotTable(), 1, nil)
	require.NoError(t, tr.Consume(1))
	require.NoError(t, tr.Consume(1))
	err := tr.Consume(1)
	assert.True(t, errors.Is(err, combaterr.ErrNoSpellSlots))
	assert.Equal(t, map[int]int{1: 2}, tr.Consumed())
	assert.Equal(t, 0, tr.Remaining(1))
}

func TestSlotTracker_CantripsAreFree(t *testing.T) {
	tr := spell.NewSlotTracker(spell.DefaultSlotTable(), 1, nil)
	for i := 0; i < 50; i++ {
		require.NoError(t, tr.Consume(0))
	}
	assert.Empty(t, tr.Consumed())
	assert.Equal(t, spell.Unlimited, tr.Remaining(0))
}

func TestSlotTracker_SeedIsCopied(t *testing.T) {
	seed := map[int]int{1: 1}
	tr := spell.NewSlotTracker(spell.DefaultSlotTable(), 1, seed)
	require.NoError(t, tr.Consume(1))
	assert.Equal(t, 1, seed[1])
	assert.Equal(t, 2, tr.Consumed()[1])
}

// TestSlotTracker_Property_NoSlotLeavesCountersUnchanged checks that a spell level
// with no slots always rejects and never mutates the counters.
func TestSlotTracker_Property_NoSlotLeavesCountersUnchanged(t *testing.T) {
	table := spell.DefaultSlotTable()
	rapid.Check(t, func(rt *rapid.T) {
		lvl := rapid.IntRange(1, 20).Draw(rt, "char_level")
		spellLvl := rapid.IntRange(1, 9).Draw(rt, "spell_level")
		tr := spell.NewSlotTracker(table, lvl, nil)
		for tr.Remaining(spellLvl) > 0 {
			require.NoError(rt, tr.Consume(spellLvl))
		}
		before := tr.Consumed()
		err := tr.Consume(spellLvl)
		assert.True(rt, errors.Is(err, combaterr.ErrNoSpellSlots))
		assert.Equal(rt, before, tr.Consumed())
		assert.Equal(rt, table.MaxSlots(lvl, spellLvl), before[spellLvl])
	})
}

func TestSlotTable_Validate(t *testing.T) {
	assert.Error(t, spell.SlotTable{}.Validate())
	assert.Error(t, spell.SlotTable{Rows: [][]int{{-1}}}.Validate())
	assert.Error(t, spell.SlotTable{Rows: [][]int{{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}}.Validate())
}
