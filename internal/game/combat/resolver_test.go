package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

func TestResolveAttackRoll_Flags(t *testing.T) {
	src := dice.NewFixed([]int{20, 1, 11}, nil)
	crit := combat.ResolveAttackRoll(src)
	assert.True(t, crit.IsCritical)
	assert.False(t, crit.IsCriticalMiss)
	miss := combat.ResolveAttackRoll(src)
	assert.True(t, miss.IsCriticalMiss)
	plain := combat.ResolveAttackRoll(src)
	assert.Equal(t, 11, plain.Natural)
	assert.False(t, plain.IsCritical || plain.IsCriticalMiss)
}

// TestResolveAttackRoll_CriticalFrequency checks natural 20 and natural 1 each occur
// with frequency near 1/20.
func TestResolveAttackRoll_CriticalFrequency(t *testing.T) {
	src := dice.NewSeededSource(2024)
	const trials = 40000
	var crits, misses int
	for i := 0; i < trials; i++ {
		r := combat.ResolveAttackRoll(src)
		require.GreaterOrEqual(t, r.Natural, 1)
		require.LessOrEqual(t, r.Natural, 20)
		if r.IsCritical {
			crits++
		}
		if r.IsCriticalMiss {
			misses++
		}
	}
	assert.InDelta(t, 0.05, float64(crits)/trials, 0.01)
	assert.InDelta(t, 0.05, float64(misses)/trials, 0.01)
}

func TestHitChance_Values(t *testing.T) {
	b := combat.DefaultBalance()
	assert.InDelta(t, 0.72, b.HitChance(14, 10), 1e-9)
	assert.InDelta(t, 0.6, b.HitChance(12, 12), 1e-9)
	assert.Equal(t, 0.05, b.HitChance(1, 30))
	assert.Equal(t, 0.95, b.HitChance(30, 1))
}

// TestHitChance_Monotonic checks higher dexterity never lowers hit chance and strictly
// raises it inside the clamp band.
func TestHitChance_Monotonic(t *testing.T) {
	b := combat.DefaultBalance()
	rapid.Check(t, func(rt *rapid.T) {
		dex := rapid.IntRange(1, 29).Draw(rt, "dex")
		ac := rapid.IntRange(1, 30).Draw(rt, "ac")
		lo, hi := b.HitChance(dex, ac), b.HitChance(dex+1, ac)
		assert.GreaterOrEqual(rt, lo, b.HitFloor)
		assert.LessOrEqual(rt, hi, b.HitCeiling)
		if lo > b.HitFloor && hi < b.HitCeiling {
			assert.Greater(rt, hi, lo)
		} else {
			assert.GreaterOrEqual(rt, hi, lo)
		}
	})
}

func TestResolveHit(t *testing.T) {
	never := dice.NewFixed(nil, []float64{0.99})
	always := dice.NewFixed(nil, []float64{0.0})

	assert.True(t, combat.ResolveHit(combat.AttackRoll{Natural: 20, IsCritical: true}, 0.05, never))
	assert.False(t, combat.ResolveHit(combat.AttackRoll{Natural: 1, IsCriticalMiss: true}, 0.95, always))
	assert.True(t, combat.ResolveHit(combat.AttackRoll{Natural: 10}, 0.5, always))
	assert.False(t, combat.ResolveHit(combat.AttackRoll{Natural: 10}, 0.5, never))
}

func TestComputeDamage(t *testing.T) {
	assert.Equal(t, 7, combat.ComputeDamage(4, 3, false))
	assert.Equal(t, 14, combat.ComputeDamage(4, 3, true))
	assert.Equal(t, 1, combat.ComputeDamage(1, -4, false))
	assert.Equal(t, 1, combat.ComputeDamage(1, -4, true))
}

func TestComputeDamage_Property_AtLeastOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(0, 50).Draw(rt, "base")
		mod := rapid.IntRange(-10, 10).Draw(rt, "mod")
		crit := rapid.Bool().Draw(rt, "crit")
		d := combat.ComputeDamage(base, mod, crit)
		assert.GreaterOrEqual(rt, d, 1)
		if crit && base+mod > 0 {
			assert.Equal(rt, 2*(base+mod), d)
		}
	})
}

func TestFleeChance_Shape(t *testing.T) {
	b := combat.DefaultBalance()
	assert.InDelta(t, 0.5, b.FleeChance(10, 1, 1), 1e-9)
	rapid.Check(t, func(rt *rapid.T) {
		dex := rapid.IntRange(1, 29).Draw(rt, "dex")
		mon := rapid.IntRange(1, 19).Draw(rt, "monster_level")
		chr := rapid.IntRange(1, 19).Draw(rt, "character_level")
		base := b.FleeChance(dex, mon, chr)
		assert.GreaterOrEqual(rt, base, b.FleeFloor)
		assert.LessOrEqual(rt, base, b.FleeCeiling)
		assert.GreaterOrEqual(rt, b.FleeChance(dex+1, mon, chr), base)
		assert.GreaterOrEqual(rt, b.FleeChance(dex, mon, chr+1), base)
		assert.LessOrEqual(rt, b.FleeChance(dex, mon+1, chr), base)
	})
}
