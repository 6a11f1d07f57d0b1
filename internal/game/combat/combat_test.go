package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
)

func TestVitals_ApplyDamage(t *testing.T) {
	v := combat.NewVitals(18, 18)
	assert.Equal(t, 5, v.ApplyDamage(5))
	assert.Equal(t, 13, v.Current)
	assert.Equal(t, 13, v.ApplyDamage(20))
	assert.Equal(t, 0, v.Current) // floors at 0
	assert.True(t, v.Depleted())
}

func TestVitals_Restore(t *testing.T) {
	v := combat.NewVitals(5, 10)
	assert.Equal(t, 5, v.Restore(50))
	assert.Equal(t, 10, v.Current)
	assert.Equal(t, "10/10", v.String())
}

func TestNewVitals_Clamps(t *testing.T) {
	assert.Equal(t, 10, combat.NewVitals(15, 10).Current)
	assert.Equal(t, 0, combat.NewVitals(-3, 10).Current)
}

func TestVitals_Property_StaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(rt, "max_hp")
		v := combat.NewVitals(maxHP, maxHP)
		ops := rapid.SliceOfN(rapid.IntRange(-300, 300), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			if op < 0 {
				v.ApplyDamage(-op)
			} else {
				v.Restore(op)
			}
			assert.GreaterOrEqual(rt, v.Current, 0)
			assert.LessOrEqual(rt, v.Current, v.Max)
		}
	})
}

func TestVitals_Fraction(t *testing.T) {
	assert.Equal(t, 0.5, combat.NewVitals(5, 10).Fraction())
	assert.Equal(t, 0.0, combat.Vitals{}.Fraction())
}

func TestApplyResistance(t *testing.T) {
	assert.Equal(t, 0, combat.ApplyResistance(0))
	assert.Equal(t, 1, combat.ApplyResistance(1))
	assert.Equal(t, 1, combat.ApplyResistance(3))
	assert.Equal(t, 5, combat.ApplyResistance(10))
}

func TestOutcome_Terminal(t *testing.T) {
	assert.False(t, combat.OutcomeNone.Terminal())
	assert.True(t, combat.OutcomeVictory.Terminal())
	assert.True(t, combat.OutcomeDefeat.Terminal())
	assert.True(t, combat.OutcomeFled.Terminal())
	assert.Equal(t, "none", combat.Outcome("").String())
}

func TestSlot_String(t *testing.T) {
	assert.Equal(t, "free", combat.SlotFree.String())
	assert.Equal(t, "action", combat.SlotAction.String())
	assert.Equal(t, "bonus_action", combat.SlotBonusAction.String())
	assert.Equal(t, "unknown", combat.Slot(9).String())
}
