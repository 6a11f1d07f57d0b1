package monster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
)

type fakeCaller struct {
	results map[string]lua.LValue
	calls   []string
}

func (f *fakeCaller) CallHook(scope, hook string, _ ...lua.LValue) (lua.LValue, error) {
	f.calls = append(f.calls, scope+"/"+hook)
	if v, ok := f.results[hook]; ok {
		return v, nil
	}
	return lua.LNil, nil
}

func claw() *ability.Ability {
	return &ability.Ability{ID: "claw", Name: "Claw", Category: ability.CategoryAttack, UseChance: 0.5, Cooldown: 1}
}

func enrage() *ability.Ability {
	return &ability.Ability{ID: "enrage", Name: "Enrage", Category: ability.CategoryBuff, UseChance: 1.0, Cooldown: 3,
		MaxHealth: ability.Float(0.5),
		Effect:    &ability.Effect{Type: ability.EffectDamageBonus, Duration: 2, Magnitude: 3}}
}

func TestPolicy_EmptyRosterAttacks(t *testing.T) {
	p := monster.NewPolicy(nil, nil)
	d := p.Decide(dice.NewFixed(nil, []float64{0}), monster.TurnState{HealthFraction: 1})
	assert.True(t, d.PlainAttack())
	assert.Empty(t, d.Eligible)
}

func TestPolicy_NoTriggerFallsBack(t *testing.T) {
	p := monster.NewPolicy([]*ability.Ability{claw()}, nil)
	d := p.Decide(dice.NewFixed(nil, []float64{0.9}), monster.TurnState{HealthFraction: 1})
	assert.True(t, d.PlainAttack())
	assert.Equal(t, []string{"claw"}, d.Eligible)
	assert.Equal(t, 0, p.Cooldowns()["claw"])
}

func TestPolicy_FirstTriggeredByRosterOrder(t *testing.T) {
	bite := &ability.Ability{ID: "bite", Category: ability.CategoryAttack, UseChance: 0.5}
	p := monster.NewPolicy([]*ability.Ability{claw(), bite}, nil)
	// Both draw below 0.5, so roster order decides.
	d := p.Decide(dice.NewFixed(nil, []float64{0.1, 0.1}), monster.TurnState{HealthFraction: 1})
	require.NotNil(t, d.Ability)
	assert.Equal(t, "claw", d.Ability.ID)
}

func TestPolicy_LaterAbilityWinsWhenEarlierMisses(t *testing.T) {
	bite := &ability.Ability{ID: "bite", Category: ability.CategoryAttack, UseChance: 0.5}
	p := monster.NewPolicy([]*ability.Ability{claw(), bite}, nil)
	d := p.Decide(dice.NewFixed(nil, []float64{0.9, 0.1}), monster.TurnState{HealthFraction: 1})
	require.NotNil(t, d.Ability)
	assert.Equal(t, "bite", d.Ability.ID)
}

func TestPolicy_CooldownSetThenDrained(t *testing.T) {
	p := monster.NewPolicy([]*ability.Ability{enrage()}, nil)
	always := dice.NewFixed(nil, []float64{0})
	low := monster.TurnState{HealthFraction: 0.3}

	require.False(t, p.Decide(always, low).PlainAttack())
	assert.Equal(t, 2, p.Cooldowns()["enrage"], "cooldown 3 is set then drained once")
	assert.True(t, p.Decide(always, low).PlainAttack())
	assert.True(t, p.Decide(always, low).PlainAttack())
	assert.Equal(t, 0, p.Cooldowns()["enrage"])
	assert.False(t, p.Decide(always, low).PlainAttack())
}

// TestPolicy_HealthGate checks that an ability limited to half health or below is
// never picked above the threshold and becomes available once health drops below it.
func TestPolicy_HealthGate(t *testing.T) {
	p := monster.NewPolicy([]*ability.Ability{enrage()}, nil)
	always := dice.NewFixed(nil, []float64{0})
	for _, frac := range []float64{1.0, 0.9, 0.75, 0.51} {
		d := p.Decide(always, monster.TurnState{HealthFraction: frac})
		assert.True(t, d.PlainAttack(), "fraction %v", frac)
		assert.Empty(t, d.Eligible)
	}
	d := p.Decide(always, monster.TurnState{HealthFraction: 0.4})
	require.NotNil(t, d.Ability)
	assert.Equal(t, "enrage", d.Ability.ID)
}

func TestPolicy_ConditionHook(t *testing.T) {
	guarded := &ability.Ability{ID: "howl", Category: ability.CategoryBuff, UseChance: 1, Condition: "can_howl"}
	caller := &fakeCaller{results: map[string]lua.LValue{"can_howl": lua.LFalse}}
	p := monster.NewPolicy([]*ability.Ability{guarded}, caller)
	always := dice.NewFixed(nil, []float64{0})
	state := monster.TurnState{Type: "wolf", HealthFraction: 1}

	assert.True(t, p.Decide(always, state).PlainAttack())
	assert.Equal(t, []string{"wolf/can_howl"}, caller.calls)

	caller.results["can_howl"] = lua.LTrue
	assert.False(t, p.Decide(always, state).PlainAttack())

	noCaller := monster.NewPolicy([]*ability.Ability{guarded}, nil)
	assert.True(t, noCaller.Decide(always, state).PlainAttack(), "a condition without a script caller never passes")
}

func TestRestorePolicy(t *testing.T) {
	p := monster.RestorePolicy([]*ability.Ability{enrage(), claw()}, map[string]int{"enrage": 2, "ghost": 4}, nil)
	assert.Equal(t, map[string]int{"enrage": 2, "claw": 0}, p.Cooldowns())
}

func TestPolicy_Property_CooldownsNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := monster.NewPolicy([]*ability.Ability{claw(), enrage()}, nil)
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		turns := rapid.IntRange(1, 50).Draw(rt, "turns")
		for i := 0; i < turns; i++ {
			frac := rapid.Float64Range(0, 1).Draw(rt, "fraction")
			d := p.Decide(src, monster.TurnState{HealthFraction: frac})
			if d.Ability != nil {
				assert.Contains(rt, d.Eligible, d.Ability.ID)
			}
			for _, n := range p.Cooldowns() {
				assert.GreaterOrEqual(rt, n, 0)
			}
		}
	})
}
