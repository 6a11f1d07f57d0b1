package ability_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

func TestAbility_Slot(t *testing.T) {
	assert.Equal(t, combat.SlotAction, (&ability.Ability{}).Slot())
	assert.Equal(t, combat.SlotBonusAction, (&ability.Ability{BonusAction: true}).Slot())
	assert.Equal(t, combat.SlotFree, (&ability.Ability{Free: true}).Slot())
}

func TestAbility_InHealthWindow(t *testing.T) {
	open := &ability.Ability{}
	assert.True(t, open.InHealthWindow(0))
	assert.True(t, open.InHealthWindow(1))

	low := &ability.Ability{MaxHealth: ability.Float(0.5)}
	assert.True(t, low.InHealthWindow(0.5), "bounds are inclusive")
	assert.True(t, low.InHealthWindow(0.2))
	assert.False(t, low.InHealthWindow(0.51))

	band := &ability.Ability{MinHealth: ability.Float(0.25), MaxHealth: ability.Float(0.75)}
	assert.False(t, band.InHealthWindow(0.2))
	assert.True(t, band.InHealthWindow(0.25))
	assert.False(t, band.InHealthWindow(0.8))
}

func TestAbility_Validate(t *testing.T) {
	bad := &ability.Ability{
		ID:          "bad",
		Category:    "mystery",
		Cooldown:    -1,
		UseChance:   1.5,
		Damage:      &combat.DamageSpec{Dice: "xx"},
		Healing:     &combat.HealingSpec{Dice: "1d4"},
		Effect:      &ability.Effect{Type: "confuse"},
		MinHealth:   ability.Float(0.9),
		MaxHealth:   ability.Float(0.1),
		Free:        true,
		BonusAction: true,
	}
	err := bad.Validate()
	require.Error(t, err)
	for _, want := range []string{"category", "cooldown", "use_chance", "mutually exclusive", "damage", "confuse", "min_health", "free"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestKit_EveryClassValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		classes := character.Classes()
		class := classes[rapid.IntRange(0, len(classes)-1).Draw(rt, "class")]
		level := rapid.IntRange(1, 20).Draw(rt, "level")
		kit := ability.Kit(class, level)
		require.NotEmpty(rt, kit)
		for _, a := range kit {
			assert.NoError(rt, a.Validate())
			assert.Positive(rt, a.MaxUses)
		}
	})
}

func TestKit_LevelDerivedValues(t *testing.T) {
	rage := ability.Kit(character.Barbarian, 1)[0]
	assert.Equal(t, "rage", rage.ID)
	assert.Equal(t, 2, rage.MaxUses)
	assert.Equal(t, 7, ability.Kit(character.Barbarian, 20)[0].MaxUses) // max(2, 20/4+2)

	sneak := ability.Kit(character.Rogue, 5)[0]
	assert.True(t, sneak.Free)
	assert.True(t, sneak.Unlimited())
	assert.Equal(t, "3d6", sneak.Effect.Dice)

	fighter := ability.Kit(character.Fighter, 3)
	require.Len(t, fighter, 2)
	assert.Equal(t, ability.EffectExtraAction, fighter[1].Effect.Type)
	assert.True(t, fighter[1].BonusAction)

	assert.Nil(t, ability.Kit("bandit", 3))
}

func TestLoadout_UseDecrementsAndExhausts(t *testing.T) {
	l := ability.NewLoadout(ability.Kit(character.Barbarian, 1))
	require.NoError(t, l.Use("rage"))
	assert.Equal(t, 1, l.Remaining("rage"))
	require.NoError(t, l.Use("rage"))
	assert.Equal(t, 0, l.Remaining("rage"))

	err := l.Use("rage")
	assert.True(t, errors.Is(err, combaterr.ErrAbilityExhausted))
	assert.Equal(t, 0, l.Remaining("rage"), "a rejected use leaves counters unchanged")
	assert.False(t, l.BonusAvailable())
}

func TestLoadout_UnlimitedNeverDecrements(t *testing.T) {
	l := ability.NewLoadout(ability.Kit(character.Rogue, 3))
	for i := 0; i < 1500; i++ {
		require.NoError(t, l.Use("sneak_attack"))
	}
	assert.Equal(t, ability.Unlimited, l.Remaining("sneak_attack"))
}

func TestLoadout_Unknown(t *testing.T) {
	l := ability.NewLoadout(ability.Kit(character.Wizard, 3))
	_, err := l.Check("fireball")
	assert.True(t, errors.Is(err, combaterr.ErrUnknownAbilityOrSpell))
}

// TestLoadout_Property_ExhaustedRejectsWithoutChange checks that a limited ability
// with no uses left always rejects and leaves every counter as it was.
func TestLoadout_Property_ExhaustedRejectsWithoutChange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		classes := character.Classes()
		class := classes[rapid.IntRange(0, len(classes)-1).Draw(rt, "class")]
		level := rapid.IntRange(1, 20).Draw(rt, "level")
		kit := ability.Kit(class, level)
		l := ability.NewLoadout(kit)
		for _, a := range kit {
			if a.Unlimited() {
				continue
			}
			for l.Remaining(a.ID) > 0 {
				require.NoError(rt, l.Use(a.ID))
			}
			before := l.Uses()
			assert.True(rt, errors.Is(l.Use(a.ID), combaterr.ErrAbilityExhausted))
			assert.Equal(rt, before, l.Uses())
		}
	})
}

func TestRestoreLoadout(t *testing.T) {
	kit := ability.Kit(character.Fighter, 1)
	l := ability.RestoreLoadout(kit, map[string]int{"second_wind": 0, "action_surge": 7})
	assert.Equal(t, 0, l.Remaining("second_wind"))
	assert.Equal(t, 1, l.Remaining("action_surge"), "restored counts cap at max uses")
	assert.True(t, l.BonusAvailable())
	assert.Contains(t, l.String(), "second_wind(0/1)")
}
