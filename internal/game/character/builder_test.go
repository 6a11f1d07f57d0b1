package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/geoquest/internal/game/character"
)

func baseScores() character.AbilityScores {
	return character.AbilityScores{
		Strength: 10, Dexterity: 10, Constitution: 10,
		Intelligence: 10, Wisdom: 10, Charisma: 10,
	}
}

func TestBuild_AppliesKeyAbilityBoost(t *testing.T) {
	c, err := character.Build("Hero", character.Fighter, 1, baseScores())
	require.NoError(t, err)
	assert.Equal(t, 12, c.Abilities.Strength)
	assert.Equal(t, 10, c.Abilities.Dexterity)

	w, err := character.Build("Mage", character.Wizard, 1, baseScores())
	require.NoError(t, err)
	assert.Equal(t, 12, w.Abilities.Intelligence)
}

func TestBuild_CalculatesHP(t *testing.T) {
	scores := baseScores()
	scores.Constitution = 14
	c, err := character.Build("Hero", character.Barbarian, 3, scores)
	require.NoError(t, err)
	// 12 + 2 at level 1, then (6 + 1 + 2) for each of two further levels.
	assert.Equal(t, 32, c.MaxHealth)
	assert.Equal(t, c.MaxHealth, c.CurrentHealth)
}

func TestBuild_HPMinimumIsOne(t *testing.T) {
	scores := baseScores()
	scores.Constitution = 1
	c, err := character.Build("Frail", character.Wizard, 1, scores)
	require.NoError(t, err)
	assert.Equal(t, 1, c.MaxHealth)
}

func TestBuild_ManaOnlyForCasters(t *testing.T) {
	w, err := character.Build("Mage", character.Wizard, 4, baseScores())
	require.NoError(t, err)
	assert.Equal(t, 40, w.MaxMana)

	r, err := character.Build("Thief", character.Rogue, 4, baseScores())
	require.NoError(t, err)
	assert.Zero(t, r.MaxMana)
	assert.False(t, character.IsCaster(character.Rogue))
}

func TestBuild_RejectsBadInput(t *testing.T) {
	_, err := character.Build("", character.Fighter, 1, baseScores())
	assert.Error(t, err)
	_, err = character.Build("Hero", character.Class("bandit"), 1, baseScores())
	assert.Error(t, err)
	_, err = character.Build("Hero", character.Fighter, 0, baseScores())
	assert.Error(t, err)
	_, err = character.Build("Hero", character.Fighter, character.MaxLevel+1, baseScores())
	assert.Error(t, err)
}

func TestBuild_AlwaysValid_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		classes := character.Classes()
		class := classes[rapid.IntRange(0, len(classes)-1).Draw(rt, "class")]
		level := rapid.IntRange(1, 20).Draw(rt, "level")
		score := rapid.IntRange(1, 30)
		scores := character.AbilityScores{
			Strength:     score.Draw(rt, "str"),
			Dexterity:    score.Draw(rt, "dex"),
			Constitution: score.Draw(rt, "con"),
			Intelligence: score.Draw(rt, "int"),
			Wisdom:       score.Draw(rt, "wis"),
			Charisma:     score.Draw(rt, "cha"),
		}
		c, err := character.Build("Prop", class, level, scores)
		require.NoError(rt, err)
		assert.NoError(rt, c.Validate())
		assert.GreaterOrEqual(rt, c.MaxHealth, 1)
	})
}

func TestParseClass(t *testing.T) {
	c, err := character.ParseClass(" Paladin ")
	require.NoError(t, err)
	assert.Equal(t, character.Paladin, c)
	_, err = character.ParseClass("necromancer")
	assert.Error(t, err)
	assert.Len(t, character.Classes(), 12)
}

func TestValidate_CollectsViolations(t *testing.T) {
	c := character.CombatantStats{
		Class:         "bandit",
		Level:         0,
		Abilities:     character.AbilityScores{Strength: 31, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 0},
		MaxHealth:     10,
		CurrentHealth: 11,
	}
	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{"bandit", "level", "strength", "charisma", "current_health"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_RejectsLevelAboveCap(t *testing.T) {
	c, err := character.Build("Hero", character.Paladin, character.MaxLevel, baseScores())
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	c.Level = 1_000_000_000
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")
}

func TestValidate_RejectsMalformedWeaponDice(t *testing.T) {
	c, err := character.Build("Hero", character.Fighter, 1, baseScores())
	require.NoError(t, err)
	for _, notation := range []string{"30000000d6", "sword", "2d0"} {
		t.Run(notation, func(t *testing.T) {
			bad := c.Clone()
			bad.WeaponDice = notation
			err := bad.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "weapon_dice")
		})
	}
	c.WeaponDice = ""
	assert.NoError(t, c.Validate())
}

func TestClone_DoesNotAlias(t *testing.T) {
	c := character.CombatantStats{KnownSpells: []string{"magic_missile"}, ConsumedSlots: map[int]int{1: 1}}
	cp := c.Clone()
	cp.KnownSpells[0] = "shield"
	cp.ConsumedSlots[1] = 2
	assert.Equal(t, "magic_missile", c.KnownSpells[0])
	assert.Equal(t, 1, c.ConsumedSlots[1])
	assert.True(t, c.Knows("magic_missile"))
}

func TestAbilityName(t *testing.T) {
	assert.Equal(t, "STR", character.AbilityName("strength"))
	assert.Equal(t, "<luck>", character.AbilityName("luck"))
}
