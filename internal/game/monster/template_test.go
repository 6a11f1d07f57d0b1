package monster_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
)

const wolfYAML = `
name: Dire Wolf
type: beast
tier: elite
level: 3
health: 30
damage: 6
armor: 12
dexterity: 15
xp: 80
abilities:
  - id: pounce
    name: Pounce
    category: attack
    cooldown: 2
    use_chance: 0.4
    damage:
      dice: 2d6
      type: piercing
  - id: howl
    name: Howl
    category: buff
    cooldown: 4
    use_chance: 0.3
    max_health: 0.5
    effect:
      type: damage_bonus
      duration: 3
      magnitude: 2
`

func TestLoadTemplateFromBytes(t *testing.T) {
	tmpl, err := monster.LoadTemplateFromBytes([]byte(wolfYAML))
	require.NoError(t, err)
	assert.Equal(t, "Dire Wolf", tmpl.Name)
	assert.Equal(t, combat.TierElite, tmpl.Tier)
	require.Len(t, tmpl.Abilities, 2)
	require.NotNil(t, tmpl.Abilities[1].MaxHealth)
	assert.Equal(t, 0.5, *tmpl.Abilities[1].MaxHealth)
	assert.Equal(t, ability.EffectDamageBonus, tmpl.Abilities[1].Effect.Type)
}

func TestLoadTemplateFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"no name":   "type: beast\nlevel: 1\nhealth: 5\n",
		"no type":   "name: X\nlevel: 1\nhealth: 5\n",
		"level":     "name: X\ntype: beast\nlevel: 0\nhealth: 5\n",
		"health":    "name: X\ntype: beast\nlevel: 1\nhealth: 0\n",
		"tier":      "name: X\ntype: beast\nlevel: 1\nhealth: 5\ntier: mythic\n",
		"ability":   "name: X\ntype: beast\nlevel: 1\nhealth: 5\nabilities:\n  - id: a\n    category: nope\n",
		"duplicate": "name: X\ntype: beast\nlevel: 1\nhealth: 5\nabilities:\n  - id: a\n    category: attack\n  - id: a\n    category: attack\n",
		"yaml":      "name: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := monster.LoadTemplateFromBytes([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadTemplatesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"monsters/wolf.yaml":   {Data: []byte(wolfYAML)},
		"monsters/notes.txt":   {Data: []byte("ignored")},
		"monsters/goblin.yaml": {Data: []byte("name: Goblin\ntype: goblinoid\nlevel: 1\nhealth: 12\ndamage: 3\narmor: 10\n")},
	}
	templates, err := monster.LoadTemplatesFS(fsys, "monsters")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Goblin", templates[0].Name)
	assert.Equal(t, combat.TierCommon, templates[0].Tier)
}

func TestTemplate_Spawn(t *testing.T) {
	tmpl, err := monster.LoadTemplateFromBytes([]byte(wolfYAML))
	require.NoError(t, err)
	s := tmpl.Spawn(combat.DefaultBalance(), 3, "")
	require.NoError(t, s.Validate())
	assert.Equal(t, combat.TierElite, s.Tier)
	assert.Equal(t, 45, s.Health) // 30 * 1.5
	assert.Equal(t, s.MaxHealth, s.Health)
	assert.Equal(t, 80, s.Experience)
	assert.Equal(t, 15, s.Gold, "missing gold defaults to 5 per level")

	boss := tmpl.Spawn(combat.DefaultBalance(), 3, combat.TierBoss)
	assert.Equal(t, 75, boss.Health)
}

func TestRegistry_RosterLookup(t *testing.T) {
	tmpl, err := monster.LoadTemplateFromBytes([]byte(wolfYAML))
	require.NoError(t, err)
	rosters, err := monster.ParseRosters([]byte(`
beast:
  - id: bite
    name: Bite
    category: attack
    use_chance: 0.5
`))
	require.NoError(t, err)

	r, err := monster.NewRegistry([]*monster.Template{tmpl}, rosters)
	require.NoError(t, err)

	assert.Len(t, r.Roster("Dire Wolf", "beast"), 2, "name beats type")
	require.Len(t, r.Roster("Boar", "beast"), 1)
	assert.Equal(t, "bite", r.Roster("Boar", "beast")[0].ID)
	assert.Nil(t, r.Roster("Slime", "ooze"))
	assert.Equal(t, []string{"Dire Wolf"}, r.Names())

	_, ok := r.Template("Dire Wolf")
	assert.True(t, ok)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	tmpl, err := monster.LoadTemplateFromBytes([]byte(wolfYAML))
	require.NoError(t, err)
	_, err = monster.NewRegistry([]*monster.Template{tmpl, tmpl}, nil)
	assert.Error(t, err)
}

func TestStats_DefaultsAndValidate(t *testing.T) {
	s := monster.Stats{Name: "Rat", Level: 2, Health: 4, MaxHealth: 4, Damage: 1}.WithDefaults()
	assert.Equal(t, monster.DefaultDexterity, s.Dexterity)
	assert.Equal(t, combat.TierCommon, s.Tier)
	assert.Equal(t, 50, s.Experience)
	assert.Equal(t, 10, s.Gold)
	require.NoError(t, s.Validate())

	bad := monster.Stats{Tier: "mythic", Health: 9, MaxHealth: 4}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "mythic")
	assert.Contains(t, err.Error(), "health")
}
