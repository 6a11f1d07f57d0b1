// Package gamedata loads the static game tables: spells, monster templates and
// rosters, balance coefficients, progression and spell slots.
//
// The shipped tables are embedded; a content directory with the same layout can
// replace them.
package gamedata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

//go:embed data
var embedded embed.FS

const (
	spellsFile  = "spells.yaml"
	rulesFile   = "rules.yaml"
	rostersFile = "rosters.yaml"
	monstersDir = "monsters"
	scriptsDir  = "scripts"
)

// Rules holds the tunable numeric tables.
type Rules struct {
	Balance     combat.Balance     `yaml:"balance"`
	Progression combat.Progression `yaml:"progression"`
	Slots       spell.SlotTable    `yaml:"spell_slots"`
}

// DefaultRules returns the built-in rules.
func DefaultRules() Rules {
	return Rules{
		Balance:     combat.DefaultBalance(),
		Progression: combat.DefaultProgression(),
		Slots:       spell.DefaultSlotTable(),
	}
}

// Validate reports the first invalid table.
func (r Rules) Validate() error {
	if err := r.Balance.Validate(); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	if err := r.Progression.Validate(); err != nil {
		return fmt.Errorf("progression: %w", err)
	}
	if err := r.Slots.Validate(); err != nil {
		return fmt.Errorf("spell slots: %w", err)
	}
	return nil
}

// Data is the loaded content.
type Data struct {
	Spells   *spell.Catalog
	Monsters *monster.Registry
	Rules    Rules
	// Scripts is the Lua hook tree: the root holds global hooks and each
	// subdirectory holds the hooks of the monster type it is named after.
	Scripts fs.FS
}

// Load reads the embedded tables.
//
// Postcondition: Returns validated data or an error naming the offending file.
func Load() (*Data, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("gamedata: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir reads the tables from a content directory on disk.
func LoadDir(dir string) (*Data, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the tables from the root of fsys. rules.yaml and rosters.yaml are
// optional; spells.yaml and the monsters directory are required.
func LoadFS(fsys fs.FS) (*Data, error) {
	rules, err := loadRules(fsys)
	if err != nil {
		return nil, err
	}
	catalog, err := loadSpells(fsys)
	if err != nil {
		return nil, err
	}
	templates, err := monster.LoadTemplatesFS(fsys, monstersDir)
	if err != nil {
		return nil, fmt.Errorf("gamedata: %w", err)
	}
	rosters, err := loadRosters(fsys)
	if err != nil {
		return nil, err
	}
	registry, err := monster.NewRegistry(templates, rosters)
	if err != nil {
		return nil, fmt.Errorf("gamedata: %w", err)
	}

	var scripts fs.FS
	if info, err := fs.Stat(fsys, scriptsDir); err == nil && info.IsDir() {
		if scripts, err = fs.Sub(fsys, scriptsDir); err != nil {
			return nil, fmt.Errorf("gamedata: %w", err)
		}
	}
	return &Data{Spells: catalog, Monsters: registry, Rules: rules, Scripts: scripts}, nil
}

func loadRules(fsys fs.FS) (Rules, error) {
	rules := DefaultRules()
	raw, err := fs.ReadFile(fsys, rulesFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return rules, nil
	case err != nil:
		return Rules{}, fmt.Errorf("gamedata: reading %s: %w", rulesFile, err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("gamedata: parsing %s: %w", rulesFile, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("gamedata: %s: %w", rulesFile, err)
	}
	return rules, nil
}

func loadSpells(fsys fs.FS) (*spell.Catalog, error) {
	raw, err := fs.ReadFile(fsys, spellsFile)
	if err != nil {
		return nil, fmt.Errorf("gamedata: reading %s: %w", spellsFile, err)
	}
	var spells []*spell.Spell
	if err := yaml.Unmarshal(raw, &spells); err != nil {
		return nil, fmt.Errorf("gamedata: parsing %s: %w", spellsFile, err)
	}
	catalog, err := spell.NewCatalog(spells)
	if err != nil {
		return nil, fmt.Errorf("gamedata: %s: %w", spellsFile, err)
	}
	return catalog, nil
}

func loadRosters(fsys fs.FS) (map[string][]*ability.Ability, error) {
	raw, err := fs.ReadFile(fsys, rostersFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("gamedata: reading %s: %w", rostersFile, err)
	}
	rosters, err := monster.ParseRosters(raw)
	if err != nil {
		return nil, fmt.Errorf("gamedata: %s: %w", rostersFile, err)
	}
	return rosters, nil
}

// Tables returns the session tables backed by this data.
func (d *Data) Tables() encounter.Tables {
	return encounter.Tables{
		Spells:      d.Spells,
		Slots:       d.Rules.Slots,
		Balance:     d.Rules.Balance,
		Progression: d.Rules.Progression,
		Rosters:     d.Monsters,
	}
}

// Spawn builds a monster snapshot from the template named name, scaled for
// characterLevel. An empty tier keeps the template's tier.
func (d *Data) Spawn(name string, characterLevel int, tier combat.Tier) (monster.Stats, error) {
	t, ok := d.Monsters.Template(name)
	if !ok {
		return monster.Stats{}, fmt.Errorf("gamedata: unknown monster %q", name)
	}
	if tier != "" {
		parsed, err := combat.ParseTier(string(tier))
		if err != nil {
			return monster.Stats{}, fmt.Errorf("gamedata: %w", err)
		}
		tier = parsed
	}
	return t.Spawn(d.Rules.Balance, characterLevel, tier), nil
}
