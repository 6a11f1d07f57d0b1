package monster

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
)

// Template defines a reusable monster archetype loaded from YAML.
type Template struct {
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Description string             `yaml:"description"`
	Tier        combat.Tier        `yaml:"tier"`
	Level       int                `yaml:"level"`
	Health      int                `yaml:"health"`
	Damage      int                `yaml:"damage"`
	Armor       int                `yaml:"armor"`
	Dexterity   int                `yaml:"dexterity"`
	XP          int                `yaml:"xp"`
	Gold        int                `yaml:"gold"`
	Abilities   []*ability.Ability `yaml:"abilities"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff Name and Type are non-empty, Level >= 1, Health >= 1,
// Damage >= 0, Armor >= 0, the tier is known and every ability validates; returns an
// error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("monster template: name must not be empty")
	}
	if t.Type == "" {
		return fmt.Errorf("monster template %q: type must not be empty", t.Name)
	}
	if t.Level < 1 {
		return fmt.Errorf("monster template %q: level must be >= 1", t.Name)
	}
	if t.Health < 1 {
		return fmt.Errorf("monster template %q: health must be >= 1", t.Name)
	}
	if t.Damage < 0 || t.Armor < 0 {
		return fmt.Errorf("monster template %q: damage and armor must be >= 0", t.Name)
	}
	if _, err := combat.ParseTier(string(t.Tier)); err != nil {
		return fmt.Errorf("monster template %q: %w", t.Name, err)
	}
	seen := make(map[string]bool, len(t.Abilities))
	for _, a := range t.Abilities {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("monster template %q: %w", t.Name, err)
		}
		if seen[a.ID] {
			return fmt.Errorf("monster template %q: duplicate ability %q", t.Name, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// Spawn produces a full-health snapshot scaled for characterLevel. An empty tier
// keeps the template's own tier.
//
// Precondition: t passed Validate.
// Postcondition: the returned Stats pass Validate.
func (t *Template) Spawn(b combat.Balance, characterLevel int, tier combat.Tier) Stats {
	if tier == "" {
		tier = t.Tier
	}
	scaled := b.ScaleMonster(t.Health, t.Damage, t.Armor, t.Level, characterLevel, tier)
	return Stats{
		Name:       t.Name,
		Type:       t.Type,
		Tier:       tier,
		Level:      scaled.Level,
		Health:     scaled.Health,
		MaxHealth:  scaled.Health,
		Damage:     scaled.Damage,
		Armor:      scaled.Armor,
		Dexterity:  t.Dexterity,
		Experience: t.XP,
		Gold:       t.Gold,
	}.WithDefaults()
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing monster template YAML: %w", err)
	}
	if tmpl.Tier == "" {
		tmpl.Tier = combat.TierCommon
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplatesFS reads all *.yaml files in dir of fsys and returns the parsed
// templates in lexicographic file order.
//
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplatesFS(fsys fs.FS, dir string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", p, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// LoadTemplates reads all *.yaml files in an on-disk directory.
//
// Precondition: dir must be a readable directory.
func LoadTemplates(dir string) ([]*Template, error) {
	return LoadTemplatesFS(os.DirFS(dir), ".")
}
