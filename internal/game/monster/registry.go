package monster

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
)

// Registry resolves monster templates and ability rosters. Lookups prefer the
// monster's own name and fall back to its type.
//
// A Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	templates map[string]*Template
	byName    map[string][]*ability.Ability
	byType    map[string][]*ability.Ability
}

// NewRegistry indexes templates by name and registers typeRosters as the shared
// rosters for each monster type.
//
// Precondition: every template passed Validate.
// Postcondition: Returns a Registry or an error on a duplicate name or invalid ability.
func NewRegistry(templates []*Template, typeRosters map[string][]*ability.Ability) (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template, len(templates)),
		byName:    make(map[string][]*ability.Ability, len(templates)),
		byType:    make(map[string][]*ability.Ability, len(typeRosters)),
	}
	for _, t := range templates {
		if _, dup := r.templates[t.Name]; dup {
			return nil, fmt.Errorf("monster: duplicate template %q", t.Name)
		}
		r.templates[t.Name] = t
		if len(t.Abilities) > 0 {
			r.byName[t.Name] = t.Abilities
		}
	}
	for typ, roster := range typeRosters {
		for _, a := range roster {
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("monster: roster %q: %w", typ, err)
			}
		}
		r.byType[typ] = roster
	}
	return r, nil
}

// Roster returns the abilities for a monster, looked up by name and then by type.
//
// Postcondition: returns nil when neither key has a roster; the monster then only
// makes plain attacks.
func (r *Registry) Roster(name, monsterType string) []*ability.Ability {
	if roster, ok := r.byName[name]; ok {
		return roster
	}
	return r.byType[monsterType]
}

// Template returns the template registered under name.
func (r *Registry) Template(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Names returns every template name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.templates))
	for n := range r.templates {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ParseRosters decodes a YAML mapping of monster type to ability list.
func ParseRosters(data []byte) (map[string][]*ability.Ability, error) {
	var out map[string][]*ability.Ability
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	return out, nil
}
