package monster

import (
	"maps"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// ScriptCaller evaluates Lua ability preconditions.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// TurnState is what the policy sees of the encounter on the monster's turn.
type TurnState struct {
	Name           string
	Type           string
	HealthFraction float64
	TargetFraction float64
	Round          int
}

// Decision is the policy's choice for one monster turn.
type Decision struct {
	// Ability is nil for a plain weapon attack.
	Ability *ability.Ability
	// Eligible lists the ability IDs that passed the cooldown, health and condition gates.
	Eligible []string
}

// PlainAttack reports whether the monster falls back to its weapon.
func (d Decision) PlainAttack() bool { return d.Ability == nil }

// Policy picks a monster's action each turn and owns its cooldown state.
//
// Invariant: cooldowns are never negative.
type Policy struct {
	roster    []*ability.Ability
	cooldowns map[string]int
	caller    ScriptCaller
}

// NewPolicy creates a policy with every cooldown at zero.
//
// Precondition: roster may be empty; caller may be nil, in which case abilities with
// a Condition are never eligible.
func NewPolicy(roster []*ability.Ability, caller ScriptCaller) *Policy {
	return RestorePolicy(roster, nil, caller)
}

// RestorePolicy creates a policy with cooldowns taken from a snapshot.
func RestorePolicy(roster []*ability.Ability, cooldowns map[string]int, caller ScriptCaller) *Policy {
	cd := make(map[string]int, len(roster))
	for _, a := range roster {
		cd[a.ID] = max(0, cooldowns[a.ID])
	}
	return &Policy{roster: roster, cooldowns: cd, caller: caller}
}

// Roster returns the abilities in roster order.
func (p *Policy) Roster() []*ability.Ability { return p.roster }

// Cooldowns returns a copy of the rounds remaining per ability.
func (p *Policy) Cooldowns() map[string]int {
	out := make(map[string]int, len(p.cooldowns))
	maps.Copy(out, p.cooldowns)
	return out
}

// Decide runs one monster turn of the policy.
//
// An ability is eligible when its cooldown is 0, the monster's health fraction lies in
// its window and its Condition hook, if any, returns true. Every eligible ability gets
// one uniform draw against its use chance; the first to trigger in roster order wins.
// With no winner the monster makes a plain attack. Afterwards the chosen ability's
// cooldown is set to its configured value and then every cooldown drains by one, so
// an ability with cooldown N sits out the next N-1 turns.
//
// Precondition: src must be non-nil.
// Postcondition: every cooldown is >= 0.
func (p *Policy) Decide(src dice.Source, state TurnState) Decision {
	var (
		d      Decision
		chosen *ability.Ability
	)
	for _, a := range p.roster {
		if !p.eligible(a, state) {
			continue
		}
		d.Eligible = append(d.Eligible, a.ID)
		if src.Float64() < a.UseChance && chosen == nil {
			chosen = a
		}
	}
	d.Ability = chosen

	if chosen != nil {
		p.cooldowns[chosen.ID] = chosen.Cooldown
	}
	for id, n := range p.cooldowns {
		p.cooldowns[id] = max(0, n-1)
	}
	return d
}

func (p *Policy) eligible(a *ability.Ability, state TurnState) bool {
	if p.cooldowns[a.ID] > 0 {
		return false
	}
	if !a.InHealthWindow(state.HealthFraction) {
		return false
	}
	if a.Condition == "" {
		return true
	}
	if p.caller == nil {
		return false
	}
	val, _ := p.caller.CallHook(state.Type, a.Condition,
		lua.LString(state.Name),
		lua.LNumber(state.HealthFraction),
		lua.LNumber(state.TargetFraction),
		lua.LNumber(state.Round),
	)
	return val == lua.LTrue
}
