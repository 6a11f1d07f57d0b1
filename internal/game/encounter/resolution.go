package encounter

import (
	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
)

// Actor names the side that produced an ActionResult.
type Actor string

const (
	ActorPlayer  Actor = "player"
	ActorMonster Actor = "monster"
)

// ActionResult is one side's sub-resolution.
type ActionResult struct {
	Actor Actor `json:"actor"`
	// Action is the intent kind for the player, or "attack" / the ability ID for the monster.
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	// Roll is set when the action made an attack roll.
	Roll    *combat.AttackRoll `json:"roll,omitempty"`
	Hit     bool               `json:"hit"`
	Damage  int                `json:"damage"`
	Healing int                `json:"healing"`
	Effect  ability.EffectType `json:"effect,omitempty"`
	Message string             `json:"message"`
}

// Resolution is everything the caller needs to render and reconcile one intent.
type Resolution struct {
	Round  int          `json:"round"`
	Player ActionResult `json:"player"`
	// Monster is set only when the round passed to the monster within this call.
	Monster       *ActionResult      `json:"monster,omitempty"`
	PlayerHealth  combat.Vitals      `json:"player_health"`
	PlayerMana    combat.Vitals      `json:"player_mana"`
	MonsterHealth combat.Vitals      `json:"monster_health"`
	Economy       combat.EconomyView `json:"economy"`
	Outcome       combat.Outcome     `json:"outcome"`
	// Reward is set only on victory.
	Reward *combat.Reward `json:"reward,omitempty"`
	Log    []string       `json:"log"`
}
