package combat

import "github.com/cory-johannsen/geoquest/internal/game/dice"

// AttackRoll is the natural d20 result of an attack.
type AttackRoll struct {
	Natural        int  `json:"natural"`
	IsCritical     bool `json:"is_critical"`
	IsCriticalMiss bool `json:"is_critical_miss"`
}

// ResolveAttackRoll rolls 1d20 and flags natural 20 and natural 1.
//
// Precondition: src must be non-nil.
// Postcondition: Natural is in [1, 20]; IsCritical iff Natural == 20; IsCriticalMiss iff Natural == 1.
func ResolveAttackRoll(src dice.Source) AttackRoll {
	n := dice.RollDie(src, 20)
	return AttackRoll{
		Natural:        n,
		IsCritical:     n == 20,
		IsCriticalMiss: n == 1,
	}
}

// HitChance maps the gap between attacker dexterity and target armor class to a hit
// probability. Within the clamp band, a higher dexterity strictly increases the result.
//
// Postcondition: Returns a value in [HitFloor, HitCeiling].
func (b Balance) HitChance(attackerDex, targetAC int) float64 {
	return clamp(b.HitBase+float64(attackerDex-targetAC)*b.HitPerPoint, b.HitFloor, b.HitCeiling)
}

// ResolveHit decides whether roll hits. A critical always hits and a critical miss
// always misses; otherwise a fresh uniform draw from src must fall below chance.
//
// Postcondition: src is consulted only when the roll is neither critical nor a critical miss.
func ResolveHit(roll AttackRoll, chance float64, src dice.Source) bool {
	switch {
	case roll.IsCritical:
		return true
	case roll.IsCriticalMiss:
		return false
	}
	return src.Float64() < chance
}

// ComputeDamage combines base damage and modifier, doubling on a critical before
// flooring at 1.
//
// Postcondition: Returns >= 1.
func ComputeDamage(base, modifier int, critical bool) int {
	dmg := base + modifier
	if critical {
		dmg *= 2
	}
	return max(1, dmg)
}

// FleeChance is the probability a flee attempt succeeds. It rises with dexterity and
// with the character's level advantage and falls as the monster out-levels the character.
//
// Postcondition: Returns a value in [FleeFloor, FleeCeiling].
func (b Balance) FleeChance(dexterity, monsterLevel, characterLevel int) float64 {
	v := b.FleeBase +
		float64(dice.AbilityModifier(dexterity))*b.FleePerDexMod +
		float64(characterLevel-monsterLevel)*b.FleePerLevel
	return clamp(v, b.FleeFloor, b.FleeCeiling)
}
