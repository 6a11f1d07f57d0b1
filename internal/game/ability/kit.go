package ability

import (
	"fmt"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
)

// effectRounds is how long the timed class effects last.
const effectRounds = 10

// Kit returns the class abilities available to a character of class and level, in
// display order. Every call returns fresh values.
//
// Precondition: level >= 1.
// Postcondition: every returned ability passes Validate.
func Kit(class character.Class, level int) []*Ability {
	level = max(1, level)
	switch class {
	case character.Barbarian:
		return []*Ability{rage(level)}
	case character.Bard:
		return []*Ability{{
			ID: "bardic_inspiration", Name: "Bardic Inspiration", Category: CategoryBuff,
			BonusAction: true, MaxUses: 3 + level/5,
			Effect: &Effect{Type: EffectRider, Dice: fmt.Sprintf("1d%d", scalingDie(level, 6))},
		}}
	case character.Cleric:
		return []*Ability{{
			ID: "channel_divinity", Name: "Channel Divinity", Category: CategorySpell,
			MaxUses: 1 + level/6,
			Damage:  &combat.DamageSpec{Dice: fmt.Sprintf("%dd10", 2+level/5), Type: "radiant"},
		}}
	case character.Druid:
		return []*Ability{{
			ID: "wild_shape", Name: "Wild Shape", Category: CategoryHeal,
			MaxUses: 2,
			Healing: &combat.HealingSpec{Dice: fmt.Sprintf("%dd8", max(1, level/2))},
		}}
	case character.Fighter:
		surges := 1
		if level >= 17 {
			surges = 2
		}
		return []*Ability{
			{
				ID: "second_wind", Name: "Second Wind", Category: CategoryHeal,
				BonusAction: true, MaxUses: 1 + level/10,
				Healing: &combat.HealingSpec{Dice: fmt.Sprintf("1d10+%d", level)},
			},
			{
				ID: "action_surge", Name: "Action Surge", Category: CategorySpecial,
				BonusAction: true, MaxUses: surges,
				Effect: &Effect{Type: EffectExtraAction},
			},
		}
	case character.Monk:
		return []*Ability{{
			ID: "flurry_of_blows", Name: "Flurry of Blows", Category: CategoryAttack,
			BonusAction: true, MaxUses: max(2, level),
			Damage: &combat.DamageSpec{Dice: fmt.Sprintf("2d%d", martialArtsDie(level)), Type: "bludgeoning"},
		}}
	case character.Paladin:
		smite := 2
		if level >= 11 {
			smite = 3
		}
		return []*Ability{
			{
				ID: "divine_smite", Name: "Divine Smite", Category: CategoryBuff,
				Free: true, MaxUses: max(2, level/2),
				Effect: &Effect{Type: EffectRider, Dice: fmt.Sprintf("%dd8", smite)},
			},
			{
				ID: "lay_on_hands", Name: "Lay on Hands", Category: CategoryHeal,
				MaxUses: 1,
				// Nd1 is a fixed pool of five points per level.
				Healing: &combat.HealingSpec{Dice: fmt.Sprintf("%dd1", 5*level)},
			},
		}
	case character.Ranger:
		return []*Ability{{
			ID: "hunters_mark", Name: "Hunter's Mark", Category: CategoryBuff,
			BonusAction: true, MaxUses: max(2, level/4+1),
			Effect: &Effect{Type: EffectDamageBonus, Duration: effectRounds, Dice: "1d6"},
		}}
	case character.Rogue:
		return []*Ability{{
			ID: "sneak_attack", Name: "Sneak Attack", Category: CategoryBuff,
			Free: true, MaxUses: Unlimited,
			Effect: &Effect{Type: EffectRider, Dice: fmt.Sprintf("%dd6", (level+1)/2)},
		}}
	case character.Sorcerer:
		return []*Ability{{
			ID: "arcane_surge", Name: "Arcane Surge", Category: CategorySpell,
			BonusAction: true, MaxUses: max(2, level/2),
			Damage: &combat.DamageSpec{Dice: fmt.Sprintf("%dd10", 1+level/5), Type: "force"},
		}}
	case character.Warlock:
		return []*Ability{{
			ID: "hex", Name: "Hex", Category: CategoryDebuff,
			BonusAction: true, MaxUses: max(2, level/4+2),
			Effect: &Effect{Type: EffectDamageBonus, Duration: effectRounds, Dice: "1d6"},
		}}
	case character.Wizard:
		return []*Ability{{
			ID: "arcane_ward", Name: "Arcane Ward", Category: CategoryBuff,
			BonusAction: true, MaxUses: 1 + level/6,
			Effect: &Effect{Type: EffectShield, Duration: effectRounds, Magnitude: 2 * level},
		}}
	}
	return nil
}

func rage(level int) *Ability {
	bonus := 2
	switch {
	case level >= 16:
		bonus = 4
	case level >= 9:
		bonus = 3
	}
	return &Ability{
		ID: "rage", Name: "Rage", Category: CategoryBuff,
		BonusAction: true, MaxUses: max(2, level/4+2),
		Effect: &Effect{Type: EffectRage, Duration: effectRounds, Magnitude: bonus},
	}
}

// scalingDie grows a die by one size every five levels, capped at d12.
func scalingDie(level, base int) int {
	return min(12, base+2*(level/5))
}

func martialArtsDie(level int) int {
	switch {
	case level >= 17:
		return 10
	case level >= 11:
		return 8
	case level >= 5:
		return 6
	}
	return 4
}
