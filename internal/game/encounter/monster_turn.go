package encounter

import (
	"fmt"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
)

// monsterTurn runs exactly one monster decision against the character.
func (s *Session) monsterTurn() ActionResult {
	d := s.policy.Decide(s.src, monster.TurnState{
		Name:           s.mon.Name,
		Type:           s.mon.Type,
		HealthFraction: s.monHP.Fraction(),
		TargetFraction: s.hp.Fraction(),
		Round:          s.round,
	})
	if d.PlainAttack() {
		return s.monsterAttack()
	}
	return s.monsterAbility(d.Ability)
}

// playerArmor is the character's armor class after debuffs.
func (s *Session) playerArmor() int {
	return s.char.ArmorClass - s.charFx.ArmorPenalty()
}

func (s *Session) monsterAttack() ActionResult {
	roll, hit := s.attackRoll(s.mon.Dexterity, s.playerArmor())
	out := ActionResult{Actor: ActorMonster, Action: "attack", Name: "Attack", Roll: &roll, Hit: hit}
	if hit {
		dmg := combat.ComputeDamage(s.mon.Damage, s.monFx.DamageBonus(s.roller), roll.IsCritical)
		out.Damage = s.damageCharacter(dmg)
	}
	out.Message = attackMessage(s.mon.Name, s.char.Name, roll, hit, out.Damage)
	return out
}

func (s *Session) monsterAbility(a *ability.Ability) ActionResult {
	out := ActionResult{Actor: ActorMonster, Action: a.ID, Name: a.Name, Hit: true}
	msg := fmt.Sprintf("%s uses %s", s.mon.Name, a.Name)

	if a.Damage != nil {
		if a.RollsToHit() {
			roll, hit := s.attackRoll(s.mon.Dexterity, s.playerArmor())
			out.Roll, out.Hit = &roll, hit
			if base, ok := s.roller.TryAmount(a.Damage.Dice); ok && hit {
				out.Damage = s.damageCharacter(combat.ComputeDamage(base, s.monFx.DamageBonus(s.roller), roll.IsCritical))
			}
		} else {
			out.Damage = s.damageCharacter(s.roller.Amount(a.Damage.Dice))
		}
		if out.Hit {
			msg += fmt.Sprintf(" for %d damage", out.Damage)
		} else {
			msg += " and misses"
		}
	}
	if a.Healing != nil {
		out.Healing = s.monHP.Restore(s.roller.Amount(a.Healing.Dice))
		msg += fmt.Sprintf(" and recovers %d health", out.Healing)
	}
	if e := a.Effect; e != nil {
		out.Effect = e.Type
		if e.Type.TargetsSelf() {
			s.monFx.Apply(a.ID, *e)
		} else {
			s.charFx.Apply(a.ID, *e)
		}
	}
	out.Message = msg + "."
	return out
}
