package encounter

import (
	"fmt"

	"github.com/cory-johannsen/geoquest/internal/game/ability"
	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/spell"
)

// playerAttack resolves a weapon attack. Armed riders are spent whether or not the
// attack lands.
func (s *Session) playerAttack(res *Resolution) error {
	if err := s.economy.Check(combat.SlotAction); err != nil {
		return err
	}

	roll, hit := s.attackRoll(s.char.Abilities.Dexterity, s.mon.Armor)
	riders := s.riders
	s.riders = nil

	out := ActionResult{Actor: ActorPlayer, Action: string(IntentAttack), Name: "Attack", Roll: &roll, Hit: hit}
	if hit {
		base := s.roller.Amount(s.char.WeaponDice)
		mod := dice.AbilityModifier(s.char.Abilities.Strength) + s.charFx.DamageBonus(s.roller)
		for _, r := range riders {
			mod += s.roller.Amount(r.Dice)
		}
		out.Damage = s.damageMonster(combat.ComputeDamage(base, mod, roll.IsCritical))
	}
	out.Message = attackMessage(s.char.Name, s.mon.Name, roll, hit, out.Damage)

	if err := s.economy.Spend(combat.SlotAction, s.bonusAvailable()); err != nil {
		return err
	}
	res.Player = out
	return nil
}

// castSpell checks, in order: the spell exists, a slot is left at the spell's level,
// the action slot is open, the caster may cast it and mana covers the cost.
func (s *Session) castSpell(id string, res *Resolution) error {
	if s.tables.Spells == nil {
		return combaterr.New(combaterr.KindUnknownAbilityOrSpell, "no spell %q", id)
	}
	sp, err := s.tables.Spells.Lookup(id)
	if err != nil {
		return err
	}
	if err := s.slots.Check(sp.Level); err != nil {
		return err
	}
	if err := s.economy.Check(combat.SlotAction); err != nil {
		return err
	}
	if err := spell.CheckEligible(sp, s.char.Class, s.char.Level, s.char.KnownSpells); err != nil {
		return err
	}
	if sp.ManaCost > 0 && s.mana.Current < sp.ManaCost {
		return combaterr.New(combaterr.KindInsufficientMana, "%s costs %d mana, %d available", sp.Name, sp.ManaCost, s.mana.Current)
	}

	if err := s.slots.Consume(sp.Level); err != nil {
		return err
	}
	s.mana.ApplyDamage(sp.ManaCost)

	out := ActionResult{Actor: ActorPlayer, Action: string(IntentCastSpell), Name: sp.Name, Hit: true}
	switch {
	case sp.Damage != nil:
		out.Damage = s.damageMonster(s.roller.Amount(sp.Damage.Dice))
		out.Message = fmt.Sprintf("%s casts %s for %d %s damage.", s.char.Name, sp.Name, out.Damage, sp.Damage.Type)
	case sp.Healing != nil:
		out.Healing = s.hp.Restore(s.roller.Amount(sp.Healing.Dice))
		out.Message = fmt.Sprintf("%s casts %s and recovers %d health.", s.char.Name, sp.Name, out.Healing)
	default:
		out.Message = fmt.Sprintf("%s casts %s.", s.char.Name, sp.Name)
	}

	if err := s.economy.Spend(combat.SlotAction, s.bonusAvailable()); err != nil {
		return err
	}
	res.Player = out
	return nil
}

// useAbility checks the ability exists, uses remain and its slot is open, then
// applies it. Free abilities need the action slot they ride on.
func (s *Session) useAbility(id string, res *Resolution) error {
	a, ok := s.loadout.Get(id)
	if !ok {
		return combaterr.New(combaterr.KindUnknownAbilityOrSpell, "no ability %q", id)
	}
	slot := a.Slot()
	gate := slot
	if slot == combat.SlotFree {
		gate = combat.SlotAction
	}
	if _, err := s.loadout.Check(id); err != nil {
		return err
	}
	if err := s.economy.Check(gate); err != nil {
		return err
	}

	if err := s.loadout.Use(id); err != nil {
		return err
	}
	out := s.applyAbility(a)

	if a.Effect != nil && a.Effect.Type == ability.EffectExtraAction {
		if err := s.economy.ReopenAction(); err != nil {
			return err
		}
	}
	if err := s.economy.Spend(slot, s.bonusAvailable()); err != nil {
		return err
	}
	res.Player = out
	return nil
}

func (s *Session) applyAbility(a *ability.Ability) ActionResult {
	out := ActionResult{Actor: ActorPlayer, Action: string(IntentUseAbility), Name: a.Name, Hit: true}
	msg := fmt.Sprintf("%s uses %s", s.char.Name, a.Name)

	if a.Damage != nil {
		if a.RollsToHit() {
			roll, hit := s.attackRoll(s.char.Abilities.Dexterity, s.mon.Armor)
			out.Roll, out.Hit = &roll, hit
			if base, ok := s.roller.TryAmount(a.Damage.Dice); ok && hit {
				out.Damage = s.damageMonster(combat.ComputeDamage(base, s.charFx.DamageBonus(s.roller), roll.IsCritical))
			}
		} else {
			out.Damage = s.damageMonster(s.roller.Amount(a.Damage.Dice))
		}
		if out.Hit {
			msg += fmt.Sprintf(" for %d damage", out.Damage)
		} else {
			msg += " and misses"
		}
	}
	if a.Healing != nil {
		out.Healing = s.hp.Restore(s.roller.Amount(a.Healing.Dice))
		msg += fmt.Sprintf(" and recovers %d health", out.Healing)
	}
	if e := a.Effect; e != nil {
		out.Effect = e.Type
		switch {
		case e.Type == ability.EffectRider:
			s.armRider(ability.Rider{Source: a.ID, Dice: e.Dice})
			msg += "; the next attack carries it"
		case e.Type == ability.EffectExtraAction:
			msg += "; the action is ready again"
		case e.Type.TargetsSelf():
			s.charFx.Apply(a.ID, *e)
		default:
			s.monFx.Apply(a.ID, *e)
		}
	}
	out.Message = msg + "."
	return out
}

func (s *Session) armRider(r ability.Rider) {
	for i := range s.riders {
		if s.riders[i].Source == r.Source {
			s.riders[i] = r
			return
		}
	}
	s.riders = append(s.riders, r)
}

// flee is decided immediately. It needs the action slot open but never spends it. A
// failed attempt draws an unmitigated counter-attack for half the monster's damage.
func (s *Session) flee(res *Resolution) error {
	if err := s.economy.Check(combat.SlotAction); err != nil {
		return err
	}
	chance := s.tables.Balance.FleeChance(s.char.Abilities.Dexterity, s.mon.Level, s.char.Level)
	out := ActionResult{Actor: ActorPlayer, Action: string(IntentFlee), Name: "Flee"}

	if s.src.Float64() < chance {
		s.economy.End(combat.OutcomeFled)
		out.Hit = true
		out.Message = fmt.Sprintf("%s escapes from %s.", s.char.Name, s.mon.Name)
		res.Player = out
		return nil
	}

	counter := ActionResult{Actor: ActorMonster, Action: "counter_attack", Name: "Counter-attack", Hit: true}
	counter.Damage = s.hp.ApplyDamage(s.mon.Damage / 2)
	counter.Message = fmt.Sprintf("%s cuts off the escape and strikes for %d damage.", s.mon.Name, counter.Damage)
	out.Message = fmt.Sprintf("%s fails to escape.", s.char.Name)
	res.Player = out
	res.Monster = &counter
	res.Log = append(res.Log, counter.Message)
	return nil
}

func (s *Session) endTurn(res *Resolution) error {
	if err := s.economy.EndTurn(); err != nil {
		return err
	}
	res.Player = ActionResult{
		Actor:   ActorPlayer,
		Action:  string(IntentEndTurn),
		Name:    "End turn",
		Message: fmt.Sprintf("%s ends the turn.", s.char.Name),
	}
	return nil
}

func attackMessage(attacker, target string, roll combat.AttackRoll, hit bool, dmg int) string {
	switch {
	case roll.IsCritical:
		return fmt.Sprintf("%s lands a critical hit on %s for %d damage.", attacker, target, dmg)
	case roll.IsCriticalMiss:
		return fmt.Sprintf("%s fumbles the attack on %s.", attacker, target)
	case hit:
		return fmt.Sprintf("%s hits %s for %d damage.", attacker, target, dmg)
	}
	return fmt.Sprintf("%s misses %s.", attacker, target)
}
