package character

import (
	"errors"
	"fmt"
)

// hitDie is the per-class hit die size.
var hitDie = map[Class]int{
	Barbarian: 12,
	Fighter:   10, Paladin: 10, Ranger: 10,
	Bard: 8, Cleric: 8, Druid: 8, Monk: 8, Rogue: 8, Warlock: 8,
	Sorcerer: 6, Wizard: 6,
}

// manaPerLevel is the mana pool growth per level; zero for non-casters.
var manaPerLevel = map[Class]int{
	Bard: 10, Cleric: 10, Druid: 10, Sorcerer: 10, Warlock: 10, Wizard: 10,
	Paladin: 5, Ranger: 5,
}

// HitDie returns the hit die size for class c, or 0 for an unknown class.
func HitDie(c Class) int { return hitDie[c] }

// IsCaster reports whether class c has a mana pool.
func IsCaster(c Class) bool { return manaPerLevel[c] > 0 }

// applyKeyAbilityBoost adds +2 to the class key ability score.
func applyKeyAbilityBoost(a AbilityScores, c Class) AbilityScores {
	switch c {
	case Barbarian, Fighter, Paladin:
		a.Strength += 2
	case Monk, Ranger, Rogue:
		a.Dexterity += 2
	case Wizard:
		a.Intelligence += 2
	case Cleric, Druid:
		a.Wisdom += 2
	case Bard, Sorcerer, Warlock:
		a.Charisma += 2
	}
	return a
}

// armorClass applies the class unarmored-defense rules on top of 10 + DEX.
func armorClass(a AbilityScores, c Class) int {
	ac := 10 + a.Modifier(a.Dexterity)
	switch c {
	case Barbarian:
		ac += a.Modifier(a.Constitution)
	case Monk:
		ac += a.Modifier(a.Wisdom)
	case Fighter, Paladin:
		ac += 6
	case Cleric, Ranger:
		ac += 4
	case Bard, Druid, Rogue, Warlock:
		ac += 1
	}
	return ac
}

// Build constructs a full-health combat snapshot for a new character. The class key
// ability receives a +2 boost (capped at 30). HP is the hit die plus CON modifier at
// level 1 and the average hit die roll plus CON modifier per further level, minimum 1.
//
// Precondition: name must be non-empty; class must be valid; level in [1, MaxLevel].
// Postcondition: Returns a CombatantStats that passes Validate, or a non-nil error.
func Build(name string, class Class, level int, base AbilityScores) (*CombatantStats, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if !class.Valid() {
		return nil, fmt.Errorf("character: unknown class %q", class)
	}
	if level < 1 || level > MaxLevel {
		return nil, fmt.Errorf("character: level must be in [1, %d], got %d", MaxLevel, level)
	}

	abilities := applyKeyAbilityBoost(base, class)
	abilities = capScores(abilities)

	con := abilities.Modifier(abilities.Constitution)
	die := hitDie[class]
	maxHP := die + con + (level-1)*(die/2+1+con)
	if maxHP < 1 {
		maxHP = 1
	}
	mana := manaPerLevel[class] * level

	c := &CombatantStats{
		Name:          name,
		Class:         class,
		Level:         level,
		Abilities:     abilities,
		CurrentHealth: maxHP,
		MaxHealth:     maxHP,
		CurrentMana:   mana,
		MaxMana:       mana,
		ArmorClass:    armorClass(abilities, class),
		WeaponDice:    DefaultWeaponDice,
		ConsumedSlots: map[int]int{},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func capScores(a AbilityScores) AbilityScores {
	clamp := func(v int) int { return min(30, max(1, v)) }
	return AbilityScores{
		Strength:     clamp(a.Strength),
		Dexterity:    clamp(a.Dexterity),
		Constitution: clamp(a.Constitution),
		Intelligence: clamp(a.Intelligence),
		Wisdom:       clamp(a.Wisdom),
		Charisma:     clamp(a.Charisma),
	}
}

// AbilityName returns the short display label for an ability score field.
func AbilityName(field string) string {
	names := map[string]string{
		"strength":     "STR",
		"dexterity":    "DEX",
		"constitution": "CON",
		"intelligence": "INT",
		"wisdom":       "WIS",
		"charisma":     "CHA",
	}
	if n, ok := names[field]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", field)
}
