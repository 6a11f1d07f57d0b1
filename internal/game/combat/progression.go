package combat

import (
	"errors"
	"fmt"
)

// Progression holds the cumulative XP thresholds for leveling up.
//
// Thresholds[i] is the total XP needed to advance from level i+1 to level i+2; the
// level cap is len(Thresholds)+1.
type Progression struct {
	Thresholds []int `yaml:"thresholds"`
}

// DefaultProgression returns the standard twenty-level table.
func DefaultProgression() Progression {
	return Progression{Thresholds: []int{
		300, 900, 2700, 6500, 14000, 23000, 34000, 48000, 64000, 85000,
		100000, 120000, 140000, 165000, 195000, 225000, 265000, 305000, 355000,
	}}
}

// MaxLevel returns the level cap.
func (p Progression) MaxLevel() int { return len(p.Thresholds) + 1 }

// Threshold returns the total XP required to leave level, and false at the cap.
func (p Progression) Threshold(level int) (int, bool) {
	if level < 1 || level > len(p.Thresholds) {
		return 0, false
	}
	return p.Thresholds[level-1], true
}

// Advance applies every threshold totalXP crosses, so one large award may raise
// several levels.
//
// Precondition: level >= 1.
// Postcondition: newLevel >= level; leveledUp iff newLevel > level.
func (p Progression) Advance(level, totalXP int) (newLevel int, leveledUp bool) {
	newLevel = level
	for {
		need, ok := p.Threshold(newLevel)
		if !ok || totalXP < need {
			break
		}
		newLevel++
	}
	return newLevel, newLevel > level
}

// Award scales the monster's rewards and runs the level-up check against the
// character's running XP total.
//
// Postcondition: Reward.NewLevel >= characterLevel.
func (b Balance) Award(p Progression, baseXP, baseGold, monsterLevel int, tier Tier, characterLevel, characterXP int) Reward {
	xp, gold := b.ScaleRewards(baseXP, baseGold, monsterLevel, tier)
	newLevel, up := p.Advance(characterLevel, characterXP+xp)
	return Reward{Experience: xp, Gold: gold, LeveledUp: up, NewLevel: newLevel}
}

// Validate checks that thresholds are strictly increasing and positive.
func (p Progression) Validate() error {
	if len(p.Thresholds) == 0 {
		return errors.New("combat: progression has no thresholds")
	}
	prev := 0
	for i, v := range p.Thresholds {
		if v <= prev {
			return fmt.Errorf("combat: progression threshold %d (%d) must exceed %d", i+1, v, prev)
		}
		prev = v
	}
	return nil
}
