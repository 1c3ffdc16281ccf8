package combatant

import "math"

// Leveling constants
const (
	MaxLevel     = 50
	HPPerLevel   = 10
	ManaPerLevel = 5
)

// XPForLevel returns the total XP required to reach a given level.
// Uses polynomial curve: 100 * level^1.5
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(100 * math.Pow(float64(level), 1.5))
}

// XPToNextLevel returns XP needed from current level to next level.
func XPToNextLevel(currentLevel int) int {
	if currentLevel >= MaxLevel {
		return 0
	}
	return XPForLevel(currentLevel+1) - XPForLevel(currentLevel)
}

// LevelUpInfo contains information about a level-up event
type LevelUpInfo struct {
	NewLevel int
	HPGain   int
	ManaGain int
}

// GainExperience adds experience and returns level-up info for every level
// gained (a large award can level more than once).
func (c *Combatant) GainExperience(xp int) []LevelUpInfo {
	if xp <= 0 {
		return nil
	}
	c.Experience += xp

	var levelUps []LevelUpInfo
	for c.Level < MaxLevel && c.Experience >= XPForLevel(c.Level+1) {
		levelUps = append(levelUps, c.levelUp())
	}
	return levelUps
}

// levelUp advances one level, growing and refilling resources.
func (c *Combatant) levelUp() LevelUpInfo {
	c.Level++
	c.MaxHP += HPPerLevel
	c.MaxMana += ManaPerLevel
	c.HP = c.MaxHP
	c.Mana = c.MaxMana
	return LevelUpInfo{
		NewLevel: c.Level,
		HPGain:   HPPerLevel,
		ManaGain: ManaPerLevel,
	}
}

// LoseExperiencePercent removes a percentage of total XP, clamped at zero.
// Levels already earned are kept; only the XP pool shrinks.
func (c *Combatant) LoseExperiencePercent(percent int) int {
	if percent <= 0 || c.Experience <= 0 {
		return 0
	}
	loss := c.Experience * percent / 100
	c.Experience -= loss
	if c.Experience < 0 {
		c.Experience = 0
	}
	return loss
}
