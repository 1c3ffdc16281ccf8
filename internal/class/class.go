// Package class defines the character class system and the per-class
// combat tuning used by the encounter engine.
package class

import (
	"fmt"
	"strings"
)

// Class represents a character class
type Class string

const (
	Warrior Class = "warrior"
	Mage    Class = "mage"
	Cleric  Class = "cleric"
	Rogue   Class = "rogue"
	Ranger  Class = "ranger"
	Paladin Class = "paladin"
)

// AllClasses returns all valid classes
func AllClasses() []Class {
	return []Class{Warrior, Mage, Cleric, Rogue, Ranger, Paladin}
}

// IsValid returns true if the class is a valid class
func (c Class) IsValid() bool {
	switch c {
	case Warrior, Mage, Cleric, Rogue, Ranger, Paladin:
		return true
	default:
		return false
	}
}

// String returns the display name of the class
func (c Class) String() string {
	switch c {
	case Warrior:
		return "Warrior"
	case Mage:
		return "Mage"
	case Cleric:
		return "Cleric"
	case Rogue:
		return "Rogue"
	case Ranger:
		return "Ranger"
	case Paladin:
		return "Paladin"
	default:
		return "Unknown"
	}
}

// ParseClass parses a string into a Class, case-insensitive
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warrior":
		return Warrior, nil
	case "mage":
		return Mage, nil
	case "cleric":
		return Cleric, nil
	case "rogue":
		return Rogue, nil
	case "ranger":
		return Ranger, nil
	case "paladin":
		return Paladin, nil
	default:
		return "", fmt.Errorf("unknown class: %s", s)
	}
}

// Definition contains the static combat definition for a class
type Definition struct {
	Name        Class
	Description string
	HitDie      int    // e.g., 10 for d10
	PrimaryStat string // e.g., "STR"

	// ExtraAttackEvery grants one additional swing per this many levels
	// (0 = never gains extra swings)
	ExtraAttackEvery int

	// TargetWeight is the base weight monsters use when choosing who to
	// hit. Tanks draw attacks, casters avoid them.
	TargetWeight int

	// EscapeBonus is added to the retreat chance calculation
	EscapeBonus int

	// HitBonusDivisor splits the level for the to-hit bonus
	// (lower divisor = better attack progression)
	HitBonusDivisor int

	// StaminaRegen per round end
	StaminaRegen int

	// ManaRegen per round end
	ManaRegen int
}

// Definitions contains all class definitions
var Definitions = map[Class]*Definition{
	Warrior: {
		Name:             "Warrior",
		Description:      "Master of arms and armor, front-line fighter",
		HitDie:           10,
		PrimaryStat:      "STR",
		ExtraAttackEvery: 5,
		TargetWeight:     40,
		EscapeBonus:      0,
		HitBonusDivisor:  2,
		StaminaRegen:     6,
		ManaRegen:        0,
	},
	Mage: {
		Name:             "Mage",
		Description:      "Master of arcane magic, glass cannon",
		HitDie:           6,
		PrimaryStat:      "INT",
		ExtraAttackEvery: 0,
		TargetWeight:     10,
		EscapeBonus:      0,
		HitBonusDivisor:  4,
		StaminaRegen:     3,
		ManaRegen:        8,
	},
	Cleric: {
		Name:             "Cleric",
		Description:      "Divine healer and support, armored caster",
		HitDie:           8,
		PrimaryStat:      "WIS",
		ExtraAttackEvery: 0,
		TargetWeight:     20,
		EscapeBonus:      0,
		HitBonusDivisor:  3,
		StaminaRegen:     4,
		ManaRegen:        6,
	},
	Rogue: {
		Name:             "Rogue",
		Description:      "Stealth, critical hits, high single-target damage",
		HitDie:           8,
		PrimaryStat:      "DEX",
		ExtraAttackEvery: 8,
		TargetWeight:     15,
		EscapeBonus:      5,
		HitBonusDivisor:  2,
		StaminaRegen:     5,
		ManaRegen:        2,
	},
	Ranger: {
		Name:             "Ranger",
		Description:      "Ranged combat specialist, wilderness tracker",
		HitDie:           10,
		PrimaryStat:      "DEX",
		ExtraAttackEvery: 6,
		TargetWeight:     20,
		EscapeBonus:      10,
		HitBonusDivisor:  2,
		StaminaRegen:     5,
		ManaRegen:        3,
	},
	Paladin: {
		Name:             "Paladin",
		Description:      "Holy warrior, tank with healing",
		HitDie:           10,
		PrimaryStat:      "STR",
		ExtraAttackEvery: 6,
		TargetWeight:     35,
		EscapeBonus:      0,
		HitBonusDivisor:  2,
		StaminaRegen:     5,
		ManaRegen:        3,
	},
}

// monsterDefinition covers combatants without a character class.
var monsterDefinition = &Definition{
	Name:            "Unknown",
	Description:     "Creature without class training",
	HitDie:          8,
	PrimaryStat:     "STR",
	TargetWeight:    20,
	HitBonusDivisor: 2,
	StaminaRegen:    4,
	ManaRegen:       2,
}

// GetDefinition returns the definition for a class. Unknown classes
// (monsters) get a neutral definition rather than nil.
func GetDefinition(c Class) *Definition {
	if def, ok := Definitions[c]; ok {
		return def
	}
	return monsterDefinition
}

// ExtraAttacks returns the bonus swings a member of this class has earned
// at the given level.
func (d *Definition) ExtraAttacks(level int) int {
	if d.ExtraAttackEvery <= 0 {
		return 0
	}
	return level / d.ExtraAttackEvery
}

// HitBonus returns the to-hit bonus for a member of this class at the
// given level.
func (d *Definition) HitBonus(level int) int {
	if d.HitBonusDivisor <= 0 {
		return 0
	}
	return level / d.HitBonusDivisor
}
