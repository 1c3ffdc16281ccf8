// Package monster provides monster definitions for encounters: YAML-loaded
// stat blocks, loot tables, and conversion into combatant snapshots.
package monster

import (
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/dice"
)

// LootEntry represents an item that can drop with a percentage chance
type LootEntry struct {
	ItemID     string
	DropChance int // percent (0-100)
}

// MobType represents the creature type for alignment bonuses (smite, soul strike)
type MobType string

const (
	MobTypeUnknown   MobType = ""
	MobTypeBeast     MobType = "beast"
	MobTypeHumanoid  MobType = "humanoid"
	MobTypeUndead    MobType = "undead"
	MobTypeDemon     MobType = "demon"
	MobTypeConstruct MobType = "construct"
	MobTypeGiant     MobType = "giant"
)

// StringToMobType converts a string to a MobType
func StringToMobType(s string) MobType {
	switch s {
	case "beast":
		return MobTypeBeast
	case "humanoid":
		return MobTypeHumanoid
	case "undead":
		return MobTypeUndead
	case "demon":
		return MobTypeDemon
	case "construct":
		return MobTypeConstruct
	case "giant":
		return MobTypeGiant
	default:
		return MobTypeUnknown
	}
}

// Monster is a spawnable monster definition. One definition can be turned
// into any number of independent combatant snapshots.
type Monster struct {
	ID          string
	Name        string
	Description string
	Level       int
	Health      int
	Strength    int
	Dexterity   int
	Defence     int
	WeaponPower int
	ArmorPower  int
	Experience  int
	GoldMin     int
	GoldMax     int
	IsBoss      bool
	MobType     MobType
	LootTable   []LootEntry

	// Abilities the monster may use instead of a basic attack
	Abilities     []string
	AbilityChance int // percent per turn
}

// ToCombatant builds a fresh combatant snapshot for this monster. The
// roller decides the gold carried and which loot entries are eligible
// to drop if the monster is defeated.
func (m *Monster) ToCombatant(roller dice.Roller) *combatant.Combatant {
	c := combatant.New(m.Name, combatant.KindMonster, "", m.Level)
	c.MaxHP = m.Health
	c.HP = m.Health
	c.MaxStamina = 20 + m.Level*2
	c.Stamina = c.MaxStamina
	c.MaxMana = m.Level * 3
	c.Mana = c.MaxMana
	if m.Strength > 0 {
		c.Strength = m.Strength
	}
	if m.Dexterity > 0 {
		c.Dexterity = m.Dexterity
	}
	c.Defence = m.Defence
	c.WeaponPower = m.WeaponPower
	c.ArmorPower = m.ArmorPower
	if m.MobType == MobTypeUndead || m.MobTypeIsDark() {
		c.Alignment = combatant.AlignEvil
	}
	c.Experience = m.Experience
	c.Gold = m.RollGold(roller)
	c.IsBoss = m.IsBoss
	c.DropChance = m.DropChance()
	c.Loot = m.RollLoot(roller)
	c.Abilities = m.Abilities
	c.AbilityChance = m.AbilityChance
	return c
}

// MobTypeIsDark reports whether the creature type counts as dark-aligned
// for smite and soul strike bonuses.
func (m *Monster) MobTypeIsDark() bool {
	return m.MobType == MobTypeUndead || m.MobType == MobTypeDemon
}

// RollGold returns a random gold amount between GoldMin and GoldMax.
// Returns 0 if no gold range is set.
func (m *Monster) RollGold(roller dice.Roller) int {
	if m.GoldMax <= 0 {
		return 0
	}
	if m.GoldMin >= m.GoldMax {
		return m.GoldMin
	}
	return m.GoldMin + roller.Intn(m.GoldMax-m.GoldMin+1)
}

// RollLoot performs percentage-based loot rolls and returns items that
// dropped. Bosses drop their entire table.
func (m *Monster) RollLoot(roller dice.Roller) []string {
	var dropped []string

	if m.IsBoss {
		for _, entry := range m.LootTable {
			dropped = append(dropped, entry.ItemID)
		}
		return dropped
	}

	for _, entry := range m.LootTable {
		if roller.Chance(entry.DropChance) {
			dropped = append(dropped, entry.ItemID)
		}
	}
	return dropped
}

// DropChance returns the equipment drop chance (percent) for this monster.
// The chance scales with level; bosses are pinned to a fixed high chance.
func (m *Monster) DropChance() int {
	if m.IsBoss {
		return 90
	}
	chance := 5 + m.Level*2
	if chance > 60 {
		chance = 60
	}
	return chance
}
