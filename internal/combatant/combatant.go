// Package combatant defines the shared participant model for encounters.
// Players, teammates, and monsters all share the same snapshot structure;
// the engine reads and writes it directly and the caller owns persisting
// any surviving changes.
package combatant

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/status"
)

// Kind distinguishes the capability sets of encounter participants.
type Kind int

const (
	KindPlayer Kind = iota
	KindTeammate
	KindMonster
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindTeammate:
		return "Teammate"
	case KindMonster:
		return "Monster"
	default:
		return "Unknown"
	}
}

// Alignment shifts damage multipliers for aligned special attacks.
type Alignment int

const (
	AlignNeutral Alignment = iota
	AlignGood
	AlignEvil
)

// Combatant is a participant snapshot for a single encounter. Persistent
// sheet fields survive the encounter (HP, gold, experience); ephemeral
// combat state (statuses, stance flags, cooldowns) is zeroed when a
// snapshot is taken and discarded when the encounter ends.
type Combatant struct {
	Name  string
	Kind  Kind
	Class class.Class
	Level int

	// Resources
	HP         int
	MaxHP      int
	Mana       int
	MaxMana    int
	Stamina    int
	MaxStamina int

	// Core stats
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	// Gear-derived values
	Defence     int
	WeaponPower int
	ArmorPower  int
	BlockChance int // percent, shield bearers only

	// Wealth and progression (players)
	Gold       int
	BankGold   int
	Experience int
	Alignment  Alignment

	// Persistent traits read by the damage pipeline
	Diseased     bool
	Grieving     bool
	DivineFavor  bool
	Married      bool
	DualWielding bool
	DrugAttacks  int // extra swings granted by combat drugs
	CompanionID  string

	// Monster-only reward and AI data. For monsters, Experience and Gold
	// hold the kill reward rather than progression.
	IsBoss        bool
	DropChance    int      // percent chance of an equipment drop on defeat
	Loot          []string // item ids eligible to drop on defeat
	Abilities     []string // ability ids usable instead of a basic attack
	AbilityChance int      // percent chance per turn to use an ability

	// Ephemeral combat state
	Alive            bool
	Statuses         map[status.Effect]int // effect -> rounds remaining
	AbsorptionPool   int                   // additive damage shield
	TempAttackBonus  int
	TempAttackDur    int
	TempDefenseDur   int
	TempDefenseBonus int
	Cooldowns        map[string]int // ability id -> rounds remaining
	DodgeNextAttack  bool
	FightToDeath     bool
	Disarmed         bool
	ProficiencyUses  int
}

// New creates a combatant with empty combat state and full resources.
func New(name string, kind Kind, cls class.Class, level int) *Combatant {
	c := &Combatant{
		Name:         name,
		Kind:         kind,
		Class:        cls,
		Level:        level,
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
		Alive:        true,
		Statuses:     make(map[status.Effect]int),
		Cooldowns:    make(map[string]int),
	}
	return c
}

// Snapshot copies the persistent sheet into a fresh encounter snapshot
// with zeroed ephemeral state.
func (c *Combatant) Snapshot() *Combatant {
	snap := *c
	snap.Statuses = make(map[status.Effect]int)
	snap.Cooldowns = make(map[string]int)
	snap.AbsorptionPool = 0
	snap.TempAttackBonus = 0
	snap.TempAttackDur = 0
	snap.TempDefenseBonus = 0
	snap.TempDefenseDur = 0
	snap.DodgeNextAttack = false
	snap.FightToDeath = false
	snap.Disarmed = false
	snap.Alive = c.HP > 0
	return &snap
}

// IsAlive returns true if the combatant can still act and be targeted.
func (c *Combatant) IsAlive() bool {
	return c.Alive && c.HP > 0
}

// HPPercent returns current HP as a percentage of max (0 when max is 0).
func (c *Combatant) HPPercent() int {
	if c.MaxHP <= 0 {
		return 0
	}
	return c.HP * 100 / c.MaxHP
}

// TakeDamage applies already-mitigated damage, draining the absorption
// pool first. Returns the amount that actually reached HP. HP never goes
// below zero; reaching zero marks the combatant dead.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}

	if c.AbsorptionPool > 0 {
		if c.AbsorptionPool >= amount {
			c.AbsorptionPool -= amount
			return 0
		}
		amount -= c.AbsorptionPool
		c.AbsorptionPool = 0
	}

	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP == 0 {
		c.Alive = false
	}
	return amount
}

// Heal restores health, capped at MaxHP. Returns the amount healed.
// Healing never revives; a dead combatant stays dead.
func (c *Combatant) Heal(amount int) int {
	if !c.IsAlive() || amount <= 0 {
		return 0
	}
	old := c.HP
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c.HP - old
}

// SpendMana deducts mana, returning false (and deducting nothing) when
// insufficient.
func (c *Combatant) SpendMana(amount int) bool {
	if c.Mana < amount {
		return false
	}
	c.Mana -= amount
	return true
}

// SpendStamina deducts stamina, returning false when insufficient.
func (c *Combatant) SpendStamina(amount int) bool {
	if c.Stamina < amount {
		return false
	}
	c.Stamina -= amount
	return true
}

// RestoreMana adds mana capped at MaxMana.
func (c *Combatant) RestoreMana(amount int) {
	c.Mana += amount
	if c.Mana > c.MaxMana {
		c.Mana = c.MaxMana
	}
}

// RestoreStamina adds stamina capped at MaxStamina.
func (c *Combatant) RestoreStamina(amount int) {
	c.Stamina += amount
	if c.Stamina > c.MaxStamina {
		c.Stamina = c.MaxStamina
	}
}

// TotalGold returns cash plus bank balance.
func (c *Combatant) TotalGold() int {
	return c.Gold + c.BankGold
}

// Pay deducts gold, bank balance first and cash second. Returns false
// (and deducts nothing) when the combined balance is insufficient.
func (c *Combatant) Pay(amount int) bool {
	if amount <= 0 {
		return true
	}
	if c.TotalGold() < amount {
		return false
	}
	if c.BankGold >= amount {
		c.BankGold -= amount
		return true
	}
	amount -= c.BankGold
	c.BankGold = 0
	c.Gold -= amount
	return true
}

// ApplyStatus applies an effect for the given number of rounds. Re-applying
// refreshes the duration to the longer value; it never stacks.
func (c *Combatant) ApplyStatus(e status.Effect, rounds int) {
	if !e.IsValid() || rounds <= 0 {
		return
	}
	if c.Statuses == nil {
		c.Statuses = make(map[status.Effect]int)
	}
	if rounds > c.Statuses[e] {
		c.Statuses[e] = rounds
	}
}

// HasStatus reports whether the effect is currently active.
func (c *Combatant) HasStatus(e status.Effect) bool {
	return c.Statuses[e] > 0
}

// StatusRounds returns the remaining duration of an effect (0 if inactive).
func (c *Combatant) StatusRounds(e status.Effect) int {
	return c.Statuses[e]
}

// RemoveStatus clears an effect immediately.
func (c *Combatant) RemoveStatus(e status.Effect) {
	delete(c.Statuses, e)
}

// ActionPrevented returns the first active effect that blocks the
// combatant from acting this round, if any.
func (c *Combatant) ActionPrevented() (status.Effect, bool) {
	for _, e := range status.All() {
		if c.HasStatus(e) && e.PreventsAction() {
			return e, true
		}
	}
	return 0, false
}

// AddAbsorption grows the damage shield pool. Absorption is explicitly
// additive, unlike duration statuses.
func (c *Combatant) AddAbsorption(amount int) {
	if amount > 0 {
		c.AbsorptionPool += amount
	}
}

// SetCooldown starts an ability cooldown in rounds.
func (c *Combatant) SetCooldown(abilityID string, rounds int) {
	if rounds <= 0 {
		return
	}
	if c.Cooldowns == nil {
		c.Cooldowns = make(map[string]int)
	}
	c.Cooldowns[abilityID] = rounds
}

// CooldownLeft returns the rounds remaining before an ability is usable.
func (c *Combatant) CooldownLeft(abilityID string) int {
	return c.Cooldowns[abilityID]
}

// TickCooldowns decrements every active cooldown by one round.
func (c *Combatant) TickCooldowns() {
	for id, left := range c.Cooldowns {
		if left <= 1 {
			delete(c.Cooldowns, id)
		} else {
			c.Cooldowns[id] = left - 1
		}
	}
}

// ClassDef returns the class definition driving swings / regen / targeting.
func (c *Combatant) ClassDef() *class.Definition {
	return class.GetDefinition(c.Class)
}

// String returns a formatted string representation of the combatant
func (c *Combatant) String() string {
	return fmt.Sprintf("%s (Level %d %s, %d/%d HP)", c.Name, c.Level, c.Kind, c.HP, c.MaxHP)
}

// Modifier calculates the D&D-style stat modifier using floor division.
// Examples: 8=-1, 10=0, 12=+1, 14=+2, 18=+4
func Modifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	return (diff - 1) / 2
}

// DexterityMod returns the dexterity modifier
func (c *Combatant) DexterityMod() int {
	return Modifier(c.Dexterity)
}

// StrengthMod returns the strength modifier
func (c *Combatant) StrengthMod() int {
	return Modifier(c.Strength)
}

// ConstitutionMod returns the constitution modifier
func (c *Combatant) ConstitutionMod() int {
	return Modifier(c.Constitution)
}

// WisdomMod returns the wisdom modifier
func (c *Combatant) WisdomMod() int {
	return Modifier(c.Wisdom)
}

// IntelligenceMod returns the intelligence modifier
func (c *Combatant) IntelligenceMod() int {
	return Modifier(c.Intelligence)
}
