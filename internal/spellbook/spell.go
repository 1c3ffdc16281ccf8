// Package spellbook provides spell definitions and the casting system for magic
// used during combat encounters.
package spellbook

import (
	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/status"
)

// EffectKind represents the type of effect a spell has.
type EffectKind string

const (
	EffectDamage      EffectKind = "damage"
	EffectHeal        EffectKind = "heal"
	EffectHealPercent EffectKind = "heal_percent"
	EffectAbsorb      EffectKind = "absorb"  // Shield that soaks damage before HP
	EffectStatus      EffectKind = "status"  // Apply a named condition
	EffectCleanse     EffectKind = "cleanse" // Remove harmful conditions
	EffectDrain       EffectKind = "drain"   // Damage enemy, heal caster for half
)

// TargetKind represents what a spell effect can target.
type TargetKind string

const (
	TargetSelf       TargetKind = "self"
	TargetEnemy      TargetKind = "enemy"
	TargetAlly       TargetKind = "ally"
	TargetAllEnemies TargetKind = "all_enemies"
)

// Effect represents a single effect that a spell applies.
type Effect struct {
	Kind     EffectKind
	Target   TargetKind
	Amount   int           // Flat amount, used as fallback when Dice is empty
	Dice     string        // Dice notation for the effect (e.g. "2d6+3")
	Status   status.Effect // Condition applied when Kind is EffectStatus
	Duration int           // Rounds for timed effects
}

// Spell represents a castable spell with its properties.
type Spell struct {
	ID             string
	Name           string
	Description    string
	ManaCost       int
	StaminaCost    int
	Cooldown       int  // Rounds between casts (0 = no cooldown)
	Level          int  // Minimum class level to cast
	MonsterOnly    bool // Monster ability; never castable or known by players
	AllowedClasses []class.Class
	Effects        []Effect
}

// AllowedFor returns true if the specified class can cast this spell.
// If AllowedClasses is empty, the spell is available to all classes.
func (s *Spell) AllowedFor(c class.Class) bool {
	if len(s.AllowedClasses) == 0 {
		return true
	}
	for _, allowed := range s.AllowedClasses {
		if allowed == c {
			return true
		}
	}
	return false
}

// IsOffensive returns true if the spell has enemy-targeted effects.
func (s *Spell) IsOffensive() bool {
	for _, effect := range s.Effects {
		if effect.Target == TargetEnemy || effect.Target == TargetAllEnemies {
			return true
		}
	}
	return false
}

// IsHealing returns true if the spell restores hit points.
func (s *Spell) IsHealing() bool {
	for _, effect := range s.Effects {
		if effect.Kind == EffectHeal || effect.Kind == EffectHealPercent {
			return true
		}
	}
	return false
}

// TargetsAllEnemies returns true if the spell strikes every living enemy at once.
func (s *Spell) TargetsAllEnemies() bool {
	for _, effect := range s.Effects {
		if effect.Target == TargetAllEnemies {
			return true
		}
	}
	return false
}

// HasStatusEffect returns true if the spell applies the named condition.
func (s *Spell) HasStatusEffect(e status.Effect) bool {
	for _, effect := range s.Effects {
		if effect.Kind == EffectStatus && effect.Status == e {
			return true
		}
	}
	return false
}
