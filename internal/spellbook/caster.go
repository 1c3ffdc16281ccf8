package spellbook

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/dice"
)

// EffectResult is a single rolled spell effect ready to be applied.
type EffectResult struct {
	Effect Effect
	Amount int // Rolled damage, healing, or absorption; zero for pure status effects
}

// Outcome is the result of a successful cast. The caller applies each result
// to the appropriate targets.
type Outcome struct {
	Spell   *Spell
	Results []EffectResult
}

// Caster validates and rolls spell casts against a registry. Resource costs
// are spent and cooldowns started here; applying the rolled effects to
// targets is the caller's job.
type Caster struct {
	registry *Registry
}

// NewCaster creates a caster backed by the given registry.
func NewCaster(registry *Registry) *Caster {
	return &Caster{registry: registry}
}

// Registry returns the backing spell registry.
func (ca *Caster) Registry() *Registry {
	return ca.registry
}

// Known returns the spells the combatant's class and level allow.
func (ca *Caster) Known(c *combatant.Combatant) []*Spell {
	return ca.registry.ForCaster(c.Class, c.Level)
}

// Cast checks that the combatant can cast the spell, spends its costs, starts
// its cooldown and rolls every effect. Damage rolls add the caster's
// intelligence modifier; healing rolls add the wisdom modifier.
func (ca *Caster) Cast(roller dice.Roller, caster *combatant.Combatant, spellID string) (*Outcome, error) {
	spell, ok := ca.registry.Get(spellID)
	if !ok {
		return nil, fmt.Errorf("unknown spell %q", spellID)
	}
	if spell.MonsterOnly && caster.Kind != combatant.KindMonster {
		return nil, fmt.Errorf("%s is beyond mortal casting", spell.Name)
	}
	if !spell.AllowedFor(caster.Class) {
		return nil, fmt.Errorf("%s cannot cast %s", caster.Class, spell.Name)
	}
	if caster.Level < spell.Level {
		return nil, fmt.Errorf("%s requires level %d", spell.Name, spell.Level)
	}
	if left := caster.CooldownLeft(spell.ID); left > 0 {
		return nil, fmt.Errorf("%s is on cooldown for %d more rounds", spell.Name, left)
	}
	if caster.Mana < spell.ManaCost {
		return nil, fmt.Errorf("not enough mana for %s (need %d, have %d)",
			spell.Name, spell.ManaCost, caster.Mana)
	}
	if caster.Stamina < spell.StaminaCost {
		return nil, fmt.Errorf("not enough stamina for %s (need %d, have %d)",
			spell.Name, spell.StaminaCost, caster.Stamina)
	}

	caster.SpendMana(spell.ManaCost)
	caster.SpendStamina(spell.StaminaCost)
	if spell.Cooldown > 0 {
		caster.SetCooldown(spell.ID, spell.Cooldown)
	}

	outcome := &Outcome{Spell: spell}
	for _, effect := range spell.Effects {
		outcome.Results = append(outcome.Results, EffectResult{
			Effect: effect,
			Amount: ca.rollAmount(roller, caster, effect),
		})
	}
	return outcome, nil
}

func (ca *Caster) rollAmount(roller dice.Roller, caster *combatant.Combatant, effect Effect) int {
	switch effect.Kind {
	case EffectDamage, EffectDrain:
		return ca.roll(roller, effect, caster.IntelligenceMod())
	case EffectHeal, EffectAbsorb:
		return ca.roll(roller, effect, caster.WisdomMod())
	case EffectHealPercent:
		return effect.Amount
	default:
		return 0
	}
}

func (ca *Caster) roll(roller dice.Roller, effect Effect, modifier int) int {
	var amount int
	if effect.Dice != "" {
		amount = roller.Notation(effect.Dice, modifier)
	} else {
		amount = effect.Amount + modifier
	}
	if amount < 1 {
		amount = 1
	}
	return amount
}
