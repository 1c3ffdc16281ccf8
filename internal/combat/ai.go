package combat

import (
	"github.com/grimhallow/grimhallow/internal/combatant"
)

// teammateAction decides for an allied NPC: heal the player when they are
// badly hurt and a healing spell is ready, otherwise attack.
func (e *Engine) teammateAction(st *encounterState, ally *combatant.Combatant) Action {
	if e.abilities != nil && st.player.IsAlive() && st.player.HPPercent() < 40 {
		for _, spell := range e.abilities.Known(ally) {
			if !spell.IsHealing() {
				continue
			}
			if ally.Mana < spell.ManaCost || ally.Stamina < spell.StaminaCost {
				continue
			}
			if ally.CooldownLeft(spell.ID) > 0 {
				continue
			}
			action := NewAction(ActionCastSpell)
			action.AbilityID = spell.ID
			return action
		}
	}
	return NewAction(ActionAttack)
}

// monsterAction decides for a monster: roll its ability chance to use a
// registered ability instead of a basic attack. The basic attack picks
// its victim through the weighted target lottery.
func (e *Engine) monsterAction(st *encounterState, m *combatant.Combatant) Action {
	if e.abilities != nil && len(m.Abilities) > 0 && m.AbilityChance > 0 && e.roller.Chance(m.AbilityChance) {
		id := m.Abilities[0]
		if len(m.Abilities) > 1 {
			id = m.Abilities[e.roller.Intn(len(m.Abilities))]
		}
		action := NewAction(ActionUseAbility)
		action.AbilityID = id
		return action
	}
	return NewAction(ActionAttack)
}

// AIProvider drives the player with the same logic monsters and
// teammates use. The balance simulator and AI-versus-AI arena runs use
// it in place of human input.
type AIProvider struct{}

// GetAction retreats when badly hurt, otherwise attacks the weakest
// living monster to thin the field.
func (AIProvider) GetAction(actor *combatant.Combatant, ctx *TurnContext) Action {
	if actor.HPPercent() < 20 {
		return NewAction(ActionRetreat)
	}

	living := ctx.LivingMonsters()
	if len(living) == 0 {
		return NewAction(ActionAttack)
	}
	weakest := living[0]
	for _, i := range living[1:] {
		if ctx.Monsters[i].HP < ctx.Monsters[weakest].HP {
			weakest = i
		}
	}
	return AttackAction(weakest)
}

// ChooseResurrection pays the temple when the gold is there, otherwise
// accepts death.
func (AIProvider) ChooseResurrection(player *combatant.Combatant, templeCost int) ResurrectionChoice {
	if player.TotalGold() >= templeCost {
		return ResurrectTemplePayment
	}
	return ResurrectAcceptDeath
}
