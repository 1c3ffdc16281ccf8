package combat

import (
	"strings"
	"testing"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

// scriptProvider plays back a fixed list of player actions, then keeps
// attacking. The resurrection choice is fixed up front.
type scriptProvider struct {
	actions []Action
	choice  ResurrectionChoice
}

func (p *scriptProvider) GetAction(actor *combatant.Combatant, ctx *TurnContext) Action {
	if len(p.actions) == 0 {
		return NewAction(ActionAttack)
	}
	action := p.actions[0]
	p.actions = p.actions[1:]
	return action
}

func (p *scriptProvider) ChooseResurrection(player *combatant.Combatant, templeCost int) ResurrectionChoice {
	return p.choice
}

func testEngine(roller dice.Roller, provider ActionProvider, abilities AbilitySystem) *Engine {
	return NewEngine(config.Default(), roller, provider, abilities, nil, nil)
}

func testPlayer(cls class.Class, level int) *combatant.Combatant {
	p := combatant.New("Hero", combatant.KindPlayer, cls, level)
	p.MaxHP = 100
	p.HP = 100
	p.MaxMana = 50
	p.Mana = 50
	p.MaxStamina = 100
	p.Stamina = 100
	return p
}

func testMonster(name string, hp int) *combatant.Combatant {
	m := combatant.New(name, combatant.KindMonster, "", 1)
	m.MaxHP = hp
	m.HP = hp
	m.MaxStamina = 20
	m.Stamina = 20
	return m
}

func healerAbilities() AbilitySystem {
	registry := spellbook.NewRegistry()
	registry.Add(&spellbook.Spell{
		ID:       "mend",
		Name:     "Mend",
		ManaCost: 5,
		Effects: []spellbook.Effect{
			{Kind: spellbook.EffectHeal, Target: spellbook.TargetAlly, Amount: 20},
		},
	})
	return spellbook.NewCaster(registry)
}

func logContains(result *CombatResult, fragment string) bool {
	for _, entry := range result.Log {
		if strings.Contains(entry.Message, fragment) {
			return true
		}
	}
	return false
}

func countLogContaining(result *CombatResult, fragment string) int {
	count := 0
	for _, entry := range result.Log {
		if strings.Contains(entry.Message, fragment) {
			count++
		}
	}
	return count
}

func TestInvalidActionFallsBackToAttack(t *testing.T) {
	// The provider keeps returning an out-of-range target; after the
	// reprompt limit the engine swings anyway so the fight progresses.
	bad := Action{Kind: ActionAttack, TargetIndex: 99, AllyIndex: -1}
	provider := &scriptProvider{actions: []Action{bad, bad, bad, bad, bad, bad, bad}}

	e := testEngine(dice.NewScript(100, 19, 5, 4), provider, nil)
	player := testPlayer(class.Warrior, 1)
	wolf := testMonster("Wolf", 50)
	st := e.newState(player, []*combatant.Combatant{wolf}, nil)

	e.takeTurn(st, player)

	if wolf.HP != 39 {
		t.Errorf("wolf HP = %d, expected 39 after the fallback attack", wolf.HP)
	}
}
