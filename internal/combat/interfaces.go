package combat

import (
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

// TurnContext is what an ActionProvider sees when asked for a decision.
// Slices are the live encounter slices; providers must not mutate them.
type TurnContext struct {
	Round    int
	Player   *combatant.Combatant
	Allies   []*combatant.Combatant
	Monsters []*combatant.Combatant
}

// LivingMonsters returns the indexes of monsters still standing.
func (ctx *TurnContext) LivingMonsters() []int {
	var living []int
	for i, m := range ctx.Monsters {
		if m.IsAlive() {
			living = append(living, i)
		}
	}
	return living
}

// ActionProvider supplies decisions for a combatant's turn. Implementations
// may block (human input) or return immediately (AI).
type ActionProvider interface {
	// GetAction returns the actor's chosen action for this turn. An
	// invalid action causes a re-request for interactive players and a
	// default basic attack for everyone else.
	GetAction(actor *combatant.Combatant, ctx *TurnContext) Action

	// ChooseResurrection picks the death branch when the player dies.
	ChooseResurrection(player *combatant.Combatant, templeCost int) ResurrectionChoice
}

// Emitter receives combat log lines as they happen, for live display.
// Everything emitted is also collected on the CombatResult.
type Emitter interface {
	Emit(message string, style Style)
}

// AbilitySystem resolves spell and ability casts. The engine interprets
// only the returned outcome; validation and resource spending happen
// inside the implementation.
type AbilitySystem interface {
	Cast(roller dice.Roller, caster *combatant.Combatant, abilityID string) (*spellbook.Outcome, error)
	Known(caster *combatant.Combatant) []*spellbook.Spell
}

// EventSink receives one-way notifications at fixed resolution points.
// The engine never depends on sink results; failures are logged after
// the encounter resolves.
type EventSink interface {
	TrackCombat(result *CombatResult) error
	WriteDeathNews(victim, slayer string) error
	AutoSave(player *combatant.Combatant) error
}

// NopEmitter discards all output. Used by tests and the balance simulator.
type NopEmitter struct{}

func (NopEmitter) Emit(message string, style Style) {}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) TrackCombat(result *CombatResult) error     { return nil }
func (NopSink) WriteDeathNews(victim, slayer string) error { return nil }
func (NopSink) AutoSave(player *combatant.Combatant) error { return nil }
