package combat

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/logger"
)

// Engine drives encounters. One engine can run many encounters; each
// encounter's randomness comes from the single roller, which is never
// re-seeded, so a fixed seed replays identically.
type Engine struct {
	cfg       *config.Config
	roller    dice.Roller
	provider  ActionProvider
	abilities AbilitySystem
	emitter   Emitter
	sink      EventSink
}

// NewEngine creates an encounter engine. A nil emitter or sink gets the
// no-op implementation.
func NewEngine(cfg *config.Config, roller dice.Roller, provider ActionProvider, abilities AbilitySystem, emitter Emitter, sink EventSink) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		cfg:       cfg,
		roller:    roller,
		provider:  provider,
		abilities: abilities,
		emitter:   emitter,
		sink:      sink,
	}
}

// encounterState carries all per-encounter flags so nothing leaks between
// encounters.
type encounterState struct {
	player   *combatant.Combatant
	allies   []*combatant.Combatant
	monsters []*combatant.Combatant
	result   *CombatResult

	round   int
	escaped bool
	begged  bool
	done    bool

	killer        string
	defeated      map[*combatant.Combatant]bool
	companionUsed bool
	divineUsed    bool
}

func (e *Engine) newState(player *combatant.Combatant, monsters, allies []*combatant.Combatant) *encounterState {
	return &encounterState{
		player:   player,
		allies:   allies,
		monsters: monsters,
		result:   NewCombatResult(),
		defeated: make(map[*combatant.Combatant]bool),
	}
}

// isOpponent reports whether the combatant fights on the monster side.
// In a duel the opposing player sits in the monster slice.
func (st *encounterState) isOpponent(c *combatant.Combatant) bool {
	for _, m := range st.monsters {
		if m == c {
			return true
		}
	}
	return false
}

// say records a combat log line and emits it for live display.
func (e *Engine) say(st *encounterState, message string, style Style) {
	st.result.AddLog(message, style)
	e.emitter.Emit(message, style)
}

// StartEncounter runs a full encounter of the player (plus teammates)
// against the monsters, returning the only artifact the caller gets. The
// combatant snapshots are mutated in place; persisting surviving changes
// is the caller's responsibility.
func (e *Engine) StartEncounter(player *combatant.Combatant, monsters, teammates []*combatant.Combatant) *CombatResult {
	st := e.newState(player, monsters, teammates)

	logger.Info("encounter started", "id", st.result.ID, "player", player.Name, "monsters", len(monsters))
	for _, m := range monsters {
		e.say(st, fmt.Sprintf("%s appears!", m.Name), StyleSystem)
	}

	e.runRounds(st)
	e.resolve(st)
	return st.result
}

// StartDuel runs a player-versus-player encounter. The defender fights
// back with basic attacks.
func (e *Engine) StartDuel(attacker, defender *combatant.Combatant) *CombatResult {
	st := e.newState(attacker, []*combatant.Combatant{defender}, nil)

	logger.Info("duel started", "id", st.result.ID, "attacker", attacker.Name, "defender", defender.Name)
	e.say(st, fmt.Sprintf("%s challenges %s to a duel!", attacker.Name, defender.Name), StyleSystem)

	e.runRounds(st)
	e.resolve(st)
	return st.result
}

func (e *Engine) runRounds(st *encounterState) {
	for st.round = 1; st.round <= e.cfg.Combat.MaxRounds; st.round++ {
		st.result.Rounds = st.round
		logger.Debug("round start", "round", st.round)

		e.roundStart(st)
		if e.checkTerminal(st) {
			return
		}

		e.takeTurn(st, st.player)
		if e.checkTerminal(st) {
			return
		}

		for _, ally := range st.allies {
			e.takeTurn(st, ally)
			if e.checkTerminal(st) {
				return
			}
		}

		for _, m := range st.monsters {
			e.takeTurn(st, m)
			if e.checkTerminal(st) {
				return
			}
		}

		e.roundEnd(st)
		if e.checkTerminal(st) {
			return
		}
	}

	st.done = true
	st.result.Outcome = OutcomeStalemate
	e.say(st, "Both sides are too exhausted to continue. The fight is a draw.", StyleSystem)
}

// checkTerminal re-checks the terminal conditions; the first true
// condition wins and halts all further processing.
func (e *Engine) checkTerminal(st *encounterState) bool {
	if st.done {
		return true
	}

	if !st.player.IsAlive() {
		st.done = true
		st.result.Outcome = OutcomePlayerDied
		return true
	}
	if st.escaped || st.begged {
		st.done = true
		st.result.Outcome = OutcomePlayerEscaped
		return true
	}
	if livingCount(st.monsters) == 0 {
		st.done = true
		st.result.Outcome = OutcomeVictory
		return true
	}
	return false
}

// maxActionAttempts bounds interactive reprompts so a broken provider
// cannot wedge the encounter.
const maxActionAttempts = 5

// takeTurn requests and resolves one combatant's action. A prevented
// combatant consumes its turn with only a message. Invalid or blocked
// actions are re-requested for the interactive player and replaced with a
// basic attack for AI actors.
func (e *Engine) takeTurn(st *encounterState, actor *combatant.Combatant) {
	if !actor.IsAlive() {
		return
	}

	if effect, prevented := actor.ActionPrevented(); prevented {
		e.say(st, fmt.Sprintf("%s %s and cannot act!", actor.Name, effect.Def().ApplyVerb), StyleStatus)
		return
	}

	ctx := &TurnContext{
		Round:    st.round,
		Player:   st.player,
		Allies:   st.allies,
		Monsters: st.monsters,
	}

	for attempt := 0; attempt < maxActionAttempts; attempt++ {
		var action Action
		if actor == st.player {
			action = e.provider.GetAction(actor, ctx)
		} else if st.isOpponent(actor) {
			action = e.monsterAction(st, actor)
		} else {
			action = e.teammateAction(st, actor)
		}

		err := e.resolveAction(st, actor, action)
		if err == nil {
			return
		}

		if actor != st.player {
			// AI actors never reprompt.
			e.resolveAction(st, actor, NewAction(ActionAttack))
			return
		}
		e.say(st, err.Error(), StyleSystem)
	}

	// The provider kept returning invalid actions; swing to guarantee
	// progress.
	e.resolveAction(st, st.player, NewAction(ActionAttack))
}
