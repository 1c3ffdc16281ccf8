// Package combat implements the turn-based encounter engine: the round
// loop, action resolution, damage formulas, monster targeting, status
// ticking, and the reward and death stages. Encounters mutate combatant
// snapshots in place and hand back a CombatResult; persisting surviving
// changes is the caller's job.
package combat

import "github.com/google/uuid"

// Outcome classifies how an encounter ended.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomePlayerDied
	OutcomePlayerEscaped
	OutcomeStalemate
	OutcomeInterrupted
)

// String returns the display name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "Victory"
	case OutcomePlayerDied:
		return "Player Died"
	case OutcomePlayerEscaped:
		return "Player Escaped"
	case OutcomeStalemate:
		return "Stalemate"
	case OutcomeInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// Style hints at how a log line should be rendered. The engine attaches
// style, rendering is the emitter's problem.
type Style int

const (
	StyleNormal Style = iota
	StyleDamage
	StyleHeal
	StyleCritical
	StyleStatus
	StyleDeath
	StyleReward
	StyleSystem
)

// LogEntry is one line of the combat log.
type LogEntry struct {
	Message string
	Style   Style
}

// ResurrectionChoice selects the death branch a dead player takes.
type ResurrectionChoice int

const (
	ResurrectAcceptDeath ResurrectionChoice = iota
	ResurrectDivineIntervention
	ResurrectTemplePayment
	ResurrectDarkBargain
)

// CombatResult is the single artifact an encounter hands back. It is
// created at encounter start and mutated throughout.
type CombatResult struct {
	ID      uuid.UUID
	Outcome Outcome
	Log     []LogEntry
	Rounds  int

	// Totals from the player's perspective
	DamageDealt int
	DamageTaken int

	DefeatedMonsters []string
	XPEarned         int
	GoldEarned       int
	Drops            []string

	// Death branch results
	GoldSpent              int
	XPLost                 int
	GoldLost               int
	ItemLost               bool
	ShouldReturnToTemple   bool
	UsedDivineIntervention bool
	TookDarkBargain        bool
}

// NewCombatResult creates an empty result with a fresh encounter ID.
func NewCombatResult() *CombatResult {
	return &CombatResult{
		ID:      uuid.New(),
		Outcome: OutcomeInterrupted,
	}
}

// AddLog appends a log entry.
func (r *CombatResult) AddLog(message string, style Style) {
	r.Log = append(r.Log, LogEntry{Message: message, Style: style})
}

// AddDefeated records a defeated monster. The encounter state guards
// against recording the same monster twice.
func (r *CombatResult) AddDefeated(name string) {
	r.DefeatedMonsters = append(r.DefeatedMonsters, name)
}
