package combat

import (
	"fmt"
	"math"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/logger"
)

// resolve runs the post-encounter stage: rewards on victory, the death
// branch on defeat, then the one-way sinks. Sink failures are logged,
// never surfaced mid-combat.
func (e *Engine) resolve(st *encounterState) {
	switch st.result.Outcome {
	case OutcomeVictory:
		e.awardRewards(st)
	case OutcomePlayerDied:
		e.handleDeath(st)
	case OutcomePlayerEscaped, OutcomeStalemate, OutcomeInterrupted:
		// No rewards for running or standing around.
	}

	if err := e.sink.TrackCombat(st.result); err != nil {
		logger.Error("failed to track combat", "id", st.result.ID, "error", err)
	}
	if st.player.Kind == combatant.KindPlayer {
		if err := e.sink.AutoSave(st.player); err != nil {
			logger.Error("failed to autosave player", "player", st.player.Name, "error", err)
		}
	}

	logger.Info("encounter resolved",
		"id", st.result.ID,
		"outcome", st.result.Outcome.String(),
		"rounds", st.result.Rounds,
		"xp", st.result.XPEarned,
		"gold", st.result.GoldEarned)
}

// awardRewards computes XP and gold through the multiplier chain in its
// fixed order: event, difficulty, spouse, divine favor, team split. Every
// intermediate value is clamped non-negative.
func (e *Engine) awardRewards(st *encounterState) {
	baseXP, baseGold := 0, 0
	for _, m := range st.monsters {
		if st.defeated[m] {
			baseXP += m.Experience
			baseGold += m.Gold
		}
	}

	xp := float64(baseXP) * e.cfg.Rewards.XPMultiplier
	gold := float64(baseGold) * e.cfg.Rewards.GoldMultiplier

	xp *= e.cfg.Rewards.EventMultiplier
	gold *= e.cfg.Rewards.EventMultiplier

	xp *= e.cfg.Combat.DifficultyMultiplier
	gold *= e.cfg.Combat.DifficultyMultiplier

	if st.player.Married {
		xp *= 1 + e.cfg.Rewards.SpouseBonus
	}
	if st.player.DivineFavor {
		xp *= 1 + e.cfg.Rewards.DivineBonus
		gold *= 1 + e.cfg.Rewards.DivineBonus
	}

	share := 1 + len(st.allies)
	xp /= float64(share)
	gold /= float64(share)

	finalXP := clampNonNegative(int(math.Round(xp)))
	finalGold := clampNonNegative(int(math.Round(gold)))

	st.result.XPEarned = finalXP
	st.result.GoldEarned = finalGold

	e.say(st, fmt.Sprintf("Victory! %s earns %d experience and %d gold.", st.player.Name, finalXP, finalGold), StyleReward)

	st.player.Gold += finalGold
	for _, info := range st.player.GainExperience(finalXP) {
		e.say(st, fmt.Sprintf("%s reaches level %d! (+%d HP, +%d mana)",
			st.player.Name, info.NewLevel, info.HPGain, info.ManaGain), StyleReward)
	}

	for _, ally := range st.allies {
		if ally.IsAlive() {
			ally.Gold += finalGold
			ally.GainExperience(finalXP)
		}
	}

	e.rollDrops(st)
}

// rollDrops rolls an equipment drop per defeated monster. The snapshot
// carries the drop chance and the eligible loot from its definition.
func (e *Engine) rollDrops(st *encounterState) {
	for _, m := range st.monsters {
		if !st.defeated[m] || len(m.Loot) == 0 {
			continue
		}
		if !e.roller.Chance(m.DropChance) {
			continue
		}

		item := m.Loot[0]
		if len(m.Loot) > 1 {
			item = m.Loot[e.roller.Intn(len(m.Loot))]
		}
		st.result.Drops = append(st.result.Drops, item)
		e.say(st, fmt.Sprintf("%s dropped %s!", m.Name, item), StyleReward)
	}
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
