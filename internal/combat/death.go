package combat

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/logger"
)

// handleDeath runs the resurrection branch after the player falls. Each
// branch has its own cost and restoration; a rejected or unavailable
// branch falls through to the permanent death penalties.
func (e *Engine) handleDeath(st *encounterState) {
	player := st.player

	killer := st.killer
	if killer == "" {
		killer = "the monsters"
	}
	e.say(st, fmt.Sprintf("%s has fallen in battle.", player.Name), StyleDeath)

	if err := e.sink.WriteDeathNews(player.Name, killer); err != nil {
		logger.Error("failed to write death news", "player", player.Name, "error", err)
	}

	templeCost := e.cfg.Death.TempleBaseCost + player.Level*e.cfg.Death.TempleCostPerLevel
	choice := e.provider.ChooseResurrection(player, templeCost)

	switch choice {
	case ResurrectDivineIntervention:
		if player.DivineFavor {
			player.DivineFavor = false
			player.HP = player.MaxHP / 2
			player.Alive = true
			st.result.UsedDivineIntervention = true
			e.say(st, fmt.Sprintf("The gods reach down and pull %s back from the brink!", player.Name), StyleStatus)
			return
		}
		e.say(st, "The gods are silent.", StyleSystem)

	case ResurrectTemplePayment:
		if player.Pay(templeCost) {
			player.HP = player.MaxHP * e.cfg.Death.TempleHealPercent / 100
			player.Alive = true
			st.result.GoldSpent = templeCost
			st.result.ShouldReturnToTemple = true
			e.say(st, fmt.Sprintf("The temple priests accept %d gold and breathe life back into %s.", templeCost, player.Name), StyleStatus)
			return
		}
		e.say(st, fmt.Sprintf("The temple demands %d gold. %s cannot pay.", templeCost, player.Name), StyleSystem)

	case ResurrectDarkBargain:
		player.HP = player.MaxHP / 2
		player.Alive = true
		player.Alignment = combatant.AlignEvil
		st.result.TookDarkBargain = true
		st.result.XPLost = player.LoseExperiencePercent(e.cfg.Death.XPPenaltyPercent * 2)
		e.say(st, fmt.Sprintf("A voice from below offers %s a bargain. It is accepted. Something is lost.", player.Name), StyleDeath)
		return

	case ResurrectAcceptDeath:
		// Straight to the penalties.
	}

	e.applyDeathPenalties(st)
}

// applyDeathPenalties takes the permanent losses and leaves the player at
// 1 HP for the temple respawn.
func (e *Engine) applyDeathPenalties(st *encounterState) {
	player := st.player

	st.result.XPLost = player.LoseExperiencePercent(e.cfg.Death.XPPenaltyPercent)

	goldLost := player.Gold * e.cfg.Death.GoldPenaltyPercent / 100
	player.Gold -= goldLost
	st.result.GoldLost = goldLost

	if e.roller.Chance(e.cfg.Death.ItemLossChance) {
		st.result.ItemLost = true
		e.say(st, fmt.Sprintf("Scavengers pick %s's body clean of a prized possession.", player.Name), StyleDeath)
	}

	player.HP = 1
	player.Alive = true
	st.result.ShouldReturnToTemple = true

	e.say(st, fmt.Sprintf("%s wakes at the temple, weaker for the ordeal: %d experience and %d gold lost.",
		player.Name, st.result.XPLost, goldLost), StyleDeath)
}
