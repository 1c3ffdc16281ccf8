package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

// consoleProvider reads the player's actions from a terminal.
type consoleProvider struct {
	scanner *bufio.Scanner
	out     io.Writer
	caster  *spellbook.Caster
}

func newConsoleProvider(in io.Reader, out io.Writer, caster *spellbook.Caster) *consoleProvider {
	return &consoleProvider{
		scanner: bufio.NewScanner(in),
		out:     out,
		caster:  caster,
	}
}

var actionWords = map[string]combat.ActionKind{
	"attack":  combat.ActionAttack,
	"a":       combat.ActionAttack,
	"defend":  combat.ActionDefend,
	"d":       combat.ActionDefend,
	"heal":    combat.ActionHeal,
	"cast":    combat.ActionCastSpell,
	"c":       combat.ActionCastSpell,
	"retreat": combat.ActionRetreat,
	"run":     combat.ActionRetreat,
	"beg":     combat.ActionBegForMercy,
	"power":   combat.ActionPowerAttack,
	"precise": combat.ActionPreciseStrike,
	"stab":    combat.ActionBackstab,
	"smite":   combat.ActionSmite,
	"soul":    combat.ActionSoulStrike,
	"disarm":  combat.ActionDisarm,
	"taunt":   combat.ActionTaunt,
	"hide":    combat.ActionHide,
	"shoot":   combat.ActionRangedAttack,
	"rage":    combat.ActionRage,
	"berserk": combat.ActionFightToDeath,
}

// GetAction prompts until a parseable command comes in. The engine
// validates the action itself and re-prompts on rule violations.
func (p *consoleProvider) GetAction(actor *combatant.Combatant, ctx *combat.TurnContext) combat.Action {
	p.printStatus(actor, ctx)

	for {
		fmt.Fprint(p.out, "> ")
		if !p.scanner.Scan() {
			// Input is gone; swing so the encounter can finish.
			return combat.NewAction(combat.ActionAttack)
		}

		action, err := p.parse(strings.TrimSpace(p.scanner.Text()))
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		return action
	}
}

func (p *consoleProvider) printStatus(actor *combatant.Combatant, ctx *combat.TurnContext) {
	fmt.Fprintf(p.out, "\n--- Round %d ---\n", ctx.Round)
	fmt.Fprintf(p.out, "%s: %d/%d HP, %d mana, %d stamina\n",
		actor.Name, actor.HP, actor.MaxHP, actor.Mana, actor.Stamina)
	for i, m := range ctx.Monsters {
		state := fmt.Sprintf("%d/%d HP", m.HP, m.MaxHP)
		if !m.IsAlive() {
			state = "dead"
		}
		fmt.Fprintf(p.out, "  %d) %s (%s)\n", i+1, m.Name, state)
	}
	if p.caster != nil {
		var known []string
		for _, spell := range p.caster.Known(actor) {
			known = append(known, spell.ID)
		}
		if len(known) > 0 {
			fmt.Fprintf(p.out, "Spells: %s\n", strings.Join(known, ", "))
		}
	}
}

func (p *consoleProvider) parse(line string) (combat.Action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return combat.Action{}, fmt.Errorf("enter a command (attack, defend, cast, retreat, ...)")
	}

	kind, ok := actionWords[fields[0]]
	if !ok {
		return combat.Action{}, fmt.Errorf("unknown command %q", fields[0])
	}
	action := combat.NewAction(kind)

	args := fields[1:]
	if kind == combat.ActionCastSpell {
		if len(args) == 0 {
			return combat.Action{}, fmt.Errorf("cast what? (cast <spell> [target])")
		}
		action.AbilityID = args[0]
		args = args[1:]
	}

	if len(args) > 0 {
		if args[0] == "all" {
			action.TargetAll = true
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return combat.Action{}, fmt.Errorf("bad target %q", args[0])
			}
			// Heals point at the ally list, everything else at monsters.
			if kind == combat.ActionHeal {
				action.AllyIndex = n - 1
			} else {
				action.TargetIndex = n - 1
			}
		}
	}
	return action, nil
}

// ChooseResurrection walks a dead player through the options their
// character can actually afford.
func (p *consoleProvider) ChooseResurrection(player *combatant.Combatant, templeCost int) combat.ResurrectionChoice {
	fmt.Fprintf(p.out, "\nYou have died. Choose your fate:\n")
	if player.DivineFavor {
		fmt.Fprintln(p.out, "  divine - call in your god's favor")
	}
	fmt.Fprintf(p.out, "  temple - resurrection at the temple (%d gold, you have %d)\n",
		templeCost, player.TotalGold())
	fmt.Fprintln(p.out, "  bargain - accept a dark bargain")
	fmt.Fprintln(p.out, "  accept - accept death")

	for {
		fmt.Fprint(p.out, "> ")
		if !p.scanner.Scan() {
			return combat.ResurrectAcceptDeath
		}
		switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
		case "divine":
			return combat.ResurrectDivineIntervention
		case "temple":
			return combat.ResurrectTemplePayment
		case "bargain", "dark":
			return combat.ResurrectDarkBargain
		case "accept", "die":
			return combat.ResurrectAcceptDeath
		default:
			fmt.Fprintln(p.out, "Choose divine, temple, bargain, or accept.")
		}
	}
}
