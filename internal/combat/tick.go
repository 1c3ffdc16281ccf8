package combat

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/status"
)

// roundStart runs the status ticks for every living combatant before any
// action is requested: damage over time, duration decrement, removal at
// zero. Tick order is player, teammates, monsters, each in slice order,
// with effects in declaration order so replays are deterministic.
func (e *Engine) roundStart(st *encounterState) {
	for _, c := range st.turnOrder() {
		if !c.IsAlive() {
			continue
		}
		e.tickStatuses(st, c)
	}
}

func (st *encounterState) turnOrder() []*combatant.Combatant {
	order := make([]*combatant.Combatant, 0, 1+len(st.allies)+len(st.monsters))
	order = append(order, st.player)
	order = append(order, st.allies...)
	order = append(order, st.monsters...)
	return order
}

func (e *Engine) tickStatuses(st *encounterState, c *combatant.Combatant) {
	for _, effect := range status.All() {
		rounds := c.StatusRounds(effect)
		if rounds <= 0 {
			continue
		}

		def := effect.Def()
		if def.DamagePerRound != "" {
			damage := e.roller.Notation(def.DamagePerRound, 0)
			if damage > 0 {
				damage = e.guardLethal(st, c, damage)
			}
			if damage > 0 {
				dealt := c.TakeDamage(damage)
				if c == st.player {
					st.result.DamageTaken += dealt
				}
				e.say(st, fmt.Sprintf("%s suffers %d damage from being %s.", c.Name, damage, def.Name), StyleStatus)
				if !c.IsAlive() {
					e.say(st, fmt.Sprintf("%s succumbs to the %s!", c.Name, def.Name), StyleDeath)
					if c == st.player {
						st.killer = def.Name
					}
					if c.Kind == combatant.KindMonster && !st.defeated[c] {
						st.defeated[c] = true
						st.result.AddDefeated(c.Name)
					}
					break
				}
			}
		}

		if rounds <= 1 {
			c.RemoveStatus(effect)
			e.say(st, fmt.Sprintf("%s is no longer %s.", c.Name, def.Name), StyleStatus)
		} else {
			c.Statuses[effect] = rounds - 1
		}
	}
}

// roundEnd runs the end-of-round decay: temporary bonus expiry, Defending
// clear, cooldown decrement, and class-based resource regeneration.
func (e *Engine) roundEnd(st *encounterState) {
	for _, c := range st.turnOrder() {
		if !c.IsAlive() {
			continue
		}

		if c.TempAttackDur > 0 {
			c.TempAttackDur--
			if c.TempAttackDur == 0 {
				c.TempAttackBonus = 0
			}
		}
		if c.TempDefenseDur > 0 {
			c.TempDefenseDur--
			if c.TempDefenseDur == 0 {
				c.TempDefenseBonus = 0
			}
		}

		c.RemoveStatus(status.Defending)
		c.TickCooldowns()

		def := c.ClassDef()
		c.RestoreStamina(def.StaminaRegen)
		c.RestoreMana(def.ManaRegen)
	}
}
