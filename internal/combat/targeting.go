package combat

import (
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/status"
)

// targetWeight computes the lottery weight monsters use when deciding who
// to hit. Tanks and the wounded draw attacks; defending draws more.
func targetWeight(c *combatant.Combatant) int {
	weight := c.ClassDef().TargetWeight
	weight += c.ArmorPower
	weight += c.MaxHP / 10

	// The wounded look like easy kills.
	hpPct := c.HPPercent()
	switch {
	case hpPct <= 25:
		weight += 30
	case hpPct <= 50:
		weight += 15
	}

	if c.HasStatus(status.Defending) {
		weight += 20
	}
	return weight
}

// chooseTarget runs the weighted lottery over the living defenders. The
// draw is a single Intn over the cumulative weight sum, so it is
// deterministic for a fixed roller state and candidate set. Dead
// combatants are never candidates; an empty or zero-weight set falls
// back to the primary defender.
func (e *Engine) chooseTarget(primary *combatant.Combatant, defenders []*combatant.Combatant) *combatant.Combatant {
	var candidates []*combatant.Combatant
	total := 0
	for _, d := range defenders {
		if !d.IsAlive() {
			continue
		}
		candidates = append(candidates, d)
		total += targetWeight(d)
	}

	if len(candidates) == 0 || total <= 0 {
		return primary
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	draw := e.roller.Intn(total)
	running := 0
	for _, c := range candidates {
		running += targetWeight(c)
		if draw < running {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// randomLiving draws uniformly among the living members of the slice.
// Returns nil when nobody is left standing.
func (e *Engine) randomLiving(pool []*combatant.Combatant) *combatant.Combatant {
	var living []*combatant.Combatant
	for _, c := range pool {
		if c.IsAlive() {
			living = append(living, c)
		}
	}
	switch len(living) {
	case 0:
		return nil
	case 1:
		return living[0]
	}
	return living[e.roller.Intn(len(living))]
}

// livingCount returns how many members of the slice are still standing.
func livingCount(pool []*combatant.Combatant) int {
	count := 0
	for _, c := range pool {
		if c.IsAlive() {
			count++
		}
	}
	return count
}
