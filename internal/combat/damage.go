package combat

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/logger"
	"github.com/grimhallow/grimhallow/internal/status"
)

// hitResult is the outcome of a single to-hit resolution.
type hitResult struct {
	hit      bool
	critical bool
	roll     int
	dodged   bool
}

// resolveHit rolls a single swing's to-hit check. Natural 20 always hits
// and crits, natural 1 always misses. Otherwise d20 + hit bonus + hitMod
// must meet a defense value built from the target's defence and armor.
func (e *Engine) resolveHit(attacker, defender *combatant.Combatant, hitMod int) hitResult {
	if defender.DodgeNextAttack {
		defender.DodgeNextAttack = false
		return hitResult{dodged: true}
	}

	roll := e.roller.D20()
	if roll == 20 {
		return hitResult{hit: true, critical: true, roll: roll}
	}
	if roll == 1 {
		return hitResult{roll: roll}
	}

	if miss := statusMissChance(attacker); miss > 0 && e.roller.Chance(miss) {
		return hitResult{roll: roll}
	}
	if dodge := statusDodgeChance(defender); dodge > 0 && e.roller.Chance(dodge) {
		return hitResult{roll: roll, dodged: true}
	}

	hitBonus := attacker.Dexterity/4 + attacker.ClassDef().HitBonus(attacker.Level) + hitMod
	defenseValue := 10 + defender.Defence/2 + defender.ArmorPower/2
	return hitResult{hit: roll+hitBonus >= defenseValue, roll: roll}
}

func statusMissChance(c *combatant.Combatant) int {
	total := 0
	for effect := range c.Statuses {
		if c.Statuses[effect] > 0 {
			total += effect.Def().MissChance
		}
	}
	return total
}

func statusDodgeChance(c *combatant.Combatant) int {
	total := 0
	for effect := range c.Statuses {
		if c.Statuses[effect] > 0 {
			total += effect.Def().DodgeChance
		}
	}
	return total
}

// attackPower computes the pre-multiplier attack value for one swing.
func (e *Engine) attackPower(attacker *combatant.Combatant) int {
	weapon := attacker.WeaponPower
	if attacker.Disarmed {
		weapon = 0
	}
	return attacker.Strength + attacker.Level*2 + weapon +
		e.roller.Roll(1, 8) + attacker.TempAttackBonus
}

// attackMultiplier builds the damage multiplier chain in its fixed order:
// rage, stance, blessing, proficiency, critical, alignment, grief, divine
// favor, difficulty.
func (e *Engine) attackMultiplier(attacker, defender *combatant.Combatant, critical bool) float64 {
	mult := 1.0

	if attacker.HasStatus(status.Raging) {
		mult *= status.Raging.Def().DealtMult
	}
	if attacker.HasStatus(status.PowerStance) {
		mult *= status.PowerStance.Def().DealtMult
	}
	if attacker.HasStatus(status.RoyalBlessing) {
		mult *= status.RoyalBlessing.Def().DealtMult
	} else if attacker.HasStatus(status.Blessed) {
		mult *= status.Blessed.Def().DealtMult
	}
	if attacker.HasStatus(status.Weakened) {
		mult *= status.Weakened.Def().DealtMult
	}

	mult *= proficiencyMultiplier(attacker)

	if critical {
		mult *= 2.0
	}

	mult *= alignmentMultiplier(attacker, defender)

	if attacker.Grieving {
		mult *= 0.75
	}
	if attacker.DivineFavor {
		mult *= 1.15
	}
	if attacker.Kind == combatant.KindMonster {
		mult *= e.cfg.Combat.DifficultyMultiplier
	}

	return mult
}

// proficiencyMultiplier scales damage with repeated basic-attack use. One
// tier per 25 uses, capped at four tiers.
func proficiencyMultiplier(attacker *combatant.Combatant) float64 {
	tier := attacker.ProficiencyUses / 25
	if tier > 4 {
		tier = 4
	}
	return 1.0 + 0.05*float64(tier)
}

func alignmentMultiplier(attacker, defender *combatant.Combatant) float64 {
	good := attacker.Alignment == combatant.AlignGood && defender.Alignment == combatant.AlignEvil
	evil := attacker.Alignment == combatant.AlignEvil && defender.Alignment == combatant.AlignGood
	if good || evil {
		return 1.10
	}
	return 1.0
}

// defensePower computes the mitigation value for one incoming swing.
// Shield bearers roll their block chance for a flat bonus.
func (e *Engine) defensePower(defender *combatant.Combatant) (power int, blocked bool) {
	power = defender.Defence + defender.Dexterity/4 + e.roller.Roll(1, 6) +
		defender.ArmorPower + defender.TempDefenseBonus
	if defender.BlockChance > 0 && e.roller.Chance(defender.BlockChance) {
		power += 10
		blocked = true
	}
	return power, blocked
}

// finalizeDamage turns attack and defense values into the damage the
// defender actually takes, applying taken-side multipliers, the plague
// rules, and the Defending stance.
func (e *Engine) finalizeDamage(defender *combatant.Combatant, attack, defense int) int {
	damage := attack - defense
	if damage < 1 {
		damage = 1
	}

	for _, effect := range status.All() {
		if !defender.HasStatus(effect) {
			continue
		}
		if taken := effect.Def().TakenMult; taken != 0 {
			damage = int(float64(damage) * taken)
		}
	}

	// World plague and personal disease: a flat 25% extra when both are
	// active, a small chance of minor extra damage when only the plague
	// is, never both.
	if e.cfg.Combat.WorldPlague {
		if defender.Diseased {
			damage = damage * 125 / 100
		} else if e.roller.Chance(10) {
			damage += e.roller.Roll(1, 4)
		}
	}

	if defender.HasStatus(status.Defending) {
		damage = (damage + 1) / 2
	}

	if damage < 1 {
		damage = 1
	}
	return damage
}

// dealDamage applies final damage to the defender, consulting the death
// preventer chain before damage would be lethal to the player. Returns
// the amount that reached HP.
func (e *Engine) dealDamage(st *encounterState, attacker, defender *combatant.Combatant, damage int) int {
	if !defender.IsAlive() || damage <= 0 {
		return 0
	}

	damage = e.guardLethal(st, defender, damage)
	if damage <= 0 {
		return 0
	}

	dealt := defender.TakeDamage(damage)

	if attacker.Kind == combatant.KindPlayer {
		st.result.DamageDealt += dealt
	}
	if defender.Kind == combatant.KindPlayer {
		st.result.DamageTaken += dealt
	}

	if !defender.IsAlive() {
		e.recordDeath(st, attacker, defender)
	}
	return dealt
}

// guardLethal consults the death preventer chain when damage to the
// player would be lethal. Every damage source, weapon swings, spells,
// and status ticks alike, must pass through here before HP changes.
func (e *Engine) guardLethal(st *encounterState, defender *combatant.Combatant, damage int) int {
	if defender.Kind != combatant.KindPlayer || damage < defender.HP+defender.AbsorptionPool {
		return damage
	}
	if e.preventDeath(st, defender) {
		damage = defender.HP + defender.AbsorptionPool - 1
		if damage < 0 {
			damage = 0
		}
	}
	return damage
}

// preventDeath walks the ordered death-preventer chain. Each preventer
// fires at most once per encounter; any success leaves the player at 1 HP.
func (e *Engine) preventDeath(st *encounterState, player *combatant.Combatant) bool {
	if !st.companionUsed && player.CompanionID != "" {
		st.companionUsed = true
		player.CompanionID = ""
		e.say(st, fmt.Sprintf("%s's companion throws itself in front of the killing blow!", player.Name), StyleStatus)
		logger.Debug("companion sacrifice consumed", "player", player.Name)
		return true
	}

	if !st.divineUsed && player.DivineFavor && e.roller.Chance(25) {
		st.divineUsed = true
		e.say(st, fmt.Sprintf("A divine light surrounds %s, refusing the killing blow!", player.Name), StyleStatus)
		logger.Debug("divine intervention consumed", "player", player.Name)
		return true
	}

	return false
}

// recordDeath logs a kill and tracks defeated monsters exactly once.
func (e *Engine) recordDeath(st *encounterState, attacker, defender *combatant.Combatant) {
	e.say(st, fmt.Sprintf("%s has been slain by %s!", defender.Name, attacker.Name), StyleDeath)

	if defender == st.player {
		st.killer = attacker.Name
	}
	if defender.Kind == combatant.KindMonster && !st.defeated[defender] {
		st.defeated[defender] = true
		st.result.AddDefeated(defender.Name)
	}
}
