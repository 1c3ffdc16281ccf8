package combat

import (
	"fmt"

	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/spellbook"
	"github.com/grimhallow/grimhallow/internal/status"
)

// resolveAction maps a chosen action onto the calculators and trackers.
// A returned error means the action did not happen and the turn was not
// consumed: invalid input (bad target, unknown kind) or a blocked action
// (insufficient resources, cooldown).
func (e *Engine) resolveAction(st *encounterState, actor *combatant.Combatant, action Action) error {
	switch action.Kind {
	case ActionAttack:
		return e.doBasicAttack(st, actor, action, false)
	case ActionRangedAttack:
		return e.doBasicAttack(st, actor, action, true)
	case ActionDefend:
		actor.ApplyStatus(status.Defending, 1)
		e.say(st, fmt.Sprintf("%s %s.", actor.Name, status.Defending.Def().ApplyVerb), StyleStatus)
		return nil
	case ActionHeal:
		return e.doFirstAid(st, actor, action)
	case ActionCastSpell, ActionUseAbility:
		return e.doCast(st, actor, action)
	case ActionRetreat:
		return e.doRetreat(st, actor)
	case ActionBegForMercy:
		return e.doBeg(st, actor)
	case ActionPowerAttack:
		return e.doStaminaStrike(st, actor, action, "power_attack", 15, 0, strikeOpts{hitMod: -2, mult: 1.75})
	case ActionPreciseStrike:
		return e.doStaminaStrike(st, actor, action, "precise_strike", 10, 0, strikeOpts{hitMod: 5, mult: 1.0})
	case ActionBackstab:
		return e.doBackstab(st, actor, action)
	case ActionSmite:
		return e.doSmite(st, actor, action)
	case ActionSoulStrike:
		return e.doSoulStrike(st, actor, action)
	case ActionDisarm:
		return e.doDisarm(st, actor, action)
	case ActionTaunt:
		return e.doTaunt(st, actor, action)
	case ActionHide:
		return e.doHide(st, actor)
	case ActionRage:
		return e.doRage(st, actor)
	case ActionFightToDeath:
		actor.FightToDeath = true
		actor.TempAttackBonus += 3
		actor.TempAttackDur = 99
		e.say(st, fmt.Sprintf("%s swears to fight to the death!", actor.Name), StyleStatus)
		return nil
	default:
		return fmt.Errorf("that is not a valid action")
	}
}

// offensiveTarget resolves who an offensive action hits. Monsters run the
// weighted lottery over the player's side; players and teammates use the
// action's target index or draw a random living monster. A nil, nil
// return means the action resolved as a no-op (dead target).
func (e *Engine) offensiveTarget(st *encounterState, actor *combatant.Combatant, action Action) (*combatant.Combatant, error) {
	if st.isOpponent(actor) {
		defenders := append([]*combatant.Combatant{st.player}, st.allies...)
		return e.chooseTarget(st.player, defenders), nil
	}

	if action.TargetIndex >= 0 {
		if action.TargetIndex >= len(st.monsters) {
			return nil, fmt.Errorf("there is no such target")
		}
		target := st.monsters[action.TargetIndex]
		if !target.IsAlive() {
			e.say(st, fmt.Sprintf("%s is already dead.", target.Name), StyleSystem)
			return nil, nil
		}
		return target, nil
	}

	return e.randomLiving(st.monsters), nil
}

// strikeOpts tunes a single weapon strike.
type strikeOpts struct {
	hitMod    int
	mult      float64
	ranged    bool // dexterity replaces strength as the attack stat
	extraStat int  // flat addition to attack power (smite wisdom, etc.)
	pierce    bool // ignore the target's defense roll entirely
	autoHit   bool // skip the to-hit roll (backstab from the shadows)
}

// strike resolves one swing end to end: to-hit, attack power, the
// multiplier chain, mitigation, and final damage application.
func (e *Engine) strike(st *encounterState, actor, target *combatant.Combatant, opts strikeOpts) {
	if opts.mult == 0 {
		opts.mult = 1.0
	}

	var res hitResult
	if opts.autoHit {
		res = hitResult{hit: true}
	} else {
		res = e.resolveHit(actor, target, opts.hitMod)
	}

	if res.dodged {
		e.say(st, fmt.Sprintf("%s dodges %s's attack!", target.Name, actor.Name), StyleNormal)
		return
	}
	if !res.hit {
		e.say(st, fmt.Sprintf("%s misses %s.", actor.Name, target.Name), StyleNormal)
		return
	}

	attack := e.attackPower(actor)
	if opts.ranged {
		attack += actor.Dexterity - actor.Strength
	}
	attack += opts.extraStat

	mult := e.attackMultiplier(actor, target, res.critical) * opts.mult
	attack = int(float64(attack) * mult)

	defense := 0
	blocked := false
	if !opts.pierce {
		defense, blocked = e.defensePower(target)
	}

	damage := e.finalizeDamage(target, attack, defense)
	dealt := e.dealDamage(st, actor, target, damage)

	switch {
	case res.critical:
		e.say(st, fmt.Sprintf("Critical hit! %s strikes %s for %d damage!", actor.Name, target.Name, dealt), StyleCritical)
	case blocked:
		e.say(st, fmt.Sprintf("%s partially blocks, taking %d damage from %s.", target.Name, dealt, actor.Name), StyleDamage)
	default:
		e.say(st, fmt.Sprintf("%s hits %s for %d damage.", actor.Name, target.Name, dealt), StyleDamage)
	}
}

// swingCount computes the swings in one basic attack: base, class extra
// attacks, dual-wielding, a dexterity-based bonus roll, and drug-granted
// attacks, then haste doubles and slow halves (floor, minimum one).
func (e *Engine) swingCount(actor *combatant.Combatant) int {
	swings := 1 + actor.ClassDef().ExtraAttacks(actor.Level)
	if actor.DualWielding {
		swings++
	}
	if chance := actor.Dexterity / 4; chance > 0 && e.roller.Chance(chance) {
		swings++
	}
	swings += actor.DrugAttacks

	if actor.HasStatus(status.Haste) {
		swings *= 2
	}
	if actor.HasStatus(status.Slow) {
		swings /= 2
	}
	if swings < 1 {
		swings = 1
	}
	return swings
}

func (e *Engine) doBasicAttack(st *encounterState, actor *combatant.Combatant, action Action, ranged bool) error {
	opts := strikeOpts{ranged: ranged}
	if ranged {
		opts.hitMod = 2
	}

	// A sweeping attack trades the extra swings for one strike against
	// every living monster.
	if action.TargetAll && !st.isOpponent(actor) {
		actor.ProficiencyUses++
		e.say(st, fmt.Sprintf("%s sweeps at every foe at once!", actor.Name), StyleNormal)
		for _, target := range st.monsters {
			if !actor.IsAlive() {
				break
			}
			if !target.IsAlive() {
				continue
			}
			e.strike(st, actor, target, opts)
		}
		return nil
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.ProficiencyUses++

	swings := e.swingCount(actor)
	for i := 0; i < swings; i++ {
		if !actor.IsAlive() || !target.IsAlive() {
			break
		}
		e.strike(st, actor, target, opts)
	}
	return nil
}

func (e *Engine) doFirstAid(st *encounterState, actor *combatant.Combatant, action Action) error {
	target := actor
	if action.AllyIndex >= 0 {
		if action.AllyIndex >= len(st.allies) {
			return fmt.Errorf("there is no such ally")
		}
		target = st.allies[action.AllyIndex]
	}
	if !target.IsAlive() {
		e.say(st, fmt.Sprintf("%s is beyond first aid.", target.Name), StyleSystem)
		return nil
	}
	if actor.Stamina < 10 {
		return fmt.Errorf("not enough stamina to bind wounds")
	}

	actor.SpendStamina(10)
	amount := e.roller.Roll(2, 8) + actor.WisdomMod() + actor.Level/2
	healed := target.Heal(amount)
	e.say(st, fmt.Sprintf("%s binds %s's wounds for %d health.", actor.Name, target.Name, healed), StyleHeal)
	return nil
}

func (e *Engine) doCast(st *encounterState, actor *combatant.Combatant, action Action) error {
	if action.AbilityID == "" {
		return fmt.Errorf("no spell chosen")
	}
	if e.abilities == nil {
		return fmt.Errorf("no magic is possible here")
	}

	outcome, err := e.abilities.Cast(e.roller, actor, action.AbilityID)
	if err != nil {
		return err
	}

	e.say(st, fmt.Sprintf("%s casts %s!", actor.Name, outcome.Spell.Name), StyleStatus)

	for _, result := range outcome.Results {
		e.applyEffect(st, actor, action, result)
	}
	return nil
}

// applyEffect is the one shared routine through which every spell and
// ability effect lands, whether single-target, AoE, or self.
func (e *Engine) applyEffect(st *encounterState, actor *combatant.Combatant, action Action, result spellbook.EffectResult) {
	effect := result.Effect
	targets := e.effectTargets(st, actor, action, effect)
	if len(targets) == 0 {
		return
	}

	// AoE damage splits the rolled total evenly across the living
	// targets, with a floor of one per target.
	amount := result.Amount
	if effect.Target == spellbook.TargetAllEnemies &&
		(effect.Kind == spellbook.EffectDamage || effect.Kind == spellbook.EffectDrain) {
		amount = result.Amount / len(targets)
		if amount < 1 {
			amount = 1
		}
	}

	for _, target := range targets {
		if !target.IsAlive() {
			continue
		}

		switch effect.Kind {
		case spellbook.EffectDamage:
			dealt := e.dealDamage(st, actor, target, amount)
			e.say(st, fmt.Sprintf("%s takes %d damage!", target.Name, dealt), StyleDamage)
		case spellbook.EffectDrain:
			dealt := e.dealDamage(st, actor, target, amount)
			e.say(st, fmt.Sprintf("%s drains %d life from %s!", actor.Name, dealt, target.Name), StyleDamage)
			actor.Heal(dealt / 2)
		case spellbook.EffectHeal:
			healed := target.Heal(amount)
			e.say(st, fmt.Sprintf("%s recovers %d health.", target.Name, healed), StyleHeal)
		case spellbook.EffectHealPercent:
			healed := target.Heal(target.MaxHP * amount / 100)
			e.say(st, fmt.Sprintf("%s recovers %d health.", target.Name, healed), StyleHeal)
		case spellbook.EffectAbsorb:
			target.AddAbsorption(amount)
			e.say(st, fmt.Sprintf("A shimmering shield surrounds %s, absorbing the next %d damage.", target.Name, amount), StyleStatus)
		case spellbook.EffectStatus:
			target.ApplyStatus(effect.Status, effect.Duration)
			e.say(st, fmt.Sprintf("%s %s.", target.Name, effect.Status.Def().ApplyVerb), StyleStatus)
		case spellbook.EffectCleanse:
			e.cleanse(st, target)
		}
	}
}

// effectTargets resolves the combatants an effect lands on. AoE damage is
// split evenly across the living targets with a per-target floor of one.
func (e *Engine) effectTargets(st *encounterState, actor *combatant.Combatant, action Action, effect spellbook.Effect) []*combatant.Combatant {
	switch effect.Target {
	case spellbook.TargetSelf:
		return []*combatant.Combatant{actor}

	case spellbook.TargetAlly:
		if action.AllyIndex >= 0 && action.AllyIndex < len(st.allies) {
			return []*combatant.Combatant{st.allies[action.AllyIndex]}
		}
		if actor != st.player && !st.isOpponent(actor) {
			return []*combatant.Combatant{st.player}
		}
		return []*combatant.Combatant{actor}

	case spellbook.TargetEnemy:
		target, err := e.offensiveTarget(st, actor, action)
		if err != nil || target == nil {
			return nil
		}
		return []*combatant.Combatant{target}

	case spellbook.TargetAllEnemies:
		var pool []*combatant.Combatant
		if st.isOpponent(actor) {
			pool = append([]*combatant.Combatant{st.player}, st.allies...)
		} else {
			pool = st.monsters
		}
		var living []*combatant.Combatant
		for _, c := range pool {
			if c.IsAlive() {
				living = append(living, c)
			}
		}
		return living
	}
	return nil
}

func (e *Engine) cleanse(st *encounterState, target *combatant.Combatant) {
	harmful := []status.Effect{status.Poisoned, status.Stunned, status.Blinded, status.Weakened, status.Slow}
	removed := 0
	for _, effect := range harmful {
		if target.HasStatus(effect) {
			target.RemoveStatus(effect)
			removed++
		}
	}
	if removed > 0 {
		e.say(st, fmt.Sprintf("%s is cleansed of %d affliction(s).", target.Name, removed), StyleHeal)
	} else {
		e.say(st, fmt.Sprintf("%s has nothing to cleanse.", target.Name), StyleStatus)
	}
}

// escapeChance is the retreat formula: a clipped linear function of
// dexterity, level, and class bonus, capped by configuration.
func (e *Engine) escapeChance(actor *combatant.Combatant) int {
	chance := 20 + actor.Dexterity/2 + actor.Level + actor.ClassDef().EscapeBonus
	if chance > e.cfg.Combat.EscapeCap {
		chance = e.cfg.Combat.EscapeCap
	}
	if chance < 0 {
		chance = 0
	}
	return chance
}

func (e *Engine) doRetreat(st *encounterState, actor *combatant.Combatant) error {
	if actor.FightToDeath {
		return fmt.Errorf("%s has sworn to fight to the death", actor.Name)
	}

	if e.roller.Chance(e.escapeChance(actor)) {
		if actor == st.player {
			st.escaped = true
		}
		e.say(st, fmt.Sprintf("%s breaks away and escapes!", actor.Name), StyleSystem)
		return nil
	}

	// A failed escape earns a parting blow, bounded and never lethal.
	damage := e.roller.Roll(2, 6)
	if damage >= actor.HP {
		damage = actor.HP - 1
	}
	if damage > 0 {
		actor.TakeDamage(damage)
		if actor == st.player {
			st.result.DamageTaken += damage
		}
	}
	e.say(st, fmt.Sprintf("%s fails to escape and takes %d damage in the scramble!", actor.Name, damage), StyleDamage)
	return nil
}

func (e *Engine) doBeg(st *encounterState, actor *combatant.Combatant) error {
	chance := 15 + actor.Charisma/4
	if e.roller.Chance(chance) {
		tribute := actor.Gold / 10
		actor.Gold -= tribute
		if actor == st.player {
			st.begged = true
		}
		if tribute > 0 {
			e.say(st, fmt.Sprintf("%s grovels, drops %d gold as tribute, and is allowed to crawl away.", actor.Name, tribute), StyleSystem)
		} else {
			e.say(st, fmt.Sprintf("%s grovels pitifully and is allowed to crawl away.", actor.Name), StyleSystem)
		}
		return nil
	}

	e.say(st, fmt.Sprintf("%s begs for mercy. The enemy shows none.", actor.Name), StyleSystem)
	return nil
}

// doStaminaStrike covers the stamina-gated single strikes that differ
// only in their hit modifier and damage multiplier.
func (e *Engine) doStaminaStrike(st *encounterState, actor *combatant.Combatant, action Action, id string, stamina, cooldown int, opts strikeOpts) error {
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("that move needs %d more rounds to recover", left)
	}
	if actor.Stamina < stamina {
		return fmt.Errorf("not enough stamina")
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SpendStamina(stamina)
	if cooldown > 0 {
		actor.SetCooldown(id, cooldown)
	}
	e.strike(st, actor, target, opts)
	return nil
}

func (e *Engine) doBackstab(st *encounterState, actor *combatant.Combatant, action Action) error {
	const id = "backstab"
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("backstab needs %d more rounds to recover", left)
	}
	if actor.Stamina < 12 {
		return fmt.Errorf("not enough stamina")
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SpendStamina(12)
	actor.SetCooldown(id, 3)

	if actor.HasStatus(status.Hidden) {
		// Striking from the shadows cannot miss.
		actor.RemoveStatus(status.Hidden)
		e.say(st, fmt.Sprintf("%s strikes from the shadows!", actor.Name), StyleCritical)
		e.strike(st, actor, target, strikeOpts{autoHit: true, mult: 3.0})
		return nil
	}

	if !e.roller.Chance(30 + actor.Dexterity/4) {
		e.say(st, fmt.Sprintf("%s lunges for %s's back but is spotted!", actor.Name, target.Name), StyleNormal)
		return nil
	}
	e.strike(st, actor, target, strikeOpts{autoHit: true, mult: 2.0})
	return nil
}

func (e *Engine) doSmite(st *encounterState, actor *combatant.Combatant, action Action) error {
	const id = "smite"
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("smite needs %d more rounds to recover", left)
	}
	if actor.Mana < 10 {
		return fmt.Errorf("not enough mana")
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SpendMana(10)
	actor.SetCooldown(id, 2)

	mult := 1.1
	if target.Alignment == combatant.AlignEvil {
		mult = 1.5
	}
	e.strike(st, actor, target, strikeOpts{extraStat: actor.Wisdom, mult: mult})
	return nil
}

func (e *Engine) doSoulStrike(st *encounterState, actor *combatant.Combatant, action Action) error {
	const id = "soul_strike"
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("soul strike needs %d more rounds to recover", left)
	}
	if actor.Mana < 20 {
		return fmt.Errorf("not enough mana")
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SpendMana(20)
	actor.SetCooldown(id, 3)

	// A strike at the soul itself; armor means nothing.
	res := e.resolveHit(actor, target, 3)
	if res.dodged || !res.hit {
		e.say(st, fmt.Sprintf("%s's soul strike dissipates harmlessly.", actor.Name), StyleNormal)
		return nil
	}

	attack := actor.Intelligence*2 + actor.Level*2 + e.roller.Roll(1, 10)
	attack = int(float64(attack) * e.attackMultiplier(actor, target, res.critical))
	damage := e.finalizeDamage(target, attack, 0)
	dealt := e.dealDamage(st, actor, target, damage)
	e.say(st, fmt.Sprintf("%s tears at %s's soul for %d damage!", actor.Name, target.Name, dealt), StyleCritical)
	return nil
}

func (e *Engine) doDisarm(st *encounterState, actor *combatant.Combatant, action Action) error {
	const id = "disarm"
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("disarm needs %d more rounds to recover", left)
	}
	if actor.Stamina < 10 {
		return fmt.Errorf("not enough stamina")
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SpendStamina(10)
	actor.SetCooldown(id, 2)

	if e.roller.Chance(20 + actor.Dexterity/4) {
		target.Disarmed = true
		e.say(st, fmt.Sprintf("%s knocks the weapon from %s's grasp!", actor.Name, target.Name), StyleStatus)
	} else {
		e.say(st, fmt.Sprintf("%s fails to disarm %s.", actor.Name, target.Name), StyleNormal)
	}
	return nil
}

func (e *Engine) doTaunt(st *encounterState, actor *combatant.Combatant, action Action) error {
	const id = "taunt"
	if left := actor.CooldownLeft(id); left > 0 {
		return fmt.Errorf("taunt needs %d more rounds to recover", left)
	}

	target, err := e.offensiveTarget(st, actor, action)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	actor.SetCooldown(id, 2)

	if e.roller.Chance(40 + actor.Charisma/2) {
		target.ApplyStatus(status.Weakened, 2)
		e.say(st, fmt.Sprintf("%s taunts %s into a blind, sloppy fury!", actor.Name, target.Name), StyleStatus)
	} else {
		e.say(st, fmt.Sprintf("%s's taunts fall on deaf ears.", actor.Name), StyleNormal)
	}
	return nil
}

func (e *Engine) doHide(st *encounterState, actor *combatant.Combatant) error {
	if actor.Stamina < 8 {
		return fmt.Errorf("not enough stamina")
	}
	actor.SpendStamina(8)

	if e.roller.Chance(30 + actor.Dexterity/2) {
		actor.ApplyStatus(status.Hidden, 3)
		actor.DodgeNextAttack = true
		e.say(st, fmt.Sprintf("%s %s.", actor.Name, status.Hidden.Def().ApplyVerb), StyleStatus)
	} else {
		e.say(st, fmt.Sprintf("%s fails to find cover.", actor.Name), StyleNormal)
	}
	return nil
}

func (e *Engine) doRage(st *encounterState, actor *combatant.Combatant) error {
	if actor.Stamina < 20 {
		return fmt.Errorf("not enough stamina")
	}
	if actor.HasStatus(status.Raging) {
		return fmt.Errorf("%s is already raging", actor.Name)
	}

	actor.SpendStamina(20)
	actor.ApplyStatus(status.Raging, 5)
	e.say(st, fmt.Sprintf("%s %s!", actor.Name, status.Raging.Def().ApplyVerb), StyleStatus)
	return nil
}
