package combat

// ActionKind identifies what a combatant chose to do with its turn.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
	ActionHeal
	ActionCastSpell
	ActionUseAbility
	ActionRetreat
	ActionBegForMercy
	ActionPowerAttack
	ActionPreciseStrike
	ActionBackstab
	ActionSmite
	ActionSoulStrike
	ActionDisarm
	ActionTaunt
	ActionHide
	ActionRangedAttack
	ActionRage
	ActionFightToDeath

	numActionKinds
)

// String returns the display name of the action kind
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "Attack"
	case ActionDefend:
		return "Defend"
	case ActionHeal:
		return "Heal"
	case ActionCastSpell:
		return "Cast Spell"
	case ActionUseAbility:
		return "Use Ability"
	case ActionRetreat:
		return "Retreat"
	case ActionBegForMercy:
		return "Beg For Mercy"
	case ActionPowerAttack:
		return "Power Attack"
	case ActionPreciseStrike:
		return "Precise Strike"
	case ActionBackstab:
		return "Backstab"
	case ActionSmite:
		return "Smite"
	case ActionSoulStrike:
		return "Soul Strike"
	case ActionDisarm:
		return "Disarm"
	case ActionTaunt:
		return "Taunt"
	case ActionHide:
		return "Hide"
	case ActionRangedAttack:
		return "Ranged Attack"
	case ActionRage:
		return "Rage"
	case ActionFightToDeath:
		return "Fight To Death"
	default:
		return "Unknown"
	}
}

// IsValid returns true for kinds inside the closed set.
func (k ActionKind) IsValid() bool {
	return k >= 0 && k < numActionKinds
}

// Action is a fully-specified combat action as returned by an
// ActionProvider. Index fields reference the encounter's monster and
// ally slices; -1 means unset.
type Action struct {
	Kind        ActionKind
	TargetIndex int    // monster slice index for offensive actions
	AllyIndex   int    // ally slice index for heals and support (-1 = self/player)
	AbilityID   string // spell or ability id for CastSpell/UseAbility
	TargetAll   bool   // strike every living monster (AoE)
}

// NewAction creates an action with unset target indexes.
func NewAction(kind ActionKind) Action {
	return Action{Kind: kind, TargetIndex: -1, AllyIndex: -1}
}

// AttackAction creates a basic attack against the monster at the given index.
func AttackAction(targetIndex int) Action {
	return Action{Kind: ActionAttack, TargetIndex: targetIndex, AllyIndex: -1}
}
