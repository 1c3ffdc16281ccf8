// Package status defines the closed set of combat status effects and their
// tick behavior. Effects are duration-based and refresh rather than stack
// when re-applied; the absorption shield pool is the only additive pool and
// lives on the combatant itself.
package status

// Effect identifies a status effect.
type Effect int

const (
	Poisoned Effect = iota
	Stunned
	Blinded
	Blessed
	RoyalBlessing
	Weakened
	PowerStance
	Raging
	Defending
	Hidden
	Haste
	Slow
	Blur
	Stoneskin

	numEffects
)

// Definition describes how an effect behaves each round.
type Definition struct {
	Name string

	// ApplyVerb is the message fragment shown when the effect lands
	ApplyVerb string

	// PreventsAction skips the bearer's turn while active
	PreventsAction bool

	// DamagePerRound is dice notation rolled against the bearer at round
	// start (damage over time); empty means no tick damage
	DamagePerRound string

	// MissChance is the extra chance (percent) the bearer's attacks miss
	MissChance int

	// DodgeChance is the extra chance (percent) attacks against the
	// bearer miss
	DodgeChance int

	// DealtMult scales damage the bearer deals
	DealtMult float64

	// TakenMult scales damage the bearer takes
	TakenMult float64
}

var definitions = [numEffects]Definition{
	Poisoned: {
		Name:           "Poisoned",
		ApplyVerb:      "is poisoned",
		DamagePerRound: "1d6",
	},
	Stunned: {
		Name:           "Stunned",
		ApplyVerb:      "is stunned",
		PreventsAction: true,
	},
	Blinded: {
		Name:       "Blinded",
		ApplyVerb:  "is blinded",
		MissChance: 50,
	},
	Blessed: {
		Name:      "Blessed",
		ApplyVerb: "is blessed",
		DealtMult: 1.10,
	},
	RoyalBlessing: {
		Name:      "Royal Blessing",
		ApplyVerb: "glows with royal favor",
		DealtMult: 1.25,
	},
	Weakened: {
		Name:      "Weakened",
		ApplyVerb: "is weakened",
		DealtMult: 0.75,
	},
	PowerStance: {
		Name:      "Power Stance",
		ApplyVerb: "shifts into a power stance",
		DealtMult: 1.20,
		TakenMult: 1.10,
	},
	Raging: {
		Name:      "Raging",
		ApplyVerb: "flies into a rage",
		DealtMult: 1.50,
		TakenMult: 1.25,
	},
	Defending: {
		Name:      "Defending",
		ApplyVerb: "takes a defensive stance",
	},
	Hidden: {
		Name:        "Hidden",
		ApplyVerb:   "slips into the shadows",
		DodgeChance: 40,
	},
	Haste: {
		Name:      "Haste",
		ApplyVerb: "moves with unnatural speed",
	},
	Slow: {
		Name:      "Slow",
		ApplyVerb: "slows to a crawl",
	},
	Blur: {
		Name:        "Blur",
		ApplyVerb:   "shimmers and blurs",
		DodgeChance: 25,
	},
	Stoneskin: {
		Name:      "Stoneskin",
		ApplyVerb: "hardens to living stone",
		TakenMult: 0.50,
	},
}

// All returns every defined effect, in declaration order.
func All() []Effect {
	effects := make([]Effect, 0, numEffects)
	for e := Effect(0); e < numEffects; e++ {
		effects = append(effects, e)
	}
	return effects
}

// IsValid returns true for effects inside the closed set.
func (e Effect) IsValid() bool {
	return e >= 0 && e < numEffects
}

// Def returns the effect's definition. Invalid effects get a zero definition.
func (e Effect) Def() Definition {
	if !e.IsValid() {
		return Definition{Name: "Unknown"}
	}
	return definitions[e]
}

// String returns the display name of the effect.
func (e Effect) String() string {
	return e.Def().Name
}

// PreventsAction reports whether the effect skips the bearer's turn.
func (e Effect) PreventsAction() bool {
	return e.Def().PreventsAction
}

var byKey = map[string]Effect{
	"poisoned":       Poisoned,
	"stunned":        Stunned,
	"blinded":        Blinded,
	"blessed":        Blessed,
	"royal_blessing": RoyalBlessing,
	"weakened":       Weakened,
	"power_stance":   PowerStance,
	"raging":         Raging,
	"defending":      Defending,
	"hidden":         Hidden,
	"haste":          Haste,
	"slow":           Slow,
	"blur":           Blur,
	"stoneskin":      Stoneskin,
}

// Parse converts a data-file key (e.g. "royal_blessing") to an Effect.
func Parse(key string) (Effect, bool) {
	e, ok := byKey[key]
	return e, ok
}
