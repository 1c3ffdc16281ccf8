// Package dice provides the random rolls used by the combat engine. Every
// encounter owns a single Roller seeded once at creation, which makes a
// full combat replayable from its seed.
package dice

import (
	"math/rand"
	"regexp"
	"strconv"
)

// Roller is the single source of randomness for an encounter. The engine
// never re-seeds a roller mid-encounter; identical seeds and identical
// call sequences produce identical results.
type Roller interface {
	// D20 rolls a 20-sided die (1-20)
	D20() int

	// D100 rolls a 100-sided die (1-100), used for percentage checks
	D100() int

	// Roll rolls n dice with the specified number of sides and returns the total
	Roll(n, sides int) int

	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Chance rolls a percentage check: true with the given probability
	Chance(percent int) bool

	// Notation parses dice notation ("1d6", "2d4+1") and rolls it with an
	// extra bonus added. Invalid notation rolls 0.
	Notation(notation string, bonus int) int
}

// Seeded is the production Roller backed by math/rand.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a Roller from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// D20 rolls a 20-sided die (1-20)
func (s *Seeded) D20() int {
	return s.rng.Intn(20) + 1
}

// D100 rolls a 100-sided die (1-100)
func (s *Seeded) D100() int {
	return s.rng.Intn(100) + 1
}

// Roll rolls n dice with the specified number of sides and returns the total
func (s *Seeded) Roll(n, sides int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += s.rng.Intn(sides) + 1
	}
	return total
}

// Intn returns a uniform value in [0, n)
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Chance rolls a percentage check
func (s *Seeded) Chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return s.D100() <= percent
}

// Notation parses dice notation and rolls it with an extra bonus
func (s *Seeded) Notation(notation string, bonus int) int {
	return rollNotation(s, notation, bonus)
}

// diceNotationRegex matches dice notation like "1d6", "2d4+1", "1d8-2"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// rollNotation parses dice notation and rolls it on the given roller.
// Returns 0 if the notation is invalid.
func rollNotation(r Roller, notation string, extraBonus int) int {
	if notation == "" {
		return 0
	}

	matches := diceNotationRegex.FindStringSubmatch(notation)
	if matches == nil {
		return 0
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])

	bonus := extraBonus
	if matches[3] != "" {
		notationBonus, _ := strconv.Atoi(matches[3])
		bonus += notationBonus
	}

	return r.Roll(count, sides) + bonus
}
