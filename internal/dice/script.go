package dice

// Script is a Roller that plays back a fixed queue of values. It exists so
// tests can force specific hits, misses, and variance rolls. When the queue
// runs dry every roll returns Default.
type Script struct {
	queue   []int
	Default int
}

// NewScript creates a scripted roller that returns the given values in order.
func NewScript(values ...int) *Script {
	return &Script{queue: values, Default: 1}
}

func (s *Script) next() int {
	if len(s.queue) == 0 {
		return s.Default
	}
	v := s.queue[0]
	s.queue = s.queue[1:]
	return v
}

// Remaining returns how many scripted values are left unconsumed.
func (s *Script) Remaining() int {
	return len(s.queue)
}

// D20 pops the next scripted value
func (s *Script) D20() int {
	return s.next()
}

// D100 pops the next scripted value
func (s *Script) D100() int {
	return s.next()
}

// Roll pops one scripted value regardless of dice count
func (s *Script) Roll(n, sides int) int {
	return s.next()
}

// Intn pops the next scripted value, clamped into [0, n) so a stray
// scripted value cannot send engine code out of range.
func (s *Script) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := s.next() % n
	if v < 0 {
		v += n
	}
	return v
}

// Chance pops a scripted value and compares it against the percentage,
// mirroring the seeded roller's D100 check.
func (s *Script) Chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return s.next() <= percent
}

// Notation pops one scripted value plus the bonus
func (s *Script) Notation(notation string, bonus int) int {
	if notation == "" {
		return 0
	}
	return s.next() + bonus
}
