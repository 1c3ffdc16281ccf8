package dice

import "testing"

func TestD20Range(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 100; i++ {
		result := r.D20()
		if result < 1 || result > 20 {
			t.Errorf("D20() = %d, expected 1-20", result)
		}
	}
}

func TestD100Range(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 100; i++ {
		result := r.D100()
		if result < 1 || result > 100 {
			t.Errorf("D100() = %d, expected 1-100", result)
		}
	}
}

func TestRoll(t *testing.T) {
	r := NewSeeded(1)

	for i := 0; i < 100; i++ {
		result := r.Roll(2, 6)
		if result < 2 || result > 12 {
			t.Errorf("Roll(2, 6) = %d, expected 2-12", result)
		}
	}

	if result := r.Roll(0, 6); result != 0 {
		t.Errorf("Roll(0, 6) = %d, expected 0", result)
	}
}

func TestDeterminism(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 200; i++ {
		if av, bv := a.D20(), b.D20(); av != bv {
			t.Fatalf("roll %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestChanceBounds(t *testing.T) {
	r := NewSeeded(7)
	if r.Chance(0) {
		t.Error("Chance(0) should never succeed")
	}
	if r.Chance(-5) {
		t.Error("Chance(-5) should never succeed")
	}
	if !r.Chance(100) {
		t.Error("Chance(100) should always succeed")
	}
	if !r.Chance(150) {
		t.Error("Chance(150) should always succeed")
	}
}

func TestNotation(t *testing.T) {
	r := NewSeeded(3)

	// 1d6+2 with +1 bonus: range 4-9
	for i := 0; i < 100; i++ {
		result := r.Notation("1d6+2", 1)
		if result < 4 || result > 9 {
			t.Errorf("Notation(1d6+2, 1) = %d, expected 4-9", result)
		}
	}

	if result := r.Notation("garbage", 0); result != 0 {
		t.Errorf("Notation(garbage) = %d, expected 0", result)
	}
	if result := r.Notation("", 5); result != 0 {
		t.Errorf("Notation(\"\") = %d, expected 0", result)
	}
}

func TestScriptPlayback(t *testing.T) {
	s := NewScript(20, 5, 3)

	if got := s.D20(); got != 20 {
		t.Errorf("first scripted value = %d, expected 20", got)
	}
	if got := s.Roll(1, 8); got != 5 {
		t.Errorf("second scripted value = %d, expected 5", got)
	}
	if got := s.D100(); got != 3 {
		t.Errorf("third scripted value = %d, expected 3", got)
	}
	// Exhausted queue falls back to Default
	if got := s.D20(); got != 1 {
		t.Errorf("exhausted script = %d, expected default 1", got)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d, expected 0", s.Remaining())
	}
}

func TestScriptIntnStaysInRange(t *testing.T) {
	s := NewScript(2, 7, 0)

	if got := s.Intn(3); got != 2 {
		t.Errorf("Intn(3) = %d, expected the scripted 2", got)
	}
	// An oversized scripted value wraps instead of escaping the range.
	if got := s.Intn(3); got != 1 {
		t.Errorf("Intn(3) on scripted 7 = %d, expected 1", got)
	}
	if got := s.Intn(1); got != 0 {
		t.Errorf("Intn(1) = %d, expected 0", got)
	}
}

func TestScriptChance(t *testing.T) {
	s := NewScript(10, 90)
	if !s.Chance(50) {
		t.Error("scripted 10 vs 50%% should succeed")
	}
	if s.Chance(50) {
		t.Error("scripted 90 vs 50%% should fail")
	}
	// Bounds never consume the queue
	s2 := NewScript(42)
	if s2.Chance(0) {
		t.Error("Chance(0) should fail without consuming")
	}
	if !s2.Chance(100) {
		t.Error("Chance(100) should succeed without consuming")
	}
	if s2.Remaining() != 1 {
		t.Errorf("bounds checks consumed the queue: %d left", s2.Remaining())
	}
}
