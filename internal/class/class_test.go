package class

import "testing"

func TestParseClass(t *testing.T) {
	tests := []struct {
		input    string
		expected Class
		wantErr  bool
	}{
		{"warrior", Warrior, false},
		{"Warrior", Warrior, false},
		{"  RANGER  ", Ranger, false},
		{"paladin", Paladin, false},
		{"necromancer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseClass(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClass(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClass(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseClass(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestAllClassesValid(t *testing.T) {
	for _, c := range AllClasses() {
		if !c.IsValid() {
			t.Errorf("class %v should be valid", c)
		}
		if GetDefinition(c) == nil {
			t.Errorf("class %v has no definition", c)
		}
	}
	if Class("lich").IsValid() {
		t.Error("lich should not be a valid class")
	}
}

func TestExtraAttacks(t *testing.T) {
	warrior := GetDefinition(Warrior)
	tests := []struct {
		level    int
		expected int
	}{
		{1, 0},
		{4, 0},
		{5, 1},
		{10, 2},
		{30, 6},
	}
	for _, tt := range tests {
		if got := warrior.ExtraAttacks(tt.level); got != tt.expected {
			t.Errorf("warrior ExtraAttacks(%d) = %d, expected %d", tt.level, got, tt.expected)
		}
	}

	// Mages never gain extra swings
	mage := GetDefinition(Mage)
	if got := mage.ExtraAttacks(50); got != 0 {
		t.Errorf("mage ExtraAttacks(50) = %d, expected 0", got)
	}
}

func TestUnknownClassDefinition(t *testing.T) {
	def := GetDefinition(Class("dire_wolf"))
	if def == nil {
		t.Fatal("unknown class should get the neutral definition, not nil")
	}
	if def.TargetWeight <= 0 {
		t.Error("neutral definition needs a positive target weight")
	}
}

func TestTargetWeightOrdering(t *testing.T) {
	// Tanks must out-weigh casters for monster target selection
	if GetDefinition(Warrior).TargetWeight <= GetDefinition(Mage).TargetWeight {
		t.Error("warrior target weight should exceed mage target weight")
	}
	if GetDefinition(Paladin).TargetWeight <= GetDefinition(Rogue).TargetWeight {
		t.Error("paladin target weight should exceed rogue target weight")
	}
}
