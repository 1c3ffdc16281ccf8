package spellbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/status"
)

const testSpellsYAML = `spells:
  firebolt:
    name: Firebolt
    description: A searing bolt of flame.
    mana_cost: 8
    level: 1
    effects:
      - kind: damage
        target: enemy
        dice: 2d6
  mend:
    name: Mend
    description: Knit flesh and bone.
    mana_cost: 5
    classes: [cleric, paladin]
    effects:
      - kind: heal
        target: ally
        dice: 1d8
  venom_fang:
    name: Venom Fang
    mana_cost: 6
    cooldown: 3
    effects:
      - kind: damage
        target: enemy
        amount: 5
      - kind: status
        target: enemy
        status: poisoned
        duration: 4
  fire_breath:
    name: Fire Breath
    monster_only: true
    effects:
      - kind: damage
        target: all_enemies
        dice: 3d6
`

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "spells.yaml")
	if err := os.WriteFile(path, []byte(testSpellsYAML), 0644); err != nil {
		t.Fatalf("failed to write spells file: %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadFromYAML(path); err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}
	return registry
}

func TestLoadFromYAML(t *testing.T) {
	registry := loadTestRegistry(t)

	if got := len(registry.IDs()); got != 4 {
		t.Fatalf("loaded %d spells, expected 4", got)
	}

	firebolt, ok := registry.Get("firebolt")
	if !ok {
		t.Fatal("firebolt not found")
	}
	if firebolt.ManaCost != 8 || len(firebolt.Effects) != 1 {
		t.Errorf("firebolt parsed wrong: cost=%d effects=%d", firebolt.ManaCost, len(firebolt.Effects))
	}
	if !firebolt.IsOffensive() || firebolt.IsHealing() {
		t.Error("firebolt should be offensive, not healing")
	}

	venom, _ := registry.Get("venom_fang")
	if !venom.HasStatusEffect(status.Poisoned) {
		t.Error("venom fang should carry the poison status")
	}
	if venom.Effects[1].Duration != 4 {
		t.Errorf("poison duration = %d, expected 4", venom.Effects[1].Duration)
	}
}

func TestClassRestrictions(t *testing.T) {
	registry := loadTestRegistry(t)

	mend, _ := registry.Get("mend")
	if !mend.AllowedFor(class.Cleric) || !mend.AllowedFor(class.Paladin) {
		t.Error("mend should be castable by clerics and paladins")
	}
	if mend.AllowedFor(class.Warrior) {
		t.Error("warriors should not cast mend")
	}

	forCleric := registry.ForCaster(class.Cleric, 5)
	if len(forCleric) != 3 {
		t.Errorf("cleric spell list has %d entries, expected 3", len(forCleric))
	}
	forWarrior := registry.ForCaster(class.Warrior, 5)
	if len(forWarrior) != 2 {
		t.Errorf("warrior spell list has %d entries, expected 2 (no mend)", len(forWarrior))
	}
}

// Monster abilities share the registry but players must never know or
// cast them, even with the mana cost at zero.
func TestMonsterAbilitiesHiddenFromPlayers(t *testing.T) {
	caster, lyra := testCaster(t)

	for _, spell := range caster.Known(lyra) {
		if spell.ID == "fire_breath" {
			t.Error("player spell list includes a monster ability")
		}
	}
	if _, err := caster.Cast(dice.NewScript(9), lyra, "fire_breath"); err == nil {
		t.Error("a player casting a monster ability should fail")
	}

	drake := combatant.New("Drake", combatant.KindMonster, "", 4)
	if _, err := caster.Cast(dice.NewScript(9), drake, "fire_breath"); err != nil {
		t.Errorf("monster cast failed: %v", err)
	}
}

func TestLoadRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown effect kind",
			yaml: "spells:\n  bad:\n    name: Bad\n    effects:\n      - kind: explode\n        target: enemy\n",
		},
		{
			name: "unknown status",
			yaml: "spells:\n  bad:\n    name: Bad\n    effects:\n      - kind: status\n        target: enemy\n        status: confused\n",
		},
		{
			name: "unknown class",
			yaml: "spells:\n  bad:\n    name: Bad\n    classes: [necromancer]\n    effects:\n      - kind: damage\n        target: enemy\n",
		},
		{
			name: "no effects",
			yaml: "spells:\n  bad:\n    name: Bad\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "spells.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if err := NewRegistry().LoadFromYAML(path); err == nil {
				t.Error("expected a load error")
			}
		})
	}
}

func testCaster(t *testing.T) (*Caster, *combatant.Combatant) {
	t.Helper()
	caster := NewCaster(loadTestRegistry(t))
	c := combatant.New("Lyra", combatant.KindPlayer, class.Cleric, 5)
	c.MaxHP = 60
	c.HP = 60
	c.MaxMana = 30
	c.Mana = 30
	return caster, c
}

func TestCastSpendsManaAndRolls(t *testing.T) {
	caster, lyra := testCaster(t)
	lyra.Intelligence = 14 // +2 modifier

	// Script pops one value for the 2d6 roll.
	outcome, err := caster.Cast(dice.NewScript(7), lyra, "firebolt")
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if lyra.Mana != 22 {
		t.Errorf("mana = %d, expected 22", lyra.Mana)
	}
	if len(outcome.Results) != 1 || outcome.Results[0].Amount != 9 {
		t.Errorf("rolled %v, expected one result of 9 (7 + INT mod)", outcome.Results)
	}
}

func TestCastStartsCooldown(t *testing.T) {
	caster, lyra := testCaster(t)

	if _, err := caster.Cast(dice.NewScript(3), lyra, "venom_fang"); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if lyra.CooldownLeft("venom_fang") != 3 {
		t.Errorf("cooldown = %d, expected 3", lyra.CooldownLeft("venom_fang"))
	}

	if _, err := caster.Cast(dice.NewScript(3), lyra, "venom_fang"); err == nil {
		t.Error("cast during cooldown should fail")
	}
}

func TestCastBlockedWithoutResources(t *testing.T) {
	caster, lyra := testCaster(t)
	lyra.Mana = 2

	if _, err := caster.Cast(dice.NewScript(), lyra, "firebolt"); err == nil {
		t.Error("cast without mana should fail")
	}
	if lyra.Mana != 2 {
		t.Errorf("mana = %d, failed cast must not spend", lyra.Mana)
	}
}

func TestCastEnforcesClassAndLevel(t *testing.T) {
	caster, _ := testCaster(t)

	brute := combatant.New("Brute", combatant.KindPlayer, class.Warrior, 5)
	brute.Mana = 30
	if _, err := caster.Cast(dice.NewScript(), brute, "mend"); err == nil {
		t.Error("warrior casting mend should fail")
	}

	novice := combatant.New("Novice", combatant.KindPlayer, class.Mage, 0)
	novice.Mana = 30
	if _, err := caster.Cast(dice.NewScript(), novice, "firebolt"); err == nil {
		t.Error("under-leveled cast should fail")
	}

	if _, err := caster.Cast(dice.NewScript(), brute, "no_such_spell"); err == nil {
		t.Error("unknown spell should fail")
	}
}
