package combatant

import (
	"testing"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/status"
)

func newTestFighter() *Combatant {
	c := New("Aldric", KindPlayer, class.Warrior, 5)
	c.MaxHP = 100
	c.HP = 100
	c.MaxMana = 20
	c.Mana = 20
	c.MaxStamina = 50
	c.Stamina = 50
	return c
}

func TestTakeDamageClampsAtZero(t *testing.T) {
	c := newTestFighter()

	taken := c.TakeDamage(30)
	if taken != 30 || c.HP != 70 {
		t.Errorf("TakeDamage(30): taken=%d hp=%d, expected 30/70", taken, c.HP)
	}

	c.TakeDamage(500)
	if c.HP != 0 {
		t.Errorf("HP = %d, expected 0 (never negative)", c.HP)
	}
	if c.IsAlive() {
		t.Error("combatant at 0 HP must be dead")
	}

	// Damage to the dead is still clamped
	c.TakeDamage(10)
	if c.HP != 0 {
		t.Errorf("HP = %d after overkill, expected 0", c.HP)
	}
}

func TestAbsorptionPoolDrainsFirst(t *testing.T) {
	c := newTestFighter()
	c.AddAbsorption(20)
	c.AddAbsorption(5) // additive, unlike statuses

	taken := c.TakeDamage(15)
	if taken != 0 {
		t.Errorf("absorbed hit reached HP for %d", taken)
	}
	if c.AbsorptionPool != 10 {
		t.Errorf("pool = %d, expected 10", c.AbsorptionPool)
	}

	taken = c.TakeDamage(30)
	if taken != 20 {
		t.Errorf("partially absorbed hit dealt %d, expected 20", taken)
	}
	if c.HP != 80 {
		t.Errorf("HP = %d, expected 80", c.HP)
	}
	if c.AbsorptionPool != 0 {
		t.Errorf("pool = %d, expected 0", c.AbsorptionPool)
	}
}

func TestHealCapsAtMax(t *testing.T) {
	c := newTestFighter()
	c.HP = 60

	healed := c.Heal(100)
	if healed != 40 || c.HP != 100 {
		t.Errorf("Heal: healed=%d hp=%d, expected 40/100", healed, c.HP)
	}

	// Healing cannot revive
	c.TakeDamage(200)
	if got := c.Heal(50); got != 0 {
		t.Errorf("healed the dead for %d", got)
	}
	if c.IsAlive() {
		t.Error("dead combatant revived by Heal")
	}
}

func TestSpendResources(t *testing.T) {
	c := newTestFighter()

	if !c.SpendMana(15) || c.Mana != 5 {
		t.Errorf("SpendMana(15) failed, mana=%d", c.Mana)
	}
	if c.SpendMana(10) {
		t.Error("SpendMana should fail with insufficient mana")
	}
	if c.Mana != 5 {
		t.Errorf("failed spend still deducted: mana=%d", c.Mana)
	}

	if !c.SpendStamina(50) || c.Stamina != 0 {
		t.Errorf("SpendStamina(50) failed, stamina=%d", c.Stamina)
	}
	if c.SpendStamina(1) {
		t.Error("SpendStamina should fail at zero")
	}

	c.RestoreMana(100)
	if c.Mana != c.MaxMana {
		t.Errorf("RestoreMana overflowed: %d/%d", c.Mana, c.MaxMana)
	}
}

func TestPayBankFirst(t *testing.T) {
	c := newTestFighter()
	c.Gold = 300
	c.BankGold = 1000

	if !c.Pay(800) {
		t.Fatal("Pay(800) should succeed with 1300 total")
	}
	if c.BankGold != 200 || c.Gold != 300 {
		t.Errorf("bank=%d gold=%d, expected bank drained first (200/300)", c.BankGold, c.Gold)
	}

	if !c.Pay(400) {
		t.Fatal("Pay(400) should succeed with 500 total")
	}
	if c.BankGold != 0 || c.Gold != 100 {
		t.Errorf("bank=%d gold=%d, expected 0/100", c.BankGold, c.Gold)
	}

	if c.Pay(500) {
		t.Error("Pay should fail when short")
	}
	if c.Gold != 100 {
		t.Errorf("failed payment deducted gold: %d", c.Gold)
	}
}

func TestStatusRefreshNotStack(t *testing.T) {
	c := newTestFighter()

	c.ApplyStatus(status.Poisoned, 3)
	c.ApplyStatus(status.Poisoned, 5)
	if got := c.StatusRounds(status.Poisoned); got != 5 {
		t.Errorf("re-apply should refresh to 5, got %d", got)
	}

	// Shorter re-apply never shortens what is active
	c.ApplyStatus(status.Poisoned, 2)
	if got := c.StatusRounds(status.Poisoned); got != 5 {
		t.Errorf("shorter re-apply reduced duration to %d", got)
	}

	c.RemoveStatus(status.Poisoned)
	if c.HasStatus(status.Poisoned) {
		t.Error("RemoveStatus left the effect active")
	}
}

func TestActionPrevented(t *testing.T) {
	c := newTestFighter()
	if _, blocked := c.ActionPrevented(); blocked {
		t.Error("fresh combatant should not be prevented")
	}
	c.ApplyStatus(status.Stunned, 1)
	e, blocked := c.ActionPrevented()
	if !blocked || e != status.Stunned {
		t.Errorf("expected stun to prevent action, got %v/%v", e, blocked)
	}
}

func TestCooldowns(t *testing.T) {
	c := newTestFighter()
	c.SetCooldown("fireball", 3)

	if got := c.CooldownLeft("fireball"); got != 3 {
		t.Errorf("CooldownLeft = %d, expected 3", got)
	}
	c.TickCooldowns()
	c.TickCooldowns()
	if got := c.CooldownLeft("fireball"); got != 1 {
		t.Errorf("CooldownLeft after 2 ticks = %d, expected 1", got)
	}
	c.TickCooldowns()
	if got := c.CooldownLeft("fireball"); got != 0 {
		t.Errorf("CooldownLeft after expiry = %d, expected 0", got)
	}
}

func TestSnapshotZeroesEphemeralState(t *testing.T) {
	c := newTestFighter()
	c.ApplyStatus(status.Blessed, 4)
	c.SetCooldown("smite", 2)
	c.AddAbsorption(25)
	c.TempAttackBonus = 10
	c.FightToDeath = true

	snap := c.Snapshot()
	if len(snap.Statuses) != 0 || len(snap.Cooldowns) != 0 {
		t.Error("snapshot carried over statuses or cooldowns")
	}
	if snap.AbsorptionPool != 0 || snap.TempAttackBonus != 0 || snap.FightToDeath {
		t.Error("snapshot carried over ephemeral combat state")
	}
	if snap.HP != c.HP || snap.Gold != c.Gold || snap.Level != c.Level {
		t.Error("snapshot lost persistent sheet fields")
	}

	// Mutating the snapshot must not touch the original
	snap.TakeDamage(40)
	if c.HP != 100 {
		t.Errorf("snapshot mutation leaked into original: HP=%d", c.HP)
	}
}

func TestModifier(t *testing.T) {
	tests := []struct {
		score    int
		expected int
	}{
		{8, -1}, {9, -1}, {10, 0}, {11, 0}, {12, 1}, {14, 2}, {16, 3}, {18, 4}, {3, -4},
	}
	for _, tt := range tests {
		if got := Modifier(tt.score); got != tt.expected {
			t.Errorf("Modifier(%d) = %d, expected %d", tt.score, got, tt.expected)
		}
	}
}

func TestGainExperienceLevels(t *testing.T) {
	c := New("Novice", KindPlayer, class.Warrior, 1)
	c.MaxHP = 20
	c.HP = 10

	ups := c.GainExperience(XPForLevel(3))
	if len(ups) != 2 {
		t.Fatalf("expected 2 level-ups, got %d", len(ups))
	}
	if c.Level != 3 {
		t.Errorf("level = %d, expected 3", c.Level)
	}
	if c.HP != c.MaxHP {
		t.Error("level up should refill HP")
	}
}

func TestLoseExperiencePercent(t *testing.T) {
	c := New("Fallen", KindPlayer, class.Rogue, 10)
	c.Experience = 1000

	loss := c.LoseExperiencePercent(25)
	if loss != 250 || c.Experience != 750 {
		t.Errorf("lost %d leaving %d, expected 250/750", loss, c.Experience)
	}
	if got := c.LoseExperiencePercent(0); got != 0 {
		t.Errorf("zero percent lost %d", got)
	}
}
