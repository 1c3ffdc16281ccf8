package combat

import (
	"testing"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

func strongPlayer() *combatant.Combatant {
	p := testPlayer(class.Warrior, 10)
	p.Strength = 18
	p.WeaponPower = 10
	return p
}

func runSeededEncounter(seed int64) *CombatResult {
	e := testEngine(dice.NewSeeded(seed), AIProvider{}, nil)
	player := strongPlayer()
	monsters := []*combatant.Combatant{
		testMonster("Wolf", 30),
		testMonster("Wolf Matriarch", 45),
	}
	monsters[1].Experience = 50
	monsters[1].Gold = 20
	return e.StartEncounter(player, monsters, nil)
}

func TestSeedDeterminism(t *testing.T) {
	first := runSeededEncounter(42)
	second := runSeededEncounter(42)

	if first.Outcome != second.Outcome {
		t.Fatalf("outcomes differ: %v vs %v", first.Outcome, second.Outcome)
	}
	if first.Rounds != second.Rounds {
		t.Fatalf("rounds differ: %d vs %d", first.Rounds, second.Rounds)
	}
	if first.DamageDealt != second.DamageDealt || first.DamageTaken != second.DamageTaken {
		t.Fatalf("damage totals differ: %d/%d vs %d/%d",
			first.DamageDealt, first.DamageTaken, second.DamageDealt, second.DamageTaken)
	}
	if first.XPEarned != second.XPEarned || first.GoldEarned != second.GoldEarned {
		t.Fatalf("rewards differ")
	}
	if len(first.Log) != len(second.Log) {
		t.Fatalf("log lengths differ: %d vs %d", len(first.Log), len(second.Log))
	}
	for i := range first.Log {
		if first.Log[i] != second.Log[i] {
			t.Fatalf("log line %d differs: %q vs %q", i, first.Log[i].Message, second.Log[i].Message)
		}
	}
}

// Scenario: the player falls to the first monster's attack mid-round. The
// second monster must not act, and the outcome must resolve to PlayerDied
// with no reward stage.
func TestPlayerDeathHaltsRound(t *testing.T) {
	// Player defends; first wolf rolls 100 (no extra swing), hits on
	// 19, 5 attack variance, 4 defense variance for 6 damage after the
	// halving, killing the 1 HP player. Trailing 100 keeps the item
	// loss roll from firing.
	roller := dice.NewScript(100, 19, 5, 4, 100)
	provider := &scriptProvider{
		actions: []Action{NewAction(ActionDefend)},
		choice:  ResurrectAcceptDeath,
	}
	e := testEngine(roller, provider, nil)

	player := testPlayer(class.Warrior, 1)
	player.HP = 1
	player.Experience = 100
	player.Gold = 100

	monsters := []*combatant.Combatant{
		testMonster("First Wolf", 50),
		testMonster("Second Wolf", 50),
	}
	result := e.StartEncounter(player, monsters, nil)

	if result.Outcome != OutcomePlayerDied {
		t.Fatalf("outcome = %v, expected PlayerDied", result.Outcome)
	}
	if result.Rounds != 1 {
		t.Errorf("rounds = %d, expected 1", result.Rounds)
	}
	if got := countLogContaining(result, "Hero"); got == 0 {
		t.Fatal("expected combat log entries about the player")
	}
	if countLogContaining(result, "Second Wolf hits") != 0 {
		t.Error("second wolf acted after the player died")
	}
	if result.XPEarned != 0 || result.GoldEarned != 0 {
		t.Error("reward stage ran for a dead player")
	}
	if result.XPLost != 10 {
		t.Errorf("XP lost = %d, expected 10%% of 100", result.XPLost)
	}
	if result.GoldLost != 50 {
		t.Errorf("gold lost = %d, expected 50%% of 100", result.GoldLost)
	}
	if player.HP != 1 {
		t.Errorf("player HP = %d, expected 1 for temple respawn", player.HP)
	}
	if !result.ShouldReturnToTemple {
		t.Error("ShouldReturnToTemple not set")
	}
}

func TestStalemateAtMaxRounds(t *testing.T) {
	cfg := config.Default()
	cfg.Combat.MaxRounds = 5

	// Both sides always miss on natural 1s.
	roller := &alwaysMissRoller{}
	provider := &scriptProvider{}
	e := NewEngine(cfg, roller, provider, nil, nil, nil)

	player := testPlayer(class.Warrior, 1)
	result := e.StartEncounter(player, []*combatant.Combatant{testMonster("Training Dummy", 50)}, nil)

	if result.Outcome != OutcomeStalemate {
		t.Fatalf("outcome = %v, expected Stalemate", result.Outcome)
	}
	if result.Rounds != 5 {
		t.Errorf("rounds = %d, expected 5", result.Rounds)
	}
}

// alwaysMissRoller forces every d20 to a natural 1 and fails every
// percentage check.
type alwaysMissRoller struct{}

func (alwaysMissRoller) D20() int                         { return 1 }
func (alwaysMissRoller) D100() int                        { return 100 }
func (alwaysMissRoller) Roll(n, sides int) int            { return n }
func (alwaysMissRoller) Intn(n int) int                   { return 0 }
func (alwaysMissRoller) Chance(percent int) bool          { return false }
func (alwaysMissRoller) Notation(s string, bonus int) int { return bonus }

func TestEscapeShortCircuitsEncounter(t *testing.T) {
	// 1: escape roll succeeds against any positive chance.
	roller := dice.NewScript(1)
	provider := &scriptProvider{actions: []Action{NewAction(ActionRetreat)}}
	e := testEngine(roller, provider, nil)

	player := testPlayer(class.Warrior, 1)
	ogre := testMonster("Ogre", 200)
	result := e.StartEncounter(player, []*combatant.Combatant{ogre}, nil)

	if result.Outcome != OutcomePlayerEscaped {
		t.Fatalf("outcome = %v, expected PlayerEscaped", result.Outcome)
	}
	if result.Rounds != 1 {
		t.Errorf("rounds = %d, expected 1 (monsters never got to act)", result.Rounds)
	}
	if result.DamageTaken != 0 {
		t.Errorf("damage taken = %d, expected 0", result.DamageTaken)
	}
	if result.XPEarned != 0 {
		t.Error("no rewards for running away")
	}
}

func TestTeammateHealsWoundedPlayer(t *testing.T) {
	e := testEngine(dice.NewScript(), &scriptProvider{actions: []Action{NewAction(ActionDefend)}}, healerAbilities())

	player := testPlayer(class.Warrior, 1)
	player.HP = 30 // under the 40% threshold

	healer := combatant.New("Mirelle", combatant.KindTeammate, class.Cleric, 5)
	healer.MaxHP = 60
	healer.HP = 60
	healer.MaxMana = 30
	healer.Mana = 30

	ogre := testMonster("Ogre", 40)
	st := e.newState(player, []*combatant.Combatant{ogre}, []*combatant.Combatant{healer})

	st.round = 1
	e.takeTurn(st, healer)

	if player.HP != 50 {
		t.Errorf("player HP = %d, expected 50 after the 20-point heal", player.HP)
	}
	if healer.Mana != 25 {
		t.Errorf("healer mana = %d, expected 25", healer.Mana)
	}
}

func TestMonsterUsesRegisteredAbility(t *testing.T) {
	registry := spellbook.NewRegistry()
	registry.Add(&spellbook.Spell{
		ID:   "fire_breath",
		Name: "Fire Breath",
		Effects: []spellbook.Effect{
			{Kind: spellbook.EffectDamage, Target: spellbook.TargetEnemy, Amount: 25},
		},
	})

	// 10: ability chance succeeds (<=50).
	e := testEngine(dice.NewScript(10), nil, spellbook.NewCaster(registry))
	player := testPlayer(class.Warrior, 5)
	drake := testMonster("Drake", 60)
	drake.Abilities = []string{"fire_breath"}
	drake.AbilityChance = 50
	st := e.newState(player, []*combatant.Combatant{drake}, nil)

	st.round = 1
	e.takeTurn(st, drake)

	if player.HP != 75 {
		t.Errorf("player HP = %d, expected 75 after fire breath", player.HP)
	}
	if !logContains(st.result, "Fire Breath") {
		t.Error("ability cast was not logged")
	}
}

func TestDuelResolvesToVictory(t *testing.T) {
	e := testEngine(dice.NewSeeded(7), AIProvider{}, nil)

	attacker := strongPlayer()
	defender := testPlayer(class.Mage, 3)
	defender.Name = "Rival"
	defender.HP = 40
	defender.MaxHP = 40

	result := e.StartDuel(attacker, defender)

	if result.Outcome != OutcomeVictory && result.Outcome != OutcomePlayerEscaped {
		t.Fatalf("unexpected duel outcome: %v", result.Outcome)
	}
	if result.Outcome == OutcomeVictory && defender.IsAlive() {
		t.Error("victory declared with the defender still standing")
	}
}

func TestDeadCombatantsNeverAct(t *testing.T) {
	e := testEngine(dice.NewScript(), &scriptProvider{}, nil)
	player := testPlayer(class.Warrior, 1)
	corpse := testMonster("Fallen Wolf", 10)
	corpse.TakeDamage(10)
	st := e.newState(player, []*combatant.Combatant{corpse}, nil)

	st.round = 1
	e.takeTurn(st, corpse)

	if player.HP != 100 {
		t.Errorf("player HP = %d, a dead monster attacked", player.HP)
	}
	if len(st.result.Log) != 0 {
		t.Errorf("dead monster produced %d log entries", len(st.result.Log))
	}
}

func TestAIProviderFocusesWeakest(t *testing.T) {
	ogre := testMonster("Ogre", 80)
	fallen := testMonster("Fallen Wolf", 10)
	fallen.TakeDamage(10)
	wolf := testMonster("Wolf", 20)
	ctx := &TurnContext{
		Round:    1,
		Monsters: []*combatant.Combatant{ogre, fallen, wolf},
	}

	action := AIProvider{}.GetAction(testPlayer(class.Warrior, 5), ctx)

	if action.Kind != ActionAttack {
		t.Fatalf("action = %v, expected an attack", action.Kind)
	}
	if action.TargetIndex != 2 {
		t.Errorf("target = %d, expected the living wolf at 2", action.TargetIndex)
	}
}
