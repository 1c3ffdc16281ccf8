// balance is a Monte Carlo simulator for encounter tuning. It runs the
// real combat engine with AI-driven players over many seeded encounters
// and reports win rates, fight length, and damage flow per matchup.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/logger"
	"github.com/grimhallow/grimhallow/internal/monster"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

func main() {
	configFile := flag.String("config", "data/engine.yaml", "Path to engine config YAML file")
	monstersFile := flag.String("monsters", "data/monsters.yaml", "Path to monsters YAML file")
	spellsFile := flag.String("spells", "data/spells.yaml", "Path to spells YAML file")
	playerClass := flag.String("class", "warrior", "Player class to simulate")
	playerLevel := flag.Int("level", 1, "Player level to simulate")
	fight := flag.String("fight", "wolf", "Comma-separated monster IDs per encounter")
	iterations := flag.Int("iterations", 1000, "Encounters to simulate per matchup")
	baseSeed := flag.Int64("seed", 1, "Base dice seed (encounter i uses seed+i)")
	sweep := flag.Bool("sweep", false, "Sweep every class across levels 1, 5, 10, 15, 20")
	flag.Parse()

	// Keep simulator output readable: warnings and errors only
	logger.Initialize(logger.Config{Level: "WARNING", ConsoleEnabled: true, ConsoleFormat: "text"})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load engine config: %v", err)
	}

	monsters, err := monster.LoadFromYAML(*monstersFile)
	if err != nil {
		log.Fatalf("Failed to load monsters config: %v", err)
	}

	registry := spellbook.NewRegistry()
	if err := registry.LoadFromYAML(*spellsFile); err != nil {
		log.Fatalf("Failed to load spells config: %v", err)
	}
	caster := spellbook.NewCaster(registry)

	ids := splitIDs(*fight)
	for _, id := range ids {
		if monsters.Build(id) == nil {
			log.Fatalf("Unknown monster ID: %s", id)
		}
	}

	sim := &simulator{
		cfg:      cfg,
		monsters: monsters,
		caster:   caster,
		baseSeed: *baseSeed,
	}

	fmt.Println("=== Encounter Simulation ===")
	fmt.Printf("Opponents: %s, iterations per matchup: %d\n\n", strings.Join(ids, ", "), *iterations)
	printHeader()

	if *sweep {
		for _, cls := range class.AllClasses() {
			for _, level := range []int{1, 5, 10, 15, 20} {
				printRow(cls, level, sim.run(cls, level, ids, *iterations))
			}
		}
		return
	}

	cls, err := class.ParseClass(*playerClass)
	if err != nil {
		log.Fatalf("Invalid class: %v", err)
	}
	printRow(cls, *playerLevel, sim.run(cls, *playerLevel, ids, *iterations))
}

// summary aggregates the outcomes of one matchup.
type summary struct {
	iterations  int
	wins        int
	deaths      int
	escapes     int
	stalemates  int
	totalRounds int
	minRounds   int
	maxRounds   int
	damageOut   int
	damageIn    int
	xpEarned    int
}

type simulator struct {
	cfg      *config.Config
	monsters *monster.Config
	caster   *spellbook.Caster
	baseSeed int64
}

// run simulates one matchup. Encounter i uses seed baseSeed+i, so a run
// is reproducible and individual encounters can be replayed in the arena.
func (s *simulator) run(cls class.Class, level int, ids []string, iterations int) summary {
	sum := summary{iterations: iterations, minRounds: int(^uint(0) >> 1)}

	for i := 0; i < iterations; i++ {
		roller := dice.NewSeeded(s.baseSeed + int64(i))
		engine := combat.NewEngine(s.cfg, roller, combat.AIProvider{}, s.caster, nil, nil)

		player := buildPlayer(cls, level)
		var snapshots []*combatant.Combatant
		for _, id := range ids {
			snapshots = append(snapshots, s.monsters.Build(id).ToCombatant(roller))
		}

		result := engine.StartEncounter(player, snapshots, nil)

		switch result.Outcome {
		case combat.OutcomeVictory:
			sum.wins++
		case combat.OutcomePlayerDied:
			sum.deaths++
		case combat.OutcomePlayerEscaped:
			sum.escapes++
		case combat.OutcomeStalemate:
			sum.stalemates++
		}
		sum.totalRounds += result.Rounds
		sum.damageOut += result.DamageDealt
		sum.damageIn += result.DamageTaken
		sum.xpEarned += result.XPEarned
		if result.Rounds < sum.minRounds {
			sum.minRounds = result.Rounds
		}
		if result.Rounds > sum.maxRounds {
			sum.maxRounds = result.Rounds
		}
	}
	return sum
}

// buildPlayer creates the simulated character sheet for a matchup.
func buildPlayer(cls class.Class, level int) *combatant.Combatant {
	def := class.GetDefinition(cls)

	c := combatant.New("Sim", combatant.KindPlayer, cls, level)
	c.MaxHP = def.HitDie + (level-1)*combatant.HPPerLevel
	c.HP = c.MaxHP
	c.MaxMana = level * combatant.ManaPerLevel
	c.Mana = c.MaxMana
	c.MaxStamina = 30 + level*5
	c.Stamina = c.MaxStamina
	c.WeaponPower = 2 + level/3
	c.ArmorPower = level / 4
	c.Experience = combatant.XPForLevel(level)
	return c
}

func splitIDs(fight string) []string {
	var ids []string
	for _, id := range strings.Split(fight, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		log.Fatal("No monsters to fight")
	}
	return ids
}

func printHeader() {
	fmt.Printf("%-10s %5s | %6s %6s %6s %6s | %9s %5s %5s | %8s %8s\n",
		"Class", "Level", "Win%", "Die%", "Flee%", "Draw%",
		"AvgRounds", "Min", "Max", "AvgDmgO", "AvgDmgI")
	fmt.Println(strings.Repeat("-", 100))
}

func printRow(cls class.Class, level int, sum summary) {
	n := float64(sum.iterations)
	fmt.Printf("%-10s %5d | %5.1f%% %5.1f%% %5.1f%% %5.1f%% | %9.1f %5d %5d | %8.1f %8.1f\n",
		cls.String(), level,
		float64(sum.wins)/n*100, float64(sum.deaths)/n*100,
		float64(sum.escapes)/n*100, float64(sum.stalemates)/n*100,
		float64(sum.totalRounds)/n, sum.minRounds, sum.maxRounds,
		float64(sum.damageOut)/n, float64(sum.damageIn)/n)
}
