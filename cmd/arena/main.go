package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
	"github.com/grimhallow/grimhallow/internal/dice"
	"github.com/grimhallow/grimhallow/internal/history"
	"github.com/grimhallow/grimhallow/internal/logger"
	"github.com/grimhallow/grimhallow/internal/monster"
	"github.com/grimhallow/grimhallow/internal/spectator"
	"github.com/grimhallow/grimhallow/internal/spellbook"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/engine.yaml", "Path to engine config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	monstersFile := flag.String("monsters", "data/monsters.yaml", "Path to monsters YAML file")
	spellsFile := flag.String("spells", "data/spells.yaml", "Path to spells YAML file")
	seed := flag.Int64("seed", 0, "Dice seed (default: random based on current time)")
	playerName := flag.String("name", "Hero", "Player character name")
	playerClass := flag.String("class", "warrior", "Player character class")
	playerLevel := flag.Int("level", 1, "Player character level")
	fight := flag.String("fight", "wolf", "Comma-separated monster IDs to fight")
	auto := flag.Bool("auto", false, "Drive the player with the built-in AI instead of the console")
	wsPort := flag.Int("wsport", 0, "Spectator WebSocket port (0 = disabled)")
	noHistory := flag.Bool("no-history", false, "Skip recording the encounter to the history database")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting Grimhallow arena")

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load engine config: %v", err)
	}

	// Use provided seed or generate from time
	diceSeed := *seed
	if diceSeed == 0 {
		diceSeed = time.Now().UnixNano()
	}
	logger.Info("Dice seed selected", "seed", diceSeed, "random", *seed == 0)
	roller := dice.NewSeeded(diceSeed)

	// Load monster definitions
	monsters, err := monster.LoadFromYAML(*monstersFile)
	if err != nil {
		log.Fatalf("Failed to load monsters config: %v", err)
	}
	logger.Info("Monsters loaded", "count", len(monsters.Monsters))

	// Load spells
	registry := spellbook.NewRegistry()
	if err := registry.LoadFromYAML(*spellsFile); err != nil {
		log.Fatalf("Failed to load spells config: %v", err)
	}
	logger.Info("Spells loaded", "count", len(registry.IDs()))
	caster := spellbook.NewCaster(registry)

	// Open the combat history store
	var sink combat.EventSink
	if !*noHistory {
		store, err := history.Open(cfg.History)
		if err != nil {
			logger.Warning("Failed to open history store, recording disabled", "error", err)
		} else {
			defer store.Close()
			sink = store
			logger.Info("History store opened", "driver", cfg.History.Driver)
		}
	}

	// Wire emitters: console always, spectator hub when requested
	emitters := []combat.Emitter{consoleEmitter{}}
	if *wsPort > 0 {
		hub := spectator.NewHub()
		emitters = append(emitters, hub)
		addr := fmt.Sprintf(":%d", *wsPort)
		go func() {
			if err := http.ListenAndServe(addr, hub.Handler()); err != nil {
				log.Fatalf("Spectator server error: %v", err)
			}
		}()
		logger.Info("Spectator feed running", "port", *wsPort)
	}

	cls, err := class.ParseClass(*playerClass)
	if err != nil {
		log.Fatalf("Invalid class: %v", err)
	}
	player := newPlayer(*playerName, cls, *playerLevel)

	var snapshots []*combatant.Combatant
	for _, id := range strings.Split(*fight, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		m := monsters.Build(id)
		if m == nil {
			log.Fatalf("Unknown monster ID: %s", id)
		}
		snapshots = append(snapshots, m.ToCombatant(roller))
	}
	if len(snapshots) == 0 {
		log.Fatal("No monsters to fight")
	}

	var provider combat.ActionProvider
	if *auto {
		provider = combat.AIProvider{}
	} else {
		provider = newConsoleProvider(os.Stdin, os.Stdout, caster)
	}

	engine := combat.NewEngine(cfg, roller, provider, caster, multiEmitter(emitters), sink)
	result := engine.StartEncounter(player, snapshots, nil)

	printSummary(result, player)
}

// newPlayer builds a fresh character sheet sized by class hit die and level.
func newPlayer(name string, cls class.Class, level int) *combatant.Combatant {
	if level < 1 {
		level = 1
	}
	def := class.GetDefinition(cls)

	c := combatant.New(name, combatant.KindPlayer, cls, level)
	c.MaxHP = def.HitDie + (level-1)*combatant.HPPerLevel + c.ConstitutionMod()*level
	if c.MaxHP < 1 {
		c.MaxHP = 1
	}
	c.HP = c.MaxHP
	c.MaxMana = level * combatant.ManaPerLevel
	c.Mana = c.MaxMana
	c.MaxStamina = 30 + level*5
	c.Stamina = c.MaxStamina
	c.WeaponPower = 2
	c.Gold = 50
	c.Experience = combatant.XPForLevel(level)
	return c
}

// consoleEmitter prints combat log lines to stdout as they happen.
type consoleEmitter struct{}

func (consoleEmitter) Emit(message string, style combat.Style) {
	switch style {
	case combat.StyleSystem:
		fmt.Printf("== %s\n", message)
	case combat.StyleReward:
		fmt.Printf("** %s\n", message)
	default:
		fmt.Printf("   %s\n", message)
	}
}

// multiEmitter fans one log line out to several emitters.
type multiEmitter []combat.Emitter

func (m multiEmitter) Emit(message string, style combat.Style) {
	for _, e := range m {
		e.Emit(message, style)
	}
}

func printSummary(result *combat.CombatResult, player *combatant.Combatant) {
	fmt.Println()
	fmt.Printf("Encounter %s: %s after %d rounds\n", result.ID, result.Outcome, result.Rounds)
	fmt.Printf("Damage dealt: %d, damage taken: %d\n", result.DamageDealt, result.DamageTaken)
	if len(result.DefeatedMonsters) > 0 {
		fmt.Printf("Defeated: %s\n", strings.Join(result.DefeatedMonsters, ", "))
	}
	if result.XPEarned > 0 || result.GoldEarned > 0 {
		fmt.Printf("Earned %d XP and %d gold\n", result.XPEarned, result.GoldEarned)
	}
	if len(result.Drops) > 0 {
		fmt.Printf("Loot: %s\n", strings.Join(result.Drops, ", "))
	}
	if result.XPLost > 0 || result.GoldLost > 0 || result.GoldSpent > 0 {
		fmt.Printf("Lost %d XP, %d gold; spent %d gold\n", result.XPLost, result.GoldLost, result.GoldSpent)
	}
	fmt.Printf("%s: level %d, %d/%d HP, %d gold (%d banked)\n",
		player.Name, player.Level, player.HP, player.MaxHP, player.Gold, player.BankGold)
}
