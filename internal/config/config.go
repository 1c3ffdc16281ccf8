// Package config holds engine-wide tuning loaded from YAML with
// environment variable overrides.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root engine configuration.
type Config struct {
	Combat  CombatConfig  `yaml:"combat"`
	Rewards RewardConfig  `yaml:"rewards"`
	Death   DeathConfig   `yaml:"death"`
	History HistoryConfig `yaml:"history"`
}

// CombatConfig tunes the encounter loop and formulas.
type CombatConfig struct {
	// DifficultyMultiplier scales all damage dealt by monsters.
	DifficultyMultiplier float64 `yaml:"difficulty_multiplier" env:"GRIMHALLOW_DIFFICULTY_MULT"`

	// EscapeCap is the maximum retreat chance in percent.
	EscapeCap int `yaml:"escape_cap" env:"GRIMHALLOW_ESCAPE_CAP"`

	// MaxRounds ends an encounter as a stalemate when exceeded.
	MaxRounds int `yaml:"max_rounds" env:"GRIMHALLOW_MAX_ROUNDS"`

	// WorldPlague enables the plague damage rules world-wide.
	WorldPlague bool `yaml:"world_plague" env:"GRIMHALLOW_WORLD_PLAGUE"`
}

// RewardConfig tunes XP and gold payouts.
type RewardConfig struct {
	XPMultiplier    float64 `yaml:"xp_multiplier" env:"GRIMHALLOW_XP_MULT"`
	GoldMultiplier  float64 `yaml:"gold_multiplier" env:"GRIMHALLOW_GOLD_MULT"`
	EventMultiplier float64 `yaml:"event_multiplier" env:"GRIMHALLOW_EVENT_MULT"`
	SpouseBonus     float64 `yaml:"spouse_bonus"`
	DivineBonus     float64 `yaml:"divine_bonus"`
}

// DeathConfig tunes the resurrection branch and death penalties.
type DeathConfig struct {
	TempleBaseCost     int `yaml:"temple_base_cost"`
	TempleCostPerLevel int `yaml:"temple_cost_per_level"`
	TempleHealPercent  int `yaml:"temple_heal_percent"`
	XPPenaltyPercent   int `yaml:"xp_penalty_percent"`
	GoldPenaltyPercent int `yaml:"gold_penalty_percent"`
	ItemLossChance     int `yaml:"item_loss_chance"`
}

// HistoryConfig selects the combat history store.
type HistoryConfig struct {
	// Driver specifies which database to use: "sqlite" or "postgres"
	Driver string `yaml:"driver" env:"GRIMHALLOW_HISTORY_DRIVER"`

	// SQLitePath is the database file for the sqlite driver
	SQLitePath string `yaml:"sqlite_path" env:"GRIMHALLOW_HISTORY_PATH"`

	// Postgres connection settings
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"GRIMHALLOW_PG_HOST"`
	Port     int    `yaml:"port" env:"GRIMHALLOW_PG_PORT"`
	User     string `yaml:"user" env:"GRIMHALLOW_PG_USER"`
	Password string `yaml:"password" env:"GRIMHALLOW_PG_PASSWORD"`
	Database string `yaml:"database" env:"GRIMHALLOW_PG_DATABASE"`
	SSLMode  string `yaml:"ssl_mode"`
}

// Default returns a Config with the stock engine tuning.
func Default() *Config {
	return &Config{
		Combat: CombatConfig{
			DifficultyMultiplier: 1.0,
			EscapeCap:            85,
			MaxRounds:            200,
		},
		Rewards: RewardConfig{
			XPMultiplier:    1.0,
			GoldMultiplier:  1.0,
			EventMultiplier: 1.0,
			SpouseBonus:     0.10,
			DivineBonus:     0.15,
		},
		Death: DeathConfig{
			TempleBaseCost:     500,
			TempleCostPerLevel: 100,
			TempleHealPercent:  75,
			XPPenaltyPercent:   10,
			GoldPenaltyPercent: 50,
			ItemLossChance:     5,
		},
		History: HistoryConfig{
			Driver:     "sqlite",
			SQLitePath: "data/grimhallow.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
	}
}

// Load reads the config file at path (missing file is not an error), then
// applies environment variable overrides on top.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return config, err
			}
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return Default(), err
		}
	}

	if err := env.Parse(config); err != nil {
		return config, err
	}

	return config, nil
}
