package monster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grimhallow/grimhallow/internal/logger"
	"gopkg.in/yaml.v3"
)

// LootEntryYAML represents a loot entry in YAML format
type LootEntryYAML struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// Definition represents a monster definition from the YAML file
type Definition struct {
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description"`
	Level         int             `yaml:"level"`
	Health        int             `yaml:"health"`
	Strength      int             `yaml:"strength"`
	Dexterity     int             `yaml:"dexterity"`
	Defence       int             `yaml:"defence"`
	WeaponPower   int             `yaml:"weapon_power"`
	ArmorPower    int             `yaml:"armor_power"`
	Experience    int             `yaml:"experience"`
	GoldMin       int             `yaml:"gold_min"`
	GoldMax       int             `yaml:"gold_max"`
	Boss          bool            `yaml:"boss"`
	MobType       string          `yaml:"mob_type"`
	LootTable     []LootEntryYAML `yaml:"loot_table"`
	Abilities     []string        `yaml:"abilities"`
	AbilityChance int             `yaml:"ability_chance"`
}

// Config represents the structure of the monsters.yaml file
type Config struct {
	Monsters map[string]Definition `yaml:"monsters"`
}

// LoadFromYAML loads monster definitions from a YAML file
func LoadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monsters file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse monsters YAML: %w", err)
	}

	// Validate definitions
	for id, def := range config.Monsters {
		if def.Health <= 0 {
			logger.Warning("Monster auto-correction applied",
				"monster_id", id,
				"issue", "health <= 0",
				"action", "set health=1")
			def.Health = 1
			config.Monsters[id] = def
		}
		if len(def.Abilities) > 0 && def.AbilityChance <= 0 {
			def.AbilityChance = 25
			config.Monsters[id] = def
		}
	}

	return &config, nil
}

// LoadFromDirectory loads and merges all YAML files from a directory
func LoadFromDirectory(dir string) (*Config, error) {
	merged := &Config{Monsters: make(map[string]Definition)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fileCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		filePath := filepath.Join(dir, name)
		config, err := LoadFromYAML(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
		}
		merged.Merge(config)
		fileCount++
	}

	logger.Info("Loaded monsters", "dir", dir, "files", fileCount, "total", len(merged.Monsters))
	return merged, nil
}

// Merge combines another Config into this one
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	for id, def := range other.Monsters {
		c.Monsters[id] = def
	}
}

// Build creates a Monster from a definition ID, or nil if unknown.
func (c *Config) Build(id string) *Monster {
	def, ok := c.Monsters[id]
	if !ok {
		return nil
	}
	return FromDefinition(id, def)
}

// IDs returns all defined monster IDs.
func (c *Config) IDs() []string {
	ids := make([]string, 0, len(c.Monsters))
	for id := range c.Monsters {
		ids = append(ids, id)
	}
	return ids
}

// FromDefinition converts a YAML definition into a Monster.
func FromDefinition(id string, def Definition) *Monster {
	m := &Monster{
		ID:            id,
		Name:          def.Name,
		Description:   def.Description,
		Level:         def.Level,
		Health:        def.Health,
		Strength:      def.Strength,
		Dexterity:     def.Dexterity,
		Defence:       def.Defence,
		WeaponPower:   def.WeaponPower,
		ArmorPower:    def.ArmorPower,
		Experience:    def.Experience,
		GoldMin:       def.GoldMin,
		GoldMax:       def.GoldMax,
		IsBoss:        def.Boss,
		MobType:       StringToMobType(def.MobType),
		Abilities:     def.Abilities,
		AbilityChance: def.AbilityChance,
	}
	for _, entry := range def.LootTable {
		m.LootTable = append(m.LootTable, LootEntry{
			ItemID:     entry.Item,
			DropChance: entry.Chance,
		})
	}
	return m
}
