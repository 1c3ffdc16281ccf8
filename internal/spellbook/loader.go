package spellbook

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/status"
)

// EffectDefinition represents a spell effect in the YAML file.
type EffectDefinition struct {
	Kind     string `yaml:"kind"`
	Target   string `yaml:"target"`
	Amount   int    `yaml:"amount"`
	Dice     string `yaml:"dice,omitempty"`
	Status   string `yaml:"status,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
}

// Definition represents a spell definition from the YAML file.
type Definition struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	ManaCost    int                `yaml:"mana_cost"`
	StaminaCost int                `yaml:"stamina_cost"`
	Cooldown    int                `yaml:"cooldown"`
	Level       int                `yaml:"level"`
	MonsterOnly bool               `yaml:"monster_only"`
	Classes     []string           `yaml:"classes"`
	Effects     []EffectDefinition `yaml:"effects"`
}

// Config represents the structure of the spells.yaml file.
type Config struct {
	Spells map[string]Definition `yaml:"spells"`
}

// Registry holds all loaded spells and provides lookup.
type Registry struct {
	spells map[string]*Spell
}

// NewRegistry creates a new empty spell registry.
func NewRegistry() *Registry {
	return &Registry{
		spells: make(map[string]*Spell),
	}
}

// LoadFromYAML loads spell definitions from a YAML file into the registry.
func (r *Registry) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read spells file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse spells YAML: %w", err)
	}

	for id, def := range config.Spells {
		spell, err := FromDefinition(id, def)
		if err != nil {
			return fmt.Errorf("spell %q: %w", id, err)
		}
		r.spells[id] = spell
	}

	return nil
}

// FromDefinition creates a Spell from a Definition, validating effect and
// target kinds against the known sets.
func FromDefinition(id string, def Definition) (*Spell, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if len(def.Effects) == 0 {
		return nil, fmt.Errorf("spell has no effects")
	}

	classes := make([]class.Class, 0, len(def.Classes))
	for _, name := range def.Classes {
		c, err := class.ParseClass(name)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}

	effects := make([]Effect, len(def.Effects))
	for i, e := range def.Effects {
		kind, err := parseEffectKind(e.Kind)
		if err != nil {
			return nil, err
		}
		target, err := parseTargetKind(e.Target)
		if err != nil {
			return nil, err
		}
		effect := Effect{
			Kind:     kind,
			Target:   target,
			Amount:   e.Amount,
			Dice:     e.Dice,
			Duration: e.Duration,
		}
		if kind == EffectStatus {
			se, ok := status.Parse(e.Status)
			if !ok {
				return nil, fmt.Errorf("unknown status %q", e.Status)
			}
			effect.Status = se
			if effect.Duration <= 0 {
				effect.Duration = 3
			}
		}
		effects[i] = effect
	}

	return &Spell{
		ID:             id,
		Name:           def.Name,
		Description:    def.Description,
		ManaCost:       def.ManaCost,
		StaminaCost:    def.StaminaCost,
		Cooldown:       def.Cooldown,
		Level:          def.Level,
		MonsterOnly:    def.MonsterOnly,
		AllowedClasses: classes,
		Effects:        effects,
	}, nil
}

func parseEffectKind(s string) (EffectKind, error) {
	switch EffectKind(s) {
	case EffectDamage, EffectHeal, EffectHealPercent, EffectAbsorb,
		EffectStatus, EffectCleanse, EffectDrain:
		return EffectKind(s), nil
	default:
		return "", fmt.Errorf("unknown effect kind %q", s)
	}
}

func parseTargetKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case TargetSelf, TargetEnemy, TargetAlly, TargetAllEnemies:
		return TargetKind(s), nil
	default:
		return "", fmt.Errorf("unknown target %q", s)
	}
}

// Get returns a spell by its ID.
func (r *Registry) Get(id string) (*Spell, bool) {
	spell, exists := r.spells[id]
	return spell, exists
}

// Add registers a spell directly, replacing any existing spell with the
// same ID. Used by tests and default setups.
func (r *Registry) Add(spell *Spell) {
	r.spells[spell.ID] = spell
}

// IDs returns all spell IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.spells))
	for id := range r.spells {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForCaster returns the spells a combatant of the given class and level can
// cast, in sorted ID order. Monster abilities are never included.
func (r *Registry) ForCaster(c class.Class, level int) []*Spell {
	var result []*Spell
	for _, id := range r.IDs() {
		spell := r.spells[id]
		if spell.MonsterOnly {
			continue
		}
		if spell.Level <= level && spell.AllowedFor(c) {
			result = append(result, spell)
		}
	}
	return result
}
