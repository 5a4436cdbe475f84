package classify

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"sync"

	"shopspawn/internal/model"

	"gopkg.in/yaml.v3"
)

// RandomKind marks a consumable category whose kind is drawn from RandomWeights.
const RandomKind = "random"

// GemCandidate is the equipment candidate that triggers a birthstone draw.
const GemCandidate = "gem"

// GemTableSize is the number of birthstones a table must carry.
const GemTableSize = 12

//go:embed tables.yaml
var defaultTablesYAML []byte

// KindWeight is one row of the random consumable distribution.
type KindWeight struct {
	Kind   model.ConsumableKind `yaml:"kind"`
	Weight float64              `yaml:"weight"`
}

// ItemDef describes an equipment type or a gem.
type ItemDef struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	NameJa string  `yaml:"name_ja"`
	Effect string  `yaml:"effect"`
	Value  float64 `yaml:"value"`
	Color  string  `yaml:"color"`
	Icon   string  `yaml:"icon"`
}

// Tables holds every static lookup the classifier needs.
type Tables struct {
	Consumables    map[string]string   `yaml:"consumables"`
	RandomWeights  []KindWeight        `yaml:"random_weights"`
	Equipment      map[string][]string `yaml:"equipment"`
	EquipmentTypes []ItemDef           `yaml:"equipment_types"`
	Gems           []ItemDef           `yaml:"gems"`

	typeIndex map[string]ItemDef
}

var (
	cachedTables *Tables
	tablesErr    error
	tablesOnce   sync.Once
)

// DefaultTables returns the embedded tables, parsing them once.
func DefaultTables() (*Tables, error) {
	tablesOnce.Do(func() {
		cachedTables, tablesErr = ParseTables(defaultTablesYAML)
		if tablesErr != nil {
			log.Printf("Failed to load embedded classification tables: %v", tablesErr)
		}
	})
	return cachedTables, tablesErr
}

// LoadTables reads a tables file from disk.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	t, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	return t, nil
}

// ParseTables decodes and validates a YAML tables document.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	var total float64
	for _, w := range t.RandomWeights {
		if !w.Kind.Valid() {
			return fmt.Errorf("random_weights: unknown kind %q", w.Kind)
		}
		if w.Weight < 0 {
			return fmt.Errorf("random_weights: negative weight for %q", w.Kind)
		}
		total += w.Weight
	}
	if total <= 0 {
		return fmt.Errorf("random_weights: total weight must be positive")
	}

	for category, kind := range t.Consumables {
		if kind != RandomKind && !model.ConsumableKind(kind).Valid() {
			return fmt.Errorf("consumables: category %q maps to unknown kind %q", category, kind)
		}
	}

	t.typeIndex = make(map[string]ItemDef, len(t.EquipmentTypes))
	for _, def := range t.EquipmentTypes {
		if def.ID == "" || def.ID == GemCandidate {
			return fmt.Errorf("equipment_types: invalid id %q", def.ID)
		}
		if _, dup := t.typeIndex[def.ID]; dup {
			return fmt.Errorf("equipment_types: duplicate id %q", def.ID)
		}
		t.typeIndex[def.ID] = def
	}

	if len(t.Gems) != GemTableSize {
		return fmt.Errorf("gems: expected %d entries, got %d", GemTableSize, len(t.Gems))
	}

	for category, candidates := range t.Equipment {
		if len(candidates) == 0 {
			return fmt.Errorf("equipment: category %q has no candidates", category)
		}
		for _, c := range candidates {
			if c == GemCandidate {
				continue
			}
			if _, ok := t.typeIndex[c]; !ok {
				return fmt.Errorf("equipment: category %q references unknown type %q", category, c)
			}
		}
	}

	return nil
}

// EquipmentType looks up an equipment definition by id.
func (t *Tables) EquipmentType(id string) (ItemDef, bool) {
	def, ok := t.typeIndex[id]
	return def, ok
}
