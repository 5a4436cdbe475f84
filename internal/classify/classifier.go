package classify

import (
	"strings"

	"shopspawn/internal/model"
)

// EquipmentItem is the outcome of an equipment classification.
type EquipmentItem struct {
	Class  model.ItemClass
	TypeID string
	Name   string
	NameJa string
	Effect string
	Value  float64
	Color  string
	Icon   string
}

// Classifier maps shop categories to spawn kinds.
type Classifier struct {
	tables  *Tables
	rng     Rand
	weights WeightedTable[model.ConsumableKind]
}

// New builds a classifier. A nil rng selects GlobalRand.
func New(tables *Tables, rng Rand) *Classifier {
	if rng == nil {
		rng = GlobalRand
	}

	weights := make(WeightedTable[model.ConsumableKind], len(tables.RandomWeights))
	for i, w := range tables.RandomWeights {
		weights[i] = Weighted[model.ConsumableKind]{Value: w.Kind, Weight: w.Weight}
	}

	return &Classifier{
		tables:  tables,
		rng:     rng,
		weights: weights,
	}
}

// WithRand returns a classifier sharing the tables but drawing from rng.
func (c *Classifier) WithRand(rng Rand) *Classifier {
	if rng == nil {
		rng = GlobalRand
	}
	clone := *c
	clone.rng = rng
	return &clone
}

// Consumable returns the buff kind for a category. The second result is false
// when the category is not in the consumable table.
func (c *Classifier) Consumable(category string) (model.ConsumableKind, bool) {
	kind, ok := c.tables.Consumables[normalizeCategory(category)]
	if !ok {
		return "", false
	}
	if kind == RandomKind {
		return c.RandomConsumable(), true
	}
	return model.ConsumableKind(kind), true
}

// RandomConsumable draws a kind from the weighted distribution.
func (c *Classifier) RandomConsumable() model.ConsumableKind {
	return c.weights.Pick(c.rng)
}

// Equipment returns the item for a category. The second result is false when
// the category is not in the equipment table.
func (c *Classifier) Equipment(category string) (EquipmentItem, bool) {
	candidates, ok := c.tables.Equipment[normalizeCategory(category)]
	if !ok || len(candidates) == 0 {
		return EquipmentItem{}, false
	}

	choice := candidates[c.rng.IntN(len(candidates))]
	if choice == GemCandidate {
		gem := c.tables.Gems[c.rng.IntN(len(c.tables.Gems))]
		return itemFromDef(model.ItemClassGem, gem), true
	}

	def, ok := c.tables.EquipmentType(choice)
	if !ok {
		return EquipmentItem{}, false
	}
	return itemFromDef(model.ItemClassEquipment, def), true
}

func itemFromDef(class model.ItemClass, def ItemDef) EquipmentItem {
	return EquipmentItem{
		Class:  class,
		TypeID: def.ID,
		Name:   def.Name,
		NameJa: def.NameJa,
		Effect: def.Effect,
		Value:  def.Value,
		Color:  def.Color,
		Icon:   def.Icon,
	}
}

func normalizeCategory(category string) string {
	return strings.TrimSpace(strings.ToLower(category))
}
