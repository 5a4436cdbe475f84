package spawn

import (
	"sort"

	"shopspawn/internal/model"

	"github.com/paulmach/orb"
)

// Count is a (key, occurrences) pair.
type Count struct {
	Key   string
	Count int
}

// Summary describes a generation result.
type Summary struct {
	Consumables     int
	Equipment       int
	Skipped         int
	ConsumableKinds []Count
	EquipmentTypes  []Count
	Gems            int
	// Bounds covers every spawn in game coordinates (X, Z). Empty when there are no spawns.
	Bounds orb.Bound
	Empty  bool
}

// Summarize counts spawns by kind and computes their game-coordinate bounds.
func Summarize(res Result) Summary {
	s := Summary{
		Consumables: len(res.Consumables),
		Equipment:   len(res.Equipment),
		Skipped:     len(res.Skipped),
		Empty:       true,
	}

	kinds := make(map[string]int)
	types := make(map[string]int)

	extend := func(x, z float64) {
		p := orb.Point{x, z}
		if s.Empty {
			s.Bounds = p.Bound()
			s.Empty = false
			return
		}
		s.Bounds = s.Bounds.Extend(p)
	}

	for _, c := range res.Consumables {
		kinds[string(c.FoodTypeID)]++
		extend(c.GameX, c.GameZ)
	}
	for _, e := range res.Equipment {
		types[e.TypeID]++
		if e.ItemClass == model.ItemClassGem {
			s.Gems++
		}
		extend(e.GameX, e.GameZ)
	}

	s.ConsumableKinds = sortedCounts(kinds)
	s.EquipmentTypes = sortedCounts(types)
	return s
}

// sortedCounts orders by descending count, then key.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
