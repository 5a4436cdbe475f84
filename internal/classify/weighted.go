package classify

// Weighted pairs a value with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedTable is an ordered discrete distribution.
type WeightedTable[T any] []Weighted[T]

// Total returns the sum of all weights.
func (w WeightedTable[T]) Total() float64 {
	var total float64
	for _, e := range w {
		total += e.Weight
	}
	return total
}

// PickAt returns the first entry whose cumulative weight strictly exceeds draw.
// A draw that lands exactly on a boundary resolves to the following entry.
// Draws at or past the total fall back to the last positive-weight entry.
func (w WeightedTable[T]) PickAt(draw float64) T {
	remaining := draw
	for _, e := range w {
		remaining -= e.Weight
		if remaining < 0 {
			return e.Value
		}
	}

	for i := len(w) - 1; i >= 0; i-- {
		if w[i].Weight > 0 {
			return w[i].Value
		}
	}
	var zero T
	return zero
}

// Pick draws uniformly in [0, Total()) and resolves the draw with PickAt.
func (w WeightedTable[T]) Pick(rng Rand) T {
	return w.PickAt(rng.Float64() * w.Total())
}
