package classify

import (
	"testing"

	"shopspawn/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, seed uint64) *Classifier {
	t.Helper()
	tables, err := DefaultTables()
	require.NoError(t, err)
	return New(tables, NewLockedRand(seed))
}

func TestClassifier_DeterministicConsumables(t *testing.T) {
	c := newTestClassifier(t, 1)

	tests := []struct {
		category string
		want     model.ConsumableKind
	}{
		{"cafe", model.ConsumableSpeedUp},
		{"bar", model.ConsumableSpeedUp},
		{"restaurant", model.ConsumableEnergy},
		{"bakery", model.ConsumableEnergy},
		{"fast_food", model.ConsumableRecoveryCooldown},
		{" Cafe ", model.ConsumableSpeedUp},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				kind, ok := c.Consumable(tt.category)
				require.True(t, ok)
				assert.Equal(t, tt.want, kind)
			}
		})
	}
}

func TestClassifier_RandomConsumable(t *testing.T) {
	c := newTestClassifier(t, 2)

	seen := make(map[model.ConsumableKind]int)
	for i := 0; i < 2000; i++ {
		kind, ok := c.Consumable("convenience")
		require.True(t, ok)
		require.True(t, kind.Valid())
		seen[kind]++
	}

	assert.Len(t, seen, 3)
	assert.Greater(t, seen[model.ConsumableEnergy], seen[model.ConsumableSpeedUp])
	assert.Greater(t, seen[model.ConsumableSpeedUp], seen[model.ConsumableRecoveryCooldown])
}

func TestClassifier_RandomConsumableConverges(t *testing.T) {
	const trials = 100000
	c := newTestClassifier(t, 3)

	counts := make(map[model.ConsumableKind]int)
	for i := 0; i < trials; i++ {
		counts[c.RandomConsumable()]++
	}

	assert.InDelta(t, 0.70, float64(counts[model.ConsumableEnergy])/trials, 0.01)
	assert.InDelta(t, 0.20, float64(counts[model.ConsumableSpeedUp])/trials, 0.01)
	assert.InDelta(t, 0.10, float64(counts[model.ConsumableRecoveryCooldown])/trials, 0.01)
}

func TestClassifier_JewelryIsAlwaysGem(t *testing.T) {
	c := newTestClassifier(t, 4)
	tables, _ := DefaultTables()

	gemIDs := make(map[string]bool)
	for _, g := range tables.Gems {
		gemIDs[g.ID] = true
	}

	drawn := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		item, ok := c.Equipment("jewelry")
		require.True(t, ok)
		assert.Equal(t, model.ItemClassGem, item.Class)
		assert.True(t, gemIDs[item.TypeID], "unexpected gem %q", item.TypeID)
		drawn[item.TypeID] = true
	}
	assert.Len(t, drawn, GemTableSize)

	_, ok := c.Consumable("jewelry")
	assert.False(t, ok)
}

func TestClassifier_EquipmentCandidates(t *testing.T) {
	c := newTestClassifier(t, 5)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		item, ok := c.Equipment("hardware")
		require.True(t, ok)
		assert.Equal(t, model.ItemClassEquipment, item.Class)
		assert.NotEmpty(t, item.Effect)
		assert.NotEmpty(t, item.Color)
		seen[item.TypeID] = true
	}
	assert.Equal(t, map[string]bool{"sword": true, "shield": true, "helmet": true}, seen)
}

func TestClassifier_UnknownCategory(t *testing.T) {
	c := newTestClassifier(t, 6)

	for _, category := range []string{"hairdresser", "", "other"} {
		_, ok := c.Consumable(category)
		assert.False(t, ok, category)
		_, ok = c.Equipment(category)
		assert.False(t, ok, category)
	}
}

func TestClassifier_SameSeedSameDraws(t *testing.T) {
	a := newTestClassifier(t, 99)
	b := newTestClassifier(t, 99)

	for i := 0; i < 100; i++ {
		ka, _ := a.Consumable("supermarket")
		kb, _ := b.Consumable("supermarket")
		assert.Equal(t, ka, kb)

		ia, _ := a.Equipment("gift")
		ib, _ := b.Equipment("gift")
		assert.Equal(t, ia, ib)
	}
}

func TestNew_NilRandUsesGlobal(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	c := New(tables, nil)
	kind, ok := c.Consumable("supermarket")
	assert.True(t, ok)
	assert.True(t, kind.Valid())
}

func TestClassifier_WithRandSharesTables(t *testing.T) {
	base := newTestClassifier(t, 1)

	a := base.WithRand(NewKeyedRand(5, 100))
	b := base.WithRand(NewKeyedRand(5, 100))
	for i := 0; i < 20; i++ {
		ia, ok := a.Equipment("hardware")
		require.True(t, ok)
		ib, _ := b.Equipment("hardware")
		assert.Equal(t, ia, ib)
	}

	kind, ok := base.WithRand(nil).Consumable("cafe")
	require.True(t, ok)
	assert.Equal(t, model.ConsumableSpeedUp, kind)
}
