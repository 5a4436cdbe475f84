package redis

import (
	"testing"

	"shopspawn/internal/model"
	"shopspawn/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEncoding(t *testing.T) {
	s := Snapshot{
		RunID:     "run1",
		Transform: transform.Record{Version: "1.0", ScaleX: 2, ScaleZ: -2, Origin: transform.Origin{Name: "Station"}},
		Consumables: []model.ConsumableSpawn{
			{ID: "shop_1", FoodTypeID: model.ConsumableEnergy, GameX: 1.25},
		},
		Equipment: []model.EquipmentSpawn{
			{ID: "equip_1", ItemClass: model.ItemClassEquipment, TypeID: "sword"},
		},
	}

	fields, err := encodeSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, "run1", fields[fieldRunID])

	// HGetAll hands every value back as a string.
	asStrings := make(map[string]string, len(fields))
	for k, v := range fields {
		asStrings[k] = v.(string)
	}

	back, err := decodeSnapshot(asStrings)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestDecodeSnapshot_Empty(t *testing.T) {
	_, err := decodeSnapshot(map[string]string{})
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestDecodeSnapshot_Corrupt(t *testing.T) {
	_, err := decodeSnapshot(map[string]string{fieldRunID: "x", fieldTransform: "nope"})
	assert.Error(t, err)
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open("not-a-redis-url")
	assert.Error(t, err)
}
