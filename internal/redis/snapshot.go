package redis

import (
	"context"
	"errors"
	"fmt"

	"shopspawn/internal/model"
	"shopspawn/internal/transform"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the hash holding the published spawn set.
const SnapshotKey = "shopspawn:snapshot"

const (
	fieldRunID       = "run_id"
	fieldTransform   = "transform"
	fieldConsumables = "consumables"
	fieldEquipment   = "equipment"
)

// ErrNoSnapshot is returned when nothing has been published yet.
var ErrNoSnapshot = errors.New("no spawn snapshot in redis")

// Snapshot is the spawn set served by the API.
type Snapshot struct {
	RunID       string
	Transform   transform.Record
	Consumables []model.ConsumableSpawn
	Equipment   []model.EquipmentSpawn
}

func encodeSnapshot(s Snapshot) (map[string]any, error) {
	tr, err := json.Marshal(s.Transform)
	if err != nil {
		return nil, fmt.Errorf("encoding transform: %w", err)
	}
	consumables, err := json.Marshal(s.Consumables)
	if err != nil {
		return nil, fmt.Errorf("encoding consumables: %w", err)
	}
	equipment, err := json.Marshal(s.Equipment)
	if err != nil {
		return nil, fmt.Errorf("encoding equipment: %w", err)
	}
	return map[string]any{
		fieldRunID:       s.RunID,
		fieldTransform:   string(tr),
		fieldConsumables: string(consumables),
		fieldEquipment:   string(equipment),
	}, nil
}

func decodeSnapshot(fields map[string]string) (Snapshot, error) {
	if len(fields) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}

	s := Snapshot{RunID: fields[fieldRunID]}
	if err := json.Unmarshal([]byte(fields[fieldTransform]), &s.Transform); err != nil {
		return Snapshot{}, fmt.Errorf("decoding transform: %w", err)
	}
	if err := json.Unmarshal([]byte(fields[fieldConsumables]), &s.Consumables); err != nil {
		return Snapshot{}, fmt.Errorf("decoding consumables: %w", err)
	}
	if err := json.Unmarshal([]byte(fields[fieldEquipment]), &s.Equipment); err != nil {
		return Snapshot{}, fmt.Errorf("decoding equipment: %w", err)
	}
	return s, nil
}

// SaveSnapshot replaces the published snapshot atomically.
func SaveSnapshot(ctx context.Context, client *redis.Client, s Snapshot) error {
	fields, err := encodeSnapshot(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, SnapshotKey)
		pipe.HSet(ctx, SnapshotKey, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the published snapshot.
func LoadSnapshot(ctx context.Context, client *redis.Client) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields, err := client.HGetAll(ctx, SnapshotKey).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return decodeSnapshot(fields)
}
