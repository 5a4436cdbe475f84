package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopspawn/internal/model"
	"shopspawn/internal/transform"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"
)

const batchSize = 500

// ErrNoRuns is returned when the spawn tables are empty.
var ErrNoRuns = errors.New("no spawn runs stored")

// Run is one persisted generation run.
type Run struct {
	ID          string
	Description string
	Transform   transform.Record
	Consumables []model.ConsumableSpawn
	Equipment   []model.EquipmentSpawn
	Skipped     int
	CreatedAt   time.Time
}

func runToPG(run Run) (model.SpawnRunPG, error) {
	tr, err := json.Marshal(run.Transform)
	if err != nil {
		return model.SpawnRunPG{}, fmt.Errorf("encoding transform: %w", err)
	}
	return model.SpawnRunPG{
		ID:              run.ID,
		Description:     run.Description,
		Transform:       string(tr),
		ConsumableCount: len(run.Consumables),
		EquipmentCount:  len(run.Equipment),
		SkippedCount:    run.Skipped,
		CreatedAt:       run.CreatedAt,
	}, nil
}

func runFromPG(pg *model.SpawnRunPG) (Run, error) {
	var tr transform.Record
	if err := json.Unmarshal([]byte(pg.Transform), &tr); err != nil {
		return Run{}, fmt.Errorf("decoding transform of run %s: %w", pg.ID, err)
	}
	return Run{
		ID:          pg.ID,
		Description: pg.Description,
		Transform:   tr,
		Skipped:     pg.SkippedCount,
		CreatedAt:   pg.CreatedAt,
	}, nil
}

// SaveRun stores a run and its spawns in one transaction.
func SaveRun(ctx context.Context, db *gorm.DB, run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	header, err := runToPG(run)
	if err != nil {
		return err
	}

	consumables := make([]model.ConsumableSpawnPG, 0, len(run.Consumables))
	for i, s := range run.Consumables {
		consumables = append(consumables, model.ConsumableToPG(run.ID, i, s))
	}
	equipment := make([]model.EquipmentSpawnPG, 0, len(run.Equipment))
	for i, s := range run.Equipment {
		equipment = append(equipment, model.EquipmentToPG(run.ID, i, s))
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return fmt.Errorf("saving run %s: %w", run.ID, err)
		}
		if len(consumables) > 0 {
			if err := tx.CreateInBatches(consumables, batchSize).Error; err != nil {
				return fmt.Errorf("saving consumable spawns: %w", err)
			}
		}
		if len(equipment) > 0 {
			if err := tx.CreateInBatches(equipment, batchSize).Error; err != nil {
				return fmt.Errorf("saving equipment spawns: %w", err)
			}
		}
		return nil
	})
}

// LoadLatestRun returns the most recent run with its spawns in stored order.
func LoadLatestRun(ctx context.Context, db *gorm.DB) (Run, error) {
	db = db.WithContext(ctx)

	var header model.SpawnRunPG
	err := db.Order("created_at DESC").First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("loading latest run: %w", err)
	}

	run, err := runFromPG(&header)
	if err != nil {
		return Run{}, err
	}

	var consumables []model.ConsumableSpawnPG
	if err := db.Where("run_id = ?", header.ID).Order("position").Find(&consumables).Error; err != nil {
		return Run{}, fmt.Errorf("loading consumable spawns: %w", err)
	}
	var equipment []model.EquipmentSpawnPG
	if err := db.Where("run_id = ?", header.ID).Order("position").Find(&equipment).Error; err != nil {
		return Run{}, fmt.Errorf("loading equipment spawns: %w", err)
	}

	run.Consumables = make([]model.ConsumableSpawn, 0, len(consumables))
	for i := range consumables {
		run.Consumables = append(run.Consumables, model.ConsumableFromPG(&consumables[i]))
	}
	run.Equipment = make([]model.EquipmentSpawn, 0, len(equipment))
	for i := range equipment {
		run.Equipment = append(run.Equipment, model.EquipmentFromPG(&equipment[i]))
	}
	return run, nil
}
