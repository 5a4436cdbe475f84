package model

import (
	"time"

	"gorm.io/gorm"
)

// SpawnRunPG records one generation run.
type SpawnRunPG struct {
	ID              string `gorm:"primaryKey;size:32"`
	Description     string `gorm:"size:255"`
	Transform       string `gorm:"type:jsonb;not null"`
	ConsumableCount int    `gorm:"not null"`
	EquipmentCount  int    `gorm:"not null"`
	SkippedCount    int    `gorm:"not null"`

	CreatedAt time.Time      `gorm:"column:created_at;index"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (SpawnRunPG) TableName() string {
	return "spawn_runs"
}

// ConsumableSpawnPG model for PostgreSQL storage
type ConsumableSpawnPG struct {
	RunID    string `gorm:"primaryKey;size:32"`
	SpawnID  string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"not null"`

	Name       string  `gorm:"size:255"`
	NameLocal  string  `gorm:"size:255"`
	Category   string  `gorm:"size:64;not null"`
	Cuisine    string  `gorm:"size:128"`
	FoodTypeID string  `gorm:"size:64;not null"`
	GameX      float64 `gorm:"not null"`
	GameZ      float64 `gorm:"not null"`
	RealLat    float64 `gorm:"not null"`
	RealLng    float64 `gorm:"not null"`
}

// TableName overrides the table name
func (ConsumableSpawnPG) TableName() string {
	return "consumable_spawns"
}

// EquipmentSpawnPG model for PostgreSQL storage
type EquipmentSpawnPG struct {
	RunID    string `gorm:"primaryKey;size:32"`
	SpawnID  string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"not null"`

	ShopName      string  `gorm:"size:255"`
	ShopNameLocal string  `gorm:"size:255"`
	ShopCategory  string  `gorm:"size:64;not null"`
	ItemClass     string  `gorm:"size:16;not null"`
	TypeID        string  `gorm:"size:64;not null"`
	Name          string  `gorm:"size:128"`
	NameLocal     string  `gorm:"size:128"`
	Effect        string  `gorm:"size:64"`
	Value         float64 `gorm:"not null"`
	Color         string  `gorm:"size:16"`
	Icon          string  `gorm:"size:16"`
	GameX         float64 `gorm:"not null"`
	GameZ         float64 `gorm:"not null"`
	RealLat       float64 `gorm:"not null"`
	RealLng       float64 `gorm:"not null"`
}

// TableName overrides the table name
func (EquipmentSpawnPG) TableName() string {
	return "equipment_spawns"
}

// ConsumableToPG converts a spawn into its row form.
func ConsumableToPG(runID string, position int, s ConsumableSpawn) ConsumableSpawnPG {
	return ConsumableSpawnPG{
		RunID:      runID,
		SpawnID:    s.ID,
		Position:   position,
		Name:       s.DisplayName,
		NameLocal:  s.DisplayNameLocalized,
		Category:   s.SourceCategory,
		Cuisine:    s.Cuisine,
		FoodTypeID: string(s.FoodTypeID),
		GameX:      s.GameX,
		GameZ:      s.GameZ,
		RealLat:    s.RealLat,
		RealLng:    s.RealLng,
	}
}

// ConsumableFromPG converts a row back into a spawn.
func ConsumableFromPG(pg *ConsumableSpawnPG) ConsumableSpawn {
	return ConsumableSpawn{
		ID:                   pg.SpawnID,
		DisplayName:          pg.Name,
		DisplayNameLocalized: pg.NameLocal,
		SourceCategory:       pg.Category,
		Cuisine:              pg.Cuisine,
		FoodTypeID:           ConsumableKind(pg.FoodTypeID),
		GameX:                pg.GameX,
		GameZ:                pg.GameZ,
		RealLat:              pg.RealLat,
		RealLng:              pg.RealLng,
	}
}

// EquipmentToPG converts a spawn into its row form.
func EquipmentToPG(runID string, position int, s EquipmentSpawn) EquipmentSpawnPG {
	return EquipmentSpawnPG{
		RunID:         runID,
		SpawnID:       s.ID,
		Position:      position,
		ShopName:      s.DisplayName,
		ShopNameLocal: s.DisplayNameLocalized,
		ShopCategory:  s.SourceCategory,
		ItemClass:     string(s.ItemClass),
		TypeID:        s.TypeID,
		Name:          s.ItemName,
		NameLocal:     s.ItemNameLocalized,
		Effect:        s.Effect,
		Value:         s.Value,
		Color:         s.Color,
		Icon:          s.Icon,
		GameX:         s.GameX,
		GameZ:         s.GameZ,
		RealLat:       s.RealLat,
		RealLng:       s.RealLng,
	}
}

// EquipmentFromPG converts a row back into a spawn.
func EquipmentFromPG(pg *EquipmentSpawnPG) EquipmentSpawn {
	return EquipmentSpawn{
		ID:                   pg.SpawnID,
		DisplayName:          pg.ShopName,
		DisplayNameLocalized: pg.ShopNameLocal,
		SourceCategory:       pg.ShopCategory,
		ItemClass:            ItemClass(pg.ItemClass),
		TypeID:               pg.TypeID,
		ItemName:             pg.Name,
		ItemNameLocalized:    pg.NameLocal,
		Effect:               pg.Effect,
		Value:                pg.Value,
		Color:                pg.Color,
		Icon:                 pg.Icon,
		GameX:                pg.GameX,
		GameZ:                pg.GameZ,
		RealLat:              pg.RealLat,
		RealLng:              pg.RealLng,
	}
}
