package postgres

import (
	"fmt"
	"log"
	"time"

	"shopspawn/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the global database connection
var DB *gorm.DB

// Open connects and migrates the spawn tables.
func Open(url string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Millisecond * 500,
			LogLevel:      logger.Warn,
		},
	)

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.AutoMigrate(&model.SpawnRunPG{}, &model.ConsumableSpawnPG{}, &model.EquipmentSpawnPG{}); err != nil {
		return nil, fmt.Errorf("migrating spawn tables: %w", err)
	}

	return db, nil
}

// Init initializes the database connection and sets the global DB variable
func Init(url string) *gorm.DB {
	db, err := Open(url)
	if err != nil {
		log.Fatalln(err)
	}
	DB = db
	return db
}

// Close releases the global connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	log.Println("Closing PostgreSQL connection...")
	return sqlDB.Close()
}
