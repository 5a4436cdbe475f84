package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopspawn/internal/api"
	"shopspawn/internal/config"
	"shopspawn/internal/postgres"
	"shopspawn/internal/redis"
	spawnservice "shopspawn/internal/service/spawn"
	"shopspawn/internal/worker"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.LogFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, client := initializeDatabaseAndCache(cfg)
	defer closeConnections()

	setupSignalHandler(cancel)

	svc := initializeServices(ctx, cfg, db, client)
	worker.StartAllWorkers(ctx, svc, client)

	runAPIServer(cfg, svc)
}

func setupLogging(path string) {
	if path == "" {
		return
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	// Use MultiWriter to output logs to both terminal and file
	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)
}

// initializeDatabaseAndCache connects only to the stores that are configured.
func initializeDatabaseAndCache(cfg config.Config) (*gorm.DB, *goredis.Client) {
	var db *gorm.DB
	if cfg.DBUrl != "" {
		db = postgres.Init(cfg.DBUrl)
	}

	var client *goredis.Client
	if cfg.RedisUrl != "" {
		client = redis.Init(cfg.RedisUrl)
	}

	return db, client
}

func initializeServices(ctx context.Context, cfg config.Config, db *gorm.DB, client *goredis.Client) *spawnservice.SpawnService {
	svc := spawnservice.GetSpawnService()

	err := svc.InitService(ctx, spawnservice.Sources{
		Redis:         client,
		DB:            db,
		FoodPath:      cfg.FoodSpawnsPath,
		EquipmentPath: cfg.EquipmentSpawnsPath,
	})
	if err != nil {
		log.Fatalf("Failed to initialize spawn service: %v", err)
	}

	// Share the loaded set with other API instances.
	if client != nil {
		if err := svc.Publish(ctx, client); err != nil {
			log.Printf("Failed to publish spawn set to Redis: %v", err)
		}
	}

	return svc
}

func runAPIServer(cfg config.Config, svc *spawnservice.SpawnService) {
	r := gin.Default()

	config := map[string]string{
		"port":   cfg.Port,
		"anchor": fmt.Sprintf("%s (%v, %v)", cfg.AnchorName, cfg.AnchorLat, cfg.AnchorLng),
	}
	api.SetupRouter(r, config, svc)

	if err := r.Run(cfg.Port); err != nil {
		log.Fatalf("API server stopped: %v", err)
	}
}

func closeConnections() {
	if err := postgres.Close(); err != nil {
		log.Printf("Error closing PostgreSQL connection: %v", err)
	}

	if err := redis.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}
}

func setupSignalHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutdown signal received, closing connections...")
		cancel()
		closeConnections()
		os.Exit(0)
	}()
}
