package worker

import (
	"context"
	"log"

	"shopspawn/internal/config"
	spawnservice "shopspawn/internal/service/spawn"

	"github.com/redis/go-redis/v9"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(ctx context.Context, svc *spawnservice.SpawnService, client *redis.Client) {
	log.Println("Starting all workers...")

	if client != nil {
		StartSnapshotWorker(ctx, svc, client, config.SnapshotReloadInterval)
	}

	log.Println("All workers started")
}
