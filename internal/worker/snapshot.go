package worker

import (
	"context"
	"log"
	"time"

	spawnservice "shopspawn/internal/service/spawn"

	"github.com/redis/go-redis/v9"
)

// StartSnapshotWorker reloads the spawn set whenever a new run is published to Redis.
func StartSnapshotWorker(ctx context.Context, svc *spawnservice.SpawnService, client *redis.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reloaded, err := svc.Refresh(ctx, client)
				if err != nil {
					log.Printf("Snapshot worker: %v", err)
					continue
				}
				if reloaded {
					log.Println("Snapshot worker: loaded newer spawn set")
				}
			}
		}
	}()

	log.Println("Snapshot worker started with interval:", interval)
}
