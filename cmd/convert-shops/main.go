package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopspawn/internal/classify"
	"shopspawn/internal/config"
	"shopspawn/internal/export"
	"shopspawn/internal/postgres"
	"shopspawn/internal/records"
	"shopspawn/internal/redis"
	"shopspawn/internal/spawn"
	"shopspawn/internal/transform"
	"shopspawn/internal/util"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shopsPath := flag.String("shops", cfg.ShopsPath, "shop catalog JSON")
	transformPath := flag.String("transform", cfg.TransformPath, "transform JSON")
	foodPath := flag.String("food", cfg.FoodSpawnsPath, "consumable spawns JSON to write")
	equipmentPath := flag.String("equipment", cfg.EquipmentSpawnsPath, "equipment spawns JSON to write")
	geojsonPath := flag.String("geojson", cfg.GeoJSONPath, "GeoJSON preview to write; empty disables")
	tablesPath := flag.String("tables", cfg.TablesPath, "classification tables YAML (embedded defaults when empty)")
	seed := flag.Uint64("seed", cfg.Seed, "random seed; 0 draws from the process-wide source")
	provisional := flag.Bool("provisional", false, "write and use a provisional transform when the transform file is missing")
	workers := flag.Int("workers", cfg.Workers, "parallel workers; 1 runs sequentially")
	persist := flag.Bool("persist", false, "store the run in PostgreSQL (DB_URL) and publish it to Redis (REDIS_URL)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := loadTransform(*transformPath, *provisional)
	if err != nil {
		log.Fatalf("Failed to load transform: %v", err)
	}
	log.Printf("Transform: scale_x=%.4f scale_z=%.4f origin=%s", tr.ScaleX(), tr.ScaleZ(), tr.OriginName())

	shops, err := records.LoadShopCatalog(*shopsPath)
	if err != nil {
		log.Fatalf("Failed to load shops: %v", err)
	}
	log.Printf("Loaded %d shops from %s", len(shops.Shops), *shopsPath)

	tables, err := loadTables(*tablesPath)
	if err != nil {
		log.Fatalf("Failed to load classification tables: %v", err)
	}

	gen := spawn.NewGenerator(tr, classify.New(tables, classify.GlobalRand), cfg.LocalizedNameTag)
	if *seed != 0 {
		gen = gen.WithSeed(*seed)
	}

	startTime := time.Now()
	var result spawn.Result
	if *workers == 1 {
		result = gen.Generate(shops.Shops)
	} else {
		result = gen.GenerateParallel(shops.Shops, *workers)
	}
	log.Printf("Generated spawns in %v", time.Since(startTime))

	printSummary(spawn.Summarize(result))

	food := records.NewConsumableDocument("", tr, result.Consumables)
	if err := records.SaveConsumableDocument(*foodPath, food); err != nil {
		log.Fatalf("Failed to save consumable spawns: %v", err)
	}
	log.Printf("Saved %s (%d spawns)", *foodPath, food.Count)

	equipment := records.NewEquipmentDocument("", tr, result.Equipment)
	if err := records.SaveEquipmentDocument(*equipmentPath, equipment); err != nil {
		log.Fatalf("Failed to save equipment spawns: %v", err)
	}
	log.Printf("Saved %s (%d spawns)", *equipmentPath, equipment.Count)

	if *geojsonPath != "" {
		fc := export.FeatureCollection(tr, result.Consumables, result.Equipment,
			export.Options{AreaCenter: &shops.Center, AreaRadiusM: float64(shops.RadiusM)})
		if err := export.WriteFile(*geojsonPath, fc); err != nil {
			log.Fatalf("Failed to export GeoJSON: %v", err)
		}
	}

	if *persist {
		persistRun(ctx, cfg, postgres.Run{
			ID:          util.ShortUUID(),
			Description: food.Description,
			Transform:   tr.Record(),
			Consumables: result.Consumables,
			Equipment:   result.Equipment,
			Skipped:     len(result.Skipped),
		})
	}
}

// loadTransform reads the transform file. With provisional set, a missing file
// is replaced by the provisional transform, which is saved for the operator to refine.
func loadTransform(path string, provisional bool) (*transform.Transform, error) {
	if !provisional {
		return records.LoadTransform(path)
	}

	tr, created, err := records.LoadOrInitTransform(path, transform.Provisional())
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("Transform not found, provisional parameters saved to %s; rerun calc-transform with measured reference points", path)
	}
	return tr, nil
}

func loadTables(path string) (*classify.Tables, error) {
	if path == "" {
		return classify.DefaultTables()
	}
	return classify.LoadTables(path)
}

func printSummary(s spawn.Summary) {
	log.Println("Summary:")
	log.Printf("  consumable spawns: %d", s.Consumables)
	for _, c := range s.ConsumableKinds {
		log.Printf("    %s: %d", c.Key, c.Count)
	}
	log.Printf("  equipment spawns: %d (gems: %d)", s.Equipment, s.Gems)
	for _, c := range s.EquipmentTypes {
		log.Printf("    %s: %d", c.Key, c.Count)
	}
	if s.Skipped > 0 {
		log.Printf("  skipped records: %d", s.Skipped)
	}
	if !s.Empty {
		log.Printf("  game bounds: X [%.2f, %.2f], Z [%.2f, %.2f]",
			s.Bounds.Min.X(), s.Bounds.Max.X(), s.Bounds.Min.Y(), s.Bounds.Max.Y())
	}
}

func persistRun(ctx context.Context, cfg config.Config, run postgres.Run) {
	if cfg.DBUrl != "" {
		db := postgres.Init(cfg.DBUrl)
		defer postgres.Close()

		if err := postgres.SaveRun(ctx, db, run); err != nil {
			log.Fatalf("Failed to store run: %v", err)
		}
		log.Printf("Stored run %s in PostgreSQL", run.ID)
	}

	if cfg.RedisUrl != "" {
		client := redis.Init(cfg.RedisUrl)
		defer redis.Close()

		snap := redis.Snapshot{
			RunID:       run.ID,
			Transform:   run.Transform,
			Consumables: run.Consumables,
			Equipment:   run.Equipment,
		}
		if err := redis.SaveSnapshot(ctx, client, snap); err != nil {
			log.Fatalf("Failed to publish run: %v", err)
		}
		log.Printf("Published run %s to Redis", run.ID)
	}
}
