package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopspawn/internal/catalog"
	"shopspawn/internal/config"
	"shopspawn/internal/records"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lat := flag.Float64("lat", cfg.AnchorLat, "search center latitude")
	lng := flag.Float64("lng", cfg.AnchorLng, "search center longitude")
	radius := flag.Int("radius", cfg.SearchRadiusM, "search radius in meters")
	pbfPath := flag.String("pbf", cfg.PBFPath, "read shops from a local .osm.pbf extract instead of Overpass")
	overpassURL := flag.String("overpass", cfg.OverpassURL, "Overpass API endpoint")
	outPath := flag.String("out", cfg.ShopsPath, "shop catalog JSON to write")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider catalog.Provider
	if *pbfPath != "" {
		provider = catalog.NewPBFProvider(*pbfPath)
	} else {
		provider = catalog.NewOverpassProvider(*overpassURL)
	}

	area := catalog.Area{Lat: *lat, Lng: *lng, RadiusM: *radius}
	log.Printf("Fetching shops around %s (%v, %v), radius %dm", cfg.AnchorName, area.Lat, area.Lng, area.RadiusM)

	shops, err := catalog.BuildCatalog(ctx, provider, area)
	if err != nil {
		log.Fatalf("Failed to fetch shops: %v", err)
	}

	log.Printf("Total: %d shops", shops.Count)
	log.Println("By category:")
	for _, c := range catalog.CategoryCounts(shops) {
		log.Printf("  %s: %d", c.Category, c.Count)
	}

	if err := records.SaveShopCatalog(*outPath, shops); err != nil {
		log.Fatalf("Failed to save shops: %v", err)
	}
	log.Printf("Saved %s (%d shops)", *outPath, shops.Count)
}
