package main

import (
	"errors"
	"flag"
	"log"

	"shopspawn/internal/config"
	"shopspawn/internal/records"
	"shopspawn/internal/transform"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pointsPath := flag.String("points", cfg.ReferencePointsPath, "reference points JSON (list of {name, lat, lng, gameX, gameZ})")
	outPath := flag.String("out", cfg.TransformPath, "transform JSON to write")
	flag.Parse()

	points, err := records.LoadReferencePoints(*pointsPath)
	if err != nil {
		log.Fatalf("Failed to load reference points: %v", err)
	}

	log.Println("Reference points:")
	for _, p := range points {
		log.Printf("  %s: (%v, %v) -> (%v, %v)", p.Name, p.Lat, p.Lng, p.GameX, p.GameZ)
	}

	tr, err := transform.Fit(points)
	if err != nil {
		var insufficient *transform.InsufficientDataError
		var degenerate *transform.DegenerateInputError
		switch {
		case errors.As(err, &insufficient):
			log.Fatalf("Need at least 2 reference points: %v", err)
		case errors.As(err, &degenerate):
			log.Fatalf("Reference points do not span both axes: %v", err)
		default:
			log.Fatalf("Failed to fit transform: %v", err)
		}
	}

	log.Println("Result:")
	log.Printf("  scale_x (lng->X): %.4f", tr.ScaleX())
	log.Printf("  scale_z (lat->Z): %.4f", tr.ScaleZ())
	log.Printf("  offset_x: %.4f", tr.OffsetX())
	log.Printf("  offset_z: %.4f", tr.OffsetZ())
	log.Printf("  round trip bound: %.3g degrees", tr.RoundTripBound())

	log.Println("Check:")
	for _, r := range tr.Residuals(points) {
		log.Printf("  %s: calc (%.2f, %.2f) vs actual (%v, %v), delta (%.3f, %.3f)",
			r.Name, r.CalcX, r.CalcZ, r.GameX, r.GameZ, r.DeltaX, r.DeltaZ)
	}

	if err := records.SaveTransform(*outPath, tr, points); err != nil {
		log.Fatalf("Failed to save transform: %v", err)
	}
	log.Printf("Transform saved to %s", *outPath)
}
