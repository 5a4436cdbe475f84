// Package export renders spawn results as GeoJSON for map previews.
package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"shopspawn/internal/model"
	"shopspawn/internal/transform"
	"shopspawn/internal/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written to the "kind" property.
const (
	KindConsumable = "consumable"
	KindEquipment  = "equipment"
	KindOrigin     = "origin"
	KindArea       = "area"
)

// Options adds optional context features.
type Options struct {
	// AreaCenter is where the shop search radius was applied. Nil falls back
	// to the transform origin.
	AreaCenter *model.LatLng
	// AreaRadiusM draws the search area when > 0.
	AreaRadiusM float64
}

// FeatureCollection places every spawn at its real-world position.
func FeatureCollection(tr *transform.Transform, consumables []model.ConsumableSpawn, equipment []model.EquipmentSpawn, opts Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	originLat, originLng := tr.Origin()
	origin := geojson.NewFeature(orb.Point{originLng, originLat})
	origin.Properties["kind"] = KindOrigin
	origin.Properties["name"] = tr.OriginName()
	origin.Properties["scale_x"] = tr.ScaleX()
	origin.Properties["scale_z"] = tr.ScaleZ()
	fc.Append(origin)

	if opts.AreaRadiusM > 0 {
		center := model.LatLng{Lat: originLat, Lng: originLng}
		if opts.AreaCenter != nil {
			center = *opts.AreaCenter
		}
		b := util.NewRadiusCap(center.Lat, center.Lng, opts.AreaRadiusM).Bounds()
		ring := orb.Ring{
			{b[1], b[2]},
			{b[3], b[2]},
			{b[3], b[0]},
			{b[1], b[0]},
			{b[1], b[2]},
		}
		area := geojson.NewFeature(orb.Polygon{ring})
		area.Properties["kind"] = KindArea
		area.Properties["radius_m"] = opts.AreaRadiusM
		area.Properties["center"] = []float64{center.Lng, center.Lat}
		fc.Append(area)
	}

	for _, s := range consumables {
		f := geojson.NewFeature(orb.Point{s.RealLng, s.RealLat})
		f.ID = s.ID
		f.Properties["kind"] = KindConsumable
		f.Properties["name"] = s.DisplayName
		f.Properties["category"] = s.SourceCategory
		f.Properties["foodTypeId"] = string(s.FoodTypeID)
		f.Properties["distance_m"] = util.HaversineDistance(originLat, originLng, s.RealLat, s.RealLng)
		f.Properties["gameX"] = s.GameX
		f.Properties["gameZ"] = s.GameZ
		fc.Append(f)
	}

	for _, s := range equipment {
		f := geojson.NewFeature(orb.Point{s.RealLng, s.RealLat})
		f.ID = s.ID
		f.Properties["kind"] = KindEquipment
		f.Properties["name"] = s.DisplayName
		f.Properties["category"] = s.SourceCategory
		f.Properties["itemCategory"] = string(s.ItemClass)
		f.Properties["typeId"] = s.TypeID
		f.Properties["marker-color"] = s.Color
		f.Properties["distance_m"] = util.HaversineDistance(originLat, originLng, s.RealLat, s.RealLng)
		f.Properties["gameX"] = s.GameX
		f.Properties["gameZ"] = s.GameZ
		fc.Append(f)
	}

	return fc
}

// WriteFile writes the collection to path.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	log.Printf("Exporting %d features to GeoJSON file: %s", len(fc.Features), path)

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
