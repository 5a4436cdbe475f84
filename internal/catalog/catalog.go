// Package catalog collects named shops around an anchor point from
// OpenStreetMap, either live through Overpass or from a local PBF extract.
package catalog

import (
	"context"
	"fmt"
	"log"
	"sort"

	"shopspawn/internal/model"
)

// Area is a circular search region.
type Area struct {
	Lat     float64
	Lng     float64
	RadiusM int
}

// Provider returns the shops found inside an area.
type Provider interface {
	Source() string
	FetchShops(ctx context.Context, area Area) ([]model.RawShop, error)
}

// AmenityValues are the amenity tags that yield food or equipment spawns.
var AmenityValues = []string{
	"restaurant",
	"cafe",
	"fast_food",
	"bar",
	"pub",
	"food_court",
	"pharmacy",
}

// ShopValues are the shop tags that yield food or equipment spawns.
var ShopValues = []string{
	"convenience",
	"supermarket",
	"bakery",
	"confectionery",
	"deli",
	"jewelry",
	"watches",
	"gift",
	"department_store",
	"hardware",
	"doityourself",
	"clothes",
	"shoes",
	"sports",
	"outdoor",
	"bicycle",
	"bag",
	"books",
	"stationery",
	"electronics",
	"mobile_phone",
	"optician",
	"chemist",
	"variety_store",
}

var (
	amenitySet = toSet(AmenityValues)
	shopSet    = toSet(ShopValues)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Wanted reports whether the tags describe a shop we collect.
func Wanted(tags map[string]string) bool {
	if _, ok := amenitySet[tags["amenity"]]; ok {
		return true
	}
	_, ok := shopSet[tags["shop"]]
	return ok
}

// CategoryOf picks amenity first, then shop, then "other".
func CategoryOf(tags map[string]string) string {
	if v := tags["amenity"]; v != "" {
		return v
	}
	if v := tags["shop"]; v != "" {
		return v
	}
	return "other"
}

// shopFromTags builds a shop, or returns false for unnamed elements.
func shopFromTags(id int64, lat, lng float64, tags map[string]string) (model.RawShop, bool) {
	name := tags["name"]
	if name == "" {
		return model.RawShop{}, false
	}

	var nameEn *string
	if v, ok := tags["name:en"]; ok {
		nameEn = &v
	}

	copied := make(map[string]string, len(tags))
	for k, v := range tags {
		copied[k] = v
	}

	return model.RawShop{
		OSMID:       id,
		Name:        name,
		NameEnglish: nameEn,
		Category:    CategoryOf(tags),
		Lat:         lat,
		Lng:         lng,
		Tags:        copied,
	}, true
}

// SortByName orders shops by name, keeping the provider order for ties.
func SortByName(shops []model.RawShop) {
	sort.SliceStable(shops, func(i, j int) bool {
		return shops[i].Name < shops[j].Name
	})
}

// BuildCatalog fetches the area and wraps the result as shops_raw.json.
func BuildCatalog(ctx context.Context, p Provider, area Area) (model.ShopCatalog, error) {
	shops, err := p.FetchShops(ctx, area)
	if err != nil {
		return model.ShopCatalog{}, fmt.Errorf("fetching shops from %s: %w", p.Source(), err)
	}
	SortByName(shops)

	records := make([]model.ShopRecord, 0, len(shops))
	for _, s := range shops {
		records = append(records, model.NewShopRecord(s))
	}

	log.Printf("Collected %d shops from %s", len(records), p.Source())

	return model.ShopCatalog{
		Version: "1.0",
		Source:  p.Source(),
		Center:  model.LatLng{Lat: area.Lat, Lng: area.Lng},
		RadiusM: area.RadiusM,
		Count:   len(records),
		Shops:   records,
	}, nil
}

// CategoryCounts tallies shops per category, most frequent first.
func CategoryCounts(catalog model.ShopCatalog) []CategoryCount {
	counts := make(map[string]int)
	for _, s := range catalog.Shops {
		if s.Category != nil {
			counts[*s.Category]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		result = append(result, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result
}

type CategoryCount struct {
	Category string
	Count    int
}
