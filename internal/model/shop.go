package model

import (
	"fmt"
	"strings"
)

// RawShop is a point of interest as delivered by a catalog provider.
type RawShop struct {
	OSMID       int64
	Name        string
	NameEnglish *string
	Category    string
	Lat         float64
	Lng         float64
	Tags        map[string]string
}

// Tag returns the tag value or an empty string.
func (s RawShop) Tag(key string) string {
	if s.Tags == nil {
		return ""
	}
	return s.Tags[key]
}

// ShopRecord is the wire form of a shop inside shops_raw.json.
// Category and coordinates are pointers so a record that omits them can be
// told apart from one that sits on the equator.
type ShopRecord struct {
	OSMID    int64             `json:"osm_id"`
	Name     string            `json:"name"`
	NameEn   *string           `json:"name_en"`
	Category *string           `json:"category"`
	Lat      *float64          `json:"lat"`
	Lng      *float64          `json:"lng"`
	Tags     map[string]string `json:"tags"`
}

// ToRawShop validates the required fields and returns the typed shop.
func (r ShopRecord) ToRawShop() (RawShop, error) {
	var missing []string
	if r.Category == nil || strings.TrimSpace(*r.Category) == "" {
		missing = append(missing, "category")
	}
	if r.Lat == nil {
		missing = append(missing, "lat")
	}
	if r.Lng == nil {
		missing = append(missing, "lng")
	}
	if len(missing) > 0 {
		return RawShop{}, fmt.Errorf("shop %d: missing %s", r.OSMID, strings.Join(missing, ", "))
	}

	return RawShop{
		OSMID:       r.OSMID,
		Name:        r.Name,
		NameEnglish: r.NameEn,
		Category:    *r.Category,
		Lat:         *r.Lat,
		Lng:         *r.Lng,
		Tags:        r.Tags,
	}, nil
}

// NewShopRecord builds the wire form of a fully populated shop.
func NewShopRecord(s RawShop) ShopRecord {
	category, lat, lng := s.Category, s.Lat, s.Lng
	return ShopRecord{
		OSMID:    s.OSMID,
		Name:     s.Name,
		NameEn:   s.NameEnglish,
		Category: &category,
		Lat:      &lat,
		Lng:      &lng,
		Tags:     s.Tags,
	}
}

// LatLng is a bare coordinate pair used in record headers.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ShopCatalog is the document written by the fetch step (shops_raw.json).
type ShopCatalog struct {
	Version string       `json:"version"`
	Source  string       `json:"source"`
	Center  LatLng       `json:"center"`
	RadiusM int          `json:"radius_m"`
	Count   int          `json:"count"`
	Shops   []ShopRecord `json:"shops"`
}
