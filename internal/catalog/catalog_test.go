package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"shopspawn/internal/classify"
	"shopspawn/internal/model"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 35.6960, "lon": 139.7830,
     "tags": {"amenity": "cafe", "name": "Kissa", "name:en": "Kissa Cafe"}},
    {"type": "way", "id": 2, "center": {"lat": 35.6970, "lon": 139.7840},
     "tags": {"shop": "jewelry", "name": "Arai Jewelry"}},
    {"type": "node", "id": 3, "lat": 35.6961, "lon": 139.7831,
     "tags": {"amenity": "restaurant"}},
    {"type": "way", "id": 4,
     "tags": {"shop": "bakery", "name": "No Center"}},
    {"type": "node", "id": 5, "lat": 35.6962, "lon": 139.7833,
     "tags": {"name": "Bench", "leisure": "picnic_table"}}
  ]
}`

func TestParseOverpass(t *testing.T) {
	shops, err := ParseOverpass([]byte(sampleResponse))
	require.NoError(t, err)
	require.Len(t, shops, 3)

	assert.Equal(t, int64(1), shops[0].OSMID)
	assert.Equal(t, "cafe", shops[0].Category)
	assert.Equal(t, 35.6960, shops[0].Lat)
	assert.Equal(t, 139.7830, shops[0].Lng)
	require.NotNil(t, shops[0].NameEnglish)
	assert.Equal(t, "Kissa Cafe", *shops[0].NameEnglish)

	assert.Equal(t, int64(2), shops[1].OSMID)
	assert.Equal(t, "jewelry", shops[1].Category)
	assert.Equal(t, 35.6970, shops[1].Lat)
	assert.Nil(t, shops[1].NameEnglish)

	assert.Equal(t, "other", shops[2].Category)
}

func TestParseOverpass_Malformed(t *testing.T) {
	_, err := ParseOverpass([]byte(`{"elements": [`))
	assert.Error(t, err)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "bar", CategoryOf(map[string]string{"amenity": "bar", "shop": "gift"}))
	assert.Equal(t, "gift", CategoryOf(map[string]string{"shop": "gift"}))
	assert.Equal(t, "other", CategoryOf(map[string]string{}))
}

func TestWanted(t *testing.T) {
	assert.True(t, Wanted(map[string]string{"amenity": "pub"}))
	assert.True(t, Wanted(map[string]string{"amenity": "pharmacy"}))
	assert.True(t, Wanted(map[string]string{"shop": "hardware"}))
	assert.False(t, Wanted(map[string]string{"amenity": "bench"}))
	assert.False(t, Wanted(nil))
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(Area{Lat: 35.6963, Lng: 139.7832, RadiusM: 500})

	assert.Contains(t, q, "[out:json][timeout:30];")
	assert.Contains(t, q, "(around:500,35.6963,139.7832)")
	assert.Contains(t, q, `node["amenity"~"^(restaurant|cafe|fast_food|bar|pub|food_court|pharmacy)$"]`)
	assert.Contains(t, q, `way["shop"~"^(convenience|supermarket|`)
	assert.Contains(t, q, "out center tags;")
}

func TestOverpassProvider_FetchShops(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		values, err := url.ParseQuery(string(body))
		assert.NoError(t, err)
		gotQuery = values.Get("data")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	p := NewOverpassProvider(srv.URL)
	area := Area{Lat: 35.6963, Lng: 139.7832, RadiusM: 300}

	catalog, err := BuildCatalog(context.Background(), p, area)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "(around:300,35.6963,139.7832)")
	assert.Equal(t, "1.0", catalog.Version)
	assert.Equal(t, 300, catalog.RadiusM)
	assert.Equal(t, 3, catalog.Count)

	// Sorted by name.
	names := []string{catalog.Shops[0].Name, catalog.Shops[1].Name, catalog.Shops[2].Name}
	assert.Equal(t, []string{"Arai Jewelry", "Bench", "Kissa"}, names)
}

func TestOverpassProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOverpassProvider(srv.URL).FetchShops(context.Background(), Area{RadiusM: 100})
	assert.ErrorContains(t, err, "429")
}

type stubProvider struct {
	shops []model.RawShop
	err   error
}

func (s stubProvider) Source() string { return "stub" }

func (s stubProvider) FetchShops(context.Context, Area) ([]model.RawShop, error) {
	return s.shops, s.err
}

func TestBuildCatalog_WrapsError(t *testing.T) {
	sentinel := errors.New("offline")
	_, err := BuildCatalog(context.Background(), stubProvider{err: sentinel}, Area{})
	assert.ErrorIs(t, err, sentinel)
}

func TestBuildCatalog_RecordsCarryFields(t *testing.T) {
	shops := []model.RawShop{
		{OSMID: 9, Name: "B", Category: "bar", Lat: 1, Lng: 2},
		{OSMID: 8, Name: "A", Category: "cafe", Lat: 3, Lng: 4},
	}
	catalog, err := BuildCatalog(context.Background(), stubProvider{shops: shops}, Area{Lat: 1, Lng: 2, RadiusM: 10})
	require.NoError(t, err)

	require.Len(t, catalog.Shops, 2)
	rec := catalog.Shops[0]
	assert.Equal(t, int64(8), rec.OSMID)
	assert.Equal(t, "cafe", *rec.Category)
	assert.Equal(t, 3.0, *rec.Lat)
	assert.Equal(t, model.LatLng{Lat: 1, Lng: 2}, catalog.Center)

	counts := CategoryCounts(catalog)
	assert.Equal(t, []CategoryCount{{"bar", 1}, {"cafe", 1}}, counts)
}

func TestWayCentroid(t *testing.T) {
	cache := map[int64]orb.Point{
		1: {139.0, 35.0},
		2: {139.2, 35.0},
		3: {139.2, 35.2},
		4: {139.0, 35.2},
	}

	// Closed ring: first node repeated at the end.
	c, ok := wayCentroid([]int64{1, 2, 3, 4, 1}, cache)
	require.True(t, ok)
	assert.InDelta(t, 139.1, c.Lon(), 1e-9)
	assert.InDelta(t, 35.1, c.Lat(), 1e-9)

	// Unknown nodes are ignored.
	c, ok = wayCentroid([]int64{1, 99}, cache)
	require.True(t, ok)
	assert.Equal(t, orb.Point{139.0, 35.0}, c)

	_, ok = wayCentroid([]int64{98, 99}, cache)
	assert.False(t, ok)
}

func TestPBFProvider_MissingFile(t *testing.T) {
	_, err := NewPBFProvider("/nonexistent/area.osm.pbf").FetchShops(context.Background(), Area{RadiusM: 100})
	assert.Error(t, err)
}

func TestVocabularyCoversClassificationTables(t *testing.T) {
	tables, err := classify.DefaultTables()
	require.NoError(t, err)

	fetched := func(category string) bool {
		return Wanted(map[string]string{"amenity": category}) || Wanted(map[string]string{"shop": category})
	}

	for category := range tables.Consumables {
		assert.True(t, fetched(category), "consumable category %s is never fetched", category)
	}
	for category := range tables.Equipment {
		assert.True(t, fetched(category), "equipment category %s is never fetched", category)
	}
}
