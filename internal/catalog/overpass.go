package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopspawn/internal/model"

	json "github.com/goccy/go-json"
)

const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassProvider queries the Overpass API.
type OverpassProvider struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

func NewOverpassProvider(endpoint string) *OverpassProvider {
	if endpoint == "" {
		endpoint = DefaultOverpassURL
	}
	return &OverpassProvider{
		endpoint:   endpoint,
		userAgent:  "shopspawn/1.0",
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *OverpassProvider) Source() string {
	return "OpenStreetMap (Overpass API)"
}

// BuildQuery renders the Overpass QL query for nodes and ways in the area.
func BuildQuery(area Area) string {
	amenityFilter := strings.Join(AmenityValues, "|")
	shopFilter := strings.Join(ShopValues, "|")
	around := fmt.Sprintf("(around:%d,%g,%g)", area.RadiusM, area.Lat, area.Lng)

	var b strings.Builder
	b.WriteString("[out:json][timeout:30];\n(\n")
	for _, kind := range []string{"node", "way"} {
		fmt.Fprintf(&b, "  %s[\"amenity\"~\"^(%s)$\"]%s;\n", kind, amenityFilter, around)
		fmt.Fprintf(&b, "  %s[\"shop\"~\"^(%s)$\"]%s;\n", kind, shopFilter, around)
	}
	b.WriteString(");\nout center tags;")
	return b.String()
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p *OverpassProvider) FetchShops(ctx context.Context, area Area) ([]model.RawShop, error) {
	form := url.Values{"data": {BuildQuery(area)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading overpass response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned %s", resp.Status)
	}

	return ParseOverpass(body)
}

// ParseOverpass converts an Overpass JSON response into shops. Unnamed
// elements and ways without a center are dropped.
func ParseOverpass(body []byte) ([]model.RawShop, error) {
	var result overpassResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	shops := make([]model.RawShop, 0, len(result.Elements))
	for _, el := range result.Elements {
		var lat, lng float64
		switch {
		case el.Type == "node" && el.Lat != nil && el.Lon != nil:
			lat, lng = *el.Lat, *el.Lon
		case el.Type != "node" && el.Center != nil:
			lat, lng = el.Center.Lat, el.Center.Lon
		default:
			continue
		}

		if shop, ok := shopFromTags(el.ID, lat, lng, el.Tags); ok {
			shops = append(shops, shop)
		}
	}
	return shops, nil
}
