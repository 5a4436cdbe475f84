package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"shopspawn/internal/model"
	"shopspawn/internal/util"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
)

// PBFProvider scans a local .osm.pbf extract.
type PBFProvider struct {
	path string
}

func NewPBFProvider(path string) *PBFProvider {
	return &PBFProvider{path: path}
}

func (p *PBFProvider) Source() string {
	return fmt.Sprintf("OpenStreetMap (PBF %s)", p.path)
}

// FetchShops decodes the file twice: the first pass collects node coordinates
// inside the search bounds and tagged shop nodes, the second resolves tagged
// ways to the centroid of their nodes.
func (p *PBFProvider) FetchShops(ctx context.Context, area Area) ([]model.RawShop, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", p.path, err)
	}
	defer f.Close()

	radius := util.NewRadiusCap(area.Lat, area.Lng, float64(area.RadiusM))
	// Way nodes may sit just outside the radius while the centroid is inside.
	outer := util.NewRadiusCap(area.Lat, area.Lng, float64(area.RadiusM)*2+200)

	nodeCache := make(map[int64]orb.Point)
	var shops []model.RawShop

	log.Println("Phase 1: Collecting shop nodes and caching coordinates...")
	err = decodeAll(ctx, f, func(v any) {
		node, ok := v.(*osmpbf.Node)
		if !ok || !outer.Contains(node.Lat, node.Lon) {
			return
		}
		nodeCache[node.ID] = orb.Point{node.Lon, node.Lat}

		if Wanted(node.Tags) && radius.Contains(node.Lat, node.Lon) {
			if shop, ok := shopFromTags(node.ID, node.Lat, node.Lon, node.Tags); ok {
				shops = append(shops, shop)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Cached %d nodes, found %d shop nodes", len(nodeCache), len(shops))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", p.path, err)
	}

	log.Println("Phase 2: Collecting shop ways...")
	wayCount := 0
	err = decodeAll(ctx, f, func(v any) {
		way, ok := v.(*osmpbf.Way)
		if !ok || !Wanted(way.Tags) {
			return
		}

		center, ok := wayCentroid(way.NodeIDs, nodeCache)
		if !ok || !radius.Contains(center.Lat(), center.Lon()) {
			return
		}
		if shop, ok := shopFromTags(way.ID, center.Lat(), center.Lon(), way.Tags); ok {
			shops = append(shops, shop)
			wayCount++
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d shop ways", wayCount)

	return shops, nil
}

func decodeAll(ctx context.Context, r io.Reader, fn func(any)) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return fmt.Errorf("starting decoder: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decoding pbf: %w", err)
		}
		fn(v)
	}
}

// wayCentroid averages the cached node positions of a way. A closed ring
// repeats its first node, which is counted once.
func wayCentroid(nodeIDs []int64, cache map[int64]orb.Point) (orb.Point, bool) {
	if n := len(nodeIDs); n > 1 && nodeIDs[0] == nodeIDs[n-1] {
		nodeIDs = nodeIDs[:n-1]
	}

	points := make(orb.MultiPoint, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if pt, ok := cache[id]; ok {
			points = append(points, pt)
		}
	}
	if len(points) == 0 {
		return orb.Point{}, false
	}

	var sum orb.Point
	for _, pt := range points {
		sum[0] += pt[0]
		sum[1] += pt[1]
	}
	n := float64(len(points))
	return orb.Point{sum[0] / n, sum[1] / n}, true
}
