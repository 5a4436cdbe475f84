package spawn

import (
	"fmt"
	"log"
	"runtime"

	"shopspawn/internal/classify"
	"shopspawn/internal/model"
	"shopspawn/internal/transform"

	"github.com/sourcegraph/conc/iter"
)

const (
	ConsumableIDPrefix = "shop_"
	EquipmentIDPrefix  = "equip_"

	// DefaultLocalizedNameTag is the OSM tag read into the localized display name.
	DefaultLocalizedNameTag = "name:ja"
)

// Skip describes a shop record that could not be converted.
type Skip struct {
	Index  int
	OSMID  int64
	Reason string
}

// Result holds the two output collections of a run, each in input order.
type Result struct {
	Consumables []model.ConsumableSpawn
	Equipment   []model.EquipmentSpawn
	Skipped     []Skip
}

// Generator turns shop records into spawns.
type Generator struct {
	transform        *transform.Transform
	classifier       *classify.Classifier
	localizedNameTag string
	seed             uint64
	seeded           bool
}

// NewGenerator creates a generator. An empty localizedNameTag selects DefaultLocalizedNameTag.
func NewGenerator(tr *transform.Transform, classifier *classify.Classifier, localizedNameTag string) *Generator {
	if localizedNameTag == "" {
		localizedNameTag = DefaultLocalizedNameTag
	}
	return &Generator{
		transform:        tr,
		classifier:       classifier,
		localizedNameTag: localizedNameTag,
	}
}

// WithSeed returns a generator that classifies every shop with its own source
// derived from seed and the shop's OSM id. Sequential and parallel runs with
// the same seed then produce identical results.
func (g *Generator) WithSeed(seed uint64) *Generator {
	clone := *g
	clone.seed = seed
	clone.seeded = true
	return &clone
}

// outcome is the per-shop result before collection.
type outcome struct {
	index      int
	osmID      int64
	consumable *model.ConsumableSpawn
	equipment  *model.EquipmentSpawn
	skip       *Skip
}

// Generate processes records sequentially.
func (g *Generator) Generate(records []model.ShopRecord) Result {
	outcomes := make([]outcome, len(records))
	for i := range records {
		outcomes[i] = g.convert(i, &records[i])
	}
	return collect(outcomes)
}

// GenerateParallel processes records on up to workers goroutines and returns
// the same ordering as Generate. Unless the generator is seeded, the
// classifier's random source is shared and must be safe for concurrent use;
// its draws then depend on scheduling.
func (g *Generator) GenerateParallel(records []model.ShopRecord, workers int) Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}

	indexed := make([]int, len(records))
	for i := range indexed {
		indexed[i] = i
	}

	mapper := iter.Mapper[int, outcome]{MaxGoroutines: workers}
	outcomes := mapper.Map(indexed, func(i *int) outcome {
		return g.convert(*i, &records[*i])
	})
	return collect(outcomes)
}

func (g *Generator) convert(index int, rec *model.ShopRecord) outcome {
	shop, err := rec.ToRawShop()
	if err != nil {
		return outcome{skip: &Skip{Index: index, OSMID: rec.OSMID, Reason: err.Error()}}
	}

	gameX, gameZ := g.transform.Forward(shop.Lat, shop.Lng)
	localized := shop.Tag(g.localizedNameTag)

	classifier := g.classifier
	if g.seeded {
		classifier = classifier.WithRand(classify.NewKeyedRand(g.seed, uint64(shop.OSMID)))
	}

	out := outcome{index: index, osmID: shop.OSMID}
	if kind, ok := classifier.Consumable(shop.Category); ok {
		out.consumable = &model.ConsumableSpawn{
			ID:                   fmt.Sprintf("%s%d", ConsumableIDPrefix, shop.OSMID),
			DisplayName:          shop.Name,
			DisplayNameLocalized: localized,
			SourceCategory:       shop.Category,
			Cuisine:              shop.Tag("cuisine"),
			FoodTypeID:           kind,
			GameX:                gameX,
			GameZ:                gameZ,
			RealLat:              shop.Lat,
			RealLng:              shop.Lng,
		}
	}

	if item, ok := classifier.Equipment(shop.Category); ok {
		out.equipment = &model.EquipmentSpawn{
			ID:                   fmt.Sprintf("%s%d", EquipmentIDPrefix, shop.OSMID),
			DisplayName:          shop.Name,
			DisplayNameLocalized: localized,
			SourceCategory:       shop.Category,
			ItemClass:            item.Class,
			TypeID:               item.TypeID,
			ItemName:             item.Name,
			ItemNameLocalized:    item.NameJa,
			Effect:               item.Effect,
			Value:                item.Value,
			Color:                item.Color,
			Icon:                 item.Icon,
			GameX:                gameX,
			GameZ:                gameZ,
			RealLat:              shop.Lat,
			RealLng:              shop.Lng,
		}
	}

	return out
}

// collect flattens outcomes in input order. OSM nodes and ways are numbered
// independently, so two shops can map to the same spawn id; the first one
// wins and the later spawn is reported as skipped.
func collect(outcomes []outcome) Result {
	res := Result{
		Consumables: make([]model.ConsumableSpawn, 0, len(outcomes)),
		Equipment:   make([]model.EquipmentSpawn, 0),
	}
	seen := make(map[string]struct{}, len(outcomes))

	duplicate := func(o outcome, id string) bool {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return false
		}
		skip := Skip{Index: o.index, OSMID: o.osmID, Reason: "duplicate spawn id " + id}
		log.Printf("Skipping shop record #%d: %s", skip.Index, skip.Reason)
		res.Skipped = append(res.Skipped, skip)
		return true
	}

	for _, o := range outcomes {
		if o.skip != nil {
			log.Printf("Skipping shop record #%d: %s", o.skip.Index, o.skip.Reason)
			res.Skipped = append(res.Skipped, *o.skip)
			continue
		}
		if o.consumable != nil && !duplicate(o, o.consumable.ID) {
			res.Consumables = append(res.Consumables, *o.consumable)
		}
		if o.equipment != nil && !duplicate(o, o.equipment.ID) {
			res.Equipment = append(res.Equipment, *o.equipment)
		}
	}

	return res
}
