// Package records reads and writes the flat JSON documents exchanged between
// the pipeline steps and the game client.
package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"shopspawn/internal/model"
	"shopspawn/internal/transform"

	json "github.com/goccy/go-json"
)

// Version is written into every document this package produces.
const Version = "1.0"

const (
	DefaultFoodDescription      = "Food spawn positions based on shops around the anchor station"
	DefaultEquipmentDescription = "Equipment spawn positions based on shops around the anchor station"
)

// ConsumableDocument is food_spawns.json.
type ConsumableDocument struct {
	Version     string                  `json:"version"`
	Description string                  `json:"description"`
	Transform   transform.Record        `json:"transform"`
	Count       int                     `json:"count"`
	Spawns      []model.ConsumableSpawn `json:"spawns"`
}

// EquipmentDocument is equipment_spawns.json.
type EquipmentDocument struct {
	Version     string                 `json:"version"`
	Description string                 `json:"description"`
	Transform   transform.Record       `json:"transform"`
	Count       int                    `json:"count"`
	Spawns      []model.EquipmentSpawn `json:"spawns"`
}

// NewConsumableDocument wraps spawns with the transform that placed them.
func NewConsumableDocument(description string, tr *transform.Transform, spawns []model.ConsumableSpawn) ConsumableDocument {
	if description == "" {
		description = DefaultFoodDescription
	}
	if spawns == nil {
		spawns = []model.ConsumableSpawn{}
	}
	return ConsumableDocument{
		Version:     Version,
		Description: description,
		Transform:   tr.Record(),
		Count:       len(spawns),
		Spawns:      spawns,
	}
}

// NewEquipmentDocument wraps spawns with the transform that placed them.
func NewEquipmentDocument(description string, tr *transform.Transform, spawns []model.EquipmentSpawn) EquipmentDocument {
	if description == "" {
		description = DefaultEquipmentDescription
	}
	if spawns == nil {
		spawns = []model.EquipmentSpawn{}
	}
	return EquipmentDocument{
		Version:     Version,
		Description: description,
		Transform:   tr.Record(),
		Count:       len(spawns),
		Spawns:      spawns,
	}
}

// LoadReferencePoints reads the operator's list of reference points.
func LoadReferencePoints(path string) ([]model.ReferencePoint, error) {
	var points []model.ReferencePoint
	if err := readJSON(path, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// SaveReferencePoints writes a reference point list.
func SaveReferencePoints(path string, points []model.ReferencePoint) error {
	return writeJSON(path, points)
}

// LoadTransformRecord reads transform.json without validating it.
func LoadTransformRecord(path string) (transform.Record, error) {
	var rec transform.Record
	err := readJSON(path, &rec)
	return rec, err
}

// LoadTransform reads transform.json and builds the transform.
// A zero scale is reported as a transform error, not a record error.
func LoadTransform(path string) (*transform.Transform, error) {
	rec, err := LoadTransformRecord(path)
	if err != nil {
		return nil, err
	}
	return transform.FromRecord(rec)
}

// LoadOrInitTransform reads transform.json. When the file does not exist,
// fallback is written there and returned with created set.
func LoadOrInitTransform(path string, fallback *transform.Transform) (tr *transform.Transform, created bool, err error) {
	tr, err = LoadTransform(path)
	var missing *MissingInputFileError
	if !errors.As(err, &missing) {
		return tr, false, err
	}
	if err := SaveTransform(path, fallback, nil); err != nil {
		return nil, false, err
	}
	return fallback, true, nil
}

// SaveTransform writes transform.json. Reference points are echoed when given.
func SaveTransform(path string, tr *transform.Transform, points []model.ReferencePoint) error {
	rec := tr.Record()
	rec.ReferencePoints = points
	return writeJSON(path, rec)
}

// LoadShopCatalog reads shops_raw.json.
func LoadShopCatalog(path string) (model.ShopCatalog, error) {
	var catalog model.ShopCatalog
	if err := readJSON(path, &catalog); err != nil {
		return catalog, err
	}
	if catalog.Shops == nil {
		return catalog, &MalformedRecordError{Path: path, Err: errors.New(`missing "shops" list`)}
	}
	return catalog, nil
}

// SaveShopCatalog writes shops_raw.json.
func SaveShopCatalog(path string, catalog model.ShopCatalog) error {
	if catalog.Version == "" {
		catalog.Version = Version
	}
	catalog.Count = len(catalog.Shops)
	return writeJSON(path, catalog)
}

// LoadConsumableDocument reads food_spawns.json.
func LoadConsumableDocument(path string) (ConsumableDocument, error) {
	var doc ConsumableDocument
	err := readJSON(path, &doc)
	return doc, err
}

// SaveConsumableDocument writes food_spawns.json.
func SaveConsumableDocument(path string, doc ConsumableDocument) error {
	return writeJSON(path, doc)
}

// LoadEquipmentDocument reads equipment_spawns.json.
func LoadEquipmentDocument(path string) (EquipmentDocument, error) {
	var doc EquipmentDocument
	err := readJSON(path, &doc)
	return doc, err
}

// SaveEquipmentDocument writes equipment_spawns.json.
func SaveEquipmentDocument(path string, doc EquipmentDocument) error {
	return writeJSON(path, doc)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingInputFileError{Path: path}
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &MalformedRecordError{Path: path, Err: err}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
