package transform

import "shopspawn/internal/model"

// RecordVersion is written into every transform record.
const RecordVersion = "1.0"

// Origin is the traceability block of a transform record.
type Origin struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Record is the flat persisted form of a Transform (transform.json).
type Record struct {
	Version         string                 `json:"version,omitempty"`
	ScaleX          float64                `json:"scale_x"`
	ScaleZ          float64                `json:"scale_z"`
	OffsetX         float64                `json:"offset_x"`
	OffsetZ         float64                `json:"offset_z"`
	Origin          Origin                 `json:"origin"`
	ReferencePoints []model.ReferencePoint `json:"reference_points,omitempty"`
}

// Record returns the persisted form of t.
func (t *Transform) Record() Record {
	return Record{
		Version: RecordVersion,
		ScaleX:  t.p.ScaleX,
		ScaleZ:  t.p.ScaleZ,
		OffsetX: t.p.OffsetX,
		OffsetZ: t.p.OffsetZ,
		Origin: Origin{
			Lat:  t.p.OriginLat,
			Lng:  t.p.OriginLng,
			Name: t.p.OriginName,
		},
	}
}

// FromRecord rebuilds a Transform, applying the same validation as New.
func FromRecord(r Record) (*Transform, error) {
	return New(Params{
		ScaleX:     r.ScaleX,
		ScaleZ:     r.ScaleZ,
		OffsetX:    r.OffsetX,
		OffsetZ:    r.OffsetZ,
		OriginLat:  r.Origin.Lat,
		OriginLng:  r.Origin.Lng,
		OriginName: r.Origin.Name,
	})
}
