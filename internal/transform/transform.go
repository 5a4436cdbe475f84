package transform

import (
	"math"

	"shopspawn/internal/model"
)

const (
	AxisX = "x"
	AxisZ = "z"
)

// Params are the raw coefficients of a per-axis affine map:
//
//	gameX = lng*ScaleX + OffsetX
//	gameZ = lat*ScaleZ + OffsetZ
type Params struct {
	ScaleX     float64
	ScaleZ     float64
	OffsetX    float64
	OffsetZ    float64
	OriginLat  float64
	OriginLng  float64
	OriginName string
}

// Transform maps real-world coordinates to the game plane and back.
// It is immutable; build it with New, Fit or FromRecord.
type Transform struct {
	p Params
}

// New validates p and returns the transform.
func New(p Params) (*Transform, error) {
	for _, v := range []float64{p.ScaleX, p.ScaleZ, p.OffsetX, p.OffsetZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &NonInvertibleTransformError{ScaleX: p.ScaleX, ScaleZ: p.ScaleZ}
		}
	}
	if p.ScaleX == 0 || p.ScaleZ == 0 {
		return nil, &NonInvertibleTransformError{ScaleX: p.ScaleX, ScaleZ: p.ScaleZ}
	}
	return &Transform{p: p}, nil
}

// Params returns a copy of the coefficients.
func (t *Transform) Params() Params { return t.p }

func (t *Transform) ScaleX() float64    { return t.p.ScaleX }
func (t *Transform) ScaleZ() float64    { return t.p.ScaleZ }
func (t *Transform) OffsetX() float64   { return t.p.OffsetX }
func (t *Transform) OffsetZ() float64   { return t.p.OffsetZ }
func (t *Transform) OriginName() string { return t.p.OriginName }

// Origin returns the latitude and longitude of the first reference point.
func (t *Transform) Origin() (lat, lng float64) {
	return t.p.OriginLat, t.p.OriginLng
}

// Forward converts a latitude/longitude into game coordinates rounded to 2 decimals.
func (t *Transform) Forward(lat, lng float64) (x, z float64) {
	x = lng*t.p.ScaleX + t.p.OffsetX
	z = lat*t.p.ScaleZ + t.p.OffsetZ
	return round2(x), round2(z)
}

// Inverse converts game coordinates back into latitude/longitude. No rounding is applied.
func (t *Transform) Inverse(x, z float64) (lat, lng float64) {
	lng = (x - t.p.OffsetX) / t.p.ScaleX
	lat = (z - t.p.OffsetZ) / t.p.ScaleZ
	return lat, lng
}

// RoundTripBound is the largest error, in degrees, that Inverse(Forward(lat, lng))
// can show because of the 2-decimal rounding in Forward.
func (t *Transform) RoundTripBound() float64 {
	return 0.005 / math.Min(math.Abs(t.p.ScaleX), math.Abs(t.p.ScaleZ))
}

// Residual is the unrounded difference between predicted and measured game
// coordinates for one reference point.
type Residual struct {
	Name   string
	GameX  float64
	GameZ  float64
	CalcX  float64
	CalcZ  float64
	DeltaX float64
	DeltaZ float64
}

// Residuals evaluates the transform against reference points.
func (t *Transform) Residuals(points []model.ReferencePoint) []Residual {
	out := make([]Residual, len(points))
	for i, p := range points {
		cx := p.Lng*t.p.ScaleX + t.p.OffsetX
		cz := p.Lat*t.p.ScaleZ + t.p.OffsetZ
		out[i] = Residual{
			Name:   p.Name,
			GameX:  p.GameX,
			GameZ:  p.GameZ,
			CalcX:  cx,
			CalcZ:  cz,
			DeltaX: cx - p.GameX,
			DeltaZ: cz - p.GameZ,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
