package transform

import (
	"math"

	"shopspawn/internal/model"
)

// degenerateEpsilon bounds n*Σx² − (Σx)² below which a fit is undefined.
const degenerateEpsilon = 1e-10

// Fit computes the least-squares transform for the given reference points,
// independently per axis: longitude drives game X, latitude drives game Z.
// The origin of the result is always points[0].
func Fit(points []model.ReferencePoint) (*Transform, error) {
	n := len(points)
	if n < 2 {
		return nil, &InsufficientDataError{Got: n}
	}

	lng := make([]float64, n)
	lat := make([]float64, n)
	gx := make([]float64, n)
	gz := make([]float64, n)
	for i, p := range points {
		lng[i], lat[i], gx[i], gz[i] = p.Lng, p.Lat, p.GameX, p.GameZ
	}

	scaleX, offsetX, err := fitAxis(AxisX, lng, gx)
	if err != nil {
		return nil, err
	}
	scaleZ, offsetZ, err := fitAxis(AxisZ, lat, gz)
	if err != nil {
		return nil, err
	}

	origin := points[0]
	return New(Params{
		ScaleX:     scaleX,
		ScaleZ:     scaleZ,
		OffsetX:    offsetX,
		OffsetZ:    offsetZ,
		OriginLat:  origin.Lat,
		OriginLng:  origin.Lng,
		OriginName: origin.Name,
	})
}

// fitAxis solves y = scale*x + offset by ordinary least squares.
//
// It works on mean-centred values: Σ(dx·dy)/Σ(dx²) equals
// (nΣxy − ΣxΣy)/(nΣx² − (Σx)²) but keeps its precision when every x is
// close to 139.
func fitAxis(axis string, xs, ys []float64) (scale, offset float64, err error) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}

	denom := n * sxx
	if math.Abs(denom) < degenerateEpsilon {
		return 0, 0, &DegenerateInputError{Axis: axis, Denominator: denom}
	}

	scale = sxy / sxx
	offset = meanY - scale*meanX
	return scale, offset, nil
}
