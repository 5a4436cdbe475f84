package transform

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"shopspawn/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPoints() []model.ReferencePoint {
	return []model.ReferencePoint{
		{Name: "A", Lat: 35.0, Lng: 139.0, GameX: 0, GameZ: 0},
		{Name: "B", Lat: 35.01, Lng: 139.01, GameX: 100, GameZ: -100},
	}
}

func TestFit_TwoPointScenario(t *testing.T) {
	tr, err := Fit(twoPoints())
	require.NoError(t, err)

	assert.InDelta(t, 10000.0, tr.ScaleX(), 1e-6)
	assert.InDelta(t, -10000.0, tr.ScaleZ(), 1e-6)

	x, z := tr.Forward(35.005, 139.005)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, -50.0, z)
}

func TestFit_OriginIsFirstPoint(t *testing.T) {
	points := []model.ReferencePoint{
		{Name: "second", Lat: 35.02, Lng: 139.02, GameX: 200, GameZ: -200},
		{Name: "first", Lat: 35.0, Lng: 139.0, GameX: 0, GameZ: 0},
		{Name: "third", Lat: 35.01, Lng: 139.01, GameX: 100, GameZ: -100},
	}

	tr, err := Fit(points)
	require.NoError(t, err)

	lat, lng := tr.Origin()
	assert.Equal(t, "second", tr.OriginName())
	assert.Equal(t, 35.02, lat)
	assert.Equal(t, 139.02, lng)
}

func TestFit_TwoPointsInterpolateExactly(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 200; i++ {
		a := model.ReferencePoint{
			Name:  "a",
			Lat:   35.69 + rng.Float64()*0.01,
			Lng:   139.78 + rng.Float64()*0.01,
			GameX: round2(rng.Float64()*400 - 200),
			GameZ: round2(rng.Float64()*400 - 200),
		}
		b := model.ReferencePoint{
			Name:  "b",
			Lat:   a.Lat + 0.001 + rng.Float64()*0.01,
			Lng:   a.Lng + 0.001 + rng.Float64()*0.01,
			GameX: round2(rng.Float64()*400 - 200),
			GameZ: round2(rng.Float64()*400 - 200),
		}
		if a.GameX == b.GameX || a.GameZ == b.GameZ {
			continue
		}

		tr, err := Fit([]model.ReferencePoint{a, b})
		require.NoError(t, err)

		for _, p := range []model.ReferencePoint{a, b} {
			x, z := tr.Forward(p.Lat, p.Lng)
			assert.InDelta(t, p.GameX, x, 1e-9)
			assert.InDelta(t, p.GameZ, z, 1e-9)
		}
	}
}

// naiveFit is the textbook closed form evaluated directly on the sums.
func naiveFit(xs, ys []float64) (scale, offset float64) {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	scale = (n*sxy - sx*sy) / (n*sxx - sx*sx)
	offset = (sy - scale*sx) / n
	return scale, offset
}

func sse(xs, ys []float64, scale, offset float64) float64 {
	var total float64
	for i := range xs {
		r := xs[i]*scale + offset - ys[i]
		total += r * r
	}
	return total
}

func syntheticPoints(rng *rand.Rand, n int, baseLat, baseLng float64) []model.ReferencePoint {
	points := make([]model.ReferencePoint, n)
	for i := range points {
		lat := baseLat + rng.Float64()*0.02
		lng := baseLng + rng.Float64()*0.02
		points[i] = model.ReferencePoint{
			Name:  "p",
			Lat:   lat,
			Lng:   lng,
			GameX: (lng-baseLng)*9000 + rng.NormFloat64()*3,
			GameZ: (lat-baseLat)*-11000 + rng.NormFloat64()*3,
		}
	}
	return points
}

func TestFit_MatchesClosedFormOnSmallCoordinates(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	points := syntheticPoints(rng, 25, 0.5, 1.5)

	tr, err := Fit(points)
	require.NoError(t, err)

	var lng, lat, gx, gz []float64
	for _, p := range points {
		lng = append(lng, p.Lng)
		lat = append(lat, p.Lat)
		gx = append(gx, p.GameX)
		gz = append(gz, p.GameZ)
	}

	wantSX, wantOX := naiveFit(lng, gx)
	wantSZ, wantOZ := naiveFit(lat, gz)
	assert.InEpsilon(t, wantSX, tr.ScaleX(), 1e-6)
	assert.InEpsilon(t, wantSZ, tr.ScaleZ(), 1e-6)
	assert.InDelta(t, wantOX, tr.OffsetX(), 1e-3)
	assert.InDelta(t, wantOZ, tr.OffsetZ(), 1e-3)
}

func TestFit_MinimizesSquaredResidual(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	points := syntheticPoints(rng, 40, 35.69, 139.78)

	tr, err := Fit(points)
	require.NoError(t, err)

	var lng, gx []float64
	for _, p := range points {
		lng = append(lng, p.Lng)
		gx = append(gx, p.GameX)
	}

	best := sse(lng, gx, tr.ScaleX(), tr.OffsetX())

	// Brute-force neighbourhood search: no perturbation of the fitted line
	// may lower the squared error. The offset is re-anchored at the mean
	// longitude so that scale perturbations stay meaningful.
	var meanLng float64
	for _, v := range lng {
		meanLng += v
	}
	meanLng /= float64(len(lng))

	for _, ds := range []float64{-50, -5, -0.5, 0, 0.5, 5, 50} {
		for _, do := range []float64{-1, -0.1, -0.01, 0, 0.01, 0.1, 1} {
			if ds == 0 && do == 0 {
				continue
			}
			scale := tr.ScaleX() + ds
			offset := tr.OffsetX() - ds*meanLng + do
			assert.GreaterOrEqual(t, sse(lng, gx, scale, offset), best-1e-6,
				"perturbation ds=%v do=%v beat the fit", ds, do)
		}
	}
}

func TestFit_Errors(t *testing.T) {
	t.Run("no points", func(t *testing.T) {
		tr, err := Fit(nil)
		assert.Nil(t, tr)
		var target *InsufficientDataError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 0, target.Got)
	})

	t.Run("one point", func(t *testing.T) {
		_, err := Fit(twoPoints()[:1])
		var target *InsufficientDataError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 1, target.Got)
	})

	t.Run("equal longitudes", func(t *testing.T) {
		points := twoPoints()
		points[1].Lng = points[0].Lng
		tr, err := Fit(points)
		assert.Nil(t, tr)
		var target *DegenerateInputError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, AxisX, target.Axis)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("equal latitudes", func(t *testing.T) {
		points := twoPoints()
		points[1].Lat = points[0].Lat
		_, err := Fit(points)
		var target *DegenerateInputError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, AxisZ, target.Axis)
	})

	t.Run("flat game axis", func(t *testing.T) {
		points := twoPoints()
		points[1].GameX = points[0].GameX
		tr, err := Fit(points)
		assert.Nil(t, tr)
		var target *NonInvertibleTransformError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 0.0, target.ScaleX)
	})
}

func TestResiduals_ZeroForExactFit(t *testing.T) {
	points := twoPoints()
	tr, err := Fit(points)
	require.NoError(t, err)

	for _, r := range tr.Residuals(points) {
		assert.InDelta(t, 0, r.DeltaX, 1e-6)
		assert.InDelta(t, 0, r.DeltaZ, 1e-6)
		assert.False(t, math.IsNaN(r.CalcX))
	}
}
