package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())
	return angle.Radians() * earthRadiusMeters
}

// RadiusCap is a spherical cap around a center point.
type RadiusCap struct {
	cap s2.Cap
}

// NewRadiusCap builds a cap of radiusMeters around (lat, lng).
func NewRadiusCap(lat, lng, radiusMeters float64) RadiusCap {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	angle := s1.Angle(radiusMeters / earthRadiusMeters)
	return RadiusCap{cap: s2.CapFromCenterAngle(center, angle)}
}

// Contains reports whether (lat, lng) lies inside the cap.
func (c RadiusCap) Contains(lat, lng float64) bool {
	return c.cap.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng)))
}

// Bounds returns the lat/lng rectangle enclosing the cap in degrees,
// ordered south, west, north, east.
func (c RadiusCap) Bounds() [4]float64 {
	r := c.cap.RectBound()
	return [4]float64{r.Lo().Lat.Degrees(), r.Lo().Lng.Degrees(), r.Hi().Lat.Degrees(), r.Hi().Lng.Degrees()}
}
