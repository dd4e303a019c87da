package spatial

import (
	"github.com/golang/geo/s2"
)

// Earth's mean radius.
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// HaversineDistance calculates the great-circle distance between two
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// WithinRadius reports whether (lat2, lon2) lies within radiusMeters of
// (lat1, lon1).
func WithinRadius(lat1, lon1, lat2, lon2, radiusMeters float64) bool {
	return HaversineDistance(lat1, lon1, lat2, lon2) <= radiusMeters
}

// RadiusToDegrees gives a conservative bounding-box half-width in
// degrees of latitude for a metric radius, used to pre-filter candidate
// points before the exact distance check.
func RadiusToDegrees(radiusMeters float64) float64 {
	// One degree of latitude is ~111.32 km everywhere.
	return radiusMeters / 111320.0
}
