package services

import (
	"math"

	"smartroute-service/internal/domain"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the IUGG mean Earth radius.
const EarthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between two coordinates in km.
func DistanceKm(a, b domain.Coordinates) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * EarthRadiusKm
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
