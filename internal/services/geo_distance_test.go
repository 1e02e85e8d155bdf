package services

import (
	"testing"

	"smartroute-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lon: 0}
	north := domain.Coordinates{Lat: 1, Lon: 0}

	assert.InDelta(t, 111.195, DistanceKm(origin, north), 0.01)
	assert.Equal(t, DistanceKm(origin, north), DistanceKm(north, origin))
	assert.Zero(t, DistanceKm(north, north))

	// Bengaluru -> Mysuru, about 128 km as the crow flies
	blr := domain.Coordinates{Lat: 12.9716, Lon: 77.5946}
	mys := domain.Coordinates{Lat: 12.2958, Lon: 76.6394}
	assert.InDelta(t, 128.0, DistanceKm(blr, mys), 1.0)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.34, round2(3.33585))
	assert.Equal(t, 46.68, round2(46.67925))
	assert.Equal(t, 0.0, round2(0.004))
}
