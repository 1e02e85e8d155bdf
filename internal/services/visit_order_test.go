package services

import (
	"testing"

	"smartroute-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func stop(id string, lat, lon float64) domain.TripStop {
	return domain.TripStop{ShipmentID: id, Location: domain.Coordinates{Lat: lat, Lon: lon}}
}

func TestVisitOrderWalksNearestFirst(t *testing.T) {
	depot := domain.Coordinates{Lat: 0, Lon: 0}
	stops := []domain.TripStop{
		stop("far", 0.03, 0),
		stop("near", 0.01, 0),
		stop("mid", 0.02, 0),
	}

	got := VisitOrder(depot, stops)

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ShipmentID)
	}
	assert.Equal(t, []string{"near", "mid", "far"}, ids)
	assert.Equal(t, "far", stops[0].ShipmentID, "input is not reordered")
}

func TestVisitOrderTieBreaksByID(t *testing.T) {
	depot := domain.Coordinates{Lat: 0, Lon: 0}
	got := VisitOrder(depot, []domain.TripStop{stop("b", 0.01, 0), stop("a", -0.01, 0)})
	assert.Equal(t, "a", got[0].ShipmentID)
}

func TestVisitOrderEmpty(t *testing.T) {
	assert.Empty(t, VisitOrder(domain.Coordinates{}, nil))
}
