package services

import (
	"smartroute-service/internal/domain"
)

// VisitOrder sequences a trip's stops for driving using a greedy
// nearest-neighbor walk from the depot.
//
// The MST estimate used for feasibility does not fix an order, so this is
// only used for presentation (the map polyline). The trip's own stop list
// keeps selection order. Ties go to the smaller shipment id so the walk is
// deterministic.
func VisitOrder(depot domain.Coordinates, stops []domain.TripStop) []domain.TripStop {
	remaining := append([]domain.TripStop(nil), stops...)
	ordered := make([]domain.TripStop, 0, len(stops))

	current := depot
	for len(remaining) > 0 {
		best := 0
		bestDist := DistanceKm(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			d := DistanceKm(current, remaining[i].Location)
			if d < bestDist || (d == bestDist && remaining[i].ShipmentID < remaining[best].ShipmentID) {
				best, bestDist = i, d
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		current = next.Location
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}
