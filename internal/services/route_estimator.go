package services

import (
	"math"

	"smartroute-service/internal/domain"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

const (
	// MinutesPerKm is the travel cost applied to the estimated route length.
	MinutesPerKm = 5.0
	// MinutesPerStop is the fixed handling time per delivered shipment.
	MinutesPerStop = 10.0
)

// RouteEstimate is the approximate length and duration of a trip.
type RouteEstimate struct {
	DistanceKm  float64
	TripMinutes float64
}

// EstimateRoute approximates a trip's route by the minimum spanning tree of
// the complete graph over the depot and the stops, weighted by great-circle
// distance. The result does not depend on the order of points.
func EstimateRoute(depot domain.Coordinates, points []domain.Coordinates) RouteEstimate {
	if len(points) == 0 {
		return RouteEstimate{}
	}

	vertices := make([]domain.Coordinates, 0, 1+len(points))
	vertices = append(vertices, depot)
	vertices = append(vertices, points...)

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range vertices {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			w := DistanceKm(vertices[i], vertices[j])
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
		}
	}

	mst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	weight := path.Prim(mst, g)

	return RouteEstimate{
		DistanceKm:  round2(weight),
		TripMinutes: round2(weight*MinutesPerKm + float64(len(points))*MinutesPerStop),
	}
}
