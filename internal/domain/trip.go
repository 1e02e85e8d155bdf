package domain

import (
	"strconv"
	"time"
)

// Represents one shipment inside a committed trip.
// DepotDistanceKm is the straight-line distance from the depot recorded
// during candidate selection; it plays no part in feasibility.
type TripStop struct {
	ShipmentID      string
	Location        Coordinates
	Timeslot        string
	DepotDistanceKm float64
}

// Utilization is a capacity percentage, or unbounded for classes without a
// capacity limit.
type Utilization struct {
	Percent   float64
	Unbounded bool
}

// UtilizationNA is the output label for unbounded utilization.
const UtilizationNA = "N/A"

func (u Utilization) String() string {
	if u.Unbounded {
		return UtilizationNA
	}
	return strconv.FormatFloat(u.Percent, 'f', 2, 64)
}

// Represents a committed group of shipments served by one vehicle.
// Trips are immutable once created and numbered densely in commit order.
type Trip struct {
	TripID          int
	VehicleType     VehicleType
	Stops           []TripStop
	MSTDistanceKm   float64
	TripTimeMinutes float64
	Utilization     Utilization
}

// ShipmentIDs returns the trip's shipments in selection order.
func (t Trip) ShipmentIDs() []string {
	ids := make([]string, 0, len(t.Stops))
	for _, s := range t.Stops {
		ids = append(ids, s.ShipmentID)
	}
	return ids
}

// Represents the output of one planning run: the committed trips and any
// shipments left stranded. A Plan is the single artifact the service keeps.
type Plan struct {
	ID         string
	CreatedAt  time.Time
	Depot      Coordinates
	Trips      []Trip
	Unassigned []string
	Passes     int
}

// Complete reports whether every shipment was placed in a trip.
func (p *Plan) Complete() bool { return len(p.Unassigned) == 0 }

// TripsByVehicle counts trips per vehicle type.
func (p *Plan) TripsByVehicle() map[VehicleType]int {
	out := make(map[VehicleType]int)
	for _, t := range p.Trips {
		out[t.VehicleType]++
	}
	return out
}
