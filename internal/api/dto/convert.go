package dto

import (
	"fmt"

	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"
)

// ToDataset converts the inline request payload into planning input. Only
// missing coordinates are rejected here; range and id checks happen in the
// composer.
func (d *DatasetRequest) ToDataset() (*ports.Dataset, error) {
	depot, err := coordinates(d.Depot.Lat, d.Depot.Lon, "depot")
	if err != nil {
		return nil, err
	}

	ds := &ports.Dataset{
		Depot:     depot,
		Shipments: make([]domain.Shipment, 0, len(d.Shipments)),
		Vehicles:  make([]domain.RawVehicle, 0, len(d.Vehicles)),
	}
	for i, s := range d.Shipments {
		record := "shipment " + s.ID
		if s.ID == "" {
			record = fmt.Sprintf("shipment #%d", i+1)
		}
		loc, err := coordinates(s.Lat, s.Lon, record)
		if err != nil {
			return nil, err
		}
		ds.Shipments = append(ds.Shipments, domain.Shipment{
			ID:       s.ID,
			Location: loc,
			Timeslot: s.Timeslot,
		})
	}
	for _, v := range d.Vehicles {
		ds.Vehicles = append(ds.Vehicles, domain.RawVehicle{
			Type:        domain.VehicleType(v.Type),
			Capacity:    string(v.Capacity),
			MaxRadiusKm: string(v.MaxRadiusKm),
			Count:       string(v.Count),
		})
	}
	return ds, nil
}

func coordinates(lat, lon *float64, record string) (domain.Coordinates, error) {
	if lat == nil {
		return domain.Coordinates{}, &domain.InvalidInputError{Field: "lat", Record: record, Reason: "missing"}
	}
	if lon == nil {
		return domain.Coordinates{}, &domain.InvalidInputError{Field: "lon", Record: record, Reason: "missing"}
	}
	return domain.Coordinates{Lat: *lat, Lon: *lon}, nil
}

func NewPlanResponse(p *domain.Plan) PlanResponse {
	res := PlanResponse{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		Depot:      PointDTO{Lat: p.Depot.Lat, Lon: p.Depot.Lon},
		Passes:     p.Passes,
		Complete:   p.Complete(),
		Trips:      make([]TripResponse, 0, len(p.Trips)),
		Unassigned: append([]string{}, p.Unassigned...),
	}

	for _, t := range p.Trips {
		var util any = t.Utilization.Percent
		if t.Utilization.Unbounded {
			util = domain.UtilizationNA
		}

		stops := make([]StopResponse, 0, len(t.Stops))
		for _, s := range t.Stops {
			stops = append(stops, StopResponse{
				ShipmentID:      s.ShipmentID,
				Lat:             s.Location.Lat,
				Lon:             s.Location.Lon,
				Timeslot:        s.Timeslot,
				DepotDistanceKm: s.DepotDistanceKm,
			})
		}

		res.Trips = append(res.Trips, TripResponse{
			TripID:          t.TripID,
			Shipments:       t.ShipmentIDs(),
			VehicleType:     string(t.VehicleType),
			MSTDistanceKm:   t.MSTDistanceKm,
			TripTimeMinutes: t.TripTimeMinutes,
			Utilization:     util,
			Stops:           stops,
		})
	}

	return res
}
