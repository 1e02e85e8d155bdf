package planstore

import (
	"encoding/json"
	"fmt"
	"smartroute-service/internal/domain"
	"time"
)

// Stored form of a plan. Field names are part of the on-disk and Redis
// format; change them only together with a migration.
type planRecord struct {
	ID         string       `json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	Depot      pointRecord  `json:"depot"`
	Trips      []tripRecord `json:"trips"`
	Unassigned []string     `json:"unassigned"`
	Passes     int          `json:"passes"`
}

type pointRecord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type tripRecord struct {
	TripID          int          `json:"trip_id"`
	VehicleType     string       `json:"vehicle_type"`
	Stops           []stopRecord `json:"stops"`
	MSTDistanceKm   float64      `json:"mst_distance_km"`
	TripTimeMinutes float64      `json:"trip_time_minutes"`
	// Nil means the vehicle class has no capacity limit.
	UtilizationPct *float64 `json:"utilization_pct"`
}

type stopRecord struct {
	ShipmentID      string      `json:"shipment_id"`
	Location        pointRecord `json:"location"`
	Timeslot        string      `json:"timeslot,omitempty"`
	DepotDistanceKm float64     `json:"depot_distance_km"`
}

func encodePlan(plan *domain.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("encode plan: plan is nil")
	}

	rec := planRecord{
		ID:         plan.ID,
		CreatedAt:  plan.CreatedAt,
		Depot:      pointRecord{Lat: plan.Depot.Lat, Lon: plan.Depot.Lon},
		Trips:      make([]tripRecord, 0, len(plan.Trips)),
		Unassigned: append([]string{}, plan.Unassigned...),
		Passes:     plan.Passes,
	}

	for _, t := range plan.Trips {
		tr := tripRecord{
			TripID:          t.TripID,
			VehicleType:     string(t.VehicleType),
			Stops:           make([]stopRecord, 0, len(t.Stops)),
			MSTDistanceKm:   t.MSTDistanceKm,
			TripTimeMinutes: t.TripTimeMinutes,
		}
		if !t.Utilization.Unbounded {
			pct := t.Utilization.Percent
			tr.UtilizationPct = &pct
		}
		for _, s := range t.Stops {
			tr.Stops = append(tr.Stops, stopRecord{
				ShipmentID:      s.ShipmentID,
				Location:        pointRecord{Lat: s.Location.Lat, Lon: s.Location.Lon},
				Timeslot:        s.Timeslot,
				DepotDistanceKm: s.DepotDistanceKm,
			})
		}
		rec.Trips = append(rec.Trips, tr)
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode plan %s: %w", plan.ID, err)
	}
	return b, nil
}

func decodePlan(b []byte) (*domain.Plan, error) {
	var rec planRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	plan := &domain.Plan{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Depot:     domain.Coordinates{Lat: rec.Depot.Lat, Lon: rec.Depot.Lon},
		Trips:     make([]domain.Trip, 0, len(rec.Trips)),
		Passes:    rec.Passes,
	}
	if len(rec.Unassigned) > 0 {
		plan.Unassigned = rec.Unassigned
	}

	for _, tr := range rec.Trips {
		t := domain.Trip{
			TripID:          tr.TripID,
			VehicleType:     domain.VehicleType(tr.VehicleType),
			Stops:           make([]domain.TripStop, 0, len(tr.Stops)),
			MSTDistanceKm:   tr.MSTDistanceKm,
			TripTimeMinutes: tr.TripTimeMinutes,
			Utilization:     domain.Utilization{Unbounded: true},
		}
		if tr.UtilizationPct != nil {
			t.Utilization = domain.Utilization{Percent: *tr.UtilizationPct}
		}
		for _, s := range tr.Stops {
			t.Stops = append(t.Stops, domain.TripStop{
				ShipmentID:      s.ShipmentID,
				Location:        domain.Coordinates{Lat: s.Location.Lat, Lon: s.Location.Lon},
				Timeslot:        s.Timeslot,
				DepotDistanceKm: s.DepotDistanceKm,
			})
		}
		plan.Trips = append(plan.Trips, t)
	}

	return plan, nil
}
