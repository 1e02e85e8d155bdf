package services

import (
	"context"
	"errors"
	"fmt"

	"smartroute-service/internal/domain"
)

// HalfLoadRatio stops candidate selection once a vehicle is this full, so a
// single pass never tries to load a vehicle to capacity.
const HalfLoadRatio = 0.5

// ComposeResult is the outcome of one composition run.
type ComposeResult struct {
	Trips      []domain.Trip
	Unassigned []string
	Passes     int
}

// TripComposer groups a shipment pool into trips for a fleet.
// A composer owns its pool and fleet and is used for a single run.
type TripComposer struct {
	depot      domain.Coordinates
	pool       []domain.Shipment
	fleet      *domain.Fleet
	nextTripID int
}

// NewTripComposer validates the input and copies the shipment pool in order.
func NewTripComposer(depot domain.Coordinates, shipments []domain.Shipment, fleet *domain.Fleet) (*TripComposer, error) {
	if fleet == nil {
		return nil, errors.New("new trip composer: fleet must be non-nil")
	}

	if err := depot.Validate(); err != nil {
		var inErr *domain.InvalidInputError
		if errors.As(err, &inErr) {
			inErr.Record = "depot"
		}
		return nil, err
	}

	seen := make(map[string]struct{}, len(shipments))
	pool := make([]domain.Shipment, 0, len(shipments))
	for i, s := range shipments {
		if s.ID == "" {
			return nil, &domain.InvalidInputError{
				Record: fmt.Sprintf("shipment at index %d", i),
				Field:  "id",
				Reason: "must not be empty",
			}
		}
		if _, ok := seen[s.ID]; ok {
			return nil, &domain.InvalidInputError{
				Record: fmt.Sprintf("shipment %q", s.ID),
				Field:  "id",
				Reason: "duplicate shipment id",
			}
		}
		seen[s.ID] = struct{}{}

		if err := s.Location.Validate(); err != nil {
			var inErr *domain.InvalidInputError
			if errors.As(err, &inErr) {
				inErr.Record = fmt.Sprintf("shipment %q", s.ID)
			}
			return nil, err
		}
		pool = append(pool, s)
	}

	return &TripComposer{
		depot:      depot,
		pool:       pool,
		fleet:      fleet,
		nextTripID: 1,
	}, nil
}

// Compose drains the pool pass by pass. Each pass offers the head of the pool
// to every vehicle class in priority order and commits the candidates whose
// estimated route fits the class radius.
//
// When a pass commits nothing the remaining shipments cannot be placed; the
// result then carries them in Unassigned and the error is an
// *domain.UnassignableShipmentsError.
func (c *TripComposer) Compose(ctx context.Context) (*ComposeResult, error) {
	res := &ComposeResult{Trips: []domain.Trip{}}

	for len(c.pool) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("compose trips: pass %d: %w", res.Passes+1, err)
		}
		res.Passes++

		progressed := false
		for _, class := range c.fleet.Classes() {
			if class.Available.Exhausted() {
				continue
			}

			stops := c.selectCandidates(class)
			if len(stops) == 0 {
				continue
			}

			points := make([]domain.Coordinates, 0, len(stops))
			for _, s := range stops {
				points = append(points, s.Location)
			}

			est := EstimateRoute(c.depot, points)
			if !class.MaxRadiusKm.Admits(est.DistanceKm) {
				continue
			}

			trip, err := c.commit(class, stops, est)
			if err != nil {
				return nil, fmt.Errorf("compose trips: %w", err)
			}
			res.Trips = append(res.Trips, trip)
			progressed = true
		}

		if !progressed && len(c.pool) > 0 {
			ids := make([]string, 0, len(c.pool))
			for _, s := range c.pool {
				ids = append(ids, s.ID)
			}
			res.Unassigned = ids
			return res, &domain.UnassignableShipmentsError{ShipmentIDs: ids}
		}
	}

	return res, nil
}

// selectCandidates takes shipments from the head of the pool while they fit
// the capacity, stopping early once the half-load mark is reached.
func (c *TripComposer) selectCandidates(class domain.VehicleClass) []domain.TripStop {
	capacity := class.Capacity.Float()

	stops := make([]domain.TripStop, 0)
	for _, s := range c.pool {
		if float64(len(stops)+1) <= capacity {
			stops = append(stops, domain.TripStop{
				ShipmentID:      s.ID,
				Location:        s.Location,
				Timeslot:        s.Timeslot,
				DepotDistanceKm: round2(DistanceKm(c.depot, s.Location)),
			})
		}
		if float64(len(stops)) >= capacity*HalfLoadRatio {
			break
		}
	}

	return stops
}

func (c *TripComposer) commit(class domain.VehicleClass, stops []domain.TripStop, est RouteEstimate) (domain.Trip, error) {
	if err := c.fleet.Decrement(class.Type); err != nil {
		return domain.Trip{}, fmt.Errorf("commit trip %d: %w", c.nextTripID, err)
	}

	util := domain.Utilization{Unbounded: true}
	if capacity, ok := class.Capacity.Value(); ok {
		util = domain.Utilization{Percent: round2(float64(len(stops)) / float64(capacity) * 100)}
	}

	trip := domain.Trip{
		TripID:          c.nextTripID,
		VehicleType:     class.Type,
		Stops:           stops,
		MSTDistanceKm:   est.DistanceKm,
		TripTimeMinutes: est.TripMinutes,
		Utilization:     util,
	}
	c.nextTripID++

	committed := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		committed[s.ShipmentID] = struct{}{}
	}
	remaining := c.pool[:0]
	for _, s := range c.pool {
		if _, ok := committed[s.ID]; !ok {
			remaining = append(remaining, s)
		}
	}
	c.pool = remaining

	return trip, nil
}
