package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/metrics"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
	"time"

	"github.com/google/uuid"
)

type PlanTripsRequest struct {
	// Dataset overrides the source when set.
	Dataset  *ports.Dataset
	Priority []domain.VehicleType
}

// PlanTrips loads the planning input, normalizes a fresh fleet and composes
// trips for it. On an *domain.UnassignableShipmentsError the returned plan is
// non-nil and lists the stranded shipments.
func PlanTrips(
	ctx context.Context,
	req PlanTripsRequest,
	source ports.DatasetSource,
) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "services.PlanTrips")(&err)

	ds := req.Dataset
	if ds == nil {
		if source == nil {
			return nil, errors.New("plan trips: no dataset and no dataset source")
		}
		ds, err = source.LoadDataset(ctx)
		if err != nil {
			metrics.PlansComposed.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("plan trips: load dataset: %w", err)
		}
	}

	priority := req.Priority
	if len(priority) == 0 {
		priority = domain.DefaultPriority
	}

	fleet, err := domain.NormalizeFleet(ds.Vehicles, priority)
	if err != nil {
		metrics.PlansComposed.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("plan trips: normalize fleet: %w", err)
	}

	composer, err := NewTripComposer(ds.Depot, ds.Shipments, fleet)
	if err != nil {
		metrics.PlansComposed.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("plan trips: %w", err)
	}

	start := time.Now()
	res, composeErr := composer.Compose(ctx)
	metrics.ComposeDuration.Observe(time.Since(start).Seconds())

	var unassignable *domain.UnassignableShipmentsError
	if composeErr != nil && !errors.As(composeErr, &unassignable) {
		metrics.PlansComposed.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("plan trips: %w", composeErr)
	}

	plan := &domain.Plan{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Depot:      ds.Depot,
		Trips:      res.Trips,
		Unassigned: res.Unassigned,
		Passes:     res.Passes,
	}

	for _, t := range plan.Trips {
		metrics.TripsCommitted.WithLabelValues(string(t.VehicleType)).Inc()
	}

	log.Printf(
		"req_id=%s plan=%s shipments=%d trips=%d unassigned=%d passes=%d",
		obs.RequestID(ctx), plan.ID, len(ds.Shipments), len(plan.Trips), len(plan.Unassigned), plan.Passes,
	)

	if unassignable != nil {
		metrics.PlansComposed.WithLabelValues("unassignable").Inc()
		return plan, fmt.Errorf("plan trips: %w", composeErr)
	}

	metrics.PlansComposed.WithLabelValues("complete").Inc()
	return plan, nil
}
