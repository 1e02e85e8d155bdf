package ports

import (
	"context"
	"errors"
	"smartroute-service/internal/domain"
)

// ErrPlanNotFound is returned when no plan has been composed yet.
var ErrPlanNotFound = errors.New("plan not found")

// Contract for keeping the latest composed plan, the service's only output artifact.
type PlanStore interface {
	// Replace the latest plan.
	SavePlan(ctx context.Context, plan *domain.Plan) error
	// Return the latest plan or ErrPlanNotFound.
	LatestPlan(ctx context.Context) (*domain.Plan, error)
}
