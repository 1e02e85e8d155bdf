package ports

import (
	"context"
	"smartroute-service/internal/domain"
)

// Optional notification hook fired after a plan is saved.
type PlanPublisher interface {
	PublishPlan(ctx context.Context, plan *domain.Plan) error
}
