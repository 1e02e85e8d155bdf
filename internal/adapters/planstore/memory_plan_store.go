package planstore

import (
	"context"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"
	"sync"
)

// MemoryPlanStore keeps the latest plan in process memory. Plans are stored
// encoded so callers can never mutate the saved copy.
type MemoryPlanStore struct {
	mu     sync.RWMutex
	latest []byte
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{}
}

func (s *MemoryPlanStore) SavePlan(ctx context.Context, plan *domain.Plan) error {
	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.latest = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryPlanStore) LatestPlan(ctx context.Context) (*domain.Plan, error) {
	s.mu.RLock()
	b := s.latest
	s.mu.RUnlock()

	if b == nil {
		return nil, ports.ErrPlanNotFound
	}
	return decodePlan(b)
}
