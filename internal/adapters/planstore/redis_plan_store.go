package planstore

import (
	"context"
	"errors"
	"fmt"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

// LatestPlanKey is the Redis key holding the encoded latest plan.
const LatestPlanKey = "smartroute:plan:latest"

// RedisPlanStore keeps the latest plan in Redis so several service replicas
// serve the same download. A zero TTL keeps the plan until it is replaced.
type RedisPlanStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanStore(client *redis.Client, ttl time.Duration) *RedisPlanStore {
	return &RedisPlanStore{Client: client, TTL: ttl}
}

// Build a client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (s *RedisPlanStore) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "planstore.redis.SavePlan")(&err)

	if s.Client == nil {
		return errors.New("redis plan store: client is nil")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	if err := s.Client.Set(ctx, LatestPlanKey, b, s.TTL).Err(); err != nil {
		return fmt.Errorf("save plan: set %s: %w", LatestPlanKey, err)
	}
	return nil
}

func (s *RedisPlanStore) LatestPlan(ctx context.Context) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "planstore.redis.LatestPlan")(&err)

	if s.Client == nil {
		return nil, errors.New("redis plan store: client is nil")
	}

	b, err := s.Client.Get(ctx, LatestPlanKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest plan: get %s: %w", LatestPlanKey, err)
	}

	return decodePlan(b)
}
