package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultPlanTTL bounds how long a cached plan survives. Plans are derived
// data keyed by a snapshot fingerprint; the TTL only keeps dead fingerprints
// from accumulating.
const DefaultPlanTTL = 5 * time.Minute

// PlanCache stores computed debt payment plans in Redis as JSON. Plans are
// disposable: the liability and payment records remain the sources of truth,
// so cache errors degrade to recomputation, never to failure.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a PlanCache against the given Redis address
func NewPlanCache(addr string) *PlanCache {
	return &PlanCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    DefaultPlanTTL,
	}
}

// GetPlan returns the cached plan for a fingerprint key, if present
func (c *PlanCache) GetPlan(key string) (*domain.DebtPaymentPlan, bool) {
	ctx := context.Background()
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var plan domain.DebtPaymentPlan
	if err := json.Unmarshal(val, &plan); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Discarding undecodable cached plan")
		return nil, false
	}
	return &plan, true
}

// SetPlan caches a plan under a fingerprint key
func (c *PlanCache) SetPlan(key string, plan *domain.DebtPaymentPlan) error {
	ctx := context.Background()
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Ping verifies the Redis connection
func (c *PlanCache) Ping() error {
	return c.client.Ping(context.Background()).Err()
}
