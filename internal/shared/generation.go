package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Generations issues monotonically increasing load tickets per key so that a
// superseded request can tell it is no longer the latest one.
type Generations struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerations constructs a ticket counter whose keys expire after ttl.
func NewGenerations(client *redis.Client, ttl time.Duration) *Generations {
	return &Generations{client: client, ttl: ttl}
}

// Next issues a new ticket for key.
func (g *Generations) Next(ctx context.Context, key string) (int64, error) {
	if g == nil || g.client == nil {
		return 0, nil
	}
	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, generationKey(key))
	if g.ttl > 0 {
		pipe.Expire(ctx, generationKey(key), g.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("generation %s: %w", key, err)
	}
	return incr.Val(), nil
}

// IsCurrent reports whether ticket is still the latest one issued for key.
func (g *Generations) IsCurrent(ctx context.Context, key string, ticket int64) (bool, error) {
	if g == nil || g.client == nil {
		return true, nil
	}
	latest, err := g.client.Get(ctx, generationKey(key)).Int64()
	if err == redis.Nil {
		return ticket == 0, nil
	}
	if err != nil {
		return false, fmt.Errorf("generation %s: %w", key, err)
	}
	return latest == ticket, nil
}

func generationKey(key string) string {
	return "generation:" + key
}
