package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const claimTTL = 24 * time.Hour

// ConsumptionGuard enforces that a selected class is consumed by at most one
// payment. Claiming is a SETNX so exactly one of two concurrent payment posts
// for the same selection wins.
// Key format: selection:consumed:<selection_id>
type ConsumptionGuard struct {
	client *redis.Client
}

// NewConsumptionGuard creates a ConsumptionGuard wrapping the given client.
func NewConsumptionGuard(client *redis.Client) *ConsumptionGuard {
	return &ConsumptionGuard{client: client}
}

// Claim marks the selection as consumed. Returns false when another payment
// already holds the claim.
func (g *ConsumptionGuard) Claim(ctx context.Context, selectionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(selectionID), "1", claimTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim selection: %w", err)
	}
	return ok, nil
}

// Release frees the claim so a failed payment can be retried.
func (g *ConsumptionGuard) Release(ctx context.Context, selectionID string) error {
	return g.client.Del(ctx, g.key(selectionID)).Err()
}

func (g *ConsumptionGuard) key(selectionID string) string {
	return "selection:consumed:" + selectionID
}
