package viewers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter tracks how many shoppers are currently viewing each product,
// backed by Redis. It is strictly best-effort: a nil client (Redis not
// configured) or a Redis failure degrades to zero counts and never
// blocks the catalog or the cart.
type Counter struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCounter creates a viewers counter. client may be nil.
func NewCounter(client *redis.Client, logger *slog.Logger) *Counter {
	return &Counter{
		client: client,
		ttl:    30 * time.Minute,
		logger: logger,
	}
}

func counterKey(productID string) string {
	return fmt.Sprintf("viewers:%s", productID)
}

// Enter records a shopper opening the product page and returns the new
// count.
func (c *Counter) Enter(ctx context.Context, productID string) int64 {
	if c.client == nil {
		return 0
	}

	key := counterKey(productID)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		c.logger.Warn("viewers incr failed", "product_id", productID, "error", err)
		return 0
	}
	// Counters drop out on their own if a leave event never arrives.
	if err := c.client.Expire(ctx, key, c.ttl).Err(); err != nil {
		c.logger.Warn("viewers expire failed", "product_id", productID, "error", err)
	}
	return count
}

// Leave records a shopper leaving the product page and returns the new
// count, floored at zero.
func (c *Counter) Leave(ctx context.Context, productID string) int64 {
	if c.client == nil {
		return 0
	}

	count, err := c.client.Decr(ctx, counterKey(productID)).Result()
	if err != nil {
		c.logger.Warn("viewers decr failed", "product_id", productID, "error", err)
		return 0
	}
	if count < 0 {
		if err := c.client.Set(ctx, counterKey(productID), 0, c.ttl).Err(); err != nil {
			c.logger.Warn("viewers reset failed", "product_id", productID, "error", err)
		}
		return 0
	}
	return count
}

// Count returns the current viewer count for the product.
func (c *Counter) Count(ctx context.Context, productID string) int64 {
	if c.client == nil {
		return 0
	}

	count, err := c.client.Get(ctx, counterKey(productID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		c.logger.Warn("viewers get failed", "product_id", productID, "error", err)
		return 0
	}
	return count
}
