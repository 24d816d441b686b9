// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore is a fixed-window counter. The window starts at the first
// increment of a key and the whole key expires when it ends.
type AttemptStore struct {
	client redis.Cmdable
}

// NewAttemptStore wraps a Redis client (or pipeline/cluster) as an attempt counter.
func NewAttemptStore(client redis.Cmdable) *AttemptStore {
	return &AttemptStore{client: client}
}

// Count returns the attempts recorded for key in the current window.
func (store *AttemptStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := store.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: attempt count failed: %w", err)
	}
	return count, nil
}

// Increment adds an attempt. EXPIRE NX only arms the TTL on the first hit,
// so repeated failures cannot keep extending the window.
func (store *AttemptStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := store.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis: attempt increment failed: %w", err)
	}
	return incr.Val(), nil
}

// TTL reports how long until the window for key resets.
func (store *AttemptStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := store.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: attempt ttl failed: %w", err)
	}
	return ttl, nil
}
