// Package ratelimit counts requests per key in fixed windows kept in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// Counter is the storage a Limiter counts hits in.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounter struct {
	rdb redis.Cmdable
}

func (r redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

func (r redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.rdb.Expire(ctx, key, ttl).Err()
}

// Limiter allows Limit hits per key per Window. A nil Limiter allows
// everything, which is how the server runs without Redis.
type Limiter struct {
	store  Counter
	prefix string
	Limit  int
	Window time.Duration
}

func New(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *Limiter {
	if rdb == nil {
		return nil
	}
	return NewWithCounter(redisCounter{rdb: rdb}, prefix, limit, window)
}

func NewWithCounter(c Counter, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{store: c, prefix: prefix, Limit: limit, Window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.store == nil {
		return true, nil
	}

	k := fmt.Sprintf("rate:%s:%s", l.prefix, key)
	count, err := l.store.Incr(ctx, k)
	if err != nil {
		return false, err
	}
	// First hit opens the window.
	if count == 1 {
		if err := l.store.Expire(ctx, k, l.Window); err != nil {
			return false, err
		}
	}
	return count <= int64(l.Limit), nil
}
