// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles login attempts per (ip, email) pair through redis
// counters. A nil client disables limiting, which keeps local development
// redis-free.
type RateLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewRateLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func loginKey(ip, email string) string {
	return fmt.Sprintf("ratelimit:login:%s:%s", ip, email)
}

// CheckLoginAttempt counts the attempt and reports whether it is allowed,
// plus the attempts remaining in the window.
func (r *RateLimiter) CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error) {
	if r.client == nil {
		return true, r.maxAttempts, nil
	}

	key := loginKey(ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		r.client.Expire(ctx, key, r.window)
	}

	remaining := r.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= r.maxAttempts, remaining, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (r *RateLimiter) ResetLoginAttempts(ctx context.Context, ip, email string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, loginKey(ip, email)).Err()
}
