// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore tracks fixed-window request counters keyed by client and
// window. Implementations must be safe for concurrent use.
type CounterStore interface {
	// Incr increments the counter for key and returns the new value.
	// ttl bounds how long the counter may live after its window ends.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Reset drops all counters for a client key prefix.
	Reset(ctx context.Context, prefix string) error
}

// MemoryCounterStore keeps counters in process memory.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryCounterStore creates an in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]*memoryCounter)}
}

// Incr implements CounterStore.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || now.After(c.expiresAt) {
		c = &memoryCounter{expiresAt: now.Add(ttl)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// Reset implements CounterStore.
func (s *MemoryCounterStore) Reset(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.counters {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.counters, key)
		}
	}
	return nil
}

// Sweep removes expired counters. Run it periodically so buckets for
// one-off clients do not pile up.
func (s *MemoryCounterStore) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, c := range s.counters {
		if now.After(c.expiresAt) {
			delete(s.counters, key)
			removed++
		}
	}
	return removed
}

// RedisCounterStore keeps counters in Redis so limits hold across
// replicas.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a Redis-backed counter store.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// Incr implements CounterStore.
func (s *RedisCounterStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset implements CounterStore.
func (s *RedisCounterStore) Reset(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// RateLimiter applies a fixed-window per-client limit backed by a
// CounterStore.
type RateLimiter struct {
	store  CounterStore
	max    int64
	window time.Duration
	prefix string
}

// NewRateLimiter creates a limiter allowing max requests per window.
// The prefix namespaces counter keys so several limiters can share one
// store.
func NewRateLimiter(store CounterStore, max int, window time.Duration, prefix string) *RateLimiter {
	return &RateLimiter{
		store:  store,
		max:    int64(max),
		window: window,
		prefix: prefix,
	}
}

// windowKey buckets time into fixed windows. All requests inside one
// window share a counter.
func (rl *RateLimiter) windowKey(ip string, now time.Time) string {
	bucket := now.Unix() / int64(rl.window.Seconds())
	return rl.prefix + ":" + ip + ":" + strconv.FormatInt(bucket, 10)
}

// retryAfter reports seconds until the current window rolls over.
func (rl *RateLimiter) retryAfter(now time.Time) int {
	windowSecs := int64(rl.window.Seconds())
	elapsed := now.Unix() % windowSecs
	return int(windowSecs - elapsed)
}

// Middleware enforces the limit and annotates responses with
// X-RateLimit headers.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		ip := getClientIP(r)

		count, err := rl.store.Incr(r.Context(), rl.windowKey(ip, now), rl.window+time.Second)
		if err != nil {
			// A broken counter store must not take the site down.
			slog.Error("rate limit store failure", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.max - count
		if remaining < 0 {
			remaining = 0
		}
		reset := rl.retryAfter(now)

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.max, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > rl.max {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path, "count", count)
			w.Header().Set("Retry-After", strconv.Itoa(reset))
			writeErrorRetry(w, http.StatusTooManyRequests,
				"Too many requests. Please try again later.", reset)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ResetClient drops the counters of one client in every window. Exposed
// on a dev-only route for frontend testing.
func (rl *RateLimiter) ResetClient(ctx context.Context, ip string) error {
	return rl.store.Reset(ctx, rl.prefix+":"+ip+":")
}
