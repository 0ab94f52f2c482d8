package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/routehaven/orsproxy/pkg/logger"
)

// Store narrows the key-value cache down to the four operations the proxy
// core is allowed to use. Every method degrades to a safe default on a
// store error instead of propagating it — a cache-store outage must degrade
// performance, never correctness. Every degrade path logs a warning, per
// spec.md §7's "log warning, continue" policy for store failures.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStore builds a Store from a REDIS_URL-style DSN.
func NewStore(redisURL string, log *logger.Logger) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	return &Store{client: client, log: log}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns (payload, true) on a hit and ("", false) on a genuine miss or
// any store error — callers cannot tell a miss from an outage, by design:
// both mean "treat this as absent."
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("cache store get failed for %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

// SetEX is best-effort: a failure here never surfaces to the caller. The
// response has already been computed and must be returned regardless.
func (s *Store) SetEX(ctx context.Context, key, payload string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.log.Warnf("cache store setex failed for %s: %v", key, err)
	}
}

// TryAcquire reports whether the caller became the lock holder. A store
// error is reported as acquired=true: the request proceeds to upstream
// rather than blocking on a store that may never answer.
func (s *Store) TryAcquire(ctx context.Context, key string, ttl time.Duration) bool {
	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		s.log.Warnf("cache store try-acquire failed for %s: %v", key, err)
		return true
	}
	return ok
}

// Release is best-effort; the lock TTL is the backstop if this fails.
func (s *Store) Release(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("cache store release failed for %s: %v", key, err)
	}
}
