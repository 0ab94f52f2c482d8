package coordinator

import (
	"context"
	"time"

	"github.com/routehaven/orsproxy/internal/fingerprint"
	"github.com/routehaven/orsproxy/pkg/cache"
	"github.com/routehaven/orsproxy/pkg/logger"
)

const (
	// LockTTL bounds how long a holder may keep lock:<fp> before it
	// auto-expires and a crashed holder stops blocking peers forever.
	LockTTL = 30 * time.Second

	// pollInterval and maxWait are the wait-for-cache bounds: frequent
	// enough that a typical sub-second upstream call lets peers piggyback,
	// bounded so a slow upstream still yields to an independent call.
	pollInterval = 250 * time.Millisecond
	maxWait      = 5 * time.Second
)

// Outcome tells the caller what to do after calling Acquire.
type Outcome int

const (
	// Acquired means the caller holds the lock and must call upstream,
	// then Release (via Publish or Abort) on every exit path.
	Acquired Outcome = iota
	// ServedFromCache means a peer published a result while this caller
	// waited; Payload holds it and no upstream call is needed.
	ServedFromCache
	// ProceedIndependently means wait-for-cache timed out; the caller
	// should call upstream anyway without holding the lock.
	ProceedIndependently
)

// Result is returned by Acquire.
type Result struct {
	Outcome Outcome
	Payload string
}

// Coordinator implements the distributed single-flight protocol: at most
// one requester per fingerprint calls upstream at a time, using the cache
// store itself as the sole lock arbiter. No in-process mutex is used —
// a local lock would only serialize this one process and would be silently
// bypassed by any peer instance sharing the same store.
type Coordinator struct {
	store *cache.Store
	log   *logger.Logger
}

func New(store *cache.Store, log *logger.Logger) *Coordinator {
	return &Coordinator{store: store, log: log}
}

// Acquire runs steps 1-2 of the single-flight protocol (after a confirmed
// cache miss): try to become the lock holder, or wait bounded for a peer's
// published result.
func (c *Coordinator) Acquire(ctx context.Context, fp fingerprint.Fingerprint) Result {
	if c.store.TryAcquire(ctx, fp.LockKey(), LockTTL) {
		c.log.LogLockOutcome(fp.Key(), "acquired")
		return Result{Outcome: Acquired}
	}

	c.log.LogLockOutcome(fp.Key(), "not_acquired")

	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return Result{Outcome: ProceedIndependently}
		case <-time.After(pollInterval):
		}

		if payload, ok := c.store.Get(ctx, fp.CacheKey()); ok {
			c.log.LogLockOutcome(fp.Key(), "served_from_cache")
			return Result{Outcome: ServedFromCache, Payload: payload}
		}
	}

	c.log.LogLockOutcome(fp.Key(), "wait_timeout")
	return Result{Outcome: ProceedIndependently}
}

// Publish stores the successful result and releases the lock. Call this
// only after a 2xx (or synthetic NoRoute) upstream outcome.
func (c *Coordinator) Publish(ctx context.Context, fp fingerprint.Fingerprint, payload string, ttl time.Duration) {
	c.store.SetEX(ctx, fp.CacheKey(), payload, ttl)
	c.store.Release(ctx, fp.LockKey())
}

// Abort releases the lock without publishing, for the upstream-failure exit
// path. Every exit after Acquired must run either Publish or Abort.
func (c *Coordinator) Abort(ctx context.Context, fp fingerprint.Fingerprint) {
	c.store.Release(ctx, fp.LockKey())
}
