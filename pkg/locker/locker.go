// Package locker provides distributed locking for coordinating writes to the
// same resource across multiple service instances.
package locker

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLockNotAcquired is returned by WithLock after exhausting all
	// acquisition attempts against a lock held by someone else. Recoverable:
	// callers may retry the whole operation later.
	ErrLockNotAcquired = errors.New("lock not acquired")

	// ErrLockStoreUnavailable indicates the lock store itself failed. Never
	// retried internally; callers decide whether connectivity failures are
	// worth retrying.
	ErrLockStoreUnavailable = errors.New("lock store unavailable")
)

// DistributedLocker provides distributed lock capabilities across multiple
// instances. Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire attempts to acquire the lock identified by key. Returns
	// (true, nil) on success and (false, nil) when another holder owns it.
	// The lock auto-expires after ttl if never released, so a crashed holder
	// self-heals without operator involvement. Store failures return an error
	// wrapping ErrLockStoreUnavailable.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key. Safe to call when this
	// instance doesn't own the lock (no-op).
	Release(ctx context.Context, key string) error
}

// Options controls the WithLock acquisition loop.
type Options struct {
	// TTL is the lock auto-expiry. Must be comfortably larger than the
	// expected critical-section duration: there is no renewal mechanism, so a
	// body that outlives the TTL loses mutual exclusion silently.
	TTL time.Duration

	// Retries is the total number of acquisition attempts.
	Retries int

	// RetryDelay is the fixed sleep between attempts. No backoff growth.
	RetryDelay time.Duration
}

// DefaultOptions matches the reference policy for per-user location updates:
// the acquisition loop bounds its own wait at Retries × RetryDelay ≈ 500ms.
func DefaultOptions() Options {
	return Options{
		TTL:        5 * time.Second,
		Retries:    5,
		RetryDelay: 100 * time.Millisecond,
	}
}

func (o *Options) normalize() {
	if o.TTL <= 0 {
		o.TTL = 5 * time.Second
	}
	if o.Retries < 1 {
		o.Retries = 1
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
}

// WithLock runs fn while holding the lock identified by key. It attempts
// acquisition up to opts.Retries times with a fixed opts.RetryDelay sleep
// between attempts, and releases the lock on every exit path of fn, including
// panics. Retries apply only to "lock currently held"; store failures abort
// immediately with an ErrLockStoreUnavailable-wrapping error. When all
// attempts fail, WithLock returns ErrLockNotAcquired and fn is never invoked.
//
// The retry sleep does not observe ctx: the loop's own bound is the deadline.
// Callers needing an overall request deadline enforce it around WithLock.
func WithLock(ctx context.Context, l DistributedLocker, key string, opts Options, fn func(ctx context.Context) error) error {
	opts.normalize()

	for attempt := 0; attempt < opts.Retries; attempt++ {
		acquired, err := l.Acquire(ctx, key, opts.TTL)
		if err != nil {
			return fmt.Errorf("with lock %s: %w", key, err)
		}

		if acquired {
			return runLocked(ctx, l, key, fn)
		}

		if attempt < opts.Retries-1 {
			time.Sleep(opts.RetryDelay)
		}
	}

	return fmt.Errorf("with lock %s after %d attempts: %w", key, opts.Retries, ErrLockNotAcquired)
}

// runLocked executes fn and guarantees the release happens afterward.
// A failed release is not surfaced: the TTL clears the key regardless, and
// masking fn's error with a release error would hide the real failure.
func runLocked(ctx context.Context, l DistributedLocker, key string, fn func(ctx context.Context) error) error {
	defer func() {
		_ = l.Release(ctx, key)
	}()

	return fn(ctx)
}
