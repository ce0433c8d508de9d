// Package ratelimit counts events per key over a sliding window. It backs the
// failed-login guard and the public storefront request limit.
package ratelimit

import (
	"context"
	"time"
)

// Store keeps timestamped hits per key. Implementations drop hits that have
// left the window whenever they touch a key.
type Store interface {
	// Add records a hit at `at` and returns the number of hits in (at-window, at].
	Add(ctx context.Context, key string, at time.Time, window time.Duration) (int, error)
	// Count returns the number of hits in (at-window, at] without recording one.
	Count(ctx context.Context, key string, at time.Time, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// Limiter allows at most limit hits per key inside window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a Limiter over store
func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, now: time.Now}
}

// Window is the length of the sliding window
func (l *Limiter) Window() time.Duration { return l.window }

// Blocked reports whether key has already used up its hits.
func (l *Limiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.store.Count(ctx, key, l.now(), l.window)
	if err != nil {
		return false, err
	}
	return n >= l.limit, nil
}

// Hit records one hit for key, e.g. a failed login.
func (l *Limiter) Hit(ctx context.Context, key string) error {
	_, err := l.store.Add(ctx, key, l.now(), l.window)
	return err
}

// Take reports whether key may make another request and records it if so.
// Refused requests are not recorded, so a key holds at most limit hits and
// a client that keeps retrying is let back in once its oldest hit expires.
// Concurrent callers can race between the count and the add and overshoot
// the limit by a few hits.
func (l *Limiter) Take(ctx context.Context, key string) (bool, error) {
	now := l.now()
	n, err := l.store.Count(ctx, key, now, l.window)
	if err != nil {
		return false, err
	}
	if n >= l.limit {
		return false, nil
	}
	if _, err := l.store.Add(ctx, key, now, l.window); err != nil {
		return false, err
	}
	return true, nil
}

// Reset forgets every hit recorded for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}
