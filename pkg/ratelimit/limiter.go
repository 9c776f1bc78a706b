// Package ratelimit paces outbound messages per recipient so automated
// sends keep an irregular, human-looking cadence.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseDelay = 12 * time.Second
	DefaultJitter    = 3 * time.Second

	// Entries idle this many base delays are dropped by the cleanup sweep.
	idleEvictionFactor = 10
)

// Stats is a point-in-time snapshot of the limiter's tracking state.
type Stats struct {
	TrackedRecipients  int `json:"tracked_recipients"`
	CurrentlyThrottled int `json:"currently_throttled"`
}

// Limiter enforces a minimum randomized spacing between sends to the same
// recipient key. Distinct keys pace independently.
//
// The per-key state is a reservation: the instant the most recent send was
// (or will be) performed. WaitForRateLimit advances the reservation before
// sleeping, so two concurrent callers for one key stack their delays instead
// of both computing a wait against the same stale timestamp.
type Limiter struct {
	baseDelay time.Duration
	jitter    time.Duration

	mu     sync.Mutex
	sendAt map[string]time.Time
	rng    *rand.Rand
	nowFn  func() time.Time
}

// NewLimiter creates a limiter with the given base delay and jitter range.
// Non-positive values fall back to the defaults.
func NewLimiter(baseDelay, jitter time.Duration) *Limiter {
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if jitter <= 0 {
		jitter = DefaultJitter
	}
	return &Limiter{
		baseDelay: baseDelay,
		jitter:    jitter,
		sendAt:    make(map[string]time.Time),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		nowFn:     time.Now,
	}
}

// targetDelay samples base + uniform(-jitter, +jitter). Caller holds mu.
func (l *Limiter) targetDelay() time.Duration {
	span := 2 * l.jitter
	return l.baseDelay - l.jitter + time.Duration(l.rng.Int63n(int64(span)+1))
}

// WaitForRateLimit suspends the caller until it is safe to send to key,
// then records the send. The first send for a key is immediate. The only
// possible error is the context's: on cancellation the reservation stays
// claimed and the caller must not send.
func (l *Limiter) WaitForRateLimit(ctx context.Context, key string) error {
	l.mu.Lock()
	now := l.nowFn()
	reserved := now
	if last, ok := l.sendAt[key]; ok {
		reserved = last.Add(l.targetDelay())
		if reserved.Before(now) {
			reserved = now
		}
	}
	l.sendAt[key] = reserved
	l.mu.Unlock()

	wait := reserved.Sub(now)
	if wait <= 0 {
		return nil
	}

	logrus.Debugf("[RATELIMIT] Throttling %s for %s", key, wait.Round(time.Millisecond))

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CanSendImmediately reports whether at least the base delay has elapsed
// since the last send for key. Jitter is ignored: this is a coarse,
// non-suspending check.
func (l *Limiter) CanSendImmediately(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	last, ok := l.sendAt[key]
	if !ok {
		return true
	}
	return l.nowFn().Sub(last) >= l.baseDelay
}

// NextAvailableTime estimates when the next send for key could go out. The
// jitter sample is drawn fresh on every call, so the result is advisory and
// not stable between calls.
func (l *Limiter) NextAvailableTime(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowFn()
	last, ok := l.sendAt[key]
	if !ok {
		return now
	}
	next := last.Add(l.targetDelay())
	if next.Before(now) {
		return now
	}
	return next
}

// ClearHistory drops the tracking state for key.
func (l *Limiter) ClearHistory(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sendAt, key)
}

// GetStats counts tracked recipients and how many are still inside the
// base-delay window.
func (l *Limiter) GetStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowFn()
	stats := Stats{TrackedRecipients: len(l.sendAt)}
	for _, last := range l.sendAt {
		if now.Sub(last) < l.baseDelay {
			stats.CurrentlyThrottled++
		}
	}
	return stats
}

// StartBackgroundCleanup launches a sweep that evicts recipients idle for
// ten base delays, bounding the tracking map. It stops when ctx is done.
func (l *Limiter) StartBackgroundCleanup(ctx context.Context) {
	ttl := time.Duration(idleEvictionFactor) * l.baseDelay
	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := l.evictIdle(ttl); evicted > 0 {
					logrus.Debugf("[RATELIMIT] Evicted %d idle recipients", evicted)
				}
			}
		}
	}()
}

func (l *Limiter) evictIdle(ttl time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowFn()
	evicted := 0
	for key, last := range l.sendAt {
		if now.Sub(last) >= ttl {
			delete(l.sendAt, key)
			evicted++
		}
	}
	return evicted
}
