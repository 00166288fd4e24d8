package services

import (
	"sync"
	"time"
)

// ActionKind names an independently rate-limited action
type ActionKind string

const (
	ActionContact ActionKind = "contact"
	ActionChat    ActionKind = "chat"
)

// cooldownRecord is the last accepted action for one identity and kind
type cooldownRecord struct {
	lastActionAt time.Time
	cooldown     time.Duration
	seen         bool
}

// RateLimiter enforces a minimum gap between accepted actions of the same
// kind for the same identity. Each kind has its own table, so a burst on one
// endpoint never throttles another.
type RateLimiter struct {
	mu     sync.RWMutex
	tables map[ActionKind]*keyedStore[cooldownRecord]
}

// NewRateLimiter creates an empty RateLimiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{tables: make(map[ActionKind]*keyedStore[cooldownRecord])}
}

// TryConsume accepts the action and records now as its time iff there is no
// prior accepted action for (identity, kind) or at least cooldown has passed
// since it. A rejected call changes nothing.
func (l *RateLimiter) TryConsume(identity string, kind ActionKind, cooldown time.Duration, now time.Time) bool {
	allowed := false
	l.table(kind).with(identity, func(rec *cooldownRecord) {
		if rec.seen && now.Sub(rec.lastActionAt) < cooldown {
			return
		}
		rec.lastActionAt = now
		rec.cooldown = cooldown
		rec.seen = true
		allowed = true
	})
	return allowed
}

// Sweep removes records whose cooldown has fully elapsed; such a record and
// an absent one admit the next action identically.
func (l *RateLimiter) Sweep(now time.Time) int {
	l.mu.RLock()
	tables := make([]*keyedStore[cooldownRecord], 0, len(l.tables))
	for _, t := range l.tables {
		tables = append(tables, t)
	}
	l.mu.RUnlock()

	removed := 0
	for _, t := range tables {
		removed += t.sweep(func(rec *cooldownRecord) bool {
			return !rec.seen || now.Sub(rec.lastActionAt) >= rec.cooldown
		})
	}
	return removed
}

func (l *RateLimiter) table(kind ActionKind) *keyedStore[cooldownRecord] {
	l.mu.RLock()
	t, ok := l.tables[kind]
	l.mu.RUnlock()
	if ok {
		return t
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok = l.tables[kind]; !ok {
		t = newKeyedStore[cooldownRecord]()
		l.tables[kind] = t
	}
	return t
}
