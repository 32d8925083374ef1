package application

import (
	"sync"
	"time"
)

// statsCache keeps the most recent statistics summary so repeated dashboard
// requests do not recompute every aggregate while the registries are
// unchanged. Entries are keyed by the state revision and carry a TTL as a
// backstop.
type statsCache struct {
	mu  sync.RWMutex
	now func() time.Time
	ttl time.Duration

	revision  uint64
	summary   StatisticsSummary
	expiresAt time.Time
	valid     bool
}

func newStatsCache(ttl time.Duration, now func() time.Time) *statsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &statsCache{now: now, ttl: ttl}
}

func (c *statsCache) Get(revision uint64) (StatisticsSummary, bool) {
	if c == nil {
		return StatisticsSummary{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || c.revision != revision {
		return StatisticsSummary{}, false
	}
	if c.now().After(c.expiresAt) {
		return StatisticsSummary{}, false
	}
	return c.summary, true
}

func (c *statsCache) Store(revision uint64, summary StatisticsSummary) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revision = revision
	c.summary = summary
	c.expiresAt = c.now().Add(c.ttl)
	c.valid = true
}

func (c *statsCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
