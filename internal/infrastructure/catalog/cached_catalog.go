// Package catalog decorates the rule catalog with in-memory caching. Rule
// policy changes rarely relative to screening volume, so every screening
// hitting the database for definitions is wasted load.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// CachedCatalog wraps a port.RuleCatalog with a per-category TTL cache.
type CachedCatalog struct {
	inner port.RuleCatalog
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rules     map[string]model.RuleDefinition
	fetchedAt time.Time
}

// NewCachedCatalog creates the caching decorator.
func NewCachedCatalog(inner port.RuleCatalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// ActiveRules serves from cache while the entry is fresh, otherwise fetches
// from the wrapped catalog. A failed refresh returns the error; stale
// entries are not served.
func (c *CachedCatalog) ActiveRules(ctx context.Context, category valueobject.RuleCategory) (map[string]model.RuleDefinition, error) {
	key := category.String()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return copyRules(entry.rules), nil
	}

	rules, err := c.inner.ActiveRules(ctx, category)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{rules: copyRules(rules), fetchedAt: c.now()}
	c.mu.Unlock()

	return copyRules(rules), nil
}

// Invalidate drops all cached entries, forcing the next lookup to hit the
// wrapped catalog.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func copyRules(rules map[string]model.RuleDefinition) map[string]model.RuleDefinition {
	out := make(map[string]model.RuleDefinition, len(rules))
	for code, def := range rules {
		out[code] = def
	}
	return out
}
