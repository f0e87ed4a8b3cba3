package cache

import (
	"sync"
	"time"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

const DefaultTTL = 5 * time.Minute

// ── Category list cache ──────────────────────────────────────────────────────
// Holds the public category list with product counts. The storefront
// dropdown, /api/categories and the category page all read from it.

type entry struct {
	categories []models.CategoryWithCount
	fetchedAt  time.Time
}

type CategoryCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	entry *entry
}

func NewCategoryCache(ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CategoryCache{ttl: ttl, now: time.Now}
}

// Get returns a copy of the cached list while it is fresh.
func (c *CategoryCache) Get() ([]models.CategoryWithCount, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().Sub(c.entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	out := make([]models.CategoryWithCount, len(c.entry.categories))
	copy(out, c.entry.categories)
	return out, true
}

func (c *CategoryCache) Set(categories []models.CategoryWithCount) {
	stored := make([]models.CategoryWithCount, len(categories))
	copy(stored, categories)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &entry{categories: stored, fetchedAt: c.now()}
}

// ── Invalidate (call on any category or product create/update/delete) ───────

func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
