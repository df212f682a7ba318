package radiru

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"radiru/internal/platform/logger"
)

// Refresh reasons passed to the refresh hook and logged.
const (
	RefreshMissing = "missing"
	RefreshStale   = "stale"
	RefreshForced  = "forced"
)

// Cache serves the config document from a Store, refetching it when the
// stored copy is missing or stale. It is safe for concurrent use: the
// staleness check and the overwrite happen under one lock.
type Cache struct {
	mu        sync.Mutex
	store     Store
	fetcher   Fetcher
	now       func() time.Time
	log       *slog.Logger
	onRefresh func(reason string)
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock sets the clock used for freshness checks.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger used to report refreshes.
func WithLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) { c.log = log }
}

// WithRefreshHook registers fn to be called after each successful refetch.
func WithRefreshHook(fn func(reason string)) CacheOption {
	return func(c *Cache) { c.onRefresh = fn }
}

// NewCache returns a Cache reading through store and refilling from fetcher.
func NewCache(store Store, fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadOrRefresh returns the cached document, first replacing it with a
// fresh copy if it is missing or IsStale says so. Fetch and write errors
// abort the call; nothing is retried.
func (c *Cache) LoadOrRefresh(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	modTime, ok, err := c.store.Stat()
	if err != nil {
		return nil, err
	}

	switch {
	case !ok:
		return c.refreshLocked(ctx, RefreshMissing)
	case IsStale(c.now(), modTime):
		c.log.Debug("cached config document is stale", slog.Time("last_modified", modTime))
		return c.refreshLocked(ctx, RefreshStale)
	}

	return c.store.Read()
}

// Refresh refetches the document regardless of its age.
func (c *Cache) Refresh(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx, RefreshForced)
}

// refreshLocked fetches, stores and reads back the document.
// Caller must hold c.mu.
func (c *Cache) refreshLocked(ctx context.Context, reason string) ([]byte, error) {
	doc, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Write(doc); err != nil {
		return nil, err
	}

	c.log.Info("config document refreshed",
		slog.String("reason", reason),
		slog.Int("size", len(doc)))
	if c.onRefresh != nil {
		c.onRefresh(reason)
	}

	return c.store.Read()
}
