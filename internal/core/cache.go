package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"maganghub-radar/internal/maganghub"
	"maganghub-radar/internal/observability"
)

// Fetcher pulls the full vacancy list from the upstream listing API.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]maganghub.Vacancy, error)
}

// Cache holds the last fetched vacancy list for a fixed freshness window.
// The whole list is replaced on refresh; there is no per-record expiry. The
// mutex covers the refill so concurrent misses trigger a single fetch.
type Cache struct {
	mu      sync.Mutex
	fetcher Fetcher
	ttl     time.Duration
	logger  *zap.Logger

	records   []maganghub.Vacancy
	fetchedAt time.Time

	now func() time.Time
}

func NewCache(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// GetOrRefresh returns the cached records when they are fresh and non-empty,
// otherwise refetches and replaces the cache wholesale. An empty fetch result
// is stored but never treated as fresh, so the next caller tries again.
// Callers get a copy; the cached slice is never shared.
func (c *Cache) GetOrRefresh(ctx context.Context) []maganghub.Vacancy {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().Sub(c.fetchedAt) < c.ttl && len(c.records) > 0 {
		c.logger.Debug("serving vacancies from cache", zap.Int("records", len(c.records)))
		observability.IncCacheHit()
		return copyRecords(c.records)
	}

	records, err := c.fetcher.FetchAll(ctx)
	if err != nil {
		// Upstream failures degrade to partial (possibly empty) data and
		// are never surfaced to listing callers.
		c.logger.Warn("vacancy fetch incomplete",
			zap.Int("records", len(records)),
			zap.Error(err),
		)
	}
	if records == nil {
		records = []maganghub.Vacancy{}
	}

	c.records = records
	c.fetchedAt = c.now()
	observability.IncCacheRefresh()
	c.logger.Info("vacancy cache refreshed", zap.Int("records", len(records)))

	return copyRecords(c.records)
}

func copyRecords(src []maganghub.Vacancy) []maganghub.Vacancy {
	out := make([]maganghub.Vacancy, len(src))
	copy(out, src)
	return out
}
