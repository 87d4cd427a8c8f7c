package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"maganghub-radar/internal/maganghub"
)

type stubFetcher struct {
	calls   int
	records []maganghub.Vacancy
	err     error
}

func (s *stubFetcher) FetchAll(context.Context) ([]maganghub.Vacancy, error) {
	s.calls++
	return s.records, s.err
}

func TestCacheServesWithinTTL(t *testing.T) {
	fetcher := &stubFetcher{records: []maganghub.Vacancy{{ID: "1", Odds: 50}}}
	cache := NewCache(fetcher, time.Hour, zap.NewNop())

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	first := cache.GetOrRefresh(context.Background())
	now = now.Add(30 * time.Minute)
	second := cache.GetOrRefresh(context.Background())

	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("cached records differ: %v vs %v", first, second)
	}
}

func TestCacheRefreshesAfterTTL(t *testing.T) {
	fetcher := &stubFetcher{records: []maganghub.Vacancy{{ID: "1"}}}
	cache := NewCache(fetcher, time.Hour, zap.NewNop())

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.GetOrRefresh(context.Background())
	now = now.Add(time.Hour + time.Second)
	cache.GetOrRefresh(context.Background())

	if fetcher.calls != 2 {
		t.Fatalf("expected exactly two fetches, got %d", fetcher.calls)
	}
}

func TestCacheCachesEmptyResult(t *testing.T) {
	fetcher := &stubFetcher{records: nil, err: errors.New("upstream down")}
	cache := NewCache(fetcher, time.Hour, zap.NewNop())

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	got := cache.GetOrRefresh(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}

	// An empty list is stored, but freshness requires non-empty records,
	// so the next call tries upstream again.
	now = now.Add(time.Minute)
	cache.GetOrRefresh(context.Background())
	if fetcher.calls != 2 {
		t.Fatalf("empty cache should refetch, got %d calls", fetcher.calls)
	}
}

func TestCacheReturnsCopy(t *testing.T) {
	fetcher := &stubFetcher{records: []maganghub.Vacancy{{ID: "1", Category: ""}}}
	cache := NewCache(fetcher, time.Hour, zap.NewNop())

	first := cache.GetOrRefresh(context.Background())
	first[0].Category = "IT-RELATED"

	second := cache.GetOrRefresh(context.Background())
	if second[0].Category != "" {
		t.Fatal("mutating a returned slice must not leak into the cache")
	}
}
