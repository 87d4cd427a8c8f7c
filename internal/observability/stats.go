package observability

import (
	"sync"
	"sync/atomic"
)

// StatsSnapshot is a point-in-time copy of the process counters served on
// /api/stats.
type StatsSnapshot struct {
	PagesFetched      uint64            `json:"pages_fetched"`
	VacanciesFetched  uint64            `json:"vacancies_fetched"`
	CacheRefreshes    uint64            `json:"cache_refreshes"`
	CacheHits         uint64            `json:"cache_hits"`
	AICalls           uint64            `json:"ai_calls"`
	ErrorsTotal       uint64            `json:"errors_total"`
	AICallsByKind     map[string]uint64 `json:"ai_calls_by_kind,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesFetched     uint64
	vacanciesFetched uint64
	cacheRefreshes   uint64
	cacheHits        uint64
	aiCalls          uint64
	errorsTotal      uint64

	statsMu           sync.Mutex
	aiCallsByKind     = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPageFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

func AddVacanciesFetched(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&vacanciesFetched, uint64(n))
}

func IncCacheRefresh() {
	atomic.AddUint64(&cacheRefreshes, 1)
}

func IncCacheHit() {
	atomic.AddUint64(&cacheHits, 1)
}

func IncAICall(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	atomic.AddUint64(&aiCalls, 1)
	statsMu.Lock()
	aiCallsByKind[kind]++
	statsMu.Unlock()
}

func IncError(component string) {
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	aiCopy := copyMap(aiCallsByKind)
	errCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		PagesFetched:      atomic.LoadUint64(&pagesFetched),
		VacanciesFetched:  atomic.LoadUint64(&vacanciesFetched),
		CacheRefreshes:    atomic.LoadUint64(&cacheRefreshes),
		CacheHits:         atomic.LoadUint64(&cacheHits),
		AICalls:           atomic.LoadUint64(&aiCalls),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		AICallsByKind:     aiCopy,
		ErrorsByComponent: errCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
