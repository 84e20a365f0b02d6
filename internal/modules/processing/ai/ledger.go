package ai

import (
	"sync"

	"github.com/revyse/core/internal/pkg/llm"
)

// ProviderUsage aggregates consumption for a single provider.
type ProviderUsage struct {
	Calls        int64   `json:"calls"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}

// UsageSnapshot is a point-in-time copy of the ledger.
type UsageSnapshot struct {
	Providers   map[string]ProviderUsage `json:"providers"`
	TotalCalls  int64                    `json:"total_calls"`
	TotalCost   float64                  `json:"total_cost_usd"`
	CacheHits   int64                    `json:"cache_hits"`
	CacheMisses int64                    `json:"cache_misses"`
}

// Ledger accumulates token counts and cost estimates per provider, plus
// cache hit/miss counters. Process-lifetime state, reset only by an
// explicit operator call.
type Ledger struct {
	mu        sync.Mutex
	providers map[string]*ProviderUsage
	hits      int64
	misses    int64
}

// NewLedger creates an empty usage ledger.
func NewLedger() *Ledger {
	return &Ledger{providers: make(map[string]*ProviderUsage)}
}

// Record charges one provider call to the ledger.
func (l *Ledger) Record(provider, model string, inputTokens, outputTokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.providers[provider]
	if !ok {
		u = &ProviderUsage{}
		l.providers[provider] = u
	}
	u.Calls++
	u.InputTokens += int64(inputTokens)
	u.OutputTokens += int64(outputTokens)
	u.CostUSD += llm.CostUSD(model, inputTokens, outputTokens)
}

// RecordHit counts a cache hit.
func (l *Ledger) RecordHit() {
	l.mu.Lock()
	l.hits++
	l.mu.Unlock()
}

// RecordMiss counts a cache miss.
func (l *Ledger) RecordMiss() {
	l.mu.Lock()
	l.misses++
	l.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (l *Ledger) Snapshot() UsageSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := UsageSnapshot{
		Providers:   make(map[string]ProviderUsage, len(l.providers)),
		CacheHits:   l.hits,
		CacheMisses: l.misses,
	}
	for name, u := range l.providers {
		snap.Providers[name] = *u
		snap.TotalCalls += u.Calls
		snap.TotalCost += u.CostUSD
	}
	return snap
}

// Reset zeroes all counters.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.providers = make(map[string]*ProviderUsage)
	l.hits = 0
	l.misses = 0
}
