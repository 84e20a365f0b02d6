package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerRecordAccumulates(t *testing.T) {
	l := NewLedger()
	l.Record("primary", "gpt-4o-mini", 1000, 500)
	l.Record("primary", "gpt-4o-mini", 2000, 1000)
	l.Record("fallback", "claude-haiku-4-5", 100, 50)

	snap := l.Snapshot()
	assert.Equal(t, int64(3), snap.TotalCalls)
	assert.Equal(t, int64(2), snap.Providers["primary"].Calls)
	assert.Equal(t, int64(3000), snap.Providers["primary"].InputTokens)
	assert.Equal(t, int64(1500), snap.Providers["primary"].OutputTokens)
	assert.Greater(t, snap.TotalCost, 0.0)
}

func TestLedgerReset(t *testing.T) {
	l := NewLedger()
	l.Record("primary", "gpt-4o-mini", 100, 100)
	l.RecordHit()
	l.RecordMiss()

	l.Reset()
	snap := l.Snapshot()
	assert.Zero(t, snap.TotalCalls)
	assert.Zero(t, snap.CacheHits)
	assert.Zero(t, snap.CacheMisses)
	assert.Empty(t, snap.Providers)
}

func TestLedgerConcurrentRecords(t *testing.T) {
	l := NewLedger()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			l.Record("primary", "gpt-4o-mini", 10, 5)
			l.RecordMiss()
		}()
	}
	wg.Wait()

	snap := l.Snapshot()
	assert.Equal(t, int64(workers), snap.TotalCalls)
	assert.Equal(t, int64(workers*10), snap.Providers["primary"].InputTokens)
	assert.Equal(t, int64(workers), snap.CacheMisses)
}
