package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact(createdAt time.Time) *Artifact {
	return &Artifact{
		Summary:   &SummaryArtifact{Content: "cached"},
		CreatedAt: createdAt,
	}
}

func TestMemoryCacheHitMissCounting(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Put(ctx, "k1", testArtifact(time.Now()))
	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "cached", got.Summary.Content)

	stats := c.Stats(ctx)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Size)
}

func TestMemoryCacheEvictsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)

	base := time.Now()
	for i := 0; i < 3; i++ {
		c.Put(ctx, fmt.Sprintf("k%d", i), testArtifact(base.Add(time.Duration(i)*time.Minute)))
	}
	c.Put(ctx, "k3", testArtifact(base.Add(3*time.Minute)))

	_, ok := c.Get(ctx, "k0")
	assert.False(t, ok, "oldest entry should be evicted")
	for _, key := range []string{"k1", "k2", "k3"} {
		_, ok := c.Get(ctx, key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, int64(3), c.Stats(ctx).Size)
}

func TestMemoryCacheOverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	c.Put(ctx, "a", testArtifact(time.Now()))
	c.Put(ctx, "b", testArtifact(time.Now()))
	c.Put(ctx, "a", testArtifact(time.Now()))

	_, ok := c.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, int64(2), c.Stats(ctx).Size)
}

func TestMemoryCachePrune(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	c.Put(ctx, "old", testArtifact(time.Now().Add(-2*time.Hour)))
	c.Put(ctx, "fresh", testArtifact(time.Now()))

	assert.Equal(t, 1, c.Prune(ctx, time.Hour))

	_, ok := c.Get(ctx, "old")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "fresh")
	assert.True(t, ok)

	assert.Zero(t, c.Prune(ctx, 0), "zero max age disables pruning")
}

func TestMemoryCacheClearResetsCounters(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	c.Put(ctx, "k", testArtifact(time.Now()))
	c.Get(ctx, "k")
	c.Get(ctx, "nope")

	require.NoError(t, c.Clear(ctx))
	stats := c.Stats(ctx)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.Size)
}
