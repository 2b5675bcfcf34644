package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stateful/mdedit/pkg/markdown"
)

func TestCache_Highlight(t *testing.T) {
	cache := NewCache(2, WithCacheLogger(zaptest.NewLogger(t)))

	first := cache.Highlight("**a**", nil)
	require.Equal(t, markdown.Highlight("**a**", nil), first)

	_ = cache.Highlight("**a**", nil)
	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// The same text with other features is a different entry.
	plain := cache.Highlight("**a**", markdown.NewFeatureSet())
	assert.Equal(t, []markdown.Segment{{Text: "**a**", Type: markdown.SegmentText}}, plain)
	assert.Equal(t, 2, cache.Len())

	_ = cache.Highlight("c", nil)
	assert.Equal(t, 2, cache.Len())

	hits, misses = cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(3), misses)
}

func TestCache_FeatureOrderDoesNotMatter(t *testing.T) {
	a := markdown.NewFeatureSet(markdown.FeatureBold, markdown.FeatureItalic)
	b := markdown.NewFeatureSet(markdown.FeatureItalic, markdown.FeatureBold)
	assert.Equal(t, cacheKey("x", a), cacheKey("x", b))
	assert.NotEqual(t, cacheKey("x", a), cacheKey("x", nil))
	assert.NotEqual(t, cacheKey("x", nil), cacheKey("y", nil))
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(0)
	_ = cache.Highlight("a", nil)
	_ = cache.Highlight("a", nil)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(2), misses)
	assert.Equal(t, 0, cache.Len())
}
