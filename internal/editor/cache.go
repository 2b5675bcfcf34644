package editor

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/stateful/mdedit/internal/lru"
	"github.com/stateful/mdedit/pkg/markdown"
)

type cacheEntry struct {
	key      string
	segments []markdown.Segment
}

func (e *cacheEntry) Identifier() string { return e.key }

// Cache memoizes highlight results by text and features.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[*cacheEntry]
	logger  *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

type CacheOption func(*Cache)

func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates a cache holding up to capacity results.
// A capacity of zero disables memoization.
func NewCache(capacity int, opts ...CacheOption) *Cache {
	c := &Cache{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = lru.NewCache[*cacheEntry](
		capacity,
		lru.WithOnEvict(func(e *cacheEntry) {
			c.logger.Debug("evicted highlight result", zap.String("key", e.key))
		}),
	)
	return c
}

func cacheKey(text string, features *markdown.FeatureSet) string {
	h := sha256.New()
	if features == nil {
		_, _ = h.Write([]byte("*"))
	} else {
		names := features.Strings()
		sort.Strings(names)
		_, _ = h.Write([]byte(strings.Join(names, ",")))
	}
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Highlight returns markdown.Highlight(text, features), reusing
// a previous result when possible. The returned slice is shared
// and must not be modified.
func (c *Cache) Highlight(text string, features *markdown.FeatureSet) []markdown.Segment {
	key := cacheKey(text, features)

	entry, hit, _ := c.entries.GetOrCreate(key, func() (*cacheEntry, error) {
		return &cacheEntry{key: key, segments: markdown.Highlight(text, features)}, nil
	})

	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	c.logger.Debug("highlight", zap.Bool("hit", hit), zap.Int("length", len(text)), zap.Int("segments", len(entry.segments)))

	return entry.segments
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	return c.entries.Size()
}
