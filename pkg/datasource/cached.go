package datasource

import (
	"context"
	"encoding/json"
	"os"

	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/observability"
)

// CachedIntervals memoizes fetches from a file-backed IntervalSource.
// The cache key includes the file's modification time, so edits to the
// underlying file invalidate stale entries.
type CachedIntervals struct {
	src   IntervalSource
	path  string
	store cache.Cache
	keyer cache.Keyer
}

// NewCachedIntervals wraps src with the given cache backend.
func NewCachedIntervals(src IntervalSource, path string, store cache.Cache) *CachedIntervals {
	return &CachedIntervals{src: src, path: path, store: store, keyer: cache.NewKeyer()}
}

// Fetch returns cached records when available, falling through to the
// wrapped source on miss. Cache failures are treated as misses, never as
// fetch errors.
func (c *CachedIntervals) Fetch(ctx context.Context, gr genome.Range) ([]Interval, error) {
	key := c.key(gr)

	if data, hit, err := c.store.Get(ctx, key); err == nil && hit {
		var records []Interval
		if err := json.Unmarshal(data, &records); err == nil {
			observability.Cache().OnCacheHit(ctx, "fetch")
			return records, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "fetch")

	records, err := c.src.Fetch(ctx, gr)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := c.store.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "fetch", len(data))
		}
	}
	return records, nil
}

func (c *CachedIntervals) key(gr genome.Range) string {
	var mtime int64
	if fi, err := os.Stat(c.path); err == nil {
		mtime = fi.ModTime().UnixNano()
	}
	return c.keyer.FetchKey(c.path, mtime, gr.String())
}
