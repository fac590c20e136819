package engine

// DefaultEvalCacheMB is the default evaluation cache size.
const DefaultEvalCacheMB = 1

// evalEntry stores a cached static evaluation.
type evalEntry struct {
	key   uint64
	score int32
	valid bool
}

// EvalCache is a fixed-size, always-replace cache of static evaluations
// keyed by position hash. It is only valid for one evaluation color.
type EvalCache struct {
	entries []evalEntry
	mask    uint64

	hits   uint64
	probes uint64
}

// NewEvalCache creates a cache of about sizeMB megabytes. It returns nil
// for sizeMB <= 0; a nil cache never hits.
func NewEvalCache(sizeMB int) *EvalCache {
	if sizeMB <= 0 {
		return nil
	}

	// Each entry is 16 bytes, round down to a power of 2
	numEntries := (sizeMB * 1024 * 1024) / 16
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}

	return &EvalCache{
		entries: make([]evalEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe returns the cached score for key.
func (c *EvalCache) Probe(key uint64) (int, bool) {
	if c == nil {
		return 0, false
	}
	c.probes++
	entry := &c.entries[key&c.mask]
	if entry.valid && entry.key == key {
		c.hits++
		return int(entry.score), true
	}
	return 0, false
}

// Store saves a score for key, replacing whatever shared its slot.
func (c *EvalCache) Store(key uint64, score int) {
	if c == nil {
		return
	}
	c.entries[key&c.mask] = evalEntry{key: key, score: int32(score), valid: true}
}

// Clear empties the cache.
func (c *EvalCache) Clear() {
	if c == nil {
		return
	}
	clear(c.entries)
	c.hits, c.probes = 0, 0
}

// HitRate returns the cache hit rate as a percentage.
func (c *EvalCache) HitRate() float64 {
	if c == nil || c.probes == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.probes) * 100
}
