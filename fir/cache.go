package fir

import "github.com/kelindar/intmap"

// cacheEntry pairs a materialized Instance with the exact (version,
// rate) it was built for, so a 32-bit key collision in the underlying
// intmap.Map never returns a stale instance silently.
type cacheEntry struct {
	version uint64
	rate    int
	inst    *Instance
}

// Cache memoizes (generator version, sample rate) -> Instance results
// for one Gen. Every pair built so far stays cached (an entry is only
// replaced when another pair hashes to the same key), so returning to
// an earlier version or rate reuses its Instance. It is keyed through
// kelindar/intmap for O(1) integer-keyed lookup instead of hashing a
// struct key through Go's built-in map.
type Cache struct {
	gen     Gen
	entries *intmap.Map[uint32, *cacheEntry]
}

func NewCache(gen Gen) *Cache {
	return &Cache{gen: gen, entries: intmap.New[uint32, *cacheEntry](4, 0.9)}
}

func cacheKey(version uint64, rate int) uint32 {
	// FNV-1a style fold of (version, rate) into 32 bits; collisions are
	// resolved by the stored exact (version, rate) check in Get.
	h := uint32(2166136261)
	for _, b := range [12]byte{
		byte(version), byte(version >> 8), byte(version >> 16), byte(version >> 24),
		byte(version >> 32), byte(version >> 40), byte(version >> 48), byte(version >> 56),
		byte(rate), byte(rate >> 8), byte(rate >> 16), byte(rate >> 24),
	} {
		h ^= uint32(b)
		h *= 16777619
	}
	return h
}

// Get returns the cached Instance for the generator's current Version
// and rate, building it only when that pair is not cached yet.
func (c *Cache) Get(rate int) *Instance {
	version := c.gen.Version()
	key := cacheKey(version, rate)
	if e, ok := c.entries.Load(key); ok && e.version == version && e.rate == rate {
		return e.inst
	}
	inst := c.gen.Make(rate)
	c.entries.Store(key, &cacheEntry{version: version, rate: rate, inst: inst})
	return inst
}
