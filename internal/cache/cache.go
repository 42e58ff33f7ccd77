// Package cache memoizes descriptor binds.
//
// descriptor.EncodeBind/DecodeBind are pure, but the columnar host invokes
// them once per SQL expression bind and the result is immutable for the
// life of the expression (spec.md §3 "Lifecycles"). Cache avoids redoing
// the table lookups and validation on repeated binds of the same call
// shape.
//
// Adapted from the teacher's internal/hash (xxHash64 wrapper) and
// internal/collision (collision bookkeeping) packages, repurposed from
// per-metric-name collision tracking to per-descriptor memoization: a
// hash collision here falls back to an equality check instead of being
// treated as a user-visible error, since two distinct call shapes
// colliding is an implementation detail, not contract violation.
package cache

import (
	"strconv"
	"sync"

	"github.com/arloliu/lindel/internal/hash"
)

// Key canonicalizes a bind call's parameters into the string hashed for
// memoization.
type Key struct {
	Kind           uint8
	Direction      uint8
	LaneWidth      uint // W, meaningful for an encode bind
	CodeWidth      uint // C, meaningful for a decode bind
	LaneCount      uint
	ElementRepr    uint8
	ReturnFloat    bool
	ReturnUnsigned bool
}

func (k Key) canonical() string {
	b := make([]byte, 0, 40)
	b = strconv.AppendUint(b, uint64(k.Kind), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(k.Direction), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(k.LaneWidth), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(k.CodeWidth), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(k.LaneCount), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(k.ElementRepr), 10)
	b = append(b, ':')
	b = strconv.AppendBool(b, k.ReturnFloat)
	b = append(b, ':')
	b = strconv.AppendBool(b, k.ReturnUnsigned)

	return string(b)
}

// entry pairs the original key with its bound value, so a hash
// collision between two distinct keys can be detected and corrected.
type entry[V any] struct {
	key   Key
	value V
}

// Cache memoizes bind results keyed by an xxHash64 of their canonical
// form. It is safe for concurrent use (spec.md §5: descriptors require
// no synchronisation once bound, but the cache backing concurrent binds
// does).
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[uint64][]entry[V]
}

// New creates an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[uint64][]entry[V])}
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key Key) (V, bool) {
	h := hash.ID(key.canonical())

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries[h] {
		if e.key == key {
			return e.value, true
		}
	}

	var zero V

	return zero, false
}

// Put stores value for key. A hash collision with a different key is not
// an error: both entries are kept under the same bucket and distinguished
// by an equality check in Get.
func (c *Cache[V]) Put(key Key, value V) {
	h := hash.ID(key.canonical())

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := c.entries[h]
	for i, e := range bucket {
		if e.key == key {
			bucket[i].value = value

			return
		}
	}

	c.entries[h] = append(bucket, entry[V]{key: key, value: value})
}

// Len returns the number of distinct keys currently cached.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, bucket := range c.entries {
		n += len(bucket)
	}

	return n
}
