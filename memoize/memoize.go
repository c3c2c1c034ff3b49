// Package memoize caches the results of a function in a fixed-capacity
// hash table. Once the table is full, new results are still computed but no
// longer cached.
package memoize

import "lptable/hashtable"

type Memoize struct {
	f       func(uint64) uint64
	results *hashtable.Table[uint64, uint64]
}

// NewMemoize caches up to capacity results of f. hash should map arguments
// into [0, capacity); arguments it maps elsewhere are never cached.
func NewMemoize(f func(uint64) uint64, hash func(uint64) uint64, capacity uint64, opts ...hashtable.Option) Memoize {
	return Memoize{
		f:       f,
		results: hashtable.New[uint64, uint64](hash, capacity, opts...),
	}
}

func (m Memoize) Call(x uint64) uint64 {
	cached, ok := m.results.Lookup(x)
	if ok {
		return cached
	}
	y := m.f(x)
	// a full table or a hash outside it only means y isn't cached; the
	// table logs either case through its logger
	_ = m.results.Insert(x, y)
	return y
}

// Cached returns the number of results held in the cache.
func (m Memoize) Cached() uint64 {
	return m.results.Len()
}

// MockMemoize has the same API as Memoize but with an implementation that
// doesn't actually save any results.
type MockMemoize struct {
	f func(uint64) uint64
}

func NewMockMemoize(f func(uint64) uint64) *MockMemoize {
	return &MockMemoize{f: f}
}

func (m *MockMemoize) Call(x uint64) uint64 {
	return m.f(x)
}

func (m *MockMemoize) Cached() uint64 {
	return 0
}
