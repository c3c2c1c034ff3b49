// Package hashtable implements a fixed-capacity, open-addressing table that
// resolves collisions by circular linear probing.
//
// The table never grows and never removes entries. The caller supplies the
// hash function, which is expected to return an index in [0, capacity);
// Insert rejects any index outside that range.
//
// A Table is not safe for concurrent use. See package sharded for a
// mutex-guarded wrapper.
package hashtable

import (
	"github.com/goose-lang/primitive"
	"github.com/goose-lang/std"
	"go.uber.org/zap"
)

// Hasher maps a key to a slot index.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HashFunc adapts a plain function to the Hasher interface.
type HashFunc[K any] func(key K) uint64

func (f HashFunc[K]) Hash(key K) uint64 {
	return f(key)
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// A slot is either empty or holds exactly one entry.
type slot[K comparable, V any] struct {
	occupied bool
	entry[K, V]
}

// Table is a fixed-capacity map from K to V. Slots are allocated once by New
// and filled in place by Insert.
type Table[K comparable, V any] struct {
	hash  func(K) uint64
	slots []slot[K, V]
	used  uint64
	log   *zap.Logger
}

// New creates a table with capacity empty slots. The hash function is not
// checked here; out-of-range results are reported by Insert.
func New[K comparable, V any](hash func(K) uint64, capacity uint64, opts ...Option) *Table[K, V] {
	cfg := newConfig(opts)
	return &Table[K, V]{
		hash:  hash,
		slots: make([]slot[K, V], capacity),
		log:   cfg.logger,
	}
}

// NewWithHasher is like New but takes a (possibly stateful) Hasher.
func NewWithHasher[K comparable, V any](h Hasher[K], capacity uint64, opts ...Option) *Table[K, V] {
	return New[K, V](h.Hash, capacity, opts...)
}

// Capacity returns the number of slots, fixed at construction.
func (t *Table[K, V]) Capacity() uint64 {
	return uint64(len(t.slots))
}

// Len returns the number of occupied slots.
func (t *Table[K, V]) Len() uint64 {
	return t.used
}

// Slot returns the entry stored at slot i. ok is false if the slot is empty
// or i is out of range.
func (t *Table[K, V]) Slot(i uint64) (key K, value V, ok bool) {
	if i >= t.Capacity() || !t.slots[i].occupied {
		return key, value, false
	}
	s := t.slots[i]
	return s.key, s.value, true
}

// Insert stores value under key, overwriting the value if key is already
// present. It returns ErrTableFull if key is new and no slot is empty, and a
// *HashRangeError if the hash function returns an index >= Capacity(). On
// error the table is unchanged.
func (t *Table[K, V]) Insert(key K, value V) error {
	capacity := t.Capacity()
	if capacity == 0 {
		t.log.Debug("insert into zero-capacity table")
		return ErrTableFull
	}
	index := t.hash(key)
	if index >= capacity {
		t.log.Debug("hash out of range",
			zap.Uint64("index", index),
			zap.Uint64("capacity", capacity))
		return &HashRangeError{Index: index, Capacity: capacity}
	}

	home := &t.slots[index]
	if !home.occupied {
		t.place(index, key, value)
		return nil
	}
	if home.key == key {
		home.value = value
		return nil
	}

	i, found, ok := t.resolveCollision(index, key)
	if !ok {
		t.log.Debug("table full",
			zap.Uint64("index", index),
			zap.Uint64("capacity", capacity),
			zap.Uint64("used", t.used))
		return ErrTableFull
	}
	if found {
		t.slots[i].value = value
		return nil
	}
	t.log.Debug("collision resolved",
		zap.Uint64("home", index),
		zap.Uint64("slot", i))
	t.place(i, key, value)
	return nil
}

func (t *Table[K, V]) place(i uint64, key K, value V) {
	primitive.Assert(!t.slots[i].occupied)
	t.slots[i] = slot[K, V]{
		occupied: true,
		entry:    entry[K, V]{key: key, value: value},
	}
	t.used = std.SumAssumeNoOverflow(t.used, 1)
}

// resolveCollision probes forward from index to the end of the slots, then
// wraps to [0, index). It returns the first empty slot, or the slot already
// holding key if that comes first (found = true). ok is false if the whole
// table was scanned without finding either.
//
// Stopping at the first empty slot is sound only because entries are never
// removed: a key is always placed at the first empty slot on its own probe
// path, and that slot can't become empty again.
func (t *Table[K, V]) resolveCollision(index uint64, key K) (i uint64, found bool, ok bool) {
	n := t.Capacity()
	for off := uint64(0); off < n; off++ {
		i = index + off
		if i >= n {
			i -= n
		}
		s := &t.slots[i]
		if !s.occupied {
			return i, false, true
		}
		if s.key == key {
			return i, true, true
		}
	}
	return 0, false, false
}

// find scans the forward segment [index, capacity) and then the wrap segment
// [0, index) for key. Empty slots do not end the scan. An out-of-range index
// scans the whole table from 0.
func (t *Table[K, V]) find(key K) (uint64, bool) {
	n := t.Capacity()
	index := t.hash(key)
	if index >= n {
		index = 0
	}
	for i := index; i < n; i++ {
		s := &t.slots[i]
		if s.occupied && s.key == key {
			return i, true
		}
	}
	for i := uint64(0); i < index; i++ {
		s := &t.slots[i]
		if s.occupied && s.key == key {
			return i, true
		}
	}
	return 0, false
}

// Lookup returns the value stored under key. ok is false if key is absent.
func (t *Table[K, V]) Lookup(key K) (value V, ok bool) {
	i, ok := t.find(key)
	if !ok {
		return value, false
	}
	return t.slots[i].value, true
}

// LookupPtr returns a pointer to the value stored under key, or nil if key is
// absent. Entries never move, so the pointer stays valid for the lifetime of
// the table; a later Insert of the same key updates the pointed-to value.
func (t *Table[K, V]) LookupPtr(key K) *V {
	i, ok := t.find(key)
	if !ok {
		return nil
	}
	return &t.slots[i].value
}
