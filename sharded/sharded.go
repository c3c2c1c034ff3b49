// Package sharded puts a lock in front of fixed-capacity hash tables so they
// can be shared between goroutines. Keys are spread over a fixed number of
// shards, each a hashtable.Table with its own mutex.
//
// Shards never grow: a shard that fills up reports hashtable.ErrTableFull
// even if other shards have room.
package sharded

import (
	"github.com/goose-lang/std"

	"lptable/hashtable"
)

type Table[K comparable, V any] struct {
	shards []*shard[K, V]
	// picks the shard; reduced mod len(shards)
	shardOf func(K) uint64
}

func createShards[K comparable, V any](numShards uint64, hash func(K) uint64, capacity uint64, opts []hashtable.Option) []*shard[K, V] {
	var shards = []*shard[K, V]{}
	for i := uint64(0); i < numShards; i++ {
		shards = append(shards, newShard[K, V](hash, capacity, opts))
	}
	return shards
}

// NewTable creates numShards shards of shardCapacity slots each. shardOf
// selects a key's shard and hash selects its slot within the shard; hash must
// return values in [0, shardCapacity). The two should be independent, or
// keys in one shard will crowd into a few slots. A numShards of 0 is treated
// as 1.
func NewTable[K comparable, V any](shardOf func(K) uint64, hash func(K) uint64, numShards uint64, shardCapacity uint64, opts ...hashtable.Option) *Table[K, V] {
	if numShards == 0 {
		numShards = 1
	}
	return &Table[K, V]{
		shards:  createShards[K, V](numShards, hash, shardCapacity, opts),
		shardOf: shardOf,
	}
}

func (t *Table[K, V]) shardFor(key K) *shard[K, V] {
	return t.shards[t.shardOf(key)%uint64(len(t.shards))]
}

func (t *Table[K, V]) Load(key K) (V, bool) {
	return t.shardFor(key).Load(key)
}

// Store inserts or updates key. Errors come from the key's shard unchanged.
func (t *Table[K, V]) Store(key K, v V) error {
	return t.shardFor(key).Store(key, v)
}

// Len is the total number of entries. It locks each shard in turn, so it is
// not a consistent snapshot under concurrent Stores.
func (t *Table[K, V]) Len() uint64 {
	var n = uint64(0)
	for _, s := range t.shards {
		n = std.SumAssumeNoOverflow(n, s.Len())
	}
	return n
}

// Capacity is the total number of slots across all shards.
func (t *Table[K, V]) Capacity() uint64 {
	return uint64(len(t.shards)) * t.shards[0].table.Capacity()
}

func (t *Table[K, V]) NumShards() uint64 {
	return uint64(len(t.shards))
}
