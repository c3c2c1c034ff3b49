package sharded

import (
	"sync"

	"lptable/hashtable"
)

// A shard is one fixed-capacity table and the lock that protects it.
type shard[K comparable, V any] struct {
	mu    *sync.Mutex
	table *hashtable.Table[K, V]
}

func newShard[K comparable, V any](hash func(K) uint64, capacity uint64, opts []hashtable.Option) *shard[K, V] {
	return &shard[K, V]{
		mu:    new(sync.Mutex),
		table: hashtable.New[K, V](hash, capacity, opts...),
	}
}

func (s *shard[K, V]) Load(key K) (V, bool) {
	s.mu.Lock()
	v, ok := s.table.Lookup(key)
	s.mu.Unlock()
	return v, ok
}

func (s *shard[K, V]) Store(key K, v V) error {
	s.mu.Lock()
	err := s.table.Insert(key, v)
	s.mu.Unlock()
	return err
}

func (s *shard[K, V]) Len() uint64 {
	s.mu.Lock()
	n := s.table.Len()
	s.mu.Unlock()
	return n
}
