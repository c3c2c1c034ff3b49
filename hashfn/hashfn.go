// Package hashfn provides bounded hash functions for use with
// hashtable.New. Every function returned here maps its input into
// [0, capacity); a capacity of 0 yields a function that always returns 0.
package hashfn

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Modulo returns k mod capacity. Suited to integer keys that are already
// well spread.
func Modulo[T constraints.Unsigned](capacity uint64) func(T) uint64 {
	if capacity == 0 {
		return func(T) uint64 { return 0 }
	}
	return func(k T) uint64 {
		return uint64(k) % capacity
	}
}

// String hashes a string key with xxhash64.
func String(capacity uint64) func(string) uint64 {
	if capacity == 0 {
		return func(string) uint64 { return 0 }
	}
	return func(k string) uint64 {
		return xxhash.Sum64String(k) % capacity
	}
}

// Bytes is String for byte slices. A []byte can't be a table key; this is for
// callers hashing a serialized form of their key.
func Bytes(capacity uint64) func([]byte) uint64 {
	if capacity == 0 {
		return func([]byte) uint64 { return 0 }
	}
	return func(k []byte) uint64 {
		return xxhash.Sum64(k) % capacity
	}
}

// FNV hashes a string key with 64-bit FNV-1a.
func FNV(capacity uint64) func(string) uint64 {
	if capacity == 0 {
		return func(string) uint64 { return 0 }
	}
	return func(k string) uint64 {
		h := fnv.New64a()
		// NOTE: Write on a hash.Hash never returns an error
		_, _ = h.Write([]byte(k))
		return h.Sum64() % capacity
	}
}
