package sharded

import (
	"sync"
	"testing"

	"github.com/goose-lang/std"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"lptable/hashtable"
)

// newUint32Table spreads keys round-robin over shards and uses the rest of
// the key as the slot index.
func newUint32Table(numShards uint64, shardCapacity uint64) *Table[uint32, uint64] {
	// NewTable turns 0 shards into 1; the slot hash has to agree
	var perShard = numShards
	if perShard == 0 {
		perShard = 1
	}
	return NewTable[uint32, uint64](
		func(k uint32) uint64 { return uint64(k) },
		func(k uint32) uint64 { return (uint64(k) / perShard) % shardCapacity },
		numShards, shardCapacity)
}

func TestStoreLoad(t *testing.T) {
	assert := assert.New(t)

	h := newUint32Table(10, 8)
	_, ok := h.Load(1)
	assert.False(ok)

	assert.NoError(h.Store(1, 10))
	v, ok := h.Load(1)
	assert.True(ok)
	assert.Equal(uint64(10), v)

	assert.NoError(h.Store(3, 30))
	v, _ = h.Load(3)
	assert.Equal(uint64(30), v)
	v, _ = h.Load(1)
	assert.Equal(uint64(10), v)

	assert.NoError(h.Store(1, 11))
	v, _ = h.Load(1)
	assert.Equal(uint64(11), v)
	assert.Equal(uint64(2), h.Len())
	assert.Equal(uint64(80), h.Capacity())
}

func TestZeroShards(t *testing.T) {
	assert := assert.New(t)
	h := newUint32Table(0, 4)
	assert.Equal(uint64(1), h.NumShards())
	assert.Equal(uint64(4), h.Capacity())
	assert.NoError(h.Store(2, 20))
	assert.NoError(h.Store(6, 60))
	v, ok := h.Load(2)
	assert.True(ok)
	assert.Equal(uint64(20), v)
	v, ok = h.Load(6)
	assert.True(ok)
	assert.Equal(uint64(60), v)
	_, ok = h.Load(3)
	assert.False(ok)
	assert.Equal(uint64(2), h.Len())
}

func TestZeroShardsSlotHash(t *testing.T) {
	// the slot hash alone decides placement when there is a single shard
	h := NewTable[uint32, uint64](
		func(k uint32) uint64 { return uint64(k) },
		func(k uint32) uint64 { return uint64(k) % 4 },
		0, 4)
	assert.NoError(t, h.Store(2, 20))
	v, ok := h.Load(2)
	assert.True(t, ok)
	assert.Equal(t, uint64(20), v)
}

func TestShardFull(t *testing.T) {
	assert := assert.New(t)
	h := newUint32Table(2, 2)
	// even keys all go to shard 0
	assert.NoError(h.Store(0, 0))
	assert.NoError(h.Store(2, 2))
	assert.ErrorIs(h.Store(4, 4), hashtable.ErrTableFull)
	// shard 1 still has room
	assert.NoError(h.Store(1, 1))
	assert.Equal(uint64(3), h.Len())
}

func TestConcurrentLoadStore(t *testing.T) {
	h := newUint32Table(10, 16)
	// Concurrent load and store, checking that we don't panic or deadlock (but
	// not checking the actual results)
	writer := std.Spawn(func() {
		for i := 0; i < 100; i++ {
			_ = h.Store(uint32(i), uint64(i))
		}
	})
	reader := std.Spawn(func() {
		for i := 0; i < 100; i++ {
			h.Load(uint32(i))
		}
	})
	writer.Join()
	reader.Join()
	assert.Equal(t, uint64(100), h.Len())
}

func TestConcurrentLoadStoreOrder(t *testing.T) {
	h := newUint32Table(5, 32)

	// Check that loads observe stores in the right order.

	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		for i := 0; i < 100; i++ {
			assert.NoError(t, h.Store(uint32(i), uint64(i*10)))
		}
		wg.Done()
	}()

	// do 10 concurrent tests of load ordering
	for load_i := 0; load_i < 10; load_i++ {
		wg.Add(1)
		go func() {
			// once one load returns true, the rest should, too
			found := false
			for i := 99; i >= 0; i-- {
				_, ok := h.Load(uint32(i))
				if found {
					assert.True(t, ok)
				}
				if ok {
					found = true
				}
			}
			wg.Done()
		}()
	}
	wg.Wait()
}

func TestStoreLoadProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		assert := assert.New(t)
		numShards := rapid.Uint64Range(1, 4).Draw(t, "numShards")
		capacity := rapid.Uint64Range(1, 8).Draw(t, "capacity")
		h := newUint32Table(numShards, capacity)
		model := make(map[uint32]uint64)
		perShard := make(map[uint64]uint64)

		keys := rapid.SliceOfN(rapid.Uint32Range(0, 50), 0, 60).Draw(t, "keys")
		for i, k := range keys {
			err := h.Store(k, uint64(i))
			s := uint64(k) % numShards
			if _, ok := model[k]; ok || perShard[s] < capacity {
				if assert.NoError(err) {
					if _, ok := model[k]; !ok {
						perShard[s]++
					}
					model[k] = uint64(i)
				}
			} else {
				assert.ErrorIs(err, hashtable.ErrTableFull)
			}
		}

		assert.Equal(uint64(len(model)), h.Len())
		for k := uint32(0); k <= 50; k++ {
			v, ok := h.Load(k)
			expected, present := model[k]
			assert.Equal(present, ok, "load %d", k)
			if present {
				assert.Equal(expected, v)
			}
		}
	})
}
