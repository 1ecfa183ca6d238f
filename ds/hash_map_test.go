package ds

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMap_PutGet(t *testing.T) {
	hm := NewHashMap[int](0)
	assert.Equal(t, 16, hm.Capacity())

	hm.PutString("a.wave", 1)
	hm.PutString("b.image", 2)

	value, ok := hm.GetString("a.wave")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	value, ok = hm.GetString("b.image")
	assert.True(t, ok)
	assert.Equal(t, 2, value)

	_, ok = hm.GetString("missing")
	assert.False(t, ok)
	assert.False(t, hm.ExistsString("missing"))
	assert.Equal(t, 2, hm.Len())
}

func TestHashMap_PutOverwrites(t *testing.T) {
	hm := NewHashMap[string](16)
	hm.Put(42, "first")
	hm.Put(42, "second")

	value, ok := hm.Get(42)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, hm.Len())
}

func TestHashMap_Remove(t *testing.T) {
	hm := NewHashMap[int](16)
	hm.Put(1, 10)
	hm.Put(2, 20)

	assert.True(t, hm.Remove(1))
	assert.False(t, hm.Remove(1))
	assert.False(t, hm.Exists(1))
	assert.True(t, hm.Exists(2))
	assert.Equal(t, 1, hm.Len())

	hm.Put(1, 11)
	value, ok := hm.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 11, value)
}

// TestHashMap_CollidingBuckets forces every key into the same chain: lookups must skip
// slots that hold other keys instead of giving up on the first mismatch.
func TestHashMap_CollidingBuckets(t *testing.T) {
	hm := NewHashMap[int](1 << 10)
	keys := make([]uint32, 0)
	target := hm.TranslateIndex(0)
	for key := uint32(1); len(keys) < 6; key++ {
		if hm.TranslateIndex(key) == target {
			keys = append(keys, key)
		}
	}
	for i, key := range keys {
		hm.Put(key, i)
	}
	first := hm.find(keys[0])
	require.True(t, hm.Remove(keys[0]))
	for i, key := range keys[1:] {
		value, ok := hm.Get(key)
		assert.True(t, ok)
		assert.Equal(t, i+1, value)
	}

	hm.Put(keys[0], 100)
	assert.NotEqual(t, first, hm.find(keys[0]))
	assert.True(t, hm.slots[first].removed)
	value, ok := hm.Get(keys[0])
	assert.True(t, ok)
	assert.Equal(t, 100, value)
}

func TestHashMap_LoadFactorAndResize(t *testing.T) {
	hm := NewHashMap[int](16)
	names := lo.Times(500, func(i int) string { return fmt.Sprintf("file_%03d.anim", i) })
	for i, name := range names {
		hm.PutString(name, i)
		assert.LessOrEqual(t, float64(hm.Len())/float64(hm.Capacity()), 0.5)
	}
	assert.Greater(t, hm.Capacity(), 16)
	for i, name := range names {
		value, ok := hm.GetString(name)
		require.True(t, ok, name)
		assert.Equal(t, i, value)
	}
}

// TestHashMap_RandomOperations checks the table against a Go map over a random
// sequence of puts and removes.
func TestHashMap_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hm := NewHashMap[int](16)
	expected := map[uint32]int{}
	for i := 0; i < 5000; i++ {
		key := uint32(rng.Intn(700))
		if rng.Intn(3) == 0 {
			_, existed := expected[key]
			assert.Equal(t, existed, hm.Remove(key))
			delete(expected, key)
			continue
		}
		hm.Put(key, i)
		expected[key] = i
		assert.LessOrEqual(t, 2*hm.Len(), hm.Capacity())
	}
	assert.Equal(t, len(expected), hm.Len())
	for key, value := range expected {
		actual, ok := hm.Get(key)
		assert.True(t, ok)
		assert.Equal(t, value, actual)
	}
	seen := 0
	hm.Each(func(key uint32, data int) {
		seen++
		assert.Equal(t, expected[key], data)
	})
	assert.Equal(t, len(expected), seen)
}

func TestHashMap_ChurnKeepsCapacity(t *testing.T) {
	hm := NewHashMap[int](16)
	for key := uint32(0); key < 10000; key++ {
		hm.Put(key, int(key))
		require.True(t, hm.Remove(key))
	}
	assert.Equal(t, 0, hm.Len())
	assert.Equal(t, 16, hm.Capacity())

	hm.Put(7, 70)
	value, ok := hm.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 70, value)
}
