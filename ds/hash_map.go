package ds

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/ahash"
)

const (
	DefaultHashMapCapacity = 16
	// DefaultChainLength bounds linear probing; a longer chain forces a resize.
	DefaultChainLength = 16
)

type (
	hashMapSlot[T any] struct {
		key     uint32
		used    bool
		// removed slots keep their chain intact and only become free again on resize
		removed bool
		data    T
	}
	// HashMap is an open-addressing table keyed by 32-bit hashes.
	//
	// Slots live in one flat slice whose length is always a power of two. A key is placed with
	// TranslateIndex and collisions are resolved with linear probing over at most ChainLength
	// slots. The table never holds more than Capacity/2 live entries.
	HashMap[T any] struct {
		slots       []hashMapSlot[T]
		count       int
		removed     int
		chainLength int
	}
)

func NewHashMap[T any](capacity int) *HashMap[T] {
	size := DefaultHashMapCapacity
	for size < capacity {
		size <<= 1
	}
	return &HashMap[T]{
		slots:       make([]hashMapSlot[T], size),
		chainLength: DefaultChainLength,
	}
}

func (r *HashMap[T]) Len() int {
	return r.count
}

func (r *HashMap[T]) Capacity() int {
	return len(r.slots)
}

// TranslateIndex mixes the key bits and masks the result to the table size.
func (r *HashMap[T]) TranslateIndex(key uint32) uint32 {
	return translateIndex(key, len(r.slots))
}

func translateIndex(index uint32, capacity int) uint32 {
	index += index << 12
	index ^= index >> 22
	index += index << 4
	index ^= index >> 9
	index += index << 10
	index ^= index >> 2
	index += index << 7
	index ^= index >> 12
	index = (index >> 3) * 0x9E3779B1
	return index & uint32(capacity-1)
}

// find walks the whole chain of key and returns the slot holding it, or -1.
func (r *HashMap[T]) find(key uint32) int {
	mask := uint32(len(r.slots) - 1)
	index := r.TranslateIndex(key)
	for i := 0; i < r.chainLength; i++ {
		slot := &r.slots[index]
		if slot.used && slot.key == key {
			return int(index)
		}
		index = (index + 1) & mask
	}
	return -1
}

// free returns the first never-used slot in the chain of key, or -1 when the chain is full.
func (r *HashMap[T]) free(key uint32) int {
	mask := uint32(len(r.slots) - 1)
	index := r.TranslateIndex(key)
	for i := 0; i < r.chainLength; i++ {
		if !r.slots[index].used && !r.slots[index].removed {
			return int(index)
		}
		index = (index + 1) & mask
	}
	return -1
}

func (r *HashMap[T]) Put(key uint32, data T) {
	if index := r.find(key); index >= 0 {
		r.slots[index].data = data
		return
	}
	for {
		if r.count+1 < len(r.slots)/2 {
			if index := r.free(key); index >= 0 {
				r.slots[index] = hashMapSlot[T]{key: key, used: true, data: data}
				r.count++
				return
			}
			// a chain clogged by removed slots in a sparse table is rehashed in place
			if r.removed > 0 && r.count < len(r.slots)/4 {
				r.resize(len(r.slots))
				continue
			}
		}
		r.resize(len(r.slots) << 1)
	}
}

func (r *HashMap[T]) PutString(s string, data T) {
	r.Put(ahash.HashString(s), data)
}

// resize rehashes every live slot into a table of the given capacity, doubling again
// when a chain overflows during the rehash.
func (r *HashMap[T]) resize(capacity int) {
	old := r.slots
	for {
		slots := make([]hashMapSlot[T], capacity)
		ok := true
		for _, slot := range old {
			if !slot.used {
				continue
			}
			index := translateIndex(slot.key, capacity)
			placed := false
			for i := 0; i < r.chainLength; i++ {
				if !slots[index].used {
					slots[index] = slot
					placed = true
					break
				}
				index = (index + 1) & uint32(capacity-1)
			}
			if !placed {
				ok = false
				break
			}
		}
		if ok {
			r.slots = slots
			r.removed = 0
			return
		}
		capacity <<= 1
		if capacity <= 0 {
			panic(ErrUnreachableCode{Caller: "HashMap.resize", Detail: "capacity overflow"})
		}
	}
}

func (r *HashMap[T]) Get(key uint32) (T, bool) {
	if index := r.find(key); index >= 0 {
		return r.slots[index].data, true
	}
	var zero T
	return zero, false
}

func (r *HashMap[T]) GetString(s string) (T, bool) {
	return r.Get(ahash.HashString(s))
}

func (r *HashMap[T]) Exists(key uint32) bool {
	return r.find(key) >= 0
}

func (r *HashMap[T]) ExistsString(s string) bool {
	return r.Exists(ahash.HashString(s))
}

// Remove marks the slot of key unused. Slots are not compacted and Put does not claim the
// slot again until the next rehash.
func (r *HashMap[T]) Remove(key uint32) bool {
	index := r.find(key)
	if index < 0 {
		return false
	}
	var zero T
	r.slots[index].used = false
	r.slots[index].removed = true
	r.slots[index].data = zero
	r.count--
	r.removed++
	return true
}

func (r *HashMap[T]) RemoveString(s string) bool {
	return r.Remove(ahash.HashString(s))
}

// Each calls f for every live entry in slot order.
func (r *HashMap[T]) Each(f func(key uint32, data T)) {
	for _, slot := range r.slots {
		if slot.used {
			f(slot.key, slot.data)
		}
	}
}
