// Package keyedbag provides a map-backed pending-set used by the sniper
// pipeline to track outstanding asynchronous work. Iteration and Pop order
// are not part of the contract.
package keyedbag

import "iter"

// Bag maps keys to values. Adding an existing key is a no-op, so the first
// value stored under a key wins.
type Bag[K comparable, V any] struct {
	entries map[K]V
}

func New[K comparable, V any]() *Bag[K, V] {
	return &Bag[K, V]{
		entries: make(map[K]V),
	}
}

// Add inserts the value under key. If the key is already present nothing
// happens and the stored value is kept.
func (b *Bag[K, V]) Add(key K, value V) {
	if _, ok := b.entries[key]; ok {
		return
	}

	b.entries[key] = value
}

func (b *Bag[K, V]) Has(key K) bool {
	_, ok := b.entries[key]
	return ok
}

func (b *Bag[K, V]) Get(key K) (V, bool) {
	value, ok := b.entries[key]
	return value, ok
}

// Remove deletes the entry and returns its value. The second return is false
// if the key was absent.
func (b *Bag[K, V]) Remove(key K) (V, bool) {
	value, ok := b.entries[key]
	if ok {
		delete(b.entries, key)
	}

	return value, ok
}

// Pop removes and returns an arbitrary entry. Callers must not rely on the
// selection order being stable or insertion-based.
func (b *Bag[K, V]) Pop() (K, V, bool) {
	for key, value := range b.entries {
		delete(b.entries, key)
		return key, value, true
	}

	var (
		zeroK K
		zeroV V
	)

	return zeroK, zeroV, false
}

// All yields every live entry in map order, which is not stable.
func (b *Bag[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, value := range b.entries {
			if !yield(key, value) {
				return
			}
		}
	}
}

func (b *Bag[K, V]) Clear() {
	clear(b.entries)
}

func (b *Bag[K, V]) Count() int {
	return len(b.entries)
}
