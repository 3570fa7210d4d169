// Package bimap provides a bidirectional map with unique keys and unique
// values.
package bimap

import (
	"github.com/pkg/errors"
)

// Bimap is a one-to-one mapping between keys and values that supports lookups
// in both directions. It is not safe for concurrent mutation.
type Bimap[K, V comparable] struct {
	// forward maps keys to values.
	forward map[K]V
	// reverse maps values to keys.
	reverse map[V]K
	// order records keys in insertion order.
	order []K
}

// New creates a new empty bidirectional map.
func New[K, V comparable]() *Bimap[K, V] {
	return &Bimap[K, V]{
		forward: make(map[K]V),
		reverse: make(map[V]K),
	}
}

// Insert adds a key/value pair. It fails if either the key or the value is
// already present.
func (m *Bimap[K, V]) Insert(key K, value V) error {
	if _, ok := m.forward[key]; ok {
		return errors.Errorf("duplicate key: %v", key)
	} else if _, ok := m.reverse[value]; ok {
		return errors.Errorf("duplicate value: %v", value)
	}
	m.forward[key] = value
	m.reverse[value] = key
	m.order = append(m.order, key)
	return nil
}

// MustInsert is Insert for static tables, panicking on failure.
func (m *Bimap[K, V]) MustInsert(key K, value V) *Bimap[K, V] {
	if err := m.Insert(key, value); err != nil {
		panic(err)
	}
	return m
}

// ByKey looks up the value associated with a key.
func (m *Bimap[K, V]) ByKey(key K) (V, bool) {
	value, ok := m.forward[key]
	return value, ok
}

// ByValue looks up the key associated with a value.
func (m *Bimap[K, V]) ByValue(value V) (K, bool) {
	key, ok := m.reverse[value]
	return key, ok
}

// DeleteKey removes the pair with the specified key, if present.
func (m *Bimap[K, V]) DeleteKey(key K) {
	if value, ok := m.forward[key]; ok {
		m.remove(key, value)
	}
}

// DeleteValue removes the pair with the specified value, if present.
func (m *Bimap[K, V]) DeleteValue(value V) {
	if key, ok := m.reverse[value]; ok {
		m.remove(key, value)
	}
}

// remove removes a known pair.
func (m *Bimap[K, V]) remove(key K, value V) {
	delete(m.forward, key)
	delete(m.reverse, value)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of pairs.
func (m *Bimap[K, V]) Len() int {
	return len(m.forward)
}

// Keys returns the keys in insertion order.
func (m *Bimap[K, V]) Keys() []K {
	return append([]K(nil), m.order...)
}
