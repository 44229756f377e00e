// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package canonhash

import (
	"cmp"
	"errors"
	"iter"
	"slices"

	"github.com/blinklabs-io/canonhash/canon"
)

// ErrNoComparator is the panic value when entries are added to a zero
// OrderedMap or OrderedSet, which has no ordering
var ErrNoComparator = errors.New("canonhash: ordered container has no comparator")

// Ordered is satisfied by digestable types with a natural total order
type Ordered interface {
	cmp.Ordered
	Digestable
}

type mapEntry[K, V any] struct {
	key   K
	value V
}

// OrderedMap is a map whose entries are kept sorted by key, so it has a
// canonical encoding. Keys that compare equal are the same key.
type OrderedMap[K, V Digestable] struct {
	compare func(a, b K) int
	entries []mapEntry[K, V]
}

// NewOrderedMap returns an empty map ordered by the natural order of K
func NewOrderedMap[K Ordered, V Digestable]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{compare: cmp.Compare[K]}
}

// NewOrderedMapFunc returns an empty map ordered by compare, which must be
// a total order
func NewOrderedMapFunc[K, V Digestable](
	compare func(a, b K) int,
) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{compare: compare}
}

// OrderedMapFrom copies a Go map into an OrderedMap
func OrderedMapFrom[K Ordered, V Digestable](m map[K]V) *OrderedMap[K, V] {
	ret := NewOrderedMap[K, V]()
	ret.entries = make([]mapEntry[K, V], 0, len(m))
	for k, v := range m {
		ret.entries = append(ret.entries, mapEntry[K, V]{key: k, value: v})
	}
	slices.SortFunc(ret.entries, func(a, b mapEntry[K, V]) int {
		return cmp.Compare(a.key, b.key)
	})
	return ret
}

func (m *OrderedMap[K, V]) search(key K) (int, bool) {
	if m.compare == nil {
		panic(ErrNoComparator)
	}
	return slices.BinarySearchFunc(
		m.entries,
		key,
		func(e mapEntry[K, V], k K) int {
			return m.compare(e.key, k)
		},
	)
}

// Set inserts or replaces the value for key
func (m *OrderedMap[K, V]) Set(key K, value V) {
	i, found := m.search(key)
	if found {
		m.entries[i].value = value
		return
	}
	m.entries = slices.Insert(m.entries, i, mapEntry[K, V]{key: key, value: value})
}

// Get returns the value for key and whether it was present
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	if len(m.entries) == 0 {
		var zero V
		return zero, false
	}
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.entries[i].value, true
}

// Delete removes key, reporting whether it was present
func (m *OrderedMap[K, V]) Delete(key K) bool {
	if len(m.entries) == 0 {
		return false
	}
	i, found := m.search(key)
	if found {
		m.entries = slices.Delete(m.entries, i, i+1)
	}
	return found
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.entries)
}

// All iterates over the entries in key order
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys iterates over the keys in order
func (m *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.entries {
			if !yield(e.key) {
				return
			}
		}
	}
}

func (m *OrderedMap[K, V]) EncodeDigest(s *canon.Slot) {
	if m == nil {
		panic(canon.ErrNilValue)
	}
	enc := s.Map()
	for _, e := range m.entries {
		enc.Entry(e.key, e.value)
	}
	enc.Close()
}

// OrderedSet is a set whose elements are kept sorted, so it has a
// canonical encoding. It is framed as a sequence.
type OrderedSet[K Digestable] struct {
	compare func(a, b K) int
	items   []K
}

// NewOrderedSet returns a set ordered by the natural order of K, holding
// the given items
func NewOrderedSet[K Ordered](items ...K) *OrderedSet[K] {
	ret := &OrderedSet[K]{compare: cmp.Compare[K]}
	for _, item := range items {
		ret.Add(item)
	}
	return ret
}

// NewOrderedSetFunc returns an empty set ordered by compare
func NewOrderedSetFunc[K Digestable](compare func(a, b K) int) *OrderedSet[K] {
	return &OrderedSet[K]{compare: compare}
}

func (o *OrderedSet[K]) search(item K) (int, bool) {
	if o.compare == nil {
		panic(ErrNoComparator)
	}
	return slices.BinarySearchFunc(o.items, item, o.compare)
}

// Add inserts item, reporting whether it was newly added
func (o *OrderedSet[K]) Add(item K) bool {
	i, found := o.search(item)
	if found {
		return false
	}
	o.items = slices.Insert(o.items, i, item)
	return true
}

func (o *OrderedSet[K]) Contains(item K) bool {
	if len(o.items) == 0 {
		return false
	}
	_, found := o.search(item)
	return found
}

// Remove deletes item, reporting whether it was present
func (o *OrderedSet[K]) Remove(item K) bool {
	if len(o.items) == 0 {
		return false
	}
	i, found := o.search(item)
	if found {
		o.items = slices.Delete(o.items, i, i+1)
	}
	return found
}

func (o *OrderedSet[K]) Len() int {
	return len(o.items)
}

// All iterates over the elements in order
func (o *OrderedSet[K]) All() iter.Seq[K] {
	return slices.Values(o.items)
}

func (o *OrderedSet[K]) EncodeDigest(s *canon.Slot) {
	if o == nil {
		panic(canon.ErrNilValue)
	}
	enc := s.List()
	for _, item := range o.items {
		enc.Item().Encode(item)
	}
	enc.Close()
}
