// Copyright 2026 The intmap Authors
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

package intmap

import "errors"

// ErrNoEntry is returned by Iterator.Delete when the iterator has no current
// entry: either Next has not yet returned true, or the entry returned by the
// last Next has already been deleted.
var ErrNoEntry = errors.New("intmap: iterator has no current entry")

// All calls yield sequentially for each key and value present in the map, in
// ascending slot order. If yield returns false, All stops the iteration. The
// map can be mutated during iteration, though there is no guarantee that the
// mutations will be visible to the iteration.
func (m *Map) All(yield func(key, value int32) bool) {
	// Snapshot the slice headers so that iteration remains valid if the map
	// is grown during iteration.
	keys, values, states := m.keys, m.values, m.states
	for i, state := range states {
		if state == slotFilled {
			if !yield(keys[i], values[i]) {
				return
			}
		}
	}
}

// Keys calls yield sequentially for the key of each entry present in the
// map. If yield returns false, Keys stops the iteration.
func (m *Map) Keys(yield func(key int32) bool) {
	m.All(func(key, _ int32) bool {
		return yield(key)
	})
}

// Values calls yield sequentially for the value of each entry present in the
// map, once per entry, so a value held by several keys is yielded several
// times. If yield returns false, Values stops the iteration.
func (m *Map) Values(yield func(value int32) bool) {
	m.All(func(_, value int32) bool {
		return yield(value)
	})
}

// Iterator walks the entries of a Map one at a time in ascending slot order.
// Unlike All, an Iterator can delete the current entry and write through to
// its value mid-scan. The iterator reads the backing arrays directly and
// holds no snapshot: mutating the map through anything other than the
// iterator's own Delete and SetValue invalidates the iteration.
type Iterator struct {
	m *Map
	// cursor is the slot the scan has advanced to, or -1 before the first
	// call to Next.
	cursor int
	// last is the slot of the entry most recently returned by Next, or -1
	// when there is no current entry.
	last int
}

// Iter returns an iterator positioned before the first entry. Next must be
// called to advance to an entry before Key, Value, SetValue, or Delete may
// be used.
func (m *Map) Iter() *Iterator {
	return &Iterator{m: m, cursor: -1, last: -1}
}

// Next advances the iterator to the next entry, returning false when the
// entries are exhausted. Every entry present for the whole iteration is
// returned exactly once; an entry removed with Delete is not returned again.
func (it *Iterator) Next() bool {
	states := it.m.states
	for i := it.cursor + 1; i < len(states); i++ {
		if states[i] == slotFilled {
			it.cursor, it.last = i, i
			return true
		}
	}
	it.cursor = len(states)
	return false
}

// Key returns the key of the current entry. It must not be called before
// Next has returned true or after Delete.
func (it *Iterator) Key() int32 {
	return it.m.keys[it.last]
}

// Value returns the value of the current entry. It must not be called before
// Next has returned true or after Delete.
func (it *Iterator) Value() int32 {
	return it.m.values[it.last]
}

// SetValue replaces the value of the current entry, writing through to the
// map, and returns the previous value. It must not be called before Next has
// returned true or after Delete.
func (it *Iterator) SetValue(value int32) int32 {
	prev := it.m.values[it.last]
	it.m.values[it.last] = value
	return prev
}

// Delete removes the current entry from the map exactly as Map.Delete would,
// returning its value. The entry stays deleted for the remainder of the
// iteration and the iterator proceeds to the entries after it. Delete
// returns ErrNoEntry when there is no current entry: before the first
// successful Next, or when called twice without an intervening successful
// Next. The last entry of the map remains deletable after Next has returned
// false.
func (it *Iterator) Delete() (int32, error) {
	if it.last < 0 {
		return 0, ErrNoEntry
	}
	prev := it.m.values[it.last]
	it.m.removeAt(it.last)
	it.m.checkInvariants()
	it.last = -1
	return prev, nil
}
