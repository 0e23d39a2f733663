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

// package intmap provides Map, a hash table specialized for int32 keys and
// int32 values, built on open addressing with linear probing. If you're not
// familiar with open addressing see
// https://en.wikipedia.org/wiki/Open_addressing.
//
// # Layout
//
// A Map stores entries in three flat parallel arrays: keys, values, and a
// one-byte state per slot. The arrays always have power-of-two length so that
// a key is reduced to its home slot with a bitwise AND rather than a modulo.
// Keys map to slots by identity, no mixing is applied. Using the key bits
// directly is fast and works well for the ID-sized, reasonably spread keys
// the map is intended for; strongly clustered or adversarial keys degrade
// probing the way they degrade any identity-hashed table.
//
// Each slot is in one of three states: free, removed, or filled. Lookups
// probe linearly from the home slot and stop at the first free slot. Removed
// slots (tombstones) are skipped, so entries placed past a collision remain
// reachable after the colliding entry is deleted.
//
// # Deletion and growth
//
// Delete marks a slot removed rather than free, preserving the probe chains
// that pass through it. An insert reclaims the first tombstone its probe
// passes once the key turns out not to be present. Tombstones are discarded
// wholesale when the table grows: when the entry count exceeds
// loadFactor*capacity (0.75 by default), the capacity doubles and every
// entry is placed afresh into the new arrays. Growth is capped at 2^30
// slots.
//
// # Performance
//
// The flat layout keeps the table pointer-free: the GC never scans it,
// probing touches adjacent memory, and Clear zeroes the arrays in place
// without reallocating. Entries never move between grows, so an Iterator can
// delete and update entries mid-scan without extra bookkeeping. See
// bench_test.go for comparisons against the builtin map.
package intmap

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	defaultCapacity   = 8
	defaultLoadFactor = 0.75

	// maxCapacity bounds growth so that doubling can never overflow the
	// capacity arithmetic. A table at maxCapacity that can no longer absorb
	// an insert is a fatal condition.
	maxCapacity = 1 << 30
)

// slotState describes the lifecycle of a single slot in the backing arrays.
// A slot starts out free, holds an entry while filled, and becomes a removal
// tombstone when its entry is deleted. Tombstones keep probe chains intact
// for entries placed past a collision; they are reclaimed by later inserts
// and dropped wholesale on rehash.
type slotState uint8

const (
	slotFree slotState = iota
	slotRemoved
	slotFilled
)

// Map is an unordered map from int32 keys to int32 values with Put, Get,
// Delete, and All operations, backed by three flat parallel arrays. Probing
// is linear with the key bits used directly as the hash.
//
// A Map is NOT goroutine-safe.
type Map struct {
	// keys and values hold the entry payloads. Both are meaningful only at
	// indexes whose state is slotFilled; unfilled slots are kept zeroed.
	keys   []int32
	values []int32
	// states holds the per-slot lifecycle tag. All three slices share the
	// same power-of-two length.
	states []slotState
	// The number of filled slots (i.e. the number of elements in the map).
	size int
	// The number of filled slots allowed before the next size-increasing
	// insert doubles the capacity. Always less than the capacity so that
	// probe loops terminate on a free slot.
	maxSize int
	// mask is capacity-1, used to reduce a key to a slot index and to wrap
	// probe sequences with a bitwise AND.
	mask int
	// The fraction of the capacity that may fill before the map grows.
	loadFactor float64
}

// New constructs a new Map with the specified initial capacity, rounded up
// to the next power of two. If initialCapacity is <= 0 the map starts out
// with a capacity of 8. The zero value for a Map is not usable.
func New(initialCapacity int, options ...option) *Map {
	m := &Map{loadFactor: defaultLoadFactor}
	for _, op := range options {
		op.apply(m)
	}

	capacity := defaultCapacity
	if initialCapacity > 0 {
		capacity = nextPowerOfTwo(initialCapacity)
		if capacity > maxCapacity {
			capacity = maxCapacity
		}
	}
	m.init(capacity)
	m.checkInvariants()
	return m
}

// Get retrieves the value from the map for the specified key, returning
// ok=false if the key is not present.
func (m *Map) Get(key int32) (value int32, ok bool) {
	i := m.indexOf(key)
	if i < 0 {
		return 0, false
	}
	return m.values[i], true
}

// Put inserts an entry into the map, overwriting an existing value if an
// entry with the same key already exists. It returns the previous value and
// whether the key was already present.
func (m *Map) Put(key, value int32) (prev int32, replaced bool) {
	// A single scan serves both the update and the insert case. The first
	// tombstone seen is remembered as the insertion point, but the scan
	// continues to the next free slot because the key may sit past the
	// tombstone, in which case the existing entry must win as an update.
	start := m.hashIndex(key)
	removed := -1
	for i := start; ; {
		switch m.states[i] {
		case slotFree:
			if removed >= 0 {
				i = removed
			}
			m.insertAt(i, key, value)
			return 0, false
		case slotRemoved:
			if removed < 0 {
				removed = i
			}
		default:
			if m.keys[i] == key {
				prev = m.values[i]
				m.values[i] = value
				m.checkInvariants()
				return prev, true
			}
		}
		if i = m.probeNext(i); i == start {
			if removed < 0 {
				// The growth threshold keeps at least one slot free, so a
				// full wraparound without a tombstone means the bookkeeping
				// is corrupt.
				panic(fmt.Sprintf("intmap: no insertable slot for key %d (size=%d, maxSize=%d, capacity=%d)",
					key, m.size, m.maxSize, len(m.keys)))
			}
			m.insertAt(removed, key, value)
			return 0, false
		}
	}
}

// Delete deletes the entry corresponding to the specified key from the map,
// returning the deleted value and whether the key was present. The slot is
// left as a tombstone so that colliding entries placed after it stay
// reachable; tombstones are reclaimed by later inserts and dropped when the
// map grows.
func (m *Map) Delete(key int32) (prev int32, ok bool) {
	i := m.indexOf(key)
	if i < 0 {
		return 0, false
	}
	prev = m.values[i]
	m.removeAt(i)
	m.checkInvariants()
	return prev, true
}

// ContainsKey returns true if the map contains an entry with the specified
// key.
func (m *Map) ContainsKey(key int32) bool {
	return m.indexOf(key) >= 0
}

// ContainsValue returns true if the map contains an entry with the specified
// value. Unlike the keyed operations it scans the whole table, taking
// O(capacity) time.
func (m *Map) ContainsValue(value int32) bool {
	for i, state := range m.states {
		if state == slotFilled && m.values[i] == value {
			return true
		}
	}
	return false
}

// Len returns the number of entries in the map.
func (m *Map) Len() int {
	return m.size
}

// Empty reports whether the map contains no entries.
func (m *Map) Empty() bool {
	return m.size == 0
}

// Cap returns the number of slots in the backing arrays. It is always a
// power of two and strictly greater than Len.
func (m *Map) Cap() int {
	return len(m.keys)
}

// Clear removes all entries from the map, retaining the current capacity.
// The payload arrays are zeroed so stale keys and values do not linger.
func (m *Map) Clear() {
	for i := range m.states {
		m.keys[i] = 0
		m.values[i] = 0
		m.states[i] = slotFree
	}
	m.size = 0
	m.checkInvariants()
}

// Copy inserts every entry of src into dst, overwriting the value for keys
// already present, in the manner of maps.Copy. src is not modified.
func Copy(dst, src *Map) {
	src.All(func(key, value int32) bool {
		dst.Put(key, value)
		return true
	})
}

// Clone returns an independent copy of the map with the same capacity,
// contents, and load factor.
func (m *Map) Clone() *Map {
	return &Map{
		keys:       append([]int32(nil), m.keys...),
		values:     append([]int32(nil), m.values...),
		states:     append([]slotState(nil), m.states...),
		size:       m.size,
		maxSize:    m.maxSize,
		mask:       m.mask,
		loadFactor: m.loadFactor,
	}
}

// String renders the entries as "{k1=v1, k2=v2}" in slot order. An empty map
// renders as "{}".
func (m *Map) String() string {
	if m.size == 0 {
		return "{}"
	}
	var buf strings.Builder
	buf.Grow(8 * m.size)
	buf.WriteByte('{')
	first := true
	for i, state := range m.states {
		if state != slotFilled {
			continue
		}
		if !first {
			buf.WriteString(", ")
		}
		first = false
		buf.WriteString(strconv.Itoa(int(m.keys[i])))
		buf.WriteByte('=')
		buf.WriteString(strconv.Itoa(int(m.values[i])))
	}
	buf.WriteByte('}')
	return buf.String()
}

// init allocates the backing arrays and derives the mask and growth
// threshold. The size field is deliberately left alone: rehash calls init
// and re-places the existing entries afterwards.
func (m *Map) init(capacity int) {
	m.keys = make([]int32, capacity)
	m.values = make([]int32, capacity)
	m.states = make([]slotState, capacity)
	m.mask = capacity - 1
	m.maxSize = calcMaxSize(capacity, m.loadFactor)
}

// calcMaxSize returns the growth threshold for a table of the given
// capacity. The threshold never reaches the capacity itself: at least one
// slot stays free so that probe loops terminate without a full wraparound.
func calcMaxSize(capacity int, loadFactor float64) int {
	return min(capacity-1, int(float64(capacity)*loadFactor))
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// hashIndex reduces a key to its home slot. The int conversion sign-extends
// and the mask truncates, so negative keys index correctly.
func (m *Map) hashIndex(key int32) int {
	return int(key) & m.mask
}

// probeNext advances a probe sequence one slot, wrapping at the end of the
// table.
func (m *Map) probeNext(index int) int {
	return (index + 1) & m.mask
}

// indexOf returns the slot holding key, or -1 if key is not present. The
// scan starts at the key's home slot and ends at the first free slot.
// Tombstones are skipped because the key may have been placed past them
// while they were still filled.
func (m *Map) indexOf(key int32) int {
	start := m.hashIndex(key)
	for i := start; ; {
		switch m.states[i] {
		case slotFree:
			return -1
		case slotFilled:
			if m.keys[i] == key {
				return i
			}
		}
		if i = m.probeNext(i); i == start {
			// Every slot is filled or removed and none holds the key.
			return -1
		}
	}
}

// insertAt fills slot i with a new entry and grows the table if the insert
// pushed the size past the growth threshold.
func (m *Map) insertAt(i int, key, value int32) {
	m.set(i, key, value, slotFilled)
	m.size++
	if m.size > m.maxSize {
		m.grow()
	}
	m.checkInvariants()
}

// removeAt converts slot i into a tombstone, zeroing its payload.
func (m *Map) removeAt(i int) {
	m.set(i, 0, 0, slotRemoved)
	m.size--
}

func (m *Map) set(i int, key, value int32, state slotState) {
	m.keys[i] = key
	m.values[i] = value
	m.states[i] = state
}

// grow doubles the capacity. Growth is the only mechanism that discards
// tombstones, which is what bounds the amortized probe length under
// insert/delete churn.
func (m *Map) grow() {
	if len(m.keys) == maxCapacity {
		panic(fmt.Sprintf("intmap: max capacity %d reached (size=%d)", maxCapacity, m.size))
	}
	m.rehash(len(m.keys) << 1)
}

// rehash reallocates the backing arrays at newCapacity and re-places every
// filled entry. The new table contains no tombstones, so placement only has
// to find the first free slot in each key's probe sequence.
func (m *Map) rehash(newCapacity int) {
	oldKeys, oldValues, oldStates := m.keys, m.values, m.states
	m.init(newCapacity)
	for i, state := range oldStates {
		if state != slotFilled {
			continue
		}
		j := m.hashIndex(oldKeys[i])
		for m.states[j] == slotFilled {
			j = m.probeNext(j)
		}
		m.set(j, oldKeys[i], oldValues[i], slotFilled)
	}
	m.checkInvariants()
}

func (m *Map) checkInvariants() {
	if invariants {
		capacity := len(m.keys)
		if capacity == 0 || capacity&(capacity-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two", capacity))
		}
		if len(m.values) != capacity || len(m.states) != capacity {
			panic(fmt.Sprintf("invariant failed: values=%d states=%d, but keys=%d",
				len(m.values), len(m.states), capacity))
		}
		if m.mask != capacity-1 {
			panic(fmt.Sprintf("invariant failed: mask=%d, but capacity=%d", m.mask, capacity))
		}
		if expected := calcMaxSize(capacity, m.loadFactor); m.maxSize != expected {
			panic(fmt.Sprintf("invariant failed: maxSize=%d, but expected %d\n%s",
				m.maxSize, expected, m.debugString()))
		}

		// For every filled slot, verify the key is reachable through Get and
		// not shadowed by a duplicate. Count the filled slots.
		var filled int
		for i, state := range m.states {
			switch state {
			case slotFilled:
				filled++
				v, ok := m.Get(m.keys[i])
				if !ok {
					panic(fmt.Sprintf("invariant failed: slot(%d): key %d not found [home=%d]\n%s",
						i, m.keys[i], m.hashIndex(m.keys[i]), m.debugString()))
				}
				if v != m.values[i] {
					panic(fmt.Sprintf("invariant failed: slot(%d): key %d found with value %d, expected %d\n%s",
						i, m.keys[i], v, m.values[i], m.debugString()))
				}
			case slotFree, slotRemoved:
				if m.keys[i] != 0 || m.values[i] != 0 {
					panic(fmt.Sprintf("invariant failed: slot(%d): stale payload %d=%d in unfilled slot\n%s",
						i, m.keys[i], m.values[i], m.debugString()))
				}
			default:
				panic(fmt.Sprintf("invariant failed: slot(%d): unknown state %d", i, state))
			}
		}
		if filled != m.size {
			panic(fmt.Sprintf("invariant failed: found %d filled slots, but size is %d\n%s",
				filled, m.size, m.debugString()))
		}
		if m.size > m.maxSize {
			panic(fmt.Sprintf("invariant failed: size %d exceeds growth threshold %d\n%s",
				m.size, m.maxSize, m.debugString()))
		}
	}
}

func (m *Map) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  size=%d  maxSize=%d\n", len(m.keys), m.size, m.maxSize)
	for i, state := range m.states {
		switch state {
		case slotFree:
			fmt.Fprintf(&buf, "  %4d: free\n", i)
		case slotRemoved:
			fmt.Fprintf(&buf, "  %4d: removed\n", i)
		default:
			fmt.Fprintf(&buf, "  %4d: %d=%d [home=%d]\n", i, m.keys[i], m.values[i], m.hashIndex(m.keys[i]))
		}
	}
	return buf.String()
}
