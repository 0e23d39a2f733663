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

// The methods in this file mirror the method set of sync.Map so that a Map
// can slot into code written against that shape of API. They are thin
// wrappers over Get, Put, Delete, and All; none of them add locking, so the
// usual single-goroutine rules apply.

// Load returns the value stored in the map for a key, or 0 if no entry is
// present. The ok result indicates whether the entry was found.
func (m *Map) Load(key int32) (value int32, ok bool) {
	return m.Get(key)
}

// Store sets the value for a key.
func (m *Map) Store(key, value int32) {
	m.Put(key, value)
}

// LoadOrStore returns the existing value for the key if present. Otherwise
// it stores and returns the given value. The loaded result is true if the
// value was loaded, false if stored.
func (m *Map) LoadOrStore(key, value int32) (actual int32, loaded bool) {
	if v, ok := m.Get(key); ok {
		return v, true
	}
	m.Put(key, value)
	return value, false
}

// LoadAndDelete deletes the entry for a key, returning the previous value if
// any. The loaded result reports whether the key was present.
func (m *Map) LoadAndDelete(key int32) (value int32, loaded bool) {
	return m.Delete(key)
}

// Range calls f sequentially for each key and value present in the map. If f
// returns false, Range stops the iteration. It is equivalent to All.
func (m *Map) Range(f func(key, value int32) bool) {
	m.All(f)
}
