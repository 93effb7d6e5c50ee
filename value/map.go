/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package value

import (
	"fmt"
	"iter"
)

// Mapping is the key-value mapping capability.
// Keys are compared by Go equality, except that NaN matches NaN of the same
// type; composite keys compare by identity.
type Mapping interface {
	Tagger
	Freezable
	// Len returns the number of entries.
	Len() int
	// Get returns the value stored under k.
	Get(k Value) (Value, bool)
	// Has reports whether k is present.
	Has(k Value) bool
	// Keys returns the keys in insertion order.
	Keys() []Value
	// All iterates over entries in insertion order.
	All() iter.Seq2[Value, Value]
	// Set stores v under k.
	Set(k, v Value) error
	// Delete removes k and reports whether it was present.
	Delete(k Value) (bool, error)
	// Clear removes every entry.
	Clear() error
}

// HashMap is the insertion-ordered Mapping implementation.
type HashMap struct {
	keys  []Value
	vals  []Value
	index map[Value]int
}

// Ensure HashMap implements Mapping.
var _ Mapping = (*HashMap)(nil)

// NewMap returns an empty mapping.
func NewMap() *HashMap {
	return &HashMap{index: make(map[Value]int)}
}

// MapOf returns a mapping built from alternating keys and values.
// It panics on an odd argument count or an unhashable key.
func MapOf(kv ...Value) *HashMap {
	if len(kv)%2 != 0 {
		panic("immuter(value): MapOf requires key/value pairs")
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		if err := m.Set(kv[i], kv[i+1]); err != nil {
			panic(err)
		}
	}
	return m
}

// Tag implements Tagger.
func (*HashMap) Tag() string { return TagMap }

// Frozen always reports false; use FreezeMap for an immutable view.
func (*HashMap) Frozen() bool { return false }

func (m *HashMap) Len() int { return len(m.keys) }

func (m *HashMap) Get(k Value) (Value, bool) {
	if !hashable(k) {
		return nil, false
	}
	i, ok := m.index[indexKey(k)]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

func (m *HashMap) Has(k Value) bool {
	_, ok := m.Get(k)
	return ok
}

func (m *HashMap) Keys() []Value {
	out := make([]Value, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *HashMap) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

func (m *HashMap) Set(k, v Value) error {
	if !hashable(k) {
		return fmt.Errorf("%w: map key of type %T", ErrUnhashable, k)
	}
	if i, ok := m.index[indexKey(k)]; ok {
		m.vals[i] = v
		return nil
	}
	m.index[indexKey(k)] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	return nil
}

func (m *HashMap) Delete(k Value) (bool, error) {
	if !hashable(k) {
		return false, nil
	}
	i, ok := m.index[indexKey(k)]
	if !ok {
		return false, nil
	}
	delete(m.index, indexKey(k))
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[indexKey(m.keys[j])] = j
	}
	return true, nil
}

func (m *HashMap) Clear() error {
	m.keys, m.vals = nil, nil
	m.index = make(map[Value]int)
	return nil
}

// String renders the entries for debugging.
func (m *HashMap) String() string {
	s := "Map{"
	for i, k := range m.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v => %v", k, m.vals[i])
	}
	return s + "}"
}
