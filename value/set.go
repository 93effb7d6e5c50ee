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

// Set is the key-uniqueness set capability.
// Members are compared by Go equality, except that NaN matches NaN of the
// same type; composite members compare by identity.
type Set interface {
	Tagger
	Freezable
	// Len returns the number of members.
	Len() int
	// Has reports whether m is a member.
	Has(m Value) bool
	// Members returns the members in insertion order.
	Members() []Value
	// All iterates over members in insertion order.
	All() iter.Seq[Value]
	// Add inserts m. Adding an existing member is a no-op.
	Add(m Value) error
	// Delete removes m and reports whether it was present.
	Delete(m Value) (bool, error)
	// Clear removes every member.
	Clear() error
}

// HashSet is the insertion-ordered Set implementation.
type HashSet struct {
	members []Value
	index   map[Value]int
}

// Ensure HashSet implements Set.
var _ Set = (*HashSet)(nil)

// NewSet returns an empty set.
func NewSet() *HashSet {
	return &HashSet{index: make(map[Value]int)}
}

// SetOf returns a set holding members. It panics on an unhashable member.
func SetOf(members ...Value) *HashSet {
	s := NewSet()
	for _, m := range members {
		if err := s.Add(m); err != nil {
			panic(err)
		}
	}
	return s
}

// Tag implements Tagger.
func (*HashSet) Tag() string { return TagSet }

// Frozen always reports false; use FreezeSet for an immutable view.
func (*HashSet) Frozen() bool { return false }

func (s *HashSet) Len() int { return len(s.members) }

func (s *HashSet) Has(m Value) bool {
	if !hashable(m) {
		return false
	}
	_, ok := s.index[indexKey(m)]
	return ok
}

func (s *HashSet) Members() []Value {
	out := make([]Value, len(s.members))
	copy(out, s.members)
	return out
}

func (s *HashSet) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, m := range s.members {
			if !yield(m) {
				return
			}
		}
	}
}

func (s *HashSet) Add(m Value) error {
	if !hashable(m) {
		return fmt.Errorf("%w: set member of type %T", ErrUnhashable, m)
	}
	if _, ok := s.index[indexKey(m)]; ok {
		return nil
	}
	s.index[indexKey(m)] = len(s.members)
	s.members = append(s.members, m)
	return nil
}

func (s *HashSet) Delete(m Value) (bool, error) {
	if !hashable(m) {
		return false, nil
	}
	i, ok := s.index[indexKey(m)]
	if !ok {
		return false, nil
	}
	delete(s.index, indexKey(m))
	s.members = append(s.members[:i], s.members[i+1:]...)
	for j := i; j < len(s.members); j++ {
		s.index[indexKey(s.members[j])] = j
	}
	return true, nil
}

func (s *HashSet) Clear() error {
	s.members = nil
	s.index = make(map[Value]int)
	return nil
}

// String renders the members for debugging.
func (s *HashSet) String() string { return fmt.Sprintf("Set%v", s.members) }
