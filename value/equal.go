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

import "reflect"

// Equal reports whether a and b are structurally equal.
//
// Records compare prototypes by identity and own slots by key, flags and
// value; accessor slots compare their functions by identity. Lists compare
// element-wise, mappings entry-wise by key, sets by members (composite
// members are matched structurally). Lock state is ignored. Scalars use Go
// equality with NaN equal to NaN, falling back to reflect.DeepEqual for
// non-comparable values.
func Equal(a, b Value) bool {
	ta, aok := a.(Tagger)
	tb, bok := b.(Tagger)
	if !aok || !bok {
		if aok != bok {
			return false
		}
		return scalarEqual(a, b)
	}
	if ta.Tag() != tb.Tag() {
		return false
	}
	switch x := a.(type) {
	case Instant:
		y, ok := b.(Instant)
		return ok && x.Time().Equal(y.Time())
	case Set:
		y, ok := b.(Set)
		return ok && setEqual(x, y)
	case Mapping:
		y, ok := b.(Mapping)
		return ok && mapEqual(x, y)
	case Sequence:
		y, ok := b.(Sequence)
		return ok && seqEqual(x, y)
	case *Record:
		y, ok := b.(*Record)
		return ok && recordEqual(x, y)
	}
	return a == b
}

func scalarEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		return indexKey(a) == indexKey(b)
	}
	return reflect.DeepEqual(a, b)
}

func seqEqual(a, b Sequence) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equal(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

func mapEqual(a, b Mapping) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		w, ok := b.Get(k)
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}

func setEqual(a, b Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	rest := b.Members()
	used := make([]bool, len(rest))
	for m := range a.All() {
		i := matchMember(m, rest, used)
		if i < 0 {
			return false
		}
		used[i] = true
	}
	return true
}

// matchMember returns the index of the first unused member of rest that is
// m itself, or failing that structurally equal to m; -1 if there is none.
func matchMember(m Value, rest []Value, used []bool) int {
	key := indexKey(m)
	for i, n := range rest {
		if !used[i] && indexKey(n) == key {
			return i
		}
	}
	for i, n := range rest {
		if !used[i] && Equal(m, n) {
			return i
		}
	}
	return -1
}

func recordEqual(a, b *Record) bool {
	if a.proto != b.proto || len(a.keys) != len(b.keys) {
		return false
	}
	for _, k := range a.keys {
		da := a.slots[k]
		db, ok := b.slots[k]
		if !ok {
			return false
		}
		if da.Enumerable != db.Enumerable || da.Configurable != db.Configurable {
			return false
		}
		if da.IsAccessor() != db.IsAccessor() {
			return false
		}
		if da.IsAccessor() {
			if !scalarEqual(da.Get, db.Get) || !scalarEqual(da.Set, db.Set) {
				return false
			}
			continue
		}
		if da.Writable != db.Writable || !Equal(da.Value, db.Value) {
			return false
		}
	}
	return true
}
