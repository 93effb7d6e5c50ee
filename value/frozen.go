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

import "iter"

// FreezeMap returns an immutable view of m. Reads are forwarded to m and
// every mutating operation fails with ErrImmutableMap. The caller must not
// keep mutating m through another reference.
func FreezeMap(m Mapping) Mapping {
	if m.Frozen() {
		return m
	}
	return &frozenMap{m: m}
}

// FreezeSet returns an immutable view of s. Reads are forwarded to s and
// every mutating operation fails with ErrImmutableSet. The caller must not
// keep mutating s through another reference.
func FreezeSet(s Set) Set {
	if s.Frozen() {
		return s
	}
	return &frozenSet{s: s}
}

// frozenMap is the immutable Mapping view.
type frozenMap struct {
	m Mapping
}

var _ Mapping = (*frozenMap)(nil)

func (*frozenMap) Tag() string                    { return TagMap }
func (*frozenMap) Frozen() bool                   { return true }
func (f *frozenMap) Len() int                     { return f.m.Len() }
func (f *frozenMap) Get(k Value) (Value, bool)    { return f.m.Get(k) }
func (f *frozenMap) Has(k Value) bool             { return f.m.Has(k) }
func (f *frozenMap) Keys() []Value                { return f.m.Keys() }
func (f *frozenMap) All() iter.Seq2[Value, Value] { return f.m.All() }
func (*frozenMap) Set(_, _ Value) error           { return ErrImmutableMap }
func (*frozenMap) Delete(_ Value) (bool, error)   { return false, ErrImmutableMap }
func (*frozenMap) Clear() error                   { return ErrImmutableMap }
func (f *frozenMap) String() string               { return stringOf(f.m) }

// frozenSet is the immutable Set view.
type frozenSet struct {
	s Set
}

var _ Set = (*frozenSet)(nil)

func (*frozenSet) Tag() string                  { return TagSet }
func (*frozenSet) Frozen() bool                 { return true }
func (f *frozenSet) Len() int                   { return f.s.Len() }
func (f *frozenSet) Has(m Value) bool           { return f.s.Has(m) }
func (f *frozenSet) Members() []Value           { return f.s.Members() }
func (f *frozenSet) All() iter.Seq[Value]       { return f.s.All() }
func (*frozenSet) Add(_ Value) error            { return ErrImmutableSet }
func (*frozenSet) Delete(_ Value) (bool, error) { return false, ErrImmutableSet }
func (*frozenSet) Clear() error                 { return ErrImmutableSet }
func (f *frozenSet) String() string             { return stringOf(f.s) }

func stringOf(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}
