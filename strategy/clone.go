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

package strategy

import (
	"fmt"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/shape"
	"dirpx.dev/immuter/value"
)

// NewCloneHandlers returns the clone handlers in chain order
// (date, set, mapping, sequence, record).
func NewCloneHandlers() []apis.Handler {
	return []apis.Handler{
		cloneDate{},
		cloneSet{},
		cloneMapping{},
		cloneSequence{},
		cloneRecord{},
	}
}

// cloneDate constructs a new date from the same instant.
type cloneDate struct{}

func (cloneDate) Category() shape.Category { return shape.Date }

func (cloneDate) Handle(v any, _ apis.Recurse) (any, error) {
	d, ok := v.(value.Instant)
	if !ok {
		return nil, unsupported(shape.Date, v)
	}
	return value.NewDate(d.Time()), nil
}

// cloneSet re-inserts every cloned member into a new set.
// Cloned composite members get a new identity, so the result never holds a
// member of the source.
type cloneSet struct{}

func (cloneSet) Category() shape.Category { return shape.Set }

func (cloneSet) Handle(v any, next apis.Recurse) (any, error) {
	s, ok := v.(value.Set)
	if !ok {
		return nil, unsupported(shape.Set, v)
	}
	out := value.NewSet()
	for m := range s.All() {
		cm, err := next(m)
		if err != nil {
			return nil, err
		}
		if err := out.Add(cm); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// cloneMapping copies keys by reference and clones every value.
type cloneMapping struct{}

func (cloneMapping) Category() shape.Category { return shape.Mapping }

func (cloneMapping) Handle(v any, next apis.Recurse) (any, error) {
	m, ok := v.(value.Mapping)
	if !ok {
		return nil, unsupported(shape.Mapping, v)
	}
	out := value.NewMap()
	for k, e := range m.All() {
		ce, err := next(e)
		if err != nil {
			return nil, err
		}
		if err := out.Set(k, ce); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// cloneSequence clones every element into a new list of the same length.
type cloneSequence struct{}

func (cloneSequence) Category() shape.Category { return shape.Sequence }

func (cloneSequence) Handle(v any, next apis.Recurse) (any, error) {
	s, ok := v.(value.Sequence)
	if !ok {
		return nil, unsupported(shape.Sequence, v)
	}
	items := make([]value.Value, s.Len())
	for i := range items {
		e, err := next(s.At(i))
		if err != nil {
			return nil, err
		}
		items[i] = e
	}
	return value.ListOf(items...), nil
}

// cloneRecord duplicates a record at descriptor level: same prototype, same
// flags, data slots cloned through next, accessor slots copied by reference.
// Getters are never invoked.
type cloneRecord struct{}

func (cloneRecord) Category() shape.Category { return shape.Record }

func (cloneRecord) Handle(v any, next apis.Recurse) (any, error) {
	r, ok := v.(*value.Record)
	if !ok {
		return nil, unsupported(shape.Record, v)
	}
	return copyRecord(r, next)
}

// copyRecord builds a new unlocked record from r's raw slots, passing every
// stored value through fn.
func copyRecord(r *value.Record, fn apis.Recurse) (*value.Record, error) {
	out := value.NewRecord(r.Proto())
	for _, s := range r.Slots() {
		d := s.Descriptor
		if !d.IsAccessor() {
			cv, err := fn(d.Value)
			if err != nil {
				return nil, err
			}
			d.Value = cv
		}
		if err := out.DefineProperty(s.Key, d); err != nil {
			return nil, fmt.Errorf("slot %q: %w", s.Key, err)
		}
	}
	return out, nil
}

func unsupported(c shape.Category, v any) error {
	return fmt.Errorf("%w: %T is tagged as %s", apis.ErrUnsupported, v, c)
}
