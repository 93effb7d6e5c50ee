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
	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/shape"
	"dirpx.dev/immuter/value"
)

// NewLockHandlers returns the lock handlers in chain order
// (date, set, mapping, sequence, record).
//
// Lock handlers expect the fresh duplicate produced by a clone chain and
// lock every child through next before locking the container itself.
func NewLockHandlers() []apis.Handler {
	return []apis.Handler{
		lockDate{},
		lockSet{},
		lockMapping{},
		lockSequence{},
		lockRecord{},
	}
}

// lockDate locks a date as an opaque immutable scalar.
type lockDate struct{}

func (lockDate) Category() shape.Category { return shape.Date }

func (lockDate) Handle(v any, _ apis.Recurse) (any, error) {
	if d, ok := v.(*value.Date); ok {
		d.Freeze()
		return d, nil
	}
	i, ok := v.(value.Instant)
	if !ok {
		return nil, unsupported(shape.Date, v)
	}
	d := value.NewDate(i.Time())
	d.Freeze()
	return d, nil
}

// lockSet locks every member and wraps the set in an immutable view.
type lockSet struct{}

func (lockSet) Category() shape.Category { return shape.Set }

func (lockSet) Handle(v any, next apis.Recurse) (any, error) {
	s, ok := v.(value.Set)
	if !ok {
		return nil, unsupported(shape.Set, v)
	}
	out := value.NewSet()
	for m := range s.All() {
		lm, err := next(m)
		if err != nil {
			return nil, err
		}
		if err := out.Add(lm); err != nil {
			return nil, err
		}
	}
	return value.FreezeSet(out), nil
}

// lockMapping locks every value and wraps the mapping in an immutable view.
type lockMapping struct{}

func (lockMapping) Category() shape.Category { return shape.Mapping }

func (lockMapping) Handle(v any, next apis.Recurse) (any, error) {
	m, ok := v.(value.Mapping)
	if !ok {
		return nil, unsupported(shape.Mapping, v)
	}
	out := value.NewMap()
	for k, e := range m.All() {
		le, err := next(e)
		if err != nil {
			return nil, err
		}
		if err := out.Set(k, le); err != nil {
			return nil, err
		}
	}
	return value.FreezeMap(out), nil
}

// lockSequence locks every element, then the list itself.
type lockSequence struct{}

func (lockSequence) Category() shape.Category { return shape.Sequence }

func (lockSequence) Handle(v any, next apis.Recurse) (any, error) {
	s, ok := v.(value.Sequence)
	if !ok {
		return nil, unsupported(shape.Sequence, v)
	}
	l, ok := s.(*value.List)
	if !ok || l.Frozen() {
		l = value.NewList(s.Len())
		for i := 0; i < s.Len(); i++ {
			_ = l.Append(s.At(i))
		}
	}
	for i := 0; i < l.Len(); i++ {
		e, err := next(l.At(i))
		if err != nil {
			return nil, err
		}
		if err := l.Set(i, e); err != nil {
			return nil, err
		}
	}
	l.Freeze()
	return l, nil
}

// lockRecord rebuilds the record with locked stored values under the same
// prototype and flags, then locks it. Accessor slots are carried over.
type lockRecord struct{}

func (lockRecord) Category() shape.Category { return shape.Record }

func (lockRecord) Handle(v any, next apis.Recurse) (any, error) {
	r, ok := v.(*value.Record)
	if !ok {
		return nil, unsupported(shape.Record, v)
	}
	out, err := copyRecord(r, next)
	if err != nil {
		return nil, err
	}
	out.Freeze()
	return out, nil
}
