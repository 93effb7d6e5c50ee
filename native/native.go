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

// Package native converts plain Go data to and from the immuter value model.
package native

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"dirpx.dev/immuter/apis"
	uref "dirpx.dev/immuter/utils/reflect"
	"dirpx.dev/immuter/value"
)

var (
	// ErrTooDeep is returned when pointer/interface nesting exceeds MaxUnwrap.
	ErrTooDeep = uref.ErrTooDeep
	// ErrDuplicateName is returned when two struct fields map to the same
	// record slot name.
	ErrDuplicateName = errors.New("immuter(native): duplicate record slot name")
)

// TagName is the struct tag consulted for record slot names.
// `immuter:"name"` renames a field, `immuter:"-"` skips it.
const TagName = "immuter"

// From converts v into the value model.
//
// Conversion policy:
//   - model values (value.Tagger) are returned as is;
//   - time.Time -> *value.Date;
//   - slice/array -> *value.List;
//   - map -> *value.HashMap, entries inserted in sorted key order;
//   - struct -> *value.Record with one data slot per exported field;
//   - ptr/interface are unwrapped up to cfg.MaxUnwrap levels; nil -> nil;
//   - anything else is returned as a scalar.
//
// If cfg.MaxUnwrap <= 0, DefaultMaxUnwrap is used. With cfg.DetectCycles a
// pointer, map or slice that contains itself fails with apis.ErrCycle.
func From(v any, cfg apis.Config) (value.Value, error) {
	if v == nil {
		return nil, nil
	}
	c := &converter{cfg: cfg}
	if cfg.DetectCycles {
		c.path = make(map[ref]struct{})
	}
	return c.from(reflect.ValueOf(v))
}

// ref identifies a reference-kind Go value by type, address and length.
type ref struct {
	t reflect.Type
	p uintptr
	n int
}

// converter carries per-call state. path holds the references on the
// current recursion path when cycle detection is enabled.
type converter struct {
	cfg  apis.Config
	path map[ref]struct{}
}

// refOf returns the identity of rv if it is a non-nil pointer, map or
// non-empty slice, looking through interfaces.
func refOf(rv reflect.Value) (ref, bool) {
	for rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ref{}, false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return ref{}, false
		}
		return ref{t: rv.Type(), p: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return ref{}, false
		}
		return ref{t: rv.Type(), p: rv.Pointer(), n: rv.Len()}, true
	}
	return ref{}, false
}

// known stops unwrapping at values the model handles directly.
func known(rv reflect.Value) bool {
	if !rv.CanInterface() {
		return false
	}
	switch rv.Interface().(type) {
	case value.Tagger, time.Time:
		return true
	}
	return false
}

func (c *converter) from(rv reflect.Value) (value.Value, error) {
	if c.path != nil {
		if r, ok := refOf(rv); ok {
			if _, seen := c.path[r]; seen {
				return nil, fmt.Errorf("%w: %v contains itself", apis.ErrCycle, r.t)
			}
			c.path[r] = struct{}{}
			defer delete(c.path, r)
		}
	}

	rv, err := uref.Unwrap(rv, c.cfg, known)
	if err != nil {
		return nil, err
	}
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case value.Tagger:
			return x, nil
		case time.Time:
			return value.NewDate(x), nil
		}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		l := value.NewList(rv.Len())
		for i := range rv.Len() {
			e, err := c.from(rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			_ = l.Append(e)
		}
		return l, nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)
		m := value.NewMap()
		for _, k := range keys {
			e, err := c.from(rv.MapIndex(k))
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", k, err)
			}
			if err := m.Set(k.Interface(), e); err != nil {
				return nil, err
			}
		}
		return m, nil

	case reflect.Struct:
		t := rv.Type()
		r := value.NewRecord(nil)
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, skip := fieldName(f)
			if skip {
				continue
			}
			e, err := c.from(rv.Field(i))
			if err != nil {
				return nil, fmt.Errorf(".%s: %w", f.Name, err)
			}
			if r.HasOwn(name) {
				return nil, fmt.Errorf("%w: %q (field %s)", ErrDuplicateName, name, f.Name)
			}
			_ = r.Set(name, e)
		}
		return r, nil
	}

	if rv.CanInterface() {
		return rv.Interface(), nil
	}
	return nil, nil
}

func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get(TagName)
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return f.Name, false
}

// compareKeys orders map keys deterministically: strings, integers and
// floats by value, everything else by its formatted representation.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// To converts a model value back into plain Go data.
//
//   - dates -> time.Time;
//   - lists -> []any;
//   - sets -> []any in insertion order;
//   - mappings -> map[string]any when every key is a string, else map[any]any;
//   - records -> map[string]any of enumerable own slots (getters are invoked);
//   - scalars are returned as is.
func To(v value.Value) any {
	switch x := v.(type) {
	case value.Instant:
		return x.Time()
	case value.Set:
		out := make([]any, 0, x.Len())
		for m := range x.All() {
			out = append(out, To(m))
		}
		return out
	case value.Mapping:
		return mappingTo(x)
	case value.Sequence:
		out := make([]any, x.Len())
		for i := range out {
			out[i] = To(x.At(i))
		}
		return out
	case *value.Record:
		out := make(map[string]any, x.Len())
		for _, k := range x.OwnKeys() {
			if d, _ := x.OwnDescriptor(k); !d.Enumerable {
				continue
			}
			out[k] = To(x.Get(k))
		}
		return out
	}
	return v
}

func mappingTo(m value.Mapping) any {
	strKeys := true
	for k := range m.All() {
		if _, ok := k.(string); !ok {
			strKeys = false
			break
		}
	}
	if strKeys {
		out := make(map[string]any, m.Len())
		for k, e := range m.All() {
			out[k.(string)] = To(e)
		}
		return out
	}
	out := make(map[any]any, m.Len())
	for k, e := range m.All() {
		out[k] = To(e)
	}
	return out
}
