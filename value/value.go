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

// Package value implements the dynamic value model the immuter engine
// duplicates and locks: records with prototypes and slot descriptors,
// ordered lists, insertion-ordered hash maps and sets, and mutable dates.
//
// Every composite model type carries a type tag (see Tagger). Anything
// without a tag is a scalar and is shared by reference.
package value

import (
	"errors"
	"math"
	"reflect"
)

// Value is the universal unit the engine operates on.
type Value = any

// Tagger is implemented by every composite model value.
// Tag returns the runtime type tag used for classification.
type Tagger interface {
	Tag() string
}

// Type tags reported by the model types.
const (
	TagDate   = "Date"
	TagSet    = "Set"
	TagMap    = "Map"
	TagArray  = "Array"
	TagObject = "Object"
)

var (
	// ErrImmutable is returned when a frozen record, list or date is modified.
	ErrImmutable = errors.New("immuter(value): cannot modify frozen value")
	// ErrImmutableMap is returned by every mutating operation of a frozen mapping.
	ErrImmutableMap = errors.New("immuter(value): cannot assign to immutable map")
	// ErrImmutableSet is returned by every mutating operation of a frozen set.
	ErrImmutableSet = errors.New("immuter(value): cannot assign to immutable set")
	// ErrNotWritable is returned when assigning to a read-only slot.
	ErrNotWritable = errors.New("immuter(value): slot is not writable")
	// ErrNotConfigurable is returned when redefining or deleting a non-configurable slot.
	ErrNotConfigurable = errors.New("immuter(value): slot is not configurable")
	// ErrInvalidDescriptor is returned for descriptors mixing a stored value and accessors.
	ErrInvalidDescriptor = errors.New("immuter(value): descriptor mixes value and accessor")
	// ErrIndexOutOfRange is returned for list positions outside [0, Len()].
	ErrIndexOutOfRange = errors.New("immuter(value): index out of range")
	// ErrUnhashable is returned when a map key or set member is not comparable.
	ErrUnhashable = errors.New("immuter(value): value is not hashable")
)

// Freezable is implemented by model values that can report their lock state.
type Freezable interface {
	Frozen() bool
}

// IsFrozen reports whether v has no remaining mutation surface.
// Untagged scalars are always considered frozen.
func IsFrozen(v Value) bool {
	if f, ok := v.(Freezable); ok {
		return f.Frozen()
	}
	return true
}

// hashable reports whether v can be used as a map key or set member.
func hashable(v Value) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// nanKey stands in for every NaN of one float type in hash indexes.
type nanKey struct{ t reflect.Type }

// indexKey returns the key v is stored under in hash indexes. NaN floats
// collapse to one key per type so that a NaN key or member can be found
// again; every other value is its own key.
func indexKey(v Value) Value {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) {
			return nanKey{t: reflect.TypeOf(v)}
		}
		return v
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); (k == reflect.Float32 || k == reflect.Float64) && math.IsNaN(rv.Float()) {
		return nanKey{t: rv.Type()}
	}
	return v
}
