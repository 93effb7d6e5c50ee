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

import "fmt"

// Descriptor describes a single named slot of a Record.
//
// A slot is either a stored value (Value + Writable) or a computed accessor
// pair (Get and/or Set). Enumerable and Configurable apply to both kinds.
type Descriptor struct {
	// Value is the stored value of a data slot.
	Value Value
	// Get computes the slot value of an accessor slot.
	Get func() Value
	// Set receives assignments to an accessor slot. Nil makes the slot read-only.
	Set func(Value) error
	// Writable controls assignment to a data slot.
	Writable bool
	// Enumerable controls whether the slot is listed by exporters.
	Enumerable bool
	// Configurable controls redefinition and deletion.
	Configurable bool
}

// IsAccessor reports whether d is a computed accessor slot.
func (d Descriptor) IsAccessor() bool {
	return d.Get != nil || d.Set != nil
}

// Data returns a writable, enumerable, configurable data descriptor.
func Data(v Value) Descriptor {
	return Descriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// Accessor returns an enumerable, configurable accessor descriptor.
func Accessor(get func() Value, set func(Value) error) Descriptor {
	return Descriptor{Get: get, Set: set, Enumerable: true, Configurable: true}
}

// Slot pairs a key with its descriptor.
type Slot struct {
	Key        string
	Descriptor Descriptor
}

// Record is a plain record: ordered own slots plus an optional prototype.
// The zero value is not usable; use NewRecord or RecordOf.
type Record struct {
	proto  *Record
	keys   []string
	slots  map[string]Descriptor
	frozen bool
}

// NewRecord creates an empty record whose prototype is proto (may be nil).
func NewRecord(proto *Record) *Record {
	return &Record{proto: proto, slots: make(map[string]Descriptor)}
}

// RecordOf creates a prototype-less record from alternating keys and values.
// It panics if a key is not a string or the argument count is odd.
func RecordOf(kv ...Value) *Record {
	if len(kv)%2 != 0 {
		panic("immuter(value): RecordOf requires key/value pairs")
	}
	r := NewRecord(nil)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("immuter(value): RecordOf key %v is %T, want string", kv[i], kv[i]))
		}
		r.put(k, Data(kv[i+1]))
	}
	return r
}

// Tag implements Tagger.
func (*Record) Tag() string { return TagObject }

// Proto returns the prototype, or nil.
func (r *Record) Proto() *Record { return r.proto }

// Len returns the number of own slots.
func (r *Record) Len() int { return len(r.keys) }

// OwnKeys returns the own slot keys in definition order.
func (r *Record) OwnKeys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Slots returns the own slots in definition order with their descriptors
// as defined, ignoring the effect of Freeze.
func (r *Record) Slots() []Slot {
	out := make([]Slot, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, Slot{Key: k, Descriptor: r.slots[k]})
	}
	return out
}

// OwnDescriptor returns the effective descriptor of an own slot.
// Slots of a frozen record report themselves as non-writable and non-configurable.
func (r *Record) OwnDescriptor(key string) (Descriptor, bool) {
	d, ok := r.slots[key]
	if !ok {
		return Descriptor{}, false
	}
	if r.frozen {
		d.Configurable = false
		if !d.IsAccessor() {
			d.Writable = false
		}
	}
	return d, true
}

// HasOwn reports whether key is an own slot.
func (r *Record) HasOwn(key string) bool {
	_, ok := r.slots[key]
	return ok
}

// Has reports whether key is an own or inherited slot.
func (r *Record) Has(key string) bool {
	for o := r; o != nil; o = o.proto {
		if o.HasOwn(key) {
			return true
		}
	}
	return false
}

// DefineProperty creates or redefines an own slot.
func (r *Record) DefineProperty(key string, d Descriptor) error {
	if d.IsAccessor() && (d.Value != nil || d.Writable) {
		return ErrInvalidDescriptor
	}
	if r.frozen {
		return ErrImmutable
	}
	if old, ok := r.slots[key]; ok && !old.Configurable {
		return ErrNotConfigurable
	}
	r.put(key, d)
	return nil
}

// Lookup resolves key through the prototype chain. Accessor slots are
// evaluated; an accessor without a getter yields nil.
func (r *Record) Lookup(key string) (Value, bool) {
	for o := r; o != nil; o = o.proto {
		d, ok := o.slots[key]
		if !ok {
			continue
		}
		if d.IsAccessor() {
			if d.Get == nil {
				return nil, true
			}
			return d.Get(), true
		}
		return d.Value, true
	}
	return nil, false
}

// Get is Lookup without the presence flag.
func (r *Record) Get(key string) Value {
	v, _ := r.Lookup(key)
	return v
}

// Set assigns v to key following ordinary assignment rules: own data slots
// must be writable, accessor slots (own or inherited) receive the value
// through their setter, an inherited read-only slot blocks the assignment,
// and otherwise a new own data slot is created.
func (r *Record) Set(key string, v Value) error {
	for o := r; o != nil; o = o.proto {
		d, ok := o.slots[key]
		if !ok {
			continue
		}
		if d.IsAccessor() {
			if d.Set == nil {
				return ErrNotWritable
			}
			return d.Set(v)
		}
		if o != r {
			if !d.Writable {
				return ErrNotWritable
			}
			break
		}
		if r.frozen {
			return ErrImmutable
		}
		if !d.Writable {
			return ErrNotWritable
		}
		d.Value = v
		r.slots[key] = d
		return nil
	}
	if r.frozen {
		return ErrImmutable
	}
	r.put(key, Data(v))
	return nil
}

// Delete removes an own slot. Deleting a missing key is a no-op.
func (r *Record) Delete(key string) error {
	d, ok := r.slots[key]
	if !ok {
		return nil
	}
	if r.frozen {
		return ErrImmutable
	}
	if !d.Configurable {
		return ErrNotConfigurable
	}
	delete(r.slots, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Freeze locks r shallowly: no slot can be added, removed, redefined or
// reassigned. Values held by r are not affected. Accessor setters stay callable.
func (r *Record) Freeze() { r.frozen = true }

// Frozen reports whether r has been locked.
func (r *Record) Frozen() bool { return r.frozen }

// String renders the own data slots for debugging.
func (r *Record) String() string {
	s := "{"
	for i, k := range r.keys {
		if i > 0 {
			s += ", "
		}
		d := r.slots[k]
		if d.IsAccessor() {
			s += k + ": <accessor>"
			continue
		}
		s += fmt.Sprintf("%s: %v", k, d.Value)
	}
	return s + "}"
}

func (r *Record) put(key string, d Descriptor) {
	if _, ok := r.slots[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.slots[key] = d
}
