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

// Sequence is the read capability of an ordered sequence.
type Sequence interface {
	Tagger
	Len() int
	At(i int) Value
}

// List is a growable ordered sequence.
type List struct {
	items  []Value
	frozen bool
}

// Ensure List implements Sequence.
var _ Sequence = (*List)(nil)

// NewList returns an empty list with room for n elements.
func NewList(n int) *List {
	return &List{items: make([]Value, 0, n)}
}

// ListOf returns a list holding items in order.
func ListOf(items ...Value) *List {
	l := NewList(len(items))
	l.items = append(l.items, items...)
	return l
}

// Tag implements Tagger.
func (*List) Tag() string { return TagArray }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at i, or nil when i is out of range.
func (l *List) At(i int) Value {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns a copy of the elements.
func (l *List) Items() []Value {
	out := make([]Value, len(l.items))
	copy(out, l.items)
	return out
}

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Set replaces the element at i.
func (l *List) Set(i int, v Value) error {
	if l.frozen {
		return ErrImmutable
	}
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.items))
	}
	l.items[i] = v
	return nil
}

// Append adds vs to the end of the list.
func (l *List) Append(vs ...Value) error {
	if l.frozen {
		return ErrImmutable
	}
	l.items = append(l.items, vs...)
	return nil
}

// Insert places v at position i, shifting later elements. i may equal Len().
func (l *List) Insert(i int, v Value) error {
	if l.frozen {
		return ErrImmutable
	}
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.items))
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return nil
}

// RemoveAt deletes and returns the element at i.
func (l *List) RemoveAt(i int) (Value, error) {
	if l.frozen {
		return nil, ErrImmutable
	}
	if i < 0 || i >= len(l.items) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.items))
	}
	v := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return v, nil
}

// Freeze locks the list shallowly. Elements are not affected.
func (l *List) Freeze() { l.frozen = true }

// Frozen reports whether the list has been locked.
func (l *List) Frozen() bool { return l.frozen }

// String renders the elements for debugging.
func (l *List) String() string { return fmt.Sprint(l.items) }
