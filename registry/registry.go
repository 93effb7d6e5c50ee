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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/immuter/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("immuter(registry): nil reflect.Type provided")
	// ErrNilCloneHook is returned when Hooks.Clone is nil.
	ErrNilCloneHook = errors.New("immuter(registry): nil clone hook provided")
	// ErrDuplicateRegistration indicates an attempt to re-register a type.
	ErrDuplicateRegistration = errors.New("immuter(registry): type already registered")
)

// New constructs an empty Registry keyed by exact reflect.Type.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to registered hooks.
	m sync.Map // map[reflect.Type]apis.Hooks
	// count tracks the number of registered entries.
	count int
}

// Register binds h to t. Hooks are functions and cannot be compared, so
// any second registration of t is rejected.
func (r *registry) Register(t reflect.Type, h apis.Hooks) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if h.Clone == nil {
		return ErrNilCloneHook
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(t); ok {
		return ErrDuplicateRegistration
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(t); ok {
		return ErrDuplicateRegistration
	}

	r.m.Store(t, h)
	r.count++
	return nil
}

// Lookup returns the hooks for a type if present.
func (r *registry) Lookup(t reflect.Type) (apis.Hooks, bool) {
	if t == nil {
		return apis.Hooks{}, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Hooks), true
	}
	return apis.Hooks{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:  key.(reflect.Type),
			Hooks: value.(apis.Hooks),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
