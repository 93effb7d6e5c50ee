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

package apis

import "reflect"

// Registry maps host types the model does not know about to Hooks.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register binds hooks to the exact type t. Re-registering a type fails.
	Register(t reflect.Type, h Hooks) error
	// Lookup returns the hooks bound to t if present.
	Lookup(t reflect.Type) (h Hooks, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, hooks) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Hooks are the associated hooks.
	Hooks Hooks
}
