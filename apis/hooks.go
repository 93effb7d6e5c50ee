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

// Cloner is the zero-registration fast path for host values that know how
// to duplicate themselves. When a value implements Cloner, clone chains use
// CloneValue and skip registry and category dispatch for that value.
//
// CloneValue must return a value that shares no mutable state with the
// receiver and must reach nested values through next.
type Cloner interface {
	CloneValue(next Recurse) (any, error)
}

// Locker is the freeze-side counterpart of Cloner. LockValue is called on a
// value that was just produced by the clone chain and may lock it in place.
type Locker interface {
	LockValue(next Recurse) (any, error)
}

// HookFunc duplicates or locks a host value of a registered type.
type HookFunc func(v any, next Recurse) (any, error)

// Hooks binds clone and lock behavior to a registered type.
type Hooks struct {
	// Clone is required.
	Clone HookFunc
	// Lock is optional; nil leaves the cloned value unlocked.
	Lock HookFunc
}
