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

// Package immuter derives new values from existing ones without touching
// the originals.
//
// The core operation is produce:
//
//	next, err := immuter.Produce(state, func(draft *value.Record) error {
//	    return draft.Set("name", "b")
//	})
//
// Produce duplicates state into a draft, lets the mutator edit the draft
// freely, and returns the draft deeply frozen. state and everything
// reachable from it are never modified. Clone is the same pipeline without
// the mutation step.
//
// # Design
//
// Values live in the dynamic model of package value: records (prototype +
// ordered slot descriptors), lists, insertion-ordered hash maps and sets,
// and mutable dates. Everything else (numbers, strings, funcs, arbitrary Go
// values) is a scalar and passes through by reference.
//
// Two chains do the work:
//
//   - The clone chain duplicates a value graph. It first tries host
//     strategies, in priority order:
//     1. If the value implements apis.Cloner, use v.CloneValue().
//     2. If the value's type is in the Registry, use the registered hook.
//     3. Otherwise dispatch on shape.Classify(v) to the category handler
//     (date, set, mapping, sequence, record). Without a handler the value
//     is returned unchanged.
//
//   - The freeze chain runs the clone chain and locks the fresh duplicate
//     children first: records and lists reject every further mutation with
//     value.ErrImmutable, mappings and sets are replaced by immutable views
//     that fail with value.ErrImmutableMap / value.ErrImmutableSet, and dates
//     are locked.
//
// Records are duplicated at descriptor level: the prototype is shared, every
// slot keeps its flags, stored values are cloned and accessor slots are
// copied by reference. Cloning never invokes a getter.
//
// # Errors
//
// Any failure while duplicating (a handler error, an unhashable member, a
// panic in a host hook, a cyclic graph) is reported once as an
// *apis.OpError that matches apis.ErrCloneFailed with errors.Is and unwraps
// to the cause. Mutating a frozen value fails with the value package
// sentinels; those are never wrapped.
//
// # Toggles
//
// Every engine carries a freezing toggle that is consumed once per call:
//
//   - NoFreeze() arms "skip freezing" for exactly the next call and returns
//     the engine, so NoFreeze().Produce(...) is unfrozen and the call after
//     that is frozen again. An armed toggle stays armed until consumed.
//
//   - Global().NoFreeze() makes the setting sticky: every following call is
//     unfrozen until Global().Freeze() or Global().Reset().
//
// The package-level functions use a process-wide default engine held in an
// atomic pointer. Engines built with engine.New are independent and carry
// their own toggle, so tests and libraries can avoid the shared default.
//
// # Concurrency model
//
// Produce and Clone are synchronous. The toggle is read and reset under a
// mutex within each call, but the one-shot protocol only has a meaningful
// order for sequential callers. Values produced by the engine are not
// synchronized; frozen values are safe to share for reading.
//
// # Scope
//
// Every call performs a full deep duplication; there is no structural
// sharing. Cyclic graphs are rejected (see apis.Config.DetectCycles).
// There is no schema validation and no serialization format; package
// native converts plain Go data to and from the model.
package immuter
