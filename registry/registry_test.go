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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/registry"
)

func identity(v any, _ apis.Recurse) (any, error) { return v, nil }

func hooks() apis.Hooks { return apis.Hooks{Clone: identity} }

func TestRegister_Lookup(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(reflect.TypeOf(&T1{}), hooks()); err != nil {
		t.Fatalf("Register(&T1{}): unexpected error: %v", err)
	}

	// lookup by exact type
	h, ok := reg.Lookup(reflect.TypeOf(&T1{}))
	if !ok || h.Clone == nil {
		t.Fatalf("Lookup(&T1{}): got (%v,%v), want hooks", h, ok)
	}
	if h.Lock != nil {
		t.Fatal("Lookup(&T1{}): Lock should be nil")
	}
	// keys are exact: T1 is not *T1
	if _, ok := reg.Lookup(reflect.TypeOf(T1{})); ok {
		t.Fatal("Lookup(T1{}): expected miss for non-pointer type")
	}

	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(reflect.TypeOf(&T1{}), hooks()); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	err := reg.Register(reflect.TypeOf(&T1{}), hooks())
	if !errors.Is(err, registry.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got: %v", err)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(nil, hooks()); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(&T1{}), apis.Hooks{Lock: identity}); err != registry.ErrNilCloneHook {
		t.Fatalf("nil clone: want ErrNilCloneHook, got %v", err)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", reg.Count())
	}
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New()

	_ = reg.Register(reflect.TypeOf(&T1{}), hooks())
	_ = reg.Register(reflect.TypeOf(&T2{}), hooks())

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", reg.Count())
	}
	if _, ok := reg.Lookup(reflect.TypeOf(&T1{})); ok {
		t.Fatal("Lookup after Reset: want miss")
	}
	// Register works again after Reset.
	if err := reg.Register(reflect.TypeOf(&T1{}), hooks()); err != nil {
		t.Fatalf("Register after Reset: %v", err)
	}
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := registry.New()

	if _, ok := reg.Lookup(nil); ok {
		t.Fatal("Lookup(nil): want miss")
	}
	if _, ok := reg.Lookup(reflect.TypeOf(&T1{})); ok {
		t.Fatal("Lookup(unknown): want miss")
	}
}
