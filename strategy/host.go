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
	"reflect"

	"dirpx.dev/immuter/apis"
)

// NewClonerStrategy creates an apis.Strategy that defers to apis.Cloner.
func NewClonerStrategy() apis.Strategy {
	return &clonerStrategy{}
}

// clonerStrategy is a zero-registration fast path: if v implements
// apis.Cloner, call CloneValue and stop the chain.
type clonerStrategy struct{}

// Ensure clonerStrategy implements apis.Strategy.
var _ apis.Strategy = (*clonerStrategy)(nil)

// TryHandle checks if v implements apis.Cloner and returns its clone.
func (*clonerStrategy) TryHandle(v any, next apis.Recurse) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	if c, ok := v.(apis.Cloner); ok {
		out, err := c.CloneValue(next)
		return out, true, err
	}
	return nil, false, nil
}

// NewLockerStrategy creates an apis.Strategy that defers to apis.Locker.
func NewLockerStrategy() apis.Strategy {
	return &lockerStrategy{}
}

// lockerStrategy is the freeze-side fast path for apis.Locker.
type lockerStrategy struct{}

// Ensure lockerStrategy implements apis.Strategy.
var _ apis.Strategy = (*lockerStrategy)(nil)

// TryHandle checks if v implements apis.Locker and returns the locked value.
// Values that implement apis.Cloner but not apis.Locker are passed through.
func (*lockerStrategy) TryHandle(v any, next apis.Recurse) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	if l, ok := v.(apis.Locker); ok {
		out, err := l.LockValue(next)
		return out, true, err
	}
	if _, ok := v.(apis.Cloner); ok {
		return v, true, nil
	}
	return nil, false, nil
}

// NewRegistryStrategy creates an apis.Strategy that consults reg.
// With lock set it applies Hooks.Lock, otherwise Hooks.Clone.
func NewRegistryStrategy(reg apis.Registry, lock bool) apis.Strategy {
	return &registryStrategy{reg: reg, lock: lock}
}

// registryStrategy consults a provided apis.Registry by exact type.
type registryStrategy struct {
	reg  apis.Registry
	lock bool
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryHandle looks up v's type in the registry.
// A registered type without a Lock hook is passed through by freeze chains.
func (s *registryStrategy) TryHandle(v any, next apis.Recurse) (any, bool, error) {
	if v == nil || s.reg == nil || s.reg.Count() == 0 {
		return nil, false, nil
	}
	h, ok := s.reg.Lookup(reflect.TypeOf(v))
	if !ok {
		return nil, false, nil
	}
	fn := h.Clone
	if s.lock {
		fn = h.Lock
	}
	if fn == nil {
		return v, true, nil
	}
	out, err := fn(v, next)
	return out, true, err
}
