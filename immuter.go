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

package immuter

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/config"
	"dirpx.dev/immuter/engine"
)

// init initializes the process-wide default engine.
func init() {
	st.Store(engine.MustNew(config.DefaultConfig(), nil, nil))
}

// Produce clones base, applies fn to the draft and returns the result using
// the default engine. base is never modified.
// This is a convenience wrapper around engine.Produce.
//
// A frozen mapping or set is an immutable view, not a *value.HashMap or
// *value.HashSet. Instantiate T as value.Mapping or value.Set for those:
// with T inferred from a *value.HashMap base, a frozen result fails with
// engine.ErrTypeMismatch.
func Produce[T any](base T, fn func(draft T) error) (T, error) {
	return engine.Produce(st.Load(), base, fn)
}

// Clone returns a duplicate of base using the default engine.
// This is a convenience wrapper around engine.Clone. The typing caveat of
// Produce applies: use Clone[value.Mapping] or Clone[value.Set] for
// mappings and sets that will be frozen.
func Clone[T any](base T) (T, error) {
	return engine.Clone(st.Load(), base)
}

// NoFreeze arms the one-shot toggle of the default engine and returns it,
// so exactly the next Produce or Clone returns an unfrozen result:
//
//	draft, err := immuter.NoFreeze().Clone(state)
func NoFreeze() *engine.Engine {
	return st.Load().SkipFreeze()
}

// Global returns the sticky toggle surface of the default engine.
func Global() engine.Global {
	return st.Load().Global()
}

// Register binds hooks to a host type in the default engine's registry.
// This is a convenience wrapper around the default registry.
func Register(t reflect.Type, h apis.Hooks) error {
	return st.Load().Registry().Register(t, h)
}

// Default returns the default engine.
func Default() *engine.Engine {
	return st.Load()
}

// SetDefault replaces the default engine. Nil is ignored.
func SetDefault(e *engine.Engine) {
	if e == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(e)
}

// Config returns the configuration of the default engine.
func Config() apis.Config {
	return st.Load().Config()
}

// SetConfig rebuilds the default engine for cfg with the current builder,
// migrating registered hooks. The toggle starts from cfg.Freeze.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old engine.
	old := st.Load()
	b := old.Builder()

	e, err := engine.New(cfg, b, b.BuildRegistry(cfg, old.Registry()))
	if err != nil {
		return err
	}

	// Store the new engine atomically.
	st.Store(e)
	return nil
}

// buildMu serializes writers (reconfigurations/swaps).
var buildMu sync.Mutex

// st holds the default engine.
var st atomic.Pointer[engine.Engine]
