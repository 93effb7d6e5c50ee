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

package chain

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/shape"
)

// NewCloner constructs an apis.Chain that duplicates value graphs.
//
// Strategies are tried in order before category dispatch. Handlers are
// indexed by their category; when two handlers claim the same category the
// first one wins. Nil strategies and handlers are ignored. Values without a
// handler are returned unchanged.
func NewCloner(cfg apis.Config, strategies []apis.Strategy, handlers []apis.Handler) apis.Chain {
	return &cloner{d: newDispatcher(apis.OpClone, cfg, strategies, handlers)}
}

// NewFreezer constructs an apis.Chain that runs cloner on its input and then
// locks the fresh duplicate. Values without a handler are passed through.
func NewFreezer(cfg apis.Config, cloner apis.Chain, strategies []apis.Strategy, handlers []apis.Handler) apis.Chain {
	return &freezer{cloner: cloner, d: newDispatcher(apis.OpFreeze, cfg, strategies, handlers)}
}

// cloner is an immutable clone chain.
type cloner struct {
	d *dispatcher
}

// Run duplicates v. Failures are reported as *apis.OpError matching
// apis.ErrCloneFailed.
func (c *cloner) Run(v any) (any, error) {
	return c.d.run(v)
}

// freezer is an immutable freeze chain.
type freezer struct {
	cloner apis.Chain
	d      *dispatcher
}

// Run returns a locked duplicate of v. v itself is never modified.
func (f *freezer) Run(v any) (any, error) {
	dup, err := f.cloner.Run(v)
	if err != nil {
		return nil, err
	}
	return f.d.run(dup)
}

// dispatcher holds the strategies and the category table of one chain.
type dispatcher struct {
	op     apis.Op
	strats []apis.Strategy
	table  [shape.Count]apis.Handler
	detect bool
}

func newDispatcher(op apis.Op, cfg apis.Config, strategies []apis.Strategy, handlers []apis.Handler) *dispatcher {
	d := &dispatcher{op: op, detect: cfg.DetectCycles}
	// Filter out nils to avoid nil-interface panics on call sites.
	d.strats = make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			d.strats = append(d.strats, s)
		}
	}
	for _, h := range handlers {
		if h == nil {
			continue
		}
		c := h.Category()
		if c < 0 || int(c) >= shape.Count || d.table[c] != nil {
			continue
		}
		d.table[c] = h
	}
	return d
}

// run walks v once, converting errors and panics into a single *apis.OpError.
func (d *dispatcher) run(v any) (out any, err error) {
	w := &walker{d: d}
	if d.detect {
		w.path = make(map[any]struct{})
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, d.wrap(panicError(r))
		}
	}()
	out, err = w.visit(v)
	if err != nil {
		return nil, d.wrap(err)
	}
	return out, nil
}

// wrap classifies err as a failure of d.op unless it is already classified.
func (d *dispatcher) wrap(err error) error {
	var oe *apis.OpError
	if errors.As(err, &oe) {
		return err
	}
	return &apis.OpError{Op: d.op, Err: err}
}

// walker carries per-run state. path holds the containers on the current
// recursion path when cycle detection is enabled.
type walker struct {
	d    *dispatcher
	path map[any]struct{}
}

func (w *walker) visit(v any) (any, error) {
	if w.path != nil && isPointer(v) {
		if _, ok := w.path[v]; ok {
			return nil, fmt.Errorf("%w: %T contains itself", apis.ErrCycle, v)
		}
		w.path[v] = struct{}{}
		defer delete(w.path, v)
	}
	for _, s := range w.d.strats {
		if out, ok, err := s.TryHandle(v, w.visit); ok {
			return out, err
		}
	}
	h := w.d.table[shape.Classify(v)]
	if h == nil {
		return v, nil
	}
	return h.Handle(v, w.visit)
}

func isPointer(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Pointer
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
