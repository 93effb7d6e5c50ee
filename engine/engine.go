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

// Package engine implements the produce/clone orchestration on top of the
// clone and freeze chains.
//
// An Engine owns its configuration explicitly instead of relying on hidden
// global state. The freezing toggle it carries is consumed exactly once per
// call: a one-shot SkipFreeze affects the next Produce or Clone only, while
// the sticky toggles exposed by Global persist until changed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/builder"
	"dirpx.dev/immuter/config"
	"dirpx.dev/immuter/shape"
)

var (
	// ErrNilChain is returned when a builder returns a nil chain.
	ErrNilChain = errors.New("immuter(engine): builder returned nil chain")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("immuter(engine): builder returned nil registry")
	// ErrTypeMismatch is returned by the generic helpers when the produced
	// value does not have the requested static type (for example a frozen
	// mapping requested as *value.HashMap instead of value.Mapping).
	ErrTypeMismatch = errors.New("immuter(engine): result does not match requested type")
)

// Mutator edits a draft in place. A returned error aborts the call.
type Mutator func(draft any) error

// Toggle is the freezing state consumed by the next call.
type Toggle struct {
	// Freeze reports whether the next call freezes its result.
	Freeze bool
	// Sticky reports whether Freeze persists after the next call.
	Sticky bool
}

// Engine runs produce/clone calls. It is safe for concurrent use, but the
// toggle protocol only has a meaningful order for sequential callers.
type Engine struct {
	cfg     apis.Config
	bld     apis.Builder
	reg     apis.Registry
	cloner  apis.Chain
	freezer apis.Chain
	log     *slog.Logger

	// mu guards toggle.
	mu     sync.Mutex
	toggle Toggle
}

// New constructs an Engine. A nil bld uses builder.New(); a nil reg makes
// the builder create a fresh registry, otherwise reg is used as is.
func New(cfg apis.Config, bld apis.Builder, reg apis.Registry) (*Engine, error) {
	if bld == nil {
		bld = builder.New()
	}
	if reg == nil {
		reg = bld.BuildRegistry(cfg, nil)
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	cl := bld.BuildCloner(cfg, reg)
	if cl == nil {
		return nil, ErrNilChain
	}
	fr := bld.BuildFreezer(cfg, reg, cl)
	if fr == nil {
		return nil, ErrNilChain
	}
	return &Engine{
		cfg:     cfg,
		bld:     bld,
		reg:     reg,
		cloner:  cl,
		freezer: fr,
		log:     config.Logger(cfg).With(slog.String("component", "immuter")),
		toggle:  Toggle{Freeze: cfg.Freeze},
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg apis.Config, bld apis.Builder, reg apis.Registry) *Engine {
	e, err := New(cfg, bld, reg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() apis.Config { return e.cfg }

// Builder returns the builder the chains were built with.
func (e *Engine) Builder() apis.Builder { return e.bld }

// Registry returns the host type registry.
func (e *Engine) Registry() apis.Registry { return e.reg }

// Toggle returns the state the next call will consume.
func (e *Engine) Toggle() Toggle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggle
}

// SkipFreeze arms the one-shot toggle: the next Produce or Clone returns an
// unfrozen result, after which the default applies again (unless sticky).
// It returns e so the call can be chained.
func (e *Engine) SkipFreeze() *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toggle.Freeze = false
	return e
}

// Global returns the sticky toggle surface of e.
func (e *Engine) Global() Global { return Global{e: e} }

// Global arms toggles that persist across calls.
type Global struct {
	e *Engine
}

// NoFreeze makes every following call return unfrozen results until
// Freeze or Reset is called.
func (g Global) NoFreeze() {
	g.e.setToggle(Toggle{Freeze: false, Sticky: true})
}

// Freeze makes every following call return frozen results until
// NoFreeze or Reset is called.
func (g Global) Freeze() {
	g.e.setToggle(Toggle{Freeze: true, Sticky: true})
}

// Reset drops stickiness and restores the configured default.
func (g Global) Reset() {
	g.e.setToggle(Toggle{Freeze: g.e.cfg.Freeze})
}

func (e *Engine) setToggle(t Toggle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toggle = t
}

// consume reads the toggle and resets it to the default unless sticky.
func (e *Engine) consume() Toggle {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.toggle
	if !t.Sticky {
		e.toggle.Freeze = e.cfg.Freeze
	}
	return t
}

// Produce clones base into a draft, applies fn to it and returns the draft,
// frozen unless the consumed toggle says otherwise. base is never modified.
// A nil fn behaves like Clone.
func (e *Engine) Produce(base any, fn Mutator) (any, error) {
	t := e.consume()
	draft, err := e.cloner.Run(base)
	if err != nil {
		return nil, e.fail("produce", base, err)
	}
	if fn != nil {
		if err := fn(draft); err != nil {
			return nil, e.fail("produce", base, fmt.Errorf("immuter: mutator: %w", err))
		}
	}
	return e.finish("produce", base, draft, t)
}

// Clone returns a duplicate of base, frozen unless the consumed toggle says
// otherwise.
func (e *Engine) Clone(base any) (any, error) {
	t := e.consume()
	draft, err := e.cloner.Run(base)
	if err != nil {
		return nil, e.fail("clone", base, err)
	}
	return e.finish("clone", base, draft, t)
}

func (e *Engine) finish(op string, base, draft any, t Toggle) (any, error) {
	out := draft
	if t.Freeze {
		var err error
		if out, err = e.freezer.Run(draft); err != nil {
			return nil, e.fail(op, base, err)
		}
	}
	e.log.LogAttrs(context.Background(), slog.LevelDebug, "immuter: "+op,
		slog.String("category", shape.Classify(base).String()),
		slog.Bool("freeze", t.Freeze),
		slog.Bool("sticky", t.Sticky),
	)
	return out, nil
}

func (e *Engine) fail(op string, base any, err error) error {
	e.log.LogAttrs(context.Background(), slog.LevelDebug, "immuter: "+op+" failed",
		slog.String("category", shape.Classify(base).String()),
		slog.Any("err", err),
	)
	return err
}

// Produce is the typed form of (*Engine).Produce.
//
// Freezing replaces mappings and sets by immutable views, so T must be
// value.Mapping or value.Set (not *value.HashMap / *value.HashSet) when the
// result is frozen; otherwise Produce fails with ErrTypeMismatch.
func Produce[T any](e *Engine, base T, fn func(draft T) error) (T, error) {
	var zero T
	var m Mutator
	if fn != nil {
		m = func(draft any) error {
			d, err := as[T](draft)
			if err != nil {
				return err
			}
			return fn(d)
		}
	}
	out, err := e.Produce(base, m)
	if err != nil {
		return zero, err
	}
	return as[T](out)
}

// Clone is the typed form of (*Engine).Clone. The typing rule of Produce
// applies to frozen mappings and sets.
func Clone[T any](e *Engine, base T) (T, error) {
	out, err := e.Clone(base)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](out)
}

func as[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %v", ErrTypeMismatch, v, reflect.TypeFor[T]())
	}
	return t, nil
}
