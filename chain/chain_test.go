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

package chain_test

import (
	"errors"
	"strings"
	"testing"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/chain"
	"dirpx.dev/immuter/shape"
	"dirpx.dev/immuter/strategy"
	"dirpx.dev/immuter/value"
)

func cfg() apis.Config { return apis.Config{Freeze: true, DetectCycles: true, MaxUnwrap: 8} }

// stubHandler records that it ran and returns a fixed result.
type stubHandler struct {
	cat  shape.Category
	out  any
	hits *int
}

func (h stubHandler) Category() shape.Category { return h.cat }
func (h stubHandler) Handle(_ any, _ apis.Recurse) (any, error) {
	*h.hits++
	return h.out, nil
}

// stubStrategy handles values equal to match.
type stubStrategy struct {
	match any
	out   any
}

func (s stubStrategy) TryHandle(v any, _ apis.Recurse) (any, bool, error) {
	if v == s.match {
		return s.out, true, nil
	}
	return nil, false, nil
}

func TestCloner_ScalarsPassThrough(t *testing.T) {
	c := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers())
	fn := func() {}
	for _, v := range []any{nil, 1, "s", 3.5, true} {
		out, err := c.Run(v)
		if err != nil || out != v {
			t.Fatalf("Run(%v) = (%v, %v)", v, out, err)
		}
	}
	out, err := c.Run(fn)
	if err != nil || out == nil {
		t.Fatalf("Run(func) = (%v, %v)", out, err)
	}
}

func TestCloner_FirstHandlerWinsAndNilsIgnored(t *testing.T) {
	var first, second int
	c := chain.NewCloner(cfg(), []apis.Strategy{nil}, []apis.Handler{
		nil,
		stubHandler{cat: shape.Sequence, out: "first", hits: &first},
		stubHandler{cat: shape.Sequence, out: "second", hits: &second},
	})
	out, err := c.Run(value.ListOf())
	if err != nil || out != "first" {
		t.Fatalf("Run = (%v, %v), want first", out, err)
	}
	if first != 1 || second != 0 {
		t.Fatalf("hits = %d/%d, want 1/0", first, second)
	}
}

func TestCloner_StrategiesBeforeHandlers(t *testing.T) {
	var hits int
	l := value.ListOf()
	c := chain.NewCloner(cfg(),
		[]apis.Strategy{stubStrategy{match: l, out: "strategy"}},
		[]apis.Handler{stubHandler{cat: shape.Sequence, out: "handler", hits: &hits}},
	)
	out, err := c.Run(l)
	if err != nil || out != "strategy" || hits != 0 {
		t.Fatalf("Run = (%v, %v), hits %d", out, err, hits)
	}
}

func TestCloner_NoHandlerIsIdentity(t *testing.T) {
	c := chain.NewCloner(cfg(), nil, nil)
	r := value.NewRecord(nil)
	out, err := c.Run(r)
	if err != nil || out != r {
		t.Fatal("category without a handler must return the input")
	}
}

func TestCloner_Cycle(t *testing.T) {
	r := value.NewRecord(nil)
	_ = r.Set("self", value.ListOf(r))

	_, err := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers()).Run(r)
	if !errors.Is(err, apis.ErrCloneFailed) || !errors.Is(err, apis.ErrCycle) {
		t.Fatalf("got %v, want ErrCloneFailed wrapping ErrCycle", err)
	}
	var oe *apis.OpError
	if !errors.As(err, &oe) || oe.Op != apis.OpClone {
		t.Fatalf("want *apis.OpError with OpClone, got %T", err)
	}
}

func TestCloner_SharedSubgraphIsNotACycle(t *testing.T) {
	shared := value.ListOf(1)
	r := value.RecordOf("a", shared, "b", shared)
	out, err := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers()).Run(r)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !value.Equal(out, r) {
		t.Fatal("clone differs from source")
	}
}

// boom panics when cloned.
type boom struct{}

func (boom) CloneValue(_ apis.Recurse) (any, error) { panic("kaboom") }

func TestCloner_RecoversPanics(t *testing.T) {
	c := chain.NewCloner(cfg(), []apis.Strategy{strategy.NewClonerStrategy()}, strategy.NewCloneHandlers())
	_, err := c.Run(value.ListOf(boom{}))
	if !errors.Is(err, apis.ErrCloneFailed) {
		t.Fatalf("got %v, want ErrCloneFailed", err)
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("error %q should carry the panic value", err)
	}
}

// opaque is tagged as a set but exposes no set capability.
type opaque struct{}

func (opaque) Tag() string { return value.TagSet }

func TestCloner_Unsupported(t *testing.T) {
	_, err := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers()).Run(opaque{})
	if !errors.Is(err, apis.ErrCloneFailed) || !errors.Is(err, apis.ErrUnsupported) {
		t.Fatalf("got %v", err)
	}
}

func TestFreezer_LocksDuplicate(t *testing.T) {
	c := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers())
	f := chain.NewFreezer(cfg(), c, nil, strategy.NewLockHandlers())

	src := value.RecordOf("list", value.ListOf(1))
	out, err := f.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r := out.(*value.Record)
	if r == src || !r.Frozen() || src.Frozen() {
		t.Fatal("freezer must lock a duplicate and leave the source unlocked")
	}
	if src.Get("list").(*value.List).Frozen() {
		t.Fatal("source child was locked")
	}
}

// badLocker fails while locking.
type badLocker struct{}

func (badLocker) CloneValue(_ apis.Recurse) (any, error) { return badLocker{}, nil }
func (badLocker) LockValue(_ apis.Recurse) (any, error) {
	return nil, errors.New("no lock")
}

func TestFreezer_LockErrorsAreFreezeFailures(t *testing.T) {
	c := chain.NewCloner(cfg(), []apis.Strategy{strategy.NewClonerStrategy()}, strategy.NewCloneHandlers())
	f := chain.NewFreezer(cfg(), c, []apis.Strategy{strategy.NewLockerStrategy()}, strategy.NewLockHandlers())

	_, err := f.Run(value.ListOf(badLocker{}))
	if !errors.Is(err, apis.ErrFreezeFailed) || errors.Is(err, apis.ErrCloneFailed) {
		t.Fatalf("got %v, want ErrFreezeFailed only", err)
	}
}

func TestFreezer_CloneErrorsStayCloneFailures(t *testing.T) {
	c := chain.NewCloner(cfg(), nil, strategy.NewCloneHandlers())
	f := chain.NewFreezer(cfg(), c, nil, strategy.NewLockHandlers())
	_, err := f.Run(opaque{})
	if !errors.Is(err, apis.ErrCloneFailed) || errors.Is(err, apis.ErrFreezeFailed) {
		t.Fatalf("got %v, want ErrCloneFailed only", err)
	}
}
