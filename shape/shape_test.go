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

package shape_test

import (
	"testing"
	"time"

	"dirpx.dev/immuter/shape"
	"dirpx.dev/immuter/value"
)

// custom is a tagged value with an unknown tag.
type custom struct{}

func (custom) Tag() string { return "Custom" }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want shape.Category
	}{
		{"nil", nil, shape.Scalar},
		{"int", 42, shape.Scalar},
		{"string", "s", shape.Scalar},
		{"func", func() {}, shape.Scalar},
		{"goSlice", []int{1}, shape.Scalar},
		{"date", value.NewDate(time.Now()), shape.Date},
		{"set", value.NewSet(), shape.Set},
		{"frozenSet", value.FreezeSet(value.NewSet()), shape.Set},
		{"map", value.NewMap(), shape.Mapping},
		{"list", value.NewList(0), shape.Sequence},
		{"record", value.NewRecord(nil), shape.Record},
		{"unknownTag", custom{}, shape.Record},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shape.Classify(tt.v); got != tt.want {
				t.Fatalf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrdered(t *testing.T) {
	got := shape.Ordered()
	want := []shape.Category{shape.Date, shape.Set, shape.Mapping, shape.Sequence, shape.Record}
	if len(got) != len(want) {
		t.Fatalf("Ordered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ordered = %v, want %v", got, want)
		}
		if !got[i].IsComposite() {
			t.Fatalf("%v should be composite", got[i])
		}
	}
	if shape.Scalar.IsComposite() {
		t.Fatal("scalar should not be composite")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    shape.Category
		wantErr bool
	}{
		{"scalar", shape.Scalar, false},
		{" Date ", shape.Date, false},
		{"SET", shape.Set, false},
		{"map", shape.Mapping, false},
		{"array", shape.Sequence, false},
		{"object", shape.Record, false},
		{"", shape.Scalar, true},
		{"blob", shape.Scalar, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := shape.Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	shape.MustParse("nope")
}

func TestText_RoundTrip(t *testing.T) {
	for _, c := range append([]shape.Category{shape.Scalar}, shape.Ordered()...) {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", c, err)
		}
		var got shape.Category
		if err := got.UnmarshalText(b); err != nil || got != c {
			t.Fatalf("UnmarshalText(%q) = (%v, %v), want %v", b, got, err, c)
		}
	}
	if _, err := shape.Category(99).MarshalText(); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if s := shape.Category(99).String(); s != "unknown(99)" {
		t.Fatalf("String = %q", s)
	}
}
