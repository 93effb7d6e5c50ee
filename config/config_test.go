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

package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"dirpx.dev/immuter/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.Freeze != config.DefaultFreeze {
		t.Fatalf("Freeze = %v, want %v", got.Freeze, config.DefaultFreeze)
	}
	if got.DetectCycles != config.DefaultDetectCycles {
		t.Fatalf("DetectCycles = %v, want %v", got.DetectCycles, config.DefaultDetectCycles)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.Logger != nil {
		t.Fatalf("Logger = %v, want nil", got.Logger)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithFreeze(t *testing.T) {
	c := config.NewConfig(config.WithFreeze(false))
	if c.Freeze {
		t.Fatalf("Freeze = %v, want false", c.Freeze)
	}

	c2 := config.NewConfig(config.WithFreeze(true))
	if !c2.Freeze {
		t.Fatalf("Freeze = %v, want true", c2.Freeze)
	}
}

func TestWithDetectCycles(t *testing.T) {
	c := config.NewConfig(config.WithDetectCycles(false))
	if c.DetectCycles {
		t.Fatalf("DetectCycles = %v, want false", c.DetectCycles)
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithFreeze(false),
		config.WithFreeze(true),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
	)

	if !c.Freeze {
		t.Errorf("Freeze = %v, want true (last option wins)", c.Freeze)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
}

func TestLogger_DefaultDiscards(t *testing.T) {
	l := config.Logger(config.DefaultConfig())
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic and must not be enabled at any level.
	l.Info("discarded")
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should discard")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	want := slog.New(slog.NewTextHandler(&buf, nil))
	c := config.NewConfig(config.WithLogger(want))
	if got := config.Logger(c); got != want {
		t.Fatalf("Logger() = %p, want %p", got, want)
	}
	config.Logger(c).Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected log output")
	}
}
