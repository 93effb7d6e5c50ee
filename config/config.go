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

package config

import (
	"log/slog"

	"dirpx.dev/immuter/apis"
)

const (
	// DefaultFreeze represents the default for Freeze.
	// When true, results are deeply frozen unless a call is toggled.
	DefaultFreeze = true
	// DefaultDetectCycles represents the default for DetectCycles.
	DefaultDetectCycles = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Freeze:       DefaultFreeze,
		DetectCycles: DefaultDetectCycles,
		MaxUnwrap:    DefaultMaxUnwrap,
	}
}

// Logger returns cfg.Logger, or a logger that discards everything.
func Logger(cfg apis.Config) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFreeze sets the Freeze option.
func WithFreeze(freeze bool) Option {
	return func(c *apis.Config) {
		c.Freeze = freeze
	}
}

// WithDetectCycles sets the DetectCycles option.
func WithDetectCycles(detect bool) Option {
	return func(c *apis.Config) {
		c.DetectCycles = detect
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}
