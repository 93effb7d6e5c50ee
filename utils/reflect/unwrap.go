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

// Package reflect holds reflection helpers shared by the native bridge.
package reflect

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/immuter/apis"
	"dirpx.dev/immuter/config"
)

// ErrTooDeep is returned when pointer/interface nesting exceeds MaxUnwrap.
var ErrTooDeep = errors.New("immuter(reflect): pointer nesting exceeds MaxUnwrap")

// Unwrap dereferences pointers and interfaces in rv according to config
// (MaxUnwrap) and returns the first value that is neither, or for which
// stop reports true.
//
// Unwrapping policy:
//   - invalid or nil ptr/interface -> the zero reflect.Value;
//   - stop(rv) == true             -> rv as is (stop may be nil);
//   - ptr/interface                -> Elem(), at most MaxUnwrap times;
//   - default                      -> rv.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Unwrap(rv reflect.Value, cfg apis.Config, stop func(reflect.Value) bool) (reflect.Value, error) {
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; ; i++ {
		if !rv.IsValid() {
			return reflect.Value{}, nil
		}
		k := rv.Kind()
		indirect := k == reflect.Pointer || k == reflect.Interface
		if indirect && rv.IsNil() {
			return reflect.Value{}, nil
		}
		if stop != nil && stop(rv) {
			return rv, nil
		}
		if !indirect {
			return rv, nil
		}
		if i >= maxUnwrap {
			return reflect.Value{}, fmt.Errorf("%w (%d)", ErrTooDeep, maxUnwrap)
		}
		rv = rv.Elem()
	}
}
