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

package apis

import "log/slog"

// Config carries read-only engine knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Freeze is the default freezing behavior. Calls that are not toggled
	// freeze their result when Freeze is true, and the one-shot toggle
	// reverts to this value after it is consumed.
	Freeze bool

	// DetectCycles makes chains reject values that contain themselves
	// instead of recursing without bound.
	DetectCycles bool

	// MaxUnwrap limits pointer/interface unwrapping when converting native
	// Go values into the model. Acts as a guard against pathological nesting.
	MaxUnwrap int

	// Logger receives debug records for every engine call. Nil discards.
	Logger *slog.Logger
}
