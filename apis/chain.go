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

import "dirpx.dev/immuter/shape"

// Recurse re-enters the chain for a nested value.
type Recurse func(v any) (any, error)

// Handler processes every value of a single category.
// Handlers recurse into children exclusively through next.
type Handler interface {
	// Category returns the category this handler is registered for.
	Category() shape.Category
	// Handle duplicates (clone chains) or locks (freeze chains) v.
	Handle(v any, next Recurse) (any, error)
}

// Strategy is a pluggable step consulted before category dispatch.
// A Chain runs strategies in order (e.g., Cloner -> Registry).
type Strategy interface {
	// TryHandle returns (out, true, err) if it handled v; otherwise
	// (nil, false, nil) to fall through.
	TryHandle(v any, next Recurse) (out any, handled bool, err error)
}

// Chain duplicates or locks whole value graphs.
// Typical order: strategies, then the handler registered for Classify(v),
// then the terminal fallback (v unchanged).
type Chain interface {
	// Run processes v and every value reachable from it.
	Run(v any) (any, error)
}
