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

package resolver

import (
	"errors"
	"fmt"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/strategy"
)

// ErrUnresolvable is returned when no strategy can describe an argument
// (typically an untyped nil).
var ErrUnresolvable = errors.New("tfx(resolver): argument has no dispatch type")

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// Default returns the standard chain: Typed -> Cty -> Reflect.
func Default() apis.Resolver {
	return New(
		strategy.NewTypedStrategy(),
		strategy.NewCtyStrategy(),
		strategy.NewReflectStrategy(),
	)
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve runs strategies in order until one handles the value.
func (r chain) Resolve(v any, cfg apis.Config) (apis.Descriptor, bool) {
	for _, s := range r.strats {
		if d, ok := s.TryResolve(v, cfg); ok {
			return d, true
		}
	}
	return apis.Descriptor{}, false
}

// Key describes every argument in order and returns the argument key.
func (r chain) Key(args []any, cfg apis.Config) (apis.Key, error) {
	types := make([]apis.Descriptor, len(args))
	for i, a := range args {
		d, ok := r.Resolve(a, cfg)
		if !ok {
			return apis.Key{}, fmt.Errorf("%w: argument %d", ErrUnresolvable, i)
		}
		types[i] = d
	}
	return apis.Args(types...), nil
}
