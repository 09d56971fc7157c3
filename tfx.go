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

package tfx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/builder"
	"dirpx.dev/tfx/config"
	"dirpx.dev/tfx/registry"
)

func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.res = s.bld.BuildResolver(s.cfg, nil)
	s.reg = s.bld.BuildRegistry(s.cfg, s.res, nil, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is raised (panic) when a builder returns a nil registry.
	ErrNilRegistry = errors.New("tfx: builder returned nil registry")
	// ErrNilResolver is raised (panic) when a builder returns a nil resolver.
	ErrNilResolver = errors.New("tfx: builder returned nil resolver")
)

// Register adds or replaces the specialization (name, key) in the global
// registry. See apis.Registry.Register.
func Register(name string, key apis.Key, impl any) error {
	return st.Load().reg.Register(name, key, impl)
}

// Lookup returns the implementation registered under exactly (name, key).
func Lookup(name string, key apis.Key) (any, error) {
	return st.Load().reg.Lookup(name, key)
}

// Call dispatches name on the runtime types of args.
func Call(name string, args ...any) (any, error) {
	return st.Load().reg.Call(name, args...)
}

// CallKey invokes the specialization registered under exactly (name, key)
// with args.
func CallKey(name string, key apis.Key, args ...any) (any, error) {
	return st.Load().reg.CallKey(name, key, args...)
}

// CallAs invokes the zero-argument specialization of name selected by types.
func CallAs(name string, types ...apis.Descriptor) (any, error) {
	return st.Load().reg.CallAs(name, types...)
}

// Make returns a handle for name bound to the global registry current at the
// time of the call. Handles do not follow later SetRegistry/SetConfig swaps.
func Make(name string) *registry.Function {
	return registry.Make(st.Load().reg, name)
}

// Describe returns the descriptor the global resolver derives for v.
// ok is false for values no strategy handles (nil).
func Describe(v any) (apis.Descriptor, bool) {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// As converts the dynamic result of Call/CallAs to T. A non-nil err is
// returned unchanged. A nil v yields the zero T.
func As[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, &ResultTypeError{Want: apis.Of[T](), Got: v}
	}
	return t, nil
}

// ResultTypeError is returned by As when the dynamic result is not a T.
type ResultTypeError struct {
	Want apis.Descriptor
	Got  any
}

func (e *ResultTypeError) Error() string {
	got := "<nil>"
	if d, ok := Describe(e.Got); ok {
		got = d.String()
	}
	return "tfx: result is " + got + ", not " + e.Want.String()
}

// SetAll explicitly sets all global tfx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A non-nil reg is pinned; a nil
// reg unpins and rebuilds the registry.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, bld apis.Builder) {
	swap(func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if bld != nil {
			next.bld = bld
		}
		next.preg = reg != nil
		if reg != nil {
			next.reg = reg
		}
	})
}

// Config returns the global tfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the resolver and,
// unless pinned, the registry. Registered specializations are carried over
// by the builder.
func SetConfig(cfg apis.Config) {
	swap(func(next *state) { next.cfg = cfg })
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global registry and pins it. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	swap(func(next *state) {
		next.reg = reg
		next.preg = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds the non-pinned layers
// with it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	swap(func(next *state) { next.bld = b })
}

// SetExt replaces the extension value handed to the builder and rebuilds
// the non-pinned layers. The default builder accepts a *slog.Logger.
func SetExt[T any](ext T) {
	swap(func(next *state) { next.ext = ext })
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry survives rebuilds.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the current global registry across SetConfig, SetExt
// and SetBuilder.
func PinRegistry() {
	swap(func(next *state) { next.preg = true })
}

// UnpinRegistry lets the next reconfiguration rebuild the global registry.
func UnpinRegistry() {
	swap(func(next *state) { next.preg = false })
}

// swap publishes a new snapshot derived from the current one. mutate edits
// a copy; the resolver is always rebuilt and the registry is rebuilt unless
// pinned or replaced by mutate.
func swap(mutate func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(&next)

	next.res = next.bld.BuildResolver(next.cfg, next.ext)
	if next.res == nil {
		panic(ErrNilResolver)
	}
	if !next.preg && next.reg == old.reg {
		next.reg = next.bld.BuildRegistry(next.cfg, next.res, old.reg, next.ext)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(&next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global tfx state.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	cfg apis.Config
	// ext is handed to the builder on every rebuild.
	ext any
	reg apis.Registry
	// res mirrors the resolver the registry was built with.
	res apis.Resolver
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
}
