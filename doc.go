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

// Package tfx provides a process-wide registry of type-specialized
// functions ("templates") and dispatches calls to them by runtime type.
//
// A function name such as "get_from_arg" owns any number of
// specializations. Each specialization is keyed by an ordered tuple of
// type descriptors, one per parameter. A call derives the tuple from the
// runtime types of its arguments and invokes the implementation registered
// under exactly that tuple:
//
//	tfx.Register("get_from_arg", apis.Args(apis.Of[int]()), func(int) string { return "int" })
//	tfx.Register("get_from_arg", apis.Args(apis.Of[float64]()), func(float64) string { return "double" })
//
//	v, err := tfx.Call("get_from_arg", 3.5) // "double"
//	_, err = tfx.Call("get_from_arg", "x")  // *apis.NotFoundError
//
// Zero-argument functions such as get<T>() cannot be dispatched on their
// arguments. They are registered with a return key and called with an
// explicit descriptor:
//
//	tfx.Register("get", apis.Returns(apis.Of[int]()), func() string { return "get<int>" })
//	v, err := tfx.CallAs("get", apis.Of[int]())
//
// CallKey skips derivation entirely: it invokes the specialization under
// an explicit key with whatever arguments it is given.
//
// # Matching
//
// Matching is exact. int, int64 and a named type over int are three
// different descriptors; *T and T are different; a value never matches a
// specialization registered for an interface it implements. There is no
// scoring, fallback or coercion. Registering the same (name, key) twice
// replaces the first implementation and logs a warning.
//
// # Descriptors
//
// Argument descriptors are derived by a resolver chain, first match wins:
//
//  1. Values implementing apis.Typed describe themselves.
//  2. cty.Value arguments are described by their cty type
//     (strategy.CtyType), unless Config.ForeignTypes is off.
//  3. Everything else is described by its reflect.Type.
//
// # Global state
//
// The package holds an immutable snapshot {config, ext, registry, resolver,
// builder} behind an atomic pointer. Readers (Call, CallAs, Lookup,
// Registry) load it without locking. Writers (SetConfig, SetExt,
// SetBuilder, SetRegistry, SetAll) take a build mutex, let the Builder
// produce new layers and publish a fresh snapshot. The default builder
// migrates every specialization into the rebuilt registry, so
// reconfiguration never loses registrations.
//
// SetRegistry pins the given registry: later reconfigurations keep it until
// UnpinRegistry. The ext value is opaque to tfx and handed to the Builder
// on every rebuild; the default builder uses a *slog.Logger passed there.
//
// Libraries that need isolation should build their own registry with
// registry.New and skip the globals entirely.
package tfx
