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

// Registry maps function names to type-specialized implementations and
// dispatches calls to the exact-match specialization.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register inserts impl under (name, key), replacing any previous
	// implementation for the same pair. impl must be a Go func.
	Register(name string, key Key, impl any) error
	// Lookup returns the implementation registered under the exact key.
	// It fails with *NotFoundError when there is none.
	Lookup(name string, key Key) (any, error)
	// Call derives an argument key from the runtime types of args, resolves
	// it and invokes the implementation with args.
	Call(name string, args ...any) (any, error)
	// CallKey invokes the implementation registered under exactly key with
	// args. The key is given, not derived from args.
	CallKey(name string, key Key, args ...any) (any, error)
	// CallAs resolves Returns(types...) and invokes the implementation with
	// no arguments.
	CallAs(name string, types ...Descriptor) (any, error)
	// Functions returns the registered function names in lexicographic order.
	Functions() []string
	// Entries returns a snapshot sorted by name, then key.
	Entries() []Entry
	// Count returns the number of registered specializations.
	Count() int
	// Reset removes every function.
	Reset()
	// Seal prevents further registrations. It reports whether this call
	// changed the state.
	Seal() bool
	// Sealed reports whether registrations are refused.
	Sealed() bool
}

// Entry is a single specialization in a Registry snapshot.
type Entry struct {
	// Name is the external-facing function name.
	Name string
	// Key selects the specialization.
	Key Key
	// Impl is the registered Go func.
	Impl any
}
