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

import (
	"reflect"

	uref "dirpx.dev/tfx/utils/reflect"
)

// Descriptor is an opaque, comparable identity of a runtime type.
//
// Two descriptors are equal iff they identify the same type: the same
// reflect.Type for Go types, or the same (namespace, name) pair for types of
// a foreign type system. There is no subtype relation between descriptors.
// The zero Descriptor identifies nothing and never matches a registration.
type Descriptor struct {
	rt   reflect.Type
	ns   string
	name string
}

// Of returns the descriptor of the Go type T.
func Of[T any]() Descriptor {
	return Descriptor{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeOf returns the descriptor of t. A nil t yields the zero Descriptor.
func TypeOf(t reflect.Type) Descriptor {
	return Descriptor{rt: t}
}

// Foreign returns the descriptor of a type owned by a non-Go type system,
// identified by its namespace (e.g. "cty") and canonical name within it.
func Foreign(ns, name string) Descriptor {
	if ns == "" || name == "" {
		return Descriptor{}
	}
	return Descriptor{ns: ns, name: name}
}

// IsZero reports whether d identifies no type.
func (d Descriptor) IsZero() bool { return d.rt == nil && d.ns == "" }

// Type returns the Go type behind d, or nil for foreign and zero descriptors.
func (d Descriptor) Type() reflect.Type { return d.rt }

// Namespace returns the foreign namespace of d, or "" for Go types.
func (d Descriptor) Namespace() string { return d.ns }

// String returns a human-readable type name such as "int", "templates.Foo"
// or "cty.Number".
func (d Descriptor) String() string {
	switch {
	case d.rt != nil:
		return uref.TypeName(d.rt)
	case d.ns != "":
		return d.name
	default:
		return "<nil>"
	}
}

// Typed is implemented by values that choose their own dispatch descriptor
// instead of being described by their Go type.
type Typed interface {
	// DispatchType returns the descriptor used when the value is a call argument.
	// A zero Descriptor means "not handled".
	DispatchType() Descriptor
}
