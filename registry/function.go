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

package registry

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/tfx/apis"
	uref "dirpx.dev/tfx/utils/reflect"
)

// ErrCannotInfer is returned by Add when a key cannot be inferred from the
// implementation's parameters.
var ErrCannotInfer = errors.New("tfx(registry): cannot infer key from implementation")

// Function is the external-facing handle of one template function name.
// It holds no state of its own; every operation goes to the registry.
type Function struct {
	reg  apis.Registry
	name string
}

// Make returns the handle for name. Specializations are added afterwards
// with Set or Add:
//
//	get := registry.Make(reg, "get")
//	_ = get.Set(func() string { return "get<int>" }, apis.Of[int]())
func Make(reg apis.Registry, name string) *Function {
	return &Function{reg: reg, name: name}
}

// NewFunction registers one specialization and returns the handle for name.
// With no types the key is inferred from impl's parameters (see Add);
// otherwise it is formed as in Set. Calling NewFunction repeatedly with the
// same name accumulates specializations on the same function.
func NewFunction(reg apis.Registry, name string, impl any, types ...apis.Descriptor) (*Function, error) {
	f := Make(reg, name)
	var err error
	if len(types) == 0 {
		err = f.Add(impl)
	} else {
		err = f.Set(impl, types...)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// Set registers impl under the given types. A zero-parameter impl with at
// least one type is registered under apis.Returns (dispatched by CallAs);
// anything else under apis.Args (dispatched by Call).
func (f *Function) Set(impl any, types ...apis.Descriptor) error {
	return f.reg.Register(f.name, keyFor(impl, types), impl)
}

// Add registers impl under the key Call would derive for its parameters:
// the parameter type, or the DispatchType of parameters implementing
// apis.Typed. Variadic implementations and apis.Typed interface parameters
// cannot be added this way; use Set.
func (f *Function) Add(impl any) error {
	if impl == nil {
		return ErrNilImpl
	}
	sig, err := uref.SignatureOf(reflect.TypeOf(impl))
	if err != nil {
		return ErrNotFunc
	}
	if sig.Variadic {
		return ErrCannotInfer
	}
	types := make([]apis.Descriptor, len(sig.In))
	for i, t := range sig.In {
		if types[i], err = paramDescriptor(t); err != nil {
			return fmt.Errorf("%w: parameter %d: %w", ErrCannotInfer, i, err)
		}
	}
	return f.reg.Register(f.name, apis.Args(types...), impl)
}

var typedType = reflect.TypeOf((*apis.Typed)(nil)).Elem()

// paramDescriptor returns the descriptor the resolver chain gives a non-nil
// argument of type t. apis.Typed types are asked on their zero value (a
// pointer to one for pointer types), so DispatchType must not depend on
// the value.
func paramDescriptor(t reflect.Type) (d apis.Descriptor, err error) {
	if !t.Implements(typedType) {
		return apis.TypeOf(t), nil
	}
	var v reflect.Value
	switch t.Kind() {
	case reflect.Interface:
		return apis.Descriptor{}, fmt.Errorf("interface %s has no single dispatch type", uref.TypeName(t))
	case reflect.Pointer:
		v = reflect.New(t.Elem())
	default:
		v = reflect.Zero(t)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s.DispatchType panicked: %v", uref.TypeName(t), r)
		}
	}()
	if d = v.Interface().(apis.Typed).DispatchType(); d.IsZero() {
		d = apis.TypeOf(t)
	}
	return d, nil
}

// Lookup returns the implementation registered under key.
func (f *Function) Lookup(key apis.Key) (any, error) {
	return f.reg.Lookup(f.name, key)
}

// Call dispatches on the runtime types of args.
func (f *Function) Call(args ...any) (any, error) {
	return f.reg.Call(f.name, args...)
}

// CallKey invokes the specialization registered under exactly key with args.
func (f *Function) CallKey(key apis.Key, args ...any) (any, error) {
	return f.reg.CallKey(f.name, key, args...)
}

// At returns the specialization under key without resolving it. The
// lookup happens on each Call, so later replacements are observed:
//
//	s := fn.At(apis.Args(apis.Of[Foo](), apis.Of[Bar]()))
//	v, err := s.Call(Bar{})
func (f *Function) At(key apis.Key) Specialization {
	return Specialization{fn: f, key: key}
}

// As dispatches the zero-argument specialization selected by types.
func (f *Function) As(types ...apis.Descriptor) (any, error) {
	return f.reg.CallAs(f.name, types...)
}

// Keys returns the keys registered for the function, in Entries order.
func (f *Function) Keys() []apis.Key {
	var keys []apis.Key
	for _, e := range f.reg.Entries() {
		if e.Name == f.name {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Specialization is one explicitly selected key of a Function.
type Specialization struct {
	fn  *Function
	key apis.Key
}

// Key returns the selected key.
func (s Specialization) Key() apis.Key { return s.key }

// Call invokes the implementation under the selected key with args.
func (s Specialization) Call(args ...any) (any, error) {
	return s.fn.CallKey(s.key, args...)
}

// Impl returns the implementation under the selected key.
func (s Specialization) Impl() (any, error) {
	return s.fn.Lookup(s.key)
}

// String returns "tfx.Function(name)".
func (f *Function) String() string { return "tfx.Function(" + f.name + ")" }

// keyFor picks the key mode for an index-style assignment.
func keyFor(impl any, types []apis.Descriptor) apis.Key {
	if len(types) > 0 && impl != nil {
		if t := reflect.TypeOf(impl); t.Kind() == reflect.Func && t.NumIn() == 0 {
			return apis.Returns(types...)
		}
	}
	return apis.Args(types...)
}
