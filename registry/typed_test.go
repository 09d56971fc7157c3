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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/registry"
)

// amount dispatches as unit, whatever its value.
type amount struct{ cents int64 }

type unit struct{}

func (amount) DispatchType() apis.Descriptor { return apis.Of[unit]() }

// handle dispatches through a pointer receiver.
type handle struct{ id int }

func (*handle) DispatchType() apis.Descriptor { return apis.Foreign("test", "handle") }

// anyAmount is an interface over apis.Typed; it has no single dispatch type.
type anyAmount interface {
	apis.Typed
	Cents() int64
}

func TestCall_TypedArgument(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "format")
	require.NoError(t, f.Add(func(a amount) int64 { return a.cents }))

	assert.Equal(t, []apis.Key{apis.Args(apis.Of[unit]())}, f.Keys())

	got, err := f.Call(amount{cents: 250})
	require.NoError(t, err)
	assert.Equal(t, int64(250), got)

	// A non-nil *amount describes itself the same way but cannot be
	// assigned to the amount parameter.
	_, err = f.Call(&amount{})
	require.ErrorIs(t, err, registry.ErrArgumentType)
}

func TestCall_TypedPointerReceiver(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "close")
	require.NoError(t, f.Add(func(h *handle) int { return h.id }))

	assert.Equal(t, []apis.Key{apis.Args(apis.Foreign("test", "handle"))}, f.Keys())

	got, err := f.Call(&handle{id: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCall_TypedNilPointer(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Register("f", apis.Args(apis.Of[*amount]()), func(a *amount) bool { return a == nil }))

	// DispatchType has a value receiver; a nil *amount must not reach it.
	var p *amount
	var got any
	require.NotPanics(t, func() {
		var err error
		got, err = reg.Call("f", p)
		require.NoError(t, err)
	})
	assert.Equal(t, true, got)
}

func TestFunction_AddTypedInterfaceParameter(t *testing.T) {
	f := registry.Make(newRegistry(), "f")
	err := f.Add(func(anyAmount) {})
	require.ErrorIs(t, err, registry.ErrCannotInfer)
	assert.Contains(t, err.Error(), "parameter 0")
}

func TestCallKey_ExplicitSelection(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "funk")
	require.NoError(t, f.Set(func() string { return "Foo" }, apis.Of[Foo]()))
	require.NoError(t, f.Set(func(Foo) string { return "Foo, Foo" }, apis.Of[Foo](), apis.Of[Foo]()))
	require.NoError(t, f.Add(func(n int) string { return "int" }))

	// The key need not describe the arguments.
	got, err := f.CallKey(apis.Args(apis.Of[Foo](), apis.Of[Foo]()), Foo{})
	require.NoError(t, err)
	assert.Equal(t, "Foo, Foo", got)

	// Return keys are reachable too.
	got, err = reg.CallKey("funk", apis.Returns(apis.Of[Foo]()))
	require.NoError(t, err)
	assert.Equal(t, "Foo", got)

	s := f.At(apis.Args(apis.Of[int]()))
	assert.True(t, s.Key().Equal(apis.Args(apis.Of[int]())))
	got, err = s.Call(31)
	require.NoError(t, err)
	assert.Equal(t, "int", got)

	impl, err := s.Impl()
	require.NoError(t, err)
	assert.Equal(t, "int", impl.(func(int) string)(0))
}

func TestCallKey_Errors(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "funk")
	require.NoError(t, f.Add(func(int) string { return "int" }))
	key := apis.Args(apis.Of[int]())

	_, err := f.CallKey(apis.Args(apis.Of[string]()), "x")
	var nf *apis.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.True(t, nf.Key.Equal(apis.Args(apis.Of[string]())))

	_, err = f.CallKey(key)
	var ae *apis.ArityError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 1, ae.Want)
	assert.Equal(t, 0, ae.Got)

	_, err = f.CallKey(key, "not an int")
	require.ErrorIs(t, err, registry.ErrArgumentType)

	// The selection is resolved per call.
	s := f.At(key)
	require.NoError(t, f.Set(func(int) string { return "replaced" }, apis.Of[int]()))
	got, err := s.Call(1)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got)
}

func TestEntries_SameRenderingKeepsRegistrationOrder(t *testing.T) {
	a := func() apis.Descriptor {
		type T struct{}
		return apis.Of[T]()
	}()
	b := func() apis.Descriptor {
		type T struct{}
		return apis.Of[T]()
	}()
	require.Equal(t, a.String(), b.String())

	for i := 0; i < 20; i++ {
		reg := newRegistry()
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}
		require.NoError(t, reg.Register("f", apis.Returns(first), func() {}))
		require.NoError(t, reg.Register("f", apis.Returns(second), func() {}))

		entries := reg.Entries()
		require.Len(t, entries, 2)
		assert.True(t, entries[0].Key.Equal(apis.Returns(first)), "iteration %d", i)
		assert.True(t, entries[1].Key.Equal(apis.Returns(second)), "iteration %d", i)
	}
}
