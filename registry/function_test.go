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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/registry"
)

func reflectType(v any) reflect.Type { return reflect.TypeOf(v) }

func TestMake_SetInfersMode(t *testing.T) {
	reg := newRegistry()

	get := registry.Make(reg, "get")
	require.NoError(t, get.Set(func() string { return "get<int>" }, apis.Of[int]()))
	require.NoError(t, get.Set(func() string { return "get<Foo>" }, apis.Of[Foo]()))

	getFromArg := registry.Make(reg, "get_from_arg")
	require.NoError(t, getFromArg.Set(func(int) string { return "get_from_arg<int>" }, apis.Of[int]()))

	got, err := get.As(apis.Of[Foo]())
	require.NoError(t, err)
	assert.Equal(t, "get<Foo>", got)

	got, err = getFromArg.Call(3)
	require.NoError(t, err)
	assert.Equal(t, "get_from_arg<int>", got)

	keys := get.Keys()
	require.Len(t, keys, 2)
	for _, k := range keys {
		assert.Equal(t, apis.ModeReturn, k.Mode())
	}
	assert.Equal(t, []apis.Key{apis.Args(apis.Of[int]())}, getFromArg.Keys())
}

func TestMake_SetWithoutTypesIsArgsKey(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "funk")
	require.NoError(t, f.Set(func() string { return "empty" }))

	got, err := f.Call()
	require.NoError(t, err)
	assert.Equal(t, "empty", got)
}

func TestMake_SetExplicitKeyOverParameters(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "funk")
	key := []apis.Descriptor{apis.Of[T0](), apis.Of[T1](), apis.Of[T2]()}
	require.NoError(t, f.Set(func(T2) string { return "T0, T1, T2" }, key...))

	impl, err := f.Lookup(apis.Args(key...))
	require.NoError(t, err)
	assert.Equal(t, "T0, T1, T2", impl.(func(T2) string)(T2{}))
}

func TestFunction_Add(t *testing.T) {
	reg := newRegistry()
	f := registry.Make(reg, "funk")

	require.NoError(t, f.Add(func() string { return "empty" }))
	require.NoError(t, f.Add(func(int) string { return "int" }))
	require.NoError(t, f.Add(func(int, float64) string { return "int, float" }))
	require.NoError(t, f.Add(func(a, b int) string { return "int, int" }))

	for _, tc := range []struct {
		args []any
		want string
	}{
		{nil, "empty"},
		{[]any{42}, "int"},
		{[]any{1, 1.0}, "int, float"},
		{[]any{1, 1}, "int, int"},
	} {
		got, err := f.Call(tc.args...)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestFunction_AddErrors(t *testing.T) {
	f := registry.Make(newRegistry(), "funk")
	require.ErrorIs(t, f.Add(nil), registry.ErrNilImpl)
	require.ErrorIs(t, f.Add("nope"), registry.ErrNotFunc)
	require.ErrorIs(t, f.Add(func(...int) {}), registry.ErrCannotInfer)
}

func TestNewFunction_AccumulatesOnOneName(t *testing.T) {
	reg := newRegistry()

	f1, err := registry.NewFunction(reg, "get_from_arg", func(int) string { return "get_from_arg<int>" })
	require.NoError(t, err)
	_, err = registry.NewFunction(reg, "get_from_arg", func(float64) string { return "get_from_arg<double>" })
	require.NoError(t, err)
	f3, err := registry.NewFunction(reg, "get", func() string { return "get<Foo>" }, apis.Of[Foo]())
	require.NoError(t, err)

	got, err := f1.Call(2.5)
	require.NoError(t, err)
	assert.Equal(t, "get_from_arg<double>", got)

	got, err = f3.As(apis.Of[Foo]())
	require.NoError(t, err)
	assert.Equal(t, "get<Foo>", got)

	assert.Equal(t, 3, reg.Count())
}

func TestNewFunction_Error(t *testing.T) {
	f, err := registry.NewFunction(newRegistry(), "", func(int) {})
	require.ErrorIs(t, err, registry.ErrEmptyName)
	assert.Nil(t, f)
}

func TestFunction_String(t *testing.T) {
	f := registry.Make(newRegistry(), "get")
	assert.Equal(t, "get", f.Name())
	assert.Equal(t, "tfx.Function(get)", f.String())
}
