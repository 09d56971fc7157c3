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

package resolver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/config"
	"dirpx.dev/tfx/resolver"
	"dirpx.dev/tfx/strategy"
)

type label string

func (label) DispatchType() apis.Descriptor { return apis.Foreign("test", "label") }

// fixed handles everything with one descriptor; used to verify ordering.
type fixed struct{ d apis.Descriptor }

func (f fixed) TryResolve(any, apis.Config) (apis.Descriptor, bool) { return f.d, true }

func defaultChain() apis.Resolver {
	return resolver.Default()
}

func TestResolve_Order(t *testing.T) {
	r := defaultChain()
	cfg := config.DefaultConfig()

	d, ok := r.Resolve(label("x"), cfg)
	require.True(t, ok)
	assert.Equal(t, apis.Foreign("test", "label"), d, "Typed must win over reflect")

	d, ok = r.Resolve(cty.StringVal("x"), cfg)
	require.True(t, ok)
	assert.Equal(t, strategy.CtyType(cty.String), d, "cty must win over reflect")

	d, ok = r.Resolve(7, cfg)
	require.True(t, ok)
	assert.Equal(t, apis.Of[int](), d)
}

func TestResolve_ForeignDisabledFallsBackToGoType(t *testing.T) {
	cfg := config.NewConfig(config.WithForeignTypes(false))
	d, ok := defaultChain().Resolve(cty.StringVal("x"), cfg)
	require.True(t, ok)
	assert.Equal(t, apis.Of[cty.Value](), d)
}

func TestNew_IgnoresNilAndKeepsOrder(t *testing.T) {
	first := apis.Foreign("test", "first")
	r := resolver.New(nil, fixed{first}, nil, strategy.NewReflectStrategy())
	d, ok := r.Resolve(1, config.DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, first, d)
}

func TestResolve_EmptyChain(t *testing.T) {
	_, ok := resolver.New().Resolve(1, config.DefaultConfig())
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	key, err := defaultChain().Key([]any{1, 2.5, "s"}, config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, apis.ModeArgs, key.Mode())
	want := []apis.Descriptor{apis.Of[int](), apis.Of[float64](), apis.Of[string]()}
	if diff := cmp.Diff(want, key.Types(), cmp.Comparer(func(a, b apis.Descriptor) bool { return a == b })); diff != "" {
		t.Fatalf("key types mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, key.Equal(apis.Args(want...)))
}

func TestKey_NoArgs(t *testing.T) {
	key, err := defaultChain().Key(nil, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, key.Len())
	assert.True(t, key.Equal(apis.Args()))
}

func TestKey_NilArgument(t *testing.T) {
	_, err := defaultChain().Key([]any{1, nil}, config.DefaultConfig())
	require.ErrorIs(t, err, resolver.ErrUnresolvable)
	assert.Contains(t, err.Error(), "argument 1")
}
