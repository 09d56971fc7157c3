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

package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/config"
	"dirpx.dev/tfx/strategy"
)

func TestCtyStrategy_Primitives(t *testing.T) {
	s := strategy.NewCtyStrategy()
	cfg := config.DefaultConfig()

	cases := []struct {
		name string
		val  cty.Value
		want cty.Type
	}{
		{"number", cty.NumberIntVal(42), cty.Number},
		{"string", cty.StringVal("x"), cty.String},
		{"bool", cty.True, cty.Bool},
		{"unknown keeps type", cty.UnknownVal(cty.Number), cty.Number},
		{"null keeps type", cty.NullVal(cty.String), cty.String},
		{"list", cty.ListVal([]cty.Value{cty.StringVal("a")}), cty.List(cty.String)},
		{"object", cty.ObjectVal(map[string]cty.Value{"a": cty.True}), cty.Object(map[string]cty.Type{"a": cty.Bool})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, cfg)
			require.True(t, ok)
			assert.Equal(t, strategy.CtyType(tc.want), got)
			assert.Equal(t, strategy.CtyNamespace, got.Namespace())
		})
	}
}

func TestCtyStrategy_PointerValue(t *testing.T) {
	v := cty.NumberIntVal(1)
	got, ok := strategy.NewCtyStrategy().TryResolve(&v, config.DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, strategy.CtyType(cty.Number), got)

	var nilPtr *cty.Value
	_, ok = strategy.NewCtyStrategy().TryResolve(nilPtr, config.DefaultConfig())
	assert.False(t, ok)
}

func TestCtyStrategy_DistinctStructuralTypes(t *testing.T) {
	assert.NotEqual(t, strategy.CtyType(cty.List(cty.String)), strategy.CtyType(cty.List(cty.Number)))
	assert.Equal(t, "cty.List(cty.String)", strategy.CtyType(cty.List(cty.String)).String())
}

func TestCtyStrategy_DisabledByConfig(t *testing.T) {
	cfg := config.NewConfig(config.WithForeignTypes(false))
	_, ok := strategy.NewCtyStrategy().TryResolve(cty.StringVal("x"), cfg)
	assert.False(t, ok)
}

func TestCtyStrategy_IgnoresGoValues(t *testing.T) {
	s := strategy.NewCtyStrategy()
	for _, v := range []any{nil, 42, "x", cty.Number} {
		_, ok := s.TryResolve(v, config.DefaultConfig())
		assert.False(t, ok, "value %#v", v)
	}
}

func TestCtyType_NilType(t *testing.T) {
	assert.True(t, strategy.CtyType(cty.NilType).IsZero())
	_, ok := strategy.NewCtyStrategy().TryResolve(cty.NilVal, config.DefaultConfig())
	assert.False(t, ok)
}

func TestCtyType_NotAGoType(t *testing.T) {
	d := strategy.CtyType(cty.Number)
	assert.Nil(t, d.Type())
	assert.NotEqual(t, apis.Of[cty.Value](), d)
}
