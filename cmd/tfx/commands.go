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

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/examples/templates"
)

// execute runs one validated command against reg.
func execute(outW io.Writer, reg apis.Registry, command string, args []string) error {
	var (
		out any
		err error
	)
	switch command {
	case "list":
		for _, e := range reg.Entries() {
			fmt.Fprintf(outW, "%s%s\n", e.Name, e.Key)
		}
		return nil
	case "get":
		d, ok := templates.TypeByName(args[0])
		if !ok {
			return &ExitError{Code: 2, Message: fmt.Sprintf("get: unknown type %q", args[0])}
		}
		out, err = reg.CallAs(templates.Get, d)
	case "call":
		var v any
		if v, err = parseArg(args[1]); err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		out, err = reg.Call(args[0], v)
	case "eval":
		var v cty.Value
		if v, err = parseValue(args[1]); err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		out, err = reg.Call(args[0], v)
	}
	if err != nil {
		if errors.Is(err, apis.ErrNotFound) || errors.Is(err, apis.ErrArity) {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		return err
	}
	fmt.Fprintln(outW, out)
	return nil
}

// parseValue evaluates src as a literal HCL expression.
func parseValue(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return v, nil
}

// parseArg evaluates src and converts the result to the Go value the
// bindings dispatch on. The bare identifier Foo yields templates.Foo{}.
func parseArg(src string) (any, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	if hcl.ExprAsKeyword(expr) == "Foo" {
		return templates.Foo{}, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return fromCty(v)
}

// fromCty converts primitive cty values: whole numbers to int, other
// numbers to float64.
func fromCty(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return nil, errors.New("value is null or unknown")
	}
	switch v.Type() {
	case cty.Number:
		if v.AsBigFloat().IsInt() {
			var i int
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return i, nil
			}
		}
		var f float64
		err := gocty.FromCtyValue(v, &f)
		return f, err
	case cty.String:
		var s string
		err := gocty.FromCtyValue(v, &s)
		return s, err
	case cty.Bool:
		var b bool
		err := gocty.FromCtyValue(v, &b)
		return b, err
	default:
		return nil, fmt.Errorf("unsupported value of type %s", v.Type().FriendlyName())
	}
}
