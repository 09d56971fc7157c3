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

package strategy

import (
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/tfx/apis"
)

// CtyNamespace is the foreign namespace of descriptors built from cty types.
const CtyNamespace = "cty"

// CtyType returns the descriptor of the cty type ty. Use it to register
// specializations that receive cty.Value arguments.
//
// Structural types are identified by their full GoString form, so
// cty.List(cty.String) and cty.List(cty.Number) are distinct descriptors.
func CtyType(ty cty.Type) apis.Descriptor {
	if ty == cty.NilType {
		return apis.Descriptor{}
	}
	return apis.Foreign(CtyNamespace, ty.GoString())
}

// NewCtyStrategy creates an apis.Strategy that describes cty.Value arguments
// by their cty type. It is inert when cfg.ForeignTypes is false.
func NewCtyStrategy() apis.Strategy {
	return ctyStrategy{}
}

// ctyStrategy dispatches dynamic HCL/cty values on their cty type rather
// than on the Go type cty.Value they all share.
type ctyStrategy struct{}

// Ensure ctyStrategy implements apis.Strategy.
var _ apis.Strategy = (*ctyStrategy)(nil)

// TryResolve handles cty.Value and *cty.Value.
func (ctyStrategy) TryResolve(v any, cfg apis.Config) (apis.Descriptor, bool) {
	if !cfg.ForeignTypes {
		return apis.Descriptor{}, false
	}
	switch val := v.(type) {
	case cty.Value:
		return describeCty(val)
	case *cty.Value:
		if val == nil {
			return apis.Descriptor{}, false
		}
		return describeCty(*val)
	default:
		return apis.Descriptor{}, false
	}
}

func describeCty(v cty.Value) (apis.Descriptor, bool) {
	d := CtyType(v.Type())
	return d, !d.IsZero()
}
