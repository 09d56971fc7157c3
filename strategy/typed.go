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
	"reflect"

	"dirpx.dev/tfx/apis"
)

// NewTypedStrategy creates an apis.Strategy that uses apis.Typed.
func NewTypedStrategy() apis.Strategy {
	return &typedStrategy{}
}

// typedStrategy is a zero-cost fast path: if v implements apis.Typed and
// reports a non-zero descriptor, use it and stop the chain.
type typedStrategy struct{}

// Ensure typedStrategy implements apis.Strategy.
var _ apis.Strategy = (*typedStrategy)(nil)

// TryResolve checks if v implements apis.Typed and returns its DispatchType().
// Nil pointers are never asked: a value-receiver method would panic on them.
// They fall through and are described by their pointer type.
func (*typedStrategy) TryResolve(v any, _ apis.Config) (apis.Descriptor, bool) {
	if v == nil {
		return apis.Descriptor{}, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return apis.Descriptor{}, false
	}
	if t, ok := v.(apis.Typed); ok {
		if d := t.DispatchType(); !d.IsZero() {
			return d, true
		}
	}
	return apis.Descriptor{}, false
}
