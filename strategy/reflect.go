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

// NewReflectStrategy creates an apis.Strategy that describes values by their
// dynamic Go type.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. Matching is by exact type
// identity: no pointer unwrapping, no interface widening.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// TryResolve returns the descriptor of v's dynamic type. A nil interface has
// no type and is not handled.
func (reflectStrategy) TryResolve(v any, _ apis.Config) (apis.Descriptor, bool) {
	if v == nil {
		return apis.Descriptor{}, false
	}
	return apis.TypeOf(reflect.TypeOf(v)), true
}
