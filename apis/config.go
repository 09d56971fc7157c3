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

// Config carries read-only dispatch knobs shared by registries and resolvers.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// WarnOnReplace controls whether overwriting an existing specialization
	// is reported through the registry logger. The overwrite always happens.
	WarnOnReplace bool

	// ForeignTypes enables descriptor derivation for values of foreign type
	// systems (cty.Value). If false, such values are described by their Go type.
	ForeignTypes bool

	// MaxArity limits the number of descriptors in a registration key.
	// Acts as a safety guard against pathological keys.
	MaxArity int
}
