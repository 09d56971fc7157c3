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

// Resolver derives dispatch descriptors from call arguments.
// Typical chain: TypedStrategy -> CtyStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns the descriptor of v, or false if none can be determined.
	Resolve(v any, cfg Config) (Descriptor, bool)

	// Key returns the argument key for args, one descriptor per argument.
	Key(args []any, cfg Config) (Key, error)
}
