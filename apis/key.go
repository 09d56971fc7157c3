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

import (
	"slices"
	"strings"
)

// Mode tells how a Key was formed.
type Mode uint8

const (
	// ModeArgs keys hold one descriptor per parameter of the implementation.
	ModeArgs Mode = iota
	// ModeReturn keys hold the intended type(s) of a zero-argument
	// implementation, e.g. get<int>().
	ModeReturn
)

// String returns "args" or "return".
func (m Mode) String() string {
	if m == ModeReturn {
		return "return"
	}
	return "args"
}

// Key is an ordered tuple of descriptors identifying one specialization.
// Keys are values; the descriptor slice is never shared with callers.
type Key struct {
	mode  Mode
	types []Descriptor
}

// Args returns an argument-driven key, one descriptor per parameter.
func Args(types ...Descriptor) Key {
	return Key{mode: ModeArgs, types: slices.Clone(types)}
}

// Returns returns a key for zero-argument implementations selected by an
// explicit type rather than by their arguments.
func Returns(types ...Descriptor) Key {
	return Key{mode: ModeReturn, types: slices.Clone(types)}
}

// Mode returns the key mode.
func (k Key) Mode() Mode { return k.mode }

// Len returns the number of descriptors.
func (k Key) Len() int { return len(k.types) }

// At returns the i-th descriptor.
func (k Key) At(i int) Descriptor { return k.types[i] }

// Types returns a copy of the descriptors.
func (k Key) Types() []Descriptor { return slices.Clone(k.types) }

// Equal reports whether k and o have the same mode and identical descriptors.
func (k Key) Equal(o Key) bool {
	return k.mode == o.mode && slices.Equal(k.types, o.types)
}

// HasZero reports whether any descriptor of k is the zero Descriptor.
func (k Key) HasZero() bool {
	return slices.ContainsFunc(k.types, Descriptor.IsZero)
}

// String renders argument keys as "(int, float64)" and return keys as "<int>".
func (k Key) String() string {
	var b strings.Builder
	open, closing := "(", ")"
	if k.mode == ModeReturn {
		open, closing = "<", ">"
	}
	b.WriteString(open)
	for i, d := range k.types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteString(closing)
	return b.String()
}
