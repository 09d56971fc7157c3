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

package reflect

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotFunc indicates that the provided type is not a func type.
	ErrReflectNotFunc = errors.New("reflect: type is not a func")
)

// errorType is the reflect.Type of the error interface.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// sigCache caches analyzed signatures by func type.
var sigCache sync.Map // key: reflect.Type, val: *Signature

// Signature describes the call shape of a Go func type.
// Signatures are shared through a cache and must not be mutated.
type Signature struct {
	// In holds the declared parameter types. For variadic funcs the last
	// element is the slice type.
	In []reflect.Type
	// Out holds the result types, without a trailing error.
	Out []reflect.Type
	// Variadic is true when the last parameter is ...T.
	Variadic bool
	// ReturnsError is true when the last result is error.
	ReturnsError bool
}

// SignatureOf analyzes the func type t. Results are memoized.
func SignatureOf(t reflect.Type) (*Signature, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() != reflect.Func {
		return nil, ErrReflectNotFunc
	}
	if v, ok := sigCache.Load(t); ok {
		return v.(*Signature), nil
	}

	sig := &Signature{
		In:       make([]reflect.Type, t.NumIn()),
		Variadic: t.IsVariadic(),
	}
	for i := range sig.In {
		sig.In[i] = t.In(i)
	}
	nout := t.NumOut()
	if nout > 0 && t.Out(nout-1) == errorType {
		sig.ReturnsError = true
		nout--
	}
	sig.Out = make([]reflect.Type, nout)
	for i := range sig.Out {
		sig.Out[i] = t.Out(i)
	}

	v, _ := sigCache.LoadOrStore(t, sig)
	return v.(*Signature), nil
}

// MinArgs returns the smallest accepted argument count.
func (s *Signature) MinArgs() int {
	if s.Variadic {
		return len(s.In) - 1
	}
	return len(s.In)
}

// Accepts reports whether a call with n arguments fits the signature.
func (s *Signature) Accepts(n int) bool {
	if s.Variadic {
		return n >= len(s.In)-1
	}
	return n == len(s.In)
}

// Param returns the type the i-th argument is assigned to. For variadic
// funcs every position past the fixed parameters maps to the element type.
func (s *Signature) Param(i int) reflect.Type {
	if s.Variadic && i >= len(s.In)-1 {
		return s.In[len(s.In)-1].Elem()
	}
	return s.In[i]
}
