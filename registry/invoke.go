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

package registry

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/tfx/apis"
	uref "dirpx.dev/tfx/utils/reflect"
)

// ErrArgumentType is returned when an argument cannot be assigned to the
// parameter of the matched implementation. With exact-type keys this only
// happens when an implementation was registered under a key that does not
// describe its parameters.
var ErrArgumentType = errors.New("tfx(registry): argument not assignable to parameter")

// entry is one registered specialization with its analyzed signature.
type entry struct {
	key  apis.Key
	impl any
	fn   reflect.Value
	sig  *uref.Signature
	// seq is the registration sequence number.
	seq uint64
}

// invoke calls the implementation with args.
//
// Result mapping:
//   - no results           -> nil
//   - one result           -> that value
//   - several results      -> []any in declaration order
//   - trailing error result -> returned as the error, never wrapped
func (e *entry) invoke(name string, args []any) (any, error) {
	if !e.sig.Accepts(len(args)) {
		return nil, &apis.ArityError{
			Name:     name,
			Key:      e.key,
			Want:     e.sig.MinArgs(),
			Got:      len(args),
			Variadic: e.sig.Variadic,
		}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		// Call rejects untyped nil arguments before dispatch.
		pt := e.sig.Param(i)
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("%w: %s%s: argument %d is %s, parameter is %s",
				ErrArgumentType, name, e.key, i, uref.TypeName(av.Type()), uref.TypeName(pt))
		}
		in[i] = av
	}

	return results(e.sig, e.fn.Call(in))
}

// results maps reflect call results according to the signature.
func results(sig *uref.Signature, out []reflect.Value) (any, error) {
	var err error
	if sig.ReturnsError {
		if ev := out[len(out)-1]; !ev.IsNil() {
			err = ev.Interface().(error)
		}
		out = out[:len(out)-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		vs := make([]any, len(out))
		for i, v := range out {
			vs[i] = v.Interface()
		}
		return vs, err
	}
}
