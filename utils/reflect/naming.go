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
	"fmt"
	"path"
	"reflect"
	"sync"
)

// nameCache caches display names by reflect.Type.
var nameCache sync.Map // key: reflect.Type, val: string

// TypeName returns a stable display name for t.
//
// Naming policy:
//   - named types   -> "pkg.Type" (last package path element; generic
//     instantiation arguments are kept as reflect prints them)
//   - builtin types -> "int", "string", ...
//   - ptr/slice/array/map/chan -> the element names with Go syntax prefixes
//   - anything else (func, struct and interface literals) -> t.String()
//
// A nil t yields "<nil>".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := nameCache.Load(t); ok {
		return v.(string)
	}
	name := typeName(t)
	nameCache.Store(t, name)
	return name
}

func typeName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		if p := t.PkgPath(); p != "" {
			return path.Base(p) + "." + n
		}
		return n
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeName(t.Elem()))
	case reflect.Map:
		return "map[" + typeName(t.Key()) + "]" + typeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + typeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + typeName(t.Elem())
		default:
			return "chan " + typeName(t.Elem())
		}
	default:
		return t.String()
	}
}
