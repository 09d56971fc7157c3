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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched (errors.Is) by every *NotFoundError.
	ErrNotFound = errors.New("tfx: no matching specialization")
	// ErrArity is matched (errors.Is) by every *ArityError.
	ErrArity = errors.New("tfx: argument count mismatch")
)

// NotFoundError reports that no implementation is registered under Key for
// the function Name (or that the function itself does not exist).
type NotFoundError struct {
	Name string
	Key  Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tfx: %s%s: no matching specialization", e.Name, e.Key)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ArityError reports that the implementation matched for Key cannot accept
// Got arguments. Want is the declared parameter count; for variadic
// implementations it is the minimum.
type ArityError struct {
	Name     string
	Key      Key
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	want := fmt.Sprint(e.Want)
	if e.Variadic {
		want = "at least " + want
	}
	return fmt.Sprintf("tfx: %s%s: implementation takes %s arguments, got %d", e.Name, e.Key, want, e.Got)
}

// Unwrap returns ErrArity.
func (e *ArityError) Unwrap() error { return ErrArity }
