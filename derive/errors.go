// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derive

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnorderedCollection = errors.New("map has no canonical order, use an ordered container")
	ErrPlatformWidth       = errors.New("platform-width integer, add the fixed64 option")
	ErrUnsupportedKind     = errors.New("kind has no canonical encoding")
	ErrInvalidOption       = errors.New("invalid digest tag option")
	ErrNotVariant          = errors.New("interface value does not implement Variant")
	ErrTypeMismatch        = errors.New("value does not match codec type")
	ErrUnsortableKey       = errors.New("map key kind has no natural order")
	ErrUnknownEncoder      = errors.New("no encoder registered under this name")
	ErrEncoderExists       = errors.New("an encoder is already registered under this name")
)

// TypeError reports a type, or a field of a struct type, that cannot be
// encoded
type TypeError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *TypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("derive: %s.%s: %s", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("derive: %s: %s", e.Type, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}
