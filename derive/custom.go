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
	"fmt"
	"reflect"
	"sync"

	"github.com/blinklabs-io/canonhash/canon"
)

// EncoderFunc encodes one field value into its slot
type EncoderFunc func(s *canon.Slot, v reflect.Value)

type customEncoder struct {
	// nil accepts any field type
	typ reflect.Type
	fn  EncoderFunc
}

var (
	customEncoders      = map[string]customEncoder{}
	customEncodersMutex sync.RWMutex
)

// RegisterEncoder makes fn available to struct fields tagged "with=name".
// Codecs look the name up when they are built, so an encoder must be
// registered before the first codec that uses it.
func RegisterEncoder(name string, fn EncoderFunc) error {
	return registerEncoder(name, customEncoder{fn: fn})
}

// RegisterEncoderFor is like RegisterEncoder, but the encoder receives the
// field as a T and codecs reject fields that are not assignable to T
func RegisterEncoderFor[T any](name string, fn func(s *canon.Slot, v T)) error {
	if fn == nil {
		return registerEncoder(name, customEncoder{})
	}
	return registerEncoder(
		name,
		customEncoder{
			typ: reflect.TypeFor[T](),
			fn: func(s *canon.Slot, v reflect.Value) {
				// a nil interface field yields the zero T
				tmp, _ := v.Interface().(T)
				fn(s, tmp)
			},
		},
	)
}

func registerEncoder(name string, enc customEncoder) error {
	if name == "" || enc.fn == nil {
		return fmt.Errorf("%w: encoder needs a name and a function", ErrInvalidOption)
	}
	customEncodersMutex.Lock()
	defer customEncodersMutex.Unlock()
	if _, ok := customEncoders[name]; ok {
		return fmt.Errorf("%w: %q", ErrEncoderExists, name)
	}
	customEncoders[name] = enc
	return nil
}

// customPlan returns the plan for a field of type t encoded by the named
// encoder. These plans belong to the field and are never cached by type.
func customPlan(name string, t reflect.Type) (*plan, error) {
	customEncodersMutex.RLock()
	enc, ok := customEncoders[name]
	customEncodersMutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoder, name)
	}
	if enc.typ != nil && !t.AssignableTo(enc.typ) {
		return nil, fmt.Errorf("%w: encoder %q takes %s, not %s", ErrTypeMismatch, name, enc.typ, t)
	}
	return &plan{enc: encoderFunc(enc.fn)}, nil
}
