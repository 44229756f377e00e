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
	"cmp"
	"reflect"
	"slices"

	"github.com/blinklabs-io/canonhash/canon"
)

// keyCompare returns the natural order of a map key kind, or nil when the
// kind has none
func keyCompare(t reflect.Type) func(a, b reflect.Value) int {
	switch t.Kind() {
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }
	default:
		return nil
	}
}

// sortedMapPlan encodes a map as MAP with its entries in ascending key
// order. A nil map encodes like an empty one.
func (b *builder) sortedMapPlan(t reflect.Type, fixed64 bool) (*plan, error) {
	if t.Kind() != reflect.Map {
		return nil, ErrInvalidOption
	}
	compare := keyCompare(t.Key())
	if compare == nil {
		return nil, &TypeError{Type: t, Err: ErrUnsortableKey}
	}
	keyPlan, err := b.typePlan(t.Key(), fixed64 && allowsFixed64(t.Key()))
	if err != nil {
		return nil, err
	}
	valuePlan, err := b.typePlan(t.Elem(), fixed64 && allowsFixed64(t.Elem()))
	if err != nil {
		return nil, err
	}
	return &plan{
		enc: func(s *canon.Slot, v reflect.Value) {
			keys := v.MapKeys()
			slices.SortFunc(keys, compare)
			m := s.Map()
			for _, k := range keys {
				keyPlan.enc(m.Key(), k)
				valuePlan.enc(m.Value(), v.MapIndex(k))
			}
			m.Close()
		},
	}, nil
}
