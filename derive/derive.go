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

	"github.com/blinklabs-io/canonhash/canon"
	"github.com/jinzhu/copier"
)

// Tagger is implemented by structs that want a domain separation tag on
// their own record
type Tagger interface {
	DigestTag() string
}

// Variant is implemented by the concrete types stored in an interface
// field. The returned name identifies the variant within the union and must
// be stable.
type Variant interface {
	DigestVariant() string
}

// Codec encodes values of one Go type
type Codec struct {
	typ  reflect.Type
	plan *plan
}

// For returns the codec for t. It fails with a *TypeError if t, or any type
// reachable from it, has no canonical encoding.
func For(t reflect.Type) (*Codec, error) {
	p, err := planFor(t)
	if err != nil {
		return nil, err
	}
	return &Codec{typ: t, plan: p}, nil
}

// TypeFor returns the codec for T
func TypeFor[T any]() (*Codec, error) {
	return For(reflect.TypeFor[T]())
}

// Type returns the Go type handled by the codec
func (c *Codec) Type() reflect.Type {
	return c.typ
}

// Bind returns v as a Digestable. v must have the codec's type or be a
// non-nil pointer to it.
func (c *Codec) Bind(v any) (canon.Digestable, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, canon.ErrNilValue
	}
	if rv.Type() != c.typ {
		if rv.Kind() != reflect.Pointer || rv.Type().Elem() != c.typ {
			return nil, fmt.Errorf(
				"%w: got %s, want %s",
				ErrTypeMismatch,
				rv.Type(),
				c.typ,
			)
		}
		if rv.IsNil() {
			return nil, canon.ErrNilValue
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, canon.ErrNilValue
	}
	return &bound{plan: c.plan, value: rv}, nil
}

type bound struct {
	plan  *plan
	value reflect.Value
}

func (b *bound) EncodeDigest(s *canon.Slot) {
	b.plan.enc(s, b.value)
}

// Of returns v as a Digestable using the codec for its dynamic type
func Of(v any) (canon.Digestable, error) {
	if v == nil {
		return nil, canon.ErrNilValue
	}
	c, err := For(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return c.Bind(v)
}

// MustOf is like Of but panics on error
func MustOf(v any) canon.Digestable {
	d, err := Of(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Generic returns v as a Digestable derived from its type definition,
// bypassing any EncodeDigest method on v's own type. Fields keep using
// their own methods. v may be a pointer, which is dereferenced.
func Generic(v any) (canon.Digestable, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, canon.ErrNilValue
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, canon.ErrNilValue
		}
		rv = rv.Elem()
	}
	p, err := genericPlanFor(rv.Type())
	if err != nil {
		return nil, err
	}
	return &bound{plan: p, value: rv}, nil
}

// Project copies src into a new value of the view type V, matching fields
// by name, and returns the view as a Digestable. It commits to a chosen
// subset or shape of a larger structure without defining EncodeDigest on
// it.
func Project[V any](src any) (canon.Digestable, error) {
	var view V
	if err := copier.Copy(&view, src); err != nil {
		return nil, fmt.Errorf("derive: project %T: %w", src, err)
	}
	c, err := TypeFor[V]()
	if err != nil {
		return nil, err
	}
	return c.Bind(view)
}
