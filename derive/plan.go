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
	"reflect"
	"sync"

	"github.com/blinklabs-io/canonhash/canon"
)

type encoderFunc func(s *canon.Slot, v reflect.Value)

type fieldsFunc func(r *canon.Record, v reflect.Value)

// plan is the compiled encoder for one type. Plans reference each other by
// pointer, so a recursive type can use its own plan before it is complete.
type plan struct {
	enc encoderFunc
	// set for struct types, used to fill the record of a tagged union
	fields fieldsFunc
}

var (
	digestableType = reflect.TypeFor[canon.Digestable]()
	taggerType     = reflect.TypeFor[Tagger]()
)

var (
	planCache        = map[reflect.Type]*plan{}
	genericPlanCache = map[reflect.Type]*plan{}
	planCacheMutex   sync.RWMutex
)

func lookupPlan(cache map[reflect.Type]*plan, t reflect.Type) *plan {
	planCacheMutex.RLock()
	defer planCacheMutex.RUnlock()
	return cache[t]
}

// planFor returns the cached plan for t, building it if necessary
func planFor(t reflect.Type) (*plan, error) {
	if p := lookupPlan(planCache, t); p != nil {
		return p, nil
	}
	b := newBuilder()
	p, err := b.typePlan(t, false)
	if err != nil {
		return nil, err
	}
	b.commit()
	return p, nil
}

// genericPlanFor is like planFor but ignores an EncodeDigest method on t
// itself
func genericPlanFor(t reflect.Type) (*plan, error) {
	if p := lookupPlan(genericPlanCache, t); p != nil {
		return p, nil
	}
	b := newBuilder()
	p := &plan{}
	if err := b.fill(p, t, false, true); err != nil {
		return nil, err
	}
	b.commit()
	planCacheMutex.Lock()
	genericPlanCache[t] = p
	planCacheMutex.Unlock()
	return p, nil
}

type builder struct {
	building map[reflect.Type]*plan
}

func newBuilder() *builder {
	return &builder{building: map[reflect.Type]*plan{}}
}

// commit publishes every plan built by b
func (b *builder) commit() {
	planCacheMutex.Lock()
	defer planCacheMutex.Unlock()
	for t, p := range b.building {
		if _, ok := planCache[t]; !ok {
			planCache[t] = p
		}
	}
}

func (b *builder) typePlan(t reflect.Type, fixed64 bool) (*plan, error) {
	if fixed64 {
		// fixed64 plans depend on the field, not only the type
		p := &plan{}
		if err := b.fill(p, t, true, false); err != nil {
			return nil, err
		}
		return p, nil
	}
	if p := lookupPlan(planCache, t); p != nil {
		return p, nil
	}
	if p, ok := b.building[t]; ok {
		return p, nil
	}
	p := &plan{}
	b.building[t] = p
	if err := b.fill(p, t, false, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) fill(p *plan, t reflect.Type, fixed64, skipSelf bool) error {
	if !skipSelf {
		if t.Implements(digestableType) {
			p.enc = encodeDigestable
			return nil
		}
		if t.Kind() != reflect.Pointer &&
			reflect.PointerTo(t).Implements(digestableType) {
			p.enc = encodeAddrDigestable
			return nil
		}
	}
	switch t.Kind() {
	case reflect.Bool:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Bool(v.Bool()) }
	case reflect.Uint8:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Uint8(uint8(v.Uint())) }
	case reflect.Uint16:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Uint16(uint16(v.Uint())) }
	case reflect.Uint32:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Uint32(uint32(v.Uint())) }
	case reflect.Uint64:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Uint64(v.Uint()) }
	case reflect.Int8:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Int8(int8(v.Int())) }
	case reflect.Int16:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Int16(int16(v.Int())) }
	case reflect.Int32:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Int32(int32(v.Int())) }
	case reflect.Int64:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Int64(v.Int()) }
	case reflect.Int:
		if !fixed64 {
			return &TypeError{Type: t, Err: ErrPlatformWidth}
		}
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Int64(v.Int()) }
	case reflect.Uint, reflect.Uintptr:
		if !fixed64 {
			return &TypeError{Type: t, Err: ErrPlatformWidth}
		}
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Uint64(v.Uint()) }
	case reflect.String:
		p.enc = func(s *canon.Slot, v reflect.Value) { s.Text(v.String()) }
	case reflect.Slice:
		if isByteElem(t.Elem()) {
			p.enc = func(s *canon.Slot, v reflect.Value) { s.Bytes(v.Bytes()) }
			return nil
		}
		elem, err := b.typePlan(t.Elem(), fixed64)
		if err != nil {
			return err
		}
		p.enc = func(s *canon.Slot, v reflect.Value) { encodeList(s, elem, v) }
	case reflect.Array:
		if isByteElem(t.Elem()) {
			p.enc = encodeByteArray
			return nil
		}
		elem, err := b.typePlan(t.Elem(), fixed64)
		if err != nil {
			return err
		}
		p.enc = func(s *canon.Slot, v reflect.Value) { encodeList(s, elem, v) }
	case reflect.Pointer:
		elem, err := b.typePlan(t.Elem(), fixed64)
		if err != nil {
			return err
		}
		p.enc = func(s *canon.Slot, v reflect.Value) {
			if v.IsNil() {
				panic(canon.ErrNilValue)
			}
			elem.enc(s, v.Elem())
		}
	case reflect.Interface:
		p.enc = encodeInterface
	case reflect.Struct:
		return b.fillStruct(p, t)
	case reflect.Map:
		return &TypeError{Type: t, Err: ErrUnorderedCollection}
	default:
		return &TypeError{Type: t, Err: ErrUnsupportedKind}
	}
	return nil
}

type fieldPlan struct {
	index    int
	name     string
	optional bool
	plan     *plan
}

func (b *builder) fillStruct(p *plan, t reflect.Type) error {
	var fields []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		opts, err := parseFieldTag(field)
		if err != nil {
			return &TypeError{Type: t, Field: field.Name, Err: err}
		}
		if opts.skip {
			continue
		}
		fieldType := field.Type
		if opts.optional {
			switch fieldType.Kind() {
			case reflect.Pointer:
				fieldType = fieldType.Elem()
			case reflect.Slice, reflect.Interface, reflect.Map:
			default:
				return &TypeError{Type: t, Field: field.Name, Err: ErrInvalidOption}
			}
		}
		if opts.fixed64 && !allowsFixed64(fieldType) {
			return &TypeError{Type: t, Field: field.Name, Err: ErrInvalidOption}
		}
		var fp *plan
		switch {
		case opts.with != "":
			fp, err = customPlan(opts.with, fieldType)
		case opts.sorted:
			fp, err = b.sortedMapPlan(fieldType, opts.fixed64)
		default:
			fp, err = b.typePlan(fieldType, opts.fixed64)
		}
		if err != nil {
			return &TypeError{Type: t, Field: field.Name, Err: err}
		}
		fields = append(
			fields,
			fieldPlan{
				index:    i,
				name:     opts.name,
				optional: opts.optional,
				plan:     fp,
			},
		)
	}
	tagged := t.Implements(taggerType) ||
		reflect.PointerTo(t).Implements(taggerType)
	p.fields = func(r *canon.Record, v reflect.Value) {
		if tagged {
			r.SetTag([]byte(addressable(v).Interface().(Tagger).DigestTag()))
		}
		for _, f := range fields {
			f.encode(r, v)
		}
	}
	p.enc = func(s *canon.Slot, v reflect.Value) {
		r := s.Record()
		p.fields(r, v)
		r.Close()
	}
	return nil
}

func (f fieldPlan) encode(r *canon.Record, v reflect.Value) {
	fv := v.Field(f.index)
	s := r.Field(f.name)
	if f.optional {
		if fv.IsNil() {
			s.Absent()
			return
		}
		s = s.Present()
		if fv.Kind() == reflect.Pointer {
			fv = fv.Elem()
		}
	}
	f.plan.enc(s, fv)
}

func isByteElem(t reflect.Type) bool {
	return t.Kind() == reflect.Uint8 &&
		!t.Implements(digestableType) &&
		!reflect.PointerTo(t).Implements(digestableType)
}

// allowsFixed64 reports whether t is a platform-width integer, possibly
// behind pointers, slices, arrays or on either side of a map
func allowsFixed64(t reflect.Type) bool {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Map:
			return allowsFixed64(t.Key()) || allowsFixed64(t.Elem())
		case reflect.Int, reflect.Uint, reflect.Uintptr:
			return true
		default:
			return false
		}
	}
}

// addressable returns a pointer to v, copying v if it is not addressable,
// so methods with pointer receivers can be called
func addressable(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		return v
	}
	if v.CanAddr() {
		return v.Addr()
	}
	tmp := reflect.New(v.Type())
	tmp.Elem().Set(v)
	return tmp
}

func encodeDigestable(s *canon.Slot, v reflect.Value) {
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) &&
		v.IsNil() {
		panic(canon.ErrNilValue)
	}
	s.Encode(v.Interface().(canon.Digestable))
}

func encodeAddrDigestable(s *canon.Slot, v reflect.Value) {
	s.Encode(addressable(v).Interface().(canon.Digestable))
}

func encodeList(s *canon.Slot, elem *plan, v reflect.Value) {
	l := s.List()
	for i := 0; i < v.Len(); i++ {
		elem.enc(l.Item(), v.Index(i))
	}
	l.Close()
}

func encodeByteArray(s *canon.Slot, v reflect.Value) {
	buf := make([]byte, v.Len())
	for i := range buf {
		buf[i] = byte(v.Index(i).Uint())
	}
	s.Bytes(buf)
}

// encodeInterface encodes the dynamic value of an interface as a tagged
// union variant
func encodeInterface(s *canon.Slot, v reflect.Value) {
	if v.IsNil() {
		panic(canon.ErrNilValue)
	}
	e := v.Elem()
	if d, ok := e.Interface().(canon.Digestable); ok {
		encodeDigestable(s, reflect.ValueOf(d))
		return
	}
	vr, ok := e.Interface().(Variant)
	if !ok {
		panic(&TypeError{Type: e.Type(), Err: ErrNotVariant})
	}
	for e.Kind() == reflect.Pointer {
		if e.IsNil() {
			panic(canon.ErrNilValue)
		}
		e = e.Elem()
	}
	p, err := planFor(e.Type())
	if err != nil {
		panic(err)
	}
	r := s.Enum(vr.DigestVariant())
	if p.fields != nil {
		p.fields(r, e)
	} else {
		p.enc(r.Field("0"), e)
	}
	r.Close()
}
