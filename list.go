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

package canonhash

import (
	"iter"

	"github.com/blinklabs-io/canonhash/canon"
)

// List is a homogeneous sequence
type List[T Digestable] []T

func (l List[T]) EncodeDigest(s *canon.Slot) {
	enc := s.List()
	for _, v := range l {
		enc.Item().Encode(v)
	}
	enc.Close()
}

// Seq is a sequence produced by an iterator. The iterator is consumed on
// every encode, so it must yield the same elements each time.
type Seq[T Digestable] iter.Seq[T]

func (seq Seq[T]) EncodeDigest(s *canon.Slot) {
	enc := s.List()
	for v := range seq {
		enc.Item().Encode(v)
	}
	enc.Close()
}

// Tuple is a fixed-length sequence of values of different types. It is
// framed exactly like a List.
type Tuple []Digestable

func (t Tuple) EncodeDigest(s *canon.Slot) {
	enc := s.List()
	for _, v := range t {
		enc.Item().Encode(v)
	}
	enc.Close()
}

// Unit is a value with no content. It encodes as an empty sequence.
type Unit struct{}

func (Unit) EncodeDigest(s *canon.Slot) {
	s.List().Close()
}

type inlineField struct {
	name  string
	value Digestable
}

// InlineRecord is a record assembled at the call site, for digesting data
// that has no dedicated type
type InlineRecord struct {
	tag    string
	hasTag bool
	fields []inlineField
}

// Inline starts an empty InlineRecord
func Inline() *InlineRecord {
	return &InlineRecord{}
}

// Field appends a field. Fields are encoded in the order they are added.
func (r *InlineRecord) Field(name string, value Digestable) *InlineRecord {
	r.fields = append(r.fields, inlineField{name: name, value: value})
	return r
}

// Tag sets a domain separation tag for the record
func (r *InlineRecord) Tag(tag string) *InlineRecord {
	r.tag = tag
	r.hasTag = true
	return r
}

func (r *InlineRecord) EncodeDigest(s *canon.Slot) {
	if r == nil {
		panic(canon.ErrNilValue)
	}
	enc := s.Record()
	if r.hasTag {
		enc.SetTag([]byte(r.tag))
	}
	for _, f := range r.fields {
		enc.Field(f.name).Encode(f.value)
	}
	enc.Close()
}
