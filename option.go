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
	"github.com/blinklabs-io/canonhash/canon"
)

// Option is a value that may be absent
type Option[T Digestable] struct {
	value T
	ok    bool
}

// Some returns a populated Option
func Some[T Digestable](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option
func None[T Digestable]() Option[T] {
	return Option[T]{}
}

// OptionOf returns an Option populated with *p, or an empty one when p is
// nil
func OptionOf[T Digestable](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the contained value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Option[T]) IsSome() bool {
	return o.ok
}

func (o Option[T]) EncodeDigest(s *canon.Slot) {
	if !o.ok {
		s.Absent()
		return
	}
	s.Present().Encode(o.value)
}

// Result holds either a success value or a failure value
type Result[T, E Digestable] struct {
	value T
	err   E
	ok    bool
}

// Ok returns a successful Result
func Ok[T, E Digestable](v T) Result[T, E] {
	return Result[T, E]{value: v, ok: true}
}

// Err returns a failed Result
func Err[T, E Digestable](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// Value returns the success value and true, or the zero value and false
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// Failure returns the failure value and true, or the zero value and false
func (r Result[T, E]) Failure() (E, bool) {
	return r.err, !r.ok
}

func (r Result[T, E]) EncodeDigest(s *canon.Slot) {
	if r.ok {
		s.Ok().Encode(r.value)
		return
	}
	s.Err().Encode(r.err)
}
