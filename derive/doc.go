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

// Package derive builds canonical encodings from Go type definitions
// instead of hand-written EncodeDigest methods.
//
// A struct is encoded as a record whose fields appear in declaration order.
// Only exported fields take part. The struct tag "digest" controls each
// field:
//
//	type Order struct {
//		ID       uint64            `digest:"id"`
//		Customer string            `digest:"customer"`
//		Note     *string           `digest:"note,optional"`
//		Lines    []Line            `digest:"lines"`
//		Count    int               `digest:"count,fixed64"`
//		Labels   map[string]string `digest:"labels,sorted"`
//		Amount   *big.Int          `digest:"amount,with=bigint"`
//		cache    []byte
//		Scratch  string            `digest:"-"`
//	}
//
// The first tag element renames the field (the Go field name is used when
// it is empty). "-" leaves the field out. "optional" encodes a nil pointer,
// slice, map or interface as an absent value and anything else as a
// present one. "fixed64" opts an int, uint or uintptr field into a 64-bit
// encoding.
//
// "sorted" lets a map field through: its entries are encoded as a map in
// ascending key order, which needs a string or integer key kind
// (ErrUnsortableKey otherwise). A nil map encodes like an empty one.
//
// "with=name" hands the field to an encoder registered under name with
// RegisterEncoder or RegisterEncoderFor:
//
//	derive.RegisterEncoderFor("bigint", func(s *canon.Slot, v *big.Int) {
//		s.Text(v.String())
//	})
//
// Types that implement canon.Digestable are always encoded by their own
// method. A struct implementing Tagger gets a record-level domain tag.
// Interface values are encoded as tagged unions: the dynamic value must
// implement Variant, whose name selects the variant, and its fields become
// the variant's fields.
//
// Types without a canonical encoding are rejected when the codec is built,
// not when a value is hashed: maps without sorted (ErrUnorderedCollection),
// int, uint and uintptr without fixed64 (ErrPlatformWidth) and floats,
// complex numbers, channels, functions and unsafe pointers
// (ErrUnsupportedKind).
//
// Interface fields are the exception. Their dynamic type is only known
// when a value is encoded, so a dynamic value that is not Digestable or a
// Variant, or whose type would be rejected, panics with a *TypeError during
// encoding. Bytes written before the panic are left in the sink, so the
// output of an aborted encode must be discarded.
//
// Codecs are cached per type and safe for concurrent use.
package derive
