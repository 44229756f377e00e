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

// Package canonhash computes unambiguous digests of structured values.
//
// A value is first turned into a canonical byte stream (see package canon
// for the wire format) which is fed into a hash function. The body of each
// list, record or map is held in a pooled buffer until its count is known,
// so nested composites are copied once per level before reaching the hash.
// Two values produce the same stream only
// if they are the same value of the same shape, so a digest can be used as
// a commitment to the value itself rather than to some ad hoc
// serialization of it.
//
// Every digest is computed under a domain separation tag that names the
// purpose of the digest:
//
//	type Person struct {
//		Name     string
//		JobTitle string
//	}
//
//	func (p Person) EncodeDigest(s *canonhash.Slot) {
//		r := s.Record()
//		r.Field("name").Text(p.Name)
//		r.Field("job_title").Text(p.JobTitle)
//		r.Close()
//	}
//
//	sum := canonhash.Sum256("example", Person{"Alice", "cryptographer"})
//
// Types that do not want to write EncodeDigest by hand can use package
// derive, which builds the same encoding from struct definitions.
//
// Go maps have no canonical iteration order and are therefore never
// digestable; use OrderedMap or OrderedSet instead. Likewise int and uint
// are rejected because their width depends on the platform; convert
// explicitly with FromInt or FromUint.
package canonhash

import (
	"github.com/blinklabs-io/canonhash/canon"
)

// Digestable is implemented by every type that has a canonical encoding
type Digestable = canon.Digestable

// Slot is the place where exactly one value is encoded
type Slot = canon.Slot

// Func adapts an ordinary function to the Digestable interface
type Func = canon.Func
