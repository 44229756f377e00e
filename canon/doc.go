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

// Package canon implements the canonical byte encoding that is fed into
// hash functions.
//
// Every value starts with a single kind byte. The bytes that follow are
// fully determined by that kind, which makes each encoding self-delimiting
// and the concatenation of encodings unambiguous. Lengths and counts are
// 4-byte big-endian unsigned integers and always precede the content they
// describe.
//
//	value   ::= EMPTY
//	          | LIST    count value{count}
//	          | RECORD  count (name value){count}
//	          | ENUM    name record
//	          | MAP     count (key value){count}
//	          | LEAF    len byte{len}
//	          | TAGGED  len byte{len} value
//	          | FALSE | TRUE
//	          | ABSENT | PRESENT value
//	          | OK value | ERR value
//	          | UINTn byte{n/8} | INTn byte{n/8}
//
// Field and variant names are LEAF encodings of their UTF-8 text.
//
// # Slots
//
// A [Slot] is the place where exactly one value goes. Composite values are
// built through [List], [Record] and [Map], which hand out child slots.
// Opening the next child, or finalizing the parent, finalizes the previous
// child, and a slot that never received content emits EMPTY. Misuse (a
// second write to one slot, a write to a finalized slot) panics: such a
// digest would be meaningless, so the computation is aborted.
//
// A top-level encoding is produced by [Encode]: the domain separation tag
// is written first as a LEAF, followed by the value.
//
//	type Person struct {
//	    Name     string
//	    JobTitle string
//	}
//
//	func (p Person) EncodeDigest(s *canon.Slot) {
//	    r := s.Record()
//	    r.Field("name").Text(p.Name)
//	    r.Field("job_title").Text(p.JobTitle)
//	    r.Close()
//	}
//
// A Sink is never shared between concurrent encodes; independent encodes
// on independent sinks are safe to run in parallel.
package canon
