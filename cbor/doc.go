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

// Package cbor bridges CBOR data into canonical digests.
//
// CBOR has its own deterministic form (RFC 8949 core deterministic
// encoding). A CBOR document in that form is committed to as an opaque byte
// string under the "cbor" value tag, so a CBOR payload can never collide
// with a native value that happens to share its bytes:
//
//	doc, err := cbor.Canonical(payload)
//	if err != nil {
//		return err
//	}
//	sum := canonhash.Sum256("example", doc)
//
// Raw accepts bytes that were encoded elsewhere, but only if they are
// well-formed and already deterministic; re-encoding them would silently
// commit to something other than what the caller holds.
package cbor
