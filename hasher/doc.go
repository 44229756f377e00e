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

// Package hasher provides the hash primitives that canonical encodings are
// fed into: fixed-output hashes selected by name, extendable-output
// functions (SHAKE, BLAKE2X, BLAKE3) and variable-output BLAKE2b.
//
// Every constructor returns a fresh, unshared state. The canonical encoder
// only needs the incremental write side; finalization is the caller's
// concern (hash.Hash.Sum, or reading from an XOF).
package hasher
