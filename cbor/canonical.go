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

package cbor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/blinklabs-io/canonhash/canon"
	_cbor "github.com/fxamacker/cbor/v2"
)

// ValueTag is the domain tag placed on every CBOR document in a digest
const ValueTag = "cbor"

var (
	ErrMalformed    = errors.New("cbor: malformed data")
	ErrNotCanonical = errors.New("cbor: data is not in core deterministic form")
)

// Document is a CBOR data item in core deterministic form
type Document struct {
	data []byte
}

// Canonical encodes v as deterministic CBOR and returns it as a Document
func Canonical(v any) (Document, error) {
	data, err := Encode(v)
	if err != nil {
		return Document{}, fmt.Errorf("cbor: encode %T: %w", v, err)
	}
	return Document{data: data}, nil
}

// Raw wraps pre-encoded CBOR. The data must be exactly one well-formed data
// item that re-encodes to the same bytes.
func Raw(data []byte) (Document, error) {
	if err := _cbor.Wellformed(data); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	// the strict decoder rejects indefinite lengths and duplicate keys
	var v any
	if _, err := Decode(data, &v); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrNotCanonical, err)
	}
	reencoded, err := Encode(v)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrNotCanonical, err)
	}
	if !bytes.Equal(data, reencoded) {
		return Document{}, ErrNotCanonical
	}
	return Document{data: bytes.Clone(data)}, nil
}

// Bytes returns the CBOR encoding
func (d Document) Bytes() []byte {
	return d.data
}

// String returns the document in CBOR diagnostic notation
func (d Document) String() string {
	ret, err := _cbor.Diagnose(d.data)
	if err != nil {
		return fmt.Sprintf("<invalid cbor: %s>", err)
	}
	return ret
}

func (d Document) EncodeDigest(s *canon.Slot) {
	s.Tagged([]byte(ValueTag)).Bytes(d.data)
}
