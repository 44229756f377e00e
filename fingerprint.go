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
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/canonhash/canon"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const Fingerprint256Size = 32

var ErrInvalidFingerprint = errors.New("canonhash: invalid fingerprint")

// Fingerprint256 is a 256-bit digest
type Fingerprint256 [Fingerprint256Size]byte

func NewFingerprint256(data []byte) Fingerprint256 {
	f := Fingerprint256{}
	copy(f[:], data)
	return f
}

// ParseFingerprint256 decodes a hex encoded fingerprint
func ParseFingerprint256(s string) (Fingerprint256, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint256{}, fmt.Errorf("%w: %w", ErrInvalidFingerprint, err)
	}
	if len(data) != Fingerprint256Size {
		return Fingerprint256{}, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidFingerprint,
			Fingerprint256Size,
			len(data),
		)
	}
	return NewFingerprint256(data), nil
}

func (f Fingerprint256) String() string {
	return hex.EncodeToString(f[:])
}

func (f Fingerprint256) Bytes() []byte {
	return f[:]
}

func (f Fingerprint256) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Fingerprint256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tmp, err := ParseFingerprint256(s)
	if err != nil {
		return err
	}
	*f = tmp
	return nil
}

// Bech32 renders the fingerprint as a bech32 string with the given
// human-readable prefix
func (f Fingerprint256) Bech32(prefix string) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(f[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// EncodeDigest lets a fingerprint be committed to inside another value
func (f Fingerprint256) EncodeDigest(s *canon.Slot) {
	s.Bytes(f[:])
}
