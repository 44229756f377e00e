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
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"github.com/blinklabs-io/canonhash/canon"
	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/opencontainers/go-digest"
)

// Encode writes the canonical encoding of d under tag to w
func Encode(w io.Writer, tag string, d Digestable) error {
	return canon.Encode(w, tag, d)
}

// EncodeToBytes returns the canonical encoding of d under tag
func EncodeToBytes(tag string, d Digestable) []byte {
	return canon.EncodeToBytes(tag, d)
}

// encodeInto feeds the encoding of d to a hash state, which never fails
func encodeInto(w io.Writer, tag string, d Digestable) {
	if err := canon.Encode(w, tag, d); err != nil {
		panic(
			fmt.Sprintf("unexpected error writing to hash state: %s", err),
		)
	}
}

// Hash feeds the encoding of d under tag into h and returns the digest.
// h should be freshly reset.
func Hash(h hash.Hash, tag string, d Digestable) []byte {
	encodeInto(h, tag, d)
	return h.Sum(nil)
}

// HashIter digests a sequence of values under tag. The result equals the
// digest of the same values wrapped in a Tuple.
func HashIter(h hash.Hash, tag string, ds ...Digestable) []byte {
	return Hash(h, tag, Tuple(ds))
}

// Digest computes the digest of d under tag with the named algorithm
func Digest(alg hasher.Algorithm, tag string, d Digestable) ([]byte, error) {
	h, err := hasher.New(alg)
	if err != nil {
		return nil, err
	}
	return Hash(h, tag, d), nil
}

// XOF feeds the encoding of d under tag into the extendable-output function
// x and fills out with its output
func XOF(x hasher.XOF, tag string, d Digestable, out []byte) error {
	encodeInto(x, tag, d)
	if _, err := io.ReadFull(x, out); err != nil {
		return fmt.Errorf("read xof output: %w", err)
	}
	return nil
}

// VOF returns a variable-length BLAKE2b digest of size bytes
func VOF(size int, tag string, d Digestable) ([]byte, error) {
	h, err := hasher.NewBlake2b(size)
	if err != nil {
		return nil, err
	}
	return Hash(h, tag, d), nil
}

// Sum256 returns the SHA-256 digest of d under tag
func Sum256(tag string, d Digestable) [sha256.Size]byte {
	var ret [sha256.Size]byte
	copy(ret[:], Hash(sha256.New(), tag, d))
	return ret
}

// Blake2b256 returns the BLAKE2b-256 digest of d under tag
func Blake2b256(tag string, d Digestable) Fingerprint256 {
	return NewFingerprint256(Hash(hasher.MustNew(hasher.Blake2b256), tag, d))
}

// ContentDigest returns the SHA-256 digest of d under tag in the
// "sha256:<hex>" content-addressing form
func ContentDigest(tag string, d Digestable) digest.Digest {
	digester := digest.Canonical.Digester()
	encodeInto(digester.Hash(), tag, d)
	return digester.Digest()
}
