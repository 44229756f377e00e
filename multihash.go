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
	"fmt"

	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

var multihashCodes = map[hasher.Algorithm]uint64{
	hasher.SHA256:     multihash.SHA2_256,
	hasher.SHA512:     multihash.SHA2_512,
	hasher.SHA3_256:   multihash.SHA3_256,
	hasher.SHA3_512:   multihash.SHA3_512,
	hasher.Blake2b256: multihash.BLAKE2B_MIN + 31,
	hasher.Blake2b512: multihash.BLAKE2B_MAX,
	hasher.Blake3:     multihash.BLAKE3,
}

// Multihash returns the digest of d under tag as a self-describing
// multihash
func Multihash(
	alg hasher.Algorithm,
	tag string,
	d Digestable,
) (multihash.Multihash, error) {
	sum, err := Digest(alg, tag, d)
	if err != nil {
		return nil, err
	}
	return MultihashFromDigest(alg, sum)
}

// MultihashFromDigest wraps a digest already computed with alg
func MultihashFromDigest(alg hasher.Algorithm, sum []byte) (multihash.Multihash, error) {
	code, ok := multihashCodes[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", hasher.ErrUnknownAlgorithm, string(alg))
	}
	return multihash.Encode(sum, code)
}

// ContentID returns a CIDv1 with the raw codec addressing the canonical
// encoding of d under tag
func ContentID(alg hasher.Algorithm, tag string, d Digestable) (cid.Cid, error) {
	mh, err := Multihash(alg, tag, d)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
