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

package canonhash_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultihash(t *testing.T) {
	mh, err := canonhash.Multihash(hasher.SHA256, "example", alice)
	require.NoError(t, err)
	assert.Equal(
		t,
		"1220e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2",
		hex.EncodeToString(mh),
	)

	mh, err = canonhash.Multihash(hasher.Blake2b256, "example", alice)
	require.NoError(t, err)
	decoded, err := multihash.Decode(mh)
	require.NoError(t, err)
	assert.Equal(t, "blake2b-256", decoded.Name)
	assert.Equal(
		t,
		"4c5bad95d69dbe21f24bf9dfd2b0af353d2c0d82c2e1301257b4fb1512fdd2f5",
		hex.EncodeToString(decoded.Digest),
	)

	_, err = canonhash.Multihash("md5", "example", alice)
	assert.ErrorIs(t, err, hasher.ErrUnknownAlgorithm)

	_, err = canonhash.MultihashFromDigest("md5", make([]byte, 16))
	assert.ErrorIs(t, err, hasher.ErrUnknownAlgorithm)
}

func TestContentID(t *testing.T) {
	c, err := canonhash.ContentID(hasher.SHA256, "example", alice)
	require.NoError(t, err)
	assert.Equal(
		t,
		"bafkreihdiruqd4xngbmpwirspmd5l34ma46and5sitzh6xfhb7spr2mrwi",
		c.String(),
	)
}
