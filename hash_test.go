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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name     string
	JobTitle string
}

func (p person) EncodeDigest(s *canonhash.Slot) {
	r := s.Record()
	r.Field("name").Text(p.Name)
	r.Field("job_title").Text(p.JobTitle)
	r.Close()
}

var (
	alice = person{Name: "Alice", JobTitle: "cryptographer"}
	bob   = person{Name: "Bob", JobTitle: "research engineer"}
)

func TestGoldenDigests(t *testing.T) {
	tests := []struct {
		alg      hasher.Algorithm
		value    person
		expected string
	}{
		{hasher.SHA256, alice, "e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2"},
		{hasher.SHA256, bob, "c7ca7e1fef88c820f6132c2c6f2b52055832159fab52cade535eec9b16bf130a"},
		{hasher.Blake2b256, alice, "4c5bad95d69dbe21f24bf9dfd2b0af353d2c0d82c2e1301257b4fb1512fdd2f5"},
		{hasher.Blake2b256, bob, "4642b6f0e2cc09f218ad9fb0991b4e67043830a96b9f529664b18d7d1fbb60ee"},
		{hasher.SHA3_256, alice, "7aa0cdd221c1577e624e4f6119ffd18e7d276fe3da4bf798f4595ed5933173b9"},
	}
	for _, tc := range tests {
		t.Run(tc.alg.String()+"/"+tc.value.Name, func(t *testing.T) {
			sum, err := canonhash.Digest(tc.alg, "example", tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, hex.EncodeToString(sum))
		})
	}
}

func TestDigestUnknownAlgorithm(t *testing.T) {
	_, err := canonhash.Digest("md4", "example", alice)
	assert.ErrorIs(t, err, hasher.ErrUnknownAlgorithm)
}

func TestSum256(t *testing.T) {
	sum := canonhash.Sum256("example", alice)
	assert.Equal(
		t,
		"e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2",
		hex.EncodeToString(sum[:]),
	)
	assert.Equal(t, sum[:], canonhash.Hash(sha256.New(), "example", alice))
	assert.NotEqual(t, sum, canonhash.Sum256("other", alice))
}

func TestXOF(t *testing.T) {
	out := make([]byte, 64)
	require.NoError(
		t,
		canonhash.XOF(hasher.NewShake256(), "example", alice, out),
	)
	assert.Equal(
		t,
		"619ce9d23353749fbe113a5c14f2afb83b43d020cdc63549958e647a4deaa6e4"+
			"49732f6dad26c95e4fa1d5df84e622118a0ce4f3501ac298d62c903eac0d0ac8",
		hex.EncodeToString(out),
	)
}

func TestVOF(t *testing.T) {
	out, err := canonhash.VOF(63, "example", alice)
	require.NoError(t, err)
	assert.Equal(
		t,
		"a5ccc7135b8b779aa8dc373a357d6ad3cb2e277b81b443972566c99c9f79ee31"+
			"ae38483bcd2fbf457e15bac04e9f232225536559424f0bb6e17b8d4b272be3",
		hex.EncodeToString(out),
	)

	_, err = canonhash.VOF(0, "example", alice)
	assert.ErrorIs(t, err, hasher.ErrInvalidSize)
	_, err = canonhash.VOF(65, "example", alice)
	assert.ErrorIs(t, err, hasher.ErrInvalidSize)
}

func TestHashIter(t *testing.T) {
	assert.Equal(
		t,
		canonhash.Hash(sha256.New(), "people", canonhash.Tuple{alice, bob}),
		canonhash.HashIter(sha256.New(), "people", alice, bob),
	)
	assert.NotEqual(
		t,
		canonhash.HashIter(sha256.New(), "people", alice, bob),
		canonhash.HashIter(sha256.New(), "people", bob, alice),
	)
}

func TestContentDigest(t *testing.T) {
	d := canonhash.ContentDigest("example", alice)
	require.NoError(t, d.Validate())
	assert.Equal(
		t,
		"sha256:e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2",
		d.String(),
	)
}

func TestFingerprint256(t *testing.T) {
	fp := canonhash.Blake2b256("example", alice)
	assert.Equal(
		t,
		"4c5bad95d69dbe21f24bf9dfd2b0af353d2c0d82c2e1301257b4fb1512fdd2f5",
		fp.String(),
	)
	assert.Equal(
		t,
		"digest1f3d6m9wknklzrujtl80a9v90x57jcrvzctsnqyjhkna32yha6t6sxrx88r",
		fp.Bech32("digest"),
	)

	data, err := json.Marshal(fp)
	require.NoError(t, err)
	assert.Equal(t, `"`+fp.String()+`"`, string(data))

	var decoded canonhash.Fingerprint256
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fp, decoded)

	parsed, err := canonhash.ParseFingerprint256(fp.String())
	require.NoError(t, err)
	assert.Equal(t, fp, parsed)

	_, err = canonhash.ParseFingerprint256("abcd")
	assert.ErrorIs(t, err, canonhash.ErrInvalidFingerprint)
	_, err = canonhash.ParseFingerprint256("zz")
	assert.ErrorIs(t, err, canonhash.ErrInvalidFingerprint)
}

func TestFingerprintNestsAsBytes(t *testing.T) {
	fp := canonhash.Blake2b256("example", alice)
	assert.Equal(
		t,
		canonhash.EncodeToBytes("commit", canonhash.Bytes(fp.Bytes())),
		canonhash.EncodeToBytes("commit", fp),
	)
}
