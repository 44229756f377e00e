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

package main

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFlags(t *testing.T) {
	f := newEncodeFlags()
	require.NoError(t, f.flagset.Parse([]string{"-canonicalize", "-raw", "doc.cbor"}))
	assert.True(t, f.canonicalize)
	assert.True(t, f.raw)
	assert.Equal(t, []string{"doc.cbor"}, f.flagset.Args())
	// digest presentation flags belong to the cbor subcommand only
	for _, name := range []string{"format", "workers", "bech32-prefix"} {
		assert.Nil(t, f.flagset.Lookup(name), name)
	}
}

func TestFormatDigest(t *testing.T) {
	sum, err := hex.DecodeString(
		"e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2",
	)
	require.NoError(t, err)
	tests := []struct {
		format   string
		expected string
	}{
		{"hex", "e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2"},
		{"oci", "sha256:e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2"},
		{"cid", "bafkreihdiruqd4xngbmpwirspmd5l34ma46and5sitzh6xfhb7spr2mrwi"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			f := newCborFlags("cbor")
			f.format = tc.format
			out, err := formatDigest(f, hasher.SHA256, sum)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}

	f := newCborFlags("cbor")
	f.format = "oci"
	_, err = formatDigest(f, hasher.Blake2b256, sum)
	assert.Error(t, err)
	f.format = "yaml"
	_, err = formatDigest(f, hasher.SHA256, sum)
	assert.Error(t, err)
}
