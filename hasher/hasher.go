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

package hasher

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"slices"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var (
	ErrUnknownAlgorithm = errors.New("hasher: unknown algorithm")
	ErrInvalidSize      = errors.New("hasher: invalid output size")
)

// Algorithm names a fixed-output hash function
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	Blake2b256 Algorithm = "blake2b-256"
	Blake2b512 Algorithm = "blake2b-512"
	Blake3     Algorithm = "blake3"
)

// DefaultAlgorithm is used when no algorithm is configured
const DefaultAlgorithm = SHA256

type algorithmInfo struct {
	size int
	new  func() hash.Hash
}

var algorithms = map[Algorithm]algorithmInfo{
	SHA256:   {size: sha256.Size, new: sha256.New},
	SHA512:   {size: sha512.Size, new: sha512.New},
	SHA3_256: {size: 32, new: sha3.New256},
	SHA3_512: {size: 64, new: sha3.New512},
	Blake2b256: {
		size: blake2b.Size256,
		new:  func() hash.Hash { return mustBlake2b(blake2b.Size256) },
	},
	Blake2b512: {
		size: blake2b.Size,
		new:  func() hash.Hash { return mustBlake2b(blake2b.Size) },
	},
	Blake3: {size: 32, new: func() hash.Hash { return blake3.New() }},
}

func mustBlake2b(size int) hash.Hash {
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	return h
}

// New returns a fresh hash state for alg
func New(alg Algorithm) (hash.Hash, error) {
	info, ok := algorithms[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
	return info.new(), nil
}

// MustNew is like New but panics on an unknown algorithm
func MustNew(alg Algorithm) hash.Hash {
	h, err := New(alg)
	if err != nil {
		panic(err)
	}
	return h
}

// ParseAlgorithm resolves a user supplied algorithm name. Matching ignores
// case and surrounding whitespace.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := algorithms[alg]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Algorithms returns the supported algorithm names in sorted order
func Algorithms() []Algorithm {
	ret := make([]Algorithm, 0, len(algorithms))
	for alg := range algorithms {
		ret = append(ret, alg)
	}
	slices.Sort(ret)
	return ret
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm
func (a Algorithm) Size() int {
	return algorithms[a].size
}

func (a Algorithm) String() string {
	return string(a)
}

// NewBlake2b returns a variable-output BLAKE2b state producing size bytes,
// 1 <= size <= 64
func NewBlake2b(size int) (hash.Hash, error) {
	if size < 1 || size > blake2b.Size {
		return nil, fmt.Errorf("%w: blake2b output must be 1..%d bytes, got %d", ErrInvalidSize, blake2b.Size, size)
	}
	return blake2b.New(size, nil)
}
