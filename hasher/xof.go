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
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrWriteAfterRead is returned when input is written to an XOF whose
// output has already been read
var ErrWriteAfterRead = errors.New("hasher: write after read")

// XOF is an extendable-output function: absorb input with Write, then
// squeeze any amount of output with Read
type XOF interface {
	io.Writer
	io.Reader
}

// NewShake128 returns a SHAKE128 state
func NewShake128() XOF {
	return sha3.NewShake128()
}

// NewShake256 returns a SHAKE256 state
func NewShake256() XOF {
	return sha3.NewShake256()
}

// NewBlake2bXOF returns a BLAKE2Xb state producing size bytes. Use
// blake2b.OutputLengthUnknown for output of unknown length.
func NewBlake2bXOF(size uint32) (XOF, error) {
	x, err := blake2b.NewXOF(size, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, err)
	}
	return x, nil
}

// NewBlake3XOF returns a BLAKE3 state in extendable-output mode
func NewBlake3XOF() XOF {
	return &blake3XOF{hasher: blake3.New()}
}

type blake3XOF struct {
	hasher *blake3.Hasher
	digest *blake3.Digest
}

func (x *blake3XOF) Write(p []byte) (int, error) {
	if x.digest != nil {
		return 0, ErrWriteAfterRead
	}
	return x.hasher.Write(p)
}

func (x *blake3XOF) Read(p []byte) (int, error) {
	if x.digest == nil {
		x.digest = x.hasher.Digest()
	}
	return x.digest.Read(p)
}
