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
	"errors"
	"math"
	"math/big"

	"github.com/blinklabs-io/canonhash/canon"
)

// ErrOutOfRange is returned when a big integer does not fit a 128-bit type
var ErrOutOfRange = errors.New("canonhash: integer out of range")

type Bool bool

func (b Bool) EncodeDigest(s *canon.Slot) { s.Bool(bool(b)) }

type Uint8 uint8

func (x Uint8) EncodeDigest(s *canon.Slot) { s.Uint8(uint8(x)) }

type Uint16 uint16

func (x Uint16) EncodeDigest(s *canon.Slot) { s.Uint16(uint16(x)) }

type Uint32 uint32

func (x Uint32) EncodeDigest(s *canon.Slot) { s.Uint32(uint32(x)) }

type Uint64 uint64

func (x Uint64) EncodeDigest(s *canon.Slot) { s.Uint64(uint64(x)) }

type Int8 int8

func (x Int8) EncodeDigest(s *canon.Slot) { s.Int8(int8(x)) }

type Int16 int16

func (x Int16) EncodeDigest(s *canon.Slot) { s.Int16(int16(x)) }

type Int32 int32

func (x Int32) EncodeDigest(s *canon.Slot) { s.Int32(int32(x)) }

type Int64 int64

func (x Int64) EncodeDigest(s *canon.Slot) { s.Int64(int64(x)) }

// FromInt converts a platform-width int to a fixed 64-bit integer
func FromInt(x int) Int64 {
	return Int64(x)
}

// FromUint converts a platform-width uint to a fixed 64-bit integer
func FromUint(x uint) Uint64 {
	return Uint64(x)
}

// Rune encodes a Unicode code point as an unsigned 32-bit integer
type Rune rune

func (r Rune) EncodeDigest(s *canon.Slot) { s.Uint32(uint32(r)) }

// Text is a UTF-8 string
type Text string

func (t Text) EncodeDigest(s *canon.Slot) { s.Text(string(t)) }

// Bytes is an opaque byte string
type Bytes []byte

func (b Bytes) EncodeDigest(s *canon.Slot) { s.Bytes(b) }

// Uint128 is an unsigned 128-bit integer
type Uint128 struct {
	Hi uint64
	Lo uint64
}

func (x Uint128) EncodeDigest(s *canon.Slot) { s.Uint128(x.Hi, x.Lo) }

// Big returns x as a big.Int
func (x Uint128) Big() *big.Int {
	ret := new(big.Int).SetUint64(x.Hi)
	ret.Lsh(ret, 64)
	return ret.Or(ret, new(big.Int).SetUint64(x.Lo))
}

// Uint128FromBig converts x, which must be in [0, 2^128)
func Uint128FromBig(x *big.Int) (Uint128, error) {
	if x.Sign() < 0 || x.BitLen() > 128 {
		return Uint128{}, ErrOutOfRange
	}
	hi, lo := split128(x)
	return Uint128{Hi: hi, Lo: lo}, nil
}

// Int128 is a signed 128-bit two's complement integer
type Int128 struct {
	Hi int64
	Lo uint64
}

func (x Int128) EncodeDigest(s *canon.Slot) { s.Int128(x.Hi, x.Lo) }

// Big returns x as a big.Int
func (x Int128) Big() *big.Int {
	ret := Uint128{Hi: uint64(x.Hi), Lo: x.Lo}.Big()
	if x.Hi < 0 {
		ret.Sub(ret, two128)
	}
	return ret
}

var (
	two128    = new(big.Int).Lsh(big.NewInt(1), 128)
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	mask64    = new(big.Int).SetUint64(math.MaxUint64)
)

// Int128FromBig converts x, which must be in [-2^127, 2^127)
func Int128FromBig(x *big.Int) (Int128, error) {
	if x.Cmp(minInt128) < 0 || x.Cmp(maxInt128) > 0 {
		return Int128{}, ErrOutOfRange
	}
	v := x
	if x.Sign() < 0 {
		v = new(big.Int).Add(x, two128)
	}
	hi, lo := split128(v)
	return Int128{Hi: int64(hi), Lo: lo}, nil // #nosec G115
}

func split128(x *big.Int) (uint64, uint64) {
	lo := new(big.Int).And(x, mask64).Uint64()
	hi := new(big.Int).Rsh(x, 64).Uint64()
	return hi, lo
}
