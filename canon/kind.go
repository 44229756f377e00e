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

package canon

import (
	"encoding/binary"
	"math"
)

// Kind bytes. Each encoded value starts with exactly one of these.
const (
	KindEmpty   byte = 0x00
	KindList    byte = 0x01
	KindRecord  byte = 0x02
	KindEnum    byte = 0x03
	KindMap     byte = 0x04
	KindLeaf    byte = 0x05
	KindTagged  byte = 0x06
	KindFalse   byte = 0x07
	KindTrue    byte = 0x08
	KindAbsent  byte = 0x09
	KindPresent byte = 0x0a
	KindOk      byte = 0x0b
	KindErr     byte = 0x0c

	KindUint8   byte = 0x10
	KindUint16  byte = 0x11
	KindUint32  byte = 0x12
	KindUint64  byte = 0x13
	KindUint128 byte = 0x14

	KindInt8   byte = 0x18
	KindInt16  byte = 0x19
	KindInt32  byte = 0x1a
	KindInt64  byte = 0x1b
	KindInt128 byte = 0x1c
)

// LenSize is the number of bytes used by every length and count field
const LenSize = 4

// MaxLen is the largest length or count that fits in a length field
const MaxLen = math.MaxUint32

// IntWidth returns the payload size in bytes of an integer kind, or 0 if
// k is not an integer kind.
func IntWidth(k byte) int {
	switch k {
	case KindUint8, KindInt8:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32:
		return 4
	case KindUint64, KindInt64:
		return 8
	case KindUint128, KindInt128:
		return 16
	}
	return 0
}

// AppendLen appends the length field for n to dst. It panics with
// ErrLengthOverflow if n does not fit; truncating would make the encoding
// ambiguous.
func AppendLen(dst []byte, n uint64) []byte {
	if n > MaxLen {
		panic(ErrLengthOverflow)
	}
	return binary.BigEndian.AppendUint32(dst, uint32(n))
}
