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
	"unicode/utf8"
)

// Digestable is implemented by every type that has a canonical encoding.
//
// Unordered collections (Go maps) and platform-width integers deliberately
// have no implementation.
type Digestable interface {
	EncodeDigest(s *Slot)
}

type finalizer interface {
	finalize()
}

type slotState uint8

const (
	slotOpen slotState = iota
	slotUsed
	slotFinalized
)

// Slot is the place where exactly one value is encoded
type Slot struct {
	out   Sink
	state slotState
	// open nested builder, finalized together with this slot
	child finalizer
}

// NewSlot returns a root slot that writes to w. No domain tag is written;
// use Encode for a complete top-level encoding.
func NewSlot(w Sink) *Slot {
	return &Slot{out: w}
}

func (s *Slot) checkOpen() {
	switch s.state {
	case slotUsed:
		panic(ErrSlotReused)
	case slotFinalized:
		panic(ErrSlotFinalized)
	}
}

func (s *Slot) begin() {
	s.checkOpen()
	s.state = slotUsed
}

// Bool writes a boolean
func (s *Slot) Bool(b bool) {
	s.begin()
	if b {
		emitKind(s.out, KindTrue)
	} else {
		emitKind(s.out, KindFalse)
	}
}

// Uint8 writes an unsigned 8-bit integer
func (s *Slot) Uint8(x uint8) {
	s.begin()
	emit(s.out, []byte{KindUint8, x})
}

// Uint16 writes an unsigned 16-bit integer
func (s *Slot) Uint16(x uint16) {
	s.begin()
	buf := []byte{KindUint16, 0, 0}
	binary.BigEndian.PutUint16(buf[1:], x)
	emit(s.out, buf)
}

// Uint32 writes an unsigned 32-bit integer
func (s *Slot) Uint32(x uint32) {
	s.begin()
	buf := []byte{KindUint32, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:], x)
	emit(s.out, buf)
}

// Uint64 writes an unsigned 64-bit integer
func (s *Slot) Uint64(x uint64) {
	s.begin()
	emit(s.out, binary.BigEndian.AppendUint64([]byte{KindUint64}, x))
}

// Uint128 writes an unsigned 128-bit integer given as its high and low halves
func (s *Slot) Uint128(hi, lo uint64) {
	s.begin()
	buf := make([]byte, 1, 17)
	buf[0] = KindUint128
	buf = binary.BigEndian.AppendUint64(buf, hi)
	buf = binary.BigEndian.AppendUint64(buf, lo)
	emit(s.out, buf)
}

// Int8 writes a signed 8-bit integer
func (s *Slot) Int8(x int8) {
	s.begin()
	emit(s.out, []byte{KindInt8, byte(x)})
}

// Int16 writes a signed 16-bit integer
func (s *Slot) Int16(x int16) {
	s.begin()
	buf := []byte{KindInt16, 0, 0}
	binary.BigEndian.PutUint16(buf[1:], uint16(x))
	emit(s.out, buf)
}

// Int32 writes a signed 32-bit integer
func (s *Slot) Int32(x int32) {
	s.begin()
	buf := []byte{KindInt32, 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:], uint32(x))
	emit(s.out, buf)
}

// Int64 writes a signed 64-bit integer
func (s *Slot) Int64(x int64) {
	s.begin()
	emit(s.out, binary.BigEndian.AppendUint64([]byte{KindInt64}, uint64(x)))
}

// Int128 writes a signed 128-bit two's complement integer given as its
// high (signed) and low halves
func (s *Slot) Int128(hi int64, lo uint64) {
	s.begin()
	buf := make([]byte, 1, 17)
	buf[0] = KindInt128
	buf = binary.BigEndian.AppendUint64(buf, uint64(hi))
	buf = binary.BigEndian.AppendUint64(buf, lo)
	emit(s.out, buf)
}

// Text writes a UTF-8 string. It panics with ErrInvalidText if text is not
// valid UTF-8.
func (s *Slot) Text(text string) {
	if !utf8.ValidString(text) {
		panic(ErrInvalidText)
	}
	s.begin()
	emitLeaf(s.out, []byte(text))
}

// Bytes writes a raw byte string
func (s *Slot) Bytes(data []byte) {
	s.begin()
	emitLeaf(s.out, data)
}

// Leaf starts a byte string whose content is supplied incrementally
func (s *Slot) Leaf() *Leaf {
	s.begin()
	l := &Leaf{out: s.out, buf: getBody()}
	s.child = l
	return l
}

// List starts a homogeneous sequence
func (s *Slot) List() *List {
	s.begin()
	l := &List{frame: newFrame(s.out)}
	s.child = l
	return l
}

// Record starts a record. Fields must be added in declaration order.
func (s *Slot) Record() *Record {
	s.begin()
	r := &Record{frame: newFrame(s.out)}
	s.child = r
	return r
}

// Enum starts a tagged union value of the named variant. The returned
// Record receives the variant's fields, if any.
func (s *Slot) Enum(variant string) *Record {
	if !utf8.ValidString(variant) {
		panic(ErrInvalidText)
	}
	s.begin()
	r := &Record{frame: newFrame(s.out), variant: variant, isEnum: true}
	s.child = r
	return r
}

// Map starts an ordered map. Entries must be supplied in the map's
// canonical key order.
func (s *Slot) Map() *Map {
	s.begin()
	m := &Map{frame: newFrame(s.out)}
	s.child = m
	return m
}

// Absent writes an empty optional
func (s *Slot) Absent() {
	s.begin()
	emitKind(s.out, KindAbsent)
}

// Present writes the discriminant of a populated optional and returns the
// slot for the contained value
func (s *Slot) Present() *Slot {
	return s.prefixed(KindPresent)
}

// Ok writes the success discriminant of a result and returns the slot for
// the contained value
func (s *Slot) Ok() *Slot {
	return s.prefixed(KindOk)
}

// Err writes the failure discriminant of a result and returns the slot for
// the contained value
func (s *Slot) Err() *Slot {
	return s.prefixed(KindErr)
}

// Tagged writes a domain separation tag scoped to this value and returns
// the slot for the value itself
func (s *Slot) Tagged(tag []byte) *Slot {
	s.begin()
	emitTag(s.out, tag)
	c := &Slot{out: s.out}
	s.child = c
	return c
}

func (s *Slot) prefixed(k byte) *Slot {
	s.begin()
	emitKind(s.out, k)
	c := &Slot{out: s.out}
	s.child = c
	return c
}

// Encode lets d encode itself into the slot and then finalizes the slot, so
// any builder d left open is closed and an untouched slot emits EMPTY.
// A nil interface panics with ErrNilValue. A typed nil pointer is passed to
// its EncodeDigest method, which should panic with ErrNilValue before
// writing anything.
func (s *Slot) Encode(d Digestable) {
	if d == nil {
		panic(ErrNilValue)
	}
	s.checkOpen()
	d.EncodeDigest(s)
	s.finalize()
}

// Close finalizes the slot. A slot that never received a value emits EMPTY.
// Closing a finalized slot panics with ErrSlotFinalized.
func (s *Slot) Close() {
	if s.state == slotFinalized {
		panic(ErrSlotFinalized)
	}
	s.finalize()
}

func (s *Slot) finalize() {
	if s.state == slotFinalized {
		return
	}
	if s.state == slotOpen {
		emitKind(s.out, KindEmpty)
	} else if s.child != nil {
		s.child.finalize()
	}
	s.child = nil
	s.state = slotFinalized
}
