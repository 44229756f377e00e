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
	"bytes"
	"unicode/utf8"
)

// frame is the shared state of every composite builder. Children are
// encoded into body; the header (which carries the count) is only known at
// finalization, so the body is held back until then.
type frame struct {
	out    Sink
	body   *bytes.Buffer
	count  uint64
	tag    []byte
	hasTag bool
	done   bool
}

func newFrame(out Sink) frame {
	return frame{out: out, body: getBody()}
}

func (f *frame) check() {
	if f.done {
		panic(ErrSlotFinalized)
	}
}

func (f *frame) next() {
	if f.count >= MaxLen {
		panic(ErrLengthOverflow)
	}
	f.count++
}

// SetTag attaches a domain separation tag to this value. It may be called
// at most once, at any point before the value is finalized.
func (f *frame) SetTag(tag []byte) {
	f.check()
	if f.hasTag {
		panic(ErrTagAlreadySet)
	}
	f.tag = bytes.Clone(tag)
	f.hasTag = true
}

// Len returns the number of children added so far
func (f *frame) Len() int {
	return int(f.count)
}

func (f *frame) flush(prefix []byte) {
	if f.hasTag {
		emitTag(f.out, f.tag)
	}
	emit(f.out, AppendLen(prefix, f.count))
	if f.body.Len() > 0 {
		emit(f.out, f.body.Bytes())
	}
	putBody(f.body)
	f.body = nil
	f.done = true
}

// List builds a homogeneous sequence
type List struct {
	frame
	item *Slot
}

// Item returns the slot for the next element
func (l *List) Item() *Slot {
	l.check()
	l.closeItem()
	l.next()
	l.item = &Slot{out: l.body}
	return l.item
}

// Close finalizes the list. Closing a finalized list panics with
// ErrSlotFinalized.
func (l *List) Close() {
	l.check()
	l.finalize()
}

func (l *List) closeItem() {
	if l.item != nil {
		l.item.finalize()
		l.item = nil
	}
}

func (l *List) finalize() {
	if l.done {
		return
	}
	l.closeItem()
	l.flush([]byte{KindList})
}

// Record builds a record, or the field list of a tagged union variant
type Record struct {
	frame
	field   *Slot
	variant string
	isEnum  bool
}

// Field writes the field name and returns the slot for the field value
func (r *Record) Field(name string) *Slot {
	if !utf8.ValidString(name) {
		panic(ErrInvalidText)
	}
	r.check()
	r.closeField()
	r.next()
	emitLeaf(r.body, []byte(name))
	r.field = &Slot{out: r.body}
	return r.field
}

// Close finalizes the record. Closing a finalized record panics with
// ErrSlotFinalized.
func (r *Record) Close() {
	r.check()
	r.finalize()
}

func (r *Record) closeField() {
	if r.field != nil {
		r.field.finalize()
		r.field = nil
	}
}

func (r *Record) finalize() {
	if r.done {
		return
	}
	r.closeField()
	var prefix []byte
	if r.isEnum {
		prefix = []byte{KindEnum, KindLeaf}
		prefix = AppendLen(prefix, uint64(len(r.variant)))
		prefix = append(prefix, r.variant...)
	}
	r.flush(append(prefix, KindRecord))
}

// Map builds an ordered map. Key and Value alternate; a key whose value is
// never supplied gets an EMPTY value.
type Map struct {
	frame
	open       *Slot
	pendingKey bool
}

// Key returns the slot for the next entry's key
func (m *Map) Key() *Slot {
	m.check()
	m.closeOpen()
	if m.pendingKey {
		emitKind(m.body, KindEmpty)
	}
	m.next()
	m.pendingKey = true
	m.open = &Slot{out: m.body}
	return m.open
}

// Value returns the slot for the value of the most recent key. It panics
// with ErrMapValueWithoutKey when there is no such key.
func (m *Map) Value() *Slot {
	m.check()
	if !m.pendingKey {
		panic(ErrMapValueWithoutKey)
	}
	m.closeOpen()
	m.pendingKey = false
	m.open = &Slot{out: m.body}
	return m.open
}

// Entry encodes a complete key/value pair
func (m *Map) Entry(key, value Digestable) {
	m.Key().Encode(key)
	m.Value().Encode(value)
}

// Close finalizes the map. Closing a finalized map panics with
// ErrSlotFinalized.
func (m *Map) Close() {
	m.check()
	m.finalize()
}

func (m *Map) closeOpen() {
	if m.open != nil {
		m.open.finalize()
		m.open = nil
	}
}

func (m *Map) finalize() {
	if m.done {
		return
	}
	m.closeOpen()
	if m.pendingKey {
		emitKind(m.body, KindEmpty)
		m.pendingKey = false
	}
	m.flush([]byte{KindMap})
}
