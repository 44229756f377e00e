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
)

// Leaf builds a byte string from chunks. The encoded value is the
// concatenation of everything written before the leaf is finalized.
type Leaf struct {
	out    Sink
	buf    *bytes.Buffer
	tag    []byte
	hasTag bool
	done   bool
}

// Write appends p to the leaf. It implements io.Writer and never returns an
// error.
func (l *Leaf) Write(p []byte) (int, error) {
	l.check()
	if uint64(l.buf.Len())+uint64(len(p)) > MaxLen {
		panic(ErrLengthOverflow)
	}
	return l.buf.Write(p)
}

// WriteString appends s to the leaf
func (l *Leaf) WriteString(s string) (int, error) {
	l.check()
	if uint64(l.buf.Len())+uint64(len(s)) > MaxLen {
		panic(ErrLengthOverflow)
	}
	return l.buf.WriteString(s)
}

// SetTag attaches a domain separation tag to this leaf
func (l *Leaf) SetTag(tag []byte) {
	l.check()
	if l.hasTag {
		panic(ErrTagAlreadySet)
	}
	l.tag = bytes.Clone(tag)
	l.hasTag = true
}

// Len returns the number of bytes written so far
func (l *Leaf) Len() int {
	if l.buf == nil {
		return 0
	}
	return l.buf.Len()
}

// Close finalizes the leaf. Closing a finalized leaf panics with
// ErrSlotFinalized.
func (l *Leaf) Close() {
	l.check()
	l.finalize()
}

func (l *Leaf) check() {
	if l.done {
		panic(ErrSlotFinalized)
	}
}

func (l *Leaf) finalize() {
	if l.done {
		return
	}
	if l.hasTag {
		emitTag(l.out, l.tag)
	}
	emitLeaf(l.out, l.buf.Bytes())
	putBody(l.buf)
	l.buf = nil
	l.done = true
}
