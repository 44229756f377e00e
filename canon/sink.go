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
	"io"
	"sync"
)

// Sink receives the canonical byte stream. A hash.Hash is the usual sink;
// a *bytes.Buffer is handy for inspecting the encoding.
//
// A Sink is not safe for concurrent encodes.
type Sink = io.Writer

var bodyPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBody() *bytes.Buffer {
	return bodyPool.Get().(*bytes.Buffer)
}

func putBody(b *bytes.Buffer) {
	b.Reset()
	bodyPool.Put(b)
}

func emit(w Sink, p []byte) {
	if _, err := w.Write(p); err != nil {
		panic(&SinkError{Err: err})
	}
}

func emitKind(w Sink, k byte) {
	emit(w, []byte{k})
}

// emitLeaf writes LEAF len data
func emitLeaf(w Sink, data []byte) {
	hdr := make([]byte, 0, 1+LenSize)
	hdr = append(hdr, KindLeaf)
	hdr = AppendLen(hdr, uint64(len(data)))
	emit(w, hdr)
	if len(data) > 0 {
		emit(w, data)
	}
}

// emitTag writes the TAGGED prefix that precedes a tagged value
func emitTag(w Sink, tag []byte) {
	hdr := make([]byte, 0, 1+LenSize)
	hdr = append(hdr, KindTagged)
	hdr = AppendLen(hdr, uint64(len(tag)))
	emit(w, hdr)
	if len(tag) > 0 {
		emit(w, tag)
	}
}
