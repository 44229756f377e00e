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
	"fmt"
)

// Encode writes the canonical encoding of d to w, preceded by the domain
// separation tag. Only sink failures are returned as errors; contract
// violations by d panic.
func Encode(w Sink, tag string, d Digestable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sinkErr, ok := r.(*SinkError)
			if !ok {
				panic(r)
			}
			err = sinkErr
		}
	}()
	emitLeaf(w, []byte(tag))
	NewSlot(w).Encode(d)
	return nil
}

// EncodeToBytes returns the canonical encoding of d under tag
func EncodeToBytes(tag string, d Digestable) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, tag, d); err != nil {
		panic(
			fmt.Sprintf("unexpected error encoding to buffer: %s", err),
		)
	}
	return buf.Bytes()
}

// EncodeValue returns the encoding of d without a domain separation tag.
// It is meant for inspecting the encoding of nested values.
func EncodeValue(d Digestable) []byte {
	var buf bytes.Buffer
	NewSlot(&buf).Encode(d)
	return buf.Bytes()
}

// Func adapts an ordinary function to the Digestable interface
type Func func(s *Slot)

func (f Func) EncodeDigest(s *Slot) {
	f(s)
}
