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

package canon_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/canonhash/canon"
	"github.com/stretchr/testify/assert"
)

func TestSlotContractViolations(t *testing.T) {
	tests := []struct {
		name     string
		expected error
		misuse   func(s *canon.Slot)
	}{
		{
			name:     "second write",
			expected: canon.ErrSlotReused,
			misuse: func(s *canon.Slot) {
				s.Uint8(1)
				s.Uint8(2)
			},
		},
		{
			name:     "write after close",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				s.Close()
				s.Text("late")
			},
		},
		{
			name:     "double close",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				s.Bool(true)
				s.Close()
				s.Close()
			},
		},
		{
			name:     "stale list item",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				l := s.List()
				first := l.Item()
				l.Item().Uint8(2)
				first.Uint8(1)
			},
		},
		{
			name:     "list item after close",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				l := s.List()
				l.Close()
				l.Item()
			},
		},
		{
			name:     "record closed twice",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				r := s.Record()
				r.Close()
				r.Close()
			},
		},
		{
			name:     "child of finalized parent",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				r := s.Record()
				l := r.Field("xs").List()
				r.Close()
				l.Item()
			},
		},
		{
			name:     "leaf write after close",
			expected: canon.ErrSlotFinalized,
			misuse: func(s *canon.Slot) {
				l := s.Leaf()
				l.Close()
				_, _ = l.Write([]byte{1})
			},
		},
		{
			name:     "map value without key",
			expected: canon.ErrMapValueWithoutKey,
			misuse: func(s *canon.Slot) {
				s.Map().Value()
			},
		},
		{
			name:     "tag set twice",
			expected: canon.ErrTagAlreadySet,
			misuse: func(s *canon.Slot) {
				r := s.Record()
				r.SetTag([]byte("a"))
				r.SetTag([]byte("b"))
			},
		},
		{
			name:     "invalid text",
			expected: canon.ErrInvalidText,
			misuse: func(s *canon.Slot) {
				s.Text(string([]byte{0xff, 0xfe}))
			},
		},
		{
			name:     "invalid field name",
			expected: canon.ErrInvalidText,
			misuse: func(s *canon.Slot) {
				s.Record().Field(string([]byte{0xc0}))
			},
		},
		{
			name:     "nil digestable",
			expected: canon.ErrNilValue,
			misuse: func(s *canon.Slot) {
				s.Encode(nil)
			},
		},
		{
			name:     "encode into used slot",
			expected: canon.ErrSlotReused,
			misuse: func(s *canon.Slot) {
				s.Absent()
				s.Encode(canon.Func(func(*canon.Slot) {}))
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := canon.NewSlot(&buf)
			assert.PanicsWithValue(t, tc.expected, func() {
				tc.misuse(s)
			})
		})
	}
}

func TestEmptyDiffersFromAbandoned(t *testing.T) {
	abandoned := encodeWith(func(s *canon.Slot) {})
	emptyList := encodeWith(func(s *canon.Slot) { s.List().Close() })
	emptyRecord := encodeWith(func(s *canon.Slot) { s.Record().Close() })
	emptyLeaf := encodeWith(func(s *canon.Slot) { s.Bytes(nil) })
	assert.NotEmpty(t, abandoned)
	assert.NotEqual(t, abandoned, emptyList)
	assert.NotEqual(t, abandoned, emptyRecord)
	assert.NotEqual(t, abandoned, emptyLeaf)
	assert.NotEqual(t, emptyList, emptyRecord)
}

func TestCloseWithoutContent(t *testing.T) {
	var buf bytes.Buffer
	s := canon.NewSlot(&buf)
	s.Close()
	assert.Equal(t, []byte{canon.KindEmpty}, buf.Bytes())
}
