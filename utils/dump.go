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

// Package utils provides tooling for auditing canonical encodings
package utils

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/canon"
)

var (
	ErrTruncated     = errors.New("encoding is truncated")
	ErrUnknownKind   = errors.New("unknown kind byte")
	ErrTrailingBytes = errors.New("trailing bytes after value")
	ErrTooDeep       = errors.New("encoding is nested too deeply")
)

// MaxDumpDepth limits the nesting depth DumpEncoding will follow
const MaxDumpDepth = 256

// DumpEncoding renders a complete canonical stream, a domain tag followed
// by one value, as an indented listing for human inspection
func DumpEncoding(data []byte) (string, error) {
	d := &dumper{data: data}
	if err := d.expect(canon.KindLeaf); err != nil {
		return "", err
	}
	tag, err := d.leaf()
	if err != nil {
		return "", err
	}
	d.line(0, "domain "+renderLeaf(tag))
	return d.finish()
}

// DumpValue renders the encoding of a single value without a domain tag
func DumpValue(data []byte) (string, error) {
	d := &dumper{data: data}
	return d.finish()
}

type dumper struct {
	data []byte
	pos  int
	out  bytes.Buffer
}

func (d *dumper) finish() (string, error) {
	if err := d.value(0, "", 0); err != nil {
		return "", err
	}
	if d.pos != len(d.data) {
		return "", fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingBytes, len(d.data)-d.pos, d.pos)
	}
	return d.out.String(), nil
}

func (d *dumper) line(indent int, text string) {
	d.out.WriteString(strings.Repeat("  ", indent))
	d.out.WriteString(text)
	d.out.WriteByte('\n')
}

func (d *dumper) take(n int) ([]byte, error) {
	if n < 0 || len(d.data)-d.pos < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, d.pos)
	}
	ret := d.data[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

func (d *dumper) expect(kind byte) error {
	b, err := d.take(1)
	if err != nil {
		return err
	}
	if b[0] != kind {
		return fmt.Errorf("%w: 0x%02x at offset %d, expected 0x%02x", ErrUnknownKind, b[0], d.pos-1, kind)
	}
	return nil
}

func (d *dumper) length() (int, error) {
	b, err := d.take(canon.LenSize)
	if err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(b)
	if uint64(n) > uint64(len(d.data)) {
		// every counted item takes at least one byte
		return 0, fmt.Errorf("%w: length %d at offset %d", ErrTruncated, n, d.pos-canon.LenSize)
	}
	return int(n), nil
}

func (d *dumper) leaf() ([]byte, error) {
	n, err := d.length()
	if err != nil {
		return nil, err
	}
	return d.take(n)
}

func (d *dumper) value(indent int, label string, depth int) error {
	if depth > MaxDumpDepth {
		return ErrTooDeep
	}
	kb, err := d.take(1)
	if err != nil {
		return err
	}
	kind := kb[0]
	if width := canon.IntWidth(kind); width > 0 {
		b, err := d.take(width)
		if err != nil {
			return err
		}
		d.line(indent, label+renderInt(kind, b))
		return nil
	}
	switch kind {
	case canon.KindEmpty:
		d.line(indent, label+"empty")
	case canon.KindFalse:
		d.line(indent, label+"false")
	case canon.KindTrue:
		d.line(indent, label+"true")
	case canon.KindAbsent:
		d.line(indent, label+"absent")
	case canon.KindPresent:
		return d.value(indent, label+"present ", depth+1)
	case canon.KindOk:
		return d.value(indent, label+"ok ", depth+1)
	case canon.KindErr:
		return d.value(indent, label+"err ", depth+1)
	case canon.KindLeaf:
		b, err := d.leaf()
		if err != nil {
			return err
		}
		d.line(indent, label+renderLeaf(b))
	case canon.KindTagged:
		tag, err := d.leaf()
		if err != nil {
			return err
		}
		d.line(indent, label+"tagged "+renderLeaf(tag))
		return d.value(indent+1, "", depth+1)
	case canon.KindList:
		n, err := d.length()
		if err != nil {
			return err
		}
		d.line(indent, fmt.Sprintf("%slist (%d items)", label, n))
		for i := 0; i < n; i++ {
			if err := d.value(indent+1, fmt.Sprintf("[%d] ", i), depth+1); err != nil {
				return err
			}
		}
	case canon.KindRecord:
		return d.record(indent, label+"record", depth)
	case canon.KindEnum:
		if err := d.expect(canon.KindLeaf); err != nil {
			return err
		}
		variant, err := d.leaf()
		if err != nil {
			return err
		}
		if err := d.expect(canon.KindRecord); err != nil {
			return err
		}
		return d.record(indent, label+"enum "+renderLeaf(variant), depth)
	case canon.KindMap:
		n, err := d.length()
		if err != nil {
			return err
		}
		d.line(indent, fmt.Sprintf("%smap (%d entries)", label, n))
		for i := 0; i < n; i++ {
			if err := d.value(indent+1, "key ", depth+1); err != nil {
				return err
			}
			if err := d.value(indent+1, "value ", depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownKind, kind, d.pos-1)
	}
	return nil
}

// record renders a field count followed by name/value pairs
func (d *dumper) record(indent int, head string, depth int) error {
	n, err := d.length()
	if err != nil {
		return err
	}
	d.line(indent, fmt.Sprintf("%s (%d fields)", head, n))
	for i := 0; i < n; i++ {
		if err := d.expect(canon.KindLeaf); err != nil {
			return err
		}
		name, err := d.leaf()
		if err != nil {
			return err
		}
		if err := d.value(indent+1, string(name)+": ", depth+1); err != nil {
			return err
		}
	}
	return nil
}

func renderInt(kind byte, b []byte) string {
	switch kind {
	case canon.KindUint8, canon.KindUint16, canon.KindUint32, canon.KindUint64:
		var x uint64
		for _, c := range b {
			x = x<<8 | uint64(c)
		}
		return fmt.Sprintf("uint%d %d", len(b)*8, x)
	case canon.KindInt8, canon.KindInt16, canon.KindInt32, canon.KindInt64:
		var x uint64
		for _, c := range b {
			x = x<<8 | uint64(c)
		}
		// sign extend from the encoded width
		shift := 64 - uint(len(b))*8
		return fmt.Sprintf("int%d %d", len(b)*8, int64(x<<shift)>>shift) // #nosec G115
	case canon.KindUint128:
		v := canonhash.Uint128{
			Hi: binary.BigEndian.Uint64(b[:8]),
			Lo: binary.BigEndian.Uint64(b[8:]),
		}
		return "uint128 " + v.Big().String()
	default:
		v := canonhash.Int128{
			Hi: int64(binary.BigEndian.Uint64(b[:8])), // #nosec G115
			Lo: binary.BigEndian.Uint64(b[8:]),
		}
		return "int128 " + v.Big().String()
	}
}

// renderLeaf quotes printable UTF-8 and shows anything else as hex
func renderLeaf(b []byte) string {
	if utf8.Valid(b) && !bytes.ContainsFunc(b, func(r rune) bool {
		return !unicode.IsPrint(r)
	}) {
		return strconv.Quote(string(b))
	}
	return fmt.Sprintf("0x%s (%d bytes)", hex.EncodeToString(b), len(b))
}
