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

package derive_test

import (
	"encoding/hex"
	"reflect"
	"sync"
	"testing"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/canon"
	"github.com/blinklabs-io/canonhash/derive"
	"github.com/blinklabs-io/canonhash/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name     string `digest:"name"`
	JobTitle string `digest:"job_title"`
}

func encoded(t *testing.T, v any) []byte {
	t.Helper()
	d, err := derive.Of(v)
	require.NoError(t, err)
	return canon.EncodeValue(d)
}

func TestDerivedRecordGoldenDigest(t *testing.T) {
	d := derive.MustOf(person{Name: "Alice", JobTitle: "cryptographer"})
	sum := canonhash.Sum256("example", d)
	assert.Equal(
		t,
		"e3446901f2ed3058fb22327b07d5ef8c073c068fb244f27f5ca70fe4f8e991b2",
		hex.EncodeToString(sum[:]),
	)
	// a pointer encodes as its pointee
	assert.Equal(
		t,
		sum,
		canonhash.Sum256("example", derive.MustOf(&person{Name: "Alice", JobTitle: "cryptographer"})),
	)
}

func TestDerivedEncodings(t *testing.T) {
	type fixed struct {
		N int `digest:"n,fixed64"`
	}
	type skipped struct {
		A       bool `digest:"a"`
		Ignored bool `digest:"-"`
		hidden  bool
	}
	type blobs struct {
		Slice []byte  `digest:"s"`
		Array [2]byte `digest:"a"`
	}
	type optional struct {
		P *uint8   `digest:"p,optional"`
		L []uint16 `digest:"l,optional"`
	}
	seven := uint8(7)
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"uint32", uint32(1), "12 00000001"},
		{"string", "hi", "05 00000002 6869"},
		{"fixed64", fixed{N: -1}, "02 00000001 05 00000001 6e 1b ffffffffffffffff"},
		{"skipped fields", skipped{A: true, Ignored: true, hidden: true}, "02 00000001 05 00000001 61 08"},
		{
			"byte strings",
			blobs{Slice: []byte{1}, Array: [2]byte{2, 3}},
			"02 00000002 05 00000001 73 05 00000001 01 05 00000001 61 05 00000002 0203",
		},
		{
			"optional absent",
			optional{},
			"02 00000002 05 00000001 70 09 05 00000001 6c 09",
		},
		{
			"optional present",
			optional{P: &seven, L: []uint16{}},
			"02 00000002 05 00000001 70 0a 10 07 05 00000001 6c 0a 01 00000000",
		},
		{
			"list of strings",
			[]string{"a", "b"},
			"01 00000002 05 00000001 61 05 00000001 62",
		},
		{
			"embedded digestable",
			struct {
				V canonhash.Option[canonhash.Uint8] `digest:"v"`
			}{V: canonhash.Some(canonhash.Uint8(1))},
			"02 00000001 05 00000001 76 0a 10 01",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, test.DecodeHexString(tc.expected), encoded(t, tc.value))
		})
	}
}

type tree struct {
	Value    uint8  `digest:"value"`
	Children []tree `digest:"children"`
}

type node struct {
	V    uint8
	Next *node `digest:",optional"`
}

func TestRecursiveTypes(t *testing.T) {
	v := tree{Value: 1, Children: []tree{{Value: 2}}}
	assert.Equal(
		t,
		test.DecodeHexString(`
			02 00000002
			05 00000005 76616c7565 10 01
			05 00000008 6368696c6472656e 01 00000001
				02 00000002
				05 00000005 76616c7565 10 02
				05 00000008 6368696c6472656e 01 00000000
		`),
		encoded(t, v),
	)

	list := node{V: 1, Next: &node{V: 2}}
	assert.Equal(
		t,
		test.DecodeHexString(`
			02 00000002
			05 00000001 56 10 01
			05 00000004 4e657874 0a
				02 00000002
				05 00000001 56 10 02
				05 00000004 4e657874 09
		`),
		encoded(t, list),
	)
}

func TestTypeRejection(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected error
	}{
		{"map", reflect.TypeFor[map[string]uint8](), derive.ErrUnorderedCollection},
		{"int", reflect.TypeFor[int](), derive.ErrPlatformWidth},
		{"uint in slice", reflect.TypeFor[[]uint](), derive.ErrPlatformWidth},
		{"float", reflect.TypeFor[float64](), derive.ErrUnsupportedKind},
		{"chan", reflect.TypeFor[chan int](), derive.ErrUnsupportedKind},
		{"func", reflect.TypeFor[func()](), derive.ErrUnsupportedKind},
		{
			"nested map",
			reflect.TypeFor[struct {
				Inner struct{ M map[uint8]uint8 }
			}](),
			derive.ErrUnorderedCollection,
		},
		{
			"fixed64 on string",
			reflect.TypeFor[struct {
				S string `digest:"s,fixed64"`
			}](),
			derive.ErrInvalidOption,
		},
		{
			"optional on value",
			reflect.TypeFor[struct {
				S string `digest:"s,optional"`
			}](),
			derive.ErrInvalidOption,
		},
		{
			"unknown option",
			reflect.TypeFor[struct {
				S string `digest:"s,bogus"`
			}](),
			derive.ErrInvalidOption,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := derive.For(tc.typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
			var typeErr *derive.TypeError
			assert.ErrorAs(t, err, &typeErr)
		})
	}
}

func TestTypeErrorNamesField(t *testing.T) {
	type bad struct {
		Counts map[string]uint8
	}
	_, err := derive.TypeFor[bad]()
	require.Error(t, err)
	var typeErr *derive.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "Counts", typeErr.Field)
	assert.Equal(t, reflect.TypeFor[bad](), typeErr.Type)
}

func TestNilWithoutOptional(t *testing.T) {
	type holder struct {
		P *uint8
	}
	d := derive.MustOf(holder{})
	assert.PanicsWithValue(t, canon.ErrNilValue, func() {
		canon.EncodeValue(d)
	})

	_, err := derive.Of(nil)
	assert.ErrorIs(t, err, canon.ErrNilValue)
	_, err = derive.Of((*person)(nil))
	assert.ErrorIs(t, err, canon.ErrNilValue)
}

type shape interface {
	isShape()
}

type circle struct {
	Radius uint8 `digest:"radius"`
}

func (circle) isShape() {}
func (circle) DigestVariant() string { return "Circle" }

type point struct{}

func (*point) isShape() {}
func (*point) DigestVariant() string { return "Point" }

type celsius uint32

func (celsius) isShape() {}
func (celsius) DigestVariant() string { return "Celsius" }

type square struct{}

func (square) isShape() {}

type drawing struct {
	Shape shape `digest:"shape"`
}

func TestTaggedUnions(t *testing.T) {
	tests := []struct {
		name     string
		shape    shape
		expected string
	}{
		{
			"struct variant",
			circle{Radius: 5},
			"03 05 00000006 436972636c65 02 00000001 05 00000006 726164697573 10 05",
		},
		{
			"fieldless variant behind pointer",
			&point{},
			"03 05 00000005 506f696e74 02 00000000",
		},
		{
			"non-struct variant",
			celsius(7),
			"03 05 00000007 43656c73697573 02 00000001 05 00000001 30 12 00000007",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix := test.DecodeHexString("02 00000001 05 00000005 7368617065")
			expected := append(prefix, test.DecodeHexString(tc.expected)...)
			assert.Equal(t, expected, encoded(t, drawing{Shape: tc.shape}))
		})
	}

	d := derive.MustOf(drawing{Shape: square{}})
	assert.PanicsWithError(
		t,
		"derive: derive_test.square: interface value does not implement Variant",
		func() { canon.EncodeValue(d) },
	)
	d = derive.MustOf(drawing{})
	assert.PanicsWithValue(t, canon.ErrNilValue, func() { canon.EncodeValue(d) })
}

type versioned struct {
	A bool `digest:"a"`
}

func (versioned) DigestTag() string { return "v1" }

func TestTaggerAddsRecordTag(t *testing.T) {
	assert.Equal(
		t,
		test.DecodeHexString("06 00000002 7631 02 00000001 05 00000001 61 08"),
		encoded(t, versioned{A: true}),
	)
}

type custom struct {
	A uint8 `digest:"a"`
}

func (custom) EncodeDigest(s *canon.Slot) {
	s.Text("custom")
}

func TestGenericBypassesOwnMethod(t *testing.T) {
	assert.Equal(
		t,
		test.DecodeHexString("05 00000006 637573746f6d"),
		encoded(t, custom{A: 1}),
	)
	d, err := derive.Generic(&custom{A: 1})
	require.NoError(t, err)
	assert.Equal(
		t,
		test.DecodeHexString("02 00000001 05 00000001 61 10 01"),
		canon.EncodeValue(d),
	)
	_, err = derive.Generic((*custom)(nil))
	assert.ErrorIs(t, err, canon.ErrNilValue)
}

type employee struct {
	Name     string
	JobTitle string
	Salary   int
	Manager  *employee
}

type publicProfile struct {
	Name     string `digest:"name"`
	JobTitle string `digest:"job_title"`
}

func TestProject(t *testing.T) {
	e := employee{Name: "Alice", JobTitle: "cryptographer", Salary: 1}
	_, err := derive.Of(e)
	assert.ErrorIs(t, err, derive.ErrPlatformWidth)

	d, err := derive.Project[publicProfile](&e)
	require.NoError(t, err)
	assert.Equal(
		t,
		canonhash.Sum256("example", derive.MustOf(person{Name: "Alice", JobTitle: "cryptographer"})),
		canonhash.Sum256("example", d),
	)
}

func TestCodecBind(t *testing.T) {
	c, err := derive.TypeFor[person]()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[person](), c.Type())

	_, err = c.Bind("not a person")
	assert.ErrorIs(t, err, derive.ErrTypeMismatch)
	_, err = c.Bind((*person)(nil))
	assert.ErrorIs(t, err, canon.ErrNilValue)

	byValue, err := c.Bind(person{Name: "Bob"})
	require.NoError(t, err)
	byPointer, err := c.Bind(&person{Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, canon.EncodeValue(byValue), canon.EncodeValue(byPointer))
}

func TestConcurrentCodecs(t *testing.T) {
	type fresh struct {
		Items []tree `digest:"items"`
	}
	v := fresh{Items: []tree{{Value: 1}}}
	expected := encoded(t, v)
	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = canon.EncodeValue(derive.MustOf(v))
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}
