// Copyright 2024 Blink Labs Software
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

package cbor_test

import (
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecoder(t *testing.T, cborHex string) *cbor.StreamDecoder {
	t.Helper()
	cborData, err := hex.DecodeString(cborHex)
	require.NoError(t, err)
	d, err := cbor.NewStreamDecoder(cborData)
	require.NoError(t, err)
	return d
}

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		require.NoError(t, err)
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		require.NoError(t, err)
		if test.BytesRead > 0 {
			assert.Equal(t, test.BytesRead, bytesRead)
		}
		assert.Equal(t, test.Object, dest)
	}
}

func TestPeekType(t *testing.T) {
	testDefs := []struct {
		cborHex string
		expType cbor.Type
	}{
		{"00", cbor.TypeUnsigned},
		{"1b0000000100000000", cbor.TypeUnsigned},
		{"20", cbor.TypeNegative},
		{"40", cbor.TypeBytes},
		{"5fff", cbor.TypeBytesIndef},
		{"60", cbor.TypeText},
		{"7fff", cbor.TypeTextIndef},
		{"80", cbor.TypeArray},
		{"9fff", cbor.TypeArrayIndef},
		{"a0", cbor.TypeMap},
		{"bfff", cbor.TypeMapIndef},
		{"c11a514b67b0", cbor.TypeTag},
		{"f4", cbor.TypeBool},
		{"f5", cbor.TypeBool},
		{"f6", cbor.TypeNull},
		{"f7", cbor.TypeUndefined},
		{"f93c00", cbor.TypeFloat},
		{"f0", cbor.TypeSimple},
		{"ff", cbor.TypeBreak},
	}
	for _, testDef := range testDefs {
		d := newDecoder(t, testDef.cborHex)
		typ, err := d.PeekType()
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, testDef.expType, typ, testDef.cborHex)
		assert.Equal(t, 0, d.Position(), "peek must not consume")
	}
}

func TestPeekTypeEmpty(t *testing.T) {
	d, err := cbor.NewStreamDecoder(nil)
	require.NoError(t, err)
	_, err = d.PeekType()
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEnd)
}

func TestDecodeUintWidths(t *testing.T) {
	testDefs := []struct {
		cborHex string
		value   uint64
	}{
		{"00", 0},
		{"17", 23},
		{"1818", 24},
		{"18ff", 255},
		{"190100", 256},
		{"1a00010000", 65536},
		{"1b0000000100000000", 4294967296},
		{"1bffffffffffffffff", math.MaxUint64},
	}
	for _, testDef := range testDefs {
		d := newDecoder(t, testDef.cborHex)
		v, err := d.DecodeUint()
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, testDef.value, v)
		assert.True(t, d.EOF())
	}
}

func TestDecodeInt(t *testing.T) {
	testDefs := []struct {
		cborHex string
		value   int64
		err     error
	}{
		{cborHex: "00", value: 0},
		{cborHex: "20", value: -1},
		{cborHex: "3863", value: -100},
		{cborHex: "1b7fffffffffffffff", value: math.MaxInt64},
		{cborHex: "3b7fffffffffffffff", value: math.MinInt64},
		{cborHex: "1b8000000000000000", err: cbor.ErrOverflow},
		{cborHex: "3b8000000000000000", err: cbor.ErrOverflow},
		{cborHex: "40", err: cbor.ErrUnexpectedType},
	}
	for _, testDef := range testDefs {
		d := newDecoder(t, testDef.cborHex)
		v, err := d.DecodeInt()
		if testDef.err != nil {
			assert.ErrorIs(t, err, testDef.err, testDef.cborHex)
			assert.Equal(t, 0, d.Position())
			continue
		}
		require.NoError(t, err, testDef.cborHex)
		assert.Equal(t, testDef.value, v)
	}
}

func TestDecodeInteger(t *testing.T) {
	d := newDecoder(t, "3bffffffffffffffff")
	v, err := d.DecodeInteger()
	require.NoError(t, err)
	assert.Equal(t, "-18446744073709551616", v.String())
	d = newDecoder(t, "1bffffffffffffffff")
	v, err = d.DecodeInteger()
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", v.String())
}

func TestDecodeBytes(t *testing.T) {
	d := newDecoder(t, "4401020304")
	v, err := d.DecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, v)

	d = newDecoder(t, "40")
	v, err = d.DecodeBytes()
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)

	// Declared length exceeds input
	d = newDecoder(t, "450102")
	_, err = d.DecodeBytes()
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEnd)
}

func TestDecodeByteStringChunks(t *testing.T) {
	d := newDecoder(t, "5f42010243030405ff")
	chunks, err := d.DecodeByteStringChunks()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1, 2}, {3, 4, 5}}, chunks)
	assert.True(t, d.EOF())
}

func TestDecodeText(t *testing.T) {
	d := newDecoder(t, "6568656c6c6f")
	v, err := d.DecodeText()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.True(t, d.EOF())

	// Chunked text is not accepted and nothing is consumed
	d = newDecoder(t, "7f626865636c6c6fff")
	_, err = d.DecodeText()
	require.ErrorIs(t, err, cbor.ErrUnexpectedType)
	assert.Equal(t, 0, d.Position())
	require.NoError(t, d.Skip())
	assert.True(t, d.EOF())

	// Invalid UTF-8
	d = newDecoder(t, "62c328")
	_, err = d.DecodeText()
	assert.ErrorIs(t, err, cbor.ErrMalformed)
}

func TestDecodeContainerHeaders(t *testing.T) {
	d := newDecoder(t, "83010203")
	length, indef, err := d.DecodeArrayHeader()
	require.NoError(t, err)
	assert.Equal(t, 3, length)
	assert.False(t, indef)

	d = newDecoder(t, "9f01ff")
	length, indef, err = d.DecodeArrayHeader()
	require.NoError(t, err)
	assert.Equal(t, 0, length)
	assert.True(t, indef)
	v, err := d.DecodeUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	isBreak, err := d.IsBreak()
	require.NoError(t, err)
	assert.True(t, isBreak)
	require.NoError(t, d.DecodeBreak())
	assert.True(t, d.EOF())

	d = newDecoder(t, "a201020304")
	length, indef, err = d.DecodeMapHeader()
	require.NoError(t, err)
	assert.Equal(t, 2, length)
	assert.False(t, indef)

	// A huge declared length must not be trusted
	d = newDecoder(t, "9bffffffffffffffff")
	_, _, err = d.DecodeArrayHeader()
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEnd)

	d = newDecoder(t, "a0")
	_, _, err = d.DecodeArrayHeader()
	var typeErr *cbor.TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, cbor.TypeMap, typeErr.Found)
	assert.Equal(t, "array", typeErr.Expected)
}

func TestDecodeTag(t *testing.T) {
	d := newDecoder(t, "d8799f01ff")
	tag, err := d.PeekTag()
	require.NoError(t, err)
	assert.Equal(t, uint64(121), tag)
	assert.Equal(t, 0, d.Position())
	tag, err = d.DecodeTag()
	require.NoError(t, err)
	assert.Equal(t, uint64(121), tag)
	assert.Equal(t, 2, d.Position())
}

func TestDecodeSimple(t *testing.T) {
	d := newDecoder(t, "f5f4f6")
	v, err := d.DecodeBool()
	require.NoError(t, err)
	assert.True(t, v)
	v, err = d.DecodeBool()
	require.NoError(t, err)
	assert.False(t, v)
	require.NoError(t, d.DecodeNull())
	assert.True(t, d.EOF())
}

func TestMalformedHead(t *testing.T) {
	// Additional info 28 is reserved
	d := newDecoder(t, "1c")
	_, err := d.DecodeUint()
	assert.ErrorIs(t, err, cbor.ErrMalformed)
	// Indefinite length is not valid for integers
	d = newDecoder(t, "1f")
	_, err = d.DecodeUint()
	assert.ErrorIs(t, err, cbor.ErrMalformed)
	// Truncated argument
	d = newDecoder(t, "19ff")
	_, err = d.DecodeUint()
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEnd)
}

func TestSkip(t *testing.T) {
	testDefs := []struct {
		cborHex string
		length  int
	}{
		{"01", 1},
		{"83010203", 4},
		{"a1018202a10304", 7},
		{"9f9f01ffff", 5},
		{"d8799f4101ff", 6},
		{"c249010000000000000000", 11},
	}
	for _, testDef := range testDefs {
		// Append a trailing item so Skip must stop at the right place
		d := newDecoder(t, testDef.cborHex+"07")
		require.NoError(t, d.Skip(), testDef.cborHex)
		assert.Equal(t, testDef.length, d.Position(), testDef.cborHex)
		v, err := d.DecodeUint()
		require.NoError(t, err)
		assert.Equal(t, uint64(7), v)
	}
}

func TestSkipMalformed(t *testing.T) {
	d := newDecoder(t, "8301")
	err := d.Skip()
	assert.ErrorIs(t, err, cbor.ErrUnexpectedEnd)
	assert.Equal(t, 0, d.Position())

	d = newDecoder(t, "ff")
	err = d.Skip()
	assert.ErrorIs(t, err, cbor.ErrMalformed)
}

func TestRawSince(t *testing.T) {
	d := newDecoder(t, "0183010203")
	require.NoError(t, d.Skip())
	start := d.Position()
	require.NoError(t, d.Skip())
	assert.Equal(t, []byte{0x83, 0x01, 0x02, 0x03}, d.RawSince(start))
	assert.Nil(t, d.RawSince(10))
}
