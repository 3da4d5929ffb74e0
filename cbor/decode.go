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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

// ErrOverflow is returned when an integer does not fit the requested Go type
var ErrOverflow = errors.New("CBOR integer overflows target type")

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			// This defaults to 32, but there are blocks in the wild using >64 nested levels
			MaxNestedLevels: 256,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR data item into dest and returns the number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// StreamDecoder reads CBOR primitives one at a time from an in-memory buffer.
// Structured values are read as a header followed by their items, which lets
// callers preserve framing (definite vs. indefinite length) and ordering.
// A StreamDecoder is not safe for concurrent use.
type StreamDecoder struct {
	decMode _cbor.DecMode
	data    []byte
	pos     int
}

// NewStreamDecoder creates a decoder for sequential CBOR item extraction with position tracking.
func NewStreamDecoder(data []byte) (*StreamDecoder, error) {
	decMode, err := getDecMode()
	if err != nil {
		return nil, err
	}
	if decMode == nil {
		return nil, errors.New("CBOR decoder mode not initialized")
	}
	return &StreamDecoder{
		decMode: decMode,
		data:    data,
	}, nil
}

// Position returns the current byte position in the stream.
func (d *StreamDecoder) Position() int {
	return d.pos
}

// Data returns the underlying byte slice.
func (d *StreamDecoder) Data() []byte {
	return d.data
}

// EOF returns true if the decoder has reached the end of the data.
func (d *StreamDecoder) EOF() bool {
	return d.pos >= len(d.data)
}

// RawBytes returns the raw bytes for the given offset and length.
func (d *StreamDecoder) RawBytes(offset, length int) []byte {
	// Check for negative values and integer overflow
	if offset < 0 || length < 0 {
		return nil
	}
	end := offset + length
	// Check for integer overflow: if end < offset, overflow occurred
	if end < offset || end > len(d.data) {
		return nil
	}
	return d.data[offset:end]
}

// RawSince returns the bytes consumed since the given position
func (d *StreamDecoder) RawSince(start int) []byte {
	if start < 0 || start > d.pos {
		return nil
	}
	return d.data[start:d.pos]
}

// PeekType reports the type of the next data item without consuming it
func (d *StreamDecoder) PeekType() (Type, error) {
	if d.pos >= len(d.data) {
		return TypeUnknown, fmt.Errorf("offset %d: %w", d.pos, ErrUnexpectedEnd)
	}
	return typeFromInitialByte(d.data[d.pos]), nil
}

// peekHead parses the head of the next data item without consuming it. For
// indefinite-length items the returned argument is zero and indef is true.
func (d *StreamDecoder) peekHead() (major uint8, arg uint64, headLen int, indef bool, err error) {
	if d.pos >= len(d.data) {
		return 0, 0, 0, false, fmt.Errorf("offset %d: %w", d.pos, ErrUnexpectedEnd)
	}
	first := d.data[d.pos]
	major = first & CborTypeMask
	info := first & CborInfoMask
	var width int
	switch {
	case info <= CborMaxUintSimple:
		return major, uint64(info), 1, false, nil
	case info == 24:
		width = 1
	case info == 25:
		width = 2
	case info == 26:
		width = 4
	case info == 27:
		width = 8
	case info == CborIndefinite:
		switch major {
		case CborTypeByteString, CborTypeTextString, CborTypeArray, CborTypeMap, CborTypeSimple:
			return major, 0, 1, true, nil
		}
		return 0, 0, 0, false, &MalformedError{
			Offset: d.pos,
			Err:    fmt.Errorf("indefinite length not allowed for major type 0x%x", major),
		}
	default:
		return 0, 0, 0, false, &MalformedError{
			Offset: d.pos,
			Err:    fmt.Errorf("reserved additional info value %d", info),
		}
	}
	if d.pos+1+width > len(d.data) {
		return 0, 0, 0, false, fmt.Errorf("offset %d: %w", d.pos, ErrUnexpectedEnd)
	}
	for _, b := range d.data[d.pos+1 : d.pos+1+width] {
		arg = arg<<8 | uint64(b)
	}
	return major, arg, 1 + width, false, nil
}

// definiteHead reads the head of a definite-length item of the given major type
func (d *StreamDecoder) definiteHead(expectedMajor uint8, expected string) (uint64, error) {
	major, arg, headLen, indef, err := d.peekHead()
	if err != nil {
		return 0, err
	}
	if major != expectedMajor || indef {
		return 0, &TypeError{
			Expected: expected,
			Found:    typeFromInitialByte(d.data[d.pos]),
			Offset:   d.pos,
		}
	}
	d.pos += headLen
	return arg, nil
}

// DecodeUint reads an unsigned integer (major type 0)
func (d *StreamDecoder) DecodeUint() (uint64, error) {
	return d.definiteHead(CborTypeUnsigned, "unsigned integer")
}

// DecodeNegative reads a negative integer (major type 1) and returns its raw
// argument n, where the encoded value is -1-n
func (d *StreamDecoder) DecodeNegative() (uint64, error) {
	return d.definiteHead(CborTypeNegative, "negative integer")
}

// DecodeInt reads a native integer of either sign into an int64
func (d *StreamDecoder) DecodeInt() (int64, error) {
	start := d.pos
	t, err := d.PeekType()
	if err != nil {
		return 0, err
	}
	switch t {
	case TypeUnsigned:
		v, err := d.DecodeUint()
		if err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			d.pos = start
			return 0, fmt.Errorf("offset %d: %w", start, ErrOverflow)
		}
		return int64(v), nil
	case TypeNegative:
		n, err := d.DecodeNegative()
		if err != nil {
			return 0, err
		}
		if n > math.MaxInt64 {
			d.pos = start
			return 0, fmt.Errorf("offset %d: %w", start, ErrOverflow)
		}
		return -1 - int64(n), nil
	default:
		return 0, &TypeError{Expected: "integer", Found: t, Offset: d.pos}
	}
}

// DecodeInteger reads a native integer of either sign into a big.Int. Bignum
// tags are not accepted here.
func (d *StreamDecoder) DecodeInteger() (*big.Int, error) {
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeUnsigned:
		v, err := d.DecodeUint()
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(v), nil
	case TypeNegative:
		n, err := d.DecodeNegative()
		if err != nil {
			return nil, err
		}
		ret := new(big.Int).SetUint64(n)
		ret.Add(ret, big.NewInt(1))
		return ret.Neg(ret), nil
	default:
		return nil, &TypeError{Expected: "integer", Found: t, Offset: d.pos}
	}
}

// DecodeBytes reads a definite-length byte string. The returned slice is a copy
// and is never nil.
func (d *StreamDecoder) DecodeBytes() ([]byte, error) {
	start := d.pos
	length, err := d.definiteHead(CborTypeByteString, "byte string")
	if err != nil {
		return nil, err
	}
	if length > uint64(len(d.data)-d.pos) {
		d.pos = start
		return nil, fmt.Errorf("offset %d: %w", start, ErrUnexpectedEnd)
	}
	ret := make([]byte, int(length))
	copy(ret, d.data[d.pos:d.pos+int(length)])
	d.pos += int(length)
	return ret, nil
}

// DecodeByteStringChunks reads an indefinite-length byte string and returns
// its chunks in order
func (d *StreamDecoder) DecodeByteStringChunks() ([][]byte, error) {
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	if t != TypeBytesIndef {
		return nil, &TypeError{Expected: "indefinite byte string", Found: t, Offset: d.pos}
	}
	d.pos++
	chunks := [][]byte{}
	for {
		isBreak, err := d.IsBreak()
		if err != nil {
			return nil, err
		}
		if isBreak {
			d.pos++
			return chunks, nil
		}
		chunk, err := d.DecodeBytes()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
}

// DecodeText reads a definite-length text string
func (d *StreamDecoder) DecodeText() (string, error) {
	t, err := d.PeekType()
	if err != nil {
		return "", err
	}
	if t != TypeText {
		return "", &TypeError{Expected: "text string", Found: t, Offset: d.pos}
	}
	var ret string
	rest, err := d.decMode.UnmarshalFirst(d.data[d.pos:], &ret)
	if err != nil {
		return "", wrapLibraryError(d.pos, err)
	}
	d.pos = len(d.data) - len(rest)
	return ret, nil
}

// DecodeArrayHeader reads an array header. For indefinite-length arrays the
// returned length is zero and the items are terminated by a break.
func (d *StreamDecoder) DecodeArrayHeader() (int, bool, error) {
	return d.containerHeader(CborTypeArray, "array", 1)
}

// DecodeMapHeader reads a map header and returns the number of pairs. For
// indefinite-length maps the returned length is zero and the pairs are
// terminated by a break.
func (d *StreamDecoder) DecodeMapHeader() (int, bool, error) {
	return d.containerHeader(CborTypeMap, "map", 2)
}

func (d *StreamDecoder) containerHeader(expectedMajor uint8, expected string, minItemSize uint64) (int, bool, error) {
	major, arg, headLen, indef, err := d.peekHead()
	if err != nil {
		return 0, false, err
	}
	if major != expectedMajor {
		return 0, false, &TypeError{
			Expected: expected,
			Found:    typeFromInitialByte(d.data[d.pos]),
			Offset:   d.pos,
		}
	}
	if indef {
		d.pos += headLen
		return 0, true, nil
	}
	// Every item takes at least one byte, so a declared length larger than the
	// remaining input can never be satisfied
	remaining := uint64(len(d.data) - d.pos - headLen)
	if arg > remaining/minItemSize {
		return 0, false, fmt.Errorf("offset %d: %w", d.pos, ErrUnexpectedEnd)
	}
	d.pos += headLen
	return int(arg), false, nil
}

// DecodeTag reads a semantic tag header and returns the tag number. The tag
// content follows as the next data item.
func (d *StreamDecoder) DecodeTag() (uint64, error) {
	return d.definiteHead(CborTypeTag, "tag")
}

// PeekTag returns the number of the tag at the current position without consuming it
func (d *StreamDecoder) PeekTag() (uint64, error) {
	start := d.pos
	tag, err := d.DecodeTag()
	d.pos = start
	return tag, err
}

// DecodeNull consumes a CBOR null
func (d *StreamDecoder) DecodeNull() error {
	t, err := d.PeekType()
	if err != nil {
		return err
	}
	if t != TypeNull {
		return &TypeError{Expected: "null", Found: t, Offset: d.pos}
	}
	d.pos++
	return nil
}

// DecodeBool reads a CBOR boolean
func (d *StreamDecoder) DecodeBool() (bool, error) {
	t, err := d.PeekType()
	if err != nil {
		return false, err
	}
	if t != TypeBool {
		return false, &TypeError{Expected: "bool", Found: t, Offset: d.pos}
	}
	ret := d.data[d.pos] == cborSimpleTrue
	d.pos++
	return ret, nil
}

// IsBreak returns true if the next byte terminates an indefinite-length item
func (d *StreamDecoder) IsBreak() (bool, error) {
	if d.pos >= len(d.data) {
		return false, fmt.Errorf("offset %d: %w", d.pos, ErrUnexpectedEnd)
	}
	return d.data[d.pos] == CborBreak, nil
}

// DecodeBreak consumes the break that terminates an indefinite-length item
func (d *StreamDecoder) DecodeBreak() error {
	isBreak, err := d.IsBreak()
	if err != nil {
		return err
	}
	if !isBreak {
		return &TypeError{
			Expected: "break",
			Found:    typeFromInitialByte(d.data[d.pos]),
			Offset:   d.pos,
		}
	}
	d.pos++
	return nil
}

// Skip consumes the next data item, whatever its type and nesting
func (d *StreamDecoder) Skip() error {
	_, _, err := d.Decode(&RawMessage{})
	return err
}

// Decode decodes the next CBOR item into dest and returns its byte range.
// Returns (startOffset, length, error).
func (d *StreamDecoder) Decode(dest any) (int, int, error) {
	start := d.pos
	if start >= len(d.data) {
		return 0, 0, fmt.Errorf("offset %d: %w", start, ErrUnexpectedEnd)
	}
	rest, err := d.decMode.UnmarshalFirst(d.data[start:], dest)
	if err != nil {
		return 0, 0, wrapLibraryError(start, err)
	}
	d.pos = len(d.data) - len(rest)
	return start, d.pos - start, nil
}
