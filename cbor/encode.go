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

package cbor

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
			// Values that don't fit a native integer use tags 2/3
			BigIntConvert: _cbor.BigIntConvertShortest,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// Encode encodes an arbitrary Go value using deterministic map key ordering
func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	enc := em.NewEncoder(buf)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StreamEncoder writes CBOR primitives into an in-memory buffer. Containers are
// written as a header followed by their items, so the caller controls framing.
// A StreamEncoder is not safe for concurrent use.
type StreamEncoder struct {
	buf bytes.Buffer
}

func NewStreamEncoder() *StreamEncoder {
	return &StreamEncoder{}
}

// Bytes returns the encoded data written so far
func (e *StreamEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// writeHead writes the initial byte and argument of a data item using the
// shortest form
func (e *StreamEncoder) writeHead(major uint8, arg uint64) {
	var tmp [9]byte
	switch {
	case arg <= uint64(CborMaxUintSimple):
		e.buf.WriteByte(major | uint8(arg))
		return
	case arg <= 0xff:
		tmp[0] = major | 24
		tmp[1] = uint8(arg)
		e.buf.Write(tmp[:2])
	case arg <= 0xffff:
		tmp[0] = major | 25
		binary.BigEndian.PutUint16(tmp[1:], uint16(arg))
		e.buf.Write(tmp[:3])
	case arg <= 0xffffffff:
		tmp[0] = major | 26
		binary.BigEndian.PutUint32(tmp[1:], uint32(arg))
		e.buf.Write(tmp[:5])
	default:
		tmp[0] = major | 27
		binary.BigEndian.PutUint64(tmp[1:], arg)
		e.buf.Write(tmp[:9])
	}
}

func (e *StreamEncoder) EncodeUint(v uint64) {
	e.writeHead(CborTypeUnsigned, v)
}

func (e *StreamEncoder) EncodeInt(v int64) {
	if v < 0 {
		e.writeHead(CborTypeNegative, uint64(-1-v))
		return
	}
	e.writeHead(CborTypeUnsigned, uint64(v))
}

// EncodeInteger writes an arbitrary-precision integer. Values outside the
// native CBOR integer range are written as tag 2/3 bignums.
func (e *StreamEncoder) EncodeInteger(v *big.Int) error {
	em, err := getEncMode()
	if err != nil {
		return err
	}
	data, err := em.Marshal(v)
	if err != nil {
		return err
	}
	e.buf.Write(data)
	return nil
}

func (e *StreamEncoder) EncodeBytes(v []byte) {
	e.writeHead(CborTypeByteString, uint64(len(v)))
	e.buf.Write(v)
}

func (e *StreamEncoder) EncodeText(v string) {
	e.writeHead(CborTypeTextString, uint64(len(v)))
	e.buf.WriteString(v)
}

func (e *StreamEncoder) EncodeArrayHeader(length int) {
	e.writeHead(CborTypeArray, uint64(length))
}

// EncodeIndefArray starts an indefinite-length array. The caller terminates it
// with EncodeBreak.
func (e *StreamEncoder) EncodeIndefArray() {
	e.buf.WriteByte(CborTypeArray | CborIndefinite)
}

func (e *StreamEncoder) EncodeMapHeader(length int) {
	e.writeHead(CborTypeMap, uint64(length))
}

// EncodeIndefMap starts an indefinite-length map. The caller terminates it
// with EncodeBreak.
func (e *StreamEncoder) EncodeIndefMap() {
	e.buf.WriteByte(CborTypeMap | CborIndefinite)
}

// EncodeIndefBytes writes an indefinite-length byte string made of the given chunks
func (e *StreamEncoder) EncodeIndefBytes(chunks [][]byte) {
	e.buf.WriteByte(CborTypeByteString | CborIndefinite)
	for _, chunk := range chunks {
		e.EncodeBytes(chunk)
	}
	e.EncodeBreak()
}

func (e *StreamEncoder) EncodeBreak() {
	e.buf.WriteByte(CborBreak)
}

// EncodeTag writes a semantic tag header. The tag content must follow.
func (e *StreamEncoder) EncodeTag(tag uint64) {
	e.writeHead(CborTypeTag, tag)
}

func (e *StreamEncoder) EncodeNull() {
	e.buf.WriteByte(cborSimpleNull)
}

func (e *StreamEncoder) EncodeBool(v bool) {
	if v {
		e.buf.WriteByte(cborSimpleTrue)
		return
	}
	e.buf.WriteByte(cborSimpleFalse)
}

// EncodeRaw writes pre-encoded CBOR as-is
func (e *StreamEncoder) EncodeRaw(data []byte) {
	e.buf.Write(data)
}
