// Copyright 2025 Blink Labs Software
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

package alonzo

import (
	"fmt"

	"github.com/blinklabs-io/plutigo/data"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// boundedBytesChunkSize is the maximum size of a single chunk when a bounded
// byte string is written in chunked form
const boundedBytesChunkSize = 64

// PlutusData is a node of the script data tree: Constr, PlutusMap, BigInt,
// BoundedBytes, PlutusArray or PlutusArrayIndef
type PlutusData interface {
	isPlutusData()
	ToPlutusData() (data.PlutusData, error)
	encode(*cbor.StreamEncoder) error
}

// Constr is a constructor application. Tag is the CBOR tag it was written
// with; Prefix holds the explicit constructor index of the general (102) form.
type Constr struct {
	Tag        uint64
	Prefix     *uint64
	Fields     []PlutusData
	Indefinite bool
}

// PlutusMap is a map of script data with its wire order and framing
type PlutusMap struct {
	Pairs      cbor.KeyValuePairs[PlutusData, PlutusData]
	Indefinite bool
}

// BoundedBytes is a byte string. Chunked values are written as an indefinite
// byte string of 64-byte chunks.
type BoundedBytes struct {
	Bytes   []byte
	Chunked bool
}

// PlutusArray is a definite-length list of script data
type PlutusArray []PlutusData

// PlutusArrayIndef is an indefinite-length list of script data
type PlutusArrayIndef []PlutusData

func (Constr) isPlutusData()           {}
func (PlutusMap) isPlutusData()        {}
func (BoundedBytes) isPlutusData()     {}
func (PlutusArray) isPlutusData()      {}
func (PlutusArrayIndef) isPlutusData() {}

// NewConstr builds a constructor for the given alternative using the compact
// tag ranges where possible and the general form otherwise. Non-empty field
// lists use indefinite framing.
func NewConstr(alternative uint64, fields ...PlutusData) Constr {
	if fields == nil {
		fields = []PlutusData{}
	}
	ret := Constr{
		Fields:     fields,
		Indefinite: len(fields) > 0,
	}
	switch {
	case alternative <= 6:
		ret.Tag = cbor.CborTagAlternative1Min + alternative
	case alternative <= 127:
		ret.Tag = cbor.CborTagAlternative2Min + alternative - 7
	default:
		ret.Tag = cbor.CborTagAlternativeGeneral
		prefix := alternative
		ret.Prefix = &prefix
	}
	return ret
}

// Alternative returns the constructor index encoded by the tag (or prefix)
func (c Constr) Alternative() (uint64, error) {
	switch {
	case c.Tag >= cbor.CborTagAlternative1Min && c.Tag <= cbor.CborTagAlternative1Max:
		return c.Tag - cbor.CborTagAlternative1Min, nil
	case c.Tag >= cbor.CborTagAlternative2Min && c.Tag <= cbor.CborTagAlternative2Max:
		return c.Tag - cbor.CborTagAlternative2Min + 7, nil
	case c.Tag == cbor.CborTagAlternativeGeneral:
		if c.Prefix == nil {
			return 0, fmt.Errorf("constructor with tag %d has no index", c.Tag)
		}
		return *c.Prefix, nil
	}
	return 0, InvalidTagError{TypeName: "constructor", Tag: c.Tag}
}

func (c Constr) encode(e *cbor.StreamEncoder) error {
	if !cbor.IsAlternativeTag(c.Tag) {
		return InvalidTagError{TypeName: "constructor", Tag: c.Tag}
	}
	e.EncodeTag(c.Tag)
	if c.Tag == cbor.CborTagAlternativeGeneral {
		if c.Prefix == nil {
			return fmt.Errorf("encode constructor: tag %d requires an index", c.Tag)
		}
		e.EncodeArrayHeader(2)
		e.EncodeUint(*c.Prefix)
	}
	return encodeListFramed(e, c.Fields, c.Indefinite, encodePlutusDataItem)
}

func (m PlutusMap) encode(e *cbor.StreamEncoder) error {
	return encodeMapFramed(
		e,
		m.Pairs,
		m.Indefinite,
		encodePlutusDataItem,
		encodePlutusDataItem,
	)
}

// NewBoundedBytes returns a byte string that uses the chunked form when it
// exceeds the single chunk size
func NewBoundedBytes(b []byte) BoundedBytes {
	return BoundedBytes{
		Bytes:   b,
		Chunked: len(b) > boundedBytesChunkSize,
	}
}

func (b BoundedBytes) encode(e *cbor.StreamEncoder) error {
	if !b.Chunked {
		e.EncodeBytes(b.Bytes)
		return nil
	}
	chunks := make([][]byte, 0, len(b.Bytes)/boundedBytesChunkSize+1)
	for start := 0; start < len(b.Bytes); start += boundedBytesChunkSize {
		end := min(start+boundedBytesChunkSize, len(b.Bytes))
		chunks = append(chunks, b.Bytes[start:end])
	}
	e.EncodeIndefBytes(chunks)
	return nil
}

func (a PlutusArray) encode(e *cbor.StreamEncoder) error {
	return encodeListFramed(e, a, false, encodePlutusDataItem)
}

func (a PlutusArrayIndef) encode(e *cbor.StreamEncoder) error {
	return encodeListFramed(e, a, true, encodePlutusDataItem)
}

func encodePlutusDataItem(e *cbor.StreamEncoder, p PlutusData) error {
	if p == nil {
		return fmt.Errorf("encode plutus data: nil value")
	}
	return p.encode(e)
}

// EncodePlutusData returns the CBOR encoding of a script data value
func EncodePlutusData(p PlutusData) ([]byte, error) {
	return encodeTop(func(e *cbor.StreamEncoder) error {
		return encodePlutusDataItem(e, p)
	})
}

// DecodePlutusData decodes a single script data value
func DecodePlutusData(cborData []byte, opts ...DecodeOptionFunc) (PlutusData, error) {
	return decodeTop(cborData, opts, decodePlutusData)
}

func decodePlutusData(d *decoder) (PlutusData, error) {
	const typeName = "plutus data"
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	start := d.Position()
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case cbor.TypeTag:
		tag, err := d.PeekTag()
		if err != nil {
			return nil, err
		}
		if cbor.IsAlternativeTag(tag) {
			return decodeConstr(d)
		}
		return decodeBigInt(d)
	case cbor.TypeUnsigned, cbor.TypeNegative:
		return decodeBigInt(d)
	case cbor.TypeMap, cbor.TypeMapIndef:
		pairs, indef, err := decodeMapFramed(
			d,
			typeName,
			decodePlutusData,
			decodePlutusData,
		)
		if err != nil {
			return nil, err
		}
		return PlutusMap{Pairs: pairs, Indefinite: indef}, nil
	case cbor.TypeBytes:
		b, err := d.DecodeBytes()
		if err != nil {
			return nil, fmt.Errorf("decode bounded bytes: %w", err)
		}
		return BoundedBytes{Bytes: b}, nil
	case cbor.TypeBytesIndef:
		chunks, err := d.DecodeByteStringChunks()
		if err != nil {
			return nil, fmt.Errorf("decode bounded bytes: %w", err)
		}
		b := []byte{}
		for _, chunk := range chunks {
			b = append(b, chunk...)
		}
		return BoundedBytes{Bytes: b, Chunked: true}, nil
	case cbor.TypeArray:
		items, _, err := decodeListFramed(d, typeName, decodePlutusData)
		if err != nil {
			return nil, err
		}
		return PlutusArray(items), nil
	case cbor.TypeArrayIndef:
		items, _, err := decodeListFramed(d, typeName, decodePlutusData)
		if err != nil {
			return nil, err
		}
		return PlutusArrayIndef(items), nil
	default:
		return nil, UnexpectedTypeError{
			TypeName: typeName,
			Found:    t,
			Offset:   start,
		}
	}
}

func decodeConstr(d *decoder) (Constr, error) {
	const typeName = "constructor"
	tag, err := d.DecodeTag()
	if err != nil {
		return Constr{}, err
	}
	ret := Constr{Tag: tag}
	if tag == cbor.CborTagAlternativeGeneral {
		if err := d.decodeRecordHeader(typeName, 2); err != nil {
			return Constr{}, err
		}
		prefix, err := d.DecodeUint()
		if err != nil {
			return Constr{}, fmt.Errorf("decode constructor index: %w", err)
		}
		ret.Prefix = &prefix
	}
	ret.Fields, ret.Indefinite, err = decodeListFramed(d, typeName, decodePlutusData)
	if err != nil {
		return Constr{}, err
	}
	return ret, nil
}
