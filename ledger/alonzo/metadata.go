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
	"math/big"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// Metadata maps metadata labels to values, in wire order
type Metadata = cbor.KeyValuePairs[uint64, TransactionMetadatum]

type TransactionMetadatum interface {
	isTransactionMetadatum()
	TypeName() string
	encode(*cbor.StreamEncoder) error
}

type MetaInt struct{ Value *big.Int }

type MetaBytes struct{ Value []byte }

type MetaText struct{ Value string }

type MetaList struct {
	Items      []TransactionMetadatum
	Indefinite bool
}

type MetaMap struct {
	Pairs      cbor.KeyValuePairs[TransactionMetadatum, TransactionMetadatum]
	Indefinite bool
}

func (MetaInt) isTransactionMetadatum()   {}
func (MetaBytes) isTransactionMetadatum() {}
func (MetaText) isTransactionMetadatum()  {}
func (MetaList) isTransactionMetadatum()  {}
func (MetaMap) isTransactionMetadatum()   {}

func (m MetaInt) TypeName() string   { return "int" }
func (m MetaBytes) TypeName() string { return "bytes" }
func (m MetaText) TypeName() string  { return "text" }
func (m MetaList) TypeName() string  { return "list" }
func (m MetaMap) TypeName() string   { return "map" }

func (m MetaInt) encode(e *cbor.StreamEncoder) error {
	if m.Value == nil {
		e.EncodeUint(0)
		return nil
	}
	return e.EncodeInteger(m.Value)
}

func (m MetaBytes) encode(e *cbor.StreamEncoder) error {
	e.EncodeBytes(m.Value)
	return nil
}

func (m MetaText) encode(e *cbor.StreamEncoder) error {
	e.EncodeText(m.Value)
	return nil
}

func (m MetaList) encode(e *cbor.StreamEncoder) error {
	return encodeListFramed(e, m.Items, m.Indefinite, encodeMetadatumItem)
}

func (m MetaMap) encode(e *cbor.StreamEncoder) error {
	return encodeMapFramed(
		e,
		m.Pairs,
		m.Indefinite,
		encodeMetadatumItem,
		encodeMetadatumItem,
	)
}

func encodeMetadatumItem(e *cbor.StreamEncoder, m TransactionMetadatum) error {
	if m == nil {
		return fmt.Errorf("encode metadatum: nil value")
	}
	return m.encode(e)
}

func encodeMetadata(e *cbor.StreamEncoder, m Metadata, indefinite bool) error {
	return encodeMapFramed(e, m, indefinite, encodeUintItem, encodeMetadatumItem)
}

func decodeMetadata(d *decoder) (Metadata, bool, error) {
	return decodeMapFramed(d, "metadata", decodeUintItem, decodeMetadatum)
}

func decodeMetadatum(d *decoder) (TransactionMetadatum, error) {
	const typeName = "metadatum"
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
	case cbor.TypeUnsigned, cbor.TypeNegative:
		v, err := d.DecodeInteger()
		if err != nil {
			return nil, err
		}
		return MetaInt{Value: v}, nil
	case cbor.TypeBytes:
		b, err := d.DecodeBytes()
		if err != nil {
			return nil, err
		}
		return MetaBytes{Value: b}, nil
	case cbor.TypeText:
		s, err := d.DecodeText()
		if err != nil {
			return nil, err
		}
		return MetaText{Value: s}, nil
	case cbor.TypeArray, cbor.TypeArrayIndef:
		items, indef, err := decodeListFramed(d, typeName, decodeMetadatum)
		if err != nil {
			return nil, err
		}
		return MetaList{Items: items, Indefinite: indef}, nil
	case cbor.TypeMap, cbor.TypeMapIndef:
		pairs, indef, err := decodeMapFramed(
			d,
			typeName,
			decodeMetadatum,
			decodeMetadatum,
		)
		if err != nil {
			return nil, err
		}
		return MetaMap{Pairs: pairs, Indefinite: indef}, nil
	default:
		return nil, UnexpectedTypeError{
			TypeName: typeName,
			Found:    t,
			Offset:   start,
		}
	}
}
