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
	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

// Field keys of the Alonzo auxiliary data record
const (
	AuxiliaryDataKeyMetadata      = 0
	AuxiliaryDataKeyNativeScripts = 1
	AuxiliaryDataKeyPlutusScripts = 2
)

// AuxiliaryData is the per-transaction auxiliary data. The variant is chosen
// by the wire shape: a map (Shelley), a 2-element array (Shelley-MA) or a
// tag 259 record (Alonzo).
type AuxiliaryData interface {
	isAuxiliaryData()
	Cbor() []byte
	encode(*cbor.StreamEncoder) error
}

// ShelleyAuxiliaryData is a bare metadata map
type ShelleyAuxiliaryData struct {
	cbor.DecodeStoreCbor
	Metadata Metadata
	framing  framing
}

// ShelleyMaAuxiliaryData is [metadata, [native script]]
type ShelleyMaAuxiliaryData struct {
	cbor.DecodeStoreCbor
	Metadata      Metadata
	NativeScripts []NativeScript
	framing       framing
}

// AlonzoAuxiliaryData is #6.259({? 0: metadata, ? 1: [native script], ? 2: [plutus script]})
type AlonzoAuxiliaryData struct {
	cbor.DecodeStoreCbor
	Metadata      Metadata
	NativeScripts []NativeScript
	PlutusScripts []PlutusScript
	keyOrder      []uint64
	framing       framing
}

func (ShelleyAuxiliaryData) isAuxiliaryData()   {}
func (ShelleyMaAuxiliaryData) isAuxiliaryData() {}
func (AlonzoAuxiliaryData) isAuxiliaryData()    {}

// Positions of the Shelley-MA auxiliary data fields
const (
	shelleyMaPositionMetadata      = 0
	shelleyMaPositionNativeScripts = 1
)

func (a ShelleyAuxiliaryData) encode(e *cbor.StreamEncoder) error {
	return encodeMetadata(e, a.Metadata, a.framing.isIndefinite(framingSelf))
}

func (a ShelleyMaAuxiliaryData) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	if err := encodeMetadata(
		e,
		a.Metadata,
		a.framing.isIndefinite(shelleyMaPositionMetadata),
	); err != nil {
		return err
	}
	return encodeListFramed(
		e,
		a.NativeScripts,
		a.framing.isIndefinite(shelleyMaPositionNativeScripts),
		encodeNativeScriptItem,
	)
}

func (a AlonzoAuxiliaryData) presentKeys() []uint64 {
	ret := make([]uint64, 0, 3)
	if a.Metadata != nil {
		ret = append(ret, AuxiliaryDataKeyMetadata)
	}
	if a.NativeScripts != nil {
		ret = append(ret, AuxiliaryDataKeyNativeScripts)
	}
	if a.PlutusScripts != nil {
		ret = append(ret, AuxiliaryDataKeyPlutusScripts)
	}
	return ret
}

func (a AlonzoAuxiliaryData) encode(e *cbor.StreamEncoder) error {
	e.EncodeTag(cbor.CborTagMap)
	keys := fieldOrder(a.keyOrder, a.presentKeys())
	indefinite := a.framing.isIndefinite(framingSelf)
	encodeMapStart(e, len(keys), indefinite)
	for _, key := range keys {
		e.EncodeUint(key)
		fieldIndef := a.framing.isIndefinite(key)
		var err error
		switch key {
		case AuxiliaryDataKeyMetadata:
			err = encodeMetadata(e, a.Metadata, fieldIndef)
		case AuxiliaryDataKeyNativeScripts:
			err = encodeListFramed(e, a.NativeScripts, fieldIndef, encodeNativeScriptItem)
		case AuxiliaryDataKeyPlutusScripts:
			err = encodeListFramed(e, a.PlutusScripts, fieldIndef, encodePlutusScriptItem)
		}
		if err != nil {
			return err
		}
	}
	encodeContainerEnd(e, indefinite)
	return nil
}

// EncodeAuxiliaryData returns the CBOR encoding of auxiliary data
func EncodeAuxiliaryData(a AuxiliaryData) ([]byte, error) {
	return encodeTop(a.encode)
}

// DecodeAuxiliaryData decodes a single auxiliary data value
func DecodeAuxiliaryData(cborData []byte, opts ...DecodeOptionFunc) (AuxiliaryData, error) {
	return decodeTop(cborData, opts, decodeAuxiliaryData)
}

// AuxiliaryDataHash returns the hash committed to by a transaction body. The
// original bytes are used for decoded values.
func AuxiliaryDataHash(a AuxiliaryData) (common.AuxDataHash, error) {
	if cborData := a.Cbor(); cborData != nil {
		return common.Blake2b256Hash(cborData), nil
	}
	cborData, err := EncodeAuxiliaryData(a)
	if err != nil {
		return common.AuxDataHash{}, err
	}
	return common.Blake2b256Hash(cborData), nil
}

func encodeAuxiliaryDataItem(e *cbor.StreamEncoder, a AuxiliaryData) error {
	return a.encode(e)
}

func decodeAuxiliaryData(d *decoder) (AuxiliaryData, error) {
	const typeName = "auxiliary data"
	start := d.Position()
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case cbor.TypeMap, cbor.TypeMapIndef:
		metadata, indef, err := decodeMetadata(d)
		if err != nil {
			return nil, err
		}
		ret := ShelleyAuxiliaryData{Metadata: metadata}
		ret.framing.mark(framingSelf, indef)
		ret.SetCbor(d.RawSince(start))
		return ret, nil
	case cbor.TypeArray:
		if err := d.decodeRecordHeader(typeName, 2); err != nil {
			return nil, err
		}
		metadata, metadataIndef, err := decodeMetadata(d)
		if err != nil {
			return nil, err
		}
		scripts, scriptsIndef, err := decodeListFramed(d, "auxiliary script", decodeNativeScript)
		if err != nil {
			return nil, err
		}
		ret := ShelleyMaAuxiliaryData{
			Metadata:      metadata,
			NativeScripts: scripts,
		}
		ret.framing.mark(shelleyMaPositionMetadata, metadataIndef)
		ret.framing.mark(shelleyMaPositionNativeScripts, scriptsIndef)
		ret.SetCbor(d.RawSince(start))
		return ret, nil
	case cbor.TypeTag:
		ret, err := decodeAlonzoAuxiliaryData(d)
		if err != nil {
			return nil, err
		}
		ret.SetCbor(d.RawSince(start))
		return ret, nil
	default:
		return nil, UnexpectedTypeError{
			TypeName: typeName,
			Found:    t,
			Offset:   start,
		}
	}
}

func decodeAlonzoAuxiliaryData(d *decoder) (AlonzoAuxiliaryData, error) {
	const typeName = "alonzo auxiliary data"
	start := d.Position()
	tag, err := d.DecodeTag()
	if err != nil {
		return AlonzoAuxiliaryData{}, err
	}
	if tag != cbor.CborTagMap {
		return AlonzoAuxiliaryData{}, InvalidTagError{
			TypeName: typeName,
			Tag:      tag,
			Offset:   start,
		}
	}
	var ret AlonzoAuxiliaryData
	var indef bool
	ret.keyOrder, indef, err = d.decodeKeyedRecord(
		typeName,
		func(key uint64, _ int) (bool, error) {
			var fieldIndef bool
			var err error
			switch key {
			case AuxiliaryDataKeyMetadata:
				ret.Metadata, fieldIndef, err = decodeMetadata(d)
			case AuxiliaryDataKeyNativeScripts:
				ret.NativeScripts, fieldIndef, err = decodeListFramed(d, "native script", decodeNativeScript)
			case AuxiliaryDataKeyPlutusScripts:
				ret.PlutusScripts, fieldIndef, err = decodeListFramed(d, "plutus script", decodePlutusScript)
			default:
				return false, nil
			}
			ret.framing.mark(key, fieldIndef)
			return true, err
		},
	)
	if err != nil {
		return AlonzoAuxiliaryData{}, err
	}
	ret.framing.mark(framingSelf, indef)
	return ret, nil
}
