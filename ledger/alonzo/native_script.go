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
	"slices"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

const (
	NativeScriptTypePubkey           = 0
	NativeScriptTypeAll              = 1
	NativeScriptTypeAny              = 2
	NativeScriptTypeNofK             = 3
	NativeScriptTypeInvalidBefore    = 4
	NativeScriptTypeInvalidHereafter = 5
)

// Script language prefixes used when hashing scripts
const (
	ScriptLanguageNative   = 0
	ScriptLanguagePlutusV1 = 1
)

// NativeScript is a multi-signature or timelock script tree
type NativeScript interface {
	isNativeScript()
	Type() uint
	encode(*cbor.StreamEncoder) error
}

type NativeScriptPubkey struct {
	Hash common.AddrKeyHash
}

// NativeScriptAll and the other combinators keep the framing of a decoded
// child list
type NativeScriptAll struct {
	Scripts    []NativeScript
	indefinite bool
}

type NativeScriptAny struct {
	Scripts    []NativeScript
	indefinite bool
}

type NativeScriptNofK struct {
	N          uint32
	Scripts    []NativeScript
	indefinite bool
}

type NativeScriptInvalidBefore struct {
	Slot uint64
}

type NativeScriptInvalidHereafter struct {
	Slot uint64
}

func (NativeScriptPubkey) isNativeScript()           {}
func (NativeScriptAll) isNativeScript()              {}
func (NativeScriptAny) isNativeScript()              {}
func (NativeScriptNofK) isNativeScript()             {}
func (NativeScriptInvalidBefore) isNativeScript()    {}
func (NativeScriptInvalidHereafter) isNativeScript() {}

func (NativeScriptPubkey) Type() uint           { return NativeScriptTypePubkey }
func (NativeScriptAll) Type() uint              { return NativeScriptTypeAll }
func (NativeScriptAny) Type() uint              { return NativeScriptTypeAny }
func (NativeScriptNofK) Type() uint             { return NativeScriptTypeNofK }
func (NativeScriptInvalidBefore) Type() uint    { return NativeScriptTypeInvalidBefore }
func (NativeScriptInvalidHereafter) Type() uint { return NativeScriptTypeInvalidHereafter }

func (s NativeScriptPubkey) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(NativeScriptTypePubkey)
	e.EncodeBytes(s.Hash.Bytes())
	return nil
}

func (s NativeScriptAll) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(NativeScriptTypeAll)
	return encodeListFramed(e, s.Scripts, s.indefinite, encodeNativeScriptItem)
}

func (s NativeScriptAny) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(NativeScriptTypeAny)
	return encodeListFramed(e, s.Scripts, s.indefinite, encodeNativeScriptItem)
}

func (s NativeScriptNofK) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(3)
	e.EncodeUint(NativeScriptTypeNofK)
	e.EncodeUint(uint64(s.N))
	return encodeListFramed(e, s.Scripts, s.indefinite, encodeNativeScriptItem)
}

func (s NativeScriptInvalidBefore) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(NativeScriptTypeInvalidBefore)
	e.EncodeUint(s.Slot)
	return nil
}

func (s NativeScriptInvalidHereafter) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(NativeScriptTypeInvalidHereafter)
	e.EncodeUint(s.Slot)
	return nil
}

func encodeNativeScriptItem(e *cbor.StreamEncoder, s NativeScript) error {
	if s == nil {
		return fmt.Errorf("encode native script: nil script")
	}
	return s.encode(e)
}

// EncodeNativeScript returns the CBOR encoding of a native script
func EncodeNativeScript(s NativeScript) ([]byte, error) {
	return encodeTop(func(e *cbor.StreamEncoder) error {
		return encodeNativeScriptItem(e, s)
	})
}

// DecodeNativeScript decodes a single native script
func DecodeNativeScript(data []byte, opts ...DecodeOptionFunc) (NativeScript, error) {
	return decodeTop(data, opts, decodeNativeScript)
}

// NativeScriptHash returns the script hash of a native script: blake2b-224 over
// the language prefix followed by the script CBOR
func NativeScriptHash(s NativeScript) (common.ScriptHash, error) {
	data, err := EncodeNativeScript(s)
	if err != nil {
		return common.ScriptHash{}, err
	}
	return common.Blake2b224Hash(
		slices.Concat([]byte{ScriptLanguageNative}, data),
	), nil
}

func decodeNativeScript(d *decoder) (NativeScript, error) {
	const typeName = "native script"
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	length, id, start, err := d.decodeVariantHeader(typeName)
	if err != nil {
		return nil, err
	}
	expected := 2
	switch id {
	case NativeScriptTypePubkey,
		NativeScriptTypeAll,
		NativeScriptTypeAny,
		NativeScriptTypeInvalidBefore,
		NativeScriptTypeInvalidHereafter:
	case NativeScriptTypeNofK:
		expected = 3
	default:
		return nil, UnknownVariantError{
			TypeName: typeName,
			Variant:  id,
			Offset:   start,
		}
	}
	if err := checkVariantLength(typeName, start, expected, length); err != nil {
		return nil, err
	}
	switch id {
	case NativeScriptTypePubkey:
		hash, err := d.decodeHash28("native script key hash")
		if err != nil {
			return nil, err
		}
		return NativeScriptPubkey{Hash: hash}, nil
	case NativeScriptTypeAll:
		scripts, indef, err := decodeListFramed(d, typeName, decodeNativeScript)
		if err != nil {
			return nil, err
		}
		return NativeScriptAll{Scripts: scripts, indefinite: indef}, nil
	case NativeScriptTypeAny:
		scripts, indef, err := decodeListFramed(d, typeName, decodeNativeScript)
		if err != nil {
			return nil, err
		}
		return NativeScriptAny{Scripts: scripts, indefinite: indef}, nil
	case NativeScriptTypeNofK:
		n, err := d.decodeUint32("native script required count")
		if err != nil {
			return nil, err
		}
		scripts, indef, err := decodeListFramed(d, typeName, decodeNativeScript)
		if err != nil {
			return nil, err
		}
		return NativeScriptNofK{N: n, Scripts: scripts, indefinite: indef}, nil
	case NativeScriptTypeInvalidBefore:
		slot, err := d.DecodeUint()
		if err != nil {
			return nil, fmt.Errorf("decode native script slot: %w", err)
		}
		return NativeScriptInvalidBefore{Slot: slot}, nil
	default:
		slot, err := d.DecodeUint()
		if err != nil {
			return nil, fmt.Errorf("decode native script slot: %w", err)
		}
		return NativeScriptInvalidHereafter{Slot: slot}, nil
	}
}

// PlutusScript is the flat-encoded bytes of a Plutus V1 script
type PlutusScript []byte

// Hash returns the script hash: blake2b-224 over the language prefix followed
// by the script bytes
func (s PlutusScript) Hash() common.ScriptHash {
	return common.Blake2b224Hash(
		slices.Concat([]byte{ScriptLanguagePlutusV1}, []byte(s)),
	)
}

func decodePlutusScript(d *decoder) (PlutusScript, error) {
	b, err := d.DecodeBytes()
	if err != nil {
		return nil, fmt.Errorf("decode plutus script: %w", err)
	}
	return PlutusScript(b), nil
}

func encodePlutusScriptItem(e *cbor.StreamEncoder, s PlutusScript) error {
	e.EncodeBytes(s)
	return nil
}
