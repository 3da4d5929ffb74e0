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

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// Witness set field keys
const (
	WitnessSetKeyVkeyWitnesses      = 0
	WitnessSetKeyNativeScripts      = 1
	WitnessSetKeyBootstrapWitnesses = 2
	WitnessSetKeyPlutusScripts      = 3
	WitnessSetKeyPlutusData         = 4
	WitnessSetKeyRedeemers          = 5
)

const (
	RedeemerTagSpend  = 0
	RedeemerTagMint   = 1
	RedeemerTagCert   = 2
	RedeemerTagReward = 3
)

// RedeemerTag names the kind of script purpose and is written as a bare
// unsigned integer
type RedeemerTag uint

func (t RedeemerTag) String() string {
	switch t {
	case RedeemerTagSpend:
		return "spend"
	case RedeemerTagMint:
		return "mint"
	case RedeemerTagCert:
		return "cert"
	case RedeemerTagReward:
		return "reward"
	}
	return fmt.Sprintf("unknown(%d)", uint(t))
}

func decodeRedeemerTag(d *decoder) (RedeemerTag, error) {
	start := d.Position()
	v, err := d.DecodeUint()
	if err != nil {
		return 0, fmt.Errorf("decode redeemer tag: %w", err)
	}
	if v > RedeemerTagReward {
		return 0, UnknownVariantError{
			TypeName: "redeemer tag",
			Variant:  v,
			Offset:   start,
		}
	}
	return RedeemerTag(v), nil
}

// VkeyWitness is [vkey, signature]
type VkeyWitness struct {
	Vkey      []byte
	Signature []byte
}

// BootstrapWitness is [public key, signature, chain code, attributes]
type BootstrapWitness struct {
	PublicKey  []byte
	Signature  []byte
	ChainCode  []byte
	Attributes []byte
}

// ExUnits is [memory, steps]
type ExUnits struct {
	Memory uint64
	Steps  uint64
}

// Redeemer is [tag, index, data, ex units]
type Redeemer struct {
	Tag     RedeemerTag
	Index   uint64
	Data    PlutusData
	ExUnits ExUnits
}

func encodeVkeyWitnessItem(e *cbor.StreamEncoder, w VkeyWitness) error {
	e.EncodeArrayHeader(2)
	e.EncodeBytes(w.Vkey)
	e.EncodeBytes(w.Signature)
	return nil
}

func decodeVkeyWitness(d *decoder) (VkeyWitness, error) {
	const typeName = "vkey witness"
	if err := d.decodeRecordHeader(typeName, 2); err != nil {
		return VkeyWitness{}, err
	}
	vkey, err := d.DecodeBytes()
	if err != nil {
		return VkeyWitness{}, fmt.Errorf("decode %s vkey: %w", typeName, err)
	}
	sig, err := d.DecodeBytes()
	if err != nil {
		return VkeyWitness{}, fmt.Errorf("decode %s signature: %w", typeName, err)
	}
	return VkeyWitness{Vkey: vkey, Signature: sig}, nil
}

func encodeBootstrapWitnessItem(e *cbor.StreamEncoder, w BootstrapWitness) error {
	e.EncodeArrayHeader(4)
	e.EncodeBytes(w.PublicKey)
	e.EncodeBytes(w.Signature)
	e.EncodeBytes(w.ChainCode)
	e.EncodeBytes(w.Attributes)
	return nil
}

func decodeBootstrapWitness(d *decoder) (BootstrapWitness, error) {
	const typeName = "bootstrap witness"
	if err := d.decodeRecordHeader(typeName, 4); err != nil {
		return BootstrapWitness{}, err
	}
	var fields [4][]byte
	for i := range fields {
		b, err := d.DecodeBytes()
		if err != nil {
			return BootstrapWitness{}, fmt.Errorf("decode %s field %d: %w", typeName, i, err)
		}
		fields[i] = b
	}
	return BootstrapWitness{
		PublicKey:  fields[0],
		Signature:  fields[1],
		ChainCode:  fields[2],
		Attributes: fields[3],
	}, nil
}

func encodeRedeemerItem(e *cbor.StreamEncoder, r Redeemer) error {
	e.EncodeArrayHeader(4)
	e.EncodeUint(uint64(r.Tag))
	e.EncodeUint(r.Index)
	if err := encodePlutusDataItem(e, r.Data); err != nil {
		return err
	}
	e.EncodeArrayHeader(2)
	e.EncodeUint(r.ExUnits.Memory)
	e.EncodeUint(r.ExUnits.Steps)
	return nil
}

func decodeRedeemer(d *decoder) (Redeemer, error) {
	const typeName = "redeemer"
	if err := d.decodeRecordHeader(typeName, 4); err != nil {
		return Redeemer{}, err
	}
	var ret Redeemer
	var err error
	if ret.Tag, err = decodeRedeemerTag(d); err != nil {
		return Redeemer{}, err
	}
	if ret.Index, err = d.DecodeUint(); err != nil {
		return Redeemer{}, fmt.Errorf("decode %s index: %w", typeName, err)
	}
	if ret.Data, err = decodePlutusData(d); err != nil {
		return Redeemer{}, err
	}
	if err := d.decodeRecordHeader("ex units", 2); err != nil {
		return Redeemer{}, err
	}
	if ret.ExUnits.Memory, err = d.DecodeUint(); err != nil {
		return Redeemer{}, fmt.Errorf("decode ex units memory: %w", err)
	}
	if ret.ExUnits.Steps, err = d.DecodeUint(); err != nil {
		return Redeemer{}, fmt.Errorf("decode ex units steps: %w", err)
	}
	return ret, nil
}

// WitnessSet is a field-keyed record where every field is optional. A nil
// slice means the field is absent.
type WitnessSet struct {
	cbor.DecodeStoreCbor
	VkeyWitnesses      []VkeyWitness
	NativeScripts      []NativeScript
	BootstrapWitnesses []BootstrapWitness
	PlutusScripts      []PlutusScript
	PlutusData         []Datum
	Redeemers          []Redeemer
	keyOrder           []uint64
	framing            framing
}

func (w WitnessSet) presentKeys() []uint64 {
	ret := make([]uint64, 0, 6)
	if w.VkeyWitnesses != nil {
		ret = append(ret, WitnessSetKeyVkeyWitnesses)
	}
	if w.NativeScripts != nil {
		ret = append(ret, WitnessSetKeyNativeScripts)
	}
	if w.BootstrapWitnesses != nil {
		ret = append(ret, WitnessSetKeyBootstrapWitnesses)
	}
	if w.PlutusScripts != nil {
		ret = append(ret, WitnessSetKeyPlutusScripts)
	}
	if w.PlutusData != nil {
		ret = append(ret, WitnessSetKeyPlutusData)
	}
	if w.Redeemers != nil {
		ret = append(ret, WitnessSetKeyRedeemers)
	}
	return ret
}

func (w WitnessSet) encode(e *cbor.StreamEncoder) error {
	keys := fieldOrder(w.keyOrder, w.presentKeys())
	indefinite := w.framing.isIndefinite(framingSelf)
	encodeMapStart(e, len(keys), indefinite)
	for _, key := range keys {
		e.EncodeUint(key)
		fieldIndef := w.framing.isIndefinite(key)
		var err error
		switch key {
		case WitnessSetKeyVkeyWitnesses:
			err = encodeListFramed(e, w.VkeyWitnesses, fieldIndef, encodeVkeyWitnessItem)
		case WitnessSetKeyNativeScripts:
			err = encodeListFramed(e, w.NativeScripts, fieldIndef, encodeNativeScriptItem)
		case WitnessSetKeyBootstrapWitnesses:
			err = encodeListFramed(e, w.BootstrapWitnesses, fieldIndef, encodeBootstrapWitnessItem)
		case WitnessSetKeyPlutusScripts:
			err = encodeListFramed(e, w.PlutusScripts, fieldIndef, encodePlutusScriptItem)
		case WitnessSetKeyPlutusData:
			err = encodeListFramed(e, w.PlutusData, fieldIndef, encodeDatumItem)
		case WitnessSetKeyRedeemers:
			err = encodeListFramed(e, w.Redeemers, fieldIndef, encodeRedeemerItem)
		}
		if err != nil {
			return fmt.Errorf("encode witness set field %d: %w", key, err)
		}
	}
	encodeContainerEnd(e, indefinite)
	return nil
}

func encodeWitnessSetItem(e *cbor.StreamEncoder, w WitnessSet) error {
	return w.encode(e)
}

// EncodeWitnessSet returns the CBOR encoding of a witness set
func EncodeWitnessSet(w WitnessSet) ([]byte, error) {
	return encodeTop(w.encode)
}

// DecodeWitnessSet decodes a single witness set
func DecodeWitnessSet(cborData []byte, opts ...DecodeOptionFunc) (WitnessSet, error) {
	return decodeTop(cborData, opts, decodeWitnessSet)
}

func decodeWitnessSet(d *decoder) (WitnessSet, error) {
	start := d.Position()
	var ret WitnessSet
	var indef bool
	var err error
	ret.keyOrder, indef, err = d.decodeKeyedRecord(
		"witness set",
		func(key uint64, _ int) (bool, error) {
			var fieldIndef bool
			var err error
			switch key {
			case WitnessSetKeyVkeyWitnesses:
				ret.VkeyWitnesses, fieldIndef, err = decodeListFramed(d, "vkey witness", decodeVkeyWitness)
			case WitnessSetKeyNativeScripts:
				ret.NativeScripts, fieldIndef, err = decodeListFramed(d, "native script", decodeNativeScript)
			case WitnessSetKeyBootstrapWitnesses:
				ret.BootstrapWitnesses, fieldIndef, err = decodeListFramed(d, "bootstrap witness", decodeBootstrapWitness)
			case WitnessSetKeyPlutusScripts:
				ret.PlutusScripts, fieldIndef, err = decodeListFramed(d, "plutus script", decodePlutusScript)
			case WitnessSetKeyPlutusData:
				ret.PlutusData, fieldIndef, err = decodeListFramed(d, "plutus data", decodeDatum)
			case WitnessSetKeyRedeemers:
				ret.Redeemers, fieldIndef, err = decodeListFramed(d, "redeemer", decodeRedeemer)
			default:
				return false, nil
			}
			ret.framing.mark(key, fieldIndef)
			return true, err
		},
	)
	if err != nil {
		return WitnessSet{}, err
	}
	ret.framing.mark(framingSelf, indef)
	ret.SetCbor(d.RawSince(start))
	return ret, nil
}
