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
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

// Transaction body field keys
const (
	TransactionBodyKeyInputs          = 0
	TransactionBodyKeyOutputs         = 1
	TransactionBodyKeyFee             = 2
	TransactionBodyKeyTtl             = 3
	TransactionBodyKeyCertificates    = 4
	TransactionBodyKeyWithdrawals     = 5
	TransactionBodyKeyUpdate          = 6
	TransactionBodyKeyAuxDataHash     = 7
	TransactionBodyKeyValidityStart   = 8
	TransactionBodyKeyMint            = 9
	TransactionBodyKeyScriptDataHash  = 11
	TransactionBodyKeyCollateral      = 13
	TransactionBodyKeyRequiredSigners = 14
	TransactionBodyKeyNetworkId       = 15
)

const (
	NetworkIdTestnet = 0
	NetworkIdMainnet = 1
)

// NetworkId is written as a bare unsigned integer
type NetworkId uint

func (n NetworkId) String() string {
	switch n {
	case NetworkIdTestnet:
		return "testnet"
	case NetworkIdMainnet:
		return "mainnet"
	}
	return fmt.Sprintf("unknown(%d)", uint(n))
}

func decodeNetworkId(d *decoder) (NetworkId, error) {
	start := d.Position()
	v, err := d.DecodeUint()
	if err != nil {
		return 0, fmt.Errorf("decode network id: %w", err)
	}
	if v != NetworkIdTestnet && v != NetworkIdMainnet {
		return 0, UnknownVariantError{
			TypeName: "network id",
			Variant:  v,
			Offset:   start,
		}
	}
	return NetworkId(v), nil
}

// TransactionInput is [transaction id, index]
type TransactionInput struct {
	TransactionId common.TransactionId
	Index         uint64
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TransactionId, i.Index)
}

func (i TransactionInput) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeBytes(i.TransactionId.Bytes())
	e.EncodeUint(i.Index)
	return nil
}

func encodeTransactionInputItem(e *cbor.StreamEncoder, i TransactionInput) error {
	return i.encode(e)
}

func decodeTransactionInput(d *decoder) (TransactionInput, error) {
	const typeName = "transaction input"
	if err := d.decodeRecordHeader(typeName, 2); err != nil {
		return TransactionInput{}, err
	}
	txId, err := d.decodeHash32("transaction id")
	if err != nil {
		return TransactionInput{}, err
	}
	index, err := d.DecodeUint()
	if err != nil {
		return TransactionInput{}, fmt.Errorf("decode %s index: %w", typeName, err)
	}
	return TransactionInput{TransactionId: txId, Index: index}, nil
}

// TransactionOutput is [address, amount, ? datum hash]. A nil DatumHash is
// written with the 2-element form.
type TransactionOutput struct {
	Address   common.Address
	Amount    Value
	DatumHash *common.DatumHash
}

func (o TransactionOutput) encode(e *cbor.StreamEncoder) error {
	if o.DatumHash != nil {
		e.EncodeArrayHeader(3)
	} else {
		e.EncodeArrayHeader(2)
	}
	e.EncodeBytes(o.Address)
	if err := o.Amount.encode(e); err != nil {
		return err
	}
	if o.DatumHash != nil {
		e.EncodeBytes(o.DatumHash.Bytes())
	}
	return nil
}

func encodeTransactionOutputItem(e *cbor.StreamEncoder, o TransactionOutput) error {
	return o.encode(e)
}

func decodeTransactionOutput(d *decoder) (TransactionOutput, error) {
	const typeName = "transaction output"
	start := d.Position()
	length, indef, err := d.DecodeArrayHeader()
	if err != nil {
		return TransactionOutput{}, fmt.Errorf("decode %s: %w", typeName, err)
	}
	if indef {
		return TransactionOutput{}, UnexpectedTypeError{
			TypeName: typeName,
			Found:    cbor.TypeArrayIndef,
			Offset:   start,
		}
	}
	if length != 2 && length != 3 {
		return TransactionOutput{}, InvalidLengthError{
			TypeName: typeName,
			Expected: 2,
			Actual:   length,
			Offset:   start,
		}
	}
	address, err := d.DecodeBytes()
	if err != nil {
		return TransactionOutput{}, fmt.Errorf("decode %s address: %w", typeName, err)
	}
	amount, err := decodeValue(d)
	if err != nil {
		return TransactionOutput{}, err
	}
	ret := TransactionOutput{
		Address: common.Address(address),
		Amount:  amount,
	}
	if length == 3 {
		datumHash, err := d.decodeHash32("datum hash")
		if err != nil {
			return TransactionOutput{}, err
		}
		ret.DatumHash = &datumHash
	}
	return ret, nil
}

// Withdrawals maps reward accounts to the amount withdrawn
type Withdrawals = cbor.KeyValuePairs[common.Address, uint64]

// TransactionBodyComponent is a single (key, value) entry of a transaction body
type TransactionBodyComponent interface {
	isTransactionBodyComponent()
	Key() uint64
	encodeValue(e *cbor.StreamEncoder, indefinite bool) error
}

type (
	TransactionBodyInputs          []TransactionInput
	TransactionBodyOutputs         []TransactionOutput
	TransactionBodyFee             uint64
	TransactionBodyTtl             uint64
	TransactionBodyCertificates    []Certificate
	TransactionBodyWithdrawals     Withdrawals
	TransactionBodyUpdate          SkippedValue
	TransactionBodyAuxDataHash     common.AuxDataHash
	TransactionBodyValidityStart   uint64
	TransactionBodyMint            Mint
	TransactionBodyScriptDataHash  common.ScriptDataHash
	TransactionBodyCollateral      []TransactionInput
	TransactionBodyRequiredSigners []common.AddrKeyHash
	TransactionBodyNetworkId       NetworkId
)

func (TransactionBodyInputs) isTransactionBodyComponent()          {}
func (TransactionBodyOutputs) isTransactionBodyComponent()         {}
func (TransactionBodyFee) isTransactionBodyComponent()             {}
func (TransactionBodyTtl) isTransactionBodyComponent()             {}
func (TransactionBodyCertificates) isTransactionBodyComponent()    {}
func (TransactionBodyWithdrawals) isTransactionBodyComponent()     {}
func (TransactionBodyUpdate) isTransactionBodyComponent()          {}
func (TransactionBodyAuxDataHash) isTransactionBodyComponent()     {}
func (TransactionBodyValidityStart) isTransactionBodyComponent()   {}
func (TransactionBodyMint) isTransactionBodyComponent()            {}
func (TransactionBodyScriptDataHash) isTransactionBodyComponent()  {}
func (TransactionBodyCollateral) isTransactionBodyComponent()      {}
func (TransactionBodyRequiredSigners) isTransactionBodyComponent() {}
func (TransactionBodyNetworkId) isTransactionBodyComponent()       {}

func (TransactionBodyInputs) Key() uint64          { return TransactionBodyKeyInputs }
func (TransactionBodyOutputs) Key() uint64         { return TransactionBodyKeyOutputs }
func (TransactionBodyFee) Key() uint64             { return TransactionBodyKeyFee }
func (TransactionBodyTtl) Key() uint64             { return TransactionBodyKeyTtl }
func (TransactionBodyCertificates) Key() uint64    { return TransactionBodyKeyCertificates }
func (TransactionBodyWithdrawals) Key() uint64     { return TransactionBodyKeyWithdrawals }
func (TransactionBodyUpdate) Key() uint64          { return TransactionBodyKeyUpdate }
func (TransactionBodyAuxDataHash) Key() uint64     { return TransactionBodyKeyAuxDataHash }
func (TransactionBodyValidityStart) Key() uint64   { return TransactionBodyKeyValidityStart }
func (TransactionBodyMint) Key() uint64            { return TransactionBodyKeyMint }
func (TransactionBodyScriptDataHash) Key() uint64  { return TransactionBodyKeyScriptDataHash }
func (TransactionBodyCollateral) Key() uint64      { return TransactionBodyKeyCollateral }
func (TransactionBodyRequiredSigners) Key() uint64 { return TransactionBodyKeyRequiredSigners }
func (TransactionBodyNetworkId) Key() uint64       { return TransactionBodyKeyNetworkId }

func (c TransactionBodyInputs) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeListFramed(e, c, indefinite, encodeTransactionInputItem)
}

func (c TransactionBodyOutputs) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeListFramed(e, c, indefinite, encodeTransactionOutputItem)
}

func (c TransactionBodyFee) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeUint(uint64(c))
	return nil
}

func (c TransactionBodyTtl) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeUint(uint64(c))
	return nil
}

func (c TransactionBodyCertificates) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeListFramed(e, c, indefinite, encodeCertificateItem)
}

func (c TransactionBodyWithdrawals) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeMapFramed(
		e,
		Withdrawals(c),
		indefinite,
		func(e *cbor.StreamEncoder, a common.Address) error {
			e.EncodeBytes(a)
			return nil
		},
		encodeUintItem,
	)
}

func (c TransactionBodyUpdate) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	return SkippedValue(c).encode(e)
}

func (c TransactionBodyAuxDataHash) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeBytes(c[:])
	return nil
}

func (c TransactionBodyValidityStart) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeUint(uint64(c))
	return nil
}

func (c TransactionBodyMint) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeMultiasset(
		e,
		Mint(c),
		multiassetFraming{indefinite: indefinite},
		encodeIntItem,
	)
}

func (c TransactionBodyScriptDataHash) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeBytes(c[:])
	return nil
}

func (c TransactionBodyCollateral) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeListFramed(e, c, indefinite, encodeTransactionInputItem)
}

func (c TransactionBodyRequiredSigners) encodeValue(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeListFramed(e, c, indefinite, encodeHash28Item)
}

func (c TransactionBodyNetworkId) encodeValue(e *cbor.StreamEncoder, _ bool) error {
	e.EncodeUint(uint64(c))
	return nil
}

// TransactionBody keeps its fields as an ordered list of components so that
// re-encoding reproduces the key order seen on the wire. A decoded body also
// keeps the framing of its map and of each component's containers.
type TransactionBody struct {
	cbor.DecodeStoreCbor
	Components  []TransactionBodyComponent
	framing     framing
	mintFraming multiassetFraming
}

func (b TransactionBody) encode(e *cbor.StreamEncoder) error {
	indefinite := b.framing.isIndefinite(framingSelf)
	encodeMapStart(e, len(b.Components), indefinite)
	for _, c := range b.Components {
		if c == nil {
			return fmt.Errorf("encode transaction body: nil component")
		}
		e.EncodeUint(c.Key())
		var err error
		if mint, ok := c.(TransactionBodyMint); ok {
			err = encodeMultiasset(e, Mint(mint), b.mintFraming, encodeIntItem)
		} else {
			err = c.encodeValue(e, b.framing.isIndefinite(c.Key()))
		}
		if err != nil {
			return fmt.Errorf("encode transaction body field %d: %w", c.Key(), err)
		}
	}
	encodeContainerEnd(e, indefinite)
	return nil
}

func encodeTransactionBodyItem(e *cbor.StreamEncoder, b TransactionBody) error {
	return b.encode(e)
}

// EncodeTransactionBody returns the CBOR encoding of a transaction body
func EncodeTransactionBody(b TransactionBody) ([]byte, error) {
	return encodeTop(b.encode)
}

// DecodeTransactionBody decodes a single transaction body
func DecodeTransactionBody(cborData []byte, opts ...DecodeOptionFunc) (TransactionBody, error) {
	return decodeTop(cborData, opts, decodeTransactionBody)
}

func decodeTransactionBody(d *decoder) (TransactionBody, error) {
	start := d.Position()
	var ret TransactionBody
	_, indef, err := d.decodeKeyedRecord(
		"transaction body",
		func(key uint64, _ int) (bool, error) {
			return ret.decodeComponent(d, key)
		},
	)
	if err != nil {
		return TransactionBody{}, err
	}
	ret.framing.mark(framingSelf, indef)
	if ret.Components == nil {
		ret.Components = []TransactionBodyComponent{}
	}
	ret.SetCbor(d.RawSince(start))
	return ret, nil
}

// decodeComponent decodes the value for key and appends it to the body
func (b *TransactionBody) decodeComponent(d *decoder, key uint64) (bool, error) {
	var c TransactionBodyComponent
	var indef bool
	var err error
	switch key {
	case TransactionBodyKeyInputs:
		var v []TransactionInput
		v, indef, err = decodeListFramed(d, "transaction input", decodeTransactionInput)
		c = TransactionBodyInputs(v)
	case TransactionBodyKeyOutputs:
		var v []TransactionOutput
		v, indef, err = decodeListFramed(d, "transaction output", decodeTransactionOutput)
		c = TransactionBodyOutputs(v)
	case TransactionBodyKeyFee:
		var v uint64
		v, err = d.DecodeUint()
		c = TransactionBodyFee(v)
	case TransactionBodyKeyTtl:
		var v uint64
		v, err = d.DecodeUint()
		c = TransactionBodyTtl(v)
	case TransactionBodyKeyCertificates:
		var v []Certificate
		v, indef, err = decodeListFramed(d, "certificate", decodeCertificate)
		c = TransactionBodyCertificates(v)
	case TransactionBodyKeyWithdrawals:
		var v Withdrawals
		v, indef, err = decodeMapFramed(
			d,
			"withdrawals",
			func(d *decoder) (common.Address, error) {
				raw, err := d.DecodeBytes()
				return common.Address(raw), err
			},
			decodeUintItem,
		)
		c = TransactionBodyWithdrawals(v)
	case TransactionBodyKeyUpdate:
		var v SkippedValue
		v, err = decodeSkippedValue(d, SkipFieldUpdate)
		c = TransactionBodyUpdate(v)
	case TransactionBodyKeyAuxDataHash:
		var v common.AuxDataHash
		v, err = d.decodeHash32("auxiliary data hash")
		c = TransactionBodyAuxDataHash(v)
	case TransactionBodyKeyValidityStart:
		var v uint64
		v, err = d.DecodeUint()
		c = TransactionBodyValidityStart(v)
	case TransactionBodyKeyMint:
		var v Mint
		v, b.mintFraming, err = decodeMultiasset(d, decodeIntItem)
		c = TransactionBodyMint(v)
	case TransactionBodyKeyScriptDataHash:
		var v common.ScriptDataHash
		v, err = d.decodeHash32("script data hash")
		c = TransactionBodyScriptDataHash(v)
	case TransactionBodyKeyCollateral:
		var v []TransactionInput
		v, indef, err = decodeListFramed(d, "collateral input", decodeTransactionInput)
		c = TransactionBodyCollateral(v)
	case TransactionBodyKeyRequiredSigners:
		var v []common.AddrKeyHash
		v, indef, err = decodeListFramed(d, "required signer", func(d *decoder) (common.AddrKeyHash, error) {
			return d.decodeHash28("required signer")
		})
		c = TransactionBodyRequiredSigners(v)
	case TransactionBodyKeyNetworkId:
		var v NetworkId
		v, err = decodeNetworkId(d)
		c = TransactionBodyNetworkId(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}
	b.framing.mark(key, indef)
	b.Components = append(b.Components, c)
	return true, nil
}

// Hash returns the transaction id. The original bytes are used for decoded
// bodies.
func (b TransactionBody) Hash() (common.TransactionId, error) {
	if cborData := b.Cbor(); cborData != nil {
		return common.Blake2b256Hash(cborData), nil
	}
	cborData, err := EncodeTransactionBody(b)
	if err != nil {
		return common.TransactionId{}, err
	}
	return common.Blake2b256Hash(cborData), nil
}

func findComponent[T TransactionBodyComponent](b TransactionBody) (T, bool) {
	for _, c := range b.Components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (b TransactionBody) Inputs() []TransactionInput {
	v, _ := findComponent[TransactionBodyInputs](b)
	return v
}

func (b TransactionBody) Outputs() []TransactionOutput {
	v, _ := findComponent[TransactionBodyOutputs](b)
	return v
}

func (b TransactionBody) Fee() uint64 {
	v, _ := findComponent[TransactionBodyFee](b)
	return uint64(v)
}

func (b TransactionBody) Ttl() (uint64, bool) {
	v, ok := findComponent[TransactionBodyTtl](b)
	return uint64(v), ok
}

func (b TransactionBody) Certificates() []Certificate {
	v, _ := findComponent[TransactionBodyCertificates](b)
	return v
}

func (b TransactionBody) Withdrawals() Withdrawals {
	v, _ := findComponent[TransactionBodyWithdrawals](b)
	return Withdrawals(v)
}

func (b TransactionBody) AuxDataHash() *common.AuxDataHash {
	v, ok := findComponent[TransactionBodyAuxDataHash](b)
	if !ok {
		return nil
	}
	ret := common.AuxDataHash(v)
	return &ret
}

func (b TransactionBody) ValidityIntervalStart() (uint64, bool) {
	v, ok := findComponent[TransactionBodyValidityStart](b)
	return uint64(v), ok
}

func (b TransactionBody) Mint() Mint {
	v, _ := findComponent[TransactionBodyMint](b)
	return Mint(v)
}

func (b TransactionBody) ScriptDataHash() *common.ScriptDataHash {
	v, ok := findComponent[TransactionBodyScriptDataHash](b)
	if !ok {
		return nil
	}
	ret := common.ScriptDataHash(v)
	return &ret
}

func (b TransactionBody) Collateral() []TransactionInput {
	v, _ := findComponent[TransactionBodyCollateral](b)
	return v
}

func (b TransactionBody) RequiredSigners() []common.AddrKeyHash {
	v, _ := findComponent[TransactionBodyRequiredSigners](b)
	return v
}

func (b TransactionBody) NetworkId() (NetworkId, bool) {
	v, ok := findComponent[TransactionBodyNetworkId](b)
	return NetworkId(v), ok
}
