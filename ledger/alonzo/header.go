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

const headerBodyFieldCount = 15

// VrfCert is [output, proof]
type VrfCert struct {
	Output []byte
	Proof  []byte
}

func (v VrfCert) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeBytes(v.Output)
	e.EncodeBytes(v.Proof)
	return nil
}

func decodeVrfCert(d *decoder) (VrfCert, error) {
	if err := d.decodeRecordHeader("vrf cert", 2); err != nil {
		return VrfCert{}, err
	}
	output, err := d.DecodeBytes()
	if err != nil {
		return VrfCert{}, fmt.Errorf("decode vrf output: %w", err)
	}
	proof, err := d.DecodeBytes()
	if err != nil {
		return VrfCert{}, fmt.Errorf("decode vrf proof: %w", err)
	}
	return VrfCert{Output: output, Proof: proof}, nil
}

// HeaderBody is the signed part of a block header. PrevHash is nil for the
// first block of a chain.
type HeaderBody struct {
	BlockNumber          uint64
	Slot                 uint64
	PrevHash             *common.BlockHash
	IssuerVkey           []byte
	VrfKey               []byte
	NonceVrf             VrfCert
	LeaderVrf            VrfCert
	BlockBodySize        uint64
	BlockBodyHash        common.Blake2b256
	OpCertHotVkey        []byte
	OpCertSequenceNumber uint64
	OpCertKesPeriod      uint64
	OpCertSignature      []byte
	ProtoMajorVersion    uint64
	ProtoMinorVersion    uint64
}

func (h HeaderBody) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(headerBodyFieldCount)
	e.EncodeUint(h.BlockNumber)
	e.EncodeUint(h.Slot)
	if err := encodeNullable(e, h.PrevHash, encodeHash32Item); err != nil {
		return err
	}
	e.EncodeBytes(h.IssuerVkey)
	e.EncodeBytes(h.VrfKey)
	if err := h.NonceVrf.encode(e); err != nil {
		return err
	}
	if err := h.LeaderVrf.encode(e); err != nil {
		return err
	}
	e.EncodeUint(h.BlockBodySize)
	e.EncodeBytes(h.BlockBodyHash.Bytes())
	e.EncodeBytes(h.OpCertHotVkey)
	e.EncodeUint(h.OpCertSequenceNumber)
	e.EncodeUint(h.OpCertKesPeriod)
	e.EncodeBytes(h.OpCertSignature)
	e.EncodeUint(h.ProtoMajorVersion)
	e.EncodeUint(h.ProtoMinorVersion)
	return nil
}

func decodeHeaderBody(d *decoder) (HeaderBody, error) {
	const typeName = "header body"
	if err := d.decodeRecordHeader(typeName, headerBodyFieldCount); err != nil {
		return HeaderBody{}, err
	}
	var ret HeaderBody
	var err error
	if ret.BlockNumber, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode block number: %w", err)
	}
	if ret.Slot, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode slot: %w", err)
	}
	ret.PrevHash, err = decodeNullable(d, func(d *decoder) (common.BlockHash, error) {
		return d.decodeHash32("previous hash")
	})
	if err != nil {
		return HeaderBody{}, err
	}
	if ret.IssuerVkey, err = d.DecodeBytes(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode issuer vkey: %w", err)
	}
	if ret.VrfKey, err = d.DecodeBytes(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode vrf key: %w", err)
	}
	if ret.NonceVrf, err = decodeVrfCert(d); err != nil {
		return HeaderBody{}, err
	}
	if ret.LeaderVrf, err = decodeVrfCert(d); err != nil {
		return HeaderBody{}, err
	}
	if ret.BlockBodySize, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode block body size: %w", err)
	}
	if ret.BlockBodyHash, err = d.decodeHash32("block body hash"); err != nil {
		return HeaderBody{}, err
	}
	if ret.OpCertHotVkey, err = d.DecodeBytes(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode operational cert hot vkey: %w", err)
	}
	if ret.OpCertSequenceNumber, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode operational cert sequence number: %w", err)
	}
	if ret.OpCertKesPeriod, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode operational cert kes period: %w", err)
	}
	if ret.OpCertSignature, err = d.DecodeBytes(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode operational cert signature: %w", err)
	}
	if ret.ProtoMajorVersion, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode protocol major version: %w", err)
	}
	if ret.ProtoMinorVersion, err = d.DecodeUint(); err != nil {
		return HeaderBody{}, fmt.Errorf("decode protocol minor version: %w", err)
	}
	return ret, nil
}

// Header is [header body, body signature]
type Header struct {
	cbor.DecodeStoreCbor
	Body      HeaderBody
	Signature []byte
}

func (h Header) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	if err := h.Body.encode(e); err != nil {
		return err
	}
	e.EncodeBytes(h.Signature)
	return nil
}

// Hash returns the block hash. The original bytes are used for decoded
// headers.
func (h Header) Hash() (common.BlockHash, error) {
	if cborData := h.Cbor(); cborData != nil {
		return common.Blake2b256Hash(cborData), nil
	}
	cborData, err := EncodeHeader(h)
	if err != nil {
		return common.BlockHash{}, err
	}
	return common.Blake2b256Hash(cborData), nil
}

func (h Header) BlockNumber() uint64 {
	return h.Body.BlockNumber
}

func (h Header) SlotNumber() uint64 {
	return h.Body.Slot
}

// IssuerPoolId returns the pool id of the block issuer
func (h Header) IssuerPoolId() common.PoolKeyHash {
	return common.Blake2b224Hash(h.Body.IssuerVkey)
}

func decodeHeader(d *decoder) (Header, error) {
	start := d.Position()
	if err := d.decodeRecordHeader("header", 2); err != nil {
		return Header{}, err
	}
	body, err := decodeHeaderBody(d)
	if err != nil {
		return Header{}, err
	}
	sig, err := d.DecodeBytes()
	if err != nil {
		return Header{}, fmt.Errorf("decode header signature: %w", err)
	}
	ret := Header{Body: body, Signature: sig}
	ret.SetCbor(d.RawSince(start))
	return ret, nil
}

// DecodeHeader decodes a block header
func DecodeHeader(cborData []byte, opts ...DecodeOptionFunc) (Header, error) {
	return decodeTop(cborData, opts, decodeHeader)
}

// EncodeHeader returns the CBOR encoding of a block header
func EncodeHeader(h Header) ([]byte, error) {
	return encodeTop(h.encode)
}

func (h *Header) UnmarshalCBOR(cborData []byte) error {
	tmp, err := DecodeHeader(cborData)
	if err != nil {
		return err
	}
	*h = tmp
	return nil
}

func (h Header) MarshalCBOR() ([]byte, error) {
	return EncodeHeader(h)
}
