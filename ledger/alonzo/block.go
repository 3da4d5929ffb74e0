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
	"math"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

const (
	EraIdAlonzo   = 4
	BlockTypeName = "alonzo"
)

// TransactionIndex is the position of a transaction within a block
type TransactionIndex = uint32

// AuxiliaryDataSet maps transaction indexes to auxiliary data, in wire order
type AuxiliaryDataSet = cbor.KeyValuePairs[TransactionIndex, AuxiliaryData]

// Block is [header, [transaction body], [witness set], {index => auxiliary
// data}, [invalid index]]
type Block struct {
	cbor.DecodeStoreCbor
	Header                 Header
	TransactionBodies      []TransactionBody
	TransactionWitnessSets []WitnessSet
	AuxiliaryData          AuxiliaryDataSet
	InvalidTransactions    []TransactionIndex
	framing                framing
}

// Positions of the block fields
const (
	blockPositionTransactionBodies   = 1
	blockPositionWitnessSets         = 2
	blockPositionAuxiliaryData       = 3
	blockPositionInvalidTransactions = 4
)

// Transaction groups the parts of a single transaction spread across a block
type Transaction struct {
	Body          TransactionBody
	WitnessSet    WitnessSet
	AuxiliaryData AuxiliaryData
	IsValid       bool
}

func (b Block) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(5)
	if err := b.Header.encode(e); err != nil {
		return err
	}
	if err := encodeListFramed(
		e,
		b.TransactionBodies,
		b.framing.isIndefinite(blockPositionTransactionBodies),
		encodeTransactionBodyItem,
	); err != nil {
		return err
	}
	if err := encodeListFramed(
		e,
		b.TransactionWitnessSets,
		b.framing.isIndefinite(blockPositionWitnessSets),
		encodeWitnessSetItem,
	); err != nil {
		return err
	}
	if err := encodeMapFramed(
		e,
		b.AuxiliaryData,
		b.framing.isIndefinite(blockPositionAuxiliaryData),
		encodeTransactionIndexItem,
		encodeAuxiliaryDataItem,
	); err != nil {
		return err
	}
	return encodeListFramed(
		e,
		b.InvalidTransactions,
		b.framing.isIndefinite(blockPositionInvalidTransactions),
		encodeTransactionIndexItem,
	)
}

func encodeTransactionIndexItem(e *cbor.StreamEncoder, idx TransactionIndex) error {
	e.EncodeUint(uint64(idx))
	return nil
}

func decodeTransactionIndex(d *decoder) (TransactionIndex, error) {
	return d.decodeUint32("transaction index")
}

func decodeBlock(d *decoder) (Block, error) {
	start := d.Position()
	if err := d.decodeRecordHeader("block", 5); err != nil {
		return Block{}, err
	}
	var ret Block
	var err error
	if ret.Header, err = decodeHeader(d); err != nil {
		return Block{}, err
	}
	var indef bool
	ret.TransactionBodies, indef, err = decodeListFramed(d, "transaction body", decodeTransactionBody)
	if err != nil {
		return Block{}, err
	}
	ret.framing.mark(blockPositionTransactionBodies, indef)
	ret.TransactionWitnessSets, indef, err = decodeListFramed(d, "witness set", decodeWitnessSet)
	if err != nil {
		return Block{}, err
	}
	ret.framing.mark(blockPositionWitnessSets, indef)
	ret.AuxiliaryData, indef, err = decodeMapFramed(
		d,
		"auxiliary data set",
		decodeTransactionIndex,
		decodeAuxiliaryData,
	)
	if err != nil {
		return Block{}, err
	}
	ret.framing.mark(blockPositionAuxiliaryData, indef)
	ret.InvalidTransactions, indef, err = decodeListFramed(d, "invalid transaction", decodeTransactionIndex)
	if err != nil {
		return Block{}, err
	}
	ret.framing.mark(blockPositionInvalidTransactions, indef)
	ret.SetCbor(d.RawSince(start))
	return ret, nil
}

// DecodeBlock decodes a block without the era wrapper
func DecodeBlock(cborData []byte, opts ...DecodeOptionFunc) (Block, error) {
	return decodeTop(cborData, opts, decodeBlock)
}

// EncodeBlock returns the CBOR encoding of a block
func EncodeBlock(b Block) ([]byte, error) {
	return encodeTop(b.encode)
}

func (b *Block) UnmarshalCBOR(cborData []byte) error {
	tmp, err := DecodeBlock(cborData)
	if err != nil {
		return err
	}
	*b = tmp
	return nil
}

func (b Block) MarshalCBOR() ([]byte, error) {
	return EncodeBlock(b)
}

func (b Block) Type() string {
	return BlockTypeName
}

// Hash returns the block hash, which is the hash of the header
func (b Block) Hash() (common.BlockHash, error) {
	return b.Header.Hash()
}

func (b Block) BlockNumber() uint64 {
	return b.Header.BlockNumber()
}

func (b Block) SlotNumber() uint64 {
	return b.Header.SlotNumber()
}

// Transactions pairs each transaction body with its witness set, auxiliary
// data and validity flag
func (b Block) Transactions() ([]Transaction, error) {
	if len(b.TransactionWitnessSets) != len(b.TransactionBodies) {
		return nil, fmt.Errorf(
			"block has %d transaction bodies but %d witness sets",
			len(b.TransactionBodies),
			len(b.TransactionWitnessSets),
		)
	}
	invalid := make(map[TransactionIndex]bool, len(b.InvalidTransactions))
	for _, idx := range b.InvalidTransactions {
		invalid[idx] = true
	}
	ret := make([]Transaction, len(b.TransactionBodies))
	for idx, body := range b.TransactionBodies {
		if uint64(idx) > math.MaxUint32 {
			return nil, fmt.Errorf("transaction index %d: %w", idx, ErrIntegerOutOfBounds)
		}
		// #nosec G115 -- bounds checked above
		txIdx := TransactionIndex(idx)
		auxData, _ := cbor.Lookup(b.AuxiliaryData, txIdx)
		ret[idx] = Transaction{
			Body:          body,
			WitnessSet:    b.TransactionWitnessSets[idx],
			AuxiliaryData: auxData,
			IsValid:       !invalid[txIdx],
		}
	}
	return ret, nil
}

// BlockWrapper is [era id, block] as found in the chain database
type BlockWrapper struct {
	Era   uint16
	Block Block
}

func (w BlockWrapper) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(uint64(w.Era))
	return w.Block.encode(e)
}

func decodeBlockWrapper(d *decoder) (BlockWrapper, error) {
	const typeName = "block wrapper"
	if err := d.decodeRecordHeader(typeName, 2); err != nil {
		return BlockWrapper{}, err
	}
	start := d.Position()
	era, err := d.DecodeUint()
	if err != nil {
		return BlockWrapper{}, fmt.Errorf("decode %s era: %w", typeName, err)
	}
	if era > math.MaxUint16 {
		return BlockWrapper{}, fmt.Errorf(
			"decode %s era at offset %d: %w: %d",
			typeName,
			start,
			ErrIntegerOutOfBounds,
			era,
		)
	}
	block, err := decodeBlock(d)
	if err != nil {
		return BlockWrapper{}, err
	}
	return BlockWrapper{Era: uint16(era), Block: block}, nil
}

// DecodeBlockWrapper decodes a block with its leading era id
func DecodeBlockWrapper(cborData []byte, opts ...DecodeOptionFunc) (BlockWrapper, error) {
	return decodeTop(cborData, opts, decodeBlockWrapper)
}

// EncodeBlockWrapper returns the CBOR encoding of a wrapped block
func EncodeBlockWrapper(w BlockWrapper) ([]byte, error) {
	return encodeTop(w.encode)
}

func (w *BlockWrapper) UnmarshalCBOR(cborData []byte) error {
	tmp, err := DecodeBlockWrapper(cborData)
	if err != nil {
		return err
	}
	*w = tmp
	return nil
}

func (w BlockWrapper) MarshalCBOR() ([]byte, error) {
	return EncodeBlockWrapper(w)
}
