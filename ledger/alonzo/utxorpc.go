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

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

func (i TransactionInput) Utxorpc() (*utxorpc.TxInput, error) {
	if i.Index > math.MaxUint32 {
		return nil, fmt.Errorf("input index %d: %w", i.Index, ErrIntegerOutOfBounds)
	}
	return &utxorpc.TxInput{
		TxHash: i.TransactionId.Bytes(),
		// #nosec G115 -- bounds checked above
		OutputIndex: uint32(i.Index),
	}, nil
}

func (o TransactionOutput) Utxorpc() (*utxorpc.TxOutput, error) {
	var assets []*utxorpc.Multiasset
	for policyId, policyAssets := range o.Amount.Assets.All() {
		ma := &utxorpc.Multiasset{
			PolicyId: policyId.Bytes(),
		}
		for assetName, amount := range policyAssets.All() {
			ma.Assets = append(
				ma.Assets,
				&utxorpc.Asset{
					Name:       assetName,
					OutputCoin: amount,
				},
			)
		}
		assets = append(assets, ma)
	}
	ret := &utxorpc.TxOutput{
		Address: o.Address,
		Coin:    o.Amount.Coin,
		Assets:  assets,
	}
	if o.DatumHash != nil {
		ret.Datum = &utxorpc.Datum{
			Hash: o.DatumHash.Bytes(),
		}
	}
	return ret, nil
}

// Utxorpc builds the utxorpc representation of the transaction
func (b TransactionBody) Utxorpc() (*utxorpc.Tx, error) {
	hash, err := b.Hash()
	if err != nil {
		return nil, err
	}
	txi := []*utxorpc.TxInput{}
	for _, input := range b.Inputs() {
		in, err := input.Utxorpc()
		if err != nil {
			return nil, err
		}
		txi = append(txi, in)
	}
	txo := []*utxorpc.TxOutput{}
	for _, output := range b.Outputs() {
		out, err := output.Utxorpc()
		if err != nil {
			return nil, err
		}
		txo = append(txo, out)
	}
	return &utxorpc.Tx{
		Inputs:  txi,
		Outputs: txo,
		Fee:     b.Fee(),
		Hash:    hash.Bytes(),
	}, nil
}

// Utxorpc builds the utxorpc representation of the block
func (b Block) Utxorpc() (*utxorpc.Block, error) {
	txs := []*utxorpc.Tx{}
	for _, body := range b.TransactionBodies {
		tx, err := body.Utxorpc()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	hash, err := b.Hash()
	if err != nil {
		return nil, err
	}
	return &utxorpc.Block{
		Body: &utxorpc.BlockBody{
			Tx: txs,
		},
		Header: &utxorpc.BlockHeader{
			Hash:   hash.Bytes(),
			Height: b.BlockNumber(),
			Slot:   b.SlotNumber(),
		},
	}, nil
}
