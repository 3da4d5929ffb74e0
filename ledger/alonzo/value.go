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

type (
	PolicyId  = common.ScriptHash
	AssetName = []byte
)

// Multiasset maps policy id to asset name to quantity, in wire order
type Multiasset[T any] = cbor.KeyValuePairs[PolicyId, cbor.KeyValuePairs[AssetName, T]]

// Mint is a multiasset whose quantities may be negative (burns)
type Mint = Multiasset[int64]

// Value is an amount of lovelace, optionally with native assets. A nil Assets
// is written as a bare coin; a non-nil Assets (even empty) uses the
// [coin, multiasset] form.
type Value struct {
	Coin    uint64
	Assets  Multiasset[uint64]
	framing multiassetFraming
}

// HasAssets returns true if the value uses the multiasset form
func (v Value) HasAssets() bool {
	return v.Assets != nil
}

// Asset returns the quantity of a single asset
func (v Value) Asset(policyId PolicyId, assetName []byte) (uint64, bool) {
	assets, ok := cbor.Lookup(v.Assets, policyId)
	if !ok {
		return 0, false
	}
	return assets.Find(func(name AssetName) bool {
		return string(name) == string(assetName)
	})
}

func (v Value) encode(e *cbor.StreamEncoder) error {
	if v.Assets == nil {
		e.EncodeUint(v.Coin)
		return nil
	}
	e.EncodeArrayHeader(2)
	e.EncodeUint(v.Coin)
	return encodeMultiasset(e, v.Assets, v.framing, encodeUintItem)
}

func decodeValue(d *decoder) (Value, error) {
	start := d.Position()
	t, err := d.PeekType()
	if err != nil {
		return Value{}, err
	}
	switch t {
	case cbor.TypeUnsigned:
		coin, err := d.DecodeUint()
		if err != nil {
			return Value{}, err
		}
		return Value{Coin: coin}, nil
	case cbor.TypeArray:
		if err := d.decodeRecordHeader("value", 2); err != nil {
			return Value{}, err
		}
		coin, err := d.DecodeUint()
		if err != nil {
			return Value{}, fmt.Errorf("decode value coin: %w", err)
		}
		assets, assetsFraming, err := decodeMultiasset(d, decodeUintItem)
		if err != nil {
			return Value{}, err
		}
		return Value{Coin: coin, Assets: assets, framing: assetsFraming}, nil
	default:
		return Value{}, UnexpectedTypeError{
			TypeName: "value",
			Found:    t,
			Offset:   start,
		}
	}
}

func decodePolicyId(d *decoder) (PolicyId, error) {
	return d.decodeHash28("policy id")
}

// multiassetFraming records the framing of a decoded multiasset: the policy
// map itself and, by position, the asset map of each policy
type multiassetFraming struct {
	indefinite         bool
	indefinitePolicies []int
}

func decodeMultiasset[T any](
	d *decoder,
	decodeQuantity func(*decoder) (T, error),
) (Multiasset[T], multiassetFraming, error) {
	var ret multiassetFraming
	position := 0
	pairs, indef, err := decodeMapFramed(
		d,
		"multiasset",
		decodePolicyId,
		func(d *decoder) (cbor.KeyValuePairs[AssetName, T], error) {
			assets, indef, err := decodeMapFramed(d, "asset", decodeBytesItem, decodeQuantity)
			if indef {
				ret.indefinitePolicies = append(ret.indefinitePolicies, position)
			}
			position++
			return assets, err
		},
	)
	if err != nil {
		return nil, multiassetFraming{}, err
	}
	ret.indefinite = indef
	return pairs, ret, nil
}

func encodeMultiasset[T any](
	e *cbor.StreamEncoder,
	m Multiasset[T],
	f multiassetFraming,
	encodeQuantity func(*cbor.StreamEncoder, T) error,
) error {
	encodeMapStart(e, len(m), f.indefinite)
	for i, pair := range m {
		if err := encodeHash28Item(e, pair.Key); err != nil {
			return err
		}
		if err := encodeMapFramed(
			e,
			pair.Value,
			slices.Contains(f.indefinitePolicies, i),
			encodeBytesItem,
			encodeQuantity,
		); err != nil {
			return err
		}
	}
	encodeContainerEnd(e, f.indefinite)
	return nil
}
