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

// Datum is a script data value as it appears in a witness set. A decoded
// datum keeps its original bytes, which its hash is computed over.
type Datum struct {
	cbor.DecodeStoreCbor
	Data PlutusData
}

// NewDatum wraps a script data value built in code
func NewDatum(p PlutusData) Datum {
	return Datum{Data: p}
}

// Hash returns the datum hash. The original bytes are used for decoded
// datums, otherwise the value is encoded first.
func (d Datum) Hash() (common.DatumHash, error) {
	if cborData := d.Cbor(); cborData != nil {
		return common.Blake2b256Hash(cborData), nil
	}
	cborData, err := EncodePlutusData(d.Data)
	if err != nil {
		return common.DatumHash{}, err
	}
	return common.Blake2b256Hash(cborData), nil
}

func encodeDatumItem(e *cbor.StreamEncoder, d Datum) error {
	return encodePlutusDataItem(e, d.Data)
}

// EncodeDatum returns the CBOR encoding of a datum
func EncodeDatum(d Datum) ([]byte, error) {
	return EncodePlutusData(d.Data)
}

// DecodeDatum decodes a single datum and keeps its original bytes
func DecodeDatum(cborData []byte, opts ...DecodeOptionFunc) (Datum, error) {
	return decodeTop(cborData, opts, decodeDatum)
}

func decodeDatum(d *decoder) (Datum, error) {
	start := d.Position()
	p, err := decodePlutusData(d)
	if err != nil {
		return Datum{}, err
	}
	ret := Datum{Data: p}
	ret.SetCbor(d.RawSince(start))
	return ret, nil
}
