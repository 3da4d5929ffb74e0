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

const (
	StakeCredentialTypeAddrKeyHash = 0
	StakeCredentialTypeScriptHash  = 1
)

// StakeCredential is either a key hash or a script hash
type StakeCredential struct {
	Type uint
	Hash common.Blake2b224
}

func (c StakeCredential) IsScript() bool {
	return c.Type == StakeCredentialTypeScriptHash
}

func (c StakeCredential) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(uint64(c.Type))
	e.EncodeBytes(c.Hash.Bytes())
	return nil
}

func encodeStakeCredentialItem(e *cbor.StreamEncoder, c StakeCredential) error {
	return c.encode(e)
}

func decodeStakeCredential(d *decoder) (StakeCredential, error) {
	const typeName = "stake credential"
	length, id, start, err := d.decodeVariantHeader(typeName)
	if err != nil {
		return StakeCredential{}, err
	}
	switch id {
	case StakeCredentialTypeAddrKeyHash, StakeCredentialTypeScriptHash:
	default:
		return StakeCredential{}, UnknownVariantError{
			TypeName: typeName,
			Variant:  id,
			Offset:   start,
		}
	}
	if err := checkVariantLength(typeName, start, 2, length); err != nil {
		return StakeCredential{}, err
	}
	hash, err := d.decodeHash28(typeName)
	if err != nil {
		return StakeCredential{}, err
	}
	return StakeCredential{Type: uint(id), Hash: hash}, nil
}
