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

package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
)

type Blake2b256 [Blake2b256Size]byte

// NewBlake2b256 copies data into a Blake2b256. Use ParseBlake2b256 when the
// length must be checked.
func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// ParseBlake2b256 converts data into a Blake2b256, failing if it is not exactly 32 bytes
func ParseBlake2b256(data []byte) (Blake2b256, error) {
	if len(data) != Blake2b256Size {
		return Blake2b256{}, &HashLengthError{Expected: Blake2b256Size, Actual: len(data)}
	}
	return NewBlake2b256(data), nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b256) Bech32(prefix string) (string, error) {
	return encodeBech32(prefix, b[:])
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	return Blake2b256(blake2b.Sum256(data))
}

type Blake2b224 [Blake2b224Size]byte

// NewBlake2b224 copies data into a Blake2b224. Use ParseBlake2b224 when the
// length must be checked.
func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// ParseBlake2b224 converts data into a Blake2b224, failing if it is not exactly 28 bytes
func ParseBlake2b224(data []byte) (Blake2b224, error) {
	if len(data) != Blake2b224Size {
		return Blake2b224{}, &HashLengthError{Expected: Blake2b224Size, Actual: len(data)}
	}
	return NewBlake2b224(data), nil
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b224) Bech32(prefix string) (string, error) {
	return encodeBech32(prefix, b[:])
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

// Hash types by role
type (
	AddrKeyHash         = Blake2b224
	ScriptHash          = Blake2b224
	PoolKeyHash         = Blake2b224
	GenesisHash         = Blake2b224
	GenesisDelegateHash = Blake2b224
	VrfKeyHash          = Blake2b256
	TransactionId       = Blake2b256
	AuxDataHash         = Blake2b256
	ScriptDataHash      = Blake2b256
	DatumHash           = Blake2b256
	BlockHash           = Blake2b256
)

func encodeBech32(prefix string, payload []byte) (string, error) {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert data to base32: %w", err)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		return "", fmt.Errorf("encode data as bech32: %w", err)
	}
	return encoded, nil
}
