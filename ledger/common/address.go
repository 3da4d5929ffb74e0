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
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111
)

// Address holds the raw bytes of an address as they appear on the wire. The
// bytes are kept verbatim so that re-encoding is exact, and the header fields
// are interpreted on demand.
type Address []byte

// Type returns the address type from the header nibble
func (a Address) Type() uint8 {
	if len(a) == 0 {
		return 0
	}
	// Byron addresses are CBOR and always start with an array header
	if a[0] == 0x82 {
		return AddressTypeByron
	}
	return (a[0] & AddressHeaderTypeMask) >> 4
}

// NetworkId returns the network id from the header nibble
func (a Address) NetworkId() uint8 {
	if len(a) == 0 || a.Type() == AddressTypeByron {
		return 0
	}
	return a[0] & AddressHeaderNetworkMask
}

// IsReward returns true for stake (reward account) addresses
func (a Address) IsReward() bool {
	t := a.Type()
	return t == AddressTypeNoneKey || t == AddressTypeNoneScript
}

// StakeHash returns the hash carried by a reward account address
func (a Address) StakeHash() (Blake2b224, error) {
	if !a.IsReward() || len(a) != 1+AddressHashSize {
		return Blake2b224{}, fmt.Errorf("%w: not a reward address", ErrInvalidAddress)
	}
	return NewBlake2b224(a[1:]), nil
}

func (a Address) generateHRP() string {
	var ret string
	if a.IsReward() {
		ret = "stake"
	} else {
		ret = "addr"
	}
	// Add test_ suffix if not mainnet
	if a.NetworkId() != AddressNetworkMainnet {
		ret += "_test"
	}
	return ret
}

// String returns the bech32 form of the address, or base58 for Byron addresses.
// Addresses that cannot be rendered are shown as hex.
func (a Address) String() string {
	ret, err := a.Encode()
	if err != nil {
		return fmt.Sprintf("%x", []byte(a))
	}
	return ret
}

// Encode returns the human-readable form of the address
func (a Address) Encode() (string, error) {
	if len(a) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if a.Type() == AddressTypeByron {
		return base58.Encode(a), nil
	}
	return encodeBech32(a.generateHRP(), a)
}
