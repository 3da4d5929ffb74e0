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

// Package testdata provides shared block data for tests and benchmarks.
package testdata

import (
	_ "embed"
	"encoding/hex"
	"strings"
)

// Synthetic Alonzo block with two transactions. The first sets every modeled
// transaction body field and carries one certificate of each kind. The witness
// sets hold script data with indefinite framing, bignums, chunked bytes and
// the general constructor form. The second transaction is marked invalid.
//
// Slot: 72316767
// Block number: 6500000
// Hash: 41b66ce7a831aa902bb526b0a6b3201f600db2137c3385d961f09027fa5953eb
//
//go:embed alonzo_block.hex
var AlonzoBlockHex string

const (
	AlonzoBlockHash        = "41b66ce7a831aa902bb526b0a6b3201f600db2137c3385d961f09027fa5953eb"
	AlonzoBlockSlot        = 72316767
	AlonzoBlockNumber      = 6500000
	AlonzoBlockTx0Id       = "af8c794a494cd70b48f529217452338915510e1e81f6431eb57a4f14b73c4a7b"
	AlonzoBlockTx1Id       = "248a7f838796829e3253f5a8485599db43fe4ba4436e9ff3361d11bf7e49c164"
	AlonzoBlockAuxDataHash = "d9d7a402b12d4dc6d7897d1937060ea519935aac3f3350e4da9447e622e670f0"
)

// MustDecodeHex decodes a hex string to bytes, panicking on error.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		panic(err)
	}
	return b
}
