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

// Package common provides the hash and address types shared by the ledger
// codecs.
//
// # Key Files by Purpose
//
//   - common.go: Blake2b256 and Blake2b224 hashes and their role aliases
//     (TransactionId, ScriptHash, PoolKeyHash, ...)
//   - address.go: raw address bytes with on-demand header interpretation
//   - errors.go: HashLengthError and ErrInvalidAddress
//
// # Hashing
//
// Hashes of decoded values must be computed over the original CBOR bytes.
// Blake2b256Hash and Blake2b224Hash take those bytes directly.
package common
