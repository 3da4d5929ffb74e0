// Copyright 2026 Blink Labs Software
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

// Package cbor provides the CBOR primitive layer used by the ledger codecs.
//
// It wraps github.com/fxamacker/cbor/v2 for whole-value work (well-formedness
// checks, skipping, text and bignum handling) and adds a streaming API that
// exposes framing details the ledger needs to re-encode byte-for-byte.
//
// # Key Types
//
//   - StreamDecoder: reads one primitive at a time; PeekType inspects the next
//     item without consuming it
//   - StreamEncoder: writes primitives; containers are a header plus items
//   - KeyValuePairs: ordered mapping that keeps duplicate keys
//   - DecodeStoreCbor: embed to keep the original CBOR bytes for hashing
//
// # Errors
//
// Decode failures are one of ErrUnexpectedEnd (input ended inside an item),
// *TypeError (well-formed item of the wrong type, matches ErrUnexpectedType)
// or *MalformedError (ill-formed item, matches ErrMalformed).
//
// # Encoding Gotchas
//
//  1. Hash computation: use Cbor() on decoded values, not re-encoded data
//  2. Indefinite vs definite length: the two framings are not interchangeable
//  3. Integer width: the encoder always picks the shortest head
package cbor
