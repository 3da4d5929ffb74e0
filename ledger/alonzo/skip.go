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
)

// Field identifiers reported for skipped values
const (
	SkipFieldUpdate uint = 22
)

// SkippedValue stands in for a field whose content is not modeled. Decoding
// accepts any well-formed value and discards it. Encoding always fails with
// NotRoundTrippableError.
type SkippedValue struct {
	FieldID uint
	Type    cbor.Type
}

func (s SkippedValue) encode(*cbor.StreamEncoder) error {
	return NotRoundTrippableError{FieldID: s.FieldID}
}

func decodeSkippedValue(d *decoder, fieldID uint) (SkippedValue, error) {
	t, err := d.PeekType()
	if err != nil {
		return SkippedValue{}, err
	}
	d.config.diagnostics.SkippedValue(fieldID, t)
	if err := d.Skip(); err != nil {
		return SkippedValue{}, err
	}
	return SkippedValue{FieldID: fieldID, Type: t}, nil
}
