// Copyright 2024 Blink Labs Software
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

package cbor

const (
	// Useful tag numbers
	CborTagPositiveBignum = 2
	CborTagNegativeBignum = 3
	CborTagCbor           = 24
	CborTagRational       = 30
	CborTagSet            = 258
	CborTagMap            = 259

	// Tag ranges for "alternatives"
	// https://www.ietf.org/archive/id/draft-bormann-cbor-notable-tags-07.html#name-enumerated-alternative-data
	CborTagAlternative1Min = 121
	CborTagAlternative1Max = 127
	CborTagAlternative2Min = 1280
	CborTagAlternative2Max = 1400
	// General form: the constructor index is carried inside the content
	CborTagAlternativeGeneral = 102
)

// IsAlternativeTag returns true if the tag number introduces a constructor value
func IsAlternativeTag(tag uint64) bool {
	switch {
	case tag >= CborTagAlternative1Min && tag <= CborTagAlternative1Max:
		return true
	case tag >= CborTagAlternative2Min && tag <= CborTagAlternative2Max:
		return true
	case tag == CborTagAlternativeGeneral:
		return true
	}
	return false
}
