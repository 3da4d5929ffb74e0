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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	// [1, h'abcd', 121([])]
	cborData, _ := hex.DecodeString("830142abcdd87980")
	out, err := cbor.Dump(cborData)
	require.NoError(t, err)
	expected := "[\n" +
		"  0x1 (1),\n" +
		"  <bytes> (length 2) abcd,\n" +
		"  <tag 121>(\n" +
		"    [\n" +
		"    ],\n" +
		"  ),\n" +
		"],\n"
	assert.Equal(t, expected, out)
}

func TestDumpByteStringMapKeys(t *testing.T) {
	// {h'01': 2}
	cborData, _ := hex.DecodeString("a1410102")
	out, err := cbor.Dump(cborData)
	require.NoError(t, err)
	assert.Contains(t, out, "0x2 (2)")
}

func TestDumpInvalid(t *testing.T) {
	_, err := cbor.Dump([]byte{0x82, 0x01})
	assert.Error(t, err)
}
