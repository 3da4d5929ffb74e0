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
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2bHash(t *testing.T) {
	testDefs := []struct {
		input    []byte
		expected string
		hashFunc func([]byte) string
	}{
		{
			input:    []byte{},
			expected: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
			hashFunc: func(b []byte) string { return Blake2b256Hash(b).String() },
		},
		{
			input:    []byte{},
			expected: "836cc68931c2e4e3e838602eca1902591d216837bafddfe6f0c8cb07",
			hashFunc: func(b []byte) string { return Blake2b224Hash(b).String() },
		},
		{
			input:    []byte("abc"),
			expected: "9bd237b02a29e43bdd6738afa5b53ff0eee178d6210b618e4511aec8",
			hashFunc: func(b []byte) string { return Blake2b224Hash(b).String() },
		},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.expected, testDef.hashFunc(testDef.input))
	}
}

func TestParseBlake2b(t *testing.T) {
	hash256, err := ParseBlake2b256(bytes.Repeat([]byte{0x01}, Blake2b256Size))
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, Blake2b256Size), hash256.Bytes())

	_, err = ParseBlake2b256(make([]byte, 31))
	require.ErrorIs(t, err, ErrInvalidHashLength)
	var lengthErr *HashLengthError
	require.True(t, errors.As(err, &lengthErr))
	assert.Equal(t, Blake2b256Size, lengthErr.Expected)
	assert.Equal(t, 31, lengthErr.Actual)

	hash224, err := ParseBlake2b224(bytes.Repeat([]byte{0x02}, Blake2b224Size))
	require.NoError(t, err)
	assert.Equal(t, NewBlake2b224(bytes.Repeat([]byte{0x02}, Blake2b224Size)), hash224)

	_, err = ParseBlake2b224(make([]byte, Blake2b256Size))
	assert.ErrorIs(t, err, ErrInvalidHashLength)
}

func TestBlake2bBech32(t *testing.T) {
	poolId, err := NewBlake2b224(bytes.Repeat([]byte{0x01}, Blake2b224Size)).Bech32("pool")
	require.NoError(t, err)
	assert.Equal(t, "pool1qyqszqgpqyqszqgpqyqszqgpqyqszqgpqyqszqgpqyqszp9s8mq", poolId)
}

func TestBlake2bMarshalJSON(t *testing.T) {
	hash := Blake2b224Hash([]byte("abc"))
	out, err := json.Marshal(map[string]any{"hash": hash})
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"hash":"9bd237b02a29e43bdd6738afa5b53ff0eee178d6210b618e4511aec8"}`,
		string(out),
	)
}
