// Copyright 2023 Blink Labs Software
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

import (
	"bytes"
	"fmt"
	"math/big"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	dumpDecMode     _cbor.DecMode
	dumpDecModeErr  error
	dumpDecModeOnce sync.Once
)

// Ledger maps are commonly keyed by byte strings, which the default decode
// mode rejects for generic values
func getDumpDecMode() (_cbor.DecMode, error) {
	dumpDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			MaxNestedLevels:  256,
			MapKeyByteString: _cbor.MapKeyByteStringAllowed,
		}
		dumpDecMode, dumpDecModeErr = decOptions.DecMode()
	})
	return dumpDecMode, dumpDecModeErr
}

// Dump decodes the first data item in cborData generically and renders it with
// DumpCborStructure
func Dump(cborData []byte) (string, error) {
	decMode, err := getDumpDecMode()
	if err != nil {
		return "", err
	}
	var tmp any
	if err := decMode.Unmarshal(cborData, &tmp); err != nil {
		return "", err
	}
	return DumpCborStructure(tmp, ""), nil
}

// DumpCborStructure generates an indented string representing an arbitrary data structure for debugging purposes
func DumpCborStructure(data any, prefix string) string {
	var ret bytes.Buffer
	newPrefix := prefix + "  "
	switch v := data.(type) {
	case int, uint, int16, uint16, int32, uint32, int64, uint64:
		return fmt.Sprintf("%s0x%x (%d),\n", prefix, v, v)
	case big.Int:
		return fmt.Sprintf("%s<bignum> %s,\n", prefix, v.String())
	case *big.Int:
		return fmt.Sprintf("%s<bignum> %s,\n", prefix, v.String())
	case []uint8:
		return fmt.Sprintf("%s<bytes> (length %d) %x,\n", prefix, len(v), v)
	case string:
		return fmt.Sprintf("%s%q,\n", prefix, v)
	case _cbor.ByteString:
		return fmt.Sprintf("%s<bytes> (length %d) %x,\n", prefix, len(v), []byte(v))
	case Tag:
		ret.WriteString(fmt.Sprintf("%s<tag %d>(\n", prefix, v.Number))
		ret.WriteString(DumpCborStructure(v.Content, newPrefix))
		ret.WriteString(prefix + "),\n")
	case []any:
		ret.WriteString(prefix + "[\n")
		for _, val := range v {
			ret.WriteString(DumpCborStructure(val, newPrefix))
		}
		ret.WriteString(prefix + "],\n")
	case map[any]any:
		ret.WriteString(prefix + "{\n")
		for key, val := range v {
			ret.WriteString(fmt.Sprintf("%s%#v =>\n", newPrefix, key))
			ret.WriteString(DumpCborStructure(val, newPrefix+"  "))
		}
		ret.WriteString(prefix + "},\n")
	default:
		return fmt.Sprintf("%s%#v,\n", prefix, v)
	}
	return ret.String()
}
