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

package cbor

// Type is the kind of the next CBOR data item, as reported by
// StreamDecoder.PeekType without consuming anything
type Type uint8

const (
	TypeUnknown Type = iota
	TypeUnsigned
	TypeNegative
	TypeBytes
	TypeBytesIndef
	TypeText
	TypeTextIndef
	TypeArray
	TypeArrayIndef
	TypeMap
	TypeMapIndef
	TypeTag
	TypeBool
	TypeNull
	TypeUndefined
	TypeFloat
	TypeSimple
	TypeBreak
)

var typeNames = map[Type]string{
	TypeUnknown:    "unknown",
	TypeUnsigned:   "unsigned",
	TypeNegative:   "negative",
	TypeBytes:      "bytes",
	TypeBytesIndef: "bytes (indefinite)",
	TypeText:       "text",
	TypeTextIndef:  "text (indefinite)",
	TypeArray:      "array",
	TypeArrayIndef: "array (indefinite)",
	TypeMap:        "map",
	TypeMapIndef:   "map (indefinite)",
	TypeTag:        "tag",
	TypeBool:       "bool",
	TypeNull:       "null",
	TypeUndefined:  "undefined",
	TypeFloat:      "float",
	TypeSimple:     "simple",
	TypeBreak:      "break",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[TypeUnknown]
}

// IsInteger returns true for the native integer types (major types 0 and 1)
func (t Type) IsInteger() bool {
	return t == TypeUnsigned || t == TypeNegative
}

// typeFromInitialByte maps the first byte of a data item to its Type
func typeFromInitialByte(b byte) Type {
	info := b & CborInfoMask
	switch b & CborTypeMask {
	case CborTypeUnsigned:
		return TypeUnsigned
	case CborTypeNegative:
		return TypeNegative
	case CborTypeByteString:
		if info == CborIndefinite {
			return TypeBytesIndef
		}
		return TypeBytes
	case CborTypeTextString:
		if info == CborIndefinite {
			return TypeTextIndef
		}
		return TypeText
	case CborTypeArray:
		if info == CborIndefinite {
			return TypeArrayIndef
		}
		return TypeArray
	case CborTypeMap:
		if info == CborIndefinite {
			return TypeMapIndef
		}
		return TypeMap
	case CborTypeTag:
		return TypeTag
	}
	// Major type 7
	switch b {
	case cborSimpleFalse, cborSimpleTrue:
		return TypeBool
	case cborSimpleNull:
		return TypeNull
	case cborSimpleUndefined:
		return TypeUndefined
	case CborBreak:
		return TypeBreak
	}
	switch info {
	case 25, 26, 27:
		return TypeFloat
	default:
		return TypeSimple
	}
}
