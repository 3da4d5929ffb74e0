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
	"errors"
	"fmt"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// Sentinel errors so callers can use errors.Is
var (
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrUnexpectedType     = errors.New("unexpected CBOR type")
	ErrUnknownFieldKey    = errors.New("unknown field key")
	ErrDuplicateFieldKey  = errors.New("duplicate field key")
	ErrInvalidTag         = errors.New("invalid CBOR tag")
	ErrInvalidLength      = errors.New("invalid length")
	ErrNotRoundTrippable  = errors.New("value is not round-trippable")
	ErrMaxDepthExceeded   = errors.New("maximum nesting depth exceeded")
	ErrTrailingData       = errors.New("trailing data after CBOR value")
	ErrIntegerOutOfBounds = errors.New("integer out of bounds")
)

// UnknownVariantError indicates a discriminant that the type does not define
type UnknownVariantError struct {
	TypeName string
	Variant  uint64
	Offset   int
}

func (e UnknownVariantError) Error() string {
	return fmt.Sprintf(
		"unknown variant id %d for %s at offset %d",
		e.Variant,
		e.TypeName,
		e.Offset,
	)
}

func (UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// UnexpectedTypeError indicates a CBOR item whose type matches none of the
// shapes accepted at that position
type UnexpectedTypeError struct {
	TypeName string
	Found    cbor.Type
	Offset   int
}

func (e UnexpectedTypeError) Error() string {
	return fmt.Sprintf(
		"unexpected CBOR type %s for %s at offset %d",
		e.Found,
		e.TypeName,
		e.Offset,
	)
}

func (UnexpectedTypeError) Is(target error) bool {
	return target == ErrUnexpectedType || target == cbor.ErrUnexpectedType
}

// UnknownFieldKeyError indicates a map key that a keyed record does not define
type UnknownFieldKeyError struct {
	TypeName string
	Key      uint64
	Offset   int
}

func (e UnknownFieldKeyError) Error() string {
	return fmt.Sprintf(
		"unknown field key %d for %s at offset %d",
		e.Key,
		e.TypeName,
		e.Offset,
	)
}

func (UnknownFieldKeyError) Is(target error) bool {
	return target == ErrUnknownFieldKey
}

// DuplicateFieldKeyError indicates a keyed record that repeats a field
type DuplicateFieldKeyError struct {
	TypeName string
	Key      uint64
	Offset   int
}

func (e DuplicateFieldKeyError) Error() string {
	return fmt.Sprintf(
		"duplicate field key %d for %s at offset %d",
		e.Key,
		e.TypeName,
		e.Offset,
	)
}

func (DuplicateFieldKeyError) Is(target error) bool {
	return target == ErrDuplicateFieldKey
}

// InvalidTagError indicates a semantic tag that is not valid at that position
type InvalidTagError struct {
	TypeName string
	Tag      uint64
	Offset   int
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf(
		"invalid CBOR tag %d for %s at offset %d",
		e.Tag,
		e.TypeName,
		e.Offset,
	)
}

func (InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// InvalidLengthError indicates an array with the wrong number of items
type InvalidLengthError struct {
	TypeName string
	Expected int
	Actual   int
	Offset   int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf(
		"invalid length for %s at offset %d: expected %d, got %d",
		e.TypeName,
		e.Offset,
		e.Expected,
		e.Actual,
	)
}

func (InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// NotRoundTrippableError is returned when encoding a value that holds a
// skipped field, since the original content of that field was discarded
type NotRoundTrippableError struct {
	FieldID uint
}

func (e NotRoundTrippableError) Error() string {
	return fmt.Sprintf(
		"field %d was skipped during decode and cannot be encoded",
		e.FieldID,
	)
}

func (NotRoundTrippableError) Is(target error) bool {
	return target == ErrNotRoundTrippable
}
