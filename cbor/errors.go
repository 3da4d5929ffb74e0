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

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedEnd is returned when the input ends in the middle of a data item
var ErrUnexpectedEnd = errors.New("unexpected end of CBOR input")

// ErrUnexpectedType is the sentinel matched by TypeError
var ErrUnexpectedType = errors.New("unexpected CBOR type")

// ErrMalformed is the sentinel matched by MalformedError
var ErrMalformed = errors.New("malformed CBOR")

// TypeError indicates that the next data item is well-formed but not of the
// type the caller asked for
type TypeError struct {
	Expected string
	Found    Type
	Offset   int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf(
		"expected CBOR %s at offset %d, found %s",
		e.Expected,
		e.Offset,
		e.Found,
	)
}

func (*TypeError) Is(target error) bool {
	return target == ErrUnexpectedType
}

// MalformedError indicates an ill-formed data item
type MalformedError struct {
	Offset int
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed CBOR at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (*MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// wrapLibraryError maps an error from the underlying CBOR library into this
// package's error taxonomy
func wrapLibraryError(offset int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("offset %d: %w", offset, ErrUnexpectedEnd)
	}
	return &MalformedError{Offset: offset, Err: err}
}
