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
	"errors"
	"fmt"
)

// Sentinel error for hash length mismatches so callers can use errors.Is
var ErrInvalidHashLength = errors.New("invalid hash length")

// HashLengthError indicates a byte string that does not have the size of the hash it should hold
type HashLengthError struct {
	Expected int
	Actual   int
}

func (e *HashLengthError) Error() string {
	return fmt.Sprintf(
		"invalid hash length: expected %d bytes, got %d",
		e.Expected,
		e.Actual,
	)
}

func (*HashLengthError) Is(target error) bool {
	return target == ErrInvalidHashLength
}

// Sentinel error for malformed addresses
var ErrInvalidAddress = errors.New("invalid address")
