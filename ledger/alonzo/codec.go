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
	"fmt"
	"math"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

// decoder carries the per-call decode state: the primitive stream, the
// configured diagnostics sink and the current nesting depth
type decoder struct {
	*cbor.StreamDecoder
	config decodeConfig
	depth  int
}

func newDecoder(data []byte, opts ...DecodeOptionFunc) (*decoder, error) {
	sd, err := cbor.NewStreamDecoder(data)
	if err != nil {
		return nil, err
	}
	return &decoder{
		StreamDecoder: sd,
		config:        newDecodeConfig(opts...),
	}, nil
}

// enter must be paired with leave around the decode of every recursive structure
func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.config.maxDepth {
		return fmt.Errorf(
			"offset %d: %w (limit %d)",
			d.Position(),
			ErrMaxDepthExceeded,
			d.config.maxDepth,
		)
	}
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

func (d *decoder) finish() error {
	if !d.EOF() {
		return fmt.Errorf(
			"offset %d: %w (%d bytes)",
			d.Position(),
			ErrTrailingData,
			len(d.Data())-d.Position(),
		)
	}
	return nil
}

// decodeTop decodes a single value that must span all of data
func decodeTop[T any](
	data []byte,
	opts []DecodeOptionFunc,
	decodeFunc func(*decoder) (T, error),
) (T, error) {
	var zero T
	d, err := newDecoder(data, opts...)
	if err != nil {
		return zero, err
	}
	ret, err := decodeFunc(d)
	if err != nil {
		return zero, err
	}
	if err := d.finish(); err != nil {
		return zero, err
	}
	return ret, nil
}

func encodeTop(encodeFunc func(*cbor.StreamEncoder) error) ([]byte, error) {
	e := cbor.NewStreamEncoder()
	if err := encodeFunc(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// decodeRecordHeader reads the definite array header of a fixed-shape record
func (d *decoder) decodeRecordHeader(typeName string, expected int) error {
	start := d.Position()
	length, indef, err := d.DecodeArrayHeader()
	if err != nil {
		return fmt.Errorf("decode %s: %w", typeName, err)
	}
	if indef {
		return UnexpectedTypeError{
			TypeName: typeName,
			Found:    cbor.TypeArrayIndef,
			Offset:   start,
		}
	}
	if length != expected {
		return InvalidLengthError{
			TypeName: typeName,
			Expected: expected,
			Actual:   length,
			Offset:   start,
		}
	}
	return nil
}

// decodeVariantHeader reads the array header and leading discriminant of a
// tagged variant. It returns the array length and the discriminant.
func (d *decoder) decodeVariantHeader(typeName string) (int, uint64, int, error) {
	start := d.Position()
	length, indef, err := d.DecodeArrayHeader()
	if err != nil {
		return 0, 0, start, fmt.Errorf("decode %s: %w", typeName, err)
	}
	if indef {
		return 0, 0, start, UnexpectedTypeError{
			TypeName: typeName,
			Found:    cbor.TypeArrayIndef,
			Offset:   start,
		}
	}
	if length < 1 {
		return 0, 0, start, InvalidLengthError{
			TypeName: typeName,
			Expected: 1,
			Actual:   length,
			Offset:   start,
		}
	}
	id, err := d.DecodeUint()
	if err != nil {
		return 0, 0, start, fmt.Errorf("decode %s variant id: %w", typeName, err)
	}
	return length, id, start, nil
}

// checkVariantLength verifies the array length of a decoded variant
func checkVariantLength(typeName string, start int, expected int, actual int) error {
	if expected != actual {
		return InvalidLengthError{
			TypeName: typeName,
			Expected: expected,
			Actual:   actual,
			Offset:   start,
		}
	}
	return nil
}

// decodeListFramed decodes an array of items of either framing and reports
// whether it was indefinite-length. The result is never nil.
func decodeListFramed[T any](
	d *decoder,
	typeName string,
	decodeItem func(*decoder) (T, error),
) ([]T, bool, error) {
	length, indef, err := d.DecodeArrayHeader()
	if err != nil {
		return nil, false, fmt.Errorf("decode %s list: %w", typeName, err)
	}
	ret := make([]T, 0, length)
	if indef {
		for {
			isBreak, err := d.IsBreak()
			if err != nil {
				return nil, false, fmt.Errorf("decode %s list: %w", typeName, err)
			}
			if isBreak {
				if err := d.DecodeBreak(); err != nil {
					return nil, false, err
				}
				return ret, true, nil
			}
			item, err := decodeItem(d)
			if err != nil {
				return nil, false, err
			}
			ret = append(ret, item)
		}
	}
	for range length {
		item, err := decodeItem(d)
		if err != nil {
			return nil, false, err
		}
		ret = append(ret, item)
	}
	return ret, false, nil
}

func encodeList[T any](
	e *cbor.StreamEncoder,
	items []T,
	encodeItem func(*cbor.StreamEncoder, T) error,
) error {
	e.EncodeArrayHeader(len(items))
	for _, item := range items {
		if err := encodeItem(e, item); err != nil {
			return err
		}
	}
	return nil
}

func encodeListFramed[T any](
	e *cbor.StreamEncoder,
	items []T,
	indefinite bool,
	encodeItem func(*cbor.StreamEncoder, T) error,
) error {
	if !indefinite {
		return encodeList(e, items, encodeItem)
	}
	e.EncodeIndefArray()
	for _, item := range items {
		if err := encodeItem(e, item); err != nil {
			return err
		}
	}
	e.EncodeBreak()
	return nil
}

// decodeMapFramed decodes a map into an order-preserving list of pairs and
// reports whether it was indefinite-length
func decodeMapFramed[K any, V any](
	d *decoder,
	typeName string,
	decodeKey func(*decoder) (K, error),
	decodeValue func(*decoder) (V, error),
) (cbor.KeyValuePairs[K, V], bool, error) {
	length, indef, err := d.DecodeMapHeader()
	if err != nil {
		return nil, false, fmt.Errorf("decode %s map: %w", typeName, err)
	}
	ret := make(cbor.KeyValuePairs[K, V], 0, length)
	decodePair := func() error {
		key, err := decodeKey(d)
		if err != nil {
			return err
		}
		value, err := decodeValue(d)
		if err != nil {
			return err
		}
		ret = append(ret, cbor.KeyValuePair[K, V]{Key: key, Value: value})
		return nil
	}
	if indef {
		for {
			isBreak, err := d.IsBreak()
			if err != nil {
				return nil, false, fmt.Errorf("decode %s map: %w", typeName, err)
			}
			if isBreak {
				if err := d.DecodeBreak(); err != nil {
					return nil, false, err
				}
				return ret, true, nil
			}
			if err := decodePair(); err != nil {
				return nil, false, err
			}
		}
	}
	for range length {
		if err := decodePair(); err != nil {
			return nil, false, err
		}
	}
	return ret, false, nil
}

func encodeMapFramed[K any, V any](
	e *cbor.StreamEncoder,
	pairs cbor.KeyValuePairs[K, V],
	indefinite bool,
	encodeKey func(*cbor.StreamEncoder, K) error,
	encodeValue func(*cbor.StreamEncoder, V) error,
) error {
	encodeMapStart(e, len(pairs), indefinite)
	for _, pair := range pairs {
		if err := encodeKey(e, pair.Key); err != nil {
			return err
		}
		if err := encodeValue(e, pair.Value); err != nil {
			return err
		}
	}
	encodeContainerEnd(e, indefinite)
	return nil
}

func encodeMapStart(e *cbor.StreamEncoder, length int, indefinite bool) {
	if indefinite {
		e.EncodeIndefMap()
		return
	}
	e.EncodeMapHeader(length)
}

func encodeContainerEnd(e *cbor.StreamEncoder, indefinite bool) {
	if indefinite {
		e.EncodeBreak()
	}
}

// decodeKeyedRecord walks a map whose keys are small unsigned integers naming
// record fields. Keys must be known to decodeField and may appear only once.
// The keys are returned in wire order, along with the framing of the map.
func (d *decoder) decodeKeyedRecord(
	typeName string,
	decodeField func(key uint64, keyOffset int) (bool, error),
) ([]uint64, bool, error) {
	length, indef, err := d.DecodeMapHeader()
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", typeName, err)
	}
	order := make([]uint64, 0, length)
	seen := make(map[uint64]struct{}, length)
	for i := 0; indef || i < length; i++ {
		if indef {
			isBreak, err := d.IsBreak()
			if err != nil {
				return nil, false, fmt.Errorf("decode %s: %w", typeName, err)
			}
			if isBreak {
				if err := d.DecodeBreak(); err != nil {
					return nil, false, err
				}
				break
			}
		}
		keyOffset := d.Position()
		key, err := d.DecodeUint()
		if err != nil {
			return nil, false, fmt.Errorf("decode %s field key: %w", typeName, err)
		}
		if _, ok := seen[key]; ok {
			return nil, false, DuplicateFieldKeyError{
				TypeName: typeName,
				Key:      key,
				Offset:   keyOffset,
			}
		}
		known, err := decodeField(key, keyOffset)
		if err != nil {
			return nil, false, fmt.Errorf("decode %s field %d: %w", typeName, key, err)
		}
		if !known {
			return nil, false, UnknownFieldKeyError{
				TypeName: typeName,
				Key:      key,
				Offset:   keyOffset,
			}
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}
	return order, indef, nil
}

// fieldOrder returns the keys to encode for a keyed record: the decoded order
// for fields that are still present, followed by any other present fields in
// ascending key order
func fieldOrder(decoded []uint64, present []uint64) []uint64 {
	isPresent := make(map[uint64]bool, len(present))
	for _, key := range present {
		isPresent[key] = true
	}
	ret := make([]uint64, 0, len(present))
	for _, key := range decoded {
		if isPresent[key] {
			ret = append(ret, key)
			delete(isPresent, key)
		}
	}
	for _, key := range present {
		if isPresent[key] {
			ret = append(ret, key)
		}
	}
	return ret
}

// framing records which containers of a decoded value were written with
// indefinite-length framing, by field id. Values built in code leave it zero
// and encode every container with a definite length.
type framing uint64

// framingSelf is the id of the decoded record's own map or array
const framingSelf = 63

func (f framing) isIndefinite(id uint64) bool {
	return id < 64 && f&(1<<id) != 0
}

func (f *framing) mark(id uint64, indefinite bool) {
	if indefinite && id < 64 {
		*f |= 1 << id
	}
}

func (d *decoder) decodeUint32(typeName string) (uint32, error) {
	start := d.Position()
	v, err := d.DecodeUint()
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", typeName, err)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf(
			"decode %s at offset %d: %w: %d",
			typeName,
			start,
			ErrIntegerOutOfBounds,
			v,
		)
	}
	return uint32(v), nil
}

func (d *decoder) decodeHash28(typeName string) (common.Blake2b224, error) {
	start := d.Position()
	b, err := d.DecodeBytes()
	if err != nil {
		return common.Blake2b224{}, fmt.Errorf("decode %s: %w", typeName, err)
	}
	ret, err := common.ParseBlake2b224(b)
	if err != nil {
		return common.Blake2b224{}, InvalidLengthError{
			TypeName: typeName,
			Expected: common.Blake2b224Size,
			Actual:   len(b),
			Offset:   start,
		}
	}
	return ret, nil
}

func (d *decoder) decodeHash32(typeName string) (common.Blake2b256, error) {
	start := d.Position()
	b, err := d.DecodeBytes()
	if err != nil {
		return common.Blake2b256{}, fmt.Errorf("decode %s: %w", typeName, err)
	}
	ret, err := common.ParseBlake2b256(b)
	if err != nil {
		return common.Blake2b256{}, InvalidLengthError{
			TypeName: typeName,
			Expected: common.Blake2b256Size,
			Actual:   len(b),
			Offset:   start,
		}
	}
	return ret, nil
}

// decodeNullable decodes a value that may be CBOR null, returning nil for null
func decodeNullable[T any](d *decoder, decodeValue func(*decoder) (T, error)) (*T, error) {
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	if t == cbor.TypeNull {
		return nil, d.DecodeNull()
	}
	v, err := decodeValue(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func encodeNullable[T any](
	e *cbor.StreamEncoder,
	v *T,
	encodeValue func(*cbor.StreamEncoder, T) error,
) error {
	if v == nil {
		e.EncodeNull()
		return nil
	}
	return encodeValue(e, *v)
}

// Small adapters so primitive codecs can be passed to the generic helpers

func decodeUintItem(d *decoder) (uint64, error) {
	return d.DecodeUint()
}

func decodeIntItem(d *decoder) (int64, error) {
	return d.DecodeInt()
}

func decodeBytesItem(d *decoder) ([]byte, error) {
	return d.DecodeBytes()
}

func encodeUintItem(e *cbor.StreamEncoder, v uint64) error {
	e.EncodeUint(v)
	return nil
}

func encodeIntItem(e *cbor.StreamEncoder, v int64) error {
	e.EncodeInt(v)
	return nil
}

func encodeBytesItem(e *cbor.StreamEncoder, v []byte) error {
	e.EncodeBytes(v)
	return nil
}

func encodeHash28Item(e *cbor.StreamEncoder, v common.Blake2b224) error {
	e.EncodeBytes(v.Bytes())
	return nil
}

func encodeHash32Item(e *cbor.StreamEncoder, v common.Blake2b256) error {
	e.EncodeBytes(v.Bytes())
	return nil
}
