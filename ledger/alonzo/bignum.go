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
	"math/big"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// Bounds of the native CBOR integer range: -2^64 to 2^64-1
var (
	nativeIntMax = new(big.Int).SetUint64(^uint64(0))
	nativeIntMin = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 64))
)

// BigInt is an arbitrary-precision integer. The variant records how it was
// written on the wire: a native integer, or a big-endian magnitude under tag 2
// (positive) or tag 3 (negative).
type BigInt interface {
	PlutusData
	isBigInt()
	Big() *big.Int
}

// BigIntNative is an integer written with CBOR major type 0 or 1
type BigIntNative struct {
	Value *big.Int
}

// BigUInt is the magnitude of a positive bignum (tag 2)
type BigUInt []byte

// BigNInt is the magnitude n of a negative bignum (tag 3) whose value is -1-n
type BigNInt []byte

func (BigIntNative) isBigInt() {}
func (BigUInt) isBigInt()      {}
func (BigNInt) isBigInt()      {}

func (BigIntNative) isPlutusData() {}
func (BigUInt) isPlutusData()      {}
func (BigNInt) isPlutusData()      {}

// NewBigInt returns the native variant when v fits the native CBOR integer
// range and the matching tagged variant otherwise
func NewBigInt(v *big.Int) BigInt {
	if v.Cmp(nativeIntMin) >= 0 && v.Cmp(nativeIntMax) <= 0 {
		return BigIntNative{Value: new(big.Int).Set(v)}
	}
	if v.Sign() > 0 {
		return BigUInt(v.Bytes())
	}
	n := new(big.Int).Neg(v)
	n.Sub(n, big.NewInt(1))
	return BigNInt(n.Bytes())
}

func (b BigIntNative) Big() *big.Int {
	if b.Value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.Value)
}

func (b BigUInt) Big() *big.Int {
	return new(big.Int).SetBytes(b)
}

func (b BigNInt) Big() *big.Int {
	ret := new(big.Int).SetBytes(b)
	ret.Add(ret, big.NewInt(1))
	return ret.Neg(ret)
}

func (b BigIntNative) String() string {
	return b.Big().String()
}

func (b BigUInt) String() string {
	return b.Big().String()
}

func (b BigNInt) String() string {
	return b.Big().String()
}

func (b BigIntNative) encode(e *cbor.StreamEncoder) error {
	v := b.Big()
	if v.Cmp(nativeIntMin) < 0 || v.Cmp(nativeIntMax) > 0 {
		return fmt.Errorf(
			"encode native big int %s: %w",
			v.String(),
			ErrIntegerOutOfBounds,
		)
	}
	return e.EncodeInteger(v)
}

func (b BigUInt) encode(e *cbor.StreamEncoder) error {
	e.EncodeTag(cbor.CborTagPositiveBignum)
	e.EncodeBytes(b)
	return nil
}

func (b BigNInt) encode(e *cbor.StreamEncoder) error {
	e.EncodeTag(cbor.CborTagNegativeBignum)
	e.EncodeBytes(b)
	return nil
}

// decodeBigInt reads a native integer or a tag 2/3 bignum. The bignum payload
// must be a definite-length byte string; a chunked payload is rejected.
func decodeBigInt(d *decoder) (BigInt, error) {
	start := d.Position()
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case cbor.TypeUnsigned, cbor.TypeNegative:
		v, err := d.DecodeInteger()
		if err != nil {
			return nil, err
		}
		return BigIntNative{Value: v}, nil
	case cbor.TypeTag:
		tag, err := d.DecodeTag()
		if err != nil {
			return nil, err
		}
		switch tag {
		case cbor.CborTagPositiveBignum:
			b, err := d.DecodeBytes()
			if err != nil {
				return nil, fmt.Errorf("decode positive bignum: %w", err)
			}
			return BigUInt(b), nil
		case cbor.CborTagNegativeBignum:
			b, err := d.DecodeBytes()
			if err != nil {
				return nil, fmt.Errorf("decode negative bignum: %w", err)
			}
			return BigNInt(b), nil
		default:
			return nil, InvalidTagError{
				TypeName: "big int",
				Tag:      tag,
				Offset:   start,
			}
		}
	default:
		return nil, UnexpectedTypeError{
			TypeName: "big int",
			Found:    t,
			Offset:   start,
		}
	}
}

// RationalNumber is a fraction written as tag 30 over [numerator, denominator]
type RationalNumber struct {
	Numerator   int64
	Denominator uint64
}

// UnitInterval is a rational number expected to lie in [0, 1]
type UnitInterval = RationalNumber

// Rat returns the value as a big.Rat. A zero denominator yields nil.
func (r RationalNumber) Rat() *big.Rat {
	if r.Denominator == 0 {
		return nil
	}
	return new(big.Rat).SetFrac(
		big.NewInt(r.Numerator),
		new(big.Int).SetUint64(r.Denominator),
	)
}

func (r RationalNumber) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

func (r RationalNumber) encode(e *cbor.StreamEncoder) error {
	e.EncodeTag(cbor.CborTagRational)
	e.EncodeArrayHeader(2)
	e.EncodeInt(r.Numerator)
	e.EncodeUint(r.Denominator)
	return nil
}

func decodeRationalNumber(d *decoder) (RationalNumber, error) {
	start := d.Position()
	tag, err := d.DecodeTag()
	if err != nil {
		return RationalNumber{}, fmt.Errorf("decode rational number: %w", err)
	}
	if tag != cbor.CborTagRational {
		return RationalNumber{}, InvalidTagError{
			TypeName: "rational number",
			Tag:      tag,
			Offset:   start,
		}
	}
	if err := d.decodeRecordHeader("rational number", 2); err != nil {
		return RationalNumber{}, err
	}
	num, err := d.DecodeInt()
	if err != nil {
		return RationalNumber{}, fmt.Errorf("decode rational numerator: %w", err)
	}
	denom, err := d.DecodeUint()
	if err != nil {
		return RationalNumber{}, fmt.Errorf("decode rational denominator: %w", err)
	}
	return RationalNumber{Numerator: num, Denominator: denom}, nil
}
