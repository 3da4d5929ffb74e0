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
	"github.com/blinklabs-io/plutigo/data"
)

// Conversions into the plutigo data model used by script evaluation. A
// constructor whose tag names no alternative cannot be converted.

func (c Constr) ToPlutusData() (data.PlutusData, error) {
	alternative, err := c.Alternative()
	if err != nil {
		return nil, err
	}
	fields, err := toPlutusDataList(c.Fields)
	if err != nil {
		return nil, err
	}
	return data.NewConstr(uint(alternative), fields...), nil
}

func (m PlutusMap) ToPlutusData() (data.PlutusData, error) {
	pairs := make([][2]data.PlutusData, 0, len(m.Pairs))
	for _, pair := range m.Pairs {
		key, err := pair.Key.ToPlutusData()
		if err != nil {
			return nil, err
		}
		value, err := pair.Value.ToPlutusData()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]data.PlutusData{key, value})
	}
	return data.NewMap(pairs), nil
}

func (b BoundedBytes) ToPlutusData() (data.PlutusData, error) {
	return data.NewByteString(b.Bytes), nil
}

func (a PlutusArray) ToPlutusData() (data.PlutusData, error) {
	items, err := toPlutusDataList(a)
	if err != nil {
		return nil, err
	}
	return data.NewList(items...), nil
}

func (a PlutusArrayIndef) ToPlutusData() (data.PlutusData, error) {
	items, err := toPlutusDataList(a)
	if err != nil {
		return nil, err
	}
	return data.NewList(items...), nil
}

func (b BigIntNative) ToPlutusData() (data.PlutusData, error) {
	return data.NewInteger(b.Big()), nil
}

func (b BigUInt) ToPlutusData() (data.PlutusData, error) {
	return data.NewInteger(b.Big()), nil
}

func (b BigNInt) ToPlutusData() (data.PlutusData, error) {
	return data.NewInteger(b.Big()), nil
}

func toPlutusDataList(items []PlutusData) ([]data.PlutusData, error) {
	ret := make([]data.PlutusData, 0, len(items))
	for _, item := range items {
		converted, err := item.ToPlutusData()
		if err != nil {
			return nil, err
		}
		ret = append(ret, converted)
	}
	return ret, nil
}
