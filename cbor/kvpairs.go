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

import "iter"

// KeyValuePair is a single entry of a KeyValuePairs
type KeyValuePair[K any, V any] struct {
	Key   K
	Value V
}

// KeyValuePairs is a mapping that keeps entries in wire order and allows
// duplicate keys, so that a decoded map re-encodes to the same bytes
type KeyValuePairs[K any, V any] []KeyValuePair[K, V]

func (p KeyValuePairs[K, V]) Len() int {
	return len(p)
}

// Keys returns the keys in order, including duplicates
func (p KeyValuePairs[K, V]) Keys() []K {
	ret := make([]K, 0, len(p))
	for _, pair := range p {
		ret = append(ret, pair.Key)
	}
	return ret
}

// Find returns the value of the first entry whose key matches
func (p KeyValuePairs[K, V]) Find(match func(K) bool) (V, bool) {
	for _, pair := range p {
		if match(pair.Key) {
			return pair.Value, true
		}
	}
	var zero V
	return zero, false
}

// All iterates over the entries in order
func (p KeyValuePairs[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, pair := range p {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Lookup returns the value of the first entry with the given key
func Lookup[K comparable, V any](p KeyValuePairs[K, V], key K) (V, bool) {
	return p.Find(func(k K) bool { return k == key })
}
