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
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

const (
	Bech32PrefixPool = "pool"
)

// PoolId returns the bech32 pool id of a pool key hash
func PoolId(hash common.PoolKeyHash) (string, error) {
	return hash.Bech32(Bech32PrefixPool)
}

// PoolId returns the bech32 pool id of the registered pool
func (c PoolRegistrationCertificate) PoolId() (string, error) {
	return PoolId(c.Operator)
}
