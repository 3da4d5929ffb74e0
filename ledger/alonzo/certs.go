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

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

const (
	CertificateTypeStakeRegistration        = 0
	CertificateTypeStakeDeregistration      = 1
	CertificateTypeStakeDelegation          = 2
	CertificateTypePoolRegistration         = 3
	CertificateTypePoolRetirement           = 4
	CertificateTypeGenesisKeyDelegation     = 5
	CertificateTypeMoveInstantaneousRewards = 6
)

type Certificate interface {
	isCertificate()
	Type() uint
	encode(*cbor.StreamEncoder) error
}

type StakeRegistrationCertificate struct {
	StakeCredential StakeCredential
}

type StakeDeregistrationCertificate struct {
	StakeCredential StakeCredential
}

type StakeDelegationCertificate struct {
	StakeCredential StakeCredential
	PoolKeyHash     common.PoolKeyHash
}

type PoolMetadata struct {
	Url  string
	Hash common.Blake2b256
}

type PoolRegistrationCertificate struct {
	Operator      common.PoolKeyHash
	VrfKeyHash    common.VrfKeyHash
	Pledge        uint64
	Cost          uint64
	Margin        UnitInterval
	RewardAccount common.Address
	PoolOwners    []common.AddrKeyHash
	Relays        []PoolRelay
	PoolMetadata  *PoolMetadata
	framing       framing
}

// Positions of the list fields within a pool registration certificate
const (
	poolPositionOwners = 7
	poolPositionRelays = 8
)

type PoolRetirementCertificate struct {
	PoolKeyHash common.PoolKeyHash
	Epoch       uint64
}

type GenesisKeyDelegationCertificate struct {
	GenesisHash         common.GenesisHash
	GenesisDelegateHash common.GenesisDelegateHash
	VrfKeyHash          common.VrfKeyHash
}

type MoveInstantaneousRewardsCertificate struct {
	Reward MoveInstantaneousReward
}

func (StakeRegistrationCertificate) isCertificate()        {}
func (StakeDeregistrationCertificate) isCertificate()      {}
func (StakeDelegationCertificate) isCertificate()          {}
func (PoolRegistrationCertificate) isCertificate()         {}
func (PoolRetirementCertificate) isCertificate()           {}
func (GenesisKeyDelegationCertificate) isCertificate()     {}
func (MoveInstantaneousRewardsCertificate) isCertificate() {}

func (StakeRegistrationCertificate) Type() uint {
	return CertificateTypeStakeRegistration
}

func (StakeDeregistrationCertificate) Type() uint {
	return CertificateTypeStakeDeregistration
}

func (StakeDelegationCertificate) Type() uint {
	return CertificateTypeStakeDelegation
}

func (PoolRegistrationCertificate) Type() uint {
	return CertificateTypePoolRegistration
}

func (PoolRetirementCertificate) Type() uint {
	return CertificateTypePoolRetirement
}

func (GenesisKeyDelegationCertificate) Type() uint {
	return CertificateTypeGenesisKeyDelegation
}

func (MoveInstantaneousRewardsCertificate) Type() uint {
	return CertificateTypeMoveInstantaneousRewards
}

func (c StakeRegistrationCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(CertificateTypeStakeRegistration)
	return c.StakeCredential.encode(e)
}

func (c StakeDeregistrationCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(CertificateTypeStakeDeregistration)
	return c.StakeCredential.encode(e)
}

func (c StakeDelegationCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(3)
	e.EncodeUint(CertificateTypeStakeDelegation)
	if err := c.StakeCredential.encode(e); err != nil {
		return err
	}
	e.EncodeBytes(c.PoolKeyHash.Bytes())
	return nil
}

func (c PoolRegistrationCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(10)
	e.EncodeUint(CertificateTypePoolRegistration)
	e.EncodeBytes(c.Operator.Bytes())
	e.EncodeBytes(c.VrfKeyHash.Bytes())
	e.EncodeUint(c.Pledge)
	e.EncodeUint(c.Cost)
	if err := c.Margin.encode(e); err != nil {
		return err
	}
	e.EncodeBytes(c.RewardAccount)
	if err := encodeListFramed(
		e,
		c.PoolOwners,
		c.framing.isIndefinite(poolPositionOwners),
		encodeHash28Item,
	); err != nil {
		return err
	}
	if err := encodeListFramed(
		e,
		c.Relays,
		c.framing.isIndefinite(poolPositionRelays),
		func(e *cbor.StreamEncoder, r PoolRelay) error {
			return r.encode(e)
		},
	); err != nil {
		return err
	}
	return encodeNullable(e, c.PoolMetadata, func(e *cbor.StreamEncoder, m PoolMetadata) error {
		e.EncodeArrayHeader(2)
		e.EncodeText(m.Url)
		e.EncodeBytes(m.Hash.Bytes())
		return nil
	})
}

func (c PoolRetirementCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(3)
	e.EncodeUint(CertificateTypePoolRetirement)
	e.EncodeBytes(c.PoolKeyHash.Bytes())
	e.EncodeUint(c.Epoch)
	return nil
}

func (c GenesisKeyDelegationCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(4)
	e.EncodeUint(CertificateTypeGenesisKeyDelegation)
	e.EncodeBytes(c.GenesisHash.Bytes())
	e.EncodeBytes(c.GenesisDelegateHash.Bytes())
	e.EncodeBytes(c.VrfKeyHash.Bytes())
	return nil
}

func (c MoveInstantaneousRewardsCertificate) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(CertificateTypeMoveInstantaneousRewards)
	return c.Reward.encode(e)
}

func encodeCertificateItem(e *cbor.StreamEncoder, c Certificate) error {
	return c.encode(e)
}

// certificateArity is the array length of each certificate variant
var certificateArity = map[uint64]int{
	CertificateTypeStakeRegistration:        2,
	CertificateTypeStakeDeregistration:      2,
	CertificateTypeStakeDelegation:          3,
	CertificateTypePoolRegistration:         10,
	CertificateTypePoolRetirement:           3,
	CertificateTypeGenesisKeyDelegation:     4,
	CertificateTypeMoveInstantaneousRewards: 2,
}

func decodeCertificate(d *decoder) (Certificate, error) {
	const typeName = "certificate"
	length, id, start, err := d.decodeVariantHeader(typeName)
	if err != nil {
		return nil, err
	}
	arity, ok := certificateArity[id]
	if !ok {
		return nil, UnknownVariantError{
			TypeName: typeName,
			Variant:  id,
			Offset:   start,
		}
	}
	if err := checkVariantLength(typeName, start, arity, length); err != nil {
		return nil, err
	}
	switch id {
	case CertificateTypeStakeRegistration:
		cred, err := decodeStakeCredential(d)
		if err != nil {
			return nil, err
		}
		return StakeRegistrationCertificate{StakeCredential: cred}, nil
	case CertificateTypeStakeDeregistration:
		cred, err := decodeStakeCredential(d)
		if err != nil {
			return nil, err
		}
		return StakeDeregistrationCertificate{StakeCredential: cred}, nil
	case CertificateTypeStakeDelegation:
		cred, err := decodeStakeCredential(d)
		if err != nil {
			return nil, err
		}
		pool, err := d.decodeHash28("pool key hash")
		if err != nil {
			return nil, err
		}
		return StakeDelegationCertificate{
			StakeCredential: cred,
			PoolKeyHash:     pool,
		}, nil
	case CertificateTypePoolRegistration:
		return decodePoolRegistration(d)
	case CertificateTypePoolRetirement:
		pool, err := d.decodeHash28("pool key hash")
		if err != nil {
			return nil, err
		}
		epoch, err := d.DecodeUint()
		if err != nil {
			return nil, fmt.Errorf("decode retirement epoch: %w", err)
		}
		return PoolRetirementCertificate{PoolKeyHash: pool, Epoch: epoch}, nil
	case CertificateTypeGenesisKeyDelegation:
		genesisHash, err := d.decodeHash28("genesis hash")
		if err != nil {
			return nil, err
		}
		delegateHash, err := d.decodeHash28("genesis delegate hash")
		if err != nil {
			return nil, err
		}
		vrfKeyHash, err := d.decodeHash32("vrf key hash")
		if err != nil {
			return nil, err
		}
		return GenesisKeyDelegationCertificate{
			GenesisHash:         genesisHash,
			GenesisDelegateHash: delegateHash,
			VrfKeyHash:          vrfKeyHash,
		}, nil
	default:
		reward, err := decodeMoveInstantaneousReward(d)
		if err != nil {
			return nil, err
		}
		return MoveInstantaneousRewardsCertificate{Reward: reward}, nil
	}
}

func decodePoolRegistration(d *decoder) (PoolRegistrationCertificate, error) {
	var ret PoolRegistrationCertificate
	var err error
	if ret.Operator, err = d.decodeHash28("pool operator"); err != nil {
		return ret, err
	}
	if ret.VrfKeyHash, err = d.decodeHash32("vrf key hash"); err != nil {
		return ret, err
	}
	if ret.Pledge, err = d.DecodeUint(); err != nil {
		return ret, fmt.Errorf("decode pool pledge: %w", err)
	}
	if ret.Cost, err = d.DecodeUint(); err != nil {
		return ret, fmt.Errorf("decode pool cost: %w", err)
	}
	if ret.Margin, err = decodeRationalNumber(d); err != nil {
		return ret, fmt.Errorf("decode pool margin: %w", err)
	}
	rewardAccount, err := d.DecodeBytes()
	if err != nil {
		return ret, fmt.Errorf("decode pool reward account: %w", err)
	}
	ret.RewardAccount = common.Address(rewardAccount)
	owners, indef, err := decodeListFramed(d, "pool owner", func(d *decoder) (common.AddrKeyHash, error) {
		return d.decodeHash28("pool owner")
	})
	if err != nil {
		return ret, err
	}
	ret.PoolOwners = owners
	ret.framing.mark(poolPositionOwners, indef)
	relays, indef, err := decodeListFramed(d, "relay", decodePoolRelay)
	if err != nil {
		return ret, err
	}
	ret.Relays = relays
	ret.framing.mark(poolPositionRelays, indef)
	ret.PoolMetadata, err = decodeNullable(d, func(d *decoder) (PoolMetadata, error) {
		if err := d.decodeRecordHeader("pool metadata", 2); err != nil {
			return PoolMetadata{}, err
		}
		url, err := d.DecodeText()
		if err != nil {
			return PoolMetadata{}, fmt.Errorf("decode pool metadata url: %w", err)
		}
		hash, err := d.decodeHash32("pool metadata hash")
		if err != nil {
			return PoolMetadata{}, err
		}
		return PoolMetadata{Url: url, Hash: hash}, nil
	})
	if err != nil {
		return ret, err
	}
	return ret, nil
}

const (
	InstantaneousRewardSourceReserves = 0
	InstantaneousRewardSourceTreasury = 1
)

// InstantaneousRewardSource is the pot the rewards are drawn from
type InstantaneousRewardSource uint

func (s InstantaneousRewardSource) String() string {
	switch s {
	case InstantaneousRewardSourceReserves:
		return "reserves"
	case InstantaneousRewardSourceTreasury:
		return "treasury"
	}
	return fmt.Sprintf("unknown(%d)", uint(s))
}

// InstantaneousRewardTarget is either a set of per-credential deltas or a
// transfer to the other accounting pot
type InstantaneousRewardTarget interface {
	isInstantaneousRewardTarget()
	encode(*cbor.StreamEncoder) error
}

// InstantaneousRewardStakeCredentials moves funds to stake credentials
type InstantaneousRewardStakeCredentials cbor.KeyValuePairs[StakeCredential, int64]

// InstantaneousRewardOtherPot moves funds to the other accounting pot
type InstantaneousRewardOtherPot uint64

func (InstantaneousRewardStakeCredentials) isInstantaneousRewardTarget() {}
func (InstantaneousRewardOtherPot) isInstantaneousRewardTarget()         {}

func (t InstantaneousRewardStakeCredentials) encode(e *cbor.StreamEncoder) error {
	return t.encodeFramed(e, false)
}

func (t InstantaneousRewardStakeCredentials) encodeFramed(e *cbor.StreamEncoder, indefinite bool) error {
	return encodeMapFramed(
		e,
		cbor.KeyValuePairs[StakeCredential, int64](t),
		indefinite,
		encodeStakeCredentialItem,
		encodeIntItem,
	)
}

func (t InstantaneousRewardOtherPot) encode(e *cbor.StreamEncoder) error {
	e.EncodeUint(uint64(t))
	return nil
}

// MoveInstantaneousReward is [source, target]
type MoveInstantaneousReward struct {
	Source InstantaneousRewardSource
	Target InstantaneousRewardTarget
	// set when a decoded credential map used indefinite-length framing
	indefiniteTarget bool
}

func (m MoveInstantaneousReward) encode(e *cbor.StreamEncoder) error {
	e.EncodeArrayHeader(2)
	e.EncodeUint(uint64(m.Source))
	if m.Target == nil {
		return fmt.Errorf("encode move instantaneous reward: missing target")
	}
	if creds, ok := m.Target.(InstantaneousRewardStakeCredentials); ok {
		return creds.encodeFramed(e, m.indefiniteTarget)
	}
	return m.Target.encode(e)
}

func decodeMoveInstantaneousReward(d *decoder) (MoveInstantaneousReward, error) {
	const typeName = "move instantaneous reward"
	if err := d.decodeRecordHeader(typeName, 2); err != nil {
		return MoveInstantaneousReward{}, err
	}
	start := d.Position()
	source, err := d.DecodeUint()
	if err != nil {
		return MoveInstantaneousReward{}, fmt.Errorf("decode %s source: %w", typeName, err)
	}
	if source != InstantaneousRewardSourceReserves && source != InstantaneousRewardSourceTreasury {
		return MoveInstantaneousReward{}, UnknownVariantError{
			TypeName: "instantaneous reward source",
			Variant:  source,
			Offset:   start,
		}
	}
	ret := MoveInstantaneousReward{Source: InstantaneousRewardSource(source)}
	t, err := d.PeekType()
	if err != nil {
		return MoveInstantaneousReward{}, err
	}
	switch t {
	case cbor.TypeMap, cbor.TypeMapIndef:
		pairs, indef, err := decodeMapFramed(d, "instantaneous reward", decodeStakeCredential, decodeIntItem)
		if err != nil {
			return MoveInstantaneousReward{}, err
		}
		ret.Target = InstantaneousRewardStakeCredentials(pairs)
		ret.indefiniteTarget = indef
	default:
		coin, err := d.DecodeUint()
		if err != nil {
			return MoveInstantaneousReward{}, fmt.Errorf("decode %s target: %w", typeName, err)
		}
		ret.Target = InstantaneousRewardOtherPot(coin)
	}
	return ret, nil
}
