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

package alonzo_test

import (
	"bytes"
	"errors"
	"math/big"
	"net"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/internal/testdata"
	"github.com/blinklabs-io/alonzo-codec/ledger/alonzo"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

func filled(b byte, size int) []byte {
	return bytes.Repeat([]byte{b}, size)
}

func decodeTestBlock(t *testing.T) (alonzo.Block, []byte) {
	t.Helper()
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	block, err := alonzo.DecodeBlock(blockCbor)
	require.NoError(t, err)
	return block, blockCbor
}

// The fixture uses shortest-form integer heads throughout. A value decoded
// from a non-shortest head, such as a fee written as 1a00000005, re-encodes
// in shortest form, so only the stored bytes reproduce such input exactly.
func TestAlonzoBlockCborRoundTrip(t *testing.T) {
	block, blockCbor := decodeTestBlock(t)
	encoded, err := alonzo.EncodeBlock(block)
	require.NoError(t, err)
	if !bytes.Equal(blockCbor, encoded) {
		diffIndex := -1
		for i := 0; i < len(blockCbor) && i < len(encoded); i++ {
			if blockCbor[i] != encoded[i] {
				diffIndex = i
				break
			}
		}
		t.Fatalf(
			"CBOR round-trip mismatch (first difference at byte %d)\noriginal: %x\nencoded:  %x",
			diffIndex,
			blockCbor,
			encoded,
		)
	}
	assert.Equal(t, blockCbor, block.Cbor())
}

func TestAlonzoBlockIndefiniteBodiesKept(t *testing.T) {
	block, blockCbor := decodeTestBlock(t)
	require.Len(t, block.TransactionBodies, 2)
	// Swap the two-element bodies header for indefinite-length framing
	bodiesStart := 1 + len(block.Header.Cbor())
	require.Equal(t, byte(0x82), blockCbor[bodiesStart])
	bodiesEnd := bodiesStart + 1
	for _, body := range block.TransactionBodies {
		bodiesEnd += len(body.Cbor())
	}
	indefCbor := slices.Concat(
		blockCbor[:bodiesStart],
		[]byte{0x9f},
		blockCbor[bodiesStart+1:bodiesEnd],
		[]byte{0xff},
		blockCbor[bodiesEnd:],
	)
	indefBlock, err := alonzo.DecodeBlock(indefCbor)
	require.NoError(t, err)
	assert.Equal(t, block.TransactionBodies[0].Cbor(), indefBlock.TransactionBodies[0].Cbor())
	encoded, err := alonzo.EncodeBlock(indefBlock)
	require.NoError(t, err)
	assert.Equal(t, indefCbor, encoded)
}

func TestAlonzoBlockCborRoundTripUsingCborEncode(t *testing.T) {
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	var block alonzo.Block
	require.NoError(t, block.UnmarshalCBOR(blockCbor))
	encoded, err := cbor.Encode(block)
	require.NoError(t, err)
	assert.Equal(t, blockCbor, encoded)
}

func TestAlonzoBlockHeader(t *testing.T) {
	block, _ := decodeTestBlock(t)
	assert.Equal(t, alonzo.BlockTypeName, block.Type())
	assert.Equal(t, uint64(testdata.AlonzoBlockNumber), block.BlockNumber())
	assert.Equal(t, uint64(testdata.AlonzoBlockSlot), block.SlotNumber())
	hash, err := block.Hash()
	require.NoError(t, err)
	assert.Equal(t, testdata.AlonzoBlockHash, hash.String())

	body := block.Header.Body
	require.NotNil(t, body.PrevHash)
	assert.Equal(t, filled(0x11, 32), body.PrevHash.Bytes())
	assert.Equal(t, filled(0x22, 32), body.IssuerVkey)
	assert.Equal(t, filled(0x44, 64), body.NonceVrf.Output)
	assert.Equal(t, filled(0x45, 80), body.NonceVrf.Proof)
	assert.Equal(t, filled(0x47, 80), body.LeaderVrf.Proof)
	assert.Equal(t, uint64(4567), body.BlockBodySize)
	assert.Equal(t, uint64(5), body.OpCertSequenceNumber)
	assert.Equal(t, uint64(300), body.OpCertKesPeriod)
	assert.Equal(t, uint64(6), body.ProtoMajorVersion)
	assert.Equal(t, uint64(0), body.ProtoMinorVersion)
	assert.Len(t, block.Header.Signature, 448)
	assert.Equal(
		t,
		common.Blake2b224Hash(filled(0x22, 32)),
		block.Header.IssuerPoolId(),
	)
}

func TestAlonzoHeaderHashWithoutStoredCbor(t *testing.T) {
	block, _ := decodeTestBlock(t)
	rebuilt := alonzo.Header{
		Body:      block.Header.Body,
		Signature: block.Header.Signature,
	}
	assert.Nil(t, rebuilt.Cbor())
	hash, err := rebuilt.Hash()
	require.NoError(t, err)
	assert.Equal(t, testdata.AlonzoBlockHash, hash.String())
}

func TestAlonzoBlockTransactionIds(t *testing.T) {
	block, _ := decodeTestBlock(t)
	require.Len(t, block.TransactionBodies, 2)
	expected := []string{testdata.AlonzoBlockTx0Id, testdata.AlonzoBlockTx1Id}
	for idx, body := range block.TransactionBodies {
		txId, err := body.Hash()
		require.NoError(t, err)
		assert.Equal(t, expected[idx], txId.String())
		// Rebuilding the body from its components gives the same id, since the
		// fixture uses shortest-form encodings throughout
		rebuilt := alonzo.TransactionBody{Components: body.Components}
		rebuiltId, err := rebuilt.Hash()
		require.NoError(t, err)
		assert.Equal(t, txId, rebuiltId)
	}
}

func TestAlonzoBlockTransactionBodyOrder(t *testing.T) {
	block, _ := decodeTestBlock(t)
	body := block.TransactionBodies[0]
	keys := make([]uint64, 0, len(body.Components))
	for _, c := range body.Components {
		keys = append(keys, c.Key())
	}
	assert.Equal(
		t,
		[]uint64{2, 0, 1, 3, 8, 4, 5, 7, 9, 11, 13, 14, 15},
		keys,
	)
	assert.Equal(t, alonzo.TransactionBodyFee(180000), body.Components[0])
}

func TestAlonzoBlockTransactionBodyFields(t *testing.T) {
	block, _ := decodeTestBlock(t)
	body := block.TransactionBodies[0]

	assert.Equal(t, uint64(180000), body.Fee())
	inputs := body.Inputs()
	require.Len(t, inputs, 2)
	assert.Equal(t, common.NewBlake2b256(filled(0xa2, 32)), inputs[1].TransactionId)
	assert.Equal(t, uint64(3), inputs[1].Index)

	outputs := body.Outputs()
	require.Len(t, outputs, 2)
	assert.False(t, outputs[0].Amount.HasAssets())
	assert.Equal(t, uint64(1500000), outputs[0].Amount.Coin)
	assert.Nil(t, outputs[0].DatumHash)
	assert.True(t, outputs[1].Amount.HasAssets())
	assert.Equal(t, uint64(2000000), outputs[1].Amount.Coin)
	qty, ok := outputs[1].Amount.Asset(
		common.NewBlake2b224(filled(0xb1, 28)),
		[]byte("TOKEN"),
	)
	assert.True(t, ok)
	assert.Equal(t, uint64(5), qty)
	qty, ok = outputs[1].Amount.Asset(
		common.NewBlake2b224(filled(0xb1, 28)),
		[]byte{},
	)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), qty)
	require.NotNil(t, outputs[1].DatumHash)
	assert.Equal(t, filled(0xc1, 32), outputs[1].DatumHash.Bytes())

	ttl, ok := body.Ttl()
	assert.True(t, ok)
	assert.Equal(t, uint64(72320000), ttl)
	start, ok := body.ValidityIntervalStart()
	assert.True(t, ok)
	assert.Equal(t, uint64(72310000), start)

	withdrawals := body.Withdrawals()
	require.Len(t, withdrawals, 1)
	assert.True(t, withdrawals[0].Key.IsReward())
	assert.Equal(t, uint64(12345), withdrawals[0].Value)

	mint := body.Mint()
	require.Len(t, mint, 1)
	assert.Equal(t, common.NewBlake2b224(filled(0xb2, 28)), mint[0].Key)
	require.Len(t, mint[0].Value, 2)
	assert.Equal(t, []byte("NFT"), mint[0].Value[0].Key)
	assert.Equal(t, int64(1), mint[0].Value[0].Value)
	assert.Equal(t, []byte("BURN"), mint[0].Value[1].Key)
	assert.Equal(t, int64(-3), mint[0].Value[1].Value)

	require.NotNil(t, body.ScriptDataHash())
	assert.Equal(t, filled(0xf2, 32), body.ScriptDataHash().Bytes())
	collateral := body.Collateral()
	require.Len(t, collateral, 1)
	assert.Equal(t, uint64(1), collateral[0].Index)
	assert.Equal(
		t,
		[]common.AddrKeyHash{common.NewBlake2b224(filled(0xd1, 28))},
		body.RequiredSigners(),
	)
	networkId, ok := body.NetworkId()
	assert.True(t, ok)
	assert.Equal(t, alonzo.NetworkId(alonzo.NetworkIdMainnet), networkId)
	assert.Equal(t, "mainnet", networkId.String())

	// The second body only carries the mandatory fields
	minimal := block.TransactionBodies[1]
	_, ok = minimal.Ttl()
	assert.False(t, ok)
	assert.Nil(t, minimal.AuxDataHash())
	assert.Nil(t, minimal.Certificates())
	assert.Equal(t, uint64(170000), minimal.Fee())
}

func TestAlonzoBlockCertificates(t *testing.T) {
	block, _ := decodeTestBlock(t)
	certs := block.TransactionBodies[0].Certificates()
	require.Len(t, certs, 8)

	types := make([]uint, 0, len(certs))
	for _, cert := range certs {
		types = append(types, cert.Type())
	}
	assert.Equal(t, []uint{0, 2, 3, 4, 5, 6, 6, 1}, types)

	reg, ok := certs[0].(alonzo.StakeRegistrationCertificate)
	require.True(t, ok)
	assert.False(t, reg.StakeCredential.IsScript())
	assert.Equal(t, common.NewBlake2b224(filled(0xd1, 28)), reg.StakeCredential.Hash)

	deleg, ok := certs[1].(alonzo.StakeDelegationCertificate)
	require.True(t, ok)
	assert.Equal(t, common.NewBlake2b224(filled(0xe1, 28)), deleg.PoolKeyHash)

	pool, ok := certs[2].(alonzo.PoolRegistrationCertificate)
	require.True(t, ok)
	assert.Equal(t, uint64(500000000), pool.Pledge)
	assert.Equal(t, uint64(340000000), pool.Cost)
	assert.Equal(t, alonzo.UnitInterval{Numerator: 3, Denominator: 100}, pool.Margin)
	assert.Equal(t, 0, big.NewRat(3, 100).Cmp(pool.Margin.Rat()))
	assert.True(t, pool.RewardAccount.IsReward())
	assert.Len(t, pool.PoolOwners, 1)
	require.Len(t, pool.Relays, 3)
	port := uint32(3001)
	assert.Equal(
		t,
		alonzo.SingleHostAddr{Port: &port, Ipv4: net.IP{127, 0, 0, 1}},
		pool.Relays[0],
	)
	assert.Equal(
		t,
		alonzo.SingleHostName{DnsName: "relay.example.com"},
		pool.Relays[1],
	)
	assert.Equal(
		t,
		alonzo.MultiHostName{DnsName: "pool.example.com"},
		pool.Relays[2],
	)
	require.NotNil(t, pool.PoolMetadata)
	assert.Equal(t, "https://example.com/p.json", pool.PoolMetadata.Url)
	poolId, err := pool.PoolId()
	require.NoError(t, err)
	assert.Contains(t, poolId, "pool1")

	retire, ok := certs[3].(alonzo.PoolRetirementCertificate)
	require.True(t, ok)
	assert.Equal(t, uint64(300), retire.Epoch)
	assert.Equal(t, pool.Operator, retire.PoolKeyHash)

	genesis, ok := certs[4].(alonzo.GenesisKeyDelegationCertificate)
	require.True(t, ok)
	assert.Equal(t, filled(0xe7, 32), genesis.VrfKeyHash.Bytes())

	mirCreds, ok := certs[5].(alonzo.MoveInstantaneousRewardsCertificate)
	require.True(t, ok)
	assert.Equal(
		t,
		alonzo.InstantaneousRewardSource(alonzo.InstantaneousRewardSourceReserves),
		mirCreds.Reward.Source,
	)
	targets, ok := mirCreds.Reward.Target.(alonzo.InstantaneousRewardStakeCredentials)
	require.True(t, ok)
	require.Len(t, targets, 2)
	assert.Equal(t, int64(1000), targets[0].Value)
	assert.True(t, targets[1].Key.IsScript())
	assert.Equal(t, int64(-50), targets[1].Value)

	mirPot, ok := certs[6].(alonzo.MoveInstantaneousRewardsCertificate)
	require.True(t, ok)
	assert.Equal(t, "treasury", mirPot.Reward.Source.String())
	assert.Equal(t, alonzo.InstantaneousRewardOtherPot(2500), mirPot.Reward.Target)

	dereg, ok := certs[7].(alonzo.StakeDeregistrationCertificate)
	require.True(t, ok)
	assert.True(t, dereg.StakeCredential.IsScript())
	assert.Equal(t, common.NewBlake2b224(filled(0xd6, 28)), dereg.StakeCredential.Hash)
}

func TestAlonzoBlockWitnessSets(t *testing.T) {
	block, _ := decodeTestBlock(t)
	require.Len(t, block.TransactionWitnessSets, 2)

	ws0 := block.TransactionWitnessSets[0]
	require.Len(t, ws0.VkeyWitnesses, 1)
	assert.Equal(t, filled(0x92, 64), ws0.VkeyWitnesses[0].Signature)
	assert.Nil(t, ws0.NativeScripts)
	assert.Nil(t, ws0.BootstrapWitnesses)
	require.Len(t, ws0.PlutusScripts, 1)
	require.Len(t, ws0.PlutusData, 13)
	require.Len(t, ws0.Redeemers, 2)
	assert.Equal(t, "spend", ws0.Redeemers[0].Tag.String())
	assert.Equal(
		t,
		alonzo.ExUnits{Memory: 2000000, Steps: 500000000},
		ws0.Redeemers[0].ExUnits,
	)
	assert.Equal(t, "mint", ws0.Redeemers[1].Tag.String())

	ws1 := block.TransactionWitnessSets[1]
	assert.Nil(t, ws1.VkeyWitnesses)
	require.Len(t, ws1.NativeScripts, 3)
	all, ok := ws1.NativeScripts[0].(alonzo.NativeScriptAll)
	require.True(t, ok)
	assert.Equal(
		t,
		[]alonzo.NativeScript{
			alonzo.NativeScriptPubkey{Hash: common.NewBlake2b224(filled(0xd1, 28))},
			alonzo.NativeScriptInvalidBefore{Slot: 1000},
		},
		all.Scripts,
	)
	nofk, ok := ws1.NativeScripts[1].(alonzo.NativeScriptNofK)
	require.True(t, ok)
	assert.Equal(t, uint32(2), nofk.N)
	assert.Len(t, nofk.Scripts, 3)
	anyScript, ok := ws1.NativeScripts[2].(alonzo.NativeScriptAny)
	require.True(t, ok)
	assert.Empty(t, anyScript.Scripts)
	require.Len(t, ws1.BootstrapWitnesses, 1)
	assert.Equal(t, []byte{0xa0}, ws1.BootstrapWitnesses[0].Attributes)
}

func TestAlonzoBlockPlutusData(t *testing.T) {
	block, _ := decodeTestBlock(t)
	items := block.TransactionWitnessSets[0].PlutusData
	for _, item := range items {
		// Each datum hashes over the bytes it was decoded from
		encoded, err := alonzo.EncodePlutusData(item.Data)
		require.NoError(t, err)
		assert.Equal(t, encoded, item.Cbor())
		hash, err := item.Hash()
		require.NoError(t, err)
		assert.Equal(t, common.Blake2b256Hash(item.Cbor()), hash)
	}

	constr, ok := items[0].Data.(alonzo.Constr)
	require.True(t, ok)
	assert.Equal(t, uint64(121), constr.Tag)
	assert.True(t, constr.Indefinite)
	assert.Len(t, constr.Fields, 3)
	alt, err := constr.Alternative()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), alt)

	general, ok := items[1].Data.(alonzo.Constr)
	require.True(t, ok)
	assert.Equal(t, uint64(cbor.CborTagAlternativeGeneral), general.Tag)
	require.NotNil(t, general.Prefix)
	alt, err = general.Alternative()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), alt)
	assert.True(t, general.Indefinite)

	definiteMap, ok := items[2].Data.(alonzo.PlutusMap)
	require.True(t, ok)
	assert.False(t, definiteMap.Indefinite)
	indefMap, ok := items[3].Data.(alonzo.PlutusMap)
	require.True(t, ok)
	assert.True(t, indefMap.Indefinite)

	twoTo72 := new(big.Int).Lsh(big.NewInt(1), 72)
	posBig, ok := items[4].Data.(alonzo.BigUInt)
	require.True(t, ok)
	assert.Equal(t, 0, twoTo72.Cmp(posBig.Big()))
	negBig, ok := items[5].Data.(alonzo.BigNInt)
	require.True(t, ok)
	expectedNeg := new(big.Int).Neg(twoTo72)
	expectedNeg.Sub(expectedNeg, big.NewInt(1))
	assert.Equal(t, 0, expectedNeg.Cmp(negBig.Big()))

	assert.Equal(t, "-5", items[6].Data.(alonzo.BigIntNative).String())
	assert.Equal(t, "18446744073709551615", items[7].Data.(alonzo.BigIntNative).String())
	assert.Equal(t, "-18446744073709551616", items[8].Data.(alonzo.BigIntNative).String())

	_, ok = items[9].Data.(alonzo.PlutusArrayIndef)
	assert.True(t, ok)
	emptyArray, ok := items[10].Data.(alonzo.PlutusArray)
	require.True(t, ok)
	assert.Empty(t, emptyArray)

	chunked, ok := items[11].Data.(alonzo.BoundedBytes)
	require.True(t, ok)
	assert.True(t, chunked.Chunked)
	assert.Equal(t, slices.Concat(filled(0x5a, 64), filled(0x5b, 10)), chunked.Bytes)

	extended, ok := items[12].Data.(alonzo.Constr)
	require.True(t, ok)
	alt, err = extended.Alternative()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), alt)
	assert.False(t, extended.Indefinite)
}

func TestAlonzoBlockAuxiliaryData(t *testing.T) {
	block, _ := decodeTestBlock(t)
	require.Len(t, block.AuxiliaryData, 1)
	assert.Equal(t, alonzo.TransactionIndex(0), block.AuxiliaryData[0].Key)

	aux, ok := block.AuxiliaryData[0].Value.(alonzo.AlonzoAuxiliaryData)
	require.True(t, ok)
	assert.Equal(t, []uint64{674, 1, 2, 3}, aux.Metadata.Keys())
	assert.Len(t, aux.NativeScripts, 1)
	assert.Len(t, aux.PlutusScripts, 1)

	list, ok := aux.Metadata[3].Value.(alonzo.MetaList)
	require.True(t, ok)
	assert.True(t, list.Indefinite)
	require.Len(t, list.Items, 3)
	assert.Equal(t, alonzo.MetaText{Value: "a"}, list.Items[0])
	assert.Equal(t, "int", list.Items[1].TypeName())

	msg, ok := aux.Metadata[0].Value.(alonzo.MetaMap)
	require.True(t, ok)
	require.Len(t, msg.Pairs, 1)
	assert.Equal(t, alonzo.MetaText{Value: "msg"}, msg.Pairs[0].Key)

	auxHash, err := alonzo.AuxiliaryDataHash(aux)
	require.NoError(t, err)
	assert.Equal(t, testdata.AlonzoBlockAuxDataHash, auxHash.String())
	bodyAuxHash := block.TransactionBodies[0].AuxDataHash()
	require.NotNil(t, bodyAuxHash)
	assert.Equal(t, auxHash, *bodyAuxHash)
}

func TestAlonzoBlockTransactions(t *testing.T) {
	block, _ := decodeTestBlock(t)
	assert.Equal(t, []alonzo.TransactionIndex{1}, block.InvalidTransactions)
	txs, err := block.Transactions()
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].IsValid)
	assert.NotNil(t, txs[0].AuxiliaryData)
	assert.False(t, txs[1].IsValid)
	assert.Nil(t, txs[1].AuxiliaryData)

	block.TransactionWitnessSets = block.TransactionWitnessSets[:1]
	_, err = block.Transactions()
	assert.Error(t, err)
}

func TestAlonzoBlockWrapper(t *testing.T) {
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	wrapped := slices.Concat([]byte{0x82, 0x04}, blockCbor)

	wrapper, err := alonzo.DecodeBlockWrapper(wrapped)
	require.NoError(t, err)
	assert.Equal(t, uint16(alonzo.EraIdAlonzo), wrapper.Era)
	hash, err := wrapper.Block.Hash()
	require.NoError(t, err)
	assert.Equal(t, testdata.AlonzoBlockHash, hash.String())

	encoded, err := alonzo.EncodeBlockWrapper(wrapper)
	require.NoError(t, err)
	assert.Equal(t, wrapped, encoded)

	var viaUnmarshal alonzo.BlockWrapper
	require.NoError(t, viaUnmarshal.UnmarshalCBOR(wrapped))
	assert.Equal(t, wrapper.Era, viaUnmarshal.Era)
}

func TestAlonzoBlockTrailingData(t *testing.T) {
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	_, err := alonzo.DecodeBlock(slices.Concat(blockCbor, []byte{0x00}))
	assert.ErrorIs(t, err, alonzo.ErrTrailingData)
}

func TestAlonzoBlockTruncated(t *testing.T) {
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	for _, size := range []int{0, 1, 100, len(blockCbor) / 2, len(blockCbor) - 1} {
		_, err := alonzo.DecodeBlock(blockCbor[:size])
		assert.Error(t, err, "decoding %d of %d bytes", size, len(blockCbor))
	}
}

func TestAlonzoBlockConcurrentDecode(t *testing.T) {
	blockCbor := testdata.MustDecodeHex(testdata.AlonzoBlockHex)
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			block, err := alonzo.DecodeBlock(blockCbor)
			if err != nil {
				errs <- err
				return
			}
			encoded, err := alonzo.EncodeBlock(block)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(blockCbor, encoded) {
				errs <- errors.New("round-trip mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestAlonzoBlockUtxorpc(t *testing.T) {
	block, _ := decodeTestBlock(t)
	rpcBlock, err := block.Utxorpc()
	require.NoError(t, err)
	require.Len(t, rpcBlock.Body.Tx, 2)
	assert.Equal(t, uint64(testdata.AlonzoBlockSlot), rpcBlock.Header.Slot)
	assert.Equal(t, uint64(testdata.AlonzoBlockNumber), rpcBlock.Header.Height)

	tx0 := rpcBlock.Body.Tx[0]
	assert.Equal(t, uint64(180000), tx0.Fee)
	assert.Equal(t, testdata.MustDecodeHex(testdata.AlonzoBlockTx0Id), tx0.Hash)
	require.Len(t, tx0.Inputs, 2)
	assert.Equal(t, uint32(3), tx0.Inputs[1].OutputIndex)
	require.Len(t, tx0.Outputs, 2)
	assert.Nil(t, tx0.Outputs[0].Datum)
	require.Len(t, tx0.Outputs[1].Assets, 1)
	assert.Len(t, tx0.Outputs[1].Assets[0].Assets, 2)
	require.NotNil(t, tx0.Outputs[1].Datum)
	assert.Equal(t, filled(0xc1, 32), tx0.Outputs[1].Datum.Hash)
}
