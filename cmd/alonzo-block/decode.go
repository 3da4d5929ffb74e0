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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/internal/config"
	"github.com/blinklabs-io/alonzo-codec/ledger/alonzo"
	"github.com/blinklabs-io/alonzo-codec/ledger/common"
)

type discardDiagnostics struct{}

func (discardDiagnostics) SkippedValue(uint, cbor.Type) {}

type blockSummary struct {
	Era          uint16               `json:"era,omitempty"`
	Hash         common.BlockHash     `json:"hash"`
	Slot         uint64               `json:"slot"`
	BlockNumber  uint64               `json:"blockNumber"`
	IssuerPoolId string               `json:"issuerPoolId"`
	Transactions []transactionSummary `json:"transactions"`
}

type transactionSummary struct {
	Id                common.TransactionId      `json:"id"`
	Valid             bool                      `json:"valid"`
	Fee               uint64                    `json:"fee"`
	Inputs            int                       `json:"inputs"`
	Outputs           int                       `json:"outputs"`
	Certificates      int                       `json:"certificates,omitempty"`
	Redeemers         int                       `json:"redeemers,omitempty"`
	AuxDataHash       *common.AuxDataHash       `json:"auxDataHash,omitempty"`
	Withdrawals       []withdrawalSummary       `json:"withdrawals,omitempty"`
	PoolRegistrations []poolRegistrationSummary `json:"poolRegistrations,omitempty"`
	Datums            []common.DatumHash        `json:"datums,omitempty"`
	Skipped           []uint                    `json:"skipped,omitempty"`
}

type withdrawalSummary struct {
	RewardAccount string `json:"rewardAccount"`
	Amount        uint64 `json:"amount"`
}

type poolRegistrationSummary struct {
	PoolId        string `json:"poolId"`
	RewardAccount string `json:"rewardAccount"`
}

// decodeInputBlock decodes a bare or era-wrapped block as configured
func decodeInputBlock(
	data []byte,
	cfg *config.Config,
	logger *slog.Logger,
) (alonzo.Block, uint16, error) {
	opts := decodeOptions(cfg, logger)
	if cfg.Wrapped {
		wrapper, err := alonzo.DecodeBlockWrapper(data, opts...)
		if err != nil {
			return alonzo.Block{}, 0, err
		}
		return wrapper.Block, wrapper.Era, nil
	}
	block, err := alonzo.DecodeBlock(data, opts...)
	if err != nil {
		return alonzo.Block{}, 0, err
	}
	return block, 0, nil
}

func summarizeBlock(block alonzo.Block, era uint16) (*blockSummary, error) {
	hash, err := block.Hash()
	if err != nil {
		return nil, err
	}
	poolId, err := alonzo.PoolId(block.Header.IssuerPoolId())
	if err != nil {
		return nil, err
	}
	txs, err := block.Transactions()
	if err != nil {
		return nil, err
	}
	ret := &blockSummary{
		Era:          era,
		Hash:         hash,
		Slot:         block.SlotNumber(),
		BlockNumber:  block.BlockNumber(),
		IssuerPoolId: poolId,
		Transactions: make([]transactionSummary, 0, len(txs)),
	}
	for _, tx := range txs {
		txSummary, err := summarizeTransaction(tx)
		if err != nil {
			return nil, err
		}
		ret.Transactions = append(ret.Transactions, txSummary)
	}
	return ret, nil
}

func summarizeTransaction(tx alonzo.Transaction) (transactionSummary, error) {
	txId, err := tx.Body.Hash()
	if err != nil {
		return transactionSummary{}, err
	}
	txSummary := transactionSummary{
		Id:           txId,
		Valid:        tx.IsValid,
		Fee:          tx.Body.Fee(),
		Inputs:       len(tx.Body.Inputs()),
		Outputs:      len(tx.Body.Outputs()),
		Certificates: len(tx.Body.Certificates()),
		Redeemers:    len(tx.WitnessSet.Redeemers),
		AuxDataHash:  tx.Body.AuxDataHash(),
	}
	for _, withdrawal := range tx.Body.Withdrawals() {
		txSummary.Withdrawals = append(
			txSummary.Withdrawals,
			withdrawalSummary{
				RewardAccount: withdrawal.Key.String(),
				Amount:        withdrawal.Value,
			},
		)
	}
	for _, cert := range tx.Body.Certificates() {
		pool, ok := cert.(alonzo.PoolRegistrationCertificate)
		if !ok {
			continue
		}
		poolId, err := pool.PoolId()
		if err != nil {
			return transactionSummary{}, err
		}
		txSummary.PoolRegistrations = append(
			txSummary.PoolRegistrations,
			poolRegistrationSummary{
				PoolId:        poolId,
				RewardAccount: pool.RewardAccount.String(),
			},
		)
	}
	for _, datum := range tx.WitnessSet.PlutusData {
		datumHash, err := datum.Hash()
		if err != nil {
			return transactionSummary{}, err
		}
		txSummary.Datums = append(txSummary.Datums, datumHash)
	}
	for _, component := range tx.Body.Components {
		if skipped, ok := component.(alonzo.TransactionBodyUpdate); ok {
			txSummary.Skipped = append(txSummary.Skipped, skipped.FieldID)
		}
	}
	return txSummary, nil
}

func decodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode a block and print a JSON summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := commonRun(cfg)
			data, err := loadInput(args, cfg)
			if err != nil {
				return err
			}
			block, era, err := decodeInputBlock(data, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to decode block: %w", err)
			}
			summary, err := summarizeBlock(block, era)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	return cmd
}
