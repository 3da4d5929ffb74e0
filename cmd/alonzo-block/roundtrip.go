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
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blinklabs-io/alonzo-codec/internal/config"
	"github.com/blinklabs-io/alonzo-codec/ledger/alonzo"
)

var ErrRoundTripMismatch = errors.New("re-encoded block does not match input")

// roundTrip decodes the input and re-encodes it, returning an error unless
// the output is byte-identical
func roundTrip(data []byte, cfg *config.Config, logger *slog.Logger) error {
	block, era, err := decodeInputBlock(data, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to decode block: %w", err)
	}
	var encoded []byte
	if cfg.Wrapped {
		encoded, err = alonzo.EncodeBlockWrapper(
			alonzo.BlockWrapper{Era: era, Block: block},
		)
	} else {
		encoded, err = alonzo.EncodeBlock(block)
	}
	if err != nil {
		return fmt.Errorf("failed to encode block: %w", err)
	}
	if !bytes.Equal(data, encoded) {
		return fmt.Errorf(
			"%w: first difference at offset %d (input %d bytes, output %d bytes)",
			ErrRoundTripMismatch,
			firstDifference(data, encoded),
			len(data),
			len(encoded),
		)
	}
	return nil
}

func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func roundtripCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <file|->",
		Short: "Decode and re-encode a block, failing unless the bytes match",
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
			if err := roundTrip(data, cfg, logger); err != nil {
				return err
			}
			logger.Info(
				"round trip matched",
				"component", programName,
				"bytes", len(data),
			)
			return nil
		},
	}
	return cmd
}
