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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blinklabs-io/alonzo-codec/cbor"
	"github.com/blinklabs-io/alonzo-codec/internal/config"
)

func dumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file|->",
		Short: "Print the generic CBOR structure of the input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			commonRun(cfg)
			data, err := loadInput(args, cfg)
			if err != nil {
				return err
			}
			out, err := cbor.Dump(data)
			if err != nil {
				return fmt.Errorf("failed to dump input: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	return cmd
}
