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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blinklabs-io/alonzo-codec/internal/config"
	"github.com/blinklabs-io/alonzo-codec/ledger/alonzo"
)

const (
	programName = "alonzo-block"
)

var (
	globalFlags = struct {
		debug bool
	}{}
	configFile string
)

func commonRun(cfg *config.Config) *slog.Logger {
	// Configure logger
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug || cfg.Debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

// loadInput reads the block file named by the first argument, or stdin when
// it is "-"
func loadInput(args []string, cfg *config.Config) ([]byte, error) {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return cfg.ParseInput(data)
}

func decodeOptions(cfg *config.Config, logger *slog.Logger) []alonzo.DecodeOptionFunc {
	opts := []alonzo.DecodeOptionFunc{alonzo.WithLogger(logger)}
	if !cfg.LogSkipped {
		opts = append(opts, alonzo.WithDiagnostics(discardDiagnostics{}))
	}
	return cfg.DecodeOptions(opts...)
}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Decode and re-encode Alonzo-era blocks",
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		String("format", "", "input format: auto, hex, or raw")
	rootCmd.PersistentFlags().
		Bool("wrapped", false, "input is an era-wrapped block [era, block]")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with command line flags
		flags := cmd.Root().PersistentFlags()
		if flags.Changed("format") {
			format, _ := flags.GetString("format")
			cfg.InputFormat = config.InputFormat(format)
			if !cfg.InputFormat.Valid() {
				return fmt.Errorf("invalid input format: %q", format)
			}
		}
		if flags.Changed("wrapped") {
			cfg.Wrapped, _ = flags.GetBool("wrapped")
		}

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(decodeCommand())
	rootCmd.AddCommand(roundtripCommand())
	rootCmd.AddCommand(dumpCommand())

	// Execute cobra command
	if err := rootCmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}
