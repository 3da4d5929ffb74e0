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

package config

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/blinklabs-io/alonzo-codec/ledger/alonzo"
)

type ctxKey string

const configContextKey ctxKey = "alonzo-block.config"

// EnvPrefix is the prefix of the environment variables read by LoadConfig
const EnvPrefix = "alonzo"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// InputFormat describes how block files are read
type InputFormat string

const (
	InputFormatAuto InputFormat = "auto" // hex if the file is valid hex, raw CBOR otherwise
	InputFormatHex  InputFormat = "hex"
	InputFormatRaw  InputFormat = "raw"
)

// Valid returns true if the InputFormat is a known format
func (f InputFormat) Valid() bool {
	switch f {
	case InputFormatAuto, InputFormatHex, InputFormatRaw, "":
		return true
	default:
		return false
	}
}

var ErrInvalidHexInput = errors.New("input is not valid hex")

type Config struct {
	InputFormat InputFormat `yaml:"inputFormat" split_words:"true"`
	MaxDepth    int         `yaml:"maxDepth"    split_words:"true"`
	Debug       bool        `yaml:"debug"`
	// Wrapped blocks carry a leading era id: [era, block]
	Wrapped bool `yaml:"wrapped"`
	// Report skipped values through the logger
	LogSkipped bool `yaml:"logSkipped" split_words:"true"`
}

func defaultConfig() *Config {
	return &Config{
		InputFormat: InputFormatAuto,
		MaxDepth:    alonzo.DefaultMaxDepth,
		Debug:       false,
		Wrapped:     false,
		LogSkipped:  true,
	}
}

// LoadConfig returns the defaults overlaid by the YAML config file (when one
// is found) and then by the environment
func LoadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	if configFile == "" {
		// Check for config file in this path: ~/.alonzo-block/config.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".alonzo-block", "config.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if !cfg.InputFormat.Valid() {
		return nil, fmt.Errorf(
			"invalid inputFormat: %q (must be 'auto', 'hex', or 'raw')",
			cfg.InputFormat,
		)
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = InputFormatAuto
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid maxDepth: %d", cfg.MaxDepth)
	}
	return cfg, nil
}

// DecodeOptions returns the codec options matching the config
func (c *Config) DecodeOptions(opts ...alonzo.DecodeOptionFunc) []alonzo.DecodeOptionFunc {
	return append(
		[]alonzo.DecodeOptionFunc{alonzo.WithMaxDepth(c.MaxDepth)},
		opts...,
	)
}

// ParseInput converts the contents of an input file to CBOR bytes
func (c *Config) ParseInput(data []byte) ([]byte, error) {
	switch c.InputFormat {
	case InputFormatRaw:
		return data, nil
	case InputFormatHex:
		ret, err := decodeHexInput(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHexInput, err)
		}
		return ret, nil
	default:
		if ret, err := decodeHexInput(data); err == nil {
			return ret, nil
		}
		return data, nil
	}
}

func decodeHexInput(data []byte) ([]byte, error) {
	return hex.DecodeString(strings.TrimSpace(string(data)))
}
