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
	"log/slog"

	"github.com/blinklabs-io/alonzo-codec/cbor"
)

// DefaultMaxDepth bounds the nesting of recursive structures during decode.
// It matches the nesting limit of the underlying CBOR library.
const DefaultMaxDepth = 256

// Diagnostics receives advisory reports about values the decoder tolerated
// without modeling them
type Diagnostics interface {
	SkippedValue(fieldID uint, found cbor.Type)
}

// LoggerDiagnostics reports skipped values through a slog.Logger
type LoggerDiagnostics struct {
	Logger *slog.Logger
}

func (l LoggerDiagnostics) SkippedValue(fieldID uint, found cbor.Type) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(
		"skipped unmodeled CBOR value",
		"component", "alonzo",
		"field_id", fieldID,
		"cbor_type", found.String(),
	)
}

type decodeConfig struct {
	logger      *slog.Logger
	diagnostics Diagnostics
	maxDepth    int
}

// DecodeOptionFunc is a type that represents functions that modify the decode config
type DecodeOptionFunc func(*decodeConfig)

// WithLogger specifies the logger used by the default diagnostics sink
func WithLogger(logger *slog.Logger) DecodeOptionFunc {
	return func(c *decodeConfig) {
		c.logger = logger
	}
}

// WithDiagnostics specifies where skipped values are reported. It takes
// precedence over WithLogger.
func WithDiagnostics(diagnostics Diagnostics) DecodeOptionFunc {
	return func(c *decodeConfig) {
		c.diagnostics = diagnostics
	}
}

// WithMaxDepth specifies the maximum nesting depth of recursive structures
func WithMaxDepth(maxDepth int) DecodeOptionFunc {
	return func(c *decodeConfig) {
		c.maxDepth = maxDepth
	}
}

func newDecodeConfig(opts ...DecodeOptionFunc) decodeConfig {
	c := decodeConfig{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.diagnostics == nil {
		c.diagnostics = LoggerDiagnostics{Logger: c.logger}
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	return c
}
