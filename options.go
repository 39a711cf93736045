// Copyright 2025 The Rivaas Authors
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

package oasconform

import (
	"io"
	"log/slog"

	"oasconform.dev/oasconform/internal/mediatype"
)

// loadConfig accumulates the options a Load/LoadFile call was given.
type loadConfig struct {
	uri                  string
	metaschemaValidation bool
	logger               *slog.Logger
	decoders             *mediatype.Registry
}

func newLoadConfig() *loadConfig {
	return &loadConfig{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		decoders: mediatype.NewRegistry(),
	}
}

// LoadOption configures a Load or LoadFile call.
type LoadOption func(*loadConfig)

// WithDocumentURI sets the document's own identifier, used as the
// resolution base for every absoluteKeywordLocation a validation call
// produces. LoadFile sets this to the file path by default; Load leaves
// it empty unless given this option.
func WithDocumentURI(uri string) LoadOption {
	return func(c *loadConfig) { c.uri = uri }
}

// WithMetaschemaValidation rejects a document that does not itself
// conform to the OpenAPI 3.1 meta-schema, before any of the rest of
// Load runs. Off by default, since most callers already trust their
// document's structure and would rather pay this cost once at authoring
// time than on every process start.
func WithMetaschemaValidation() LoadOption {
	return func(c *loadConfig) { c.metaschemaValidation = true }
}

// WithLogger routes the document's structured log output through
// logger instead of discarding it. A nil logger is ignored.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMediaTypeDecoder registers a decoder for a media-type pattern
// (e.g. "application/xml"), consulted by both body and content-keyed
// parameter evaluation. Registering a pattern this module already
// builds in (e.g. "application/json") overrides the built-in.
func WithMediaTypeDecoder(pattern string, decoder mediatype.Decoder) LoadOption {
	return func(c *loadConfig) { c.decoders.RegisterDecoder(pattern, decoder) }
}
