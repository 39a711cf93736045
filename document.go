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

// Package oasconform validates HTTP requests and responses against an
// OpenAPI v3.1 document: it resolves which operation a message
// addresses, projects and checks its parameters, and dispatches its
// body to the declared media type for schema evaluation, returning a
// structured Result rather than a bare error.
package oasconform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"oasconform.dev/oasconform/internal/loader"
	"oasconform.dev/oasconform/internal/mediatype"
	"oasconform.dev/oasconform/internal/metaschema"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/pathrouter"
	"oasconform.dev/oasconform/validate"
)

// Document is a loaded, indexed OpenAPI v3.1 document ready to validate
// requests and responses against.
type Document struct {
	doc      *model.Document
	router   *pathrouter.Router
	decoders *mediatype.Registry
	logger   *slog.Logger
}

// Load parses raw (JSON or YAML) and builds a Document. The returned
// error is a plain Go error — ErrInvalidDocument, ErrDuplicateOperationID,
// ErrDuplicateCaptureName, or ErrMetaschemaValidation — never a Result;
// load-time structure is a precondition validation runs on, not a
// conformance outcome itself.
func Load(raw []byte, opts ...LoadOption) (*Document, error) {
	cfg := newLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.metaschemaValidation {
		if err := checkMetaschema(raw); err != nil {
			return nil, err
		}
	}

	doc, err := loader.Load(raw, cfg.uri)
	if err != nil {
		return nil, err
	}

	router, err := pathrouter.Build(doc.PathOrder)
	if err != nil {
		// loader already rejects duplicate capture names per template,
		// so a router build failure here would indicate a loader bug
		// rather than a malformed document.
		return nil, fmt.Errorf("oasconform: indexing paths: %w", err)
	}

	cfg.logger.Debug("openapi document loaded",
		"uri", cfg.uri,
		"paths", len(doc.Paths),
		"operations", len(doc.Operations))

	return &Document{doc: doc, router: router, decoders: cfg.decoders, logger: cfg.logger}, nil
}

// LoadFile reads path and loads it. Unless overridden by an explicit
// WithDocumentURI option, path itself becomes the document's URI.
func LoadFile(path string, opts ...LoadOption) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oasconform: reading %s: %w", path, err)
	}
	all := append([]LoadOption{WithDocumentURI(path)}, opts...)
	return Load(raw, all...)
}

// checkMetaschema decodes raw as YAML or JSON (yaml.v3 accepts both),
// re-encodes it to JSON, and validates the result against the OpenAPI
// 3.1 meta-schema, reusing the document-generation engine's own
// validator and embedded meta-schemas.
func checkMetaschema(raw []byte) error {
	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: %w", ErrMetaschemaValidation, err)
	}
	docJSON, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMetaschemaValidation, err)
	}

	engine := validate.New()
	if err := engine.ValidateOpenAPI(context.Background(), "3.1.2", docJSON, metaschema.OAS30, metaschema.OAS31); err != nil {
		return fmt.Errorf("%w: %w", ErrMetaschemaValidation, err)
	}
	return nil
}
