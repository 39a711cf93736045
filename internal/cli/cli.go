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

// Package cli implements the oasconform command-line subcommands,
// kept separate from package main so its command construction is
// itself testable.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"oasconform.dev/oasconform"
	"oasconform.dev/oasconform/internal/httpadapter"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes subsequent Load calls' structured output through l.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// transaction is the recorded-HTTP-exchange shape the check command
// reads from its transaction file: a request, and optionally the
// response that was recorded for it.
type transaction struct {
	Request  exchangeRequest   `json:"request"`
	Response *exchangeResponse `json:"response,omitempty"`
}

type exchangeRequest struct {
	Method  string            `json:"method"`
	URI     string            `json:"uri"`
	Host    string            `json:"host"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

type exchangeResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// NewCheckCommand builds the "check" subcommand: validate a recorded
// request (and, if present, its response) against an OpenAPI document.
func NewCheckCommand() *cobra.Command {
	var metaschema bool

	cmd := &cobra.Command{
		Use:   "check <document> <transaction.json>",
		Short: "Validate a recorded HTTP request/response exchange against an OpenAPI document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0], args[1], metaschema)
		},
	}
	cmd.Flags().BoolVar(&metaschema, "metaschema", false, "also validate the document itself against the OpenAPI meta-schema")
	return cmd
}

// NewLintCommand builds the "lint" subcommand: validate a document
// against the OpenAPI meta-schema without checking any transaction.
func NewLintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <document>",
		Short: "Validate an OpenAPI document against the OpenAPI 3.1 meta-schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := oasconform.LoadFile(args[0], oasconform.WithLogger(logger), oasconform.WithMetaschemaValidation())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func runCheck(out io.Writer, documentPath, transactionPath string, metaschema bool) error {
	opts := []oasconform.LoadOption{oasconform.WithLogger(logger)}
	if metaschema {
		opts = append(opts, oasconform.WithMetaschemaValidation())
	}
	doc, err := oasconform.LoadFile(documentPath, opts...)
	if err != nil {
		return fmt.Errorf("loading %s: %w", documentPath, err)
	}

	raw, err := os.ReadFile(transactionPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", transactionPath, err)
	}
	var tx transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return fmt.Errorf("parsing %s: %w", transactionPath, err)
	}

	req, err := newHTTPRequest(tx.Request)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	result := doc.ValidateRequest(req)

	if tx.Response != nil {
		resp := newHTTPResponse(*tx.Response)
		respAdapter, err := httpadapter.NewResponse(resp)
		if err != nil {
			return fmt.Errorf("building response: %w", err)
		}
		result.Merge(doc.ValidateResponse(req, respAdapter))
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))
	if !result.IsValid() {
		return fmt.Errorf("%d conformance error(s)", len(result.Errors))
	}
	return nil
}

func newHTTPRequest(r exchangeRequest) (*httpadapter.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequest(method, r.URI, strings.NewReader(r.Body))
	if err != nil {
		return nil, err
	}
	if r.Host != "" {
		httpReq.Host = r.Host
	}
	for name, value := range r.Headers {
		httpReq.Header.Set(name, value)
	}
	return httpadapter.NewRequest(httpReq)
}

func newHTTPResponse(r exchangeResponse) *http.Response {
	header := make(http.Header, len(r.Headers))
	for name, value := range r.Headers {
		header.Set(name, value)
	}
	return &http.Response{
		StatusCode: r.Status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(r.Body)),
	}
}
