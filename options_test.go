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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMetaschemaValidationAcceptsConformingDocument(t *testing.T) {
	_, err := Load([]byte(widgetsDoc), WithMetaschemaValidation())
	require.NoError(t, err)
}

func TestWithMetaschemaValidationRejectsMalformedDocument(t *testing.T) {
	const malformed = `
openapi: 4.0.0
info:
  title: Bad
  version: "1.0"
paths:
  /things:
    get:
      responses:
        "200":
          description: ok
`
	_, err := Load([]byte(malformed), WithMetaschemaValidation())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMetaschemaValidation)
}

func TestWithDocumentURIAffectsAbsoluteKeywordLocation(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc), WithDocumentURI("https://example.com/openapi.yaml"))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", nil)
	result := doc.ValidateRequest(req)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Errors[0].AbsoluteKeywordLocation, "https://example.com/openapi.yaml#")
}
