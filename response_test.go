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
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasconform.dev/oasconform/internal/httpadapter"
)

func mustResponse(t *testing.T, status int, body string, headers map[string]string) *httpadapter.Response {
	t.Helper()
	header := make(http.Header, len(headers))
	for k, v := range headers {
		header.Set(k, v)
	}
	resp := &http.Response{StatusCode: status, Header: header, Body: io.NopCloser(strings.NewReader(body))}
	adapter, err := httpadapter.NewResponse(resp)
	require.NoError(t, err)
	return adapter
}

func TestValidateResponseValid(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	resp := mustResponse(t, 200, `{"id":"42","name":"Widget"}`, map[string]string{"Content-Type": "application/json"})

	result := doc.ValidateResponse(req, resp)
	assert.True(t, result.IsValid(), "%+v", result.Errors)
}

func TestValidateResponseWriteOnlyPropertyPresent(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	resp := mustResponse(t, 200, `{"id":"42","name":"Widget","secret":"shh"}`, map[string]string{"Content-Type": "application/json"})

	result := doc.ValidateResponse(req, resp)
	require.False(t, result.IsValid())

	var found bool
	for _, e := range result.Errors {
		if e.Kind == KindWriteOnlyInResponse {
			found = true
		}
	}
	assert.True(t, found, "%+v", result.Errors)
}

func TestValidateResponseFallsBackToDefault(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	resp := mustResponse(t, 404, `{"message":"not found"}`, map[string]string{"Content-Type": "application/json"})

	result := doc.ValidateResponse(req, resp)
	assert.True(t, result.IsValid(), "%+v", result.Errors)
}

func TestValidateResponseNoMatchingStatus(t *testing.T) {
	doc, err := Load([]byte(`
openapi: 3.1.0
info:
  title: NoDefault
  version: "1.0"
paths:
  /things:
    get:
      responses:
        "200":
          description: ok
`))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/things", "", nil)
	resp := mustResponse(t, 500, "", nil)

	result := doc.ValidateResponse(req, resp)
	require.False(t, result.IsValid())
	assert.Equal(t, KindNoMatchingOperation, result.Errors[0].Kind)
}

func TestValidateWithPathMatchSharedAcrossRequestAndResponse(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	resp := mustResponse(t, 200, `{"id":"42","name":"Widget"}`, map[string]string{"Content-Type": "application/json"})

	match, ok := doc.FindPath(req.URI().Path)
	require.True(t, ok)
	assert.Equal(t, "/widgets/{id}", match.Template)

	reqResult := doc.ValidateRequest(req, WithPathMatch(match))
	assert.True(t, reqResult.IsValid(), "%+v", reqResult.Errors)

	respResult := doc.ValidateResponse(req, resp, WithPathMatch(match))
	assert.True(t, respResult.IsValid(), "%+v", respResult.Errors)
}

func TestValidateWithPathMatchUnknownTemplate(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	result := doc.ValidateRequest(req, WithPathMatch(PathMatch{Template: "/nonexistent"}))
	require.False(t, result.IsValid())
	assert.Equal(t, KindPathTemplateUnknown, result.Errors[0].Kind)
}

func TestValidateResponseBodySchemaFailure(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	req := mustRequest(t, "GET", "http://example.com/widgets/42", "", map[string]string{"X-Request-Id": "r-1"})
	resp := mustResponse(t, 200, `{"id":"42"}`, map[string]string{"Content-Type": "application/json"})

	result := doc.ValidateResponse(req, resp)
	require.False(t, result.IsValid())

	var found bool
	for _, e := range result.Errors {
		if e.Kind == KindBodySchemaFailure {
			found = true
		}
	}
	assert.True(t, found, "%+v", result.Errors)
}
