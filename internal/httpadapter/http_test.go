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

package httpadapter

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAdapterPreservesBodyForCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/foo/bar", strings.NewReader(`{"hello":"world"}`))
	req.Header.Set("Content-Type", "application/json")

	a, err := NewRequest(req)
	require.NoError(t, err)

	body, ok := a.Body()
	require.True(t, ok)
	assert.JSONEq(t, `{"hello":"world"}`, string(body))

	ct, ok := a.Header("content-type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", ct)

	// The original request's body must still be readable by the
	// caller's own handler after the adapter buffered it.
	remaining, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, string(remaining))
}

func TestResponseAdapter(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"My-Response-Header": []string{"123"}},
		Body:       io.NopCloser(strings.NewReader(`{"status":"ok"}`)),
	}

	a, err := NewResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, 200, a.Status())

	v, ok := a.Header("my-response-header")
	assert.True(t, ok)
	assert.Equal(t, "123", v)

	body, ok := a.Body()
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
