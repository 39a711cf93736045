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

package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func TestEngineValidateJSONAccepts(t *testing.T) {
	engine := New()
	err := engine.ValidateJSON(context.Background(), []byte(widgetSchema), []byte(`{"name":"widget"}`))
	assert.NoError(t, err)
}

func TestEngineValidateJSONRejects(t *testing.T) {
	engine := New()
	err := engine.ValidateJSON(context.Background(), []byte(widgetSchema), []byte(`{}`))
	assert.Error(t, err)
}

func TestEngineValidateOpenAPIUnknownVersion(t *testing.T) {
	engine := New()
	err := engine.ValidateOpenAPI(context.Background(), "9.9", []byte(`{}`), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown OpenAPI version")
}

func TestEngineValidateJSONNoCompiler(t *testing.T) {
	var engine Engine
	err := engine.ValidateJSON(context.Background(), []byte(widgetSchema), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidator)
}
