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

package body

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/mediatype"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/recur"
)

func compile(t *testing.T, name string, raw map[string]any) *jsonschema.Schema {
	t.Helper()
	c := jsonschema.NewCompiler()
	require.NoError(t, c.AddResource(name, raw))
	s, err := c.Compile(name)
	require.NoError(t, err)
	return s
}

func TestValidateMissingRequiredBody(t *testing.T) {
	entity := Entity{Required: true, Pointer: "/paths/~1items/post/requestBody"}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "body-schema-failure", string(result.Errors[0].Kind))
}

func TestValidateOptionalAbsentBodyIsValid(t *testing.T) {
	entity := Entity{Pointer: "/paths/~1items/post/requestBody"}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	assert.True(t, result.IsValid())
}

func TestValidateRequiredAbsentBodyWithTrivialSchemaIsValid(t *testing.T) {
	entity := Entity{
		Required:    true,
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "application/json",
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Raw: true}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	assert.True(t, result.IsValid())
}

func TestValidateNoMatchingContentType(t *testing.T) {
	raw := map[string]any{"type": "object"}
	entity := Entity{
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "text/xml",
		Raw:         []byte(`<a/>`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Raw: raw, Compiled: compile(t, "a.json", raw)}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "no-matching-content-type", string(result.Errors[0].Kind))
}

func TestValidateSchemaFailure(t *testing.T) {
	raw := map[string]any{"type": "object", "required": []any{"name"}}
	entity := Entity{
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "application/json",
		Raw:         []byte(`{}`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Raw: raw, Compiled: compile(t, "b.json", raw)}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "body-schema-failure", string(result.Errors[0].Kind))
}

func TestValidateForbiddenEntity(t *testing.T) {
	entity := Entity{
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "application/json",
		Raw:         []byte(`{}`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Raw: false}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "entity-forbidden", string(result.Errors[0].Kind))
}

func TestValidateTrivialSchemaSkipsDecode(t *testing.T) {
	entity := Entity{
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "application/json",
		Raw:         []byte(`not even json`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Raw: true}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), nil, recur.New())
	assert.True(t, result.IsValid())
}

func TestValidateReadOnlyInRequestBody(t *testing.T) {
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string", "readOnly": true},
			"name": map[string]any{"type": "string"},
		},
	}
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Widget": raw,
			},
		},
	}
	entity := Entity{
		Pointer:     "/paths/~1items/post/requestBody",
		ContentType: "application/json",
		Raw:         []byte(`{"id":"abc","name":"widget"}`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Pointer: "/components/schemas/Widget", Raw: raw, Compiled: compile(t, "c.json", raw)}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionRequest, entity, "/request/body", mediatype.NewRegistry(), root, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "read-only-in-request", string(result.Errors[0].Kind))
	assert.Equal(t, "/request/body/id", result.Errors[0].InstanceLocation)
}

func TestValidateWriteOnlyInResponseBody(t *testing.T) {
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"password": map[string]any{"type": "string", "writeOnly": true},
		},
	}
	root := map[string]any{}
	entity := Entity{
		Pointer:     "/paths/~1users/post/responses/201",
		ContentType: "application/json",
		Raw:         []byte(`{"password":"secret"}`),
		Content: map[string]*model.MediaTypeEntry{
			"application/json": {Schema: &model.Schema{Pointer: "/components/schemas/User", Raw: raw, Compiled: compile(t, "d.json", raw)}},
		},
	}
	result := Validate(evalctx.Context{}, DirectionResponse, entity, "/response/body", mediatype.NewRegistry(), root, recur.New())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "write-only-in-response", string(result.Errors[0].Kind))
}
