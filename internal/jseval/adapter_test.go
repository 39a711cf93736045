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

package jseval

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, name string, raw map[string]any) *jsonschema.Schema {
	t.Helper()
	c := jsonschema.NewCompiler()
	require.NoError(t, c.AddResource(name, raw))
	s, err := c.Compile(name)
	require.NoError(t, err)
	return s
}

func TestEvaluateValidInstanceReturnsNil(t *testing.T) {
	s := mustCompile(t, "valid.json", map[string]any{"type": "string"})
	assert.Nil(t, Evaluate(s, "hello"))
}

func TestEvaluateTypeMismatch(t *testing.T) {
	s := mustCompile(t, "type.json", map[string]any{"type": "integer"})
	leaves := Evaluate(s, "not a number")
	require.Len(t, leaves, 1)
	assert.NotEmpty(t, leaves[0].Message)
}

func TestEvaluateNestedPropertyFailure(t *testing.T) {
	raw := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"age": map[string]any{"type": "integer"},
		},
		"required": []any{"age"},
	}
	s := mustCompile(t, "nested.json", raw)
	leaves := Evaluate(s, map[string]any{"age": "old"})
	require.NotEmpty(t, leaves)

	var found bool
	for _, l := range leaves {
		if l.InstanceLocation == "/age" {
			found = true
		}
	}
	assert.True(t, found)
}
