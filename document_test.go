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

const widgetsDoc = `
openapi: 3.1.0
info:
  title: Widgets
  version: "1.0"
paths:
  /widgets/{id}:
    get:
      operationId: getWidget
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: X-Request-Id
          in: header
          required: true
          schema:
            type: string
      responses:
        "200":
          content:
            application/json:
              schema:
                type: object
                required: [id, name]
                properties:
                  id:
                    type: string
                  name:
                    type: string
                  secret:
                    type: string
                    writeOnly: true
        default:
          content:
            application/json:
              schema:
                type: object
                properties:
                  message:
                    type: string
  /widgets:
    post:
      operationId: createWidget
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                id:
                  type: string
                  readOnly: true
      responses:
        "201":
          description: created
`

func TestLoadRejectsInvalidDocument(t *testing.T) {
	_, err := Load([]byte("not: [valid"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestFindPathMatchesDeclaredTemplate(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	match, ok := doc.FindPath("/widgets/42")
	require.True(t, ok)
	assert.Equal(t, "/widgets/{id}", match.Template)
	assert.Equal(t, "42", match.Captures["id"])
}

func TestFindPathNoMatch(t *testing.T) {
	doc, err := Load([]byte(widgetsDoc))
	require.NoError(t, err)

	_, ok := doc.FindPath("/nonexistent")
	assert.False(t, ok)
}
