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

package coerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"oasconform.dev/oasconform/internal/model"
)

func TestScalarCoercesNumericKinds(t *testing.T) {
	v := Scalar("19.99", model.KindNumber)
	assert.Equal(t, json.Number("19.99"), v)

	v = Scalar("42", model.KindInteger)
	assert.Equal(t, json.Number("42"), v)
}

func TestScalarLeavesNonNumericKindsAlone(t *testing.T) {
	v := Scalar("19.99", model.KindString)
	assert.Equal(t, "19.99", v)
}

func TestScalarLeavesUnparsableStringsAlone(t *testing.T) {
	v := Scalar("not-a-number", model.KindInteger)
	assert.Equal(t, "not-a-number", v)
}

func TestScalarPreservesInt64Boundary(t *testing.T) {
	v := Scalar("9223372036854775807", model.KindInteger)
	assert.Equal(t, json.Number("9223372036854775807"), v)
}
