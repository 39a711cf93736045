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

// Package coerce implements best-effort coercion of a
// wire string to a numeric json.Number when the top-level schema
// mandates type number or integer, using arbitrary-precision parsing so
// int64/float64 boundary values round-trip exactly.
package coerce

import (
	"encoding/json"
	"math/big"

	"oasconform.dev/oasconform/internal/model"
)

// Scalar coerces a string value according to kind. If kind is neither
// KindNumber nor KindInteger, or the string doesn't parse as a number,
// the original string is returned unchanged — coercion failure is never
// itself an error; the schema's own "type" keyword
// produces the correct downstream error when evaluated.
func Scalar(value string, kind model.Kind) any {
	if kind != model.KindNumber && kind != model.KindInteger {
		return value
	}
	if _, ok := new(big.Float).SetPrec(256).SetString(value); !ok {
		return value
	}
	return json.Number(value)
}
