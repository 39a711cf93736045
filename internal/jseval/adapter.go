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

// Package jseval adapts github.com/santhosh-tekuri/jsonschema/v6 to the
// narrow contract this module asks of the JSON Schema evaluator: given a
// compiled subschema and a decoded instance, produce leaf-level
// (keywordLocation, instanceLocation, message) records. draft 2020-12
// semantics, big-number arithmetic, and unevaluatedProperties/Items
// annotation collection are all handled inside the jsonschema/v6 engine
// itself; this adapter only flattens its output tree into ours.
package jseval

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"oasconform.dev/oasconform/internal/docuri"
)

// Leaf is one assertion failure from a schema evaluation.
type Leaf struct {
	InstanceLocation string
	KeywordLocation  string
	Message          string
}

// Evaluate runs schema.Validate(instance) and flattens every leaf cause
// of a resulting *jsonschema.ValidationError — one with no nested Causes
// of its own — into a Leaf. A nil error (valid instance) returns a nil
// slice.
func Evaluate(schema *jsonschema.Schema, instance any) []Leaf {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Leaf{{Message: err.Error()}}
	}
	var leaves []Leaf
	flatten(ve, &leaves)
	return leaves
}

// flatten walks a ValidationError's Causes tree, collecting every leaf
// (a node with no Causes of its own) as a Leaf. InstanceLocation arrives
// as a token slice; the keyword path comes from the leaf's ErrorKind,
// which is the only place v6 exposes it (ValidationError itself carries
// no KeywordLocation field). Both are joined as JSON pointers, which is
// what lets a caller concatenate them directly onto its own prefix.
func flatten(ve *jsonschema.ValidationError, out *[]Leaf) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Leaf{
			InstanceLocation: tokensToPointer(ve.InstanceLocation),
			KeywordLocation:  tokensToPointer(ve.ErrorKind.KeywordPath()),
			Message:          ve.Error(),
		})
		return
	}
	for _, cause := range ve.Causes {
		flatten(cause, out)
	}
}

func tokensToPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(docuri.EncodeToken(t))
	}
	return b.String()
}
