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

// Package evalctx carries the per-validation-call context (document URI,
// request Host) that every leaf component needs to build an
// absoluteKeywordLocation, plus helpers to turn a schema
// evaluation into verr.Error records anchored at a given instance
// location.
package evalctx

import (
	"fmt"

	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/jseval"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/verr"
)

// Context is passed down to every leaf component for one validation call.
type Context struct {
	DocURI string
	Host   string
}

// AbsoluteKeywordLocation resolves a document-relative JSON pointer
// against c.DocURI and c.Host.
func (c Context) AbsoluteKeywordLocation(pointer string) string {
	return docuri.AbsoluteKeywordLocation(c.DocURI, c.Host, pointer)
}

// EvaluateAt runs schema against instance and appends one verr.Error per
// failing leaf assertion to result, anchoring each at
// instanceLocationPrefix + the leaf's own (possibly empty) relative
// instance pointer, and schema.Pointer + the leaf's relative keyword
// pointer.
func EvaluateAt(c Context, kind verr.Kind, schema *model.Schema, instance any, instanceLocationPrefix string, result *verr.Result) {
	if schema == nil || schema.Compiled == nil {
		return
	}
	for _, leaf := range jseval.Evaluate(schema.Compiled, instance) {
		keywordLocation := schema.Pointer + leaf.KeywordLocation
		result.Add(
			kind,
			instanceLocationPrefix+leaf.InstanceLocation,
			keywordLocation,
			c.AbsoluteKeywordLocation(keywordLocation),
			leaf.Message,
		)
	}
}

// Errorf appends a single synthesized error record (one not produced by
// the schema evaluator — a missing-required-parameter, a
// no-matching-content-type, and so on).
func Errorf(c Context, kind verr.Kind, instanceLocation, keywordLocation string, result *verr.Result, format string, args ...any) {
	result.Add(kind, instanceLocation, keywordLocation, c.AbsoluteKeywordLocation(keywordLocation), fmt.Sprintf(format, args...))
}
