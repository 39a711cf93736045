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

// Package params projects path, query, and header parameters out of an
// HTTP message and evaluates each one against its declared schema.
// Cookie parameters are skipped and never evaluated.
//
// Supported wire shapes are deliberately narrow: simple style for path
// parameters and form style for query parameters, both with explode
// true, plus case-insensitive header matching. Non-simple path styles,
// non-form query styles, explode-false serialization, and anything past
// the first occurrence of a repeated query or header name are out of
// scope — callers that need them should decode the raw value themselves
// before handing it to a schema.
package params

import (
	"sort"
	"strings"

	"oasconform.dev/oasconform/internal/coerce"
	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/verr"
)

// Lookup fetches the first declared value of one named parameter from
// wherever it lives on the HTTP message: a path capture, a query string,
// a header, or a cookie jar. ok is false when the parameter is absent.
type Lookup func(p *model.Parameter) (value string, ok bool)

// Locator builds the InstanceLocation JSON pointer a parameter's errors
// should be anchored at, e.g. "/request/uri/path/id" or
// "/request/header/X-Request-Id".
type Locator func(p *model.Parameter) string

// skippedHeaders are headers the body dispatcher owns instead (content
// negotiation and authentication are not parameter concerns).
var skippedHeaders = map[string]bool{
	"content-type":  true,
	"accept":        true,
	"authorization": true,
}

// Merge combines path-item-level and operation-level parameters,
// operation-level entries winning on (name, in) collisions, the way
// every other OpenAPI tool resolves this override.
func Merge(pathLevel, operationLevel []*model.Parameter) []*model.Parameter {
	type key struct{ name, in string }
	byKey := make(map[key]*model.Parameter, len(pathLevel)+len(operationLevel))
	var order []key

	add := func(p *model.Parameter) {
		k := key{p.Name, p.In}
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = p
	}
	for _, p := range pathLevel {
		add(p)
	}
	for _, p := range operationLevel {
		add(p)
	}

	merged := make([]*model.Parameter, 0, len(order))
	for _, k := range order {
		merged = append(merged, byKey[k])
	}
	return merged
}

// Validate projects every parameter in params through lookup, checks
// required-ness, and evaluates present values against their declared
// schema (or, for a content-keyed parameter, hands the raw value to
// evaluateContent). Header parameters are evaluated in sorted
// case-folded name order so a caller that surfaces the first error
// record gets a deterministic one regardless of map iteration order
// upstream.
func Validate(c evalctx.Context, params []*model.Parameter, lookup Lookup, locate Locator, evaluateContent ContentEvaluator) verr.Result {
	var result verr.Result

	ordered := orderForEvaluation(params)
	for _, p := range ordered {
		value, ok := lookup(p)
		if !ok {
			if p.Required {
				evalctx.Errorf(c, verr.KindMissingRequiredParameter, locate(p), parameterKeywordLocation(p), &result,
					"required parameter %q is missing", p.Name)
			}
			continue
		}

		switch {
		case p.Schema != nil:
			validateAgainstSchema(c, p, value, locate(p), &result)
		case len(p.Content) > 0 && evaluateContent != nil:
			evaluateContent(c, p.Content, value, locate(p), &result)
		}
	}
	return result
}

// ContentEvaluator evaluates a raw string value against the single
// media type declared in a parameter's "content" map, anchoring any
// errors at instanceLocation. The body dispatcher supplies the concrete
// implementation so both components share one media-dispatch path.
type ContentEvaluator func(c evalctx.Context, content map[string]*model.MediaTypeEntry, raw, instanceLocation string, result *verr.Result)

// orderForEvaluation returns params with header entries reordered into
// sorted case-folded name order, leaving path/query/cookie entries in
// their declared order. Cookie parameters carry no normative
// serialization in this engine and are always skipped.
func orderForEvaluation(params []*model.Parameter) []*model.Parameter {
	var headers, rest []*model.Parameter
	for _, p := range params {
		switch p.In {
		case "cookie":
			continue
		case "header":
			if skippedHeaders[strings.ToLower(p.Name)] {
				continue
			}
			headers = append(headers, p)
		default:
			rest = append(rest, p)
		}
	}
	sort.SliceStable(headers, func(i, j int) bool {
		return strings.ToLower(headers[i].Name) < strings.ToLower(headers[j].Name)
	})
	return append(rest, headers...)
}

// validateAgainstSchema coerces value per the schema's declared type and
// runs it through schema evaluation. Array and object instances use the
// simple-style explode-true decomposition below; everything else is
// passed through as the coerced scalar.
func validateAgainstSchema(c evalctx.Context, p *model.Parameter, value, instanceLocation string, result *verr.Result) {
	var instance any
	switch p.Schema.Kind() {
	case model.KindArray:
		instance = explodeArray(value)
	case model.KindObject:
		instance = explodeObject(value)
	default:
		instance = coerce.Scalar(value, p.Schema.Kind())
	}
	evalctx.EvaluateAt(c, verr.KindParameterSchemaFailure, p.Schema, instance, instanceLocation, result)
}

// explodeArray decomposes a comma-separated simple/form-style array
// value into its elements, per RFC 6570.
func explodeArray(value string) []any {
	if value == "" {
		return []any{}
	}
	parts := strings.Split(value, ",")
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = part
	}
	return out
}

// explodeObject decomposes an explode=true simple/form-style object
// value ("role=admin,level=5") into its key/value pairs. A segment with
// no "=" is dropped rather than guessed at.
func explodeObject(value string) map[string]any {
	out := map[string]any{}
	if value == "" {
		return out
	}
	for _, pair := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// parameterKeywordLocation is the document-relative pointer a
// missing-required-parameter error attributes its keyword to: the
// "required" field of the parameter object itself.
func parameterKeywordLocation(p *model.Parameter) string {
	return p.Pointer + "/required"
}
