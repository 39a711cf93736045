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

// Package body dispatches a request or response entity-body to the
// media type it declares, decodes it, evaluates it against the matched
// media type's schema, and enforces the readOnly/writeOnly property
// policy that schema evaluation alone cannot express.
package body

import (
	"strconv"
	"strings"

	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/mediatype"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/recur"
	"oasconform.dev/oasconform/internal/verr"
)

// Direction distinguishes a request body (readOnly properties forbidden)
// from a response body (writeOnly properties forbidden).
type Direction int

const (
	DirectionRequest Direction = iota
	DirectionResponse
)

// Entity carries everything one body-validation call needs about the
// wire message: its declared content map, whether it's required, the
// raw Content-Type header (possibly empty), and the raw bytes (possibly
// empty).
type Entity struct {
	Content     map[string]*model.MediaTypeEntry
	Required    bool
	Pointer     string // the requestBody/response object's own JSON pointer
	ContentType string
	Raw         []byte
}

// Validate dispatches one request or response body against its declared
// content. The GET/HEAD anti-smuggling rule is the caller's
// responsibility, not this function's: it only applies when an
// operation declares no requestBody at all, so there is nothing for
// Validate itself to enforce — by the time it's called, a requestBody
// exists and the body is expected to be evaluated on its own terms.
// instanceLocation is the JSON pointer prefix body errors are anchored
// at (e.g. "/request/body" or "/response/body").
func Validate(c evalctx.Context, direction Direction, entity Entity, instanceLocation string, registry *mediatype.Registry, root any, guard *recur.Guard) verr.Result {
	var result verr.Result

	if len(entity.Raw) == 0 {
		if entity.Required && !emptyBodySchemaIsTrivial(entity) {
			evalctx.Errorf(c, verr.KindBodySchemaFailure, instanceLocation, entity.Pointer+"/required", &result,
				"a body is required but none was sent")
		}
		return result
	}

	if len(entity.Content) == 0 {
		evalctx.Errorf(c, verr.KindNoMatchingContentType, instanceLocation, entity.Pointer+"/content", &result,
			"a body was sent but no content is declared")
		return result
	}

	keys := make([]string, 0, len(entity.Content))
	for k := range entity.Content {
		keys = append(keys, k)
	}
	matched, ok := mediatype.Select(keys, entity.ContentType)
	if !ok {
		evalctx.Errorf(c, verr.KindNoMatchingContentType, instanceLocation, entity.Pointer+"/content", &result,
			"content type %q does not match any of %v", entity.ContentType, keys)
		return result
	}

	mt := entity.Content[matched]
	schemaPointer := entity.Pointer + "/content/" + docuri.EncodeToken(matched) + "/schema"

	evaluateDecodedEntity(c, direction, mt.Schema, schemaPointer, matched, entity.ContentType, entity.Raw, instanceLocation, registry, root, guard, &result)
	return result
}

// emptyBodySchemaIsTrivial reports whether an empty, required body is
// still acceptable because the schema it would have had to satisfy is
// itself the permissive `true`/`{}` schema (or absent). When the sent
// Content-Type doesn't pick out a single declared entry, every declared
// entry must be trivial for the empty body to pass.
func emptyBodySchemaIsTrivial(entity Entity) bool {
	if len(entity.Content) == 0 {
		return false
	}
	keys := make([]string, 0, len(entity.Content))
	for k := range entity.Content {
		keys = append(keys, k)
	}
	if matched, ok := mediatype.Select(keys, entity.ContentType); ok {
		return entity.Content[matched].Schema.IsTrivial()
	}
	for _, mt := range entity.Content {
		if !mt.Schema.IsTrivial() {
			return false
		}
	}
	return true
}

// EvaluateContent implements params.ContentEvaluator: it evaluates a
// parameter's raw string value against the single media type declared
// in its "content" map, sharing the same decode-then-evaluate path a
// request or response body uses.
func EvaluateContent(c evalctx.Context, content map[string]*model.MediaTypeEntry, raw, instanceLocation string, result *verr.Result) {
	for key, mt := range content {
		evaluateDecodedEntity(c, DirectionRequest, mt.Schema, "", key, key, []byte(raw), instanceLocation, mediatype.NewRegistry(), nil, recur.New(), result)
		return // exactly one entry is declared for a content-keyed parameter
	}
}

func evaluateDecodedEntity(
	c evalctx.Context,
	direction Direction,
	schema *model.Schema,
	schemaPointer, matchedKey, contentType string,
	raw []byte,
	instanceLocation string,
	registry *mediatype.Registry,
	root any,
	guard *recur.Guard,
	result *verr.Result,
) {
	if schema.IsForbidden() {
		evalctx.Errorf(c, verr.KindEntityForbidden, instanceLocation, schemaPointer, result, "the entity is forbidden")
		return
	}
	if schema.IsTrivial() {
		return
	}

	decoder, ok := registry.DecoderFor(matchedKey)
	if !ok {
		evalctx.Errorf(c, verr.KindDecodingFailed, instanceLocation, schemaPointer, result, "no decoder registered for %q", matchedKey)
		return
	}
	charset := mediatype.Charset(contentType, mediatype.DefaultCharset(matchedKey))
	decoded, err := decoder(raw, charset)
	if err != nil {
		evalctx.Errorf(c, verr.KindDecodingFailed, instanceLocation, schemaPointer, result, "%s", err.Error())
		return
	}

	evalctx.EvaluateAt(c, verr.KindBodySchemaFailure, schema, decoded, instanceLocation, result)

	if root != nil {
		checkPropertyPolicy(c, direction, root, schema.Raw, schema.Pointer, decoded, instanceLocation, guard, result)
	}
}

// checkPropertyPolicy walks decoded in lockstep with the document schema
// node raw (following $ref, guarded against cycles) and records a
// KindReadOnlyInRequest or KindWriteOnlyInResponse error for every
// present property whose subschema declares the opposite-direction-only
// policy keyword.
func checkPropertyPolicy(c evalctx.Context, direction Direction, root any, raw any, schemaPointer string, instance any, instanceLocation string, guard *recur.Guard, result *verr.Result) {
	node, nodePointer, ok := resolveRef(root, raw, schemaPointer, guard)
	if !ok {
		return
	}
	leave, err := guard.Enter(nodePointer, instanceLocation)
	if err != nil {
		evalctx.Errorf(c, verr.KindInfiniteRecursion, instanceLocation, nodePointer, result, "%s", err.Error())
		return
	}
	defer leave()

	schemaMap, ok := node.(map[string]any)
	if !ok {
		return
	}

	switch typed := instance.(type) {
	case map[string]any:
		propsRaw, _ := schemaMap["properties"].(map[string]any)
		for name, value := range typed {
			propSchema, ok := propsRaw[name]
			if !ok {
				continue
			}
			propPointer := nodePointer + docuri.Pointer("properties", name)
			propLocation := instanceLocation + "/" + docuri.EncodeToken(name)
			enforcePolicy(c, direction, propSchema, propPointer, propLocation, result)
			checkPropertyPolicy(c, direction, root, propSchema, propPointer, value, propLocation, guard, result)
		}
	case []any:
		itemsRaw, ok := schemaMap["items"]
		if !ok {
			return
		}
		itemsPointer := nodePointer + docuri.Pointer("items")
		for i, elem := range typed {
			elemLocation := instanceLocation + docuri.Pointer(strconv.Itoa(i))
			checkPropertyPolicy(c, direction, root, itemsRaw, itemsPointer, elem, elemLocation, guard, result)
		}
	}
}

// enforcePolicy records the direction-specific violation for one
// property's own subschema, without recursing into it.
func enforcePolicy(c evalctx.Context, direction Direction, propSchema any, propPointer, propLocation string, result *verr.Result) {
	m, ok := propSchema.(map[string]any)
	if !ok {
		return
	}
	switch direction {
	case DirectionRequest:
		if ro, _ := m["readOnly"].(bool); ro {
			evalctx.Errorf(c, verr.KindReadOnlyInRequest, propLocation, propPointer+"/readOnly", result,
				"property is readOnly and must not appear in a request body")
		}
	case DirectionResponse:
		if wo, _ := m["writeOnly"].(bool); wo {
			evalctx.Errorf(c, verr.KindWriteOnlyInResponse, propLocation, propPointer+"/writeOnly", result,
				"property is writeOnly and must not appear in a response body")
		}
	}
}

// resolveRef follows a single "$ref" on raw, if present, returning the
// pointer it resolved to; otherwise it returns raw itself at
// schemaPointer unchanged.
func resolveRef(root any, raw any, schemaPointer string, guard *recur.Guard) (node any, pointer string, ok bool) {
	m, isMap := raw.(map[string]any)
	if !isMap {
		return raw, schemaPointer, raw != nil
	}
	ref, hasRef := m["$ref"].(string)
	if !hasRef {
		return raw, schemaPointer, true
	}
	target := strings.TrimPrefix(ref, "#")
	resolved, found := docuri.Resolve(root, target)
	if !found {
		return nil, "", false
	}
	return resolved, target, true
}
