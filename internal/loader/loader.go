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

// Package loader decodes an OpenAPI v3.1 document (YAML or JSON, the
// YAML decoder accepts both) into a model.Document: it builds the
// operation index, the ordered path-template table, and compiles every
// schema node the document declares through one shared
// github.com/santhosh-tekuri/jsonschema/v6 compiler.
package loader

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/pathrouter"
)

// Sentinel load-time errors. The public package re-exports these values
// directly rather than redeclaring them, so errors.Is works across the
// package boundary.
var (
	ErrInvalidDocument      = errors.New("oasconform: invalid OpenAPI document")
	ErrDuplicateOperationID = errors.New("oasconform: duplicate operationId")
	ErrDuplicateCaptureName = errors.New("oasconform: duplicate path capture name")
)

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Load decodes raw and builds a model.Document anchored at docURI.
func Load(raw []byte, docURI string) (*model.Document, error) {
	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document root is not a mapping", ErrInvalidDocument)
	}
	pathsRaw, ok := root["paths"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing top-level \"paths\"", ErrInvalidDocument)
	}

	pathOrder, err := orderedPathKeys(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(docURI, decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	b := &builder{docURI: docURI, compiler: compiler, operations: make(map[string]*model.OperationRef)}

	doc := &model.Document{
		URI:        docURI,
		Root:       decoded,
		PathOrder:  pathOrder,
		Paths:      make(map[string]*model.PathItem, len(pathsRaw)),
		Operations: b.operations,
	}

	for _, template := range pathOrder {
		itemRaw, ok := pathsRaw[template].(map[string]any)
		if !ok {
			continue
		}
		itemPointer := docuri.Pointer("paths", template)
		item, err := b.buildPathItem(template, itemPointer, itemRaw)
		if err != nil {
			return nil, err
		}
		doc.Paths[template] = item
	}

	if _, err := pathrouter.Build(pathOrder); err != nil {
		if errors.Is(err, pathrouter.ErrDuplicateCaptureName) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCaptureName, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return doc, nil
}

// builder carries the state threaded through one Load call: the
// document URI, the shared compiler, and the operationId index being
// built up.
type builder struct {
	docURI     string
	compiler   *jsonschema.Compiler
	operations map[string]*model.OperationRef
}

func (b *builder) buildPathItem(template, pointer string, raw map[string]any) (*model.PathItem, error) {
	item := &model.PathItem{Operations: make(map[string]*model.Operation)}

	if paramsRaw, ok := raw["parameters"].([]any); ok {
		params, err := b.buildParameters(pointer+"/parameters", paramsRaw)
		if err != nil {
			return nil, err
		}
		item.Parameters = params
	}

	for _, method := range httpMethods {
		opRaw, ok := raw[method].(map[string]any)
		if !ok {
			continue
		}
		op, err := b.buildOperation(pointer+"/"+method, opRaw)
		if err != nil {
			return nil, err
		}
		item.Operations[method] = op

		if op.OperationID != "" {
			if _, dup := b.operations[op.OperationID]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateOperationID, op.OperationID)
			}
			b.operations[op.OperationID] = &model.OperationRef{
				PathTemplate: template,
				Method:       method,
				PathItem:     item,
				Operation:    op,
			}
		}
	}
	return item, nil
}

func (b *builder) buildOperation(pointer string, raw map[string]any) (*model.Operation, error) {
	op := &model.Operation{
		OperationID: strVal(raw["operationId"]),
		Responses:   make(map[string]*model.Response),
	}

	if paramsRaw, ok := raw["parameters"].([]any); ok {
		params, err := b.buildParameters(pointer+"/parameters", paramsRaw)
		if err != nil {
			return nil, err
		}
		op.Parameters = params
	}

	if rbRaw, ok := raw["requestBody"].(map[string]any); ok {
		rb, err := b.buildRequestBody(pointer+"/requestBody", rbRaw)
		if err != nil {
			return nil, err
		}
		op.RequestBody = rb
	}

	if responsesRaw, ok := raw["responses"].(map[string]any); ok {
		for status, respRaw := range responsesRaw {
			rm, ok := respRaw.(map[string]any)
			if !ok {
				continue
			}
			resp, err := b.buildResponse(pointer+"/responses/"+docuri.EncodeToken(status), rm)
			if err != nil {
				return nil, err
			}
			op.Responses[status] = resp
		}
	}

	return op, nil
}

func (b *builder) buildRequestBody(pointer string, raw map[string]any) (*model.RequestBody, error) {
	rb := &model.RequestBody{Required: boolVal(raw["required"])}
	contentRaw, _ := raw["content"].(map[string]any)
	content, err := b.buildContentMap(pointer+"/content", contentRaw)
	if err != nil {
		return nil, err
	}
	rb.Content = content
	return rb, nil
}

func (b *builder) buildResponse(pointer string, raw map[string]any) (*model.Response, error) {
	resp := &model.Response{}
	if contentRaw, ok := raw["content"].(map[string]any); ok {
		content, err := b.buildContentMap(pointer+"/content", contentRaw)
		if err != nil {
			return nil, err
		}
		resp.Content = content
	}
	if headersRaw, ok := raw["headers"].(map[string]any); ok {
		resp.Headers = make(map[string]*model.Header, len(headersRaw))
		for name, hv := range headersRaw {
			hm, ok := hv.(map[string]any)
			if !ok {
				continue
			}
			hp := pointer + "/headers/" + docuri.EncodeToken(name)
			header, err := b.buildHeader(name, hp, hm)
			if err != nil {
				return nil, err
			}
			resp.Headers[name] = header
		}
	}
	return resp, nil
}

func (b *builder) buildHeader(name, pointer string, raw map[string]any) (*model.Header, error) {
	h := &model.Header{
		Name:     name,
		Required: boolVal(raw["required"]),
		Style:    stringOr(raw["style"], "simple"),
		Pointer:  pointer,
	}
	h.Explode = boolOr(raw["explode"], false)

	if schemaRaw, ok := raw["schema"]; ok {
		schema, err := b.buildSchema(pointer+"/schema", schemaRaw)
		if err != nil {
			return nil, err
		}
		h.Schema = schema
	}
	if contentRaw, ok := raw["content"].(map[string]any); ok {
		content, err := b.buildContentMap(pointer+"/content", contentRaw)
		if err != nil {
			return nil, err
		}
		h.Content = content
	}
	return h, nil
}

func (b *builder) buildParameters(pointer string, raw []any) ([]*model.Parameter, error) {
	params := make([]*model.Parameter, 0, len(raw))
	for i, pv := range raw {
		pm, ok := pv.(map[string]any)
		if !ok {
			continue
		}
		pp := pointer + "/" + strconv.Itoa(i)
		p, err := b.buildParameter(pp, pm)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (b *builder) buildParameter(pointer string, raw map[string]any) (*model.Parameter, error) {
	in := strVal(raw["in"])
	defaultStyle := "simple"
	if in == "query" || in == "cookie" {
		defaultStyle = "form"
	}

	p := &model.Parameter{
		Name:     strVal(raw["name"]),
		In:       in,
		Required: boolVal(raw["required"]),
		Style:    stringOr(raw["style"], defaultStyle),
		Pointer:  pointer,
	}
	p.Explode = boolOr(raw["explode"], p.Style == "form")

	if schemaRaw, ok := raw["schema"]; ok {
		schema, err := b.buildSchema(pointer+"/schema", schemaRaw)
		if err != nil {
			return nil, err
		}
		p.Schema = schema
	}
	if contentRaw, ok := raw["content"].(map[string]any); ok {
		content, err := b.buildContentMap(pointer+"/content", contentRaw)
		if err != nil {
			return nil, err
		}
		p.Content = content
	}
	return p, nil
}

func (b *builder) buildContentMap(pointer string, raw map[string]any) (map[string]*model.MediaTypeEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]*model.MediaTypeEntry, len(raw))
	for mediaType, mv := range raw {
		mm, ok := mv.(map[string]any)
		if !ok {
			continue
		}
		entry := &model.MediaTypeEntry{}
		mp := pointer + "/" + docuri.EncodeToken(mediaType)
		if schemaRaw, ok := mm["schema"]; ok {
			schema, err := b.buildSchema(mp+"/schema", schemaRaw)
			if err != nil {
				return nil, err
			}
			entry.Schema = schema
		}
		out[mediaType] = entry
	}
	return out, nil
}

// buildSchema compiles the schema node at pointer, unless it is the
// trivial or forbidden boolean schema, which the evaluator never needs
// to see.
func (b *builder) buildSchema(pointer string, raw any) (*model.Schema, error) {
	s := &model.Schema{Pointer: pointer, Raw: raw}
	if raw == nil {
		return s, nil
	}
	if _, ok := raw.(bool); ok {
		return s, nil
	}
	compiled, err := b.compiler.Compile(b.docURI + docuri.Fragment(pointer))
	if err != nil {
		return nil, fmt.Errorf("%w: compiling schema at %s: %v", ErrInvalidDocument, pointer, err)
	}
	s.Compiled = compiled
	return s, nil
}

// orderedPathKeys re-parses raw as a yaml.Node tree solely to recover
// the declaration order of the "paths" mapping, which a decode into
// map[string]any loses.
func orderedPathKeys(raw []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	pathsNode := mappingValue(root, "paths")
	if pathsNode == nil {
		return nil, errors.New("missing \"paths\"")
	}
	var keys []string
	for i := 0; i+1 < len(pathsNode.Content); i += 2 {
		keys = append(keys, pathsNode.Content[i].Value)
	}
	return keys, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func strVal(v any) string {
	s, _ := v.(string)
	return s
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolVal(v any) bool {
	b, _ := v.(bool)
	return b
}

func boolOr(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}
