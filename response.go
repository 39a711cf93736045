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
	"strconv"

	"oasconform.dev/oasconform/internal/body"
	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/params"
	"oasconform.dev/oasconform/internal/recur"
	"oasconform.dev/oasconform/internal/verr"
)

// ValidateResponse resolves the operation req addresses exactly as
// ValidateRequest does, then checks resp's headers and entity body
// against whichever responses entry matches resp's status code,
// falling back to "default" when no exact entry is declared. No
// matching entry at all is recorded as KindNoMatchingOperation, the
// same kind a request with no declared method handler produces — both
// mean "this document declares nothing for what actually happened".
func (d *Document) ValidateResponse(req Request, resp Response, opts ...ValidateOption) verr.Result {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := evalctx.Context{DocURI: d.doc.URI, Host: req.Host()}
	var result verr.Result

	template, _, ref, ok := d.resolveOperation(c, req, cfg, &result)
	if !ok {
		return result
	}

	statusKey := strconv.Itoa(resp.Status())
	declared, key, ok := lookupResponse(ref.Operation.Responses, statusKey)
	if !ok {
		evalctx.Errorf(c, verr.KindNoMatchingOperation, "/response/status", docuri.Pointer("paths", template, ref.Method, "responses"), &result,
			"no response declared for status %d (and no \"default\")", resp.Status())
		return result
	}
	responsePointer := docuri.Pointer("paths", template, ref.Method, "responses", key)

	headerParams := headersAsParameters(declared.Headers)
	lookup := func(p *model.Parameter) (string, bool) { return resp.Header(p.Name) }
	locate := func(p *model.Parameter) string { return "/response/header/" + docuri.EncodeToken(p.Name) }
	result.Merge(params.Validate(c, headerParams, lookup, locate, body.EvaluateContent))

	raw, _ := resp.Body()
	contentType, _ := resp.Header("Content-Type")
	entity := body.Entity{
		Content:     declared.Content,
		Required:    false,
		Pointer:     responsePointer,
		ContentType: contentType,
		Raw:         raw,
	}
	result.Merge(body.Validate(c, body.DirectionResponse, entity, "/response/body", d.decoders, d.doc.Root, recur.New()))

	return result
}

// lookupResponse resolves the declared responses entry for status,
// falling back to "default".
func lookupResponse(responses map[string]*model.Response, status string) (resp *model.Response, key string, ok bool) {
	if r, ok := responses[status]; ok {
		return r, status, true
	}
	if r, ok := responses["default"]; ok {
		return r, "default", true
	}
	return nil, "", false
}

// headersAsParameters adapts a response's declared headers to the
// parameter extractor's input shape, so response header validation
// shares the exact same projection-and-evaluation path request
// parameters use rather than a second, parallel implementation.
func headersAsParameters(headers map[string]*model.Header) []*model.Parameter {
	out := make([]*model.Parameter, 0, len(headers))
	for name, h := range headers {
		out = append(out, &model.Parameter{
			Name:     name,
			In:       "header",
			Required: h.Required,
			Style:    h.Style,
			Explode:  h.Explode,
			Schema:   h.Schema,
			Content:  h.Content,
			Pointer:  h.Pointer,
		})
	}
	return out
}
