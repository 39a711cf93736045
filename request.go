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
	"strings"

	"oasconform.dev/oasconform/internal/body"
	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/params"
	"oasconform.dev/oasconform/internal/recur"
	"oasconform.dev/oasconform/internal/verr"
)

// validateConfig accumulates the options a ValidateRequest/
// ValidateResponse call was given.
type validateConfig struct {
	operationID  string
	pathTemplate string
	pathMatch    *PathMatch
}

// ValidateOption configures a ValidateRequest or ValidateResponse call.
type ValidateOption func(*validateConfig)

// WithOperationID tells the validator which operation the message
// addresses, instead of having it reverse-map the request's URI against
// every declared path template. A mismatch between this and the
// request's actual path yields KindPathCaptureMismatch; an unknown
// operationId yields KindOperationIDUnknown.
func WithOperationID(operationID string) ValidateOption {
	return func(c *validateConfig) { c.operationID = operationID }
}

// WithPathTemplate pins the path template the request addresses,
// skipping the "try every template" fallback. An unknown template
// yields KindPathTemplateUnknown; one that doesn't actually match the
// request's path yields KindPathCaptureMismatch. Combining this with
// WithOperationID and naming operations that disagree yields
// KindOptionsInconsistentWithReq.
func WithPathTemplate(template string) ValidateOption {
	return func(c *validateConfig) { c.pathTemplate = template }
}

// WithPathMatch accepts a PathMatch already resolved by FindPath,
// letting ValidateRequest and ValidateResponse skip re-running the path
// router against the request's URI — the caller holds the PathMatch
// value between the request and response calls for the same exchange,
// rather than this package mutating anything by reference. A Template
// the document no longer declares yields KindPathTemplateUnknown; one
// with no operation for the request's method yields
// KindNoMatchingOperation, exactly as the "try every template" fallback
// would report for the same document state.
func WithPathMatch(match PathMatch) ValidateOption {
	return func(c *validateConfig) { c.pathMatch = &match }
}

// ValidateRequest resolves which operation req addresses, then checks
// its path/query/header parameters and its entity body against the
// document. Routing failures (no matching path template, no operation
// for the method, an inconsistent hint) are recorded as Result errors,
// not returned as a Go error — there is no precondition to Result here
// the way there is for Load.
func (d *Document) ValidateRequest(req Request, opts ...ValidateOption) verr.Result {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := evalctx.Context{DocURI: d.doc.URI, Host: req.Host()}
	var result verr.Result

	template, captures, ref, ok := d.resolveOperation(c, req, cfg, &result)
	if !ok {
		return result
	}

	merged := params.Merge(ref.PathItem.Parameters, ref.Operation.Parameters)
	lookup := requestParameterLookup(req, captures)
	locate := requestParameterLocator()
	result.Merge(params.Validate(c, merged, lookup, locate, body.EvaluateContent))

	raw, _ := req.Body()

	// An undeclared requestBody waives normal body validation entirely,
	// but a GET/HEAD must still not smuggle an entity body past it —
	// that rule applies precisely because no requestBody opted in.
	if ref.Operation.RequestBody == nil {
		if len(raw) > 0 && isGetOrHead(req.Method()) {
			evalctx.Errorf(c, verr.KindUnexpectedBodyForGetHead, "/request/body",
				docuri.Pointer("paths", template, ref.Method), &result,
				"a %s request must not carry an entity body", strings.ToUpper(req.Method()))
		}
		return result
	}

	contentType, _ := req.Header("Content-Type")
	entity := body.Entity{
		Content:     ref.Operation.RequestBody.Content,
		Required:    ref.Operation.RequestBody.Required,
		Pointer:     docuri.Pointer("paths", template, ref.Method, "requestBody"),
		ContentType: contentType,
		Raw:         raw,
	}
	result.Merge(body.Validate(c, body.DirectionRequest, entity, "/request/body", d.decoders, d.doc.Root, recur.New()))

	return result
}

// requestParameterLookup builds a params.Lookup closed over one
// request's path captures, query string, and headers.
func requestParameterLookup(req Request, captures map[string]string) params.Lookup {
	return func(p *model.Parameter) (string, bool) {
		switch p.In {
		case "path":
			v, ok := captures[p.Name]
			return v, ok
		case "query":
			return firstQueryValue(req, p.Name)
		case "header":
			return req.Header(p.Name)
		default:
			return "", false
		}
	}
}

// requestParameterLocator builds the instanceLocation a request
// parameter's errors are anchored at.
func requestParameterLocator() params.Locator {
	return func(p *model.Parameter) string {
		switch p.In {
		case "path":
			return "/request/uri/path/" + docuri.EncodeToken(p.Name)
		case "query":
			return "/request/uri/query/" + docuri.EncodeToken(p.Name)
		case "header":
			return "/request/header/" + docuri.EncodeToken(p.Name)
		default:
			return "/request/parameters/" + docuri.EncodeToken(p.Name)
		}
	}
}

// isGetOrHead reports whether method is GET or HEAD, the two methods an
// entity body must never accompany unless the operation opts in with an
// explicit requestBody.
func isGetOrHead(method string) bool {
	return strings.EqualFold(method, "GET") || strings.EqualFold(method, "HEAD")
}

// firstQueryValue returns the first declared value of a form-style
// query parameter, distinguishing "absent" from "present but empty".
func firstQueryValue(req Request, name string) (string, bool) {
	values := req.URI().Query()[name]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
