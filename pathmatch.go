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
	"oasconform.dev/oasconform/internal/docuri"
	"oasconform.dev/oasconform/internal/evalctx"
	"oasconform.dev/oasconform/internal/model"
	"oasconform.dev/oasconform/internal/verr"
)

// PathMatch is the result of reverse-mapping a request's URI path back
// to the one document-declared template that produced it, plus the
// captured variable values bound along the way. A caller validating
// both a request and its response for the same exchange can resolve
// this once and pass it to both ValidateRequest and ValidateResponse
// via WithPathMatch, skipping a second path-router pass — the value is
// held by the caller between calls rather than mutated by either.
type PathMatch struct {
	Template string
	Captures map[string]string
}

// FindPath tries every path template the document declares, in
// declaration order, and returns the first one whose pattern matches
// path, with its captures URL-decoded.
func (d *Document) FindPath(path string) (PathMatch, bool) {
	template, captures, ok := d.router.MatchPath(path)
	if !ok {
		return PathMatch{}, false
	}
	return PathMatch{Template: template, Captures: captures}, true
}

// resolveOperation applies the routing + hint-consistency rules shared
// by ValidateRequest and ValidateResponse: it finds the (path template,
// operation) pair a request addresses, honoring any WithOperationID or
// WithPathTemplate override, and records a routing error on result if
// none can be resolved unambiguously.
func (d *Document) resolveOperation(c evalctx.Context, req Request, cfg *validateConfig, result *verr.Result) (template string, captures map[string]string, op *model.OperationRef, ok bool) {
	path := req.URI().Path
	method := req.Method()

	if cfg.pathMatch != nil {
		item, known := d.doc.Paths[cfg.pathMatch.Template]
		if !known {
			evalctx.Errorf(c, verr.KindPathTemplateUnknown, "/request/uri/path", docuri.Pointer("paths"), result,
				"path template %q is not declared in the document", cfg.pathMatch.Template)
			return "", nil, nil, false
		}
		ref, hasMethod := operationRefFor(d, cfg.pathMatch.Template, item, method)
		if !hasMethod {
			evalctx.Errorf(c, verr.KindNoMatchingOperation, "/request/method", docuri.Pointer("paths", cfg.pathMatch.Template), result,
				"no operation declared for method %q on %q", method, cfg.pathMatch.Template)
			return "", nil, nil, false
		}
		return cfg.pathMatch.Template, cfg.pathMatch.Captures, ref, true
	}

	if cfg.pathTemplate != "" {
		item, known := d.doc.Paths[cfg.pathTemplate]
		if !known {
			evalctx.Errorf(c, verr.KindPathTemplateUnknown, "/request/uri/path", docuri.Pointer("paths"), result,
				"path template %q is not declared in the document", cfg.pathTemplate)
			return "", nil, nil, false
		}
		entry, hasEntry := d.router.Lookup(cfg.pathTemplate)
		if !hasEntry {
			evalctx.Errorf(c, verr.KindPathTemplateUnknown, "/request/uri/path", docuri.Pointer("paths"), result,
				"path template %q is not declared in the document", cfg.pathTemplate)
			return "", nil, nil, false
		}
		caps, matched := entry.Match(path)
		if !matched {
			evalctx.Errorf(c, verr.KindPathCaptureMismatch, "/request/uri/path", docuri.Pointer("paths", cfg.pathTemplate), result,
				"path template %q does not match request path %q", cfg.pathTemplate, path)
			return "", nil, nil, false
		}
		ref, hasMethod := operationRefFor(d, cfg.pathTemplate, item, method)
		if !hasMethod {
			evalctx.Errorf(c, verr.KindNoMatchingOperation, "/request/method", docuri.Pointer("paths", cfg.pathTemplate), result,
				"no operation declared for method %q on %q", method, cfg.pathTemplate)
			return "", nil, nil, false
		}
		if cfg.operationID != "" && ref.Operation.OperationID != cfg.operationID {
			evalctx.Errorf(c, verr.KindOptionsInconsistentWithReq, "/request/uri/path", docuri.Pointer("paths", cfg.pathTemplate), result,
				"operationId %q does not match the operation declared for %q %q", cfg.operationID, method, cfg.pathTemplate)
			return "", nil, nil, false
		}
		return cfg.pathTemplate, caps, ref, true
	}

	if cfg.operationID != "" {
		ref, known := d.doc.Operations[cfg.operationID]
		if !known {
			evalctx.Errorf(c, verr.KindOperationIDUnknown, "/request/uri/path", docuri.Pointer("paths"), result,
				"operationId %q is not declared in the document", cfg.operationID)
			return "", nil, nil, false
		}
		entry, _ := d.router.Lookup(ref.PathTemplate)
		caps, matched := entry.Match(path)
		if !matched {
			evalctx.Errorf(c, verr.KindPathCaptureMismatch, "/request/uri/path", docuri.Pointer("paths", ref.PathTemplate), result,
				"operation %q's path template %q does not match request path %q", cfg.operationID, ref.PathTemplate, path)
			return "", nil, nil, false
		}
		return ref.PathTemplate, caps, ref, true
	}

	match, matched := d.FindPath(path)
	if !matched {
		evalctx.Errorf(c, verr.KindNoPathMatch, "/request/uri/path", docuri.Pointer("paths"), result,
			"no declared path template matches %q", path)
		return "", nil, nil, false
	}
	item := d.doc.Paths[match.Template]
	ref, hasMethod := operationRefFor(d, match.Template, item, method)
	if !hasMethod {
		evalctx.Errorf(c, verr.KindNoMatchingOperation, "/request/method", docuri.Pointer("paths", match.Template), result,
			"no operation declared for method %q on %q", method, match.Template)
		return "", nil, nil, false
	}
	return match.Template, match.Captures, ref, true
}

func operationRefFor(d *Document, template string, item *model.PathItem, method string) (*model.OperationRef, bool) {
	lowerMethod := lowerASCII(method)
	op, ok := item.Operations[lowerMethod]
	if !ok {
		return nil, false
	}
	return &model.OperationRef{PathTemplate: template, Method: lowerMethod, PathItem: item, Operation: op}, true
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
