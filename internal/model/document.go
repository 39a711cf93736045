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

package model

// Document is the fully resolved, read-only OpenAPI v3.1 document the
// engine validates against. It is built once by the loader; nothing in
// this package mutates it afterward.
type Document struct {
	// URI is the document's own identifier, its resolution base used to
	// build absoluteKeywordLocation values. May be relative.
	URI string

	// Root is the fully decoded document (maps, slices, and scalars, as
	// produced by the YAML/JSON decoder). Structural walks that can't be
	// answered by the compiled evaluator — resolving a $ref by JSON
	// pointer, reading readOnly/writeOnly off a property schema —
	// resolve directly against Root rather than a parallel IR, so there
	// is exactly one authoritative tree.
	Root any

	// PathOrder lists the path templates in the order the document
	// declared them — the path router walks this slice in order when
	// falling back to "try every template". Paths maps each template
	// string to its PathItem.
	PathOrder []string
	Paths     map[string]*PathItem

	// Operations maps operationId to the operation it names, built
	// once at load time. A document with a duplicate operationId never
	// reaches this stage (ErrDuplicateOperationID is returned by Load).
	Operations map[string]*OperationRef
}

// OperationRef locates one operation inside the document by path
// template and method, resolved once by the operation index.
type OperationRef struct {
	PathTemplate string
	Method       string // lower-case
	PathItem     *PathItem
	Operation    *Operation
}

// PathItem holds the per-method operations declared for one path
// template, plus the path-level parameters every method inherits.
type PathItem struct {
	Parameters []*Parameter
	Operations map[string]*Operation // method (lower-case) -> operation
}

// Operation is one (path item, HTTP method) pair.
type Operation struct {
	OperationID string
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   map[string]*Response // status code string, or "default"
}

// Parameter describes one declared path/query/header/cookie parameter.
type Parameter struct {
	Name     string
	In       string // "path", "query", "header", "cookie"
	Required bool
	Style    string
	Explode  bool
	Schema   *Schema
	Content  map[string]*MediaTypeEntry // alternative to Schema

	// Pointer is this parameter object's own JSON pointer into the
	// document, e.g. "/paths/~1users~1{id}/get/parameters/0". Error
	// records that don't originate from schema evaluation (a missing
	// required parameter, an unmatched content type) anchor their
	// keyword location here.
	Pointer string
}

// RequestBody describes an operation's requestBody.
type RequestBody struct {
	Required bool
	Content  map[string]*MediaTypeEntry
}

// Response describes one entry of an operation's responses map.
type Response struct {
	Content map[string]*MediaTypeEntry
	Headers map[string]*Header
}

// Header describes one declared response header.
type Header struct {
	Name     string
	Required bool
	Style    string
	Explode  bool
	Schema   *Schema
	Content  map[string]*MediaTypeEntry

	// Pointer is this header object's own JSON pointer into the
	// document, mirroring Parameter.Pointer.
	Pointer string
}

// MediaTypeEntry is one entry of a content map, keyed by media-type
// pattern (which may itself contain wildcards, e.g. "application/*+json"
// or "*/*").
type MediaTypeEntry struct {
	Schema *Schema
}
