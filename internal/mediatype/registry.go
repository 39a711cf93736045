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

// Package mediatype implements case-insensitive media
// type matching between a Content-Type header and an OpenAPI content
// map's keys, with exact → type/* → */* precedence, and a registry of
// decoders keyed by pattern.
package mediatype

import "strings"

// Parsed is a Content-Type header split into its parts for matching.
type Parsed struct {
	Type    string // lower-case
	Subtype string // lower-case
	Charset string // as declared, case preserved
}

// Parse splits a Content-Type (or media-type pattern) header value into
// type, subtype, and charset, stripping any other `;`-separated
// parameters. An empty or malformed header parses to Type/Subtype "".
func Parse(header string) Parsed {
	header = strings.TrimSpace(header)
	main, params, _ := strings.Cut(header, ";")
	main = strings.TrimSpace(main)

	var p Parsed
	if t, s, ok := strings.Cut(main, "/"); ok {
		p.Type = strings.ToLower(strings.TrimSpace(t))
		p.Subtype = strings.ToLower(strings.TrimSpace(s))
	}

	for _, part := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), "charset") {
			p.Charset = strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return p
}

// Precedence is the specificity rank of a match: higher wins.
type Precedence int

const (
	NoMatch Precedence = iota
	WildcardMatch
	SubtypeWildcardMatch
	ExactMatch
)

// Match reports how specifically pattern (an OpenAPI content-map key,
// which may itself be "*/*", "type/*", or exact) matches contentType (a
// wire Content-Type value).
func Match(pattern, contentType string) Precedence {
	pp := Parse(pattern)
	ct := Parse(contentType)

	switch {
	case pp.Type == "*" && pp.Subtype == "*":
		return WildcardMatch
	case pp.Type == ct.Type && pp.Subtype == "*":
		return SubtypeWildcardMatch
	case pp.Type == ct.Type && pp.Subtype == ct.Subtype:
		return ExactMatch
	default:
		return NoMatch
	}
}

// Select picks the best-matching key out of candidates (an OpenAPI
// content map's keys) for the given wire Content-Type, applying exact →
// type/* → */* precedence. Returns ok=false if nothing matches.
func Select(candidates []string, contentType string) (best string, ok bool) {
	bestPrecedence := NoMatch
	for _, c := range candidates {
		if p := Match(c, contentType); p > bestPrecedence {
			bestPrecedence = p
			best = c
			ok = true
		}
	}
	return best, ok
}

// Charset returns the charset declared on a Content-Type header, or the
// given default when absent. text/* and +json media types default to
// UTF-8 by default; callers pass that default in explicitly so this
// function stays a pure string operation.
func Charset(contentType, fallback string) string {
	if c := Parse(contentType).Charset; c != "" {
		return c
	}
	return fallback
}

// DefaultCharset reports the charset that applies by default for a
// given Content-Type, or "" if none applies (binary data has no text
// default).
func DefaultCharset(contentType string) string {
	p := Parse(contentType)
	if p.Type == "text" {
		return "UTF-8"
	}
	if p.Type == "application" && strings.HasSuffix(p.Subtype, "+json") {
		return "UTF-8"
	}
	if p.Type == "application" && p.Subtype == "json" {
		return "UTF-8"
	}
	return ""
}
