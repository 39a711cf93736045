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

// Package docuri resolves document-relative locations against a
// request's Host header and encodes/decodes JSON pointer fragments,
// for error records.
package docuri

import (
	"errors"
	"net/url"
	"strings"
)

var errNotAnIndex = errors.New("docuri: not an array index")

// EncodeToken escapes one JSON pointer reference token: "~" becomes
// "~0" and "/" becomes "~1" (RFC 6901 §3), applied before any
// percent-encoding a URI fragment additionally requires.
func EncodeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Pointer builds a JSON pointer string from a sequence of reference
// tokens, e.g. Pointer("paths", "/foo/{id}", "get") ==
// "/paths/~1foo~1{id}/get".
func Pointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EncodeToken(t))
	}
	return b.String()
}

// Fragment builds a URI fragment from a JSON pointer, percent-encoding
// whatever RFC 3986 reserves beyond what RFC 6901 already escaped.
func Fragment(pointer string) string {
	return "#" + (&url.URL{Path: pointer}).EscapedPath()
}

// AbsoluteKeywordLocation resolves docURI (possibly relative) against
// the request Host (RFC 3986 relative resolution, "https://<host>/" as
// the base) and appends the JSON pointer fragment, producing the
// absolute_keyword_location carried on every error record.
func AbsoluteKeywordLocation(docURI, host, pointer string) string {
	base := docURI
	if host != "" {
		if u, err := url.Parse(docURI); err == nil && !u.IsAbs() {
			if b, err := url.Parse("https://" + host + "/"); err == nil {
				base = b.ResolveReference(u).String()
			}
		}
	}
	return base + Fragment(pointer)
}

// Split parses a JSON pointer string into its unescaped reference
// tokens. The empty string and "/" (pointer to the whole document) both
// yield a nil slice.
func Split(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		tokens[i] = p
	}
	return tokens
}

// Resolve walks root (a decoded JSON/YAML document: nested
// map[string]any and []any) following a JSON pointer and reports the
// node found, or ok=false if any segment doesn't resolve.
func Resolve(root any, pointer string) (any, bool) {
	node := root
	for _, tok := range Split(pointer) {
		switch v := node.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, false
			}
			node = next
		case []any:
			idx, err := arrayIndex(tok, len(v))
			if err != nil {
				return nil, false
			}
			node = v[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

func arrayIndex(tok string, length int) (int, error) {
	if tok == "" {
		return 0, errNotAnIndex
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, errNotAnIndex
		}
		n = n*10 + int(c-'0')
	}
	if n >= length {
		return 0, errNotAnIndex
	}
	return n, nil
}
