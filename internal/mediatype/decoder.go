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

package mediatype

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Decoder turns a raw body into the tagged JSON-scalar value space the
// schema evaluator expects (maps, slices, strings, float64/json.Number,
// bools, nil), preserving numeric fidelity.
type Decoder func(body []byte, charset string) (any, error)

// Registry holds a process-configurable set of (pattern -> Decoder)
// entries, consulted before the built-ins below, so callers can add
// support for media types this module doesn't know about (e.g.
// "application/xml") without forking it.
type Registry struct {
	custom map[string]Decoder
}

// NewRegistry returns a Registry with only the built-in decoders.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]Decoder)}
}

// RegisterDecoder adds or replaces the decoder for a media-type pattern.
func (r *Registry) RegisterDecoder(pattern string, d Decoder) {
	r.custom[strings.ToLower(pattern)] = d
}

// DecoderFor resolves the decoder to use for a given matched content-map
// key (not the wire Content-Type — callers resolve the key via Select
// first). Custom registrations take precedence over built-ins so a
// caller can override "application/json" too.
func (r *Registry) DecoderFor(pattern string) (Decoder, bool) {
	if d, ok := r.custom[strings.ToLower(pattern)]; ok {
		return d, true
	}
	switch {
	case pattern == "*/*":
		return decodeAgnostic, true
	case Parse(pattern).Type == "text":
		return decodeText, true
	case Parse(pattern).Type == "application" && Parse(pattern).Subtype == "json":
		return decodeJSON, true
	case Parse(pattern).Type == "application" && strings.HasSuffix(Parse(pattern).Subtype, "+json"):
		return decodeJSON, true
	case pattern == "application/x-www-form-urlencoded":
		return decodeForm, true
	default:
		return nil, false
	}
}

func decodeJSON(body []byte, _ string) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

func decodeText(body []byte, _ string) (any, error) {
	return string(body), nil
}

func decodeForm(body []byte, _ string) (any, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}

// decodeAgnostic backs a "*/*" content entry: the body is not
// interpreted at all, it is handed to the evaluator as its raw string
// form so content-agnostic checks (e.g. a `maxLength` on the body as a
// whole) can still run — content-agnostic checks still apply.
func decodeAgnostic(body []byte, _ string) (any, error) {
	return string(body), nil
}
