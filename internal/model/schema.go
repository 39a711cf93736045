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

import "github.com/santhosh-tekuri/jsonschema/v6"

// Schema pairs a schema node's two representations: the decoded document
// value the engine reads structurally (Raw, plus its Pointer), and the
// evaluator's compiled form it delegates full assertion to (Compiled).
//
// Raw is either a map[string]any (object-form schema), a bool (the
// trivial `true`/`false` schema), or nil if the keyword was entirely
// absent (treated the same as `true`).
type Schema struct {
	Pointer  string
	Raw      any
	Compiled *jsonschema.Schema
}

// IsTrivial reports whether the schema is the permissive empty schema —
// `true`, `{}`, or an absent schema — "empty body needs no
// decoding" rule.
func (s *Schema) IsTrivial() bool {
	if s == nil || s.Raw == nil {
		return true
	}
	if b, ok := s.Raw.(bool); ok {
		return b
	}
	m, ok := s.Raw.(map[string]any)
	return ok && len(m) == 0
}

// IsForbidden reports whether the schema is the `false` schema, which
// the fixed message "the entity is forbidden" applies instead.
func (s *Schema) IsForbidden() bool {
	if s == nil {
		return false
	}
	b, ok := s.Raw.(bool)
	return ok && !b
}

// Kind reports the schema's top-level type, or KindUnknown (see KindOf).
func (s *Schema) Kind() Kind {
	if s == nil {
		return KindUnknown
	}
	return KindOf(s.Raw)
}
