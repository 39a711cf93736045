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

// Package model is the resolved, read-only representation of an OpenAPI
// v3.1 document that the validation engine operates against. It is built
// once by the loader and never mutated afterward.
package model

// Kind is the top-level JSON Schema type of a schema node, used only for
// the narrow decision the engine must make without delegating to the
// evaluator: whether a wire string should be coerced to a number before
// evaluation.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindObject
	KindArray
)

// KindOf inspects a decoded schema node's "type" keyword and reports the
// single scalar Kind it unambiguously denotes. A 3.1-style type union
// (["integer","null"]) still reports KindInteger — "null" is ignored.
// Anything else (no "type", multiple non-null kinds, a boolean schema,
// a bare $ref) reports KindUnknown, since the engine only special-cases
// an unambiguous numeric top-level type.
func KindOf(node any) Kind {
	m, ok := node.(map[string]any)
	if !ok {
		return KindUnknown
	}
	return kindFromRaw(m["type"])
}

func kindFromRaw(t any) Kind {
	switch v := t.(type) {
	case string:
		return kindFromString(v)
	case []any:
		found := KindUnknown
		for _, e := range v {
			s, ok := e.(string)
			if !ok || s == "null" {
				continue
			}
			k := kindFromString(s)
			if found != KindUnknown && found != k {
				return KindUnknown
			}
			found = k
		}
		return found
	default:
		return KindUnknown
	}
}

func kindFromString(s string) Kind {
	switch s {
	case "null":
		return KindNull
	case "boolean":
		return KindBoolean
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "string":
		return KindString
	case "object":
		return KindObject
	case "array":
		return KindArray
	default:
		return KindUnknown
	}
}
