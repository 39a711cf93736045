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

import "oasconform.dev/oasconform/internal/verr"

// Error is one conformance failure, carrying the two synchronized
// locations every error record carries: where in the HTTP message it was found
// (InstanceLocation), and which OpenAPI document keyword produced it
// (KeywordLocation / AbsoluteKeywordLocation).
type Error = verr.Error

// Annotation is a non-error fact collected during schema evaluation
// (e.g. unevaluatedProperties bookkeeping), carried alongside a valid
// Result alongside a valid one.
type Annotation = verr.Annotation

// Result is the outcome of ValidateRequest/ValidateResponse.
// It is deliberately not a bare boolean: callers must call IsValid to
// find out whether Errors is empty, rather than relying on a
// language-level truthiness check standing in for that.
type Result = verr.Result
