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
	"errors"

	"oasconform.dev/oasconform/internal/loader"
	"oasconform.dev/oasconform/internal/verr"
)

// Load-time structural errors. These are fatal to Load/LoadFile — they
// are Go errors, never Result records.
var (
	// ErrDuplicateOperationID indicates two operations in the document
	// share the same operationId.
	ErrDuplicateOperationID = loader.ErrDuplicateOperationID

	// ErrDuplicateCaptureName indicates a path template repeats the same
	// {name} capture more than once.
	ErrDuplicateCaptureName = loader.ErrDuplicateCaptureName

	// ErrInvalidDocument indicates the document could not be decoded or
	// is missing structure the loader requires (e.g. no "paths").
	ErrInvalidDocument = loader.ErrInvalidDocument

	// ErrMetaschemaValidation indicates the document itself failed
	// validation against the OpenAPI meta-schema (only returned when
	// WithMetaschemaValidation is enabled).
	ErrMetaschemaValidation = errors.New("oasconform: document failed OpenAPI meta-schema validation")
)

// Kind identifies one of the runtime error kinds a validation call can
// produce. Unlike the load-time errors above, a Kind never escapes as a
// Go error — it only ever labels an Error record inside a Result.
type Kind = verr.Kind

const (
	KindNoPathMatch                = verr.KindNoPathMatch
	KindNoMatchingOperation        = verr.KindNoMatchingOperation
	KindPathTemplateUnknown        = verr.KindPathTemplateUnknown
	KindOperationIDUnknown         = verr.KindOperationIDUnknown
	KindPathCaptureMismatch        = verr.KindPathCaptureMismatch
	KindOptionsInconsistentWithReq = verr.KindOptionsInconsistentWithReq

	KindMissingRequiredParameter = verr.KindMissingRequiredParameter
	KindParameterSchemaFailure   = verr.KindParameterSchemaFailure

	KindUnexpectedBodyForGetHead = verr.KindUnexpectedBodyForGetHead
	KindNoMatchingContentType    = verr.KindNoMatchingContentType
	KindDecodingFailed           = verr.KindDecodingFailed
	KindBodySchemaFailure        = verr.KindBodySchemaFailure
	KindEntityForbidden          = verr.KindEntityForbidden

	KindReadOnlyInRequest   = verr.KindReadOnlyInRequest
	KindWriteOnlyInResponse = verr.KindWriteOnlyInResponse

	KindInfiniteRecursion = verr.KindInfiniteRecursion
)
