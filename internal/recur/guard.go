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

// Package recur guards structural schema walks (readOnly/writeOnly
// checks, $ref following) against cycles through $ref. The JSON Schema
// evaluator itself is an external collaborator expected to apply the
// same discipline internally; this guard covers only the walks this
// module performs directly.
package recur

import "fmt"

// entry identifies one (schema-uri, instance-pointer) pair on the
// active evaluation path.
type entry struct {
	schemaURI        string
	instancePointer  string
}

// Guard tracks the set of (schema-URI, instance-pointer) pairs currently
// being walked, so re-entering the same pair can be detected and
// surfaced as an "infinite-recursion" error record instead of a stack
// overflow. Not safe for concurrent use — a Guard belongs to one walk.
type Guard struct {
	active map[entry]struct{}
}

// New returns a Guard ready for use.
func New() *Guard {
	return &Guard{active: make(map[entry]struct{})}
}

// ErrInfiniteRecursion is returned by Enter when the given pair is
// already on the active path.
type ErrInfiniteRecursion struct {
	SchemaURI       string
	InstancePointer string
}

func (e *ErrInfiniteRecursion) Error() string {
	return fmt.Sprintf("infinite recursion detected: schema %s re-entered at instance %s", e.SchemaURI, e.InstancePointer)
}

// Enter records (schemaURI, instancePointer) as active, returning an
// error if it is already on the path. On success, the caller must defer
// the returned leave function to release the entry once the walk
// through it completes.
func (g *Guard) Enter(schemaURI, instancePointer string) (leave func(), err error) {
	key := entry{schemaURI, instancePointer}
	if _, ok := g.active[key]; ok {
		return func() {}, &ErrInfiniteRecursion{SchemaURI: schemaURI, InstancePointer: instancePointer}
	}
	g.active[key] = struct{}{}
	return func() { delete(g.active, key) }, nil
}
