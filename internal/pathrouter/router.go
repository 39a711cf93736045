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

// Package pathrouter implements reverse-mapping of a
// concrete request URI back to the path template and captured variables
// that declared it.
package pathrouter

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrDuplicateCaptureName is returned (wrapped) by Build when a path template
// repeats the same {name} more than once.
var ErrDuplicateCaptureName = errors.New("pathrouter: duplicate capture name in path template")

var captureSegment = regexp.MustCompile(`\{([^{}]+)\}`)

// Entry is one indexed path template: its compiled matcher and the
// ordered list of names its captures bind, in template order.
type Entry struct {
	Template string
	Captures []string
	re       *regexp.Regexp
}

// Router is the ordered, indexed set of path templates declared by a
// document. Construction is one-shot; Match is safe for concurrent use
// afterward.
type Router struct {
	order   []string
	entries map[string]*Entry
}

// Build compiles one Entry per template, in the given order (which must
// be the document's declaration order — first-match-wins depends on it for the
// "try every template, first match wins" fallback).
func Build(templates []string) (*Router, error) {
	r := &Router{entries: make(map[string]*Entry, len(templates))}
	for _, t := range templates {
		e, err := compile(t)
		if err != nil {
			return nil, fmt.Errorf("pathrouter: template %q: %w", t, err)
		}
		r.order = append(r.order, t)
		r.entries[t] = e
	}
	return r, nil
}

func compile(template string) (*Entry, error) {
	seen := make(map[string]bool)
	var captures []string
	var pattern strings.Builder
	pattern.WriteByte('^')

	last := 0
	for _, loc := range captureSegment.FindAllStringSubmatchIndex(template, -1) {
		start, end := loc[0], loc[1]
		name := template[loc[2]:loc[3]]
		if seen[name] {
			return nil, ErrDuplicateCaptureName
		}
		seen[name] = true
		captures = append(captures, name)

		pattern.WriteString(regexp.QuoteMeta(template[last:start]))
		pattern.WriteString(`([^/]+)`)
		last = end
	}
	pattern.WriteString(regexp.QuoteMeta(template[last:]))
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, err
	}
	return &Entry{Template: template, Captures: captures, re: re}, nil
}

// Lookup returns the indexed Entry for an exact template string.
func (r *Router) Lookup(template string) (*Entry, bool) {
	e, ok := r.entries[template]
	return e, ok
}

// Templates returns the indexed templates in document order.
func (r *Router) Templates() []string {
	return r.order
}

// MatchPath tries every indexed template in document order against path
// and returns the first match, with URL-decoded capture values
// step 3). Returns ok=false if no template matches.
func (r *Router) MatchPath(path string) (template string, captures map[string]string, ok bool) {
	for _, t := range r.order {
		if caps, matched := r.entries[t].match(path); matched {
			return t, caps, true
		}
	}
	return "", nil, false
}

// match verifies path against one specific, already-known
// template (when the caller or the operation index
// supplied the template directly) and returns its URL-decoded captures.
func (e *Entry) match(path string) (map[string]string, bool) {
	m := e.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	captures := make(map[string]string, len(e.Captures))
	for i, name := range e.Captures {
		decoded, err := url.PathUnescape(m[i+1])
		if err != nil {
			decoded = m[i+1]
		}
		captures[name] = decoded
	}
	return captures, true
}

// Match is the exported form of match, used when the caller already
// knows which template to check.
func (e *Entry) Match(path string) (map[string]string, bool) {
	return e.match(path)
}
