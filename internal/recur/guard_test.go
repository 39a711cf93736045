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

package recur

import "testing"

func TestGuardDetectsCycle(t *testing.T) {
	g := New()

	leave, err := g.Enter("schema#/components/schemas/Node", "/body")
	if err != nil {
		t.Fatalf("unexpected error on first entry: %v", err)
	}

	if _, err := g.Enter("schema#/components/schemas/Node", "/body"); err == nil {
		t.Fatal("expected infinite recursion error on re-entry")
	} else if _, ok := err.(*ErrInfiniteRecursion); !ok {
		t.Fatalf("expected *ErrInfiniteRecursion, got %T", err)
	}

	leave()

	if _, err := g.Enter("schema#/components/schemas/Node", "/body"); err != nil {
		t.Fatalf("expected re-entry to succeed after leave, got %v", err)
	}
}

func TestGuardAllowsDifferentInstancePointers(t *testing.T) {
	g := New()
	leave1, err := g.Enter("schema#/Node", "/body/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer leave1()

	if _, err := g.Enter("schema#/Node", "/body/b"); err != nil {
		t.Fatalf("same schema at a different instance location should be allowed: %v", err)
	}
}
