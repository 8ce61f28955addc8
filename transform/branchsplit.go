// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// BranchSplitter canonicalizes cascaded if/elif/else chains (spec §4.4);
// "shape depends on target emitter requirements" — here it rewrites an
// n-way Branch (len(Clauses) > 1) into nested two-way Branch nodes
// (`if c1 {..} else { if c2 {..} else {...} }`), the form every backend
// in this module (SPIR-V's OpBranchConditional, WGSL/GLSL's if/else)
// can build on without tracking an arbitrary-width clause list — WGSL
// and GLSL print the nested form as `} else {` around a nested `if`, so
// an elif chain comes out nested rather than as `else if`.
type BranchSplitter struct{}

func NewBranchSplitter() *BranchSplitter { return &BranchSplitter{} }

func (*BranchSplitter) Name() string { return "BranchSplitter" }

func (b *BranchSplitter) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	for _, f := range m.Functions {
		f.Body, changed = b.splitBody(f.Body, changed)
	}
	return changed, nil
}

func (b *BranchSplitter) splitBody(body []tree.Statement, changed bool) ([]tree.Statement, bool) {
	out := make([]tree.Statement, 0, len(body))
	for _, s := range body {
		switch n := s.(type) {
		case *tree.Branch:
			for i := range n.Clauses {
				n.Clauses[i].Body, changed = b.splitBody(n.Clauses[i].Body, changed)
			}
			n.Else, changed = b.splitBody(n.Else, changed)
			if len(n.Clauses) > 1 {
				out = append(out, b.split(n))
				changed = true
			} else {
				out = append(out, n)
			}
		case *tree.While:
			n.Body, changed = b.splitBody(n.Body, changed)
			out = append(out, n)
		case *tree.For:
			n.Body, changed = b.splitBody(n.Body, changed)
			out = append(out, n)
		case *tree.ForEach:
			n.Body, changed = b.splitBody(n.Body, changed)
			out = append(out, n)
		case *tree.Scoped:
			n.Body, changed = b.splitBody(n.Body, changed)
			out = append(out, n)
		default:
			out = append(out, s)
		}
	}
	return out, changed
}

// split rewrites n's clause list into a right-leaning chain of two-way
// Branch nodes, preserving evaluation order.
func (b *BranchSplitter) split(n *tree.Branch) *tree.Branch {
	return splitClauses(n.Clauses, n.Else)
}

func splitClauses(clauses []tree.BranchClause, els []tree.Statement) *tree.Branch {
	head := clauses[0]
	if len(clauses) == 1 {
		return &tree.Branch{Clauses: []tree.BranchClause{head}, Else: els}
	}
	rest := splitClauses(clauses[1:], els)
	return &tree.Branch{Clauses: []tree.BranchClause{head}, Else: []tree.Statement{rest}}
}
