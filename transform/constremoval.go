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
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
)

// ConstantRemovalTransformer replaces every reference to a module- or
// function-scoped const declaration with the declaration's own value
// expression node (the node is not cloned: every inlined site shares it),
// then (when dropDecls is set) removes the now-redundant ConstDecl nodes
// themselves, from Module.Consts and, as NoOp statements, from function
// bodies (spec §4.4). f32::Infinity-style TypeConstant references
// are a distinct expression kind (spec §3.2) and are never touched here
// — there is no declaration to inline them from.
//
// Array-length constants are left alone by construction: an array's
// length is carried as a concrete uint32 on types.Array once Resolve has
// run (spec §4.2), not as a live reference to the ConstDecl that may
// have originally spelled it, so removing the declaration never changes
// an array's shape.
type ConstantRemovalTransformer struct{ dropDecls bool }

func NewConstantRemovalTransformer(dropDecls bool) *ConstantRemovalTransformer {
	return &ConstantRemovalTransformer{dropDecls: dropDecls}
}

func (*ConstantRemovalTransformer) Name() string { return "ConstantRemovalTransformer" }

func (c *ConstantRemovalTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	cv := &constRemovalVisitor{consts: m.Consts, drop: c.dropDecls}
	for _, f := range m.Functions {
		cv.rewriteBody(f.Body)
	}
	for _, cd := range m.Consts {
		cd.Value = cv.rewrite(cd.Value)
	}
	changed = cv.changed

	if c.dropDecls {
		kept := m.Consts[:0]
		for _, cd := range m.Consts {
			if cd.Attrs.Tag == "keep" {
				kept = append(kept, cd)
				continue
			}
			changed = true
		}
		m.Consts = kept
	}
	return changed, nil
}

type constRemovalVisitor struct {
	consts  []*tree.ConstDecl
	drop    bool
	changed bool
}

func (cv *constRemovalVisitor) rewriteBody(body []tree.Statement) {
	for i, s := range body {
		cv.rewriteStatement(s)
		if cd, ok := s.(*tree.ConstDecl); ok && cv.drop && cd.Attrs.Tag != "keep" {
			body[i] = &tree.NoOp{}
			cv.changed = true
		}
	}
}

func (cv *constRemovalVisitor) rewriteStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		n.Expr = cv.rewrite(n.Expr)
	case *tree.Return:
		if n.Value != nil {
			n.Value = cv.rewrite(n.Value)
		}
	case *tree.VariableDecl:
		if n.Initializer != nil {
			n.Initializer = cv.rewrite(n.Initializer)
		}
	case *tree.ConstDecl:
		n.Value = cv.rewrite(n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = cv.rewrite(n.Clauses[i].Cond)
			cv.rewriteBody(n.Clauses[i].Body)
		}
		cv.rewriteBody(n.Else)
	case *tree.ConditionalStatement:
		n.Cond = cv.rewrite(n.Cond)
	case *tree.While:
		n.Cond = cv.rewrite(n.Cond)
		cv.rewriteBody(n.Body)
	case *tree.For:
		if n.From != nil {
			n.From = cv.rewrite(n.From)
		}
		if n.To != nil {
			n.To = cv.rewrite(n.To)
		}
		if n.Step != nil {
			n.Step = cv.rewrite(n.Step)
		}
		cv.rewriteBody(n.Body)
	case *tree.ForEach:
		n.Of = cv.rewrite(n.Of)
		cv.rewriteBody(n.Body)
	case *tree.Scoped:
		cv.rewriteBody(n.Body)
	case *tree.MultiStatement:
		cv.rewriteBody(n.Statements)
	}
}

func (cv *constRemovalVisitor) rewrite(e tree.Expression) tree.Expression {
	switch n := e.(type) {
	case *tree.IdentifierValue:
		if n.Category == symbol.Constant && n.Index >= 0 && n.Index < len(cv.consts) {
			cv.changed = true
			return cv.rewrite(cv.consts[n.Index].Value)
		}
		return n
	case *tree.Access:
		n.Of = cv.rewrite(n.Of)
		for i, idx := range n.Indices {
			n.Indices[i] = cv.rewrite(idx)
		}
	case *tree.Assign:
		n.Target = cv.rewrite(n.Target)
		n.Value = cv.rewrite(n.Value)
	case *tree.Binary:
		n.Left = cv.rewrite(n.Left)
		n.Right = cv.rewrite(n.Right)
	case *tree.Unary:
		n.Operand = cv.rewrite(n.Operand)
	case *tree.Call:
		for i, a := range n.Args {
			n.Args[i] = cv.rewrite(a)
		}
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = cv.rewrite(a)
		}
	case *tree.Cast:
		for i, a := range n.Args {
			n.Args[i] = cv.rewrite(a)
		}
	case *tree.Conditional:
		n.Cond = cv.rewrite(n.Cond)
		n.Then = cv.rewrite(n.Then)
		n.Else = cv.rewrite(n.Else)
	case *tree.Swizzle:
		n.Of = cv.rewrite(n.Of)
	}
	return e
}
