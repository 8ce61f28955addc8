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
	"github.com/shaderlang/slc/types"
)

// StructAssignmentTransformer splits a whole-aggregate assignment
// (struct or array) whose target lives in an address space the backend
// can't write to wholesale into per-member/per-element assignments (spec
// §4.4). Only Storage-wrapped targets are split: Uniform and
// PushConstant are never assignment targets (they are read-only address
// spaces by construction), and Function-storage locals support a whole
// copy on every backend here.
type StructAssignmentTransformer struct{}

func NewStructAssignmentTransformer() *StructAssignmentTransformer {
	return &StructAssignmentTransformer{}
}

func (*StructAssignmentTransformer) Name() string { return "StructAssignmentTransformer" }

func (s *StructAssignmentTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	sv := &structAssignVisitor{module: m}
	for _, f := range m.Functions {
		f.Body = sv.rewriteBody(f.Body)
	}
	return sv.changed, nil
}

type structAssignVisitor struct {
	module  *tree.Module
	changed bool
}

func (sv *structAssignVisitor) rewriteBody(body []tree.Statement) []tree.Statement {
	out := make([]tree.Statement, 0, len(body))
	for _, s := range body {
		out = append(out, sv.rewriteStatementExpand(s)...)
	}
	return out
}

func (sv *structAssignVisitor) rewriteStatementExpand(s tree.Statement) []tree.Statement {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		if assign, ok := n.Expr.(*tree.Assign); ok && sv.needsSplit(assign) {
			sv.changed = true
			return sv.split(assign)
		}
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Body = sv.rewriteBody(n.Clauses[i].Body)
		}
		n.Else = sv.rewriteBody(n.Else)
	case *tree.While:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.For:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.ForEach:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.Scoped:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.MultiStatement:
		n.Statements = sv.rewriteBody(n.Statements)
	}
	return []tree.Statement{s}
}

// needsSplit reports whether assign writes a whole struct/array value
// into a Storage-wrapped target.
func (sv *structAssignVisitor) needsSplit(assign *tree.Assign) bool {
	if assign.Op != tree.Assign {
		return false
	}
	t := types.ResolveAlias(assign.Target.Type())
	if _, ok := t.(types.Storage); !ok {
		if !isAggregate(t) {
			return false
		}
		// Not itself address-space wrapped at this expression, but could
		// still be reached through a Storage-wrapped base (e.g.
		// `storageBlock.field = structValue`); the access chain's base
		// type carries the wrapper, checked via accessBase.
		base := accessBase(assign.Target)
		if base == nil {
			return false
		}
		_, ok = types.ResolveAlias(base.Type()).(types.Storage)
		return ok && isAggregate(t)
	}
	return isAggregate(types.UnwrapExternal(t))
}

func accessBase(e tree.Expression) tree.Expression {
	for {
		a, ok := e.(*tree.Access)
		if !ok {
			return e
		}
		e = a.Of
	}
}

func isAggregate(t types.Type) bool {
	switch t.(type) {
	case types.Struct, types.Array, types.DynArray:
		return true
	default:
		return false
	}
}

// split expands assign into one Assign per struct member / array
// element, matching each sub-target's access expression against the
// corresponding piece of assign.Value (itself assumed to already be a
// per-member-constructible expression, e.g. another load of the same
// shape, post Resolve).
func (sv *structAssignVisitor) split(assign *tree.Assign) []tree.Statement {
	t := types.UnwrapExternal(types.ResolveAlias(assign.Target.Type()))
	switch v := t.(type) {
	case types.Struct:
		decl := sv.module.Structs[v.Index]
		out := make([]tree.Statement, 0, len(decl.Members))
		for i, mem := range decl.Members {
			tgt := &tree.Access{Kind: tree.AccessByFieldIndex, Of: assign.Target, FieldIndex: i}
			tgt.SetType(mem.Type)
			val := &tree.Access{Kind: tree.AccessByFieldIndex, Of: assign.Value, FieldIndex: i}
			val.SetType(mem.Type)
			out = append(out, &tree.ExpressionStatement{Expr: &tree.Assign{Op: tree.Assign, Target: tgt, Value: val}})
		}
		return out
	case types.Array:
		out := make([]tree.Statement, 0, v.Length)
		for i := uint32(0); i < v.Length; i++ {
			idx := &tree.Constant{Value: tree.IntValue(types.I32, int64(i))}
			idx.SetType(types.I32)
			tgt := &tree.Access{Kind: tree.AccessByNumericIndices, Of: assign.Target, Indices: []tree.Expression{idx}}
			tgt.SetType(v.Of)
			val := &tree.Access{Kind: tree.AccessByNumericIndices, Of: assign.Value, Indices: []tree.Expression{idx}}
			val.SetType(v.Of)
			out = append(out, &tree.ExpressionStatement{Expr: &tree.Assign{Op: tree.Assign, Target: tgt, Value: val}})
		}
		return out
	default:
		return []tree.Statement{&tree.ExpressionStatement{Expr: assign}}
	}
}
