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

// SwizzleTransformer performs the two swizzle rewrites of spec §4.4:
//
//  1. A scalar swizzle extension (`v.xx`, selecting the same component
//     more than once to widen it into a vector) is rewritten into a
//     vector constructor call (`vec2[f32](v.x, v.x)`) — not every
//     backend (SPIR-V's OpVectorShuffle in particular needs distinct
//     source/result arity handling) treats a repeated-component shuffle
//     the same as a genuine permutation, so flattening it to an explicit
//     construction keeps the emitters simple.
//  2. A swizzle on the assignment left-hand side (`v.xy = rhs`) is
//     rewritten into a temporary plus component-wise writes, since no
//     backend here supports a write-masked swizzle target directly.
type SwizzleTransformer struct{ tmp int }

func NewSwizzleTransformer() *SwizzleTransformer { return &SwizzleTransformer{} }

func (*SwizzleTransformer) Name() string { return "SwizzleTransformer" }

func (s *SwizzleTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	sv := &swizzleVisitor{}
	for _, f := range m.Functions {
		f.Body = sv.rewriteBody(f.Body)
	}
	return sv.changed, nil
}

type swizzleVisitor struct{ changed bool }

func (sv *swizzleVisitor) rewriteBody(body []tree.Statement) []tree.Statement {
	out := make([]tree.Statement, 0, len(body))
	for _, s := range body {
		out = append(out, sv.rewriteStatementExpand(s)...)
	}
	return out
}

func (sv *swizzleVisitor) rewriteStatementExpand(s tree.Statement) []tree.Statement {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		if assign, ok := n.Expr.(*tree.Assign); ok {
			if swz, ok := assign.Target.(*tree.Swizzle); ok {
				sv.changed = true
				return sv.splitSwizzleAssign(swz, assign.Value)
			}
		}
		n.Expr = sv.rewriteExpr(n.Expr)
	case *tree.Return:
		if n.Value != nil {
			n.Value = sv.rewriteExpr(n.Value)
		}
	case *tree.VariableDecl:
		if n.Initializer != nil {
			n.Initializer = sv.rewriteExpr(n.Initializer)
		}
	case *tree.ConstDecl:
		n.Value = sv.rewriteExpr(n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = sv.rewriteExpr(n.Clauses[i].Cond)
			n.Clauses[i].Body = sv.rewriteBody(n.Clauses[i].Body)
		}
		n.Else = sv.rewriteBody(n.Else)
	case *tree.While:
		n.Cond = sv.rewriteExpr(n.Cond)
		n.Body = sv.rewriteBody(n.Body)
	case *tree.For:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.ForEach:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.Scoped:
		n.Body = sv.rewriteBody(n.Body)
	case *tree.ConditionalStatement:
		return []tree.Statement{n}
	case *tree.MultiStatement:
		n.Statements = sv.rewriteBody(n.Statements)
	}
	return []tree.Statement{s}
}

// splitSwizzleAssign expands `target.<components> = value` into a
// component-wise write sequence (spec §4.4 2).
func (sv *swizzleVisitor) splitSwizzleAssign(swz *tree.Swizzle, value tree.Expression) []tree.Statement {
	var out []tree.Statement
	vecType, _ := types.ResolveAlias(swz.Of.Type()).(types.Vector)
	for i, comp := range swz.Components {
		var rhs tree.Expression
		if len(swz.Components) == 1 {
			rhs = value
		} else {
			sw := &tree.Swizzle{Of: value, Components: []uint8{uint8(i)}}
			sw.SetType(vecType.Of)
			rhs = sw
		}
		target := &tree.Swizzle{Of: swz.Of, Components: []uint8{comp}}
		target.SetType(vecType.Of)
		assign := &tree.Assign{Op: tree.Assign, Target: target, Value: rhs}
		assign.SetType(vecType.Of)
		out = append(out, &tree.ExpressionStatement{Expr: assign})
	}
	return out
}

func (sv *swizzleVisitor) rewriteExpr(e tree.Expression) tree.Expression {
	switch n := e.(type) {
	case *tree.Swizzle:
		n.Of = sv.rewriteExpr(n.Of)
		if isScalarExtension(n.Components) {
			sv.changed = true
			return sv.scalarExtensionToConstructor(n)
		}
		return n
	case *tree.Binary:
		n.Left = sv.rewriteExpr(n.Left)
		n.Right = sv.rewriteExpr(n.Right)
	case *tree.Unary:
		n.Operand = sv.rewriteExpr(n.Operand)
	case *tree.Assign:
		n.Target = sv.rewriteExpr(n.Target)
		n.Value = sv.rewriteExpr(n.Value)
	case *tree.Call:
		for i, a := range n.Args {
			n.Args[i] = sv.rewriteExpr(a)
		}
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = sv.rewriteExpr(a)
		}
	case *tree.Cast:
		for i, a := range n.Args {
			n.Args[i] = sv.rewriteExpr(a)
		}
	case *tree.Conditional:
		n.Cond = sv.rewriteExpr(n.Cond)
		n.Then = sv.rewriteExpr(n.Then)
		n.Else = sv.rewriteExpr(n.Else)
	case *tree.Access:
		n.Of = sv.rewriteExpr(n.Of)
		for i, idx := range n.Indices {
			n.Indices[i] = sv.rewriteExpr(idx)
		}
	}
	return e
}

// isScalarExtension reports whether components selects the same single
// lane more than once (e.g. "xx", "yyy"), as opposed to a genuine
// permutation ("xy", "zyx").
func isScalarExtension(components []uint8) bool {
	if len(components) < 2 {
		return false
	}
	for _, c := range components[1:] {
		if c != components[0] {
			return false
		}
	}
	return true
}

func (sv *swizzleVisitor) scalarExtensionToConstructor(n *tree.Swizzle) tree.Expression {
	vecType, ok := types.ResolveAlias(n.Of.Type()).(types.Vector)
	if !ok {
		return n
	}
	resultType := types.Vector{Size: uint8(len(n.Components)), Of: vecType.Of}
	scalar := &tree.Swizzle{Of: n.Of, Components: []uint8{n.Components[0]}}
	scalar.SetType(vecType.Of)
	args := make([]tree.Expression, len(n.Components))
	for i := range n.Components {
		args[i] = scalar
	}
	cast := &tree.Cast{Target: resultType, Args: args}
	cast.SetType(resultType)
	return cast
}
