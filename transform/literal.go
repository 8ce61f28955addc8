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

// LiteralTransformer turns untyped integer/float literals into typed
// literals based on surrounding context (spec §4.4). It runs a
// context-propagating walk: the "context" at each point is the type a
// literal should take if it is one — the target of an assignment, the
// other operand of a binary expression, a parameter's declared type, a
// cast's target type, a variable's declared type — falling back to
// Primitive.DefaultConcrete when no context applies (a bare literal
// expression statement, or a binary expression where both sides are
// untyped).
type LiteralTransformer struct{}

func NewLiteralTransformer() *LiteralTransformer { return &LiteralTransformer{} }

func (*LiteralTransformer) Name() string { return "LiteralTransformer" }

func (l *LiteralTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	lt := &literalVisitor{}
	for _, f := range m.Functions {
		lt.retypeBody(f.Body)
	}
	for _, c := range m.Consts {
		c.Value = lt.retype(c.Value, c.Type)
	}
	for _, v := range m.Variables {
		if v.Initializer != nil {
			v.Initializer = lt.retype(v.Initializer, v.Type)
		}
	}
	return lt.changed, nil
}

type literalVisitor struct{ changed bool }

func (lt *literalVisitor) retypeBody(body []tree.Statement) {
	for _, s := range body {
		lt.retypeStatement(s)
	}
}

func (lt *literalVisitor) retypeStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		n.Expr = lt.retype(n.Expr, nil)
	case *tree.Return:
		if n.Value != nil {
			n.Value = lt.retype(n.Value, nil)
		}
	case *tree.VariableDecl:
		if n.Initializer != nil {
			n.Initializer = lt.retype(n.Initializer, n.Type)
		}
	case *tree.ConstDecl:
		n.Value = lt.retype(n.Value, n.Type)
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = lt.retype(n.Clauses[i].Cond, types.Bool)
			lt.retypeBody(n.Clauses[i].Body)
		}
		lt.retypeBody(n.Else)
	case *tree.While:
		n.Cond = lt.retype(n.Cond, types.Bool)
		lt.retypeBody(n.Body)
	case *tree.For:
		n.From = lt.retype(n.From, n.VarType)
		n.To = lt.retype(n.To, n.VarType)
		if n.Step != nil {
			n.Step = lt.retype(n.Step, n.VarType)
		}
		lt.retypeBody(n.Body)
	case *tree.ForEach:
		lt.retypeBody(n.Body)
	case *tree.Scoped:
		lt.retypeBody(n.Body)
	case *tree.ConditionalStatement:
		n.Cond = lt.retype(n.Cond, types.Bool)
		lt.retypeStatement(n.Body)
	case *tree.MultiStatement:
		lt.retypeBody(n.Statements)
	}
}

// retype rewrites a literal-typed e (a *tree.Constant whose Of is
// UntypedInt/UntypedFloat) to want when want is a concrete primitive,
// recursing into e's children with whatever context each one implies.
// It returns e with its cached Type() updated to match.
func (lt *literalVisitor) retype(e tree.Expression, want types.Type) tree.Expression {
	switch n := e.(type) {
	case *tree.Constant:
		if !n.Value.Of.IsUntyped() {
			return n
		}
		target := concretePrimitive(want, n.Value.Of)
		if target == n.Value.Of {
			return n // still untyped, no context available at this point
		}
		lt.changed = true
		n.Value.Of = target
		n.SetType(target)
		return n
	case *tree.ConstantArray:
		elemWant := n.Of
		if arr, ok := types.ResolveAlias(want).(types.Array); ok {
			if p, ok := arr.Of.(types.Primitive); ok {
				elemWant = p
			}
		}
		target := concretePrimitive(elemWant, n.Of)
		if target != n.Of {
			lt.changed = true
			for i := range n.Elements {
				n.Elements[i].Of = target
			}
			n.Of = target
		}
		return n
	case *tree.Binary:
		lwant, rwant := want, want
		if lwant == nil {
			lwant = n.Right.Type()
		}
		n.Left = lt.retype(n.Left, lwant)
		if rwant == nil {
			rwant = n.Left.Type()
		}
		n.Right = lt.retype(n.Right, rwant)
		n.SetType(binaryResultType(n.Op, n.Left.Type(), n.Right.Type()))
		return n
	case *tree.Unary:
		n.Operand = lt.retype(n.Operand, want)
		n.SetType(n.Operand.Type())
		return n
	case *tree.Assign:
		n.Value = lt.retype(n.Value, n.Target.Type())
		return n
	case *tree.Cast:
		for i, a := range n.Args {
			elemWant := n.Target
			if v, ok := types.ResolveAlias(n.Target).(types.Vector); ok {
				elemWant = v.Of
			}
			n.Args[i] = lt.retype(a, elemWant)
		}
		return n
	case *tree.Call:
		for i, a := range n.Args {
			n.Args[i] = lt.retype(a, nil)
		}
		return n
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = lt.retype(a, nil)
		}
		n.SetType(intrinsicResultType(n.Intrinsic, n.Args))
		return n
	case *tree.Conditional:
		n.Then = lt.retype(n.Then, want)
		n.Else = lt.retype(n.Else, n.Then.Type())
		n.SetType(n.Then.Type())
		return n
	case *tree.Access:
		for i, idx := range n.Indices {
			n.Indices[i] = lt.retype(idx, nil)
		}
		return n
	default:
		return e
	}
}

// concretePrimitive returns the primitive a literal typed fallback
// should take given contextual type want and its own untyped kind u: the
// scalar component of want if want is a vector/matrix over a compatible
// kind, want itself if it is a matching-kind primitive, else u's
// DefaultConcrete.
func concretePrimitive(want types.Type, u types.Primitive) types.Primitive {
	switch v := types.ResolveAlias(want).(type) {
	case types.Primitive:
		if compatibleKind(v, u) {
			return v
		}
	case types.Vector:
		if compatibleKind(v.Of, u) {
			return v.Of
		}
	case types.Matrix:
		if compatibleKind(v.Of, u) {
			return v.Of
		}
	}
	return u.DefaultConcrete()
}

func compatibleKind(p, u types.Primitive) bool {
	if u == types.UntypedFloat {
		return p.IsFloat()
	}
	if u == types.UntypedInt {
		return p.IsInteger() || p.IsFloat()
	}
	return false
}
