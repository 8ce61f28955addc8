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
	"math"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// ConstantPropagation folds constant expressions, evaluates conditional
// statements whose condition is statically known, and removes
// statically-false branches / unwraps statically-true ones (spec §4.4).
// Run is idempotent on a fully-propagated tree (spec §8 invariant 5): a
// second Run over output this pass already produced reports
// changed=false, since every constant-foldable subexpression is already
// a *tree.Constant/*tree.ConstantArray leaf.
type ConstantPropagation struct{}

func NewConstantPropagation() *ConstantPropagation { return &ConstantPropagation{} }

func (*ConstantPropagation) Name() string { return "ConstantPropagation" }

func (c *ConstantPropagation) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	cp := &constPropVisitor{}
	for _, f := range m.Functions {
		f.Body = cp.foldBody(f.Body)
	}
	for _, cst := range m.Consts {
		cst.Value = cp.fold(cst.Value)
	}
	for _, v := range m.Variables {
		if v.Initializer != nil {
			v.Initializer = cp.fold(v.Initializer)
		}
	}
	return cp.changed, nil
}

type constPropVisitor struct{ changed bool }

func (cp *constPropVisitor) foldBody(body []tree.Statement) []tree.Statement {
	out := make([]tree.Statement, 0, len(body))
	for _, s := range body {
		out = append(out, cp.foldStatementExpand(s)...)
	}
	return out
}

// foldStatementExpand folds s and, for ConditionalStatement, expands to
// zero or one statements once the condition is statically known (spec
// §4.4 "removes branches with statically-false conditions and unwraps
// statically-true ones").
func (cp *constPropVisitor) foldStatementExpand(s tree.Statement) []tree.Statement {
	s = cp.foldStatement(s)
	if cs, ok := s.(*tree.ConditionalStatement); ok {
		if cv, ok := cs.Cond.(*tree.Constant); ok {
			cp.changed = true
			if b, _ := cv.Value.AsBool(); b {
				return []tree.Statement{cs.Body}
			}
			return nil
		}
	}
	return []tree.Statement{s}
}

func (cp *constPropVisitor) foldStatement(s tree.Statement) tree.Statement {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		n.Expr = cp.fold(n.Expr)
	case *tree.Return:
		if n.Value != nil {
			n.Value = cp.fold(n.Value)
		}
	case *tree.VariableDecl:
		if n.Initializer != nil {
			n.Initializer = cp.fold(n.Initializer)
		}
	case *tree.ConstDecl:
		n.Value = cp.fold(n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = cp.fold(n.Clauses[i].Cond)
			n.Clauses[i].Body = cp.foldBody(n.Clauses[i].Body)
		}
		n.Else = cp.foldBody(n.Else)
	case *tree.While:
		n.Cond = cp.fold(n.Cond)
		n.Body = cp.foldBody(n.Body)
	case *tree.For:
		n.From = cp.fold(n.From)
		n.To = cp.fold(n.To)
		if n.Step != nil {
			n.Step = cp.fold(n.Step)
		}
		n.Body = cp.foldBody(n.Body)
	case *tree.ForEach:
		n.Of = cp.fold(n.Of)
		n.Body = cp.foldBody(n.Body)
	case *tree.Scoped:
		n.Body = cp.foldBody(n.Body)
	case *tree.ConditionalStatement:
		n.Cond = cp.fold(n.Cond)
		n.Body = cp.foldStatement(n.Body)
	case *tree.MultiStatement:
		n.Statements = cp.foldBody(n.Statements)
	}
	return s
}

// fold recursively folds e, replacing any subtree whose value is
// statically known with a *tree.Constant (or *tree.ConstantArray).
func (cp *constPropVisitor) fold(e tree.Expression) tree.Expression {
	switch n := e.(type) {
	case *tree.Constant, *tree.ConstantArray:
		return n
	case *tree.Unary:
		n.Operand = cp.fold(n.Operand)
		if cv, ok := constOf(n.Operand); ok {
			if folded, ok := foldUnary(n.Op, cv); ok {
				cp.changed = true
				c := &tree.Constant{Value: folded}
				c.SetType(n.Type())
				return c
			}
		}
		return n
	case *tree.Binary:
		n.Left = cp.fold(n.Left)
		n.Right = cp.fold(n.Right)
		lc, lok := constOf(n.Left)
		rc, rok := constOf(n.Right)
		if lok && rok {
			if folded, ok := foldBinary(n.Op, lc, rc); ok {
				cp.changed = true
				c := &tree.Constant{Value: folded}
				c.SetType(n.Type())
				return c
			}
		}
		return n
	case *tree.Conditional:
		n.Cond = cp.fold(n.Cond)
		n.Then = cp.fold(n.Then)
		n.Else = cp.fold(n.Else)
		if cv, ok := constOf(n.Cond); ok {
			if b, ok := cv.AsBool(); ok {
				cp.changed = true
				if b {
					return n.Then
				}
				return n.Else
			}
		}
		return n
	case *tree.Cast:
		for i, a := range n.Args {
			n.Args[i] = cp.fold(a)
		}
		if len(n.Args) == 1 {
			if cv, ok := constOf(n.Args[0]); ok {
				if folded, ok := foldCast(n.Target, cv); ok {
					cp.changed = true
					c := &tree.Constant{Value: folded}
					c.SetType(n.Target)
					return c
				}
			}
		}
		return n
	case *tree.Call:
		for i, a := range n.Args {
			n.Args[i] = cp.fold(a)
		}
		return n
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = cp.fold(a)
		}
		return n
	case *tree.Access:
		n.Of = cp.fold(n.Of)
		for i, idx := range n.Indices {
			n.Indices[i] = cp.fold(idx)
		}
		return n
	case *tree.Assign:
		n.Value = cp.fold(n.Value)
		return n
	case *tree.Swizzle:
		n.Of = cp.fold(n.Of)
		return n
	default:
		return e
	}
}

func constOf(e tree.Expression) (tree.ConstValue, bool) {
	if c, ok := e.(*tree.Constant); ok {
		return c.Value, true
	}
	return tree.ConstValue{}, false
}

func foldUnary(op tree.UnaryOp, v tree.ConstValue) (tree.ConstValue, bool) {
	switch op {
	case tree.Negate:
		if v.Of.IsFloat() {
			return tree.FloatValue(v.Of, -v.Float), true
		}
		return tree.IntValue(v.Of, -v.Int), true
	case tree.LogicalNot:
		if b, ok := v.AsBool(); ok {
			return tree.BoolValue(!b), true
		}
	case tree.BitwiseNot:
		if !v.Of.IsFloat() && v.Of != types.Bool {
			return tree.IntValue(v.Of, ^v.Int), true
		}
	case tree.Plus:
		return v, true
	}
	return tree.ConstValue{}, false
}

func foldBinary(op tree.BinaryOp, l, r tree.ConstValue) (tree.ConstValue, bool) {
	if op.IsComparison() {
		return foldComparison(op, l, r)
	}
	if l.Of.IsFloat() || r.Of.IsFloat() {
		lf, rf := l.Float, r.Float
		of := l.Of
		if of != types.F64 && r.Of == types.F64 {
			of = types.F64
		}
		switch op {
		case tree.Add:
			return tree.FloatValue(of, lf+rf), true
		case tree.Sub:
			return tree.FloatValue(of, lf-rf), true
		case tree.Mul:
			return tree.FloatValue(of, lf*rf), true
		case tree.Div:
			return tree.FloatValue(of, lf/rf), true
		}
		return tree.ConstValue{}, false
	}
	if l.Of == types.Bool && r.Of == types.Bool {
		switch op {
		case tree.LogicalAnd:
			return tree.BoolValue(l.Bool && r.Bool), true
		case tree.LogicalOr:
			return tree.BoolValue(l.Bool || r.Bool), true
		}
		return tree.ConstValue{}, false
	}
	li, ri := l.Int, r.Int
	switch op {
	case tree.Add:
		return tree.IntValue(l.Of, li+ri), true
	case tree.Sub:
		return tree.IntValue(l.Of, li-ri), true
	case tree.Mul:
		return tree.IntValue(l.Of, li*ri), true
	case tree.Div:
		if ri == 0 {
			return tree.ConstValue{}, false
		}
		return tree.IntValue(l.Of, li/ri), true
	case tree.Mod:
		if ri == 0 {
			return tree.ConstValue{}, false
		}
		return tree.IntValue(l.Of, li%ri), true
	case tree.BitwiseAnd:
		return tree.IntValue(l.Of, li&ri), true
	case tree.BitwiseOr:
		return tree.IntValue(l.Of, li|ri), true
	case tree.BitwiseXor:
		return tree.IntValue(l.Of, li^ri), true
	case tree.ShiftLeft:
		return tree.IntValue(l.Of, li<<uint(ri)), true
	case tree.ShiftRight:
		return tree.IntValue(l.Of, li>>uint(ri)), true
	}
	return tree.ConstValue{}, false
}

func foldComparison(op tree.BinaryOp, l, r tree.ConstValue) (tree.ConstValue, bool) {
	var cmp int
	switch {
	case l.Of.IsFloat() || r.Of.IsFloat():
		switch {
		case l.Float < r.Float:
			cmp = -1
		case l.Float > r.Float:
			cmp = 1
		}
	case l.Of == types.Bool:
		switch {
		case !l.Bool && r.Bool:
			cmp = -1
		case l.Bool && !r.Bool:
			cmp = 1
		}
		if op != tree.CompEq && op != tree.CompNe {
			return tree.ConstValue{}, false
		}
	default:
		switch {
		case l.Int < r.Int:
			cmp = -1
		case l.Int > r.Int:
			cmp = 1
		}
	}
	switch op {
	case tree.CompEq:
		return tree.BoolValue(cmp == 0), true
	case tree.CompNe:
		return tree.BoolValue(cmp != 0), true
	case tree.CompLt:
		return tree.BoolValue(cmp < 0), true
	case tree.CompLe:
		return tree.BoolValue(cmp <= 0), true
	case tree.CompGt:
		return tree.BoolValue(cmp > 0), true
	case tree.CompGe:
		return tree.BoolValue(cmp >= 0), true
	}
	return tree.ConstValue{}, false
}

func foldCast(target types.Type, v tree.ConstValue) (tree.ConstValue, bool) {
	p, ok := types.ResolveAlias(target).(types.Primitive)
	if !ok {
		return tree.ConstValue{}, false
	}
	switch {
	case p == types.Bool:
		if v.Of.IsFloat() {
			return tree.BoolValue(v.Float != 0), true
		}
		return tree.BoolValue(v.Int != 0), true
	case p.IsFloat():
		if v.Of.IsFloat() {
			return tree.FloatValue(p, v.Float), true
		}
		if v.Of == types.Bool {
			if v.Bool {
				return tree.FloatValue(p, 1), true
			}
			return tree.FloatValue(p, 0), true
		}
		return tree.FloatValue(p, float64(v.Int)), true
	case p.IsInteger():
		if v.Of.IsFloat() {
			return tree.IntValue(p, int64(math.Trunc(v.Float))), true
		}
		if v.Of == types.Bool {
			if v.Bool {
				return tree.IntValue(p, 1), true
			}
			return tree.IntValue(p, 0), true
		}
		return tree.IntValue(p, v.Int), true
	}
	return tree.ConstValue{}, false
}
