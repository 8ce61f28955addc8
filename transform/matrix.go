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

// MatrixTransformer performs the two matrix rewrites of spec §4.4:
//
//  1. Binary +/- on matrices, for backends lacking the operator, is
//     rewritten into a per-column constructor of elementwise column
//     additions/subtractions.
//  2. A matrix cast is rewritten into a constructor of columns (each
//     column itself built from the cast's scalar/vector arguments) —
//     the form every backend here actually accepts as a matrix literal.
//
// Both rewrites apply whenever the pass runs. compiler.Pipeline includes
// it under PassTargetRequired for every target, so SPIR-V output gets
// rewrite 1 too, although SPIR-V has native OpFAdd/OpFSub on matrix
// operands.
type MatrixTransformer struct{}

func NewMatrixTransformer() *MatrixTransformer { return &MatrixTransformer{} }

func (*MatrixTransformer) Name() string { return "MatrixTransformer" }

func (mt *MatrixTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	mv := &matrixVisitor{}
	for _, f := range m.Functions {
		f.Body = mv.rewriteBody(f.Body)
	}
	return mv.changed, nil
}

type matrixVisitor struct{ changed bool }

func (mv *matrixVisitor) rewriteBody(body []tree.Statement) []tree.Statement {
	for _, s := range body {
		mv.rewriteStatement(s)
	}
	return body
}

func (mv *matrixVisitor) rewriteStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		n.Expr = mv.rewriteExpr(n.Expr)
	case *tree.Return:
		if n.Value != nil {
			n.Value = mv.rewriteExpr(n.Value)
		}
	case *tree.VariableDecl:
		if n.Initializer != nil {
			n.Initializer = mv.rewriteExpr(n.Initializer)
		}
	case *tree.ConstDecl:
		n.Value = mv.rewriteExpr(n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = mv.rewriteExpr(n.Clauses[i].Cond)
			mv.rewriteBody(n.Clauses[i].Body)
		}
		mv.rewriteBody(n.Else)
	case *tree.While:
		n.Cond = mv.rewriteExpr(n.Cond)
		mv.rewriteBody(n.Body)
	case *tree.For:
		mv.rewriteBody(n.Body)
	case *tree.ForEach:
		mv.rewriteBody(n.Body)
	case *tree.Scoped:
		mv.rewriteBody(n.Body)
	case *tree.MultiStatement:
		mv.rewriteBody(n.Statements)
	}
}

func (mv *matrixVisitor) rewriteExpr(e tree.Expression) tree.Expression {
	switch n := e.(type) {
	case *tree.Binary:
		n.Left = mv.rewriteExpr(n.Left)
		n.Right = mv.rewriteExpr(n.Right)
		if (n.Op == tree.Add || n.Op == tree.Sub) && isMatrix(n.Left.Type()) && isMatrix(n.Right.Type()) {
			mv.changed = true
			return mv.columnwiseOp(n)
		}
		return n
	case *tree.Cast:
		for i, a := range n.Args {
			n.Args[i] = mv.rewriteExpr(a)
		}
		if m, ok := types.ResolveAlias(n.Target).(types.Matrix); ok && len(n.Args) > 0 && !allColumns(n.Args, m) {
			mv.changed = true
			return mv.castToColumnConstructor(n, m)
		}
		return n
	case *tree.Unary:
		n.Operand = mv.rewriteExpr(n.Operand)
	case *tree.Assign:
		n.Value = mv.rewriteExpr(n.Value)
	case *tree.Call:
		for i, a := range n.Args {
			n.Args[i] = mv.rewriteExpr(a)
		}
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = mv.rewriteExpr(a)
		}
	case *tree.Conditional:
		n.Then = mv.rewriteExpr(n.Then)
		n.Else = mv.rewriteExpr(n.Else)
	}
	return e
}

func isMatrix(t types.Type) bool {
	return types.Is(types.ResolveAlias(t), types.KindMatrix)
}

func allColumns(args []tree.Expression, m types.Matrix) bool {
	if len(args) != int(m.Columns) {
		return false
	}
	colType := types.Vector{Size: m.Rows, Of: m.Of}
	for _, a := range args {
		if !types.Equal(a.Type(), colType) {
			return false
		}
	}
	return true
}

// columnwiseOp rewrites `a <op> b` (matrices of the same shape) into a
// matrix constructor whose arguments are each `column(a,i) <op>
// column(b,i)`.
func (mv *matrixVisitor) columnwiseOp(n *tree.Binary) tree.Expression {
	m := n.Type().(types.Matrix)
	args := make([]tree.Expression, m.Columns)
	colType := types.Vector{Size: m.Rows, Of: m.Of}
	for i := uint8(0); i < m.Columns; i++ {
		lc := columnAccess(n.Left, int(i), colType)
		rc := columnAccess(n.Right, int(i), colType)
		b := &tree.Binary{Op: n.Op, Left: lc, Right: rc}
		b.SetType(colType)
		args[i] = b
	}
	cast := &tree.Cast{Target: m, Args: args}
	cast.SetType(m)
	return cast
}

func columnAccess(of tree.Expression, col int, colType types.Vector) tree.Expression {
	idx := &tree.Constant{Value: tree.IntValue(types.I32, int64(col))}
	idx.SetType(types.I32)
	a := &tree.Access{Kind: tree.AccessByNumericIndices, Of: of, Indices: []tree.Expression{idx}}
	a.SetType(colType)
	return a
}

// castToColumnConstructor rewrites a matrix cast whose arguments are not
// already one-per-column vectors (e.g. all 16 scalars for a mat4x4, or a
// mix of scalars) into an equivalent one built strictly from column
// vectors, grouping n's flat scalar argument list Rows-at-a-time.
func (mt *matrixVisitor) castToColumnConstructor(n *tree.Cast, m types.Matrix) tree.Expression {
	colType := types.Vector{Size: m.Rows, Of: m.Of}
	if len(n.Args) == 1 {
		// Single scalar argument: a diagonal-fill constructor.
		return n
	}
	cols := make([]tree.Expression, 0, m.Columns)
	for i := 0; i < len(n.Args); i += int(m.Rows) {
		end := i + int(m.Rows)
		if end > len(n.Args) {
			break
		}
		group := n.Args[i:end]
		colCast := &tree.Cast{Target: colType, Args: append([]tree.Expression{}, group...)}
		colCast.SetType(colType)
		cols = append(cols, colCast)
	}
	if len(cols) != int(m.Columns) {
		return n // argument shape didn't decompose cleanly; leave as-is
	}
	out := &tree.Cast{Target: m, Args: cols}
	out.SetType(m)
	return out
}
