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
	"github.com/shaderlang/slc/types"
)

// ForToWhile lowers numeric `for i in a..b` loops to a While with
// explicit induction, for backends that cannot express the high-level
// form (spec §4.4). The induction variable keeps its original symbol
// index (a VariableDecl was already registered for it by Resolve); the
// rewrite only changes how that same variable is initialized, tested
// and advanced.
type ForToWhile struct{}

func NewForToWhile() *ForToWhile { return &ForToWhile{} }

func (*ForToWhile) Name() string { return "ForToWhile" }

func (ft *ForToWhile) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	for _, f := range m.Functions {
		f.Body, changed = ft.lowerBody(f.Body, changed)
	}
	return changed, nil
}

func (ft *ForToWhile) lowerBody(body []tree.Statement, changed bool) ([]tree.Statement, bool) {
	out := make([]tree.Statement, 0, len(body))
	for _, s := range body {
		switch n := s.(type) {
		case *tree.For:
			n.Body, changed = ft.lowerBody(n.Body, changed)
			out = append(out, ft.lower(n))
			changed = true
		case *tree.While:
			n.Body, changed = ft.lowerBody(n.Body, changed)
			out = append(out, n)
		case *tree.Branch:
			for i := range n.Clauses {
				n.Clauses[i].Body, changed = ft.lowerBody(n.Clauses[i].Body, changed)
			}
			n.Else, changed = ft.lowerBody(n.Else, changed)
			out = append(out, n)
		case *tree.ForEach:
			n.Body, changed = ft.lowerBody(n.Body, changed)
			out = append(out, n)
		case *tree.Scoped:
			n.Body, changed = ft.lowerBody(n.Body, changed)
			out = append(out, n)
		default:
			out = append(out, s)
		}
	}
	return out, changed
}

// lower rewrites a single numeric For into:
//
//	{ <induction var decl = From>
//	  while (induction < To) { ...body...; induction += Step } }
//
// wrapped in a Scoped block so the induction variable's lifetime matches
// the original For's.
func (ft *ForToWhile) lower(n *tree.For) tree.Statement {
	varRef := &tree.IdentifierValue{Category: symbol.Variable, Index: n.VarIndex, Name: n.VarName}
	varRef.SetType(n.VarType)

	initDecl := &tree.VariableDecl{
		Index:       n.VarIndex,
		Name:        n.VarName,
		Type:        n.VarType,
		Initializer: n.From,
	}

	step := n.Step
	if step == nil {
		one := &tree.Constant{Value: tree.IntValue(types.I32, 1)}
		one.SetType(n.VarType)
		step = one
	}

	cond := &tree.Binary{Op: tree.CompLt, Left: varRef, Right: n.To}
	cond.SetType(types.Bool)

	assignExpr := &tree.Assign{Op: tree.AssignAdd, Target: varRef, Value: step}
	assignExpr.SetType(n.VarType)
	advance := &tree.ExpressionStatement{Expr: assignExpr}

	body := append(append([]tree.Statement{}, n.Body...), advance)

	while := &tree.While{Cond: cond, Body: body, Unroll: n.Unroll, HasUnroll: n.HasUnroll}

	return &tree.Scoped{Body: []tree.Statement{initDecl, while}}
}
