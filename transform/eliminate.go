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

// EliminateUnusedTransformer performs dead-code elimination by a
// reachability walk from entry points (spec §4.4): the caller supplies,
// through Context.ShaderStageFilter, the set of stages under
// consideration (an empty filter means "all stages"), and only
// functions, module-scope variables, and external resource variables
// reachable from a surviving entry point are kept. Modeled on
// gapil/validate's two-stage Analyze/WithAnalysis shape (mark phase,
// then sweep phase) referenced in DESIGN.md.
type EliminateUnusedTransformer struct{}

func NewEliminateUnusedTransformer() *EliminateUnusedTransformer {
	return &EliminateUnusedTransformer{}
}

func (*EliminateUnusedTransformer) Name() string { return "EliminateUnusedTransformer" }

func (*EliminateUnusedTransformer) Run(m *tree.Module, ctx *Context) (changed bool, errs diag.List) {
	reached := &reachability{
		funcs:   map[int]bool{},
		vars:    map[int]bool{},
		structs: map[int]bool{},
		extern:  map[string]bool{},
	}

	var roots []*tree.FunctionDecl
	for _, f := range m.Functions {
		if !f.IsEntryPoint() {
			continue
		}
		if ctx != nil && !ctx.AllowsStage(f.Attrs.Entry) {
			continue
		}
		roots = append(roots, f)
	}
	for _, f := range roots {
		reached.markFunction(m, f.Index)
	}

	keptFns := m.Functions[:0]
	for _, f := range m.Functions {
		if reached.funcs[f.Index] || f.IsEntryPoint() {
			keptFns = append(keptFns, f)
		} else {
			changed = true
		}
	}
	m.Functions = keptFns

	keptVars := m.Variables[:0]
	for _, v := range m.Variables {
		if reached.vars[v.Index] {
			keptVars = append(keptVars, v)
		} else {
			changed = true
		}
	}
	m.Variables = keptVars

	for _, blk := range m.ExternalBlocks {
		kept := blk.Variables[:0]
		for _, v := range blk.Variables {
			if reached.extern[blk.Name+"."+v.Name] {
				kept = append(kept, v)
			} else {
				changed = true
			}
		}
		blk.Variables = kept
	}

	return changed, nil
}

type reachability struct {
	funcs, vars, structs map[int]bool
	extern               map[string]bool
}

func (r *reachability) markFunction(m *tree.Module, idx int) {
	if r.funcs[idx] {
		return
	}
	r.funcs[idx] = true
	f := m.Functions[idx]
	r.markType(f.ReturnType)
	for _, p := range f.Params {
		r.markType(p.Type)
	}
	r.walkBody(m, f.Body)
}

// walkBody and walkExpr recurse through a function body, marking every
// function/variable/external-variable/struct reference encountered.
// Passes elsewhere in this package follow the same hand-rolled
// recursion shape rather than tree.Visit, since tree.Visit only
// descends one level per call (callers recurse themselves).
func (r *reachability) walkBody(m *tree.Module, body []tree.Statement) {
	for _, s := range body {
		r.walkStatement(m, s)
	}
}

func (r *reachability) walkStatement(m *tree.Module, s tree.Statement) {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		r.walkExpr(m, n.Expr)
	case *tree.Return:
		if n.Value != nil {
			r.walkExpr(m, n.Value)
		}
	case *tree.VariableDecl:
		r.markType(n.Type)
		if n.Initializer != nil {
			r.walkExpr(m, n.Initializer)
		}
	case *tree.ConstDecl:
		r.walkExpr(m, n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			r.walkExpr(m, n.Clauses[i].Cond)
			r.walkBody(m, n.Clauses[i].Body)
		}
		r.walkBody(m, n.Else)
	case *tree.ConditionalStatement:
		r.walkExpr(m, n.Cond)
		r.walkStatement(m, n.Body)
	case *tree.While:
		r.walkExpr(m, n.Cond)
		r.walkBody(m, n.Body)
	case *tree.For:
		r.markType(n.VarType)
		if n.From != nil {
			r.walkExpr(m, n.From)
		}
		if n.To != nil {
			r.walkExpr(m, n.To)
		}
		if n.Step != nil {
			r.walkExpr(m, n.Step)
		}
		r.walkBody(m, n.Body)
	case *tree.ForEach:
		r.walkExpr(m, n.Of)
		r.walkBody(m, n.Body)
	case *tree.Scoped:
		r.walkBody(m, n.Body)
	case *tree.MultiStatement:
		r.walkBody(m, n.Statements)
	}
}

func (r *reachability) walkExpr(m *tree.Module, e tree.Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *tree.IdentifierValue:
		switch n.Category {
		case symbol.Function:
			r.markFunction(m, n.Index)
		case symbol.Variable:
			r.vars[n.Index] = true
		}
	case *tree.Access:
		r.walkExpr(m, n.Of)
		for _, idx := range n.Indices {
			r.walkExpr(m, idx)
		}
		if n.Kind == tree.AccessByIdentifierChain && len(n.Chain) > 0 {
			r.extern[n.Chain[0]+"."+n.Chain[len(n.Chain)-1]] = true
		}
	case *tree.Assign:
		r.walkExpr(m, n.Target)
		r.walkExpr(m, n.Value)
	case *tree.Binary:
		r.walkExpr(m, n.Left)
		r.walkExpr(m, n.Right)
	case *tree.Unary:
		r.walkExpr(m, n.Operand)
	case *tree.Call:
		r.walkExpr(m, n.Callee)
		for _, a := range n.Args {
			r.walkExpr(m, a)
		}
	case *tree.Intrinsic:
		for _, a := range n.Args {
			r.walkExpr(m, a)
		}
	case *tree.Cast:
		r.markType(n.Target)
		for _, a := range n.Args {
			r.walkExpr(m, a)
		}
	case *tree.Conditional:
		r.walkExpr(m, n.Cond)
		r.walkExpr(m, n.Then)
		r.walkExpr(m, n.Else)
	case *tree.Swizzle:
		r.walkExpr(m, n.Of)
	case *tree.ConstantArray:
		r.markType(n.Of)
	}
}

func (r *reachability) markType(t types.Type) {
	if t == nil {
		return
	}
	switch v := types.ResolveAlias(t).(type) {
	case types.Struct:
		if r.structs[v.Index] {
			return
		}
		r.structs[v.Index] = true
	case types.Array:
		r.markType(v.Of)
	case types.DynArray:
		r.markType(v.Of)
	case types.Vector:
		r.markType(v.Of)
	case types.Matrix:
		r.markType(v.Of)
	}
}
