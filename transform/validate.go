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

// ValidationTransformer runs last-chance checks over a fully transformed
// module (spec §4.4): no Implicit* type survives, every declaration
// index a node refers to is in range, every expression carries a
// resolved type, and every entry point satisfies its stage's basic
// shape. It never mutates the tree — Run always reports changed=false —
// it only ever appends diagnostics, mirroring gapil/validate.Validate's
// read-only pass over an already-resolved semantic.API.
type ValidationTransformer struct{}

func NewValidationTransformer() *ValidationTransformer { return &ValidationTransformer{} }

func (*ValidationTransformer) Name() string { return "ValidationTransformer" }

func (*ValidationTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	v := &validator{module: m}
	for _, f := range m.Functions {
		v.checkType(f.ReturnType, f.Location())
		for _, p := range f.Params {
			v.checkType(p.Type, f.Location())
		}
		v.checkBody(f.Body)
		if f.IsEntryPoint() {
			v.checkEntryPoint(f)
		}
	}
	for _, s := range m.Structs {
		for _, mem := range s.Members {
			v.checkType(mem.Type, s.Location())
		}
	}
	for _, a := range m.Aliases {
		v.checkType(a.Target, a.Location())
	}
	for _, va := range m.Variables {
		v.checkType(va.Type, va.Location())
	}
	for _, blk := range m.ExternalBlocks {
		for _, ev := range blk.Variables {
			v.checkType(ev.Type, blk.Location())
		}
	}
	if len(m.EntryPoints()) == 0 {
		v.errs.Add(diag.New(diag.MissingEntryPoint, diag.Location{}, "module declares no entry point"))
	}
	return false, v.errs
}

type validator struct {
	module *tree.Module
	errs   diag.List
}

func (v *validator) checkEntryPoint(f *tree.FunctionDecl) {
	switch f.Attrs.Entry {
	case tree.Compute:
		if !f.Attrs.HasWorkgroup {
			v.errs.Add(diag.New(diag.InvalidAttribute, f.Location(),
				"entry point %q targets compute but declares no workgroup(x,y,z) size", f.Name))
		}
	case tree.Fragment:
		if f.Attrs.DepthWrite != tree.DepthReplace && f.ReturnType == nil {
			v.errs.Add(diag.New(diag.InvalidAttribute, f.Location(),
				"entry point %q sets depth_write but returns nothing", f.Name))
		}
	}
}

func (v *validator) checkBody(body []tree.Statement) {
	for _, s := range body {
		v.checkStatement(s)
	}
}

func (v *validator) checkStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.ExpressionStatement:
		v.checkExpr(n.Expr)
	case *tree.Return:
		if n.Value != nil {
			v.checkExpr(n.Value)
		}
	case *tree.VariableDecl:
		v.checkType(n.Type, n.Location())
		if n.Initializer != nil {
			v.checkExpr(n.Initializer)
		}
	case *tree.ConstDecl:
		v.checkType(n.Type, n.Location())
		v.checkExpr(n.Value)
	case *tree.Branch:
		for i := range n.Clauses {
			v.checkExpr(n.Clauses[i].Cond)
			v.checkBody(n.Clauses[i].Body)
		}
		v.checkBody(n.Else)
	case *tree.ConditionalStatement:
		v.checkExpr(n.Cond)
		v.checkStatement(n.Body)
	case *tree.While:
		v.checkExpr(n.Cond)
		v.checkBody(n.Body)
	case *tree.For:
		v.checkType(n.VarType, n.Location())
		if n.From != nil {
			v.checkExpr(n.From)
		}
		if n.To != nil {
			v.checkExpr(n.To)
		}
		if n.Step != nil {
			v.checkExpr(n.Step)
		}
		v.checkBody(n.Body)
	case *tree.ForEach:
		v.checkExpr(n.Of)
		v.checkBody(n.Body)
	case *tree.Scoped:
		v.checkBody(n.Body)
	case *tree.MultiStatement:
		v.checkBody(n.Statements)
	}
}

func (v *validator) checkExpr(e tree.Expression) {
	if e == nil {
		return
	}
	if e.Type() == nil {
		v.errs.Add(diag.New(diag.TypeMismatch, e.Location(), "expression left untyped after resolution"))
	} else {
		v.checkType(e.Type(), e.Location())
	}
	switch n := e.(type) {
	case *tree.Identifier:
		v.errs.Add(diag.New(diag.UnknownIdentifier, n.Location(), "identifier %q was never resolved", n.Name))
	case *tree.IdentifierValue:
		v.checkIndex(n.Category, n.Index, n.Location())
	case *tree.Access:
		v.checkExpr(n.Of)
		for _, idx := range n.Indices {
			v.checkExpr(idx)
		}
		if n.Kind == tree.AccessByFieldName {
			v.errs.Add(diag.New(diag.Internal, n.Location(), "field access %q never resolved to an index", n.FieldName))
		}
	case *tree.Assign:
		v.checkExpr(n.Target)
		v.checkExpr(n.Value)
	case *tree.Binary:
		v.checkExpr(n.Left)
		v.checkExpr(n.Right)
	case *tree.Unary:
		v.checkExpr(n.Operand)
	case *tree.Call:
		v.checkExpr(n.Callee)
		for _, a := range n.Args {
			v.checkExpr(a)
		}
	case *tree.Intrinsic:
		for _, a := range n.Args {
			v.checkExpr(a)
		}
	case *tree.Cast:
		v.checkType(n.Target, n.Location())
		for _, a := range n.Args {
			v.checkExpr(a)
		}
	case *tree.Conditional:
		v.checkExpr(n.Cond)
		v.checkExpr(n.Then)
		v.checkExpr(n.Else)
	case *tree.Swizzle:
		v.checkExpr(n.Of)
	}
}

// checkIndex bounds-checks an IdentifierValue's (category, index) pair
// against the module's own declaration tables (spec §4.4 "all indices
// are valid").
func (v *validator) checkIndex(cat symbol.Category, idx int, loc diag.Location) {
	var n int
	switch cat {
	case symbol.Alias:
		n = len(v.module.Aliases)
	case symbol.Constant:
		n = len(v.module.Consts)
	case symbol.Function:
		n = len(v.module.Functions)
	case symbol.Struct:
		n = len(v.module.Structs)
	case symbol.Variable:
		n = len(v.module.Variables)
	case symbol.Module:
		n = len(v.module.Imports)
	case symbol.ExternalBlock:
		n = len(v.module.ExternalBlocks)
	default:
		v.errs.Add(diag.New(diag.Internal, loc, "identifier reference has unknown category %v", cat))
		return
	}
	if idx < 0 || idx >= n {
		v.errs.Add(diag.New(diag.Internal, loc, "identifier reference index %d out of range for category %v", idx, cat))
	}
}

// checkType rejects any Implicit* placeholder surviving past Resolve
// (spec §3.1 invariant: "no Implicit* type reaches a backend").
func (v *validator) checkType(t types.Type, loc diag.Location) {
	if t == nil {
		return
	}
	switch types.ResolveAlias(t).(type) {
	case types.ImplicitVector, types.ImplicitMatrix, types.ImplicitArray:
		v.errs.Add(diag.New(diag.TypeMismatch, loc, "implicit type %s was never concretized", t))
	}
}
