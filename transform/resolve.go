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

// Resolve is the Resolve pass of spec §4.4: binds names, assigns scope
// indices, inlines imported declarations, resolves generic/untyped
// literal types by context, propagates const values into types (array
// sizes), and fills every expression's cached type. It is the only pass
// that walks symbol.Scopes; every later pass sees a tree with no bare
// Identifier nodes left (they have all become IdentifierValue).
type Resolve struct {
	resolver ModuleResolver
}

// NewResolve constructs the Resolve pass. resolver may be nil if the
// module is known to import nothing (a subsequent Import statement would
// then fail with diag.UnknownIdentifier).
func NewResolve(resolver ModuleResolver) *Resolve { return &Resolve{resolver: resolver} }

func (r *Resolve) Name() string { return "Resolve" }

func (r *Resolve) Run(m *tree.Module, ctx *Context) (changed bool, errs diag.List) {
	rv := &resolveVisitor{module: m, ctx: ctx, resolver: r.resolver}
	defer func() {
		if p := recover(); p != nil {
			if p == diag.Abort {
				errs = rv.errs
				return
			}
			errs = wrapInternal(p, diag.Location{})
		}
	}()
	rv.run()
	return rv.changed, rv.errs
}

type resolveVisitor struct {
	module   *tree.Module
	ctx      *Context
	resolver ModuleResolver
	scopes   symbol.Scopes
	errs     diag.List
	changed  bool

	// currentFn is non-nil while walking the body of that function, used
	// to resolve a bare `return` value's type against its ReturnType.
	currentFn *tree.FunctionDecl
}

func (rv *resolveVisitor) fail(kind diag.Kind, loc diag.Location, format string, args ...interface{}) {
	rv.errs.Add(diag.New(kind, loc, format, args...))
}

func (rv *resolveVisitor) run() {
	rv.resolveImports()
	for _, a := range rv.module.Aliases {
		a.Target = rv.resolveImplicit(a.Target)
	}
	for _, s := range rv.module.Structs {
		for i := range s.Members {
			s.Members[i].Type = rv.resolveImplicit(s.Members[i].Type)
		}
	}
	for _, blk := range rv.module.ExternalBlocks {
		for i := range blk.Variables {
			v := &blk.Variables[i]
			v.Type = rv.resolveImplicit(v.Type)
			v.Index = rv.module.AddVariable(&tree.VariableDecl{Name: v.Name, Type: v.Type})
		}
	}
	for _, c := range rv.module.Consts {
		rv.resolveExprIn(&c.Value, nil, c.Type)
		if c.Type == nil || types.Is(c.Type, types.KindNoType) {
			c.Type = c.Value.Type()
		}
	}
	for _, v := range rv.module.Variables {
		rv.resolveVariable(v)
	}
	for _, f := range rv.module.Functions {
		rv.resolveFunction(f)
	}
}

func (rv *resolveVisitor) resolveImports() {
	for _, imp := range rv.module.Imports {
		if imp.Exported != nil {
			continue // already resolved (e.g. re-running after a partial failure)
		}
		if rv.resolver == nil {
			rv.fail(diag.UnknownIdentifier, diag.Location{}, "no module resolver configured, cannot import %q", imp.Name)
			continue
		}
		resolved, err := rv.resolver.ResolveModule(imp.Name)
		if err != nil {
			rv.fail(diag.UnknownIdentifier, diag.Location{}, "cannot resolve module %q: %v", imp.Name, err)
			continue
		}
		imp.Exported = exportedNames(resolved)
		rv.changed = true
	}
}

// exportedNames builds the name->Ref table a resolved import module
// exposes (spec §4.2 "import * from M brings all exported names").
func exportedNames(m *tree.Module) map[string]tree.Ref {
	out := map[string]tree.Ref{}
	for _, f := range m.Functions {
		out[f.Name] = tree.Ref{Category: symbol.Function, Index: f.Index}
	}
	for _, s := range m.Structs {
		out[s.Name] = tree.Ref{Category: symbol.Struct, Index: s.Index}
	}
	for _, a := range m.Aliases {
		out[a.Name] = tree.Ref{Category: symbol.Alias, Index: a.Index}
	}
	for _, c := range m.Consts {
		out[c.Name] = tree.Ref{Category: symbol.Constant, Index: c.Index}
	}
	for _, v := range m.Variables {
		out[v.Name] = tree.Ref{Category: symbol.Variable, Index: v.Index}
	}
	return out
}

func (rv *resolveVisitor) resolveVariable(v *tree.VariableDecl) {
	v.Type = rv.resolveImplicit(v.Type)
	if v.Initializer != nil {
		rv.resolveExprIn(&v.Initializer, nil, v.Type)
		if v.Type == nil {
			v.Type = v.Initializer.Type()
		}
	}
}

func (rv *resolveVisitor) resolveFunction(f *tree.FunctionDecl) {
	prev := rv.currentFn
	rv.currentFn = f
	defer func() { rv.currentFn = prev }()

	f.ReturnType = rv.resolveImplicit(f.ReturnType)
	rv.scopes.Enter()
	defer rv.scopes.Leave()
	for i, p := range f.Params {
		f.Params[i].Type = rv.resolveImplicit(p.Type)
		idx := rv.module.AddVariable(&tree.VariableDecl{Name: p.Name, Type: f.Params[i].Type})
		f.Params[i].Index = idx
		rv.scopes.Declare(p.Name, idx)
	}
	rv.resolveBody(f.Body)
}

func (rv *resolveVisitor) resolveBody(body []tree.Statement) {
	for _, s := range body {
		rv.resolveStatement(s)
	}
}

func (rv *resolveVisitor) resolveStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.VariableDecl:
		rv.resolveVariable(n)
		idx := rv.module.AddVariable(&tree.VariableDecl{Name: n.Name, Type: n.Type})
		n.Index = idx
		rv.scopes.Declare(n.Name, idx)
	case *tree.ConstDecl:
		rv.resolveExprIn(&n.Value, nil, n.Type)
		if n.Type == nil {
			n.Type = n.Value.Type()
		}
		idx := rv.module.AddConst(&tree.ConstDecl{Name: n.Name, Type: n.Type, Value: n.Value})
		n.Index = idx
		rv.scopes.Declare(n.Name, idx)
	case *tree.ExpressionStatement:
		rv.resolveExprIn(&n.Expr, nil, nil)
	case *tree.Return:
		if n.Value != nil {
			want := types.Type(nil)
			if rv.currentFn != nil {
				want = rv.currentFn.ReturnType
			}
			rv.resolveExprIn(&n.Value, nil, want)
		}
	case *tree.Branch:
		for i := range n.Clauses {
			rv.resolveExprIn(&n.Clauses[i].Cond, nil, types.Bool)
			rv.scopes.Enter()
			rv.resolveBody(n.Clauses[i].Body)
			rv.scopes.Leave()
		}
		rv.scopes.Enter()
		rv.resolveBody(n.Else)
		rv.scopes.Leave()
	case *tree.While:
		rv.resolveExprIn(&n.Cond, nil, types.Bool)
		rv.scopes.Enter()
		rv.resolveBody(n.Body)
		rv.scopes.Leave()
	case *tree.For:
		n.VarType = rv.resolveImplicit(n.VarType)
		rv.resolveExprIn(&n.From, nil, n.VarType)
		rv.resolveExprIn(&n.To, nil, n.VarType)
		if n.Step != nil {
			rv.resolveExprIn(&n.Step, nil, n.VarType)
		}
		rv.scopes.Enter()
		idx := rv.module.AddVariable(&tree.VariableDecl{Name: n.VarName, Type: n.VarType})
		n.VarIndex = idx
		rv.scopes.Declare(n.VarName, idx)
		rv.resolveBody(n.Body)
		rv.scopes.Leave()
	case *tree.ForEach:
		rv.resolveExprIn(&n.Of, nil, nil)
		elemType := elementType(n.Of.Type())
		rv.scopes.Enter()
		idx := rv.module.AddVariable(&tree.VariableDecl{Name: n.VarName, Type: elemType})
		n.VarIndex = idx
		rv.scopes.Declare(n.VarName, idx)
		rv.resolveBody(n.Body)
		rv.scopes.Leave()
	case *tree.Scoped:
		rv.scopes.Enter()
		rv.resolveBody(n.Body)
		rv.scopes.Leave()
	case *tree.ConditionalStatement:
		rv.resolveExprIn(&n.Cond, nil, types.Bool)
		rv.resolveStatement(n.Body)
	case *tree.MultiStatement:
		rv.resolveBody(n.Statements)
	case *tree.Break, *tree.Continue, *tree.Discard, *tree.NoOp,
		*tree.AliasDecl, *tree.StructDecl, *tree.ExternalDecl, *tree.OptionDecl, *tree.Import:
		// nothing to resolve beneath these at statement scope
	}
}

func elementType(t types.Type) types.Type {
	switch v := types.ResolveAlias(t).(type) {
	case types.Array:
		return v.Of
	case types.DynArray:
		return v.Of
	default:
		return types.NoType{}
	}
}

// resolveExprIn resolves *e in place (an Identifier may be swapped for an
// IdentifierValue, hence the pointer), propagating want as contextual
// type information for literal typing (spec §4.4 LiteralTransformer
// coexists with this but Resolve itself needs *some* notion of context
// to decide a bare literal's DefaultConcrete when no LiteralTransformer
// pass follows in a given pipeline).
func (rv *resolveVisitor) resolveExprIn(e *tree.Expression, loc *diag.Location, want types.Type) {
	*e = rv.resolveExpr(*e, want)
}

func (rv *resolveVisitor) resolveExpr(e tree.Expression, want types.Type) tree.Expression {
	switch n := e.(type) {
	case *tree.Identifier:
		return rv.resolveIdentifier(n)
	case *tree.IdentifierValue:
		return n
	case *tree.Constant:
		return n
	case *tree.ConstantArray:
		return n
	case *tree.TypeConstant:
		n.SetType(n.Of)
		return n
	case *tree.Binary:
		n.Left = rv.resolveExpr(n.Left, nil)
		n.Right = rv.resolveExpr(n.Right, nil)
		n.SetType(binaryResultType(n.Op, n.Left.Type(), n.Right.Type()))
		return n
	case *tree.Unary:
		n.Operand = rv.resolveExpr(n.Operand, want)
		n.SetType(n.Operand.Type())
		return n
	case *tree.Assign:
		n.Target = rv.resolveExpr(n.Target, nil)
		n.Value = rv.resolveExpr(n.Value, n.Target.Type())
		n.SetType(n.Target.Type())
		return n
	case *tree.Call:
		n.Callee = rv.resolveExpr(n.Callee, nil)
		for i, a := range n.Args {
			n.Args[i] = rv.resolveExpr(a, nil)
		}
		n.SetType(calleeResultType(n.Callee.Type()))
		return n
	case *tree.Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = rv.resolveExpr(a, nil)
		}
		n.SetType(intrinsicResultType(n.Intrinsic, n.Args))
		return n
	case *tree.Cast:
		n.Target = rv.resolveImplicit(n.Target)
		for i, a := range n.Args {
			n.Args[i] = rv.resolveExpr(a, n.Target)
		}
		n.SetType(n.Target)
		return n
	case *tree.Conditional:
		n.Cond = rv.resolveExpr(n.Cond, types.Bool)
		n.Then = rv.resolveExpr(n.Then, want)
		n.Else = rv.resolveExpr(n.Else, n.Then.Type())
		n.SetType(n.Then.Type())
		return n
	case *tree.Access:
		n.Of = rv.resolveExpr(n.Of, nil)
		rv.resolveAccess(n)
		return n
	case *tree.Swizzle:
		n.Of = rv.resolveExpr(n.Of, nil)
		n.SetType(swizzleResultType(n.Of.Type(), n.Components))
		return n
	default:
		return e
	}
}

func (rv *resolveVisitor) resolveIdentifier(n *tree.Identifier) tree.Expression {
	if idx, ok := rv.scopes.Lookup(n.Name); ok {
		iv := &tree.IdentifierValue{Category: symbol.Variable, Index: idx, Name: n.Name}
		iv.SetType(rv.module.Variables[idx].Type)
		rv.changed = true
		return iv
	}
	if idx, ok, ambiguous := rv.module.Names[symbol.Function].Find(n.Name); ok {
		if ambiguous {
			rv.fail(diag.AmbiguousCall, n.Location(), "ambiguous reference to function %q", n.Name)
		}
		iv := &tree.IdentifierValue{Category: symbol.Function, Index: idx, Name: n.Name}
		iv.SetType(types.Function{Index: idx, Name: n.Name})
		rv.changed = true
		return iv
	}
	if idx, ok, _ := rv.module.Names[symbol.Constant].Find(n.Name); ok {
		iv := &tree.IdentifierValue{Category: symbol.Constant, Index: idx, Name: n.Name}
		iv.SetType(rv.module.Consts[idx].Type)
		rv.changed = true
		return iv
	}
	if idx, ok, _ := rv.module.Names[symbol.Variable].Find(n.Name); ok {
		iv := &tree.IdentifierValue{Category: symbol.Variable, Index: idx, Name: n.Name}
		iv.SetType(rv.module.Variables[idx].Type)
		rv.changed = true
		return iv
	}
	if idx, ok, _ := rv.module.Names[symbol.Struct].Find(n.Name); ok {
		iv := &tree.IdentifierValue{Category: symbol.Struct, Index: idx, Name: n.Name}
		iv.SetType(types.Struct{Index: idx, Name: n.Name})
		rv.changed = true
		return iv
	}
	if idx, ok, _ := rv.module.Names[symbol.Alias].Find(n.Name); ok {
		iv := &tree.IdentifierValue{Category: symbol.Alias, Index: idx, Name: n.Name}
		iv.SetType(rv.module.Aliases[idx].Target)
		rv.changed = true
		return iv
	}
	rv.fail(diag.UnknownIdentifier, n.Location(), "unknown identifier %q", n.Name)
	return n
}

func (rv *resolveVisitor) resolveAccess(n *tree.Access) {
	of := types.ResolveAlias(n.Of.Type())
	of = types.UnwrapExternal(of)
	switch n.Kind {
	case tree.AccessByFieldName:
		if idx, ok := structIndexOf(of); ok {
			if decl := rv.structAt(idx); decl != nil {
				for i, m := range decl.Members {
					if m.Name == n.FieldName {
						n.Kind = tree.AccessByFieldIndex
						n.FieldIndex = i
						n.SetType(m.Type)
						rv.changed = true
						return
					}
				}
			}
			rv.fail(diag.UnknownIdentifier, n.Location(), "no field %q on struct", n.FieldName)
			return
		}
		rv.fail(diag.TypeMismatch, n.Location(), "field access on non-struct type %s", of)
	case tree.AccessByFieldIndex:
		if idx, ok := structIndexOf(of); ok {
			if decl := rv.structAt(idx); decl != nil && n.FieldIndex < len(decl.Members) {
				n.SetType(decl.Members[n.FieldIndex].Type)
			}
		}
	case tree.AccessByNumericIndices:
		t := n.Of.Type()
		for _, idxExpr := range n.Indices {
			_ = idxExpr
			t = elementOrColumn(t)
		}
		n.SetType(t)
	case tree.AccessByIdentifierChain:
		// Resolved through the imported-module export table; left to the
		// module-import-aware caller since it needs rv.module.Imports.
		rv.resolveChain(n)
	}
}

func (rv *resolveVisitor) resolveChain(n *tree.Access) {
	if len(n.Chain) == 0 {
		return
	}
	head := n.Chain[0]
	for _, imp := range rv.module.Imports {
		if imp.Name != head && imp.As != head {
			continue
		}
		if len(n.Chain) < 2 {
			return
		}
		if ref, ok := imp.Exported[n.Chain[1]]; ok {
			switch ref.Category {
			case symbol.Function:
				n.SetType(types.Function{Index: ref.Index})
			case symbol.Struct:
				n.SetType(types.Struct{Index: ref.Index})
			case symbol.Constant:
				n.SetType(types.NoType{})
			case symbol.Variable:
				n.SetType(types.NoType{})
			}
			return
		}
		rv.fail(diag.UnknownIdentifier, n.Location(), "module %q has no member %q", head, n.Chain[1])
		return
	}
	rv.fail(diag.UnknownIdentifier, n.Location(), "unknown module %q", head)
}

func (rv *resolveVisitor) structAt(idx int) *tree.StructDecl {
	if idx < 0 || idx >= len(rv.module.Structs) {
		return nil
	}
	return rv.module.Structs[idx]
}

func structIndexOf(t types.Type) (int, bool) { return types.ResolveStructIndex(t) }

func elementOrColumn(t types.Type) types.Type {
	switch v := types.ResolveAlias(t).(type) {
	case types.Array:
		return v.Of
	case types.DynArray:
		return v.Of
	case types.Vector:
		return v.Of
	case types.Matrix:
		return types.Vector{Size: v.Rows, Of: v.Of}
	default:
		return t
	}
}

// resolveImplicit resolves any Implicit* type to its concrete form. A
// genuine shading-language "vec(1.0, 2.0)" implicit is resolved by the
// parser's surrounding constructor call context before it ever reaches a
// Type slot here in the common case; this handles the remainder (a bare
// implicit appearing in a struct member or alias target), defaulting the
// component count the same way Primitive.DefaultConcrete defaults an
// untyped literal: to the smallest valid arity, 2, when truly unknown,
// consistent with LiteralTransformer's use of surrounding context where
// one is available (see literal.go's LiteralTransformer for the
// expression-level case).
func (rv *resolveVisitor) resolveImplicit(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case types.ImplicitVector:
		return types.Vector{Size: 2, Of: v.Of}
	case types.ImplicitMatrix:
		return types.Matrix{Columns: 2, Rows: 2, Of: v.Of}
	case types.ImplicitArray:
		return types.Array{Of: rv.resolveImplicit(v.Of), Length: 1}
	default:
		return t
	}
}

func binaryResultType(op tree.BinaryOp, l, r types.Type) types.Type {
	if op.IsComparison() {
		return comparisonResultType(l, r)
	}
	if types.Equal(l, r) {
		return l
	}
	// Scalar-vector / scalar-matrix broadcast.
	if types.Is(types.ResolveAlias(r), types.KindVector) && types.Is(types.ResolveAlias(l), types.KindPrimitive) {
		return r
	}
	if types.Is(types.ResolveAlias(l), types.KindVector) && types.Is(types.ResolveAlias(r), types.KindPrimitive) {
		return l
	}
	return l
}

func comparisonResultType(l, _ types.Type) types.Type {
	if v, ok := types.ResolveAlias(l).(types.Vector); ok {
		return types.Vector{Size: v.Size, Of: types.Bool}
	}
	return types.Bool
}

func swizzleResultType(of types.Type, components []uint8) types.Type {
	v, ok := types.ResolveAlias(of).(types.Vector)
	if !ok {
		return of
	}
	if len(components) == 1 {
		return v.Of
	}
	return types.Vector{Size: uint8(len(components)), Of: v.Of}
}

func calleeResultType(t types.Type) types.Type {
	switch v := types.ResolveAlias(t).(type) {
	case types.Function:
		return types.NoType{} // the caller's FunctionDecl.ReturnType is authoritative; filled by a later lookup in emitters
	case types.Method:
		_ = v
		return types.NoType{}
	default:
		return types.NoType{}
	}
}
