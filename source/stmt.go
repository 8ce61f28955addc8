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

package source

import (
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

func (w *Writer) writeBody(body []tree.Statement) {
	for _, s := range body {
		w.writeStatement(s)
	}
}

// writeStatement covers every statement kind spec §3.2 lists, including
// the ones wgsl.writeStatement/glsl.writeStatement treat as unreachable
// (AliasDecl, ConstDecl, StructDecl, OptionDecl, ExternalDecl nested in a
// function body; For; ConditionalStatement; Import) — this emitter has
// no guarantee it only ever sees a fully lowered tree (see package doc).
func (w *Writer) writeStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.NoOp:
		return
	case *tree.MultiStatement:
		w.writeBody(n.Statements)
	case *tree.Scoped:
		w.line("{")
		w.indent++
		w.writeBody(n.Body)
		w.indent--
		w.line("}")
	case *tree.AliasDecl:
		w.writeAlias(n)
	case *tree.ConstDecl:
		w.writeConst(n)
	case *tree.OptionDecl:
		w.writeOption(n)
	case *tree.StructDecl:
		w.writeStruct(n)
	case *tree.ExternalDecl:
		w.writeExternal(n)
	case *tree.VariableDecl:
		w.writeVariableDecl(n)
	case *tree.ExpressionStatement:
		w.line("%s;", w.exprString(n.Expr))
	case *tree.Return:
		if n.Value != nil {
			w.line("return %s;", w.exprString(n.Value))
		} else {
			w.line("return;")
		}
	case *tree.Discard:
		w.line("discard;")
	case *tree.Break:
		w.line("break;")
	case *tree.Continue:
		w.line("continue;")
	case *tree.Branch:
		w.writeBranch(n)
	case *tree.ConditionalStatement:
		w.writeConditional(n)
	case *tree.While:
		w.writeWhile(n)
	case *tree.For:
		w.writeFor(n)
	case *tree.ForEach:
		w.writeForEach(n)
	case *tree.Import:
		w.writeImport(n)
	default:
		w.errs.Add(diag.New(diag.Internal, s.Location(), "statement kind reached source codegen unhandled: %T", s))
	}
}

func (w *Writer) writeVariableDecl(n *tree.VariableDecl) {
	w.writeAttrLine(n.Attrs)
	if n.Initializer != nil {
		w.line("let %s: %s = %s;", n.Name, n.Type, w.exprString(n.Initializer))
		return
	}
	w.line("let %s: %s;", n.Name, n.Type)
}

// writeBranch renders a full n-way if/elif/else cascade as written
// (unlike wgsl/glsl, this runs before BranchSplitter may have reduced it
// to nested two-way Branch nodes, so both forms must print correctly;
// printing each clause of n.Clauses directly handles both).
func (w *Writer) writeBranch(n *tree.Branch) {
	for i, c := range n.Clauses {
		kw := "if"
		if i > 0 {
			kw = "} elif"
		}
		w.line("%s %s {", kw, w.exprString(c.Cond))
		w.indent++
		w.writeBody(c.Body)
		w.indent--
	}
	if len(n.Else) > 0 {
		w.line("} else {")
		w.indent++
		w.writeBody(n.Else)
		w.indent--
	}
	w.line("}")
}

// writeConditional renders a compile-time-gated statement. This has no
// runtime-control-flow counterpart in any backend (ConstantPropagation
// always removes it before wgsl/glsl ever see the tree — spec §3.2), so
// its only consumer is this debug re-emitter; `cond (...)  { ... }`
// mirrors the cond(...) attribute's own spelling for consistency.
func (w *Writer) writeConditional(n *tree.ConditionalStatement) {
	w.line("cond (%s) {", w.exprString(n.Cond))
	w.indent++
	w.writeStatement(n.Body)
	w.indent--
	w.line("}")
}

func (w *Writer) writeWhile(n *tree.While) {
	if n.HasUnroll {
		w.line("[unroll(%s)]", unrollName(n.Unroll))
	}
	w.line("while %s {", w.exprString(n.Cond))
	w.indent++
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

// writeFor renders the numeric range-for form `for Var in From..To`, with
// an optional `step Step` (spec §3.2 "for (numeric)"). ForToWhile lowers
// this into a While before wgsl/glsl ever run, so only this debug
// re-emitter — which may be invoked pre-lowering — ever prints it.
func (w *Writer) writeFor(n *tree.For) {
	if n.HasUnroll {
		w.line("[unroll(%s)]", unrollName(n.Unroll))
	}
	if n.Step != nil {
		w.line("for %s in %s..%s step %s {", n.VarName, w.exprString(n.From), w.exprString(n.To), w.exprString(n.Step))
	} else {
		w.line("for %s in %s..%s {", n.VarName, w.exprString(n.From), w.exprString(n.To))
	}
	w.indent++
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

func (w *Writer) writeForEach(n *tree.ForEach) {
	w.line("for %s in %s {", n.VarName, w.exprString(n.Of))
	w.indent++
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

// writeImport renders a still-unresolved Import statement (spec §3.2,
// §4.2). Once Resolve has run, the node is instead folded into
// Module.Imports and printed by Writer.writeImportedModule at the top of
// Emit, never reappearing as a body statement.
func (w *Writer) writeImport(n *tree.Import) {
	switch n.Kind {
	case tree.ImportModule:
		if n.As != "" {
			w.line("import %s as %s;", n.ModulePath, n.As)
		} else {
			w.line("import %s;", n.ModulePath)
		}
	case tree.ImportStar:
		w.line("import * from %s;", n.ModulePath)
	case tree.ImportIdentifiers:
		names := make([]string, len(n.Names))
		for i, nm := range n.Names {
			if nm.Alias != "" && nm.Alias != nm.Name {
				names[i] = nm.Name + " as " + nm.Alias
			} else {
				names[i] = nm.Name
			}
		}
		w.line("import %s from %s;", strings.Join(names, ", "), n.ModulePath)
	default:
		w.errs.Add(diag.New(diag.Internal, n.Location(), "import kind reached source codegen unhandled: %v", n.Kind))
	}
}
