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

package wgsl

import (
	"fmt"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// writeBody emits one statement list as the pretty-printed body of a
// function, loop, or branch clause. Callers are responsible for the
// enclosing braces and indentation level.
func (w *Writer) writeBody(body []tree.Statement) {
	for _, s := range body {
		w.writeStatement(s)
	}
}

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
	case *tree.VariableDecl:
		if n.Initializer != nil {
			w.line("var %s: %s = %s;", n.Name, w.typeName(n.Type), w.exprString(n.Initializer))
		} else {
			w.line("var %s: %s;", n.Name, w.typeName(n.Type))
		}
	case *tree.ExpressionStatement:
		w.line("%s;", w.exprString(n.Expr))
	case *tree.Return:
		if n.Value == nil {
			w.line("return;")
			return
		}
		w.line("return %s;", w.exprString(n.Value))
	case *tree.Discard:
		w.line("discard;")
	case *tree.Break:
		w.line("break;")
	case *tree.Continue:
		w.line("continue;")
	case *tree.Branch:
		w.writeBranch(n)
	case *tree.While:
		w.writeWhile(n)
	case *tree.ForEach:
		w.writeForEach(n)
	default:
		// For/ConditionalStatement/Import/OptionDecl/AliasDecl/ConstDecl
		// never reach this stage: ForToWhile lowers For,
		// ConstantPropagation resolves ConditionalStatement, and the
		// rest are symbol-table-only declarations with no runtime
		// effect (spec §4.4 pipeline ordering) — mirroring
		// spirv.funcEmitter.emitStatement's own unreachable default.
		w.errs.Add(diag.New(diag.Internal, s.Location(), "statement kind reached wgsl codegen unlowered: %T", s))
	}
}

// writeBranch renders an if/elif/else chain. BranchSplitter has already
// reduced any n-way cascade the parser accepted down to single-clause
// Branch nodes nested in Else, so a non-trivial elif chain appears here
// as Branch{Clauses:[c], Else:[Branch{...}]} — writeStatement on the
// nested Else reproduces WGSL's own "else if" chaining without extra
// bookkeeping.
func (w *Writer) writeBranch(n *tree.Branch) {
	for i, c := range n.Clauses {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		w.line("%s (%s) {", kw, w.exprString(c.Cond))
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

func (w *Writer) writeWhile(n *tree.While) {
	if n.HasUnroll {
		w.line("// unroll(%s): WGSL core has no loop-unroll attribute; left to the target compiler's own heuristics.", n.Unroll)
	}
	w.line("while (%s) {", w.exprString(n.Cond))
	w.indent++
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

// writeForEach lowers a foreach loop over an array/dynarray to an
// indexed while loop, WGSL having no native foreach form. A fixed-size
// Array iterates to its compile-time Length; a DynArray (a runtime-sized
// storage-buffer member) iterates to arrayLength(&of).
func (w *Writer) writeForEach(n *tree.ForEach) {
	idx := fmt.Sprintf("%sIdx%d", ReservedPrefix, w.nextForEachID())
	of := w.exprString(n.Of)

	var bound string
	switch arr := types.ResolveAlias(n.Of.Type()).(type) {
	case types.Array:
		bound = fmt.Sprintf("%du", arr.Length)
	case types.DynArray:
		bound = fmt.Sprintf("arrayLength(&%s)", of)
	default:
		bound = fmt.Sprintf("arrayLength(&%s)", of)
	}

	w.line("var %s: u32 = 0u;", idx)
	w.line("while (%s < %s) {", idx, bound)
	w.indent++
	w.line("let %s = %s[%s];", n.VarName, of, idx)
	w.writeBody(n.Body)
	w.line("%s = %s + 1u;", idx, idx)
	w.indent--
	w.line("}")
}

func (w *Writer) nextForEachID() int {
	w.forEachCounter++
	return w.forEachCounter
}
