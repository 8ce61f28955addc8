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

package glsl

import (
	"fmt"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// writeBody emits one statement list, mirroring wgsl.Writer.writeBody.
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
			w.line("%s %s%s = %s;", w.typeName(n.Type), n.Name, w.arraySuffix(n.Type), w.exprString(n.Initializer))
		} else {
			w.line("%s %s%s;", w.typeName(n.Type), n.Name, w.arraySuffix(n.Type))
		}
	case *tree.ExpressionStatement:
		w.line("%s;", w.exprString(n.Expr))
	case *tree.Return:
		w.writeReturn(n)
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
		// never reach this stage, mirroring wgsl.Writer.writeStatement's
		// own unreachable default (spec §4.4 pipeline ordering).
		w.errs.Add(diag.New(diag.Internal, s.Location(), "statement kind reached glsl codegen unlowered: %T", s))
	}
}

// writeReturn lowers a Return statement according to w.retInfo: inside
// an ordinary function it keeps its literal `return expr;` form; inside
// an entry function's flattened main() body it instead assigns the
// value into the gl_* builtin, the declared `out` global, or (for a
// struct return) each flattened per-member `out` global in turn, since
// GLSL's main() takes no return value at all.
func (w *Writer) writeReturn(n *tree.Return) {
	if n.Value == nil || (w.retInfo != nil && w.retInfo.kind == returnVoid) {
		w.line("return;")
		return
	}
	if w.retInfo == nil {
		w.line("return %s;", w.exprString(n.Value))
		return
	}
	switch w.retInfo.kind {
	case returnBuiltin, returnNamed:
		w.line("%s = %s;", w.retInfo.target, w.exprString(n.Value))
		w.line("return;")
	case returnStruct:
		tmp := fmt.Sprintf("%sRet", ReservedPrefix)
		w.line("%s %s = %s;", w.typeName(w.retInfo.retType), tmp, w.exprString(n.Value))
		for _, f := range w.retInfo.fields {
			w.line("%s = %s.%s;", f.target, tmp, f.member.Name)
		}
		w.line("return;")
	default:
		w.line("return %s;", w.exprString(n.Value))
	}
}

// writeBranch renders an if/elif/else chain, mirroring
// wgsl.Writer.writeBranch: BranchSplitter has already reduced any n-way
// cascade down to single-clause Branch nodes nested in Else.
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
		w.line("// unroll(%s): left to the driver's shader compiler; GLSL has no core-spec unroll pragma equivalent.", n.Unroll)
	}
	w.line("while (%s) {", w.exprString(n.Cond))
	w.indent++
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

// writeForEach lowers a foreach loop over an array/dynarray to a native
// GLSL for loop (unlike wgsl.Writer.writeForEach's indexed while: GLSL,
// like the source language itself, has a genuine C-style for statement,
// so there is no need to hand-roll the increment as a separate
// statement the way WGSL's simpler while-only control flow requires).
func (w *Writer) writeForEach(n *tree.ForEach) {
	idx := fmt.Sprintf("%sIdx%d", ReservedPrefix, w.nextForEachID())
	of := w.exprString(n.Of)

	var bound, elemType string
	switch arr := types.ResolveAlias(n.Of.Type()).(type) {
	case types.Array:
		bound = fmt.Sprintf("%d", arr.Length)
		elemType = w.typeName(arr.Of)
	case types.DynArray:
		bound = fmt.Sprintf("%s.length()", of) // DynArray's runtime length (a storage-buffer member) via GLSL's array .length().
		elemType = w.typeName(arr.Of)
	default:
		bound = fmt.Sprintf("%s.length()", of)
		elemType = w.typeName(n.Of.Type())
	}

	w.line("for (int %s = 0; %s < %s; %s++) {", idx, idx, bound, idx)
	w.indent++
	w.line("%s %s = %s[%s];", elemType, n.VarName, of, idx)
	w.writeBody(n.Body)
	w.indent--
	w.line("}")
}

func (w *Writer) nextForEachID() int {
	w.forEachCounter++
	return w.forEachCounter
}
