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
	"strings"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// returnKind classifies how an entry function's Return statements must
// be lowered, since GLSL's main() has no return value at all: every
// stage output is a side effect on a global (spec §1 "GLSL emission is
// described only where it differs substantively from WGSL").
type returnKind int

const (
	returnVoid returnKind = iota
	returnBuiltin
	returnNamed
	returnStruct
)

// structFieldOut is one flattened member of a struct-typed entry return:
// target is the gl_* builtin name or the declared `out` variable name
// the member's value is copied into.
type structFieldOut struct {
	member tree.StructMember
	target string
}

// returnInfo records how writeReturn lowers a Return inside the entry
// function currently being emitted. Set by declareEntryOutputs and
// consulted by writeStatement; nil while emitting an ordinary function,
// where Return keeps its literal `return expr;` form.
type returnInfo struct {
	kind    returnKind
	target  string // for returnBuiltin/returnNamed
	fields  []structFieldOut
	retType types.Type
}

func (w *Writer) writeFunction(fn *tree.FunctionDecl) {
	if fn.IsEntryPoint() {
		w.writeEntryFunction(fn)
		return
	}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %s%s", w.typeName(p.Type), p.Name, w.arraySuffix(p.Type))
	}
	ret := "void"
	if !isNoType(fn.ReturnType) {
		ret = w.typeName(fn.ReturnType)
	}
	w.line("%s %s(%s) {", ret, fn.Name, strings.Join(params, ", "))
	w.indent++
	w.writeBody(fn.Body)
	w.indent--
	w.line("}")
	w.raw("\n")
}

func isNoType(t types.Type) bool {
	_, ok := types.ResolveAlias(t).(types.NoType)
	return ok
}

// writeEntryFunction lowers one entry point to GLSL's `void main()`
// form: stage-prologue layout qualifiers, flattened `in`/`out` globals
// for every parameter and the return value, a local reconstruction of
// any struct parameter from its flattened globals, and struct-return
// Return statements rewritten to per-member global assignments.
func (w *Writer) writeEntryFunction(fn *tree.FunctionDecl) {
	switch fn.Attrs.Entry {
	case tree.Fragment:
		if fn.Attrs.EarlyFragmentTests {
			w.line("layout(early_fragment_tests) in;")
		}
		if name, ok := depthLayoutName(fn.Attrs.DepthWrite); ok {
			w.line("layout(%s) out float gl_FragDepth;", name)
		}
	case tree.Compute:
		wg := [3]uint32{1, 1, 1}
		if fn.Attrs.HasWorkgroup {
			wg = fn.Attrs.Workgroup
		}
		w.line("layout(local_size_x = %d, local_size_y = %d, local_size_z = %d) in;", wg[0], wg[1], wg[2])
	}

	recon := w.declareEntryInputs(fn)
	ret := w.declareEntryOutputs(fn)

	w.line("void main() {")
	w.indent++
	for i, p := range fn.Params {
		if expr, ok := recon[i]; ok {
			w.line("%s %s = %s;", w.typeName(p.Type), p.Name, expr)
		}
	}
	prevRet := w.retInfo
	w.retInfo = ret
	w.writeBody(fn.Body)
	w.retInfo = prevRet
	w.indent--
	w.line("}")
	w.raw("\n")
}

// depthLayoutName renders the depth_write attribute as GLSL's native
// gl_FragDepth redeclaration layout qualifier (depth_greater/depth_less/
// depth_unchanged), a genuine GLSL capability WGSL's core spec has no
// equivalent for (see wgsl.Writer.writeStageAttributes's comment
// fallback for the same attribute; DESIGN.md documents the divergence).
func depthLayoutName(d tree.DepthWrite) (string, bool) {
	switch d {
	case tree.DepthGreater:
		return "depth_greater", true
	case tree.DepthLess:
		return "depth_less", true
	case tree.DepthUnchanged:
		return "depth_unchanged", true
	default:
		return "", false
	}
}

// declareEntryInputs flattens every parameter of an entry function into
// `in` globals (or direct gl_* builtin references), emitting the
// declarations and returning, per parameter index needing one, the
// constructor expression that reassembles a struct parameter from its
// flattened members. A non-struct parameter is declared under its own
// bare name, the same name every IdentifierValue referencing it already
// resolves to, so it needs no reconstruction entry.
func (w *Writer) declareEntryInputs(fn *tree.FunctionDecl) map[int]string {
	recon := map[int]string{}
	var nextLocation uint32
	for i, p := range fn.Params {
		if st, ok := types.ResolveAlias(p.Type).(types.Struct); ok {
			decl := w.mod.Structs[st.Index]
			args := make([]string, len(decl.Members))
			for mi, m := range decl.Members {
				args[mi] = w.declareEntryMember(m, "in", &nextLocation)
			}
			recon[i] = fmt.Sprintf("%s(%s)", decl.Name, strings.Join(args, ", "))
			continue
		}
		w.line("layout(location = %d) in %s %s%s;", nextLocation, w.typeName(p.Type), p.Name, w.arraySuffix(p.Type))
		nextLocation++
	}
	return recon
}

// declareEntryMember emits (when needed) one flattened struct member's
// `in`/`out` global declaration and returns the identifier its value is
// read from or written to: a gl_* builtin name needs no declaration at
// all, and an `out` member is prefixed v_ to keep it from colliding with
// an `in` global of the same bare name when multiple stages are emitted
// into the same translation unit (grounded on the gogpu/naga GLSL
// backend's own v_-prefix convention for flattened struct outputs).
func (w *Writer) declareEntryMember(m tree.StructMember, qualifier string, nextLocation *uint32) string {
	if m.HasBuiltin {
		if name, ok := builtinName(m.Builtin); ok {
			return name
		}
	}
	name := m.Name
	if qualifier == "out" {
		name = "v_" + m.Name
	}
	loc := *nextLocation
	if m.HasLocation {
		loc = m.Location
	}
	w.line("layout(location = %d) %s%s %s %s%s;", loc, interpQualifierPrefix(m.Interp), qualifier, w.typeName(m.Type), name, w.arraySuffix(m.Type))
	*nextLocation = loc + 1
	return name
}

// interpQualifierPrefix renders a struct member's interpolation
// qualifier as a GLSL qualifier keyword (spec §6.3, mirroring
// wgsl.interpName's @interpolate mapping onto GLSL's own flat/
// noperspective storage qualifiers), or "" when the default
// (perspective, center) applies and no keyword is needed.
func interpQualifierPrefix(i tree.InterpQualifier) string {
	switch i {
	case tree.Flat:
		return "flat "
	case tree.Linear:
		return "noperspective "
	default:
		return ""
	}
}

// declareEntryOutputs flattens an entry function's return value into
// `out` globals (or direct gl_* builtin writes), returning the
// returnInfo writeReturn consults to lower every Return statement in
// the function body accordingly.
func (w *Writer) declareEntryOutputs(fn *tree.FunctionDecl) *returnInfo {
	if isNoType(fn.ReturnType) {
		return &returnInfo{kind: returnVoid}
	}
	if st, ok := types.ResolveAlias(fn.ReturnType).(types.Struct); ok {
		decl := w.mod.Structs[st.Index]
		var nextLocation uint32
		fields := make([]structFieldOut, len(decl.Members))
		for i, m := range decl.Members {
			fields[i] = structFieldOut{member: m, target: w.declareEntryMember(m, "out", &nextLocation)}
		}
		return &returnInfo{kind: returnStruct, fields: fields, retType: fn.ReturnType}
	}
	if fn.Attrs.Builtin != tree.NoBuiltin {
		if name, ok := builtinName(fn.Attrs.Builtin); ok && builtinWritable(fn.Attrs.Builtin) {
			return &returnInfo{kind: returnBuiltin, target: name}
		}
	}
	name := fmt.Sprintf("%sOut", ReservedPrefix)
	if fn.Attrs.Entry == tree.Fragment {
		name = "fragColor"
	}
	loc := fn.Attrs.Location
	w.line("layout(location = %d) out %s %s;", loc, w.typeName(fn.ReturnType), name)
	return &returnInfo{kind: returnNamed, target: name}
}
