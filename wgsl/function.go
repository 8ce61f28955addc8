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
	"strings"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// writeFunction emits one function, as an ordinary `fn` or, when it
// carries an entry(stage) attribute, decorated with the matching
// @vertex/@fragment/@compute stage attribute (spec §4.6; unlike SPIR-V,
// WGSL lets an entry point keep an ordinary parameter list and return
// type instead of routing stage I/O through module-scope interface
// variables). A struct-typed parameter or return carries its own
// per-member @builtin/@location attributes, already emitted by
// writeStruct; a bare scalar/vector parameter or return carries the
// function's own single Attrs.Builtin/Location, mirroring the same
// scalar-vs-struct split spirv.emitParamInput/emitReturnOutputs make.
func (w *Writer) writeFunction(fn *tree.FunctionDecl) {
	if fn.IsEntryPoint() {
		w.writeStageAttributes(fn)
	}

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, w.typeName(p.Type))
	}
	sig := fmt.Sprintf("fn %s(%s)", fn.Name, strings.Join(params, ", "))
	if !isNoType(fn.ReturnType) {
		sig += " -> " + w.returnSignature(fn)
	}
	w.line("%s {", sig)
	w.indent++
	w.writeBody(fn.Body)
	w.indent--
	w.line("}")
	w.raw("\n")
}

func (w *Writer) writeStageAttributes(fn *tree.FunctionDecl) {
	switch fn.Attrs.Entry {
	case tree.Vertex:
		w.line("@vertex")
	case tree.Fragment:
		w.line("@fragment")
		if fn.Attrs.EarlyFragmentTests {
			w.line("@early_depth_test")
		}
		if fn.Attrs.DepthWrite != tree.DepthReplace {
			w.line("// depth_write(%s): no direct WGSL core-spec attribute; left to the host pipeline's depth-compare state.", fn.Attrs.DepthWrite)
		}
	case tree.Compute:
		wg := [3]uint32{1, 1, 1}
		if fn.Attrs.HasWorkgroup {
			wg = fn.Attrs.Workgroup
		}
		w.line("@compute @workgroup_size(%d, %d, %d)", wg[0], wg[1], wg[2])
	}
}

// returnSignature renders the return type, attaching a @builtin/
// @location attribute straight onto the type when the function is a
// scalar/vector-returning entry point (a struct return instead carries
// its attributes on its own members, already emitted by writeStruct).
func (w *Writer) returnSignature(fn *tree.FunctionDecl) string {
	typeName := w.typeName(fn.ReturnType)
	if !fn.IsEntryPoint() {
		return typeName
	}
	if _, ok := types.ResolveAlias(fn.ReturnType).(types.Struct); ok {
		return typeName
	}
	attrs := w.ioAttributes(fn.Attrs.Builtin, fn.Attrs.Builtin != tree.NoBuiltin, fn.Attrs.Location, fn.Attrs.HasLocation, tree.NoInterp)
	if attrs == "" {
		return typeName
	}
	return attrs + " " + typeName
}

// ioAttributes renders the @builtin/@location/@interpolate attribute
// prefix for one piece of stage I/O, shared by struct members and
// scalar entry-point returns.
func (w *Writer) ioAttributes(builtin tree.BuiltinRole, hasBuiltin bool, location uint32, hasLocation bool, interp tree.InterpQualifier) string {
	var parts []string
	switch {
	case hasBuiltin:
		if name, ok := builtinName(builtin); ok {
			parts = append(parts, fmt.Sprintf("@builtin(%s)", name))
		}
	case hasLocation:
		parts = append(parts, fmt.Sprintf("@location(%d)", location))
	}
	if name, ok := interpName(interp); ok {
		parts = append(parts, fmt.Sprintf("@interpolate(%s)", name))
	}
	return strings.Join(parts, " ")
}

func isNoType(t types.Type) bool {
	_, ok := types.ResolveAlias(t).(types.NoType)
	return ok
}
