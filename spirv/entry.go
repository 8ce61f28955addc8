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

package spirv

import (
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// emitEntryPoint wraps an already-built ordinary function in a thin,
// parameterless "main"-style function that talks to the Input/Output
// interface globals SPIR-V requires of an entry point (spec §6.3, §4.5
// "entry points with interfaces"): stage I/O in this language is plain
// function parameters and a return value, but SPIR-V shader stages
// communicate through module-scope variables decorated with a BuiltIn
// or Location, so the wrapper is where that shape gets bridged, once
// per entry point, leaving the entry function itself an ordinary
// callable (spec §4.5).
func emitEntryPoint(m *Module, mod *tree.Module, fn *tree.FunctionDecl, innerID uint32, errs *diag.List) {
	model, ok := executionModelFor(fn.Attrs.Entry)
	if !ok {
		errs.Add(diag.New(diag.Internal, fn.Location(), "entry point %s has no execution model for stage %s", fn.Name, fn.Attrs.Entry))
		return
	}

	var body []uint32
	var iface []uint32
	emit := func(op Op, operands ...uint32) {
		instr := append([]uint32{0}, operands...)
		instr[0] = instructionHeader(op, len(instr))
		body = append(body, instr...)
	}
	emitResult := func(op Op, typeID uint32, operands ...uint32) uint32 {
		id := m.id()
		instr := append([]uint32{0, typeID, id}, operands...)
		instr[0] = instructionHeader(op, len(instr))
		body = append(body, instr...)
		return id
	}

	argIDs := make([]uint32, len(fn.Params))
	for i, p := range fn.Params {
		argIDs[i] = emitParamInput(m, mod, p, emitResult, &iface)
	}

	voidTypeID := m.typeID(mod, types.NoType{})
	retIsVoid := isVoidType(fn.ReturnType)
	retTypeID := voidTypeID
	if !retIsVoid {
		retTypeID = m.typeID(mod, fn.ReturnType)
	}
	callOperands := append([]uint32{innerID}, argIDs...)
	resultVal := emitResult(OpFunctionCall, retTypeID, callOperands...)

	emitReturnOutputs(m, mod, fn, resultVal, retIsVoid, emitResult, emit, &iface)
	emit(OpReturn)

	funcTypeID := m.functionTypeID(mod, types.NoType{}, nil)
	wrapperID := m.id()
	header := []uint32{instructionHeader(OpFunction, 5), voidTypeID, wrapperID, 0, funcTypeID}
	m.name(wrapperID, fn.Name)

	entryLabel := m.id()
	full := append(header, instructionHeader(OpLabel, 2), entryLabel)
	full = append(full, body...)
	full = append(full, instructionHeader(OpFunctionEnd, 1))
	m.secFunctions = append(m.secFunctions, full...)

	nameWords := encodeString(fn.Name)
	epInstr := append([]uint32{0, uint32(model), wrapperID}, nameWords...)
	epInstr = append(epInstr, iface...)
	epInstr[0] = instructionHeader(OpEntryPoint, len(epInstr))
	m.secEntryPoints = append(m.secEntryPoints, epInstr...)

	switch fn.Attrs.Entry {
	case tree.Fragment:
		m.secExecModes = append(m.secExecModes, instructionHeader(OpExecutionMode, 3), wrapperID, uint32(ExecutionModeOriginUpperLeft))
		if mode, ok := executionModeForDepthWrite(fn.Attrs.DepthWrite); ok {
			m.secExecModes = append(m.secExecModes, instructionHeader(OpExecutionMode, 3), wrapperID, uint32(ExecutionModeDepthReplacing))
			m.secExecModes = append(m.secExecModes, instructionHeader(OpExecutionMode, 3), wrapperID, uint32(mode))
		}
	case tree.Compute:
		if fn.Attrs.HasWorkgroup {
			wg := fn.Attrs.Workgroup
			m.secExecModes = append(m.secExecModes,
				instructionHeader(OpExecutionMode, 6), wrapperID, uint32(ExecutionModeLocalSize), wg[0], wg[1], wg[2],
			)
		}
	}
}

func executionModelFor(stage tree.Stage) (ExecutionModel, bool) {
	switch stage {
	case tree.Vertex:
		return ExecutionModelVertex, true
	case tree.Fragment:
		return ExecutionModelFragment, true
	case tree.Compute:
		return ExecutionModelGLCompute, true
	default:
		return 0, false
	}
}

func isVoidType(t types.Type) bool {
	_, ok := types.ResolveAlias(t).(types.NoType)
	return ok
}

// emitParamInput materializes one entry-point parameter's value from
// Input-storage interface variables: one per member for a struct-typed
// parameter (the common case — a dedicated vertex/fragment input
// struct, spec §3.3), or a single variable for a bare scalar/vector
// parameter.
func emitParamInput(m *Module, mod *tree.Module, p tree.Param, emitResult func(Op, uint32, ...uint32) uint32, iface *[]uint32) uint32 {
	if st, ok := types.ResolveAlias(p.Type).(types.Struct); ok {
		decl := mod.Structs[st.Index]
		memberVals := make([]uint32, len(decl.Members))
		for i, mem := range decl.Members {
			varID := declareInterfaceVar(m, mod, mem.Type, StorageClassInput, mem.Builtin, mem.HasBuiltin, mem.Location, mem.HasLocation, mem.Interp, mem.Name)
			*iface = append(*iface, varID)
			memTypeID := m.typeID(mod, mem.Type)
			memberVals[i] = emitResult(OpLoad, memTypeID, varID)
		}
		structTypeID := m.typeID(mod, p.Type)
		return emitResult(OpCompositeConstruct, structTypeID, memberVals...)
	}
	varID := declareInterfaceVar(m, mod, p.Type, StorageClassInput, tree.NoBuiltin, false, 0, false, tree.NoInterp, p.Name)
	*iface = append(*iface, varID)
	typeID := m.typeID(mod, p.Type)
	return emitResult(OpLoad, typeID, varID)
}

// emitReturnOutputs mirrors emitParamInput for the return side: a
// struct-typed return value is unpacked member by member into Output
// variables, a scalar/vector return gets a single Output variable
// decorated from the function's own attributes (e.g. a fragment shader
// returning vec4 with an implicit Location(0) color output).
func emitReturnOutputs(m *Module, mod *tree.Module, fn *tree.FunctionDecl, resultVal uint32, retIsVoid bool, emitResult func(Op, uint32, ...uint32) uint32, emit func(Op, ...uint32), iface *[]uint32) {
	if retIsVoid {
		return
	}
	if st, ok := types.ResolveAlias(fn.ReturnType).(types.Struct); ok {
		decl := mod.Structs[st.Index]
		for i, mem := range decl.Members {
			memTypeID := m.typeID(mod, mem.Type)
			val := emitResult(OpCompositeExtract, memTypeID, resultVal, uint32(i))
			varID := declareInterfaceVar(m, mod, mem.Type, StorageClassOutput, mem.Builtin, mem.HasBuiltin, mem.Location, mem.HasLocation, mem.Interp, mem.Name)
			*iface = append(*iface, varID)
			emit(OpStore, varID, val)
		}
		return
	}
	varID := declareInterfaceVar(m, mod, fn.ReturnType, StorageClassOutput, fn.Attrs.Builtin, fn.Attrs.Builtin != tree.NoBuiltin, fn.Attrs.Location, fn.Attrs.HasLocation, tree.NoInterp, fn.Name+"_out")
	*iface = append(*iface, varID)
	emit(OpStore, varID, resultVal)
}

// declareInterfaceVar declares one Input/Output OpVariable, decorated
// with either its BuiltIn role or its Location (the two are mutually
// exclusive in practice: a builtin variable names its role instead of a
// numbered slot, spec §6.4).
func declareInterfaceVar(m *Module, mod *tree.Module, t types.Type, class StorageClass, builtin tree.BuiltinRole, hasBuiltin bool, location uint32, hasLocation bool, interp tree.InterpQualifier, name string) uint32 {
	ptrType := m.pointerTypeID(mod, t, class)
	id := m.id()
	m.secGlobals = append(m.secGlobals, instructionHeader(OpVariable, 4), ptrType, id, uint32(class))
	m.name(id, name)
	switch {
	case hasBuiltin:
		if b, ok := builtinDecoration(builtin); ok {
			m.decorate(id, DecorationBuiltIn, uint32(b))
		}
	case hasLocation:
		m.decorate(id, DecorationLocation, location)
	}
	switch interp {
	case tree.Flat:
		m.decorate(id, DecorationFlat)
	case tree.Linear:
		m.decorate(id, DecorationNoPerspective)
	}
	return id
}
