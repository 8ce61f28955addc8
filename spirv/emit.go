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

// externalRef locates the ExternalVariable backing a Module.Variables
// slot, so module-scope emission can tell an ordinary global apart from
// a resource binding that needs a resource storage class and
// DescriptorSet/Binding decorations (spec §4.1 "resource model").
type externalRef struct {
	block *tree.ExternalDecl
	v     *tree.ExternalVariable
}

// Emit assembles mod into a complete SPIR-V binary module (spec §4.5),
// the entry point into this package mirroring core/codegen.Module's
// top-level Build driving per-function codegen (core/codegen/module.go).
func Emit(mod *tree.Module) ([]uint32, diag.List) {
	m := NewModule()
	m.requireCapability(CapabilityShader)
	var errs diag.List

	externals := map[int]externalRef{}
	for _, blk := range mod.ExternalBlocks {
		for i := range blk.Variables {
			v := &blk.Variables[i]
			externals[v.Index] = externalRef{block: blk, v: v}
		}
	}

	localIdx := localVariableIndices(mod)

	globals := map[int]uint32{}
	for i, v := range mod.Variables {
		if localIdx[i] {
			continue
		}
		if ref, ok := externals[i]; ok {
			globals[i] = emitExternalVariable(m, mod, ref)
			continue
		}
		globals[i] = emitPrivateGlobal(m, mod, v)
	}

	// Every function gets its OpFunction id allocated up front so a call
	// to a function declared later in the module (or a recursive call,
	// which no earlier pass rejects) still
	// resolves to a valid id when OpFunctionCall is emitted (spec §4.5).
	funcIDs := make(map[int]uint32, len(mod.Functions))
	for _, fn := range mod.Functions {
		funcIDs[fn.Index] = m.id()
	}

	for _, fn := range mod.Functions {
		fe := newFuncEmitter(m, mod, fn, funcIDs[fn.Index], globals, funcIDs)
		fe.Build()
		errs = append(errs, fe.errs...)
	}

	for _, fn := range mod.EntryPoints() {
		emitEntryPoint(m, mod, fn, funcIDs[fn.Index], &errs)
	}

	return m.Words(), errs
}

// localVariableIndices returns the set of Module.Variables indices
// consumed by some function's own parameters or body-local declarations
// (spec §4.2: parameters and locals share the module's flat variable
// table with true globals, see tree.Param.Index's doc comment). The
// complement of this set, minus the external-resource indices Emit
// handles separately, is the true module-scope global set.
func localVariableIndices(mod *tree.Module) map[int]bool {
	idx := map[int]bool{}
	var walk func([]tree.Statement)
	walk = func(stmts []tree.Statement) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *tree.VariableDecl:
				idx[n.Index] = true
			case *tree.MultiStatement:
				walk(n.Statements)
			case *tree.Scoped:
				walk(n.Body)
			case *tree.Branch:
				for _, c := range n.Clauses {
					walk(c.Body)
				}
				walk(n.Else)
			case *tree.While:
				walk(n.Body)
			case *tree.ForEach:
				idx[n.VarIndex] = true
				walk(n.Body)
			case *tree.ConditionalStatement:
				walk([]tree.Statement{n.Body})
			}
		}
	}
	for _, fn := range mod.Functions {
		for _, p := range fn.Params {
			idx[p.Index] = true
		}
		walk(fn.Body)
	}
	return idx
}

// emitPrivateGlobal declares a true module-scope variable as a Private-
// storage OpVariable (spec §3.2 "module-scope var"). An initializer must
// already be a materialized constant by the time this backend runs
// (ConstantPropagation folds module-scope initializers ahead of
// transform/pipeline's later passes), so it becomes OpVariable's
// optional initializer operand directly rather than a runtime store.
func emitPrivateGlobal(m *Module, mod *tree.Module, v *tree.VariableDecl) uint32 {
	ptrType := m.pointerTypeID(mod, v.Type, StorageClassPrivate)
	id := m.id()
	instr := []uint32{0, ptrType, id, uint32(StorageClassPrivate)}
	if c, ok := v.Initializer.(*tree.Constant); ok {
		instr = append(instr, m.constValueID(c.Value))
	}
	instr[0] = instructionHeader(OpVariable, len(instr))
	m.secGlobals = append(m.secGlobals, instr...)
	m.name(id, v.Name)
	return id
}

// emitExternalVariable declares one resource binding as an OpVariable in
// its resource-specific storage class, decorated with the DescriptorSet/
// Binding pair BindingResolverTransformer has already assigned (spec
// §4.1 "resource model", §6.3 auto_bind).
func emitExternalVariable(m *Module, mod *tree.Module, ref externalRef) uint32 {
	class := storageClassFor(ref.v.Type)
	ptrType := m.pointerTypeID(mod, ref.v.Type, class)
	id := m.id()
	m.secGlobals = append(m.secGlobals, instructionHeader(OpVariable, 4), ptrType, id, uint32(class))

	name := ref.v.Name
	if ref.block.Name != "" {
		name = ref.block.Name + "_" + ref.v.Name
	}
	m.name(id, name)
	m.decorate(id, DecorationDescriptorSet, ref.v.Set)
	m.decorate(id, DecorationBinding, ref.v.Binding)
	if s, ok := types.ResolveAlias(ref.v.Type).(types.Storage); ok && s.Access == types.ReadOnly {
		m.decorate(id, DecorationNonWritable)
	}
	return id
}

// storageClassFor maps a resource-qualified type onto the SPIR-V storage
// class its OpVariable is declared in (spec §3.1 "Uniform, Storage and
// PushConstant are address-space-qualified struct wrappers"; a bare
// Sampler/Texture/TypeHandle resource has no wrapper and always lives in
// UniformConstant).
func storageClassFor(t types.Type) StorageClass {
	switch types.ResolveAlias(t).(type) {
	case types.Uniform:
		return StorageClassUniform
	case types.PushConstant:
		return StorageClassPushConstant
	case types.Storage:
		return StorageClassStorageBuffer
	default:
		return StorageClassUniformConstant
	}
}
