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

package spirv_test

import (
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/spirv"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// identVar builds a resolved variable reference of the shape Resolve
// leaves behind: an IdentifierValue tagged with its Module.Variables
// index, type already cached.
func identVar(idx int, name string, t types.Type) *tree.IdentifierValue {
	iv := &tree.IdentifierValue{Category: symbol.Variable, Index: idx, Name: name}
	iv.SetType(t)
	return iv
}

func binary(op tree.BinaryOp, left, right tree.Expression, t types.Type) *tree.Binary {
	b := &tree.Binary{Op: op, Left: left, Right: right}
	b.SetType(t)
	return b
}

// declParam registers one function parameter into the module's flat
// variable table the way Resolve does, returning the Param with its
// Index filled in.
func declParam(mod *tree.Module, name string, t types.Type) tree.Param {
	idx := mod.AddVariable(&tree.VariableDecl{Name: name, Type: t})
	return tree.Param{Name: name, Type: t, Index: idx}
}

func countOp(words []uint32, op spirv.Op) int {
	n := 0
	i := 5 // past the 5-word module header
	for i < len(words) {
		wc := int(words[i] >> 16)
		if wc == 0 {
			break
		}
		if spirv.Op(words[i]&0xFFFF) == op {
			n++
		}
		i += wc
	}
	return n
}

func TestEmitOrdinaryFunctionAdd(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "a", types.F32)
	b := declParam(mod, "b", types.F32)

	ret := &tree.Return{Value: binary(tree.Add, identVar(a.Index, "a", types.F32), identVar(b.Index, "b", types.F32), types.F32)}
	fn := &tree.FunctionDecl{Name: "add", Params: []tree.Param{a, b}, ReturnType: types.F32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "has a module header").That(len(words) >= 5).IsTrue()
	assert.For(t, "magic number").That(words[0]).Equals(uint32(0x07230203))
	assert.For(t, "one OpFunction").That(countOp(words, spirv.OpFunction)).Equals(1)
	assert.For(t, "one OpFAdd").That(countOp(words, spirv.OpFAdd)).Equals(1)
	assert.For(t, "no entry points").That(countOp(words, spirv.OpEntryPoint)).Equals(0)
}

func TestEmitFragmentEntryPointDirectVec4(t *testing.T) {
	mod := &tree.Module{}
	vec4 := types.Vector{Size: 4, Of: types.F32}
	color := declParam(mod, "color", vec4)

	ret := &tree.Return{Value: identVar(color.Index, "color", vec4)}
	fn := &tree.FunctionDecl{
		Name:       "main",
		Params:     []tree.Param{color},
		ReturnType: vec4,
		Body:       []tree.Statement{ret},
		Attrs:      tree.Attributes{Entry: tree.Fragment, HasLocation: true, Location: 0},
	}
	mod.AddFunction(fn)

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "one entry point").That(countOp(words, spirv.OpEntryPoint)).Equals(1)
	assert.For(t, "origin upper left mode").That(countOp(words, spirv.OpExecutionMode)).Equals(1)
	// Two interface variables, one Input (color) and one Output (the
	// return value), plus the Function-storage copy the ordinary function
	// makes of its color parameter.
	assert.For(t, "three OpVariable (two interface, one parameter copy)").That(countOp(words, spirv.OpVariable)).Equals(3)
	assert.For(t, "two OpFunction (inner + wrapper)").That(countOp(words, spirv.OpFunction)).Equals(2)
}

// hasDecoration scans the decoration section for an OpDecorate whose
// decoration-enumerant word equals want, regardless of target.
func hasDecoration(words []uint32, want spirv.Decoration) bool {
	i := 5
	for i < len(words) {
		wc := int(words[i] >> 16)
		if wc == 0 {
			break
		}
		if spirv.Op(words[i]&0xFFFF) == spirv.OpDecorate && spirv.Decoration(words[i+2]) == want {
			return true
		}
		i += wc
	}
	return false
}

// TestEmitInterpFlatStructMemberDecoratesFlat exercises spec §6.3's
// interp(flat) struct member: the Input variable it lowers to must carry
// decoration enumerant 14 (Flat), not some other Decoration value.
func TestEmitInterpFlatStructMemberDecoratesFlat(t *testing.T) {
	mod := &tree.Module{}
	st := types.Struct{Index: 0, Name: "FragIn"}
	mod.AddStruct(&tree.StructDecl{
		Index: 0,
		Name:  "FragIn",
		Members: []tree.StructMember{
			{Name: "id", Type: types.U32, HasLocation: true, Location: 0, Interp: tree.Flat},
		},
	})
	in := declParam(mod, "in", st)

	fn := &tree.FunctionDecl{
		Name:       "main",
		Params:     []tree.Param{in},
		ReturnType: types.NoType{},
		Body:       []tree.Statement{&tree.Return{}},
		Attrs:      tree.Attributes{Entry: tree.Fragment},
	}
	mod.AddFunction(fn)

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "Flat decoration (enumerant 14) emitted").That(hasDecoration(words, spirv.DecorationFlat)).IsTrue()
	assert.For(t, "stale enumerant 39 never emitted").That(hasDecoration(words, spirv.Decoration(39))).IsFalse()
}

// TestEmitInterpLinearStructMemberDecoratesNoPerspective exercises spec
// §6.3's interp(linear) struct member, mirroring wgsl's interpName: it
// must decorate with NoPerspective (enumerant 13) rather than silently
// falling back to SPIR-V's default perspective-correct interpolation.
func TestEmitInterpLinearStructMemberDecoratesNoPerspective(t *testing.T) {
	mod := &tree.Module{}
	st := types.Struct{Index: 0, Name: "FragIn"}
	mod.AddStruct(&tree.StructDecl{
		Index: 0,
		Name:  "FragIn",
		Members: []tree.StructMember{
			{Name: "depth", Type: types.F32, HasLocation: true, Location: 0, Interp: tree.Linear},
		},
	})
	in := declParam(mod, "in", st)

	fn := &tree.FunctionDecl{
		Name:       "main",
		Params:     []tree.Param{in},
		ReturnType: types.NoType{},
		Body:       []tree.Statement{&tree.Return{}},
		Attrs:      tree.Attributes{Entry: tree.Fragment},
	}
	mod.AddFunction(fn)

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "NoPerspective decoration (enumerant 13) emitted").That(hasDecoration(words, spirv.DecorationNoPerspective)).IsTrue()
	assert.For(t, "no Flat decoration emitted").That(hasDecoration(words, spirv.DecorationFlat)).IsFalse()
}

func TestEmitComputeEntryPointWorkgroupSize(t *testing.T) {
	mod := &tree.Module{}
	fn := &tree.FunctionDecl{
		Name:       "cmain",
		ReturnType: types.NoType{},
		Body:       []tree.Statement{&tree.Return{}},
		Attrs:      tree.Attributes{Entry: tree.Compute, HasWorkgroup: true, Workgroup: [3]uint32{8, 8, 1}},
	}
	mod.AddFunction(fn)

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "one entry point").That(countOp(words, spirv.OpEntryPoint)).Equals(1)
	assert.For(t, "one local size mode").That(countOp(words, spirv.OpExecutionMode)).Equals(1)
}

func TestEmitPrivateGlobalInitializer(t *testing.T) {
	mod := &tree.Module{}
	mod.AddVariable(&tree.VariableDecl{
		Name:        "gScale",
		Type:        types.F32,
		Initializer: &tree.Constant{Value: tree.FloatValue(types.F32, 2)},
	})

	words, errs := spirv.Emit(mod)
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "global declared").That(countOp(words, spirv.OpVariable)).Equals(1)
}
