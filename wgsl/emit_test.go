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

package wgsl_test

import (
	"strings"
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
	"github.com/shaderlang/slc/wgsl"
)

// identVar builds a resolved variable reference of the shape Resolve
// leaves behind, mirroring spirv's own test helper of the same name.
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

func declParam(mod *tree.Module, name string, t types.Type) tree.Param {
	idx := mod.AddVariable(&tree.VariableDecl{Name: name, Type: t})
	return tree.Param{Name: name, Type: t, Index: idx}
}

func TestEmitOrdinaryFunctionAdd(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "a", types.F32)
	b := declParam(mod, "b", types.F32)
	ret := &tree.Return{Value: binary(tree.Add, identVar(a.Index, "a", types.F32), identVar(b.Index, "b", types.F32), types.F32)}
	fn := &tree.FunctionDecl{Name: "add", Params: []tree.Param{a, b}, ReturnType: types.F32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, remap, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "empty remap").That(len(remap)).Equals(0)
	assert.For(t, "declares fn add").That(strings.Contains(out, "fn add(a: f32, b: f32) -> f32 {")).IsTrue()
	assert.For(t, "returns the sum").That(strings.Contains(out, "return (a + b);")).IsTrue()
}

func TestEmitFragmentEntryPointStageAttribute(t *testing.T) {
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

	out, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "fragment stage attribute").That(strings.Contains(out, "@fragment")).IsTrue()
	assert.For(t, "location attribute on return").That(strings.Contains(out, "@location(0) vec4<f32>")).IsTrue()
}

func TestEmitComputeWorkgroupSize(t *testing.T) {
	mod := &tree.Module{}
	fn := &tree.FunctionDecl{
		Name:       "cmain",
		ReturnType: types.NoType{},
		Body:       []tree.Statement{&tree.Return{}},
		Attrs:      tree.Attributes{Entry: tree.Compute, HasWorkgroup: true, Workgroup: [3]uint32{8, 8, 1}},
	}
	mod.AddFunction(fn)

	out, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "workgroup size attribute").That(strings.Contains(out, "@compute @workgroup_size(8, 8, 1)")).IsTrue()
	assert.For(t, "no return arrow on void fn").That(strings.Contains(out, "fn cmain() {")).IsTrue()
}

func TestEmitCombinedSamplerSplitsIntoTextureAndSampler(t *testing.T) {
	mod := &tree.Module{}
	samplerType := types.Sampler{Dim: types.Dim2D, Of: types.F32}
	blk := &tree.ExternalDecl{
		Variables: []tree.ExternalVariable{
			{Name: "tex", Type: samplerType, Set: 0, HasSet: true, Binding: 0, HasBinding: true},
		},
	}
	mod.AddExternalBlock(blk)
	blk.Variables[0].Index = mod.AddVariable(&tree.VariableDecl{Name: "tex", Type: samplerType})

	out, remap, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "declares the texture at binding 0").That(strings.Contains(out, "@group(0) @binding(0) var tex: texture_2d<f32>;")).IsTrue()
	assert.For(t, "declares the companion sampler at binding 1").That(strings.Contains(out, "@group(0) @binding(1) var texSampler: sampler;")).IsTrue()
	assert.For(t, "remap records the texture's own binding").That(remap[wgsl.BindingKey{Set: 0, Binding: 0}]).Equals(uint32(0))
}

func TestEmitPushConstantDeclaration(t *testing.T) {
	mod := &tree.Module{}
	st := &tree.StructDecl{Name: "Push", Members: []tree.StructMember{{Name: "scale", Type: types.F32}}}
	mod.AddStruct(st)
	pcType := types.PushConstant{Of: types.Struct{Index: st.Index, Name: "Push"}}
	blk := &tree.ExternalDecl{Variables: []tree.ExternalVariable{{Name: "pc", Type: pcType}}}
	mod.AddExternalBlock(blk)
	blk.Variables[0].Index = mod.AddVariable(&tree.VariableDecl{Name: "pc", Type: pcType})

	allowPushConstants := func(f wgsl.Feature) bool { return f == wgsl.FeaturePushConstants }
	out, _, errs := wgsl.Emit(mod, wgsl.Options{Capabilities: allowPushConstants})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "push constant address space").That(strings.Contains(out, "var<push_constant> pc: Push;")).IsTrue()
	assert.For(t, "no group/binding on push constants").That(strings.Contains(out, "@group")).IsFalse()
}

func TestEmitRejectsFloat64WithoutCapability(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	ret := &tree.Return{Value: inf}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	_, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "rejected before emission").That(len(errs) > 0).IsTrue()
}

func TestEmitPermitsFloat64WithCapability(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	ret := &tree.Return{Value: inf}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	allowAll := func(wgsl.Feature) bool { return true }
	out, _, errs := wgsl.Emit(mod, wgsl.Options{Capabilities: allowAll})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "synthesizes the infinity helper").That(strings.Contains(out, "fn _nzslInfinityf32() -> f32 {")).IsTrue()
	assert.For(t, "calls the helper from the type constant").That(strings.Contains(out, "return _nzslInfinityf32();")).IsTrue()
}

func TestEmitSelectIntrinsicReordersArguments(t *testing.T) {
	mod := &tree.Module{}
	vec3 := types.Vector{Size: 3, Of: types.F32}
	a := declParam(mod, "a", vec3)
	b := declParam(mod, "b", vec3)
	c := declParam(mod, "c", types.Bool)

	sel := &tree.Intrinsic{Intrinsic: tree.IntrSelect, Args: []tree.Expression{
		identVar(a.Index, "a", vec3),
		identVar(b.Index, "b", vec3),
		identVar(c.Index, "c", types.Bool),
	}}
	sel.SetType(vec3)
	ret := &tree.Return{Value: sel}
	fn := &tree.FunctionDecl{Name: "pick", Params: []tree.Param{a, b, c}, ReturnType: vec3, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "select(b, a, widened c)").That(strings.Contains(out, "select(b, a, vec3<bool>(c))")).IsTrue()
}

func TestEmitShiftInsertsUnsignedCastForSignedRHS(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "a", types.I32)
	b := declParam(mod, "b", types.I32)
	shift := binary(tree.ShiftRight, identVar(a.Index, "a", types.I32), identVar(b.Index, "b", types.I32), types.I32)
	ret := &tree.Return{Value: shift}
	fn := &tree.FunctionDecl{Name: "shr", Params: []tree.Param{a, b}, ReturnType: types.I32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "rhs cast to u32").That(strings.Contains(out, "(a >> u32(b))")).IsTrue()
}

func TestEmitStructMemberAttributes(t *testing.T) {
	mod := &tree.Module{}
	st := &tree.StructDecl{Name: "VsOut", Members: []tree.StructMember{
		{Name: "position", Type: types.Vector{Size: 4, Of: types.F32}, HasBuiltin: true, Builtin: tree.VertexPosition},
		{Name: "uv", Type: types.Vector{Size: 2, Of: types.F32}, HasLocation: true, Location: 0},
	}}
	mod.AddStruct(st)

	out, _, errs := wgsl.Emit(mod, wgsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "builtin position member").That(strings.Contains(out, "@builtin(position) position: vec4<f32>,")).IsTrue()
	assert.For(t, "location member").That(strings.Contains(out, "@location(0) uv: vec2<f32>,")).IsTrue()
}
