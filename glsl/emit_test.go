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

package glsl_test

import (
	"strings"
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/glsl"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// identVar builds a resolved variable reference, mirroring wgsl's own
// test helper of the same name.
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

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "version header").That(strings.Contains(out, "#version 450 core")).IsTrue()
	assert.For(t, "declares float add").That(strings.Contains(out, "float add(float a, float b) {")).IsTrue()
	assert.For(t, "returns the sum").That(strings.Contains(out, "return (a + b);")).IsTrue()
}

func TestEmitVectorComparisonLowersToFunctionCalls(t *testing.T) {
	mod := &tree.Module{}
	vec2i := types.Vector{Size: 2, Of: types.I32}
	boolVec2 := types.Vector{Size: 2, Of: types.Bool}
	a := declParam(mod, "vx", vec2i)
	b := declParam(mod, "vy", vec2i)
	eq := binary(tree.CompEq, identVar(a.Index, "vx", vec2i), identVar(b.Index, "vy", vec2i), boolVec2)
	ret := &tree.Return{Value: eq}
	fn := &tree.FunctionDecl{Name: "cmp", Params: []tree.Param{a, b}, ReturnType: boolVec2, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "vector equality lowers to equal()").That(strings.Contains(out, "return equal(vx, vy);")).IsTrue()
}

func TestEmitScalarComparisonKeepsOperator(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "x", types.I32)
	b := declParam(mod, "y", types.I32)
	eq := binary(tree.CompEq, identVar(a.Index, "x", types.I32), identVar(b.Index, "y", types.I32), types.Bool)
	ret := &tree.Return{Value: eq}
	fn := &tree.FunctionDecl{Name: "cmp", Params: []tree.Param{a, b}, ReturnType: types.Bool, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "scalar equality keeps ==").That(strings.Contains(out, "return (x == y);")).IsTrue()
}

func TestEmitFragmentEntryFlattensNonStructIO(t *testing.T) {
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

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "declares in color at location 0").That(strings.Contains(out, "layout(location = 0) in vec4 color;")).IsTrue()
	assert.For(t, "declares fragColor output").That(strings.Contains(out, "layout(location = 0) out vec4 fragColor;")).IsTrue()
	assert.For(t, "void main with no params").That(strings.Contains(out, "void main() {")).IsTrue()
	assert.For(t, "assigns fragColor from the return value").That(strings.Contains(out, "fragColor = color;")).IsTrue()
}

func TestEmitVertexEntryStructIOFlattensWithBuiltinPosition(t *testing.T) {
	mod := &tree.Module{}
	vec4 := types.Vector{Size: 4, Of: types.F32}
	vec2 := types.Vector{Size: 2, Of: types.F32}
	in := &tree.StructDecl{Name: "VertexInput", Members: []tree.StructMember{
		{Name: "position", Type: vec2, HasLocation: true, Location: 0},
	}}
	mod.AddStruct(in)
	out := &tree.StructDecl{Name: "VertexOutput", Members: []tree.StructMember{
		{Name: "clip_position", Type: vec4, HasBuiltin: true, Builtin: tree.VertexPosition},
		{Name: "uv", Type: vec2, HasLocation: true, Location: 0},
	}}
	mod.AddStruct(out)

	inType := types.Struct{Index: in.Index, Name: "VertexInput"}
	outType := types.Struct{Index: out.Index, Name: "VertexOutput"}
	param := declParam(mod, "vin", inType)
	vsOut := declParam(mod, "vsOut", outType)

	ret := &tree.Return{Value: identVar(vsOut.Index, "vsOut", outType)}
	fn := &tree.FunctionDecl{
		Name:       "vs_main",
		Params:     []tree.Param{param},
		ReturnType: outType,
		Body:       []tree.Statement{ret},
		Attrs:      tree.Attributes{Entry: tree.Vertex},
	}
	mod.AddFunction(fn)

	text, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "flattens struct input member").That(strings.Contains(text, "layout(location = 0) in vec2 position;")).IsTrue()
	assert.For(t, "reconstructs the struct param").That(strings.Contains(text, "VertexInput vin = VertexInput(position);")).IsTrue()
	assert.For(t, "flattens non-builtin output member with v_ prefix").That(strings.Contains(text, "layout(location = 0) out vec2 v_uv;")).IsTrue()
	assert.For(t, "builtin output member gets no out declaration").That(strings.Contains(text, "out vec4 clip_position")).IsFalse()
	assert.For(t, "assigns gl_Position from the reconstructed struct's builtin member").That(strings.Contains(text, "gl_Position = _nzslRet.clip_position;")).IsTrue()
}

func TestEmitFragmentEntryFlattensInterpQualifiers(t *testing.T) {
	mod := &tree.Module{}
	vec4 := types.Vector{Size: 4, Of: types.F32}
	in := &tree.StructDecl{Name: "FragIn", Members: []tree.StructMember{
		{Name: "id", Type: types.U32, HasLocation: true, Location: 0, Interp: tree.Flat},
		{Name: "depth", Type: types.F32, HasLocation: true, Location: 1, Interp: tree.Linear},
		{Name: "color", Type: vec4, HasLocation: true, Location: 2},
	}}
	mod.AddStruct(in)
	inType := types.Struct{Index: in.Index, Name: "FragIn"}
	param := declParam(mod, "fin", inType)

	ret := &tree.Return{Value: identVar(param.Index, "color", vec4)}
	fn := &tree.FunctionDecl{
		Name:       "fs_main",
		Params:     []tree.Param{param},
		ReturnType: vec4,
		Body:       []tree.Statement{ret},
		Attrs:      tree.Attributes{Entry: tree.Fragment, HasLocation: true, Location: 0},
	}
	mod.AddFunction(fn)

	text, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "flat qualifier on flat-interpolated member").That(strings.Contains(text, "layout(location = 0) flat in uint id;")).IsTrue()
	assert.For(t, "noperspective qualifier on linear-interpolated member").That(strings.Contains(text, "layout(location = 1) noperspective in float depth;")).IsTrue()
	assert.For(t, "no qualifier on default-interpolated member").That(strings.Contains(text, "layout(location = 2) in vec4 color;")).IsTrue()
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

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "local size layout qualifier").That(strings.Contains(out, "layout(local_size_x = 8, local_size_y = 8, local_size_z = 1) in;")).IsTrue()
	assert.For(t, "void main with no params").That(strings.Contains(out, "void main() {")).IsTrue()
}

func TestEmitSelectIntrinsicUsesMix(t *testing.T) {
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

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "mix(b, a, c)").That(strings.Contains(out, "mix(b, a, c)")).IsTrue()
}

func TestEmitShiftKeepsDirectOperator(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "a", types.I32)
	b := declParam(mod, "b", types.I32)
	shift := binary(tree.ShiftRight, identVar(a.Index, "a", types.I32), identVar(b.Index, "b", types.I32), types.I32)
	ret := &tree.Return{Value: shift}
	fn := &tree.FunctionDecl{Name: "shr", Params: []tree.Param{a, b}, ReturnType: types.I32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "no unsigned cast needed").That(strings.Contains(out, "(a >> b)")).IsTrue()
}

func TestEmitRejectsFloat64WithoutCapability(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	ret := &tree.Return{Value: inf}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	_, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "rejected before emission").That(len(errs) > 0).IsTrue()
}

func TestEmitPermitsFloat64WithCapability(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	ret := &tree.Return{Value: inf}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	allowAll := func(glsl.Feature) bool { return true }
	out, errs := glsl.Emit(mod, glsl.Options{Capabilities: allowAll})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "enables the fp64 extension").That(strings.Contains(out, "#extension GL_ARB_gpu_shader_fp64 : require")).IsTrue()
	assert.For(t, "synthesizes the infinity helper").That(strings.Contains(out, "double _nzslInfinityDouble() {")).IsTrue()
	assert.For(t, "calls the helper from the type constant").That(strings.Contains(out, "return _nzslInfinityDouble();")).IsTrue()
}

func TestEmitPushConstantBlock(t *testing.T) {
	mod := &tree.Module{}
	st := &tree.StructDecl{Name: "Push", Members: []tree.StructMember{{Name: "scale", Type: types.F32}}}
	mod.AddStruct(st)
	pcType := types.PushConstant{Of: types.Struct{Index: st.Index, Name: "Push"}}
	blk := &tree.ExternalDecl{Variables: []tree.ExternalVariable{{Name: "pc", Type: pcType}}}
	mod.AddExternalBlock(blk)
	blk.Variables[0].Index = mod.AddVariable(&tree.VariableDecl{Name: "pc", Type: pcType})

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "push constant layout qualifier").That(strings.Contains(out, "layout(push_constant) uniform Push {")).IsTrue()
	assert.For(t, "instance name").That(strings.Contains(out, "} pc;")).IsTrue()
}

func TestEmitCombinedSamplerDeclaresNativeType(t *testing.T) {
	mod := &tree.Module{}
	samplerType := types.Sampler{Dim: types.Dim2D, Of: types.F32}
	blk := &tree.ExternalDecl{
		Variables: []tree.ExternalVariable{
			{Name: "tex", Type: samplerType, Set: 0, HasSet: true, Binding: 3, HasBinding: true},
		},
	}
	mod.AddExternalBlock(blk)
	blk.Variables[0].Index = mod.AddVariable(&tree.VariableDecl{Name: "tex", Type: samplerType})

	out, errs := glsl.Emit(mod, glsl.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "single combined sampler declaration").That(strings.Contains(out, "layout(set = 0, binding = 3) uniform sampler2D tex;")).IsTrue()
	assert.For(t, "no companion sampler is split out").That(strings.Contains(out, "texSampler")).IsFalse()
}
