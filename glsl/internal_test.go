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
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestTypeNameRendersCompositesNativeDouble(t *testing.T) {
	w := &Writer{mod: &tree.Module{}}
	cases := []struct {
		name string
		t    types.Type
		want string
	}{
		{"f64 stays double", types.F64, "double"},
		{"vector", types.Vector{Size: 3, Of: types.F32}, "vec3"},
		{"int vector", types.Vector{Size: 2, Of: types.I32}, "ivec2"},
		{"uint vector", types.Vector{Size: 4, Of: types.U32}, "uvec4"},
		{"bool vector", types.Vector{Size: 2, Of: types.Bool}, "bvec2"},
		{"square matrix", types.Matrix{Columns: 4, Rows: 4, Of: types.F32}, "mat4"},
		{"non-square matrix", types.Matrix{Columns: 2, Rows: 3, Of: types.F32}, "mat2x3"},
		{"depth sampler", types.Sampler{Dim: types.Dim2D, Of: types.F32, Depth: true}, "sampler2DShadow"},
		{"storage image", types.Texture{Dim: types.Dim2D, Format: types.FormatRGBA8, Access: types.ReadOnly}, "image2D"},
	}
	for _, c := range cases {
		got := w.typeName(c.t)
		assert.For(t, c.name).That(got).Equals(c.want)
	}
}

func TestArraySuffixRendersFixedAndDynamic(t *testing.T) {
	w := &Writer{mod: &tree.Module{}}
	assert.For(t, "fixed array").That(w.arraySuffix(types.Array{Of: types.F32, Length: 4})).Equals("[4]")
	assert.For(t, "dynarray").That(w.arraySuffix(types.DynArray{Of: types.F32})).Equals("[]")
	assert.For(t, "scalar has no suffix").That(w.arraySuffix(types.F32)).Equals("")
}

func TestVectorComparisonNameCoversAllSixOperators(t *testing.T) {
	cases := map[tree.BinaryOp]string{
		tree.CompEq: "equal", tree.CompNe: "notEqual",
		tree.CompLt: "lessThan", tree.CompLe: "lessThanEqual",
		tree.CompGt: "greaterThan", tree.CompGe: "greaterThanEqual",
	}
	for op, want := range cases {
		assert.For(t, want).That(vectorComparisonName(op)).Equals(want)
	}
}

func TestAccessQualifiersDistinguishReadWriteOnly(t *testing.T) {
	assert.For(t, "read only").That(accessQualifiers(types.ReadOnly)).Equals("readonly")
	assert.For(t, "write only").That(accessQualifiers(types.WriteOnly)).Equals("writeonly")
	assert.For(t, "read write has no qualifier").That(accessQualifiers(types.ReadWrite)).Equals("")
}

func TestBuiltinNameAndWritability(t *testing.T) {
	name, ok := builtinName(tree.VertexPosition)
	assert.For(t, "vertex position maps").That(ok).IsTrue()
	assert.For(t, "vertex position spelling").That(name).Equals("gl_Position")
	assert.For(t, "vertex position is writable").That(builtinWritable(tree.VertexPosition)).IsTrue()

	name, ok = builtinName(tree.VertexIndex)
	assert.For(t, "vertex index spelling").That(name).Equals("gl_VertexIndex")
	assert.For(t, "vertex index is read-only").That(builtinWritable(tree.VertexIndex)).IsFalse()

	_, ok = builtinName(tree.BaseVertex)
	assert.For(t, "base vertex has no glsl builtin by default").That(ok).IsFalse()
}

func TestIntrinsicNameAppliesGlslSpecificOverrides(t *testing.T) {
	assert.For(t, "atan2 collapses to atan").That(intrinsicName(tree.IntrAtan2)).Equals("atan")
	assert.For(t, "texture sample renamed to texture").That(intrinsicName(tree.IntrTextureSample)).Equals("texture")
	assert.For(t, "texture load renamed to texelFetch").That(intrinsicName(tree.IntrTextureLoad)).Equals("texelFetch")
	assert.For(t, "inversesqrt passes through unchanged").That(intrinsicName(tree.IntrInverseSqrt)).Equals("inversesqrt")
	assert.For(t, "dot passes through unchanged").That(intrinsicName(tree.IntrDot)).Equals("dot")
}

func TestScanModuleFindsFloat64AndBindingArrays(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{&tree.Return{Value: inf}}}
	mod.AddFunction(fn)

	blk := &tree.ExternalDecl{Variables: []tree.ExternalVariable{
		{Name: "textures", Type: types.Array{Of: types.Sampler{Dim: types.Dim2D, Of: types.F32}, Length: 4}},
	}}
	mod.AddExternalBlock(blk)

	scan := scanModule(mod)
	assert.For(t, "f64 infinity recorded").That(scan.infinity[types.F64]).IsTrue()
	assert.For(t, "float64 feature recorded").That(scan.features[FeatureFloat64]).IsTrue()
	assert.For(t, "binding array feature recorded").That(scan.features[FeatureBindingArrays]).IsTrue()
	_, ok := scan.check(nil)
	assert.For(t, "nil checker rejects").That(ok).IsFalse()
}

func TestCapitalizeUppercasesFirstRune(t *testing.T) {
	assert.For(t, "float").That(capitalize("float")).Equals("Float")
	assert.For(t, "empty string").That(capitalize("")).Equals("")
}
