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
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestSplitSamplersLinearProbesPastCollision(t *testing.T) {
	mod := &tree.Module{}
	samplerType := types.Sampler{Dim: types.Dim2D, Of: types.F32}
	blk := &tree.ExternalDecl{
		Variables: []tree.ExternalVariable{
			// Declared (and therefore reserved) before the sampler, so its
			// binding 1 is already taken by the time tex's companion
			// sampler looks for a slot, forcing the linear probe past it.
			{Name: "other", Type: types.F32, Set: 0, Binding: 1, Index: 0},
			{Name: "tex", Type: samplerType, Set: 0, Binding: 0, Index: 1},
		},
	}
	mod.AddExternalBlock(blk)

	plans, remap := splitSamplers(mod)
	assert.For(t, "other keeps its own binding").That(plans[0].binding).Equals(uint32(1))
	assert.For(t, "texture keeps its own binding").That(plans[1].binding).Equals(uint32(0))
	assert.For(t, "companion sampler probes past the collision").That(plans[1].samplerBinding).Equals(uint32(2))
	assert.For(t, "remap records both original bindings").That(len(remap)).Equals(2)
	assert.For(t, "input module bindings are untouched").That(blk.Variables[1].Binding).Equals(uint32(0))
}

func TestSplitSamplersSkipsPushConstants(t *testing.T) {
	mod := &tree.Module{}
	pcType := types.PushConstant{Of: types.Struct{Index: 0, Name: "Push"}}
	blk := &tree.ExternalDecl{Variables: []tree.ExternalVariable{{Name: "pc", Type: pcType, Index: 0}}}
	mod.AddExternalBlock(blk)

	plans, remap := splitSamplers(mod)
	assert.For(t, "no plan for a push constant").That(len(plans)).Equals(0)
	assert.For(t, "no remap entry for a push constant").That(len(remap)).Equals(0)
}

func TestScanModuleFindsFloat64AndInfinity(t *testing.T) {
	mod := &tree.Module{}
	inf := &tree.TypeConstant{Of: types.F64, Const: tree.Infinity}
	inf.SetType(types.F64)
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F64, Body: []tree.Statement{&tree.Return{Value: inf}}}
	mod.AddFunction(fn)

	scan := scanModule(mod)
	assert.For(t, "f64 infinity recorded").That(scan.infinity[types.F64]).IsTrue()
	assert.For(t, "float64 feature recorded").That(scan.features[FeatureFloat64]).IsTrue()
	_, ok := scan.check(nil)
	assert.For(t, "nil checker rejects").That(ok).IsFalse()
}

func TestScanModuleFindsConservativeDepthAndEarlyFragmentTests(t *testing.T) {
	mod := &tree.Module{}
	fn := &tree.FunctionDecl{
		Name:       "fs",
		ReturnType: types.NoType{},
		Body:       []tree.Statement{&tree.Return{}},
		Attrs:      tree.Attributes{Entry: tree.Fragment, DepthWrite: tree.DepthGreater, EarlyFragmentTests: true},
	}
	mod.AddFunction(fn)

	scan := scanModule(mod)
	assert.For(t, "conservative depth recorded").That(scan.features[FeatureConservativeDepth]).IsTrue()
	assert.For(t, "early fragment tests recorded").That(scan.features[FeatureEarlyFragmentTests]).IsTrue()
}

func TestTypeNameRendersCompositesAndDegradesF64(t *testing.T) {
	w := &Writer{mod: &tree.Module{}}
	cases := []struct {
		name string
		t    types.Type
		want string
	}{
		{"f64 degrades to f32", types.F64, "f32"},
		{"vector", types.Vector{Size: 3, Of: types.F32}, "vec3<f32>"},
		{"matrix", types.Matrix{Columns: 4, Rows: 4, Of: types.F32}, "mat4x4<f32>"},
		{"fixed array", types.Array{Of: types.F32, Length: 4}, "array<f32, 4>"},
		{"dynarray", types.DynArray{Of: types.F32}, "array<f32>"},
		{"depth sampler", types.Sampler{Dim: types.Dim2D, Of: types.F32, Depth: true}, "texture_depth_2d"},
		{"storage texture", types.Texture{Dim: types.Dim2D, Format: types.FormatRGBA8, Access: types.ReadOnly}, "texture_storage_2d<rgba8unorm, read>"},
	}
	for _, c := range cases {
		got := w.typeName(c.t)
		assert.For(t, c.name).That(got).Equals(c.want)
	}
}

func TestAccessNameDegradesWriteOnlyToReadWrite(t *testing.T) {
	assert.For(t, "read only").That(accessName(types.ReadOnly)).Equals("read")
	assert.For(t, "write only degrades").That(accessName(types.WriteOnly)).Equals("read_write")
	assert.For(t, "read write").That(accessName(types.ReadWrite)).Equals("read_write")
}

func TestBuiltinNameCoversCoreRoles(t *testing.T) {
	name, ok := builtinName(tree.VertexIndex)
	assert.For(t, "vertex index maps").That(ok).IsTrue()
	assert.For(t, "vertex index spelling").That(name).Equals("vertex_index")

	_, ok = builtinName(tree.BaseVertex)
	assert.For(t, "base vertex has no wgsl builtin").That(ok).IsFalse()
}

func TestIntrinsicNameAppliesOverridesOnly(t *testing.T) {
	assert.For(t, "inverse sqrt overridden").That(intrinsicName(tree.IntrInverseSqrt)).Equals("inverseSqrt")
	assert.For(t, "texture size renamed to textureDimensions").That(intrinsicName(tree.IntrTextureSize)).Equals("textureDimensions")
	assert.For(t, "dot passes through unchanged").That(intrinsicName(tree.IntrDot)).Equals("dot")
}
