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

package types_test

import (
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/types"
)

func TestResolveAlias(t *testing.T) {
	inner := types.Vector{Size: 3, Of: types.F32}
	a1 := types.Alias{Index: 0, Name: "Color", Target: inner}
	a2 := types.Alias{Index: 1, Name: "RGB", Target: a1}

	assert.For(t, "resolve a1").That(types.ResolveAlias(a1)).Equals(inner)
	assert.For(t, "resolve a2").That(types.ResolveAlias(a2)).Equals(inner)
}

func TestAliasEqualityIgnoresIndex(t *testing.T) {
	inner := types.Vector{Size: 4, Of: types.F32}
	a1 := types.Alias{Index: 0, Name: "A", Target: inner}
	a2 := types.Alias{Index: 1, Name: "B", Target: inner}

	if !types.Equal(a1, a2) {
		t.Fatalf("aliases to the same target type must compare equal regardless of index/name")
	}
	if !types.Equal(a1, inner) {
		t.Fatalf("an alias must compare equal to its resolved target")
	}
}

func TestStructEqualityByIndex(t *testing.T) {
	s0 := types.Struct{Index: 0, Name: "Light"}
	s0b := types.Struct{Index: 0, Name: "DifferentDisplayName"}
	s1 := types.Struct{Index: 1, Name: "Light"}

	if !types.Equal(s0, s0b) {
		t.Fatalf("structs with the same index must be equal regardless of Name")
	}
	if types.Equal(s0, s1) {
		t.Fatalf("structs with different indices must not be equal")
	}
}

func TestWrapUnwrapExternal(t *testing.T) {
	s := types.Struct{Index: 3, Name: "Globals"}
	u := types.Uniform{Of: s}

	if got := types.UnwrapExternal(u); !types.Equal(got, s) {
		t.Fatalf("UnwrapExternal(Uniform) = %v, want %v", got, s)
	}
	idx, ok := types.ResolveStructIndex(u)
	assert.For(t, "resolve struct index ok").That(ok).IsTrue()
	assert.For(t, "resolve struct index").That(idx).Equals(3)

	rewrapped := types.WrapExternal(s, types.Storage{Of: s, Access: types.ReadWrite})
	st, ok := rewrapped.(types.Storage)
	assert.For(t, "rewrap kind").That(ok).IsTrue()
	assert.For(t, "rewrap access").That(st.Access).Equals(types.ReadWrite)
}

func TestImplicitNeverSurvives(t *testing.T) {
	cases := []types.Type{
		types.ImplicitArray{Of: types.F32},
		types.ImplicitVector{Of: types.F32},
		types.ImplicitMatrix{Of: types.F32},
	}
	for _, c := range cases {
		if !types.IsImplicit(c) {
			t.Errorf("%v: expected IsImplicit", c)
		}
	}
	if types.IsImplicit(types.Vector{Size: 3, Of: types.F32}) {
		t.Errorf("a concrete Vector must not report as implicit")
	}
}

func TestLayoutVec3AlignsTo16UnderStd140(t *testing.T) {
	size, align := types.SizeAlign(types.Vector{Size: 3, Of: types.F32}, types.Std140, nil)
	assert.For(t, "vec3 size").That(size).Equals(uint32(12))
	assert.For(t, "vec3 align").That(align).Equals(uint32(16))
}

func TestLayoutArrayStrideFloor(t *testing.T) {
	arr := types.Array{Of: types.F32, Length: 4}

	std140Size, _ := types.SizeAlign(arr, types.Std140, nil)
	assert.For(t, "std140 array size").That(std140Size).Equals(uint32(16 * 4))

	std430Size, _ := types.SizeAlign(arr, types.Std430, nil)
	assert.For(t, "std430 array size").That(std430Size).Equals(uint32(4 * 4))
}

func TestFieldOffsetAccumulates(t *testing.T) {
	var cursor, maxAlign uint32
	off1, cursor, maxAlign := types.FieldOffset(cursor, maxAlign, types.F32, 0, types.Std140, nil)
	off2, cursor, maxAlign := types.FieldOffset(cursor, maxAlign, types.Vector{Size: 3, Of: types.F32}, 0, types.Std140, nil)
	size := types.StructSize(cursor, maxAlign)

	assert.For(t, "off1").That(off1).Equals(uint32(0))
	assert.For(t, "off2").That(off2).Equals(uint32(16)) // vec3 aligns to 16
	assert.For(t, "struct size").That(size).Equals(uint32(32))
}
