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
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestArithOpcodePicksKindSpecificInstruction(t *testing.T) {
	cases := []struct {
		name   string
		op     tree.BinaryOp
		scalar types.Primitive
		want   Op
	}{
		{"float add", tree.Add, types.F32, OpFAdd},
		{"signed int add", tree.Add, types.I32, OpIAdd},
		{"unsigned div", tree.Div, types.U32, OpUDiv},
		{"signed div", tree.Div, types.I32, OpSDiv},
		{"float div", tree.Div, types.F32, OpFDiv},
		{"unsigned shift right", tree.ShiftRight, types.U32, OpShiftRightLogical},
		{"signed shift right", tree.ShiftRight, types.I32, OpShiftRightArithmetic},
		{"bool equal", tree.CompEq, types.Bool, OpLogicalEqual},
		{"bool not equal", tree.CompNe, types.Bool, OpLogicalNotEqual},
		{"float less", tree.CompLt, types.F32, OpFOrdLessThan},
		{"unsigned less", tree.CompLt, types.U32, OpULessThan},
		{"signed less", tree.CompLt, types.I32, OpSLessThan},
	}
	for _, c := range cases {
		got, ok := arithOpcode(c.op, c.scalar)
		assert.For(t, c.name+" ok").That(ok).IsTrue()
		assert.For(t, c.name+" opcode").That(got).Equals(c.want)
	}
}

func TestConvertOpcodeSameTypeIsNoOp(t *testing.T) {
	_, ok := convertOpcode(types.F32, types.F32)
	assert.For(t, "same type").That(ok).IsFalse()
}

func TestConvertOpcodeFloatWidening(t *testing.T) {
	op, ok := convertOpcode(types.F32, types.F64)
	assert.For(t, "f32->f64 ok").That(ok).IsTrue()
	assert.For(t, "f32->f64 opcode").That(op).Equals(OpFConvert)
}

func TestConvertOpcodeIntFloatReinterpret(t *testing.T) {
	op, ok := convertOpcode(types.I32, types.U32)
	assert.For(t, "i32->u32 ok").That(ok).IsTrue()
	assert.For(t, "i32->u32 opcode").That(op).Equals(OpBitcast)

	op, ok = convertOpcode(types.I32, types.F32)
	assert.For(t, "i32->f32 ok").That(ok).IsTrue()
	assert.For(t, "i32->f32 opcode").That(op).Equals(OpConvertSToF)
}

func TestScalarOfUnwrapsVectorAndMatrix(t *testing.T) {
	assert.For(t, "vector").That(scalarOf(types.Vector{Size: 3, Of: types.I32})).Equals(types.I32)
	assert.For(t, "matrix").That(scalarOf(types.Matrix{Rows: 3, Columns: 3, Of: types.F32})).Equals(types.F32)
	assert.For(t, "scalar").That(scalarOf(types.U32)).Equals(types.U32)
}

func TestIsScalarType(t *testing.T) {
	assert.For(t, "f32 is scalar").That(isScalarType(types.F32)).IsTrue()
	assert.For(t, "vector is not scalar").That(isScalarType(types.Vector{Size: 2, Of: types.F32})).IsFalse()
}

func TestInfinityOrNaNBitPatterns(t *testing.T) {
	assert.For(t, "f32 infinity").That(infinityOrNaN(types.F32, tree.Infinity)).Equals(uint64(0x7F800000))
	assert.For(t, "f32 nan").That(infinityOrNaN(types.F32, tree.NaN)).Equals(uint64(0x7FC00000))
	assert.For(t, "f64 infinity").That(infinityOrNaN(types.F64, tree.Infinity)).Equals(uint64(0x7FF0000000000000))
}
