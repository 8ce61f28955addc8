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
	"math"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// boolConstant returns the id of a cached OpConstantTrue/OpConstantFalse.
func (m *Module) boolConstant(v bool) uint32 {
	key := constKey{of: types.Bool, bits: 0}
	if v {
		key.bits = 1
	}
	if id, ok := m.consts[key]; ok {
		return id
	}
	typeID := m.typeID(nil, types.Bool)
	id := m.id()
	op := OpConstantFalse
	if v {
		op = OpConstantTrue
	}
	m.emitConstant(op, typeID, id)
	m.consts[key] = id
	return id
}

// emitConstant writes a constant-defining instruction, whose operand
// order is (ResultType, ResultId, Literal...) — the reverse of a type
// declaration's (ResultId, Operand...), per SPIR-V's instruction layout
// (spec §4.5).
func (m *Module) emitConstant(op Op, typeID, id uint32, literals ...uint32) {
	instr := append([]uint32{0, typeID, id}, literals...)
	instr[0] = instructionHeader(op, len(instr))
	m.secTypesConsts = append(m.secTypesConsts, instr...)
}

// uintConstant returns the id of a cached u32 OpConstant, used for array
// lengths and similar non-negative literals.
func (m *Module) uintConstant(v uint32) uint32 {
	return m.scalarConstant(types.U32, uint64(v))
}

// intConstant returns the id of a cached i32 OpConstant.
func (m *Module) intConstant(v int64) uint32 {
	return m.scalarConstant(types.I32, uint64(uint32(v)))
}

// floatConstant returns the id of a cached f32 OpConstant.
func (m *Module) floatConstant(v float64) uint32 {
	bits := uint64(math.Float32bits(float32(v)))
	return m.scalarConstant(types.F32, bits)
}

// doubleConstant returns the id of a cached f64 OpConstant (two words).
func (m *Module) doubleConstant(v float64) uint32 {
	return m.scalarConstant(types.F64, math.Float64bits(v))
}

func (m *Module) scalarConstant(of types.Primitive, bits uint64) uint32 {
	key := constKey{of: of, bits: bits}
	if id, ok := m.consts[key]; ok {
		return id
	}
	typeID := m.typeID(nil, of)
	id := m.id()
	if of == types.F64 {
		lo := uint32(bits)
		hi := uint32(bits >> 32)
		m.emitConstant(OpConstant, typeID, id, lo, hi)
	} else {
		m.emitConstant(OpConstant, typeID, id, uint32(bits))
	}
	m.consts[key] = id
	return id
}

// constValueID materializes a tree.ConstValue as a SPIR-V constant id
// (spec §4.5, used wherever ConstantPropagation/LiteralTransformer has
// already folded an expression to a literal by the time this backend
// sees it).
func (m *Module) constValueID(v tree.ConstValue) uint32 {
	of := v.Of.DefaultConcrete()
	switch {
	case of == types.Bool:
		return m.boolConstant(v.Bool)
	case of == types.F64:
		return m.doubleConstant(v.Float)
	case of.IsFloat():
		return m.floatConstant(v.Float)
	case of == types.U32:
		return m.scalarConstant(types.U32, uint64(uint32(v.Int)))
	default:
		return m.intConstant(v.Int)
	}
}

// compositeConstant builds an OpConstantComposite from already-materialized
// component ids (spec §3.2 ConstantArray / aggregate literals).
func (m *Module) compositeConstant(mod *tree.Module, t types.Type, componentIDs []uint32) uint32 {
	typeID := m.typeID(mod, t)
	id := m.id()
	instr := append([]uint32{0, typeID, id}, componentIDs...)
	instr[0] = instructionHeader(OpConstantComposite, len(instr))
	m.secTypesConsts = append(m.secTypesConsts, instr...)
	return id
}
