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
	"strings"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// typeID returns the id of t's SPIR-V type, declaring it (and every
// type it structurally depends on) the first time it's requested.
// Aliases are resolved first so that two differently-declared aliases to
// the same target share one SPIR-V type id (spec §3.1, §4.5 type cache),
// the same structural-key-cache idiom core/codegen.Types uses for LLVM
// pointer/array/struct types (core/codegen/types.go).
func (m *Module) typeID(mod *tree.Module, t types.Type) uint32 {
	t = types.ResolveAlias(t)
	if id, ok := m.types[t]; ok {
		return id
	}
	id := m.declareType(mod, t)
	m.types[t] = id
	return id
}

func (m *Module) declareType(mod *tree.Module, t types.Type) uint32 {
	switch v := t.(type) {
	case types.NoType:
		id := m.id()
		m.emitType(OpTypeVoid, id)
		return id
	case types.Primitive:
		return m.declarePrimitive(v)
	case types.Vector:
		of := m.typeID(mod, v.Of)
		id := m.id()
		m.emitType(OpTypeVector, id, of, uint32(v.Size))
		return id
	case types.Matrix:
		col := m.typeID(mod, types.Vector{Size: v.Rows, Of: v.Of})
		id := m.id()
		m.emitType(OpTypeMatrix, id, col, uint32(v.Columns))
		return id
	case types.Array:
		of := m.typeID(mod, v.Of)
		lenConst := m.uintConstant(v.Length)
		id := m.id()
		m.emitType(OpTypeArray, id, of, lenConst)
		m.decorate(id, DecorationArrayStride, elementStride(mod, v.Of, types.Std430))
		return id
	case types.DynArray:
		of := m.typeID(mod, v.Of)
		id := m.id()
		m.emitType(OpTypeRuntimeArray, id, of)
		m.decorate(id, DecorationArrayStride, elementStride(mod, v.Of, types.Std430))
		return id
	case types.Struct:
		return m.declareStruct(mod, v.Index, types.Std140)
	case types.Uniform:
		return m.declareStruct(mod, v.Of.Index, types.Std140)
	case types.PushConstant:
		return m.declareStruct(mod, v.Of.Index, types.Std140)
	case types.Storage:
		return m.declareStruct(mod, v.Of.Index, types.Std430)
	case types.Sampler:
		imgOf := m.typeID(mod, v.Of)
		depth := uint32(0)
		if v.Depth {
			depth = 1
		}
		img := m.id()
		// Sampled=1: used with a sampler (spec §3.1 Sampler is a combined
		// image/sampler type, so the image component is always sampled).
		m.emitType(OpTypeImage, img, imgOf, uint32(imageDim(v.Dim)), depth, arrayed(v.Dim), 0, 1, 0 /*Unknown format*/)
		id := m.id()
		m.emitType(OpTypeSampledImage, id, img)
		return id
	case types.Texture:
		of := m.typeID(mod, v.Of)
		id := m.id()
		sampled := uint32(2) // 2: used without a sampler (storage image)
		m.emitType(OpTypeImage, id, of, uint32(imageDim(v.Dim)), 0, arrayed(v.Dim), 0, sampled, uint32(texelFormat(v.Format)))
		return id
	case types.TypeHandle:
		return m.typeID(mod, v.Of)
	default:
		// Function/Method/Intrinsic/Module/NamedExternalBlock never
		// reach codegen as a value's type; they're symbol-table-only.
		panic("spirv: type has no SPIR-V representation: " + t.String())
	}
}

func (m *Module) declarePrimitive(p types.Primitive) uint32 {
	switch p {
	case types.Bool:
		id := m.id()
		m.emitType(OpTypeBool, id)
		return id
	case types.F32:
		id := m.id()
		m.emitType(OpTypeFloat, id, 32)
		return id
	case types.F64:
		id := m.id()
		m.emitType(OpTypeFloat, id, 64)
		return id
	case types.I32:
		id := m.id()
		m.emitType(OpTypeInt, id, 32, 1)
		return id
	case types.U32:
		id := m.id()
		m.emitType(OpTypeInt, id, 32, 0)
		return id
	default:
		panic("spirv: primitive has no runtime representation: " + p.String())
	}
}

func (m *Module) emitType(op Op, id uint32, operands ...uint32) {
	instr := append([]uint32{0, id}, operands...)
	instr[0] = instructionHeader(op, len(instr))
	m.secTypesConsts = append(m.secTypesConsts, instr...)
}

// declareStruct declares an OpTypeStruct with std140 (Uniform/
// PushConstant) or std430 (Storage) derived Offset decorations (spec
// §4.1 layout rules), reusing the module's own types.FieldOffset/
// SizeAlign accumulation (tree.Module.StructSizeAlign) rather than a
// second copy of the layout rules.
func (m *Module) declareStruct(mod *tree.Module, structIndex int, layout types.Layout) uint32 {
	decl := mod.Structs[structIndex]
	memberIDs := make([]uint32, len(decl.Members))
	offsets := make([]uint32, len(decl.Members))
	var cursor, maxAlign uint32
	for i, mem := range decl.Members {
		arraySize := uint32(0)
		if arr, ok := types.ResolveAlias(mem.Type).(types.Array); ok {
			arraySize = arr.Length
			offsets[i], cursor, maxAlign = types.FieldOffset(cursor, maxAlign, arr.Of, arraySize, layout, mod)
		} else {
			offsets[i], cursor, maxAlign = types.FieldOffset(cursor, maxAlign, mem.Type, 0, layout, mod)
		}
		memberIDs[i] = m.typeID(mod, mem.Type)
	}

	id := m.id()
	instr := append([]uint32{0, id}, memberIDs...)
	instr[0] = instructionHeader(OpTypeStruct, len(instr))
	m.secTypesConsts = append(m.secTypesConsts, instr...)

	m.name(id, decl.Name)
	for i, mem := range decl.Members {
		m.memberName(id, uint32(i), mem.Name)
		m.memberDecorate(id, uint32(i), DecorationOffset, offsets[i])
		if mat, ok := types.ResolveAlias(mem.Type).(types.Matrix); ok {
			_, colStride := types.SizeAlign(types.Vector{Size: mat.Rows, Of: mat.Of}, layout, mod)
			m.memberDecorate(id, uint32(i), DecorationColMajor)
			m.memberDecorate(id, uint32(i), DecorationMatrixStride, colStride)
		}
	}
	return id
}

// elementStride returns an array element's byte stride under layout,
// via types.FieldOffset's own arraySize-repetition accumulation rather
// than a second copy of the stride rule.
func elementStride(mod *tree.Module, of types.Type, layout types.Layout) uint32 {
	_, stride, _ := types.FieldOffset(0, 0, of, 1, layout, mod)
	return stride
}

func imageDim(d types.ImageDim) int {
	switch d {
	case types.Dim1D, types.Dim1DArray:
		return 0
	case types.Dim2D, types.Dim2DArray:
		return 1
	case types.Dim3D:
		return 2
	case types.DimCube:
		return 3
	default:
		return 1
	}
}

func arrayed(d types.ImageDim) uint32 {
	if d == types.Dim1DArray || d == types.Dim2DArray {
		return 1
	}
	return 0
}

func texelFormat(f types.ImageFormat) int {
	switch f {
	case types.FormatRGBA8:
		return 1
	case types.FormatRGBA16F:
		return 2
	case types.FormatRGBA32F:
		return 3
	case types.FormatR32F:
		return 4
	case types.FormatR32I:
		return 21
	case types.FormatR32UI:
		return 24
	case types.FormatRG32F:
		return 6
	default:
		return 0
	}
}

// pointerTypeID returns the id of a pointer-to-of type in the given
// storage class, caching on (of, class) since the same pointee type can
// need pointers in more than one storage class (spec §4.5 "resource
// model").
func (m *Module) pointerTypeID(mod *tree.Module, of types.Type, class StorageClass) uint32 {
	of = types.ResolveAlias(of)
	key := pointerKey{of: of, class: class}
	if id, ok := m.pointers[key]; ok {
		return id
	}
	pointee := m.typeID(mod, of)
	id := m.id()
	m.emitType(OpTypePointer, id, uint32(class), pointee)
	m.pointers[key] = id
	return id
}

// functionTypeID returns the id of an OpTypeFunction for the given
// return/parameter types, caching on the flattened signature.
func (m *Module) functionTypeID(mod *tree.Module, ret types.Type, params []types.Type) uint32 {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteString(types.ResolveAlias(p).String())
		sb.WriteByte(';')
	}
	key := funcTypeKey{ret: types.ResolveAlias(ret), params: sb.String()}
	if id, ok := m.funcTypes[key]; ok {
		return id
	}
	retID := m.typeID(mod, ret)
	paramIDs := make([]uint32, len(params))
	for i, p := range params {
		paramIDs[i] = m.pointerTypeID(mod, p, StorageClassFunction)
	}
	id := m.id()
	instr := append([]uint32{0, id, retID}, paramIDs...)
	instr[0] = instructionHeader(OpTypeFunction, len(instr))
	m.secTypesConsts = append(m.secTypesConsts, instr...)
	m.funcTypes[key] = id
	return id
}
