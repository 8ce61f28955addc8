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

package types

// Layout selects one of the four field-layout rule sets of spec §4.1.
type Layout int

const (
	Std140 Layout = iota
	Std430
	Scalar
	Packed
)

func (l Layout) String() string {
	switch l {
	case Std140:
		return "std140"
	case Std430:
		return "std430"
	case Scalar:
		return "scalar"
	case Packed:
		return "packed"
	default:
		return "?"
	}
}

// StructSizer resolves the natural size/alignment of a struct referenced
// by index, used by register_struct_field when a nested struct is a
// member of another struct's layout. Implemented by the tree's struct
// table.
type StructSizer interface {
	// StructSizeAlign returns the (size, alignment) in bytes of the
	// struct at index under the given layout.
	StructSizeAlign(index int, layout Layout) (size, align uint32)
}

// SizeAlign returns the natural (size, alignment) in bytes for a scalar
// or vector/matrix type, not accounting for any layout's array-stride or
// struct-rounding rules (those are applied by FieldOffset below). structs
// delegate to lookup.
func SizeAlign(t Type, layout Layout, lookup StructSizer) (size, align uint32) {
	switch v := ResolveAlias(t).(type) {
	case Primitive:
		s := v.SizeInBytes()
		if layout == Packed {
			return s, 1
		}
		return s, s
	case Vector:
		compSize := v.Of.SizeInBytes()
		total := compSize * uint32(v.Size)
		if layout == Packed {
			return total, 1
		}
		align := total
		if v.Size == 3 {
			// vec3 rounds its alignment up to vec4 under every layout
			// except packed (spec §4.1 std140/std430 rules; scalar
			// layout keeps natural component alignment but still packs
			// the 4th lane's worth of size for vec3, matching the
			// source compiler's scalar-block behavior).
			align = compSize * 4
		}
		return total, align
	case Matrix:
		// A matrix is laid out as Columns column-vectors, each
		// vec{Rows} aligned per the column vector's own rule.
		colSize, colAlign := SizeAlign(Vector{Size: v.Rows, Of: v.Of}, layout, lookup)
		colStride := colSize
		if layout == Std140 || layout == Std430 {
			colStride = roundUp(colSize, colAlign)
		}
		return colStride * uint32(v.Columns), colAlign
	case Array:
		elemSize, elemAlign := SizeAlign(v.Of, layout, lookup)
		stride := arrayStride(elemSize, elemAlign, layout)
		return stride * v.Length, arrayAlign(elemAlign, layout)
	case Struct:
		if lookup == nil {
			return 0, 1
		}
		return lookup.StructSizeAlign(v.Index, layout)
	case Uniform:
		return SizeAlign(v.Of, layout, lookup)
	case Storage:
		return SizeAlign(v.Of, layout, lookup)
	case PushConstant:
		return SizeAlign(v.Of, layout, lookup)
	default:
		return 0, 1
	}
}

func roundUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	if r := v % align; r != 0 {
		return v + (align - r)
	}
	return v
}

// arrayStride returns the per-element byte stride of an array under
// layout, given its element's own (size, alignment):
//   - std140: max(elemAlign, 16), size rounded up to that stride — the
//     "16-byte stride minimum" of spec §4.1.
//   - std430: elemAlign, no 16-byte floor.
//   - scalar/packed: elemAlign (natural / 1-byte respectively).
func arrayStride(elemSize, elemAlign uint32, layout Layout) uint32 {
	switch layout {
	case Std140:
		stride := elemAlign
		if stride < 16 {
			stride = 16
		}
		return roundUp(elemSize, stride)
	case Std430:
		return roundUp(elemSize, elemAlign)
	default: // Scalar, Packed
		return roundUp(elemSize, elemAlign)
	}
}

func arrayAlign(elemAlign uint32, layout Layout) uint32 {
	if layout == Std140 && elemAlign < 16 {
		return 16
	}
	return elemAlign
}

// FieldOffset appends a field of type t (optionally repeated arraySize
// times, 0 meaning "not an array") to a running struct layout and returns
// its byte offset, updating cursor and returning the new cursor and the
// struct's running max-member-alignment (needed by the caller to compute
// the struct's own final size/alignment once all fields are registered,
// per spec §4.1's "struct members round up to max member alignment").
func FieldOffset(cursor, maxAlign uint32, t Type, arraySize uint32, layout Layout, lookup StructSizer) (offset, newCursor, newMaxAlign uint32) {
	fieldType := t
	size, align := SizeAlign(fieldType, layout, lookup)
	if arraySize > 0 {
		stride := arrayStride(size, align, layout)
		align = arrayAlign(align, layout)
		size = stride * arraySize
	}
	offset = roundUp(cursor, align)
	newCursor = offset + size
	newMaxAlign = maxAlign
	if align > newMaxAlign {
		newMaxAlign = align
	}
	return offset, newCursor, newMaxAlign
}

// StructSize finalizes a struct's total size once every field has been
// registered via FieldOffset, rounding up to the struct's own max member
// alignment (spec §4.1).
func StructSize(cursor, maxAlign uint32) uint32 {
	if maxAlign == 0 {
		return cursor
	}
	return roundUp(cursor, maxAlign)
}
