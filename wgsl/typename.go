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
	"fmt"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// primitiveName renders a primitive the way WGSL spells it. Untyped
// literal pseudo-types must never reach this emitter (LiteralTransformer
// + ValidationTransformer guarantee that), so they fall back to their
// DefaultConcrete spelling rather than panicking on input a prior pass
// failed to normalize.
func primitiveName(p types.Primitive) string {
	switch p.DefaultConcrete() {
	case types.Bool:
		return "bool"
	case types.F32:
		return "f32"
	case types.F64:
		return "f32" // WGSL has no f64; Float64 use is gated by featureScan's capability check before emission is attempted.
	case types.I32:
		return "i32"
	case types.U32:
		return "u32"
	default:
		return "f32"
	}
}

// typeName renders t in WGSL type syntax (spec §4.6). mod is needed to
// resolve Struct/Alias indices back to their declared names.
func (w *Writer) typeName(t types.Type) string {
	switch v := types.ResolveAlias(t).(type) {
	case types.Primitive:
		return primitiveName(v)
	case types.Vector:
		return fmt.Sprintf("vec%d<%s>", v.Size, primitiveName(v.Of))
	case types.Matrix:
		return fmt.Sprintf("mat%dx%d<%s>", v.Columns, v.Rows, primitiveName(v.Of))
	case types.Array:
		return fmt.Sprintf("array<%s, %d>", w.typeName(v.Of), v.Length)
	case types.DynArray:
		return fmt.Sprintf("array<%s>", w.typeName(v.Of))
	case types.Struct:
		return w.mod.Structs[v.Index].Name
	case types.Sampler:
		if v.Depth {
			return "texture_depth_" + samplerDim(v.Dim)
		}
		return fmt.Sprintf("texture_%s<%s>", samplerDim(v.Dim), primitiveName(v.Of))
	case types.Texture:
		return fmt.Sprintf("texture_storage_%s<%s, %s>", samplerDim(v.Dim), texelFormatName(v.Format), accessName(v.Access))
	case types.Uniform:
		return w.typeName(v.Of)
	case types.Storage:
		return w.typeName(v.Of)
	case types.PushConstant:
		return w.typeName(v.Of)
	case types.NoType:
		return ""
	default:
		return "?"
	}
}

func samplerDim(d types.ImageDim) string {
	switch d {
	case types.Dim1D:
		return "1d"
	case types.Dim1DArray:
		return "1d_array"
	case types.Dim2D:
		return "2d"
	case types.Dim2DArray:
		return "2d_array"
	case types.Dim3D:
		return "3d"
	case types.DimCube:
		return "cube"
	default:
		return "2d"
	}
}

func texelFormatName(f types.ImageFormat) string {
	switch f {
	case types.FormatRGBA8:
		return "rgba8unorm"
	case types.FormatRGBA16F:
		return "rgba16float"
	case types.FormatRGBA32F:
		return "rgba32float"
	case types.FormatR32F:
		return "r32float"
	case types.FormatR32I:
		return "r32sint"
	case types.FormatR32UI:
		return "r32uint"
	case types.FormatRG32F:
		return "rg32float"
	default:
		return "rgba8unorm"
	}
}

// accessName renders a storage texture's access policy. WGSL does not
// support write-only storage textures as of the core spec, so WriteOnly
// degrades to read_write (SPEC_FULL.md §12, mirroring WgslWriter.cpp's
// "WGSL does not support write only storage bindings so readwrite will
// do just fine").
func accessName(a types.Access) string {
	switch a {
	case types.ReadOnly:
		return "read"
	case types.WriteOnly:
		return "read_write"
	default:
		return "read_write"
	}
}

// interpName renders a struct member's interpolation qualifier as a
// WGSL @interpolate attribute argument, or "" when the default
// (perspective, center) applies and no attribute is needed.
func interpName(i tree.InterpQualifier) (string, bool) {
	switch i {
	case tree.Flat:
		return "flat", true
	case tree.Linear:
		return "linear", true
	case tree.Perspective:
		return "", false
	default:
		return "", false
	}
}
