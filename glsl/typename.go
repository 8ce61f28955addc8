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
	"fmt"

	"github.com/shaderlang/slc/types"
)

// primitiveName renders a primitive the way GLSL spells it. Unlike
// WGSL, GLSL (4.00 core and above) has a native double-precision type,
// so F64 is not degraded here; it is instead gated behind featureScan's
// FeatureFloat64 capability check, which applies to every profile (GLSL
// ES has no double at all).
func primitiveName(p types.Primitive) string {
	switch p.DefaultConcrete() {
	case types.Bool:
		return "bool"
	case types.F32:
		return "float"
	case types.F64:
		return "double"
	case types.I32:
		return "int"
	case types.U32:
		return "uint"
	default:
		return "float"
	}
}

// typeName renders t in GLSL type syntax. mod is needed to resolve
// Struct/Alias indices back to their declared names.
func (w *Writer) typeName(t types.Type) string {
	switch v := types.ResolveAlias(t).(type) {
	case types.Primitive:
		return primitiveName(v)
	case types.Vector:
		return vectorName(v)
	case types.Matrix:
		return matrixName(v)
	case types.Array:
		return w.typeName(v.Of) // array-ness is rendered at the declaration site (name[N]), not in the type name.
	case types.DynArray:
		return w.typeName(v.Of)
	case types.Struct:
		return w.mod.Structs[v.Index].Name
	case types.Sampler:
		return samplerTypeName(v)
	case types.Texture:
		return imageTypeName(v)
	case types.Uniform:
		return w.typeName(v.Of)
	case types.Storage:
		return w.typeName(v.Of)
	case types.PushConstant:
		return w.typeName(v.Of)
	case types.NoType:
		return "void"
	default:
		return "?"
	}
}

// arraySuffix renders the trailing `[N]`/`[]` GLSL appends to a
// declarator name for array-typed declarations (GLSL spells array-ness
// on the declaration, not inside the type name itself, unlike WGSL's
// `array<T, N>`).
func (w *Writer) arraySuffix(t types.Type) string {
	switch v := types.ResolveAlias(t).(type) {
	case types.Array:
		return fmt.Sprintf("[%d]", v.Length)
	case types.DynArray:
		return "[]"
	default:
		return ""
	}
}

func vectorName(v types.Vector) string {
	prefix := ""
	switch v.Of.DefaultConcrete() {
	case types.Bool:
		prefix = "b"
	case types.F64:
		prefix = "d"
	case types.I32:
		prefix = "i"
	case types.U32:
		prefix = "u"
	}
	return fmt.Sprintf("%svec%d", prefix, v.Size)
}

func matrixName(m types.Matrix) string {
	if m.Columns == m.Rows {
		return fmt.Sprintf("mat%d", m.Columns)
	}
	return fmt.Sprintf("mat%dx%d", m.Columns, m.Rows)
}

// samplerTypeName renders a combined texture+sampler as GLSL's native
// combined sampler type (sampler2D, sampler2DShadow, ...) — unlike the
// WGSL backend, nothing here needs splitting into a separate texture and
// sampler declaration (spec §1 "GLSL emission is described only where it
// differs substantively from WGSL"; combined samplers are GLSL's native
// representation, not a WGSL-only accommodation).
func samplerTypeName(s types.Sampler) string {
	dim := samplerDim(s.Dim)
	if s.Depth {
		return fmt.Sprintf("sampler%sShadow", dim)
	}
	prefix := ""
	switch s.Of.DefaultConcrete() {
	case types.I32:
		prefix = "i"
	case types.U32:
		prefix = "u"
	}
	return fmt.Sprintf("%ssampler%s", prefix, dim)
}

func imageTypeName(t types.Texture) string {
	dim := samplerDim(t.Dim)
	prefix := ""
	switch t.Format {
	case types.FormatR32I:
		prefix = "i"
	case types.FormatR32UI:
		prefix = "u"
	}
	return fmt.Sprintf("%simage%s", prefix, dim)
}

func samplerDim(d types.ImageDim) string {
	switch d {
	case types.Dim1D:
		return "1D"
	case types.Dim1DArray:
		return "1DArray"
	case types.Dim2D:
		return "2D"
	case types.Dim2DArray:
		return "2DArray"
	case types.Dim3D:
		return "3D"
	case types.DimCube:
		return "Cube"
	default:
		return "2D"
	}
}

// imageFormatQualifier renders a storage texture's layout(...) format
// qualifier, required on every image declaration or imageLoad parameter
// GLSL does not mark `readonly`/`writeonly` with a relaxed format.
func imageFormatQualifier(f types.ImageFormat) string {
	switch f {
	case types.FormatRGBA8:
		return "rgba8"
	case types.FormatRGBA16F:
		return "rgba16f"
	case types.FormatRGBA32F:
		return "rgba32f"
	case types.FormatR32F:
		return "r32f"
	case types.FormatR32I:
		return "r32i"
	case types.FormatR32UI:
		return "r32ui"
	case types.FormatRG32F:
		return "rg32f"
	default:
		return "rgba8"
	}
}

// accessQualifiers renders a storage texture's access policy as GLSL
// memory qualifiers. Unlike WGSL, GLSL has a genuine `writeonly`.
func accessQualifiers(a types.Access) string {
	switch a {
	case types.ReadOnly:
		return "readonly"
	case types.WriteOnly:
		return "writeonly"
	default:
		return ""
	}
}
