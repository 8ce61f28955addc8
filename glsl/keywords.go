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

import "github.com/shaderlang/slc/tree"

// ReservedPrefix marks names this emitter itself generates (the
// infinity/NaN helper functions, flattened stage-IO globals): no user
// identifier may collide with it, the same convention wgsl.ReservedPrefix
// establishes for its own synthesized names.
const ReservedPrefix = "_nzsl"

// keywords is the set of GLSL reserved words (the Khronos GLSL ES/Core
// spec's "Keywords" and "Reserved Words" sections) an identifier must
// never collide with verbatim.
var keywords = map[string]bool{
	"attribute": true, "const": true, "uniform": true, "varying": true,
	"buffer": true, "shared": true, "coherent": true, "volatile": true,
	"restrict": true, "readonly": true, "writeonly": true, "atomic_uint": true,
	"layout": true, "centroid": true, "flat": true, "smooth": true,
	"noperspective": true, "patch": true, "sample": true, "invariant": true,
	"precise": true, "break": true, "continue": true, "do": true,
	"for": true, "while": true, "switch": true, "case": true,
	"default": true, "if": true, "else": true, "subroutine": true,
	"in": true, "out": true, "inout": true, "discard": true,
	"return": true, "struct": true, "void": true,
	"true": true, "false": true, "precision": true, "highp": true,
	"mediump": true, "lowp": true,
	// Builtin type keywords that double as constructor functions.
	"float": true, "double": true, "int": true, "uint": true, "bool": true,
	"vec2": true, "vec3": true, "vec4": true, "dvec2": true, "dvec3": true,
	"dvec4": true, "bvec2": true, "bvec3": true, "bvec4": true, "ivec2": true,
	"ivec3": true, "ivec4": true, "uvec2": true, "uvec3": true, "uvec4": true,
	"mat2": true, "mat3": true, "mat4": true, "mat2x2": true, "mat2x3": true,
	"mat2x4": true, "mat3x2": true, "mat3x3": true, "mat3x4": true,
	"mat4x2": true, "mat4x3": true, "mat4x4": true, "sampler2D": true,
	"sampler3D": true, "samplerCube": true, "sampler2DArray": true,
	"sampler2DShadow": true, "samplerCubeShadow": true, "image2D": true,
	"image3D": true, "imageCube": true, "main": true,
	// GLSL's own reserved gl_ prefix is handled separately (identifiers
	// spelled gl_* are rejected outright by the grammar, not merely
	// discouraged), so it is not enumerated here.
}

// ReservedWords returns the combined reserved-word set IdentifierTransformer
// should sanitize a module's identifiers against before this package emits
// it: GLSL's own keywords, plus the source language's intrinsic names,
// mirroring wgsl.ReservedWords.
func ReservedWords() map[string]bool {
	out := make(map[string]bool, len(keywords)+64)
	for k := range keywords {
		out[k] = true
	}
	for k := tree.IntrDot; k <= tree.IntrFwidth; k++ {
		out[k.Name()] = true
	}
	return out
}
