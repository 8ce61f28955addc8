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

import "github.com/shaderlang/slc/tree"

// ReservedPrefix marks names this emitter itself generates (the
// infinity/NaN helper functions, split-sampler companion variables): no
// user identifier may collide with it (spec §4.7, SPEC_FULL.md §12
// "reserved-identifier collision avoidance width").
const ReservedPrefix = "_nzsl"

// keywords is the set of WGSL reserved words (W3C WGSL spec, §keywords
// and §reserved words) an identifier must never collide with verbatim.
var keywords = map[string]bool{
	"alias": true, "break": true, "case": true, "const": true,
	"const_assert": true, "continue": true, "continuing": true,
	"default": true, "diagnostic": true, "discard": true, "else": true,
	"enable": true, "false": true, "fn": true, "for": true, "if": true,
	"let": true, "loop": true, "override": true, "requires": true,
	"return": true, "struct": true, "switch": true, "true": true,
	"var": true, "while": true,
	// Type keywords and texture/sampler builtins that are not reserved by
	// the grammar but would shadow a builtin function/type if declared as
	// an identifier; the original NZSL writer escapes these too.
	"array": true, "atomic": true, "bool": true, "f16": true, "f32": true,
	"i32": true, "mat2x2": true, "mat2x3": true, "mat2x4": true,
	"mat3x2": true, "mat3x3": true, "mat3x4": true, "mat4x2": true,
	"mat4x3": true, "mat4x4": true, "ptr": true, "sampler": true,
	"sampler_comparison": true, "texture_1d": true, "texture_2d": true,
	"texture_2d_array": true, "texture_3d": true, "texture_cube": true,
	"texture_cube_array": true, "texture_multisampled_2d": true,
	"texture_storage_1d": true, "texture_storage_2d": true,
	"texture_storage_2d_array": true, "texture_storage_3d": true,
	"texture_depth_2d": true, "texture_depth_2d_array": true,
	"texture_depth_cube": true, "texture_depth_cube_array": true,
	"texture_depth_multisampled_2d": true, "u32": true, "vec2": true,
	"vec3": true, "vec4": true, "void": true,
}

// ReservedWords returns the combined reserved-word set IdentifierTransformer
// should sanitize a module's identifiers against before this package emits
// it: WGSL's own keywords, plus the source language's intrinsic names
// (SPEC_FULL.md §12: "the original also escapes identifiers that collide
// with intrinsic names, not only WGSL keywords").
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
