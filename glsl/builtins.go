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

// builtinName maps a tree.BuiltinRole onto its GLSL gl_* spelling (spec
// §6.4), mirroring wgsl.builtinName's role table. Every GLSL builtin is
// a predeclared identifier, not an attribute on a declaration, so unlike
// WGSL's @builtin(...) this table feeds stage-IO flattening rather than
// an attribute renderer: a struct member or bare param/return carrying
// this role is wired directly to the gl_* identifier instead of getting
// its own `in`/`out` declaration.
func builtinName(role tree.BuiltinRole) (name string, ok bool) {
	switch role {
	case tree.VertexPosition:
		return "gl_Position", true
	case tree.VertexIndex:
		return "gl_VertexIndex", true
	case tree.InstanceIndex:
		return "gl_InstanceIndex", true
	case tree.FragCoord:
		return "gl_FragCoord", true
	case tree.FragDepth:
		return "gl_FragDepth", true
	case tree.GlobalInvocationIndices:
		return "gl_GlobalInvocationID", true
	case tree.LocalInvocationIndex:
		return "gl_LocalInvocationIndex", true
	case tree.LocalInvocationIndices:
		return "gl_LocalInvocationID", true
	case tree.WorkgroupIndices:
		return "gl_WorkGroupID", true
	case tree.WorkgroupCount:
		return "gl_NumWorkGroups", true
	default:
		// BaseVertex, BaseInstance, DrawIndex need GL_ARB_shader_draw_parameters
		// (gl_BaseVertexARB etc.); not assumed enabled by this emitter.
		return "", false
	}
}

// builtinWritable reports whether role's gl_* variable is one a shader
// stage writes (gl_Position, gl_FragDepth) as opposed to one it only
// reads (gl_VertexIndex, gl_FragCoord, ...). Stage-IO flattening uses
// this to decide whether a function-return builtin assigns into the
// predeclared variable directly, rather than declaring a fresh `out`.
func builtinWritable(role tree.BuiltinRole) bool {
	switch role {
	case tree.VertexPosition, tree.FragDepth:
		return true
	default:
		return false
	}
}
