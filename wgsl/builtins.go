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

// builtinName maps a tree.BuiltinRole onto its WGSL @builtin attribute
// spelling (spec §4.6 "Builtins are mapped through a fixed table (e.g.
// VertexIndex -> vertex_index, FragCoord -> position)"), mirroring
// spirv.builtinDecoration's role table for the SPIR-V side. ok is false
// for a role WGSL has no builtin equivalent for.
func builtinName(role tree.BuiltinRole) (name string, ok bool) {
	switch role {
	case tree.VertexPosition:
		return "position", true
	case tree.VertexIndex:
		return "vertex_index", true
	case tree.InstanceIndex:
		return "instance_index", true
	case tree.FragCoord:
		return "position", true
	case tree.FragDepth:
		return "frag_depth", true
	case tree.GlobalInvocationIndices:
		return "global_invocation_id", true
	case tree.LocalInvocationIndex:
		return "local_invocation_index", true
	case tree.LocalInvocationIndices:
		return "local_invocation_id", true
	case tree.WorkgroupIndices:
		return "workgroup_id", true
	case tree.WorkgroupCount:
		return "num_workgroups", true
	default:
		// BaseVertex, BaseInstance, DrawIndex have no WGSL builtin as of
		// the core spec (they are exposed, if at all, through extensions
		// this emitter does not assume are enabled).
		return "", false
	}
}
