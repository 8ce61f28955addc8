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

import "github.com/shaderlang/slc/tree"

// builtinDecoration maps a tree.BuiltinRole onto the BuiltIn decoration
// enumerant this backend emits for it (spec §6.4, referenced from
// tree.BuiltinRole's doc comment). ok is false for a role with no SPIR-V
// BuiltIn equivalent for this target (none currently; kept for symmetry
// with wgsl.builtinName, which does have WGSL-only roles).
func builtinDecoration(role tree.BuiltinRole) (b BuiltIn, ok bool) {
	switch role {
	case tree.VertexPosition:
		return BuiltInPosition, true
	case tree.VertexIndex:
		return BuiltInVertexIndex, true
	case tree.InstanceIndex:
		return BuiltInInstanceIndex, true
	case tree.BaseVertex:
		return BuiltInBaseVertex, true
	case tree.BaseInstance:
		return BuiltInBaseInstance, true
	case tree.DrawIndex:
		return BuiltInDrawIndex, true
	case tree.FragCoord:
		return BuiltInFragCoord, true
	case tree.FragDepth:
		return BuiltInFragDepth, true
	case tree.GlobalInvocationIndices:
		return BuiltInGlobalInvocationId, true
	case tree.LocalInvocationIndex:
		return BuiltInLocalInvocationIndex, true
	case tree.LocalInvocationIndices:
		return BuiltInLocalInvocationId, true
	case tree.WorkgroupIndices:
		return BuiltInWorkgroupId, true
	case tree.WorkgroupCount:
		return BuiltInNumWorkgroups, true
	default:
		return 0, false
	}
}

// executionModeForDepthWrite maps a fragment entry point's depth_write attribute
// enumerant onto its SPIR-V execution mode (spec §6.3, §9 Open Question:
// "depth_write" decision recorded in DESIGN.md — DepthReplace is the
// source default and needs no execution mode at all since ordinary
// stores to gl_FragDepth already replace it).
func executionModeForDepthWrite(d tree.DepthWrite) (ExecutionMode, bool) {
	switch d {
	case tree.DepthGreater:
		return ExecutionModeDepthGreater, true
	case tree.DepthLess:
		return ExecutionModeDepthLess, true
	case tree.DepthUnchanged:
		return ExecutionModeDepthUnchanged, true
	default:
		return 0, false
	}
}
