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

package tree

import "github.com/shaderlang/slc/types"

// BuiltinRole enumerates the built-in variable roles of spec §6.4. Each
// maps to a backend-specific name or decoration; see spirv.builtinDecoration
// and wgsl.builtinName.
type BuiltinRole int

const (
	NoBuiltin BuiltinRole = iota
	BaseInstance
	BaseVertex
	DrawIndex
	FragCoord
	FragDepth
	GlobalInvocationIndices
	InstanceIndex
	LocalInvocationIndex
	LocalInvocationIndices
	VertexIndex
	VertexPosition
	WorkgroupCount
	WorkgroupIndices
)

func (b BuiltinRole) String() string {
	names := [...]string{
		"none", "base_instance", "base_vertex", "draw_index", "frag_coord",
		"frag_depth", "global_invocation_indices", "instance_index",
		"local_invocation_index", "local_invocation_indices",
		"vertex_index", "vertex_position", "workgroup_count",
		"workgroup_indices",
	}
	if int(b) < 0 || int(b) >= len(names) {
		return "?"
	}
	return names[b]
}

// InterpQualifier enumerates the interpolation qualifiers a struct
// member can carry (spec §3.3).
type InterpQualifier int

const (
	NoInterp InterpQualifier = iota
	Flat
	Linear
	Perspective
)

func (i InterpQualifier) String() string {
	switch i {
	case Flat:
		return "flat"
	case Linear:
		return "linear"
	case Perspective:
		return "perspective"
	default:
		return ""
	}
}

// Stage enumerates the shader stages an entry-point function can target
// (spec §6.3 entry(enum: vertex|fragment|compute)).
type Stage int

const (
	NoStage Stage = iota
	Vertex
	Fragment
	Compute
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Compute:
		return "compute"
	default:
		return "none"
	}
}

// DepthWrite enumerates the depth_write attribute's enumerants (spec
// §6.3, §9 Open Question). Replace is the source's default and maps to
// no SPIR-V execution mode (see DESIGN.md Open Question decision).
type DepthWrite int

const (
	DepthReplace DepthWrite = iota
	DepthGreater
	DepthLess
	DepthUnchanged
)

func (d DepthWrite) String() string {
	switch d {
	case DepthGreater:
		return "greater"
	case DepthLess:
		return "less"
	case DepthUnchanged:
		return "unchanged"
	default:
		return "replace"
	}
}

// Unroll enumerates the unroll attribute's enumerants.
type Unroll int

const (
	UnrollHint Unroll = iota
	UnrollAlways
	UnrollNever
)

func (u Unroll) String() string {
	switch u {
	case UnrollAlways:
		return "always"
	case UnrollNever:
		return "never"
	default:
		return "hint"
	}
}

// Attributes holds the subset of spec §6.3's enumerated attribute set
// that applies to declarations (functions, external variables, struct
// members). Not every field applies to every decl kind; zero values mean
// "not specified".
type Attributes struct {
	AutoBinding        bool
	AutoBindingSet     bool
	Author             string
	Binding            uint32
	HasBinding         bool
	Builtin            BuiltinRole
	Cond               string // option name gating this declaration
	DepthWrite         DepthWrite
	Description        string
	EarlyFragmentTests bool
	Entry              Stage
	Interp             InterpQualifier
	Layout             types.Layout
	HasLayout          bool
	Location           uint32
	HasLocation        bool
	Set                uint32
	HasSet             bool
	Tag                string
	License            string
	Unroll             Unroll
	Workgroup          [3]uint32
	HasWorkgroup       bool
}
