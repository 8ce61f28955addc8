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

package compiler

import (
	"github.com/shaderlang/slc/glsl"
	"github.com/shaderlang/slc/source"
	"github.com/shaderlang/slc/transform"
	"github.com/shaderlang/slc/wgsl"
)

// Target selects which backend(s) a Compile call emits to (spec §6.2).
// More than one bit may be set: a single resolved/lowered tree can feed
// every requested backend, since emitters are read-only consumers (spec
// §2 "emitters are read-only consumers").
type Target uint8

const (
	TargetSPIRV Target = 1 << iota
	TargetWGSL
	TargetGLSL
	TargetSource
)

// Options configures one Compile call: the pass selection, the pass
// context every pass shares, the module resolver, and the set of
// backends to emit to with their own per-backend options (spec §6.1
// "Options", "Backend parameters").
type Options struct {
	// Targets selects which backend(s) to emit (bitwise-or of Target
	// values). A zero value emits nothing beyond running the pipeline —
	// useful for a caller that only wants diagnostics.
	Targets Target

	// Passes selects which pass groups to run (spec §6.1 "pass bitset").
	// Scenario S7's "with constant propagation off" case clears
	// PassOptimize; a debug/round-trip compile targeting only
	// TargetSource typically clears PassTargetRequired too (spec §8 S1
	// runs only Resolve + ConstantPropagation).
	Passes PassSet

	// Resolver fetches imported module sources (spec §5 "Module
	// resolver"). Required whenever the module being compiled has
	// imports; Resolve fails with a diagnostic if one is needed and
	// none is configured.
	Resolver transform.ModuleResolver

	// Context carries option bindings, the shader-stage filter for dead
	// code elimination, and identifier-sanitization settings, shared
	// read-only across every pass in the run (spec §4.3).
	Context *transform.Context

	SPIRV  SPIRVOptions
	WGSL   wgsl.Options
	GLSL   glsl.Options
	Source source.Options
}

// SPIRVOptions configures the SPIR-V backend. The spirv package itself
// takes no Options today (spec §4.5's debug-name emission is
// unconditional); this struct exists so a caller configures the SPIR-V
// target the same uniform way as the text backends, and so a future
// debug-level knob on spirv.Emit has somewhere to live without another
// signature change to Options.
type SPIRVOptions struct{}

// Artifacts collects every backend's output from one Compile call. Only
// the fields for Targets actually requested are populated.
type Artifacts struct {
	SPIRV []uint32

	WGSL       string
	WGSLRemap  map[wgsl.BindingKey]uint32
	GLSL       string
	SourceText string
}
