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

// Package compiler is the top-level entry point (spec §1/§5): it drives
// the transformation executor over a parsed tree.Module with a
// caller-chosen pass selection, then emits to whichever backends the
// caller requested. A single Compile call is a pure function of
// (module, options) — spec §5 "a single compile is a pure function of
// (source, options, module-resolver)" — and reentrant across concurrent
// calls as long as distinct Options.Context values are used, the same
// guarantee transform.Executor itself gives (transform/executor.go).
//
// Grounded on gapil/compiler.Compile's shape (gapil/compiler/compiler.go):
// a package-level Compile(input, settings) (*Program, error) function
// that defaults unset Settings fields, builds in stages, and returns a
// single result value plus an error — here an (Artifacts, diag.List)
// pair instead, matching this module's (result, diag.List) convention
// used throughout (parse.ErrorList, transform.Executor.Run) rather than
// a single Go error.
package compiler

import (
	"context"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/glsl"
	"github.com/shaderlang/slc/source"
	"github.com/shaderlang/slc/spirv"
	"github.com/shaderlang/slc/transform"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/wgsl"
)

// Compile runs the transformation pipeline opts.Passes selects against
// mod, then emits to every backend set in opts.Targets. It halts and
// returns on the first pass that reports an error (spec §4.3/§7), the
// same way transform.Executor.Run does; no emitter runs against a tree
// that failed its pipeline.
func Compile(ctx context.Context, mod *tree.Module, opts Options) (Artifacts, diag.List) {
	passes := Pipeline(opts.Resolver, normalizePasses(opts.Passes))

	exec := transform.NewExecutor(passes...)
	if errs := exec.Run(ctx, mod, opts.Context); errs.HasErrors() {
		return Artifacts{}, errs
	}

	var out Artifacts
	var errs diag.List

	if opts.Targets&TargetSPIRV != 0 {
		words, perrs := spirv.Emit(mod)
		errs = append(errs, perrs...)
		out.SPIRV = words
	}
	if opts.Targets&TargetWGSL != 0 {
		text, remap, perrs := wgsl.Emit(mod, opts.WGSL)
		errs = append(errs, perrs...)
		out.WGSL, out.WGSLRemap = text, remap
	}
	if opts.Targets&TargetGLSL != 0 {
		text, perrs := glsl.Emit(mod, opts.GLSL)
		errs = append(errs, perrs...)
		out.GLSL = text
	}
	if opts.Targets&TargetSource != 0 {
		text, perrs := source.Emit(mod, opts.Source)
		errs = append(errs, perrs...)
		out.SourceText = text
	}

	return out, errs
}

// normalizePasses always includes PassResolve: no pass after the first
// and no emitter can run against an unresolved tree, so a caller leaving
// it unset (a zero-value PassSet, e.g. from forgetting to set it) gets
// the one pass every compile needs rather than a silently empty
// pipeline that every subsequent pass/emitter would then panic against.
func normalizePasses(set PassSet) PassSet {
	return set | PassResolve
}
