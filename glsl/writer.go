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

// Package glsl implements the GLSL text backend (spec §4.7/§6.2: "text;
// version and profile header chosen from parameters"). It shares its
// pretty-printer shape with package wgsl — same Writer/Emit structure,
// same featureScan pre-visitor, same synthesized-helper-function
// treatment of Infinity/NaN — diverging only where GLSL's own semantics
// force it to (spec §1 "GLSL emission is described only where it
// differs substantively from WGSL; its contract is identical in
// shape"): no combined-sampler splitting (GLSL's sampler2D is already
// combined), comparison lowering to equal()/lessThan()-style calls for
// vector operands (spec §8 scenario S3), and whole-function stage-IO
// flattening into global in/out variables since GLSL's entry point is a
// parameterless, non-returning `void main()`.
package glsl

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// Options configures one Emit call.
type Options struct {
	// Version is the GLSL version number placed in the #version header
	// (spec §6.2 "version and profile header chosen from parameters"),
	// e.g. 450 for desktop GLSL or 320 for GLSL ES.
	Version int
	// ES selects the `es` profile token (GLSL ES, used by WebGL/OpenGL
	// ES targets) over desktop GLSL's `core`.
	ES bool
	// Capabilities gates the backend-unsupported-by-default features
	// featureScan discovers, mirroring wgsl.Options.Capabilities. A nil
	// value permits nothing beyond GLSL's unconditional core feature set.
	Capabilities CapabilityChecker
}

// Writer holds the per-Emit-call state the pretty-printer accumulates,
// mirroring wgsl.Writer's shape.
type Writer struct {
	mod    *tree.Module
	out    strings.Builder
	indent int

	scan *featureScan
	errs diag.List

	forEachCounter int
	retInfo        *returnInfo
}

// Emit serializes mod to GLSL text (spec §4.7/§6.2), returning the text
// and any diagnostics. A non-empty diag.List means the returned text is
// not meaningful — the feature-gate check runs before any text is
// written, mirroring wgsl.Emit's own "failure is reported as an error
// before emission" contract.
func Emit(mod *tree.Module, opts Options) (string, diag.List) {
	w := &Writer{mod: mod}
	w.scan = scanModule(mod)
	if f, ok := w.scan.check(opts.Capabilities); !ok {
		w.errs.Add(diag.New(diag.UnsupportedBackendFeature, diag.Location{}, "module uses %s, which the target GLSL profile does not permit", f))
		return "", w.errs
	}

	w.writeHeader(opts)
	w.writeConstantHelpers()
	for _, s := range mod.Structs {
		w.writeStruct(s)
	}
	w.writeExternals()
	for _, fn := range mod.Functions {
		w.writeFunction(fn)
	}
	return w.out.String(), w.errs
}

func (w *Writer) line(format string, args ...interface{}) {
	w.out.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *Writer) raw(s string) { w.out.WriteString(s) }

// writeHeader emits the #version/profile line and any extension
// directives featureScan's findings require (spec §6.2).
func (w *Writer) writeHeader(opts Options) {
	version := opts.Version
	if version == 0 {
		version = 450
	}
	profile := "core"
	if opts.ES {
		profile = "es"
	}
	w.line("#version %d %s", version, profile)
	if w.scan.features[FeatureBindingArrays] {
		w.line("#extension GL_EXT_nonuniform_qualifier : require")
	}
	if w.scan.features[FeatureFloat64] {
		w.line("#extension GL_ARB_gpu_shader_fp64 : require")
	}
	w.raw("\n")
}

// writeConstantHelpers synthesizes _nzslInfinity<T>/_nzslNaN<T> for
// every floating primitive featureScan found an Infinity/NaN
// type-constant of, mirroring wgsl.Writer.writeConstantHelpers (same
// rationale: routing the special value through a non-const function
// call avoids relying on a constant folder's behavior on 1.0/0.0).
func (w *Writer) writeConstantHelpers() {
	needsInfinity := map[string]bool{}
	needsNaN := map[string]bool{}
	var order []string
	for _, p := range w.scan.floatTypesNeedingHelpers() {
		t := primitiveName(p)
		if !needsInfinity[t] && !needsNaN[t] {
			order = append(order, t)
		}
		needsInfinity[t] = needsInfinity[t] || w.scan.infinity[p]
		needsNaN[t] = needsNaN[t] || w.scan.nan[p]
	}

	for _, t := range order {
		cap := capitalize(t)
		w.line("%s ratio%s(%s n, %s d) {", t, cap, t, t)
		w.indent++
		w.line("return n / d;")
		w.indent--
		w.line("}")
		w.raw("\n")
		if needsInfinity[t] {
			w.line("%s %sInfinity%s() {", t, ReservedPrefix, cap)
			w.indent++
			w.line("return ratio%s(1.0, 0.0);", cap)
			w.indent--
			w.line("}")
			w.raw("\n")
		}
		if needsNaN[t] {
			w.line("%s %sNaN%s() {", t, ReservedPrefix, cap)
			w.indent++
			w.line("return ratio%s(0.0, 0.0);", cap)
			w.indent--
			w.line("}")
			w.raw("\n")
		}
	}
}

// capitalize upper-cases the first rune of s, used to build a
// PascalCase suffix for a synthesized helper function's name from a
// lowercase GLSL type spelling ("float" -> "Float").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (w *Writer) writeStruct(s *tree.StructDecl) {
	w.line("struct %s {", s.Name)
	w.indent++
	for _, m := range s.Members {
		w.line("%s%s %s%s;", interpQualifierPrefix(m.Interp), w.typeName(m.Type), m.Name, w.arraySuffix(m.Type))
	}
	w.indent--
	w.line("};")
	w.raw("\n")
}

// writeExternals declares every resource binding. Unlike wgsl's
// writeExternals, no sampler splitting is needed (spec §1): a combined
// sampler declares as a single native sampler2D/... binding.
func (w *Writer) writeExternals() {
	for _, blk := range w.mod.ExternalBlocks {
		for i := range blk.Variables {
			v := &blk.Variables[i]
			w.writeExternalVariable(v)
		}
	}
}
