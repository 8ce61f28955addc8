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

// Package wgsl implements the WGSL text backend (spec §4.6): a
// pretty-printer over the resolved tree that splits combined samplers,
// remaps bindings, maps built-ins through a fixed table, and synthesizes
// helper functions for constructs WGSL has no direct literal for. It is
// grounded line-for-behavior on NZSL's src/NZSL/WgslWriter.cpp (see
// SPEC_FULL.md §12), written in this module's own emitter idiom rather
// than ported line by line.
package wgsl

import (
	"fmt"
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// Options configures one Emit call.
type Options struct {
	// Capabilities gates the backend-unsupported-by-default features
	// featureScan discovers (spec §4.6 "Feature tracking"). A nil value
	// permits nothing beyond WGSL's unconditional core feature set.
	Capabilities CapabilityChecker
}

// Writer holds the per-Emit-call state the pretty-printer accumulates:
// output text, indentation, and the sampler/binding plan computed once
// up front. It is not safe for concurrent use and is not reused across
// calls to Emit.
type Writer struct {
	mod    *tree.Module
	out    strings.Builder
	indent int

	plans map[int]samplerPlan
	remap map[BindingKey]uint32
	scan  *featureScan
	errs  diag.List

	forEachCounter int
}

// Emit serializes mod to WGSL text (spec §4.6), returning the text, the
// binding remap table (spec §6.2, §8 invariant 7), and any diagnostics.
// A non-empty diag.List means the returned text is not meaningful — the
// feature-gate check (spec §4.6 "failure is reported as an error before
// emission") runs before any text is written.
func Emit(mod *tree.Module, opts Options) (string, map[BindingKey]uint32, diag.List) {
	w := &Writer{mod: mod}
	w.scan = scanModule(mod)
	if f, ok := w.scan.check(opts.Capabilities); !ok {
		w.errs.Add(diag.New(diag.UnsupportedBackendFeature, diag.Location{}, "module uses %s, which the target WGSL profile does not permit", f))
		return "", nil, w.errs
	}
	w.plans, w.remap = splitSamplers(mod)

	w.writeConstantHelpers()
	for _, s := range mod.Structs {
		w.writeStruct(s)
	}
	w.writeExternals()
	for _, fn := range mod.Functions {
		w.writeFunction(fn)
	}
	return w.out.String(), w.remap, w.errs
}

func (w *Writer) line(format string, args ...interface{}) {
	w.out.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *Writer) raw(s string) { w.out.WriteString(s) }

// writeConstantHelpers synthesizes _nzslInfinity<T>/_nzslNaN<T> for
// every floating primitive the pre-visitor found an Infinity/NaN
// type-constant of (spec §4.6, SPEC_FULL.md §12 "per type, not per
// module"). WGSL has no infinity/NaN literal, so each helper divides
// 1.0/0.0 or 0.0/0.0 at runtime through an intermediate ratio function,
// the same indirection WgslWriter.cpp uses (a bare literal division is
// left unspecified by some WGSL implementations' constant folders,
// hence routing it through a non-const function call).
func (w *Writer) writeConstantHelpers() {
	// Keyed by rendered WGSL type name, not by types.Primitive: F64
	// degrades to the same "f32" spelling as F32 (primitiveName), so a
	// module using both f32::Infinity and f64::Infinity must still only
	// get one _nzslInfinityf32 helper.
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
		w.line("fn %sRatio%s(n: %s, d: %s) -> %s {", ReservedPrefix, t, t, t, t)
		w.indent++
		w.line("return n / d;")
		w.indent--
		w.line("}")
		w.raw("\n")
		if needsInfinity[t] {
			w.line("fn %sInfinity%s() -> %s {", ReservedPrefix, t, t)
			w.indent++
			w.line("return %sRatio%s(1.0, 0.0);", ReservedPrefix, t)
			w.indent--
			w.line("}")
			w.raw("\n")
		}
		if needsNaN[t] {
			w.line("fn %sNaN%s() -> %s {", ReservedPrefix, t, t)
			w.indent++
			w.line("return %sRatio%s(0.0, 0.0);", ReservedPrefix, t)
			w.indent--
			w.line("}")
			w.raw("\n")
		}
	}
}

func (w *Writer) writeStruct(s *tree.StructDecl) {
	w.line("struct %s {", s.Name)
	w.indent++
	for _, m := range s.Members {
		var attrs []string
		switch {
		case m.HasBuiltin:
			if name, ok := builtinName(m.Builtin); ok {
				attrs = append(attrs, fmt.Sprintf("@builtin(%s)", name))
			}
		case m.HasLocation:
			attrs = append(attrs, fmt.Sprintf("@location(%d)", m.Location))
		}
		if name, ok := interpName(m.Interp); ok {
			attrs = append(attrs, fmt.Sprintf("@interpolate(%s)", name))
		}
		prefix := ""
		if len(attrs) > 0 {
			prefix = strings.Join(attrs, " ") + " "
		}
		w.line("%s%s: %s,", prefix, m.Name, w.typeName(m.Type))
	}
	w.indent--
	w.line("}")
	w.raw("\n")
}

// writeExternals declares every resource binding, splitting combined
// samplers into a texture_* declaration plus a companion `sampler`
// declaration (spec §4.6, §8 scenario S6).
func (w *Writer) writeExternals() {
	for _, blk := range w.mod.ExternalBlocks {
		for i := range blk.Variables {
			v := &blk.Variables[i]
			plan := w.plans[v.Index]
			// Declared under its bare v.Name, matching the name
			// identifierString resolves at every use site (mod.Variables
			// shares one flat name per declaration regardless of which
			// external block it was declared in).
			name := v.Name

			if types.Is(types.ResolveAlias(v.Type), types.KindPushConstant) {
				w.line("var<push_constant> %s: %s;", name, w.typeName(v.Type))
				w.raw("\n")
				continue
			}

			w.line("@group(%d) @binding(%d) var%s %s: %s;", v.Set, plan.binding, addressSpaceAndAccess(v.Type), name, w.typeName(v.Type))
			if plan.isSampler {
				w.line("@group(%d) @binding(%d) var %s: sampler;", v.Set, plan.samplerBinding, plan.samplerName)
			}
			w.raw("\n")
		}
	}
}

// addressSpaceAndAccess renders the <address_space[, access]> portion of
// a `var<...>` declaration for a uniform/storage resource; samplers and
// textures take a bare `var` with no address space (spec §4.6 "Binding
// sets become @group(G) @binding(B) attributes").
func addressSpaceAndAccess(t types.Type) string {
	switch v := types.ResolveAlias(t).(type) {
	case types.Uniform:
		return "<uniform>"
	case types.Storage:
		return fmt.Sprintf("<storage, %s>", accessName(v.Access))
	default:
		return ""
	}
}
