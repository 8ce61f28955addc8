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

// Package source re-emits a tree.Module in the language's own syntax, for
// debugging and round-tripping (spec §1, §4.7). Unlike wgsl/glsl, which
// only ever run on a fully lowered, fully resolved tree, this emitter may
// be invoked at any point in the pipeline — spec §8 scenario S1 exercises
// it right after Resolve + ConstantPropagation, well before the
// backend-lowering passes run — so every statement and expression kind
// spec §3.2 lists must round-trip, including the ones wgsl/glsl treat as
// unreachable (local alias/const/option/struct declarations, the numeric
// For loop, ConditionalStatement, Import).
//
// Because nothing needs resolving into a backend's own naming/type
// scheme, this package leans hard on facilities the tree and types
// packages already expose for exactly this purpose: types.Type.String()
// ("used by diagnostics and by the source re-emitter"),
// tree.ConstValue.String() ("renders the constant in the source
// language's own literal syntax, used by the source re-emitter"), and
// tree.IdentifierValue.Name ("retained for diagnostics/debug/source
// re-emission only"). There is no type-name table, no builtin table, no
// intrinsic rename table and no feature pre-visitor here: the source
// form is definitionally whatever those String() methods already print.
package source

import (
	"fmt"
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// DebugLevel controls how much identifying/positional detail is printed
// (spec §4.7 "Debug levels"). The source emitter always prints full
// declaration names (it has nothing else to print them as), so only
// Regular's source-location comments distinguish it from Minimal here;
// None suppresses those comments entirely.
type DebugLevel int

const (
	DebugNone DebugLevel = iota
	DebugMinimal
	DebugRegular
)

// Options configures Emit.
type Options struct {
	Debug DebugLevel
}

// Writer accumulates re-emitted source text for one module.
type Writer struct {
	mod    *tree.Module
	opts   Options
	out    strings.Builder
	indent int
	errs   diag.List
}

// Emit renders mod in the language's own syntax. Unlike wgsl.Emit/
// glsl.Emit, there is no capability gate to fail closed on: the source
// form can always represent whatever the tree already contains.
func Emit(mod *tree.Module, opts Options) (string, diag.List) {
	w := &Writer{mod: mod, opts: opts}

	w.line(`[nzsl_version("1.0")]`)
	w.line("module;")

	for _, n := range mod.Imports {
		w.writeImportedModule(n)
	}
	for _, a := range mod.Aliases {
		w.raw("\n")
		w.writeAlias(a)
	}
	for _, c := range mod.Consts {
		w.raw("\n")
		w.writeConst(c)
	}
	for _, o := range mod.Options {
		w.raw("\n")
		w.writeOption(o)
	}
	for _, s := range mod.Structs {
		w.raw("\n")
		w.writeStruct(s)
	}
	for _, e := range mod.ExternalBlocks {
		w.raw("\n")
		w.writeExternal(e)
	}
	for _, f := range mod.Functions {
		w.raw("\n")
		w.writeFunction(f)
	}

	return w.out.String(), w.errs
}

func (w *Writer) line(format string, args ...any) {
	w.out.WriteString(strings.Repeat("    ", w.indent))
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *Writer) raw(s string) { w.out.WriteString(s) }

// maybeLocComment prints a `// line N` comment ahead of a top-level
// declaration when Debug is Regular and n carries a real source location
// (spec §4.7 "Debug levels": Regular adds "names + source locations /
// #line"). A synthesized declaration with no location (the zero
// diag.Location) prints nothing, matching None/Minimal's behavior for
// that node regardless of the requested level.
func (w *Writer) maybeLocComment(n tree.Node) {
	if w.opts.Debug != DebugRegular {
		return
	}
	if loc := n.Location(); loc.IsValid() {
		w.line("// line %d", loc.Line)
	}
}

// writeImportedModule re-emits an Import statement's resolved form. Once
// Resolve has run, the source node itself is consumed into the Module's
// Imports table (see tree.ImportedModule's doc comment); a fully
// pre-resolution Import statement, if this emitter is invoked before
// Resolve, instead reaches writeStatement's own *tree.Import case.
func (w *Writer) writeImportedModule(n *tree.ImportedModule) {
	w.line("import %s;", n.Name)
}
