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

import (
	"fmt"
	"strings"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// writeExternalVariable declares one resource binding. Uniform, Storage
// and PushConstant always wrap a Struct (types/resource.go), so each
// renders as an interface block whose body is the struct's own member
// list rather than a reference to the struct's declared name — GLSL
// has no syntax for a uniform/buffer/push_constant block that reuses an
// already-declared struct by name, unlike a plain value-typed struct
// field or local variable, which does use the declared name
// (typeName's normal types.Struct case).
func (w *Writer) writeExternalVariable(v *tree.ExternalVariable) {
	switch t := types.ResolveAlias(v.Type).(type) {
	case types.Uniform:
		w.writeBlock("uniform", fmt.Sprintf("layout(set = %d, binding = %d)", v.Set, v.Binding), w.mod.Structs[t.Of.Index], v.Name)
	case types.Storage:
		qualifiers := accessQualifiers(t.Access)
		layout := fmt.Sprintf("layout(set = %d, binding = %d, std430) %s", v.Set, v.Binding, qualifiers)
		w.writeBlock("buffer", strings.TrimSpace(layout), w.mod.Structs[t.Of.Index], v.Name)
	case types.PushConstant:
		w.writeBlock("uniform", "layout(push_constant)", w.mod.Structs[t.Of.Index], v.Name)
	case types.Sampler:
		w.line("layout(set = %d, binding = %d) uniform %s %s;", v.Set, v.Binding, samplerTypeName(t), v.Name)
		w.raw("\n")
	case types.Texture:
		qualifiers := accessQualifiers(t.Access)
		layout := fmt.Sprintf("layout(set = %d, binding = %d, %s) %s uniform", v.Set, v.Binding, imageFormatQualifier(t.Format), qualifiers)
		w.line("%s %s %s;", strings.Join(strings.Fields(layout), " "), imageTypeName(t), v.Name)
		w.raw("\n")
	default:
		w.line("layout(set = %d, binding = %d) uniform %s %s;", v.Set, v.Binding, w.typeName(v.Type), v.Name)
		w.raw("\n")
	}
}

// writeBlock renders one interface block (uniform/buffer) whose member
// list is decl's, named decl.Name, with declared instance name varName.
func (w *Writer) writeBlock(kind, layout string, decl *tree.StructDecl, varName string) {
	w.line("%s %s %s {", layout, kind, decl.Name)
	w.indent++
	for _, m := range decl.Members {
		w.line("%s %s%s;", w.typeName(m.Type), m.Name, w.arraySuffix(m.Type))
	}
	w.indent--
	w.line("} %s;", varName)
	w.raw("\n")
}
