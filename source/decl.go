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

package source

import (
	"fmt"
	"strings"

	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func (w *Writer) writeAlias(a *tree.AliasDecl) {
	w.maybeLocComment(a)
	w.writeAttrLine(a.Attrs)
	w.line("alias %s = %s;", a.Name, a.Target)
}

func (w *Writer) writeConst(c *tree.ConstDecl) {
	w.maybeLocComment(c)
	w.writeAttrLine(c.Attrs)
	w.line("const %s: %s = %s;", c.Name, c.Type, w.exprString(c.Value))
}

func (w *Writer) writeOption(o *tree.OptionDecl) {
	w.maybeLocComment(o)
	if o.Default != nil {
		w.line("option %s: %s = %s;", o.Name, o.Type, w.exprString(o.Default))
		return
	}
	w.line("option %s: %s;", o.Name, o.Type)
}

func (w *Writer) writeStruct(s *tree.StructDecl) {
	w.maybeLocComment(s)
	w.writeAttrLine(s.Attrs)
	w.line("struct %s {", s.Name)
	w.indent++
	for _, m := range s.Members {
		w.writeStructMember(m)
	}
	w.indent--
	w.line("}")
}

func (w *Writer) writeStructMember(m tree.StructMember) {
	var attrs []string
	if m.Cond != "" {
		attrs = append(attrs, "cond("+m.Cond+")")
	}
	if m.HasBuiltin {
		attrs = append(attrs, "builtin("+m.Builtin.String()+")")
	}
	if m.Interp != tree.NoInterp {
		attrs = append(attrs, "interp("+m.Interp.String()+")")
	}
	if m.HasLocation {
		attrs = append(attrs, fmt.Sprintf("location(%d)", m.Location))
	}
	if m.Tag != "" {
		attrs = append(attrs, `tag("`+m.Tag+`")`)
	}
	if len(attrs) > 0 {
		w.line("[%s]", strings.Join(attrs, ", "))
	}
	w.line("%s: %s,", m.Name, m.Type)
}

func (w *Writer) writeExternal(e *tree.ExternalDecl) {
	w.maybeLocComment(e)
	w.writeAttrLine(e.Attrs)
	if e.Name != "" {
		w.line("external %s {", e.Name)
	} else {
		w.line("external {")
	}
	w.indent++
	for _, v := range e.Variables {
		w.writeExternalVariable(v)
	}
	w.indent--
	w.line("}")
}

func (w *Writer) writeExternalVariable(v tree.ExternalVariable) {
	var attrs []string
	if v.AutoBinding {
		attrs = append(attrs, "auto_binding(true)")
	}
	if v.HasSet {
		attrs = append(attrs, fmt.Sprintf("set(%d)", v.Set))
	}
	if v.HasBinding {
		attrs = append(attrs, fmt.Sprintf("binding(%d)", v.Binding))
	}
	if v.Tag != "" {
		attrs = append(attrs, `tag("`+v.Tag+`")`)
	}
	if len(attrs) > 0 {
		w.line("[%s]", strings.Join(attrs, ", "))
	}
	w.line("%s: %s,", v.Name, v.Type)
}

func (w *Writer) writeFunction(f *tree.FunctionDecl) {
	w.maybeLocComment(f)
	w.writeAttrLine(f.Attrs)

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}

	if f.ReturnType == nil || types.Is(f.ReturnType, types.KindNoType) {
		w.line("fn %s(%s) {", f.Name, strings.Join(params, ", "))
	} else {
		w.line("fn %s(%s) -> %s {", f.Name, strings.Join(params, ", "), f.ReturnType)
	}
	w.indent++
	w.writeBody(f.Body)
	w.indent--
	w.line("}")
}
