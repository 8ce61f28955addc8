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

import (
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/types"
)

// Param is a single function parameter. Index is its position in the
// owning Module's variable table once Resolve has run (spec §4.2): a
// parameter is declared the same way a local variable is, through
// Module.AddVariable, so codegen needs this back-reference to tell a
// function's own parameters apart from module-scope globals when both
// are only ever seen through a Variable-category IdentifierValue.
type Param struct {
	Name  string
	Type  types.Type
	Index int
}

// AliasDecl declares a type alias (spec §3.2/§3.3). Index is its dense
// position in the owning Module's alias table.
type AliasDecl struct {
	stmtBase
	Index  int
	Name   string
	Target types.Type
	Attrs  Attributes
}

// ConstDecl declares a module- or function-scoped constant.
type ConstDecl struct {
	stmtBase
	Index int
	Name  string
	Type  types.Type
	Value Expression
	Attrs Attributes
}

// StructMember is one field of a StructDecl (spec §3.3).
type StructMember struct {
	Name        string
	Cond        string // empty means unconditional
	Builtin     BuiltinRole
	HasBuiltin  bool
	Interp      InterpQualifier
	Location    uint32
	HasLocation bool
	Type        types.Type
	Tag         string
}

// StructDecl declares a struct type (spec §3.3). Index matches the
// types.Struct.Index referencing it.
type StructDecl struct {
	stmtBase
	Index   int
	Name    string
	Members []StructMember
	Attrs   Attributes
}

// ExternalVariable is one resource declared inside an ExternalDecl block
// (spec §3.3). Index is its position in the owning Module's variable
// table once Resolve has run: a resource is referenced by plain name
// from function bodies exactly like any other variable, so it shares
// the same Module.Variables-backed resolution path (see Param.Index's
// doc comment for the analogous reason that field exists).
type ExternalVariable struct {
	Name        string
	Type        types.Type
	Set         uint32
	HasSet      bool
	Binding     uint32
	HasBinding  bool
	AutoBinding bool
	Tag         string
	Index       int
}

// ExternalDecl groups external (resource) variables with shared binding
// metadata (spec §3.2 "external-decl"). Name is empty for an anonymous
// block (variables are then flattened into the module namespace); a
// named block introduces a module-side prefix on emission (spec §4.7
// "module prefixing").
type ExternalDecl struct {
	stmtBase
	Index     int
	Name      string
	Variables []ExternalVariable
	Attrs     Attributes
}

// OptionDecl declares a compile-time option the host may bind a constant
// value to via Options (spec §6.1).
type OptionDecl struct {
	stmtBase
	Name    string
	Type    types.Type
	Default Expression
}

// VariableDecl declares a local or module-scoped variable.
type VariableDecl struct {
	stmtBase
	Index       int
	Name        string
	Type        types.Type
	Initializer Expression // nil if uninitialized
	Attrs       Attributes
}

// FunctionDecl declares a function, method, or entry point (spec §3.2/
// §6.3). Index matches types.Function.Index. Stage != NoStage marks it
// as an entry point (spec glossary "Entry point").
type FunctionDecl struct {
	stmtBase
	Index      int
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       []Statement
	Attrs      Attributes
}

// IsEntryPoint reports whether f is marked with entry(stage).
func (f *FunctionDecl) IsEntryPoint() bool { return f.Attrs.Entry != NoStage }

// ImportedModule records one module imported via an ImportStatement
// (spec §3.2/§4.2), with a pre-resolved handle into Module.Modules.
type ImportedModule struct {
	Index int
	Name  string
	// As is the local alias the module is referred to by, or "" when it
	// is referred to by Name only.
	As string
	// Exported holds the declarations visible through this module
	// handle, keyed by name; populated by the Resolve pass from the
	// module resolver's returned tree (spec §4.2, §5 "Module resolver").
	Exported map[string]Ref
}

// Ref is a resolved (category, index) pair, the same payload an
// IdentifierValue carries, used wherever a declaration needs to refer to
// another declaration without going through a name lookup again.
type Ref struct {
	Category symbol.Category
	Index    int
}
