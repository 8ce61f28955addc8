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

// Module is the root of one compiled logical module (spec §2, §3.4): the
// per-category declaration tables plus a name table per category used by
// the Resolve pass. Declarations are appended (never reordered or
// removed) by later passes, keeping each category's index dense and
// stable (spec §3.1 invariant, §3.3 "stable index").
type Module struct {
	Name string

	Aliases        []*AliasDecl
	Consts         []*ConstDecl
	Functions      []*FunctionDecl
	Structs        []*StructDecl
	Variables      []*VariableDecl
	ExternalBlocks []*ExternalDecl
	Options        []*OptionDecl
	Imports        []*ImportedModule

	// Names holds one lookup Table per symbol.Category (spec §4.2),
	// populated in lockstep with the slices above as declarations are
	// registered during Resolve.
	Names [numCategories]symbol.Table
}

const numCategories = int(symbol.ExternalBlock) + 1

// AddAlias appends decl to the alias table and its name table, assigning
// and returning decl.Index.
func (m *Module) AddAlias(decl *AliasDecl) int {
	decl.Index = m.Names[symbol.Alias].Add(decl.Name)
	m.Aliases = append(m.Aliases, decl)
	return decl.Index
}

// AddConst appends decl to the const table.
func (m *Module) AddConst(decl *ConstDecl) int {
	decl.Index = m.Names[symbol.Constant].Add(decl.Name)
	m.Consts = append(m.Consts, decl)
	return decl.Index
}

// AddFunction appends decl to the function table.
func (m *Module) AddFunction(decl *FunctionDecl) int {
	decl.Index = m.Names[symbol.Function].Add(decl.Name)
	m.Functions = append(m.Functions, decl)
	return decl.Index
}

// AddStruct appends decl to the struct table.
func (m *Module) AddStruct(decl *StructDecl) int {
	decl.Index = m.Names[symbol.Struct].Add(decl.Name)
	m.Structs = append(m.Structs, decl)
	return decl.Index
}

// AddVariable appends decl to the module-wide variable table. Resolve
// registers function parameters and locals here too, so each has its
// own Module.Variables slot; symbol.Scopes only tracks which of those
// names are visible where (spec §4.2).
func (m *Module) AddVariable(decl *VariableDecl) int {
	decl.Index = m.Names[symbol.Variable].Add(decl.Name)
	m.Variables = append(m.Variables, decl)
	return decl.Index
}

// AddExternalBlock appends decl to the external-block table. Anonymous
// blocks (Name == "") still occupy a slot so BindingResolverTransformer
// can iterate every external variable uniformly.
func (m *Module) AddExternalBlock(decl *ExternalDecl) int {
	name := decl.Name
	decl.Index = m.Names[symbol.ExternalBlock].Add(name)
	m.ExternalBlocks = append(m.ExternalBlocks, decl)
	return decl.Index
}

// StructSizeAlign implements types.StructSizer: it walks index's members
// in declaration order through types.FieldOffset, the same accumulation
// a layout-aware emitter does, and returns the struct's own finalized
// (size, alignment) so nested structs compute correctly (spec §4.1).
func (m *Module) StructSizeAlign(index int, layout types.Layout) (size, align uint32) {
	decl := m.Structs[index]
	var cursor, maxAlign uint32
	for _, mem := range decl.Members {
		arraySize := uint32(0)
		if arr, ok := types.ResolveAlias(mem.Type).(types.Array); ok {
			arraySize = arr.Length
			_, cursor, maxAlign = types.FieldOffset(cursor, maxAlign, arr.Of, arraySize, layout, m)
			continue
		}
		_, cursor, maxAlign = types.FieldOffset(cursor, maxAlign, mem.Type, 0, layout, m)
	}
	return types.StructSize(cursor, maxAlign), maxAlign
}

// EntryPoints returns every function declaration marked as an entry
// point (spec glossary), in declaration order.
func (m *Module) EntryPoints() []*FunctionDecl {
	var out []*FunctionDecl
	for _, f := range m.Functions {
		if f.IsEntryPoint() {
			out = append(out, f)
		}
	}
	return out
}

// FindExternalVariable locates the external variable named name across
// every external block, returning the owning block and the variable's
// position within it. Used by BindingResolverTransformer and the WGSL/
// SPIR-V resource emission.
func (m *Module) FindExternalVariable(name string) (block *ExternalDecl, pos int, ok bool) {
	for _, b := range m.ExternalBlocks {
		for i, v := range b.Variables {
			if v.Name == name {
				return b, i, true
			}
		}
	}
	return nil, 0, false
}
