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

package spirv

import (
	"github.com/shaderlang/slc/types"
)

const (
	magicNumber   = 0x07230203
	schemaVersion = 0x00010300 // SPIR-V 1.3, the version Vulkan 1.1 mandates
	generatorID   = 0
)

// pointerKey caches a pointer-to-type under a storage class, the one
// case where a bare types.Type isn't enough of a cache key (spec §4.5
// "resource model": the same struct is both a Uniform and Function-local
// pointee in different contexts).
type pointerKey struct {
	of    types.Type
	class StorageClass
}

// funcTypeKey caches an OpTypeFunction by its flattened signature.
type funcTypeKey struct {
	ret    types.Type
	params string // concatenated param type strings; good enough for a cache key
}

// Module assembles one SPIR-V binary module for a tree.Module (spec
// §4.5). It mirrors core/codegen.Module's section-by-section assembly
// and structural-key caching (core/codegen/module.go, types.go), adapted
// from an LLVM-IR builder to direct SPIR-V word encoding.
type Module struct {
	nextID uint32

	capabilities map[Capability]bool
	extInstGLSL  uint32 // id of the imported "GLSL.std.450" set, 0 until first use

	// Sections, emitted in SPIR-V's mandated physical order (spec §4.5
	// "binary module layout").
	secCapabilities  []uint32
	secExtensions    []uint32
	secExtInstImport []uint32
	secEntryPoints   []uint32
	secExecModes     []uint32
	secDebugNames    []uint32
	secDecorations   []uint32
	secTypesConsts   []uint32
	secGlobals       []uint32
	secFunctions     []uint32

	types     map[types.Type]uint32
	pointers  map[pointerKey]uint32
	funcTypes map[funcTypeKey]uint32
	consts    map[constKey]uint32

	// voidID is used often enough to cache directly.
	voidID uint32
}

// constKey is the structural cache key for a scalar OpConstant.
type constKey struct {
	of   types.Primitive
	bits uint64
}

// NewModule creates an empty Module. ID 0 is reserved (SPIR-V has no
// id 0), so allocation starts at 1.
func NewModule() *Module {
	return &Module{
		nextID:       1,
		capabilities: map[Capability]bool{},
		types:        map[types.Type]uint32{},
		pointers:     map[pointerKey]uint32{},
		funcTypes:    map[funcTypeKey]uint32{},
		consts:       map[constKey]uint32{},
	}
}

// id allocates a fresh result id.
func (m *Module) id() uint32 {
	id := m.nextID
	m.nextID++
	return id
}

// requireCapability records a capability, emitting its declaration the
// first time it's requested (spec §4.5 "capability/extension tracking").
func (m *Module) requireCapability(c Capability) {
	if m.capabilities[c] {
		return
	}
	m.capabilities[c] = true
	m.secCapabilities = append(m.secCapabilities, instructionHeader(OpCapability, 2), uint32(c))
}

// extInstSet returns the id of the imported "GLSL.std.450" extended
// instruction set, importing it lazily on first use.
func (m *Module) extInstSet() uint32 {
	if m.extInstGLSL != 0 {
		return m.extInstGLSL
	}
	id := m.id()
	m.extInstGLSL = id
	words := encodeString("GLSL.std.450")
	instr := append([]uint32{0, id}, words...)
	instr[0] = instructionHeader(OpExtInstImport, len(instr))
	m.secExtInstImport = append(m.secExtInstImport, instr...)
	return id
}

// name emits a debug OpName (spec §4.5 "debug names"), skipped for blank
// names since OpName is optional decoration, not semantic.
func (m *Module) name(target uint32, n string) {
	if n == "" {
		return
	}
	words := encodeString(n)
	instr := append([]uint32{0, target}, words...)
	instr[0] = instructionHeader(OpName, len(instr))
	m.secDebugNames = append(m.secDebugNames, instr...)
}

func (m *Module) memberName(target uint32, member uint32, n string) {
	if n == "" {
		return
	}
	words := encodeString(n)
	instr := append([]uint32{0, target, member}, words...)
	instr[0] = instructionHeader(OpMemberName, len(instr))
	m.secDebugNames = append(m.secDebugNames, instr...)
}

func (m *Module) decorate(target uint32, d Decoration, operands ...uint32) {
	instr := append([]uint32{0, target, uint32(d)}, operands...)
	instr[0] = instructionHeader(OpDecorate, len(instr))
	m.secDecorations = append(m.secDecorations, instr...)
}

func (m *Module) memberDecorate(target uint32, member uint32, d Decoration, operands ...uint32) {
	instr := append([]uint32{0, target, member, uint32(d)}, operands...)
	instr[0] = instructionHeader(OpMemberDecorate, len(instr))
	m.secDecorations = append(m.secDecorations, instr...)
}

// encodeString packs a Go string into SPIR-V's NUL-terminated, word
// padded little-endian literal string encoding (spec §4.5).
func encodeString(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return words
}

// Words assembles the final module: header followed by every section in
// SPIR-V's mandated physical order (spec §4.5 "binary module layout").
func (m *Module) Words() []uint32 {
	out := make([]uint32, 0, 8+len(m.secCapabilities)+len(m.secExtensions)+
		len(m.secExtInstImport)+len(m.secEntryPoints)+
		len(m.secExecModes)+len(m.secDebugNames)+len(m.secDecorations)+
		len(m.secTypesConsts)+len(m.secGlobals)+len(m.secFunctions))

	out = append(out, magicNumber, schemaVersion, generatorID, m.nextID, 0)
	out = append(out, m.secCapabilities...)
	out = append(out, m.secExtensions...)
	out = append(out, m.secExtInstImport...)
	out = append(out, instructionHeader(OpMemoryModel, 3), 0 /*Logical*/, 1 /*GLSL450*/)
	out = append(out, m.secEntryPoints...)
	out = append(out, m.secExecModes...)
	out = append(out, m.secDebugNames...)
	out = append(out, m.secDecorations...)
	out = append(out, m.secTypesConsts...)
	out = append(out, m.secGlobals...)
	out = append(out, m.secFunctions...)
	return out
}
