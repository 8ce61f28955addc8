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

package source_test

import (
	"strings"
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/source"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func identVar(idx int, name string, t types.Type) *tree.IdentifierValue {
	iv := &tree.IdentifierValue{Category: symbol.Variable, Index: idx, Name: name}
	iv.SetType(t)
	return iv
}

func binary(op tree.BinaryOp, left, right tree.Expression, t types.Type) *tree.Binary {
	b := &tree.Binary{Op: op, Left: left, Right: right}
	b.SetType(t)
	return b
}

func constant(of types.Primitive, i int64) *tree.Constant {
	c := &tree.Constant{Value: tree.IntValue(of, i)}
	c.SetType(of)
	return c
}

func declParam(mod *tree.Module, name string, t types.Type) tree.Param {
	idx := mod.AddVariable(&tree.VariableDecl{Name: name, Type: t})
	return tree.Param{Name: name, Type: t, Index: idx}
}

// TestEmitScenarioS1RePrintsConstantFoldedBody exercises spec §8 scenario
// S1 exactly: after Resolve + ConstantPropagation the body of `fn f() ->
// i32 { return 1 + 2; }` is `return 3;`, and the source re-emitter prints
// exactly this form.
func TestEmitScenarioS1RePrintsConstantFoldedBody(t *testing.T) {
	mod := &tree.Module{}
	ret := &tree.Return{Value: constant(types.I32, 3)}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.I32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	text, errs := source.Emit(mod, source.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "header is printed").That(strings.Contains(text, `[nzsl_version("1.0")]`)).IsTrue()
	assert.For(t, "module declaration is printed").That(strings.Contains(text, "module;")).IsTrue()
	assert.For(t, "folded return is printed exactly").That(strings.Contains(text, "return 3;")).IsTrue()
}

func TestEmitOrdinaryFunctionKeepsDirectOperators(t *testing.T) {
	mod := &tree.Module{}
	a := declParam(mod, "a", types.F32)
	b := declParam(mod, "b", types.F32)
	ret := &tree.Return{Value: binary(tree.Add, identVar(a.Index, "a", types.F32), identVar(b.Index, "b", types.F32), types.F32)}
	fn := &tree.FunctionDecl{Name: "add", Params: []tree.Param{a, b}, ReturnType: types.F32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	text, errs := source.Emit(mod, source.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "signature uses source-language types").That(strings.Contains(text, "fn add(a: f32, b: f32) -> f32 {")).IsTrue()
	assert.For(t, "return keeps the literal operator").That(strings.Contains(text, "return (a + b);")).IsTrue()
}

func TestEmitVectorComparisonKeepsOperatorUnlikeGlsl(t *testing.T) {
	mod := &tree.Module{}
	vecT := types.Vector{Size: 2, Of: types.I32}
	x := declParam(mod, "x", vecT)
	y := declParam(mod, "y", vecT)
	cmp := binary(tree.CompEq, identVar(x.Index, "x", vecT), identVar(y.Index, "y", vecT), types.Vector{Size: 2, Of: types.Bool})
	v := &tree.VariableDecl{Name: "r", Type: types.Vector{Size: 2, Of: types.Bool}, Initializer: cmp}
	fn := &tree.FunctionDecl{Name: "f", Params: []tree.Param{x, y}, Body: []tree.Statement{v}}
	mod.AddFunction(fn)

	text, _ := source.Emit(mod, source.Options{})
	assert.For(t, "vector equality keeps the == operator").That(strings.Contains(text, "let r: vec2[bool] = (x == y);")).IsTrue()
	assert.For(t, "no equal() call is synthesized").That(strings.Contains(text, "equal(")).IsFalse()
}

func TestEmitTypeConstantUsesDoubleColonForm(t *testing.T) {
	mod := &tree.Module{}
	tc := &tree.TypeConstant{Of: types.F32, Const: tree.Infinity}
	tc.SetType(types.F32)
	ret := &tree.Return{Value: tc}
	fn := &tree.FunctionDecl{Name: "f", ReturnType: types.F32, Body: []tree.Statement{ret}}
	mod.AddFunction(fn)

	text, _ := source.Emit(mod, source.Options{})
	assert.For(t, "f32::Infinity is printed literally").That(strings.Contains(text, "return f32::Infinity;")).IsTrue()
}

func TestEmitStructWithAttributes(t *testing.T) {
	mod := &tree.Module{}
	decl := &tree.StructDecl{Name: "VertexOutput", Members: []tree.StructMember{
		{Name: "clip_position", Builtin: tree.VertexPosition, HasBuiltin: true, Type: types.Vector{Size: 4, Of: types.F32}},
		{Name: "uv", Location: 0, HasLocation: true, Type: types.Vector{Size: 2, Of: types.F32}},
	}}
	mod.AddStruct(decl)

	text, errs := source.Emit(mod, source.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "struct header").That(strings.Contains(text, "struct VertexOutput {")).IsTrue()
	assert.For(t, "builtin member attribute").That(strings.Contains(text, "[builtin(vertex_position)]")).IsTrue()
	assert.For(t, "location member attribute").That(strings.Contains(text, "[location(0)]")).IsTrue()
	assert.For(t, "member field line").That(strings.Contains(text, "uv: vec2[f32],")).IsTrue()
}

func TestEmitExternalUniformBlock(t *testing.T) {
	mod := &tree.Module{}
	decl := &tree.StructDecl{Name: "Globals", Members: []tree.StructMember{
		{Name: "scale", Type: types.F32},
	}}
	idx := mod.AddStruct(decl)
	blk := &tree.ExternalDecl{Name: "globals", Variables: []tree.ExternalVariable{
		{Name: "g", Type: types.Uniform{Of: types.Struct{Index: idx, Name: "Globals"}}, Set: 0, HasSet: true, Binding: 0, HasBinding: true},
	}}
	mod.AddExternalBlock(blk)

	text, _ := source.Emit(mod, source.Options{})
	assert.For(t, "external block header").That(strings.Contains(text, "external globals {")).IsTrue()
	assert.For(t, "uniform-wrapped struct type").That(strings.Contains(text, "g: uniform[Globals],")).IsTrue()
	assert.For(t, "binding attribute").That(strings.Contains(text, "[set(0), binding(0)]")).IsTrue()
}

func TestEmitEntryFunctionAttributes(t *testing.T) {
	mod := &tree.Module{}
	fn := &tree.FunctionDecl{
		Name:       "fs_main",
		ReturnType: types.Vector{Size: 4, Of: types.F32},
		Attrs:      tree.Attributes{Entry: tree.Fragment},
		Body:       []tree.Statement{&tree.Return{Value: constant(types.F32, 0)}},
	}
	mod.AddFunction(fn)

	text, _ := source.Emit(mod, source.Options{})
	assert.For(t, "entry attribute printed").That(strings.Contains(text, "[entry(fragment)]")).IsTrue()
}

func TestEmitNumericForLoopAndForEach(t *testing.T) {
	mod := &tree.Module{}
	forLoop := &tree.For{
		VarName: "i",
		From:    constant(types.I32, 0),
		To:      constant(types.I32, 4),
		Body:    []tree.Statement{&tree.Continue{}},
	}
	arrT := types.Array{Of: types.F32, Length: 4}
	arr := declParam(mod, "xs", arrT)
	forEach := &tree.ForEach{VarName: "x", Of: identVar(arr.Index, "xs", arrT), Body: []tree.Statement{&tree.Break{}}}
	fn := &tree.FunctionDecl{Name: "f", Body: []tree.Statement{forLoop, forEach}}
	mod.AddFunction(fn)

	text, _ := source.Emit(mod, source.Options{})
	assert.For(t, "numeric for range").That(strings.Contains(text, "for i in 0..4 {")).IsTrue()
	assert.For(t, "foreach form").That(strings.Contains(text, "for x in xs {")).IsTrue()
}

func TestEmitConditionalStatementAndImport(t *testing.T) {
	mod := &tree.Module{}
	cond := &tree.ConditionalStatement{
		Cond: &tree.Identifier{Name: "MY_OPTION"},
		Body: &tree.Discard{},
	}
	imp := &tree.Import{Kind: tree.ImportIdentifiers, ModulePath: "math", Names: []tree.ImportedName{
		{Name: "sin", Alias: "sin"},
		{Name: "cos", Alias: "c"},
	}}
	fn := &tree.FunctionDecl{Name: "f", Body: []tree.Statement{cond, imp}}
	mod.AddFunction(fn)

	text, errs := source.Emit(mod, source.Options{})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "compile-time conditional").That(strings.Contains(text, "cond (MY_OPTION) {")).IsTrue()
	assert.For(t, "discard inside conditional").That(strings.Contains(text, "discard;")).IsTrue()
	assert.For(t, "import with rename").That(strings.Contains(text, "import sin, cos as c from math;")).IsTrue()
}

func TestEmitDebugRegularAddsLocationComments(t *testing.T) {
	mod := &tree.Module{}
	fn := &tree.FunctionDecl{Name: "f", Body: nil}
	fn.Loc.Line = 42
	mod.AddFunction(fn)

	text, _ := source.Emit(mod, source.Options{Debug: source.DebugRegular})
	assert.For(t, "location comment printed").That(strings.Contains(text, "// line 42")).IsTrue()

	textNone, _ := source.Emit(mod, source.Options{})
	assert.For(t, "no comment at default debug level").That(strings.Contains(textNone, "// line 42")).IsFalse()
}
