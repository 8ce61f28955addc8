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

package wgsl

import (
	"fmt"
	"math"
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

var swizzleLetters = [4]byte{'x', 'y', 'z', 'w'}

// exprString renders e as a single WGSL expression, mirroring
// spirv.funcEmitter.emitExpr's dispatch shape but producing text instead
// of SSA instructions.
func (w *Writer) exprString(e tree.Expression) string {
	switch n := e.(type) {
	case *tree.Constant:
		return w.constValueString(n.Value)
	case *tree.ConstantArray:
		parts := make([]string, len(n.Elements))
		for i, cv := range n.Elements {
			parts[i] = w.constValueString(cv)
		}
		return fmt.Sprintf("array<%s, %d>(%s)", primitiveName(n.Of), len(n.Elements), strings.Join(parts, ", "))
	case *tree.IdentifierValue:
		return w.identifierString(n)
	case *tree.Assign:
		return fmt.Sprintf("%s %s %s", w.exprString(n.Target), n.Op, w.exprString(n.Value))
	case *tree.Binary:
		return w.binaryString(n)
	case *tree.Unary:
		return fmt.Sprintf("(%s%s)", n.Op, w.exprString(n.Operand))
	case *tree.Call:
		return w.callString(n)
	case *tree.Cast:
		return w.castString(n)
	case *tree.Conditional:
		return w.selectCall(n.Then, n.Else, n.Cond)
	case *tree.Intrinsic:
		return w.intrinsicString(n)
	case *tree.Swizzle:
		return w.swizzleString(n)
	case *tree.Access:
		return w.accessString(n)
	case *tree.TypeConstant:
		return fmt.Sprintf("%s%s%s()", ReservedPrefix, n.Const, primitiveName(n.Of))
	default:
		w.errs.Add(diag.New(diag.Internal, e.Location(), "expression kind reached wgsl codegen unhandled: %T", e))
		return "/* ? */"
	}
}

// identifierString resolves a resolved-form name reference. Every
// category shares the module's dense per-category tables, the same
// convention spirv.funcEmitter.emitIdentifier relies on.
func (w *Writer) identifierString(n *tree.IdentifierValue) string {
	switch n.Category {
	case symbol.Variable:
		return w.variableName(n.Index)
	case symbol.Constant:
		return w.exprString(w.mod.Consts[n.Index].Value)
	default:
		w.errs.Add(diag.New(diag.Internal, n.Location(), "identifier category reached wgsl codegen unresolved to a value: %v", n.Category))
		return "/* ? */"
	}
}

// variableName resolves a Module.Variables index to its display name,
// rewriting a split-sampler's own texture name is never needed here
// (only external declarations are split, and those are read through
// their ExternalVariable, not through a plain identifier load).
func (w *Writer) variableName(idx int) string {
	return w.mod.Variables[idx].Name
}

func (w *Writer) binaryString(n *tree.Binary) string {
	left := w.exprString(n.Left)
	right := w.exprString(n.Right)
	if n.Op.IsShift() {
		right = w.shiftAmount(n.Right)
	}
	return fmt.Sprintf("(%s %s %s)", left, n.Op, right)
}

// shiftAmount renders a shift's right operand, inserting the unsigned
// cast WGSL requires (spec §8 scenario S4: WGSL's shift operators demand
// an unsigned right operand, unlike this language's own signed-int-
// accepting shift). Only a signed-int (or vector-of-signed-int) operand
// needs the cast; an already-unsigned or untyped-default operand passes
// through unchanged.
func (w *Writer) shiftAmount(e tree.Expression) string {
	text := w.exprString(e)
	switch t := types.ResolveAlias(e.Type()).(type) {
	case types.Primitive:
		if t.DefaultConcrete() == types.I32 {
			return fmt.Sprintf("u32(%s)", text)
		}
	case types.Vector:
		if t.Of.DefaultConcrete() == types.I32 {
			return fmt.Sprintf("vec%d<u32>(%s)", t.Size, text)
		}
	}
	return text
}

func (w *Writer) castString(n *tree.Cast) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", w.typeName(n.Target), strings.Join(args, ", "))
}

// callString renders a call to a module function. Intrinsics are
// Intrinsic nodes, never Call, so Callee here always resolves to a
// symbol.Function identifier.
func (w *Writer) callString(n *tree.Call) string {
	name := w.exprString(n.Callee)
	if ident, ok := n.Callee.(*tree.IdentifierValue); ok && ident.Category == symbol.Function {
		name = w.mod.Functions[ident.Index].Name
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func (w *Writer) swizzleString(n *tree.Swizzle) string {
	var b strings.Builder
	for _, c := range n.Components {
		if int(c) < len(swizzleLetters) {
			b.WriteByte(swizzleLetters[c])
		}
	}
	return fmt.Sprintf("%s.%s", w.exprString(n.Of), b.String())
}

// accessString renders field/chain/index access. AccessByFieldIndex is
// the only post-resolution struct-field form (spec §4.2); the struct
// type is read off the base expression to translate the index back into
// a field name, mirroring how spirv.accessIndexConstant instead keeps
// the index numeric for an OpAccessChain operand.
func (w *Writer) accessString(n *tree.Access) string {
	base := w.exprString(n.Of)
	switch n.Kind {
	case tree.AccessByFieldIndex:
		if st, ok := types.ResolveAlias(n.Of.Type()).(types.Struct); ok {
			members := w.mod.Structs[st.Index].Members
			if int(n.FieldIndex) < len(members) {
				return fmt.Sprintf("%s.%s", base, members[n.FieldIndex].Name)
			}
		}
		return fmt.Sprintf("%s.%d", base, n.FieldIndex)
	case tree.AccessByFieldName:
		return fmt.Sprintf("%s.%s", base, n.FieldName)
	case tree.AccessByIdentifierChain:
		return strings.Join(n.Chain, ".")
	case tree.AccessByNumericIndices:
		var b strings.Builder
		b.WriteString(base)
		for _, idx := range n.Indices {
			fmt.Fprintf(&b, "[%s]", w.exprString(idx))
		}
		return b.String()
	default:
		return base
	}
}

// constValueString renders a folded constant in WGSL literal syntax.
// Unlike ConstValue.String() (this language's own source syntax), WGSL
// has no Infinity/NaN literal, so a constant-folded special float routes
// through the same synthesized helper TypeConstant expressions use.
func (w *Writer) constValueString(cv tree.ConstValue) string {
	switch cv.Of {
	case types.Bool:
		if cv.Bool {
			return "true"
		}
		return "false"
	case types.U32:
		return fmt.Sprintf("%du", cv.Int)
	case types.I32, types.UntypedInt:
		return fmt.Sprintf("%d", cv.Int)
	default:
		if math.IsInf(cv.Float, 1) {
			return fmt.Sprintf("%sInfinity%s()", ReservedPrefix, primitiveName(cv.Of))
		}
		if math.IsInf(cv.Float, -1) {
			return fmt.Sprintf("(-%sInfinity%s())", ReservedPrefix, primitiveName(cv.Of))
		}
		if math.IsNaN(cv.Float) {
			return fmt.Sprintf("%sNaN%s()", ReservedPrefix, primitiveName(cv.Of))
		}
		s := fmt.Sprintf("%g", cv.Float)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
}

// selectCall renders a two-way value selection as WGSL's select()
// builtin (spec §8 scenario S5): select(falseValue, trueValue, cond).
// A vector-typed thenExpr/elseExpr pair requires cond to be widened to
// the matching boolean vector, since WGSL's select rejects a scalar
// condition against vector operands.
func (w *Writer) selectCall(thenExpr, elseExpr, cond tree.Expression) string {
	condText := w.exprString(cond)
	if vec, ok := types.ResolveAlias(thenExpr.Type()).(types.Vector); ok {
		if _, scalar := types.ResolveAlias(cond.Type()).(types.Vector); !scalar {
			condText = fmt.Sprintf("vec%d<bool>(%s)", vec.Size, condText)
		}
	}
	return fmt.Sprintf("select(%s, %s, %s)", w.exprString(elseExpr), w.exprString(thenExpr), condText)
}

// intrinsicString renders an Intrinsic call. Most intrinsics carry
// straight over to a like-named WGSL builtin with unchanged arguments;
// select, the texture family and arrayLength need argument reshaping
// (spec §4.6, §8 scenario S5/S6), grounded on WgslWriter.cpp's own
// per-intrinsic special-casing.
func (w *Writer) intrinsicString(n *tree.Intrinsic) string {
	switch n.Intrinsic {
	case tree.IntrSelect:
		// This language's own Args order is [valueA, valueB, cond] (spec
		// §8 scenario S5: select(a, b, c) emits select(b, a, vec3<bool>(c))).
		return w.selectCall(n.Args[0], n.Args[1], n.Args[2])
	case tree.IntrArrayLength:
		return fmt.Sprintf("arrayLength(&%s)", w.exprString(n.Args[0]))
	case tree.IntrTextureSample, tree.IntrTextureSampleLevel:
		return w.textureSampleString(n)
	case tree.IntrTextureLoad, tree.IntrTextureStore, tree.IntrTextureSize:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = w.exprString(a)
		}
		return fmt.Sprintf("%s(%s)", intrinsicName(n.Intrinsic), strings.Join(args, ", "))
	default:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = w.exprString(a)
		}
		return fmt.Sprintf("%s(%s)", intrinsicName(n.Intrinsic), strings.Join(args, ", "))
	}
}

// textureSampleString inserts the split sampler's companion argument a
// combined-texture-sampler call needs (spec §4.6, §8 scenario S6):
// textureSample(tex, texSampler, coord, ...). The companion name is read
// off the same samplerPlan table writeExternals used to declare it.
func (w *Writer) textureSampleString(n *tree.Intrinsic) string {
	texArg := n.Args[0]
	texText := w.exprString(texArg)
	samplerText := texText + "Sampler"
	if ident, ok := texArg.(*tree.IdentifierValue); ok {
		if plan, ok := w.plans[ident.Index]; ok && plan.isSampler {
			samplerText = plan.samplerName
		}
	}
	rest := make([]string, 0, len(n.Args)-1)
	for _, a := range n.Args[1:] {
		rest = append(rest, w.exprString(a))
	}
	args := append([]string{texText, samplerText}, rest...)
	return fmt.Sprintf("%s(%s)", intrinsicName(n.Intrinsic), strings.Join(args, ", "))
}
