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
	"math"
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

var swizzleLetters = [4]byte{'x', 'y', 'z', 'w'}

// exprString renders e as a single GLSL expression, mirroring
// wgsl.Writer.exprString's dispatch shape.
func (w *Writer) exprString(e tree.Expression) string {
	switch n := e.(type) {
	case *tree.Constant:
		return w.constValueString(n.Value)
	case *tree.ConstantArray:
		parts := make([]string, len(n.Elements))
		for i, cv := range n.Elements {
			parts[i] = w.constValueString(cv)
		}
		return fmt.Sprintf("%s[](%s)", primitiveName(n.Of), strings.Join(parts, ", "))
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
		return fmt.Sprintf("%s%s%s()", ReservedPrefix, n.Const, capitalize(primitiveName(n.Of)))
	default:
		w.errs.Add(diag.New(diag.Internal, e.Location(), "expression kind reached glsl codegen unhandled: %T", e))
		return "/* ? */"
	}
}

func (w *Writer) identifierString(n *tree.IdentifierValue) string {
	switch n.Category {
	case symbol.Variable:
		return w.variableName(n.Index)
	case symbol.Constant:
		return w.exprString(w.mod.Consts[n.Index].Value)
	default:
		w.errs.Add(diag.New(diag.Internal, n.Location(), "identifier category reached glsl codegen unresolved to a value: %v", n.Category))
		return "/* ? */"
	}
}

func (w *Writer) variableName(idx int) string {
	return w.mod.Variables[idx].Name
}

// binaryString renders a binary expression, lowering vector comparisons
// to GLSL's component-wise comparison functions (spec §8 scenario S3:
// "vector equality emits equal(x, y), not x == y; vector < emits
// lessThan(x, y)"). A scalar comparison, and every non-comparison
// operator, keeps the direct infix spelling — GLSL, unlike WGSL's shift
// operators (spec §8 scenario S4), places no extra cast requirement on
// either operand here, so there is no shiftAmount-style helper needed.
func (w *Writer) binaryString(n *tree.Binary) string {
	if n.Op.IsComparison() {
		if _, ok := types.ResolveAlias(n.Left.Type()).(types.Vector); ok {
			return fmt.Sprintf("%s(%s, %s)", vectorComparisonName(n.Op), w.exprString(n.Left), w.exprString(n.Right))
		}
	}
	return fmt.Sprintf("(%s %s %s)", w.exprString(n.Left), n.Op, w.exprString(n.Right))
}

// vectorComparisonName maps a comparison BinaryOp to its GLSL
// component-wise function name (spec §8 scenario S3).
func vectorComparisonName(op tree.BinaryOp) string {
	switch op {
	case tree.CompEq:
		return "equal"
	case tree.CompNe:
		return "notEqual"
	case tree.CompLt:
		return "lessThan"
	case tree.CompLe:
		return "lessThanEqual"
	case tree.CompGt:
		return "greaterThan"
	case tree.CompGe:
		return "greaterThanEqual"
	default:
		return "?"
	}
}

func (w *Writer) castString(n *tree.Cast) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", w.typeName(n.Target), strings.Join(args, ", "))
}

// callString renders a call to a module function. Intrinsics are
// Intrinsic nodes, never Call, mirroring wgsl.Writer.callString.
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

// accessString renders field/chain/index access, mirroring
// wgsl.Writer.accessString.
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

// constValueString renders a folded constant in GLSL literal syntax.
// GLSL, like WGSL, has no Infinity/NaN literal, so a constant-folded
// special float routes through the same synthesized helper function
// TypeConstant expressions use.
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
		name := capitalize(primitiveName(cv.Of))
		if math.IsInf(cv.Float, 1) {
			return fmt.Sprintf("%sInfinity%s()", ReservedPrefix, name)
		}
		if math.IsInf(cv.Float, -1) {
			return fmt.Sprintf("(-%sInfinity%s())", ReservedPrefix, name)
		}
		if math.IsNaN(cv.Float) {
			return fmt.Sprintf("%sNaN%s()", ReservedPrefix, name)
		}
		s := fmt.Sprintf("%g", cv.Float)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
}

// selectCall renders a two-way value selection as GLSL's mix() with a
// bool/bvec selector (GLSL 4.00+ defines `genType mix(genType x, genType
// y, genBType a)`, returning y when a is true component-wise) — the same
// (falseValue, trueValue, cond) argument order wgsl.Writer.selectCall's
// select() rendering uses, so the two backends share this call shape.
func (w *Writer) selectCall(thenExpr, elseExpr, cond tree.Expression) string {
	return fmt.Sprintf("mix(%s, %s, %s)", w.exprString(elseExpr), w.exprString(thenExpr), w.exprString(cond))
}

// intrinsicString renders an Intrinsic call. Select and arrayLength need
// reshaping the table-driven intrinsicName alone can't express; every
// other intrinsic carries its arguments straight over.
func (w *Writer) intrinsicString(n *tree.Intrinsic) string {
	switch n.Intrinsic {
	case tree.IntrSelect:
		// This language's own Args order is [valueA, valueB, cond] (the
		// same order spec §8 scenario S5 documents for WGSL's select()).
		return w.selectCall(n.Args[0], n.Args[1], n.Args[2])
	case tree.IntrArrayLength:
		return fmt.Sprintf("%s.length()", w.exprString(n.Args[0]))
	default:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = w.exprString(a)
		}
		return fmt.Sprintf("%s(%s)", intrinsicName(n.Intrinsic), strings.Join(args, ", "))
	}
}
