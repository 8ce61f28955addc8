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

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

var swizzleLetters = [4]byte{'x', 'y', 'z', 'w'}

// exprString renders e in the language's own literal syntax. No vector-
// comparison lowering, no shift-operand cast, no select() argument
// reorder: those are backend-specific rewrites wgsl/glsl apply (spec §8
// S2-S5); the source form keeps every operator and call exactly as the
// tree already has it typed.
func (w *Writer) exprString(e tree.Expression) string {
	switch n := e.(type) {
	case *tree.Constant:
		return n.Value.String()
	case *tree.ConstantArray:
		parts := make([]string, len(n.Elements))
		for i, cv := range n.Elements {
			parts[i] = cv.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *tree.Identifier:
		return n.Name
	case *tree.IdentifierValue:
		return n.Name
	case *tree.Assign:
		return fmt.Sprintf("%s %s %s", w.exprString(n.Target), n.Op, w.exprString(n.Value))
	case *tree.Binary:
		return fmt.Sprintf("(%s %s %s)", w.exprString(n.Left), n.Op, w.exprString(n.Right))
	case *tree.Unary:
		return fmt.Sprintf("(%s%s)", n.Op, w.exprString(n.Operand))
	case *tree.Call:
		return w.callString(n)
	case *tree.Cast:
		return w.castString(n)
	case *tree.Conditional:
		// No literal ternary exists in the scenarios spec.md gives; this
		// is a documented Open Question decision (see DESIGN.md), chosen
		// to read unambiguously in a debug dump rather than to match any
		// pinned-down source grammar.
		return fmt.Sprintf("(%s ? %s : %s)", w.exprString(n.Cond), w.exprString(n.Then), w.exprString(n.Else))
	case *tree.Intrinsic:
		return w.intrinsicString(n)
	case *tree.Swizzle:
		return w.swizzleString(n)
	case *tree.Access:
		return w.accessString(n)
	case *tree.TypeConstant:
		return fmt.Sprintf("%s::%s", n.Of, n.Const)
	default:
		w.errs.Add(diag.New(diag.Internal, e.Location(), "expression kind reached source codegen unhandled: %T", e))
		return "/* ? */"
	}
}

func (w *Writer) castString(n *tree.Cast) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", n.Target, strings.Join(args, ", "))
}

func (w *Writer) callString(n *tree.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", w.exprString(n.Callee), strings.Join(args, ", "))
}

// intrinsicString renders a call to a built-in intrinsic using its own
// tree.IntrinsicKind.Name() spelling directly: that spelling *is* the
// source language's own, by construction (wgsl/glsl each carry their own
// override table for where their target diverges from it; this emitter,
// being the source language itself, needs no such table).
func (w *Writer) intrinsicString(n *tree.Intrinsic) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.exprString(a)
	}
	return fmt.Sprintf("%s(%s)", n.Intrinsic.Name(), strings.Join(args, ", "))
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

// accessString renders field/chain/index access in source form.
// AccessByFieldIndex keeps FieldName set when Resolve converted the node
// in place from AccessByFieldName (transform/resolve.go's resolveAccess
// only adds FieldIndex, it never clears FieldName) — but a node
// synthesized directly at FieldIndex form, e.g. by
// StructAssignmentTransformer's per-member expansion, has no FieldName to
// fall back on, so that case resolves the member name from the struct
// table instead, the same way wgsl/glsl's own accessString does.
func (w *Writer) accessString(n *tree.Access) string {
	base := w.exprString(n.Of)
	switch n.Kind {
	case tree.AccessByFieldName:
		return fmt.Sprintf("%s.%s", base, n.FieldName)
	case tree.AccessByFieldIndex:
		if n.FieldName != "" {
			return fmt.Sprintf("%s.%s", base, n.FieldName)
		}
		if st, ok := types.ResolveAlias(n.Of.Type()).(types.Struct); ok {
			members := w.mod.Structs[st.Index].Members
			if int(n.FieldIndex) < len(members) {
				return fmt.Sprintf("%s.%s", base, members[n.FieldIndex].Name)
			}
		}
		return fmt.Sprintf("%s.%d", base, n.FieldIndex)
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
