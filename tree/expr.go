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

// Access is the field/chain/index access expression (spec §3.2). Kind
// selects which of its fields is meaningful:
//   - AccessByFieldName: FieldName is set (pre-resolution textual form).
//   - AccessByFieldIndex: FieldIndex is set (post-resolution, once the
//     struct member's position is known).
//   - AccessByIdentifierChain: Chain holds a dotted identifier path that
//     resolves through modules/external blocks (e.g. Module.Block.var).
//   - AccessByNumericIndices: Indices holds one or more array/vector
//     component indices (e.g. a[0][1]).
type Access struct {
	exprBase
	Kind       AccessKind
	Of         Expression
	FieldName  string
	FieldIndex int
	Chain      []string
	Indices    []Expression
}

// Assign is an assignment expression, including compound forms (spec
// §3.2).
type Assign struct {
	exprBase
	Op     AssignOp
	Target Expression
	Value  Expression
}

// Binary is a binary arithmetic/logical/bitwise/comparison expression.
type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// Call is a function/method call expression.
type Call struct {
	exprBase
	Callee Expression
	Args   []Expression
}

// Cast is a value-construction expression, e.g. vec3[f32](1.0, 2.0, 3.0).
type Cast struct {
	exprBase
	Target types.Type
	Args   []Expression
}

// Conditional is a compile-time-evaluated selection expression (as
// opposed to the runtime ConditionalStatement wrapping a Statement).
type Conditional struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

// Constant wraps a single evaluated ConstValue.
type Constant struct {
	exprBase
	Value ConstValue
}

// ConstantArray wraps an evaluated array of ConstValue, with the element
// primitive recorded so a zero-length folded array still knows its type.
type ConstantArray struct {
	exprBase
	Elements []ConstValue
	Of       types.Primitive
}

// Identifier is a pre-resolution name reference. Resolve rewrites every
// Identifier node to an IdentifierValue in place (spec §4.2): since Go
// interfaces can't be mutated through an existing pointer of a different
// concrete type, rewriting means the owning slot (a field, a slice
// element) is replaced with a new *IdentifierValue value; Identifier
// itself is never found in a tree that has passed Resolve.
type Identifier struct {
	exprBase
	Name string
}

// IdentifierValue is what an Identifier resolves to: the category and
// dense index of the declaration it names (spec §3.2).
type IdentifierValue struct {
	exprBase
	Category symbol.Category
	Index    int
	// Name is retained for diagnostics/debug/source re-emission only; it
	// plays no role in resolution or equality once Index is set.
	Name string
}

// Intrinsic is a call to one of the language's built-in intrinsic
// functions (spec §3.2), distinct from Call because intrinsics are not
// addressable declarations — they have no symbol-table index of their
// own, only an IntrinsicKind tag the emitters switch on directly.
type Intrinsic struct {
	exprBase
	Intrinsic IntrinsicKind
	Args      []Expression
}

// Swizzle is a vector component-selection/permutation expression (e.g.
// v.xyx).
type Swizzle struct {
	exprBase
	Of         Expression
	Components []uint8 // 0=x/r, 1=y/g, 2=z/b, 3=w/a
}

// Unary is a unary arithmetic/logical/bitwise expression.
type Unary struct {
	exprBase
	Op      UnaryOp
	Operand Expression
}

// TypeConstant is a type-level constant reference such as f32::Infinity
// (spec §3.2).
type TypeConstant struct {
	exprBase
	Of    types.Primitive
	Const TypeConstKind
}
