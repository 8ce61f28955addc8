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

// BinaryOp enumerates the binary arithmetic/logical/bitwise/comparison
// operators of spec §3.2.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	LogicalAnd
	LogicalOr
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
	CompEq
	CompNe
	CompLt
	CompLe
	CompGt
	CompGe
)

func (op BinaryOp) String() string {
	names := [...]string{
		"+", "-", "*", "/", "%", "&&", "||", "&", "|", "^", "<<", ">>",
		"==", "!=", "<", "<=", ">", ">=",
	}
	if int(op) < 0 || int(op) >= len(names) {
		return "?"
	}
	return names[op]
}

// IsComparison reports whether op produces a bool/vec[bool] result.
func (op BinaryOp) IsComparison() bool {
	return op >= CompEq && op <= CompGe
}

// IsShift reports whether op is one of the two shift operators, which
// the WGSL emitter treats specially (spec §4.6, scenario S4).
func (op BinaryOp) IsShift() bool { return op == ShiftLeft || op == ShiftRight }

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	Negate UnaryOp = iota
	LogicalNot
	BitwiseNot
	Plus
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "-"
	case LogicalNot:
		return "!"
	case BitwiseNot:
		return "~"
	case Plus:
		return "+"
	default:
		return "?"
	}
}

// AssignOp enumerates plain and compound assignment forms.
type AssignOp int

const (
	Assign AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShiftLeft
	AssignShiftRight
)

func (op AssignOp) String() string {
	names := [...]string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="}
	if int(op) < 0 || int(op) >= len(names) {
		return "?"
	}
	return names[op]
}

// BinaryEquivalent returns the BinaryOp a compound assignment op
// desugars to, used by passes that need to synthesize the equivalent
// "target = target <op> value" expansion (e.g. StructAssignmentTransformer
// splitting a compound assignment into per-member form). Assign itself
// has no equivalent and returns (0, false).
func (op AssignOp) BinaryEquivalent() (BinaryOp, bool) {
	switch op {
	case AssignAdd:
		return Add, true
	case AssignSub:
		return Sub, true
	case AssignMul:
		return Mul, true
	case AssignDiv:
		return Div, true
	case AssignMod:
		return Mod, true
	case AssignAnd:
		return BitwiseAnd, true
	case AssignOr:
		return BitwiseOr, true
	case AssignXor:
		return BitwiseXor, true
	case AssignShiftLeft:
		return ShiftLeft, true
	case AssignShiftRight:
		return ShiftRight, true
	default:
		return 0, false
	}
}

// AccessKind distinguishes the four forms of access expression (spec
// §3.2: "access (by field name, by field index, by identifier chain, by
// numeric indices)").
type AccessKind int

const (
	AccessByFieldName AccessKind = iota
	AccessByFieldIndex
	AccessByIdentifierChain
	AccessByNumericIndices
)

// TypeConstKind enumerates the type-constant forms (spec §3.2, e.g.
// f32::Infinity).
type TypeConstKind int

const (
	Infinity TypeConstKind = iota
	NaN
)

func (k TypeConstKind) String() string {
	switch k {
	case Infinity:
		return "Infinity"
	case NaN:
		return "NaN"
	default:
		return "?"
	}
}
