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

package types

// Primitive enumerates the fundamental scalar types, including the two
// untyped literal pseudo-types that resolve to a concrete primitive on
// use (spec §3.1).
type Primitive int

const (
	Bool Primitive = iota
	F32
	F64
	I32
	U32
	StringType // compile-time only, never reaches a backend value
	// UntypedInt and UntypedFloat are literal pseudo-types. The
	// LiteralTransformer pass (§4.4) must rewrite every occurrence of
	// these into a concrete Primitive before ValidationTransformer runs.
	UntypedInt
	UntypedFloat
)

func (p Primitive) isType() {}

func (p Primitive) String() string {
	switch p {
	case Bool:
		return "bool"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case StringType:
		return "string"
	case UntypedInt:
		return "{integer}"
	case UntypedFloat:
		return "{float}"
	default:
		return "<invalid primitive>"
	}
}

// IsNumeric reports whether p supports arithmetic operators.
func (p Primitive) IsNumeric() bool {
	switch p {
	case F32, F64, I32, U32, UntypedInt, UntypedFloat:
		return true
	default:
		return false
	}
}

// IsFloat reports whether p is a floating-point primitive or the untyped
// float literal pseudo-type.
func (p Primitive) IsFloat() bool {
	switch p {
	case F32, F64, UntypedFloat:
		return true
	default:
		return false
	}
}

// IsInteger reports whether p is an integer primitive or the untyped
// integer literal pseudo-type.
func (p Primitive) IsInteger() bool {
	switch p {
	case I32, U32, UntypedInt:
		return true
	default:
		return false
	}
}

// IsSigned reports whether p is a signed integer type. Used by the WGSL
// emitter's shift-operand cast (spec §4.6, scenario S4).
func (p Primitive) IsSigned() bool {
	switch p {
	case I32, UntypedInt:
		return true
	default:
		return false
	}
}

// IsUntyped reports whether p is one of the two literal pseudo-types that
// must not survive validation (spec §3.1 invariants).
func (p Primitive) IsUntyped() bool { return p == UntypedInt || p == UntypedFloat }

// SizeInBytes returns the storage size of p, used by layout rules
// (§4.1). StringType and the untyped literal pseudo-types have no
// runtime size and return 0.
func (p Primitive) SizeInBytes() uint32 {
	switch p {
	case Bool, F32, I32, U32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// DefaultConcrete returns the concrete primitive an untyped literal
// resolves to absent any contextual type, matching the teacher's
// "resolves to a concrete primitive on use" rule for the common case of
// no surrounding context (e.g. a bare literal statement's expression).
func (p Primitive) DefaultConcrete() Primitive {
	switch p {
	case UntypedInt:
		return I32
	case UntypedFloat:
		return F32
	default:
		return p
	}
}
