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
	"fmt"
	"math"

	"github.com/shaderlang/slc/types"
)

// ConstValue is the evaluated, language-agnostic payload of a constant
// expression: what ConstantPropagation folds to, and what the emitters
// turn into a literal in their own target syntax.
type ConstValue struct {
	Of    types.Primitive
	Bool  bool
	Int   int64   // used for I32/U32/UntypedInt; U32 stored sign-extended
	Float float64 // used for F32/F64/UntypedFloat
}

// BoolValue constructs a bool ConstValue.
func BoolValue(b bool) ConstValue { return ConstValue{Of: types.Bool, Bool: b} }

// IntValue constructs an integer ConstValue of the given concrete or
// untyped-int primitive.
func IntValue(of types.Primitive, v int64) ConstValue { return ConstValue{Of: of, Int: v} }

// FloatValue constructs a floating-point ConstValue of the given concrete
// or untyped-float primitive.
func FloatValue(of types.Primitive, v float64) ConstValue { return ConstValue{Of: of, Float: v} }

// Equal reports whether two constant values are the same primitive kind
// and payload, used by ConstantPropagation's idempotence check (spec §8
// invariant 5) and by ConditionalStatement folding.
func (c ConstValue) Equal(o ConstValue) bool {
	if c.Of != o.Of {
		return false
	}
	switch {
	case c.Of == types.Bool:
		return c.Bool == o.Bool
	case c.Of.IsFloat():
		return c.Float == o.Float
	default:
		return c.Int == o.Int
	}
}

// AsBool extracts the value as a boolean, used when a compile-time
// conditional is evaluated (ConstantPropagation, ConditionalStatement).
func (c ConstValue) AsBool() (bool, bool) {
	if c.Of != types.Bool {
		return false, false
	}
	return c.Bool, true
}

// String renders the constant in the source language's own literal
// syntax, used by the source re-emitter (§4.7) and by diagnostics.
func (c ConstValue) String() string {
	switch {
	case c.Of == types.Bool:
		if c.Bool {
			return "true"
		}
		return "false"
	case c.Of.IsFloat():
		if math.IsInf(c.Float, 1) {
			return "Infinity"
		}
		if math.IsInf(c.Float, -1) {
			return "-Infinity"
		}
		if math.IsNaN(c.Float) {
			return "NaN"
		}
		return fmt.Sprintf("%g", c.Float)
	default:
		return fmt.Sprintf("%d", c.Int)
	}
}
