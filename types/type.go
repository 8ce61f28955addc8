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

// Package types implements the universe of expression types of the shading
// language (spec §3.1) and the structural operations over them (§4.1).
// Types are value-compared structurally; aliases never participate in
// equality (they are resolved through first).
package types

// Type is implemented by every type variant. Types are plain Go values
// (not pointers, except where a variant owns a nested Type) so that two
// structurally identical types compare equal with ==, matching the
// teacher's preference for pointer-free, structurally-compared data
// (gapil/semantic.Type is the one exception in the teacher, being
// pointer-identified; this spec instead follows NZSL's ExpressionType.hpp,
// a plain structural variant compared field-by-field).
type Type interface {
	isType()
	// String returns a human-readable rendering of the type, used by
	// diagnostics and by the source re-emitter.
	String() string
}

// Kind classifies a Type without needing a type switch; it is used by the
// is_<variant> family of predicates (§4.1).
type Kind int

const (
	KindPrimitive Kind = iota
	KindVector
	KindMatrix
	KindArray
	KindDynArray
	KindStruct
	KindAlias
	KindFunction
	KindMethod
	KindIntrinsic
	KindModule
	KindNamedExternalBlock
	KindSampler
	KindTexture
	KindUniform
	KindStorage
	KindPushConstant
	KindTypeHandle
	KindNoType
	KindImplicitArray
	KindImplicitVector
	KindImplicitMatrix
)

func (k Kind) String() string {
	names := [...]string{
		"Primitive", "Vector", "Matrix", "Array", "DynArray", "Struct",
		"Alias", "Function", "Method", "Intrinsic", "Module",
		"NamedExternalBlock", "Sampler", "Texture", "Uniform", "Storage",
		"PushConstant", "Type", "NoType", "ImplicitArray",
		"ImplicitVector", "ImplicitMatrix",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// KindOf returns the Kind of t, or panics if t is an unrecognized
// implementation of Type (which would indicate a new variant was added to
// this package without updating KindOf — an internal invariant, not a
// user-facing error).
func KindOf(t Type) Kind {
	switch t.(type) {
	case Primitive:
		return KindPrimitive
	case Vector:
		return KindVector
	case Matrix:
		return KindMatrix
	case Array:
		return KindArray
	case DynArray:
		return KindDynArray
	case Struct:
		return KindStruct
	case Alias:
		return KindAlias
	case Function:
		return KindFunction
	case Method:
		return KindMethod
	case Intrinsic:
		return KindIntrinsic
	case Module:
		return KindModule
	case NamedExternalBlock:
		return KindNamedExternalBlock
	case Sampler:
		return KindSampler
	case Texture:
		return KindTexture
	case Uniform:
		return KindUniform
	case Storage:
		return KindStorage
	case PushConstant:
		return KindPushConstant
	case TypeHandle:
		return KindTypeHandle
	case NoType:
		return KindNoType
	case ImplicitArray:
		return KindImplicitArray
	case ImplicitVector:
		return KindImplicitVector
	case ImplicitMatrix:
		return KindImplicitMatrix
	default:
		panic("types: unrecognized Type implementation")
	}
}

// Is reports whether t's Kind is k. This backs the is_<variant> predicate
// family from spec §4.1 (is_struct, is_sampler, ...) as a single generic
// helper instead of one function per variant, since Go callers can just
// write types.Is(t, types.KindStruct).
func Is(t Type, k Kind) bool { return KindOf(t) == k }
