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

// ResolveAlias peels alias layers until a non-alias is reached (spec
// §4.1). Mirrors gapil/semantic.Underlying's loop-until-non-pseudonym
// shape, generalized to our single Alias variant.
func ResolveAlias(t Type) Type {
	for {
		a, ok := t.(Alias)
		if !ok {
			return t
		}
		t = a.Target
	}
}

// ResolveStructIndex returns the struct index reachable from t through
// aliases and the Uniform/Storage/PushConstant wrappers, or (0, false) if
// t does not ultimately name a struct.
func ResolveStructIndex(t Type) (int, bool) {
	t = ResolveAlias(t)
	switch v := t.(type) {
	case Struct:
		return v.Index, true
	case Uniform:
		return v.Of.Index, true
	case Storage:
		return v.Of.Index, true
	case PushConstant:
		return v.Of.Index, true
	default:
		return 0, false
	}
}

// UnwrapExternal strips a Uniform/Storage/PushConstant wrapper, yielding
// the underlying struct type. If t is not one of those three wrappers
// (after alias resolution) it is returned unchanged.
func UnwrapExternal(t Type) Type {
	switch v := ResolveAlias(t).(type) {
	case Uniform:
		return v.Of
	case Storage:
		return v.Of
	case PushConstant:
		return v.Of
	default:
		return t
	}
}

// WrapExternal re-applies the same address-space wrapper that reference
// carries (after alias resolution) to the struct s. It panics if
// reference is not one of the three wrapper kinds, or if s is not a
// Struct — both represent a programming error in a pass, not a
// user-facing diagnostic.
func WrapExternal(s Type, reference Type) Type {
	st, ok := s.(Struct)
	if !ok {
		panic("types.WrapExternal: s is not a Struct")
	}
	switch v := ResolveAlias(reference).(type) {
	case Uniform:
		return Uniform{Of: st}
	case Storage:
		return Storage{Of: st, Access: v.Access}
	case PushConstant:
		return PushConstant{Of: st}
	default:
		panic("types.WrapExternal: reference is not an address-space wrapper")
	}
}

// IsExternalWrapper reports whether t (after alias resolution) is one of
// Uniform, Storage or PushConstant.
func IsExternalWrapper(t Type) bool {
	switch ResolveAlias(t).(type) {
	case Uniform, Storage, PushConstant:
		return true
	default:
		return false
	}
}

// Equal implements the structural equality rule of spec §3.1: "Types are
// value-compared structurally; aliases never participate in equality
// (they are resolved through)". Struct/Function/Method/Intrinsic/Module/
// NamedExternalBlock compare by Index (their identity is the index, the
// Name field is display-only and intentionally excluded), every other
// variant compares every field structurally.
func Equal(a, b Type) bool {
	a, b = ResolveAlias(a), ResolveAlias(b)
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch av := a.(type) {
	case Primitive:
		return av == b.(Primitive)
	case Vector:
		bv := b.(Vector)
		return av.Size == bv.Size && av.Of == bv.Of
	case Matrix:
		bv := b.(Matrix)
		return av.Columns == bv.Columns && av.Rows == bv.Rows && av.Of == bv.Of
	case Array:
		bv := b.(Array)
		return av.Length == bv.Length && Equal(av.Of, bv.Of)
	case DynArray:
		bv := b.(DynArray)
		return Equal(av.Of, bv.Of)
	case Struct:
		return av.Index == b.(Struct).Index
	case Function:
		return av.Index == b.(Function).Index
	case Method:
		bv := b.(Method)
		return av.Index == bv.Index && Equal(av.On, bv.On)
	case Intrinsic:
		return av.Index == b.(Intrinsic).Index
	case Module:
		return av.Index == b.(Module).Index
	case NamedExternalBlock:
		return av.Index == b.(NamedExternalBlock).Index
	case Sampler:
		bv := b.(Sampler)
		return av.Dim == bv.Dim && av.Of == bv.Of && av.Depth == bv.Depth
	case Texture:
		bv := b.(Texture)
		return av.Format == bv.Format && av.Dim == bv.Dim && av.Of == bv.Of && av.Access == bv.Access
	case Uniform:
		return av.Of.Index == b.(Uniform).Of.Index
	case Storage:
		bv := b.(Storage)
		return av.Of.Index == bv.Of.Index && av.Access == bv.Access
	case PushConstant:
		return av.Of.Index == b.(PushConstant).Of.Index
	case TypeHandle:
		return Equal(av.Of, b.(TypeHandle).Of)
	case NoType:
		return true
	case ImplicitArray:
		return Equal(av.Of, b.(ImplicitArray).Of)
	case ImplicitVector:
		return av.Of == b.(ImplicitVector).Of
	case ImplicitMatrix:
		return av.Of == b.(ImplicitMatrix).Of
	default:
		return false
	}
}
