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

package transform

import (
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// intrinsicResultType computes the result type of an intrinsic call from
// its (already-resolved) argument types, following the same small set of
// shape rules the source language's built-ins use: most component-wise
// ops preserve the first argument's type; reductions (length, distance,
// dot) return a scalar of the vector's component type; matrix ops return
// derived shapes.
func intrinsicResultType(k tree.IntrinsicKind, args []tree.Expression) types.Type {
	if len(args) == 0 {
		return types.NoType{}
	}
	first := args[0].Type()
	switch k {
	case tree.IntrDot, tree.IntrLength, tree.IntrDistance:
		if v, ok := types.ResolveAlias(first).(types.Vector); ok {
			return v.Of
		}
		return first
	case tree.IntrArrayLength:
		return types.U32
	case tree.IntrTextureSize:
		return types.Vector{Size: 2, Of: types.I32}
	case tree.IntrTextureSample, tree.IntrTextureSampleLevel, tree.IntrTextureLoad:
		if len(args) > 0 {
			if tex, ok := types.ResolveAlias(first).(types.Sampler); ok {
				return types.Vector{Size: 4, Of: tex.Of}
			}
			if tex, ok := types.ResolveAlias(first).(types.Texture); ok {
				return types.Vector{Size: 4, Of: tex.Of}
			}
		}
		return types.Vector{Size: 4, Of: types.F32}
	case tree.IntrTextureStore:
		return types.NoType{}
	case tree.IntrTranspose:
		if m, ok := types.ResolveAlias(first).(types.Matrix); ok {
			return types.Matrix{Columns: m.Rows, Rows: m.Columns, Of: m.Of}
		}
		return first
	case tree.IntrDeterminant:
		if m, ok := types.ResolveAlias(first).(types.Matrix); ok {
			return m.Of
		}
		return first
	case tree.IntrSelect:
		if len(args) >= 2 {
			return args[1].Type()
		}
		return first
	default:
		return first
	}
}
