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

// IntrinsicKind enumerates the language's built-in intrinsic functions
// (spec §3.2 "a call to one of the language's built-in intrinsic
// operations... mapped either to a direct SPIR-V opcode... or to an
// extended-instruction call against the GLSL.std.450 set", spec
// glossary "Intrinsic").
type IntrinsicKind int

const (
	IntrDot IntrinsicKind = iota
	IntrCross
	IntrLength
	IntrNormalize
	IntrDistance
	IntrReflect
	IntrRefract
	IntrSin
	IntrCos
	IntrTan
	IntrAsin
	IntrAcos
	IntrAtan
	IntrAtan2
	IntrPow
	IntrExp
	IntrExp2
	IntrLog
	IntrLog2
	IntrSqrt
	IntrInverseSqrt
	IntrAbs
	IntrSign
	IntrFloor
	IntrCeil
	IntrRound
	IntrTrunc
	IntrFract
	IntrMin
	IntrMax
	IntrClamp
	IntrMix
	IntrStep
	IntrSmoothstep
	IntrTranspose
	IntrInverse
	IntrDeterminant
	IntrSelect
	IntrTextureSample
	IntrTextureSampleLevel
	IntrTextureLoad
	IntrTextureStore
	IntrTextureSize
	IntrArrayLength
	IntrDpdx
	IntrDpdy
	IntrFwidth
)

// Name returns the intrinsic's source-language spelling, used by the
// source re-emitter (spec §1 "re-emitting the language's own syntax")
// and by diagnostics.
func (k IntrinsicKind) Name() string {
	names := [...]string{
		"dot", "cross", "length", "normalize", "distance", "reflect",
		"refract", "sin", "cos", "tan", "asin", "acos", "atan", "atan2",
		"pow", "exp", "exp2", "log", "log2", "sqrt", "inversesqrt", "abs",
		"sign", "floor", "ceil", "round", "trunc", "fract", "min", "max",
		"clamp", "mix", "step", "smoothstep", "transpose", "inverse",
		"determinant", "select", "textureSample", "textureSampleLevel",
		"textureLoad", "textureStore", "textureSize", "arrayLength",
		"dpdx", "dpdy", "fwidth",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "?"
	}
	return names[k]
}

// IsExtendedInstruction reports whether k maps to a GLSL.std.450
// extended-instruction call in SPIR-V (spec §4.5) rather than a direct
// core opcode (e.g. dot -> OpDot, cross -> GLSL450::Cross).
func (k IntrinsicKind) IsExtendedInstruction() bool {
	switch k {
	case IntrDot, IntrSelect, IntrTextureSample, IntrTextureSampleLevel,
		IntrTextureLoad, IntrTextureStore, IntrTextureSize, IntrArrayLength,
		IntrDpdx, IntrDpdy, IntrFwidth:
		return false
	default:
		return true
	}
}
