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

package spirv

import "github.com/shaderlang/slc/tree"

// GLSL.std.450 extended-instruction numbers this backend emits (the
// subset of the ~130-entry set the language's intrinsics actually need).
const (
	glslRound         = 1
	glslTrunc         = 3
	glslFAbs          = 4
	glslFSign         = 6
	glslFloor         = 8
	glslCeil          = 9
	glslFract         = 10
	glslSin           = 13
	glslCos           = 14
	glslTan           = 15
	glslAsin          = 16
	glslAcos          = 17
	glslAtan          = 18
	glslAtan2         = 25
	glslPow           = 26
	glslExp           = 27
	glslLog           = 28
	glslExp2          = 29
	glslLog2          = 30
	glslSqrt          = 31
	glslInverseSqrt   = 32
	glslDeterminant   = 33
	glslMatrixInverse = 34
	glslFMin          = 37
	glslFMax          = 40
	glslFClamp        = 43
	glslFMix          = 46
	glslStep          = 48
	glslSmoothStep    = 49
	glslLength        = 66
	glslDistance      = 67
	glslCross         = 68
	glslNormalize     = 69
	glslReflect       = 71
	glslRefract       = 72
)

// directOpcode maps the intrinsics tree.IntrinsicKind.IsExtendedInstruction
// reports false for onto their SPIR-V core opcode (spec §4.5 "intrinsic
// mapping"). textureLoad/textureSize additionally depend on whether the
// operand is a sampled or storage image; callers resolve that from the
// argument's type before picking between the two opcodes this table
// doesn't disambiguate (see function.go's intrinsic emission).
func directOpcode(k tree.IntrinsicKind) (Op, bool) {
	switch k {
	case tree.IntrDot:
		return OpDot, true
	case tree.IntrSelect:
		return OpSelect, true
	case tree.IntrTextureSample:
		return OpImageSampleImplicitLod, true
	case tree.IntrTextureSampleLevel:
		return OpImageSampleExplicitLod, true
	case tree.IntrTextureLoad:
		return OpImageFetch, true
	case tree.IntrTextureStore:
		return OpImageWrite, true
	case tree.IntrTextureSize:
		return OpImageQuerySize, true
	case tree.IntrArrayLength:
		return OpArrayLength, true
	case tree.IntrDpdx:
		return OpDPdx, true
	case tree.IntrDpdy:
		return OpDPdy, true
	case tree.IntrFwidth:
		return OpFwidth, true
	// Transpose has a dedicated core opcode even though it is not one of
	// IsExtendedInstruction's listed direct opcodes: GLSL.std.450 has no
	// Transpose entry, so OpTranspose is the only representation SPIR-V
	// offers regardless of that classification.
	case tree.IntrTranspose:
		return OpTranspose, true
	default:
		return 0, false
	}
}

// extInstNumber maps the remaining intrinsics onto their GLSL.std.450
// extended-instruction number (spec §4.5).
func extInstNumber(k tree.IntrinsicKind) (uint32, bool) {
	switch k {
	case tree.IntrCross:
		return glslCross, true
	case tree.IntrLength:
		return glslLength, true
	case tree.IntrNormalize:
		return glslNormalize, true
	case tree.IntrDistance:
		return glslDistance, true
	case tree.IntrReflect:
		return glslReflect, true
	case tree.IntrRefract:
		return glslRefract, true
	case tree.IntrSin:
		return glslSin, true
	case tree.IntrCos:
		return glslCos, true
	case tree.IntrTan:
		return glslTan, true
	case tree.IntrAsin:
		return glslAsin, true
	case tree.IntrAcos:
		return glslAcos, true
	case tree.IntrAtan:
		return glslAtan, true
	case tree.IntrAtan2:
		return glslAtan2, true
	case tree.IntrPow:
		return glslPow, true
	case tree.IntrExp:
		return glslExp, true
	case tree.IntrExp2:
		return glslExp2, true
	case tree.IntrLog:
		return glslLog, true
	case tree.IntrLog2:
		return glslLog2, true
	case tree.IntrSqrt:
		return glslSqrt, true
	case tree.IntrInverseSqrt:
		return glslInverseSqrt, true
	case tree.IntrAbs:
		return glslFAbs, true
	case tree.IntrSign:
		return glslFSign, true
	case tree.IntrFloor:
		return glslFloor, true
	case tree.IntrCeil:
		return glslCeil, true
	case tree.IntrRound:
		return glslRound, true
	case tree.IntrTrunc:
		return glslTrunc, true
	case tree.IntrFract:
		return glslFract, true
	case tree.IntrMin:
		return glslFMin, true
	case tree.IntrMax:
		return glslFMax, true
	case tree.IntrClamp:
		return glslFClamp, true
	case tree.IntrMix:
		return glslFMix, true
	case tree.IntrStep:
		return glslStep, true
	case tree.IntrSmoothstep:
		return glslSmoothStep, true
	case tree.IntrInverse:
		return glslMatrixInverse, true
	case tree.IntrDeterminant:
		return glslDeterminant, true
	default:
		return 0, false
	}
}
