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

// Package spirv implements the SPIR-V binary backend of spec §4.5: a
// structured-control-flow, SSA module assembled word-by-word from a
// typed tree.Module. The opcode table below is scoped to the
// instructions this backend actually emits rather than the full SPIR-V
// catalog (~750 instructions) — the emitter never needs to recognize an
// instruction it doesn't itself produce, unlike a disassembler or
// validator would.
package spirv

// Op is a SPIR-V opcode, the low 16 bits of an instruction's first word
// (spec §4.5 "Model").
type Op uint32

const (
	OpNop                    Op = 0
	OpSource                 Op = 3
	OpName                   Op = 5
	OpMemberName             Op = 6
	OpExtInstImport          Op = 11
	OpExtInst                Op = 12
	OpMemoryModel            Op = 14
	OpEntryPoint             Op = 15
	OpExecutionMode          Op = 16
	OpCapability             Op = 17
	OpTypeVoid               Op = 19
	OpTypeBool               Op = 20
	OpTypeInt                Op = 21
	OpTypeFloat              Op = 22
	OpTypeVector             Op = 23
	OpTypeMatrix             Op = 24
	OpTypeImage              Op = 25
	OpTypeSampler            Op = 26
	OpTypeSampledImage       Op = 27
	OpTypeArray              Op = 28
	OpTypeRuntimeArray       Op = 29
	OpTypeStruct             Op = 30
	OpTypePointer            Op = 32
	OpTypeFunction           Op = 33
	OpConstantTrue           Op = 41
	OpConstantFalse          Op = 42
	OpConstant               Op = 43
	OpConstantComposite      Op = 44
	OpFunction               Op = 54
	OpFunctionParameter      Op = 55
	OpFunctionEnd            Op = 56
	OpFunctionCall           Op = 57
	OpVariable               Op = 59
	OpLoad                   Op = 61
	OpStore                  Op = 62
	OpAccessChain            Op = 65
	OpDecorate               Op = 71
	OpMemberDecorate         Op = 72
	OpVectorShuffle          Op = 79
	OpCompositeConstruct     Op = 80
	OpCompositeExtract       Op = 81
	OpTranspose              Op = 84
	OpSampledImage           Op = 86
	OpImageSampleImplicitLod Op = 87
	OpImageSampleExplicitLod Op = 88
	OpImageFetch             Op = 95
	OpImageRead              Op = 98
	OpImageWrite             Op = 99
	OpImageQuerySizeLod      Op = 103
	OpImageQuerySize         Op = 104
	OpConvertFToU            Op = 109
	OpConvertFToS            Op = 110
	OpConvertSToF            Op = 111
	OpConvertUToF            Op = 112
	OpFConvert               Op = 115
	OpBitcast                Op = 124
	OpSNegate                Op = 126
	OpFNegate                Op = 127
	OpIAdd                   Op = 128
	OpFAdd                   Op = 129
	OpISub                   Op = 130
	OpFSub                   Op = 131
	OpIMul                   Op = 132
	OpFMul                   Op = 133
	OpUDiv                   Op = 134
	OpSDiv                   Op = 135
	OpFDiv                   Op = 136
	OpUMod                   Op = 137
	OpSRem                   Op = 138
	OpFRem                   Op = 140
	OpVectorTimesScalar      Op = 142
	OpMatrixTimesScalar      Op = 143
	OpVectorTimesMatrix      Op = 144
	OpMatrixTimesVector      Op = 145
	OpMatrixTimesMatrix      Op = 146
	OpDot                    Op = 148
	OpLogicalEqual           Op = 164
	OpLogicalNotEqual        Op = 165
	OpLogicalOr              Op = 166
	OpLogicalAnd             Op = 167
	OpLogicalNot             Op = 168
	OpSelect                 Op = 169
	OpIEqual                 Op = 170
	OpINotEqual              Op = 171
	OpUGreaterThan           Op = 172
	OpSGreaterThan           Op = 173
	OpUGreaterThanEqual      Op = 174
	OpSGreaterThanEqual      Op = 175
	OpULessThan              Op = 176
	OpSLessThan              Op = 177
	OpULessThanEqual         Op = 178
	OpSLessThanEqual         Op = 179
	OpFOrdEqual              Op = 180
	OpFOrdNotEqual           Op = 182
	OpFOrdLessThan           Op = 184
	OpFOrdGreaterThan        Op = 186
	OpFOrdLessThanEqual      Op = 188
	OpFOrdGreaterThanEqual   Op = 190
	OpShiftRightLogical      Op = 194
	OpShiftRightArithmetic   Op = 195
	OpShiftLeftLogical       Op = 196
	OpBitwiseOr              Op = 197
	OpBitwiseXor             Op = 198
	OpBitwiseAnd             Op = 199
	OpNot                    Op = 200
	OpDPdx                   Op = 207
	OpDPdy                   Op = 208
	OpFwidth                 Op = 209
	OpLoopMerge              Op = 246
	OpSelectionMerge         Op = 247
	OpLabel                  Op = 248
	OpBranch                 Op = 249
	OpBranchConditional      Op = 250
	OpKill                   Op = 252
	OpReturn                 Op = 253
	OpReturnValue            Op = 254
	OpUnreachable            Op = 255
	OpArrayLength            Op = 68
)

// Capability enumerates the SPIR-V capability enumerants this backend
// may need to declare (spec §4.5 "capability/extension tracking").
type Capability uint32

const (
	CapabilityShader     Capability = 1
	CapabilityImageQuery Capability = 50
)

// ExecutionModel selects the entry point's shader stage (spec §4.5
// "entry points with interfaces").
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// ExecutionMode enumerates the execution modes this backend emits.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeDepthReplacing  ExecutionMode = 12
	ExecutionModeDepthGreater    ExecutionMode = 14
	ExecutionModeDepthLess       ExecutionMode = 15
	ExecutionModeDepthUnchanged  ExecutionMode = 16
	ExecutionModeLocalSize       ExecutionMode = 17
)

// StorageClass enumerates the pointer storage classes this backend
// uses (spec §4.5 "resource model").
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration enumerates the decoration enumerants this backend emits.
type Decoration uint32

const (
	DecorationColMajor      Decoration = 5
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
	DecorationArrayStride   Decoration = 6
	DecorationNonWritable   Decoration = 24
	DecorationNonReadable   Decoration = 25
	DecorationNoPerspective Decoration = 13
	DecorationFlat          Decoration = 14
)

// BuiltIn enumerates the BuiltIn decoration enumerants this backend
// maps tree.BuiltinRole onto (spec §6.4), see builtins.go.
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
	BuiltInFragCoord            BuiltIn = 15
	BuiltInFragDepth            BuiltIn = 22
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInLocalInvocationId    BuiltIn = 27
	BuiltInGlobalInvocationId   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInWorkgroupId          BuiltIn = 26
	BuiltInBaseVertex           BuiltIn = 4424
	BuiltInBaseInstance         BuiltIn = 4425
	BuiltInDrawIndex            BuiltIn = 4426
)

// instructionHeader encodes one instruction's opcode + operand-word-count header
// (low 16 bits opcode, high 16 bits word count including this one).
func instructionHeader(op Op, wordCount int) uint32 {
	return uint32(op) | uint32(wordCount)<<16
}
