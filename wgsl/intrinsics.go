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

package wgsl

import "github.com/shaderlang/slc/tree"

// intrinsicNameOverrides holds the handful of intrinsics whose WGSL
// builtin spelling differs from tree.IntrinsicKind.Name()'s
// source-language spelling; every other intrinsic's WGSL name is
// identical to its source name (sin, cos, dot, clamp, ...).
var intrinsicNameOverrides = map[tree.IntrinsicKind]string{
	tree.IntrInverseSqrt: "inverseSqrt",
	tree.IntrTextureSize: "textureDimensions",
}

// intrinsicName returns k's WGSL spelling. Select, TextureSample* and
// ArrayLength are not driven by this table alone — they need argument
// reshaping the call-site emitter (intrinsicString in expr.go) handles
// directly.
func intrinsicName(k tree.IntrinsicKind) string {
	if name, ok := intrinsicNameOverrides[k]; ok {
		return name
	}
	return k.Name()
}
