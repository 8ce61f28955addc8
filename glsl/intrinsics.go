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

package glsl

import "github.com/shaderlang/slc/tree"

// intrinsicNameOverrides holds the intrinsics whose GLSL spelling
// differs from tree.IntrinsicKind.Name()'s source-language spelling.
// Most intrinsics (sin, cos, dot, clamp, inversesqrt, ...) are already
// spelled the GLSL way in Name() itself — GLSL and this language agree
// on those by construction — so only the genuine mismatches are listed
// here, mirroring wgsl.intrinsicNameOverrides' shape but a different,
// GLSL-specific set of exceptions.
var intrinsicNameOverrides = map[tree.IntrinsicKind]string{
	tree.IntrAtan2:              "atan", // GLSL's two-argument atan(y, x) replaces a separate atan2.
	tree.IntrTextureSample:      "texture",
	tree.IntrTextureSampleLevel: "textureLod",
	tree.IntrTextureLoad:        "texelFetch",
	tree.IntrTextureStore:       "imageStore",
}

// intrinsicName returns k's GLSL spelling. Select and ArrayLength are
// not driven by this table — select lowers to mix() with argument
// reshaping and ArrayLength lowers to a `.length()` method call, both
// handled at the call site in expr.go.
func intrinsicName(k tree.IntrinsicKind) string {
	if name, ok := intrinsicNameOverrides[k]; ok {
		return name
	}
	return k.Name()
}
