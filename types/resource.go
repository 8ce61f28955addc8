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

import "fmt"

// ImageDim enumerates sampler/texture dimensionality (spec §3.1).
type ImageDim int

const (
	Dim1D ImageDim = iota
	Dim1DArray
	Dim2D
	Dim2DArray
	Dim3D
	DimCube
)

func (d ImageDim) String() string {
	switch d {
	case Dim1D:
		return "1D"
	case Dim1DArray:
		return "1D_array"
	case Dim2D:
		return "2D"
	case Dim2DArray:
		return "2D_array"
	case Dim3D:
		return "3D"
	case DimCube:
		return "cube"
	default:
		return "?"
	}
}

// Sampler is a combined image/sampler type (spec §3.1).
type Sampler struct {
	Dim   ImageDim
	Of    Primitive
	Depth bool
}

func (Sampler) isType() {}

func (s Sampler) String() string {
	if s.Depth {
		return fmt.Sprintf("depth_sampler%s[%s]", s.Dim, s.Of)
	}
	return fmt.Sprintf("sampler%s[%s]", s.Dim, s.Of)
}

// ImageFormat enumerates the storage texel formats a storage Texture can
// be declared with.
type ImageFormat int

const (
	FormatRGBA8 ImageFormat = iota
	FormatRGBA16F
	FormatRGBA32F
	FormatR32F
	FormatR32I
	FormatR32UI
	FormatRG32F
)

func (f ImageFormat) String() string {
	names := [...]string{"rgba8", "rgba16f", "rgba32f", "r32f", "r32i", "r32ui", "rg32f"}
	if int(f) < 0 || int(f) >= len(names) {
		return "?"
	}
	return names[f]
}

// Access enumerates the access policy of a Texture or Storage wrapper.
type Access int

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "read"
	case WriteOnly:
		return "write"
	case ReadWrite:
		return "readwrite"
	default:
		return "?"
	}
}

// Texture is a storage/sampled image type (spec §3.1).
type Texture struct {
	Format ImageFormat
	Dim    ImageDim
	Of     Primitive
	Access Access
}

func (Texture) isType() {}

func (t Texture) String() string {
	return fmt.Sprintf("texture%s[%s, %s, %s]", t.Dim, t.Of, t.Format, t.Access)
}

// Uniform, Storage and PushConstant are address-space-qualified struct
// wrappers (spec §3.1). All three wrap exactly one Struct type.
type Uniform struct{ Of Struct }

func (Uniform) isType()          {}
func (u Uniform) String() string { return fmt.Sprintf("uniform[%s]", u.Of) }

type Storage struct {
	Of     Struct
	Access Access
}

func (Storage) isType()          {}
func (s Storage) String() string { return fmt.Sprintf("storage[%s, %s]", s.Of, s.Access) }

type PushConstant struct{ Of Struct }

func (PushConstant) isType()          {}
func (p PushConstant) String() string { return fmt.Sprintf("push_constant[%s]", p.Of) }
