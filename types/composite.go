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

// Vector is a fixed component count over a primitive (spec §3.1:
// component count in {2,3,4}).
type Vector struct {
	Size uint8 // 2, 3 or 4
	Of   Primitive
}

func (Vector) isType() {}

func (v Vector) String() string { return fmt.Sprintf("vec%d[%s]", v.Size, v.Of) }

// Matrix is a column count × row count, both in {2,3,4}, over a
// primitive (spec §3.1).
type Matrix struct {
	Columns uint8
	Rows    uint8
	Of      Primitive
}

func (Matrix) isType() {}

func (m Matrix) String() string { return fmt.Sprintf("mat%dx%d[%s]", m.Columns, m.Rows, m.Of) }

// Array is a fixed-length array (length > 0) over any element type.
type Array struct {
	Of     Type
	Length uint32
}

func (Array) isType() {}

func (a Array) String() string { return fmt.Sprintf("%s[%d]", a.Of, a.Length) }

// DynArray is a runtime-length array over any element type. It can only
// appear as the last member of a Storage-wrapped struct (enforced by
// ValidationTransformer).
type DynArray struct {
	Of Type
}

func (DynArray) isType() {}

func (a DynArray) String() string { return fmt.Sprintf("%s[]", a.Of) }

// Struct is a reference to an entry in the module's struct table by
// index (spec §3.1: "Struct indices are dense within a module and stable
// across passes").
type Struct struct {
	Index int
	// Name mirrors the declared struct name purely for String(); equality
	// and resolution always go through Index, never Name (spec §3.1:
	// "Types are value-compared structurally").
	Name string
}

func (Struct) isType() {}

func (s Struct) String() string { return s.Name }

// Alias is a reference to an entry in the module's alias table. Per spec
// §3.1, "aliases never participate in equality (they are resolved
// through)" — equality on an Alias value always compares Target, not
// Index or Name, so two aliases to the same underlying type compare
// equal even if declared separately. See Equal in equality.go.
type Alias struct {
	Index  int
	Name   string
	Target Type
}

func (Alias) isType() {}

func (a Alias) String() string { return a.Name }

// Function, Method and Intrinsic are callable types referenced by index
// into their respective declaration tables.
type Function struct {
	Index int
	Name  string
}

func (Function) isType()          {}
func (f Function) String() string { return fmt.Sprintf("fn(%s)", f.Name) }

type Method struct {
	Index int
	Name  string
	On    Type
}

func (Method) isType()          {}
func (m Method) String() string { return fmt.Sprintf("%s.%s", m.On, m.Name) }

type Intrinsic struct {
	Index int
	Name  string
}

func (Intrinsic) isType()          {}
func (i Intrinsic) String() string { return fmt.Sprintf("intrinsic(%s)", i.Name) }

// Module and NamedExternalBlock are namespace-like handles, referenced by
// index.
type Module struct {
	Index int
	Name  string
}

func (Module) isType()          {}
func (m Module) String() string { return m.Name }

type NamedExternalBlock struct {
	Index int
	Name  string
}

func (NamedExternalBlock) isType()          {}
func (b NamedExternalBlock) String() string { return b.Name }

// TypeHandle is a first-class handle to a type (e.g. the argument to a
// cast-like intrinsic that takes a type rather than a value).
type TypeHandle struct {
	Of Type
}

func (TypeHandle) isType()          {}
func (t TypeHandle) String() string { return fmt.Sprintf("type(%s)", t.Of) }

// NoType is the void type.
type NoType struct{}

func (NoType) isType()        {}
func (NoType) String() string { return "void" }
