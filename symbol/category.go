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

// Package symbol implements the per-module and per-scope symbol tables of
// spec §3.3/§4.2: dense, stable indices per declaration category, and a
// sorted-slice name lookup modeled on gapil/semantic.Symbols.
package symbol

// Category enumerates the declaration categories of spec §3.3. After the
// Resolve pass, every Identifier expression is rewritten to an
// IdentifierValue carrying (Category, index) rather than a name.
type Category int

const (
	Alias Category = iota
	Constant
	Function
	Struct
	Variable
	Module
	ExternalBlock
)

func (c Category) String() string {
	switch c {
	case Alias:
		return "alias"
	case Constant:
		return "constant"
	case Function:
		return "function"
	case Struct:
		return "struct"
	case Variable:
		return "variable"
	case Module:
		return "module"
	case ExternalBlock:
		return "external-block"
	default:
		return "?"
	}
}
