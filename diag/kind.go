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

package diag

// Kind enumerates the diagnostic kinds of spec §7. It is not a Go error
// type in its own right — Diagnostic is — Kind only classifies one.
type Kind int

const (
	Lexical Kind = iota
	Parse
	UnknownIdentifier
	AmbiguousCall
	TypeMismatch
	InvalidAttribute
	DuplicateBinding
	MissingEntryPoint
	UnsupportedBackendFeature
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Parse:
		return "Parse"
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case AmbiguousCall:
		return "AmbiguousCall"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidAttribute:
		return "InvalidAttribute"
	case DuplicateBinding:
		return "DuplicateBinding"
	case MissingEntryPoint:
		return "MissingEntryPoint"
	case UnsupportedBackendFeature:
		return "UnsupportedBackendFeature"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}
