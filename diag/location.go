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

// Package diag implements the compiler's diagnostic model: an enumerated
// kind, a message and a source span, propagated per spec §7 — a pass
// returns on the first error it finds and the executor surfaces it to the
// caller without attempting to continue.
package diag

import "fmt"

// Location is a source span, reported back to the host for formatting
// (§1: "pretty-printing of source locations for diagnostics" is the
// host's job, not this package's — Location only carries the raw data).
type Location struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// IsValid reports whether the location carries real data.
func (l Location) IsValid() bool { return l.Line > 0 }

func (l Location) String() string {
	if !l.IsValid() {
		return "-"
	}
	file := l.File
	if file == "" {
		file = "-"
	}
	if l.EndLine == 0 || (l.EndLine == l.Line && l.EndColumn == l.Column) {
		return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", file, l.Line, l.Column, l.EndLine, l.EndColumn)
}
