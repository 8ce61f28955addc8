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

import "fmt"

// List accumulates diagnostics for a single pass invocation or compile.
type List []Diagnostic

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	return fmt.Sprintf("%d diagnostics, first was: %v", len(l), l[0])
}

// Add appends a diagnostic, panicking with Abort once ErrorLimit is
// exceeded so the caller can unwind a single recover() at the top of the
// pass/executor, matching parse.ErrorList.Add's discipline.
func (l *List) Add(d Diagnostic) {
	if len(*l) >= ErrorLimit {
		panic(Abort)
	}
	*l = append(*l, d)
}

// HasErrors reports whether any diagnostic was recorded.
func (l List) HasErrors() bool { return len(l) > 0 }
