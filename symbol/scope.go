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

package symbol

// Scopes is a stack of per-block variable tables used by the Resolve
// pass while it walks function bodies, statement blocks and for-loop
// bodies (spec §4.2). Each entry in a Scopes frame maps a local name to
// the Variable-category index assigned when the declaration was
// registered in the module-wide table; Scopes itself only resolves name
// shadowing, it does not own the Variable declarations.
type Scopes struct {
	frames []map[string]int
}

// Enter pushes a new, empty block scope.
func (s *Scopes) Enter() { s.frames = append(s.frames, map[string]int{}) }

// Leave pops the innermost block scope. It panics if called with no
// scope entered — a pass bug, not a user-facing error.
func (s *Scopes) Leave() {
	if len(s.frames) == 0 {
		panic("symbol: Leave with no scope entered")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Declare binds name to index in the innermost scope. It returns false
// if name is already declared in that same scope (a duplicate
// declaration within one block; the existing binding is kept, and the
// Resolve pass does not check the result) - shadowing an outer scope's
// name is legal and returns true.
func (s *Scopes) Declare(name string, index int) bool {
	if len(s.frames) == 0 {
		panic("symbol: Declare with no scope entered")
	}
	top := s.frames[len(s.frames)-1]
	if _, exists := top[name]; exists {
		return false
	}
	top[name] = index
	return true
}

// Lookup searches from the innermost to the outermost scope and returns
// the first match, implementing ordinary lexical shadowing.
func (s *Scopes) Lookup(name string) (index int, ok bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if idx, found := s.frames[i][name]; found {
			return idx, true
		}
	}
	return 0, false
}

// Depth returns the number of scopes currently entered.
func (s *Scopes) Depth() int { return len(s.frames) }
