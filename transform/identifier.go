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

package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// Sanitizer rewrites a single identifier into one that is safe to emit:
// escaping reserved keywords, avoiding the compiler's own generated-name
// prefix, and collapsing runs of underscores (spec §4.4). The caller
// supplies one per target backend (WGSL, GLSL, SPIR-V debug names).
type Sanitizer func(name string) string

var collapseUnderscores = regexp.MustCompile(`_{2,}`)

// DefaultSanitizer builds the common-case Sanitizer described by spec
// §4.4/§4.7/§12: escape names in reserved (keywords ∪ intrinsic names),
// escape names starting with prefix (the compiler's own reserved
// namespace, e.g. "_nzsl"), and collapse repeated underscores (WGSL and
// GLSL both disallow leading/doubled underscores in some contexts).
func DefaultSanitizer(reserved map[string]bool, prefix string) Sanitizer {
	return func(name string) string {
		out := name
		if collapseUnderscores.MatchString(out) {
			out = collapseUnderscores.ReplaceAllString(out, "_")
		}
		if prefix != "" && strings.HasPrefix(out, prefix) {
			out = "_" + out
		}
		if reserved[out] {
			out = out + "_"
		}
		return out
	}
}

// IdentifierTransformer applies a caller-supplied Sanitizer to every
// declared identifier in the module (spec §4.4), and optionally enforces
// global uniqueness across overlapping scopes afterward (spec §8
// invariant 6).
type IdentifierTransformer struct {
	sanitize Sanitizer
	unique   bool
}

// NewIdentifierTransformer constructs the pass. A nil sanitize is
// treated as the identity function (no escaping, e.g. for the source
// re-emitter which always round-trips the original spelling).
func NewIdentifierTransformer(sanitize Sanitizer) *IdentifierTransformer {
	if sanitize == nil {
		sanitize = func(s string) string { return s }
	}
	return &IdentifierTransformer{sanitize: sanitize}
}

// WithUniqueness returns a copy of it with global-uniqueness enforcement
// turned on (spec §4.4 "optionally enforces global uniqueness by
// appending suffixes").
func (it *IdentifierTransformer) WithUniqueness() *IdentifierTransformer {
	return &IdentifierTransformer{sanitize: it.sanitize, unique: true}
}

func (*IdentifierTransformer) Name() string { return "IdentifierTransformer" }

func (it *IdentifierTransformer) Run(m *tree.Module, ctx *Context) (changed bool, errs diag.List) {
	sanitize := it.sanitize
	if ctx != nil && ctx.ReservedWords != nil {
		sanitize = DefaultSanitizer(ctx.ReservedWords, ctx.ReservedPrefix)
	}
	unique := it.unique || (ctx != nil && ctx.EnforceUniqueness)

	seen := map[string]bool{}
	rename := func(name string) string {
		s := sanitize(name)
		if !unique {
			return s
		}
		base := s
		for i := 1; seen[s]; i++ {
			s = fmt.Sprintf("%s_%d", base, i)
		}
		seen[s] = true
		return s
	}

	for _, a := range m.Aliases {
		if r := rename(a.Name); r != a.Name {
			a.Name, changed = r, true
		}
	}
	for _, c := range m.Consts {
		if r := rename(c.Name); r != c.Name {
			c.Name, changed = r, true
		}
	}
	for _, s := range m.Structs {
		if r := rename(s.Name); r != s.Name {
			s.Name, changed = r, true
		}
		for i := range s.Members {
			if r := rename(s.Members[i].Name); r != s.Members[i].Name {
				s.Members[i].Name, changed = r, true
			}
		}
	}
	for _, f := range m.Functions {
		if r := rename(f.Name); r != f.Name {
			f.Name, changed = r, true
		}
		for i := range f.Params {
			if r := rename(f.Params[i].Name); r != f.Params[i].Name {
				f.Params[i].Name, changed = r, true
			}
		}
	}
	for _, v := range m.Variables {
		if r := rename(v.Name); r != v.Name {
			v.Name, changed = r, true
		}
	}
	for _, b := range m.ExternalBlocks {
		if b.Name != "" {
			if r := rename(b.Name); r != b.Name {
				b.Name, changed = r, true
			}
		}
		for i := range b.Variables {
			if r := rename(b.Variables[i].Name); r != b.Variables[i].Name {
				b.Variables[i].Name, changed = r, true
			}
		}
	}
	return changed, nil
}
