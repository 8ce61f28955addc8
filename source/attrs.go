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

package source

import (
	"fmt"
	"strings"

	"github.com/shaderlang/slc/tree"
)

// attrString renders a's set fields as a bracketed attribute list (spec
// §6.3's enumerated attribute set), e.g. `[entry(fragment), location(0)]`.
// It returns "" when a carries nothing worth printing, so callers can
// skip the attribute line entirely rather than emit an empty `[]`.
func attrString(a tree.Attributes) string {
	var parts []string

	if a.AutoBindingSet {
		parts = append(parts, fmt.Sprintf("auto_binding(%t)", a.AutoBinding))
	}
	if a.Author != "" {
		parts = append(parts, fmt.Sprintf("author(%q)", a.Author))
	}
	if a.HasBinding {
		parts = append(parts, fmt.Sprintf("binding(%d)", a.Binding))
	}
	if a.Builtin != tree.NoBuiltin {
		parts = append(parts, fmt.Sprintf("builtin(%s)", a.Builtin))
	}
	if a.Cond != "" {
		parts = append(parts, fmt.Sprintf("cond(%s)", a.Cond))
	}
	if a.DepthWrite != tree.DepthReplace {
		parts = append(parts, fmt.Sprintf("depth_write(%s)", a.DepthWrite))
	}
	if a.Description != "" {
		parts = append(parts, fmt.Sprintf("description(%q)", a.Description))
	}
	if a.EarlyFragmentTests {
		parts = append(parts, "early_fragment_tests(true)")
	}
	if a.Entry != tree.NoStage {
		parts = append(parts, fmt.Sprintf("entry(%s)", a.Entry))
	}
	if a.Interp != tree.NoInterp {
		parts = append(parts, fmt.Sprintf("interp(%s)", a.Interp))
	}
	if a.HasLayout {
		parts = append(parts, fmt.Sprintf("layout(%s)", a.Layout))
	}
	if a.License != "" {
		parts = append(parts, fmt.Sprintf("license(%q)", a.License))
	}
	if a.HasLocation {
		parts = append(parts, fmt.Sprintf("location(%d)", a.Location))
	}
	if a.HasSet {
		parts = append(parts, fmt.Sprintf("set(%d)", a.Set))
	}
	if a.Tag != "" {
		parts = append(parts, fmt.Sprintf("tag(%q)", a.Tag))
	}
	if a.Unroll != tree.UnrollHint {
		parts = append(parts, fmt.Sprintf("unroll(%s)", unrollName(a.Unroll)))
	}
	if a.HasWorkgroup {
		parts = append(parts, fmt.Sprintf("workgroup(%d, %d, %d)", a.Workgroup[0], a.Workgroup[1], a.Workgroup[2]))
	}

	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// writeAttrLine prints attrString(a) on its own line, if non-empty.
func (w *Writer) writeAttrLine(a tree.Attributes) {
	if s := attrString(a); s != "" {
		w.line("%s", s)
	}
}

func unrollName(u tree.Unroll) string {
	switch u {
	case tree.UnrollAlways:
		return "always"
	case tree.UnrollNever:
		return "never"
	default:
		return "hint"
	}
}
