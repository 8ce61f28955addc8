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

import "github.com/shaderlang/slc/tree"

// Context carries the host-supplied option bindings a compile runs with
// (spec §4.3 "owns a context carrying option values (name → constant
// value) from the host", spec §6.1 "Options: map from option name →
// constant value"). It is shared, read-only, across every pass in one
// executor run.
type Context struct {
	Options map[string]ConstValue

	// ShaderStageFilter restricts EliminateUnusedTransformer's
	// reachability walk to entry points matching one of these stages; a
	// nil/empty filter means "all stages" (spec §6.1 "shader stage
	// filter for dead-code elimination").
	ShaderStageFilter []tree.Stage

	// ReservedWords is the caller-supplied sanitizer input for
	// IdentifierTransformer (spec §4.4): the union of the target
	// backend's keywords, intrinsic names, and the compiler's own
	// reserved prefix (spec §12 "Reserved-identifier collision avoidance
	// width").
	ReservedWords map[string]bool

	// ReservedPrefix is the compiler-generated-name prefix IdentifierTransformer
	// escapes user identifiers away from (spec §4.7, e.g. "_nzsl").
	ReservedPrefix string

	// EnforceUniqueness turns on IdentifierTransformer's global
	// uniqueness pass (spec §4.4, tested by invariant 6 in spec §8).
	EnforceUniqueness bool
}

// OptionValue looks up a bound option value by name.
func (c *Context) OptionValue(name string) (ConstValue, bool) {
	if c == nil || c.Options == nil {
		return ConstValue{}, false
	}
	v, ok := c.Options[name]
	return v, ok
}

// AllowsStage reports whether stage passes the configured
// ShaderStageFilter (spec §6.1). An empty filter allows every stage.
func (c *Context) AllowsStage(stage tree.Stage) bool {
	if c == nil || len(c.ShaderStageFilter) == 0 {
		return true
	}
	for _, s := range c.ShaderStageFilter {
		if s == stage {
			return true
		}
	}
	return false
}
