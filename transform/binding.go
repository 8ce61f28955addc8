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
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// BindingResolverTransformer assigns concrete (set, binding) pairs to
// external variables declared without an explicit binding(n) attribute
// (spec §4.4, §6.3 "auto_bind"). Variables that already carry an
// explicit binding reserve their slot first; auto-bound variables then
// fill the lowest free binding number in their set, in declaration
// order, so output is deterministic across runs of the same module.
type BindingResolverTransformer struct{}

func NewBindingResolverTransformer() *BindingResolverTransformer {
	return &BindingResolverTransformer{}
}

func (*BindingResolverTransformer) Name() string { return "BindingResolverTransformer" }

func (*BindingResolverTransformer) Run(m *tree.Module, _ *Context) (changed bool, errs diag.List) {
	used := map[uint32]map[uint32]bool{} // set -> binding -> taken

	reserve := func(set, binding uint32) {
		if used[set] == nil {
			used[set] = map[uint32]bool{}
		}
		used[set][binding] = true
	}
	nextFree := func(set uint32) uint32 {
		if used[set] == nil {
			used[set] = map[uint32]bool{}
		}
		var b uint32
		for used[set][b] {
			b++
		}
		used[set][b] = true
		return b
	}

	// First pass: reserve every explicitly-assigned slot, at the block
	// and the per-variable level, so auto-binding never collides with a
	// fixed slot declared later in the module.
	for _, blk := range m.ExternalBlocks {
		blockSet, hasBlockSet := blk.Attrs.Set, blk.Attrs.HasSet
		for _, v := range blk.Variables {
			if v.HasBinding {
				set := blockSet
				if v.HasSet {
					set = v.Set
				} else if !hasBlockSet {
					set = 0
				}
				reserve(set, v.Binding)
			}
		}
	}

	// Second pass: fill in set/binding for everything left unresolved.
	for _, blk := range m.ExternalBlocks {
		blockSet, hasBlockSet := blk.Attrs.Set, blk.Attrs.HasSet
		for i := range blk.Variables {
			v := &blk.Variables[i]
			if !v.HasSet {
				if hasBlockSet {
					v.Set = blockSet
				} else {
					v.Set = 0
				}
				v.HasSet = true
				changed = true
			}
			if !v.HasBinding {
				v.Binding = nextFree(v.Set)
				v.HasBinding = true
				v.AutoBinding = true
				changed = true
			}
		}
	}
	return changed, nil
}
