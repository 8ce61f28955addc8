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

package wgsl

import (
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// BindingKey identifies a descriptor slot by its original (set, binding)
// pair, the key type of the output binding remap table (spec §6.2).
type BindingKey struct {
	Set     uint32
	Binding uint32
}

// samplerPlan is the per-external-variable decision splitSamplers makes:
// whether v needs a second, synthesized sampler declaration, and at what
// binding.
type samplerPlan struct {
	v              *tree.ExternalVariable
	binding        uint32
	isSampler      bool
	samplerName    string
	samplerBinding uint32
}

// splitSamplers assigns every combined-sampler external variable a
// second binding slot for its companion WGSL `sampler` declaration (spec
// §4.6, §8 scenario S6), and builds the binding remap table spec §6.2
// requires as an output.
//
// The common case places the sampler at binding+1 (spec §4.6); when that
// slot is already occupied by another variable in the same set, the next
// free slot in the set is used instead (SPEC_FULL.md §12, grounded on
// WgslWriter.cpp's `for (; reservedBindings.count(...); binding++)`
// linear probe). Every variable's own (possibly re-numbered) binding is
// also recorded in the remap table, not just split samplers, mirroring
// the original's single reservedBindings/bindingRemap pass over all
// external variables.
func splitSamplers(mod *tree.Module) (map[int]samplerPlan, map[BindingKey]uint32) {
	reserved := map[BindingKey]bool{}
	remap := map[BindingKey]uint32{}
	plans := map[int]samplerPlan{}

	nextFree := func(set uint32, from uint32) uint32 {
		b := from
		for reserved[BindingKey{Set: set, Binding: b}] {
			b++
		}
		return b
	}

	for _, blk := range mod.ExternalBlocks {
		for i := range blk.Variables {
			v := &blk.Variables[i]
			if types.Is(types.ResolveAlias(v.Type), types.KindPushConstant) {
				continue // push constants carry neither @group nor @binding.
			}
			binding := nextFree(v.Set, v.Binding)
			reserved[BindingKey{Set: v.Set, Binding: binding}] = true
			remap[BindingKey{Set: v.Set, Binding: v.Binding}] = binding

			plan := samplerPlan{v: v, binding: binding}
			if _, ok := types.ResolveAlias(v.Type).(types.Sampler); ok {
				samplerBinding := nextFree(v.Set, binding+1)
				reserved[BindingKey{Set: v.Set, Binding: samplerBinding}] = true
				plan.isSampler = true
				plan.samplerName = v.Name + "Sampler"
				plan.samplerBinding = samplerBinding
			}
			plans[v.Index] = plan
		}
	}
	return plans, remap
}
