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

package transform_test

import (
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/transform"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestBindingResolverSkipsFixedSlots(t *testing.T) {
	m := &tree.Module{
		ExternalBlocks: []*tree.ExternalDecl{
			{
				Variables: []tree.ExternalVariable{
					{Name: "albedo", Type: types.Sampler{Dim: types.Dim2D, Of: types.F32}, HasBinding: true, Binding: 0},
					{Name: "normalMap", Type: types.Sampler{Dim: types.Dim2D, Of: types.F32}}, // auto
				},
			},
		},
	}
	p := transform.NewBindingResolverTransformer()
	changed, errs := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "fixed slot kept").That(m.ExternalBlocks[0].Variables[0].Binding).Equals(uint32(0))
	assert.For(t, "auto skips taken slot").That(m.ExternalBlocks[0].Variables[1].Binding).Equals(uint32(1))
	assert.For(t, "auto flagged").That(m.ExternalBlocks[0].Variables[1].AutoBinding).IsTrue()
}

func TestBindingResolverPerSetIndependence(t *testing.T) {
	m := &tree.Module{
		ExternalBlocks: []*tree.ExternalDecl{
			{
				Variables: []tree.ExternalVariable{
					{Name: "a", Type: types.F32, HasSet: true, Set: 0},
					{Name: "b", Type: types.F32, HasSet: true, Set: 1},
				},
			},
		},
	}
	p := transform.NewBindingResolverTransformer()
	p.Run(m, nil)

	assert.For(t, "set0 binding0").That(m.ExternalBlocks[0].Variables[0].Binding).Equals(uint32(0))
	assert.For(t, "set1 binding0").That(m.ExternalBlocks[0].Variables[1].Binding).Equals(uint32(0))
}
