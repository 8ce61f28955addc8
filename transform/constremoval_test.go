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
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/transform"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestConstantRemovalInlinesReferences(t *testing.T) {
	three := &tree.Constant{Value: tree.IntValue(types.I32, 3)}
	three.SetType(types.I32)

	cd := &tree.ConstDecl{Index: 0, Name: "Three", Type: types.I32, Value: three}

	ref := &tree.IdentifierValue{Category: symbol.Constant, Index: 0, Name: "Three"}
	ref.SetType(types.I32)

	m := &tree.Module{
		Consts: []*tree.ConstDecl{cd},
		Functions: []*tree.FunctionDecl{
			{
				Name: "f",
				Body: []tree.Statement{
					&tree.Return{Value: ref},
				},
			},
		},
	}

	p := transform.NewConstantRemovalTransformer(true)
	changed, errs := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	assert.For(t, "no errors").That(len(errs)).Equals(0)

	ret := m.Functions[0].Body[0].(*tree.Return)
	cv, ok := ret.Value.(*tree.Constant)
	assert.For(t, "inlined to constant").That(ok).IsTrue()
	assert.For(t, "inlined value").That(cv.Value.Int).Equals(int64(3))
	assert.For(t, "decl dropped").That(len(m.Consts)).Equals(0)
}

func TestConstantRemovalKeepsTaggedDecl(t *testing.T) {
	three := &tree.Constant{Value: tree.IntValue(types.I32, 3)}
	three.SetType(types.I32)
	cd := &tree.ConstDecl{Index: 0, Name: "Three", Type: types.I32, Value: three, Attrs: tree.Attributes{Tag: "keep"}}

	m := &tree.Module{Consts: []*tree.ConstDecl{cd}}
	p := transform.NewConstantRemovalTransformer(true)
	p.Run(m, nil)

	assert.For(t, "kept").That(len(m.Consts)).Equals(1)
}
