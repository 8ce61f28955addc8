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

func TestEliminateUnusedDropsUnreachableFunction(t *testing.T) {
	helper := &tree.IdentifierValue{Category: symbol.Function, Index: 1, Name: "helper"}
	helper.SetType(types.Function{Index: 1, Name: "helper"})
	call := &tree.Call{Callee: helper}
	call.SetType(types.F32)

	m := &tree.Module{
		Functions: []*tree.FunctionDecl{
			{
				Index: 0, Name: "main", ReturnType: types.NoType{}, Attrs: tree.Attributes{Entry: tree.Fragment},
				Body: []tree.Statement{&tree.ExpressionStatement{Expr: call}},
			},
			{Index: 1, Name: "helper", ReturnType: types.F32},
			{Index: 2, Name: "deadCode", ReturnType: types.F32},
		},
	}

	p := transform.NewEliminateUnusedTransformer()
	changed, errs := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "kept count").That(len(m.Functions)).Equals(2)
	for _, f := range m.Functions {
		if f.Name == "deadCode" {
			t.Fatalf("deadCode should have been eliminated")
		}
	}
}

func TestEliminateUnusedKeepsReachableVariable(t *testing.T) {
	v := &tree.IdentifierValue{Category: symbol.Variable, Index: 0, Name: "used"}
	v.SetType(types.F32)

	m := &tree.Module{
		Variables: []*tree.VariableDecl{
			{Index: 0, Name: "used", Type: types.F32},
			{Index: 1, Name: "unused", Type: types.F32},
		},
		Functions: []*tree.FunctionDecl{
			{
				Index: 0, Name: "main", ReturnType: types.NoType{}, Attrs: tree.Attributes{Entry: tree.Fragment},
				Body: []tree.Statement{&tree.ExpressionStatement{Expr: v}},
			},
		},
	}

	p := transform.NewEliminateUnusedTransformer()
	p.Run(m, nil)

	assert.For(t, "kept count").That(len(m.Variables)).Equals(1)
	assert.For(t, "kept name").That(m.Variables[0].Name).Equals("used")
}
