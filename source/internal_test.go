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
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestAttrStringRendersEveryPresentField(t *testing.T) {
	a := tree.Attributes{
		HasLocation: true, Location: 2,
		HasSet: true, Set: 1,
		HasBinding: true, Binding: 3,
		Entry: tree.Vertex,
	}
	got := attrString(a)
	assert.For(t, "location present").That(got).Equals("[binding(3), entry(vertex), location(2), set(1)]")
}

func TestAttrStringEmptyWhenNothingSet(t *testing.T) {
	assert.For(t, "no attributes").That(attrString(tree.Attributes{})).Equals("")
}

func TestUnrollNameCoversAllThreeForms(t *testing.T) {
	assert.For(t, "hint").That(unrollName(tree.UnrollHint)).Equals("hint")
	assert.For(t, "always").That(unrollName(tree.UnrollAlways)).Equals("always")
	assert.For(t, "never").That(unrollName(tree.UnrollNever)).Equals("never")
}

func TestAccessStringFallsBackToStructTableWhenFieldNameMissing(t *testing.T) {
	mod := &tree.Module{}
	decl := &tree.StructDecl{Name: "Point", Members: []tree.StructMember{
		{Name: "x", Type: types.F32},
		{Name: "y", Type: types.F32},
	}}
	idx := mod.AddStruct(decl)
	st := types.Struct{Index: idx, Name: "Point"}

	base := &tree.IdentifierValue{Name: "p"}
	base.SetType(st)

	access := &tree.Access{Kind: tree.AccessByFieldIndex, Of: base, FieldIndex: 1}
	w := &Writer{mod: mod}
	assert.For(t, "resolves member name from the struct table").That(w.accessString(access)).Equals("p.y")
}
