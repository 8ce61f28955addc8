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

package symbol_test

import (
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/symbol"
)

func TestTableDenseIndices(t *testing.T) {
	var tab symbol.Table
	assert.For(t, "first index").That(tab.Add("a")).Equals(0)
	assert.For(t, "second index").That(tab.Add("b")).Equals(1)
	assert.For(t, "len").That(tab.Len()).Equals(2)
}

func TestTableFindAmbiguous(t *testing.T) {
	var tab symbol.Table
	tab.Add("f")
	tab.Add("f")
	tab.Add("g")

	_, ok, ambiguous := tab.Find("f")
	assert.For(t, "found").That(ok).IsTrue()
	assert.For(t, "ambiguous").That(ambiguous).IsTrue()

	_, ok, ambiguous = tab.Find("g")
	assert.For(t, "found g").That(ok).IsTrue()
	assert.For(t, "ambiguous g").That(ambiguous).IsFalse()

	_, ok, _ = tab.Find("missing")
	assert.For(t, "missing not found").That(ok).IsFalse()
}

func TestTableFindAll(t *testing.T) {
	var tab symbol.Table
	tab.Add("overload")
	tab.Add("overload")
	all := tab.FindAll("overload")
	assert.For(t, "candidate count").That(len(all)).Equals(2)
}

func TestScopesShadowing(t *testing.T) {
	var s symbol.Scopes
	s.Enter()
	if !s.Declare("x", 0) {
		t.Fatalf("first declaration of x must succeed")
	}
	s.Enter()
	if !s.Declare("x", 1) {
		t.Fatalf("shadowing x in an inner scope must succeed")
	}
	idx, ok := s.Lookup("x")
	assert.For(t, "inner lookup found").That(ok).IsTrue()
	assert.For(t, "inner lookup resolves to inner decl").That(idx).Equals(1)

	s.Leave()
	idx, ok = s.Lookup("x")
	assert.For(t, "outer lookup found").That(ok).IsTrue()
	assert.For(t, "outer lookup resolves to outer decl").That(idx).Equals(0)
	s.Leave()

	if _, ok := s.Lookup("x"); ok {
		t.Fatalf("x must not be visible once its scope has been left")
	}
}

func TestScopesRejectRedeclaration(t *testing.T) {
	var s symbol.Scopes
	s.Enter()
	s.Declare("dup", 0)
	if s.Declare("dup", 1) {
		t.Fatalf("redeclaring the same name in the same scope must fail")
	}
}
