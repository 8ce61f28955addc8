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

func TestIdentifierTransformerEscapesReserved(t *testing.T) {
	m := &tree.Module{
		Functions: []*tree.FunctionDecl{
			{Name: "discard", ReturnType: types.F32},
		},
	}
	reserved := map[string]bool{"discard": true}

	p := transform.NewIdentifierTransformer(transform.DefaultSanitizer(reserved, "_slc"))
	changed, errs := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	assert.For(t, "errs").That(len(errs)).Equals(0)
	assert.For(t, "renamed").That(m.Functions[0].Name).Equals("discard_")
}

func TestIdentifierTransformerEscapesReservedPrefix(t *testing.T) {
	m := &tree.Module{
		Variables: []*tree.VariableDecl{{Name: "_slc_temp", Type: types.F32}},
	}
	p := transform.NewIdentifierTransformer(transform.DefaultSanitizer(nil, "_slc"))
	changed, _ := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	assert.For(t, "escaped").That(m.Variables[0].Name).Equals("__slc_temp")
}

func TestIdentifierTransformerEnforcesUniqueness(t *testing.T) {
	m := &tree.Module{
		Variables: []*tree.VariableDecl{
			{Name: "tmp", Type: types.F32},
		},
		Functions: []*tree.FunctionDecl{
			{Name: "tmp", ReturnType: types.F32},
		},
	}
	p := transform.NewIdentifierTransformer(nil).WithUniqueness()
	changed, _ := p.Run(m, nil)

	assert.For(t, "changed").That(changed).IsTrue()
	if m.Variables[0].Name == m.Functions[0].Name {
		t.Fatalf("expected distinct names after uniqueness pass, got %q twice", m.Variables[0].Name)
	}
}
