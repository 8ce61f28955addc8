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
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/transform"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

func TestValidationTransformerRejectsImplicitType(t *testing.T) {
	m := &tree.Module{
		Functions: []*tree.FunctionDecl{
			{Name: "main", ReturnType: types.NoType{}, Attrs: tree.Attributes{Entry: tree.Fragment}},
		},
		Variables: []*tree.VariableDecl{
			{Name: "v", Type: types.ImplicitVector{Of: types.F32}},
		},
	}

	p := transform.NewValidationTransformer()
	changed, errs := p.Run(m, nil)

	assert.For(t, "never mutates").That(changed).IsFalse()
	if !errs.HasErrors() {
		t.Fatalf("expected a diagnostic for the surviving ImplicitVector type")
	}
	found := false
	for _, d := range errs {
		if d.Kind == diag.TypeMismatch {
			found = true
		}
	}
	assert.For(t, "reported as TypeMismatch").That(found).IsTrue()
}

func TestValidationTransformerFlagsComputeWithoutWorkgroup(t *testing.T) {
	m := &tree.Module{
		Functions: []*tree.FunctionDecl{
			{Name: "main", ReturnType: types.NoType{}, Attrs: tree.Attributes{Entry: tree.Compute}},
		},
	}
	p := transform.NewValidationTransformer()
	_, errs := p.Run(m, nil)

	found := false
	for _, d := range errs {
		if d.Kind == diag.InvalidAttribute {
			found = true
		}
	}
	assert.For(t, "flags missing workgroup size").That(found).IsTrue()
}

func TestValidationTransformerRequiresEntryPoint(t *testing.T) {
	m := &tree.Module{
		Functions: []*tree.FunctionDecl{{Name: "helper", ReturnType: types.F32}},
	}
	p := transform.NewValidationTransformer()
	_, errs := p.Run(m, nil)

	found := false
	for _, d := range errs {
		if d.Kind == diag.MissingEntryPoint {
			found = true
		}
	}
	assert.For(t, "flags missing entry point").That(found).IsTrue()
}
