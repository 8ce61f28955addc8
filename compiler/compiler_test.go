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

package compiler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shaderlang/slc/assert"
	"github.com/shaderlang/slc/compiler"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// onePlusTwo builds the unresolved tree for spec §8 scenarios S1/S7:
// `fn f() -> i32 { return 1 + 2; }`.
func onePlusTwo() *tree.Module {
	one := &tree.Constant{Value: tree.IntValue(types.I32, 1)}
	one.SetType(types.I32)
	two := &tree.Constant{Value: tree.IntValue(types.I32, 2)}
	two.SetType(types.I32)
	sum := &tree.Binary{Op: tree.Add, Left: one, Right: two}

	fn := &tree.FunctionDecl{
		Name:       "f",
		ReturnType: types.I32,
		Attrs:      tree.Attributes{Entry: tree.Fragment},
		Body:       []tree.Statement{&tree.Return{Value: sum}},
	}
	mod := &tree.Module{}
	mod.AddFunction(fn)
	return mod
}

// TestCompileScenarioS1ReEmitsFoldedSource exercises spec §8 S1: after
// Resolve + ConstantPropagation, the source re-emitter prints the
// folded body `return 3;`.
func TestCompileScenarioS1ReEmitsFoldedSource(t *testing.T) {
	mod := onePlusTwo()
	arts, errs := compiler.Compile(context.Background(), mod, compiler.Options{
		Targets: compiler.TargetSource,
		Passes:  compiler.PassResolve | compiler.PassOptimize,
	})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "folded return printed").That(strings.Contains(arts.SourceText, "return 3;")).IsTrue()
}

// TestCompileScenarioS7ConstantPropagationOff exercises spec §8 S7's
// "with constant propagation off" half: with PassOptimize not set, the
// unfolded 1 + 2 still compiles to a non-empty SPIR-V word stream. The
// comparison against the folded stream is in
// TestCompileScenarioS7ConstantPropagationOn.
func TestCompileScenarioS7ConstantPropagationOff(t *testing.T) {
	mod := onePlusTwo()
	arts, errs := compiler.Compile(context.Background(), mod, compiler.Options{
		Targets: compiler.TargetSPIRV,
		Passes:  compiler.PassResolve,
	})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "some SPIR-V words produced").That(len(arts.SPIRV) > 0).IsTrue()
}

// TestCompileScenarioS7ConstantPropagationOn folds to a single constant
// before SPIR-V emission, the other half of scenario S7.
func TestCompileScenarioS7ConstantPropagationOn(t *testing.T) {
	mod := onePlusTwo()
	withFold, errs := compiler.Compile(context.Background(), mod, compiler.Options{
		Targets: compiler.TargetSPIRV,
		Passes:  compiler.PassResolve | compiler.PassOptimize,
	})
	assert.For(t, "no errors").That(len(errs)).Equals(0)

	withoutFold, _ := compiler.Compile(context.Background(), onePlusTwo(), compiler.Options{
		Targets: compiler.TargetSPIRV,
		Passes:  compiler.PassResolve,
	})
	assert.For(t, "folding produces a shorter word stream").That(len(withFold.SPIRV) < len(withoutFold.SPIRV)).IsTrue()
}

// TestCompileMultipleTargetsFromOneRun confirms a single pipeline run
// can feed more than one backend (spec §2 "emitters are read-only
// consumers").
func TestCompileMultipleTargetsFromOneRun(t *testing.T) {
	mod := onePlusTwo()
	arts, errs := compiler.Compile(context.Background(), mod, compiler.Options{
		Targets: compiler.TargetSource | compiler.TargetSPIRV,
		Passes:  compiler.AllPasses,
	})
	assert.For(t, "no errors").That(len(errs)).Equals(0)
	assert.For(t, "source text produced").That(arts.SourceText != "").IsTrue()
	assert.For(t, "spirv words produced").That(len(arts.SPIRV) > 0).IsTrue()
}

// TestCompileHaltsOnFirstPassError confirms a failing pass stops the
// pipeline before any emitter runs (spec §4.3/§7).
func TestCompileHaltsOnFirstPassError(t *testing.T) {
	mod := &tree.Module{
		Functions: []*tree.FunctionDecl{
			{Name: "f", Body: []tree.Statement{
				&tree.Return{Value: &tree.Identifier{Name: "undefined_name"}},
			}},
		},
	}
	arts, errs := compiler.Compile(context.Background(), mod, compiler.Options{
		Targets: compiler.TargetSource,
		Passes:  compiler.AllPasses,
	})
	assert.For(t, "reports an error").That(errs.HasErrors()).IsTrue()
	assert.For(t, "no artifacts on failure").That(arts.SourceText).Equals("")
}

// TestPipelineOmitsTargetRequiredPassesWhenUnset confirms Pipeline
// builds a shorter list for a source-only, un-lowered compile than for
// AllPasses — the numeric For loop survives unlowered, matching spec §8
// S1's "may be invoked at any point in the pipeline" re-emission use.
func TestPipelineOmitsTargetRequiredPassesWhenUnset(t *testing.T) {
	minimal := compiler.Pipeline(nil, compiler.PassResolve|compiler.PassOptimize)
	full := compiler.Pipeline(nil, compiler.AllPasses)
	assert.For(t, "fewer passes without TargetRequired/RemoveDeadCode/Validate").That(len(minimal) < len(full)).IsTrue()
}
