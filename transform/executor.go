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
	"context"

	"github.com/pkg/errors"

	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/logging"
	"github.com/shaderlang/slc/tree"
)

// Executor holds an ordered pass list and runs it sequentially over a
// module (spec §4.3). Passes never race; a single Executor.Run call is a
// pure function of (module, context) — reentrant across concurrent
// compiles, per spec §5, as long as distinct Executor values are used
// (Executor itself carries no mutable state between Run calls).
type Executor struct {
	passes []Pass
}

// NewExecutor constructs an Executor with the given ordered passes.
func NewExecutor(passes ...Pass) *Executor {
	return &Executor{passes: passes}
}

// Run executes every pass in order against m, stopping and returning the
// first pass's diagnostics that reports an error (spec §4.3 "the
// executor halts and surfaces the diagnostic to the caller"). Internal
// panics raised by a pass (a programming error, not a diag.List the pass
// returned normally) are recovered and reframed as a single
// diag.Kind=Internal diagnostic, mirroring resolver.Resolve's top-level
// recover (spec §7 "Internal").
func (e *Executor) Run(ctx context.Context, m *tree.Module, tctx *Context) (errs diag.List) {
	defer func() {
		if r := recover(); r != nil {
			errs = diag.List{diag.Internalf(r, "transform: pass panicked")}
		}
	}()
	for _, p := range e.passes {
		logging.D(ctx, "running pass %s", p.Name())
		changed, perrs := p.Run(m, tctx)
		if perrs.HasErrors() {
			logging.E(ctx, "pass %s failed: %v", p.Name(), perrs)
			return perrs
		}
		if changed {
			logging.I(ctx, "pass %s changed the tree", p.Name())
		}
	}
	return nil
}

// StandardPipeline returns the default pass ordering for a full compile
// down to a backend that needs every lowering the spec names (spec §4.4
// lists Resolve, ConstantPropagation, LiteralTransformer, BranchSplitter,
// ForToWhile, StructAssignmentTransformer, SwizzleTransformer,
// MatrixTransformer, IdentifierTransformer, BindingResolverTransformer,
// ConstantRemovalTransformer, EliminateUnusedTransformer,
// ValidationTransformer — this is that list in the dependency order the
// passes themselves require: Resolve before anything type-directed;
// constant folding and literal typing before any structural lowering
// that inspects constant values (array sizes, unrolled bounds);
// structural lowerings before identifier sanitization (new temporaries
// must also be sanitized); binding resolution and dead-code elimination
// last, once the tree shape is final; validation strictly last).
func StandardPipeline(resolver ModuleResolver) []Pass {
	return []Pass{
		NewResolve(resolver),
		FixedPoint(NewConstantPropagation(), 8),
		NewLiteralTransformer(),
		NewForToWhile(),
		NewBranchSplitter(),
		NewSwizzleTransformer(),
		NewMatrixTransformer(),
		NewStructAssignmentTransformer(),
		NewEliminateUnusedTransformer(),
		NewConstantRemovalTransformer(true),
		NewBindingResolverTransformer(),
		NewIdentifierTransformer(nil),
		NewValidationTransformer(),
	}
}

// wrapInternal is a small helper passes use in their own recover blocks
// (pass-local panics, e.g. a type-system invariant violated by a
// malformed tree) to produce a diag.List instead of propagating the
// panic up to the Executor's own recover — giving a pass a chance to
// report *which* node it was visiting, via the location the panic value
// carries, before the generic Internal fallback swallows that detail.
func wrapInternal(r interface{}, loc diag.Location) diag.List {
	return diag.List{diag.New(diag.Internal, loc, "%s", errors.Errorf("%v", r))}
}
