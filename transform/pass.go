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

// Package transform implements the transformation executor and the named
// passes of spec §4.3/§4.4: an ordered, sequential pipeline of visitors
// that rewrite a tree.Module to normalize semantics, resolve names and
// types, propagate constants, eliminate dead code, and lower constructs
// individual backends can't express.
package transform

import (
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/tree"
)

// ConstValue is the type a Context's option bindings carry; re-exported
// from tree so callers configuring a pipeline don't need both imports
// for the common case.
type ConstValue = tree.ConstValue

// Pass is implemented by every named transformation pass (spec §4.4:
// "any object implementing a visit-and-rewrite contract"). Run receives
// the module and a Context carrying host-supplied option values, and
// returns whether it made any change (used by the executor's
// fixed-point loop) and any diagnostics. A pass that returns a non-empty
// diag.List should be treated by the executor as fatal for the current
// compile (spec §4.3 "runs each pass... the executor halts").
type Pass interface {
	// Name identifies the pass in debug logs and in the bitset accepted
	// by compiler.Options (spec §6.1).
	Name() string
	Run(m *tree.Module, ctx *Context) (changed bool, errs diag.List)
}

// FixedPoint wraps a Pass so the executor reruns it until it reports no
// further change, per spec §4.3 "runs each pass to fixed point over the
// tree if the pass reports changes". Most passes here are naturally
// single-shot (they return changed=false on their own second run); this
// wrapper exists for passes like ConstantPropagation where one rewrite
// can expose another constant-foldable expression.
func FixedPoint(p Pass, maxIterations int) Pass {
	return &fixedPointPass{inner: p, max: maxIterations}
}

type fixedPointPass struct {
	inner Pass
	max   int
}

func (f *fixedPointPass) Name() string { return f.inner.Name() }

func (f *fixedPointPass) Run(m *tree.Module, ctx *Context) (bool, diag.List) {
	any := false
	for i := 0; f.max <= 0 || i < f.max; i++ {
		changed, errs := f.inner.Run(m, ctx)
		if errs.HasErrors() {
			return any, errs
		}
		if changed {
			any = true
			continue
		}
		break
	}
	return any, nil
}
