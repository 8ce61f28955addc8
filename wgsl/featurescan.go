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

package wgsl

import (
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// Feature enumerates the backend-unsupported-by-default capabilities
// featureScan watches for (spec §4.6 "Feature tracking": "Float64,
// conservative depth, early fragment tests, push constants, binding
// arrays, etc.").
type Feature int

const (
	FeatureFloat64 Feature = iota
	FeatureConservativeDepth
	FeatureEarlyFragmentTests
	FeaturePushConstants
	FeatureBindingArrays
)

func (f Feature) String() string {
	switch f {
	case FeatureFloat64:
		return "f64"
	case FeatureConservativeDepth:
		return "conservative depth"
	case FeatureEarlyFragmentTests:
		return "early fragment tests"
	case FeaturePushConstants:
		return "push constants"
	case FeatureBindingArrays:
		return "binding arrays"
	default:
		return "?"
	}
}

// CapabilityChecker is the caller-supplied callback spec §4.6 describes:
// it reports whether the host's target WGSL profile permits a given
// feature. A nil checker is treated as permitting nothing non-default,
// the fail-closed choice appropriate for a backend whose whole purpose
// is broad portability.
type CapabilityChecker func(Feature) bool

// featureScan is the pre-visitor of spec §4.6: it walks the module once
// before body emission to discover (a) which floating-point types need
// an Infinity/NaN helper function synthesized (SPEC_FULL.md §12: "per
// type, not per module"), and (b) which gated features are in use, so
// Emit can fail with a single diagnostic before committing to any output
// text rather than partway through (spec §4.6 "failure is reported as an
// error before emission").
type featureScan struct {
	infinity map[types.Primitive]bool
	nan      map[types.Primitive]bool
	features map[Feature]bool
}

func scanModule(mod *tree.Module) *featureScan {
	fs := &featureScan{
		infinity: map[types.Primitive]bool{},
		nan:      map[types.Primitive]bool{},
		features: map[Feature]bool{},
	}
	visit := func(e tree.Expression) {
		switch n := e.(type) {
		case *tree.TypeConstant:
			switch n.Const {
			case tree.Infinity:
				fs.infinity[n.Of] = true
			case tree.NaN:
				fs.nan[n.Of] = true
			}
		}
		if p, ok := types.ResolveAlias(e.Type()).(types.Primitive); ok && p == types.F64 {
			fs.features[FeatureFloat64] = true
		}
	}
	for _, fn := range mod.Functions {
		walkExpressions(fn.Body, visit)
		if fn.IsEntryPoint() {
			if fn.Attrs.Entry == tree.Fragment {
				if fn.Attrs.DepthWrite != tree.DepthReplace {
					fs.features[FeatureConservativeDepth] = true
				}
				if fn.Attrs.EarlyFragmentTests {
					fs.features[FeatureEarlyFragmentTests] = true
				}
			}
		}
	}
	for _, blk := range mod.ExternalBlocks {
		for _, v := range blk.Variables {
			if types.Is(types.ResolveAlias(v.Type), types.KindPushConstant) {
				fs.features[FeaturePushConstants] = true
			}
			if types.Is(v.Type, types.KindArray) {
				if arr, ok := v.Type.(types.Array); ok {
					switch types.ResolveAlias(arr.Of).(type) {
					case types.Sampler, types.Texture:
						fs.features[FeatureBindingArrays] = true
					}
				}
			}
		}
	}
	return fs
}

// check runs every discovered feature past checker, returning one that
// checker rejects together with false, or (0, true) if all are permitted.
func (fs *featureScan) check(checker CapabilityChecker) (Feature, bool) {
	for f, used := range fs.features {
		if !used {
			continue
		}
		allowed := checker != nil && checker(f)
		if !allowed {
			return f, false
		}
	}
	return 0, true
}

// floatTypesNeedingHelpers returns, in a stable order, the primitives
// that need _nzslInfinity<T>/_nzslNaN<T> helper functions synthesized.
func (fs *featureScan) floatTypesNeedingHelpers() []types.Primitive {
	var out []types.Primitive
	for _, p := range []types.Primitive{types.F32, types.F64} {
		if fs.infinity[p] || fs.nan[p] {
			out = append(out, p)
		}
	}
	return out
}

// walkExpressions calls visit on every expression reachable from body,
// including nested subexpressions, read-only (no rewriting): the same
// statement shapes emit.go's localVariableIndices walks, extended with
// expression recursion (constremoval.go's rewrite walks the same
// expression shapes, but mutates; this is its read-only counterpart).
func walkExpressions(body []tree.Statement, visit func(tree.Expression)) {
	var walkExpr func(e tree.Expression)
	walkExpr = func(e tree.Expression) {
		if e == nil {
			return
		}
		visit(e)
		switch n := e.(type) {
		case *tree.Access:
			walkExpr(n.Of)
			for _, idx := range n.Indices {
				walkExpr(idx)
			}
		case *tree.Assign:
			walkExpr(n.Target)
			walkExpr(n.Value)
		case *tree.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *tree.Call:
			walkExpr(n.Callee)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *tree.Cast:
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *tree.Conditional:
			walkExpr(n.Cond)
			walkExpr(n.Then)
			walkExpr(n.Else)
		case *tree.Intrinsic:
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *tree.Swizzle:
			walkExpr(n.Of)
		case *tree.Unary:
			walkExpr(n.Operand)
		}
	}

	var walkStmt func(s tree.Statement)
	walkStmt = func(s tree.Statement) {
		switch n := s.(type) {
		case *tree.VariableDecl:
			walkExpr(n.Initializer)
		case *tree.ConstDecl:
			walkExpr(n.Value)
		case *tree.ExpressionStatement:
			walkExpr(n.Expr)
		case *tree.Return:
			walkExpr(n.Value)
		case *tree.Branch:
			for _, c := range n.Clauses {
				walkExpr(c.Cond)
				for _, s := range c.Body {
					walkStmt(s)
				}
			}
			for _, s := range n.Else {
				walkStmt(s)
			}
		case *tree.ConditionalStatement:
			walkExpr(n.Cond)
			walkStmt(n.Body)
		case *tree.While:
			walkExpr(n.Cond)
			for _, s := range n.Body {
				walkStmt(s)
			}
		case *tree.For:
			walkExpr(n.From)
			walkExpr(n.To)
			walkExpr(n.Step)
			for _, s := range n.Body {
				walkStmt(s)
			}
		case *tree.ForEach:
			walkExpr(n.Of)
			for _, s := range n.Body {
				walkStmt(s)
			}
		case *tree.Scoped:
			for _, s := range n.Body {
				walkStmt(s)
			}
		case *tree.MultiStatement:
			for _, s := range n.Statements {
				walkStmt(s)
			}
		}
	}
	for _, s := range body {
		walkStmt(s)
	}
}
