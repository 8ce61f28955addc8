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

package glsl

import (
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// Feature enumerates the backend-unsupported-by-default capabilities
// featureScan watches for, mirroring wgsl.Feature's shape but scoped to
// GLSL's own constraints: GLSL ES has no double-precision type at all
// (unlike WGSL, where every profile lacks f64 uniformly), and binding
// arrays need an explicit extension directive.
type Feature int

const (
	FeatureFloat64 Feature = iota
	FeatureBindingArrays
)

func (f Feature) String() string {
	switch f {
	case FeatureFloat64:
		return "f64"
	case FeatureBindingArrays:
		return "binding arrays"
	default:
		return "?"
	}
}

// CapabilityChecker reports whether the host's target GLSL profile
// permits a given feature. A nil checker permits nothing non-default,
// the same fail-closed default wgsl.CapabilityChecker uses.
type CapabilityChecker func(Feature) bool

// featureScan is the pre-visitor scanning a module once before body
// emission, mirroring wgsl.featureScan: which floating-point types need
// an Infinity/NaN helper synthesized (GLSL, like WGSL, has no literal
// for either), and which gated features are in use.
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
		if n, ok := e.(*tree.TypeConstant); ok {
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
	}
	for _, blk := range mod.ExternalBlocks {
		for _, v := range blk.Variables {
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
// read-only, mirroring wgsl.walkExpressions' shape.
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
