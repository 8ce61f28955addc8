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

// Package tree implements the typed tree data model of spec §3.2: the two
// top-level node kinds, Expression and Statement, each a tagged sum of one
// concrete Go struct per construct (the "base-capability + variant tag
// pair" shape spec §9 allows, following gapil/semantic's isNode()/isType()
// dummy-method idiom).
//
// The tree is mutated in place by transformation passes rather than split
// into a separate pre-resolution AST and post-resolution semantic graph:
// an Identifier expression is rewritten into an IdentifierValue by the
// Resolve pass within the same node slot, matching the single mutable
// tree NZSL's own AST uses (see SPEC_FULL.md §12).
package tree

import (
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/types"
)

// Node is implemented by every tree node, expression or statement.
type Node interface {
	isNode()
	// Location returns the node's source span, or the zero Location if
	// the node was synthesized by a pass rather than parsed (spec §3.2:
	// "an optional source location").
	Location() diag.Location
}

// Expression is implemented by every expression node. Per spec §3.2,
// each expression carries an optional cached resolved type; Type returns
// the zero Type (nil) until the Resolve pass fills it in.
type Expression interface {
	Node
	isExpression()
	// Type returns the node's cached resolved type, or nil before
	// Resolve has run.
	Type() types.Type
	// SetType installs the resolved type. Passes call this once,
	// idempotently; ValidationTransformer rejects any expression whose
	// Type() is still nil or an Implicit* variant (spec §3.1 invariant).
	SetType(types.Type)
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	isStatement()
}

// base is embedded by every concrete node to supply Location without
// repeating the field and accessor on every type.
type base struct {
	Loc diag.Location
}

func (b base) Location() diag.Location { return b.Loc }

// exprBase is embedded by every concrete Expression to supply the cached
// type slot.
type exprBase struct {
	base
	cachedType types.Type
}

func (e *exprBase) isNode()              {}
func (e *exprBase) isExpression()        {}
func (e *exprBase) Type() types.Type     { return e.cachedType }
func (e *exprBase) SetType(t types.Type) { e.cachedType = t }

// stmtBase is embedded by every concrete Statement.
type stmtBase struct{ base }

func (s stmtBase) isNode()      {}
func (s stmtBase) isStatement() {}
