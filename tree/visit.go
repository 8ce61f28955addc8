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

package tree

// Visit invokes visitor for every direct child of node (spec §9: deep
// trees are walked iteratively by passes that recurse themselves on the
// Node results, rather than this function recursing internally — callers
// needing a full-tree walk call Visit from within their own visitor).
func Visit(node Node, visitor func(Node)) {
	Replace(node, func(n Node) Node { visitor(n); return n })
}

// ReplaceStatements rewrites every Statement in a slice in place via
// visitor, the common "visit a body" shape used throughout Replace below
// and by passes operating directly on a []Statement without a wrapping
// Node (e.g. a FunctionDecl's Body).
func ReplaceStatements(body []Statement, visitor func(Node) Node) {
	for i, s := range body {
		body[i] = visitor(s).(Statement)
	}
}

// Replace invokes visitor for every direct child of node, replacing the
// child slot with visitor's return value. This is the single dispatch
// point every pass's rewrite walk is built on (mirrors
// gapil/semantic.Replace's shape, generalized to this tree's node set).
func Replace(node Node, visitor func(Node) Node) {
	switch n := node.(type) {

	// Expressions.
	case *Access:
		n.Of = visitor(n.Of).(Expression)
		for i, idx := range n.Indices {
			n.Indices[i] = visitor(idx).(Expression)
		}
	case *Assign:
		n.Target = visitor(n.Target).(Expression)
		n.Value = visitor(n.Value).(Expression)
	case *Binary:
		n.Left = visitor(n.Left).(Expression)
		n.Right = visitor(n.Right).(Expression)
	case *Call:
		n.Callee = visitor(n.Callee).(Expression)
		for i, a := range n.Args {
			n.Args[i] = visitor(a).(Expression)
		}
	case *Cast:
		for i, a := range n.Args {
			n.Args[i] = visitor(a).(Expression)
		}
	case *Conditional:
		n.Cond = visitor(n.Cond).(Expression)
		n.Then = visitor(n.Then).(Expression)
		n.Else = visitor(n.Else).(Expression)
	case *Constant:
	case *ConstantArray:
	case *Identifier:
	case *IdentifierValue:
	case *Intrinsic:
		for i, a := range n.Args {
			n.Args[i] = visitor(a).(Expression)
		}
	case *Swizzle:
		n.Of = visitor(n.Of).(Expression)
	case *Unary:
		n.Operand = visitor(n.Operand).(Expression)
	case *TypeConstant:

	// Statements.
	case *AliasDecl:
	case *ConstDecl:
		if n.Value != nil {
			n.Value = visitor(n.Value).(Expression)
		}
	case *ExternalDecl:
	case *FunctionDecl:
		ReplaceStatements(n.Body, visitor)
	case *OptionDecl:
		if n.Default != nil {
			n.Default = visitor(n.Default).(Expression)
		}
	case *StructDecl:
	case *VariableDecl:
		if n.Initializer != nil {
			n.Initializer = visitor(n.Initializer).(Expression)
		}
	case *Branch:
		for i := range n.Clauses {
			n.Clauses[i].Cond = visitor(n.Clauses[i].Cond).(Expression)
			ReplaceStatements(n.Clauses[i].Body, visitor)
		}
		ReplaceStatements(n.Else, visitor)
	case *Break:
	case *Continue:
	case *Discard:
	case *ConditionalStatement:
		n.Cond = visitor(n.Cond).(Expression)
		n.Body = visitor(n.Body).(Statement)
	case *ExpressionStatement:
		n.Expr = visitor(n.Expr).(Expression)
	case *For:
		n.From = visitor(n.From).(Expression)
		n.To = visitor(n.To).(Expression)
		if n.Step != nil {
			n.Step = visitor(n.Step).(Expression)
		}
		ReplaceStatements(n.Body, visitor)
	case *ForEach:
		n.Of = visitor(n.Of).(Expression)
		ReplaceStatements(n.Body, visitor)
	case *Import:
	case *MultiStatement:
		ReplaceStatements(n.Statements, visitor)
	case *NoOp:
	case *Return:
		if n.Value != nil {
			n.Value = visitor(n.Value).(Expression)
		}
	case *Scoped:
		ReplaceStatements(n.Body, visitor)
	case *While:
		n.Cond = visitor(n.Cond).(Expression)
		ReplaceStatements(n.Body, visitor)

	default:
		panic("tree: Replace called on unrecognized node type")
	}
}
