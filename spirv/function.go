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

package spirv

import (
	"github.com/shaderlang/slc/diag"
	"github.com/shaderlang/slc/symbol"
	"github.com/shaderlang/slc/tree"
	"github.com/shaderlang/slc/types"
)

// loopTargets is the break/continue target pair of the innermost
// enclosing loop (spec §4.5 "structured control flow").
type loopTargets struct {
	continueLabel uint32
	breakLabel    uint32
}

// funcEmitter lowers one tree.FunctionDecl's body to SSA basic blocks
// (spec §4.5), mirroring core/codegen.Function's per-function builder
// state (core/codegen/function.go) generalized from LLVM IR to direct
// SPIR-V word encoding.
type funcEmitter struct {
	m   *Module
	mod *tree.Module
	fn  *tree.FunctionDecl

	globals map[int]uint32 // mod.Variables index -> pointer id, module-scope
	locals  map[int]uint32 // mod.Variables index -> pointer id, this function only
	funcIDs map[int]uint32 // mod.Functions index -> OpFunction result id, whole module

	// forEachIndex holds the synthetic u32 loop-counter pointer declared
	// up front (by declareLocals) for each ForEach statement in the body;
	// ForEach has no Module.Variables slot of its own to key on, unlike
	// VariableDecl, so the node pointer itself is the cache key.
	forEachIndex map[*tree.ForEach]uint32

	vars  []uint32 // every finished block of the body, in order (flushBlock appends cur here)
	cur   []uint32 // instructions of the block currently being built
	label uint32   // id of the block currently being built; 0 before the first label

	loops []loopTargets
	errs  diag.List

	// id is this function's OpFunction result id, pre-allocated by the
	// caller before any body is built so a call site appearing earlier in
	// the module (another function calling this one, or this function
	// calling itself) already has a valid forward reference (spec §4.5:
	// SPIR-V result ids are module-global and order-independent).
	id uint32
}

func newFuncEmitter(m *Module, mod *tree.Module, fn *tree.FunctionDecl, id uint32, globals, funcIDs map[int]uint32) *funcEmitter {
	return &funcEmitter{
		m: m, mod: mod, fn: fn, id: id,
		globals: globals, funcIDs: funcIDs,
		locals:       map[int]uint32{},
		forEachIndex: map[*tree.ForEach]uint32{},
	}
}

// emitLabel starts a new block, closing the previous one's instruction
// buffer into fe.vars/fe.cur first via flushBlock.
func (fe *funcEmitter) emitLabel(id uint32) {
	fe.flushBlock()
	fe.label = id
	fe.cur = append(fe.cur, instructionHeader(OpLabel, 2), id)
}

// flushBlock appends the block under construction to the function's
// instruction stream unless it's already been terminated and flushed.
func (fe *funcEmitter) flushBlock() {
	if len(fe.cur) > 0 {
		fe.vars = append(fe.vars, fe.cur...)
		fe.cur = nil
	}
}

func (fe *funcEmitter) emit(op Op, operands ...uint32) {
	instr := append([]uint32{0}, operands...)
	instr[0] = instructionHeader(op, len(instr))
	fe.cur = append(fe.cur, instr...)
}

func (fe *funcEmitter) emitResult(op Op, typeID uint32, operands ...uint32) uint32 {
	id := fe.m.id()
	instr := append([]uint32{0, typeID, id}, operands...)
	instr[0] = instructionHeader(op, len(instr))
	fe.cur = append(fe.cur, instr...)
	return id
}

// pointerFor returns the pointer id backing m.Variables[idx]. Every
// function-local index is declared up front by Build (via
// declareLocals), so a miss here means idx is neither a known global nor
// a local this function declared — an internal inconsistency, not a
// user-facing error.
func (fe *funcEmitter) pointerFor(idx int) uint32 {
	if id, ok := fe.globals[idx]; ok {
		return id
	}
	if id, ok := fe.locals[idx]; ok {
		return id
	}
	fe.errs.Add(diag.New(diag.Internal, diag.Location{}, "variable index %d has no backing pointer in function %s", idx, fe.fn.Name))
	return 0
}

// declareLocals emits a Function-storage OpVariable for every variable
// the body declares (besides parameters, handled separately in Build),
// walking nested control flow since ForToWhile lowers a numeric for into
// a Scoped block wrapping its induction VariableDecl (spec §4.5: SPIR-V
// requires every local OpVariable to appear in the function's first
// block, so these are collected ahead of time rather than allocated
// lazily mid-stream).
func (fe *funcEmitter) declareLocals(body []tree.Statement) []uint32 {
	var instrs []uint32
	var walk func([]tree.Statement)
	declare := func(idx int, name string, t types.Type) {
		if _, ok := fe.locals[idx]; ok {
			return
		}
		ptrType := fe.m.pointerTypeID(fe.mod, t, StorageClassFunction)
		id := fe.m.id()
		instrs = append(instrs, instructionHeader(OpVariable, 4), ptrType, id, uint32(StorageClassFunction))
		fe.locals[idx] = id
		fe.m.name(id, name)
	}
	walk = func(stmts []tree.Statement) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *tree.VariableDecl:
				declare(n.Index, n.Name, n.Type)
			case *tree.MultiStatement:
				walk(n.Statements)
			case *tree.Scoped:
				walk(n.Body)
			case *tree.Branch:
				for _, c := range n.Clauses {
					walk(c.Body)
				}
				walk(n.Else)
			case *tree.While:
				walk(n.Body)
			case *tree.ForEach:
				declare(n.VarIndex, n.VarName, elementTypeOf(n.Of.Type()))
				idxPtrType := fe.m.pointerTypeID(fe.mod, types.U32, StorageClassFunction)
				idxID := fe.m.id()
				instrs = append(instrs, instructionHeader(OpVariable, 4), idxPtrType, idxID, uint32(StorageClassFunction))
				fe.forEachIndex[n] = idxID
				walk(n.Body)
			case *tree.ConditionalStatement:
				walk([]tree.Statement{n.Body})
			}
		}
	}
	walk(body)
	return instrs
}

// elementTypeOf returns the element type of an array/dynarray type, used
// to declare a ForEach loop variable (spec §3.2 "iterates the elements
// of an array/dynarray-typed expression").
func elementTypeOf(t types.Type) types.Type {
	switch v := types.ResolveAlias(t).(type) {
	case types.Array:
		return v.Of
	case types.DynArray:
		return v.Of
	default:
		return t
	}
}

// Build emits the function's OpFunction..OpFunctionEnd block into
// fe.m.secFunctions and returns the function's result id.
func (fe *funcEmitter) Build() uint32 {
	paramTypes := make([]types.Type, len(fe.fn.Params))
	for i, p := range fe.fn.Params {
		paramTypes[i] = p.Type
	}
	funcTypeID := fe.m.functionTypeID(fe.mod, fe.fn.ReturnType, paramTypes)
	retTypeID := fe.m.typeID(fe.mod, fe.fn.ReturnType)

	id := fe.id
	header := []uint32{instructionHeader(OpFunction, 5), retTypeID, id, 0 /*FunctionControlMaskNone*/, funcTypeID}
	fe.m.name(id, fe.fn.Name)

	var localVarDecls []uint32 // OpVariable instructions for params, prepended to the entry block
	paramIDs := make([]uint32, len(fe.fn.Params))
	for i, p := range fe.fn.Params {
		pType := fe.m.typeID(fe.mod, p.Type)
		pid := fe.m.id()
		header = append(header, instructionHeader(OpFunctionParameter, 3), pType, pid)
		paramIDs[i] = pid

		ptrType := fe.m.pointerTypeID(fe.mod, p.Type, StorageClassFunction)
		vid := fe.m.id()
		localVarDecls = append(localVarDecls,
			instructionHeader(OpVariable, 4), ptrType, vid, uint32(StorageClassFunction),
		)
		fe.locals[p.Index] = vid
		fe.m.name(vid, p.Name)
	}

	bodyVarDecls := fe.declareLocals(fe.fn.Body)

	entry := fe.m.id()
	fe.label = entry
	fe.cur = append(fe.cur, instructionHeader(OpLabel, 2), entry)
	fe.cur = append(fe.cur, localVarDecls...)
	fe.cur = append(fe.cur, bodyVarDecls...)
	for i, p := range fe.fn.Params {
		fe.emit(OpStore, fe.locals[p.Index], paramIDs[i])
	}

	fe.emitBody(fe.fn.Body)
	fe.terminateImplicitReturn()
	fe.flushBlock()

	fe.m.secFunctions = append(fe.m.secFunctions, header...)
	fe.m.secFunctions = append(fe.m.secFunctions, fe.vars...)
	fe.m.secFunctions = append(fe.m.secFunctions, instructionHeader(OpFunctionEnd, 1))
	return id
}

// terminateImplicitReturn closes a function body that fell off the end
// without an explicit return with OpReturn, which is only valid for a
// void function; no earlier pass checks that a value-returning function
// returns on every path.
func (fe *funcEmitter) terminateImplicitReturn() {
	if fe.blockTerminated() {
		return
	}
	fe.emit(OpReturn)
}

// blockTerminated reports whether the block under construction already
// ends in a terminator, so callers don't append unreachable code or a
// second terminator after a Return/Discard/Break/Continue.
func (fe *funcEmitter) blockTerminated() bool {
	if len(fe.cur) == 0 {
		return false
	}
	op := Op(fe.cur[len(fe.cur)-headerWordCountFor(fe.cur)] & 0xFFFF)
	return op == OpReturn || op == OpReturnValue || op == OpBranch ||
		op == OpBranchConditional || op == OpKill || op == OpUnreachable
}

// headerWordCountFor finds the start offset of the last instruction in
// buf, by scanning from the front (SPIR-V has no backward instruction
// boundaries, so this walks the whole buffer; acceptable for function
// bodies which are small).
func headerWordCountFor(buf []uint32) int {
	i := 0
	last := 0
	for i < len(buf) {
		wc := int(buf[i] >> 16)
		if wc == 0 {
			break
		}
		last = len(buf) - i
		i += wc
	}
	return last
}

func (fe *funcEmitter) emitBody(body []tree.Statement) {
	for _, s := range body {
		if fe.blockTerminated() {
			return
		}
		fe.emitStatement(s)
	}
}

func (fe *funcEmitter) emitStatement(s tree.Statement) {
	switch n := s.(type) {
	case *tree.NoOp:
		return
	case *tree.MultiStatement:
		fe.emitBody(n.Statements)
	case *tree.Scoped:
		fe.emitBody(n.Body)
	case *tree.VariableDecl:
		ptr := fe.pointerFor(n.Index)
		if n.Initializer != nil {
			v, _ := fe.emitExpr(n.Initializer)
			fe.emit(OpStore, ptr, v)
		}
	case *tree.ExpressionStatement:
		fe.emitExpr(n.Expr)
	case *tree.Return:
		if n.Value == nil {
			fe.emit(OpReturn)
			return
		}
		v, _ := fe.emitExpr(n.Value)
		fe.emit(OpReturnValue, v)
	case *tree.Discard:
		fe.emit(OpKill)
	case *tree.Break:
		if len(fe.loops) == 0 {
			fe.errs.Add(diag.New(diag.Internal, n.Location(), "break outside a loop reached codegen"))
			return
		}
		fe.emit(OpBranch, fe.loops[len(fe.loops)-1].breakLabel)
	case *tree.Continue:
		if len(fe.loops) == 0 {
			fe.errs.Add(diag.New(diag.Internal, n.Location(), "continue outside a loop reached codegen"))
			return
		}
		fe.emit(OpBranch, fe.loops[len(fe.loops)-1].continueLabel)
	case *tree.Branch:
		fe.emitBranch(n)
	case *tree.While:
		fe.emitWhile(n)
	case *tree.ForEach:
		fe.emitForEach(n)
	default:
		// For/ConditionalStatement/Import/OptionDecl/AliasDecl/
		// ConstDecl never reach this stage: ForToWhile lowers
		// For, ConstantPropagation resolves ConditionalStatement, and
		// the rest are symbol-table-only declarations with no runtime
		// effect (spec §4.4 pipeline ordering).
		fe.errs.Add(diag.New(diag.Internal, s.Location(), "statement kind reached spirv codegen unlowered: %T", s))
	}
}

// emitBranch lowers an if/elif/else chain to nested two-way structured
// selection (spec §4.5 "structured control flow via OpSelectionMerge").
// BranchSplitter has already reduced any n-way cascade the parser
// accepted down to Clauses of length 1 plus a nested Else, but this
// handles the general n-ary shape directly in case a pass ahead of this
// backend is skipped.
func (fe *funcEmitter) emitBranch(n *tree.Branch) {
	fe.emitClauses(n.Clauses, n.Else)
}

func (fe *funcEmitter) emitClauses(clauses []tree.BranchClause, els []tree.Statement) {
	if len(clauses) == 0 {
		fe.emitBody(els)
		return
	}
	clause := clauses[0]
	cond, _ := fe.emitExpr(clause.Cond)

	thenLabel := fe.m.id()
	elseLabel := fe.m.id()
	mergeLabel := fe.m.id()

	fe.emit(OpSelectionMerge, mergeLabel, 0)
	fe.emit(OpBranchConditional, cond, thenLabel, elseLabel)

	fe.emitLabel(thenLabel)
	fe.emitBody(clause.Body)
	if !fe.blockTerminated() {
		fe.emit(OpBranch, mergeLabel)
	}

	fe.emitLabel(elseLabel)
	fe.emitClauses(clauses[1:], els)
	if !fe.blockTerminated() {
		fe.emit(OpBranch, mergeLabel)
	}

	fe.emitLabel(mergeLabel)
}

// emitWhile lowers a condition-tested loop to SPIR-V's mandated
// structured loop shape: a header block containing OpLoopMerge, a
// condition check, and a continue target (spec §4.5). For has already
// been rewritten to While by ForToWhile by the time this runs.
func (fe *funcEmitter) emitWhile(n *tree.While) {
	headerLabel := fe.m.id()
	checkLabel := fe.m.id()
	bodyLabel := fe.m.id()
	continueLabel := fe.m.id()
	mergeLabel := fe.m.id()

	fe.emit(OpBranch, headerLabel)
	fe.emitLabel(headerLabel)
	fe.emit(OpLoopMerge, mergeLabel, continueLabel, 0)
	fe.emit(OpBranch, checkLabel)

	fe.emitLabel(checkLabel)
	cond, _ := fe.emitExpr(n.Cond)
	fe.emit(OpBranchConditional, cond, bodyLabel, mergeLabel)

	fe.emitLabel(bodyLabel)
	fe.loops = append(fe.loops, loopTargets{continueLabel: continueLabel, breakLabel: mergeLabel})
	fe.emitBody(n.Body)
	fe.loops = fe.loops[:len(fe.loops)-1]
	if !fe.blockTerminated() {
		fe.emit(OpBranch, continueLabel)
	}

	fe.emitLabel(continueLabel)
	fe.emit(OpBranch, headerLabel)

	fe.emitLabel(mergeLabel)
}

// emitExpr lowers an expression to SSA, returning its result id and
// SPIR-V type id.
func (fe *funcEmitter) emitExpr(e tree.Expression) (id, typeID uint32) {
	typeID = fe.m.typeID(fe.mod, e.Type())
	switch n := e.(type) {
	case *tree.Constant:
		return fe.m.constValueID(n.Value), typeID
	case *tree.ConstantArray:
		ids := make([]uint32, len(n.Elements))
		for i, cv := range n.Elements {
			ids[i] = fe.m.constValueID(cv)
		}
		return fe.m.compositeConstant(fe.mod, n.Type(), ids), typeID
	case *tree.IdentifierValue:
		return fe.emitIdentifier(n), typeID
	case *tree.Assign:
		return fe.emitAssign(n), typeID
	case *tree.Binary:
		return fe.emitBinary(n), typeID
	case *tree.Unary:
		return fe.emitUnary(n), typeID
	case *tree.Call:
		return fe.emitCall(n), typeID
	case *tree.Cast:
		return fe.emitCast(n), typeID
	case *tree.Conditional:
		then, _ := fe.emitExpr(n.Then)
		els, _ := fe.emitExpr(n.Else)
		cond, _ := fe.emitExpr(n.Cond)
		return fe.emitResult(OpSelect, typeID, cond, then, els), typeID
	case *tree.Intrinsic:
		return fe.emitIntrinsic(n), typeID
	case *tree.Swizzle:
		return fe.emitSwizzle(n), typeID
	case *tree.Access:
		return fe.emitAccess(n), typeID
	case *tree.TypeConstant:
		return fe.emitTypeConstant(n), typeID
	default:
		fe.errs.Add(diag.New(diag.Internal, e.Location(), "expression kind reached spirv codegen unhandled: %T", e))
		return 0, typeID
	}
}

func (fe *funcEmitter) emitIdentifier(n *tree.IdentifierValue) uint32 {
	switch n.Category {
	case symbol.Variable:
		ptr := fe.pointerFor(n.Index)
		typeID := fe.m.typeID(fe.mod, fe.mod.Variables[n.Index].Type)
		return fe.emitResult(OpLoad, typeID, ptr)
	case symbol.Constant:
		cd := fe.mod.Consts[n.Index]
		v, _ := fe.emitExpr(cd.Value)
		return v
	default:
		fe.errs.Add(diag.New(diag.Internal, n.Location(), "identifier category reached spirv codegen unresolved to a value: %v", n.Category))
		return 0
	}
}

// lvaluePointer resolves an assignment target's pointer id, supporting
// plain variable targets and single-level field/index access (spec §4.5
// access chains via OpAccessChain).
func (fe *funcEmitter) lvaluePointer(e tree.Expression) (ptr uint32, elemTypeID uint32) {
	switch n := e.(type) {
	case *tree.IdentifierValue:
		if n.Category != symbol.Variable {
			fe.errs.Add(diag.New(diag.Internal, n.Location(), "assignment target is not a variable"))
			return 0, 0
		}
		return fe.pointerFor(n.Index), fe.m.typeID(fe.mod, fe.mod.Variables[n.Index].Type)
	case *tree.Access:
		base, _ := fe.lvaluePointer(n.Of)
		idx := fe.accessIndexConstant(n)
		elemType := fe.m.typeID(fe.mod, n.Type())
		ptrType := fe.m.pointerTypeID(fe.mod, n.Type(), StorageClassFunction)
		return fe.emitResult(OpAccessChain, ptrType, base, idx), elemType
	default:
		fe.errs.Add(diag.New(diag.Internal, e.Location(), "unsupported assignment target shape: %T", e))
		return 0, 0
	}
}

func (fe *funcEmitter) accessIndexConstant(n *tree.Access) uint32 {
	switch n.Kind {
	case tree.AccessByFieldIndex:
		return fe.m.uintConstant(uint32(n.FieldIndex))
	case tree.AccessByNumericIndices:
		if len(n.Indices) == 0 {
			return fe.m.uintConstant(0)
		}
		v, _ := fe.emitExpr(n.Indices[0])
		return v
	default:
		fe.errs.Add(diag.New(diag.Internal, n.Location(), "access kind not lowered before spirv codegen: %v", n.Kind))
		return fe.m.uintConstant(0)
	}
}

func (fe *funcEmitter) emitAssign(n *tree.Assign) uint32 {
	ptr, elemTypeID := fe.lvaluePointer(n.Target)
	value, _ := fe.emitExpr(n.Value)
	if n.Op != tree.Assign {
		cur := fe.emitResult(OpLoad, elemTypeID, ptr)
		binOp, _ := n.Op.BinaryEquivalent()
		value = fe.emitArith(binOp, n.Target.Type(), n.Value.Type(), elemTypeID, cur, value)
	}
	fe.emit(OpStore, ptr, value)
	return value
}

func (fe *funcEmitter) emitAccess(n *tree.Access) uint32 {
	ptr, elemTypeID := fe.lvaluePointer(n)
	return fe.emitResult(OpLoad, elemTypeID, ptr)
}

func (fe *funcEmitter) emitSwizzle(n *tree.Swizzle) uint32 {
	of, _ := fe.emitExpr(n.Of)
	typeID := fe.m.typeID(fe.mod, n.Type())
	if len(n.Components) == 1 {
		return fe.emitResult(OpCompositeExtract, typeID, of, uint32(n.Components[0]))
	}
	components := make([]uint32, len(n.Components))
	for i, c := range n.Components {
		components[i] = uint32(c)
	}
	operands := append([]uint32{of, of}, components...)
	return fe.emitResult(OpVectorShuffle, typeID, operands...)
}

func (fe *funcEmitter) emitTypeConstant(n *tree.TypeConstant) uint32 {
	bits := infinityOrNaN(n.Of, n.Const)
	return fe.m.scalarConstant(n.Of, bits)
}

// infinityOrNaN returns the IEEE-754 bit pattern for of's Infinity/NaN
// type constant (spec §3.2 "f32::Infinity"/"f32::NaN" and their f64
// equivalents). NaN uses the canonical quiet-NaN encoding (top mantissa
// bit set) since the language has no way to name a specific payload.
func infinityOrNaN(of types.Primitive, kind tree.TypeConstKind) uint64 {
	switch of {
	case types.F64:
		if kind == tree.NaN {
			return 0x7FF8000000000000
		}
		return 0x7FF0000000000000
	default: // F32
		if kind == tree.NaN {
			return 0x7FC00000
		}
		return 0x7F800000
	}
}

// scalarOf returns the component primitive of a scalar, vector, or
// matrix type, used to pick the signed/unsigned/float opcode variant an
// arithmetic or comparison operator lowers to (spec §4.5 "intrinsic/
// operator mapping").
func scalarOf(t types.Type) types.Primitive {
	switch v := types.ResolveAlias(t).(type) {
	case types.Primitive:
		return v
	case types.Vector:
		return v.Of
	case types.Matrix:
		return v.Of
	default:
		return types.F32
	}
}

func isScalarType(t types.Type) bool {
	_, ok := types.ResolveAlias(t).(types.Primitive)
	return ok
}

// emitArith lowers one binary operator to its SPIR-V instruction,
// special-casing the matrix/vector/scalar multiply combinations
// OpIMul/OpFMul don't cover (spec §4.5) before falling back to the
// elementwise scalar/vector opcode selected by arithOpcode.
func (fe *funcEmitter) emitArith(op tree.BinaryOp, lhsType, rhsType types.Type, resultTypeID uint32, lhs, rhs uint32) uint32 {
	lhsType = types.ResolveAlias(lhsType)
	rhsType = types.ResolveAlias(rhsType)

	if op == tree.Mul {
		_, lhsMat := lhsType.(types.Matrix)
		_, rhsMat := rhsType.(types.Matrix)
		_, lhsVec := lhsType.(types.Vector)
		_, rhsVec := rhsType.(types.Vector)
		switch {
		case lhsMat && rhsMat:
			return fe.emitResult(OpMatrixTimesMatrix, resultTypeID, lhs, rhs)
		case lhsMat && rhsVec:
			return fe.emitResult(OpMatrixTimesVector, resultTypeID, lhs, rhs)
		case lhsVec && rhsMat:
			return fe.emitResult(OpVectorTimesMatrix, resultTypeID, lhs, rhs)
		case lhsMat && isScalarType(rhsType):
			return fe.emitResult(OpMatrixTimesScalar, resultTypeID, lhs, rhs)
		case lhsVec && isScalarType(rhsType):
			return fe.emitResult(OpVectorTimesScalar, resultTypeID, lhs, rhs)
		case isScalarType(lhsType) && rhsMat:
			return fe.emitResult(OpMatrixTimesScalar, resultTypeID, rhs, lhs)
		case isScalarType(lhsType) && rhsVec:
			return fe.emitResult(OpVectorTimesScalar, resultTypeID, rhs, lhs)
		}
	}

	scalar := scalarOf(lhsType)
	opcode, ok := arithOpcode(op, scalar)
	if !ok {
		fe.errs.Add(diag.New(diag.Internal, diag.Location{}, "binary operator %s has no spirv opcode for %s", op, scalar))
		return 0
	}
	return fe.emitResult(opcode, resultTypeID, lhs, rhs)
}

// arithOpcode picks the scalar-kind-specific opcode for a binary
// operator (spec §4.5: SPIR-V, unlike the source language, has distinct
// instructions per float/signed-int/unsigned-int/bool operand kind).
func arithOpcode(op tree.BinaryOp, scalar types.Primitive) (Op, bool) {
	isFloat := scalar.IsFloat()
	isUnsigned := scalar == types.U32
	switch op {
	case tree.Add:
		if isFloat {
			return OpFAdd, true
		}
		return OpIAdd, true
	case tree.Sub:
		if isFloat {
			return OpFSub, true
		}
		return OpISub, true
	case tree.Mul:
		if isFloat {
			return OpFMul, true
		}
		return OpIMul, true
	case tree.Div:
		switch {
		case isFloat:
			return OpFDiv, true
		case isUnsigned:
			return OpUDiv, true
		default:
			return OpSDiv, true
		}
	case tree.Mod:
		switch {
		case isFloat:
			return OpFRem, true
		case isUnsigned:
			return OpUMod, true
		default:
			return OpSRem, true
		}
	case tree.LogicalAnd:
		return OpLogicalAnd, true
	case tree.LogicalOr:
		return OpLogicalOr, true
	case tree.BitwiseAnd:
		return OpBitwiseAnd, true
	case tree.BitwiseOr:
		return OpBitwiseOr, true
	case tree.BitwiseXor:
		return OpBitwiseXor, true
	case tree.ShiftLeft:
		return OpShiftLeftLogical, true
	case tree.ShiftRight:
		if scalar.IsSigned() {
			return OpShiftRightArithmetic, true
		}
		return OpShiftRightLogical, true
	case tree.CompEq:
		switch {
		case scalar == types.Bool:
			return OpLogicalEqual, true
		case isFloat:
			return OpFOrdEqual, true
		default:
			return OpIEqual, true
		}
	case tree.CompNe:
		switch {
		case scalar == types.Bool:
			return OpLogicalNotEqual, true
		case isFloat:
			return OpFOrdNotEqual, true
		default:
			return OpINotEqual, true
		}
	case tree.CompLt:
		switch {
		case isFloat:
			return OpFOrdLessThan, true
		case isUnsigned:
			return OpULessThan, true
		default:
			return OpSLessThan, true
		}
	case tree.CompLe:
		switch {
		case isFloat:
			return OpFOrdLessThanEqual, true
		case isUnsigned:
			return OpULessThanEqual, true
		default:
			return OpSLessThanEqual, true
		}
	case tree.CompGt:
		switch {
		case isFloat:
			return OpFOrdGreaterThan, true
		case isUnsigned:
			return OpUGreaterThan, true
		default:
			return OpSGreaterThan, true
		}
	case tree.CompGe:
		switch {
		case isFloat:
			return OpFOrdGreaterThanEqual, true
		case isUnsigned:
			return OpUGreaterThanEqual, true
		default:
			return OpSGreaterThanEqual, true
		}
	default:
		return 0, false
	}
}

func (fe *funcEmitter) emitBinary(n *tree.Binary) uint32 {
	lhs, _ := fe.emitExpr(n.Left)
	rhs, _ := fe.emitExpr(n.Right)
	typeID := fe.m.typeID(fe.mod, n.Type())
	return fe.emitArith(n.Op, n.Left.Type(), n.Right.Type(), typeID, lhs, rhs)
}

func (fe *funcEmitter) emitUnary(n *tree.Unary) uint32 {
	v, _ := fe.emitExpr(n.Operand)
	typeID := fe.m.typeID(fe.mod, n.Type())
	switch n.Op {
	case tree.Negate:
		if scalarOf(n.Operand.Type()).IsFloat() {
			return fe.emitResult(OpFNegate, typeID, v)
		}
		return fe.emitResult(OpSNegate, typeID, v)
	case tree.LogicalNot:
		return fe.emitResult(OpLogicalNot, typeID, v)
	case tree.BitwiseNot:
		return fe.emitResult(OpNot, typeID, v)
	case tree.Plus:
		return v
	default:
		fe.errs.Add(diag.New(diag.Internal, n.Location(), "unary operator has no spirv opcode: %s", n.Op))
		return 0
	}
}

// convertOpcode picks the scalar-to-scalar conversion opcode for a
// single-argument Cast between two different primitives (spec §3.2
// "construction expressions" covers this as the degenerate one-arg,
// same-shape case). i32<->u32 is a same-width reinterpretation, so it
// goes through OpBitcast rather than one of the value-converting
// OpConvert* instructions.
func convertOpcode(from, to types.Primitive) (Op, bool) {
	if from == to {
		return 0, false
	}
	switch {
	case from.IsFloat() && to == types.I32:
		return OpConvertFToS, true
	case from.IsFloat() && to == types.U32:
		return OpConvertFToU, true
	case from == types.I32 && to.IsFloat():
		return OpConvertSToF, true
	case from == types.U32 && to.IsFloat():
		return OpConvertUToF, true
	case from.IsFloat() && to.IsFloat():
		return OpFConvert, true
	case (from == types.I32 && to == types.U32) || (from == types.U32 && to == types.I32):
		return OpBitcast, true
	default:
		return 0, false
	}
}

// emitCast lowers a construction expression: a single scalar argument
// whose primitive differs from the target is a conversion, everything
// else (vector/matrix/array construction, or a no-op same-type wrap) is
// an OpCompositeConstruct (spec §3.2).
func (fe *funcEmitter) emitCast(n *tree.Cast) uint32 {
	target := types.ResolveAlias(n.Target)
	typeID := fe.m.typeID(fe.mod, n.Target)

	argIDs := make([]uint32, len(n.Args))
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argIDs[i], _ = fe.emitExpr(a)
		argTypes[i] = types.ResolveAlias(a.Type())
	}

	if len(n.Args) == 1 {
		if fromP, ok := argTypes[0].(types.Primitive); ok {
			if toP, ok2 := target.(types.Primitive); ok2 {
				if fromP == toP {
					return argIDs[0]
				}
				if op, ok3 := convertOpcode(fromP, toP); ok3 {
					return fe.emitResult(op, typeID, argIDs[0])
				}
			}
		}
	}
	return fe.emitResult(OpCompositeConstruct, typeID, argIDs...)
}

// emitCall lowers a direct call to another module function (spec §3.2;
// methods desugar to a plain function call earlier in the pipeline, per
// the resolver's method-to-function lowering). fe.funcIDs is populated
// once for the whole module before any function body is emitted, so a
// callee defined later in source order already has an id here.
func (fe *funcEmitter) emitCall(n *tree.Call) uint32 {
	ident, ok := n.Callee.(*tree.IdentifierValue)
	if !ok || ident.Category != symbol.Function {
		fe.errs.Add(diag.New(diag.Internal, n.Location(), "call target is not a resolved function reference"))
		return 0
	}
	fnID, ok := fe.funcIDs[ident.Index]
	if !ok {
		fe.errs.Add(diag.New(diag.Internal, n.Location(), "function %s has no spirv id", ident.Name))
		return 0
	}
	argIDs := make([]uint32, len(n.Args))
	for i, a := range n.Args {
		argIDs[i], _ = fe.emitExpr(a)
	}
	typeID := fe.m.typeID(fe.mod, n.Type())
	operands := append([]uint32{fnID}, argIDs...)
	return fe.emitResult(OpFunctionCall, typeID, operands...)
}

// arrayLength returns the element count of a foreach-iterated array
// expression: a compile-time constant for a fixed-size Array, or an
// OpArrayLength query against the owning storage-buffer struct for a
// DynArray, which ValidationTransformer guarantees is only ever reached
// through a direct field access (spec §4.1 "dynarray is always the last
// member of a storage-wrapped struct").
func (fe *funcEmitter) arrayLength(of tree.Expression) uint32 {
	switch v := types.ResolveAlias(of.Type()).(type) {
	case types.Array:
		return fe.m.uintConstant(v.Length)
	case types.DynArray:
		if acc, ok := of.(*tree.Access); ok && acc.Kind == tree.AccessByFieldIndex {
			base, _ := fe.lvaluePointer(acc.Of)
			uintTypeID := fe.m.typeID(fe.mod, types.U32)
			return fe.emitResult(OpArrayLength, uintTypeID, base, uint32(acc.FieldIndex))
		}
		fe.errs.Add(diag.New(diag.Internal, of.Location(), "dynarray iterated without a direct field access to resolve its length"))
		return fe.m.uintConstant(0)
	default:
		fe.errs.Add(diag.New(diag.Internal, of.Location(), "foreach over non-array type reached spirv codegen: %s", v))
		return fe.m.uintConstant(0)
	}
}

// elementPointer returns an OpAccessChain into of's backing storage at
// index idx, used both by ForEach iteration and directly mirrors
// lvaluePointer's *tree.Access case for an externally-computed index.
func (fe *funcEmitter) elementPointer(of tree.Expression, idx uint32) (ptr, elemTypeID uint32) {
	base, _ := fe.lvaluePointer(of)
	elemType := elementTypeOf(types.ResolveAlias(of.Type()))
	elemTypeID = fe.m.typeID(fe.mod, elemType)
	ptrType := fe.m.pointerTypeID(fe.mod, elemType, StorageClassFunction)
	return fe.emitResult(OpAccessChain, ptrType, base, idx), elemTypeID
}

// emitForEach lowers array/dynarray iteration to an index-counted
// structured loop over arrayLength, loading each element into the
// loop variable's backing pointer before running the body (spec §3.2;
// there is no native SPIR-V foreach, unlike While's direct OpLoopMerge
// mapping).
func (fe *funcEmitter) emitForEach(n *tree.ForEach) {
	idxPtr := fe.forEachIndex[n]
	uintTypeID := fe.m.typeID(fe.mod, types.U32)
	boolTypeID := fe.m.typeID(fe.mod, types.Bool)

	fe.emit(OpStore, idxPtr, fe.m.uintConstant(0))
	length := fe.arrayLength(n.Of)

	headerLabel := fe.m.id()
	checkLabel := fe.m.id()
	bodyLabel := fe.m.id()
	continueLabel := fe.m.id()
	mergeLabel := fe.m.id()

	fe.emit(OpBranch, headerLabel)
	fe.emitLabel(headerLabel)
	fe.emit(OpLoopMerge, mergeLabel, continueLabel, 0)
	fe.emit(OpBranch, checkLabel)

	fe.emitLabel(checkLabel)
	idx := fe.emitResult(OpLoad, uintTypeID, idxPtr)
	cond := fe.emitResult(OpULessThan, boolTypeID, idx, length)
	fe.emit(OpBranchConditional, cond, bodyLabel, mergeLabel)

	fe.emitLabel(bodyLabel)
	elemPtr, elemTypeID := fe.elementPointer(n.Of, idx)
	elemVal := fe.emitResult(OpLoad, elemTypeID, elemPtr)
	fe.emit(OpStore, fe.pointerFor(n.VarIndex), elemVal)

	fe.loops = append(fe.loops, loopTargets{continueLabel: continueLabel, breakLabel: mergeLabel})
	fe.emitBody(n.Body)
	fe.loops = fe.loops[:len(fe.loops)-1]
	if !fe.blockTerminated() {
		fe.emit(OpBranch, continueLabel)
	}

	fe.emitLabel(continueLabel)
	idx2 := fe.emitResult(OpLoad, uintTypeID, idxPtr)
	next := fe.emitResult(OpIAdd, uintTypeID, idx2, fe.m.uintConstant(1))
	fe.emit(OpStore, idxPtr, next)
	fe.emit(OpBranch, headerLabel)

	fe.emitLabel(mergeLabel)
}

// emitIntrinsic lowers a call to one of the language's built-in
// functions via the direct-opcode/extended-instruction tables of
// intrinsics.go (spec §4.5). array_length is handled separately since
// its argument is a dynarray field access resolved to a pointer, not a
// value like every other intrinsic's arguments.
func (fe *funcEmitter) emitIntrinsic(n *tree.Intrinsic) uint32 {
	if n.Intrinsic == tree.IntrArrayLength {
		return fe.arrayLength(n.Args[0])
	}

	typeID := fe.m.typeID(fe.mod, n.Type())
	argIDs := make([]uint32, len(n.Args))
	for i, a := range n.Args {
		argIDs[i], _ = fe.emitExpr(a)
	}

	if op, ok := directOpcode(n.Intrinsic); ok {
		return fe.emitResult(op, typeID, argIDs...)
	}
	if num, ok := extInstNumber(n.Intrinsic); ok {
		operands := append([]uint32{fe.m.extInstSet(), num}, argIDs...)
		return fe.emitResult(OpExtInst, typeID, operands...)
	}
	fe.errs.Add(diag.New(diag.Internal, n.Location(), "intrinsic has no spirv mapping: %v", n.Intrinsic))
	return 0
}
