// Package emitter lowers a parsed program into an llvmir.Module: one
// alloca/store prologue for every collected variable, followed by a
// structured walk of the statement tree that threads a "current block"
// through straight-line code and forks it at If/While control flow.
package emitter

import (
	"sort"

	"github.com/mrudula/yalcc/pkg/ast"
	"github.com/mrudula/yalcc/pkg/collector"
	"github.com/mrudula/yalcc/pkg/llvmir"
)

// Emit lowers prog to a complete module. vars must be collector.Collect(prog);
// it determines the set of stack slots the prologue allocates.
func Emit(prog *ast.Program, vars collector.Vars) *llvmir.Module {
	ctx := NewContext()
	fn := llvmir.NewFunction("main")
	entry := fn.AppendBlock("entry")

	names := vars.Names()
	sort.Strings(names)
	for _, name := range names {
		entry.Append(llvmir.Alloca{Dest: llvmir.Var(name)})
		entry.Append(llvmir.Store{Value: llvmir.IntLit(0), Dest: llvmir.Var(name)})
	}

	e := &emitFn{ctx: ctx, fn: fn, cur: entry}
	e.block(prog.Body)
	e.cur.Append(llvmir.Ret{Value: llvmir.IntLit(0)})

	return &llvmir.Module{Func: *fn}
}

// emitFn holds the mutable state of an in-progress lowering: the
// function being built and the block instructions are currently
// appended to. cur moves forward as control flow forks; it never
// points backward into an already-terminated block.
type emitFn struct {
	ctx *Context
	fn  *llvmir.Function
	cur *llvmir.BasicBlock
}

func (e *emitFn) block(b *ast.Block) {
	for _, stmt := range b.Stmts {
		e.stmt(stmt)
	}
}

func (e *emitFn) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.Assign:
		val := e.expr(s.Value)
		e.cur.Append(llvmir.Store{Value: val, Dest: llvmir.Var(s.Name)})
	case ast.Print:
		dest := e.ctx.Fresh()
		e.cur.Append(llvmir.Load{Dest: dest, Src: llvmir.Var(s.Name)})
		e.cur.Append(llvmir.CallPrintf{Value: dest})
	case ast.Input:
		e.cur.Append(llvmir.CallScanf{Dest: llvmir.Var(s.Name)})
	case ast.If:
		e.ifStmt(s)
	case ast.While:
		e.whileStmt(s)
	case *ast.Block:
		e.block(s)
	}
}

func (e *emitFn) ifStmt(s ast.If) {
	cond := e.expr(s.Cond)
	thenLabel := e.ctx.FreshLabel("if_then")

	if s.Else == nil {
		// No else clause: the false edge goes straight to Lend, and no
		// if_else block is allocated at all.
		endLabel := e.ctx.FreshLabel("if_end")
		e.cur.Append(llvmir.CondBr{Cond: cond, TrueLabel: thenLabel, FalseLabel: endLabel})

		e.cur = e.fn.AppendBlock(thenLabel)
		e.block(s.Then)
		e.cur.Append(llvmir.Br{Target: endLabel})

		e.cur = e.fn.AppendBlock(endLabel)
		return
	}

	elseLabel := e.ctx.FreshLabel("if_else")
	endLabel := e.ctx.FreshLabel("if_end")
	e.cur.Append(llvmir.CondBr{Cond: cond, TrueLabel: thenLabel, FalseLabel: elseLabel})

	e.cur = e.fn.AppendBlock(thenLabel)
	e.block(s.Then)
	e.cur.Append(llvmir.Br{Target: endLabel})

	e.cur = e.fn.AppendBlock(elseLabel)
	e.block(s.Else)
	e.cur.Append(llvmir.Br{Target: endLabel})

	e.cur = e.fn.AppendBlock(endLabel)
}

func (e *emitFn) whileStmt(s ast.While) {
	condLabel := e.ctx.FreshLabel("while_cond")
	bodyLabel := e.ctx.FreshLabel("while_body")
	endLabel := e.ctx.FreshLabel("while_end")

	e.cur.Append(llvmir.Br{Target: condLabel})

	e.cur = e.fn.AppendBlock(condLabel)
	cond := e.expr(s.Cond)
	e.cur.Append(llvmir.CondBr{Cond: cond, TrueLabel: bodyLabel, FalseLabel: endLabel})

	e.cur = e.fn.AppendBlock(bodyLabel)
	e.block(s.Body)
	e.cur.Append(llvmir.Br{Target: condLabel})

	e.cur = e.fn.AppendBlock(endLabel)
}

func (e *emitFn) expr(expr ast.Expr) llvmir.Operand {
	switch x := expr.(type) {
	case ast.Number:
		return llvmir.IntLit(x.Value)
	case ast.VarRef:
		dest := e.ctx.Fresh()
		e.cur.Append(llvmir.Load{Dest: dest, Src: llvmir.Var(x.Name)})
		return dest
	case ast.BinExpr:
		return e.binExpr(x)
	default:
		return llvmir.IntLit(0)
	}
}

func (e *emitFn) binExpr(x ast.BinExpr) llvmir.Operand {
	l := e.expr(x.Left)
	r := e.expr(x.Right)
	dest := e.ctx.Fresh()

	switch x.Op {
	case ast.OpAdd:
		e.cur.Append(llvmir.Arith{Dest: dest, Op: llvmir.OpArithAdd, L: l, R: r})
	case ast.OpSub:
		e.cur.Append(llvmir.Arith{Dest: dest, Op: llvmir.OpArithSub, L: l, R: r})
	case ast.OpMul:
		e.cur.Append(llvmir.Arith{Dest: dest, Op: llvmir.OpArithMul, L: l, R: r})
	case ast.OpDiv:
		e.cur.Append(llvmir.Arith{Dest: dest, Op: llvmir.OpArithSdiv, L: l, R: r})
	case ast.OpEq:
		e.cur.Append(llvmir.ICmp{Dest: dest, Pred: llvmir.PredEq, L: l, R: r})
	case ast.OpLt:
		e.cur.Append(llvmir.ICmp{Dest: dest, Pred: llvmir.PredSlt, L: l, R: r})
	case ast.OpLe:
		e.cur.Append(llvmir.ICmp{Dest: dest, Pred: llvmir.PredSle, L: l, R: r})
	case ast.OpOr:
		e.cur.Append(llvmir.Or{Dest: dest, L: l, R: r})
	case ast.OpImplies:
		// p -> q lowers to (p xor 1) or q: false only when p is true and q is false.
		neg := e.ctx.Fresh()
		e.cur.Append(llvmir.Xor{Dest: neg, L: l, R: llvmir.IntLit(1)})
		e.cur.Append(llvmir.Or{Dest: dest, L: neg, R: r})
	}
	return dest
}
