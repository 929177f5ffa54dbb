// Package collector implements the pre-pass that discovers every
// variable name touched by a program, so the Emitter can allocate one
// alloca per variable before lowering any control flow.
package collector

import "github.com/mrudula/yalcc/pkg/ast"

// Vars is the set of variable names collected from a program. Every
// name in Vars needs exactly one `alloca i32` in the function prologue.
// Membership is what matters; no iteration order is promised.
type Vars map[string]struct{}

// Has reports whether name was collected.
func (v Vars) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Names returns the collected names in no particular order.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	return names
}

// Collect walks prog's body once and returns the set of variable names
// it assigns to, reads from, or reads input into.
func Collect(prog *ast.Program) Vars {
	vars := make(Vars)
	collectBlock(vars, prog.Body)
	return vars
}

func collectBlock(vars Vars, b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Stmts {
		collectStmt(vars, stmt)
	}
}

func collectStmt(vars Vars, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.Assign:
		vars[s.Name] = struct{}{}
		collectExpr(vars, s.Value)
	case ast.If:
		collectExpr(vars, s.Cond)
		collectBlock(vars, s.Then)
		collectBlock(vars, s.Else)
	case ast.While:
		collectExpr(vars, s.Cond)
		collectBlock(vars, s.Body)
	case ast.Print:
		vars[s.Name] = struct{}{}
	case ast.Input:
		vars[s.Name] = struct{}{}
	case *ast.Block:
		collectBlock(vars, s)
	}
}

func collectExpr(vars Vars, expr ast.Expr) {
	switch e := expr.(type) {
	case ast.VarRef:
		vars[e.Name] = struct{}{}
	case ast.BinExpr:
		collectExpr(vars, e.Left)
		collectExpr(vars, e.Right)
	}
}
