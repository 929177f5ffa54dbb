// Package parser implements a lookahead-1 recursive-descent parser for
// yalcc source, one method per grammar non-terminal.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrudula/yalcc/pkg/ast"
	"github.com/mrudula/yalcc/pkg/lexer"
)

// Parser parses a yalcc token stream into an ast.Program.
type Parser struct {
	l        *lexer.Lexer
	curToken lexer.Token
	errors   []string
}

// New creates a new Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

// Errors returns the diagnostics recorded during parsing. There is no
// error recovery, so this holds at most one entry.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// fail records the first syntax error only; once one is recorded,
// further calls are no-ops so the diagnostic always names the earliest
// mismatch.
func (p *Parser) fail(nonTerminal string, expected ...lexer.TokenType) {
	if p.failed() {
		return
	}
	names := make([]string, len(expected))
	for i, e := range expected {
		names[i] = e.String()
	}
	got := p.curToken.Value
	if got == "" {
		got = p.curToken.Type.String()
	}
	p.errors = append(p.errors, fmt.Sprintf(
		"Parsing Error at line %d and column %d trying to parse %s: expected %s, but got %s",
		p.curToken.Line, p.curToken.Column, nonTerminal, strings.Join(names, ", "), got))
}

// expect consumes curToken if it has type t, recording a diagnostic
// against nonTerminal and returning false otherwise.
func (p *Parser) expect(nonTerminal string, t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail(nonTerminal, t)
	return false
}

// ParseProgram parses rule [1]: Program -> Prog PROGNAME Is Code End.
func (p *Parser) ParseProgram() *ast.Program {
	if !p.expect("Program", lexer.TokenProg) {
		return nil
	}
	if !p.curTokenIs(lexer.TokenVarName) {
		p.fail("Program", lexer.TokenVarName)
		return nil
	}
	name := p.curToken.Value
	p.nextToken()
	if !p.expect("Program", lexer.TokenIs) {
		return nil
	}
	stmts := p.parseCode()
	if p.failed() {
		return nil
	}
	if !p.expect("Program", lexer.TokenEnd) {
		return nil
	}
	return &ast.Program{Name: name, Body: &ast.Block{Stmts: stmts}}
}

// parseCode implements rules [2]-[3]: Code -> Instruction ';' Code | ε,
// with FOLLOW(Code) = {End, Else}. If and While are closed by their own
// End, so the ';' after them is accepted but not required.
func (p *Parser) parseCode() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.curTokenIs(lexer.TokenEnd) && !p.curTokenIs(lexer.TokenElse) {
		stmt := p.parseInstruction()
		if p.failed() {
			return nil
		}
		switch stmt.(type) {
		case ast.If, ast.While:
			if p.curTokenIs(lexer.TokenSemi) {
				p.nextToken()
			}
			stmts = append(stmts, stmt)
			continue
		}
		if !p.expect("Code", lexer.TokenSemi) {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// parseInstruction dispatches rules [4]-[8] on the current token's FIRST set.
func (p *Parser) parseInstruction() ast.Stmt {
	switch p.curToken.Type {
	case lexer.TokenVarName:
		return p.parseAssign()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenPrint:
		return p.parseOutput()
	case lexer.TokenInput:
		return p.parseInput()
	default:
		p.fail("Instruction", lexer.TokenVarName, lexer.TokenIf, lexer.TokenWhile,
			lexer.TokenPrint, lexer.TokenInput)
		return nil
	}
}

// parseAssign implements rule [9]: Assign -> VARNAME '=' ExprArith.
func (p *Parser) parseAssign() ast.Stmt {
	name := p.curToken.Value
	p.nextToken()
	if !p.expect("Assign", lexer.TokenAssign) {
		return nil
	}
	value := p.parseExprArith()
	if p.failed() {
		return nil
	}
	return ast.Assign{Name: name, Value: value}
}

// parseExprArith implements rules [10]-[13], folding the prime rule
// into a left-associative chain of BinExpr nodes.
func (p *Parser) parseExprArith() ast.Expr {
	left := p.parseProd()
	if p.failed() {
		return nil
	}
	for {
		var op ast.BinOp
		switch p.curToken.Type {
		case lexer.TokenPlus:
			op = ast.OpAdd
		case lexer.TokenMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.nextToken()
		right := p.parseProd()
		if p.failed() {
			return nil
		}
		left = ast.BinExpr{Op: op, Left: left, Right: right}
	}
}

// parseProd implements rules [14]-[17], folding into a left-associative
// chain of BinExpr nodes.
func (p *Parser) parseProd() ast.Expr {
	left := p.parseAtom()
	if p.failed() {
		return nil
	}
	for {
		var op ast.BinOp
		switch p.curToken.Type {
		case lexer.TokenTimes:
			op = ast.OpMul
		case lexer.TokenDivide:
			op = ast.OpDiv
		default:
			return left
		}
		p.nextToken()
		right := p.parseAtom()
		if p.failed() {
			return nil
		}
		left = ast.BinExpr{Op: op, Left: left, Right: right}
	}
}

// parseAtom implements rules [18]-[21].
func (p *Parser) parseAtom() ast.Expr {
	switch p.curToken.Type {
	case lexer.TokenVarName:
		name := p.curToken.Value
		p.nextToken()
		return ast.VarRef{Name: name}
	case lexer.TokenNumber:
		v, err := strconv.ParseInt(p.curToken.Value, 10, 32)
		if err != nil {
			p.fail("Atom", lexer.TokenNumber)
			return nil
		}
		p.nextToken()
		return ast.Number{Value: int32(v)}
	case lexer.TokenLParen:
		p.nextToken()
		inner := p.parseExprArith()
		if p.failed() {
			return nil
		}
		if !p.expect("Atom", lexer.TokenRParen) {
			return nil
		}
		return inner
	case lexer.TokenMinus:
		// Unary minus, right-associative: -A becomes BinOp(0, -, A).
		p.nextToken()
		operand := p.parseAtom()
		if p.failed() {
			return nil
		}
		return ast.BinExpr{Op: ast.OpSub, Left: ast.Number{Value: 0}, Right: operand}
	default:
		p.fail("Atom", lexer.TokenVarName, lexer.TokenNumber, lexer.TokenLParen, lexer.TokenMinus)
		return nil
	}
}

// parseIf implements rules [22]-[24].
func (p *Parser) parseIf() ast.Stmt {
	p.nextToken() // consume If
	if !p.expect("If", lexer.TokenLBrack) {
		return nil
	}
	cond := p.parseCond()
	if p.failed() {
		return nil
	}
	if !p.expect("If", lexer.TokenRBrack) {
		return nil
	}
	if !p.expect("If", lexer.TokenThen) {
		return nil
	}
	thenStmts := p.parseCode()
	if p.failed() {
		return nil
	}
	thenBlock := &ast.Block{Stmts: thenStmts}

	switch p.curToken.Type {
	case lexer.TokenEnd:
		p.nextToken()
		return ast.If{Cond: cond, Then: thenBlock, Else: nil}
	case lexer.TokenElse:
		p.nextToken()
		elseStmts := p.parseCode()
		if p.failed() {
			return nil
		}
		if !p.expect("IfTail", lexer.TokenEnd) {
			return nil
		}
		return ast.If{Cond: cond, Then: thenBlock, Else: &ast.Block{Stmts: elseStmts}}
	default:
		p.fail("IfTail", lexer.TokenEnd, lexer.TokenElse)
		return nil
	}
}

// parseCond implements rules [25]-[27]; the implication prime folds
// right-associatively via direct recursion.
func (p *Parser) parseCond() ast.Expr {
	left := p.parseSimpleCond()
	if p.failed() {
		return nil
	}
	if p.curTokenIs(lexer.TokenImplies) {
		p.nextToken()
		right := p.parseCond()
		if p.failed() {
			return nil
		}
		return ast.BinExpr{Op: ast.OpImplies, Left: left, Right: right}
	}
	return left
}

// parseSimpleCond implements rules [28]-[32]. A `| C |` grouping is
// transparent and yields C's node unchanged.
func (p *Parser) parseSimpleCond() ast.Expr {
	if p.curTokenIs(lexer.TokenPipe) {
		p.nextToken()
		inner := p.parseCond()
		if p.failed() {
			return nil
		}
		if !p.expect("SimpleCond", lexer.TokenPipe) {
			return nil
		}
		return inner
	}

	left := p.parseExprArith()
	if p.failed() {
		return nil
	}

	var op ast.BinOp
	switch p.curToken.Type {
	case lexer.TokenEqual:
		op = ast.OpEq
	case lexer.TokenSmalEq:
		op = ast.OpLe
	case lexer.TokenSmaller:
		op = ast.OpLt
	default:
		p.fail("Comp", lexer.TokenEqual, lexer.TokenSmalEq, lexer.TokenSmaller)
		return nil
	}
	p.nextToken()

	right := p.parseExprArith()
	if p.failed() {
		return nil
	}
	return ast.BinExpr{Op: op, Left: left, Right: right}
}

// parseWhile implements rule [33].
func (p *Parser) parseWhile() ast.Stmt {
	p.nextToken() // consume While
	if !p.expect("While", lexer.TokenLBrack) {
		return nil
	}
	cond := p.parseCond()
	if p.failed() {
		return nil
	}
	if !p.expect("While", lexer.TokenRBrack) {
		return nil
	}
	if !p.expect("While", lexer.TokenDo) {
		return nil
	}
	stmts := p.parseCode()
	if p.failed() {
		return nil
	}
	if !p.expect("While", lexer.TokenEnd) {
		return nil
	}
	return ast.While{Cond: cond, Body: &ast.Block{Stmts: stmts}}
}

// parseOutput implements rule [34]: Output -> Print '(' VARNAME ')'.
func (p *Parser) parseOutput() ast.Stmt {
	p.nextToken() // consume Print
	if !p.expect("Output", lexer.TokenLParen) {
		return nil
	}
	if !p.curTokenIs(lexer.TokenVarName) {
		p.fail("Output", lexer.TokenVarName)
		return nil
	}
	name := p.curToken.Value
	p.nextToken()
	if !p.expect("Output", lexer.TokenRParen) {
		return nil
	}
	return ast.Print{Name: name}
}

// parseInput implements rule [35]: Input -> Input '(' VARNAME ')'.
func (p *Parser) parseInput() ast.Stmt {
	p.nextToken() // consume Input
	if !p.expect("Input", lexer.TokenLParen) {
		return nil
	}
	if !p.curTokenIs(lexer.TokenVarName) {
		p.fail("Input", lexer.TokenVarName)
		return nil
	}
	name := p.curToken.Value
	p.nextToken()
	if !p.expect("Input", lexer.TokenRParen) {
		return nil
	}
	return ast.Input{Name: name}
}
