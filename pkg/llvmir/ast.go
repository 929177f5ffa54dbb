// Package llvmir is a small closed model of the LLVM IR textual module
// this compiler emits: one function, a sequence of basic blocks, and a
// fixed instruction set covering exactly what the Emitter needs.
package llvmir

import "strconv"

// Operand is anything usable as the right-hand side of an instruction:
// a literal, an SSA register, or a named stack slot.
type Operand interface {
	operandText() string
}

// IntLit is a literal 32-bit integer operand.
type IntLit int32

func (v IntLit) operandText() string { return strconv.Itoa(int(v)) }

// Reg is an unnamed SSA register, e.g. "%3".
type Reg string

func (r Reg) operandText() string { return string(r) }

// Var is a named stack slot produced by Alloca, e.g. Var("x") prints as "%x".
type Var string

func (v Var) operandText() string { return "%" + string(v) }

// Instruction is the closed set of LLVM IR instructions this compiler emits.
type Instruction interface {
	implInstruction()
}

// Alloca reserves one word of stack storage for a source variable.
type Alloca struct {
	Dest Var
}

// Store writes Value into the stack slot Dest.
type Store struct {
	Value Operand
	Dest  Var
}

// Load reads the stack slot Src into a fresh register.
type Load struct {
	Dest Reg
	Src  Var
}

// ArithOp is one of the four integer arithmetic opcodes.
type ArithOp string

const (
	OpArithAdd  ArithOp = "add"
	OpArithSub  ArithOp = "sub"
	OpArithMul  ArithOp = "mul"
	OpArithSdiv ArithOp = "sdiv"
)

// Arith computes Dest = L <Op> R as a 32-bit integer.
type Arith struct {
	Dest Reg
	Op   ArithOp
	L, R Operand
}

// ICmpPred is one of the three comparison predicates this language uses.
type ICmpPred string

const (
	PredEq  ICmpPred = "eq"
	PredSlt ICmpPred = "slt"
	PredSle ICmpPred = "sle"
)

// ICmp computes the 1-bit boolean Dest = L <Pred> R.
type ICmp struct {
	Dest Reg
	Pred ICmpPred
	L, R Operand
}

// Xor computes a 1-bit boolean Dest = L xor R (used to negate for ->).
type Xor struct {
	Dest Reg
	L, R Operand
}

// Or computes a 1-bit boolean Dest = L or R (used to complete ->).
type Or struct {
	Dest Reg
	L, R Operand
}

// CallPrintf prints Value using the "%d\n" format string.
type CallPrintf struct {
	Value Operand
}

// CallScanf reads an integer into the stack slot Dest.
type CallScanf struct {
	Dest Var
}

// Br is an unconditional branch.
type Br struct {
	Target string
}

// CondBr branches to TrueLabel if Cond is true, else FalseLabel.
type CondBr struct {
	Cond                 Operand
	TrueLabel, FalseLabel string
}

// Ret is the function's return terminator.
type Ret struct {
	Value Operand
}

func (Alloca) implInstruction()     {}
func (Store) implInstruction()      {}
func (Load) implInstruction()       {}
func (Arith) implInstruction()      {}
func (ICmp) implInstruction()       {}
func (Xor) implInstruction()        {}
func (Or) implInstruction()         {}
func (CallPrintf) implInstruction() {}
func (CallScanf) implInstruction()  {}
func (Br) implInstruction()         {}
func (CondBr) implInstruction()     {}
func (Ret) implInstruction()        {}

// BasicBlock is a label and the straight-line instructions that follow
// it, always ending in exactly one terminator (Br, CondBr, or Ret).
type BasicBlock struct {
	Label string
	Instrs []Instruction
}

// Function is the module's single entry point, @main.
type Function struct {
	Name   string
	Blocks []*BasicBlock
}

// Module is a complete, self-contained LLVM IR module: the fixed
// printf/scanf declarations and format-string globals, plus one function.
type Module struct {
	Func Function
}

// NewFunction creates an empty function with the given name.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// AppendBlock starts a new basic block under the given label and
// returns it so the caller can append instructions to it directly; the
// pointer stays valid even as later blocks are appended.
func (f *Function) AppendBlock(label string) *BasicBlock {
	b := &BasicBlock{Label: label}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Append adds an instruction to the block.
func (b *BasicBlock) Append(instr Instruction) {
	b.Instrs = append(b.Instrs, instr)
}
