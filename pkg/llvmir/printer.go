package llvmir

import (
	"fmt"
	"io"
)

// Printer renders a Module to the exact LLVM IR text shape this
// compiler's contract promises, instruction by instruction.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new IR printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintModule writes the complete, self-contained module: header,
// declarations, globals, and the single function.
func (p *Printer) PrintModule(m *Module) {
	fmt.Fprintln(p.w, "; Target: LLVM IR")
	fmt.Fprintln(p.w, "declare i32 @printf(i8*, ...)")
	fmt.Fprintln(p.w, "declare i32 @scanf(i8*, ...)")
	io.WriteString(p.w, `@.strP = private unnamed_addr constant [4 x i8] c"%d\0A\00", align 1`+"\n")
	io.WriteString(p.w, `@.strS = private unnamed_addr constant [3 x i8] c"%d\00", align 1`+"\n")
	fmt.Fprintln(p.w)
	p.printFunction(&m.Func)
}

func (p *Printer) printFunction(f *Function) {
	fmt.Fprintf(p.w, "define i32 @%s() {\n", f.Name)
	for _, b := range f.Blocks {
		p.printBlock(b)
	}
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printBlock(b *BasicBlock) {
	fmt.Fprintf(p.w, "%s:\n", b.Label)
	for _, instr := range b.Instrs {
		p.printInstruction(instr)
	}
}

func (p *Printer) printInstruction(instr Instruction) {
	switch i := instr.(type) {
	case Alloca:
		fmt.Fprintf(p.w, "  %s = alloca i32\n", i.Dest.operandText())
	case Store:
		fmt.Fprintf(p.w, "  store i32 %s, i32* %s\n", i.Value.operandText(), i.Dest.operandText())
	case Load:
		fmt.Fprintf(p.w, "  %s = load i32, i32* %s\n", i.Dest.operandText(), i.Src.operandText())
	case Arith:
		fmt.Fprintf(p.w, "  %s = %s i32 %s, %s\n", i.Dest.operandText(), i.Op, i.L.operandText(), i.R.operandText())
	case ICmp:
		fmt.Fprintf(p.w, "  %s = icmp %s i32 %s, %s\n", i.Dest.operandText(), i.Pred, i.L.operandText(), i.R.operandText())
	case Xor:
		fmt.Fprintf(p.w, "  %s = xor i1 %s, %s\n", i.Dest.operandText(), i.L.operandText(), i.R.operandText())
	case Or:
		fmt.Fprintf(p.w, "  %s = or i1 %s, %s\n", i.Dest.operandText(), i.L.operandText(), i.R.operandText())
	case CallPrintf:
		fmt.Fprintf(p.w,
			"  call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([4 x i8], [4 x i8]* @.strP, i64 0, i64 0), i32 %s)\n",
			i.Value.operandText())
	case CallScanf:
		fmt.Fprintf(p.w,
			"  call i32 (i8*, ...) @scanf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.strS, i64 0, i64 0), i32* %s)\n",
			i.Dest.operandText())
	case Br:
		fmt.Fprintf(p.w, "  br label %%%s\n", i.Target)
	case CondBr:
		fmt.Fprintf(p.w, "  br i1 %s, label %%%s, label %%%s\n", i.Cond.operandText(), i.TrueLabel, i.FalseLabel)
	case Ret:
		fmt.Fprintf(p.w, "  ret i32 %s\n", i.Value.operandText())
	default:
		fmt.Fprintf(p.w, "  ; unknown instruction %T\n", instr)
	}
}
