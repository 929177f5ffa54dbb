package llvmir

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintInstructions(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"Alloca", Alloca{Dest: Var("x")}, "  %x = alloca i32\n"},
		{"Store literal", Store{Value: IntLit(0), Dest: Var("x")}, "  store i32 0, i32* %x\n"},
		{"Store register", Store{Value: Reg("%3"), Dest: Var("y")}, "  store i32 %3, i32* %y\n"},
		{"Load", Load{Dest: Reg("%1"), Src: Var("x")}, "  %1 = load i32, i32* %x\n"},
		{"Arith add", Arith{Dest: Reg("%2"), Op: OpArithAdd, L: Reg("%1"), R: IntLit(1)}, "  %2 = add i32 %1, 1\n"},
		{"Arith sub", Arith{Dest: Reg("%2"), Op: OpArithSub, L: Reg("%1"), R: IntLit(1)}, "  %2 = sub i32 %1, 1\n"},
		{"Arith mul", Arith{Dest: Reg("%2"), Op: OpArithMul, L: Reg("%1"), R: IntLit(2)}, "  %2 = mul i32 %1, 2\n"},
		{"Arith sdiv", Arith{Dest: Reg("%2"), Op: OpArithSdiv, L: Reg("%1"), R: IntLit(2)}, "  %2 = sdiv i32 %1, 2\n"},
		{"ICmp eq", ICmp{Dest: Reg("%4"), Pred: PredEq, L: Reg("%1"), R: IntLit(0)}, "  %4 = icmp eq i32 %1, 0\n"},
		{"ICmp slt", ICmp{Dest: Reg("%4"), Pred: PredSlt, L: Reg("%1"), R: Reg("%2")}, "  %4 = icmp slt i32 %1, %2\n"},
		{"ICmp sle", ICmp{Dest: Reg("%4"), Pred: PredSle, L: Reg("%1"), R: Reg("%2")}, "  %4 = icmp sle i32 %1, %2\n"},
		{"Xor", Xor{Dest: Reg("%5"), L: Reg("%4"), R: IntLit(1)}, "  %5 = xor i1 %4, 1\n"},
		{"Or", Or{Dest: Reg("%6"), L: Reg("%5"), R: Reg("%4")}, "  %6 = or i1 %5, %4\n"},
		{
			"CallPrintf",
			CallPrintf{Value: Reg("%1")},
			"  call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([4 x i8], [4 x i8]* @.strP, i64 0, i64 0), i32 %1)\n",
		},
		{
			"CallScanf",
			CallScanf{Dest: Var("n")},
			"  call i32 (i8*, ...) @scanf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.strS, i64 0, i64 0), i32* %n)\n",
		},
		{"Br", Br{Target: "label_1"}, "  br label %label_1\n"},
		{"CondBr", CondBr{Cond: Reg("%4"), TrueLabel: "label_1", FalseLabel: "label_2"}, "  br i1 %4, label %label_1, label %label_2\n"},
		{"Ret", Ret{Value: IntLit(0)}, "  ret i32 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf)
			p.printInstruction(tt.inst)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintModuleHeader(t *testing.T) {
	m := &Module{Func: Function{Name: "main"}}
	entry := m.Func.AppendBlock("entry")
	entry.Append(Ret{Value: IntLit(0)})

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintModule(m)

	want := `; Target: LLVM IR
declare i32 @printf(i8*, ...)
declare i32 @scanf(i8*, ...)
@.strP = private unnamed_addr constant [4 x i8] c"%d\0A\00", align 1
@.strS = private unnamed_addr constant [3 x i8] c"%d\00", align 1

define i32 @main() {
entry:
  ret i32 0
}
`
	if got := buf.String(); got != want {
		t.Errorf("PrintModule() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintModuleMultipleBlocks(t *testing.T) {
	f := NewFunction("main")
	entry := f.AppendBlock("entry")
	entry.Append(Alloca{Dest: Var("x")})
	entry.Append(Store{Value: IntLit(0), Dest: Var("x")})
	entry.Append(Br{Target: "label_1"})

	body := f.AppendBlock("label_1")
	body.Append(Ret{Value: IntLit(0)})

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintModule(&Module{Func: *f})

	output := buf.String()
	if !strings.Contains(output, "entry:\n") {
		t.Error("missing entry label")
	}
	if !strings.Contains(output, "label_1:\n") {
		t.Error("missing label_1 label")
	}
	if !strings.Contains(output, "br label %label_1") {
		t.Error("missing branch into label_1")
	}
	if strings.Index(output, "entry:") > strings.Index(output, "label_1:") {
		t.Error("entry block must be printed before label_1")
	}
}
