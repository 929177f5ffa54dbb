package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mrudula/yalcc/pkg/ast"
	"github.com/mrudula/yalcc/pkg/collector"
	"github.com/mrudula/yalcc/pkg/emitter"
	"github.com/mrudula/yalcc/pkg/lexer"
	"github.com/mrudula/yalcc/pkg/llvmir"
	"github.com/mrudula/yalcc/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// dAST dumps the parsed AST instead of compiling, for inspecting how a
// program was parsed.
var dAST bool

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists flags that also accept CompCert-style single-dash spelling.
var debugFlagNames = []string{"dast"}

// normalizeFlags rewrites single-dash debug flags like -dast to --dast
// so pflag, which only recognizes single-dash short flags, still accepts them.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range debugFlagNames {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yalcc [file]",
		Short: "yalcc compiles a small imperative language to LLVM IR",
		Long: `yalcc reads one source file written in a small imperative
language of integer variables, arithmetic and boolean expressions,
if/while, and print/input, and emits an LLVM IR textual module on
stdout.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			return compile(args[0], out, errOut, dAST)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.Flags().BoolVar(&dAST, "dast", false, "dump the parsed AST instead of compiling")
	return rootCmd
}

// compile runs the full lexer -> parser -> collector -> emitter -> llvmir.Printer
// pipeline on filename, writing the module to out. Any failure is
// reported to errOut and returned as an error, so run() can translate it
// into a non-zero exit code.
func compile(filename string, out, errOut io.Writer, dumpAST bool) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "yalcc: %v\n", err)
		return err
	}

	l := lexer.New(string(content))
	p := parser.New(l)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintf(errOut, "yalcc: %s\n", e)
		}
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		printer := ast.NewPrinter(out)
		printer.PrintProgram(prog)
		return nil
	}

	vars := collector.Collect(prog)
	module := emitter.Emit(prog, vars)

	printer := llvmir.NewPrinter(out)
	printer.PrintModule(module)
	return nil
}
