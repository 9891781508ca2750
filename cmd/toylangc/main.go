package main

import (
	"fmt"
	"os"
	"path/filepath"

	"toylangc/internal/ir"
	"toylangc/internal/lexer"
	"toylangc/internal/parser"
	"toylangc/internal/util"
)

// run begins reading source code and executes compiler stages.
// Behaviour is defined by the util.Options structure.
func run(opt util.Options) error {
	// Read source code.
	src, err := util.ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source code: %s", err)
	}

	// If -ts flag was passed: output token stream and exit.
	if opt.TokenStream {
		if err := printTokenStream(src); err != nil {
			return fmt.Errorf("syntax error: %s", err)
		}
		return nil
	}

	// Generate syntax tree by lexing and parsing source code.
	prog, err := parser.Parse(src)
	if err != nil {
		return fmt.Errorf("parse error: %s", err)
	}

	if opt.Verbose {
		fmt.Printf("%+v\n", prog)
	}

	// Lower the syntax tree to LLVM IR.
	lc, err := ir.Lower(prog, moduleName(opt.Src))
	if err != nil {
		return fmt.Errorf("lowering error: %s", err)
	}
	defer lc.Dispose()

	for _, w := range lc.Diag.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	irText := lc.String()
	if opt.Verbose {
		fmt.Println(irText)
	}

	out := opt.Out
	if out == "" {
		out = "output.ll"
	}
	if err := os.WriteFile(out, []byte(irText), 0644); err != nil {
		return fmt.Errorf("could not write output file: %s", err)
	}
	return nil
}

// printTokenStream lexes src and prints every token to stdout as a debug
// facility for inspecting scanner output directly.
func printTokenStream(src string) error {
	l := lexer.New(src)
	go l.Run()
	for {
		tok := l.NextToken()
		fmt.Println(tok)
		switch tok.Kind {
		case lexer.EOF:
			return nil
		case lexer.Error:
			return fmt.Errorf("%s", tok.Val)
		}
	}
}

func moduleName(src string) string {
	if src == "" {
		return "stdin"
	}
	return filepath.Base(src)
}

func main() {
	// Parse command line arguments.
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("Command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
