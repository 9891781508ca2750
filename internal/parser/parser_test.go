package parser

import (
	"testing"

	"toylangc/internal/ast"
)

func parseOrFatal(t *testing.T, src string) *ast.MainFunction {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseLetNumber(t *testing.T) {
	prog := parseOrFatal(t, `let x = 42`)
	if len(prog.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(prog.Body))
	}
	assign, ok := prog.Body[0].(*ast.VarAssign)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.VarAssign", prog.Body[0])
	}
	if assign.Name != "x" {
		t.Errorf("Name = %q, want %q", assign.Name, "x")
	}
	lit, ok := assign.Value.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("Value = %T, want *ast.NumberLiteral", assign.Value)
	}
	if lit.Lexeme != "42" {
		t.Errorf("Lexeme = %q, want %q", lit.Lexeme, "42")
	}
}

func TestParseArithPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3), not (1 + 2) * 3.
	prog := parseOrFatal(t, `let x = 1 + 2 * 3`)
	assign := prog.Body[0].(*ast.VarAssign)
	sum, ok := assign.Value.(*ast.Arith)
	if !ok || sum.Op != ast.OpSum {
		t.Fatalf("top-level op = %#v, want OpSum", assign.Value)
	}
	mul, ok := sum.Y.(*ast.Arith)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("right operand = %#v, want OpMul", sum.Y)
	}
}

func TestParseUnaryNegBindsTighterThanMul(t *testing.T) {
	prog := parseOrFatal(t, `let x = -2 * 3`)
	assign := prog.Body[0].(*ast.VarAssign)
	mul, ok := assign.Value.(*ast.Arith)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("top-level op = %#v, want OpMul", assign.Value)
	}
	if _, ok := mul.X.(*ast.Neg); !ok {
		t.Fatalf("left operand = %T, want *ast.Neg", mul.X)
	}
}

func TestParseComparisonLowestPrecedence(t *testing.T) {
	prog := parseOrFatal(t, `let x = 1 + 1 < 2 * 2`)
	assign := prog.Body[0].(*ast.VarAssign)
	cmp, ok := assign.Value.(*ast.Comparison)
	if !ok || cmp.Op != ast.RelLT {
		t.Fatalf("top-level expr = %#v, want a RelLT Comparison", assign.Value)
	}
	if _, ok := cmp.X.(*ast.Arith); !ok {
		t.Fatalf("left operand = %T, want *ast.Arith", cmp.X)
	}
	if _, ok := cmp.Y.(*ast.Arith); !ok {
		t.Fatalf("right operand = %T, want *ast.Arith", cmp.Y)
	}
}

func TestParseParenthesizedExpr(t *testing.T) {
	prog := parseOrFatal(t, `let x = (1 + 2) * 3`)
	assign := prog.Body[0].(*ast.VarAssign)
	mul, ok := assign.Value.(*ast.Arith)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("top-level op = %#v, want OpMul", assign.Value)
	}
	if _, ok := mul.X.(*ast.Arith); !ok {
		t.Fatalf("left operand = %T, want *ast.Arith", mul.X)
	}
}

func TestParsePrintStatement(t *testing.T) {
	prog := parseOrFatal(t, `print(42)`)
	pr, ok := prog.Body[0].(*ast.Print)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.Print", prog.Body[0])
	}
	if _, ok := pr.Value.(*ast.NumberLiteral); !ok {
		t.Fatalf("Value = %T, want *ast.NumberLiteral", pr.Value)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	prog := parseOrFatal(t, "if (x < 1) {\nprint(x)\n}")
	ifelse, ok := prog.Body[0].(*ast.IfElse)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.IfElse", prog.Body[0])
	}
	if len(ifelse.Then) != 1 {
		t.Fatalf("len(Then) = %d, want 1", len(ifelse.Then))
	}
	if ifelse.Else != nil {
		t.Fatalf("Else = %#v, want nil", ifelse.Else)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseOrFatal(t, "if (x < 1) {\nprint(x)\n} else {\nprint(0)\n}")
	ifelse := prog.Body[0].(*ast.IfElse)
	if len(ifelse.Else) != 1 {
		t.Fatalf("len(Else) = %d, want 1", len(ifelse.Else))
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseOrFatal(t, "while (x) {\nlet x = x - 1\n}")
	wh, ok := prog.Body[0].(*ast.While)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.While", prog.Body[0])
	}
	if len(wh.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(wh.Body))
	}
}

func TestParseMainWrapper(t *testing.T) {
	prog := parseOrFatal(t, "main {\nlet x = 1\nprint(x)\n}")
	if len(prog.Body) != 2 {
		t.Fatalf("len(Body) = %d, want 2", len(prog.Body))
	}
}

func TestParseMultipleStatementsSeparatedByNewlines(t *testing.T) {
	prog := parseOrFatal(t, "let x = 1\nlet y = 2\nprint(x)")
	if len(prog.Body) != 3 {
		t.Fatalf("len(Body) = %d, want 3", len(prog.Body))
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	if _, err := Parse(`+ 1`); err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}

func TestParseErrorOnMissingRParen(t *testing.T) {
	if _, err := Parse(`print(1`); err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}
