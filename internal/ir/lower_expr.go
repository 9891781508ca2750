package ir

import (
	"fmt"
	"strconv"

	"tinygo.org/x/go-llvm"

	"toylangc/internal/ast"
)

// lowerExpr dispatches on the concrete type of e and returns the IR value
// it lowers to.
func (lc *LoweringContext) lowerExpr(e ast.Expr) (llvm.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return lc.lowerNumberLiteral(n)
	case *ast.Variable:
		return lc.lowerVariable(n)
	case *ast.Neg:
		return lc.lowerNeg(n)
	case *ast.Arith:
		return lc.lowerArith(n)
	case *ast.Comparison:
		return lc.lowerComparison(n)
	default:
		return llvm.Value{}, fmt.Errorf("%s: unhandled expression node %T", e.Position(), e)
	}
}

func (lc *LoweringContext) lowerNumberLiteral(n *ast.NumberLiteral) (llvm.Value, error) {
	if n.IsFloat() {
		v, err := strconv.ParseFloat(n.Lexeme, 64)
		if err != nil {
			return llvm.Value{}, fmt.Errorf("%s: malformed float literal %q: %w", n.Pos, n.Lexeme, err)
		}
		return llvm.ConstFloat(typF64, v), nil
	}
	v, err := strconv.ParseInt(n.Lexeme, 10, 32)
	if err != nil {
		return llvm.Value{}, fmt.Errorf("%s: malformed integer literal %q: %w", n.Pos, n.Lexeme, err)
	}
	return llvm.ConstInt(typI32, uint64(v), true), nil
}

func (lc *LoweringContext) lowerVariable(n *ast.Variable) (llvm.Value, error) {
	sl, ok := lc.lookup(n.Name)
	if !ok {
		return llvm.Value{}, &UndefinedVariableError{Pos: n.Pos.String(), Name: n.Name}
	}
	return lc.Builder.CreateLoad(sl.addr, ""), nil
}

func (lc *LoweringContext) lowerNeg(n *ast.Neg) (llvm.Value, error) {
	v, err := lc.lowerExpr(n.X)
	if err != nil {
		return llvm.Value{}, err
	}
	if v.Type() == typF64 {
		return lc.Builder.CreateFSub(llvm.ConstFloat(typF64, 0), v, ""), nil
	}
	return lc.Builder.CreateSub(llvm.ConstInt(typI32, 0, true), v, ""), nil
}

// promote widens v to f64 via signed-int-to-float if it is currently i32;
// f64 values pass through unchanged.
func (lc *LoweringContext) promote(v llvm.Value) llvm.Value {
	if v.Type() == typF64 {
		return v
	}
	return lc.Builder.CreateSIToFP(v, typF64, "")
}

func (lc *LoweringContext) lowerArith(n *ast.Arith) (llvm.Value, error) {
	x, err := lc.lowerExpr(n.X)
	if err != nil {
		return llvm.Value{}, err
	}
	y, err := lc.lowerExpr(n.Y)
	if err != nil {
		return llvm.Value{}, err
	}

	if n.Op == ast.OpDiv {
		// Division always promotes and floats, even i32/i32.
		return lc.Builder.CreateFDiv(lc.promote(x), lc.promote(y), ""), nil
	}

	if x.Type() == typI32 && y.Type() == typI32 {
		switch n.Op {
		case ast.OpSum:
			return lc.Builder.CreateAdd(x, y, ""), nil
		case ast.OpSub:
			return lc.Builder.CreateSub(x, y, ""), nil
		case ast.OpMul:
			return lc.Builder.CreateMul(x, y, ""), nil
		}
	}

	xf, yf := lc.promote(x), lc.promote(y)
	switch n.Op {
	case ast.OpSum:
		return lc.Builder.CreateFAdd(xf, yf, ""), nil
	case ast.OpSub:
		return lc.Builder.CreateFSub(xf, yf, ""), nil
	case ast.OpMul:
		return lc.Builder.CreateFMul(xf, yf, ""), nil
	default:
		return llvm.Value{}, fmt.Errorf("%s: unhandled arithmetic operator %v", n.Pos, n.Op)
	}
}

var comparisonPredicates = map[ast.RelOp]llvm.FloatPredicate{
	ast.RelLT: llvm.FloatULT,
	ast.RelLE: llvm.FloatULE,
	ast.RelEQ: llvm.FloatUEQ,
	ast.RelNE: llvm.FloatUNE,
	ast.RelGE: llvm.FloatUGE,
	ast.RelGT: llvm.FloatUGT,
}

func (lc *LoweringContext) lowerComparison(n *ast.Comparison) (llvm.Value, error) {
	x, err := lc.lowerExpr(n.X)
	if err != nil {
		return llvm.Value{}, err
	}
	y, err := lc.lowerExpr(n.Y)
	if err != nil {
		return llvm.Value{}, err
	}
	pred, ok := comparisonPredicates[n.Op]
	if !ok {
		return llvm.Value{}, &InvalidComparisonOperatorError{Pos: n.Pos.String(), Op: string(n.Op)}
	}
	xf, yf := lc.promote(x), lc.promote(y)
	return lc.Builder.CreateFCmp(pred, xf, yf, ""), nil
}
