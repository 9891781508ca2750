package ir

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"toylangc/internal/ast"
)

// toBool coerces v to i1, used wherever the grammar allows a bare
// expression as a condition (`while (x)`) rather than a Comparison that
// already yields i1 directly.
func (lc *LoweringContext) toBool(v llvm.Value) llvm.Value {
	switch v.Type() {
	case typI1:
		return v
	case typF64:
		return lc.Builder.CreateFCmp(llvm.FloatUNE, v, llvm.ConstFloat(typF64, 0), "")
	default:
		return lc.Builder.CreateICmp(llvm.IntNE, v, llvm.ConstInt(typI32, 0, true), "")
	}
}

// lowerStmt dispatches on the concrete type of s.
func (lc *LoweringContext) lowerStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.VarAssign:
		return lc.lowerVarAssign(n)
	case *ast.IfElse:
		return lc.lowerIfElse(n)
	case *ast.While:
		return lc.lowerWhile(n)
	case *ast.Print:
		return lc.lowerPrint(n)
	default:
		return fmt.Errorf("%s: unhandled statement node %T", s.Position(), s)
	}
}

// lowerStmts lowers every statement of body in order.
func (lc *LoweringContext) lowerStmts(body []ast.Stmt) error {
	for _, s := range body {
		if err := lc.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (lc *LoweringContext) lowerVarAssign(n *ast.VarAssign) error {
	v, err := lc.lowerExpr(n.Value)
	if err != nil {
		return err
	}
	lc.declareOrAssign(n.Pos, n.Name, v, v.Type())
	return nil
}

func (lc *LoweringContext) lowerIfElse(n *ast.IfElse) error {
	cond, err := lc.lowerExpr(n.Cond)
	if err != nil {
		return err
	}

	var stmtErr error
	lc.ifElseRegion(lc.toBool(cond), func() {
		if stmtErr == nil {
			stmtErr = lc.lowerStmts(n.Then)
		}
	}, func() {
		if stmtErr == nil && n.Else != nil {
			stmtErr = lc.lowerStmts(n.Else)
		}
	})
	return stmtErr
}

// lowerWhile uses a condition-duplicated layout: no dedicated header
// block, the condition is lowered once before the loop and again at the
// bottom of body. Sound here because the surface language has no
// side-effecting conditions.
func (lc *LoweringContext) lowerWhile(n *ast.While) error {
	body := lc.newBlock("while.body")
	after := lc.newBlock("while.after")

	cond, err := lc.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	lc.Builder.CreateCondBr(lc.toBool(cond), body, after)

	lc.moveToEnd(body)
	if err := lc.lowerStmts(n.Body); err != nil {
		return err
	}

	cond2, err := lc.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	lc.Builder.CreateCondBr(lc.toBool(cond2), body, after)

	lc.moveToEnd(after)
	return nil
}

// lowerPrint picks a format literal by the lowered value's type,
// materializes a unique format-string global, and calls printf with
// [format_ptr, value].
func (lc *LoweringContext) lowerPrint(n *ast.Print) error {
	v, err := lc.lowerExpr(n.Value)
	if err != nil {
		return err
	}

	format := "%i \n"
	if v.Type() == typF64 {
		format = "%f \n"
	}

	fstr := lc.Builder.CreateGlobalStringPtr(format, lc.nextFormatName())
	lc.Builder.CreateCall(lc.printfFunc(), []llvm.Value{fstr, v}, "")
	return nil
}
