package ir

import (
	"tinygo.org/x/go-llvm"

	"toylangc/internal/ast"
)

// Lower translates prog into a fresh LLVM module named moduleName. The
// returned LoweringContext owns the LLVM context/module/builder; callers
// must call Dispose once they are done with it (typically after reading
// String() or otherwise consuming the module).
func Lower(prog *ast.MainFunction, moduleName string) (*LoweringContext, error) {
	lc := NewLoweringContext(moduleName)
	if err := lc.lowerStmts(prog.Body); err != nil {
		return lc, err
	}
	lc.Builder.CreateRet(llvm.ConstInt(typI32, 0, false))
	return lc, nil
}
