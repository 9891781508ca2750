package ir

import "tinygo.org/x/go-llvm"

// declareRuntime declares the external C runtime functions the generated
// module may call. printf is the only one currently called from lowering;
// intToString and floatToString are declared so the module links against
// a runtime that provides them, reserved for string-formatted output that
// no AST node currently produces.
func declareRuntime(m llvm.Module) {
	printfType := llvm.FunctionType(typI32, []llvm.Type{typI8P}, true)
	llvm.AddFunction(m, "printf", printfType)

	intToStringType := llvm.FunctionType(typI8P, []llvm.Type{typI32}, false)
	llvm.AddFunction(m, "intToString", intToStringType)

	floatToStringType := llvm.FunctionType(typI8P, []llvm.Type{typF64}, false)
	llvm.AddFunction(m, "floatToString", floatToStringType)
}

// declareMain synthesizes the implicit entry function `main() -> i32`
// that houses every top-level statement of the program.
func declareMain(m llvm.Module) llvm.Value {
	mainType := llvm.FunctionType(typI32, nil, false)
	return llvm.AddFunction(m, "main", mainType)
}

// printfFunc returns the printf declaration added by declareRuntime.
func (lc *LoweringContext) printfFunc() llvm.Value {
	return lc.Module.NamedFunction("printf")
}
