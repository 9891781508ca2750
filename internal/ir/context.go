// Package ir lowers an internal/ast tree into LLVM IR using
// tinygo.org/x/go-llvm, the real LLVM C API bound into Go. Every piece of
// mutable state lives on a LoweringContext value, so compiling two
// programs back to back in the same process never aliases state between
// them.
package ir

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"toylangc/internal/diag"
)

// Primitive IR types used throughout lowering: i1, i32, f64, i8*. These
// never vary with target architecture: this compiler does not select a
// target triple or resize its integer/float types per architecture.
var (
	typI1  = llvm.Int1Type()
	typI32 = llvm.Int32Type()
	typF64 = llvm.DoubleType()
	typI8P = llvm.PointerType(llvm.Int8Type(), 0)
)

// slot is one entry of the symbol table: a stack address and the type it
// was allocated with. The type is fixed at first assignment.
type slot struct {
	addr llvm.Value
	typ  llvm.Type
}

// LoweringContext owns one compilation's LLVM state: the context, module,
// builder, the synthesized main function and its entry block, the symbol
// table, a counter for unique format-string names, and the diagnostics
// sink that non-fatal warnings are written to.
type LoweringContext struct {
	Context llvm.Context
	Module  llvm.Module
	Builder llvm.Builder

	main  llvm.Value
	entry llvm.BasicBlock

	symbols map[string]slot
	fstrSeq int

	blocks []llvm.BasicBlock // every basic block created during lowering, in creation order.

	Diag *diag.Sink
}

// Blocks returns every basic block created during lowering, in creation
// order. Exposed for tests that check terminator completeness without
// having to walk the module through cgo-facing iteration helpers.
func (lc *LoweringContext) Blocks() []llvm.BasicBlock {
	return lc.blocks
}

// NewLoweringContext allocates a fresh LLVM context/module/builder triple,
// declares the runtime externs, and synthesizes the main entry function
// with its entry block as the initial insertion point.
func NewLoweringContext(moduleName string) *LoweringContext {
	ctx := llvm.NewContext()
	b := ctx.NewBuilder()
	m := ctx.NewModule(moduleName)

	lc := &LoweringContext{
		Context: ctx,
		Module:  m,
		Builder: b,
		symbols: make(map[string]slot, 16),
		Diag:    diag.NewSink(),
	}

	declareRuntime(m)
	lc.main = declareMain(m)
	lc.entry = llvm.AddBasicBlock(lc.main, "entry")
	lc.blocks = append(lc.blocks, lc.entry)
	b.SetInsertPointAtEnd(lc.entry)
	return lc
}

// Dispose releases the underlying LLVM builder, module and context. Callers
// that only need the textual IR (via String) should still call Dispose once
// done with the LoweringContext.
func (lc *LoweringContext) Dispose() {
	lc.Builder.Dispose()
	lc.Module.Dispose()
	lc.Context.Dispose()
}

// String returns the textual LLVM IR for the module, delegating
// serialization entirely to tinygo.org/x/go-llvm.
func (lc *LoweringContext) String() string {
	return lc.Module.String()
}

// newBlock appends a new basic block to main with the given hint name.
func (lc *LoweringContext) newBlock(hint string) llvm.BasicBlock {
	bb := llvm.AddBasicBlock(lc.main, hint)
	lc.blocks = append(lc.blocks, bb)
	return bb
}

// moveToEnd repositions the insertion cursor at the end of bb.
func (lc *LoweringContext) moveToEnd(bb llvm.BasicBlock) {
	lc.Builder.SetInsertPointAtEnd(bb)
}

// nextFormatName returns a format-string global name guaranteed unique
// within this LoweringContext.
func (lc *LoweringContext) nextFormatName() string {
	name := fmt.Sprintf("fstr%d", lc.fstrSeq)
	lc.fstrSeq++
	return name
}
