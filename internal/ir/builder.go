package ir

import "tinygo.org/x/go-llvm"

// blockTerminated reports whether bb already ends in a terminator
// instruction (branch, conditional branch, or return).
func blockTerminated(bb llvm.BasicBlock) bool {
	last := bb.LastInstruction()
	if last.IsNil() {
		return false
	}
	return !last.IsATerminatorInst().IsNil()
}

// ifElseRegion synthesizes then/else/merge blocks for a conditional given
// a 1-bit cond, wires the conditional branch, runs genThen/genElse with the
// cursor positioned in their respective blocks, and terminates each with a
// branch to merge unless the caller's own code already left that block
// terminated. The cursor rests at the start of merge on return, ready for
// whatever follows the conditional.
func (lc *LoweringContext) ifElseRegion(cond llvm.Value, genThen func(), genElse func()) {
	thenBB := lc.newBlock("if.then")
	elseBB := lc.newBlock("if.else")
	mergeBB := lc.newBlock("if.merge")

	lc.Builder.CreateCondBr(cond, thenBB, elseBB)

	lc.moveToEnd(thenBB)
	genThen()
	if cur := lc.Builder.GetInsertBlock(); !blockTerminated(cur) {
		lc.Builder.CreateBr(mergeBB)
	}

	lc.moveToEnd(elseBB)
	if genElse != nil {
		genElse()
	}
	if cur := lc.Builder.GetInsertBlock(); !blockTerminated(cur) {
		lc.Builder.CreateBr(mergeBB)
	}

	lc.moveToEnd(mergeBB)
}
