package ir

import (
	"tinygo.org/x/go-llvm"

	"toylangc/internal/ast"
	"toylangc/internal/diag"
)

// lookup returns the slot for name, if one has been declared.
func (lc *LoweringContext) lookup(name string) (slot, bool) {
	s, ok := lc.symbols[name]
	return s, ok
}

// allocaInEntry allocates a stack slot of the given type at the entry
// block, regardless of the builder's current insertion point, then
// restores the cursor to where it was. This keeps every alloca dominating
// every use regardless of which block requested it. hint is informational
// only: the variable name plus a type tag, for readability in dumped IR.
func (lc *LoweringContext) allocaInEntry(typ llvm.Type, hint string) llvm.Value {
	cur := lc.Builder.GetInsertBlock()
	lc.Builder.SetInsertPointAtStart(lc.entry)
	addr := lc.Builder.CreateAlloca(typ, hint)
	lc.Builder.SetInsertPointAtEnd(cur)
	return addr
}

func typeName(t llvm.Type) string {
	switch t {
	case typI1:
		return "i1"
	case typI32:
		return "i32"
	case typF64:
		return "f64"
	default:
		return "?"
	}
}

// declareOrAssign handles both variable declaration and reassignment: on
// first use it allocates a slot of the value's type and stores into it.
// On reassignment the slot keeps its original type forever; the new value
// is coerced to that type, with a TypeCoercionWarning raised through the
// diagnostics sink whenever the types differ.
func (lc *LoweringContext) declareOrAssign(pos ast.Pos, name string, v llvm.Value, typ llvm.Type) {
	if sl, ok := lc.symbols[name]; ok {
		if typ != sl.typ {
			lc.Diag.Emit(&diag.TypeCoercionWarning{
				Pos:      pos.String(),
				Variable: name,
				From:     typeName(typ),
				To:       typeName(sl.typ),
			})
			if sl.typ == typF64 {
				v = lc.Builder.CreateSIToFP(v, typF64, "")
			} else {
				v = lc.Builder.CreateFPToSI(v, sl.typ, "")
			}
		}
		lc.Builder.CreateStore(v, sl.addr)
		return
	}

	addr := lc.allocaInEntry(typ, name+"."+typeName(typ))
	lc.Builder.CreateStore(v, addr)
	lc.symbols[name] = slot{addr: addr, typ: typ}
}
