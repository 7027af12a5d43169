package optimize

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/cfg"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

func constVar(idents *ident.Table, name string) tac.Variable {
	return tac.Variable{Name: idents.Intern(name)}
}

func TestFoldConstants_BinaryAdd(t *testing.T) {
	idents := ident.NewTable()
	dst := constVar(idents, "tmp")
	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Binary{
				Op:   tac.BinAdd,
				Src1: tac.Constant{Const: fetype.ConstInt{Value: 2}},
				Src2: tac.Constant{Const: fetype.ConstInt{Value: 3}},
				Dst:  dst,
			},
		},
	}
	foldConstants(fn)
	cp, ok := fn.Instructions[0].(*tac.Copy)
	if !ok {
		t.Fatalf("foldConstants() left a %T in place, want *tac.Copy", fn.Instructions[0])
	}
	c, ok := cp.Src.(tac.Constant)
	if !ok {
		t.Fatalf("folded Copy.Src is %T, want tac.Constant", cp.Src)
	}
	if ci, ok := c.Const.(fetype.ConstInt); !ok || ci.Value != 5 {
		t.Errorf("folded 2+3 = %#v, want ConstInt{5}", c.Const)
	}
}

func TestFoldConstants_DivisionByZeroLeftAlone(t *testing.T) {
	idents := ident.NewTable()
	dst := constVar(idents, "tmp")
	instr := &tac.Binary{
		Op:   tac.BinDivide,
		Src1: tac.Constant{Const: fetype.ConstInt{Value: 1}},
		Src2: tac.Constant{Const: fetype.ConstInt{Value: 0}},
		Dst:  dst,
	}
	fn := &tac.Function{Instructions: []tac.Instruction{instr}}
	foldConstants(fn)
	if fn.Instructions[0] != instr {
		t.Errorf("foldConstants() rewrote a division by zero instead of leaving it for runtime behavior")
	}
}

func TestFoldConstants_MixedTypesLeftAlone(t *testing.T) {
	idents := ident.NewTable()
	dst := constVar(idents, "tmp")
	instr := &tac.Binary{
		Op:   tac.BinAdd,
		Src1: tac.Constant{Const: fetype.ConstInt{Value: 1}},
		Src2: tac.Constant{Const: fetype.ConstLong{Value: 1}},
		Dst:  dst,
	}
	fn := &tac.Function{Instructions: []tac.Instruction{instr}}
	foldConstants(fn)
	if fn.Instructions[0] != instr {
		t.Errorf("foldConstants() folded operands of differing concrete types")
	}
}

func TestCopyPropagate_RewritesSingleReachingCopy(t *testing.T) {
	idents := ident.NewTable()
	x := constVar(idents, "x")
	y := constVar(idents, "y")
	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Copy{Src: tac.Constant{Const: fetype.ConstInt{Value: 7}}, Dst: x},
			&tac.Copy{Src: x, Dst: y},
			&tac.Return{Val: y},
		},
	}
	g := cfg.Build(fn)
	fe := fetype.NewFrontEndSymbols()
	changed := CopyPropagate(g, fe)
	if !changed {
		t.Fatal("CopyPropagate() reported no change, want the Return rewritten")
	}
	ret := fn.Instructions[2].(*tac.Return)
	v, ok := ret.Val.(tac.Variable)
	if !ok || v.Name != x.Name {
		t.Errorf("Return.Val = %#v, want a reference to x (propagated through y)", ret.Val)
	}
}

func TestCopyPropagate_FunCallKillsAddressedVars(t *testing.T) {
	idents := ident.NewTable()
	x := constVar(idents, "x")
	y := constVar(idents, "y")
	fe := fetype.NewFrontEndSymbols()
	fe.AddressedSet[x.Name] = true

	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Copy{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, Dst: x},
			&tac.FunCall{Name: idents.Intern("f"), Dst: y},
			&tac.Return{Val: x},
		},
	}
	g := cfg.Build(fn)
	CopyPropagate(g, fe)
	ret := fn.Instructions[2].(*tac.Return)
	if v, ok := ret.Val.(tac.Variable); !ok || v.Name != x.Name {
		t.Errorf("Return.Val = %#v, want the original reference to x (fact killed by call since x's address escaped)", ret.Val)
	}
}

func TestEliminateDeadStores_RemovesUnobservedWrite(t *testing.T) {
	idents := ident.NewTable()
	x := constVar(idents, "x")
	fe := fetype.NewFrontEndSymbols()
	fe.Symbols[x.Name] = &fetype.Symbol{Type: fetype.Scalar{Kind: fetype.KindInt}, Attrs: fetype.LocalAttrs{}}

	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Copy{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, Dst: x},
			&tac.Return{},
		},
	}
	g := cfg.Build(fn)
	changed := EliminateDeadStores(g, fe)
	if !changed {
		t.Fatal("EliminateDeadStores() reported no change, want the dead copy into x removed")
	}
	if g.Instructions[0] != nil {
		t.Errorf("dead store to x was not nulled")
	}
}

func TestEliminateDeadStores_KeepsObservedWrite(t *testing.T) {
	idents := ident.NewTable()
	x := constVar(idents, "x")
	fe := fetype.NewFrontEndSymbols()
	fe.Symbols[x.Name] = &fetype.Symbol{
		Type:  fetype.Scalar{Kind: fetype.KindInt},
		Attrs: fetype.StaticAttrs{IsGlob: true, Init: fetype.Tentative},
	}

	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Copy{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, Dst: x},
			&tac.Return{},
		},
	}
	g := cfg.Build(fn)
	EliminateDeadStores(g, fe)
	if g.Instructions[0] == nil {
		t.Error("EliminateDeadStores() removed a write to a static-storage variable, which stays observable after return")
	}
}

func TestEliminateDeadStores_RemovesUnobservedCopyToOffset(t *testing.T) {
	idents := ident.NewTable()
	s := constVar(idents, "s")
	fe := fetype.NewFrontEndSymbols()
	fe.Symbols[s.Name] = &fetype.Symbol{Type: fetype.Structure{Tag: idents.Intern("Point")}, Attrs: fetype.LocalAttrs{}}

	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.CopyToOffset{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, DstName: s.Name, Offset: 0},
			&tac.Return{},
		},
	}
	g := cfg.Build(fn)
	changed := EliminateDeadStores(g, fe)
	if !changed {
		t.Fatal("EliminateDeadStores() reported no change, want the dead field write removed")
	}
	if g.Instructions[0] != nil {
		t.Error("dead CopyToOffset was not nulled")
	}
}

func TestEliminateDeadStores_KeepsCopyToOffsetIntoAddressedStruct(t *testing.T) {
	idents := ident.NewTable()
	s := constVar(idents, "s")
	fe := fetype.NewFrontEndSymbols()
	fe.Symbols[s.Name] = &fetype.Symbol{Type: fetype.Structure{Tag: idents.Intern("Point")}, Attrs: fetype.LocalAttrs{}}
	fe.AddressedSet[s.Name] = true

	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.CopyToOffset{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, DstName: s.Name, Offset: 0},
			&tac.Return{},
		},
	}
	g := cfg.Build(fn)
	EliminateDeadStores(g, fe)
	if g.Instructions[0] == nil {
		t.Error("EliminateDeadStores() removed a field write into an address-taken struct, which may be observed through an alias")
	}
}

func TestEliminateDeadStores_KeepsStoreSideEffect(t *testing.T) {
	idents := ident.NewTable()
	ptr := constVar(idents, "p")
	fe := fetype.NewFrontEndSymbols()
	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Store{Src: tac.Constant{Const: fetype.ConstInt{Value: 1}}, DstPtr: ptr},
			&tac.Return{},
		},
	}
	g := cfg.Build(fn)
	EliminateDeadStores(g, fe)
	if g.Instructions[0] == nil {
		t.Error("EliminateDeadStores() removed a Store, which always has a side effect")
	}
}

func TestRun_ConstantFoldingBit(t *testing.T) {
	idents := ident.NewTable()
	dst := constVar(idents, "tmp")
	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Binary{
				Op:   tac.BinMult,
				Src1: tac.Constant{Const: fetype.ConstInt{Value: 6}},
				Src2: tac.Constant{Const: fetype.ConstInt{Value: 7}},
				Dst:  dst,
			},
			&tac.Return{Val: dst},
		},
	}
	fe := fetype.NewFrontEndSymbols()
	Run(fn, fe, ConstantFolding)
	cp, ok := fn.Instructions[0].(*tac.Copy)
	if !ok {
		t.Fatalf("Run(ConstantFolding) left a %T, want *tac.Copy", fn.Instructions[0])
	}
	if c, ok := cp.Src.(tac.Constant).Const.(fetype.ConstInt); !ok || c.Value != 42 {
		t.Errorf("folded 6*7 = %#v, want ConstInt{42}", cp.Src)
	}
}

func TestRun_ZeroMaskIsNoop(t *testing.T) {
	idents := ident.NewTable()
	dst := constVar(idents, "tmp")
	instr := &tac.Binary{
		Op:   tac.BinAdd,
		Src1: tac.Constant{Const: fetype.ConstInt{Value: 1}},
		Src2: tac.Constant{Const: fetype.ConstInt{Value: 1}},
		Dst:  dst,
	}
	fn := &tac.Function{Instructions: []tac.Instruction{instr, &tac.Return{}}}
	fe := fetype.NewFrontEndSymbols()
	Run(fn, fe, 0)
	if fn.Instructions[0] != instr {
		t.Error("Run(0) modified the function despite an empty optimization mask")
	}
}
