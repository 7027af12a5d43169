package asmgen

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// fixture bundles the pieces a lowering test needs: an interner and the
// front-end symbol table being built up. Declare every variable genAsmType
// must resolve (it walks the backend table, derived once at New(), rather
// than FrontEndSymbols directly) before calling build.
type fixture struct {
	idents *ident.Table
	fe     *fetype.FrontEndSymbols
}

func newFixture() *fixture {
	return &fixture{idents: ident.NewTable(), fe: fetype.NewFrontEndSymbols()}
}

func (f *fixture) intVar(name string) tac.Variable {
	id := f.idents.Intern(name)
	f.fe.Symbols[id] = &fetype.Symbol{Type: fetype.Scalar{Kind: fetype.KindInt}, Attrs: fetype.LocalAttrs{}}
	return tac.Variable{Name: id}
}

func (f *fixture) arrayVar(name string, elem fetype.Type, length int64) tac.Variable {
	id := f.idents.Intern(name)
	f.fe.Symbols[id] = &fetype.Symbol{Type: fetype.Array{Elem: elem, Len: length}, Attrs: fetype.LocalAttrs{}}
	return tac.Variable{Name: id}
}

// build constructs the Generator once every variable the test needs is
// registered in fe.Symbols — New derives the backend table from fe as a
// one-shot snapshot, so symbols must be declared first.
func (f *fixture) build() (*Generator, *[]asm.Instruction) {
	g := New(f.idents, f.fe)
	instrs := new([]asm.Instruction)
	g.instrs = instrs
	return g, instrs
}

func TestGenOperand_ConstantBecomesImm(t *testing.T) {
	f := newFixture()
	g, _ := f.build()
	op := g.genOperand(tac.Constant{Const: fetype.ConstInt{Value: 5}})
	imm, ok := op.(asm.Imm)
	if !ok || imm.Value != 5 {
		t.Errorf("genOperand(Constant) = %#v, want Imm{Value: 5}", op)
	}
}

func TestGenOperand_ScalarVariableBecomesPseudo(t *testing.T) {
	f := newFixture()
	v := f.intVar("x")
	g, _ := f.build()
	op := g.genOperand(v)
	pseudo, ok := op.(asm.Pseudo)
	if !ok || pseudo.Name != v.Name {
		t.Errorf("genOperand(scalar Variable) = %#v, want Pseudo{%v}", op, v.Name)
	}
}

func TestGenOperand_ArrayVariableBecomesPseudoMem(t *testing.T) {
	f := newFixture()
	v := f.arrayVar("arr", fetype.Scalar{Kind: fetype.KindChar}, 8)
	g, _ := f.build()
	op := g.genOperand(v)
	mem, ok := op.(asm.PseudoMem)
	if !ok || mem.Name != v.Name || mem.Offset != 0 {
		t.Errorf("genOperand(array Variable) = %#v, want PseudoMem{%v, 0}", op, v.Name)
	}
}

func TestGenAsmType_ConstantWidths(t *testing.T) {
	f := newFixture()
	g, _ := f.build()
	tests := []struct {
		c    fetype.Const
		want asmtype.AssemblyType
	}{
		{fetype.ConstChar{Value: 1}, asmtype.Byte{}},
		{fetype.ConstInt{Value: 1}, asmtype.LongWord{}},
		{fetype.ConstLong{Value: 1}, asmtype.QuadWord{}},
		{fetype.ConstDouble{Value: 1}, asmtype.BackendDouble{}},
	}
	for _, tt := range tests {
		got := g.genAsmType(tac.Constant{Const: tt.c})
		if got != tt.want {
			t.Errorf("genAsmType(%#v) = %#v, want %#v", tt.c, got, tt.want)
		}
	}
}

func TestGenAsmType_VariableUsesDerivedBackendType(t *testing.T) {
	f := newFixture()
	v := f.intVar("x")
	g, _ := f.build()
	if got := g.genAsmType(v); got != (asmtype.LongWord{}) {
		t.Errorf("genAsmType(int Variable) = %#v, want LongWord{}", got)
	}
}

func TestGenUnary_ComplementEmitsMovThenNot(t *testing.T) {
	f := newFixture()
	src := f.intVar("src")
	dst := f.intVar("dst")
	g, instrsPtr := f.build()
	g.genUnary(&tac.Unary{Op: tac.UnaryComplement, Src: src, Dst: dst})

	instrs := *instrsPtr
	if len(instrs) != 2 {
		t.Fatalf("genUnary(Complement) emitted %d instructions, want 2", len(instrs))
	}
	if _, ok := instrs[0].(*asm.Mov); !ok {
		t.Errorf("first instruction = %T, want *asm.Mov", instrs[0])
	}
	un, ok := instrs[1].(*asm.UnaryInstr)
	if !ok || un.Op != asm.OpNot {
		t.Errorf("second instruction = %#v, want UnaryInstr{OpNot}", instrs[1])
	}
}

func TestGenUnary_NegateEmitsMovThenNeg(t *testing.T) {
	f := newFixture()
	src := f.intVar("src")
	dst := f.intVar("dst")
	g, instrsPtr := f.build()
	g.genUnary(&tac.Unary{Op: tac.UnaryNegate, Src: src, Dst: dst})

	instrs := *instrsPtr
	un, ok := instrs[len(instrs)-1].(*asm.UnaryInstr)
	if !ok || un.Op != asm.OpNeg {
		t.Errorf("last instruction = %#v, want UnaryInstr{OpNeg}", instrs[len(instrs)-1])
	}
}

func TestGenUnary_NotEmitsCmpMovSetCC(t *testing.T) {
	f := newFixture()
	src := f.intVar("src")
	dst := f.intVar("dst")
	g, instrsPtr := f.build()
	g.genUnary(&tac.Unary{Op: tac.UnaryNot, Src: src, Dst: dst})

	instrs := *instrsPtr
	if len(instrs) != 3 {
		t.Fatalf("genUnary(Not) on int emitted %d instructions, want 3", len(instrs))
	}
	if _, ok := instrs[0].(*asm.Cmp); !ok {
		t.Errorf("first instruction = %T, want *asm.Cmp", instrs[0])
	}
	set, ok := instrs[2].(*asm.SetCC)
	if !ok || set.Cond != asm.E {
		t.Errorf("last instruction = %#v, want SetCC{E}", instrs[2])
	}
}

func TestGenBinary_AddEmitsMovThenBinary(t *testing.T) {
	f := newFixture()
	s1 := f.intVar("a")
	s2 := f.intVar("b")
	dst := f.intVar("dst")
	g, instrsPtr := f.build()
	g.genBinary(&tac.Binary{Op: tac.BinAdd, Src1: s1, Src2: s2, Dst: dst})

	instrs := *instrsPtr
	if len(instrs) != 2 {
		t.Fatalf("genBinary(Add) emitted %d instructions, want 2", len(instrs))
	}
	bin, ok := instrs[1].(*asm.BinaryInstr)
	if !ok || bin.Op != asm.OpAdd {
		t.Errorf("second instruction = %#v, want BinaryInstr{OpAdd}", instrs[1])
	}
}

func TestGenBinary_ComparisonEmitsCmpSetCC(t *testing.T) {
	f := newFixture()
	s1 := f.intVar("a")
	s2 := f.intVar("b")
	dst := f.intVar("dst")
	g, instrsPtr := f.build()
	g.genBinary(&tac.Binary{Op: tac.BinLessThan, Src1: s1, Src2: s2, Dst: dst})

	instrs := *instrsPtr
	var hasCmp, hasSet bool
	for _, instr := range instrs {
		switch v := instr.(type) {
		case *asm.Cmp:
			hasCmp = true
		case *asm.SetCC:
			hasSet = true
			if v.Cond != asm.L {
				t.Errorf("SetCC.Cond = %v, want L", v.Cond)
			}
		}
	}
	if !hasCmp || !hasSet {
		t.Errorf("genBinary(LessThan) instrs = %#v, want a Cmp and a SetCC", instrs)
	}
}

func TestGenReturn_Void(t *testing.T) {
	f := newFixture()
	g, instrsPtr := f.build()
	g.genReturn(&tac.Return{})
	instrs := *instrsPtr
	if len(instrs) != 1 {
		t.Fatalf("genReturn(void) emitted %d instructions, want 1", len(instrs))
	}
	if _, ok := instrs[0].(*asm.Ret); !ok {
		t.Errorf("genReturn(void) emitted %T, want *asm.Ret", instrs[0])
	}
}

func TestGenReturn_ScalarRoutesThroughAx(t *testing.T) {
	f := newFixture()
	v := f.intVar("x")
	g, instrsPtr := f.build()
	g.genReturn(&tac.Return{Val: v})

	instrs := *instrsPtr
	if _, ok := instrs[len(instrs)-1].(*asm.Ret); !ok {
		t.Errorf("genReturn(scalar) did not end with Ret")
	}
	mov, ok := instrs[0].(*asm.Mov)
	if !ok {
		t.Fatalf("genReturn(scalar) first instruction = %T, want *asm.Mov", instrs[0])
	}
	reg, ok := mov.Dst.(asm.Register)
	if !ok || reg.Reg != asm.Ax {
		t.Errorf("genReturn(scalar) routed through %#v, want Register{Ax}", mov.Dst)
	}
	if g.retRegBits&maskBit(asm.Ax) == 0 {
		t.Error("genReturn(scalar) did not record Ax in retRegBits")
	}
}

func TestGenJump_EmitsJmpInstr(t *testing.T) {
	f := newFixture()
	target := f.idents.Intern("L0")
	g, instrsPtr := f.build()
	g.genJump(&tac.Jump{Target: target})
	instrs := *instrsPtr
	jmp, ok := instrs[0].(*asm.JmpInstr)
	if !ok || jmp.Target != target {
		t.Errorf("genJump emitted %#v, want JmpInstr{%v}", instrs[0], target)
	}
}

func TestGenLabel_EmitsLabelInstr(t *testing.T) {
	f := newFixture()
	name := f.idents.Intern("L1")
	g, instrsPtr := f.build()
	g.genLabel(&tac.Label{Name: name})
	instrs := *instrsPtr
	lbl, ok := instrs[0].(*asm.LabelInstr)
	if !ok || lbl.Name != name {
		t.Errorf("genLabel emitted %#v, want LabelInstr{%v}", instrs[0], name)
	}
}

func TestGenJumpIfZero_IntEmitsCmpThenJE(t *testing.T) {
	f := newFixture()
	cond := f.intVar("c")
	target := f.idents.Intern("L0")
	g, instrsPtr := f.build()
	g.genJumpIfZero(&tac.JumpIfZero{Cond: cond, Target: target})

	instrs := *instrsPtr
	if len(instrs) != 2 {
		t.Fatalf("genJumpIfZero(int) emitted %d instructions, want 2", len(instrs))
	}
	jcc, ok := instrs[1].(*asm.JmpCC)
	if !ok || jcc.Cond != asm.E || jcc.Target != target {
		t.Errorf("second instruction = %#v, want JmpCC{E, %v}", instrs[1], target)
	}
}

func TestGenerate_TrivialFunctionEndToEnd(t *testing.T) {
	f := newFixture()
	fnName := f.idents.Intern("main")
	f.fe.Symbols[fnName] = &fetype.Symbol{
		Type: &fetype.FunType{
			Ret:          fetype.Scalar{Kind: fetype.KindInt},
			ParamRegMask: fetype.NoRegisterMask,
			RetRegMask:   fetype.NoRegisterMask,
		},
		Attrs: fetype.FunAttrs{IsDef: true, IsGlob: true},
	}

	prog := &tac.Program{
		Functions: []*tac.Function{{
			Name:     fnName,
			IsGlobal: true,
			Instructions: []tac.Instruction{
				&tac.Return{Val: tac.Constant{Const: fetype.ConstInt{Value: 0}}},
			},
		}},
	}

	out, err := Generate(f.idents, f.fe, prog)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(out.TopLevels) != 1 {
		t.Fatalf("len(TopLevels) = %d, want 1", len(out.TopLevels))
	}
	fn, ok := out.TopLevels[0].(*asm.Function)
	if !ok {
		t.Fatalf("TopLevels[0] = %T, want *asm.Function", out.TopLevels[0])
	}
	if fn.Name != fnName || !fn.IsGlobal {
		t.Errorf("generated function = %#v, want Name=%v IsGlobal=true", fn, fnName)
	}
	if _, ok := fn.Instructions[len(fn.Instructions)-1].(*asm.Ret); !ok {
		t.Errorf("generated function does not end with Ret")
	}
}

func TestGenerate_RecoversFromUndefinedSymbol(t *testing.T) {
	f := newFixture()
	fnName := f.idents.Intern("broken")
	f.fe.Symbols[fnName] = &fetype.Symbol{
		Type:  &fetype.FunType{Ret: fetype.Scalar{Kind: fetype.KindVoid}, ParamRegMask: fetype.NoRegisterMask, RetRegMask: fetype.NoRegisterMask},
		Attrs: fetype.FunAttrs{IsDef: true},
	}
	undefined := tac.Variable{Name: f.idents.Intern("undeclared")}
	prog := &tac.Program{
		Functions: []*tac.Function{{
			Name:         fnName,
			Instructions: []tac.Instruction{&tac.Return{Val: undefined}},
		}},
	}
	_, err := Generate(f.idents, f.fe, prog)
	if err == nil {
		t.Error("Generate() with an undeclared symbol returned no error, want an ICE converted to error")
	}
}
