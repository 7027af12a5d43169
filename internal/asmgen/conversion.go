package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genSignExtend lowers SignExtend: MovSx between the two operand widths.
func (g *Generator) genSignExtend(n *tac.SignExtend) {
	g.emit(&asm.MovSx{
		TypeSrc: g.genAsmType(n.Src),
		TypeDst: g.genAsmType(n.Dst),
		Src:     g.genOperand(n.Src),
		Dst:     g.genOperand(n.Dst),
	})
}

// genZeroExtend lowers ZeroExtend: MovZeroExtend between the two operand
// widths.
func (g *Generator) genZeroExtend(n *tac.ZeroExtend) {
	g.emit(&asm.MovZeroExtend{
		TypeSrc: g.genAsmType(n.Src),
		TypeDst: g.genAsmType(n.Dst),
		Src:     g.genOperand(n.Src),
		Dst:     g.genOperand(n.Dst),
	})
}

// genTruncate lowers Truncate: a plain Mov at the destination width. A
// constant source folds the mask in place rather than emitting an
// instruction, matching the original front end's constant-folding of
// narrowing casts.
func (g *Generator) genTruncate(n *tac.Truncate) {
	if src := g.genOperand(n.Src); isImm(src) {
		imm := src.(asm.Imm)
		dstIsByte := g.isValue1Byte(n.Dst)
		dstIsQuad := !g.isValue1Byte(n.Dst) && !g.isValue4Byte(n.Dst) && !g.isValueDouble(n.Dst)
		v := imm.Value
		switch {
		case dstIsByte:
			v %= 256
		case !dstIsQuad:
			v -= 1 << 32
		}
		g.emitMov(g.genAsmType(n.Dst), asm.ImmFromUint64(v, dstIsByte, dstIsQuad), g.genOperand(n.Dst))
		return
	}
	g.emitMov(g.genAsmType(n.Dst), g.genOperand(n.Src), g.genOperand(n.Dst))
}

func isImm(op asm.Operand) bool {
	_, ok := op.(asm.Imm)
	return ok
}

// genDoubleToInt lowers DoubleToInt: a 1-byte destination converts
// through ax first since Cvttsd2si has no byte form.
func (g *Generator) genDoubleToInt(n *tac.DoubleToInt) {
	if g.isValue1Byte(n.Dst) {
		g.emit(&asm.Cvttsd2si{Type: asmtype.LongWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emitMov(asmtype.Byte{}, asm.Register{Reg: asm.Ax}, g.genOperand(n.Dst))
		return
	}
	g.emit(&asm.Cvttsd2si{Type: g.genAsmType(n.Dst), Src: g.genOperand(n.Src), Dst: g.genOperand(n.Dst)})
}

// genDoubleToUInt lowers DoubleToUInt, including the out-of-range protocol for
// the 8-byte case.
func (g *Generator) genDoubleToUInt(n *tac.DoubleToUInt) {
	switch {
	case g.isValue1Byte(n.Dst):
		g.emit(&asm.Cvttsd2si{Type: asmtype.LongWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emitMov(asmtype.Byte{}, asm.Register{Reg: asm.Ax}, g.genOperand(n.Dst))
	case g.isValue4Byte(n.Dst):
		g.emit(&asm.Cvttsd2si{Type: asmtype.QuadWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emitMov(asmtype.LongWord{}, asm.Register{Reg: asm.Ax}, g.genOperand(n.Dst))
	default:
		g.genDoubleToULong(n.Src, n.Dst)
	}
}

// genDoubleToULong implements the out-of-range double-to-u64 conversion: a
// double >= 2^63 doesn't fit a signed cvttsd2si, so it's shifted into range
// first and the bias added back afterward.
func (g *Generator) genDoubleToULong(src, dst tac.Value) {
	upperBound := asm.Data{Name: g.doubles.Intern(0x43E0000000000000), Offset: 0}
	outOfRange := g.idents.NewLabel("sd2si_out_of_range")
	after := g.idents.NewLabel("sd2si_after")

	srcOp := g.genOperand(src)
	g.emit(&asm.Cmp{Type: asmtype.BackendDouble{}, Src: upperBound, Dst: srcOp})
	g.emit(&asm.JmpCC{Cond: asm.AE, Target: outOfRange})
	g.emit(&asm.Cvttsd2si{Type: asmtype.QuadWord{}, Src: srcOp, Dst: g.genOperand(dst)})
	g.emit(&asm.JmpInstr{Target: after})

	g.emit(&asm.LabelInstr{Name: outOfRange})
	g.emitMov(asmtype.BackendDouble{}, srcOp, asm.Register{Reg: asm.Xmm1})
	g.emit(&asm.BinaryInstr{Op: asm.OpSub, Type: asmtype.BackendDouble{}, Src: upperBound, Dst: asm.Register{Reg: asm.Xmm1}})
	g.emit(&asm.Cvttsd2si{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Xmm1}, Dst: g.genOperand(dst)})
	g.emit(&asm.BinaryInstr{
		Op:   asm.OpAdd,
		Type: asmtype.QuadWord{},
		Src:  asm.ImmFromUint64(1<<63, false, true),
		Dst:  g.genOperand(dst),
	})

	g.emit(&asm.LabelInstr{Name: after})
}

// genIntToDouble lowers IntToDouble: a 1-byte source is sign-extended
// through ax first since Cvtsi2sd has no byte form.
func (g *Generator) genIntToDouble(n *tac.IntToDouble) {
	if g.isValue1Byte(n.Src) {
		g.emit(&asm.MovSx{TypeSrc: asmtype.Byte{}, TypeDst: asmtype.LongWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emit(&asm.Cvtsi2sd{Type: asmtype.LongWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: g.genOperand(n.Dst)})
		return
	}
	g.emit(&asm.Cvtsi2sd{Type: g.genAsmType(n.Src), Src: g.genOperand(n.Src), Dst: g.genOperand(n.Dst)})
}

// genUIntToDouble lowers UIntToDouble, including the symmetric
// out-of-range dance for the 8-byte case: a u64 with the top bit set
// doesn't fit a signed cvtsi2sd, so the low bit is folded in by hand and
// the halved value is doubled after conversion.
func (g *Generator) genUIntToDouble(n *tac.UIntToDouble) {
	switch {
	case g.isValue1Byte(n.Src):
		g.emit(&asm.MovZeroExtend{TypeSrc: asmtype.Byte{}, TypeDst: asmtype.LongWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emit(&asm.Cvtsi2sd{Type: asmtype.LongWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: g.genOperand(n.Dst)})
	case g.isValue4Byte(n.Src):
		g.emit(&asm.MovZeroExtend{TypeSrc: asmtype.LongWord{}, TypeDst: asmtype.QuadWord{}, Src: g.genOperand(n.Src), Dst: asm.Register{Reg: asm.Ax}})
		g.emit(&asm.Cvtsi2sd{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: g.genOperand(n.Dst)})
	default:
		g.genULongToDouble(n.Src, n.Dst)
	}
}

func (g *Generator) genULongToDouble(src, dst tac.Value) {
	outOfRange := g.idents.NewLabel("u2sd_out_of_range")
	after := g.idents.NewLabel("u2sd_after")

	srcOp := g.genOperand(src)
	g.emitMov(asmtype.QuadWord{}, srcOp, asm.Register{Reg: asm.Ax})
	g.emit(&asm.Cmp{Type: asmtype.QuadWord{}, Src: asm.ImmZero(), Dst: asm.Register{Reg: asm.Ax}})
	g.emit(&asm.JmpCC{Cond: asm.L, Target: outOfRange})
	g.emit(&asm.Cvtsi2sd{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: g.genOperand(dst)})
	g.emit(&asm.JmpInstr{Target: after})

	g.emit(&asm.LabelInstr{Name: outOfRange})
	g.emitMov(asmtype.QuadWord{}, asm.Register{Reg: asm.Ax}, asm.Register{Reg: asm.Dx})
	g.emit(&asm.UnaryInstr{Op: asm.OpShr, Type: asmtype.QuadWord{}, Dst: asm.Register{Reg: asm.Dx}})
	g.emit(&asm.BinaryInstr{Op: asm.OpBitAnd, Type: asmtype.QuadWord{}, Src: asm.ImmFromUint64(1, false, true), Dst: asm.Register{Reg: asm.Ax}})
	g.emit(&asm.BinaryInstr{Op: asm.OpBitOr, Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: asm.Register{Reg: asm.Dx}})
	g.emit(&asm.Cvtsi2sd{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Dx}, Dst: g.genOperand(dst)})
	g.emit(&asm.BinaryInstr{Op: asm.OpAdd, Type: asmtype.BackendDouble{}, Src: g.genOperand(dst), Dst: g.genOperand(dst)})

	g.emit(&asm.LabelInstr{Name: after})
}
