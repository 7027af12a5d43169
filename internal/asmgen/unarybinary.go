package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genUnary lowers Unary: Complement/Negate are a Mov followed by the
// matching in-place op; Not compares against zero and Sets the result,
// with a NaN-aware path for double operands (comisd leaves PF set on an
// unordered compare, which Not must treat as false).
func (g *Generator) genUnary(n *tac.Unary) {
	switch n.Op {
	case tac.UnaryComplement:
		g.emitMov(g.genAsmType(n.Src), g.genOperand(n.Src), g.genOperand(n.Dst))
		g.emit(&asm.UnaryInstr{Op: asm.OpNot, Type: g.genAsmType(n.Dst), Dst: g.genOperand(n.Dst)})
	case tac.UnaryNegate:
		if g.isValueDouble(n.Src) {
			g.genNegateDouble(n)
			return
		}
		g.emitMov(g.genAsmType(n.Src), g.genOperand(n.Src), g.genOperand(n.Dst))
		g.emit(&asm.UnaryInstr{Op: asm.OpNeg, Type: g.genAsmType(n.Dst), Dst: g.genOperand(n.Dst)})
	case tac.UnaryNot:
		g.genNot(n)
	}
}

func (g *Generator) genNegateDouble(n *tac.Unary) {
	mask := asm.Data{Name: g.doubles.NegativeZeroMask(), Offset: 0}
	g.emitMov(asmtype.BackendDouble{}, g.genOperand(n.Src), g.genOperand(n.Dst))
	g.emit(&asm.BinaryInstr{Op: asm.OpBitXor, Type: asmtype.BackendDouble{}, Src: mask, Dst: g.genOperand(n.Dst)})
}

func (g *Generator) genNot(n *tac.Unary) {
	if !g.isValueDouble(n.Src) {
		t := g.genAsmType(n.Src)
		g.emit(&asm.Cmp{Type: t, Src: asm.ImmZero(), Dst: g.genOperand(n.Src)})
		g.emitMov(asmtype.LongWord{}, asm.ImmZero(), g.genOperand(n.Dst))
		g.emit(&asm.SetCC{Cond: asm.E, Dst: g.genOperand(n.Dst)})
		return
	}
	zero := g.doubles.Intern(0)
	nanLabel := g.idents.NewLabel("comisd_nan")
	g.emitMov(asmtype.BackendDouble{}, asm.Data{Name: zero, Offset: 0}, asm.Register{Reg: asm.Xmm0})
	g.emit(&asm.Cmp{Type: asmtype.BackendDouble{}, Src: asm.Register{Reg: asm.Xmm0}, Dst: g.genOperand(n.Src)})
	g.emitMov(asmtype.LongWord{}, asm.ImmZero(), g.genOperand(n.Dst))
	g.emit(&asm.JmpCC{Cond: asm.P, Target: nanLabel})
	g.emit(&asm.SetCC{Cond: asm.E, Dst: g.genOperand(n.Dst)})
	g.emit(&asm.LabelInstr{Name: nanLabel})
}

var binaryOpMap = map[tac.BinaryOp]asm.BinaryOp{
	tac.BinAdd:             asm.OpAdd,
	tac.BinSub:             asm.OpSub,
	tac.BinMult:            asm.OpMult,
	tac.BinBitAnd:          asm.OpBitAnd,
	tac.BinBitOr:           asm.OpBitOr,
	tac.BinBitXor:          asm.OpBitXor,
	tac.BinBitShiftLeft:    asm.OpBitShiftLeft,
	tac.BinBitShiftRight:   asm.OpBitShiftRight,
	tac.BinBitShrArithmetic: asm.OpBitShrArithmetic,
}

var condCodeMap = map[tac.BinaryOp]asm.CondCode{
	tac.BinEqual:          asm.E,
	tac.BinNotEqual:       asm.NE,
	tac.BinLessThan:       asm.L,
	tac.BinLessOrEqual:    asm.LE,
	tac.BinGreaterThan:    asm.G,
	tac.BinGreaterOrEqual: asm.GE,
}

// unsignedCondCodeMap maps a signed comparison code to its unsigned
// counterpart, used for both unsigned integer and double comparisons (the
// latter via comisd, which behaves like an unsigned compare).
var unsignedCondCodeMap = map[asm.CondCode]asm.CondCode{
	asm.L:  asm.B,
	asm.LE: asm.BE,
	asm.G:  asm.A,
	asm.GE: asm.AE,
	asm.E:  asm.E,
	asm.NE: asm.NE,
}

// genBinary lowers Binary: arithmetic/bitwise ops fold into one
// Mov+Binary pair; Divide/Remainder route through ax/dx per signedness;
// comparisons Cmp then SetCC, with the double/unsigned paths using the
// unsigned condition codes and a NaN-aware jump for double operands.
func (g *Generator) genBinary(n *tac.Binary) {
	if op, ok := binaryOpMap[n.Op]; ok {
		if n.Op == tac.BinBitShiftLeft || n.Op == tac.BinBitShiftRight || n.Op == tac.BinBitShrArithmetic {
			g.emitMov(g.genAsmType(n.Src1), g.genOperand(n.Src1), g.genOperand(n.Dst))
			g.emit(&asm.BinaryInstr{Op: op, Type: g.genAsmType(n.Dst), Src: g.genOperand(n.Src2), Dst: g.genOperand(n.Dst)})
			return
		}
		t := g.genAsmType(n.Src1)
		if g.isValueDouble(n.Src1) {
			t = asmtype.BackendDouble{}
		}
		g.emitMov(t, g.genOperand(n.Src1), g.genOperand(n.Dst))
		g.emit(&asm.BinaryInstr{Op: op, Type: t, Src: g.genOperand(n.Src2), Dst: g.genOperand(n.Dst)})
		return
	}

	switch n.Op {
	case tac.BinDivide:
		g.genDivide(n)
		return
	case tac.BinRemainder:
		g.genRemainder(n)
		return
	}

	g.genComparison(n)
}

func (g *Generator) genDivide(n *tac.Binary) {
	t := g.genAsmType(n.Src1)
	if g.isValueDouble(n.Src1) {
		g.emitMov(asmtype.BackendDouble{}, g.genOperand(n.Src1), g.genOperand(n.Dst))
		g.emit(&asm.BinaryInstr{Op: asm.OpDivDouble, Type: asmtype.BackendDouble{}, Src: g.genOperand(n.Src2), Dst: g.genOperand(n.Dst)})
		return
	}
	g.emitMov(t, g.genOperand(n.Src1), asm.Register{Reg: asm.Ax})
	if g.isValueSigned(n.Src1) {
		g.emit(&asm.Cdq{Type: t})
		g.emit(&asm.Idiv{Type: t, Src: g.genOperand(n.Src2)})
	} else {
		g.emitMov(t, asm.ImmZero(), asm.Register{Reg: asm.Dx})
		g.emit(&asm.Div{Type: t, Src: g.genOperand(n.Src2)})
	}
	g.emitMov(t, asm.Register{Reg: asm.Ax}, g.genOperand(n.Dst))
}

func (g *Generator) genRemainder(n *tac.Binary) {
	t := g.genAsmType(n.Src1)
	g.emitMov(t, g.genOperand(n.Src1), asm.Register{Reg: asm.Ax})
	if g.isValueSigned(n.Src1) {
		g.emit(&asm.Cdq{Type: t})
		g.emit(&asm.Idiv{Type: t, Src: g.genOperand(n.Src2)})
	} else {
		g.emitMov(t, asm.ImmZero(), asm.Register{Reg: asm.Dx})
		g.emit(&asm.Div{Type: t, Src: g.genOperand(n.Src2)})
	}
	g.emitMov(t, asm.Register{Reg: asm.Dx}, g.genOperand(n.Dst))
}

func (g *Generator) genComparison(n *tac.Binary) {
	code := condCodeMap[n.Op]
	isDouble := g.isValueDouble(n.Src1)
	unsigned := isDouble || !g.isValueSigned(n.Src1)
	if unsigned {
		if u, ok := unsignedCondCodeMap[code]; ok {
			code = u
		}
	}

	t := g.genAsmType(n.Src1)
	if isDouble {
		t = asmtype.BackendDouble{}
	}
	g.emit(&asm.Cmp{Type: t, Src: g.genOperand(n.Src2), Dst: g.genOperand(n.Src1)})
	g.emitMov(asmtype.LongWord{}, asm.ImmZero(), g.genOperand(n.Dst))

	if !isDouble {
		g.emit(&asm.SetCC{Cond: code, Dst: g.genOperand(n.Dst)})
		return
	}

	nanLabel := g.idents.NewLabel("comisd_nan")
	g.emit(&asm.JmpCC{Cond: asm.P, Target: nanLabel})
	g.emit(&asm.SetCC{Cond: code, Dst: g.genOperand(n.Dst)})
	if n.Op != tac.BinNotEqual {
		g.emit(&asm.LabelInstr{Name: nanLabel})
		return
	}
	after := g.idents.NewLabel("comisd_after")
	g.emit(&asm.JmpInstr{Target: after})
	g.emit(&asm.LabelInstr{Name: nanLabel})
	g.emitMov(asmtype.LongWord{}, asm.ImmFromUint64(1, false, false), g.genOperand(n.Dst))
	g.emit(&asm.LabelInstr{Name: after})
}
