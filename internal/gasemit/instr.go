package gasemit

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

func (e *emitter) instruction(instr asm.Instruction) {
	switch n := instr.(type) {
	case *asm.Mov:
		e.line("\tmov%s\t%s, %s", suffix(n.Type), e.operand(n.Src, n.Type), e.operand(n.Dst, n.Type))
	case *asm.MovSx:
		e.line("\tmovs%s%s\t%s, %s", suffix(n.TypeSrc), suffix(n.TypeDst), e.operand(n.Src, n.TypeSrc), e.operand(n.Dst, n.TypeDst))
	case *asm.MovZeroExtend:
		e.line("\tmovz%s%s\t%s, %s", suffix(n.TypeSrc), suffix(n.TypeDst), e.operand(n.Src, n.TypeSrc), e.operand(n.Dst, n.TypeDst))
	case *asm.Lea:
		e.line("\tleaq\t%s, %s", e.operand(n.Src, asmtype.QuadWord{}), e.operand(n.Dst, asmtype.QuadWord{}))
	case *asm.Cvttsd2si:
		e.line("\tcvttsd2si%s\t%s, %s", intSuffix(n.Type), e.operand(n.Src, asmtype.BackendDouble{}), e.operand(n.Dst, n.Type))
	case *asm.Cvtsi2sd:
		e.line("\tcvtsi2sd%s\t%s, %s", intSuffix(n.Type), e.operand(n.Src, n.Type), e.operand(n.Dst, asmtype.BackendDouble{}))
	case *asm.UnaryInstr:
		e.line("\t%s%s\t%s", unaryMnemonic(n.Op), suffix(n.Type), e.operand(n.Dst, n.Type))
	case *asm.BinaryInstr:
		e.emitBinary(n)
	case *asm.Cmp:
		if _, ok := n.Type.(asmtype.BackendDouble); ok {
			e.line("\tcomisd\t%s, %s", e.operand(n.Src, n.Type), e.operand(n.Dst, n.Type))
		} else {
			e.line("\tcmp%s\t%s, %s", suffix(n.Type), e.operand(n.Src, n.Type), e.operand(n.Dst, n.Type))
		}
	case *asm.Idiv:
		e.line("\tidiv%s\t%s", suffix(n.Type), e.operand(n.Src, n.Type))
	case *asm.Div:
		e.line("\tdiv%s\t%s", suffix(n.Type), e.operand(n.Src, n.Type))
	case *asm.Cdq:
		if _, ok := n.Type.(asmtype.QuadWord); ok {
			e.line("\tcqto")
		} else {
			e.line("\tcltd")
		}
	case *asm.JmpInstr:
		e.line("\tjmp\t%s", e.name(n.Target))
	case *asm.JmpCC:
		e.line("\tj%s\t%s", condSuffix(n.Cond), e.name(n.Target))
	case *asm.SetCC:
		e.line("\tset%s\t%s", condSuffix(n.Cond), e.operand(n.Dst, asmtype.Byte{}))
	case *asm.LabelInstr:
		e.line("%s:", e.name(n.Name))
	case *asm.Push:
		e.line("\tpushq\t%s", e.operand(n.Src, asmtype.QuadWord{}))
	case *asm.Pop:
		e.line("\tpopq\t%s", regName(n.Reg, widthQuad))
	case *asm.Call:
		e.line("\tcall\t%s", e.name(n.Name))
	case *asm.Ret:
		e.line("\tret")
	}
}

func (e *emitter) emitBinary(n *asm.BinaryInstr) {
	if _, ok := n.Type.(asmtype.BackendDouble); ok {
		e.line("\t%s\t%s, %s", doubleMnemonic(n.Op), e.operand(n.Src, n.Type), e.operand(n.Dst, n.Type))
		return
	}
	e.line("\t%s%s\t%s, %s", intMnemonic(n.Op), suffix(n.Type), e.operand(n.Src, n.Type), e.operand(n.Dst, n.Type))
}

func intMnemonic(op asm.BinaryOp) string {
	switch op {
	case asm.OpAdd:
		return "add"
	case asm.OpSub:
		return "sub"
	case asm.OpMult:
		return "imul"
	case asm.OpBitAnd:
		return "and"
	case asm.OpBitOr:
		return "or"
	case asm.OpBitXor:
		return "xor"
	case asm.OpBitShiftLeft:
		return "shl"
	case asm.OpBitShiftRight:
		return "shr"
	case asm.OpBitShrArithmetic:
		return "sar"
	default:
		return "add"
	}
}

func doubleMnemonic(op asm.BinaryOp) string {
	switch op {
	case asm.OpAdd:
		return "addsd"
	case asm.OpSub:
		return "subsd"
	case asm.OpMult:
		return "mulsd"
	case asm.OpDivDouble:
		return "divsd"
	case asm.OpBitAnd:
		return "andpd"
	case asm.OpBitXor:
		return "xorpd"
	case asm.OpBitOr:
		return "orpd"
	default:
		return "addsd"
	}
}

func unaryMnemonic(op asm.UnaryOp) string {
	switch op {
	case asm.OpNot:
		return "not"
	case asm.OpNeg:
		return "neg"
	case asm.OpShr:
		return "shr"
	default:
		return "neg"
	}
}

// intSuffix picks the integer-width suffix cvttsd2si/cvtsi2sd use to pick
// between their 32-bit and 64-bit register forms.
func intSuffix(t asmtype.AssemblyType) string {
	if _, ok := t.(asmtype.QuadWord); ok {
		return "q"
	}
	return "l"
}
