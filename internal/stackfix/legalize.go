package stackfix

import (
	"math"

	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

// legalize expands one stack-fixed-up instruction into the one or more
// instructions GAS can actually encode: no two memory/data operands on the
// same instruction, no out-of-range 64-bit immediate outside a register
// Mov, and no direct-to-memory destination for the instructions whose real
// x86 encoding requires a register there (MovSx, MovZeroExtend, Cvttsd2si,
// Cvtsi2sd, Lea), and no immediate divisor for Idiv/Div.
func legalize(instr asm.Instruction) []asm.Instruction {
	switch n := instr.(type) {
	case *asm.Mov:
		return legalizeMov(n)
	case *asm.MovSx:
		return legalizeDstMustBeReg(n.Dst, asm.R11, n.TypeDst, func(tmp asm.Operand) asm.Instruction {
			return &asm.MovSx{TypeSrc: n.TypeSrc, TypeDst: n.TypeDst, Src: n.Src, Dst: tmp}
		})
	case *asm.MovZeroExtend:
		return legalizeDstMustBeReg(n.Dst, asm.R11, n.TypeDst, func(tmp asm.Operand) asm.Instruction {
			return &asm.MovZeroExtend{TypeSrc: n.TypeSrc, TypeDst: n.TypeDst, Src: n.Src, Dst: tmp}
		})
	case *asm.Cvttsd2si:
		return legalizeDstMustBeReg(n.Dst, asm.R11, n.Type, func(tmp asm.Operand) asm.Instruction {
			return &asm.Cvttsd2si{Type: n.Type, Src: n.Src, Dst: tmp}
		})
	case *asm.Cvtsi2sd:
		return legalizeDstMustBeReg(n.Dst, asm.Xmm15, asmtype.BackendDouble{}, func(tmp asm.Operand) asm.Instruction {
			return &asm.Cvtsi2sd{Type: n.Type, Src: n.Src, Dst: tmp}
		})
	case *asm.Lea:
		return legalizeDstMustBeReg(n.Dst, asm.R11, asmtype.QuadWord{}, func(tmp asm.Operand) asm.Instruction {
			return &asm.Lea{Src: n.Src, Dst: tmp}
		})
	case *asm.BinaryInstr:
		return legalizeTwoOperand(n.Type, n.Src, n.Dst, func(src, dst asm.Operand) asm.Instruction {
			return &asm.BinaryInstr{Op: n.Op, Type: n.Type, Src: src, Dst: dst}
		})
	case *asm.Cmp:
		return legalizeTwoOperand(n.Type, n.Src, n.Dst, func(src, dst asm.Operand) asm.Instruction {
			return &asm.Cmp{Type: n.Type, Src: src, Dst: dst}
		})
	case *asm.Idiv:
		return legalizeDivisor(n.Type, n.Src, func(src asm.Operand) asm.Instruction {
			return &asm.Idiv{Type: n.Type, Src: src}
		})
	case *asm.Div:
		return legalizeDivisor(n.Type, n.Src, func(src asm.Operand) asm.Instruction {
			return &asm.Div{Type: n.Type, Src: src}
		})
	case *asm.Push:
		return legalizePush(n)
	}
	return []asm.Instruction{instr}
}

func scratchFor(t asmtype.AssemblyType) asm.Reg {
	if _, ok := t.(asmtype.BackendDouble); ok {
		return asm.Xmm14
	}
	return asm.R10
}

func isMemoryOperand(op asm.Operand) bool {
	switch op.(type) {
	case asm.Memory, asm.Data:
		return true
	}
	return false
}

// needsImmSplit reports whether imm is a 64-bit immediate outside what a
// single instruction can encode directly (anything wider than a sign-
// extended 32-bit value, outside a Mov into a register).
func needsImmSplit(imm asm.Imm) bool {
	if !imm.IsQuad {
		return false
	}
	v := int64(imm.Value)
	return v < math.MinInt32 || v > math.MaxInt32
}

func legalizeMov(n *asm.Mov) []asm.Instruction {
	if imm, ok := n.Src.(asm.Imm); ok && needsImmSplit(imm) {
		scratch := asm.Register{Reg: asm.R10}
		pre := &asm.Mov{Type: asmtype.QuadWord{}, Src: imm, Dst: scratch}
		return append([]asm.Instruction{pre}, legalizeMov(&asm.Mov{Type: n.Type, Src: scratch, Dst: n.Dst})...)
	}
	if isMemoryOperand(n.Src) && isMemoryOperand(n.Dst) {
		scratch := asm.Register{Reg: scratchFor(n.Type)}
		return []asm.Instruction{
			&asm.Mov{Type: n.Type, Src: n.Src, Dst: scratch},
			&asm.Mov{Type: n.Type, Src: scratch, Dst: n.Dst},
		}
	}
	return []asm.Instruction{n}
}

func legalizeTwoOperand(t asmtype.AssemblyType, src, dst asm.Operand, build func(src, dst asm.Operand) asm.Instruction) []asm.Instruction {
	var out []asm.Instruction
	if imm, ok := src.(asm.Imm); ok && needsImmSplit(imm) {
		scratch := asm.Register{Reg: scratchFor(t)}
		out = append(out, &asm.Mov{Type: asmtype.QuadWord{}, Src: imm, Dst: scratch})
		src = scratch
	}
	if isMemoryOperand(src) && isMemoryOperand(dst) {
		scratch := asm.Register{Reg: scratchFor(t)}
		out = append(out, &asm.Mov{Type: t, Src: src, Dst: scratch})
		src = scratch
	}
	return append(out, build(src, dst))
}

func legalizeDstMustBeReg(dst asm.Operand, scratchReg asm.Reg, dstType asmtype.AssemblyType, build func(tmp asm.Operand) asm.Instruction) []asm.Instruction {
	if !isMemoryOperand(dst) {
		return []asm.Instruction{build(dst)}
	}
	tmp := asm.Register{Reg: scratchReg}
	return []asm.Instruction{
		build(tmp),
		&asm.Mov{Type: dstType, Src: tmp, Dst: dst},
	}
}

// legalizeDivisor forces an immediate divisor through a register: real
// idiv/div never accept an immediate operand, though TAC freely divides by
// a constant.
func legalizeDivisor(t asmtype.AssemblyType, src asm.Operand, build func(src asm.Operand) asm.Instruction) []asm.Instruction {
	if _, ok := src.(asm.Imm); !ok {
		return []asm.Instruction{build(src)}
	}
	scratch := asm.Register{Reg: scratchFor(t)}
	return []asm.Instruction{
		&asm.Mov{Type: t, Src: src, Dst: scratch},
		build(scratch),
	}
}

func legalizePush(n *asm.Push) []asm.Instruction {
	if imm, ok := n.Src.(asm.Imm); ok && needsImmSplit(imm) {
		scratch := asm.Register{Reg: asm.R10}
		return []asm.Instruction{
			&asm.Mov{Type: asmtype.QuadWord{}, Src: imm, Dst: scratch},
			&asm.Push{Src: scratch},
		}
	}
	return []asm.Instruction{n}
}
