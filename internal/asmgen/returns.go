package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/classify"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genReturn lowers Return: void emits a bare Ret; scalar/double route
// the value through ax/xmm0 and record the register used; struct returns
// either byte-copy through the hidden pointer stashed at -8(%rbp) (Memory
// class) or transport 1-2 eightbytes through {ax,dx}/{xmm0,xmm1} per the
// classifier.
func (g *Generator) genReturn(n *tac.Return) {
	defer g.emit(&asm.Ret{})

	if n.Val == nil {
		return
	}

	if g.isValueDouble(n.Val) {
		g.emitMov(asmtype.BackendDouble{}, g.genOperand(n.Val), asm.Register{Reg: asm.Xmm0})
		g.retRegBits |= maskBit(asm.Xmm0)
		return
	}

	if !g.isValueStruct(n.Val) {
		g.emitMov(g.genAsmType(n.Val), g.genOperand(n.Val), asm.Register{Reg: asm.Ax})
		g.retRegBits |= maskBit(asm.Ax)
		return
	}

	g.genReturnStruct(n.Val)
}

func (g *Generator) genReturnStruct(v tac.Value) {
	name := v.(tac.Variable).Name
	tag := g.symbolType(name).(fetype.Structure).Tag
	classes := g.classes.Classify(tag)

	if classes.Classes[0] == classify.Memory {
		g.emitMov(asmtype.QuadWord{}, asm.Memory{Offset: -8, Base: asm.Bp}, asm.Register{Reg: asm.Ax})
		size := g.structSizeOf(name)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.PseudoMem{Name: name, Offset: offset}, asm.Memory{Offset: offset, Base: asm.Ax})
		})
		g.retRegBits |= maskBit(asm.Ax)
		return
	}

	intRegs := [2]asm.Reg{asm.Ax, asm.Dx}
	sseRegs := [2]asm.Reg{asm.Xmm0, asm.Xmm1}
	var intIdx, sseIdx int
	for slot := 0; slot < classes.NumEightbytes; slot++ {
		offset := int64(slot) * 8
		t := classify.AsmType8b(g.fe.StructTypedefs, tag, offset)
		var reg asm.Reg
		if classes.Classes[slot] == classify.Sse {
			reg = sseRegs[sseIdx]
			sseIdx++
		} else {
			reg = intRegs[intIdx]
			intIdx++
		}
		g.structSlotToReg(name, offset, t, reg)
		g.retRegBits |= maskBit(reg)
	}
}
