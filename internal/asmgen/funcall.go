package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/classify"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// stackArg is one deferred eightbyte of a call's stack-passed arguments,
// pushed after every register assignment has been decided.
type stackArg struct {
	t   asmtype.AssemblyType
	src asm.Operand
}

// genFunCall lowers FunCall: packs arguments into the integer/SSE
// argument registers and (for the overflow) the stack, issues the Call,
// deallocates, and routes the return value.
func (g *Generator) genFunCall(n *tac.FunCall) {
	var calleeType *fetype.FunType
	if sym, ok := g.fe.Symbols[n.Name]; ok {
		calleeType, _ = sym.Type.(*fetype.FunType)
	}

	intUsed, sseUsed := 0, 0
	var stackArgs []stackArg

	if calleeType != nil && fetype.IsStruct(calleeType.Ret) && n.Dst != nil {
		tag := calleeType.Ret.(fetype.Structure).Tag
		if g.classes.Classify(tag).Classes[0] == classify.Memory {
			dstName := n.Dst.(tac.Variable).Name
			g.emit(&asm.Lea{Src: asm.PseudoMem{Name: dstName, Offset: 0}, Dst: asm.Register{Reg: asm.Di}})
			intUsed = 1
		}
	}

	for _, arg := range n.Args {
		switch {
		case g.isValueDouble(arg):
			if sseUsed < len(asm.SseArgRegs) {
				g.emitMov(asmtype.BackendDouble{}, g.genOperand(arg), asm.Register{Reg: asm.SseArgRegs[sseUsed]})
				sseUsed++
			} else {
				stackArgs = append(stackArgs, stackArg{asmtype.BackendDouble{}, g.genOperand(arg)})
			}
		case g.isValueStructArg(arg):
			g.packStructArg(arg, &intUsed, &sseUsed, &stackArgs)
		default:
			if intUsed < len(asm.IntArgRegs) {
				g.emitMov(g.genAsmType(arg), g.genOperand(arg), asm.Register{Reg: asm.IntArgRegs[intUsed]})
				intUsed++
			} else {
				stackArgs = append(stackArgs, stackArg{g.genAsmType(arg), g.genOperand(arg)})
			}
		}
	}

	if len(stackArgs)%2 != 0 {
		g.emit(&asm.BinaryInstr{Op: asm.OpSub, Type: asmtype.QuadWord{}, Src: asm.ImmFromUint64(8, false, false), Dst: asm.Register{Reg: asm.Sp}})
	}
	for i := len(stackArgs) - 1; i >= 0; i-- {
		sa := stackArgs[i]
		g.emit(&asm.BinaryInstr{Op: asm.OpSub, Type: asmtype.QuadWord{}, Src: asm.ImmFromUint64(8, false, false), Dst: asm.Register{Reg: asm.Sp}})
		g.emitMov(sa.t, sa.src, asm.Memory{Offset: 0, Base: asm.Sp})
	}

	g.emit(&asm.Call{Name: n.Name})

	deallocate := int64(len(stackArgs)) * 8
	if len(stackArgs)%2 != 0 {
		deallocate += 8
	}
	if deallocate > 0 {
		g.emit(&asm.BinaryInstr{Op: asm.OpAdd, Type: asmtype.QuadWord{}, Src: asm.ImmFromUint64(uint64(deallocate), false, false), Dst: asm.Register{Reg: asm.Sp}})
	}

	g.routeCallReturn(n, calleeType)
}

func (g *Generator) isValueStructArg(v tac.Value) bool {
	variable, ok := v.(tac.Variable)
	if !ok {
		return false
	}
	return fetype.IsStruct(g.symbolType(variable.Name))
}

// packStructArg materializes one struct argument: register
// packing when every remaining eightbyte fits the caller's remaining
// integer/SSE registers, otherwise a stack byte-copy.
func (g *Generator) packStructArg(v tac.Value, intUsed, sseUsed *int, stackArgs *[]stackArg) {
	name := v.(tac.Variable).Name
	tag := g.symbolType(name).(fetype.Structure).Tag
	classes := g.classes.Classify(tag)

	fitsInRegs := classes.Classes[0] != classify.Memory
	if fitsInRegs {
		needInt, needSse := 0, 0
		for i := 0; i < classes.NumEightbytes; i++ {
			if classes.Classes[i] == classify.Sse {
				needSse++
			} else {
				needInt++
			}
		}
		if *intUsed+needInt > len(asm.IntArgRegs) || *sseUsed+needSse > len(asm.SseArgRegs) {
			fitsInRegs = false
		}
	}

	if fitsInRegs {
		for slot := 0; slot < classes.NumEightbytes; slot++ {
			offset := int64(slot) * 8
			t := classify.AsmType8b(g.fe.StructTypedefs, tag, offset)
			var reg asm.Reg
			if classes.Classes[slot] == classify.Sse {
				reg = asm.SseArgRegs[*sseUsed]
				*sseUsed++
			} else {
				reg = asm.IntArgRegs[*intUsed]
				*intUsed++
			}
			g.structSlotToReg(name, offset, t, reg)
		}
		return
	}

	size := g.structSizeOf(name)
	copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
		*stackArgs = append(*stackArgs, stackArg{t, asm.PseudoMem{Name: name, Offset: offset}})
	})
}

// routeCallReturn transports the callee's return value
// from its register(s) (or, for a Memory-class struct, it is already in
// dst via the hidden pointer) into dst, and records the callee's
// return-register mask the first time it is observed. The callee's
// parameter-register mask is not recorded at the call site.
func (g *Generator) routeCallReturn(n *tac.FunCall, calleeType *fetype.FunType) {
	if n.Dst == nil {
		return
	}
	if g.isValueDouble(n.Dst) {
		g.emitMov(asmtype.BackendDouble{}, asm.Register{Reg: asm.Xmm0}, g.genOperand(n.Dst))
		g.noteRetMask(calleeType, maskBit(asm.Xmm0))
		return
	}
	if !g.isValueStruct(n.Dst) {
		g.emitMov(g.genAsmType(n.Dst), asm.Register{Reg: asm.Ax}, g.genOperand(n.Dst))
		g.noteRetMask(calleeType, maskBit(asm.Ax))
		return
	}

	dstName := n.Dst.(tac.Variable).Name
	tag := g.symbolType(dstName).(fetype.Structure).Tag
	classes := g.classes.Classify(tag)
	if classes.Classes[0] == classify.Memory {
		g.noteRetMask(calleeType, maskBit(asm.Ax))
		return
	}

	intRegs := [2]asm.Reg{asm.Ax, asm.Dx}
	sseRegs := [2]asm.Reg{asm.Xmm0, asm.Xmm1}
	var intIdx, sseIdx int
	var bits fetype.RegisterMask
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
		g.regToStructSlot(reg, dstName, offset, classes.Classes[slot], t)
		bits |= maskBit(reg)
	}
	g.noteRetMask(calleeType, bits)
}

func (g *Generator) noteRetMask(calleeType *fetype.FunType, bits fetype.RegisterMask) {
	if calleeType == nil || calleeType.RetRegMask != fetype.NoRegisterMask {
		return
	}
	calleeType.RetRegMask = bits
}
