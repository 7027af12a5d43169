package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/classify"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ice"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genFunction lowers one tac.Function into its asm.Function.
// Parameter intake mirrors call-argument placement: the same integer/SSE
// register walk FunCall uses to pack arguments, run here in reverse to
// unpack them into Pseudo/PseudoMem operands, plus the stack-offset walk
// (starting at 16(%rbp), past the saved return address and frame pointer)
// for whatever overflowed the six integer / eight SSE registers.
func (g *Generator) genFunction(fn *tac.Function) *asm.Function {
	funType, ok := g.fe.Symbols[fn.Name].Type.(*fetype.FunType)
	if !ok {
		ice.Raise("asmgen: %s has no function type", g.idents.Name(fn.Name))
	}

	var instrs []asm.Instruction
	g.instrs = &instrs
	g.retIsMemory = false
	g.paramRegBits = 0
	g.retRegBits = 0

	intUsed, sseUsed := 0, 0
	stackOffset := int64(16)

	if fetype.IsStruct(funType.Ret) {
		tag := funType.Ret.(fetype.Structure).Tag
		if g.classes.Classify(tag).Classes[0] == classify.Memory {
			g.retIsMemory = true
			g.emitMov(asmtype.QuadWord{}, asm.Register{Reg: asm.Di}, asm.Memory{Offset: -8, Base: asm.Bp})
			g.paramRegBits |= maskBit(asm.Di)
			intUsed = 1
		}
	}

	for i, name := range fn.Params {
		t := funType.Params[i]
		switch {
		case fetype.IsDouble(t):
			if sseUsed < len(asm.SseArgRegs) {
				reg := asm.SseArgRegs[sseUsed]
				sseUsed++
				g.emitMov(asmtype.BackendDouble{}, asm.Register{Reg: reg}, asm.Pseudo{Name: name})
				g.paramRegBits |= maskBit(reg)
			} else {
				g.emitMov(asmtype.BackendDouble{}, asm.Memory{Offset: stackOffset, Base: asm.Bp}, asm.Pseudo{Name: name})
				stackOffset += 8
			}
		case fetype.IsStruct(t):
			g.unpackStructParam(name, t.(fetype.Structure).Tag, &intUsed, &sseUsed, &stackOffset)
		default:
			at := asmtype.FromScalar(t)
			if intUsed < len(asm.IntArgRegs) {
				reg := asm.IntArgRegs[intUsed]
				intUsed++
				g.emitMov(at, asm.Register{Reg: reg}, asm.Pseudo{Name: name})
				g.paramRegBits |= maskBit(reg)
			} else {
				g.emitMov(at, asm.Memory{Offset: stackOffset, Base: asm.Bp}, asm.Pseudo{Name: name})
				stackOffset += 8
			}
		}
	}

	for _, instr := range fn.Instructions {
		g.genInstruction(instr)
	}

	if funType.ParamRegMask == fetype.NoRegisterMask {
		funType.ParamRegMask = g.paramRegBits
	}
	if funType.RetRegMask == fetype.NoRegisterMask {
		funType.RetRegMask = g.retRegBits
	}

	sym, _ := g.fe.Symbols[fn.Name].Attrs.(fetype.FunAttrs)
	return &asm.Function{
		Name:         fn.Name,
		IsGlobal:     fn.IsGlobal || sym.IsGlob,
		IsRetMemory:  g.retIsMemory,
		Instructions: instrs,
	}
}

// unpackStructParam lowers a struct parameter: a struct
// classified Memory, or one that doesn't fit the remaining registers, is
// pulled in eightbyte-at-a-time from the stack; otherwise it is unpacked
// from the consumed integer/SSE registers.
func (g *Generator) unpackStructParam(name, tag ident.ID, intUsed, sseUsed *int, stackOffset *int64) {
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
			g.regToStructSlot(reg, name, offset, classes.Classes[slot], t)
			g.paramRegBits |= maskBit(reg)
		}
		return
	}

	size := g.structSizeOf(name)
	base := *stackOffset
	copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
		g.emitMov(t, asm.Memory{Offset: base + offset, Base: asm.Bp}, asm.PseudoMem{Name: name, Offset: offset})
	})
	*stackOffset += (size + 7) / 8 * 8
}

func (g *Generator) genInstruction(instr tac.Instruction) {
	switch n := instr.(type) {
	case *tac.Return:
		g.genReturn(n)
	case *tac.SignExtend:
		g.genSignExtend(n)
	case *tac.Truncate:
		g.genTruncate(n)
	case *tac.ZeroExtend:
		g.genZeroExtend(n)
	case *tac.DoubleToInt:
		g.genDoubleToInt(n)
	case *tac.DoubleToUInt:
		g.genDoubleToUInt(n)
	case *tac.IntToDouble:
		g.genIntToDouble(n)
	case *tac.UIntToDouble:
		g.genUIntToDouble(n)
	case *tac.FunCall:
		g.genFunCall(n)
	case *tac.Unary:
		g.genUnary(n)
	case *tac.Binary:
		g.genBinary(n)
	case *tac.Copy:
		g.genCopy(n)
	case *tac.GetAddress:
		g.genGetAddress(n)
	case *tac.Load:
		g.genLoad(n)
	case *tac.Store:
		g.genStore(n)
	case *tac.AddPtr:
		g.genAddPtr(n)
	case *tac.CopyToOffset:
		g.genCopyToOffset(n)
	case *tac.CopyFromOffset:
		g.genCopyFromOffset(n)
	case *tac.Jump:
		g.genJump(n)
	case *tac.JumpIfZero:
		g.genJumpIfZero(n)
	case *tac.JumpIfNotZero:
		g.genJumpIfNotZero(n)
	case *tac.Label:
		g.genLabel(n)
	default:
		ice.Raise("asmgen: unhandled TAC instruction %T", instr)
	}
}
