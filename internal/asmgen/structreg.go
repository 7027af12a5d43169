package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/classify"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// scratchSlot0/scratchSlot1 are two fixed %rbp-relative scratch words
// reserved below a function's pseudo-register frame, used to round-trip an
// eightbyte between a struct's byte layout and a whole register when the
// eightbyte isn't a clean Quad/Long/Byte width ("byte-assemble a
// non-aligned eightbyte" case). Spilling through memory sidesteps needing
// sub-register (e.g. %dil/%ah) addressing in the operand model.
var (
	scratchSlot0 = asm.Memory{Offset: -16, Base: asm.Bp}
	scratchSlot1 = asm.Memory{Offset: -24, Base: asm.Bp}
)

// regToStructSlot copies one eightbyte out of reg into dst's byte layout at
// offset, always spilling the whole register through a scratch word first.
func (g *Generator) regToStructSlot(reg asm.Reg, dst ident.ID, offset int64, class classify.Class, t asmtype.AssemblyType) {
	scratch := scratchSlot0
	if offset != 0 {
		scratch = scratchSlot1
	}
	g.emitMov(asmtype.QuadWord{}, asm.Register{Reg: reg}, scratch)
	if _, ok := t.(asmtype.ByteArray); !ok {
		g.emitMov(t, scratch, asm.PseudoMem{Name: dst, Offset: offset})
		return
	}
	copyStrides(t.Size(), func(st asmtype.AssemblyType, sub int64) {
		g.emitMov(st, asm.Memory{Offset: scratch.Offset + sub, Base: asm.Bp}, asm.PseudoMem{Name: dst, Offset: offset + sub})
	})
}

// structSlotToReg copies one eightbyte of src's byte layout at offset into
// reg, the reverse of regToStructSlot.
func (g *Generator) structSlotToReg(src ident.ID, offset int64, t asmtype.AssemblyType, reg asm.Reg) {
	scratch := scratchSlot0
	if offset != 0 {
		scratch = scratchSlot1
	}
	g.emitMov(asmtype.QuadWord{}, asm.ImmZero(), scratch)
	if _, ok := t.(asmtype.ByteArray); !ok {
		g.emitMov(t, asm.PseudoMem{Name: src, Offset: offset}, scratch)
	} else {
		copyStrides(t.Size(), func(st asmtype.AssemblyType, sub int64) {
			g.emitMov(st, asm.PseudoMem{Name: src, Offset: offset + sub}, asm.Memory{Offset: scratch.Offset + sub, Base: asm.Bp})
		})
	}
	g.emitMov(asmtype.QuadWord{}, scratch, asm.Register{Reg: reg})
}
