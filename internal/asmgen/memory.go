package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ice"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// structSizeOf returns the whole-object size of the struct/union-typed
// variable name, per its front-end symbol.
func (g *Generator) structSizeOf(name ident.ID) int64 {
	return fetype.Size(g.fe.StructTypedefs, g.symbolType(name))
}

// genCopy lowers Copy: a struct-to-struct byte copy at matching offsets, or
// a single scalar Mov.
func (g *Generator) genCopy(n *tac.Copy) {
	if g.isValueStruct(n.Src) {
		srcName := n.Src.(tac.Variable).Name
		dstName := n.Dst.(tac.Variable).Name
		size := g.structSizeOf(srcName)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.PseudoMem{Name: srcName, Offset: offset}, asm.PseudoMem{Name: dstName, Offset: offset})
		})
		return
	}
	g.emitMov(g.genAsmType(n.Src), g.genOperand(n.Src), g.genOperand(n.Dst))
}

// genGetAddress lowers GetAddress: addresses a ConstantAttrs variable (a
// string literal) as static Data, otherwise as the usual pseudo/pseudo-mem
// operand; either way emits Lea.
func (g *Generator) genGetAddress(n *tac.GetAddress) {
	var src asm.Operand
	if variable, ok := n.Src.(tac.Variable); ok {
		g.fe.AddressedSet[variable.Name] = true
		if sym, ok := g.fe.Symbols[variable.Name]; ok {
			if _, isConst := sym.Attrs.(fetype.ConstantAttrs); isConst {
				src = asm.Data{Name: variable.Name, Offset: 0}
			}
		}
	}
	if src == nil {
		src = g.genOperand(n.Src)
	}
	g.emit(&asm.Lea{Src: src, Dst: g.genOperand(n.Dst)})
}

// genLoad lowers Load: dereference src_ptr into AX, then either a scalar
// Mov from (%rax) or a byte-copy loop from (%rax) into the destination
// pseudo-mem.
func (g *Generator) genLoad(n *tac.Load) {
	g.emitMov(asmtype.QuadWord{}, g.genOperand(n.SrcPtr), asm.Register{Reg: asm.Ax})
	if g.isValueStruct(n.Dst) {
		dstName := n.Dst.(tac.Variable).Name
		size := g.structSizeOf(dstName)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.Memory{Offset: offset, Base: asm.Ax}, asm.PseudoMem{Name: dstName, Offset: offset})
		})
		return
	}
	g.emitMov(g.genAsmType(n.Dst), asm.Memory{Offset: 0, Base: asm.Ax}, g.genOperand(n.Dst))
}

// genStore lowers Store: the symmetric counterpart of Load.
func (g *Generator) genStore(n *tac.Store) {
	g.emitMov(asmtype.QuadWord{}, g.genOperand(n.DstPtr), asm.Register{Reg: asm.Ax})
	if g.isValueStruct(n.Src) {
		srcName := n.Src.(tac.Variable).Name
		size := g.structSizeOf(srcName)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.PseudoMem{Name: srcName, Offset: offset}, asm.Memory{Offset: offset, Base: asm.Ax})
		})
		return
	}
	g.emitMov(g.genAsmType(n.Src), g.genOperand(n.Src), asm.Memory{Offset: 0, Base: asm.Ax})
}

// genAddPtr lowers AddPtr (pointer arithmetic), covering its three cases.
func (g *Generator) genAddPtr(n *tac.AddPtr) {
	if c, ok := n.Idx.(tac.Constant); ok {
		long, ok := c.Const.(fetype.ConstLong)
		if !ok {
			ice.Raise("asmgen: AddPtr constant index must be Long")
		}
		g.emitMov(asmtype.QuadWord{}, g.genOperand(n.SrcPtr), asm.Register{Reg: asm.Ax})
		g.emit(&asm.Lea{
			Src: asm.Memory{Offset: long.Value * n.Scale, Base: asm.Ax},
			Dst: g.genOperand(n.Dst),
		})
		return
	}

	switch n.Scale {
	case 1, 2, 4, 8:
		g.emitMov(asmtype.QuadWord{}, g.genOperand(n.SrcPtr), asm.Register{Reg: asm.Ax})
		g.emitMov(asmtype.QuadWord{}, g.genOperand(n.Idx), asm.Register{Reg: asm.Dx})
		g.emit(&asm.Lea{Src: asm.Indexed{Scale: n.Scale, Base: asm.Ax, RegIndex: asm.Dx}, Dst: g.genOperand(n.Dst)})
	default:
		g.emitMov(asmtype.QuadWord{}, g.genOperand(n.SrcPtr), asm.Register{Reg: asm.Ax})
		g.emitMov(asmtype.QuadWord{}, g.genOperand(n.Idx), asm.Register{Reg: asm.Dx})
		g.emit(&asm.BinaryInstr{
			Op:   asm.OpMult,
			Type: asmtype.QuadWord{},
			Src:  asm.ImmFromInt64(n.Scale, n.Scale >= -128 && n.Scale <= 127, n.Scale < -2147483648 || n.Scale > 2147483647),
			Dst:  asm.Register{Reg: asm.Dx},
		})
		g.emit(&asm.Lea{Src: asm.Indexed{Scale: 1, Base: asm.Ax, RegIndex: asm.Dx}, Dst: g.genOperand(n.Dst)})
	}
}

// genCopyToOffset lowers CopyToOffset: a struct byte-copy (offset-adjusted)
// or a single scalar Mov into the destination pseudo-mem at Offset.
func (g *Generator) genCopyToOffset(n *tac.CopyToOffset) {
	if g.isValueStruct(n.Src) {
		srcName := n.Src.(tac.Variable).Name
		size := g.structSizeOf(srcName)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.PseudoMem{Name: srcName, Offset: offset}, asm.PseudoMem{Name: n.DstName, Offset: offset + n.Offset})
		})
		return
	}
	g.emitMov(g.genAsmType(n.Src), g.genOperand(n.Src), asm.PseudoMem{Name: n.DstName, Offset: n.Offset})
}

// genCopyFromOffset lowers CopyFromOffset: the symmetric counterpart.
func (g *Generator) genCopyFromOffset(n *tac.CopyFromOffset) {
	if g.isValueStruct(n.Dst) {
		dstName := n.Dst.(tac.Variable).Name
		size := g.structSizeOf(dstName)
		copyStrides(size, func(t asmtype.AssemblyType, offset int64) {
			g.emitMov(t, asm.PseudoMem{Name: n.SrcName, Offset: offset + n.Offset}, asm.PseudoMem{Name: dstName, Offset: offset})
		})
		return
	}
	g.emitMov(g.genAsmType(n.Dst), asm.PseudoMem{Name: n.SrcName, Offset: n.Offset}, g.genOperand(n.Dst))
}
