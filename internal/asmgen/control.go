package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genJump lowers Jump: an unconditional Jmp.
func (g *Generator) genJump(n *tac.Jump) {
	g.emit(&asm.JmpInstr{Target: n.Target})
}

// genLabel lowers Label.
func (g *Generator) genLabel(n *tac.Label) {
	g.emit(&asm.LabelInstr{Name: n.Name})
}

// genJumpIfZero lowers JumpIfZero: Cmp $0, cond; JE target. A double
// condition is NaN-aware: C treats a NaN as always non-zero, so the
// unordered (PF) case must not take the zero branch.
func (g *Generator) genJumpIfZero(n *tac.JumpIfZero) {
	if !g.isValueDouble(n.Cond) {
		g.emit(&asm.Cmp{Type: g.genAsmType(n.Cond), Src: asm.ImmZero(), Dst: g.genOperand(n.Cond)})
		g.emit(&asm.JmpCC{Cond: asm.E, Target: n.Target})
		return
	}
	zero := g.doubles.Intern(0)
	notZero := g.idents.NewLabel("comisd_nan")
	g.emitMov(asmtype.BackendDouble{}, asm.Data{Name: zero, Offset: 0}, asm.Register{Reg: asm.Xmm0})
	g.emit(&asm.Cmp{Type: asmtype.BackendDouble{}, Src: asm.Register{Reg: asm.Xmm0}, Dst: g.genOperand(n.Cond)})
	g.emit(&asm.JmpCC{Cond: asm.P, Target: notZero})
	g.emit(&asm.JmpCC{Cond: asm.E, Target: n.Target})
	g.emit(&asm.LabelInstr{Name: notZero})
}

// genJumpIfNotZero lowers JumpIfNotZero: the symmetric counterpart — a NaN
// condition takes the jump.
func (g *Generator) genJumpIfNotZero(n *tac.JumpIfNotZero) {
	if !g.isValueDouble(n.Cond) {
		g.emit(&asm.Cmp{Type: g.genAsmType(n.Cond), Src: asm.ImmZero(), Dst: g.genOperand(n.Cond)})
		g.emit(&asm.JmpCC{Cond: asm.NE, Target: n.Target})
		return
	}
	zero := g.doubles.Intern(0)
	g.emitMov(asmtype.BackendDouble{}, asm.Data{Name: zero, Offset: 0}, asm.Register{Reg: asm.Xmm0})
	g.emit(&asm.Cmp{Type: asmtype.BackendDouble{}, Src: asm.Register{Reg: asm.Xmm0}, Dst: g.genOperand(n.Cond)})
	g.emit(&asm.JmpCC{Cond: asm.P, Target: n.Target})
	g.emit(&asm.JmpCC{Cond: asm.NE, Target: n.Target})
}
