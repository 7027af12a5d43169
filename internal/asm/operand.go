package asm

import "github.com/wheelcc/wheelcc/internal/ident"

// Operand is the assembly operand sum type: Imm, Reg, Pseudo, Memory,
// Data, PseudoMem, Indexed.
type Operand interface{ isOperand() }

// Imm is an immediate. IsByte/IsQuad/IsNeg must stay consistent with Value
// reinterpreted per operand width — callers construct
// Imm through the helpers in this file rather than the struct literal
// directly, so that invariant holds by construction.
type Imm struct {
	Value  uint64
	IsByte bool
	IsQuad bool
	IsNeg  bool
}

type Register struct{ Reg Reg }

// Pseudo names a scalar TAC variable prior to stack fix-up.
type Pseudo struct{ Name ident.ID }

// Memory is a physical %rbp/%rsp-relative operand, produced by stack
// fix-up from a Pseudo/PseudoMem.
type Memory struct {
	Offset int64
	Base   Reg
}

// Data references a static top-level by name (+byte offset), e.g. a double
// constant or a static variable.
type Data struct {
	Name   ident.ID
	Offset int64
}

// PseudoMem names an aggregate (array/structure) TAC variable at a byte
// offset, prior to stack fix-up.
type PseudoMem struct {
	Name   ident.ID
	Offset int64
}

// Indexed is a scaled-index addressing mode: (base, index, scale).
type Indexed struct {
	Scale     int64
	Base      Reg
	RegIndex  Reg
}

func (Imm) isOperand()       {}
func (Register) isOperand()  {}
func (Pseudo) isOperand()    {}
func (Memory) isOperand()    {}
func (Data) isOperand()      {}
func (PseudoMem) isOperand() {}
func (Indexed) isOperand()   {}

// ImmFromUint64 builds an unsigned immediate at the given width.
func ImmFromUint64(v uint64, isByte, isQuad bool) Imm {
	return Imm{Value: v, IsByte: isByte, IsQuad: isQuad}
}

// ImmFromInt64 builds a signed immediate, setting IsNeg when v < 0 so the
// emitter can render it as a negative decimal literal.
func ImmFromInt64(v int64, isByte, isQuad bool) Imm {
	return Imm{Value: uint64(v), IsByte: isByte, IsQuad: isQuad, IsNeg: v < 0}
}

// ImmZero is the zero immediate at the default (long) width.
func ImmZero() Imm { return Imm{} }
