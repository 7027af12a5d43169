// Package asm is the abstract x86-64 assembly data model: operands,
// instructions, and top-levels, in pseudo-register form prior to stack
// fix-up (internal/stackfix).
package asm

// Reg enumerates the physical registers the backend targets, numbered
// 0-31 in declaration order (Ax..Xmm15) so a RegisterMask bit index
// matches a Reg value directly.
type Reg int

const (
	Ax Reg = iota
	Bx
	Cx
	Dx
	Di
	Si
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	Sp
	Bp
	Xmm0
	Xmm1
	Xmm2
	Xmm3
	Xmm4
	Xmm5
	Xmm6
	Xmm7
	Xmm8
	Xmm9
	Xmm10
	Xmm11
	Xmm12
	Xmm13
	Xmm14
	Xmm15
)

// IntArgRegs are the integer-class argument registers in System V order.
var IntArgRegs = [6]Reg{Di, Si, Dx, Cx, R8, R9}

// SseArgRegs are the SSE-class argument registers in System V order.
var SseArgRegs = [8]Reg{Xmm0, Xmm1, Xmm2, Xmm3, Xmm4, Xmm5, Xmm6, Xmm7}

// CalleeSaved lists the registers a function must preserve across calls.
var CalleeSaved = []Reg{Bx, R12, R13, R14, R15, Bp}

// CondCode is a SetCC/JmpCC condition code.
type CondCode int

const (
	E CondCode = iota
	NE
	G
	GE
	L
	LE
	A
	AE
	B
	BE
	P
)

func (r Reg) String() string {
	names := [...]string{
		"AX", "BX", "CX", "DX", "DI", "SI", "R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15", "SP", "BP",
		"XMM0", "XMM1", "XMM2", "XMM3", "XMM4", "XMM5", "XMM6", "XMM7",
		"XMM8", "XMM9", "XMM10", "XMM11", "XMM12", "XMM13", "XMM14", "XMM15",
	}
	if int(r) < 0 || int(r) >= len(names) {
		return "?"
	}
	return names[r]
}
