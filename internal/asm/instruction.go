package asm

import (
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// Instruction is the assembly instruction sum type.
type Instruction interface{ isInstruction() }

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMult
	OpDivDouble
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitShiftLeft
	OpBitShiftRight
	OpBitShrArithmetic
)

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpShr
)

type Mov struct {
	Type asmtype.AssemblyType
	Src  Operand
	Dst  Operand
}

type MovSx struct {
	TypeSrc asmtype.AssemblyType
	TypeDst asmtype.AssemblyType
	Src     Operand
	Dst     Operand
}

type MovZeroExtend struct {
	TypeSrc asmtype.AssemblyType
	TypeDst asmtype.AssemblyType
	Src     Operand
	Dst     Operand
}

type Lea struct {
	Src Operand
	Dst Operand
}

type Cvttsd2si struct {
	Type asmtype.AssemblyType
	Src  Operand
	Dst  Operand
}

type Cvtsi2sd struct {
	Type asmtype.AssemblyType
	Src  Operand
	Dst  Operand
}

type UnaryInstr struct {
	Op   UnaryOp
	Type asmtype.AssemblyType
	Dst  Operand
}

type BinaryInstr struct {
	Op   BinaryOp
	Type asmtype.AssemblyType
	Src  Operand
	Dst  Operand
}

type Cmp struct {
	Type asmtype.AssemblyType
	Src  Operand
	Dst  Operand
}

type Idiv struct {
	Type asmtype.AssemblyType
	Src  Operand
}

type Div struct {
	Type asmtype.AssemblyType
	Src  Operand
}

type Cdq struct{ Type asmtype.AssemblyType }

type JmpInstr struct{ Target ident.ID }

type JmpCC struct {
	Cond   CondCode
	Target ident.ID
}

type SetCC struct {
	Cond CondCode
	Dst  Operand
}

type LabelInstr struct{ Name ident.ID }

type Push struct{ Src Operand }

type Pop struct{ Reg Reg }

type Call struct{ Name ident.ID }

type Ret struct{}

func (*Mov) isInstruction()           {}
func (*MovSx) isInstruction()         {}
func (*MovZeroExtend) isInstruction() {}
func (*Lea) isInstruction()           {}
func (*Cvttsd2si) isInstruction()     {}
func (*Cvtsi2sd) isInstruction()      {}
func (*UnaryInstr) isInstruction()    {}
func (*BinaryInstr) isInstruction()   {}
func (*Cmp) isInstruction()           {}
func (*Idiv) isInstruction()          {}
func (*Div) isInstruction()           {}
func (*Cdq) isInstruction()           {}
func (*JmpInstr) isInstruction()      {}
func (*JmpCC) isInstruction()         {}
func (*SetCC) isInstruction()         {}
func (*LabelInstr) isInstruction()    {}
func (*Push) isInstruction()          {}
func (*Pop) isInstruction()           {}
func (*Call) isInstruction()          {}
func (*Ret) isInstruction()           {}
