package tac

import "github.com/wheelcc/wheelcc/internal/ident"

// Instruction is the TAC instruction sum type: Return, SignExtend,
// Truncate, ZeroExtend, DoubleToInt/UInt, IntToDouble, UIntToDouble,
// FunCall, Unary, Binary, Copy, GetAddress, Load, Store, AddPtr,
// CopyToOffset, CopyFromOffset, Jump, JumpIfZero, JumpIfNotZero, Label.
type Instruction interface{ isInstruction() }

type Return struct{ Val Value } // Val == nil means void return

type SignExtend struct {
	Src Value
	Dst Value
}

type Truncate struct {
	Src Value
	Dst Value
}

type ZeroExtend struct {
	Src Value
	Dst Value
}

type DoubleToInt struct {
	Src Value
	Dst Value
}

type DoubleToUInt struct {
	Src Value
	Dst Value
}

type IntToDouble struct {
	Src Value
	Dst Value
}

type UIntToDouble struct {
	Src Value
	Dst Value
}

type FunCall struct {
	Name ident.ID
	Args []Value
	Dst  Value // nil for a void call
}

type UnaryOp int

const (
	UnaryComplement UnaryOp = iota
	UnaryNegate
	UnaryNot
)

type Unary struct {
	Op  UnaryOp
	Src Value
	Dst Value
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMult
	BinDivide
	BinRemainder
	BinBitAnd
	BinBitOr
	BinBitXor
	BinBitShiftLeft
	BinBitShiftRight
	BinBitShrArithmetic
	BinEqual
	BinNotEqual
	BinLessThan
	BinLessOrEqual
	BinGreaterThan
	BinGreaterOrEqual
)

type Binary struct {
	Op   BinaryOp
	Src1 Value
	Src2 Value
	Dst  Value
}

type Copy struct {
	Src Value
	Dst Value
}

type GetAddress struct {
	Src Value
	Dst Value
}

type Load struct {
	SrcPtr Value
	Dst    Value
}

type Store struct {
	Src    Value
	DstPtr Value
}

type AddPtr struct {
	SrcPtr Value
	Idx    Value
	Scale  int64
	Dst    Value
}

type CopyToOffset struct {
	Src     Value
	DstName ident.ID
	Offset  int64
}

type CopyFromOffset struct {
	SrcName ident.ID
	Offset  int64
	Dst     Value
}

type Jump struct{ Target ident.ID }

type JumpIfZero struct {
	Cond   Value
	Target ident.ID
}

type JumpIfNotZero struct {
	Cond   Value
	Target ident.ID
}

type Label struct{ Name ident.ID }

func (*Return) isInstruction()         {}
func (*SignExtend) isInstruction()     {}
func (*Truncate) isInstruction()       {}
func (*ZeroExtend) isInstruction()     {}
func (*DoubleToInt) isInstruction()    {}
func (*DoubleToUInt) isInstruction()   {}
func (*IntToDouble) isInstruction()    {}
func (*UIntToDouble) isInstruction()   {}
func (*FunCall) isInstruction()        {}
func (*Unary) isInstruction()          {}
func (*Binary) isInstruction()         {}
func (*Copy) isInstruction()           {}
func (*GetAddress) isInstruction()     {}
func (*Load) isInstruction()           {}
func (*Store) isInstruction()          {}
func (*AddPtr) isInstruction()         {}
func (*CopyToOffset) isInstruction()   {}
func (*CopyFromOffset) isInstruction() {}
func (*Jump) isInstruction()           {}
func (*JumpIfZero) isInstruction()     {}
func (*JumpIfNotZero) isInstruction()  {}
func (*Label) isInstruction()          {}

// IsControlFlow reports whether instr ends a basic block: Return,
// Jump, JumpIfZero, JumpIfNotZero.
func IsControlFlow(instr Instruction) bool {
	switch instr.(type) {
	case *Return, *Jump, *JumpIfZero, *JumpIfNotZero:
		return true
	default:
		return false
	}
}
