package asm

import (
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// TopLevel is the assembly top-level sum type: Function, StaticVariable,
// StaticConstant.
type TopLevel interface{ isTopLevel() }

type Function struct {
	Name         ident.ID
	IsGlobal     bool
	IsRetMemory  bool
	Instructions []Instruction
}

type StaticVariable struct {
	Name      ident.ID
	Alignment int64
	IsGlobal  bool
	Inits     []fetype.StaticInit
}

type StaticConstant struct {
	Name      ident.ID
	Alignment int64
	Init      fetype.StaticInit
}

func (*Function) isTopLevel()       {}
func (*StaticVariable) isTopLevel() {}
func (*StaticConstant) isTopLevel() {}

// Program is the assembly generator's output: the double-constant pool's
// static top-levels, plus the program's own top-levels (statics and
// functions) in source order.
type Program struct {
	StaticConstTopLevels []TopLevel
	TopLevels            []TopLevel
}
