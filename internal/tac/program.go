package tac

import "github.com/wheelcc/wheelcc/internal/ident"

// Function is one TAC function body: a name plus its instruction vector.
// Instructions is a slot vector — the CFG and data-flow passes rewrite
// entries to nil in place ("null the slot") rather than physically
// removing them, so indices stay stable across a function's lifetime.
type Function struct {
	Name         ident.ID
	IsGlobal     bool
	Params       []ident.ID
	Instructions []Instruction
}

// StaticVariable is a TAC top-level static variable.
type StaticVariable struct {
	Name      ident.ID
	IsGlobal  bool
	Alignment int64
}

// Program is a complete TAC translation unit: static top-levels plus
// function bodies. A Program is consumed (moved) into the assembly
// generator — Go has no move semantics, so callers simply stop using p
// after calling asmgen.Generate(..., p).
type Program struct {
	StaticVars []*StaticVariable
	Functions  []*Function
}
