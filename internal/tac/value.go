// Package tac is the three-address-code data model consumed by the
// assembly generator: Value, Instruction, Function, and Program.
//
// TAC arrives fully formed from an upstream pass (a statement/expression
// lowerer) that is out of scope for this core — this package only models
// the shape the core and the optimizers read and rewrite.
package tac

import (
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// Value is a TAC operand: either a Constant or a Variable.
type Value interface{ isValue() }

type Constant struct{ Const fetype.Const }

type Variable struct{ Name ident.ID }

func (Constant) isValue() {}
func (Variable) isValue() {}
