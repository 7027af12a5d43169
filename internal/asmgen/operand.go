package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// genOperand maps a TAC value to its operand form: constants become
// Imm (doubles routed through the constant pool as Data), variables become
// Pseudo for scalars/pointers or PseudoMem for arrays/structures, per
// invariant (i).
func (g *Generator) genOperand(v tac.Value) asm.Operand {
	switch val := v.(type) {
	case tac.Constant:
		return g.genConstOperand(val.Const)
	case tac.Variable:
		t := g.symbolType(val.Name)
		if fetype.IsScalarOrPointer(t) {
			return asm.Pseudo{Name: val.Name}
		}
		return asm.PseudoMem{Name: val.Name, Offset: 0}
	default:
		return nil
	}
}

func (g *Generator) genConstOperand(c fetype.Const) asm.Operand {
	switch v := c.(type) {
	case fetype.ConstDouble:
		label := g.doubles.InternFloat(v.Value)
		return asm.Data{Name: label, Offset: 0}
	case fetype.ConstChar:
		return asm.ImmFromInt64(int64(v.Value), true, false)
	case fetype.ConstUChar:
		return asm.ImmFromUint64(uint64(v.Value), true, false)
	case fetype.ConstInt:
		return asm.ImmFromInt64(int64(v.Value), false, false)
	case fetype.ConstUInt:
		return asm.ImmFromUint64(uint64(v.Value), false, false)
	case fetype.ConstLong:
		return asm.ImmFromInt64(v.Value, false, true)
	case fetype.ConstULong:
		return asm.ImmFromUint64(v.Value, false, true)
	default:
		return asm.ImmZero()
	}
}

// genAsmType maps a TAC value to its AssemblyType: scalar kinds map
// directly; aggregates go through the backend symbol's ByteArray.
func (g *Generator) genAsmType(v tac.Value) asmtype.AssemblyType {
	switch val := v.(type) {
	case tac.Constant:
		return constAsmType(val.Const)
	case tac.Variable:
		return g.varAsmType(val.Name)
	default:
		return asmtype.QuadWord{}
	}
}

func constAsmType(c fetype.Const) asmtype.AssemblyType {
	switch {
	case c.Is1Byte():
		return asmtype.Byte{}
	case c.Is4Byte():
		return asmtype.LongWord{}
	case c.IsDouble():
		return asmtype.BackendDouble{}
	default:
		return asmtype.QuadWord{}
	}
}

func (g *Generator) varAsmType(name ident.ID) asmtype.AssemblyType {
	sym := g.backend[name]
	return sym.Obj.Type
}

// --- predicate helpers, dispatching on the TAC value's front-end type ---

func (g *Generator) isValueSigned(v tac.Value) bool {
	switch val := v.(type) {
	case tac.Constant:
		return val.Const.IsSigned()
	case tac.Variable:
		return fetype.IsSigned(g.symbolType(val.Name))
	default:
		return false
	}
}

func (g *Generator) isValue1Byte(v tac.Value) bool {
	switch val := v.(type) {
	case tac.Constant:
		return val.Const.Is1Byte()
	case tac.Variable:
		return fetype.Is1Byte(g.symbolType(val.Name))
	default:
		return false
	}
}

func (g *Generator) isValue4Byte(v tac.Value) bool {
	switch val := v.(type) {
	case tac.Constant:
		return val.Const.Is4Byte()
	case tac.Variable:
		return fetype.Is4Byte(g.symbolType(val.Name))
	default:
		return false
	}
}

func (g *Generator) isValueDouble(v tac.Value) bool {
	switch val := v.(type) {
	case tac.Constant:
		return val.Const.IsDouble()
	case tac.Variable:
		return fetype.IsDouble(g.symbolType(val.Name))
	default:
		return false
	}
}

func (g *Generator) isValueStruct(v tac.Value) bool {
	variable, ok := v.(tac.Variable)
	if !ok {
		return false
	}
	return fetype.IsStruct(g.symbolType(variable.Name))
}
