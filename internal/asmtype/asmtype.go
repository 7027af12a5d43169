// Package asmtype is the backend type model: assembly-level operand
// widths and the backend mirror of the front-end symbol table.
package asmtype

import (
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// AssemblyType is the width/shape an operand is generated with: Byte,
// LongWord, QuadWord, BackendDouble, or ByteArray{size,alignment} for
// aggregates.
type AssemblyType interface {
	isAssemblyType()
	// Size returns the operand's byte size on the stack/in memory.
	Size() int64
	// Alignment returns the operand's required alignment.
	Alignment() int64
}

type Byte struct{}
type LongWord struct{}
type QuadWord struct{}
type BackendDouble struct{}
type ByteArray struct {
	SizeBytes int64
	Align     int64
}

func (Byte) isAssemblyType()          {}
func (LongWord) isAssemblyType()      {}
func (QuadWord) isAssemblyType()      {}
func (BackendDouble) isAssemblyType() {}
func (ByteArray) isAssemblyType()     {}

func (Byte) Size() int64          { return 1 }
func (LongWord) Size() int64      { return 4 }
func (QuadWord) Size() int64      { return 8 }
func (BackendDouble) Size() int64 { return 8 }
func (b ByteArray) Size() int64   { return b.SizeBytes }

func (Byte) Alignment() int64          { return 1 }
func (LongWord) Alignment() int64      { return 4 }
func (QuadWord) Alignment() int64      { return 8 }
func (BackendDouble) Alignment() int64 { return 8 }
func (b ByteArray) Alignment() int64   { return b.Align }

// FromScalar maps a front-end scalar/pointer type to its AssemblyType.
func FromScalar(t fetype.Type) AssemblyType {
	switch v := t.(type) {
	case fetype.Pointer:
		return QuadWord{}
	case fetype.Scalar:
		switch v.Kind {
		case fetype.KindChar, fetype.KindSChar, fetype.KindUChar:
			return Byte{}
		case fetype.KindInt, fetype.KindUInt:
			return LongWord{}
		case fetype.KindDouble:
			return BackendDouble{}
		default:
			return QuadWord{}
		}
	default:
		return QuadWord{}
	}
}

// BackendFun is the backend mirror of a function symbol: whether it is
// defined in this translation unit, and (once register-allocated) the
// callee-saved physical registers it must preserve.
type BackendFun struct {
	IsDef       bool
	CalleeSaved []int
}

// BackendObj is the backend mirror of a data symbol: scalar/pointer objects
// keep their matching AssemblyType, arrays and structures become
// ByteArray{size, alignment} for the whole object.
type BackendObj struct {
	Type AssemblyType
	// IsStatic mirrors fetype.IsStatic — whether the object is observable
	// after the function returns, consulted by dead-store elimination.
	IsStatic bool
}

// Symbol is the backend symbol-table entry: either a BackendFun or a
// BackendObj.
type Symbol struct {
	Fun *BackendFun // non-nil for functions
	Obj *BackendObj // non-nil for data objects
}

// Table mirrors FrontEndSymbols.Symbols with AssemblyType in place of
// fetype.Type.
type Table map[ident.ID]*Symbol

// Derive builds the backend Table from the front-end symbol table and
// struct typedefs.
func Derive(fe *fetype.FrontEndSymbols) Table {
	out := make(Table, len(fe.Symbols))
	for name, sym := range fe.Symbols {
		out[name] = deriveSymbol(fe, sym)
	}
	return out
}

func deriveSymbol(fe *fetype.FrontEndSymbols, sym *fetype.Symbol) *Symbol {
	if fn, ok := sym.Type.(*fetype.FunType); ok {
		attrs, _ := sym.Attrs.(fetype.FunAttrs)
		return &Symbol{Fun: &BackendFun{IsDef: fn != nil && attrs.IsDef}}
	}
	isStatic := fetype.IsStatic(sym)
	return &Symbol{Obj: &BackendObj{Type: asmTypeOf(fe, sym.Type), IsStatic: isStatic}}
}

func asmTypeOf(fe *fetype.FrontEndSymbols, t fetype.Type) AssemblyType {
	switch t.(type) {
	case fetype.Array, fetype.Structure:
		size := fetype.Size(fe.StructTypedefs, t)
		align := fetype.Alignment(fe.StructTypedefs, t, true)
		return ByteArray{SizeBytes: size, Align: align}
	default:
		return FromScalar(t)
	}
}
