package fetype

import (
	"math"

	"github.com/wheelcc/wheelcc/internal/ident"
)

// RegisterMask is a bitset over the 32 machine registers the backend
// targets (Ax..Xmm15), lazily computed per FunType.
type RegisterMask uint64

// NoRegisterMask marks a FunType whose register usage has not yet been
// computed by the function-boundary lowerer.
const NoRegisterMask RegisterMask = math.MaxUint64

// Type is the front-end type sum type: scalar kinds, Pointer, Array,
// Structure, FunType.
type Type interface {
	isType()
}

type Kind int

const (
	KindChar Kind = iota
	KindSChar
	KindUChar
	KindInt
	KindUInt
	KindLong
	KindULong
	KindDouble
	KindVoid
)

type Scalar struct{ Kind Kind }

type Pointer struct{ Referenced Type }

type Array struct {
	Elem Type
	Len  int64
}

type Structure struct {
	Tag     ident.ID
	IsUnion bool
}

type FunType struct {
	Params []Type
	Ret    Type

	// ParamRegMask/RetRegMask are filled in by the function-boundary lowerer
	// the first time the function's parameter intake / return is
	// generated; RetRegMask is also filled in by the first call site that
	// routes the function's return value. NoRegisterMask until then.
	ParamRegMask RegisterMask
	RetRegMask   RegisterMask
}

func (Scalar) isType()    {}
func (Pointer) isType()   {}
func (Array) isType()     {}
func (Structure) isType() {}
func (*FunType) isType()  {}

// IsSigned reports whether t is a signed scalar type.
func IsSigned(t Type) bool {
	s, ok := t.(Scalar)
	if !ok {
		return false
	}
	switch s.Kind {
	case KindChar, KindSChar, KindInt, KindLong:
		return true
	default:
		return false
	}
}

// Is1Byte reports whether t occupies one byte (char/schar/uchar).
func Is1Byte(t Type) bool {
	s, ok := t.(Scalar)
	if !ok {
		return false
	}
	return s.Kind == KindChar || s.Kind == KindSChar || s.Kind == KindUChar
}

// Is4Byte reports whether t occupies four bytes (int/uint).
func Is4Byte(t Type) bool {
	s, ok := t.(Scalar)
	if !ok {
		return false
	}
	return s.Kind == KindInt || s.Kind == KindUInt
}

// IsDouble reports whether t is the double scalar type.
func IsDouble(t Type) bool {
	s, ok := t.(Scalar)
	return ok && s.Kind == KindDouble
}

// IsStruct reports whether t is a Structure (struct or union).
func IsStruct(t Type) bool {
	_, ok := t.(Structure)
	return ok
}

// IsScalarOrPointer reports whether a TAC variable of type t should be
// generated as a Pseudo (vs. PseudoMem for array/structure).
func IsScalarOrPointer(t Type) bool {
	switch t.(type) {
	case Scalar, Pointer:
		return true
	default:
		return false
	}
}
