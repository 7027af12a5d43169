package fetype

import "github.com/wheelcc/wheelcc/internal/ident"

// StaticInit is the sum type over static initializers: a scalar constant,
// Zero(n), String, Pointer(name), or Double(label).
type StaticInit interface{ isStaticInit() }

type InitConst struct{ Value Const }

type InitZero struct{ Bytes int64 }

type InitString struct {
	ID         ident.ID
	IsNullTerm bool
	Literal    string
}

type InitPointer struct{ Name ident.ID }

// InitDouble names the label of an interned double constant (see
// internal/dconst) rather than carrying the bit pattern directly, since a
// static initializer and an inline immediate share the same pool.
type InitDouble struct{ Label ident.ID }

func (InitConst) isStaticInit()   {}
func (InitZero) isStaticInit()    {}
func (InitString) isStaticInit()  {}
func (InitPointer) isStaticInit() {}
func (InitDouble) isStaticInit()  {}
