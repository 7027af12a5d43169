package fetype

import "github.com/wheelcc/wheelcc/internal/ident"

// InitKind distinguishes how a static variable is initialized.
type InitKind int

const (
	// Tentative: declared but not yet defined (C tentative definition) — the
	// final backend emits it to .bss with the type's size.
	Tentative InitKind = iota
	// Initial: backed by a concrete StaticInit list — emitted to .data/.rodata.
	Initial
	// NoInit: no initializer at all, e.g. an extern declaration.
	NoInit
)

// Attrs is the Symbol attribute sum type: Fun, Static, Constant, Local.
type Attrs interface{ isAttrs() }

type FunAttrs struct {
	IsDef  bool
	IsGlob bool
}

type StaticAttrs struct {
	IsGlob bool
	Init   InitKind
	Inits  []StaticInit // populated iff Init == Initial
}

type ConstantAttrs struct {
	Init StaticInit
}

type LocalAttrs struct{}

func (FunAttrs) isAttrs()      {}
func (StaticAttrs) isAttrs()   {}
func (ConstantAttrs) isAttrs() {}
func (LocalAttrs) isAttrs()    {}

// Symbol is a front-end symbol-table entry: a type plus storage attrs.
type Symbol struct {
	Type  Type
	Attrs Attrs
}

// IsStatic reports whether sym's storage is observable after the
// function returns — used by dead-store elimination's EXIT liveness
// seed.
func IsStatic(sym *Symbol) bool {
	_, ok := sym.Attrs.(StaticAttrs)
	return ok
}

// SymbolTable maps variable/function identifiers to their Symbol.
type SymbolTable map[ident.ID]*Symbol

// FrontEndSymbols bundles the tables the core queries during generation:
// string constants, struct layouts, the variable/function symbol table, and
// the set of variables whose address was taken anywhere in the program
// (needed by copy propagation's alias-kill rule).
type FrontEndSymbols struct {
	StringConstTable map[ident.ID]string
	StructTypedefs   Table
	Symbols          SymbolTable
	AddressedSet     map[ident.ID]bool
}

// NewFrontEndSymbols returns an empty table set, ready for a front end to
// populate.
func NewFrontEndSymbols() *FrontEndSymbols {
	return &FrontEndSymbols{
		StringConstTable: map[ident.ID]string{},
		StructTypedefs:   Table{},
		Symbols:          SymbolTable{},
		AddressedSet:     map[ident.ID]bool{},
	}
}
