// Package dconst is the double constant pool: interns f64 bit
// patterns as named read-only static constants so that two requests for the
// same pattern share one label.
package dconst

import (
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// signMask is the bit pattern 0x8000000000000000, used as the XOR operand
// implementing floating-point negation on a double. It gets a
// 16-byte alignment instead of the usual 8 because it is loaded with a
// 128-bit SSE move in the unary-negate sequence.
const signMask uint64 = 0x8000000000000000

// StaticConst is one interned double constant, ready to become an
// AsmStaticConstant top-level.
type StaticConst struct {
	Name      ident.ID
	Alignment int64
	Bits      uint64
}

// Pool interns f64 bit patterns to labels and accumulates the static
// top-levels that must be emitted for them.
type Pool struct {
	idents  *ident.Table
	byBits  map[uint64]ident.ID
	consts  []StaticConst
}

// NewPool returns an empty pool bound to idents for minting fresh labels.
func NewPool(idents *ident.Table) *Pool {
	return &Pool{idents: idents, byBits: map[uint64]ident.ID{}}
}

// Intern returns the label for bits, minting and recording a new static
// constant top-level on first use.
func (p *Pool) Intern(bits uint64) ident.ID {
	if name, ok := p.byBits[bits]; ok {
		return name
	}
	name := p.idents.NewLabel("double")
	align := int64(8)
	if bits == signMask {
		align = 16
	}
	p.byBits[bits] = name
	p.consts = append(p.consts, StaticConst{Name: name, Alignment: align, Bits: bits})
	return name
}

// InternFloat is a convenience wrapper around Intern for a float64 value.
func (p *Pool) InternFloat(f float64) ident.ID {
	return p.Intern(fetype.Bits(fetype.ConstDouble{Value: f}))
}

// NegativeZeroMask returns (and interns, if needed) the label of the
// sign-bit mask used to implement double negation via XOR.
func (p *Pool) NegativeZeroMask() ident.ID {
	return p.Intern(signMask)
}

// StaticConsts returns the static constant top-levels minted so far, in
// first-use order.
func (p *Pool) StaticConsts() []StaticConst {
	return p.consts
}
