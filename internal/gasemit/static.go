package gasemit

import (
	"fmt"

	"github.com/wheelcc/wheelcc/internal/fetype"
)

// isAllZero reports whether inits describes an all-zero (tentative or
// implicitly-zeroed) static: no initializer at all, or a single Zero(n).
func isAllZero(inits []fetype.StaticInit) bool {
	if len(inits) == 0 {
		return true
	}
	if len(inits) != 1 {
		return false
	}
	_, ok := inits[0].(fetype.InitZero)
	return ok
}

// staticInit renders one initializer as its .byte/.long/.quad/.zero/.ascii
// directive line.
func (e *emitter) staticInit(init fetype.StaticInit) {
	switch v := init.(type) {
	case fetype.InitZero:
		e.line("\t.zero\t%d", v.Bytes)
	case fetype.InitPointer:
		e.line("\t.quad\t%s", e.name(v.Name))
	case fetype.InitDouble:
		e.line("\t.quad\t%s", e.name(v.Label))
	case fetype.InitString:
		e.asciiDirective(v)
	case fetype.InitConst:
		e.constInit(v.Value)
	}
}

func (e *emitter) asciiDirective(v fetype.InitString) {
	if v.IsNullTerm {
		e.line("\t.asciz\t%q", v.Literal)
		return
	}
	e.line("\t.ascii\t%q", v.Literal)
}

func (e *emitter) constInit(c fetype.Const) {
	switch {
	case c.Is1Byte():
		e.line("\t.byte\t%d", fetype.Bits(c)&0xff)
	case c.Is4Byte():
		e.line("\t.long\t%d", fetype.Bits(c)&0xffffffff)
	case c.IsDouble():
		e.line("\t.quad\t%d", fetype.Bits(c))
	default:
		e.line("\t.quad\t%d", fetype.Bits(c))
	}
}

func alignDirective(align int64) string {
	return fmt.Sprintf("\t.align\t%d", align)
}
