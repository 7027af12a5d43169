// Package gasemit renders an asm.Program — after internal/stackfix has
// replaced every pseudo-register operand — to AT&T-syntax GNU-assembler
// text for the x86-64 System V target: .text/.data/.bss/.section .rodata
// segments, .globl for exported symbols, and .align directives matching
// struct and double alignments. This stage sits outside the core proper,
// treated as an external collaborator, but is required to produce a
// runnable .s file.
package gasemit

import (
	"fmt"
	"strings"

	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// Emit renders prog to a complete assembly-language translation unit.
func Emit(prog *asm.Program, idents *ident.Table) string {
	e := &emitter{idents: idents, b: &strings.Builder{}}

	var funcs []*asm.Function
	var dataVars, bssVars []*asm.StaticVariable
	var rodataConsts []*asm.StaticConstant
	for _, top := range prog.TopLevels {
		switch v := top.(type) {
		case *asm.Function:
			funcs = append(funcs, v)
		case *asm.StaticVariable:
			if isAllZero(v.Inits) {
				bssVars = append(bssVars, v)
			} else {
				dataVars = append(dataVars, v)
			}
		case *asm.StaticConstant:
			rodataConsts = append(rodataConsts, v)
		}
	}
	for _, top := range prog.StaticConstTopLevels {
		if c, ok := top.(*asm.StaticConstant); ok {
			rodataConsts = append(rodataConsts, c)
		}
	}

	e.emitBssSection(bssVars)
	e.emitDataSection(dataVars)
	e.emitRodataSection(rodataConsts)
	e.emitTextSection(funcs)

	return e.b.String()
}

type emitter struct {
	idents *ident.Table
	b      *strings.Builder
}

func (e *emitter) line(format string, args ...interface{}) {
	fmt.Fprintf(e.b, format+"\n", args...)
}

func (e *emitter) name(id ident.ID) string {
	return e.idents.Name(id)
}
