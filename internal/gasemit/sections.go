package gasemit

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/fetype"
)

func (e *emitter) emitBssSection(vars []*asm.StaticVariable) {
	if len(vars) == 0 {
		return
	}
	e.line("\t.bss")
	for _, v := range vars {
		if v.IsGlobal {
			e.line("\t.globl\t%s", e.name(v.Name))
		}
		e.line(alignDirective(v.Alignment))
		e.line("%s:", e.name(v.Name))
		size := int64(0)
		for _, init := range v.Inits {
			if z, ok := init.(fetype.InitZero); ok {
				size += z.Bytes
			}
		}
		if size == 0 {
			size = v.Alignment
		}
		e.line("\t.zero\t%d", size)
	}
}

func (e *emitter) emitDataSection(vars []*asm.StaticVariable) {
	if len(vars) == 0 {
		return
	}
	e.line("\t.data")
	for _, v := range vars {
		if v.IsGlobal {
			e.line("\t.globl\t%s", e.name(v.Name))
		}
		e.line(alignDirective(v.Alignment))
		e.line("%s:", e.name(v.Name))
		for _, init := range v.Inits {
			e.staticInit(init)
		}
	}
}

func (e *emitter) emitRodataSection(consts []*asm.StaticConstant) {
	if len(consts) == 0 {
		return
	}
	e.line("\t.section .rodata")
	for _, c := range consts {
		e.line(alignDirective(c.Alignment))
		e.line("%s:", e.name(c.Name))
		e.staticInit(c.Init)
	}
}

func (e *emitter) emitTextSection(funcs []*asm.Function) {
	if len(funcs) == 0 {
		return
	}
	e.line("\t.text")
	for _, fn := range funcs {
		if fn.IsGlobal {
			e.line("\t.globl\t%s", e.name(fn.Name))
		}
		e.line("%s:", e.name(fn.Name))
		for _, instr := range fn.Instructions {
			e.instruction(instr)
		}
	}
	e.line("\t.section .note.GNU-stack,\"\",@progbits")
}
