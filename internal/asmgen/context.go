// Package asmgen is the assembly generator: the operand/type generator,
// the per-instruction lowering, and the function-boundary lowerer. It
// consumes a tac.Program and fetype.FrontEndSymbols and
// produces an asm.Program with pseudo-register operands, ready for
// internal/stackfix.
package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/classify"
	"github.com/wheelcc/wheelcc/internal/dconst"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ice"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// Generator holds the state threaded through the generation of one
// tac.Program: the interner (for fresh labels), the front-end symbol
// tables, the backend type mirror, the struct classifier cache, and the
// double constant pool. It is not safe for concurrent use — generation is
// single-threaded.
type Generator struct {
	idents  *ident.Table
	fe      *fetype.FrontEndSymbols
	backend asmtype.Table
	classes *classify.Cache
	doubles *dconst.Pool

	instrs *[]asm.Instruction // current function body under construction

	// Per-function state, valid only while genFunction's lowering of the
	// enclosing function is in progress.
	retIsMemory  bool
	paramRegBits fetype.RegisterMask
	retRegBits   fetype.RegisterMask
}

func maskBit(r asm.Reg) fetype.RegisterMask {
	return fetype.RegisterMask(1) << uint(r)
}

// New returns a Generator ready to lower prog's companion FrontEndSymbols.
func New(idents *ident.Table, fe *fetype.FrontEndSymbols) *Generator {
	return &Generator{
		idents:  idents,
		fe:      fe,
		backend: asmtype.Derive(fe),
		classes: classify.NewCache(fe.StructTypedefs),
		doubles: dconst.NewPool(idents),
	}
}

// Generate lowers prog to an asm.Program. The TacProgram is conceptually
// consumed by this call — callers should not mutate prog afterward.
func Generate(idents *ident.Table, fe *fetype.FrontEndSymbols, prog *tac.Program) (out *asm.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if iceErr, ok := ice.Recover(r); ok {
				err = iceErr
				return
			}
			panic(r)
		}
	}()

	g := New(idents, fe)
	top := make([]asm.TopLevel, 0, len(prog.StaticVars)+len(prog.Functions))
	for _, sv := range prog.StaticVars {
		top = append(top, g.genStaticVariable(sv))
	}
	for _, fn := range prog.Functions {
		top = append(top, g.genFunction(fn))
	}

	staticConsts := make([]asm.TopLevel, 0, len(g.doubles.StaticConsts()))
	for _, c := range g.doubles.StaticConsts() {
		staticConsts = append(staticConsts, &asm.StaticConstant{
			Name:      c.Name,
			Alignment: c.Alignment,
			Init:      fetype.InitConst{Value: fetype.ConstULong{Value: c.Bits}},
		})
	}

	return &asm.Program{StaticConstTopLevels: staticConsts, TopLevels: top}, nil
}

func (g *Generator) emit(instr asm.Instruction) {
	*g.instrs = append(*g.instrs, instr)
}

func (g *Generator) genStaticVariable(sv *tac.StaticVariable) asm.TopLevel {
	sym := g.fe.Symbols[sv.Name]
	var inits []fetype.StaticInit
	if attrs, ok := sym.Attrs.(fetype.StaticAttrs); ok {
		switch attrs.Init {
		case fetype.Initial:
			inits = attrs.Inits
		case fetype.Tentative:
			inits = []fetype.StaticInit{fetype.InitZero{Bytes: fetype.Size(g.fe.StructTypedefs, sym.Type)}}
		}
	}
	return &asm.StaticVariable{
		Name:      sv.Name,
		Alignment: fetype.Alignment(g.fe.StructTypedefs, sym.Type, true),
		IsGlobal:  sv.IsGlobal,
		Inits:     inits,
	}
}

func (g *Generator) symbolType(name ident.ID) fetype.Type {
	sym, ok := g.fe.Symbols[name]
	if !ok {
		ice.Raise("asmgen: undefined symbol %s", g.idents.Name(name))
	}
	return sym.Type
}
