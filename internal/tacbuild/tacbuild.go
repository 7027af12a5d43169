// Package tacbuild loads a tac.Program from a JSON fixture. A full
// C-statement/expression-to-TAC lowering pass is out of scope (TAC always
// arrives pre-built from an upstream pass); this package is the concrete
// stand-in the CLI's `--tac` flag uses so the core can be exercised end
// to end without that pass existing.
//
// Go's encoding/json can't serialize the tac/fetype sum-type interfaces
// (Value, Instruction, Const) directly — there's no field to discriminate
// on. Rather than growing those packages a parallel set of
// MarshalJSON/UnmarshalJSON methods per variant, this package defines its
// own small tagged wire format (one "op"/"kind" string field per sum type)
// and converts it into the real data model, the same separation of
// concerns cparse keeps between "what cc/v4 hands us" and "what
// fetype.Type looks like".
package tacbuild

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// Load reads a .tac.json fixture from path and converts it to a
// tac.Program, interning every name it mentions into idents and
// registering each function's declared "locals" types (plus a Long
// fallback for anything mentioned but undeclared) into fe.
func Load(path string, idents *ident.Table, fe *fetype.FrontEndSymbols) (*tac.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, idents, fe)
}

// Decode parses r as a .tac.json document.
func Decode(r io.Reader, idents *ident.Table, fe *fetype.FrontEndSymbols) (*tac.Program, error) {
	var doc wireProgram
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("tacbuild: decoding fixture: %w", err)
	}
	b := &builder{idents: idents, fe: fe}
	prog, err := b.program(doc)
	if err != nil {
		return nil, err
	}
	registerMentionedFallbacks(prog, fe)
	return prog, nil
}

type builder struct {
	idents *ident.Table
	fe     *fetype.FrontEndSymbols
}

func (b *builder) program(doc wireProgram) (*tac.Program, error) {
	prog := &tac.Program{}
	for _, sv := range doc.Statics {
		prog.StaticVars = append(prog.StaticVars, &tac.StaticVariable{
			Name:      b.idents.Intern(sv.Name),
			IsGlobal:  sv.Global,
			Alignment: sv.Align,
		})
	}
	for _, fn := range doc.Functions {
		converted, err := b.function(fn)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, converted)
	}
	return prog, nil
}

func (b *builder) function(fn wireFunction) (*tac.Function, error) {
	params := make([]ident.ID, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = b.idents.Intern(p)
	}
	for localName, raw := range fn.Locals {
		t, err := b.parseWireType(raw, b.fe)
		if err != nil {
			return nil, fmt.Errorf("tacbuild: function %q, local %q: %w", fn.Name, localName, err)
		}
		b.fe.Symbols[b.idents.Intern(localName)] = &fetype.Symbol{Type: t, Attrs: fetype.LocalAttrs{}}
	}

	instrs := make([]tac.Instruction, len(fn.Instructions))
	for i, w := range fn.Instructions {
		instr, err := b.instruction(w)
		if err != nil {
			return nil, fmt.Errorf("tacbuild: function %q, instruction %d: %w", fn.Name, i, err)
		}
		instrs[i] = instr
	}
	return &tac.Function{
		Name:         b.idents.Intern(fn.Name),
		IsGlobal:     fn.Global,
		Params:       params,
		Instructions: instrs,
	}, nil
}

// registerMentionedFallbacks fills in a default Long-scalar LocalAttrs
// symbol for any TAC variable an instruction reads or writes but neither
// cparse nor a "locals" entry ever declared — pure compiler temporaries
// have no C declaration to begin with.
func registerMentionedFallbacks(prog *tac.Program, fe *fetype.FrontEndSymbols) {
	for _, fn := range prog.Functions {
		for _, instr := range fn.Instructions {
			for _, name := range mentionedVars(instr) {
				if _, ok := fe.Symbols[name]; !ok {
					fe.Symbols[name] = &fetype.Symbol{Type: fetype.Scalar{Kind: fetype.KindLong}, Attrs: fetype.LocalAttrs{}}
				}
			}
		}
	}
}
