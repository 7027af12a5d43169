// Package cparse is the front-end collaborator: it wraps modernc.org/cc/v4
// to parse a real C translation unit and populate a fetype.FrontEndSymbols
// — struct layouts, and the scalar/pointer/array/function type and storage
// of every top-level declaration. It does not lower statement bodies to
// TAC; callers supply function bodies as TAC directly (internal/tacbuild)
// — the division of labor stays between "what cc/v4 tells us about
// declarations" and "what we do with a function body", and a body is
// somebody else's problem here.
package cparse

import (
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"modernc.org/cc/v4"

	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// Parse reads the C translation unit at path, plus any headers reachable
// through includeDirs, and returns the FrontEndSymbols cc/v4's declarations
// describe. Identifiers are interned into idents as they're discovered.
func Parse(path string, includeDirs []string, idents *ident.Table) (*fetype.FrontEndSymbols, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := cc.NewConfig(hostOS(), hostArch())
	if err != nil {
		return nil, err
	}
	if len(includeDirs) > 0 {
		cfg.SysIncludePaths = append(includeDirs, cfg.SysIncludePaths...)
	}

	ast, err := cc.Parse(cfg, []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
		{Name: path, Value: f},
	})
	if err != nil {
		return nil, fmt.Errorf("cparse: parsing %s: %w", path, err)
	}

	p := &parser{
		path:   path,
		idents: idents,
		fe:     fetype.NewFrontEndSymbols(),
		tags:   map[string]ident.ID{},
	}
	if err := p.walk(ast); err != nil {
		return nil, err
	}
	return p.fe, nil
}

type parser struct {
	path   string
	idents *ident.Table
	fe     *fetype.FrontEndSymbols
	tags   map[string]ident.ID // struct/union tag name -> interned ID, so repeat uses of a tag share one StructTypedef
}

// walk visits every top-level external declaration belonging to the
// requested file (skipping declarations that only came in through an
// #include), in source order — mirroring parseSource's own
// position-filter-then-sort approach.
func (p *parser) walk(ast *cc.AST) error {
	type decl struct {
		pos int
		ext *cc.ExternalDeclaration
	}
	var decls []decl
	for tu := ast.TranslationUnit; tu != nil; tu = tu.TranslationUnit {
		ext := tu.ExternalDeclaration
		if ext == nil || ext.Position().Filename != p.path {
			continue
		}
		decls = append(decls, decl{pos: ext.Position().Line, ext: ext})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].pos < decls[j].pos })

	for _, d := range lo.Map(decls, func(d decl, _ int) *cc.ExternalDeclaration { return d.ext }) {
		switch d.Case {
		case cc.ExternalDeclarationFuncDef:
			if err := p.funcDef(d.FunctionDefinition); err != nil {
				return err
			}
		case cc.ExternalDeclarationDecl:
			if err := p.topLevelDecl(d.Declaration); err != nil {
				return err
			}
		}
	}
	return nil
}
