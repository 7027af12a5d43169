package cparse

import (
	"fmt"

	"modernc.org/cc/v4"

	"github.com/wheelcc/wheelcc/internal/fetype"
)

// funcDef registers a function definition's signature. Bodies are never
// lowered here (out of scope, see package doc) — only the symbol the
// rest of the pipeline needs to classify calls and returns.
func (p *parser) funcDef(fd *cc.FunctionDefinition) error {
	declarator := fd.Declarator
	t := declarator.Type()
	if t.Kind() != cc.Function {
		return fmt.Errorf("cparse: %v: function definition without function type", declarator.Position())
	}
	name := p.idents.Intern(declarator.Name().String())

	var params []fetype.Type
	directDeclarator := declarator.DirectDeclarator
	if directDeclarator.Case == cc.DirectDeclaratorFuncParam &&
		directDeclarator.ParameterTypeList != nil &&
		directDeclarator.ParameterTypeList.ParameterList != nil {
		params = p.convertParamList(directDeclarator.ParameterTypeList.ParameterList)
	}

	p.fe.Symbols[name] = &fetype.Symbol{
		Type: &fetype.FunType{
			Params:       params,
			Ret:          p.convertType(funcReturnType(t)),
			ParamRegMask: fetype.NoRegisterMask,
			RetRegMask:   fetype.NoRegisterMask,
		},
		Attrs: fetype.FunAttrs{
			IsDef:  true,
			IsGlob: declarator.Linkage() != cc.Internal,
		},
	}
	return nil
}

func (p *parser) convertParamList(params *cc.ParameterList) []fetype.Type {
	decl := params.ParameterDeclaration.Declarator
	out := []fetype.Type{p.convertType(decl.Type())}
	if params.ParameterList != nil {
		out = append(out, p.convertParamList(params.ParameterList)...)
	}
	return out
}

// funcReturnType pulls the result type out of a cc/v4 function type; void
// functions get a Void scalar back rather than a nil Type.
func funcReturnType(t cc.Type) cc.Type {
	if r := t.Result(); r != nil {
		return r
	}
	return t
}

// topLevelDecl handles a non-function top-level declaration: one or more
// InitDeclarators sharing a base type (struct/union-only declarations with
// no declarator list are ignored here — convertType registers their
// StructTypedef lazily, the first time a later declaration references it).
func (p *parser) topLevelDecl(d *cc.Declaration) error {
	for list := d.InitDeclaratorList; list != nil; list = list.InitDeclaratorList {
		if err := p.declareVariable(list.InitDeclarator, d); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) declareVariable(initDecl *cc.InitDeclarator, d *cc.Declaration) error {
	declarator := initDecl.Declarator
	t := declarator.Type()
	if t.Kind() == cc.Function {
		return nil // extern function prototype, not a data symbol
	}
	name := p.idents.Intern(declarator.Name().String())
	feType := p.convertType(t)

	if declarator.Linkage() == cc.None {
		p.fe.Symbols[name] = &fetype.Symbol{Type: feType, Attrs: fetype.LocalAttrs{}}
		return nil
	}

	isGlob := declarator.Linkage() != cc.Internal
	hasInit := initDecl.Case == cc.InitDeclaratorInit && initDecl.Initializer != nil

	switch {
	case hasInit:
		inits := p.staticInitsFromInitializer(initDecl.Initializer, feType)
		p.fe.Symbols[name] = &fetype.Symbol{
			Type:  feType,
			Attrs: fetype.StaticAttrs{IsGlob: isGlob, Init: fetype.Initial, Inits: inits},
		}
	case isExtern(d):
		p.fe.Symbols[name] = &fetype.Symbol{
			Type:  feType,
			Attrs: fetype.StaticAttrs{IsGlob: isGlob, Init: fetype.NoInit},
		}
	default:
		p.fe.Symbols[name] = &fetype.Symbol{
			Type:  feType,
			Attrs: fetype.StaticAttrs{IsGlob: isGlob, Init: fetype.Tentative},
		}
	}
	return nil
}

// isExtern reports whether d's storage-class specifiers include "extern",
// walking the DeclarationSpecifiers chain the same way a declarator's
// type-qualifier list gets walked elsewhere in this package, just
// looking for a different case.
func isExtern(d *cc.Declaration) bool {
	for spec := d.DeclarationSpecifiers; spec != nil; spec = spec.DeclarationSpecifiers {
		if spec.Case == cc.DeclarationSpecifiersStorage &&
			spec.StorageClassSpecifier != nil &&
			spec.StorageClassSpecifier.Case == cc.StorageClassSpecifierExtern {
			return true
		}
	}
	return false
}
