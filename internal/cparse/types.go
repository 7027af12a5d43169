package cparse

import (
	"modernc.org/cc/v4"

	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// convertType maps a cc/v4 type to its fetype.Type, registering a
// StructTypedef the first time a given struct/union tag is seen.
func (p *parser) convertType(t cc.Type) fetype.Type {
	switch t.Kind() {
	case cc.Ptr:
		return fetype.Pointer{Referenced: p.convertType(t.Elem())}
	case cc.Array:
		return fetype.Array{Elem: p.convertType(t.Elem()), Len: int64(t.Len())}
	case cc.Struct, cc.Union:
		return fetype.Structure{Tag: p.structTag(t), IsUnion: t.Kind() == cc.Union}
	case cc.Char, cc.SChar:
		return fetype.Scalar{Kind: fetype.KindChar}
	case cc.UChar, cc.Bool:
		return fetype.Scalar{Kind: fetype.KindUChar}
	case cc.Int, cc.Short, cc.Enum:
		return fetype.Scalar{Kind: fetype.KindInt}
	case cc.UInt, cc.UShort:
		return fetype.Scalar{Kind: fetype.KindUInt}
	case cc.Long, cc.LongLong:
		return fetype.Scalar{Kind: fetype.KindLong}
	case cc.ULong, cc.ULongLong:
		return fetype.Scalar{Kind: fetype.KindULong}
	case cc.Float, cc.Double, cc.LongDouble:
		return fetype.Scalar{Kind: fetype.KindDouble}
	case cc.Void:
		return fetype.Scalar{Kind: fetype.KindVoid}
	default:
		// Anything this front end doesn't model (bit-fields, function
		// pointers used as plain values, _Complex, ...) degrades to a
		// pointer-width scalar rather than failing the whole parse.
		return fetype.Scalar{Kind: fetype.KindLong}
	}
}

// structTag returns the interned tag identifier for t's struct/union type,
// registering its StructTypedef on first sight. Anonymous struct/unions get
// a synthesized tag so every Structure value still has a usable ID.
func (p *parser) structTag(t cc.Type) ident.ID {
	name := t.Tag().String()
	anonymous := name == ""
	if !anonymous {
		if id, ok := p.tags[name]; ok {
			return id
		}
	}

	tagHint := name
	if anonymous {
		tagHint = "anon"
	}
	id := p.idents.NewStruct(tagHint)
	if !anonymous {
		p.tags[name] = id
	}

	n := t.NumField()
	members := make(map[ident.ID]fetype.Member, n)
	names := make([]ident.ID, 0, n)
	for i := 0; i < n; i++ {
		field := t.FieldByIndex([]int{i})
		memberName := p.idents.Intern(field.Name().String())
		members[memberName] = fetype.Member{
			Offset: int64(field.Offset()),
			Type:   p.convertType(field.Type()),
		}
		names = append(names, memberName)
	}

	p.fe.StructTypedefs[id] = &fetype.StructTypedef{
		Alignment:   int64(t.Align()),
		Size:        int64(t.Size()),
		MemberNames: names,
		Members:     members,
	}
	return id
}
