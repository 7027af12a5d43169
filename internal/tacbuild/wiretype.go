package tacbuild

import (
	"encoding/json"
	"fmt"

	"github.com/wheelcc/wheelcc/internal/fetype"
)

var scalarKinds = map[string]fetype.Kind{
	"char":   fetype.KindChar,
	"schar":  fetype.KindChar,
	"uchar":  fetype.KindUChar,
	"int":    fetype.KindInt,
	"uint":   fetype.KindUInt,
	"long":   fetype.KindLong,
	"ulong":  fetype.KindULong,
	"double": fetype.KindDouble,
	"void":   fetype.KindVoid,
}

// parseWireType parses one "locals" map entry. A bare string names a
// scalar kind; {"pointer":T} and {"array":{"elem":T,"len":N}} nest;
// {"struct":"Tag"} references a tag cparse already registered in
// fe.StructTypedefs.
func (b *builder) parseWireType(raw json.RawMessage, fe *fetype.FrontEndSymbols) (fetype.Type, error) {
	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		kind, ok := scalarKinds[scalar]
		if !ok {
			return nil, fmt.Errorf("tacbuild: unknown scalar type %q", scalar)
		}
		return fetype.Scalar{Kind: kind}, nil
	}

	var compound struct {
		Pointer json.RawMessage `json:"pointer"`
		Array   *struct {
			Elem json.RawMessage `json:"elem"`
			Len  int64           `json:"len"`
		} `json:"array"`
		Struct string `json:"struct"`
	}
	if err := json.Unmarshal(raw, &compound); err != nil {
		return nil, fmt.Errorf("tacbuild: invalid type descriptor: %w", err)
	}
	switch {
	case compound.Pointer != nil:
		referenced, err := b.parseWireType(compound.Pointer, fe)
		if err != nil {
			return nil, err
		}
		return fetype.Pointer{Referenced: referenced}, nil
	case compound.Array != nil:
		elem, err := b.parseWireType(compound.Array.Elem, fe)
		if err != nil {
			return nil, err
		}
		return fetype.Array{Elem: elem, Len: compound.Array.Len}, nil
	case compound.Struct != "":
		tag := b.idents.Intern(compound.Struct)
		if _, ok := fe.StructTypedefs[tag]; !ok {
			return nil, fmt.Errorf("tacbuild: unknown struct tag %q", compound.Struct)
		}
		return fetype.Structure{Tag: tag}, nil
	default:
		return nil, fmt.Errorf("tacbuild: empty type descriptor")
	}
}
