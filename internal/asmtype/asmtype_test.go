package asmtype

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

func TestFromScalar(t *testing.T) {
	tests := []struct {
		name string
		t    fetype.Type
		want AssemblyType
	}{
		{"char", fetype.Scalar{Kind: fetype.KindChar}, Byte{}},
		{"int", fetype.Scalar{Kind: fetype.KindInt}, LongWord{}},
		{"long", fetype.Scalar{Kind: fetype.KindLong}, QuadWord{}},
		{"double", fetype.Scalar{Kind: fetype.KindDouble}, BackendDouble{}},
		{"pointer", fetype.Pointer{Referenced: fetype.Scalar{Kind: fetype.KindInt}}, QuadWord{}},
	}
	for _, tt := range tests {
		if got := FromScalar(tt.t); got != tt.want {
			t.Errorf("%s: FromScalar() = %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestDerive_FunctionSymbol(t *testing.T) {
	fe := fetype.NewFrontEndSymbols()
	name := ident.ID(1)
	fe.Symbols[name] = &fetype.Symbol{
		Type:  &fetype.FunType{Ret: fetype.Scalar{Kind: fetype.KindInt}},
		Attrs: fetype.FunAttrs{IsDef: true, IsGlob: true},
	}

	tbl := Derive(fe)
	sym := tbl[name]
	if sym == nil || sym.Fun == nil {
		t.Fatalf("Derive() did not produce a Fun entry for %v", name)
	}
	if !sym.Fun.IsDef {
		t.Errorf("Fun.IsDef = false, want true")
	}
}

func TestDerive_StaticObjectIsByteArrayForStruct(t *testing.T) {
	fe := fetype.NewFrontEndSymbols()
	tag := ident.ID(2)
	fe.StructTypedefs[tag] = &fetype.StructTypedef{Alignment: 8, Size: 16}
	name := ident.ID(3)
	fe.Symbols[name] = &fetype.Symbol{
		Type:  fetype.Structure{Tag: tag},
		Attrs: fetype.StaticAttrs{IsGlob: true, Init: fetype.Tentative},
	}

	tbl := Derive(fe)
	sym := tbl[name]
	if sym == nil || sym.Obj == nil {
		t.Fatalf("Derive() did not produce an Obj entry for %v", name)
	}
	want := ByteArray{SizeBytes: 16, Align: 8}
	if sym.Obj.Type != want {
		t.Errorf("Obj.Type = %#v, want %#v", sym.Obj.Type, want)
	}
	if !sym.Obj.IsStatic {
		t.Errorf("Obj.IsStatic = false, want true for a static attrs symbol")
	}
}

func TestDerive_LocalObjectIsNotStatic(t *testing.T) {
	fe := fetype.NewFrontEndSymbols()
	name := ident.ID(4)
	fe.Symbols[name] = &fetype.Symbol{Type: fetype.Scalar{Kind: fetype.KindInt}, Attrs: fetype.LocalAttrs{}}

	tbl := Derive(fe)
	sym := tbl[name]
	if sym.Obj.IsStatic {
		t.Errorf("Obj.IsStatic = true, want false for a local")
	}
	if sym.Obj.Type != (LongWord{}) {
		t.Errorf("Obj.Type = %#v, want LongWord", sym.Obj.Type)
	}
}
